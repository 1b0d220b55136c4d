// Copyright (c) 2026 rPotential, Inc. All rights reserved.
// Author: platform-team@rpotential.ai

package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/rpotential/workspace/internal/platform/apperr"
	"github.com/rpotential/workspace/internal/platform/constants"
	"github.com/rpotential/workspace/internal/platform/ctxutil"
	"github.com/rpotential/workspace/internal/platform/respond"
	"github.com/rpotential/workspace/internal/platform/sec"
)

// TokenVerifier defines the interface needed to verify tokens in middleware.
//
// # Why an interface?
//
// Defining TokenVerifier here decouples the middleware from the `sec`
// implementation, allowing us to easily inject mocks during unit testing.
type TokenVerifier interface {
	Verify(token string) (*sec.Claims, error)
}

// # Credential Extraction

// ExtractCredential locates one candidate raw token in the request.
//
// # Precedence
//
// Sources are tried in a fixed order: (1) the rpotential_auth cookie,
// (2) the 'Authorization: Bearer <token>' header. Cookie wins when both are
// present, mirroring browser-vs-API-client precedence. Only one source's
// token is ever used per request.
//
// Returns an empty string when no credential is found.
func ExtractCredential(request *http.Request) string {

	// ── 1. Cookie ─────────────────────────────────────────────────────────
	if cookie, err := request.Cookie(constants.AuthCookieName); err == nil && cookie.Value != "" {
		if decoded, decodeErr := url.QueryUnescape(cookie.Value); decodeErr == nil && decoded != "" {
			return decoded
		}
		// Undecodable values pass through opaque; verification rejects them.
		return cookie.Value
	}

	// ── 2. Bearer Header ──────────────────────────────────────────────────
	header := request.Header.Get(constants.HeaderAuthorization)
	if strings.HasPrefix(header, constants.BearerPrefix) {
		return header[len(constants.BearerPrefix):]
	}

	return ""
}

// # Authentication Gates
//
// Three gates cover the operation modes route handlers depend on. Each runs
// extraction and verification itself so the failure reason is available at
// rejection time; none of them shares mutable state across requests.

// OptionalAuth attaches the principal when a valid credential is present and
// proceeds anonymously otherwise.
//
// # Flow
//  1. Extract a candidate token (cookie, then bearer header).
//  2. If absent, proceed downstream with no principal attached.
//  3. If present, verify; on success inject [*sec.Principal] and [*sec.Claims].
//  4. On ANY failure, log at debug and proceed anonymously — this gate never
//     blocks a request. Failure is an expected, non-exceptional path here.
func OptionalAuth(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			token := ExtractCredential(request)
			if token == "" {
				next.ServeHTTP(writer, request)
				return
			}

			claims, err := verifier.Verify(token)
			if err != nil {
				ctxutil.GetLogger(request.Context()).DebugContext(request.Context(),
					"optional_auth_credential_rejected",
					slog.String("reason", err.Error()),
				)
				next.ServeHTTP(writer, request)
				return
			}

			ctx := ctxutil.WithPrincipal(request.Context(), sec.NewPrincipal(claims), claims)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// RequireAuth blocks requests that do not carry a valid credential.
//
// # Flow
//  1. Extract a candidate token; absence is a 401 "Authentication required".
//  2. Verify; failures map to reason-specific structured errors (see
//     rejectionError) without calling the downstream handler.
//  3. On success inject [*sec.Principal] and [*sec.Claims] and proceed.
func RequireAuth(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			ctx, err := authenticate(verifier, request)
			if err != nil {
				respond.Error(writer, request, err)
				return
			}
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// RequireAuthOrRedirect behaves like [RequireAuth], but failures on requests
// that look like browser navigations receive a 302 redirect to the external
// authentication service instead of a JSON error.
//
// # Browser Heuristic
//
// A request is browser-classified when its Accept header does not ask for
// JSON and its method is not OPTIONS. The original request URL rides along
// as the redirect_uri query parameter so the auth service can send the user
// back after signing in.
func RequireAuthOrRedirect(verifier TokenVerifier, authServiceURL string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			ctx, err := authenticate(verifier, request)
			if err == nil {
				next.ServeHTTP(writer, request.WithContext(ctx))
				return
			}

			if isBrowserNavigation(request) {
				respond.Redirect(writer, request, loginRedirectURL(authServiceURL, request))
				return
			}

			respond.Error(writer, request, err)
		})
	}
}

// authenticate runs the extract → verify sequence and returns the enriched
// request context, or the client-facing rejection error.
func authenticate(verifier TokenVerifier, request *http.Request) (ctx context.Context, err error) {
	token := ExtractCredential(request)
	if token == "" {
		return nil, apperr.Unauthorized("Authentication required")
	}

	claims, verifyErr := verifier.Verify(token)
	if verifyErr != nil {
		return nil, rejectionError(verifyErr)
	}

	return ctxutil.WithPrincipal(request.Context(), sec.NewPrincipal(claims), claims), nil
}

// rejectionError maps verification failures to client-facing errors.
//
// # Oracle Avoidance
//
// Malformed tokens and bad signatures share one generic detail so that the
// response cannot be used to distinguish forgery progress. Expiration is
// distinguished (it does not aid forgery), and domain rejection names the
// domain (already disclosed in the payload).
func rejectionError(err error) error {
	var domainErr *sec.DomainNotAllowedError

	switch {
	case errors.Is(err, sec.ErrExpired):
		return apperr.Unauthorized("Token expired, please re-authenticate")
	case errors.As(err, &domainErr):
		return apperr.Forbidden("Domain " + domainErr.Domain + " is not allowed")
	case errors.Is(err, sec.ErrMalformed), errors.Is(err, sec.ErrBadSignature):
		return apperr.Unauthorized("Invalid token")
	default:
		return apperr.Internal(err)
	}
}

// isBrowserNavigation reports whether the request looks like a browser
// page load rather than an API call.
func isBrowserNavigation(request *http.Request) bool {
	if request.Method == http.MethodOptions {
		return false
	}
	accept := request.Header.Get(constants.HeaderAccept)
	return !strings.Contains(accept, "application/json")
}

// loginRedirectURL builds the external auth service URL carrying the
// original request URL as redirect_uri.
func loginRedirectURL(authServiceURL string, request *http.Request) string {
	scheme := "https"
	if request.TLS == nil {
		if forwarded := request.Header.Get("X-Forwarded-Proto"); forwarded != "" {
			scheme = forwarded
		} else {
			scheme = "http"
		}
	}

	original := scheme + "://" + request.Host + request.URL.RequestURI()
	return authServiceURL + "?redirect_uri=" + url.QueryEscape(original)
}
