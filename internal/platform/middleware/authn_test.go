// Copyright (c) 2026 rPotential, Inc. All rights reserved.
// Author: platform-team@rpotential.ai

package middleware_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpotential/workspace/internal/platform/constants"
	"github.com/rpotential/workspace/internal/platform/ctxutil"
	"github.com/rpotential/workspace/internal/platform/middleware"
	"github.com/rpotential/workspace/internal/platform/sec"
)

// stubVerifier maps raw token strings to canned outcomes.
type stubVerifier struct {
	claims map[string]*sec.Claims
	err    error
}

func (s *stubVerifier) Verify(token string) (*sec.Claims, error) {
	if c, ok := s.claims[token]; ok {
		return c, nil
	}
	if s.err != nil {
		return nil, s.err
	}
	return nil, sec.ErrBadSignature
}

func claimsFor(subject string) *sec.Claims {
	return &sec.Claims{
		Subject: subject,
		Email:   subject + "@rpotential.ai",
		Domain:  "rpotential.ai",
		Role:    sec.RoleUser,
	}
}

// captureHandler records whether it ran and what principal it saw.
type captureHandler struct {
	called    int
	principal *sec.Principal
}

func (c *captureHandler) ServeHTTP(writer http.ResponseWriter, request *http.Request) {
	c.called++
	c.principal = ctxutil.GetPrincipal(request.Context())
	writer.WriteHeader(http.StatusOK)
}

// errorBody decodes the standard error envelope from a recorded response.
func errorBody(t *testing.T, recorder *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var envelope struct {
		Success bool           `json:"success"`
		Error   map[string]any `json:"error"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
	assert.False(t, envelope.Success)
	return envelope.Error
}

/*
TestExtractCredential_Precedence checks the fixed source order: cookie first,
bearer header second, and that the cookie wins when both are present.
*/
func TestExtractCredential_Precedence(t *testing.T) {
	tests := []struct {
		name     string
		cookie   string
		bearer   string
		expected string
	}{
		{"cookie_only", "cookie-token", "", "cookie-token"},
		{"bearer_only", "", "bearer-token", "bearer-token"},
		{"cookie_wins_over_bearer", "cookie-token", "bearer-token", "cookie-token"},
		{"neither", "", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest(http.MethodGet, "/api/v1/threads", nil)
			if tt.cookie != "" {
				request.AddCookie(&http.Cookie{Name: constants.AuthCookieName, Value: tt.cookie})
			}
			if tt.bearer != "" {
				request.Header.Set(constants.HeaderAuthorization, constants.BearerPrefix+tt.bearer)
			}

			assert.Equal(t, tt.expected, middleware.ExtractCredential(request))
		})
	}
}

/*
TestExtractCredential_CookieURLDecoding checks that percent-encoded cookie
values are decoded before use, and that undecodable values pass through
opaque.
*/
func TestExtractCredential_CookieURLDecoding(t *testing.T) {
	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.AddCookie(&http.Cookie{
		Name:  constants.AuthCookieName,
		Value: url.QueryEscape("a.b.c=="),
	})
	assert.Equal(t, "a.b.c==", middleware.ExtractCredential(request))

	request = httptest.NewRequest(http.MethodGet, "/", nil)
	request.AddCookie(&http.Cookie{Name: constants.AuthCookieName, Value: "%zz-broken"})
	assert.Equal(t, "%zz-broken", middleware.ExtractCredential(request))
}

/*
TestExtractCredential_BearerFormat checks the case-sensitive "Bearer " scheme
match.
*/
func TestExtractCredential_BearerFormat(t *testing.T) {
	tests := []struct {
		name     string
		header   string
		expected string
	}{
		{"standard", "Bearer abc.def.ghi", "abc.def.ghi"},
		{"lowercase_scheme_rejected", "bearer abc.def.ghi", ""},
		{"missing_space", "Bearerabc", ""},
		{"basic_scheme", "Basic dXNlcjpwYXNz", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := httptest.NewRequest(http.MethodGet, "/", nil)
			request.Header.Set(constants.HeaderAuthorization, tt.header)
			assert.Equal(t, tt.expected, middleware.ExtractCredential(request))
		})
	}
}

/*
TestOptionalAuth_NeverBlocks checks the non-blocking contract: for missing,
malformed, and expired credentials the downstream handler runs exactly once
with no principal, and the response is never a 401.
*/
func TestOptionalAuth_NeverBlocks(t *testing.T) {
	tests := []struct {
		name      string
		setup     func(*http.Request)
		verifyErr error
	}{
		{"no_credential", func(r *http.Request) {}, nil},
		{"malformed_token", func(r *http.Request) {
			r.Header.Set(constants.HeaderAuthorization, constants.BearerPrefix+"garbage")
		}, sec.ErrMalformed},
		{"expired_token", func(r *http.Request) {
			r.Header.Set(constants.HeaderAuthorization, constants.BearerPrefix+"expired")
		}, sec.ErrExpired},
		{"bad_signature", func(r *http.Request) {
			r.AddCookie(&http.Cookie{Name: constants.AuthCookieName, Value: "forged"})
		}, sec.ErrBadSignature},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			downstream := &captureHandler{}
			gate := middleware.OptionalAuth(&stubVerifier{err: tt.verifyErr})(downstream)

			request := httptest.NewRequest(http.MethodGet, "/api/v1/threads", nil)
			tt.setup(request)
			recorder := httptest.NewRecorder()

			gate.ServeHTTP(recorder, request)

			assert.Equal(t, 1, downstream.called)
			assert.Nil(t, downstream.principal)
			assert.Equal(t, http.StatusOK, recorder.Code)
		})
	}
}

/*
TestOptionalAuth_AttachesPrincipal checks a valid credential yields a
principal downstream.
*/
func TestOptionalAuth_AttachesPrincipal(t *testing.T) {
	verifier := &stubVerifier{claims: map[string]*sec.Claims{"good": claimsFor("u1")}}
	downstream := &captureHandler{}
	gate := middleware.OptionalAuth(verifier)(downstream)

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.Header.Set(constants.HeaderAuthorization, constants.BearerPrefix+"good")

	gate.ServeHTTP(httptest.NewRecorder(), request)

	require.NotNil(t, downstream.principal)
	assert.Equal(t, "u1", downstream.principal.ID)
}

/*
TestRequireAuth_RejectionTaxonomy checks each verification failure maps to
the documented status and detail, and that downstream never runs.
*/
func TestRequireAuth_RejectionTaxonomy(t *testing.T) {
	tests := []struct {
		name           string
		setup          func(*http.Request)
		verifyErr      error
		expectedStatus int
		detailContains string
	}{
		{
			name:           "no_credential",
			setup:          func(r *http.Request) {},
			expectedStatus: http.StatusUnauthorized,
			detailContains: "Authentication required",
		},
		{
			name: "malformed",
			setup: func(r *http.Request) {
				r.Header.Set(constants.HeaderAuthorization, constants.BearerPrefix+"bad")
			},
			verifyErr:      sec.ErrMalformed,
			expectedStatus: http.StatusUnauthorized,
			detailContains: "Invalid token",
		},
		{
			name: "bad_signature_same_detail_as_malformed",
			setup: func(r *http.Request) {
				r.Header.Set(constants.HeaderAuthorization, constants.BearerPrefix+"forged")
			},
			verifyErr:      sec.ErrBadSignature,
			expectedStatus: http.StatusUnauthorized,
			detailContains: "Invalid token",
		},
		{
			name: "expired",
			setup: func(r *http.Request) {
				r.Header.Set(constants.HeaderAuthorization, constants.BearerPrefix+"old")
			},
			verifyErr:      sec.ErrExpired,
			expectedStatus: http.StatusUnauthorized,
			detailContains: "expired",
		},
		{
			name: "domain_not_allowed",
			setup: func(r *http.Request) {
				r.Header.Set(constants.HeaderAuthorization, constants.BearerPrefix+"foreign")
			},
			verifyErr:      &sec.DomainNotAllowedError{Domain: "evil.com"},
			expectedStatus: http.StatusForbidden,
			detailContains: "evil.com",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			downstream := &captureHandler{}
			gate := middleware.RequireAuth(&stubVerifier{err: tt.verifyErr})(downstream)

			request := httptest.NewRequest(http.MethodGet, "/api/v1/threads", nil)
			tt.setup(request)
			recorder := httptest.NewRecorder()

			gate.ServeHTTP(recorder, request)

			assert.Equal(t, 0, downstream.called, "downstream must not run")
			assert.Equal(t, tt.expectedStatus, recorder.Code)

			body := errorBody(t, recorder)
			assert.Contains(t, body["detail"], tt.detailContains)
			assert.NotEmpty(t, body["timestamp"])
		})
	}
}

/*
TestRequireAuth_Success checks a valid credential passes through with the
principal derived from its claims.
*/
func TestRequireAuth_Success(t *testing.T) {
	verifier := &stubVerifier{claims: map[string]*sec.Claims{"good": claimsFor("u42")}}
	downstream := &captureHandler{}
	gate := middleware.RequireAuth(verifier)(downstream)

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.AddCookie(&http.Cookie{Name: constants.AuthCookieName, Value: "good"})
	recorder := httptest.NewRecorder()

	gate.ServeHTTP(recorder, request)

	assert.Equal(t, http.StatusOK, recorder.Code)
	require.NotNil(t, downstream.principal)
	assert.Equal(t, "u42", downstream.principal.ID)
}

/*
TestRequireAuth_CookieWinsForPrincipal pins the extraction precedence at gate
level: with two valid tokens carrying different subjects, the resulting
principal matches the cookie's claims.
*/
func TestRequireAuth_CookieWinsForPrincipal(t *testing.T) {
	verifier := &stubVerifier{claims: map[string]*sec.Claims{
		"cookie-token": claimsFor("cookie-user"),
		"bearer-token": claimsFor("bearer-user"),
	}}
	downstream := &captureHandler{}
	gate := middleware.RequireAuth(verifier)(downstream)

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.AddCookie(&http.Cookie{Name: constants.AuthCookieName, Value: "cookie-token"})
	request.Header.Set(constants.HeaderAuthorization, constants.BearerPrefix+"bearer-token")

	gate.ServeHTTP(httptest.NewRecorder(), request)

	require.NotNil(t, downstream.principal)
	assert.Equal(t, "cookie-user", downstream.principal.ID)
}

/*
TestRequireAuthOrRedirect covers the browser heuristic: unauthenticated page
loads get a 302 to the auth service with the original URL as redirect_uri,
while JSON clients get the structured 401.
*/
func TestRequireAuthOrRedirect(t *testing.T) {
	const authURL = "https://auth.rpotential.ai/auth"
	gate := middleware.RequireAuthOrRedirect(&stubVerifier{}, authURL)

	t.Run("browser_navigation_redirects", func(t *testing.T) {
		downstream := &captureHandler{}
		request := httptest.NewRequest(http.MethodGet, "http://app.rpotential.ai/workspace?tab=threads", nil)
		request.Header.Set(constants.HeaderAccept, "text/html,application/xhtml+xml")
		recorder := httptest.NewRecorder()

		gate(downstream).ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusFound, recorder.Code)
		location := recorder.Header().Get("Location")
		assert.Contains(t, location, authURL+"?redirect_uri=")
		assert.Contains(t, location, url.QueryEscape("/workspace?tab=threads"))
		assert.Equal(t, 0, downstream.called)
	})

	t.Run("json_client_gets_401", func(t *testing.T) {
		downstream := &captureHandler{}
		request := httptest.NewRequest(http.MethodGet, "/api/v1/threads", nil)
		request.Header.Set(constants.HeaderAccept, "application/json")
		recorder := httptest.NewRecorder()

		gate(downstream).ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
		assert.Equal(t, 0, downstream.called)
	})

	t.Run("options_never_redirects", func(t *testing.T) {
		downstream := &captureHandler{}
		request := httptest.NewRequest(http.MethodOptions, "/workspace", nil)
		request.Header.Set(constants.HeaderAccept, "text/html")
		recorder := httptest.NewRecorder()

		gate(downstream).ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})

	t.Run("valid_credential_passes", func(t *testing.T) {
		authed := middleware.RequireAuthOrRedirect(
			&stubVerifier{claims: map[string]*sec.Claims{"good": claimsFor("u1")}},
			authURL,
		)
		downstream := &captureHandler{}
		request := httptest.NewRequest(http.MethodGet, "/workspace", nil)
		request.AddCookie(&http.Cookie{Name: constants.AuthCookieName, Value: "good"})
		recorder := httptest.NewRecorder()

		authed(downstream).ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, 1, downstream.called)
	})
}
