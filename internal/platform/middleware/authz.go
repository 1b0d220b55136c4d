// Copyright (c) 2026 rPotential, Inc. All rights reserved.
// Author: platform-team@rpotential.ai

package middleware

import (
	"net/http"

	"github.com/rpotential/workspace/internal/platform/apperr"
	"github.com/rpotential/workspace/internal/platform/ctxutil"
	"github.com/rpotential/workspace/internal/platform/respond"
	"github.com/rpotential/workspace/internal/platform/sec"
)

// RequireRole blocks requests whose principal is not in the allowed role set.
//
// # Usage
//
// Must be registered in the router AFTER one of the authentication gates.
// A missing principal is a 401, never a 403: authentication failures are not
// authorization failures.
//
// # Flow
//  1. Check if [*sec.Principal] exists in context.
//  2. Check set membership of the principal's role.
//  3. If insufficient, abort with HTTP 403 listing the permitted roles.
func RequireRole(allowed ...sec.Role) func(http.Handler) http.Handler {
	permitted := make([]string, len(allowed))
	for i, role := range allowed {
		permitted[i] = string(role)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			principal := ctxutil.GetPrincipal(request.Context())

			// ── 1. Authentication Check ───────────────────────────────────────
			if principal == nil {
				respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
				return
			}

			// ── 2. Authorization Check ────────────────────────────────────────
			if !principal.Role.In(allowed...) {
				respond.Error(writer, request, apperr.ForbiddenRoles(permitted))
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}
