// Copyright (c) 2026 rPotential, Inc. All rights reserved.
// Author: platform-team@rpotential.ai

package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rpotential/workspace/internal/platform/ctxutil"
	"github.com/rpotential/workspace/internal/platform/middleware"
	"github.com/rpotential/workspace/internal/platform/sec"
)

// withPrincipal attaches an authenticated principal to the request context.
func withPrincipal(request *http.Request, role sec.Role) *http.Request {
	claims := &sec.Claims{Subject: "u1", Domain: "rpotential.ai", Role: role}
	ctx := ctxutil.WithPrincipal(request.Context(), sec.NewPrincipal(claims), claims)
	return request.WithContext(ctx)
}

/*
TestRequireRole covers the role gate: anonymous requests are a 401 (not a
403), insufficient roles are a 403 listing the permitted set, and matching
roles pass through.
*/
func TestRequireRole(t *testing.T) {
	tests := []struct {
		name           string
		principalRole  *sec.Role
		allowed        []sec.Role
		expectedStatus int
		detailContains string
	}{
		{
			name:           "anonymous_is_401",
			principalRole:  nil,
			allowed:        []sec.Role{sec.RoleAdmin},
			expectedStatus: http.StatusUnauthorized,
			detailContains: "Authentication required",
		},
		{
			name:           "user_blocked_from_admin",
			principalRole:  rolePtr(sec.RoleUser),
			allowed:        []sec.Role{sec.RoleAdmin},
			expectedStatus: http.StatusForbidden,
			detailContains: "Requires one of the following roles: ADMIN",
		},
		{
			name:           "admin_passes",
			principalRole:  rolePtr(sec.RoleAdmin),
			allowed:        []sec.Role{sec.RoleAdmin},
			expectedStatus: http.StatusOK,
		},
		{
			name:           "multi_role_set_lists_all",
			principalRole:  rolePtr(sec.Role("VIEWER")),
			allowed:        []sec.Role{sec.RoleAdmin, sec.RoleUser},
			expectedStatus: http.StatusForbidden,
			detailContains: "ADMIN, USER",
		},
		{
			name:           "user_passes_user_gate",
			principalRole:  rolePtr(sec.RoleUser),
			allowed:        []sec.Role{sec.RoleAdmin, sec.RoleUser},
			expectedStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			downstream := &captureHandler{}
			gate := middleware.RequireRole(tt.allowed...)(downstream)

			request := httptest.NewRequest(http.MethodGet, "/api/v1/admin/users", nil)
			if tt.principalRole != nil {
				request = withPrincipal(request, *tt.principalRole)
			}
			recorder := httptest.NewRecorder()

			gate.ServeHTTP(recorder, request)

			assert.Equal(t, tt.expectedStatus, recorder.Code)
			if tt.expectedStatus == http.StatusOK {
				assert.Equal(t, 1, downstream.called)
			} else {
				assert.Equal(t, 0, downstream.called)
				assert.Contains(t, errorBody(t, recorder)["detail"], tt.detailContains)
			}
		})
	}
}

func rolePtr(role sec.Role) *sec.Role { return &role }
