// Copyright (c) 2026 rPotential, Inc. All rights reserved.
// Author: platform-team@rpotential.ai

package api

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpotential/workspace/internal/ai"
	"github.com/rpotential/workspace/internal/platform/config"
	"github.com/rpotential/workspace/internal/platform/sec"
	"github.com/rpotential/workspace/internal/users"
	"github.com/rpotential/workspace/internal/workspace/artifact"
	"github.com/rpotential/workspace/internal/workspace/file"
	"github.com/rpotential/workspace/internal/workspace/message"
	"github.com/rpotential/workspace/internal/workspace/reaction"
	"github.com/rpotential/workspace/internal/workspace/thread"
)

const testAuthServiceURL = "https://auth.rpotential.ai/auth"

// rejectAllVerifier fails every credential. Routing tests only need the
// gates' failure paths, never a live token.
type rejectAllVerifier struct{}

func (rejectAllVerifier) Verify(string) (*sec.Claims, error) {
	return nil, sec.ErrBadSignature
}

func newTestServer(t *testing.T) *Server {
	t.Helper()

	cfg := &config.Config{
		ServerPort:     "8080",
		Environment:    "development",
		AuthServiceURL: testAuthServiceURL,
	}

	handlers := Handlers{
		Liveness:   func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) },
		Readiness:  func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) },
		Users:      users.NewHandler(nil),
		Thread:     thread.NewHandler(nil),
		Message:    message.NewHandler(nil),
		Artifact:   artifact.NewHandler(nil),
		File:       file.NewHandler(nil),
		Reaction:   reaction.NewHandler(nil),
		Completion: ai.NewProxy("http://localhost:0", "", slog.Default()),
	}

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	return NewServer(ctx, cfg, slog.Default(), rejectAllVerifier{}, handlers)
}

/*
TestServer_RedirectGateWiring verifies that unauthenticated browser
navigations on the resource surface are redirected to the configured auth
service, while API clients keep receiving JSON rejections.
*/
func TestServer_RedirectGateWiring(t *testing.T) {
	server := newTestServer(t)

	t.Run("browser_navigation_redirects", func(t *testing.T) {
		request := httptest.NewRequest(http.MethodGet, "/api/v1/threads", nil)
		request.Header.Set("Accept", "text/html")
		recorder := httptest.NewRecorder()

		server.router.ServeHTTP(recorder, request)

		require.Equal(t, http.StatusFound, recorder.Code)
		location := recorder.Header().Get("Location")
		assert.Contains(t, location, testAuthServiceURL+"?redirect_uri=")
	})

	t.Run("json_client_gets_401", func(t *testing.T) {
		request := httptest.NewRequest(http.MethodGet, "/api/v1/threads", nil)
		request.Header.Set("Accept", "application/json")
		recorder := httptest.NewRecorder()

		server.router.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})

	t.Run("admin_surface_never_redirects", func(t *testing.T) {
		request := httptest.NewRequest(http.MethodGet, "/api/v1/admin/users", nil)
		request.Header.Set("Accept", "text/html")
		recorder := httptest.NewRecorder()

		server.router.ServeHTTP(recorder, request)

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})

	t.Run("health_is_public", func(t *testing.T) {
		recorder := httptest.NewRecorder()
		server.router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Equal(t, http.StatusOK, recorder.Code)
	})
}
