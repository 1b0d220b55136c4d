// Copyright (c) 2026 rPotential, Inc. All rights reserved.
// Author: platform-team@rpotential.ai

/*
Package api wires together the HTTP router, middleware chain, and all
domain handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost Presentation layer boundary.
  - It acts as the central composition root for the HTTP transport framework (chi router).
  - Only this package and cmd/api are allowed to import net/http server primitives.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/rpotential/workspace/internal/ai"
	"github.com/rpotential/workspace/internal/platform/config"
	"github.com/rpotential/workspace/internal/platform/constants"
	"github.com/rpotential/workspace/internal/platform/middleware"
	"github.com/rpotential/workspace/internal/platform/sec"
	"github.com/rpotential/workspace/internal/users"
	"github.com/rpotential/workspace/internal/workspace/artifact"
	"github.com/rpotential/workspace/internal/workspace/file"
	"github.com/rpotential/workspace/internal/workspace/message"
	"github.com/rpotential/workspace/internal/workspace/reaction"
	"github.com/rpotential/workspace/internal/workspace/thread"
)

// completionTimeout bounds a proxied completion request end to end. Kept
// separate from the global deadline, which is far too short for generation.
const completionTimeout = 150 * time.Second

// # Server Definitions

// Server wraps the chi router and the [http.Server].
//
// It is constructed once in main.go with all dependencies injected.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// # Handler Registry

// Handlers groups all domain-specific HTTP handler sets.
//
// # Usage
//
// New domains add a field here — no other change to server.go is required.
type Handlers struct {
	// Liveness is the /health handler — always returns 200 if process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler — returns 200 when all deps are healthy.
	Readiness http.HandlerFunc

	// Users handles the account lifecycle (register, login, sessions, profile).
	Users *users.Handler

	// Thread handles conversation containers.
	Thread *thread.Handler

	// Message handles utterances nested under threads.
	Message *message.Handler

	// Artifact handles generated work products.
	Artifact *artifact.Handler

	// File handles upload bookkeeping.
	File *file.Handler

	// Reaction handles emoji reactions nested under messages.
	Reaction *reaction.Handler

	// Completion proxies to the upstream model service.
	Completion *ai.Proxy
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
//
// # Authentication Layout
//
// OptionalAuth runs globally, so every downstream handler can read an
// anonymous-or-authenticated principal. The resource group uses the
// redirect-aware gate: browser navigations without a credential bounce to
// the external auth service, while API clients get the same JSON rejections
// as RequireAuth. The admin and completion groups are API-only and use
// RequireAuth directly; admin adds the ADMIN role gate after that.
func NewServer(context context.Context, cfg *config.Config, log *slog.Logger, verifier middleware.TokenVerifier, h Handlers) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	// Global middleware applied in order of execution.
	r.Use(middleware.CorrelationID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(middleware.RateLimit(context))
	r.Use(middleware.PanicRecovery(log))
	r.Use(middleware.OptionalAuth(verifier))
	r.Use(middleware.CORS(cfg))
	r.Use(chimw.CleanPath)

	// # Infrastructure Endpoints
	// Unauthenticated health probes for container orchestration.
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)

	// # Application API
	// Domain-specific route groups mounted under versioned prefix.
	r.Route("/api/v1", func(api chi.Router) {
		api.Group(func(timed chi.Router) {
			timed.Use(chimw.Timeout(constants.GlobalRequestTimeout))

			// Public account lifecycle; mutating profile routes carry their
			// own gate below.
			timed.Mount("/users", h.Users.Routes())

			timed.Group(func(authed chi.Router) {
				authed.Use(middleware.RequireAuthOrRedirect(verifier, cfg.AuthServiceURL))

				authed.Mount("/me", h.Users.ProfileRoutes())
				authed.Mount("/threads", h.Thread.Routes())
				authed.Mount("/threads/{threadID}/messages", h.Message.Routes())
				authed.Mount("/messages/{messageID}/reactions", h.Reaction.Routes())
				authed.Mount("/artifacts", h.Artifact.Routes())
				authed.Mount("/files", h.File.Routes())
			})

			timed.Group(func(admin chi.Router) {
				admin.Use(middleware.RequireAuth(verifier))
				admin.Use(middleware.RequireRole(sec.RoleAdmin))

				admin.Mount("/admin/users", h.Users.AdminRoutes())
			})
		})

		// Completions run outside the global deadline: generation regularly
		// outlives it.
		api.Group(func(slow chi.Router) {
			slow.Use(chimw.Timeout(completionTimeout))
			slow.Use(middleware.RequireAuth(verifier))

			slow.Mount("/completions", h.Completion.Routes())
		})
	})

	return &Server{
		router: r,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           r,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	context, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(context)
}
