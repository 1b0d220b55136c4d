// Copyright (c) 2026 rPotential, Inc. All rights reserved.
// Author: platform-team@rpotential.ai

// Command api is the entry point for the rPotential Workspace HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool).
//  4. Connect to Redis.
//  5. Run database migrations (idempotent).
//  6. Wire HTTP handlers.
//  7. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rpotential/workspace/internal/ai"
	"github.com/rpotential/workspace/internal/api"
	"github.com/rpotential/workspace/internal/platform/config"
	"github.com/rpotential/workspace/internal/platform/constants"
	"github.com/rpotential/workspace/internal/platform/migration"
	pgstore "github.com/rpotential/workspace/internal/platform/postgres"
	redisstore "github.com/rpotential/workspace/internal/platform/redis"
	"github.com/rpotential/workspace/internal/platform/sec"
	"github.com/rpotential/workspace/internal/users"
	"github.com/rpotential/workspace/internal/workspace/artifact"
	"github.com/rpotential/workspace/internal/workspace/file"
	"github.com/rpotential/workspace/internal/workspace/message"
	"github.com/rpotential/workspace/internal/workspace/reaction"
	"github.com/rpotential/workspace/internal/workspace/thread"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Add global context to all log entries.
	log := rawLog.With(slog.String("app", constants.AppName))
	slog.SetDefault(log)

	log.Info("service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", constants.AppName))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
	)

	// Root context for startup. Use a 30s deadline so misconfiguration is
	// caught quickly rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// ── 3. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing postgres pool")
		pool.Close()
	}()

	// ── 4. Redis ──────────────────────────────────────────────────────────
	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
	must(log, err, "connect to redis")
	defer func() {
		log.Info("closing redis client")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis close error", slog.Any("error", cerr))
		}
	}()

	// ── 5. Migrations ─────────────────────────────────────────────────────
	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	// ── 6. Token Verification & Issuance ──────────────────────────────────
	secret := []byte(cfg.JWTSecret)
	verifier := sec.NewVerifier(secret, cfg.AllowedDomains)
	issuer := sec.NewTokenIssuer(secret, constants.AuthIssuer)

	// ── 7. Health handlers (wired with real dependency checkers) ──────────
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func() error {
			return pgstore.Ping(context.Background(), pool)
		},
		CheckCache: func() error {
			return redisstore.Ping(context.Background(), rdb)
		},
	}, log)

	// ── 8. Domain Wiring ──────────────────────────────────────────────────
	userRepository := users.NewUserRepository(pool)
	sessionRepository := users.NewSessionRepository(pool)
	resetTokenRepository := users.NewResetTokenRepository(rdb)
	userService := users.NewService(userRepository, sessionRepository, resetTokenRepository, issuer, cfg.AllowedDomains)
	userHandler := users.NewHandler(userService)

	threadRepository := thread.NewThreadRepository(pool)
	threadService := thread.NewService(threadRepository, log)
	threadHandler := thread.NewHandler(threadService)

	messageRepository := message.NewMessageRepository(pool)
	messageService := message.NewService(messageRepository, threadRepository, log)
	messageHandler := message.NewHandler(messageService)

	artifactRepository := artifact.NewArtifactRepository(pool)
	artifactService := artifact.NewService(artifactRepository, log)
	artifactHandler := artifact.NewHandler(artifactService)

	fileRepository := file.NewFileRepository(pool)
	fileService := file.NewService(fileRepository, log)
	fileHandler := file.NewHandler(fileService)

	reactionRepository := reaction.NewReactionRepository(pool)
	reactionService := reaction.NewService(reactionRepository, log)
	reactionHandler := reaction.NewHandler(reactionService)

	completionProxy := ai.NewProxy(cfg.CompletionsURL, cfg.CompletionsAPIKey, log)

	// ── 9. HTTP Server ────────────────────────────────────────────────────
	handlers := api.Handlers{
		Liveness:   liveness,
		Readiness:  readiness,
		Users:      userHandler,
		Thread:     threadHandler,
		Message:    messageHandler,
		Artifact:   artifactHandler,
		File:       fileHandler,
		Reaction:   reactionHandler,
		Completion: completionProxy,
	}

	// The app context outlives startup: it owns background goroutines (rate
	// limiter cleanup, session garbage collection) and is cancelled only when
	// the process exits.
	appCtx, appCancel := context.WithCancel(context.Background())
	defer appCancel()

	userService.StartSessionCleanup(appCtx, constants.SessionCleanupInterval, log)

	server := api.NewServer(appCtx, cfg, log, verifier, handlers)

	// ── 10. Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server startup error", slog.Any("error", err))
	}

	// Give in-flight requests enough time to complete.
	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server stopped cleanly")
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is intentionally limited to startup wiring. After startup, all errors
// must be returned and handled explicitly (never panic).
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
