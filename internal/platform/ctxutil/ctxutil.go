// Copyright (c) 2026 rPotential, Inc. All rights reserved.
// Author: platform-team@rpotential.ai

// Package ctxutil provides helpers for interacting with values stored in [context.Context].
package ctxutil

import (
	"context"
	"log/slog"

	"github.com/rpotential/workspace/internal/platform/ctxkey"
	"github.com/rpotential/workspace/internal/platform/sec"
)

// # Request Tracing

// WithCorrelationID returns a new context with the provided correlation ID attached.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxkey.KeyCorrelationID, id)
}

// GetCorrelationID retrieves the correlation ID from the context.
// Returns an empty string if not found.
func GetCorrelationID(ctx context.Context) string {
	id, _ := ctx.Value(ctxkey.KeyCorrelationID).(string)
	return id
}

// # Structured Logging

// WithLogger returns a new context with the provided logger attached.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxkey.KeyLogger, logger)
}

// GetLogger retrieves the logger from the context.
// If no logger is found, it returns the global default logger.
func GetLogger(ctx context.Context) *slog.Logger {
	logger, ok := ctx.Value(ctxkey.KeyLogger).(*slog.Logger)
	if !ok {
		return slog.Default()
	}
	return logger
}

// # Identity & Access

// WithPrincipal returns a new context carrying the authenticated principal
// and the raw claims it was derived from.
func WithPrincipal(ctx context.Context, principal *sec.Principal, claims *sec.Claims) context.Context {
	ctx = context.WithValue(ctx, ctxkey.KeyPrincipal, principal)
	return context.WithValue(ctx, ctxkey.KeyClaims, claims)
}

// GetPrincipal retrieves the [*sec.Principal] from the [context.Context].
// Returns nil for anonymous requests.
func GetPrincipal(ctx context.Context) *sec.Principal {
	principal, ok := ctx.Value(ctxkey.KeyPrincipal).(*sec.Principal)
	if !ok {
		return nil
	}
	return principal
}

// GetClaims retrieves the raw verified [*sec.Claims] from the [context.Context].
// Returns nil for anonymous requests.
func GetClaims(ctx context.Context) *sec.Claims {
	claims, ok := ctx.Value(ctxkey.KeyClaims).(*sec.Claims)
	if !ok {
		return nil
	}
	return claims
}
