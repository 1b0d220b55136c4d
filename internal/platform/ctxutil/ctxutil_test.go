// Copyright (c) 2026 rPotential, Inc. All rights reserved.
// Author: platform-team@rpotential.ai

package ctxutil_test

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rpotential/workspace/internal/platform/ctxutil"
	"github.com/rpotential/workspace/internal/platform/sec"
)

/*
TestContext_CorrelationID verifies that correlation IDs can be injected and retrieved.
*/
func TestContext_CorrelationID(t *testing.T) {
	ctx := context.Background()
	correlationID := "test-correlation-id"

	// 1. Initially should be empty
	assert.Empty(t, ctxutil.GetCorrelationID(ctx))

	// 2. Inject and retrieve
	ctx = ctxutil.WithCorrelationID(ctx, correlationID)
	assert.Equal(t, correlationID, ctxutil.GetCorrelationID(ctx))
}

/*
TestContext_Logger verifies that a custom logger can be stored in context.
*/
func TestContext_Logger(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// 1. Initially should return the default logger
	assert.Equal(t, slog.Default(), ctxutil.GetLogger(ctx))

	// 2. Inject and retrieve
	ctx = ctxutil.WithLogger(ctx, logger)
	assert.Equal(t, logger, ctxutil.GetLogger(ctx))
}

/*
TestContext_Principal verifies that the authenticated principal and its
claims can be stored in context.
*/
func TestContext_Principal(t *testing.T) {
	ctx := context.Background()
	principal := &sec.Principal{
		ID:     "user-123",
		Email:  "ana@rpotential.ai",
		Domain: "rpotential.ai",
		Role:   sec.RoleAdmin,
	}
	claims := &sec.Claims{
		Subject: "user-123",
		Email:   "ana@rpotential.ai",
		Domain:  "rpotential.ai",
		Role:    sec.RoleAdmin,
	}

	// 1. Initially should be nil
	assert.Nil(t, ctxutil.GetPrincipal(ctx))
	assert.Nil(t, ctxutil.GetClaims(ctx))

	// 2. Inject and retrieve
	ctx = ctxutil.WithPrincipal(ctx, principal, claims)
	retrieved := ctxutil.GetPrincipal(ctx)

	assert.NotNil(t, retrieved)
	assert.Equal(t, "user-123", retrieved.ID)
	assert.Equal(t, sec.RoleAdmin, retrieved.Role)
	assert.Equal(t, claims, ctxutil.GetClaims(ctx))
}
