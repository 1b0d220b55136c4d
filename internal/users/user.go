// Copyright (c) 2026 rPotential, Inc. All rights reserved.
// Author: platform-team@rpotential.ai

// Package users defines the account entities and authentication use cases of
// the Workspace platform.
//
// # Architecture
//
// Entities in this package represent the "Truth" of the system. They have no
// dependencies on outer layers (databases, HTTP, third-party SDKs), which
// keeps the core logic highly testable and resilient to technology changes.
package users

import (
	"time"

	"github.com/rpotential/workspace/internal/platform/sec"
)

// User represents a registered member of the workspace.
//
// # Rules
//   - Email is unique and validated.
//   - Domain is derived from the email address and must be in the
//     workspace allow-list at registration time.
//   - PasswordHash is generated via bcrypt exclusively by the Service.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Explicitly omitted from JSON for security.
	DisplayName  string    `json:"display_name,omitempty"`
	AvatarURL    string    `json:"avatar_url,omitempty"`
	Domain       string    `json:"domain"`
	Role         sec.Role  `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Session represents an active refresh-token session.
//
// # Security Concept
//
// Access tokens are stateless and cannot be revoked before they expire. To
// mitigate this, the workspace pairs short-lived access tokens with
// long-lived Sessions stored in the database. When the access token expires,
// the client uses the Session (Refresh Token) to issue a new one. Revoking a
// Session logs the user out globally.
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	TokenHash string    `json:"-"` // Hashed value of the refresh token. Omitted for security.
	UserAgent string    `json:"user_agent"`
	IPAddress string    `json:"ip_address"`
	ExpiresAt time.Time `json:"expires_at"`
	IsRevoked bool      `json:"is_revoked"`
	CreatedAt time.Time `json:"created_at"`
}
