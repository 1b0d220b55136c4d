// Copyright (c) 2026 rPotential, Inc. All rights reserved.
// Author: platform-team@rpotential.ai

// Package reaction implements emoji reactions on messages.
//
// # Access Model
//
// A reaction targets a message, and message visibility flows through thread
// ownership. The storage layer joins through the owning thread on every
// operation, so reacting to a foreign message reads as NotFound.
package reaction

import "time"

// Reaction is one (message, user, emoji) tuple. The triple is unique.
type Reaction struct {
	ID        string    `json:"id"`
	MessageID string    `json:"message_id"`
	UserID    string    `json:"user_id"`
	Emoji     string    `json:"emoji"`
	CreatedAt time.Time `json:"created_at"`
}
