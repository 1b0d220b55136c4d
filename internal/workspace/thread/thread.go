// Copyright (c) 2026 rPotential, Inc. All rights reserved.
// Author: platform-team@rpotential.ai

// Package thread implements conversation threads, the top-level container of
// the workspace.
//
// # Ownership
//
// Every thread belongs to exactly one principal. All reads and writes are
// scoped by owner at the storage layer, so a thread belonging to someone else
// is indistinguishable from a thread that does not exist.
package thread

import "time"

// Thread is a single conversation container owned by one user.
type Thread struct {
	ID           string    `json:"id"`
	OwnerID      string    `json:"owner_id"`
	Title        string    `json:"title"`
	SystemPrompt string    `json:"system_prompt,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
