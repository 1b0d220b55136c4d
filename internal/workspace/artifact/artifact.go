// Copyright (c) 2026 rPotential, Inc. All rights reserved.
// Author: platform-team@rpotential.ai

// Package artifact implements generated work products (code snippets,
// documents, diagrams) attached to the workspace.
package artifact

import "time"

// Known artifact kinds.
const (
	KindCode     = "code"
	KindDocument = "document"
	KindDiagram  = "diagram"
)

// Artifact is a versioned work product owned by one user, optionally linked
// to the message that produced it.
type Artifact struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"owner_id"`
	MessageID string    `json:"message_id,omitempty"`
	Kind      string    `json:"kind"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Language  string    `json:"language,omitempty"`
	Version   int       `json:"version"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
