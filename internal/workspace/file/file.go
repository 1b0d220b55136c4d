// Copyright (c) 2026 rPotential, Inc. All rights reserved.
// Author: platform-team@rpotential.ai

// Package file implements upload bookkeeping for workspace files.
//
// Only metadata lives here: the bytes themselves are stored by an external
// object store addressed by the storage key. The storage key is derived from
// the display name once at creation and never changes afterwards, so renames
// do not orphan stored objects.
package file

import "time"

// File is the metadata record of one uploaded file.
type File struct {
	ID         string    `json:"id"`
	OwnerID    string    `json:"owner_id"`
	ThreadID   string    `json:"thread_id,omitempty"`
	Name       string    `json:"name"`
	StorageKey string    `json:"storage_key"`
	MimeType   string    `json:"mime_type"`
	SizeBytes  int64     `json:"size_bytes"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
