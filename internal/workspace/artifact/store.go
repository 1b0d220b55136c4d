// Copyright (c) 2026 rPotential, Inc. All rights reserved.
// Author: platform-team@rpotential.ai

package artifact

import "context"

// # Artifact Data Access

// ArtifactRepository defines the data access contract for artifacts.
// All single-row operations scope by owner; a foreign row reads as missing.
type ArtifactRepository interface {

	/*
		ListByOwner returns a page of the owner's artifacts, newest first.

		Returns:
		  - []*Artifact: Matched artifacts
		  - int: Total artifact count for the owner
		  - error: Storage failures
	*/
	ListByOwner(context context.Context, ownerID string, limit, offset int) ([]*Artifact, int, error)

	/*
		FindByID returns the artifact with the given ID, if owned by ownerID.

		Returns:
		  - *Artifact: Hydrated entity
		  - error: ErrNotFound if missing or owned by another principal
	*/
	FindByID(context context.Context, ownerID, id string) (*Artifact, error)

	/*
		Create persists a new artifact at version 1.
	*/
	Create(context context.Context, artifact *Artifact) error

	/*
		Update persists content changes and bumps the version counter
		atomically. The passed entity's Version is refreshed on success.

		Returns:
		  - error: ErrNotFound if missing or owned by another principal
	*/
	Update(context context.Context, ownerID string, artifact *Artifact) error

	/*
		Delete removes an owned artifact permanently.

		Returns:
		  - error: ErrNotFound if missing or owned by another principal
	*/
	Delete(context context.Context, ownerID, id string) error
}
