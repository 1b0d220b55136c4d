// Copyright (c) 2026 rPotential, Inc. All rights reserved.
// Author: platform-team@rpotential.ai

package file

import "context"

// # File Metadata Data Access

// FileRepository defines the data access contract for file metadata.
// All single-row operations scope by owner; a foreign row reads as missing.
type FileRepository interface {

	/*
		ListByOwner returns a page of the owner's files, newest first.

		Returns:
		  - []*File: Matched file records
		  - int: Total file count for the owner
		  - error: Storage failures
	*/
	ListByOwner(context context.Context, ownerID string, limit, offset int) ([]*File, int, error)

	/*
		FindByID returns the file record with the given ID, if owned by ownerID.

		Returns:
		  - *File: Hydrated entity
		  - error: ErrNotFound if missing or owned by another principal
	*/
	FindByID(context context.Context, ownerID, id string) (*File, error)

	/*
		Create persists a new file metadata record.
	*/
	Create(context context.Context, file *File) error

	/*
		Update persists a rename or thread re-link. The storage key is immutable.

		Returns:
		  - error: ErrNotFound if missing or owned by another principal
	*/
	Update(context context.Context, ownerID string, file *File) error

	/*
		Delete removes an owned file record permanently.

		Returns:
		  - error: ErrNotFound if missing or owned by another principal
	*/
	Delete(context context.Context, ownerID, id string) error
}
