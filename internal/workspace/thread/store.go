// Copyright (c) 2026 rPotential, Inc. All rights reserved.
// Author: platform-team@rpotential.ai

package thread

import "context"

// # Thread Data Access

// ThreadRepository defines the data access contract for conversation threads.
//
// Every method that targets a single thread takes the requesting owner's ID
// and applies it as a predicate: a row owned by someone else must behave
// exactly like a missing row.
type ThreadRepository interface {

	/*
		ListByOwner returns a page of the owner's threads, newest first.

		Parameters:
		  - context: context.Context
		  - ownerID: string (UUID of the principal)
		  - limit: int
		  - offset: int

		Returns:
		  - []*Thread: List of hydrated threads
		  - int: Total thread count for the owner
		  - error: Storage failures
	*/
	ListByOwner(context context.Context, ownerID string, limit, offset int) ([]*Thread, int, error)

	/*
		FindByID returns the thread with the given ID, if owned by ownerID.

		Returns:
		  - *Thread: Hydrated entity
		  - error: ErrNotFound if missing OR owned by another principal
	*/
	FindByID(context context.Context, ownerID, id string) (*Thread, error)

	/*
		Create persists a new thread to the store.
	*/
	Create(context context.Context, thread *Thread) error

	/*
		Update persists title/system prompt changes to an owned thread.

		Returns:
		  - error: ErrNotFound if missing or owned by another principal
	*/
	Update(context context.Context, ownerID string, thread *Thread) error

	/*
		SoftDelete marks an owned thread as deleted without physical row removal.

		Returns:
		  - error: ErrNotFound if missing or owned by another principal
	*/
	SoftDelete(context context.Context, ownerID, id string) error

	/*
		IsOwned reports whether the thread exists, is live, and belongs to ownerID.
		Used by sibling domains (messages, reactions) to gate access through
		thread ownership.
	*/
	IsOwned(context context.Context, ownerID, id string) (bool, error)
}
