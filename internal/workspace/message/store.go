// Copyright (c) 2026 rPotential, Inc. All rights reserved.
// Author: platform-team@rpotential.ai

package message

import "context"

// # Message Data Access

// MessageRepository defines the data access contract for thread messages.
//
// Thread ownership is proven by the service layer before any of these run,
// so the queries scope by thread ID only.
type MessageRepository interface {

	/*
		ListByThread returns a page of a thread's messages in chronological
		order (oldest first).

		Returns:
		  - []*Message: Matched messages
		  - int: Total message count for the thread
		  - error: Storage failures
	*/
	ListByThread(context context.Context, threadID string, limit, offset int) ([]*Message, int, error)

	/*
		FindByID returns the message with the given ID inside the given thread.

		Returns:
		  - *Message: Hydrated entity
		  - error: ErrNotFound if missing or belonging to another thread
	*/
	FindByID(context context.Context, threadID, id string) (*Message, error)

	/*
		Create persists a new message to the store.
	*/
	Create(context context.Context, message *Message) error

	/*
		Delete removes a message permanently.

		Returns:
		  - error: ErrNotFound if missing or belonging to another thread
	*/
	Delete(context context.Context, threadID, id string) error
}

// ThreadGuard proves that a principal owns a thread before any message
// operation touches it. Satisfied by the thread repository.
type ThreadGuard interface {
	IsOwned(context context.Context, ownerID, threadID string) (bool, error)
}
