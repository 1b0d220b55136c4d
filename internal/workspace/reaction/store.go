// Copyright (c) 2026 rPotential, Inc. All rights reserved.
// Author: platform-team@rpotential.ai

package reaction

import "context"

// # Reaction Data Access

// ReactionRepository defines the data access contract for message reactions.
//
// ownerID always names the principal, and every query proves message
// visibility through thread ownership before touching reaction rows.
type ReactionRepository interface {

	/*
		ListByMessage returns all reactions on a visible message, oldest first.

		Returns:
		  - []*Reaction: Matched reactions
		  - error: ErrNotFound if the message is missing or foreign
	*/
	ListByMessage(context context.Context, ownerID, messageID string) ([]*Reaction, error)

	/*
		Add records the principal's reaction on a visible message.

		Returns:
		  - error: ErrNotFound for a foreign message,
		    ErrConflict if the (message, user, emoji) tuple already exists
	*/
	Add(context context.Context, ownerID string, reaction *Reaction) error

	/*
		Remove deletes the principal's own reaction.

		Returns:
		  - error: ErrNotFound if no such reaction exists
	*/
	Remove(context context.Context, ownerID, messageID, emoji string) error
}
