// Copyright (c) 2026 rPotential, Inc. All rights reserved.
// Author: platform-team@rpotential.ai

package reaction

import (
	"context"
	"fmt"
	"log/slog"
	"unicode/utf8"

	"github.com/rpotential/workspace/internal/platform/validate"
	"github.com/rpotential/workspace/pkg/uuidv7"
)

const FieldEmoji = "emoji"

// maxEmojiLength bounds the emoji grapheme cluster, not a full string.
const maxEmojiLength = 16

// # Service Layer

// Service orchestrates the business logic for reactions.
type Service struct {
	reactionRepo ReactionRepository
	logger       *slog.Logger
}

// NewService constructs a new [Service] with its required repository.
func NewService(reactionRepo ReactionRepository, logger *slog.Logger) *Service {
	return &Service{
		reactionRepo: reactionRepo,
		logger:       logger,
	}
}

// # Reaction Operations

/*
ListReactions returns all reactions on a message the principal can see.

Returns:
  - []*Reaction: Reactions in creation order
  - error: ErrNotFound if the message is missing or foreign
*/
func (service *Service) ListReactions(context context.Context, ownerID, messageID string) ([]*Reaction, error) {
	return service.reactionRepo.ListByMessage(context, ownerID, messageID)
}

/*
AddReaction records the principal's emoji reaction on a visible message.

Returns:
  - *Reaction: The persisted tuple
  - error: Validation errors, ErrNotFound for a foreign message, or
    ErrConflict for a duplicate (message, user, emoji) tuple
*/
func (service *Service) AddReaction(context context.Context, ownerID, messageID, emoji string) (*Reaction, error) {
	v := &validate.Validator{}
	if err := v.
		Required(FieldEmoji, emoji).
		Custom(FieldEmoji, utf8.RuneCountInString(emoji) > maxEmojiLength, "is too long").
		Err(); err != nil {
		return nil, err
	}

	reaction := &Reaction{
		ID:        uuidv7.New(),
		MessageID: messageID,
		UserID:    ownerID,
		Emoji:     emoji,
	}

	if err := service.reactionRepo.Add(context, ownerID, reaction); err != nil {
		return nil, fmt.Errorf("reaction_service_add_failed: %w", err)
	}

	return reaction, nil
}

/*
RemoveReaction deletes the principal's own reaction from a message.

Returns:
  - error: ErrNotFound if no such reaction exists
*/
func (service *Service) RemoveReaction(context context.Context, ownerID, messageID, emoji string) error {
	return service.reactionRepo.Remove(context, ownerID, messageID, emoji)
}
