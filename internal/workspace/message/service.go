// Copyright (c) 2026 rPotential, Inc. All rights reserved.
// Author: platform-team@rpotential.ai

package message

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rpotential/workspace/internal/platform/apperr"
	"github.com/rpotential/workspace/internal/platform/validate"
	"github.com/rpotential/workspace/pkg/uuidv7"
)

const (
	FieldRole    = "role"
	FieldContent = "content"
)

// # Service Layer

// Service orchestrates the business logic for messages.
type Service struct {
	messageRepo MessageRepository
	threads     ThreadGuard
	logger      *slog.Logger
}

// NewService constructs a new [Service] with its required collaborators.
func NewService(messageRepo MessageRepository, threads ThreadGuard, logger *slog.Logger) *Service {
	return &Service{
		messageRepo: messageRepo,
		threads:     threads,
		logger:      logger,
	}
}

// requireThread proves the principal owns the thread, mapping a foreign or
// missing thread to NotFound.
func (service *Service) requireThread(context context.Context, ownerID, threadID string) error {
	owned, err := service.threads.IsOwned(context, ownerID, threadID)
	if err != nil {
		return fmt.Errorf("message_service_thread_check_failed: %w", err)
	}
	if !owned {
		return apperr.NotFound("Thread")
	}
	return nil
}

// # Message Operations

/*
ListMessages retrieves a page of a thread's messages in chronological order.

Parameters:
  - context: context.Context
  - ownerID: string (Principal ID, proven against the thread)
  - threadID: string (UUID)
  - limit: int
  - offset: int

Returns:
  - []*Message: Matched messages
  - int: Total message count for the thread
  - error: ErrNotFound if the thread is missing or foreign
*/
func (service *Service) ListMessages(context context.Context, ownerID, threadID string, limit, offset int) ([]*Message, int, error) {
	if err := service.requireThread(context, ownerID, threadID); err != nil {
		return nil, 0, err
	}

	return service.messageRepo.ListByThread(context, threadID, limit, offset)
}

/*
GetMessage retrieves a single message from an owned thread.

Returns:
  - *Message: The hydrated domain entity
  - error: ErrNotFound if the thread or message is missing or foreign
*/
func (service *Service) GetMessage(context context.Context, ownerID, threadID, id string) (*Message, error) {
	if err := service.requireThread(context, ownerID, threadID); err != nil {
		return nil, err
	}

	return service.messageRepo.FindByID(context, threadID, id)
}

// CreateMessageInput holds the data required to append a message.
type CreateMessageInput struct {
	Role             string
	Content          string
	ModelName        string
	PromptTokens     int
	CompletionTokens int
}

/*
CreateMessage appends a message to an owned thread.

Returns:
  - *Message: The persisted entity
  - error: Validation errors or ErrNotFound for a foreign thread
*/
func (service *Service) CreateMessage(context context.Context, ownerID, threadID string, input CreateMessageInput) (*Message, error) {
	if err := service.requireThread(context, ownerID, threadID); err != nil {
		return nil, err
	}

	v := &validate.Validator{}
	if err := v.
		Required(FieldContent, input.Content).
		OneOf(FieldRole, input.Role, RoleUser, RoleAssistant, RoleSystem).
		Err(); err != nil {
		return nil, err
	}

	message := &Message{
		ID:               uuidv7.New(),
		ThreadID:         threadID,
		Role:             input.Role,
		Content:          input.Content,
		ModelName:        input.ModelName,
		PromptTokens:     input.PromptTokens,
		CompletionTokens: input.CompletionTokens,
	}

	if err := service.messageRepo.Create(context, message); err != nil {
		return nil, fmt.Errorf("message_service_create_failed: %w", err)
	}

	return message, nil
}

/*
DeleteMessage permanently removes a message from an owned thread.

Returns:
  - error: ErrNotFound if the thread or message is missing or foreign
*/
func (service *Service) DeleteMessage(context context.Context, ownerID, threadID, id string) error {
	if err := service.requireThread(context, ownerID, threadID); err != nil {
		return err
	}

	return service.messageRepo.Delete(context, threadID, id)
}
