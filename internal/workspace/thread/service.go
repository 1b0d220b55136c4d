// Copyright (c) 2026 rPotential, Inc. All rights reserved.
// Author: platform-team@rpotential.ai

package thread

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rpotential/workspace/internal/platform/validate"
	"github.com/rpotential/workspace/pkg/pointer"
	"github.com/rpotential/workspace/pkg/uuidv7"
)

const (
	FieldTitle        = "title"
	FieldSystemPrompt = "system_prompt"
)

// # Service Layer

// Service orchestrates the business logic for threads.
type Service struct {
	threadRepo ThreadRepository
	logger     *slog.Logger
}

// NewService constructs a new [Service] with its required repository.
func NewService(threadRepo ThreadRepository, logger *slog.Logger) *Service {
	return &Service{
		threadRepo: threadRepo,
		logger:     logger,
	}
}

// # Thread Operations

/*
ListThreads retrieves a page of the principal's threads, newest first.

Parameters:
  - context: context.Context
  - ownerID: string (Principal ID)
  - limit: int
  - offset: int

Returns:
  - []*Thread: Matched threads
  - int: Total thread count for the owner
  - error: Storage or execution errors
*/
func (service *Service) ListThreads(context context.Context, ownerID string, limit, offset int) ([]*Thread, int, error) {
	return service.threadRepo.ListByOwner(context, ownerID, limit, offset)
}

/*
GetThread retrieves a single owned thread by its ID.

Returns:
  - *Thread: The hydrated domain entity
  - error: ErrNotFound if missing or owned by another principal
*/
func (service *Service) GetThread(context context.Context, ownerID, id string) (*Thread, error) {
	return service.threadRepo.FindByID(context, ownerID, id)
}

// CreateThreadInput holds the data required to open a new conversation.
type CreateThreadInput struct {
	Title        string
	SystemPrompt string
}

/*
CreateThread initialises a new conversation thread for the principal.

Returns:
  - *Thread: The persisted entity
  - error: Validation or storage errors
*/
func (service *Service) CreateThread(context context.Context, ownerID string, input CreateThreadInput) (*Thread, error) {
	v := &validate.Validator{}
	if err := v.
		Required(FieldTitle, input.Title).
		MaxLen(FieldTitle, input.Title, 200).
		MaxLen(FieldSystemPrompt, input.SystemPrompt, 8000).
		Err(); err != nil {
		return nil, err
	}

	thread := &Thread{
		ID:           uuidv7.New(),
		OwnerID:      ownerID,
		Title:        input.Title,
		SystemPrompt: input.SystemPrompt,
	}

	if err := service.threadRepo.Create(context, thread); err != nil {
		return nil, fmt.Errorf("thread_service_create_failed: %w", err)
	}

	return thread, nil
}

// UpdateThreadInput holds the mutable thread fields. Nil pointers mean "unchanged".
type UpdateThreadInput struct {
	Title        *string
	SystemPrompt *string
}

/*
UpdateThread persists changes to an owned thread's title or system prompt.

Returns:
  - *Thread: The updated entity
  - error: ErrNotFound if missing or owned by another principal
*/
func (service *Service) UpdateThread(context context.Context, ownerID, id string, input UpdateThreadInput) (*Thread, error) {
	thread, err := service.threadRepo.FindByID(context, ownerID, id)
	if err != nil {
		return nil, err
	}

	thread.Title = pointer.Fallback(input.Title, thread.Title)
	thread.SystemPrompt = pointer.Fallback(input.SystemPrompt, thread.SystemPrompt)

	v := &validate.Validator{}
	if err := v.
		Required(FieldTitle, thread.Title).
		MaxLen(FieldTitle, thread.Title, 200).
		MaxLen(FieldSystemPrompt, thread.SystemPrompt, 8000).
		Err(); err != nil {
		return nil, err
	}

	if err := service.threadRepo.Update(context, ownerID, thread); err != nil {
		return nil, err
	}

	return thread, nil
}

/*
DeleteThread soft-deletes an owned thread.

Returns:
  - error: ErrNotFound if missing or owned by another principal
*/
func (service *Service) DeleteThread(context context.Context, ownerID, id string) error {
	return service.threadRepo.SoftDelete(context, ownerID, id)
}
