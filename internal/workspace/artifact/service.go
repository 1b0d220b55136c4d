// Copyright (c) 2026 rPotential, Inc. All rights reserved.
// Author: platform-team@rpotential.ai

package artifact

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rpotential/workspace/internal/platform/validate"
	"github.com/rpotential/workspace/pkg/pointer"
	"github.com/rpotential/workspace/pkg/uuidv7"
)

const (
	FieldKind     = "kind"
	FieldTitle    = "title"
	FieldContent  = "content"
	FieldLanguage = "language"
)

// # Service Layer

// Service orchestrates the business logic for artifacts.
type Service struct {
	artifactRepo ArtifactRepository
	logger       *slog.Logger
}

// NewService constructs a new [Service] with its required repository.
func NewService(artifactRepo ArtifactRepository, logger *slog.Logger) *Service {
	return &Service{
		artifactRepo: artifactRepo,
		logger:       logger,
	}
}

// # Artifact Operations

/*
ListArtifacts retrieves a page of the principal's artifacts, newest first.

Returns:
  - []*Artifact: Matched artifacts
  - int: Total artifact count for the owner
  - error: Storage or execution errors
*/
func (service *Service) ListArtifacts(context context.Context, ownerID string, limit, offset int) ([]*Artifact, int, error) {
	return service.artifactRepo.ListByOwner(context, ownerID, limit, offset)
}

/*
GetArtifact retrieves a single owned artifact by its ID.

Returns:
  - *Artifact: The hydrated domain entity
  - error: ErrNotFound if missing or owned by another principal
*/
func (service *Service) GetArtifact(context context.Context, ownerID, id string) (*Artifact, error) {
	return service.artifactRepo.FindByID(context, ownerID, id)
}

// CreateArtifactInput holds the data required to record a new artifact.
type CreateArtifactInput struct {
	MessageID string
	Kind      string
	Title     string
	Content   string
	Language  string
}

/*
CreateArtifact records a new work product at version 1.

Returns:
  - *Artifact: The persisted entity
  - error: Validation or storage errors
*/
func (service *Service) CreateArtifact(context context.Context, ownerID string, input CreateArtifactInput) (*Artifact, error) {
	v := &validate.Validator{}
	if err := v.
		Required(FieldTitle, input.Title).
		MaxLen(FieldTitle, input.Title, 200).
		Required(FieldContent, input.Content).
		OneOf(FieldKind, input.Kind, KindCode, KindDocument, KindDiagram).
		MaxLen(FieldLanguage, input.Language, 40).
		Err(); err != nil {
		return nil, err
	}

	artifact := &Artifact{
		ID:        uuidv7.New(),
		OwnerID:   ownerID,
		MessageID: input.MessageID,
		Kind:      input.Kind,
		Title:     input.Title,
		Content:   input.Content,
		Language:  input.Language,
		Version:   1,
	}

	if err := service.artifactRepo.Create(context, artifact); err != nil {
		return nil, fmt.Errorf("artifact_service_create_failed: %w", err)
	}

	return artifact, nil
}

// UpdateArtifactInput holds the mutable artifact fields. Nil pointers mean "unchanged".
type UpdateArtifactInput struct {
	Title    *string
	Content  *string
	Language *string
}

/*
UpdateArtifact persists changes to an owned artifact and bumps its version.

Any change, however small, increments the version counter so clients can
detect staleness with a plain integer comparison.

Returns:
  - *Artifact: The updated entity with its new version
  - error: ErrNotFound if missing or owned by another principal
*/
func (service *Service) UpdateArtifact(context context.Context, ownerID, id string, input UpdateArtifactInput) (*Artifact, error) {
	artifact, err := service.artifactRepo.FindByID(context, ownerID, id)
	if err != nil {
		return nil, err
	}

	artifact.Title = pointer.Fallback(input.Title, artifact.Title)
	artifact.Content = pointer.Fallback(input.Content, artifact.Content)
	artifact.Language = pointer.Fallback(input.Language, artifact.Language)

	v := &validate.Validator{}
	if err := v.
		Required(FieldTitle, artifact.Title).
		MaxLen(FieldTitle, artifact.Title, 200).
		Required(FieldContent, artifact.Content).
		MaxLen(FieldLanguage, artifact.Language, 40).
		Err(); err != nil {
		return nil, err
	}

	if err := service.artifactRepo.Update(context, ownerID, artifact); err != nil {
		return nil, err
	}

	return artifact, nil
}

/*
DeleteArtifact permanently removes an owned artifact.

Returns:
  - error: ErrNotFound if missing or owned by another principal
*/
func (service *Service) DeleteArtifact(context context.Context, ownerID, id string) error {
	return service.artifactRepo.Delete(context, ownerID, id)
}
