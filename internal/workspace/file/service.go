// Copyright (c) 2026 rPotential, Inc. All rights reserved.
// Author: platform-team@rpotential.ai

package file

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/rpotential/workspace/internal/platform/validate"
	"github.com/rpotential/workspace/pkg/pointer"
	"github.com/rpotential/workspace/pkg/slug"
	"github.com/rpotential/workspace/pkg/uuidv7"
)

const (
	FieldName     = "name"
	FieldMimeType = "mime_type"
	FieldSize     = "size_bytes"
)

// maxFileSizeBytes is the bookkeeping cap for a single upload (100 MiB).
const maxFileSizeBytes = 100 << 20

// # Service Layer

// Service orchestrates the business logic for file metadata.
type Service struct {
	fileRepo FileRepository
	logger   *slog.Logger
}

// NewService constructs a new [Service] with its required repository.
func NewService(fileRepo FileRepository, logger *slog.Logger) *Service {
	return &Service{
		fileRepo: fileRepo,
		logger:   logger,
	}
}

// # File Operations

/*
ListFiles retrieves a page of the principal's file records, newest first.

Returns:
  - []*File: Matched records
  - int: Total file count for the owner
  - error: Storage or execution errors
*/
func (service *Service) ListFiles(context context.Context, ownerID string, limit, offset int) ([]*File, int, error) {
	return service.fileRepo.ListByOwner(context, ownerID, limit, offset)
}

/*
GetFile retrieves a single owned file record by its ID.

Returns:
  - *File: The hydrated domain entity
  - error: ErrNotFound if missing or owned by another principal
*/
func (service *Service) GetFile(context context.Context, ownerID, id string) (*File, error) {
	return service.fileRepo.FindByID(context, ownerID, id)
}

// CreateFileInput holds the data required to register an upload.
type CreateFileInput struct {
	ThreadID  string
	Name      string
	MimeType  string
	SizeBytes int64
}

/*
CreateFile registers upload metadata and derives the storage key.

The storage key is the slugged display name prefixed with the record ID, so
two files named identically never collide in the object store.

Returns:
  - *File: The persisted entity
  - error: Validation or storage errors
*/
func (service *Service) CreateFile(context context.Context, ownerID string, input CreateFileInput) (*File, error) {
	v := &validate.Validator{}
	if err := v.
		Required(FieldName, input.Name).
		MaxLen(FieldName, input.Name, 255).
		Required(FieldMimeType, input.MimeType).
		Custom(FieldSize, input.SizeBytes <= 0, "must be positive").
		Custom(FieldSize, input.SizeBytes > maxFileSizeBytes, "exceeds the 100 MiB limit").
		Err(); err != nil {
		return nil, err
	}

	id := uuidv7.New()
	storageKey := id + "/" + slug.From(input.Name)

	file := &File{
		ID:         id,
		OwnerID:    ownerID,
		ThreadID:   input.ThreadID,
		Name:       strings.TrimSpace(input.Name),
		StorageKey: storageKey,
		MimeType:   input.MimeType,
		SizeBytes:  input.SizeBytes,
	}

	if err := service.fileRepo.Create(context, file); err != nil {
		return nil, fmt.Errorf("file_service_create_failed: %w", err)
	}

	return file, nil
}

// UpdateFileInput holds the mutable file fields. Nil pointers mean "unchanged".
type UpdateFileInput struct {
	Name     *string
	ThreadID *string
}

/*
UpdateFile renames an owned file record or re-links it to a thread.
The storage key never changes.

Returns:
  - *File: The updated entity
  - error: ErrNotFound if missing or owned by another principal
*/
func (service *Service) UpdateFile(context context.Context, ownerID, id string, input UpdateFileInput) (*File, error) {
	file, err := service.fileRepo.FindByID(context, ownerID, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		file.Name = strings.TrimSpace(*input.Name)
	}
	file.ThreadID = pointer.Fallback(input.ThreadID, file.ThreadID)

	v := &validate.Validator{}
	if err := v.
		Required(FieldName, file.Name).
		MaxLen(FieldName, file.Name, 255).
		Err(); err != nil {
		return nil, err
	}

	if err := service.fileRepo.Update(context, ownerID, file); err != nil {
		return nil, err
	}

	return file, nil
}

/*
DeleteFile permanently removes an owned file record.

Returns:
  - error: ErrNotFound if missing or owned by another principal
*/
func (service *Service) DeleteFile(context context.Context, ownerID, id string) error {
	return service.fileRepo.Delete(context, ownerID, id)
}
