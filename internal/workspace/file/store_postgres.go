// Copyright (c) 2026 rPotential, Inc. All rights reserved.
// Author: platform-team@rpotential.ai

package file

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rpotential/workspace/internal/platform/dberr"
)

// PostgresFileRepository implements [FileRepository] using pgx.
type PostgresFileRepository struct {
	pool *pgxpool.Pool
}

// NewFileRepository creates a new PostgreSQL implementation of [FileRepository].
func NewFileRepository(pool *pgxpool.Pool) *PostgresFileRepository {
	return &PostgresFileRepository{pool: pool}
}

// threadid is nullable; coalesce keeps the scan target a plain string.
const fileColumns = `id, ownerid, coalesce(threadid::text, ''), name, storagekey, mimetype, sizebytes, createdat, updatedat`

// ListByOwner returns a page of the owner's file records, newest first.
func (repository *PostgresFileRepository) ListByOwner(ctx context.Context, ownerID string, limit, offset int) ([]*File, int, error) {
	const query = `
		SELECT ` + fileColumns + `, count(*) OVER() AS total
		FROM workspace.file
		WHERE ownerid = $1
		ORDER BY createdat DESC
		LIMIT $2 OFFSET $3`

	rows, err := repository.pool.Query(ctx, query, ownerID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_file_repo_list_failed: %w", err)
	}
	defer rows.Close()

	var (
		files []*File
		total int
	)
	for rows.Next() {
		file := &File{}
		err := rows.Scan(
			&file.ID,
			&file.OwnerID,
			&file.ThreadID,
			&file.Name,
			&file.StorageKey,
			&file.MimeType,
			&file.SizeBytes,
			&file.CreatedAt,
			&file.UpdatedAt,
			&total,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("postgres_file_repo_list_scan_failed: %w", err)
		}
		files = append(files, file)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("postgres_file_repo_list_rows_failed: %w", err)
	}

	return files, total, nil
}

// FindByID returns the owned file record with the given ID.
func (repository *PostgresFileRepository) FindByID(ctx context.Context, ownerID, id string) (*File, error) {
	const query = `
		SELECT ` + fileColumns + `
		FROM workspace.file
		WHERE id = $1 AND ownerid = $2`

	file := &File{}
	err := repository.pool.QueryRow(ctx, query, id, ownerID).Scan(
		&file.ID,
		&file.OwnerID,
		&file.ThreadID,
		&file.Name,
		&file.StorageKey,
		&file.MimeType,
		&file.SizeBytes,
		&file.CreatedAt,
		&file.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap("File", err)
	}

	return file, nil
}

// Create persists a new file metadata record.
func (repository *PostgresFileRepository) Create(ctx context.Context, file *File) error {
	const query = `
		INSERT INTO workspace.file (
			id, ownerid, threadid, name, storagekey, mimetype, sizebytes, createdat, updatedat
		) VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6, $7, $8, $9)`

	now := time.Now()
	file.CreatedAt = now
	file.UpdatedAt = now

	_, err := repository.pool.Exec(ctx, query,
		file.ID,
		file.OwnerID,
		file.ThreadID,
		file.Name,
		file.StorageKey,
		file.MimeType,
		file.SizeBytes,
		file.CreatedAt,
		file.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap("File", fmt.Errorf("postgres_file_repo_create_failed: %w", err))
	}

	return nil
}

// Update persists a rename or thread re-link. The storage key is immutable.
func (repository *PostgresFileRepository) Update(ctx context.Context, ownerID string, file *File) error {
	const query = `
		UPDATE workspace.file
		SET name = $3, threadid = NULLIF($4, ''), updatedat = $5
		WHERE id = $1 AND ownerid = $2`

	file.UpdatedAt = time.Now()

	tag, err := repository.pool.Exec(ctx, query,
		file.ID,
		ownerID,
		file.Name,
		file.ThreadID,
		file.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("postgres_file_repo_update_failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return dberr.NotFound("File")
	}

	return nil
}

// Delete removes an owned file record permanently.
func (repository *PostgresFileRepository) Delete(ctx context.Context, ownerID, id string) error {
	const query = `DELETE FROM workspace.file WHERE id = $1 AND ownerid = $2`

	tag, err := repository.pool.Exec(ctx, query, id, ownerID)
	if err != nil {
		return fmt.Errorf("postgres_file_repo_delete_failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return dberr.NotFound("File")
	}

	return nil
}
