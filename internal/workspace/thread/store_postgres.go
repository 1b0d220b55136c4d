// Copyright (c) 2026 rPotential, Inc. All rights reserved.
// Author: platform-team@rpotential.ai

package thread

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rpotential/workspace/internal/platform/dberr"
)

// PostgresThreadRepository implements [ThreadRepository] using pgx.
//
// # Ownership Scoping
//
// Every per-row query carries `ownerid = $n` next to the primary key match.
// A cross-owner access therefore scans zero rows and surfaces as NotFound,
// never as Forbidden.
type PostgresThreadRepository struct {
	pool *pgxpool.Pool
}

// NewThreadRepository creates a new PostgreSQL implementation of [ThreadRepository].
func NewThreadRepository(pool *pgxpool.Pool) *PostgresThreadRepository {
	return &PostgresThreadRepository{pool: pool}
}

// ListByOwner returns a page of the owner's live threads, newest first.
func (repository *PostgresThreadRepository) ListByOwner(ctx context.Context, ownerID string, limit, offset int) ([]*Thread, int, error) {
	const query = `
		SELECT id, ownerid, title, systemprompt, createdat, updatedat, count(*) OVER() AS total
		FROM workspace.thread
		WHERE ownerid = $1 AND deletedat IS NULL
		ORDER BY createdat DESC
		LIMIT $2 OFFSET $3`

	rows, err := repository.pool.Query(ctx, query, ownerID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_thread_repo_list_failed: %w", err)
	}
	defer rows.Close()

	var (
		threads []*Thread
		total   int
	)
	for rows.Next() {
		thread := &Thread{}
		err := rows.Scan(
			&thread.ID,
			&thread.OwnerID,
			&thread.Title,
			&thread.SystemPrompt,
			&thread.CreatedAt,
			&thread.UpdatedAt,
			&total,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("postgres_thread_repo_list_scan_failed: %w", err)
		}
		threads = append(threads, thread)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("postgres_thread_repo_list_rows_failed: %w", err)
	}

	return threads, total, nil
}

// FindByID returns the owned thread with the given ID.
func (repository *PostgresThreadRepository) FindByID(ctx context.Context, ownerID, id string) (*Thread, error) {
	const query = `
		SELECT id, ownerid, title, systemprompt, createdat, updatedat
		FROM workspace.thread
		WHERE id = $1 AND ownerid = $2 AND deletedat IS NULL`

	thread := &Thread{}
	err := repository.pool.QueryRow(ctx, query, id, ownerID).Scan(
		&thread.ID,
		&thread.OwnerID,
		&thread.Title,
		&thread.SystemPrompt,
		&thread.CreatedAt,
		&thread.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap("Thread", err)
	}

	return thread, nil
}

// Create persists a new thread record.
func (repository *PostgresThreadRepository) Create(ctx context.Context, thread *Thread) error {
	const query = `
		INSERT INTO workspace.thread (id, ownerid, title, systemprompt, createdat, updatedat)
		VALUES ($1, $2, $3, $4, $5, $6)`

	now := time.Now()
	thread.CreatedAt = now
	thread.UpdatedAt = now

	_, err := repository.pool.Exec(ctx, query,
		thread.ID,
		thread.OwnerID,
		thread.Title,
		thread.SystemPrompt,
		thread.CreatedAt,
		thread.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap("Thread", fmt.Errorf("postgres_thread_repo_create_failed: %w", err))
	}

	return nil
}

// Update syncs the mutable fields of an owned thread.
func (repository *PostgresThreadRepository) Update(ctx context.Context, ownerID string, thread *Thread) error {
	const query = `
		UPDATE workspace.thread
		SET title = $3, systemprompt = $4, updatedat = $5
		WHERE id = $1 AND ownerid = $2 AND deletedat IS NULL`

	thread.UpdatedAt = time.Now()

	tag, err := repository.pool.Exec(ctx, query,
		thread.ID,
		ownerID,
		thread.Title,
		thread.SystemPrompt,
		thread.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("postgres_thread_repo_update_failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return dberr.NotFound("Thread")
	}

	return nil
}

// SoftDelete marks an owned thread as deleted.
func (repository *PostgresThreadRepository) SoftDelete(ctx context.Context, ownerID, id string) error {
	const query = `
		UPDATE workspace.thread
		SET deletedat = now(), updatedat = now()
		WHERE id = $1 AND ownerid = $2 AND deletedat IS NULL`

	tag, err := repository.pool.Exec(ctx, query, id, ownerID)
	if err != nil {
		return fmt.Errorf("postgres_thread_repo_soft_delete_failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return dberr.NotFound("Thread")
	}

	return nil
}

// IsOwned reports whether a live thread belongs to ownerID.
func (repository *PostgresThreadRepository) IsOwned(ctx context.Context, ownerID, id string) (bool, error) {
	const query = `
		SELECT EXISTS (
			SELECT 1 FROM workspace.thread
			WHERE id = $1 AND ownerid = $2 AND deletedat IS NULL
		)`

	var owned bool
	if err := repository.pool.QueryRow(ctx, query, id, ownerID).Scan(&owned); err != nil {
		return false, fmt.Errorf("postgres_thread_repo_is_owned_failed: %w", err)
	}

	return owned, nil
}
