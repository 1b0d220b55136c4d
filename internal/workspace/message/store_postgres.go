// Copyright (c) 2026 rPotential, Inc. All rights reserved.
// Author: platform-team@rpotential.ai

package message

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rpotential/workspace/internal/platform/dberr"
)

// PostgresMessageRepository implements [MessageRepository] using pgx.
type PostgresMessageRepository struct {
	pool *pgxpool.Pool
}

// NewMessageRepository creates a new PostgreSQL implementation of [MessageRepository].
func NewMessageRepository(pool *pgxpool.Pool) *PostgresMessageRepository {
	return &PostgresMessageRepository{pool: pool}
}

// ListByThread returns a page of a thread's messages, oldest first.
func (repository *PostgresMessageRepository) ListByThread(ctx context.Context, threadID string, limit, offset int) ([]*Message, int, error) {
	const query = `
		SELECT id, threadid, role, content, modelname, prompttokens, completiontokens, createdat,
		       count(*) OVER() AS total
		FROM workspace.message
		WHERE threadid = $1
		ORDER BY createdat ASC
		LIMIT $2 OFFSET $3`

	rows, err := repository.pool.Query(ctx, query, threadID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_message_repo_list_failed: %w", err)
	}
	defer rows.Close()

	var (
		messages []*Message
		total    int
	)
	for rows.Next() {
		message := &Message{}
		err := rows.Scan(
			&message.ID,
			&message.ThreadID,
			&message.Role,
			&message.Content,
			&message.ModelName,
			&message.PromptTokens,
			&message.CompletionTokens,
			&message.CreatedAt,
			&total,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("postgres_message_repo_list_scan_failed: %w", err)
		}
		messages = append(messages, message)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("postgres_message_repo_list_rows_failed: %w", err)
	}

	return messages, total, nil
}

// FindByID returns a message scoped to its thread.
func (repository *PostgresMessageRepository) FindByID(ctx context.Context, threadID, id string) (*Message, error) {
	const query = `
		SELECT id, threadid, role, content, modelname, prompttokens, completiontokens, createdat
		FROM workspace.message
		WHERE id = $1 AND threadid = $2`

	message := &Message{}
	err := repository.pool.QueryRow(ctx, query, id, threadID).Scan(
		&message.ID,
		&message.ThreadID,
		&message.Role,
		&message.Content,
		&message.ModelName,
		&message.PromptTokens,
		&message.CompletionTokens,
		&message.CreatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap("Message", err)
	}

	return message, nil
}

// Create persists a new message record.
func (repository *PostgresMessageRepository) Create(ctx context.Context, message *Message) error {
	const query = `
		INSERT INTO workspace.message (
			id, threadid, role, content, modelname, prompttokens, completiontokens, createdat
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	message.CreatedAt = time.Now()

	_, err := repository.pool.Exec(ctx, query,
		message.ID,
		message.ThreadID,
		message.Role,
		message.Content,
		message.ModelName,
		message.PromptTokens,
		message.CompletionTokens,
		message.CreatedAt,
	)
	if err != nil {
		return dberr.Wrap("Message", fmt.Errorf("postgres_message_repo_create_failed: %w", err))
	}

	return nil
}

// Delete removes a message permanently. Reactions cascade at the schema level.
func (repository *PostgresMessageRepository) Delete(ctx context.Context, threadID, id string) error {
	const query = `DELETE FROM workspace.message WHERE id = $1 AND threadid = $2`

	tag, err := repository.pool.Exec(ctx, query, id, threadID)
	if err != nil {
		return fmt.Errorf("postgres_message_repo_delete_failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return dberr.NotFound("Message")
	}

	return nil
}
