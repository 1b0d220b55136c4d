// Copyright (c) 2026 rPotential, Inc. All rights reserved.
// Author: platform-team@rpotential.ai

package reaction

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rpotential/workspace/internal/platform/dberr"
)

// PostgresReactionRepository implements [ReactionRepository] using pgx.
//
// Every query joins the target message to its owning thread and applies the
// principal's ID there, proving visibility and scoping in one statement.
type PostgresReactionRepository struct {
	pool *pgxpool.Pool
}

// NewReactionRepository creates a new PostgreSQL implementation of [ReactionRepository].
func NewReactionRepository(pool *pgxpool.Pool) *PostgresReactionRepository {
	return &PostgresReactionRepository{pool: pool}
}

// messageVisible proves the message sits in a live thread owned by ownerID.
func (repository *PostgresReactionRepository) messageVisible(ctx context.Context, ownerID, messageID string) (bool, error) {
	const query = `
		SELECT EXISTS (
			SELECT 1
			FROM workspace.message m
			JOIN workspace.thread t ON t.id = m.threadid
			WHERE m.id = $1 AND t.ownerid = $2 AND t.deletedat IS NULL
		)`

	var visible bool
	if err := repository.pool.QueryRow(ctx, query, messageID, ownerID).Scan(&visible); err != nil {
		return false, fmt.Errorf("postgres_reaction_repo_visibility_failed: %w", err)
	}

	return visible, nil
}

// ListByMessage returns all reactions on a visible message, oldest first.
func (repository *PostgresReactionRepository) ListByMessage(ctx context.Context, ownerID, messageID string) ([]*Reaction, error) {
	visible, err := repository.messageVisible(ctx, ownerID, messageID)
	if err != nil {
		return nil, err
	}
	if !visible {
		return nil, dberr.NotFound("Message")
	}

	const query = `
		SELECT id, messageid, userid, emoji, createdat
		FROM workspace.reaction
		WHERE messageid = $1
		ORDER BY createdat ASC`

	rows, err := repository.pool.Query(ctx, query, messageID)
	if err != nil {
		return nil, fmt.Errorf("postgres_reaction_repo_list_failed: %w", err)
	}
	defer rows.Close()

	var reactions []*Reaction
	for rows.Next() {
		reaction := &Reaction{}
		err := rows.Scan(
			&reaction.ID,
			&reaction.MessageID,
			&reaction.UserID,
			&reaction.Emoji,
			&reaction.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("postgres_reaction_repo_list_scan_failed: %w", err)
		}
		reactions = append(reactions, reaction)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres_reaction_repo_list_rows_failed: %w", err)
	}

	return reactions, nil
}

// Add records a reaction tuple on a visible message. The unique index on
// (messageid, userid, emoji) surfaces duplicates as Conflict.
func (repository *PostgresReactionRepository) Add(ctx context.Context, ownerID string, reaction *Reaction) error {
	visible, err := repository.messageVisible(ctx, ownerID, reaction.MessageID)
	if err != nil {
		return err
	}
	if !visible {
		return dberr.NotFound("Message")
	}

	const query = `
		INSERT INTO workspace.reaction (id, messageid, userid, emoji, createdat)
		VALUES ($1, $2, $3, $4, $5)`

	reaction.CreatedAt = time.Now()

	_, err = repository.pool.Exec(ctx, query,
		reaction.ID,
		reaction.MessageID,
		reaction.UserID,
		reaction.Emoji,
		reaction.CreatedAt,
	)
	if err != nil {
		return dberr.Wrap("Reaction", err)
	}

	return nil
}

// Remove deletes the principal's own reaction tuple.
func (repository *PostgresReactionRepository) Remove(ctx context.Context, ownerID, messageID, emoji string) error {
	const query = `
		DELETE FROM workspace.reaction
		WHERE messageid = $1 AND userid = $2 AND emoji = $3`

	tag, err := repository.pool.Exec(ctx, query, messageID, ownerID, emoji)
	if err != nil {
		return fmt.Errorf("postgres_reaction_repo_remove_failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return dberr.NotFound("Reaction")
	}

	return nil
}
