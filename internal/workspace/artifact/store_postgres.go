// Copyright (c) 2026 rPotential, Inc. All rights reserved.
// Author: platform-team@rpotential.ai

package artifact

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rpotential/workspace/internal/platform/dberr"
)

// PostgresArtifactRepository implements [ArtifactRepository] using pgx.
type PostgresArtifactRepository struct {
	pool *pgxpool.Pool
}

// NewArtifactRepository creates a new PostgreSQL implementation of [ArtifactRepository].
func NewArtifactRepository(pool *pgxpool.Pool) *PostgresArtifactRepository {
	return &PostgresArtifactRepository{pool: pool}
}

// messageid is nullable; coalesce keeps the scan target a plain string.
const artifactColumns = `id, ownerid, coalesce(messageid::text, ''), kind, title, content, language, version, createdat, updatedat`

// ListByOwner returns a page of the owner's artifacts, newest first.
func (repository *PostgresArtifactRepository) ListByOwner(ctx context.Context, ownerID string, limit, offset int) ([]*Artifact, int, error) {
	const query = `
		SELECT ` + artifactColumns + `, count(*) OVER() AS total
		FROM workspace.artifact
		WHERE ownerid = $1
		ORDER BY createdat DESC
		LIMIT $2 OFFSET $3`

	rows, err := repository.pool.Query(ctx, query, ownerID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_artifact_repo_list_failed: %w", err)
	}
	defer rows.Close()

	var (
		artifacts []*Artifact
		total     int
	)
	for rows.Next() {
		artifact := &Artifact{}
		err := rows.Scan(
			&artifact.ID,
			&artifact.OwnerID,
			&artifact.MessageID,
			&artifact.Kind,
			&artifact.Title,
			&artifact.Content,
			&artifact.Language,
			&artifact.Version,
			&artifact.CreatedAt,
			&artifact.UpdatedAt,
			&total,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("postgres_artifact_repo_list_scan_failed: %w", err)
		}
		artifacts = append(artifacts, artifact)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("postgres_artifact_repo_list_rows_failed: %w", err)
	}

	return artifacts, total, nil
}

// FindByID returns the owned artifact with the given ID.
func (repository *PostgresArtifactRepository) FindByID(ctx context.Context, ownerID, id string) (*Artifact, error) {
	const query = `
		SELECT ` + artifactColumns + `
		FROM workspace.artifact
		WHERE id = $1 AND ownerid = $2`

	artifact := &Artifact{}
	err := repository.pool.QueryRow(ctx, query, id, ownerID).Scan(
		&artifact.ID,
		&artifact.OwnerID,
		&artifact.MessageID,
		&artifact.Kind,
		&artifact.Title,
		&artifact.Content,
		&artifact.Language,
		&artifact.Version,
		&artifact.CreatedAt,
		&artifact.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap("Artifact", err)
	}

	return artifact, nil
}

// Create persists a new artifact record.
func (repository *PostgresArtifactRepository) Create(ctx context.Context, artifact *Artifact) error {
	const query = `
		INSERT INTO workspace.artifact (
			id, ownerid, messageid, kind, title, content, language, version, createdat, updatedat
		) VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6, $7, $8, $9, $10)`

	now := time.Now()
	artifact.CreatedAt = now
	artifact.UpdatedAt = now

	_, err := repository.pool.Exec(ctx, query,
		artifact.ID,
		artifact.OwnerID,
		artifact.MessageID,
		artifact.Kind,
		artifact.Title,
		artifact.Content,
		artifact.Language,
		artifact.Version,
		artifact.CreatedAt,
		artifact.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap("Artifact", fmt.Errorf("postgres_artifact_repo_create_failed: %w", err))
	}

	return nil
}

// Update syncs mutable fields and bumps the version counter in one statement,
// so concurrent updates never produce duplicate version numbers.
func (repository *PostgresArtifactRepository) Update(ctx context.Context, ownerID string, artifact *Artifact) error {
	const query = `
		UPDATE workspace.artifact
		SET title = $3, content = $4, language = $5, version = version + 1, updatedat = $6
		WHERE id = $1 AND ownerid = $2
		RETURNING version`

	artifact.UpdatedAt = time.Now()

	err := repository.pool.QueryRow(ctx, query,
		artifact.ID,
		ownerID,
		artifact.Title,
		artifact.Content,
		artifact.Language,
		artifact.UpdatedAt,
	).Scan(&artifact.Version)
	if err != nil {
		return dberr.Wrap("Artifact", err)
	}

	return nil
}

// Delete removes an owned artifact permanently.
func (repository *PostgresArtifactRepository) Delete(ctx context.Context, ownerID, id string) error {
	const query = `DELETE FROM workspace.artifact WHERE id = $1 AND ownerid = $2`

	tag, err := repository.pool.Exec(ctx, query, id, ownerID)
	if err != nil {
		return fmt.Errorf("postgres_artifact_repo_delete_failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return dberr.NotFound("Artifact")
	}

	return nil
}
