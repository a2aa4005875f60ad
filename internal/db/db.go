// Package db provides PostgreSQL persistence for query history. Each career
// path request and its response are recorded for later analysis; the store
// is optional and the API works without it.
package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/msaswata15/career-navigation-platform/internal/types"
)

// DB wraps a PostgreSQL connection pool
type DB struct {
	pool *pgxpool.Pool
}

// Connect establishes a connection pool to the database
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes the connection pool
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// EnsureSchema creates the query history table if it does not exist.
func (db *DB) EnsureSchema(ctx context.Context) error {
	_, err := db.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS path_queries (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			current_role TEXT NOT NULL,
			target_role TEXT,
			skill_count INT NOT NULL DEFAULT 0,
			path_count INT,
			cross_industry BOOLEAN,
			response JSONB,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			completed_at TIMESTAMPTZ
		)`)
	if err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}
	return nil
}

// RecordQuery creates a query history record and returns its ID.
func (db *DB) RecordQuery(ctx context.Context, req types.CareerPathRequest) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO path_queries (current_role, target_role, skill_count)
		 VALUES ($1, $2, $3)
		 RETURNING id`,
		req.CurrentRole, req.TargetRole, len(req.UserSkills),
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to record query: %w", err)
	}
	return id, nil
}

// SaveResponse stores the response produced for a query.
func (db *DB) SaveResponse(ctx context.Context, queryID uuid.UUID, resp *types.CareerPathResponse) error {
	jsonBytes, err := json.Marshal(resp)
	if err != nil {
		return fmt.Errorf("failed to marshal response: %w", err)
	}

	crossIndustry := resp.RecommendedPath != nil && resp.RecommendedPath.IsCrossIndustry

	_, err = db.pool.Exec(ctx,
		`UPDATE path_queries
		 SET path_count = $1, cross_industry = $2, response = $3, completed_at = NOW()
		 WHERE id = $4`,
		len(resp.Paths), crossIndustry, jsonBytes, queryID,
	)
	if err != nil {
		return fmt.Errorf("failed to save response: %w", err)
	}
	return nil
}

// GetResponse retrieves a stored response by query ID. Returns nil when the
// query has no stored response.
func (db *DB) GetResponse(ctx context.Context, queryID uuid.UUID) (*types.CareerPathResponse, error) {
	var content []byte
	err := db.pool.QueryRow(ctx,
		`SELECT response FROM path_queries WHERE id = $1`,
		queryID,
	).Scan(&content)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get response: %w", err)
	}
	if content == nil {
		return nil, nil
	}

	var resp types.CareerPathResponse
	if err := json.Unmarshal(content, &resp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	return &resp, nil
}
