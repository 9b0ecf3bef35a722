// Package db provides PostgreSQL-backed key/value storage for the version store.
package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DefaultTable is the table used when none is configured
const DefaultTable = "cv_builder_kv"

// DB wraps a PostgreSQL connection pool
type DB struct {
	pool  *pgxpool.Pool
	table string
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

	return &DB{pool: pool, table: DefaultTable}, nil
}

// Close closes the connection pool
func (db *DB) Close() {
	if db.pool != nil {
		db.pool.Close()
	}
}

// Migrate creates the key/value table if it does not exist
func (db *DB) Migrate(ctx context.Context) error {
	_, err := db.pool.Exec(ctx, fmt.Sprintf(
		`CREATE TABLE IF NOT EXISTS %s (
			key        TEXT PRIMARY KEY,
			value      JSONB NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`, pgx.Identifier{db.table}.Sanitize()))
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", db.table, err)
	}
	return nil
}
