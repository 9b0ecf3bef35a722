package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// KVStore adapts DB to the version store's Storage interface. A missing key reads as nil.
type KVStore struct {
	db *DB
}

// NewKVStore returns a KVStore over db
func NewKVStore(db *DB) *KVStore {
	return &KVStore{db: db}
}

// Get returns the stored JSON value for key
func (s *KVStore) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.db.pool.QueryRow(ctx,
		fmt.Sprintf(`SELECT value FROM %s WHERE key = $1`, pgx.Identifier{s.db.table}.Sanitize()),
		key,
	).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get %s: %w", key, err)
	}
	return value, nil
}

// Put upserts the JSON value for key
func (s *KVStore) Put(ctx context.Context, key string, value []byte) error {
	_, err := s.db.pool.Exec(ctx,
		fmt.Sprintf(`INSERT INTO %s (key, value)
		 VALUES ($1, $2)
		 ON CONFLICT (key) DO UPDATE SET value = $2, updated_at = NOW()`, pgx.Identifier{s.db.table}.Sanitize()),
		key, value,
	)
	if err != nil {
		return fmt.Errorf("failed to put %s: %w", key, err)
	}
	return nil
}
