package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/and161185/fightnight/internal/errs"
)

// KVRepo implements KVRepository using PostgreSQL.
type KVRepo struct{ db *DB }

// NewKVRepo constructs a key-value repository.
func NewKVRepo(db *DB) *KVRepo { return &KVRepo{db: db} }

// Get selects the value stored under key.
func (r *KVRepo) Get(ctx context.Context, key string) (string, error) {
	const q = `SELECT value FROM kv_store WHERE key=$1`
	var v string
	if err := r.db.Pool.QueryRow(ctx, q, key).Scan(&v); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", errs.ErrNotFound
		}
		return "", fmt.Errorf("get %s: %w", key, err)
	}
	return v, nil
}

// Set upserts the value under key.
func (r *KVRepo) Set(ctx context.Context, key, value string) error {
	const q = `
INSERT INTO kv_store (key, value, updated_at) VALUES ($1, $2, now())
ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`
	if _, err := r.db.Pool.Exec(ctx, q, key, value); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

// Delete removes key if present.
func (r *KVRepo) Delete(ctx context.Context, key string) error {
	const q = `DELETE FROM kv_store WHERE key=$1`
	if _, err := r.db.Pool.Exec(ctx, q, key); err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}
