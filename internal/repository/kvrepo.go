// Package repository defines storage interfaces implemented by concrete backends.
package repository

import "context"

// KVRepository is the opaque string-keyed store the client persists state into.
type KVRepository interface {
	// Get returns the value stored under key or errs.ErrNotFound.
	Get(ctx context.Context, key string) (string, error)
	// Set inserts or replaces the value under key.
	Set(ctx context.Context, key, value string) error
	// Delete removes key; deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}
