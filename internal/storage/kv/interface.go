// Package kv provides the durable key-value slots backing the watchlist.
package kv

import "context"

// Store defines a small durable key-value store.
type Store interface {
	// Read returns the value at key, or an error matching core.ErrKeyNotFound
	Read(ctx context.Context, key string) ([]byte, error)

	// Write stores value at key, replacing any previous value
	Write(ctx context.Context, key string, value []byte) error

	// Delete removes key. Deleting a missing key is not an error
	Delete(ctx context.Context, key string) error

	// Close releases backend resources
	Close() error
}
