// Package metadata is the client's local key/value persistence. The token
// store keeps the credential and the cached profile in it.
//
// Three implementations share the Repository contract:
//
//   - SQLiteRepository: durable, backed by the local SQLite database
//   - MemoryRepository: process-local, for tests and throwaway sessions
//   - EncryptedRepository: decorator sealing every value with AES-GCM
//
// Get returns (nil, nil) for a missing key.
package metadata

import (
	"context"
)

type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	// SetMany writes all pairs atomically.
	SetMany(ctx context.Context, values map[string][]byte) error
	// Delete removes the given keys; missing keys are not an error.
	Delete(ctx context.Context, keys ...string) error
	List(ctx context.Context) (map[string][]byte, error)
	Clear(ctx context.Context) error
}
