package core

import "context"

// Repository defines the contract for the local key-value storage that holds
// serialized notebook documents. Each key maps to one whole document which is
// overwritten on every save.
type Repository interface {
	// Put stores data under key, replacing any previous value.
	Put(ctx context.Context, key string, data []byte) error

	// Get returns the value stored under key, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Delete removes the value stored under key.
	Delete(ctx context.Context, key string) error

	// Initialize ensures the underlying storage is ready (e.g., create directories, buckets).
	Initialize(ctx context.Context) error
}

// Watchable defines an interface for repositories that can report external changes.
type Watchable interface {
	Watch(ctx context.Context, pattern string) (<-chan Event, error)
}
