// Package memory provides an in-process core.Repository, used by tests and
// ephemeral sessions that must not touch the disk.
package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/aretw0/introspection"

	"github.com/aretw0/jupypod/pkg/core"
)

// Repository keeps notebooks in a map.
type Repository struct {
	mu       sync.RWMutex
	data     map[string][]byte
	readOnly bool
}

// Option configures a Repository.
type Option func(*Repository)

// WithReadOnly rejects every write with core.ErrReadOnly.
func WithReadOnly(readOnly bool) Option {
	return func(r *Repository) {
		r.readOnly = readOnly
	}
}

// WithData seeds the repository. The values are copied.
func WithData(data map[string][]byte) Option {
	return func(r *Repository) {
		for k, v := range data {
			r.data[k] = slices.Clone(v)
		}
	}
}

// NewRepository creates an empty in-memory repository.
func NewRepository(opts ...Option) *Repository {
	r := &Repository{data: make(map[string][]byte)}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Repository) Initialize(ctx context.Context) error { return ctx.Err() }

func (r *Repository) Put(ctx context.Context, key string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if r.readOnly {
		return core.ErrReadOnly
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.data[key] = slices.Clone(data)
	return nil
}

func (r *Repository) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.data[key]
	if !ok {
		return nil, core.ErrNotFound
	}
	return slices.Clone(v), nil
}

func (r *Repository) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if r.readOnly {
		return core.ErrReadOnly
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.data[key]; !ok {
		return core.ErrNotFound
	}
	delete(r.data, key)
	return nil
}

// Keys returns the stored keys in sorted order.
func (r *Repository) Keys() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	keys := make([]string, 0, len(r.data))
	for k := range r.data {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// RepositoryState exposes internal state for observability.
type RepositoryState struct {
	Keys     []string `json:"keys"`
	ReadOnly bool     `json:"read_only"`
}

// State implements introspection.Introspectable.
func (r *Repository) State() any {
	return RepositoryState{Keys: r.Keys(), ReadOnly: r.readOnly}
}

// ComponentType implements introspection.Component.
func (r *Repository) ComponentType() string {
	return "memory"
}

var _ core.Repository = (*Repository)(nil)
var _ introspection.Introspectable = (*Repository)(nil)
var _ introspection.Component = (*Repository)(nil)
