// Package bolt stores notebooks in a single bbolt database file, one key per
// notebook inside the "notebooks" bucket.
package bolt

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/aretw0/introspection"
	bbolt "go.etcd.io/bbolt"

	"github.com/aretw0/jupypod/pkg/core"
)

var bucketNotebooks = []byte("notebooks")

// DefaultTimeout bounds how long Open waits for the file lock held by another process.
const DefaultTimeout = 2 * time.Second

// Config holds the configuration for the bbolt repository.
type Config struct {
	Path     string // database file, e.g. ".jupypod/notebooks.db"
	ReadOnly bool
	Timeout  time.Duration
	Logger   *slog.Logger
}

// Repository implements core.Repository on top of bbolt.
type Repository struct {
	config Config

	mu sync.Mutex
	db *bbolt.DB
}

// NewRepository creates a repository. The database is opened by Initialize or
// on first use.
func NewRepository(config Config) *Repository {
	config.Path = strings.TrimSpace(config.Path)
	if config.Timeout <= 0 {
		config.Timeout = DefaultTimeout
	}
	return &Repository{config: config}
}

// Initialize opens the database and creates the notebooks bucket.
func (r *Repository) Initialize(ctx context.Context) error {
	_, err := r.open(ctx)
	return err
}

func (r *Repository) open(ctx context.Context) (*bbolt.DB, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.db != nil {
		return r.db, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.config.Path == "" {
		return nil, errors.New("bolt database path is required")
	}

	if r.config.ReadOnly {
		if _, err := os.Stat(r.config.Path); os.IsNotExist(err) {
			// Nothing stored yet; reads report ErrNotFound.
			return nil, nil
		}
	} else if err := os.MkdirAll(filepath.Dir(r.config.Path), 0o700); err != nil {
		return nil, err
	}

	db, err := bbolt.Open(r.config.Path, 0o600, &bbolt.Options{
		Timeout:  r.config.Timeout,
		ReadOnly: r.config.ReadOnly,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", core.ErrStorageUnavailable, err)
	}

	if !r.config.ReadOnly {
		err = db.Update(func(tx *bbolt.Tx) error {
			_, err := tx.CreateBucketIfNotExists(bucketNotebooks)
			return err
		})
		if err != nil {
			_ = db.Close()
			return nil, err
		}
	}

	if r.config.Logger != nil {
		r.config.Logger.Debug("bolt database opened", "path", r.config.Path, "read_only", r.config.ReadOnly)
	}
	r.db = db
	return db, nil
}

func (r *Repository) Put(ctx context.Context, key string, data []byte) error {
	if r.config.ReadOnly {
		return core.ErrReadOnly
	}
	db, err := r.open(ctx)
	if err != nil {
		return err
	}
	return db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketNotebooks).Put([]byte(key), data)
	})
}

func (r *Repository) Get(ctx context.Context, key string) ([]byte, error) {
	db, err := r.open(ctx)
	if err != nil {
		return nil, err
	}
	if db == nil {
		return nil, fmt.Errorf("%w: %s", core.ErrNotFound, key)
	}

	var out []byte
	err = db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketNotebooks)
		if b == nil {
			return core.ErrNotFound
		}
		v := b.Get([]byte(key))
		if v == nil {
			return core.ErrNotFound
		}
		out = append([]byte(nil), v...)
		return nil
	})
	if errors.Is(err, core.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", core.ErrNotFound, key)
	}
	return out, err
}

func (r *Repository) Delete(ctx context.Context, key string) error {
	if r.config.ReadOnly {
		return core.ErrReadOnly
	}
	db, err := r.open(ctx)
	if err != nil {
		return err
	}
	return db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketNotebooks)
		if b.Get([]byte(key)) == nil {
			return fmt.Errorf("%w: %s", core.ErrNotFound, key)
		}
		return b.Delete([]byte(key))
	})
}

// Keys lists the stored notebooks in byte order.
func (r *Repository) Keys(ctx context.Context) ([]string, error) {
	db, err := r.open(ctx)
	if err != nil || db == nil {
		return nil, err
	}
	var keys []string
	err = db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketNotebooks)
		if b == nil {
			return nil
		}
		return b.ForEach(func(k, _ []byte) error {
			keys = append(keys, string(k))
			return nil
		})
	})
	return keys, err
}

// Close releases the database file lock.
func (r *Repository) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.db == nil {
		return nil
	}
	err := r.db.Close()
	r.db = nil
	return err
}

// RepositoryState exposes internal state for observability.
type RepositoryState struct {
	Path     string `json:"path"`
	ReadOnly bool   `json:"read_only"`
	Open     bool   `json:"open"`
}

// State implements introspection.Introspectable.
func (r *Repository) State() any {
	r.mu.Lock()
	defer r.mu.Unlock()
	return RepositoryState{
		Path:     r.config.Path,
		ReadOnly: r.config.ReadOnly,
		Open:     r.db != nil,
	}
}

// ComponentType implements introspection.Component.
func (r *Repository) ComponentType() string {
	return "bolt"
}

var _ core.Repository = (*Repository)(nil)
var _ introspection.Introspectable = (*Repository)(nil)
var _ introspection.Component = (*Repository)(nil)
