// Package fs stores notebooks as files in a directory, one file per storage key,
// and watches that directory for external edits.
package fs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/aretw0/jupypod/pkg/core"
)

// DefaultExtension is the file extension of stored notebooks.
const DefaultExtension = ".ipynb"

// ErrInvalidKey is returned for keys that would escape the storage directory.
var ErrInvalidKey = errors.New("invalid storage key")

// Repository implements core.Repository using the filesystem.
type Repository struct {
	Path   string
	config Config

	mu            sync.RWMutex
	watcherActive bool
	lastWrite     *time.Time
}

// Config holds the configuration for the filesystem repository.
type Config struct {
	Path      string
	MustExist bool
	ReadOnly  bool
	Extension string        // e.g. ".ipynb" (default)
	Debounce  time.Duration // watcher debounce window, 50ms when zero
	Logger    *slog.Logger
	// ErrorHandler receives watcher failures. When nil they are only logged.
	ErrorHandler func(error)
}

// NewRepository creates a new filesystem-backed repository.
func NewRepository(config Config) *Repository {
	if config.Extension == "" {
		config.Extension = DefaultExtension
	}
	if !strings.HasPrefix(config.Extension, ".") {
		config.Extension = "." + config.Extension
	}
	if config.Debounce <= 0 {
		config.Debounce = 50 * time.Millisecond
	}
	return &Repository{
		Path:   config.Path,
		config: config,
	}
}

// Initialize checks or creates the storage directory.
func (r *Repository) Initialize(ctx context.Context) error {
	if r.config.MustExist || r.config.ReadOnly {
		info, err := os.Stat(r.Path)
		if os.IsNotExist(err) {
			if r.config.ReadOnly && !r.config.MustExist {
				return nil
			}
			return fmt.Errorf("notebook directory does not exist: %s", r.Path)
		}
		if err != nil {
			return fmt.Errorf("%w: %w", core.ErrStorageUnavailable, err)
		}
		if !info.IsDir() {
			return fmt.Errorf("notebook path is not a directory: %s", r.Path)
		}
		return nil
	}

	if err := os.MkdirAll(r.Path, 0755); err != nil {
		return fmt.Errorf("failed to create notebook directory: %w", err)
	}
	return nil
}

// Put writes data atomically to <path>/<key><ext>.
func (r *Repository) Put(ctx context.Context, key string, data []byte) error {
	if r.config.ReadOnly {
		return core.ErrReadOnly
	}
	fullPath, err := r.filename(key)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	if err := writeNotebook(fullPath, data); err != nil {
		return err
	}

	r.recordWrite()
	if r.config.Logger != nil {
		r.config.Logger.Debug("notebook written", "key", key, "bytes", len(data))
	}
	return nil
}

// Get reads the notebook stored under key.
func (r *Repository) Get(ctx context.Context, key string) ([]byte, error) {
	fullPath, err := r.filename(key)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(fullPath)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", core.ErrNotFound, key)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", core.ErrStorageUnavailable, err)
	}
	return data, nil
}

// Delete removes the notebook stored under key.
func (r *Repository) Delete(ctx context.Context, key string) error {
	if r.config.ReadOnly {
		return core.ErrReadOnly
	}
	fullPath, err := r.filename(key)
	if err != nil {
		return err
	}

	if err := os.Remove(fullPath); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", core.ErrNotFound, key)
		}
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// Keys lists the stored notebooks, relative to the storage directory, sorted.
func (r *Repository) Keys(ctx context.Context) ([]string, error) {
	var keys []string
	err := filepath.WalkDir(r.Path, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			if path != r.Path && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if key, ok := r.keyFor(path); ok {
			keys = append(keys, key)
		}
		return nil
	})
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	slices.Sort(keys)
	return keys, nil
}

// filename maps a key to its file, rejecting keys that leave the directory.
func (r *Repository) filename(key string) (string, error) {
	if key == "" || filepath.IsAbs(key) {
		return "", fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	clean := filepath.Clean(filepath.FromSlash(key))
	if clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return filepath.Join(r.Path, clean+r.config.Extension), nil
}

// keyFor is the inverse of filename. Temporary files and other extensions are rejected.
func (r *Repository) keyFor(path string) (string, bool) {
	if strings.HasPrefix(filepath.Base(path), TempFilePrefix) {
		return "", false
	}
	if !strings.EqualFold(filepath.Ext(path), r.config.Extension) {
		return "", false
	}
	rel, err := filepath.Rel(r.Path, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return "", false
	}
	return filepath.ToSlash(strings.TrimSuffix(rel, filepath.Ext(rel))), true
}

var _ core.Repository = (*Repository)(nil)
var _ core.Watchable = (*Repository)(nil)
