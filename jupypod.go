package jupypod

import (
	"log/slog"
	"time"

	"github.com/aretw0/jupypod/internal/platform"
	"github.com/aretw0/jupypod/pkg/canvas"
	"github.com/aretw0/jupypod/pkg/core"
	"github.com/aretw0/jupypod/pkg/notebook"
)

// --- Types ---

// Service is the notebook service returned by New.
type Service = notebook.Service

// Entity is a note or a group on the canvas.
type Entity = core.Entity

// --- Configuration ---

// Option defines a functional option for configuring Jupypod.
type Option = platform.Option

// Adapter names accepted by WithAdapter.
const (
	AdapterFS     = platform.AdapterFS
	AdapterBolt   = platform.AdapterBolt
	AdapterMemory = platform.AdapterMemory
)

// WithLogger sets the logger for the service and its storage adapter.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithRepository allows injecting a custom storage adapter.
func WithRepository(repo core.Repository) Option {
	return platform.WithRepository(repo)
}

// WithAdapter selects the storage adapter by name.
func WithAdapter(name string) Option {
	return platform.WithAdapter(name)
}

// WithStorageKey overrides the key the notebook is stored under.
func WithStorageKey(key string) Option {
	return platform.WithStorageKey(key)
}

// WithSerializer sets the storage format.
func WithSerializer(s notebook.Serializer) Option {
	return platform.WithSerializer(s)
}

// WithAlerter registers a callback for user-visible persistence errors.
func WithAlerter(fn func(error)) Option {
	return platform.WithAlerter(fn)
}

// WithIDGenerator replaces the random entity id generator.
func WithIDGenerator(gen canvas.IDGenerator) Option {
	return platform.WithIDGenerator(gen)
}

// WithForceTemp forces the use of a temporary directory (useful for testing).
func WithForceTemp(force bool) Option {
	return platform.WithForceTemp(force)
}

// WithMustExist requires the storage directory to exist already.
func WithMustExist(must bool) Option {
	return platform.WithMustExist(must)
}

// WithReadOnly opens the storage without ever writing to it.
func WithReadOnly(enabled bool) Option {
	return platform.WithReadOnly(enabled)
}

// WithDevSafety controls the temporary sandbox used under `go run` and `go test`.
func WithDevSafety(enabled bool) Option {
	return platform.WithDevSafety(enabled)
}

// WithWatchDebounce sets the quiet period of the fs watcher.
func WithWatchDebounce(d time.Duration) Option {
	return platform.WithWatchDebounce(d)
}

// WithWatcherErrorHandler registers a callback for watch loop failures.
func WithWatcherErrorHandler(fn func(error)) Option {
	return platform.WithWatcherErrorHandler(fn)
}

// WithRestore controls whether New loads the stored notebook.
func WithRestore(enabled bool) Option {
	return platform.WithRestore(enabled)
}

// --- Factory ---

// New creates a notebook service and restores the stored notebook.
func New(uri string, opts ...Option) (*Service, error) {
	return platform.New(uri, opts...)
}

// Init initializes a repository explicitly.
func Init(uri string, opts ...Option) (core.Repository, error) {
	return platform.Init(uri, opts...)
}

// --- Safety & Utils ---

// ResolveStorePath determines the actual storage path based on safety rules.
func ResolveStorePath(userPath string, forceTemp bool) string {
	return platform.ResolveStorePath(userPath, forceTemp)
}

// IsDevRun checks if the current process is running via `go run` or `go test`.
func IsDevRun() bool {
	return platform.IsDevRun()
}

// FindRoot looks upwards from startDir for a workspace root marker.
func FindRoot(startDir string) (string, error) {
	return platform.FindRoot(startDir)
}
