package platform

import (
	"log/slog"
	"time"

	"github.com/aretw0/jupypod/pkg/canvas"
	"github.com/aretw0/jupypod/pkg/core"
	"github.com/aretw0/jupypod/pkg/notebook"
)

// Adapter names accepted by WithAdapter.
const (
	AdapterFS     = "fs"
	AdapterBolt   = "bolt"
	AdapterMemory = "memory"
)

// options holds the internal configuration for the notebook service.
type options struct {
	repository core.Repository
	logger     *slog.Logger
	adapter    string
	storageKey string
	serializer notebook.Serializer
	alerter    notebook.Alerter
	idgen      canvas.IDGenerator
	config     map[string]interface{}
}

// Option defines a functional option for configuring the notebook service.
type Option func(*options)

// defaultOptions returns the default configuration.
func defaultOptions() *options {
	return &options{
		adapter:    AdapterFS,
		storageKey: notebook.DefaultStorageKey,
		config:     make(map[string]interface{}),
	}
}

// WithLogger sets the logger for the service and its storage adapter.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithRepository injects a custom storage adapter. The adapter named by
// WithAdapter is then skipped.
func WithRepository(repo core.Repository) Option {
	return func(o *options) {
		o.repository = repo
	}
}

// WithAdapter selects the storage adapter by name ("fs", "bolt" or "memory").
// Defaults to "fs".
func WithAdapter(name string) Option {
	return func(o *options) {
		if name != "" {
			o.adapter = name
		}
	}
}

// WithStorageKey overrides the key the notebook is stored under.
func WithStorageKey(key string) Option {
	return func(o *options) {
		if key != "" {
			o.storageKey = key
		}
	}
}

// WithSerializer sets the storage format (JSON .ipynb by default).
func WithSerializer(s notebook.Serializer) Option {
	return func(o *options) {
		o.serializer = s
	}
}

// WithAlerter registers the user-visible error signal.
func WithAlerter(fn func(error)) Option {
	return func(o *options) {
		o.alerter = fn
	}
}

// WithIDGenerator replaces the NanoID entity id generator.
func WithIDGenerator(gen canvas.IDGenerator) Option {
	return func(o *options) {
		o.idgen = gen
	}
}

// WithForceTemp forces the use of a temporary directory (useful for testing).
func WithForceTemp(force bool) Option {
	return func(o *options) {
		o.config["temp_dir"] = force
	}
}

// WithMustExist requires the storage directory to exist already.
func WithMustExist(must bool) Option {
	return func(o *options) {
		o.config["must_exist"] = must
	}
}

// WithReadOnly enables read-only mode.
// In this mode:
// 1. Saves return core.ErrReadOnly and are reported through the alerter.
// 2. Directories and databases are never created.
// 3. Dev Safety Lock (go run temp dir) is BYPASSED (uses real path).
func WithReadOnly(enabled bool) Option {
	return func(o *options) {
		o.config["read_only"] = enabled
	}
}

// WithDevSafety controls the sandbox used when running via `go run` or `go test`.
// By default (true) storage is redirected to a temporary directory.
//
// CAUTION: Only disable this if you are sure your code is safe.
func WithDevSafety(enabled bool) Option {
	return func(o *options) {
		o.config["dev_safety"] = enabled
	}
}

// WithWatchDebounce sets the quiet period of the fs watcher.
func WithWatchDebounce(d time.Duration) Option {
	return func(o *options) {
		o.config["debounce"] = d
	}
}

// WithWatcherErrorHandler registers a callback for errors of the watch loop,
// which are otherwise only logged.
func WithWatcherErrorHandler(fn func(error)) Option {
	return func(o *options) {
		o.config["watcher_error_handler"] = fn
	}
}

// WithRestore controls whether New loads the stored notebook. Defaults to true.
func WithRestore(enabled bool) Option {
	return func(o *options) {
		o.config["restore"] = enabled
	}
}
