package platform

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/aretw0/jupypod/pkg/adapters/bolt"
	"github.com/aretw0/jupypod/pkg/adapters/fs"
	"github.com/aretw0/jupypod/pkg/adapters/memory"
	"github.com/aretw0/jupypod/pkg/core"
)

// BoltFileName is the database file created inside the store directory by the
// bolt adapter when the URI does not name a file.
const BoltFileName = "notebooks.db"

// Init prepares the storage selected by the options and returns it.
// The 'uri' argument is adapter-specific: a directory for "fs", a directory or
// .db file for "bolt", ignored for "memory".
func Init(uri string, opts ...Option) (core.Repository, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return initRepository(uri, o)
}

func initRepository(uri string, o *options) (core.Repository, error) {
	if o.repository != nil {
		return o.repository, nil
	}

	var repo core.Repository
	switch o.adapter {
	case AdapterFS:
		repo = initFS(uri, o)
	case AdapterBolt:
		repo = initBolt(uri, o)
	case AdapterMemory:
		repo = memory.NewRepository(memory.WithReadOnly(o.readOnly()))
	default:
		return nil, fmt.Errorf("unknown adapter: %s", o.adapter)
	}

	if err := repo.Initialize(context.Background()); err != nil {
		return nil, err
	}
	return repo, nil
}

func (o *options) readOnly() bool {
	v, _ := o.config["read_only"].(bool)
	return v
}

// resolvePath applies the dev sandbox rules to a user supplied path.
func resolvePath(path string, o *options) string {
	tempDir, _ := o.config["temp_dir"].(bool)
	devSafety := true
	if val, ok := o.config["dev_safety"].(bool); ok {
		devSafety = val
	}

	// Read-only access is inherently safe.
	bypassSafety := o.readOnly() || !devSafety
	useTemp := tempDir || (IsDevRun() && !bypassSafety)
	resolved := ResolveStorePath(path, useTemp)

	if o.logger != nil && IsDevRun() {
		if bypassSafety {
			o.logger.Debug("dev sandbox bypassed", "path", resolved, "read_only", o.readOnly())
		} else {
			o.logger.Debug("dev sandbox enabled", "path", resolved)
		}
	}
	if o.logger != nil && useTemp && resolved != path {
		o.logger.Warn("running in SAFE MODE (Dev/Test)", "original_path", path, "resolved_path", resolved)
	}
	return resolved
}

// initFS builds the filesystem adapter.
func initFS(path string, o *options) core.Repository {
	mustExist, _ := o.config["must_exist"].(bool)
	debounce, _ := o.config["debounce"].(time.Duration)
	errorHandler, _ := o.config["watcher_error_handler"].(func(error))

	return fs.NewRepository(fs.Config{
		Path:         resolvePath(path, o),
		MustExist:    mustExist,
		ReadOnly:     o.readOnly(),
		Debounce:     debounce,
		Logger:       o.logger,
		ErrorHandler: errorHandler,
	})
}

// initBolt builds the bbolt adapter.
func initBolt(uri string, o *options) core.Repository {
	path := resolvePath(uri, o)
	if !strings.EqualFold(filepath.Ext(path), ".db") {
		path = filepath.Join(path, BoltFileName)
	}
	return bolt.NewRepository(bolt.Config{
		Path:     path,
		ReadOnly: o.readOnly(),
		Logger:   o.logger,
	})
}
