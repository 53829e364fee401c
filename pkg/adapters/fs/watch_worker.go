package fs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"
	"time"

	"github.com/aretw0/lifecycle"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/fsnotify/fsnotify"

	"github.com/aretw0/jupypod/pkg/core"
)

// DefaultWatchPattern matches every stored notebook at any depth.
const DefaultWatchPattern = "**/*" + DefaultExtension

// Watch reports external changes to notebook files whose path, relative to the
// repository and slash separated, matches the doublestar pattern. Event ids are
// storage keys. The channel is closed when ctx is done.
func (r *Repository) Watch(ctx context.Context, pattern string) (<-chan core.Event, error) {
	if pattern == "" {
		pattern = DefaultWatchPattern
	}
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid watch pattern %q", pattern)
	}

	events := make(chan core.Event, 16)
	w := newWatchWorker(r, pattern, events)
	if err := w.start(ctx); err != nil {
		return nil, err
	}
	return events, nil
}

type watchWorker struct {
	repo      *Repository
	pattern   string
	events    chan core.Event
	watcher   *fsnotify.Watcher
	debouncer *debouncer
}

func newWatchWorker(repo *Repository, pattern string, events chan core.Event) *watchWorker {
	return &watchWorker{
		repo:    repo,
		pattern: pattern,
		events:  events,
	}
}

func (w *watchWorker) start(ctx context.Context) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := w.repo.recursiveAdd(watcher, w.repo.Path); err != nil {
		_ = watcher.Close()
		return err
	}

	w.watcher = watcher
	w.debouncer = newDebouncer(w.repo.config.Debounce)
	w.repo.setWatcherActive(true)

	lifecycle.Go(ctx, w.run, lifecycle.WithErrorHandler(func(err error) {
		w.report(fmt.Errorf("watcher failed: %w", err))
	}))
	return nil
}

// recursiveAdd registers dir and every non-hidden sub-directory.
func (r *Repository) recursiveAdd(watcher *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != r.Path && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		if err := watcher.Add(path); err != nil {
			return fmt.Errorf("failed to watch %s: %w", path, err)
		}
		return nil
	})
}

func (w *watchWorker) logger() *slog.Logger {
	return w.repo.config.Logger
}

// run is the main event loop for the watcher.
func (w *watchWorker) run(ctx context.Context) (err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			err = fmt.Errorf("watcher panic: %v", recovered)
			if l := w.logger(); l != nil {
				if l.Enabled(ctx, slog.LevelDebug) {
					l.Error("watcher panic", "error", err, "stack", string(debug.Stack()))
				} else {
					l.Error("watcher panic", "error", err)
				}
			}
		}
	}()
	defer close(w.events)
	defer w.repo.setWatcherActive(false)
	defer w.watcher.Close()

	err = w.mainEventLoop(ctx)

	// In-flight deliveries must finish before the events channel is closed.
	w.debouncer.stopAndWait(5 * time.Second)
	return err
}

func (w *watchWorker) mainEventLoop(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return errors.New("watcher events channel closed")
			}
			w.processFilesystemEvent(ctx, event)

		case wErr, ok := <-w.watcher.Errors:
			if !ok {
				if ctx.Err() != nil {
					return nil
				}
				return errors.New("watcher errors channel closed")
			}
			w.report(wErr)
		}
	}
}

// processFilesystemEvent filters, maps and debounces one fsnotify event.
func (w *watchWorker) processFilesystemEvent(ctx context.Context, event fsnotify.Event) bool {
	if l := w.logger(); l != nil {
		l.Debug("event received", "name", event.Name, "op", event.Op.String())
	}

	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.repo.recursiveAdd(w.watcher, event.Name); err != nil {
				w.report(err)
			}
			return false
		}
	}

	key, ok := w.repo.keyFor(event.Name)
	if !ok {
		return false
	}
	rel := key + w.repo.config.Extension
	if match, _ := doublestar.Match(w.pattern, rel); !match {
		return false
	}

	eType := mapEventType(event)
	if eType == "" {
		return false
	}

	w.debouncer.add(core.Event{
		Type:      eType,
		ID:        key,
		Timestamp: time.Now().Unix(),
	}, func(e core.Event) {
		// The channel may already be closed when the loop died on a panic.
		defer func() { _ = recover() }()
		select {
		case w.events <- e:
		case <-ctx.Done():
		}
	})
	return true
}

func (w *watchWorker) report(err error) {
	if l := w.logger(); l != nil {
		l.Error("fsnotify error", "error", err)
	}
	if w.repo.config.ErrorHandler != nil {
		w.repo.config.ErrorHandler(err)
	}
}

func mapEventType(event fsnotify.Event) core.EventType {
	switch {
	case event.Has(fsnotify.Create):
		return core.EventCreate
	case event.Has(fsnotify.Write):
		return core.EventModify
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		return core.EventDelete
	}
	return ""
}
