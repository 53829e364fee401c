// Package lifecycle exposes repository change events as a lifecycle.Source.
package lifecycle

import (
	"context"
	"slices"

	"github.com/aretw0/lifecycle"

	"github.com/aretw0/jupypod/pkg/core"
)

type notebookSource struct {
	events <-chan core.Event
	out    chan lifecycle.Event
	keys   []string
	types  []core.EventType
}

// SourceOption narrows the events forwarded by a source.
type SourceOption func(*notebookSource)

// WithKeys forwards only events about the given storage keys.
func WithKeys(keys ...string) SourceOption {
	return func(s *notebookSource) {
		s.keys = append(s.keys, keys...)
	}
}

// WithTypes forwards only events of the given types.
func WithTypes(types ...core.EventType) SourceOption {
	return func(s *notebookSource) {
		s.types = append(s.types, types...)
	}
}

// NewSource creates a lifecycle.Source that emits notebook change events read
// from a core.Watchable channel. The output channel is closed once the input
// is drained or the context passed to Start is done.
func NewSource(events <-chan core.Event, opts ...SourceOption) lifecycle.Source {
	s := &notebookSource{
		events: events,
		out:    make(chan lifecycle.Event),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AsEvent recovers the notebook event carried by a lifecycle event.
func AsEvent(e lifecycle.Event) (core.Event, bool) {
	ev, ok := e.(core.Event)
	return ev, ok
}

func (s *notebookSource) Events() <-chan lifecycle.Event {
	return s.out
}

func (s *notebookSource) Start(ctx context.Context) error {
	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer close(s.out)
		for {
			select {
			case <-ctx.Done():
				return nil
			case e, ok := <-s.events:
				if !ok {
					return nil
				}
				if !s.accepts(e) {
					continue
				}
				// core.Event satisfies lifecycle.Event through String().
				select {
				case s.out <- e:
				case <-ctx.Done():
					return nil
				}
			}
		}
	})
	return nil
}

func (s *notebookSource) accepts(e core.Event) bool {
	if len(s.keys) > 0 && !slices.Contains(s.keys, e.ID) {
		return false
	}
	if len(s.types) > 0 && !slices.Contains(s.types, e.Type) {
		return false
	}
	return true
}
