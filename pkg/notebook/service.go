package notebook

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/aretw0/jupypod/pkg/canvas"
	"github.com/aretw0/jupypod/pkg/core"
)

// DefaultStorageKey is the fixed key under which the notebook is stored.
const DefaultStorageKey = "jupypod-notebook"

// Alerter surfaces an error to the user (a dialog, a status line). It must not block.
type Alerter func(err error)

// Service drives a canvas.Store from render-surface gestures and keeps the
// stored notebook in sync with it.
type Service struct {
	store      *canvas.Store
	repo       core.Repository
	key        string
	serializer Serializer
	alert      Alerter
	logger     *slog.Logger
	newID      canvas.IDGenerator

	metadata  map[string]any
	selection string
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger for the service and the store it creates.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithStorageKey overrides DefaultStorageKey.
func WithStorageKey(key string) Option {
	return func(s *Service) {
		if key != "" {
			s.key = key
		}
	}
}

// WithSerializer sets the format used to store the notebook (JSON by default).
func WithSerializer(ser Serializer) Option {
	return func(s *Service) {
		if ser != nil {
			s.serializer = ser
		}
	}
}

// WithAlerter registers the user-visible error signal.
func WithAlerter(a Alerter) Option {
	return func(s *Service) {
		s.alert = a
	}
}

// WithIDGenerator sets the generator used for new entities and for ids
// regenerated on load.
func WithIDGenerator(gen canvas.IDGenerator) Option {
	return func(s *Service) {
		s.newID = gen
	}
}

// WithStore makes the service drive an existing store instead of creating one.
func WithStore(store *canvas.Store) Option {
	return func(s *Service) {
		s.store = store
	}
}

// NewService creates a Service persisting through repo. The canvas starts empty;
// call Restore to load the stored notebook.
func NewService(repo core.Repository, opts ...Option) *Service {
	s := &Service{
		repo:       repo,
		key:        DefaultStorageKey,
		serializer: NewJSONSerializer(),
		newID:      canvas.NanoID,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.newID == nil {
		s.newID = canvas.NanoID
	}
	if s.store == nil {
		s.store = canvas.NewStore(canvas.WithIDGenerator(s.newID), canvas.WithLogger(s.logger))
	}
	return s
}

// Store returns the underlying canvas state.
func (s *Service) Store() *canvas.Store { return s.store }

// Key returns the storage key.
func (s *Service) Key() string { return s.key }

// Selection returns the id of the primary selected entity, if any.
func (s *Service) Selection() string { return s.selection }

// Restore replaces the canvas with the stored notebook. A missing notebook
// leaves the canvas empty and is not an error.
func (s *Service) Restore(ctx context.Context) error {
	data, err := s.repo.Get(ctx, s.key)
	if errors.Is(err, core.ErrNotFound) {
		s.debug("no stored notebook", "key", s.key)
		return nil
	}
	if err != nil {
		return s.fail("failed to load notebook", storageError(err))
	}

	doc, err := s.parse(data)
	if err != nil {
		return s.fail("stored notebook is malformed", err)
	}
	s.load(*doc)
	s.debug("notebook restored", "key", s.key, "cells", len(doc.Cells))
	return nil
}

// Save writes the current notes to storage, replacing the stored notebook.
func (s *Service) Save(ctx context.Context) error {
	data, err := s.serializer.Serialize(s.document())
	if err != nil {
		return s.fail("failed to serialize notebook", err)
	}
	if err := s.repo.Put(ctx, s.key, data); err != nil {
		return s.fail("failed to save notebook", storageError(err))
	}
	return nil
}

// Reset replaces the canvas with entities and saves.
func (s *Service) Reset(ctx context.Context, entities []core.Entity) error {
	s.store.Replace(entities)
	s.selection = ""
	return s.Save(ctx)
}

// AddNode creates an entity and saves.
func (s *Service) AddNode(ctx context.Context, kind core.Kind, position core.Point, parentID string) (core.Entity, error) {
	e := s.store.Create(kind, position, parentID)
	s.debug("node added", "id", e.ID, "kind", e.Kind)
	return e, s.Save(ctx)
}

// RemoveNode deletes an entity and saves. It reports false for unknown ids.
func (s *Service) RemoveNode(ctx context.Context, id string) (bool, error) {
	if !s.store.Remove(id) {
		return false, nil
	}
	if s.selection == id {
		s.selection = ""
	}
	return true, s.Save(ctx)
}

// UpdateContent stores the editor document of a note and saves.
func (s *Service) UpdateContent(ctx context.Context, id string, content json.RawMessage) (bool, error) {
	if !s.store.UpdateContent(id, content) {
		return false, nil
	}
	return true, s.Save(ctx)
}

// RenameGroup changes a group name. Groups are not persisted, so nothing is saved.
func (s *Service) RenameGroup(id, name string) bool {
	return s.store.Rename(id, name)
}

// OnNodesChange applies a batch of geometry changes from the render surface and
// tracks the primary selection. The notebook is saved when the batch removed
// something.
func (s *Service) OnNodesChange(ctx context.Context, changes []core.Change) error {
	removed := false
	for _, c := range changes {
		switch c.Type {
		case core.ChangeSelect:
			if c.Selected {
				s.selection = c.ID
			} else if s.selection == c.ID {
				s.selection = ""
			}
		case core.ChangeRemove:
			if _, ok := s.store.Get(c.ID); ok {
				removed = true
			}
			if s.selection == c.ID {
				s.selection = ""
			}
		}
	}

	s.store.ApplyGeometryChanges(changes)
	if removed {
		return s.Save(ctx)
	}
	return nil
}

// OnNodeDrag highlights the group the dragged entity would be dropped into.
func (s *Service) OnNodeDrag(id string, point core.Point) {
	if g, ok := s.store.GroupAt(point, id); ok {
		s.store.SetHighlight(g.ID)
		return
	}
	s.store.ClearHighlight()
}

// OnNodeDragStop drops the entity at point: it is moved into the group under
// the pointer (or back to the top level), the receiving group is fitted to its
// children and the notebook is saved.
func (s *Service) OnNodeDragStop(ctx context.Context, id string, point core.Point) error {
	s.store.ClearHighlight()

	e, ok := s.store.Get(id)
	if !ok {
		return nil
	}

	target := ""
	if g, ok := s.store.GroupAt(point, id); ok {
		target = g.ID
	}
	if e.ParentID != target {
		s.store.MoveIntoScope([]string{id}, target)
		s.debug("node reparented", "id", id, "from", e.ParentID, "to", target)
	}
	if target != "" {
		s.store.AutoLayout(target)
	}
	return s.Save(ctx)
}

// OnPaneLeave clears any drag-hover highlight.
func (s *Service) OnPaneLeave() {
	s.store.ClearHighlight()
}

// Export writes the stored notebook to w using ser. When nothing has been
// stored yet the live canvas is exported instead.
func (s *Service) Export(ctx context.Context, w io.Writer, ser Serializer) error {
	if ser == nil {
		ser = s.serializer
	}

	doc := s.document()
	data, err := s.repo.Get(ctx, s.key)
	switch {
	case errors.Is(err, core.ErrNotFound):
	case err != nil:
		return s.fail("failed to read notebook for export", storageError(err))
	default:
		stored, err := s.parse(data)
		if err != nil {
			return s.fail("stored notebook is malformed", err)
		}
		doc = *stored
	}

	out, err := ser.Serialize(doc)
	if err != nil {
		return fmt.Errorf("failed to serialize notebook: %w", err)
	}
	_, err = w.Write(out)
	return err
}

// Import replaces the canvas with the notebook read from r and saves it. On a
// parse failure the user is alerted and the canvas is left untouched.
func (s *Service) Import(ctx context.Context, r io.Reader, ser Serializer) error {
	if ser == nil {
		ser = s.serializer
	}
	doc, err := ser.Parse(r)
	if err != nil {
		return s.fail("failed to import notebook", err)
	}

	s.load(*doc)
	s.logInfo("notebook imported", "cells", len(doc.Cells))
	return s.Save(ctx)
}

// Close releases the repository when it holds resources.
func (s *Service) Close() error {
	if c, ok := s.repo.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

func (s *Service) document() Document {
	return Encode(s.store.Entities(), s.metadata)
}

func (s *Service) parse(data []byte) (*Document, error) {
	return s.serializer.Parse(bytes.NewReader(data))
}

func (s *Service) load(doc Document) {
	s.store.Replace(Decode(doc, s.newID))
	s.metadata = doc.Metadata
	s.selection = ""
}

func (s *Service) fail(msg string, err error) error {
	if s.logger != nil {
		s.logger.Warn(msg, "key", s.key, "error", err)
	}
	if s.alert != nil {
		s.alert(err)
	}
	return fmt.Errorf("%s: %w", msg, err)
}

func (s *Service) debug(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Debug(msg, args...)
	}
}

func (s *Service) logInfo(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Info(msg, args...)
	}
}

func storageError(err error) error {
	if errors.Is(err, core.ErrStorageUnavailable) || errors.Is(err, core.ErrReadOnly) {
		return err
	}
	return fmt.Errorf("%w: %w", core.ErrStorageUnavailable, err)
}

// StarterNotes returns the three empty notes a new notebook is seeded with.
func StarterNotes() []core.Entity {
	positions := []core.Point{{X: -50, Y: 250}, {X: -50, Y: 100}, {X: 250, Y: 100}}
	out := make([]core.Entity, 0, len(positions))
	for _, p := range positions {
		out = append(out, core.Entity{Kind: core.KindNote, Position: p, Size: canvas.DefaultNoteSize})
	}
	return out
}
