package canvas

import (
	"bytes"
	"cmp"
	"encoding/json"
	"log/slog"
	"slices"

	"github.com/aretw0/jupypod/pkg/core"
)

// Default geometry for new entities.
var (
	DefaultNoteSize  = core.Size{Width: 250, Height: 100}
	DefaultGroupSize = core.Size{Width: 600, Height: 600}
)

// DefaultGroupName is the header label of a freshly created group.
const DefaultGroupName = "Group"

var groupTints = []string{"#d0ebff", "#d3f9d8", "#fff3bf", "#ffe3e3", "#e5dbff"}

// TintForDepth returns the background tint of a group nested at depth.
func TintForDepth(depth int) string {
	if depth < 0 {
		depth = 0
	}
	return groupTints[depth%len(groupTints)]
}

// Store is the authoritative container of canvas entities.
type Store struct {
	entities    []*core.Entity // creation order
	byID        map[string]*core.Entity
	highlighted string

	newID   IDGenerator
	padding Padding
	logger  *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithIDGenerator replaces the default NanoID generator.
func WithIDGenerator(gen IDGenerator) Option {
	return func(s *Store) {
		if gen != nil {
			s.newID = gen
		}
	}
}

// WithPadding overrides the auto-layout padding.
func WithPadding(p Padding) Option {
	return func(s *Store) {
		s.padding = p
	}
}

// WithLogger sets the logger used to report repaired hierarchy problems.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// NewStore creates an empty Store.
func NewStore(opts ...Option) *Store {
	s := &Store{
		byID:    make(map[string]*core.Entity),
		newID:   NanoID,
		padding: DefaultPadding,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create adds a new entity of the given kind at position. When parentID names an
// existing group the position is relative to it; otherwise the entity is top-level.
func (s *Store) Create(kind core.Kind, position core.Point, parentID string) core.Entity {
	e := &core.Entity{
		ID:       s.uniqueID(),
		Kind:     kind,
		Position: position,
	}

	switch kind {
	case core.KindGroup:
		e.Size = DefaultGroupSize
		e.Name = DefaultGroupName
		e.Background = TintForDepth(0)
	default:
		e.Kind = core.KindNote
		e.Size = DefaultNoteSize
	}

	if parentID != "" {
		if p, ok := s.byID[parentID]; ok && p.IsGroup() {
			e.ParentID = p.ID
			e.Depth = p.Depth + 1
		}
	}

	s.entities = append(s.entities, e)
	s.byID[e.ID] = e
	s.RefreshDerivedState()

	return e.Clone()
}

func (s *Store) uniqueID() string {
	for {
		id := s.newID()
		if _, taken := s.byID[id]; !taken && id != "" {
			return id
		}
	}
}

// Remove deletes an entity. Direct children of a removed group move into the
// group's own parent, keeping their absolute position.
func (s *Store) Remove(id string) bool {
	if !s.remove(id) {
		return false
	}
	s.RefreshDerivedState()
	return true
}

func (s *Store) remove(id string) bool {
	e, ok := s.byID[id]
	if !ok {
		return false
	}

	if e.IsGroup() {
		var orphans []string
		for _, c := range s.children(id) {
			orphans = append(orphans, c.ID)
		}
		if len(orphans) > 0 {
			s.RefreshDerivedState()
			s.moveIntoScope(orphans, e.ParentID)
		}
	}

	s.entities = slices.DeleteFunc(s.entities, func(x *core.Entity) bool { return x.ID == id })
	delete(s.byID, id)
	if s.highlighted == id {
		s.highlighted = ""
	}
	return true
}

// UpdateContent stores the rich-text document of a note. Valid JSON is kept
// verbatim (compacted); any other text is stored as a JSON string.
func (s *Store) UpdateContent(id string, content json.RawMessage) bool {
	e, ok := s.byID[id]
	if !ok || e.IsGroup() {
		return false
	}
	e.Content = NormalizeContent(content)
	return true
}

// NormalizeContent converts an opaque content value into compact JSON.
func NormalizeContent(content []byte) json.RawMessage {
	if len(bytes.TrimSpace(content)) == 0 {
		return nil
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, content); err == nil {
		return buf.Bytes()
	}
	quoted, _ := json.Marshal(string(content))
	return quoted
}

// Rename changes the header label of a group.
func (s *Store) Rename(id, name string) bool {
	e, ok := s.byID[id]
	if !ok || !e.IsGroup() {
		return false
	}
	e.Name = name
	return true
}

// ApplyGeometryChanges applies a batch of render-surface changes. Changes that
// reference unknown entities are ignored.
func (s *Store) ApplyGeometryChanges(changes []core.Change) {
	for _, c := range changes {
		e, ok := s.byID[c.ID]
		if !ok {
			continue
		}
		switch c.Type {
		case core.ChangePosition:
			if c.Position != nil {
				e.Position = *c.Position
			}
		case core.ChangeDimensions:
			if c.Dimensions != nil {
				e.Size = *c.Dimensions
			}
		case core.ChangeRemove:
			s.remove(c.ID)
		}
	}
	s.RefreshDerivedState()
}

// Replace swaps the whole entity set. Entities with an empty or duplicate id
// receive a fresh one.
func (s *Store) Replace(entities []core.Entity) {
	s.entities = make([]*core.Entity, 0, len(entities))
	s.byID = make(map[string]*core.Entity, len(entities))
	s.highlighted = ""

	for _, in := range entities {
		e := in.Clone()
		if _, dup := s.byID[e.ID]; dup || e.ID == "" {
			e.ID = s.uniqueID()
		}
		s.entities = append(s.entities, &e)
		s.byID[e.ID] = &e
	}
	s.RefreshDerivedState()
}

// Get returns a copy of the entity with the given id.
func (s *Store) Get(id string) (core.Entity, bool) {
	e, ok := s.byID[id]
	if !ok {
		return core.Entity{}, false
	}
	return e.Clone(), true
}

// Len returns the number of entities.
func (s *Store) Len() int { return len(s.entities) }

// Entities returns copies of all entities in creation order.
func (s *Store) Entities() []core.Entity {
	out := make([]core.Entity, 0, len(s.entities))
	for _, e := range s.entities {
		out = append(out, e.Clone())
	}
	return out
}

// RenderOrder returns copies of all entities sorted by ascending depth, so
// ancestors are drawn behind their descendants.
func (s *Store) RenderOrder() []core.Entity {
	order := s.renderOrder()
	out := make([]core.Entity, 0, len(order))
	for _, e := range order {
		out = append(out, e.Clone())
	}
	return out
}

func (s *Store) renderOrder() []*core.Entity {
	order := slices.Clone(s.entities)
	slices.SortStableFunc(order, func(a, b *core.Entity) int {
		return cmp.Compare(a.Depth, b.Depth)
	})
	return order
}

// Children returns copies of the direct children of parentID ("" for top-level).
func (s *Store) Children(parentID string) []core.Entity {
	var out []core.Entity
	for _, e := range s.children(parentID) {
		out = append(out, e.Clone())
	}
	return out
}

func (s *Store) children(parentID string) []*core.Entity {
	var out []*core.Entity
	for _, e := range s.entities {
		if e.ParentID == parentID {
			out = append(out, e)
		}
	}
	return out
}

// Highlighted returns the id of the drag-hover target, if any.
func (s *Store) Highlighted() string { return s.highlighted }

// SetHighlight marks the entity shown as drop target. Unknown ids clear the highlight.
func (s *Store) SetHighlight(id string) bool {
	_, ok := s.byID[id]
	if ok {
		s.highlighted = id
	} else {
		s.highlighted = ""
	}
	s.RefreshDerivedState()
	return ok
}

// ClearHighlight removes the drag-hover marker.
func (s *Store) ClearHighlight() {
	s.highlighted = ""
	s.RefreshDerivedState()
}
