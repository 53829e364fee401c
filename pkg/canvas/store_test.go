package canvas_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/jupypod/pkg/canvas"
	"github.com/aretw0/jupypod/pkg/core"
)

func newStore() *canvas.Store {
	return canvas.NewStore(canvas.WithIDGenerator(canvas.SequentialIDs("e")))
}

func TestCreate(t *testing.T) {
	t.Run("Note Defaults", func(t *testing.T) {
		s := newStore()
		n := s.Create(core.KindNote, core.Point{X: 10, Y: 20}, "")

		assert.Equal(t, "e1", n.ID)
		assert.Equal(t, canvas.DefaultNoteSize, n.Size)
		assert.Equal(t, 0, n.Depth)
		assert.True(t, n.IsTopLevel())
		require.NotNil(t, n.PositionAbsolute)
		assert.Equal(t, core.Point{X: 10, Y: 20}, *n.PositionAbsolute)
		assert.Empty(t, n.Content)
	})

	t.Run("Group Defaults", func(t *testing.T) {
		s := newStore()
		g := s.Create(core.KindGroup, core.Point{}, "")

		assert.Equal(t, canvas.DefaultGroupSize, g.Size)
		assert.Equal(t, canvas.DefaultGroupName, g.Name)
		assert.Equal(t, canvas.TintForDepth(0), g.Background)
	})

	t.Run("Inside Group", func(t *testing.T) {
		s := newStore()
		g := s.Create(core.KindGroup, core.Point{X: 100, Y: 100}, "")
		n := s.Create(core.KindNote, core.Point{X: 10, Y: 10}, g.ID)

		assert.Equal(t, g.ID, n.ParentID)
		assert.Equal(t, 1, n.Depth)
		assert.Equal(t, core.Point{X: 110, Y: 110}, *n.PositionAbsolute)
	})

	t.Run("Unknown Parent Is Root", func(t *testing.T) {
		s := newStore()
		n := s.Create(core.KindNote, core.Point{X: 1, Y: 1}, "missing")
		assert.True(t, n.IsTopLevel())
	})

	t.Run("Note Cannot Be Parent", func(t *testing.T) {
		s := newStore()
		a := s.Create(core.KindNote, core.Point{}, "")
		b := s.Create(core.KindNote, core.Point{}, a.ID)
		assert.True(t, b.IsTopLevel())
	})
}

func TestRemove(t *testing.T) {
	t.Run("Note", func(t *testing.T) {
		s := newStore()
		n := s.Create(core.KindNote, core.Point{}, "")

		assert.True(t, s.Remove(n.ID))
		assert.Equal(t, 0, s.Len())
		assert.False(t, s.Remove(n.ID), "second removal must report false")
	})

	t.Run("Group Rehomes Children", func(t *testing.T) {
		s := newStore()
		outer := s.Create(core.KindGroup, core.Point{}, "")
		inner := s.Create(core.KindGroup, core.Point{X: 100, Y: 100}, outer.ID)
		note := s.Create(core.KindNote, core.Point{X: 20, Y: 30}, inner.ID)
		require.Equal(t, core.Point{X: 120, Y: 130}, *note.PositionAbsolute)

		require.True(t, s.Remove(inner.ID))
		got, ok := s.Get(note.ID)
		require.True(t, ok)
		assert.Equal(t, outer.ID, got.ParentID)
		assert.Equal(t, core.Point{X: 120, Y: 130}, got.Position)
		assert.Equal(t, 1, got.Depth)

		require.True(t, s.Remove(outer.ID))
		got, _ = s.Get(note.ID)
		assert.True(t, got.IsTopLevel())
		assert.Equal(t, core.Point{X: 120, Y: 130}, got.Position)
		assert.Equal(t, 0, got.Depth)
	})

	t.Run("Clears Highlight", func(t *testing.T) {
		s := newStore()
		g := s.Create(core.KindGroup, core.Point{}, "")
		s.SetHighlight(g.ID)
		s.Remove(g.ID)
		assert.Empty(t, s.Highlighted())
	})
}

func TestUpdateContent(t *testing.T) {
	s := newStore()
	n := s.Create(core.KindNote, core.Point{}, "")
	g := s.Create(core.KindGroup, core.Point{}, "")

	require.True(t, s.UpdateContent(n.ID, []byte(`{ "type": "doc", "content": [] }`)))
	got, _ := s.Get(n.ID)
	assert.JSONEq(t, `{"type":"doc","content":[]}`, string(got.Content))
	assert.Equal(t, `{"type":"doc","content":[]}`, string(got.Content))

	require.True(t, s.UpdateContent(n.ID, []byte("plain text")))
	got, _ = s.Get(n.ID)
	assert.Equal(t, `"plain text"`, string(got.Content))

	assert.False(t, s.UpdateContent(g.ID, []byte(`{}`)), "groups carry no content")
	assert.False(t, s.UpdateContent("missing", []byte(`{}`)))
}

func TestRename(t *testing.T) {
	s := newStore()
	g := s.Create(core.KindGroup, core.Point{}, "")
	n := s.Create(core.KindNote, core.Point{}, "")

	assert.True(t, s.Rename(g.ID, "Ideas"))
	got, _ := s.Get(g.ID)
	assert.Equal(t, "Ideas", got.Name)
	assert.False(t, s.Rename(n.ID, "x"))
}

func TestApplyGeometryChanges(t *testing.T) {
	s := newStore()
	g := s.Create(core.KindGroup, core.Point{X: 100, Y: 100}, "")
	n := s.Create(core.KindNote, core.Point{X: 10, Y: 10}, g.ID)
	other := s.Create(core.KindNote, core.Point{}, "")

	s.ApplyGeometryChanges([]core.Change{
		{Type: core.ChangePosition, ID: g.ID, Position: &core.Point{X: 200, Y: 200}, Dragging: true},
		{Type: core.ChangeDimensions, ID: g.ID, Dimensions: &core.Size{Width: 300, Height: 400}},
		{Type: core.ChangeRemove, ID: other.ID},
		{Type: core.ChangePosition, ID: "ghost", Position: &core.Point{X: 1, Y: 1}},
		{Type: core.ChangeSelect, ID: n.ID, Selected: true},
	})

	gotG, _ := s.Get(g.ID)
	assert.Equal(t, core.Point{X: 200, Y: 200}, gotG.Position)
	assert.Equal(t, core.Size{Width: 300, Height: 400}, gotG.Size)

	gotN, _ := s.Get(n.ID)
	assert.Equal(t, core.Point{X: 210, Y: 210}, *gotN.PositionAbsolute, "children follow their group")

	_, ok := s.Get(other.ID)
	assert.False(t, ok)
	assert.Equal(t, 2, s.Len())
}

func TestReplace(t *testing.T) {
	s := newStore()
	s.Create(core.KindNote, core.Point{}, "")

	s.Replace([]core.Entity{
		{ID: "a", Kind: core.KindNote, Position: core.Point{X: 1, Y: 2}},
		{ID: "a", Kind: core.KindNote},
		{Kind: core.KindNote},
	})

	entities := s.Entities()
	require.Len(t, entities, 3)
	assert.Equal(t, "a", entities[0].ID)
	assert.NotEqual(t, "a", entities[1].ID)
	assert.NotEmpty(t, entities[2].ID)
	assert.NotEqual(t, entities[1].ID, entities[2].ID)
	assert.Equal(t, core.Point{X: 1, Y: 2}, *entities[0].PositionAbsolute)
}

func TestRenderOrder(t *testing.T) {
	s := newStore()
	n1 := s.Create(core.KindNote, core.Point{}, "")
	g := s.Create(core.KindGroup, core.Point{}, "")
	n2 := s.Create(core.KindNote, core.Point{}, g.ID)
	n3 := s.Create(core.KindNote, core.Point{}, "")

	var ids []string
	for _, e := range s.RenderOrder() {
		ids = append(ids, e.ID)
	}
	assert.Equal(t, []string{n1.ID, g.ID, n3.ID, n2.ID}, ids)

	children := s.Children(g.ID)
	require.Len(t, children, 1)
	assert.Equal(t, n2.ID, children[0].ID)
}

func TestHighlight(t *testing.T) {
	s := newStore()
	g := s.Create(core.KindGroup, core.Point{}, "")

	assert.True(t, s.SetHighlight(g.ID))
	got, _ := s.Get(g.ID)
	assert.True(t, got.Highlighted)

	s.ClearHighlight()
	got, _ = s.Get(g.ID)
	assert.False(t, got.Highlighted)

	assert.False(t, s.SetHighlight("missing"))
	assert.Empty(t, s.Highlighted())
}

func TestGetReturnsCopy(t *testing.T) {
	s := newStore()
	n := s.Create(core.KindNote, core.Point{X: 5, Y: 5}, "")

	got, _ := s.Get(n.ID)
	got.Position.X = 999
	got.PositionAbsolute.X = 999

	again, _ := s.Get(n.ID)
	assert.Equal(t, 5.0, again.Position.X)
	assert.Equal(t, 5.0, again.PositionAbsolute.X)
}

func TestState(t *testing.T) {
	s := newStore()
	g := s.Create(core.KindGroup, core.Point{}, "")
	s.Create(core.KindNote, core.Point{}, g.ID)
	s.Create(core.KindNote, core.Point{}, "")

	st, ok := s.State().(canvas.StoreState)
	require.True(t, ok)
	assert.Equal(t, canvas.StoreState{Entities: 3, Notes: 2, Groups: 1, MaxDepth: 1}, st)
	assert.Equal(t, "canvas", s.ComponentType())
}
