package canvas_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/jupypod/pkg/canvas"
	"github.com/aretw0/jupypod/pkg/core"
)

func TestAutoLayout(t *testing.T) {
	t.Run("Wraps Children With Padding", func(t *testing.T) {
		s := newStore()
		g := s.Create(core.KindGroup, core.Point{X: 100, Y: 100}, "")
		n := s.Create(core.KindNote, core.Point{X: 150, Y: 160}, "")
		s.MoveIntoScope([]string{n.ID}, g.ID)

		require.True(t, s.AutoLayout(g.ID))

		gotG, _ := s.Get(g.ID)
		assert.Equal(t, core.Point{X: 100, Y: 90}, gotG.Position)
		assert.Equal(t, core.Size{Width: 350, Height: 220}, gotG.Size)

		gotN, _ := s.Get(n.ID)
		assert.Equal(t, core.Point{X: 50, Y: 70}, gotN.Position)
		assert.Equal(t, core.Point{X: 150, Y: 160}, *gotN.PositionAbsolute)
	})

	t.Run("Idempotent", func(t *testing.T) {
		s := newStore()
		g := s.Create(core.KindGroup, core.Point{X: 30, Y: -40}, "")
		s.Create(core.KindNote, core.Point{X: 10, Y: 400}, g.ID)
		s.Create(core.KindNote, core.Point{X: 600, Y: 20}, g.ID)

		require.True(t, s.AutoLayout(g.ID))
		first := s.Entities()
		require.True(t, s.AutoLayout(g.ID))
		assert.Equal(t, first, s.Entities())
	})

	t.Run("Empty Group Untouched", func(t *testing.T) {
		s := newStore()
		g := s.Create(core.KindGroup, core.Point{}, "")

		assert.False(t, s.AutoLayout(g.ID))
		got, _ := s.Get(g.ID)
		assert.Equal(t, canvas.DefaultGroupSize, got.Size)
	})

	t.Run("Not A Group", func(t *testing.T) {
		s := newStore()
		n := s.Create(core.KindNote, core.Point{}, "")
		assert.False(t, s.AutoLayout(n.ID))
		assert.False(t, s.AutoLayout("ghost"))
	})

	t.Run("Propagates To Ancestors", func(t *testing.T) {
		s, outer, inner, note := nestedFixture()

		require.True(t, s.AutoLayout(inner))

		gotOuter, _ := s.Get(outer)
		assert.Equal(t, core.Point{X: 400, Y: 360}, gotOuter.Position)
		assert.Equal(t, core.Size{Width: 450, Height: 340}, gotOuter.Size)

		gotInner, _ := s.Get(inner)
		assert.Equal(t, core.Point{X: 50, Y: 70}, gotInner.Position)
		assert.Equal(t, core.Size{Width: 350, Height: 220}, gotInner.Size)

		gotNote, _ := s.Get(note)
		assert.Equal(t, core.Point{X: 500, Y: 500}, *gotNote.PositionAbsolute)
	})

	t.Run("Custom Padding", func(t *testing.T) {
		s := canvas.NewStore(canvas.WithPadding(canvas.Padding{}))
		g := s.Create(core.KindGroup, core.Point{}, "")
		s.Create(core.KindNote, core.Point{X: 10, Y: 20}, g.ID)

		s.AutoLayout(g.ID)
		got, _ := s.Get(g.ID)
		assert.Equal(t, core.Point{X: 10, Y: 20}, got.Position)
		assert.Equal(t, canvas.DefaultNoteSize, got.Size)
	})
}

func TestAutoLayoutAll(t *testing.T) {
	s, outer, inner, note := nestedFixture()
	s.Create(core.KindGroup, core.Point{X: -900, Y: -900}, "")

	assert.Equal(t, 2, s.AutoLayoutAll(), "the empty group is not counted")

	gotOuter, _ := s.Get(outer)
	assert.Equal(t, core.Size{Width: 450, Height: 340}, gotOuter.Size)
	gotInner, _ := s.Get(inner)
	assert.Equal(t, core.Size{Width: 350, Height: 220}, gotInner.Size)
	gotNote, _ := s.Get(note)
	assert.Equal(t, core.Point{X: 500, Y: 500}, *gotNote.PositionAbsolute)

	before := s.Entities()
	s.AutoLayoutAll()
	assert.Equal(t, before, s.Entities(), "a second pass must not compound offsets")
}

// nestedFixture builds outer(0,0) > inner(100,100) > note(400,400), the note
// sitting at (500,500) in canvas space.
func nestedFixture() (s *canvas.Store, outer, inner, note string) {
	s = newStore()
	o := s.Create(core.KindGroup, core.Point{}, "")
	i := s.Create(core.KindGroup, core.Point{X: 100, Y: 100}, o.ID)
	n := s.Create(core.KindNote, core.Point{X: 400, Y: 400}, i.ID)
	return s, o.ID, i.ID, n.ID
}
