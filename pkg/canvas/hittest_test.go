package canvas_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/jupypod/pkg/core"
)

func TestGroupAt(t *testing.T) {
	// a (0,0) contains b at (50,50) which contains c at (100,100) absolute.
	s := newStore()
	a := s.Create(core.KindGroup, core.Point{}, "")
	b := s.Create(core.KindGroup, core.Point{X: 50, Y: 50}, a.ID)
	c := s.Create(core.KindGroup, core.Point{X: 50, Y: 50}, b.ID)
	pt := core.Point{X: 150, Y: 150}

	t.Run("Deepest Wins", func(t *testing.T) {
		got, ok := s.GroupAt(pt)
		require.True(t, ok)
		assert.Equal(t, c.ID, got.ID)
	})

	t.Run("Excludes Descendants Two Levels Down", func(t *testing.T) {
		_, ok := s.GroupAt(pt, a.ID)
		assert.False(t, ok, "b and c are descendants of the dragged group")
	})

	t.Run("Excludes Only The Dragged Subtree", func(t *testing.T) {
		got, ok := s.GroupAt(pt, b.ID)
		require.True(t, ok)
		assert.Equal(t, a.ID, got.ID)
	})

	t.Run("Outside Everything", func(t *testing.T) {
		_, ok := s.GroupAt(core.Point{X: -1, Y: -1})
		assert.False(t, ok)
	})

	t.Run("Border Is Inclusive", func(t *testing.T) {
		got, ok := s.GroupAt(core.Point{X: 50, Y: 50})
		require.True(t, ok)
		assert.Equal(t, b.ID, got.ID, "the top-left corner of b belongs to b")
	})

	assert.True(t, s.IsDescendant(c.ID, a.ID))
	assert.False(t, s.IsDescendant(a.ID, c.ID))
}

func TestGroupAt_Overlap(t *testing.T) {
	s := newStore()
	s.Create(core.KindGroup, core.Point{}, "")
	newer := s.Create(core.KindGroup, core.Point{X: 10, Y: 10}, "")

	got, ok := s.GroupAt(core.Point{X: 20, Y: 20})
	require.True(t, ok)
	assert.Equal(t, newer.ID, got.ID, "the most recently created group is on top")
}

func TestGroupAt_IgnoresNotes(t *testing.T) {
	s := newStore()
	s.Create(core.KindNote, core.Point{}, "")

	_, ok := s.GroupAt(core.Point{X: 10, Y: 10})
	assert.False(t, ok)
}
