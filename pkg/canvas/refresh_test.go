package canvas_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/jupypod/pkg/canvas"
	"github.com/aretw0/jupypod/pkg/core"
)

func TestRefreshDerivedState(t *testing.T) {
	t.Run("Dangling Parent Becomes Top Level", func(t *testing.T) {
		var logs bytes.Buffer
		s := canvas.NewStore(canvas.WithLogger(slog.New(slog.NewTextHandler(&logs, nil))))
		s.Replace([]core.Entity{
			{ID: "n", Kind: core.KindNote, ParentID: "ghost", Position: core.Point{X: 5, Y: 6}},
		})

		got, _ := s.Get("n")
		assert.True(t, got.IsTopLevel())
		assert.Equal(t, 0, got.Depth)
		assert.Equal(t, core.Point{X: 5, Y: 6}, *got.PositionAbsolute)
		assert.Contains(t, logs.String(), "dangling parent")
	})

	t.Run("Parent Cycle Is Cut", func(t *testing.T) {
		s := newStore()
		s.Replace([]core.Entity{
			{ID: "a", Kind: core.KindGroup, ParentID: "b"},
			{ID: "b", Kind: core.KindGroup, ParentID: "a", Position: core.Point{X: 10, Y: 10}},
		})

		a, _ := s.Get("a")
		b, _ := s.Get("b")
		assert.True(t, a.IsTopLevel())
		assert.Equal(t, 0, a.Depth)
		assert.Equal(t, "a", b.ParentID)
		assert.Equal(t, 1, b.Depth)
		assert.Equal(t, canvas.TintForDepth(1), b.Background)
	})

	t.Run("Self Parent", func(t *testing.T) {
		s := newStore()
		s.Replace([]core.Entity{{ID: "g", Kind: core.KindGroup, ParentID: "g"}})

		g, _ := s.Get("g")
		assert.True(t, g.IsTopLevel())
	})

	t.Run("Depth And Absolute Position", func(t *testing.T) {
		s := newStore()
		s.Replace([]core.Entity{
			{ID: "n", Kind: core.KindNote, ParentID: "inner", Position: core.Point{X: 1, Y: 1}},
			{ID: "inner", Kind: core.KindGroup, ParentID: "outer", Position: core.Point{X: 10, Y: 10}},
			{ID: "outer", Kind: core.KindGroup, Position: core.Point{X: 100, Y: 100}},
		})

		n, _ := s.Get("n")
		require.NotNil(t, n.PositionAbsolute)
		assert.Equal(t, 2, n.Depth)
		assert.Equal(t, core.Point{X: 111, Y: 111}, *n.PositionAbsolute)

		inner, _ := s.Get("inner")
		assert.Equal(t, canvas.TintForDepth(1), inner.Background)
	})
}

func TestTintForDepth(t *testing.T) {
	if canvas.TintForDepth(-3) != canvas.TintForDepth(0) {
		t.Error("negative depth should use the top-level tint")
	}
	if canvas.TintForDepth(0) == canvas.TintForDepth(1) {
		t.Error("adjacent depths should differ")
	}
}
