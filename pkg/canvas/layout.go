package canvas

import (
	"cmp"
	"math"
	"slices"

	"github.com/aretw0/jupypod/pkg/core"
)

// Padding is the space kept between a group's border and its children.
// Top is larger to leave room for the group header.
type Padding struct {
	Top, Bottom, Left, Right float64
}

// DefaultPadding is the padding applied by auto-layout.
var DefaultPadding = Padding{Top: 70, Bottom: 50, Left: 50, Right: 50}

// AutoLayout resizes and repositions a group so that it wraps its direct
// children, then walks up the ancestor chain doing the same for each ancestor.
// Children keep their absolute position. A group without children is left
// untouched and AutoLayout returns false.
func (s *Store) AutoLayout(groupID string) bool {
	g, ok := s.byID[groupID]
	if !ok || !g.IsGroup() {
		return false
	}
	if !s.fitToChildren(g) {
		return false
	}

	// The parent chain is walked iteratively. A corrupted hierarchy cannot keep
	// the loop alive for more steps than there are entities.
	id := g.ParentID
	for steps := 0; id != "" && steps < len(s.entities); steps++ {
		p, ok := s.byID[id]
		if !ok || !p.IsGroup() || p.ID == groupID {
			break
		}
		s.fitToChildren(p)
		id = p.ParentID
	}

	s.RefreshDerivedState()
	return true
}

// AutoLayoutAll fits every group to its children exactly once, innermost groups
// first, and returns the number of groups that changed geometry.
func (s *Store) AutoLayoutAll() int {
	s.RefreshDerivedState()

	var groups []*core.Entity
	for _, e := range s.entities {
		if e.IsGroup() {
			groups = append(groups, e)
		}
	}
	slices.SortStableFunc(groups, func(a, b *core.Entity) int {
		return cmp.Compare(b.Depth, a.Depth)
	})

	n := 0
	for _, g := range groups {
		if s.fitToChildren(g) {
			n++
		}
	}
	if n > 0 {
		s.RefreshDerivedState()
	}
	return n
}

// fitToChildren applies one padded bounding-box fit to g using the local
// coordinates of its direct children. It reports false when g has no children.
func (s *Store) fitToChildren(g *core.Entity) bool {
	kids := s.children(g.ID)
	if len(kids) == 0 {
		return false
	}

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, c := range kids {
		minX = math.Min(minX, c.Position.X)
		minY = math.Min(minY, c.Position.Y)
		maxX = math.Max(maxX, c.Position.X+c.Size.Width)
		maxY = math.Max(maxY, c.Position.Y+c.Size.Height)
	}

	pad := s.padding
	offset := core.Point{X: minX - pad.Left, Y: minY - pad.Top}

	g.Position = g.Position.Add(offset)
	g.Size = core.Size{
		Width:  maxX - minX + pad.Left + pad.Right,
		Height: maxY - minY + pad.Top + pad.Bottom,
	}
	for _, c := range kids {
		c.Position = c.Position.Sub(offset)
	}
	return true
}
