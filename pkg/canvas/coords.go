package canvas

import "github.com/aretw0/jupypod/pkg/core"

// AbsolutePosition returns the canvas-space position of e. Before the first
// recomputation only the relative position is known, which equals the absolute
// one for top-level entities.
func AbsolutePosition(e core.Entity) core.Point {
	if e.PositionAbsolute != nil {
		return *e.PositionAbsolute
	}
	return e.Position
}

// RelativeToParent expresses an absolute point in the frame of a parent whose
// absolute origin is parentAbs.
func RelativeToParent(childAbs, parentAbs core.Point) core.Point {
	return childAbs.Sub(parentAbs)
}

// Contains reports whether p lies inside the absolute bounding box of e,
// borders included.
func Contains(e core.Entity, p core.Point) bool {
	origin := AbsolutePosition(e)
	return p.X >= origin.X && p.X <= origin.X+e.Size.Width &&
		p.Y >= origin.Y && p.Y <= origin.Y+e.Size.Height
}
