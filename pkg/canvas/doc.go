// Package canvas is the state engine of the notebook canvas.
//
// A Store holds every entity (notes and groups) in a flat arena. Hierarchy is
// expressed only through Entity.ParentID; child lists are derived on demand and
// never stored. After each mutation the Store re-derives nesting depth, absolute
// positions, highlight flags and group tints (RefreshDerivedState), so callers
// always observe a consistent view.
//
// The Store is not safe for concurrent use. It is meant to be driven from a
// single event loop, one gesture handler at a time.
//
// Usage:
//
//	store := canvas.NewStore()
//	group := store.Create(core.KindGroup, core.Point{X: 100, Y: 100}, "")
//	note := store.Create(core.KindNote, core.Point{X: 150, Y: 160}, "")
//
//	// Drop the note onto whatever group sits under the pointer.
//	if target, ok := store.GroupAt(core.Point{X: 150, Y: 160}, note.ID); ok {
//		store.MoveIntoScope([]string{note.ID}, target.ID)
//		store.AutoLayout(target.ID)
//	}
package canvas
