package canvas

import "github.com/aretw0/jupypod/pkg/core"

// GroupAt finds the topmost group whose box contains point.
//
// Groups listed in excludeIDs are skipped, and so is every group nested (at any
// depth) inside an excluded entity: a dragged group must never be dropped into
// its own descendant. Candidates are scanned in reverse render order, so among
// overlapping groups the deepest, then the most recently created, wins.
func (s *Store) GroupAt(point core.Point, excludeIDs ...string) (core.Entity, bool) {
	excluded := make(map[string]bool, len(excludeIDs))
	for _, id := range excludeIDs {
		excluded[id] = true
	}

	order := s.renderOrder()
	for i := len(order) - 1; i >= 0; i-- {
		g := order[i]
		if !g.IsGroup() || excluded[g.ID] {
			continue
		}
		if !Contains(*g, point) {
			continue
		}
		if s.descendsFromAny(g, excluded) {
			continue
		}
		return g.Clone(), true
	}
	return core.Entity{}, false
}

// descendsFromAny walks the parent chain of e up to the root and reports whether
// any ancestor is in the given set. The walk is bounded by the entity count.
func (s *Store) descendsFromAny(e *core.Entity, ancestors map[string]bool) bool {
	if len(ancestors) == 0 {
		return false
	}
	id := e.ParentID
	for steps := 0; id != "" && steps <= len(s.entities); steps++ {
		if ancestors[id] {
			return true
		}
		p, ok := s.byID[id]
		if !ok {
			return false
		}
		id = p.ParentID
	}
	return false
}

// IsDescendant reports whether id is nested (at any depth) inside ancestorID.
func (s *Store) IsDescendant(id, ancestorID string) bool {
	e, ok := s.byID[id]
	if !ok {
		return false
	}
	return s.descendsFromAny(e, map[string]bool{ancestorID: true})
}
