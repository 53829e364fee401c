package canvas

import "github.com/aretw0/jupypod/pkg/core"

// RefreshDerivedState recomputes everything that is derived from parentage:
// depth, absolute position, highlight flag and group tint.
//
// Entities whose parent is missing are promoted to the top level. Entities that
// cannot be reached from the top level sit on a parent cycle; the cycle is cut
// at the first such entity in creation order, which becomes top-level.
func (s *Store) RefreshDerivedState() {
	kids := make(map[string][]*core.Entity, len(s.entities))
	var roots []*core.Entity

	for _, e := range s.entities {
		if e.ParentID != "" {
			p, ok := s.byID[e.ParentID]
			if !ok || p == e {
				s.warn("dangling parent reference, promoting to top level", e.ID, e.ParentID)
				s.promote(e)
			}
		}
		if e.ParentID == "" {
			roots = append(roots, e)
			continue
		}
		kids[e.ParentID] = append(kids[e.ParentID], e)
	}

	visited := make(map[string]bool, len(s.entities))
	s.walk(roots, kids, visited)

	for _, e := range s.entities {
		if visited[e.ID] {
			continue
		}
		s.warn("parent cycle detected, promoting to top level", e.ID, e.ParentID)
		s.promote(e)
		s.walk([]*core.Entity{e}, kids, visited)
	}
}

// walk assigns depth and absolute position breadth first, starting at roots.
func (s *Store) walk(roots []*core.Entity, kids map[string][]*core.Entity, visited map[string]bool) {
	queue := roots
	for _, r := range roots {
		abs := r.Position
		r.PositionAbsolute = &abs
		r.Depth = 0
		s.decorate(r)
		visited[r.ID] = true
	}

	for len(queue) > 0 {
		parent := queue[0]
		queue = queue[1:]

		for _, c := range kids[parent.ID] {
			if visited[c.ID] {
				continue
			}
			abs := parent.PositionAbsolute.Add(c.Position)
			c.PositionAbsolute = &abs
			c.Depth = parent.Depth + 1
			s.decorate(c)
			visited[c.ID] = true
			queue = append(queue, c)
		}
	}
}

func (s *Store) decorate(e *core.Entity) {
	e.Highlighted = s.highlighted != "" && e.ID == s.highlighted
	if e.IsGroup() {
		e.Background = TintForDepth(e.Depth)
	}
}

// promote turns e into a top-level entity without moving it on screen.
func (s *Store) promote(e *core.Entity) {
	e.Position = AbsolutePosition(*e)
	e.ParentID = ""
}

func (s *Store) warn(msg, id, parentID string) {
	if s.logger != nil {
		s.logger.Warn(msg, "id", id, "parent", parentID)
	}
}
