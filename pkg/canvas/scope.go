package canvas

import "github.com/aretw0/jupypod/pkg/core"

// MoveIntoScope reparents the listed entities into targetID, or to the top level
// when targetID is empty, and returns how many entities moved.
//
// Every moved entity keeps its absolute position: only Position, ParentID and
// Depth change. Unknown ids are skipped and an unknown target makes the call a
// no-op. Cycles are not checked here; callers pick the target with GroupAt,
// excluding the moved ids.
func (s *Store) MoveIntoScope(ids []string, targetID string) int {
	moved := s.moveIntoScope(ids, targetID)
	if moved > 0 {
		s.RefreshDerivedState()
	}
	return moved
}

func (s *Store) moveIntoScope(ids []string, targetID string) int {
	var target *core.Entity
	if targetID != "" {
		t, ok := s.byID[targetID]
		if !ok || !t.IsGroup() {
			return 0
		}
		target = t
	}

	moved := 0
	for _, id := range ids {
		e, ok := s.byID[id]
		if !ok || id == targetID {
			continue
		}

		abs := AbsolutePosition(*e)
		if target == nil {
			e.ParentID = ""
			e.Position = abs
			e.Depth = 0
		} else {
			e.ParentID = target.ID
			e.Position = RelativeToParent(abs, AbsolutePosition(*target))
			e.Depth = target.Depth + 1
		}
		e.PositionAbsolute = &abs
		moved++
	}
	return moved
}
