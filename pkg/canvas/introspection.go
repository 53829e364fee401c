package canvas

import "github.com/aretw0/introspection"

// StoreState exposes internal state for observability.
type StoreState struct {
	Entities    int    `json:"entities"`
	Notes       int    `json:"notes"`
	Groups      int    `json:"groups"`
	MaxDepth    int    `json:"max_depth"`
	Highlighted string `json:"highlighted,omitempty"`
}

// State implements introspection.Introspectable.
func (s *Store) State() any {
	st := StoreState{
		Entities:    len(s.entities),
		Highlighted: s.highlighted,
	}
	for _, e := range s.entities {
		if e.IsGroup() {
			st.Groups++
		} else {
			st.Notes++
		}
		st.MaxDepth = max(st.MaxDepth, e.Depth)
	}
	return st
}

// ComponentType implements introspection.Component.
func (s *Store) ComponentType() string {
	return "canvas"
}

var _ introspection.Introspectable = (*Store)(nil)
var _ introspection.Component = (*Store)(nil)
