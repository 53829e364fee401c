package notebook

import (
	"github.com/aretw0/introspection"
)

// ServiceState exposes internal state for observability.
type ServiceState struct {
	Key            string `json:"key"`
	RepositoryType string `json:"repository_type"`
	Selection      string `json:"selection,omitempty"`
	Canvas         any    `json:"canvas"`
}

// State implements introspection.Introspectable.
func (s *Service) State() any {
	repoType := "unknown"
	if s.repo != nil {
		repoType = "repository"
		if comp, ok := s.repo.(introspection.Component); ok {
			repoType = comp.ComponentType()
		}
	}

	return ServiceState{
		Key:            s.key,
		RepositoryType: repoType,
		Selection:      s.selection,
		Canvas:         s.store.State(),
	}
}

// ComponentType implements introspection.Component.
func (s *Service) ComponentType() string {
	return "service"
}

var _ introspection.Introspectable = (*Service)(nil)
var _ introspection.Component = (*Service)(nil)
