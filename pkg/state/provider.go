// Package state provides system-state snapshot providers for the monitor.
package state

import (
	"context"
	"sync"

	"github.com/plexmo/plexmo/pkg/models"
)

// Provider is a synchronous source of the current system state. The monitor
// queries it at each check point and never writes through it.
type Provider interface {
	Snapshot(ctx context.Context) (*models.StateSnapshot, error)
}

// Static is an in-memory provider backed by a plain fluent map. Useful for
// tests, examples and plan files shipped with a fixed world state.
type Static struct {
	mu      sync.RWMutex
	fluents map[string]any
}

func NewStatic(fluents map[string]any) *Static {
	if fluents == nil {
		fluents = make(map[string]any)
	}

	return &Static{fluents: fluents}
}

func (s *Static) Snapshot(_ context.Context) (*models.StateSnapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	copied := make(map[string]any, len(s.fluents))
	for k, v := range s.fluents {
		copied[k] = v
	}

	return models.NewStateSnapshot(copied), nil
}

// Set updates one grounded fluent value. Tests use this to simulate world
// changes between dispatch steps.
func (s *Static) Set(key string, value any) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.fluents[key] = value
}
