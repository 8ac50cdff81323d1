package models

import "time"

// StateSnapshot is an externally supplied view of the current world state:
// grounded fluent keys (e.g. "at(r1,table)") mapped to their values. The
// monitor only reads it.
type StateSnapshot struct {
	TakenAt time.Time      `json:"taken_at"`
	Fluents map[string]any `json:"fluents"`
}

// Lookup returns the value of a grounded fluent.
func (s *StateSnapshot) Lookup(key string) (any, bool) {
	if s == nil || s.Fluents == nil {
		return nil, false
	}

	value, ok := s.Fluents[key]

	return value, ok
}

// NewStateSnapshot builds a snapshot taken now from the given fluent values.
func NewStateSnapshot(fluents map[string]any) *StateSnapshot {
	return &StateSnapshot{
		TakenAt: time.Now().UTC(),
		Fluents: fluents,
	}
}
