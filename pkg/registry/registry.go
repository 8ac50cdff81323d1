package registry

import (
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/plexmo/plexmo/pkg/models"
)

// Registry holds the registered action definitions. Read-mostly after
// start-up; safe for concurrent use.
type Registry struct {
	logger      *slog.Logger
	mu          sync.RWMutex
	definitions map[string]*models.ActionDefinition
}

func NewRegistry(logger *slog.Logger) *Registry {
	return &Registry{
		logger:      logger,
		definitions: make(map[string]*models.ActionDefinition),
	}
}

// Register adds an action definition. Registering the same identifier with
// an identical signature is a no-op; a differing signature fails with
// ErrDuplicateAction.
func (r *Registry) Register(def *models.ActionDefinition) error {
	if err := validateDefinition(def); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.definitions[def.ID]; ok {
		if existing.SameSignature(def) {
			return nil
		}

		return &ActionError{Op: "register", ActionID: def.ID, Err: ErrDuplicateAction}
	}

	r.definitions[def.ID] = def
	r.logger.Debug("Registered action", "action", def.ID, "parameters", len(def.Parameters))

	return nil
}

// Resolve returns the definition registered for the identifier.
func (r *Registry) Resolve(id string) (*models.ActionDefinition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	def, ok := r.definitions[id]
	if !ok {
		return nil, &ActionError{Op: "resolve", ActionID: id, Err: ErrUnknownAction}
	}

	return def, nil
}

// Definitions returns all registered definitions sorted by identifier.
func (r *Registry) Definitions() []*models.ActionDefinition {
	r.mu.RLock()
	defer r.mu.RUnlock()

	defs := make([]*models.ActionDefinition, 0, len(r.definitions))
	for _, def := range r.definitions {
		defs = append(defs, def)
	}

	sort.Slice(defs, func(i, j int) bool { return defs[i].ID < defs[j].ID })

	return defs
}

func validateDefinition(def *models.ActionDefinition) error {
	if def == nil || def.ID == "" {
		return fmt.Errorf("missing identifier: %w", ErrInvalidDefinition)
	}

	if def.Handler == nil {
		return &ActionError{Op: "register", ActionID: def.ID, Err: fmt.Errorf("missing handler: %w", ErrInvalidDefinition)}
	}

	seen := make(map[string]bool, len(def.Parameters))

	for _, p := range def.Parameters {
		if p.Name == "" {
			return &ActionError{Op: "register", ActionID: def.ID, Err: fmt.Errorf("unnamed parameter: %w", ErrInvalidDefinition)}
		}

		if seen[p.Name] {
			return &ActionError{Op: "register", ActionID: def.ID, Err: fmt.Errorf("parameter %q declared twice: %w", p.Name, ErrInvalidDefinition)}
		}

		seen[p.Name] = true

		if !models.KnownParameterType(p.Type) {
			return &ActionError{Op: "register", ActionID: def.ID, Err: fmt.Errorf("parameter %q has unknown type %q: %w", p.Name, p.Type, ErrInvalidDefinition)}
		}
	}

	if def.Returns != "" && !models.KnownParameterType(def.Returns) {
		return &ActionError{Op: "register", ActionID: def.ID, Err: fmt.Errorf("unknown return type %q: %w", def.Returns, ErrInvalidDefinition)}
	}

	return nil
}
