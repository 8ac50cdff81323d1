// Package monitor re-validates action pre- and postconditions against the
// current system state during dispatch.
package monitor

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/plexmo/plexmo/pkg/models"
	"github.com/plexmo/plexmo/pkg/state"
)

// Monitor evaluates structural conditions against state snapshots. Condition
// evaluation is pure: the same (action, snapshot) pair always yields the
// same answer, and no state is mutated.
type Monitor struct {
	provider state.Provider
	logger   *slog.Logger
}

func NewMonitor(provider state.Provider, logger *slog.Logger) *Monitor {
	return &Monitor{provider: provider, logger: logger}
}

// CheckPreconditions reports whether every precondition of the action holds
// in the snapshot, along with a diagnostic per unsatisfied condition.
func (m *Monitor) CheckPreconditions(action *models.PlanAction, snapshot *models.StateSnapshot) (bool, []string) {
	diagnostics := evaluate(action.Preconditions, snapshot)

	return len(diagnostics) == 0, diagnostics
}

// CheckPostconditions returns a diagnostic for every expected effect of the
// action that does not hold in the snapshot. An empty result means all
// postconditions are satisfied.
func (m *Monitor) CheckPostconditions(action *models.PlanAction, snapshot *models.StateSnapshot) []string {
	return evaluate(action.Postconditions, snapshot)
}

// ReviewStart takes a fresh snapshot and checks the action's preconditions.
// The dispatcher calls this synchronously before starting an action; false
// vetoes the action.
func (m *Monitor) ReviewStart(ctx context.Context, action *models.PlanAction) (bool, []string, error) {
	if len(action.Preconditions) == 0 {
		return true, nil, nil
	}

	snapshot, err := m.provider.Snapshot(ctx)
	if err != nil {
		return false, nil, fmt.Errorf("state snapshot for precondition check of %q: %w", action.ID, err)
	}

	ok, diagnostics := m.CheckPreconditions(action, snapshot)
	if !ok {
		m.logger.Debug("Preconditions unsatisfied", "action", action.ID, "diagnostics", diagnostics)
	}

	return ok, diagnostics, nil
}

// ReviewOutcome takes a fresh snapshot and checks the action's
// postconditions after it reported success.
func (m *Monitor) ReviewOutcome(ctx context.Context, action *models.PlanAction) ([]string, error) {
	if len(action.Postconditions) == 0 {
		return nil, nil
	}

	snapshot, err := m.provider.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("state snapshot for postcondition check of %q: %w", action.ID, err)
	}

	violations := m.CheckPostconditions(action, snapshot)
	if len(violations) > 0 {
		m.logger.Debug("Postconditions unsatisfied", "action", action.ID, "violations", violations)
	}

	return violations, nil
}

func evaluate(conditions []models.Condition, snapshot *models.StateSnapshot) []string {
	var diagnostics []string

	for _, condition := range conditions {
		actual, ok := snapshot.Lookup(condition.Key())
		if !ok {
			diagnostics = append(diagnostics, fmt.Sprintf("fluent %s is not present in the state snapshot", condition.Key()))

			continue
		}

		holds, err := compare(condition.Op(), actual, condition.Value)
		if err != nil {
			diagnostics = append(diagnostics, fmt.Sprintf("condition %s: %v", condition, err))

			continue
		}

		if !holds {
			diagnostics = append(diagnostics, fmt.Sprintf("condition %s does not hold, current value is %v", condition, actual))
		}
	}

	return diagnostics
}
