package models

import "time"

// ActionStatus is the lifecycle state of one plan action during dispatch.
type ActionStatus string

const (
	ActionPending   ActionStatus = "pending"
	ActionRunning   ActionStatus = "running"
	ActionSucceeded ActionStatus = "succeeded"
	ActionFailed    ActionStatus = "failed"
	ActionSkipped   ActionStatus = "skipped"
)

// Terminal reports whether the status is one of the terminal states.
func (s ActionStatus) Terminal() bool {
	switch s {
	case ActionSucceeded, ActionFailed, ActionSkipped:
		return true
	}

	return false
}

// PlanStatus is the overall outcome of one dispatch run.
type PlanStatus string

const (
	PlanPending        PlanStatus = "pending"
	PlanRunning        PlanStatus = "running"
	PlanSucceeded      PlanStatus = "succeeded"
	PlanFailed         PlanStatus = "failed"
	PlanPartialFailure PlanStatus = "partial_failure"
	PlanAborted        PlanStatus = "aborted"
)

// ExecutionRecord is the per-action outcome of a dispatch run. Only the
// dispatcher's step loop mutates it; external consumers read it after the
// action reaches a terminal state.
type ExecutionRecord struct {
	ActionID    string       `json:"action_id"`
	Action      string       `json:"action"`
	Status      ActionStatus `json:"status"`
	StartedAt   *time.Time   `json:"started_at,omitempty"`
	FinishedAt  *time.Time   `json:"finished_at,omitempty"`
	Result      any          `json:"result,omitempty"`
	Error       string       `json:"error,omitempty"`
	Diagnostics []string     `json:"diagnostics,omitempty"`
}

// ExecutionTrace collects the execution records of one dispatch run.
type ExecutionTrace struct {
	ID         string                      `json:"id"`
	PlanName   string                      `json:"plan_name"`
	Status     PlanStatus                  `json:"status"`
	StartedAt  time.Time                   `json:"started_at"`
	FinishedAt *time.Time                  `json:"finished_at,omitempty"`
	Error      string                      `json:"error,omitempty"`
	Records    map[string]*ExecutionRecord `json:"records"`
}

// Record returns the execution record for the given plan action id.
func (t *ExecutionTrace) Record(actionID string) *ExecutionRecord {
	return t.Records[actionID]
}

// AllTerminal reports whether every record reached a terminal status.
func (t *ExecutionTrace) AllTerminal() bool {
	for _, r := range t.Records {
		if !r.Status.Terminal() {
			return false
		}
	}

	return true
}

// CountByStatus returns how many records currently hold the given status.
func (t *ExecutionTrace) CountByStatus(status ActionStatus) int {
	count := 0

	for _, r := range t.Records {
		if r.Status == status {
			count++
		}
	}

	return count
}
