package dispatcher

import (
	"context"
	"time"

	"github.com/plexmo/plexmo/pkg/models"
	"github.com/plexmo/plexmo/pkg/plan"
)

// ReplanFunc is the extension point invoked when a dispatch run terminates
// in failure, with the final trace. Implementations typically hand the trace
// back to the planning engine to request a new plan.
type ReplanFunc func(ctx context.Context, p *plan.Plan, trace *models.ExecutionTrace)

// Options configures one dispatcher.
type Options struct {
	// ContinueOnFailure keeps independent branches running after an action
	// fails. The default halts the whole plan: every non-terminal action is
	// skipped and the plan result is failed.
	ContinueOnFailure bool

	// ActionTimeout bounds each action execution. Zero means no timeout.
	// Expiry cancels the action's context; handlers that do not support
	// cancellation keep running but their result is discarded.
	ActionTimeout time.Duration

	// DryRun evaluates and logs conditions without enforcing them and
	// records every action as succeeded without invoking its handler.
	DryRun bool

	// Replan, if set, is called after a run ends in failed or
	// partial-failure state.
	Replan ReplanFunc
}
