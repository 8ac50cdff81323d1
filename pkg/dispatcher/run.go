package dispatcher

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/plexmo/plexmo/pkg/eventbus"
	"github.com/plexmo/plexmo/pkg/events"
	"github.com/plexmo/plexmo/pkg/models"
	"github.com/plexmo/plexmo/pkg/otelhelper"
	"github.com/plexmo/plexmo/pkg/plan"
)

// outcome is what a worker goroutine reports back to the step loop.
type outcome struct {
	actionID string
	result   any
	err      error
}

// run is the state of one dispatch. The step loop is the only writer of
// execution records; worker goroutines report through the results channel.
// The record mutex only serializes status reads from other goroutines
// (PendingActions) against the loop's writes.
type run struct {
	dispatcher  *Dispatcher
	plan        *plan.Plan
	definitions map[string]*models.ActionDefinition
	trace       *models.ExecutionTrace
	results     chan outcome
	logger      *slog.Logger

	mu      sync.Mutex
	running int
	halted  bool
	aborted bool
}

func (r *run) loop(ctx context.Context) error {
	for {
		if err := r.launchReady(ctx); err != nil {
			return err
		}

		if r.trace.AllTerminal() {
			return nil
		}

		if r.running == 0 {
			pending := r.trace.CountByStatus(models.ActionPending)

			return fmt.Errorf("dispatch stalled with %d pending actions and nothing running", pending)
		}

		select {
		case res := <-r.results:
			r.running--

			if err := r.complete(ctx, res); err != nil {
				return err
			}
		case <-ctx.Done():
			r.aborted = true
			r.abort("plan aborted")

			return nil
		}
	}
}

// launchReady sweeps the pending actions and starts (or skips) every action
// whose ordering predecessors are all terminal. Skips can make further
// actions decidable, so the sweep repeats until it makes no progress.
func (r *run) launchReady(ctx context.Context) error {
	for progress := true; progress; {
		progress = false

		for _, action := range r.plan.Actions {
			record := r.trace.Record(action.ID)
			if record.Status != models.ActionPending {
				continue
			}

			ready, eligible, blocker := r.readiness(action.ID)
			if !ready {
				continue
			}

			if !eligible {
				r.skip(ctx, action, fmt.Sprintf("ordering predecessor %q did not succeed", blocker))

				progress = true

				continue
			}

			if r.halted {
				r.skip(ctx, action, "plan halted after earlier failure")

				progress = true

				continue
			}

			vetoed, err := r.reviewStart(ctx, action)
			if err != nil {
				return err
			}

			if vetoed {
				progress = true

				continue
			}

			r.start(ctx, action)
		}
	}

	return nil
}

// readiness reports whether all ordering predecessors of the action are
// terminal, and whether they all succeeded. blocker names the first
// predecessor that did not.
func (r *run) readiness(actionID string) (ready, eligible bool, blocker string) {
	ready, eligible = true, true

	for _, pred := range r.plan.Predecessors(actionID) {
		status := r.trace.Record(pred).Status
		if !status.Terminal() {
			return false, false, pred
		}

		if status != models.ActionSucceeded && eligible {
			eligible = false
			blocker = pred
		}
	}

	return ready, eligible, blocker
}

// reviewStart gives the monitor its synchronous pre-start check. In dry-run
// mode unsatisfied preconditions are logged but not enforced.
func (r *run) reviewStart(ctx context.Context, action *models.PlanAction) (vetoed bool, err error) {
	if r.dispatcher.monitor == nil {
		return false, nil
	}

	ok, diagnostics, err := r.dispatcher.monitor.ReviewStart(ctx, action)
	if err != nil {
		return false, err
	}

	if ok {
		return false, nil
	}

	if r.dispatcher.options.DryRun {
		r.logger.Warn("Preconditions unsatisfied, continuing dry run", "action", action.ID, "diagnostics", diagnostics)

		return false, nil
	}

	r.skip(ctx, action, "precondition unsatisfied", diagnostics...)

	return true, nil
}

func (r *run) start(ctx context.Context, action *models.PlanAction) {
	record := r.trace.Record(action.ID)
	now := time.Now().UTC()
	record.StartedAt = &now
	r.setStatus(record, models.ActionRunning)
	r.running++

	r.logger.Info("Starting action", "action", action.ID, "handler", action.Action)
	r.publish(ctx, events.ActionStarted{
		BaseEvent: events.NewBaseEvent(events.ActionStartedEvent, r.trace.ID, r.trace.PlanName),
		ActionID:  action.ID,
		Action:    action.Action,
		Args:      action.Arguments,
	})

	if r.dispatcher.options.DryRun {
		r.results <- outcome{actionID: action.ID}

		return
	}

	definition := r.definitions[action.ID]
	go r.execute(ctx, action, definition)
}

// execute runs one action in its own goroutine. A timeout cancels the
// action's context; if the handler does not return on cancellation it keeps
// running, but its eventual result is discarded.
func (r *run) execute(ctx context.Context, action *models.PlanAction, definition *models.ActionDefinition) {
	actionCtx := ctx

	if r.dispatcher.options.ActionTimeout > 0 {
		var cancel context.CancelFunc

		actionCtx, cancel = context.WithTimeout(ctx, r.dispatcher.options.ActionTimeout)
		defer cancel()
	}

	var span trace.Span

	if r.dispatcher.tracer != nil {
		actionCtx, span = otelhelper.StartSpan(actionCtx, r.dispatcher.tracer, "execute_action",
			attribute.String(otelhelper.ActionIDKey, action.ID),
			attribute.String(otelhelper.ActionNameKey, action.Action),
			attribute.String(otelhelper.ExecutionIDKey, r.trace.ID),
		)
		defer span.End()
	}

	done := make(chan outcome, 1)

	go func() {
		result, err := definition.Handler.Execute(actionCtx, action.Arguments)
		done <- outcome{actionID: action.ID, result: result, err: err}
	}()

	var out outcome
	select {
	case out = <-done:
	case <-actionCtx.Done():
		out = outcome{actionID: action.ID, err: actionCtx.Err()}
	}

	if out.err != nil && span != nil {
		otelhelper.SetError(span, out.err)
	}

	r.results <- out
}

func (r *run) complete(ctx context.Context, res outcome) error {
	record := r.trace.Record(res.actionID)
	if record.Status != models.ActionRunning {
		// Late result of a discarded execution.
		return nil
	}

	now := time.Now().UTC()
	record.FinishedAt = &now

	if res.err != nil {
		r.fail(ctx, record, res.err.Error(), nil)

		return nil
	}

	action := r.plan.Action(res.actionID)

	if r.dispatcher.monitor != nil && !r.dispatcher.options.DryRun {
		violations, err := r.dispatcher.monitor.ReviewOutcome(ctx, action)
		if err != nil {
			return err
		}

		if len(violations) > 0 {
			// The handler reported success but the expected effects do not
			// hold: demote to failed.
			r.fail(ctx, record, "postconditions unsatisfied", violations)

			return nil
		}
	}

	record.Result = res.result
	r.setStatus(record, models.ActionSucceeded)

	r.logger.Info("Action succeeded", "action", record.ActionID)
	r.publish(ctx, events.ActionFinished{
		BaseEvent:  events.NewBaseEvent(events.ActionFinishedEvent, r.trace.ID, r.trace.PlanName),
		ActionID:   record.ActionID,
		Action:     record.Action,
		Result:     res.result,
		DurationMs: now.Sub(*record.StartedAt).Milliseconds(),
	})

	return nil
}

func (r *run) fail(ctx context.Context, record *models.ExecutionRecord, message string, diagnostics []string) {
	record.Error = message
	record.Diagnostics = diagnostics
	r.setStatus(record, models.ActionFailed)

	if !r.dispatcher.options.ContinueOnFailure {
		r.halted = true
	}

	r.logger.Warn("Action failed", "action", record.ActionID, "error", message)
	r.publish(ctx, events.ActionFailed{
		BaseEvent:   events.NewBaseEvent(events.ActionFailedEvent, r.trace.ID, r.trace.PlanName),
		ActionID:    record.ActionID,
		Action:      record.Action,
		Error:       message,
		Diagnostics: diagnostics,
	})
}

func (r *run) skip(ctx context.Context, action *models.PlanAction, reason string, diagnostics ...string) {
	record := r.trace.Record(action.ID)
	record.Diagnostics = append([]string{reason}, diagnostics...)
	r.setStatus(record, models.ActionSkipped)

	r.logger.Info("Action skipped", "action", action.ID, "reason", reason)
	r.publish(ctx, events.ActionSkipped{
		BaseEvent:   events.NewBaseEvent(events.ActionSkippedEvent, r.trace.ID, r.trace.PlanName),
		ActionID:    action.ID,
		Action:      action.Action,
		Diagnostics: record.Diagnostics,
	})
}

// abort transitions every non-terminal action to skipped. In-flight
// executions keep running until their context cancellation takes effect;
// their results are discarded by complete.
func (r *run) abort(reason string) {
	for _, action := range r.plan.Actions {
		record := r.trace.Record(action.ID)
		if record.Status.Terminal() {
			continue
		}

		record.Diagnostics = append(record.Diagnostics, reason)
		r.setStatus(record, models.ActionSkipped)
	}
}

func (r *run) finalStatus() models.PlanStatus {
	if r.aborted {
		return models.PlanAborted
	}

	failed := r.trace.CountByStatus(models.ActionFailed)
	skipped := r.trace.CountByStatus(models.ActionSkipped)
	succeeded := r.trace.CountByStatus(models.ActionSucceeded)

	switch {
	case failed == 0 && skipped == 0:
		return models.PlanSucceeded
	case failed > 0 && r.dispatcher.options.ContinueOnFailure && succeeded > 0:
		return models.PlanPartialFailure
	case failed > 0:
		return models.PlanFailed
	default:
		// Nothing failed, but monitor vetoes kept parts of the plan from
		// running.
		return models.PlanPartialFailure
	}
}

func (r *run) setStatus(record *models.ExecutionRecord, status models.ActionStatus) {
	r.mu.Lock()
	record.Status = status
	r.mu.Unlock()
}

func (r *run) pendingActions() []*models.PlanAction {
	r.mu.Lock()
	defer r.mu.Unlock()

	var pending []*models.PlanAction

	for _, action := range r.plan.Actions {
		if r.trace.Record(action.ID).Status == models.ActionPending {
			pending = append(pending, action)
		}
	}

	return pending
}

func (r *run) publish(ctx context.Context, event eventbus.Event) {
	if r.dispatcher.publisher == nil {
		return
	}

	if err := r.dispatcher.publisher.Publish(ctx, r.trace.ID, event); err != nil {
		r.logger.Warn("Failed to publish dispatch event", "event", event.GetType(), "error", err)
	}
}
