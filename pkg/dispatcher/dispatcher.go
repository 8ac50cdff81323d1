// Package dispatcher executes validated plans against the action registry,
// respecting their ordering constraints and producing execution records.
package dispatcher

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/plexmo/plexmo/pkg/eventbus"
	"github.com/plexmo/plexmo/pkg/events"
	"github.com/plexmo/plexmo/pkg/models"
	"github.com/plexmo/plexmo/pkg/otelhelper"
	"github.com/plexmo/plexmo/pkg/plan"
	"github.com/plexmo/plexmo/pkg/registry"
)

// Monitor is the dispatcher-side view of the plan monitor. ReviewStart is
// called synchronously before an action starts and may veto it; ReviewOutcome
// is called after an action reports success and returns the unsatisfied
// expected effects, if any.
type Monitor interface {
	ReviewStart(ctx context.Context, action *models.PlanAction) (bool, []string, error)
	ReviewOutcome(ctx context.Context, action *models.PlanAction) ([]string, error)
}

// Dispatcher drives the execution of plans. It is reusable: each Dispatch
// call runs with its own state.
type Dispatcher struct {
	registry  *registry.Registry
	monitor   Monitor
	publisher eventbus.EventPublisher
	tracer    trace.Tracer
	logger    *slog.Logger
	options   Options

	mu      sync.Mutex
	current *run
}

func NewDispatcher(reg *registry.Registry, monitor Monitor, publisher eventbus.EventPublisher, logger *slog.Logger, options Options) *Dispatcher {
	return &Dispatcher{
		registry:  reg,
		monitor:   monitor,
		publisher: publisher,
		logger:    logger,
		options:   options,
	}
}

// SetTracer enables per-plan and per-action tracing spans.
func (d *Dispatcher) SetTracer(tracer trace.Tracer) {
	d.tracer = tracer
}

// PendingActions returns the actions of the current run that have not
// started yet. Used by the monitor watcher; returns nil between runs.
func (d *Dispatcher) PendingActions() []*models.PlanAction {
	d.mu.Lock()
	r := d.current
	d.mu.Unlock()

	if r == nil {
		return nil
	}

	return r.pendingActions()
}

// Dispatch executes the plan and returns its execution trace. Action
// failures and monitor vetoes are recorded in the trace, not returned as
// errors; an error return means dispatch could not run or aborted on an
// internal fault.
func (d *Dispatcher) Dispatch(ctx context.Context, p *plan.Plan) (*models.ExecutionTrace, error) {
	executionID := "exec-" + uuid.New().String()[:8]
	logger := d.logger.With("execution_id", executionID, "plan", p.Name)

	// Every action must resolve before dispatch begins.
	definitions := make(map[string]*models.ActionDefinition, p.Size())

	for _, action := range p.Actions {
		def, err := d.registry.Resolve(action.Action)
		if err != nil {
			return nil, fmt.Errorf("plan %q is not dispatchable: %w", p.Name, err)
		}

		definitions[action.ID] = def
	}

	if d.tracer != nil {
		var span trace.Span

		ctx, span = otelhelper.StartSpan(ctx, d.tracer, "dispatch_plan",
			attribute.String(otelhelper.PlanNameKey, p.Name),
			attribute.String(otelhelper.PlanTypeKey, string(p.Type)),
			attribute.String(otelhelper.ExecutionIDKey, executionID),
		)
		defer span.End()
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	r := &run{
		dispatcher:  d,
		plan:        p,
		definitions: definitions,
		trace:       newTrace(executionID, p),
		results:     make(chan outcome, p.Size()),
		logger:      logger,
	}

	d.mu.Lock()
	d.current = r
	d.mu.Unlock()

	defer func() {
		d.mu.Lock()
		d.current = nil
		d.mu.Unlock()
	}()

	logger.Info("Starting plan dispatch", "actions", p.Size(), "type", p.Type, "dry_run", d.options.DryRun)
	r.trace.Status = models.PlanRunning
	r.publish(runCtx, events.DispatchStarted{
		BaseEvent:   events.NewBaseEvent(events.DispatchStartedEvent, executionID, p.Name),
		PlanType:    p.Type,
		ActionCount: p.Size(),
	})

	err := r.loop(runCtx)

	now := time.Now().UTC()
	r.trace.FinishedAt = &now

	if err != nil {
		// Dispatcher-internal fault: the whole plan fails.
		r.abort("dispatch aborted: " + err.Error())
		r.trace.Status = models.PlanFailed
		r.trace.Error = err.Error()
	} else {
		r.trace.Status = r.finalStatus()
	}

	logger.Info("Finished plan dispatch", "status", r.trace.Status,
		"succeeded", r.trace.CountByStatus(models.ActionSucceeded),
		"failed", r.trace.CountByStatus(models.ActionFailed),
		"skipped", r.trace.CountByStatus(models.ActionSkipped))

	r.publish(context.WithoutCancel(runCtx), events.DispatchFinished{
		BaseEvent: events.NewBaseEvent(events.DispatchFinishedEvent, executionID, p.Name),
		Status:    r.trace.Status,
		Error:     r.trace.Error,
		Duration:  now.Sub(r.trace.StartedAt),
	})

	if d.options.Replan != nil &&
		(r.trace.Status == models.PlanFailed || r.trace.Status == models.PlanPartialFailure) {
		d.options.Replan(context.WithoutCancel(runCtx), p, r.trace)
	}

	return r.trace, err
}

func newTrace(executionID string, p *plan.Plan) *models.ExecutionTrace {
	records := make(map[string]*models.ExecutionRecord, p.Size())
	for _, action := range p.Actions {
		records[action.ID] = &models.ExecutionRecord{
			ActionID: action.ID,
			Action:   action.Action,
			Status:   models.ActionPending,
		}
	}

	return &models.ExecutionTrace{
		ID:        executionID,
		PlanName:  p.Name,
		Status:    models.PlanPending,
		StartedAt: time.Now().UTC(),
		Records:   records,
	}
}
