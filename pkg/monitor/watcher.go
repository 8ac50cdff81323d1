package monitor

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"

	"github.com/plexmo/plexmo/pkg/models"
)

// PendingActionsFunc returns the plan actions that have not started yet.
type PendingActionsFunc func() []*models.PlanAction

// Watcher periodically re-validates the preconditions of not-yet-started
// actions and logs drift between planning assumptions and the live state.
// It is observability only: the authoritative check stays in the dispatch
// path, where a veto turns into a skip.
type Watcher struct {
	monitor *Monitor
	cron    *cron.Cron
	logger  *slog.Logger
}

func NewWatcher(monitor *Monitor, logger *slog.Logger) *Watcher {
	return &Watcher{
		monitor: monitor,
		cron:    cron.New(),
		logger:  logger,
	}
}

// Start schedules precondition re-checks with a cron spec such as
// "@every 5s". pending is polled on every tick.
func (w *Watcher) Start(ctx context.Context, spec string, pending PendingActionsFunc) error {
	_, err := w.cron.AddFunc(spec, func() {
		w.check(ctx, pending())
	})
	if err != nil {
		return err
	}

	w.cron.Start()

	return nil
}

// Stop stops the schedule and waits for a running check to finish.
func (w *Watcher) Stop() {
	<-w.cron.Stop().Done()
}

func (w *Watcher) check(ctx context.Context, actions []*models.PlanAction) {
	for _, action := range actions {
		ok, diagnostics, err := w.monitor.ReviewStart(ctx, action)
		if err != nil {
			w.logger.Warn("Precondition watch failed", "action", action.ID, "error", err)

			return
		}

		if !ok {
			w.logger.Warn("Pending action preconditions drifted", "action", action.ID, "diagnostics", diagnostics)
		}
	}
}
