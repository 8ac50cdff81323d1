package main

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	cli "github.com/urfave/cli/v3"

	"github.com/plexmo/plexmo/pkg/cmd"
	"github.com/plexmo/plexmo/pkg/dispatcher"
	"github.com/plexmo/plexmo/pkg/log"
	"github.com/plexmo/plexmo/pkg/models"
	"github.com/plexmo/plexmo/pkg/monitor"
	"github.com/plexmo/plexmo/pkg/otelhelper"
	"github.com/plexmo/plexmo/pkg/plan"
)

func NewDispatchCommand() *cli.Command {
	return &cli.Command{
		Name:    "dispatch",
		Aliases: []string{"d"},
		Usage:   "Validate and execute a plan file",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "plan-file",
				Aliases:  []string{"f"},
				Usage:    "Path to the plan document produced by the planning engine",
				Required: true,
				Sources:  cli.EnvVars("PLAN_FILE"),
			},
			&cli.StringFlag{
				Name:    "event-bus",
				Usage:   "Event bus provider for the dispatch event stream (gochannel, kafka)",
				Value:   "gochannel",
				Sources: cli.EnvVars("EVENT_BUS_TYPE"),
			},
			&cli.StringFlag{
				Name:    "state-provider",
				Usage:   "System state source for the monitor (static, redis)",
				Value:   "static",
				Sources: cli.EnvVars("STATE_PROVIDER"),
			},
			&cli.StringFlag{
				Name:    "state-file",
				Usage:   "JSON file with grounded fluent values for the static state provider",
				Sources: cli.EnvVars("STATE_FILE"),
			},
			&cli.StringFlag{
				Name:    "redis-addr",
				Usage:   "Redis address for the redis state provider",
				Value:   "localhost:6379",
				Sources: cli.EnvVars("REDIS_ADDR"),
			},
			&cli.StringFlag{
				Name:    "state-key",
				Usage:   "Redis hash key holding the current state",
				Sources: cli.EnvVars("STATE_KEY"),
			},
			&cli.StringFlag{
				Name:    "database-url",
				Usage:   "Storage location for execution traces",
				Value:   "file://./data",
				Sources: cli.EnvVars("DATABASE_URL"),
			},
			&cli.StringFlag{
				Name:    "plugins-path",
				Usage:   "Path to the directory containing handler plugins",
				Sources: cli.EnvVars("PLUGINS_PATH"),
			},
			&cli.BoolFlag{
				Name:    "continue-on-failure",
				Usage:   "Keep independent plan branches running after an action fails",
				Sources: cli.EnvVars("CONTINUE_ON_FAILURE"),
			},
			&cli.DurationFlag{
				Name:    "action-timeout",
				Usage:   "Per-action execution timeout (0 disables)",
				Sources: cli.EnvVars("ACTION_TIMEOUT"),
			},
			&cli.BoolFlag{
				Name:  "dry-run",
				Usage: "Evaluate conditions without enforcing them and skip handler execution",
			},
			&cli.BoolFlag{
				Name:    "tracing",
				Usage:   "Export dispatch and action spans over OTLP",
				Sources: cli.EnvVars("TRACING_ENABLED"),
			},
			&cli.StringFlag{
				Name:  "watch-spec",
				Usage: "Cron spec for periodic precondition re-validation of pending actions (empty disables)",
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (debug, info, warn, error)",
				Value:   "info",
				Sources: cli.EnvVars("LOG_LEVEL"),
			},
		},
		Action: runDispatch,
	}
}

func runDispatch(ctx context.Context, command *cli.Command) error {
	log.Setup(command.String("log-level"))

	dispatchID := "dispatch-" + uuid.New().String()[:8]
	logger := log.WithModule("plexmo").With("dispatch_id", dispatchID)

	logger.InfoContext(ctx, "Initializing plan dispatch")

	reg := cmd.NewRegistry(logger, command.String("plugins-path"))

	adapter := plan.NewAdapter(reg, logger)

	executablePlan, err := adapter.LoadFile(command.String("plan-file"))
	if err != nil {
		return fmt.Errorf("plan validation failed: %w", err)
	}

	stateProvider, err := cmd.NewStateProvider(ctx,
		command.String("state-provider"),
		command.String("state-file"),
		command.String("redis-addr"),
		command.String("state-key"),
		logger,
	)
	if err != nil {
		return err
	}

	eventBus := cmd.NewEventBus(command.String("event-bus"), logger)
	defer func() {
		if err := eventBus.Close(); err != nil {
			logger.ErrorContext(ctx, "Failed to close event bus", "error", err)
		}
	}()

	persistence := cmd.NewPersistence(command.String("database-url"))
	defer func() {
		if err := persistence.Close(ctx); err != nil {
			logger.ErrorContext(ctx, "Failed to close persistence", "error", err)
		}
	}()

	planMonitor := monitor.NewMonitor(stateProvider, logger)

	disp := dispatcher.NewDispatcher(reg, planMonitor, eventBus, logger, dispatcher.Options{
		ContinueOnFailure: command.Bool("continue-on-failure"),
		ActionTimeout:     command.Duration("action-timeout"),
		DryRun:            command.Bool("dry-run"),
	})

	if command.Bool("tracing") {
		tracer, err := otelhelper.NewTracer(ctx, "plexmo")
		if err != nil {
			return fmt.Errorf("failed to initialize tracer: %w", err)
		}

		disp.SetTracer(tracer)
	}

	if spec := command.String("watch-spec"); spec != "" {
		watcher := monitor.NewWatcher(planMonitor, logger)
		if err := watcher.Start(ctx, spec, disp.PendingActions); err != nil {
			return fmt.Errorf("failed to start precondition watcher: %w", err)
		}

		defer watcher.Stop()
	}

	trace, err := disp.Dispatch(ctx, executablePlan)

	if trace != nil {
		if saveErr := persistence.SaveTrace(ctx, trace); saveErr != nil {
			logger.ErrorContext(ctx, "Failed to store execution trace", "error", saveErr)
		}
	}

	if err != nil {
		return fmt.Errorf("dispatch failed: %w", err)
	}

	logger.InfoContext(ctx, "Dispatch complete", "execution_id", trace.ID, "status", trace.Status)

	if trace.Status != models.PlanSucceeded {
		return fmt.Errorf("plan %q finished with status %s", executablePlan.Name, trace.Status)
	}

	return nil
}
