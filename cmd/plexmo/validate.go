package main

import (
	"context"
	"fmt"

	cli "github.com/urfave/cli/v3"

	"github.com/plexmo/plexmo/pkg/cmd"
	"github.com/plexmo/plexmo/pkg/log"
	"github.com/plexmo/plexmo/pkg/plan"
)

func NewValidateCommand() *cli.Command {
	return &cli.Command{
		Name:    "validate",
		Aliases: []string{"v"},
		Usage:   "Validate a plan file without executing it",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "plan-file",
				Aliases:  []string{"f"},
				Usage:    "Path to the plan document to validate",
				Required: true,
				Sources:  cli.EnvVars("PLAN_FILE"),
			},
			&cli.StringFlag{
				Name:    "plugins-path",
				Usage:   "Path to the directory containing handler plugins",
				Sources: cli.EnvVars("PLUGINS_PATH"),
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (debug, info, warn, error)",
				Value:   "info",
				Sources: cli.EnvVars("LOG_LEVEL"),
			},
		},
		Action: func(ctx context.Context, command *cli.Command) error {
			log.Setup(command.String("log-level"))

			logger := log.WithModule("plexmo")

			reg := cmd.NewRegistry(logger, command.String("plugins-path"))
			adapter := plan.NewAdapter(reg, logger)

			executablePlan, err := adapter.LoadFile(command.String("plan-file"))
			if err != nil {
				return fmt.Errorf("plan validation failed: %w", err)
			}

			fmt.Printf("Plan %q is valid: %d actions, type %s\n",
				executablePlan.Name, executablePlan.Size(), executablePlan.Type)

			return nil
		},
	}
}
