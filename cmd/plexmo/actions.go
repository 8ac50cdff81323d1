package main

import (
	"context"
	"fmt"

	cli "github.com/urfave/cli/v3"

	"github.com/plexmo/plexmo/pkg/cmd"
	"github.com/plexmo/plexmo/pkg/log"
)

func NewActionsCommand() *cli.Command {
	return &cli.Command{
		Name:    "actions",
		Aliases: []string{"a"},
		Usage:   "List the registered executable actions",
		Flags: []cli.Flag{
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

			for _, def := range reg.Definitions() {
				fmt.Printf("%s\t%s\n", def.ID, def.Description)

				for _, param := range def.Parameters {
					fmt.Printf("  - %s: %s\n", param.Name, param.Type)
				}
			}

			return nil
		},
	}
}
