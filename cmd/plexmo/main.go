package main

import (
	"context"
	"os"

	cli "github.com/urfave/cli/v3"
)

func main() {
	cmd := &cli.Command{
		Name:                  "plexmo",
		EnableShellCompletion: true,
		Usage:                 "Dispatch and monitor plans produced by an external planning engine",
		Commands: []*cli.Command{
			NewDispatchCommand(),
			NewValidateCommand(),
			NewActionsCommand(),
		},
	}

	err := cmd.Run(context.Background(), os.Args)
	if err != nil {
		panic(err)
	}
}
