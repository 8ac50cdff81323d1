// Package cmd provides common initialization for the command-line binaries.
package cmd

import (
	"log/slog"

	loghandler "github.com/plexmo/plexmo/pkg/handlers/log"

	"github.com/plexmo/plexmo/pkg/handlers/httprequest"
	"github.com/plexmo/plexmo/pkg/handlers/wait"
	"github.com/plexmo/plexmo/pkg/models"
	"github.com/plexmo/plexmo/pkg/registry"
)

// NewRegistry builds the action registry with the native handlers and any
// handler plugins found under pluginsPath.
func NewRegistry(logger *slog.Logger, pluginsPath string) *registry.Registry {
	reg := registry.NewRegistry(logger)

	mustRegister(reg, loghandler.Definition(logger))
	mustRegister(reg, wait.Definition())
	mustRegister(reg, httprequest.Definition())

	if pluginsPath != "" {
		if err := reg.LoadPlugins(pluginsPath); err != nil {
			panic(err)
		}
	}

	return reg
}

func mustRegister(reg *registry.Registry, def *models.ActionDefinition) {
	if err := reg.Register(def); err != nil {
		panic(err)
	}
}
