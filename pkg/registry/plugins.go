package registry

import (
	"io/fs"
	"log/slog"
	"os"
	"plugin"

	"github.com/plexmo/plexmo/pkg/models"
)

// DefinitionProvider is the symbol contract for handler plugins: each .so
// exports a "Definition" symbol implementing this interface.
type DefinitionProvider interface {
	Definition() *models.ActionDefinition
}

// LoadPlugins opens every handler plugin under pluginsPath and registers the
// action definition it provides.
func (r *Registry) LoadPlugins(pluginsPath string) error {
	root := os.DirFS(pluginsPath)

	pluginPathList, err := fs.Glob(root, "**/*.so")
	if err != nil {
		return err
	}

	l := r.logger.With(slog.String("path", pluginsPath))
	l.Info("Loading handler plugins", "count", len(pluginPathList))

	for _, p := range pluginPathList {
		plg, err := plugin.Open(pluginsPath + "/" + p)
		if err != nil {
			return err
		}

		symbol, err := plg.Lookup("Definition")
		if err != nil {
			return err
		}

		provider, ok := symbol.(DefinitionProvider)
		if !ok {
			return &ActionError{Op: "load plugin", ActionID: p, Err: ErrInvalidDefinition}
		}

		if err := r.Register(provider.Definition()); err != nil {
			return err
		}

		l.Info("Loaded handler plugin", slog.String("plugin", p))
	}

	return nil
}
