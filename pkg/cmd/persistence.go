package cmd

import (
	"github.com/plexmo/plexmo/pkg/persistence"
	"github.com/plexmo/plexmo/pkg/persistence/file"
)

// NewPersistence builds the trace store from a database URL. Only the file
// provider is implemented; anything else falls back to it.
func NewPersistence(databaseURL string) persistence.Persistence {
	return file.NewPersistence(databaseURL)
}
