// Package log provides a diagnostic handler that logs its message argument.
package log

import (
	"context"
	"log/slog"

	"github.com/plexmo/plexmo/pkg/models"
	"github.com/plexmo/plexmo/pkg/protocol"
)

type Handler struct {
	logger *slog.Logger
}

func NewHandler(logger *slog.Logger) *Handler {
	return &Handler{logger: logger}
}

func (h *Handler) Execute(_ context.Context, args map[string]any) (any, error) {
	message, _ := args["message"].(string)

	h.logger.Info("Log action", "message", message)

	return map[string]any{"message": message}, nil
}

// Definition returns the registrable action definition for this handler.
func Definition(logger *slog.Logger) *models.ActionDefinition {
	return &models.ActionDefinition{
		ID:          "log",
		Description: "Logs a message through the structured logger.",
		Parameters: []models.Parameter{
			{Name: "message", Type: models.ParameterString},
		},
		Returns: models.ParameterObject,
		Handler: protocol.Handler(NewHandler(logger)),
	}
}
