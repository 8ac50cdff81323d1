// Package wait provides a handler that waits a bounded amount of wall-clock
// time. It supports cooperative cancellation, which makes it useful for
// exercising per-action timeouts and plan aborts.
package wait

import (
	"context"
	"time"

	"github.com/plexmo/plexmo/pkg/models"
	"github.com/plexmo/plexmo/pkg/protocol"
)

type Handler struct{}

func NewHandler() *Handler {
	return &Handler{}
}

func (h *Handler) Execute(ctx context.Context, args map[string]any) (any, error) {
	seconds, _ := args["seconds"].(float64)
	duration := time.Duration(seconds * float64(time.Second))

	timer := time.NewTimer(duration)
	defer timer.Stop()

	select {
	case <-timer.C:
		return map[string]any{"waited_seconds": seconds}, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Definition returns the registrable action definition for this handler.
func Definition() *models.ActionDefinition {
	return &models.ActionDefinition{
		ID:          "wait",
		Description: "Waits the given number of seconds, honouring cancellation.",
		Parameters: []models.Parameter{
			{Name: "seconds", Type: models.ParameterFloat},
		},
		Returns: models.ParameterObject,
		Handler: protocol.Handler(NewHandler()),
	}
}
