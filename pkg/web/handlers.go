// Package web provides the read-only HTTP API over execution traces and
// registered actions. Consumers read, never write.
package web

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v3"

	"github.com/plexmo/plexmo/pkg/persistence"
	"github.com/plexmo/plexmo/pkg/plan"
	"github.com/plexmo/plexmo/pkg/registry"
)

type APIHandlers struct {
	persistence persistence.Persistence
	registry    *registry.Registry
	adapter     *plan.Adapter
	logger      *slog.Logger
}

func NewAPIHandlers(
	persistence persistence.Persistence,
	reg *registry.Registry,
	adapter *plan.Adapter,
	logger *slog.Logger,
) *APIHandlers {
	return &APIHandlers{
		persistence: persistence,
		registry:    reg,
		adapter:     adapter,
		logger:      logger,
	}
}

func (h *APIHandlers) GetExecutions(c fiber.Ctx) error {
	traces, err := h.persistence.Traces(c.Context())
	if err != nil {
		return handleStorageError(c, err)
	}

	return c.JSON(fiber.Map{
		"executions":  traces,
		"total_count": len(traces),
	})
}

func (h *APIHandlers) GetExecution(c fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return badRequest(c, "missing execution id")
	}

	trace, err := h.persistence.TraceByID(c.Context(), id)
	if err != nil {
		return handleStorageError(c, err)
	}

	return c.JSON(trace)
}

func (h *APIHandlers) GetActions(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"actions": h.registry.Definitions(),
	})
}

// ValidatePlan runs a plan document through the adapter without dispatching
// it and reports the validation outcome.
func (h *APIHandlers) ValidatePlan(c fiber.Ctx) error {
	built, err := h.adapter.Build(c.Body())
	if err != nil {
		if errors.Is(err, plan.ErrInvalidPlan) || errors.Is(err, registry.ErrUnknownAction) {
			return c.JSON(fiber.Map{
				"valid": false,
				"error": err.Error(),
			})
		}

		return internalError(c, err)
	}

	return c.JSON(fiber.Map{
		"valid":   true,
		"plan":    built.Name,
		"type":    built.Type,
		"actions": built.Size(),
	})
}

func (h *APIHandlers) HealthCheck(c fiber.Ctx) error {
	if err := h.persistence.HealthCheck(c.Context()); err != nil {
		return internalError(c, err)
	}

	return c.JSON(fiber.Map{"status": "ok"})
}
