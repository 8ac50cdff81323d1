package web

import (
	"errors"

	"github.com/gofiber/fiber/v3"
	"github.com/moogar0880/problems"

	"github.com/plexmo/plexmo/pkg/persistence"
	"github.com/plexmo/plexmo/pkg/plan"
)

func badRequest(c fiber.Ctx, detail string) error {
	problem := problems.NewStatusProblem(400).
		WithInstance(c.Path()).
		WithType("validation_error").
		WithDetail(detail)

	return c.Status(fiber.StatusBadRequest).JSON(problem)
}

func notFound(c fiber.Ctx, detail string) error {
	problem := problems.NewStatusProblem(404).
		WithInstance(c.Path()).
		WithType("not_found").
		WithDetail(detail)

	return c.Status(fiber.StatusNotFound).JSON(problem)
}

func internalError(c fiber.Ctx, err error) error {
	problem := problems.NewStatusProblem(500).
		WithInstance(c.Path()).
		WithType("internal_error").
		WithError(err)

	return c.Status(fiber.StatusInternalServerError).JSON(problem)
}

// handleStorageError maps persistence and plan errors to problem responses.
func handleStorageError(c fiber.Ctx, err error) error {
	switch {
	case persistence.IsTraceNotFound(err):
		return notFound(c, "execution trace not found")
	case errors.Is(err, plan.ErrInvalidPlan):
		return badRequest(c, err.Error())
	default:
		return internalError(c, err)
	}
}
