// Package main provides the Plexmo API server implementation.
package main

import (
	"log/slog"
	"strconv"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/healthcheck"
	"github.com/gofiber/fiber/v3/middleware/logger"

	"github.com/plexmo/plexmo/pkg/persistence"
	"github.com/plexmo/plexmo/pkg/plan"
	"github.com/plexmo/plexmo/pkg/registry"
	"github.com/plexmo/plexmo/pkg/web"
)

type API struct {
	logger      *slog.Logger
	persistence persistence.Persistence
	registry    *registry.Registry
	adapter     *plan.Adapter
}

func NewAPI(
	logger *slog.Logger,
	persistence persistence.Persistence,
	reg *registry.Registry,
	adapter *plan.Adapter,
) *API {
	return &API{
		logger:      logger,
		persistence: persistence,
		registry:    reg,
		adapter:     adapter,
	}
}

func (a *API) App() *fiber.App {
	handlers := web.NewAPIHandlers(a.persistence, a.registry, a.adapter, a.logger)

	app := fiber.New()
	app.Use(cors.New())
	app.Use(logger.New(logger.Config{
		DisableColors: true,
	}))

	app.Get(healthcheck.DefaultLivenessEndpoint, healthcheck.NewHealthChecker())
	app.Get(healthcheck.DefaultReadinessEndpoint, healthcheck.NewHealthChecker())

	app.Get("/", func(c fiber.Ctx) error {
		return c.SendString("Plexmo API")
	})

	e := app.Group("/executions")
	e.Get("/", handlers.GetExecutions)
	e.Get("/:id", handlers.GetExecution)

	app.Get("/actions", handlers.GetActions)
	app.Post("/plans/validate", handlers.ValidatePlan)

	app.Get("/health", handlers.HealthCheck)

	return app
}

func (a *API) Start(port int) error {
	app := a.App()

	return app.Listen(":" + strconv.Itoa(port))
}
