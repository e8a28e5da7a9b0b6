// Package main provides the Formwright API server implementation.
package main

import (
	"log/slog"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/healthcheck"
	"github.com/gofiber/fiber/v3/middleware/logger"

	"github.com/formwright/formwright/pkg/eventbus"
	"github.com/formwright/formwright/pkg/persistence"
	"github.com/formwright/formwright/pkg/registry"
	"github.com/formwright/formwright/pkg/services"
	"github.com/formwright/formwright/pkg/web"
)

type API struct {
	logger      *slog.Logger
	persistence persistence.Persistence
	registry    *registry.Registry
	eventBus    eventbus.EventBus
	validate    *validator.Validate
}

func NewAPI(
	logger *slog.Logger,
	persistence persistence.Persistence,
	registry *registry.Registry,
	eventBus eventbus.EventBus,
) *API {
	return &API{
		persistence: persistence,
		logger:      logger,
		registry:    registry,
		eventBus:    eventBus,
		validate:    validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (a *API) App() *fiber.App {
	formService := services.NewForm(a.persistence, a.eventBus, a.registry, a.logger)
	workflowService := services.NewWorkflow(a.persistence, a.eventBus, a.registry, a.logger)

	handlers := web.NewAPIHandlers(formService, workflowService, a.validate, a.registry)

	app := fiber.New()
	app.Use(cors.New())
	app.Use(logger.New(logger.Config{
		DisableColors: true,
	}))

	app.Get(healthcheck.DefaultLivenessEndpoint, healthcheck.NewHealthChecker())
	app.Get(healthcheck.DefaultReadinessEndpoint, healthcheck.NewHealthChecker())

	app.Get("/", func(c fiber.Ctx) error {
		return c.SendString("Formwright API")
	})

	f := app.Group("/forms")
	f.Get("/", handlers.GetForms)
	f.Post("/", handlers.CreateForm)
	f.Get("/:id", handlers.GetForm)
	f.Patch("/:id", handlers.UpdateForm)
	f.Delete("/:id", handlers.DeleteForm)
	f.Post("/:id/publish", handlers.PublishForm)
	f.Post("/:id/submit", handlers.SubmitForm)

	// Page endpoints:
	f.Post("/:id/pages", handlers.AddPage)
	f.Delete("/:id/pages/:pageId", handlers.DeletePage)

	// Element endpoints:
	f.Post("/:id/elements", handlers.AddElement)
	f.Post("/:id/elements/reorder", handlers.ReorderElements)
	f.Patch("/:id/elements/:elementId", handlers.UpdateElement)
	f.Delete("/:id/elements/:elementId", handlers.DeleteElement)
	f.Post("/:id/elements/:elementId/columns", handlers.AddGridColumn)
	f.Delete("/:id/elements/:elementId/columns/:index", handlers.RemoveGridColumn)

	// Rule, field and workflow endpoints:
	f.Put("/:id/rules", handlers.SetRules)
	f.Post("/:id/rules/evaluate", handlers.EvaluateRules)
	f.Get("/:id/fields", handlers.GetFields)
	f.Put("/:id/workflow", handlers.SetFormWorkflow)

	w := app.Group("/workflows")
	w.Get("/", handlers.GetWorkflows)
	w.Post("/", handlers.SaveWorkflow)
	w.Get("/:id", handlers.GetWorkflow)
	w.Delete("/:id", handlers.DeleteWorkflow)
	w.Post("/:id/execute", handlers.ExecuteWorkflow)

	app.Get("/element-types", handlers.GetElementTypes)
	app.Get("/node-types", handlers.GetNodeTypes)

	app.Get("/health", handlers.HealthCheck)

	return app
}

func (a *API) Start(port int) error {
	app := a.App()

	return app.Listen(":" + strconv.Itoa(port))
}
