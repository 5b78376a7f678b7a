package main

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/healthcheck"
	"github.com/gofiber/fiber/v3/middleware/logger"

	"github.com/flowcrm/aisummary/pkg/eventbus"
	"github.com/flowcrm/aisummary/pkg/persistence"
	"github.com/flowcrm/aisummary/pkg/registry"
	"github.com/flowcrm/aisummary/pkg/services"
	"github.com/flowcrm/aisummary/pkg/web"
)

type API struct {
	logger   *slog.Logger
	store    persistence.ResultStore
	registry *registry.Registry
	eventBus eventbus.EventBus
	summary  web.ConfigurationChecker
	validate *validator.Validate
}

func NewAPI(
	logger *slog.Logger,
	store persistence.ResultStore,
	registry *registry.Registry,
	eventBus eventbus.EventBus,
	summary web.ConfigurationChecker,
) *API {
	return &API{
		logger:   logger,
		store:    store,
		registry: registry,
		eventBus: eventBus,
		summary:  summary,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (a *API) App() *fiber.App {
	var publisher eventbus.EventPublisher
	if a.eventBus != nil {
		publisher = a.eventBus
	}

	stepExecution := services.NewStepExecution(a.registry, a.store, publisher, a.logger)
	handlers := web.NewAPIHandlers(stepExecution, a.registry, a.validate, a.summary)

	app := fiber.New()
	app.Use(cors.New())
	app.Use(logger.New(logger.Config{
		DisableColors: true,
	}))

	app.Get(healthcheck.DefaultLivenessEndpoint, healthcheck.NewHealthChecker())
	app.Get(healthcheck.DefaultReadinessEndpoint, healthcheck.NewHealthChecker())

	app.Get("/", func(c fiber.Ctx) error {
		return c.SendString("AI Summary API")
	})

	handlers.Routes(app)

	return app
}

// Start serves until ctx is cancelled, then shuts the server down.
func (a *API) Start(ctx context.Context, port int) error {
	app := a.App()

	errCh := make(chan error, 1)

	go func() {
		errCh <- app.Listen(":" + strconv.Itoa(port))
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		a.logger.Info("Shutting down AI Summary API")

		return app.Shutdown()
	}
}
