package main

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/dukex/planeditor/pkg/metrics"
	"github.com/dukex/planeditor/pkg/services"
	"github.com/dukex/planeditor/pkg/web"
	"github.com/go-playground/validator/v10"
	json "github.com/goccy/go-json"
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/healthcheck"
	"github.com/gofiber/fiber/v3/middleware/logger"
)

const shutdownTimeout = 10 * time.Second

type API struct {
	logger   *slog.Logger
	editor   *services.Editor
	metrics  *metrics.Metrics
	validate *validator.Validate
}

func NewAPI(logger *slog.Logger, editor *services.Editor, m *metrics.Metrics) *API {
	return &API{
		logger:   logger,
		editor:   editor,
		metrics:  m,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (a *API) App() *fiber.App {
	handlers := web.NewAPIHandlers(a.editor, a.validate)

	app := fiber.New(fiber.Config{
		AppName:     "planeditor",
		JSONEncoder: json.Marshal,
		JSONDecoder: json.Unmarshal,
	})
	app.Use(cors.New())
	app.Use(logger.New(logger.Config{
		DisableColors: true,
	}))

	app.Get(healthcheck.DefaultLivenessEndpoint, healthcheck.NewHealthChecker())
	app.Get(healthcheck.DefaultReadinessEndpoint, healthcheck.NewHealthChecker())

	app.Get("/", func(c fiber.Ctx) error {
		return c.SendString("Plan Editor API")
	})

	handlers.Register(app)

	if a.metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(a.metrics.Handler()))
	}

	return app
}

// Start serves the API until ctx is cancelled, then shuts the server down gracefully.
func (a *API) Start(ctx context.Context, port int) error {
	app := a.App()

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			a.logger.Error("Failed to shut down API", "error", err)
		}
	}()

	a.logger.InfoContext(ctx, "Plan editor API listening", "port", port)

	return app.Listen(":" + strconv.Itoa(port))
}
