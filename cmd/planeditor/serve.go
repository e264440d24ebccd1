package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/dukex/planeditor/pkg/cmd"
	"github.com/dukex/planeditor/pkg/gateway"
	"github.com/dukex/planeditor/pkg/log"
	"github.com/dukex/planeditor/pkg/metrics"
	"github.com/dukex/planeditor/pkg/models"
	"github.com/dukex/planeditor/pkg/otelhelper"
	"github.com/dukex/planeditor/pkg/services"
	cli "github.com/urfave/cli/v3"
	"go.opentelemetry.io/otel/trace"
)

const defaultPort = 9092

func ServeCommand() *cli.Command {
	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start the editor API",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "port",
				Aliases: []string{"p"},
				Usage:   "Port to run the API server on",
				Value:   defaultPort,
				Sources: cli.EnvVars("PORT"),
			},
			&cli.StringFlag{
				Name:    "backend-url",
				Usage:   "Base URL of the workflow backend API",
				Value:   gateway.DefaultBaseURL,
				Sources: cli.EnvVars("BACKEND_URL"),
			},
			&cli.StringFlag{
				Name:    "state-url",
				Usage:   "Editor state store (file://path, redis://..., postgres://...)",
				Value:   "file://./data",
				Sources: cli.EnvVars("STATE_URL"),
			},
			&cli.StringFlag{
				Name:    "state-key",
				Usage:   "Key the editor state is stored under",
				Value:   models.EditorStateKey,
				Sources: cli.EnvVars("STATE_KEY"),
			},
			&cli.StringFlag{
				Name:    "plan",
				Usage:   "Plan name or ID to load when no previous session is stored",
				Sources: cli.EnvVars("PLAN"),
			},
			&cli.StringFlag{
				Name:    "event-bus",
				Usage:   "Execution event stream (gochannel, kafka); empty follows executions through the REST API",
				Sources: cli.EnvVars("EVENT_BUS_TYPE"),
			},
			&cli.StringFlag{
				Name:    "kafka-brokers",
				Usage:   "Comma separated Kafka brokers",
				Value:   "localhost:9092",
				Sources: cli.EnvVars("KAFKA_BROKERS"),
			},
			&cli.StringFlag{
				Name:    "autosave",
				Usage:   "Cron schedule for saving unsaved positions (e.g. \"@every 30s\"); empty disables",
				Sources: cli.EnvVars("AUTOSAVE"),
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (debug, info, warn, error)",
				Value:   "info",
				Sources: cli.EnvVars("LOG_LEVEL"),
			},
			&cli.StringFlag{
				Name:    "log-format",
				Usage:   "Log format (text, json)",
				Value:   string(log.FormatText),
				Sources: cli.EnvVars("LOG_FORMAT"),
			},
			&cli.BoolFlag{
				Name:    "tracing",
				Usage:   "Export traces of backend calls over OTLP",
				Sources: cli.EnvVars("TRACING_ENABLED"),
			},
		},
		Action: func(ctx context.Context, command *cli.Command) error {
			log.Setup(command.String("log-level"), log.Format(command.String("log-format")))

			logger := log.WithModule("planeditor")

			logger.InfoContext(ctx, "Initializing plan editor")

			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()

			tracer := otelhelper.NewNoopTracer()

			if command.Bool("tracing") {
				var (
					shutdown otelhelper.ShutdownFunc
					err      error
				)

				tracer, shutdown, err = otelhelper.NewTracer(ctx, "planeditor")
				if err != nil {
					return fmt.Errorf("failed to initialize tracer: %w", err)
				}

				defer func() {
					if err := shutdown(context.Background()); err != nil {
						logger.Error("Failed to shutdown tracer provider", "error", err)
					}
				}()
			}

			m := metrics.New()

			editor, err := newEditor(ctx, command, logger, tracer, m)
			if err != nil {
				return err
			}

			defer func() {
				if err := editor.Close(context.Background()); err != nil {
					logger.Error("Failed to close editor", "error", err)
				}
			}()

			if provider := command.String("event-bus"); provider != "" {
				eventBus, err := cmd.NewEventBus(provider, strings.Split(command.String("kafka-brokers"), ","), logger)
				if err != nil {
					return err
				}

				defer func() {
					if err := eventBus.Close(); err != nil {
						logger.Error("Failed to close event bus", "error", err)
					}
				}()

				if err := editor.BindEvents(eventBus); err != nil {
					return err
				}

				if err := eventBus.Subscribe(ctx); err != nil {
					return fmt.Errorf("failed to subscribe to execution events: %w", err)
				}
			}

			if spec := command.String("autosave"); spec != "" {
				if err := editor.StartAutosave(spec); err != nil {
					return err
				}
			}

			api := NewAPI(logger, editor, m)

			return api.Start(ctx, command.Int("port"))
		},
	}
}

func newEditor(ctx context.Context, command *cli.Command, logger *slog.Logger, tracer trace.Tracer, m *metrics.Metrics) (*services.Editor, error) {
	store, err := cmd.NewPersistence(ctx, logger, command.String("state-url"))
	if err != nil {
		return nil, err
	}

	editor := services.NewEditor(
		cmd.NewGateway(command.String("backend-url"), tracer, logger),
		services.WithPersistence(store),
		services.WithStateKey(command.String("state-key")),
		services.WithLogger(logger),
		services.WithMetrics(m),
	)

	restored, err := editor.Restore(ctx)
	if err != nil {
		return nil, errors.Join(err, store.Close(ctx))
	}

	plan := command.String("plan")
	if restored || plan == "" {
		return editor, nil
	}

	if _, err := editor.LoadPlan(ctx, plan); err != nil {
		logger.ErrorContext(ctx, "Failed to load plan", "plan", plan, "error", err)
	}

	return editor, nil
}
