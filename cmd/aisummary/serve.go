package main

import (
	"context"
	"log/slog"
	"os/signal"
	"syscall"
	"time"

	cli "github.com/urfave/cli/v3"

	"github.com/flowcrm/aisummary/pkg/actions/aisummary"
	"github.com/flowcrm/aisummary/pkg/cmd"
	"github.com/flowcrm/aisummary/pkg/eventbus"
	"github.com/flowcrm/aisummary/pkg/events"
	"github.com/flowcrm/aisummary/pkg/log"
	"github.com/flowcrm/aisummary/pkg/otelhelper"
	"github.com/flowcrm/aisummary/pkg/persistence/redis"
)

const defaultPort = 9091

func ServeCommand() *cli.Command {
	flags := append(openAIFlags(),
		&cli.IntFlag{
			Name:    "port",
			Aliases: []string{"p"},
			Usage:   "Port to run the API server on",
			Value:   defaultPort,
			Sources: cli.EnvVars("PORT"),
		},
		&cli.StringFlag{
			Name:    "event-bus",
			Usage:   "Event bus type (gochannel, kafka)",
			Value:   "gochannel",
			Sources: cli.EnvVars("EVENT_BUS_TYPE"),
		},
		&cli.StringFlag{
			Name:    "kafka-brokers",
			Usage:   "Comma separated Kafka brokers for the kafka event bus",
			Sources: cli.EnvVars("KAFKA_BROKERS"),
		},
		&cli.StringFlag{
			Name:    "redis-url",
			Usage:   "redis:// or rediss:// URL for execution records (in-memory when empty or memory://)",
			Sources: cli.EnvVars("REDIS_URL"),
		},
		&cli.DurationFlag{
			Name:    "result-ttl",
			Usage:   "How long execution records are kept in Redis",
			Value:   redis.DefaultTTL,
			Sources: cli.EnvVars("RESULT_TTL"),
		},
		&cli.BoolFlag{
			Name:    "otel",
			Usage:   "Export traces over OTLP/HTTP",
			Sources: cli.EnvVars("OTEL_ENABLED"),
		},
	)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start the step execution API",
		Flags:   flags,
		Action: func(ctx context.Context, command *cli.Command) error {
			log.Setup(command.String("log-level"))

			logger := log.WithModule("api")

			ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if command.Bool("otel") {
				shutdown, err := otelhelper.Setup(ctx, "aisummary")
				if err != nil {
					return err
				}

				defer func() {
					shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
					defer cancel()

					if err := shutdown(shutdownCtx); err != nil {
						logger.Error("Failed to shutdown tracer provider", "error", err)
					}
				}()
			}

			logger.InfoContext(ctx, "Initializing AI Summary API")

			summary := aisummary.NewService(logger,
				aisummary.WithAPIKey(command.String("openai-api-key")),
				aisummary.WithBaseURL(command.String("openai-base-url")),
			)
			registry := cmd.NewRegistry(logger, summary)

			store, err := cmd.NewResultStore(ctx, command.String("redis-url"), command.Duration("result-ttl"))
			if err != nil {
				return err
			}

			defer func() {
				if err := store.Close(context.Background()); err != nil {
					logger.Error("Failed to close result store", "error", err)
				}
			}()

			eventBus, err := cmd.NewEventBus(command.String("event-bus"), command.String("kafka-brokers"), logger)
			if err != nil {
				return err
			}

			defer func() {
				if err := eventBus.Close(); err != nil {
					logger.Error("Failed to close event bus", "error", err)
				}
			}()

			if err := subscribeExecutionLog(ctx, eventBus, logger); err != nil {
				return err
			}

			api := NewAPI(logger, store, registry, eventBus, summary)

			return api.Start(ctx, command.Int("port"))
		},
	}
}

// subscribeExecutionLog writes one log line per step execution event.
func subscribeExecutionLog(ctx context.Context, bus eventbus.EventBus, logger *slog.Logger) error {
	handler := func(ctx context.Context, event eventbus.Event) error {
		switch e := event.(type) {
		case *events.StepExecutionFinished:
			logger.DebugContext(ctx, "Step execution finished",
				"execution_id", e.ExecutionID, "step_id", e.StepID, "duration_ms", e.DurationMs)
		case *events.StepExecutionFailed:
			logger.DebugContext(ctx, "Step execution failed",
				"execution_id", e.ExecutionID, "step_id", e.StepID, "error", e.Error)
		}

		return nil
	}

	if err := bus.Handle(events.StepExecutionFinishedEvent, handler); err != nil {
		return err
	}

	if err := bus.Handle(events.StepExecutionFailedEvent, handler); err != nil {
		return err
	}

	return bus.Subscribe(ctx)
}
