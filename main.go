package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/fazlanhoxton/hxt-events/application"
	_ "github.com/fazlanhoxton/hxt-events/docs"
	"github.com/fazlanhoxton/hxt-events/domain/event"
	"github.com/fazlanhoxton/hxt-events/infrastructure/clock"
	"github.com/fazlanhoxton/hxt-events/infrastructure/config"
	"github.com/fazlanhoxton/hxt-events/infrastructure/content"
	"github.com/fazlanhoxton/hxt-events/infrastructure/messaging/kafka"
	"github.com/fazlanhoxton/hxt-events/infrastructure/messaging/worker"
	"github.com/fazlanhoxton/hxt-events/infrastructure/metrics"
	"github.com/fazlanhoxton/hxt-events/infrastructure/persistence/clickhouse"
	"github.com/fazlanhoxton/hxt-events/infrastructure/ticketing"
	"github.com/fazlanhoxton/hxt-events/presentation/api/controller"
	"github.com/fazlanhoxton/hxt-events/presentation/api/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// @title        HXT Events Admin API
// @version      1.0
// @description  Admin backend over the Guest Manager ticketing API and the DatoCMS content API.
// @BasePath     /
func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLevel(cfg.LogLevel),
	})))
	metrics.Register()

	slog.Info("Starting HXT Events Admin API", "port", cfg.Server.Port, "activity", cfg.Activity.Enabled)

	ticketingClient := ticketing.NewClient(cfg.Ticketing)
	contentClient := content.NewClient(cfg.Content)
	clk := clock.NewSystem()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var (
		publisher       kafka.ActivityPublisher = kafka.NopPublisher{}
		activityService application.ActivityService
		activityWorker  *worker.ActivityWorker
		retryWorker     *worker.RetryWorker
		chClient        *clickhouse.Client
	)

	if cfg.Activity.Enabled {
		slog.Info("Ensuring Kafka topics exist...")
		if err := kafka.EnsureTopicsWithConfig(cfg.Kafka, kafka.ActivityTopics(cfg.Kafka)); err != nil {
			slog.Warn("Failed to ensure Kafka topics", "error", err)
		}

		slog.Info("Connecting to ClickHouse...")
		chClient, err = clickhouse.NewClient(cfg.ClickHouse)
		if err != nil {
			slog.Error("Failed to connect to ClickHouse", "error", err)
			os.Exit(1)
		}

		slog.Info("Initializing ClickHouse schema...")
		if err := chClient.InitSchema(ctx); err != nil {
			slog.Error("Failed to initialize schema", "error", err)
			os.Exit(1)
		}

		repository := clickhouse.NewActivityRepository(chClient)
		publisher = kafka.NewProducer(cfg.Kafka)
		activityService = application.NewActivityService(repository)

		activityWorker = worker.NewActivityWorker(cfg.Kafka, repository, cfg.Worker)
		activityWorker.Start(ctx)

		retryWorker = worker.NewRetryWorker(cfg.Kafka, repository, cfg.Worker)
		retryWorker.Start(ctx)
	}

	eventService := application.NewEventService(ticketingClient, contentClient, ticketingClient, publisher, clk, application.EventServiceOptions{
		PageSize:    cfg.Ticketing.PageSize,
		Concurrency: cfg.Enrichment.Concurrency,
		Statuses:    event.NewTicketStatusMapping(cfg.Enrichment.RegisteredStatuses, cfg.Enrichment.AttendedStatuses),
	})
	venueService := application.NewVenueService(ticketingClient, publisher, clk)

	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		AppName:      "HXT Events Admin API",
	})

	app.Use(cors.New())
	app.Use(middleware.RequestID())
	app.Use(middleware.RequestLogger())
	app.Use(middleware.Recovery())
	app.Use(middleware.Metrics())

	app.Get("/swagger/*", swagger.HandlerDefault)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	controller.NewEventController(app, eventService)
	controller.NewVenueController(app, venueService)
	if activityService != nil {
		controller.NewActivityController(app, activityService)
	}
	controller.NewHealthController(app,
		controller.UpstreamCheck{Name: ticketing.ServiceName, Ready: ticketingClient.Ready},
		controller.UpstreamCheck{Name: content.ServiceName, Ready: contentClient.Ready},
	)

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		addr := fmt.Sprintf(":%d", cfg.Server.Port)
		slog.Info("HTTP server listening", "addr", addr)
		slog.Info("Swagger UI available", "url", fmt.Sprintf("http://localhost:%d/swagger/index.html", cfg.Server.Port))
		if err := app.Listen(addr); err != nil {
			slog.Error("Server error", "error", err)
		}
	}()

	sig := <-shutdown
	slog.Info("Received signal, starting graceful shutdown...", "signal", sig)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	}

	cancel()

	if activityWorker != nil {
		activityWorker.Stop()
	}
	if retryWorker != nil {
		retryWorker.Stop()
	}
	if err := publisher.Close(); err != nil {
		slog.Error("Failed to close activity publisher", "error", err)
	}
	if chClient != nil {
		if err := chClient.Close(); err != nil {
			slog.Error("Failed to close ClickHouse client", "error", err)
		}
	}

	slog.Info("Shutdown complete")
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
