package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"marketplace/cmd"
	httpadapter "marketplace/internal/adapters/in/http"
	"marketplace/internal/adapters/out/kafka"
	"marketplace/internal/adapters/out/otp"
	"marketplace/internal/adapters/out/postgres/migrations"
	"marketplace/internal/jobs"

	"github.com/labstack/gommon/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

func main() {
	config, err := cmd.LoadConfig(".env")
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: config.LogLevel}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err = run(ctx, config, logger); err != nil {
		logger.Error("Application stopped with error", "error", err)
		os.Exit(1)
	}
}

// run migrates the schema, connects the adapters and blocks until ctx is done.
func run(ctx context.Context, config cmd.Config, logger *slog.Logger) error {
	if err := migrations.Up(config.DatabaseURL()); err != nil {
		return err
	}

	gormDB, err := gorm.Open(gorm_postgres.Open(config.DatabaseURL()), &gorm.Config{})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	producer, err := kafka.NewSyncProducer(config.KafkaBrokers)
	if err != nil {
		return err
	}
	notifier := kafka.NewNotificationProducer(producer, config.KafkaNotificationsTopic, logger)
	defer func() {
		if closeErr := notifier.Close(); closeErr != nil {
			logger.Error("Failed to close kafka producer", "error", closeErr)
		}
	}()

	app := cmd.NewCompositionRoot(config, gormDB, notifier, otp.NewGenerator())

	jobManager := jobs.NewJobManager(app.CreateOutboxDispatchJob(logger))
	if err = jobManager.StartAll(); err != nil {
		return err
	}
	defer jobManager.StopAll()

	return startWebServer(ctx, app, config, logger)
}

func startWebServer(ctx context.Context, app cmd.CompositionRoot, config cmd.Config, logger *slog.Logger) error {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	auth, err := httpadapter.NewAuthenticator(config.JWTSecret, app.CreateCapabilityResolver())
	if err != nil {
		return err
	}
	server := httpadapter.NewServer(app.CreateHTTPHandlers(), httpadapter.NewMetrics(registry))

	e, err := httpadapter.NewEcho(ctx, server, auth, registry, logger)
	if err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP server started", "port", config.HTTPPort)
		errCh <- e.Start(fmt.Sprintf("0.0.0.0:%s", config.HTTPPort))
	}()

	select {
	case err = <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	logger.Info("Shutting down HTTP server")
	return e.Shutdown(shutdownCtx)
}
