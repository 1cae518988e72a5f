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

	"parceldelivery/cmd"
	"parceldelivery/internal/adapters/out/kafka"
	"parceldelivery/internal/adapters/out/postgres"
	"parceldelivery/internal/adapters/out/stripe"
	"parceldelivery/internal/core/ports"
	"parceldelivery/internal/metrics"

	httpin "parceldelivery/internal/adapters/in/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	pgdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type trackingPublisher interface {
	ports.TrackingEventPublisher
	Close() error
}

func main() {
	cfg, err := cmd.LoadConfig(".env", os.Args[1:])
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger := newLogger(cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gormDB, err := gorm.Open(pgdriver.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("connect to database: %v", err)
	}
	if err = postgres.Migrate(gormDB.WithContext(ctx)); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(registry)

	publisher := newPublisher(cfg, logger)
	gateway := stripe.NewGateway(stripe.Config{
		SecretKey:  cfg.StripeSecretKey,
		SuccessURL: cfg.CheckoutSuccessURL,
		CancelURL:  cfg.CheckoutCancelURL,
	})

	app := cmd.NewCompositionRoot(cfg, gormDB, gateway, publisher, m, logger)

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("start jobs: %v", err)
	}

	e, err := newEcho(ctx, app, registry, cfg, m, logger)
	if err != nil {
		log.Fatalf("http server: %v", err)
	}

	go func() {
		if startErr := e.Start(fmt.Sprintf("0.0.0.0:%s", cfg.HTTPPort)); startErr != nil &&
			!errors.Is(startErr, http.ErrServerClosed) {
			logger.Error("http server stopped", "error", startErr)
			stop()
		}
	}()

	<-ctx.Done()
	shutdown(e, jobManager.StopAll, publisher, gormDB, logger)
}

func newLogger(format string) *slog.Logger {
	if format == "text" {
		return slog.New(slog.NewTextHandler(os.Stdout, nil))
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, nil))
}

func newPublisher(cfg cmd.Config, logger *slog.Logger) trackingPublisher {
	if len(cfg.KafkaBrokers) == 0 {
		logger.Info("KAFKA_BROKERS is empty, tracking events will not be published")
		return kafka.NopTrackingEventPublisher{}
	}
	return kafka.NewTrackingEventPublisher(cfg.KafkaBrokers, cfg.KafkaTrackingTopic)
}

func newEcho(
	ctx context.Context,
	app cmd.CompositionRoot,
	registry *prometheus.Registry,
	cfg cmd.Config,
	m *metrics.Metrics,
	logger *slog.Logger,
) (*echo.Echo, error) {
	doc, err := httpin.LoadOpenAPI(ctx)
	if err != nil {
		return nil, err
	}
	validate, err := httpin.ValidateRequests(doc)
	if err != nil {
		return nil, err
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(httpin.Observability(m, logger.With("component", "http")))
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())

	app.CreateHTTPServer().Register(e, registry, httpin.Authenticate([]byte(cfg.JWTSecret)), validate)
	return e, nil
}

func shutdown(e *echo.Echo, stopJobs func(), publisher trackingPublisher, gormDB *gorm.DB, logger *slog.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		logger.Error("http shutdown", "error", err)
	}
	stopJobs()
	if err := publisher.Close(); err != nil {
		logger.Error("close tracking publisher", "error", err)
	}
	if sqlDB, err := gormDB.DB(); err == nil {
		if err = sqlDB.Close(); err != nil {
			logger.Error("close database pool", "error", err)
		}
	}
	logger.Info("stopped")
}
