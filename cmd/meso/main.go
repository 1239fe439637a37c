package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	httpadapter "github.com/couchcryptid/meso/internal/adapter/http"
	kafkaadapter "github.com/couchcryptid/meso/internal/adapter/kafka"
	"github.com/couchcryptid/meso/internal/adapter/nbm"
	"github.com/couchcryptid/meso/internal/adapter/spc"
	"github.com/couchcryptid/meso/internal/config"
	"github.com/couchcryptid/meso/internal/dashboard"
	"github.com/couchcryptid/meso/internal/observability"
)

func main() {
	// Optional .env for local development; the environment always wins.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	hazards := spc.NewClient(cfg.SPCBaseURL, cfg.Point, cfg.FetchTimeout, logger)
	forecast := nbm.NewClient(cfg.NBMBaseURL, cfg.NBMStation, cfg.FetchTimeout, logger)

	// Snapshot publishing is feature-flagged via KAFKA_ENABLED.
	var publisher dashboard.SnapshotPublisher
	var kafkaPublisher *kafkaadapter.Publisher
	if cfg.KafkaEnabled {
		kafkaPublisher = kafkaadapter.NewPublisher(cfg, logger)
		publisher = kafkaPublisher
		metrics.PublishEnabled.Set(1)
		logger.Info("kafka snapshot publishing enabled", "topic", cfg.KafkaSnapshotTopic)
	} else {
		logger.Info("kafka snapshot publishing disabled")
	}

	store := dashboard.NewStore(hazards, forecast, publisher, logger, metrics, cfg.FetchTimeout)

	srv := httpadapter.NewServer(cfg.HTTPAddr, store, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start HTTP server.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	// Launch the initial fetch cycle.
	store.Activate(ctx)

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if kafkaPublisher != nil {
		if err := kafkaPublisher.Close(); err != nil {
			logger.Error("kafka publisher close error", "error", err)
		}
	}

	logger.Info("shutdown complete")
}
