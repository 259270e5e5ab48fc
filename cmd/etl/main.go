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

	httpadapter "github.com/sragwatch/srag-data-etl/internal/adapter/http"
	kafkaadapter "github.com/sragwatch/srag-data-etl/internal/adapter/kafka"
	"github.com/sragwatch/srag-data-etl/internal/adapter/snapshot"
	"github.com/sragwatch/srag-data-etl/internal/adapter/xlsx"
	"github.com/sragwatch/srag-data-etl/internal/config"
	"github.com/sragwatch/srag-data-etl/internal/observability"
	"github.com/sragwatch/srag-data-etl/internal/pipeline"
	"github.com/sragwatch/srag-data-etl/internal/scheduler"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	extractor := snapshot.NewReader(cfg, logger)

	var publishers []pipeline.Publisher
	if cfg.KafkaPublishEnabled() {
		writer := kafkaadapter.NewWriter(cfg, logger)
		defer func() {
			if err := writer.Close(); err != nil {
				logger.Error("kafka writer close error", "error", err)
			}
		}()
		publishers = append(publishers, writer)
		logger.Info("kafka publishing enabled", "topic", cfg.KafkaSinkTopic)
	}
	if cfg.XLSXExportEnabled() {
		publishers = append(publishers, xlsx.NewExporter(cfg.XLSXExportPath, logger))
		logger.Info("xlsx export enabled", "path", cfg.XLSXExportPath)
	}
	if len(publishers) == 0 {
		logger.Warn("no publishers configured; reports will only be computed")
	}

	p := pipeline.New(extractor, publishers, cfg.Windows, logger, metrics)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.RunOnce {
		if _, err := p.RunOnce(ctx); err != nil {
			os.Exit(1)
		}
		return
	}

	srv := httpadapter.NewServer(cfg.HTTPAddr, p, logger)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	// Generate a report immediately so the service is ready before the
	// first cron tick, then hand over to the scheduler.
	go func() {
		_, _ = p.RunOnce(ctx)
	}()

	sched := scheduler.New(p, logger, cfg.CronSpec)
	if err := sched.Start(); err != nil {
		logger.Error("scheduler start error", "error", err)
		os.Exit(1)
	}

	<-ctx.Done()
	logger.Info("shutting down")

	sched.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}

	logger.Info("shutdown complete")
}
