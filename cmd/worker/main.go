package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/plainbrief/plainbrief/internal/bootstrap"
	"github.com/plainbrief/plainbrief/internal/config"
	"github.com/plainbrief/plainbrief/internal/observability/logging"
	"github.com/plainbrief/plainbrief/internal/observability/metrics"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}
	logger := logging.NewJSONLogger("plainbrief-worker", cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.New(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("bootstrap error: %v", err)
	}
	defer app.Close()

	workerMetrics := metrics.NewWorkerMetrics("plainbrief-worker")
	app.Recorder.OnEvict(func(count int) {
		workerMetrics.AddEvictions("plainbrief-worker", count)
	})

	metricsServer := &http.Server{
		Addr:    ":" + cfg.WorkerMetricsPort,
		Handler: workerMetrics.Handler(),
	}
	go func() {
		logger.Info("worker_metrics_listening", "port", cfg.WorkerMetricsPort)
		if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("worker_metrics_server_error", "error", err)
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = metricsServer.Shutdown(shutdownCtx)
	}()

	logger.Info("worker_subscribed", "subject", cfg.NATSSubject)
	err = app.Queue.SubscribeBriefCreated(ctx, func(handlerCtx context.Context, briefID string) error {
		workerMetrics.StartRecord()
		start := time.Now()

		recordCtx, cancel := context.WithTimeout(handlerCtx, time.Minute)
		defer cancel()
		err := app.Recorder.RecordBrief(recordCtx, briefID)

		workerMetrics.FinishRecord("plainbrief-worker", time.Since(start), err)
		return err
	})
	if err != nil {
		log.Fatalf("worker subscribe error: %v", err)
	}
}
