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

	"github.com/ErlanBelekov/uptask/config"
	"github.com/ErlanBelekov/uptask/internal/health"
	"github.com/ErlanBelekov/uptask/internal/infrastructure/store"
	"github.com/ErlanBelekov/uptask/internal/janitor"
	ctxlog "github.com/ErlanBelekov/uptask/internal/log"
	"github.com/ErlanBelekov/uptask/internal/metrics"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := ctxlog.New(os.Stdout, cfg.Env, cfg.SlogLevel())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	db, err := store.Open(ctx, cfg)
	if err != nil {
		stop()
		log.Fatalf("store: %v", err)
	}
	defer db.Close()

	logger.Info("store connected", "driver", db.Driver)

	metrics.Register()
	checker := health.NewChecker(logger, prometheus.DefaultRegisterer, health.Dependency{Name: db.Driver, Pinger: db.Pinger})

	metricsSrv := metrics.NewServer(":"+cfg.MetricsPort, checker.Handlers())
	go func() {
		logger.Info("metrics server started", "port", cfg.MetricsPort)
		if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server", "error", err)
		}
	}()

	// Blocks until SIGINT/SIGTERM.
	if err := janitor.New(db.Tokens, cfg.TokenTTL, logger).Start(ctx, cfg.JanitorCron); err != nil {
		logger.Error("janitor", "error", err)
	}
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error("metrics server shutdown", "error", err)
	}
}
