package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/UnknownOlympus/geotourist/internal/config"
	"github.com/UnknownOlympus/geotourist/internal/location"
	"github.com/UnknownOlympus/geotourist/internal/logger"
	"github.com/UnknownOlympus/geotourist/internal/metrics"
	"github.com/UnknownOlympus/geotourist/internal/notify"
	"github.com/UnknownOlympus/geotourist/internal/proximity"
	"github.com/UnknownOlympus/geotourist/internal/reconciler"
	"github.com/UnknownOlympus/geotourist/internal/repository"
	"github.com/UnknownOlympus/geotourist/internal/service"
	"github.com/UnknownOlympus/geotourist/internal/transport/api"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const shutdownTimeout = 5 * time.Second

// main is the entry point of the proximity engine.
func main() {
	// Create a context that will be canceled when an interrupt signal is received.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.MustLoad()
	log := logger.Setup(cfg.Env, os.Stdout)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	appMetrics := metrics.NewMetrics(reg)

	dtb, err := repository.NewDatabase(
		ctx, cfg.Database.Host, cfg.Database.Port, cfg.Database.User, cfg.Database.Password, cfg.Database.Name,
	)
	if err != nil {
		log.Error("Failed to connect to DB", "error", err)
		os.Exit(1)
	}

	repo := repository.NewRepository(dtb, repository.DefaultScript(), log)
	if err = repo.Initialize(ctx); err != nil {
		log.Error("Failed to initialize point store", "error", err)
		repo.Close()
		os.Exit(1)
	}
	defer repo.Close()

	notifiers := notify.Multi{notify.NewLogNotifier(log)}
	if rdb := notify.OpenRedis(cfg.Redis.Addr, cfg.Redis.Password); rdb != nil {
		defer rdb.Close()
		notifiers = append(notifiers, notify.NewRedisNotifier(rdb, cfg.Redis.Channel, log))
		log.InfoContext(ctx, "Redis notifier enabled", "channel", cfg.Redis.Channel)
	}

	finder := proximity.NewEngine(repo, log, appMetrics)
	rec, err := reconciler.New(log, finder, notifiers, appMetrics, cfg.Radius)
	if err != nil {
		log.Error("Failed to create reconciler", "error", err)
		os.Exit(1)
	}

	source := location.NewPushSource(cfg.PollInterval, log)
	engine := service.NewEngine(log, source, rec)
	engineDone := make(chan struct{})
	go func() {
		defer close(engineDone)
		engine.Run(ctx)
	}()

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      api.NewServer(engine, source, repo, reg, log).Router(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() {
		log.InfoContext(ctx, "Starting HTTP server", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.ErrorContext(ctx, "HTTP server failed", "error", err)
			stop()
		}
	}()

	log.InfoContext(ctx, "Application started. Press Ctrl+C to stop.", "radius", cfg.Radius)

	<-ctx.Done()
	log.Info("Shutdown signal received. Stopping application...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Failed to shut down HTTP server", "error", err)
	}
	<-engineDone

	log.Info("Application stopped gracefully.")
}
