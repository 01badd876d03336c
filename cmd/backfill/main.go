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

	"github.com/UnknownOlympus/geotourist/internal/config"
	"github.com/UnknownOlympus/geotourist/internal/geocoding"
	"github.com/UnknownOlympus/geotourist/internal/logger"
	"github.com/UnknownOlympus/geotourist/internal/metrics"
	"github.com/UnknownOlympus/geotourist/internal/repository"
	"github.com/UnknownOlympus/geotourist/internal/service"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// googleRateLimit is the request budget per second of the single client shared by all workers.
const googleRateLimit = 50

// main is the entry point of the address backfill worker.
func main() {
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

	provider, err := geocoding.NewProvider(providerConfig(cfg, log))
	if err != nil {
		log.Error("Failed to create geocoding provider", "error", err)
		os.Exit(1)
	}

	log.InfoContext(ctx, "Geocoding provider initialized", "type", cfg.Backfill.ProviderType)

	backfill := service.NewAddressBackfillService(
		log,
		repo,
		provider,
		cfg.Backfill.ProviderType,
		appMetrics,
		cfg.Backfill.Workers,
		cfg.Backfill.Interval,
	)

	go startMonitoringServer(ctx, log, reg, repo, cfg.Port)

	log.InfoContext(ctx, "Backfill worker started. Press Ctrl+C to stop.")
	backfill.Run(ctx)

	log.Info("Backfill worker stopped gracefully.")
}

// providerConfig builds the geocoding provider settings. The workers share one client,
// so the rate limit is not divided between them.
func providerConfig(cfg *config.Config, log *slog.Logger) geocoding.ProviderConfig {
	return geocoding.ProviderConfig{
		Type:      geocoding.ProviderType(cfg.Backfill.ProviderType),
		APIKey:    cfg.Backfill.APIKey,
		RateLimit: googleRateLimit,
		Logger:    log,
	}
}

// startMonitoringServer serves /healthz and /metrics until ctx is cancelled.
func startMonitoringServer(
	ctx context.Context,
	log *slog.Logger,
	reg *prometheus.Registry,
	repo *repository.Repository,
	port int,
) {
	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(writer http.ResponseWriter, r *http.Request) {
		status, body := http.StatusOK, "OK"
		if err := repo.Ping(r.Context()); err != nil {
			status, body = http.StatusServiceUnavailable, "DB ping failed"
		}
		writer.WriteHeader(status)
		if _, err := writer.Write([]byte(body)); err != nil {
			log.ErrorContext(ctx, "failed to write reply", "error", err)
		}
	})
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      mux,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	go func() {
		<-ctx.Done()
		_ = server.Close()
	}()

	log.InfoContext(ctx, "Starting monitoring server", "port", port)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.ErrorContext(ctx, "Monitoring server failed", "error", err)
	}
}
