// cmd/worker-manager/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"booking-workers/internal/booking"
	"booking-workers/internal/common/camunda"
	"booking-workers/internal/common/config"
	"booking-workers/internal/common/database"
	"booking-workers/internal/common/errors"
	httpclient "booking-workers/internal/common/http"
	"booking-workers/internal/common/logger"
	"booking-workers/internal/common/observability"
	"booking-workers/internal/location"
	"booking-workers/internal/search"
	"booking-workers/pkg/registry"

	ca "booking-workers/internal/workers/bookings/check-availability"
	bl "booking-workers/internal/workers/locations/browse-locations"
	rl "booking-workers/internal/workers/locations/resolve-location"
	flf "booking-workers/internal/workers/search/find-locations-with-facilities"
	sbq "booking-workers/internal/workers/search/search-by-query"
	sl "booking-workers/internal/workers/search/search-locations"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

// toolWorker pairs a job type with the handler that serves it.
type toolWorker struct {
	taskType string
	handler  camunda.JobHandler
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()

	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting booking workers...",
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
	)

	obs, err := observability.New(cfg.App.Name)
	if err != nil {
		// Invocation metrics fall back to the Prometheus collectors only.
		zapLog.Warn("observability init failed", zap.Error(err))
	}

	// --- Init Zeebe Client with retry ---
	var zeebe *camunda.Client
	err = retryWithBackoff(func() error {
		var err error
		zeebe, err = camunda.NewClientWithConfig(&camunda.ClientConfig{
			GatewayAddress:         cfg.Camunda.BrokerAddress,
			UsePlaintextConnection: true,
			ConnectionTimeout:      config.GetDuration(cfg.Camunda.RequestTimeout),
			RetryConfig:            camunda.DefaultRetryConfig,
		})
		return err
	}, 10, 2*time.Second, zapLog, "Zeebe client initialization")
	if err != nil {
		zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
	}
	zapLog.Info("Zeebe client connected successfully")

	// --- Init Redis response cache with retry ---
	var cache httpclient.ResponseCache
	if cfg.Booking.CacheEnabled {
		var redis *database.RedisClient
		err = retryWithBackoff(func() error {
			var err error
			redis, err = database.NewRedis(cfg.Database.Redis)
			if err != nil {
				return err
			}
			return redis.Ping(context.Background())
		}, 10, 2*time.Second, zapLog, "Redis connection")
		if err != nil {
			zapLog.Fatal("redis failed after retries", zap.Error(err))
		}
		defer redis.Close()
		cache = redis
		zapLog.Info("Redis connected successfully")
	}

	api := httpclient.NewClient(httpclient.Options{
		BaseURL:      cfg.Booking.BaseURL,
		Username:     cfg.Booking.Username,
		Password:     cfg.Booking.Password,
		Timeout:      config.GetDuration(cfg.Booking.Timeout),
		MaxRetries:   cfg.Booking.MaxRetries,
		RetryBackoff: config.GetDuration(cfg.Booking.RetryBackoff),
		RateLimit:    cfg.Booking.RateLimit,
		RateBurst:    cfg.Booking.RateBurst,
		Cache:        cache,
		CacheTTL:     config.GetDuration(cfg.Booking.CacheTTL),
		Logger:       log,
	})
	provider := booking.NewClient(api, cfg.Booking.OrganizationID, log)
	resolver := location.NewResolver(provider, cfg.Booking.PreferredLocationID, log)
	engine := search.NewEngine(provider, provider, log,
		search.WithMaxConcurrentChecks(cfg.Booking.AvailabilityConcurrency))

	tools, err := registry.LoadRegistry(cfg.Registry.Path)
	if err != nil {
		zapLog.Fatal("tool registry load failed", zap.Error(err))
	}
	if problems := tools.Validate(); len(problems) > 0 {
		zapLog.Fatal("tool registry is invalid", zap.Strings("problems", problems))
	}

	rlCfg := rl.LoadConfig()
	rlCfg.Timeout = workerTimeout(cfg, rl.TaskType, rlCfg.Timeout)
	blCfg := bl.LoadConfig()
	blCfg.Timeout = workerTimeout(cfg, bl.TaskType, blCfg.Timeout)
	slCfg := sl.LoadConfig()
	slCfg.Timeout = workerTimeout(cfg, sl.TaskType, slCfg.Timeout)
	sbqCfg := sbq.LoadConfig()
	sbqCfg.Timeout = workerTimeout(cfg, sbq.TaskType, sbqCfg.Timeout)
	flfCfg := flf.LoadConfig()
	flfCfg.Timeout = workerTimeout(cfg, flf.TaskType, flfCfg.Timeout)
	caCfg := ca.LoadConfig()
	caCfg.Timeout = workerTimeout(cfg, ca.TaskType, caCfg.Timeout)

	workers := []toolWorker{
		{rl.TaskType, rl.NewHandler(rlCfg, resolver, log)},
		{bl.TaskType, bl.NewHandler(blCfg, provider, resolver, log)},
		{sl.TaskType, sl.NewHandler(slCfg, engine, resolver, log)},
		{sbq.TaskType, sbq.NewHandler(sbqCfg, engine, log)},
		{flf.TaskType, flf.NewHandler(flfCfg, engine, log)},
		{ca.TaskType, ca.NewHandler(caCfg, resolver, provider, log)},
	}

	var running []*camunda.CamundaWorker
	for _, w := range workers {
		if !config.IsWorkerEnabled(cfg, w.taskType) {
			zapLog.Info("worker disabled", zap.String("taskType", w.taskType))
			continue
		}

		tool, err := tools.Find(w.taskType)
		if err != nil {
			zapLog.Fatal("worker has no registry entry", zap.String("taskType", w.taskType), zap.Error(err))
		}
		schema, err := tools.InputSchema(tool.Name)
		if err != nil {
			zapLog.Fatal("input schema compile failed", zap.String("taskType", w.taskType), zap.Error(err))
		}

		wcfg := config.GetWorkerConfig(cfg, w.taskType)
		running = append(running, camunda.NewWorker(zeebe.GetClient(), tool.JobType(), w.handler, camunda.Options{
			MaxJobsActive: wcfg.MaxJobsActive,
			Timeout:       config.GetDuration(wcfg.Timeout),
			InputSchema:   schema,
			Observability: obs,
			ErrorHandler:  errors.NewErrorHandler(log),
		}, log))
	}
	zapLog.Info("Workers registered", zap.Int("count", len(running)))

	// --- Health & Metrics Server ---
	server := newHealthServer(cfg.Server.Address, zeebe)
	go func() {
		zapLog.Info("Health/Metrics server listening", zap.String("address", cfg.Server.Address))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLog.Error("Health/Metrics server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping workers...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for _, w := range running {
		w.Stop()
	}
	if err := server.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error stopping health server", zap.Error(err))
	}
	if err := obs.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error shutting down observability", zap.Error(err))
	}
	if err := zeebe.Close(); err != nil {
		zapLog.Error("Error closing Zeebe client", zap.Error(err))
	}

	zapLog.Info("Booking workers stopped gracefully")
}

// workerTimeout is the configured handler timeout for a worker, or fallback
// when the worker has no entry.
func workerTimeout(cfg *config.Config, taskType string, fallback time.Duration) time.Duration {
	if w, ok := cfg.Workers[taskType]; ok && w.Timeout > 0 {
		return config.GetDuration(w.Timeout)
	}
	return fallback
}
