package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	goprometheus "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/opsbench/devops-api/internal/config"
	metricsprom "github.com/opsbench/devops-api/pkg/adapters/metrics/prometheus"
	"github.com/opsbench/devops-api/pkg/adapters/storage/postgres"
	redisstorage "github.com/opsbench/devops-api/pkg/adapters/storage/redis"
	"github.com/opsbench/devops-api/pkg/api/http"
)

var (
	// Version is set by build flags
	Version   = "1.0.0"
	BuildTime = "unknown"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger := initLogger(cfg.LogLevel)
	defer logger.Sync()

	logger.Info("starting DevOps API",
		zap.String("version", Version),
		zap.String("build_time", BuildTime),
		zap.String("env", cfg.Env),
		zap.String("prometheus_endpoint", cfg.Observability.PrometheusEndpoint),
		zap.String("grafana_endpoint", cfg.Observability.GrafanaEndpoint))

	ctx := context.Background()

	// The database and cache are reachability-only collaborators: the
	// service connects when they are available but serves without them.
	store := connectPostgres(ctx, cfg, logger)
	cache := connectRedis(ctx, cfg, logger)

	// Initialize metrics
	registry := goprometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metricsCollector := metricsprom.NewCollector(registry)

	// Initialize HTTP server
	httpServer := http.NewServer(&http.Config{
		Addr:     cfg.GetHTTPAddr(),
		Version:  Version,
		Registry: registry,
		Metrics:  metricsCollector,
		Logger:   logger,
	})

	go func() {
		if err := httpServer.Start(); err != nil {
			logger.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	logger.Info("DevOps API started",
		zap.String("addr", cfg.GetHTTPAddr()))

	// Wait for interrupt signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	logger.Info("received shutdown signal")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Timeouts.ShutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", zap.Error(err))
	}

	if store != nil {
		if err := store.Close(); err != nil {
			logger.Error("database close error", zap.Error(err))
		}
	}

	if cache != nil {
		if err := cache.Close(); err != nil {
			logger.Error("cache close error", zap.Error(err))
		}
	}

	logger.Info("DevOps API shut down complete")
}

// connectPostgres opens the optional PostgreSQL connection. Failure is
// not fatal: the API serves without its backing stores.
func connectPostgres(ctx context.Context, cfg *config.Config, logger *zap.Logger) *postgres.Store {
	store, err := postgres.Connect(ctx, cfg.Database.GetDSN(), cfg.Database.PingTimeout, logger)
	if err != nil {
		logger.Warn("PostgreSQL unreachable, continuing without it", zap.Error(err))
		return nil
	}

	logger.Info("connected to PostgreSQL",
		zap.String("database", cfg.Database.Name),
		zap.Int("open_connections", store.Stats().OpenConnections))
	return store
}

// connectRedis opens the optional Redis connection. Failure is not
// fatal: the API serves without its backing stores.
func connectRedis(ctx context.Context, cfg *config.Config, logger *zap.Logger) *redisstorage.Cache {
	opts, err := cfg.Redis.GetOptions()
	if err != nil {
		logger.Warn("invalid Redis configuration, continuing without it", zap.Error(err))
		return nil
	}

	cache := redisstorage.NewCache(goredis.NewClient(opts), logger)

	if err := cache.Ping(ctx); err != nil {
		logger.Warn("Redis unreachable, continuing without it", zap.Error(err))
		_ = cache.Close()
		return nil
	}

	logger.Info("connected to Redis", zap.String("addr", opts.Addr))
	return cache
}

// initLogger initializes the logger based on log level
func initLogger(level string) *zap.Logger {
	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		zapLevel = zapcore.InfoLevel
	}

	config := zap.NewProductionConfig()
	config.Level = zap.NewAtomicLevelAt(zapLevel)
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := config.Build()
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}

	return logger
}
