// Command server runs the domsetbench HTTP API: instance/solution
// ingestion, the query planner, and the admin-gated mutation surface.
package main

import (
	"context"
	"os"

	"domsetbench/internal/audit"
	"domsetbench/internal/config"
	"domsetbench/internal/httpapi"
	"domsetbench/internal/ingest"
	"domsetbench/internal/logger"
	"domsetbench/internal/metrics"
	"domsetbench/internal/migrations"
	"domsetbench/internal/ratelimit"
	"domsetbench/internal/storage"
	"domsetbench/internal/telemetry"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("failed to load configuration", "error", err)
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal("invalid configuration", "error", err)
	}

	logger.InitWithConfig(logger.Config{
		Level: cfg.Log.Level, Format: cfg.Log.Format, Output: cfg.Log.Output,
		FilePath: cfg.Log.FilePath, MaxSize: cfg.Log.MaxSize, MaxBackups: cfg.Log.MaxBackups,
		MaxAge: cfg.Log.MaxAge, Compress: cfg.Log.Compress,
	})

	if err := migrations.RunMigrations(&cfg.Database); err != nil {
		logger.Fatal("failed to run migrations", "error", err)
	}

	m := metrics.InitMetrics(cfg.Metrics.Namespace, cfg.Metrics.Subsystem)
	m.SetServiceInfo(cfg.App.Version, cfg.App.Environment)
	if cfg.Metrics.Enabled {
		go func() {
			if err := metrics.StartMetricsServer(cfg.Metrics.Port); err != nil {
				logger.Log.Error("metrics server stopped", "error", err)
			}
		}()
	}

	ctx := context.Background()
	if _, err := telemetry.Init(ctx, telemetry.Config{
		Enabled: cfg.Tracing.Enabled, Endpoint: cfg.Tracing.Endpoint,
		ServiceName: cfg.Tracing.ServiceName, Version: cfg.App.Version,
		Environment: cfg.App.Environment, SampleRate: cfg.Tracing.SampleRate,
	}); err != nil {
		logger.Fatal("failed to initialize telemetry", "error", err)
	}

	db, err := storage.NewPostgresDB(ctx, &cfg.Database)
	if err != nil {
		logger.Fatal("failed to connect to database", "error", err)
	}
	defer db.Close()

	var limiter ratelimit.Limiter
	if cfg.RateLimit.Enabled {
		limiter, err = ratelimit.New(&ratelimit.Config{
			Requests: cfg.RateLimit.Requests, Window: cfg.RateLimit.Window,
			Backend:       cfg.RateLimit.Backend,
			RedisAddr:     cfg.RateLimit.RedisAddr,
			RedisPassword: cfg.RateLimit.RedisPassword,
			RedisDB:       cfg.RateLimit.RedisDB,
		})
		if err != nil {
			logger.Log.Error("failed to initialize rate limiter, continuing without one", "error", err)
			limiter = nil
		}
	}

	auditLogger, err := audit.New(&audit.Config{
		Enabled: cfg.Audit.Enabled, Backend: cfg.Audit.Backend, FilePath: cfg.Audit.FilePath,
		BufferSize: cfg.Audit.BufferSize, FlushPeriod: cfg.Audit.FlushPeriod,
	})
	if err != nil {
		logger.Log.Error("failed to initialize audit logger, continuing without one", "error", err)
		auditLogger = &audit.NoopLogger{}
	}

	svc := ingest.NewService(db, m)
	handlers := httpapi.NewHandlers(db, svc, cfg.Ingest, m)
	router := httpapi.NewRouter(handlers, cfg, limiter, auditLogger, m)

	server := httpapi.NewServer(cfg, router, auditLogger)
	if err := server.Run(); err != nil {
		logger.Log.Error("server exited with error", "error", err)
		os.Exit(1)
	}
}
