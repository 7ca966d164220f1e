package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"saledash/internal/cli"
	apphttp "saledash/internal/http"
	"saledash/internal/log"
)

func main() {
	cli.LoadEnvFile()

	logger := cli.SetupLogger(os.Getenv("LOG_LEVEL"), nil)
	ctx := context.Background()

	cfg, err := cli.LoadAndValidateConfig()
	if err != nil {
		logger.ErrorContext(ctx, "Configuration validation failed", log.FieldError, err.Error())
		os.Exit(1)
	}

	app, err := cli.Bootstrap(ctx, cfg, logger)
	if err != nil {
		logger.ErrorContext(ctx, "Failed to initialize backend", log.FieldError, err.Error(), log.FieldBackend, cfg.DataBackend)
		os.Exit(1)
	}

	srv := apphttp.NewServer(":"+cfg.Port, app.Reports, app.Seeder, app.Backend.Store, logger,
		apphttp.WithSeedRateLimit(cfg.SeedRateLimit))

	// Configure server timeouts and limits. No write timeout: a reseed has no
	// upper bound unless SEED_FETCH_TIMEOUT is set.
	srv.ReadHeaderTimeout = 10 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	shutdownCtx, done := cli.GracefulShutdown(logger, 30*time.Second, func(ctx context.Context) {
		if err := srv.Shutdown(ctx); err != nil {
			logger.ErrorContext(ctx, "Server shutdown error", log.FieldError, err.Error())
		}
		if err := app.Close(); err != nil {
			logger.ErrorContext(ctx, "Backend cleanup error", log.FieldError, err.Error())
		}
	})

	logger.InfoContext(ctx, "Starting saledash server",
		"port", cfg.Port,
		log.FieldBackend, cfg.DataBackend,
		"seed_url", cfg.SeedURL,
		"amqp_enabled", app.Backend.Notifier != nil)

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.ErrorContext(ctx, "Server error", log.FieldError, err.Error(), "port", cfg.Port)
		_ = app.Close()
		os.Exit(1)
	}

	<-shutdownCtx.Done()
	<-done
	logger.InfoContext(ctx, "Server stopped gracefully")
}
