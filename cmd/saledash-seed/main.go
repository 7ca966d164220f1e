// Command saledash-seed reloads the transaction store from the seed URL once
// and exits. It uses the same environment as the server.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"saledash/internal/cli"
	"saledash/internal/log"
)

func main() {
	envFile := flag.String("env", "", "optional .env file to load before reading the environment")
	seedURL := flag.String("url", "", "override SEED_URL for this run")
	flag.Parse()

	if *envFile != "" {
		cli.LoadEnvFile(*envFile)
	} else {
		cli.LoadEnvFile()
	}
	if *seedURL != "" {
		_ = os.Setenv("SEED_URL", *seedURL)
	}

	logger := cli.SetupLogger(os.Getenv("LOG_LEVEL"), nil).WithComponent(log.ComponentSeed)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

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
	defer func() {
		if err := app.Close(); err != nil {
			logger.ErrorContext(ctx, "Backend cleanup error", log.FieldError, err.Error())
		}
	}()

	n, err := app.Seeder.Seed(ctx)
	if err != nil {
		logger.ErrorContext(ctx, "Seed failed", log.FieldError, err.Error(), "seed_url", cfg.SeedURL)
		stop()
		_ = app.Close()
		os.Exit(1)
	}

	logger.InfoContext(ctx, "Seed completed", log.FieldRecords, n, log.FieldBackend, cfg.DataBackend)
	fmt.Printf("Database initialized with seed data (%d records)\n", n)
}
