package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/maxviazov/library-service/internal/app"
	"github.com/maxviazov/library-service/internal/config"
	"github.com/maxviazov/library-service/internal/logger"
)

func main() {
	path := os.Getenv("APP_CONFIG_PATH")
	if path == "" {
		path = "config.yaml"
	}
	cfg, err := config.Load(path)
	if err != nil {
		log.Fatalf("❌ Config loading failed: %v", err)
	}
	appLogger, err := logger.New(&cfg.Logger)
	if err != nil {
		log.Fatalf("❌ Logger initialization failed: %v", err)
	}

	if err := run(cfg, appLogger); err != nil {
		appLogger.Fatal().Err(err).Msg("❌ Seeding failed")
	}
}

func run(cfg *config.Config, appLogger zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	stores, err := app.OpenStores(ctx, cfg, appLogger)
	if err != nil {
		return err
	}
	defer stores.Close()

	c, client, err := app.NewCache(cfg.Redis, appLogger)
	if err != nil {
		return err
	}
	if client != nil {
		defer func() { _ = client.Close() }()
	}

	res, err := app.Seed(ctx, cfg.Seed, stores, c, appLogger)
	if err != nil {
		return err
	}
	appLogger.Info().
		Int("books", res.Books).
		Int("pages", res.Pages).
		Msg("✅ Seed complete")
	return nil
}
