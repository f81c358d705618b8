package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/maxviazov/library-service/internal/app"
	"github.com/maxviazov/library-service/internal/cache"
	"github.com/maxviazov/library-service/internal/config"
	"github.com/maxviazov/library-service/internal/handler"
	"github.com/maxviazov/library-service/internal/logger"
	"github.com/maxviazov/library-service/internal/metrics"
	"github.com/maxviazov/library-service/internal/pagination"
	"github.com/maxviazov/library-service/internal/service"
)

func configPath() string {
	if p := os.Getenv("APP_CONFIG_PATH"); p != "" {
		return p
	}
	return "config.yaml"
}

func main() {
	// Load application config
	cfg, err := config.Load(configPath())
	if err != nil {
		log.Fatalf("❌ Config loading failed: %v", err)
	}

	// Initialize logger
	appLogger, err := logger.New(&cfg.Logger)
	if err != nil {
		log.Fatalf("❌ Logger initialization failed: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	stores, err := app.OpenStores(ctx, cfg, appLogger)
	if err != nil {
		appLogger.Fatal().Err(err).Msg("❌ Postgres connection failed")
	}
	defer stores.Close()

	c, redisClient, err := app.NewCache(cfg.Redis, appLogger)
	if err != nil {
		appLogger.Fatal().Err(err).Msg("❌ Redis cache initialization failed")
	}
	opts := handler.Options{
		Paginated:   cfg.Pagination.Enabled,
		ClientAddr:  cfg.App.ClientAddr,
		CORSOrigins: cfg.App.CORSOrigins,
		OpenAPIPath: cfg.App.OpenAPIPath,
	}
	if cfg.App.Metrics {
		opts.Metrics = metrics.New(cfg.App.Name)
		c = cache.NewObserved(c, opts.Metrics)
	}
	if redisClient != nil {
		defer func() { _ = redisClient.Close() }()
		opts.Checks = append(opts.Checks, handler.Check{
			Name:   "redis",
			Pinger: handler.PingFunc(func(ctx context.Context) error { return redisClient.Ping(ctx).Err() }),
		})
	}

	if cfg.Seed.Enabled {
		if _, err := app.Seed(ctx, cfg.Seed, stores, c, appLogger); err != nil {
			appLogger.Fatal().Err(err).Msg("❌ Seeding failed")
		}
	}

	builder, err := pagination.NewBuilder(cfg.Pagination.PerPage, cfg.Pagination.RootURL)
	if err != nil {
		appLogger.Fatal().Err(err).Msg("❌ Pagination setup failed")
	}
	bookSvc := service.NewBookService(stores.Books, builder, c, appLogger)
	pageSvc := service.NewPageService(stores.Pages, builder, c, appLogger)

	if cfg.App.Env == "prod" || cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := handler.NewEngine(appLogger, opts)
	handler.Register(r, stores.Pinger, bookSvc, pageSvc, opts)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		appLogger.Info().
			Str("addr", srv.Addr).
			Str("root_url", cfg.Pagination.RootURL).
			Bool("paginated", cfg.Pagination.Enabled).
			Msg("🚀 Library API listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		appLogger.Info().Msg("shutdown signal received")
	case err := <-errCh:
		if err != nil {
			appLogger.Error().Err(err).Msg("http server failed")
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.App.ShutdownTimeout)*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error().Err(err).Msg("graceful shutdown failed")
		return
	}
	appLogger.Info().Msg("server stopped")
}
