// Package app wires configuration into the concrete stores, cache and seeder
// shared by the server and seed binaries.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/maxviazov/library-service/internal/cache"
	"github.com/maxviazov/library-service/internal/config"
	"github.com/maxviazov/library-service/internal/repository"
	"github.com/maxviazov/library-service/internal/repository/postgres"
	"github.com/maxviazov/library-service/internal/seed"
)

// Stores bundles the pgx-backed repositories over one pool.
type Stores struct {
	DB     *repository.Repository
	Books  repository.BookRepository
	Pages  repository.PageRepository
	Tx     repository.TxManager
	Pinger repository.Pinger
}

func (s *Stores) Close() { s.DB.Close() }

// OpenStores connects to Postgres and, when seed.migrate is set, applies pending migrations.
func OpenStores(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*Stores, error) {
	db, err := repository.New(ctx, cfg, &logger)
	if err != nil {
		return nil, err
	}
	if cfg.Seed.Migrate {
		if err := db.Migrate(ctx, cfg.Seed.MigrationsDir, logger); err != nil {
			db.Close()
			return nil, err
		}
	}
	pool := db.Pool()
	return &Stores{
		DB:     db,
		Books:  postgres.NewBookRepository(pool),
		Pages:  postgres.NewPageRepository(pool),
		Tx:     postgres.NewTxManager(pool),
		Pinger: postgres.NewPinger(pool),
	}, nil
}

// NewCache returns the Redis cache when enabled, otherwise a no-op cache and a nil client.
// The caller owns the returned client.
func NewCache(cfg config.RedisConfig, logger zerolog.Logger) (cache.Cache, *redis.Client, error) {
	if !cfg.Enabled {
		return cache.Noop{}, nil, nil
	}
	c, client, err := cache.NewRedisFromURL(cfg.URL,
		cache.WithKeyPrefix(cfg.KeyPrefix),
		cache.WithTTL(time.Duration(cfg.TTL)*time.Second),
	)
	if err != nil {
		return nil, nil, err
	}
	logger.Info().Str("prefix", cfg.KeyPrefix).Int("ttl_seconds", cfg.TTL).Msg("redis cache enabled")
	return c, client, nil
}

// Seed runs the seeding pipeline against stores with options taken from cfg.
func Seed(ctx context.Context, cfg config.SeedConfig, stores *Stores, c cache.Cache, logger zerolog.Logger) (seed.Result, error) {
	s := seed.NewSeeder(stores.Books, stores.Pages, stores.Tx, c, logger)
	res, err := s.Run(ctx, SeedOptions(cfg))
	if err != nil {
		return seed.Result{}, fmt.Errorf("seed: %w", err)
	}
	return res, nil
}

func SeedOptions(cfg config.SeedConfig) seed.Options {
	return seed.Options{
		CorporaDir:        cfg.CorporaDir,
		SeedDir:           cfg.SeedDir,
		ParagraphsPerPage: cfg.ParagraphsPerPage,
		BatchSize:         cfg.BatchSize,
	}
}
