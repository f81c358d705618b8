package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog"
)

// gooseLogger routes goose progress output through zerolog.
type gooseLogger struct{ logger zerolog.Logger }

func (g gooseLogger) Printf(format string, v ...interface{}) {
	g.logger.Info().Msgf(format, v...)
}

func (g gooseLogger) Fatalf(format string, v ...interface{}) {
	g.logger.Fatal().Msgf(format, v...)
}

// Migrate applies every pending goose migration found in dir.
// goose needs database/sql, so I wrap the pool through pgx's stdlib adapter.
func (r *Repository) Migrate(ctx context.Context, dir string, logger zerolog.Logger) error {
	db := stdlib.OpenDBFromPool(r.pool)
	defer db.Close()

	goose.SetLogger(gooseLogger{logger: logger.With().Str("component", "goose").Logger()})
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db, dir); err != nil {
		return fmt.Errorf("goose up %s: %w", dir, err)
	}
	return nil
}
