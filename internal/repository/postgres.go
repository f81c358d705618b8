package repository

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/tracelog"
	"github.com/maxviazov/library-service/internal/config"
	"github.com/rs/zerolog"
)

// Repository owns the pgx connection pool shared by every store.
type Repository struct {
	pool *pgxpool.Pool
}

// New builds the pool from config, wires pgx tracing into zerolog and pings the server.
func New(ctx context.Context, cfg *config.Config, logger *zerolog.Logger) (*Repository, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if cfg == nil {
		return nil, errors.New("config is required")
	}
	if logger == nil {
		return nil, errors.New("logger is required")
	}

	poolConfig, err := pgxpool.ParseConfig(DSN(cfg.Postgres))
	if err != nil {
		return nil, fmt.Errorf("failed to parse pool config: %w", err)
	}

	poolConfig.ConnConfig.Tracer = &tracelog.TraceLog{
		Logger:   newPgxLogger(*logger),
		LogLevel: traceLevel(logger.GetLevel()),
	}

	pc := cfg.Postgres
	if pc.MaxConns > 0 {
		poolConfig.MaxConns = pc.MaxConns
	}
	poolConfig.MinConns = pc.MinConns
	poolConfig.MaxConnLifetime = time.Duration(pc.MaxConnLifetime) * time.Second
	poolConfig.MaxConnIdleTime = time.Duration(pc.MaxConnIdleTime) * time.Second
	if pc.HealthCheckPeriod > 0 {
		poolConfig.HealthCheckPeriod = time.Duration(pc.HealthCheckPeriod) * time.Second
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create postgres pool: %w", err)
	}

	// bounded ping so a dead database fails startup instead of hanging it
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}

	logger.Info().
		Str("host", pc.Host).
		Int("port", pc.Port).
		Str("user", pc.User).
		Str("db", pc.DBName).
		Msg("Successfully connected to PostgreSQL")

	return &Repository{pool: pool}, nil
}

// DSN renders a postgres:// URL; url.URL takes care of escaping credentials.
func DSN(pc config.PostgresConfig) string {
	u := url.URL{
		Scheme: "postgres",
		Host:   fmt.Sprintf("%s:%d", pc.Host, pc.Port),
		Path:   pc.DBName,
	}
	if pc.User != "" || pc.Password != "" {
		u.User = url.UserPassword(pc.User, pc.Password)
	}
	q := u.Query()
	if pc.SSLMode != "" {
		q.Set("sslmode", pc.SSLMode)
	}
	u.RawQuery = q.Encode()
	return u.String()
}

func traceLevel(l zerolog.Level) tracelog.LogLevel {
	switch {
	case l <= zerolog.TraceLevel:
		return tracelog.LogLevelTrace
	case l <= zerolog.DebugLevel:
		return tracelog.LogLevelDebug
	case l <= zerolog.InfoLevel:
		return tracelog.LogLevelInfo
	case l <= zerolog.WarnLevel:
		return tracelog.LogLevelWarn
	default:
		return tracelog.LogLevelError
	}
}

// Pool exposes the underlying pool to store constructors.
func (r *Repository) Pool() *pgxpool.Pool { return r.pool }

// Close releases every pooled connection.
func (r *Repository) Close() {
	if r.pool != nil {
		r.pool.Close()
	}
}
