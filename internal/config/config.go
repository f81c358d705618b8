package config

import (
	"github.com/maxviazov/library-service/internal/logger"
)

type Config struct {
	App        AppConfig           `mapstructure:"app"`
	Logger     logger.LoggerConfig `mapstructure:"logger" validate:"-"`
	Postgres   PostgresConfig      `mapstructure:"postgres"`
	Pagination PaginationConfig    `mapstructure:"pagination"`
	Seed       SeedConfig          `mapstructure:"seed"`
	Redis      RedisConfig         `mapstructure:"redis"`
}

type AppConfig struct {
	Name       string `mapstructure:"name"`
	Version    string `mapstructure:"version"`
	Env        string `mapstructure:"env"`
	Port       int    `mapstructure:"port" validate:"gt=0,lte=65535"`
	ClientAddr string `mapstructure:"client_addr" validate:"omitempty,url"`
	// CORSOrigins lists browser origins allowed to call the API; "*" allows any.
	CORSOrigins []string `mapstructure:"cors_origins"`
	Metrics     bool     `mapstructure:"metrics"`
	OpenAPIPath string   `mapstructure:"openapi_path"`
	// ShutdownTimeout is in seconds.
	ShutdownTimeout int `mapstructure:"shutdown_timeout" validate:"gte=0"`
}

// PostgresConfig carries connection and pool tuning. Durations are in seconds.
// User, password and database name are secrets and usually come from APP_POSTGRES_* env.
type PostgresConfig struct {
	Host              string `mapstructure:"host" validate:"required"`
	Port              int    `mapstructure:"port" validate:"gt=0,lte=65535"`
	User              string `mapstructure:"user" validate:"required"`
	Password          string `mapstructure:"password" validate:"required"`
	DBName            string `mapstructure:"db" validate:"required"`
	SSLMode           string `mapstructure:"sslmode"`
	MaxConns          int32  `mapstructure:"max_conns" validate:"gte=0"`
	MinConns          int32  `mapstructure:"min_conns" validate:"gte=0"`
	MaxConnLifetime   int    `mapstructure:"max_conn_lifetime" validate:"gte=0"`
	MaxConnIdleTime   int    `mapstructure:"max_conn_idle_time" validate:"gte=0"`
	HealthCheckPeriod int    `mapstructure:"health_check_period" validate:"gte=0"`
}

// PaginationConfig drives listing endpoints. With Enabled=false listings return a bare
// array capped at a fixed limit instead of an envelope.
type PaginationConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	PerPage int    `mapstructure:"per_page" validate:"gt=0"`
	RootURL string `mapstructure:"root_url"`
}

type SeedConfig struct {
	Enabled           bool   `mapstructure:"enabled"`
	Migrate           bool   `mapstructure:"migrate"`
	MigrationsDir     string `mapstructure:"migrations_dir" validate:"required_if=Migrate true"`
	CorporaDir        string `mapstructure:"corpora_dir" validate:"required_if=Enabled true"`
	SeedDir           string `mapstructure:"seed_dir" validate:"required_if=Enabled true"`
	ParagraphsPerPage int    `mapstructure:"paragraphs_per_page" validate:"gt=0"`
	BatchSize         int    `mapstructure:"batch_size" validate:"gt=0,lte=5000"`
}

type RedisConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	URL       string `mapstructure:"url" validate:"required_if=Enabled true"`
	KeyPrefix string `mapstructure:"key_prefix"`
	// TTL is in seconds; 0 keeps entries until invalidated.
	TTL int `mapstructure:"ttl" validate:"gte=0"`
}
