package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Load reads the YAML file at path, applies APP_* environment overrides and validates the result.
// A .env file in the working directory, when present, is loaded into the environment first.
func Load(path string) (*Config, error) {
	// .env is optional; real deployments inject env directly.
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(path)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.SetEnvPrefix("APP")
	v.AutomaticEnv()
	setDefaults(v)

	var config Config
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("config file not found: %w", err)
	}
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(&config); err != nil {
		return nil, fmt.Errorf("config validation error: %w", err)
	}
	return &config, nil
}

// setDefaults registers every key viper should know about. AutomaticEnv only overrides keys
// viper has seen, so secrets that never appear in YAML still need a default here.
func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "library-service")
	v.SetDefault("app.version", "0.0.1")
	v.SetDefault("app.env", "dev")
	v.SetDefault("app.port", 9000)
	v.SetDefault("app.client_addr", "http://localhost:3000")
	v.SetDefault("app.shutdown_timeout", 10)
	v.SetDefault("app.cors_origins", []string{"*"})
	v.SetDefault("app.metrics", true)
	v.SetDefault("app.openapi_path", "api/openapi.yaml")

	v.SetDefault("logger.level", "")
	v.SetDefault("logger.env", "")

	v.SetDefault("postgres.host", "localhost")
	v.SetDefault("postgres.port", 5432)
	v.SetDefault("postgres.user", "")
	v.SetDefault("postgres.password", "")
	v.SetDefault("postgres.db", "")
	v.SetDefault("postgres.sslmode", "disable")
	v.SetDefault("postgres.max_conns", 10)
	v.SetDefault("postgres.min_conns", 1)
	v.SetDefault("postgres.max_conn_lifetime", 3600)
	v.SetDefault("postgres.max_conn_idle_time", 300)
	v.SetDefault("postgres.health_check_period", 30)

	v.SetDefault("pagination.enabled", true)
	v.SetDefault("pagination.per_page", 10)
	v.SetDefault("pagination.root_url", "")

	v.SetDefault("seed.enabled", false)
	v.SetDefault("seed.migrate", true)
	v.SetDefault("seed.migrations_dir", "migrations/goose_sql")
	v.SetDefault("seed.corpora_dir", "data/corpora/gutenberg")
	v.SetDefault("seed.seed_dir", "data/seed_data")
	v.SetDefault("seed.paragraphs_per_page", 50)
	v.SetDefault("seed.batch_size", 100)

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.url", "")
	v.SetDefault("redis.key_prefix", "library")
	v.SetDefault("redis.ttl", 300)
}
