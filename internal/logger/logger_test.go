package logger_test

import (
	"os"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	logpkg "github.com/maxviazov/library-service/internal/logger"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name           string
		config         *logpkg.LoggerConfig
		expectError    bool
		validateOutput func(zerolog.Logger) bool
	}{
		{
			name: "valid production environment",
			config: &logpkg.LoggerConfig{
				ServiceName:    "library-service",
				ServiceVersion: "1.0.0",
				Env:            "prod",
				Level:          "info",
				TimeField:      "timestamp",
				TimeFormat:     "unix",
				Fields:         map[string]interface{}{"key": "value"},
			},
			validateOutput: func(zerolog.Logger) bool {
				return zerolog.GlobalLevel() == zerolog.InfoLevel
			},
		},
		{
			name: "invalid configuration - wrong env",
			config: &logpkg.LoggerConfig{
				ServiceName: "bad-service",
				Env:         "wrong-env",
				Level:       "debug",
			},
			expectError: true,
		},
		{
			name: "invalid log level",
			config: &logpkg.LoggerConfig{
				Env:   "prod",
				Level: "invalid-level",
			},
			expectError: true,
		},
		{
			name: "invalid output target",
			config: &logpkg.LoggerConfig{
				Env:          "prod",
				OutputTarget: "syslog",
			},
			expectError: true,
		},
		{
			name: "valid staging environment on stderr",
			config: &logpkg.LoggerConfig{
				Env:          "staging",
				Level:        "warn",
				OutputTarget: "stderr",
				Stacktrace:   true,
			},
			validateOutput: func(zerolog.Logger) bool {
				return zerolog.GlobalLevel() == zerolog.WarnLevel
			},
		},
		{
			name: "valid development environment without debug",
			config: &logpkg.LoggerConfig{
				Env:        "dev",
				Level:      "info",
				TimeFormat: "rfc3339",
			},
			validateOutput: func(zerolog.Logger) bool {
				return zerolog.GlobalLevel() == zerolog.InfoLevel
			},
		},
		{
			name:   "defaults fill an empty config",
			config: &logpkg.LoggerConfig{},
			validateOutput: func(zerolog.Logger) bool {
				return zerolog.GlobalLevel() == zerolog.InfoLevel
			},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			l, err := logpkg.New(test.config)
			if test.expectError {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			if test.validateOutput != nil {
				assert.True(t, test.validateOutput(l))
			}
		})
	}

	t.Run("debug log file creation", func(t *testing.T) {
		_, err := logpkg.New(&logpkg.LoggerConfig{Env: "dev", Level: "debug"})
		assert.NoError(t, err)

		_, statErr := os.Stat("logs/debug.log")
		assert.NoError(t, statErr)

		t.Cleanup(func() {
			if err := os.RemoveAll("logs"); err != nil {
				t.Logf("cleanup failed: %v", err)
			}
		})
	})
}
