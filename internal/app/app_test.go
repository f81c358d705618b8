package app_test

import (
	"context"
	"io"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxviazov/library-service/internal/app"
	"github.com/maxviazov/library-service/internal/cache"
	"github.com/maxviazov/library-service/internal/config"
	"github.com/maxviazov/library-service/internal/seed"
)

func TestNewCache_Disabled(t *testing.T) {
	c, client, err := app.NewCache(config.RedisConfig{}, zerolog.New(io.Discard))
	require.NoError(t, err)
	assert.Nil(t, client)
	assert.IsType(t, cache.Noop{}, c)
}

func TestNewCache_Redis(t *testing.T) {
	mr := miniredis.RunT(t)
	c, client, err := app.NewCache(config.RedisConfig{
		Enabled:   true,
		URL:       "redis://" + mr.Addr() + "/0",
		KeyPrefix: "library",
		TTL:       60,
	}, zerolog.New(io.Discard))
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	require.NoError(t, c.Set(context.Background(), cache.KeyAllPages, []int{1}))
	assert.True(t, mr.Exists("library:pages:all"))
	assert.Positive(t, mr.TTL("library:pages:all"))
}

func TestNewCache_BadURL(t *testing.T) {
	_, _, err := app.NewCache(config.RedisConfig{Enabled: true, URL: "mysql://nope"}, zerolog.New(io.Discard))
	assert.Error(t, err)
}

func TestSeedOptions(t *testing.T) {
	got := app.SeedOptions(config.SeedConfig{
		CorporaDir:        "corpora",
		SeedDir:           "seed",
		ParagraphsPerPage: 50,
		BatchSize:         100,
	})
	assert.Equal(t, seed.Options{CorporaDir: "corpora", SeedDir: "seed", ParagraphsPerPage: 50, BatchSize: 100}, got)
}
