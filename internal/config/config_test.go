package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	dnderr "github.com/KirkDiggler/dnd-battlemap/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 15, cfg.Map.Width)
	assert.Equal(t, 25, cfg.Map.Height)
	assert.Equal(t, "ship", cfg.Map.Layout)
	assert.Nil(t, cfg.Map.Seed)
	assert.Equal(t, 20*time.Second, cfg.Resolver.Timeout)
	assert.False(t, cfg.TurnOrder.PreserveActive)
}

func TestLoad_FileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "battlemap.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[resolver]
url = "http://resolver:9000"
timeout = "5s"

[map]
layout = "river"
seed = 42

[turn_order]
preserve_active = true
`), 0o600))

	t.Setenv("BATTLEMAP_RESOLVER_URL", "http://override:9000")
	t.Setenv("BATTLEMAP_LOG_LEVEL", "debug")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "http://override:9000", cfg.Resolver.URL)
	assert.Equal(t, 5*time.Second, cfg.Resolver.Timeout)
	assert.Equal(t, "river", cfg.Map.Layout)
	require.NotNil(t, cfg.Map.Seed)
	assert.Equal(t, int64(42), *cfg.Map.Seed)
	assert.True(t, cfg.TurnOrder.PreserveActive)
	assert.Equal(t, "debug", cfg.Logging.Level)
	// untouched sections keep their defaults
	assert.Equal(t, 15, cfg.Map.Width)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(c *Config)
	}{
		{"zero width", func(c *Config) { c.Map.Width = 0 }},
		{"unknown layout", func(c *Config) { c.Map.Layout = "maze" }},
		{"script without path", func(c *Config) { c.Map.Layout = "script" }},
		{"crate chance above one", func(c *Config) { c.Map.CrateChance = 1.5 }},
		{"no timeout", func(c *Config) { c.Resolver.Timeout = 0 }},
		{"lock shorter than timeout", func(c *Config) {
			c.Redis.URL = "redis://localhost:6379"
			c.Redis.LockTTL = time.Second
		}},
		{"discord token only", func(c *Config) { c.Discord.Token = "abc" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaults()
			tt.modify(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.True(t, dnderr.IsInvalidArgument(err))
		})
	}

	assert.NoError(t, defaults().Validate())
}
