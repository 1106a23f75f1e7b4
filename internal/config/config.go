// Package config loads battlemap settings: built-in defaults, then an
// optional TOML file, then BATTLEMAP_* environment overrides.
package config

import (
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"

	dnderr "github.com/KirkDiggler/dnd-battlemap/internal/errors"
)

// EnvPrefix is prepended to every environment variable name
const EnvPrefix = "BATTLEMAP_"

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig    `toml:"server" envPrefix:"SERVER_"`
	Resolver  ResolverConfig  `toml:"resolver" envPrefix:"RESOLVER_"`
	Redis     RedisConfig     `toml:"redis" envPrefix:"REDIS_"`
	Discord   DiscordConfig   `toml:"discord" envPrefix:"DISCORD_"`
	Logging   LoggingConfig   `toml:"logging" envPrefix:"LOG_"`
	Map       MapConfig       `toml:"map" envPrefix:"MAP_"`
	Bestiary  BestiaryConfig  `toml:"bestiary" envPrefix:"BESTIARY_"`
	TurnOrder TurnOrderConfig `toml:"turn_order" envPrefix:"TURN_ORDER_"`
	Tracing   TracingConfig   `toml:"tracing" envPrefix:"TRACING_"`
}

// ServerConfig holds the HTTP listener settings
type ServerConfig struct {
	Addr            string        `toml:"addr" env:"ADDR"`
	ShutdownTimeout time.Duration `toml:"shutdown_timeout" env:"SHUTDOWN_TIMEOUT"`
}

// ResolverConfig points at the external turn resolver
type ResolverConfig struct {
	URL     string        `toml:"url" env:"URL"`
	Timeout time.Duration `toml:"timeout" env:"TIMEOUT"`
}

// RedisConfig enables the shared in-flight lock when URL is set
type RedisConfig struct {
	URL     string        `toml:"url" env:"URL"`
	LockTTL time.Duration `toml:"lock_ttl" env:"LOCK_TTL"`
}

// DiscordConfig enables the battle-log mirror when both fields are set
type DiscordConfig struct {
	Token     string `toml:"token" env:"TOKEN"`
	ChannelID string `toml:"channel_id" env:"CHANNEL_ID"`
}

// LoggingConfig selects the zap encoder and level
type LoggingConfig struct {
	Level  string `toml:"level" env:"LEVEL"`
	Format string `toml:"format" env:"FORMAT"` // "json" or "console"
}

// MapConfig describes the generated battle map
type MapConfig struct {
	Width       int     `toml:"width" env:"WIDTH"`
	Height      int     `toml:"height" env:"HEIGHT"`
	Name        string  `toml:"name" env:"NAME"`
	Description string  `toml:"description" env:"DESCRIPTION"`
	Layout      string  `toml:"layout" env:"LAYOUT"`
	Seed        *int64  `toml:"seed" env:"SEED"`
	ScriptPath  string  `toml:"script_path" env:"SCRIPT_PATH"`
	CrateChance float64 `toml:"crate_chance" env:"CRATE_CHANCE"`
}

// BestiaryConfig selects where entity templates come from
type BestiaryConfig struct {
	Path       string `toml:"path" env:"PATH"`
	SRDEnabled bool   `toml:"srd_enabled" env:"SRD_ENABLED"`
}

// TurnOrderConfig controls how the active turn survives roster changes
type TurnOrderConfig struct {
	PreserveActive bool `toml:"preserve_active" env:"PRESERVE_ACTIVE"`
}

// TracingConfig enables OTLP export when Endpoint is set
type TracingConfig struct {
	Endpoint    string `toml:"endpoint" env:"ENDPOINT"`
	ServiceName string `toml:"service_name" env:"SERVICE_NAME"`
}

var layouts = map[string]bool{"border": true, "ship": true, "river": true, "script": true}

// Load builds the configuration. An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, dnderr.Wrapf(err, "read config %s", path)
		}
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, dnderr.WrapWithCode(err, dnderr.CodeInvalidArgument, "parse config "+path)
		}
	}

	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, dnderr.WrapWithCode(err, dnderr.CodeInvalidArgument, "parse env")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the services cannot start with
func (c *Config) Validate() error {
	if c.Map.Width <= 0 || c.Map.Height <= 0 {
		return dnderr.InvalidArgumentf("map size %dx%d must be positive", c.Map.Width, c.Map.Height)
	}
	if !layouts[c.Map.Layout] {
		return dnderr.InvalidArgumentf("unknown map layout %q", c.Map.Layout)
	}
	if c.Map.Layout == "script" && c.Map.ScriptPath == "" {
		return dnderr.InvalidArgument("script layout requires map.script_path")
	}
	if c.Map.CrateChance < 0 || c.Map.CrateChance > 1 {
		return dnderr.InvalidArgumentf("crate chance %v outside [0,1]", c.Map.CrateChance)
	}
	if c.Resolver.Timeout <= 0 {
		return dnderr.InvalidArgument("resolver timeout must be positive")
	}
	if c.Redis.URL != "" && c.Redis.LockTTL < c.Resolver.Timeout {
		return dnderr.InvalidArgument("redis lock ttl must cover the resolver timeout")
	}
	if (c.Discord.Token == "") != (c.Discord.ChannelID == "") {
		return dnderr.InvalidArgument("discord token and channel_id must be set together")
	}
	return nil
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:            ":8000",
			ShutdownTimeout: 10 * time.Second,
		},
		Resolver: ResolverConfig{
			URL:     "http://localhost:8080",
			Timeout: 20 * time.Second,
		},
		Redis: RedisConfig{
			LockTTL: 30 * time.Second,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Map: MapConfig{
			Width:       15,
			Height:      25,
			Name:        "The Grey Wake",
			Description: "A merchant ship adrift, its deck stacked with cargo.",
			Layout:      "ship",
			CrateChance: 0.1,
		},
		Tracing: TracingConfig{
			ServiceName: "dnd-battlemap",
		},
	}
}
