// Package config loads stackcanvas configuration from a TOML file with
// environment variable overrides. File settings are the base, environment
// variables win, and anything unset falls back to defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/stackcanvas/stackcanvas/pkg/flow/layout"
)

// Backend names accepted for cache and history configuration.
const (
	BackendFile   = "file"
	BackendMemory = "memory"
	BackendRedis  = "redis"
	BackendNone   = "none"
)

// Config is the full application configuration.
type Config struct {
	Server  Server  `toml:"server"`
	AI      AI      `toml:"ai"`
	Cache   Cache   `toml:"cache"`
	History History `toml:"history"`
	Redis   Redis   `toml:"redis"`
	Mongo   Mongo   `toml:"mongo"`
	Layout  Layout  `toml:"layout"`
}

// Server configures the HTTP API.
type Server struct {
	// Addr is the listen address, host:port.
	Addr string `toml:"addr"`

	// CORSOrigins lists allowed origins for browser clients.
	CORSOrigins []string `toml:"cors_origins"`
}

// AI configures the Gemini backend.
type AI struct {
	// APIKey authenticates against Gemini. Usually set via GEMINI_API_KEY.
	APIKey string `toml:"api_key"`

	// Model names the Gemini model.
	Model string `toml:"model"`
}

// Cache configures AI response caching.
type Cache struct {
	// Backend is one of "file", "redis", "none".
	Backend string `toml:"backend"`

	// Dir is the file cache directory. Empty means the default
	// ~/.cache/stackcanvas/.
	Dir string `toml:"dir"`

	// TTL is the cache entry lifetime, e.g. "24h".
	TTL duration `toml:"ttl"`
}

// History configures the generation history store.
type History struct {
	// Backend is one of "memory", "redis".
	Backend string `toml:"backend"`
}

// Redis holds connection settings shared by the redis cache and history
// backends.
type Redis struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

// Mongo configures the diagram store. An empty URI disables it.
type Mongo struct {
	URI        string `toml:"uri"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

// Layout holds the default layout dimensions for the API and CLI.
type Layout struct {
	NodeWidth         float64 `toml:"node_width"`
	NodeHeight        float64 `toml:"node_height"`
	HorizontalSpacing float64 `toml:"horizontal_spacing"`
	VerticalSpacing   float64 `toml:"vertical_spacing"`
}

// duration wraps time.Duration for TOML string values like "24h".
type duration struct {
	time.Duration
}

func (d *duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// Default returns the configuration with all defaults applied.
func Default() Config {
	return Config{
		Server: Server{
			Addr:        "localhost:5001",
			CORSOrigins: []string{"http://localhost:8080", "http://localhost:8081"},
		},
		AI: AI{},
		Cache: Cache{
			Backend: BackendFile,
			TTL:     duration{24 * time.Hour},
		},
		History: History{
			Backend: BackendMemory,
		},
		Redis: Redis{
			Addr: "localhost:6379",
		},
		Mongo: Mongo{
			Database:   "stackcanvas",
			Collection: "diagrams",
		},
		Layout: Layout{
			NodeWidth:         layout.DefaultNodeWidth,
			NodeHeight:        layout.DefaultNodeHeight,
			HorizontalSpacing: layout.DefaultHorizontalSpacing,
			VerticalSpacing:   layout.DefaultVerticalSpacing,
		},
	}
}

// DefaultPath returns the default config file location,
// ~/.config/stackcanvas/config.toml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "stackcanvas", "config.toml"), nil
}

// Load reads configuration from path, applies environment overrides, and
// validates the result. An empty path uses [DefaultPath]; a missing file is
// not an error, the defaults simply stand.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err == nil {
			path = p
		}
	}
	if path != "" {
		_, err := toml.DecodeFile(path, &cfg)
		switch {
		case err == nil:
		case os.IsNotExist(err) && !explicit:
			// No config file is fine, the defaults stand.
		default:
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// applyEnv overrides file settings with environment variables.
func (c *Config) applyEnv() {
	if v := os.Getenv("GEMINI_API_KEY"); v != "" {
		c.AI.APIKey = v
	}
	if v := os.Getenv("STACKCANVAS_MODEL"); v != "" {
		c.AI.Model = v
	}
	if v := os.Getenv("STACKCANVAS_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("STACKCANVAS_CACHE_BACKEND"); v != "" {
		c.Cache.Backend = v
	}
	if v := os.Getenv("STACKCANVAS_HISTORY_BACKEND"); v != "" {
		c.History.Backend = v
	}
	if v := os.Getenv("STACKCANVAS_REDIS_ADDR"); v != "" {
		c.Redis.Addr = v
	}
	if v := os.Getenv("STACKCANVAS_REDIS_PASSWORD"); v != "" {
		c.Redis.Password = v
	}
	if v := os.Getenv("STACKCANVAS_REDIS_DB"); v != "" {
		if db, err := strconv.Atoi(v); err == nil {
			c.Redis.DB = db
		}
	}
	if v := os.Getenv("STACKCANVAS_MONGO_URI"); v != "" {
		c.Mongo.URI = v
	}
}

// Validate rejects unusable configuration before anything connects.
func (c *Config) Validate() error {
	switch c.Cache.Backend {
	case BackendFile, BackendRedis, BackendNone:
	default:
		return fmt.Errorf("cache.backend must be %q, %q, or %q, got %q",
			BackendFile, BackendRedis, BackendNone, c.Cache.Backend)
	}

	switch c.History.Backend {
	case BackendMemory, BackendRedis:
	default:
		return fmt.Errorf("history.backend must be %q or %q, got %q",
			BackendMemory, BackendRedis, c.History.Backend)
	}

	if (c.Cache.Backend == BackendRedis || c.History.Backend == BackendRedis) && c.Redis.Addr == "" {
		return fmt.Errorf("redis.addr is required when a redis backend is selected")
	}

	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr must not be empty")
	}
	return nil
}

// LayoutConfig converts the configured dimensions to a layout engine config.
func (c *Config) LayoutConfig() layout.Config {
	return layout.Config{
		NodeWidth:         c.Layout.NodeWidth,
		NodeHeight:        c.Layout.NodeHeight,
		HorizontalSpacing: c.Layout.HorizontalSpacing,
		VerticalSpacing:   c.Layout.VerticalSpacing,
	}
}
