// Package cli implements the stackcanvas command-line interface.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/stackcanvas/stackcanvas/internal/config"
	"github.com/stackcanvas/stackcanvas/pkg/buildinfo"
	"github.com/stackcanvas/stackcanvas/pkg/cache"
	"github.com/stackcanvas/stackcanvas/pkg/genai"
	"github.com/stackcanvas/stackcanvas/pkg/history"
)

// appName is the application name used for directories and display.
const appName = "stackcanvas"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           level,
		}),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "stackcanvas",
		Short:        "Stackcanvas turns project descriptions into tech stack diagrams",
		Long:         `Stackcanvas is a tool for designing tech stacks: describe a project in plain language and it generates an architecture diagram, explains it, lays it out, and scaffolds the project structure.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: ~/.config/stackcanvas/config.toml)")

	root.AddCommand(c.generateCommand())
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.explainCommand())
	root.AddCommand(c.scaffoldCommand())
	root.AddCommand(c.promptCommand())
	root.AddCommand(c.exportCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.historyCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig loads configuration honoring the --config flag.
func (c *CLI) loadConfig() (config.Config, error) {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// newAIClient builds a Gemini client from configuration.
func (c *CLI) newAIClient(cfg config.Config, noCache bool) *genai.Client {
	return genai.New(genai.Options{
		APIKey:   cfg.AI.APIKey,
		Model:    cfg.AI.Model,
		Cache:    c.newCache(cfg, noCache),
		CacheTTL: cfg.Cache.TTL.Duration,
		Logger:   c.Logger,
	})
}

func (c *CLI) newCache(cfg config.Config, noCache bool) cache.Cache {
	if noCache || cfg.Cache.Backend == config.BackendNone {
		return cache.NewNullCache()
	}
	if cfg.Cache.Backend == config.BackendRedis {
		rc, err := cache.NewRedisCache(context.Background(), cache.RedisConfig{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			c.Logger.Warn("redis cache unavailable, continuing without cache", "err", err)
			return cache.NewNullCache()
		}
		return rc
	}

	dir := cfg.Cache.Dir
	if dir == "" {
		d, err := cacheDir()
		if err != nil {
			return cache.NewNullCache()
		}
		dir = d
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		c.Logger.Warn("file cache unavailable, continuing without cache", "err", err)
		return cache.NewNullCache()
	}
	return fc
}

// newHistoryStore builds the history store from configuration. The memory
// backend is per-process, so CLI runs only share history through redis.
func (c *CLI) newHistoryStore(ctx context.Context, cfg config.Config) (history.Store, error) {
	if cfg.History.Backend == config.BackendRedis {
		return history.NewRedisStore(ctx, history.RedisConfig{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}
	return history.NewMemoryStore(), nil
}

// cacheDir returns the cache directory using XDG standard (~/.cache/stackcanvas/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	return cache.DefaultDir()
}
