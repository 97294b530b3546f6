package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/stackcanvas/stackcanvas/internal/server"
	"github.com/stackcanvas/stackcanvas/pkg/store"
)

// serveCommand creates the serve command for running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the stackcanvas HTTP API",
		Long: `Run the stackcanvas HTTP API.

The server exposes graph generation, explanations, setup scripts, builder
prompts, layout, and SVG export for the canvas frontend. Cache, history, and
diagram storage backends are configured via the config file; the diagram
store activates when a mongo URI is configured.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr, noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable AI response caching")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr string, noCache bool) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	if addr != "" {
		cfg.Server.Addr = addr
	}

	hist, err := c.newHistoryStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer hist.Close()

	opts := server.FromConfig(cfg)
	opts.AI = c.newAIClient(cfg, noCache)
	opts.History = hist
	opts.Logger = c.Logger

	if cfg.Mongo.URI != "" {
		diagrams, err := store.New(ctx, store.Config{
			URI:        cfg.Mongo.URI,
			Database:   cfg.Mongo.Database,
			Collection: cfg.Mongo.Collection,
		})
		if err != nil {
			return err
		}
		defer diagrams.Close(context.Background())
		opts.Diagrams = diagrams
	}

	if !opts.AI.Available() {
		printWarning("No GEMINI_API_KEY set, serving sample stacks only")
	}

	return server.New(opts).ListenAndServe(ctx)
}
