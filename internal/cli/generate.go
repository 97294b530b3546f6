package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/stackcanvas/stackcanvas/internal/config"
	"github.com/stackcanvas/stackcanvas/pkg/flow"
	"github.com/stackcanvas/stackcanvas/pkg/flow/layout"
	"github.com/stackcanvas/stackcanvas/pkg/history"
)

// generateCommand creates the generate command for AI graph generation.
func (c *CLI) generateCommand() *cobra.Command {
	var (
		output  string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "generate <description>",
		Short: "Generate a tech stack diagram from a project description",
		Long: `Generate a tech stack diagram from a plain-language project description.

The description is sent to the AI backend, which responds with a graph of
components and their relationships. The graph is laid out hierarchically and
written as a graph.json file that the other commands consume.

Without a GEMINI_API_KEY a small deterministic sample stack is produced
instead, so the rest of the pipeline can be exercised offline.

Responses are cached locally for faster repeated runs.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runGenerate(cmd.Context(), strings.Join(args, " "), output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "graph.json", "output file")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runGenerate(ctx context.Context, description, output string, noCache bool) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}

	ai := c.newAIClient(cfg, noCache)
	if !ai.Available() {
		printWarning("No GEMINI_API_KEY set, generating a sample stack")
	}

	spinner := newSpinnerWithContext(ctx, "Generating stack diagram...")
	spinner.Start()

	res, err := ai.GenerateGraph(ctx, description)
	if err != nil {
		spinner.StopWithError("Generation failed")
		return fmt.Errorf("generate graph: %w", err)
	}

	laid, err := layout.Apply(res.Graph, c.layoutConfig(cfg))
	if err != nil {
		spinner.StopWithError("Layout failed")
		return fmt.Errorf("layout graph: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	if err := flow.WriteGraphFile(laid, output); err != nil {
		return fmt.Errorf("write output %s: %w", output, err)
	}

	c.recordHistory(ctx, cfg, description, laid, res.Mocked)

	printSuccess("Stack diagram generated")
	printFile(output)
	printStats(laid.NodeCount(), laid.EdgeCount(), res.Mocked)
	printNewline()
	printNextStep("Export", "stackcanvas export "+output)

	return nil
}

// recordHistory appends the generation to the history store. Failures are
// logged, never fatal.
func (c *CLI) recordHistory(ctx context.Context, cfg config.Config, description string, g flow.Graph, mocked bool) {
	store, err := c.newHistoryStore(ctx, cfg)
	if err != nil {
		c.Logger.Warn("history unavailable", "err", err)
		return
	}
	defer store.Close()

	entry := history.NewEntry(historyLabel(description), description, g, mocked)
	if err := store.Append(ctx, entry); err != nil {
		c.Logger.Warn("record history", "err", err)
	}
}

func historyLabel(description string) string {
	const maxLabel = 60
	if len(description) <= maxLabel {
		return description
	}
	return description[:maxLabel] + "..."
}

// layoutConfig converts configuration to a layout engine config with the CLI
// logger attached.
func (c *CLI) layoutConfig(cfg config.Config) layout.Config {
	lc := cfg.LayoutConfig()
	lc.Logger = c.Logger
	return lc
}
