package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stackcanvas/stackcanvas/pkg/flow"
)

// explainCommand creates the explain command for AI architecture explanations.
func (c *CLI) explainCommand() *cobra.Command {
	var (
		originalPrompt string
		noCache        bool
	)

	cmd := &cobra.Command{
		Use:   "explain [graph.json]",
		Short: "Explain a stack diagram in plain language",
		Long: `Explain a stack diagram in plain language.

The explain command sends the graph and the original project description to
the AI backend and prints a short explanation of how the architecture fits
the project. Requires a GEMINI_API_KEY.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runExplain(cmd.Context(), args[0], originalPrompt, noCache)
		},
	}

	cmd.Flags().StringVarP(&originalPrompt, "prompt", "p", "", "original project description (required)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	_ = cmd.MarkFlagRequired("prompt")

	return cmd
}

func (c *CLI) runExplain(ctx context.Context, input, originalPrompt string, noCache bool) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}

	g, err := flow.ReadGraphFile(input)
	if err != nil {
		return fmt.Errorf("load graph %s: %w", input, err)
	}

	ai := c.newAIClient(cfg, noCache)

	spinner := newSpinnerWithContext(ctx, "Explaining architecture...")
	spinner.Start()

	explanation, err := ai.ExplainGraph(ctx, g, originalPrompt)
	if err != nil {
		spinner.StopWithError("Explanation failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	printNewline()
	fmt.Println(explanation)
	return nil
}
