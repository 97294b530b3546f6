package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/stackcanvas/stackcanvas/pkg/flow"
)

// scaffoldCommand creates the scaffold command for project setup scripts.
func (c *CLI) scaffoldCommand() *cobra.Command {
	var (
		output      string
		userContext string
		noCache     bool
	)

	cmd := &cobra.Command{
		Use:   "scaffold [graph.json]",
		Short: "Generate a bash script that scaffolds the project structure",
		Long: `Generate a bash script that scaffolds the project structure.

The scaffold command sends the graph to the AI backend and writes an
executable bash script that creates directories, config files, and
placeholder sources for every component in the stack. Review the script
before running it. Requires a GEMINI_API_KEY.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runScaffold(cmd.Context(), args[0], output, userContext, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "setup.sh", "output script file")
	cmd.Flags().StringVar(&userContext, "context", "", "additional requirements for the script")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runScaffold(ctx context.Context, input, output, userContext string, noCache bool) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}

	g, err := flow.ReadGraphFile(input)
	if err != nil {
		return fmt.Errorf("load graph %s: %w", input, err)
	}

	ai := c.newAIClient(cfg, noCache)

	spinner := newSpinnerWithContext(ctx, "Generating setup script...")
	spinner.Start()

	script, err := ai.GenerateScript(ctx, g, userContext)
	if err != nil {
		spinner.StopWithError("Script generation failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	if err := os.WriteFile(output, []byte(script+"\n"), 0755); err != nil {
		return fmt.Errorf("write script %s: %w", output, err)
	}

	printSuccess("Setup script generated")
	printFile(output)
	printDetail("Review the script before running it")
	printNewline()
	printNextStep("Run", "bash "+output)

	return nil
}
