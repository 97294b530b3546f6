package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stackcanvas/stackcanvas/pkg/flow"
	"github.com/stackcanvas/stackcanvas/pkg/prompt"
)

// promptCommand creates the prompt command for AI-builder handoff prompts.
func (c *CLI) promptCommand() *cobra.Command {
	var userContext string

	cmd := &cobra.Command{
		Use:   "prompt [graph.json]",
		Short: "Build a coding-assistant prompt from a stack diagram",
		Long: `Build a coding-assistant prompt from a stack diagram.

The prompt command renders the graph into a structured markdown prompt for
an AI coding assistant: the component list, their relationships, extra
requirements, and step-by-step build instructions. Printed to stdout, no AI
backend involved.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := flow.ReadGraphFile(args[0])
			if err != nil {
				return fmt.Errorf("load graph %s: %w", args[0], err)
			}
			fmt.Println(prompt.Build(g, userContext))
			return nil
		},
	}

	cmd.Flags().StringVar(&userContext, "context", "", "additional requirements for the prompt")

	return cmd
}
