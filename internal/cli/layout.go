package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/stackcanvas/stackcanvas/pkg/flow"
	"github.com/stackcanvas/stackcanvas/pkg/flow/layout"
)

// layoutCommand creates the layout command for recomputing node positions.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output string
		dims   layout.Config
	)

	cmd := &cobra.Command{
		Use:   "layout [graph.json]",
		Short: "Compute hierarchical layout for a stack diagram",
		Long: `Compute hierarchical layout for a stack diagram.

The layout command reads a graph.json file, assigns each node to a level by
its longest dependency path, centers every level horizontally, and writes the
graph back with updated positions. Existing positions are overwritten.

Graphs with dependency cycles keep their current positions.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd.Context(), args[0], output, dims)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: overwrite input)")
	cmd.Flags().Float64Var(&dims.NodeWidth, "node-width", 0, "node width (default from config)")
	cmd.Flags().Float64Var(&dims.NodeHeight, "node-height", 0, "node height (default from config)")
	cmd.Flags().Float64Var(&dims.HorizontalSpacing, "hspacing", 0, "horizontal spacing between nodes")
	cmd.Flags().Float64Var(&dims.VerticalSpacing, "vspacing", 0, "vertical spacing between levels")

	return cmd
}

func (c *CLI) runLayout(ctx context.Context, input, output string, dims layout.Config) error {
	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}

	g, err := flow.ReadGraphFile(input)
	if err != nil {
		return fmt.Errorf("load graph %s: %w", input, err)
	}

	lc := c.layoutConfig(cfg)
	if dims.NodeWidth != 0 {
		lc.NodeWidth = dims.NodeWidth
	}
	if dims.NodeHeight != 0 {
		lc.NodeHeight = dims.NodeHeight
	}
	if dims.HorizontalSpacing != 0 {
		lc.HorizontalSpacing = dims.HorizontalSpacing
	}
	if dims.VerticalSpacing != 0 {
		lc.VerticalSpacing = dims.VerticalSpacing
	}

	laid, err := layout.Apply(g, lc)
	if err != nil {
		return fmt.Errorf("compute layout: %w", err)
	}

	if ctx.Err() != nil {
		return ctx.Err()
	}

	outputPath := output
	if outputPath == "" {
		outputPath = input
	}
	if err := flow.WriteGraphFile(laid, outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Layout complete")
	printFile(outputPath)
	printStats(laid.NodeCount(), laid.EdgeCount(), false)
	printNewline()
	printNextStep("Export", "stackcanvas export "+outputPath)

	return nil
}

// defaultOutputPath derives an output file next to the input with a new
// suffix, e.g. graph.json -> graph.svg.
func defaultOutputPath(input, suffix string) string {
	base := strings.TrimSuffix(input, filepath.Ext(input))
	return base + suffix
}
