package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/stackcanvas/stackcanvas/pkg/export"
	"github.com/stackcanvas/stackcanvas/pkg/flow"
)

// exportCommand creates the export command for rendering diagrams to files.
func (c *CLI) exportCommand() *cobra.Command {
	var (
		output   string
		detailed bool
	)

	cmd := &cobra.Command{
		Use:   "export [graph.json]",
		Short: "Export a stack diagram to SVG or DOT",
		Long: `Export a stack diagram to SVG or DOT.

The output format is chosen by the output file extension: .svg renders the
graph through graphviz, .dot writes the raw graphviz source. Nodes are
colored by category (frontend, backend, database, ...).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runExport(cmd.Context(), args[0], output, detailed)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.svg)")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "include category and details in node labels")

	return cmd
}

func (c *CLI) runExport(ctx context.Context, input, output string, detailed bool) error {
	g, err := flow.ReadGraphFile(input)
	if err != nil {
		return fmt.Errorf("load graph %s: %w", input, err)
	}

	if output == "" {
		output = defaultOutputPath(input, ".svg")
	}

	dot := export.ToDOT(g, export.Options{Detailed: detailed})

	var data []byte
	switch ext := strings.ToLower(filepath.Ext(output)); ext {
	case ".dot", ".gv":
		data = []byte(dot)
	case ".svg":
		spinner := newSpinnerWithContext(ctx, "Rendering diagram...")
		spinner.Start()
		svg, err := export.RenderSVG(ctx, dot)
		if err != nil {
			spinner.StopWithError("Render failed")
			return fmt.Errorf("render svg: %w", err)
		}
		spinner.Stop()
		data = svg
	default:
		return fmt.Errorf("unsupported output format %q (use .svg, .dot, or .gv)", ext)
	}

	if ctx.Err() != nil {
		return ctx.Err()
	}

	if err := os.WriteFile(output, data, 0644); err != nil {
		return fmt.Errorf("write output %s: %w", output, err)
	}

	printSuccess("Diagram exported")
	printFile(output)
	printStats(g.NodeCount(), g.EdgeCount(), false)

	return nil
}
