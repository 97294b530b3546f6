// Package export renders canvas graphs to Graphviz DOT and SVG for sharing
// diagrams outside the canvas.
package export

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/stackcanvas/stackcanvas/pkg/flow"
)

// Options configures DOT export.
type Options struct {
	// Detailed includes the category and details text in node labels.
	// When false, only the display label is shown.
	Detailed bool
}

// categoryColors maps the canvas node categories to fill colors.
// Unknown categories fall back to white.
var categoryColors = map[string]string{
	"frontend":   "#dbeafe",
	"backend":    "#dcfce7",
	"database":   "#fef9c3",
	"api":        "#fae8ff",
	"deployment": "#fee2e2",
	"custom":     "#e5e7eb",
}

// ToDOT converts a graph to Graphviz DOT format. Node fill colors follow
// the category stored in each node's data payload. The resulting DOT string
// can be rendered with [RenderSVG].
func ToDOT(g flow.Graph, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph stackcanvas {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for i := range g.Nodes {
		n := &g.Nodes[i]
		attrs := fmtAttrs(n, opts.Detailed)
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, e := range g.Edges {
		fmt.Fprintf(&buf, "  %q -> %q;\n", e.Source, e.Target)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtAttrs(n *flow.Node, detailed bool) []string {
	attrs := []string{fmt.Sprintf("label=%q", fmtLabel(n, detailed))}
	if color, ok := categoryColors[n.Category()]; ok {
		attrs = append(attrs, fmt.Sprintf("fillcolor=%q", color))
	}
	return attrs
}

func fmtLabel(n *flow.Node, detailed bool) string {
	label := n.Label()
	if !detailed {
		return label
	}

	parts := []string{label}
	if cat := n.Category(); cat != "" {
		parts = append(parts, "("+cat+")")
	}
	if details := n.Details(); details != "" {
		parts = append(parts, details)
	}
	return strings.Join(parts, "\n")
}
