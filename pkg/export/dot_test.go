package export

import (
	"strings"
	"testing"

	"github.com/stackcanvas/stackcanvas/pkg/flow"
)

func testGraph() flow.Graph {
	return flow.Graph{
		Nodes: []flow.Node{
			{ID: "node_react", Data: map[string]any{"label": "React", "type": "frontend", "details": "18.2"}},
			{ID: "node_api", Data: map[string]any{"label": "Flask", "type": "backend"}},
			{ID: "node_misc"},
		},
		Edges: []flow.Edge{
			{Source: "node_react", Target: "node_api"},
		},
	}
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(testGraph(), Options{})

	for _, want := range []string{
		"digraph stackcanvas {",
		"rankdir=TB",
		`"node_react" [label="React", fillcolor="#dbeafe"];`,
		`"node_api" [label="Flask", fillcolor="#dcfce7"];`,
		`"node_misc" [label="node_misc"];`,
		`"node_react" -> "node_api";`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q:\n%s", want, dot)
		}
	}
}

func TestToDOTDetailed(t *testing.T) {
	dot := ToDOT(testGraph(), Options{Detailed: true})

	if !strings.Contains(dot, `label="React\n(frontend)\n18.2"`) {
		t.Errorf("detailed label missing:\n%s", dot)
	}
}

func TestToDOTEmptyGraph(t *testing.T) {
	dot := ToDOT(flow.Graph{}, Options{})

	if !strings.HasPrefix(dot, "digraph stackcanvas {") || !strings.HasSuffix(dot, "}\n") {
		t.Errorf("empty graph DOT malformed:\n%s", dot)
	}
}

func TestToDOTQuotesSpecialIDs(t *testing.T) {
	g := flow.Graph{
		Nodes: []flow.Node{{ID: `node "quoted"`, Data: map[string]any{"label": "A"}}},
	}

	dot := ToDOT(g, Options{})
	if !strings.Contains(dot, `"node \"quoted\""`) {
		t.Errorf("quotes not escaped:\n%s", dot)
	}
}
