package prompt

import (
	"strings"
	"testing"

	"github.com/stackcanvas/stackcanvas/pkg/flow"
)

func testGraph() flow.Graph {
	return flow.Graph{
		Nodes: []flow.Node{
			{ID: "node_next", Data: map[string]any{"label": "Next.js Frontend", "details": "Next.js 14, React 18"}},
			{ID: "node_api", Data: map[string]any{"label": "FastAPI Backend", "details": "Python 3.11"}},
			{ID: "node_db", Data: map[string]any{"label": "PostgreSQL DB"}},
		},
		Edges: []flow.Edge{
			{Source: "node_next", Target: "node_api"},
			{Source: "node_api", Target: "node_db"},
		},
	}
}

func TestBuild(t *testing.T) {
	got := Build(testGraph(), "Implement login/logout using Auth0.")

	for _, want := range []string{
		"# Tech Stack Builder Instructions",
		"## Project Tech Stack",
		"- Next.js Frontend: Next.js 14, React 18",
		"- FastAPI Backend: Python 3.11",
		"- PostgreSQL DB: No details provided",
		"## Architecture Overview",
		"- Next.js Frontend -> FastAPI Backend",
		"- FastAPI Backend -> PostgreSQL DB",
		"## User Requirements and Goals",
		"- Implement login/logout using Auth0.",
		"## Mission for AI",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestBuildEmptyGraph(t *testing.T) {
	got := Build(flow.Graph{}, "")

	if !strings.Contains(got, "- No specific components defined.") {
		t.Error("missing components placeholder")
	}
	if !strings.Contains(got, "- No specific relationships defined.") {
		t.Error("missing relationships placeholder")
	}
	if !strings.Contains(got, "No specific user requirements provided.") {
		t.Error("missing requirements placeholder")
	}
}

func TestBuildDanglingEdgeFallsBackToID(t *testing.T) {
	g := flow.Graph{
		Nodes: []flow.Node{{ID: "a", Data: map[string]any{"label": "App"}}},
		Edges: []flow.Edge{{Source: "a", Target: "ghost"}},
	}

	got := Build(g, "")
	if !strings.Contains(got, "- App -> ghost") {
		t.Errorf("expected ID fallback for dangling target, got:\n%s", got)
	}
}

func TestFormatContext(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "Empty",
			input: "",
			want:  noRequirements,
		},
		{
			name:  "SingleSentence",
			input: "Track reading progress.",
			want:  "- Track reading progress.",
		},
		{
			name:  "MultiLine",
			input: "First goal.\n\nSecond goal.",
			want:  "- First goal.\n- Second goal.",
		},
		{
			name:  "AlreadyBulleted",
			input: "- First goal.\n- Second goal.",
			want:  "- First goal.\n- Second goal.",
		},
		{
			name:  "StarBullets",
			input: "* First goal.\n* Second goal.",
			want:  "- First goal.\n- Second goal.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatContext(tt.input); got != tt.want {
				t.Errorf("formatContext(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
