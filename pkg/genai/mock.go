package genai

import "github.com/stackcanvas/stackcanvas/pkg/flow"

// MockGraph returns the deterministic fallback graph: a minimal three-tier
// web stack. It is served whenever the AI backend cannot produce a usable
// graph, so the caller's canvas is never left empty.
func MockGraph() flow.Graph {
	return flow.Graph{
		Nodes: []flow.Node{
			{
				ID:       "mock_node_react",
				Type:     flow.NodeTypeTech,
				Position: flow.Position{X: 100, Y: 100},
				Data:     map[string]any{"label": "React", "type": "frontend", "details": ""},
			},
			{
				ID:       "mock_node_flask",
				Type:     flow.NodeTypeTech,
				Position: flow.Position{X: 100, Y: 300},
				Data:     map[string]any{"label": "Flask", "type": "backend", "details": "PORT=5001"},
			},
			{
				ID:       "mock_node_postgres",
				Type:     flow.NodeTypeTech,
				Position: flow.Position{X: 400, Y: 300},
				Data:     map[string]any{"label": "PostgreSQL", "type": "database", "details": "DB_URL=..."},
			},
		},
		Edges: []flow.Edge{
			{
				ID:        "mock_edge_react_flask",
				Source:    "mock_node_react",
				Target:    "mock_node_flask",
				Type:      flow.EdgeTypeDefault,
				MarkerEnd: map[string]any{"type": "arrowclosed"},
			},
			{
				ID:        "mock_edge_flask_postgres",
				Source:    "mock_node_flask",
				Target:    "mock_node_postgres",
				Type:      flow.EdgeTypeDefault,
				MarkerEnd: map[string]any{"type": "arrowclosed"},
			},
		},
	}
}
