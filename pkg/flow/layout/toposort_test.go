package layout

import (
	"errors"
	"testing"

	"github.com/stackcanvas/stackcanvas/pkg/flow"
)

func nodes(ids ...string) []flow.Node {
	out := make([]flow.Node, len(ids))
	for i, id := range ids {
		out[i] = flow.Node{ID: id}
	}
	return out
}

func edges(pairs ...[2]string) []flow.Edge {
	out := make([]flow.Edge, len(pairs))
	for i, p := range pairs {
		out[i] = flow.Edge{Source: p[0], Target: p[1]}
	}
	return out
}

// precedes reports whether a appears before b in order.
func precedes(order []string, a, b string) bool {
	ai, bi := -1, -1
	for i, id := range order {
		switch id {
		case a:
			ai = i
		case b:
			bi = i
		}
	}
	return ai >= 0 && bi >= 0 && ai < bi
}

func TestSort(t *testing.T) {
	tests := []struct {
		name      string
		graph     flow.Graph
		wantOrder []string   // exact expected order, nil to skip
		wantEdges [][2]string // precedence constraints to verify
	}{
		{
			name:      "Empty",
			graph:     flow.Graph{},
			wantOrder: []string{},
		},
		{
			name: "Chain",
			graph: flow.Graph{
				Nodes: nodes("A", "B", "C"),
				Edges: edges([2]string{"A", "B"}, [2]string{"B", "C"}),
			},
			wantOrder: []string{"A", "B", "C"},
		},
		{
			name: "Diamond",
			graph: flow.Graph{
				Nodes: nodes("A", "B", "C", "D"),
				Edges: edges(
					[2]string{"A", "B"}, [2]string{"A", "C"},
					[2]string{"B", "D"}, [2]string{"C", "D"},
				),
			},
			wantEdges: [][2]string{
				{"A", "B"}, {"A", "C"}, {"B", "D"}, {"C", "D"},
			},
		},
		{
			name: "IndependentNodesKeepInputOrder",
			graph: flow.Graph{
				Nodes: nodes("Z", "M", "A"),
			},
			wantOrder: []string{"Z", "M", "A"},
		},
		{
			name: "SelfLoopIgnored",
			graph: flow.Graph{
				Nodes: nodes("A"),
				Edges: edges([2]string{"A", "A"}),
			},
			wantOrder: []string{"A"},
		},
		{
			name: "DanglingEdgeIgnored",
			graph: flow.Graph{
				Nodes: nodes("A", "B"),
				Edges: edges([2]string{"A", "B"}, [2]string{"A", "ghost"}, [2]string{"ghost", "B"}),
			},
			wantOrder: []string{"A", "B"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			order, err := Sort(tt.graph)
			if err != nil {
				t.Fatalf("Sort: %v", err)
			}

			if got, want := len(order), len(tt.graph.Nodes); got != want {
				t.Fatalf("order length = %d, want %d", got, want)
			}

			if tt.wantOrder != nil {
				for i, id := range tt.wantOrder {
					if order[i] != id {
						t.Fatalf("order = %v, want %v", order, tt.wantOrder)
					}
				}
			}

			for _, c := range tt.wantEdges {
				if !precedes(order, c[0], c[1]) {
					t.Errorf("order %v: %s must precede %s", order, c[0], c[1])
				}
			}
		})
	}
}

func TestSortCycle(t *testing.T) {
	tests := []struct {
		name  string
		graph flow.Graph
	}{
		{
			name: "TwoNodeCycle",
			graph: flow.Graph{
				Nodes: nodes("A", "B"),
				Edges: edges([2]string{"A", "B"}, [2]string{"B", "A"}),
			},
		},
		{
			name: "CycleBehindChain",
			graph: flow.Graph{
				Nodes: nodes("A", "B", "C", "D"),
				Edges: edges(
					[2]string{"A", "B"},
					[2]string{"B", "C"}, [2]string{"C", "D"}, [2]string{"D", "B"},
				),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			order, err := Sort(tt.graph)
			if !errors.Is(err, ErrCycle) {
				t.Fatalf("err = %v, want ErrCycle", err)
			}
			if order != nil {
				t.Errorf("order = %v, want nil on cycle", order)
			}
		})
	}
}
