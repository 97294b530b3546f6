package flow

import (
	"errors"
	"testing"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		graph   Graph
		wantErr error
	}{
		{
			name:  "Empty",
			graph: Graph{},
		},
		{
			name: "Valid",
			graph: Graph{
				Nodes: []Node{{ID: "a"}, {ID: "b"}},
				Edges: []Edge{{Source: "a", Target: "b"}},
			},
		},
		{
			name:    "EmptyNodeID",
			graph:   Graph{Nodes: []Node{{ID: ""}}},
			wantErr: ErrInvalidNodeID,
		},
		{
			name:    "DuplicateNodeID",
			graph:   Graph{Nodes: []Node{{ID: "a"}, {ID: "a"}}},
			wantErr: ErrDuplicateNodeID,
		},
		{
			name: "Cycle",
			graph: Graph{
				Nodes: []Node{{ID: "a"}, {ID: "b"}, {ID: "c"}},
				Edges: []Edge{
					{Source: "a", Target: "b"},
					{Source: "b", Target: "c"},
					{Source: "c", Target: "a"},
				},
			},
			wantErr: ErrGraphHasCycle,
		},
		{
			name: "SelfLoopIsNotACycle",
			graph: Graph{
				Nodes: []Node{{ID: "a"}},
				Edges: []Edge{{Source: "a", Target: "a"}},
			},
		},
		{
			name: "DanglingEdgeIsValid",
			graph: Graph{
				Nodes: []Node{{ID: "a"}},
				Edges: []Edge{{Source: "a", Target: "ghost"}},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.graph.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("Validate: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Validate = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestDanglingEdges(t *testing.T) {
	g := Graph{
		Nodes: []Node{{ID: "a"}, {ID: "b"}},
		Edges: []Edge{
			{ID: "ok", Source: "a", Target: "b"},
			{ID: "bad-target", Source: "a", Target: "ghost"},
			{ID: "bad-source", Source: "phantom", Target: "b"},
		},
	}

	dangling := g.DanglingEdges()
	if len(dangling) != 2 {
		t.Fatalf("dangling = %d, want 2", len(dangling))
	}
	if dangling[0].ID != "bad-target" || dangling[1].ID != "bad-source" {
		t.Errorf("dangling = %+v", dangling)
	}
}
