package layout

import (
	"math"
	"testing"

	"github.com/stackcanvas/stackcanvas/pkg/flow"
)

const (
	stepX = DefaultNodeWidth + DefaultHorizontalSpacing  // 250
	stepY = DefaultNodeHeight + DefaultVerticalSpacing   // 180
)

func positionOf(t *testing.T, g flow.Graph, id string) flow.Position {
	t.Helper()
	n, ok := g.Node(id)
	if !ok {
		t.Fatalf("node %s missing from output", id)
	}
	return n.Position
}

func TestApplyChain(t *testing.T) {
	g := flow.Graph{
		Nodes: nodes("A", "B", "C"),
		Edges: edges([2]string{"A", "B"}, [2]string{"B", "C"}),
	}

	out, err := Apply(g, Config{})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}

	// Single node per level: centered at x=0, stacking down by stepY.
	want := map[string]flow.Position{
		"A": {X: 0, Y: 0},
		"B": {X: 0, Y: stepY},
		"C": {X: 0, Y: 2 * stepY},
	}
	for id, wantPos := range want {
		if got := positionOf(t, out, id); got != wantPos {
			t.Errorf("%s position = %+v, want %+v", id, got, wantPos)
		}
	}
}

func TestApplyDiamond(t *testing.T) {
	g := flow.Graph{
		Nodes: nodes("A", "B", "C", "D"),
		Edges: edges(
			[2]string{"A", "B"}, [2]string{"A", "C"},
			[2]string{"B", "D"}, [2]string{"C", "D"},
		),
	}

	out, err := Apply(g, Config{})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}

	a := positionOf(t, out, "A")
	b := positionOf(t, out, "B")
	c := positionOf(t, out, "C")
	d := positionOf(t, out, "D")

	if a.Y != 0 {
		t.Errorf("A.Y = %v, want 0", a.Y)
	}
	if b.Y != stepY || c.Y != stepY {
		t.Errorf("level 1 Y = %v, %v, want %v", b.Y, c.Y, stepY)
	}
	// D's level is the max over both incoming paths + 1, not 1.
	if d.Y != 2*stepY {
		t.Errorf("D.Y = %v, want %v", d.Y, 2*stepY)
	}

	// B and C sit symmetrically around x=0, spaced by stepX.
	if b.X+c.X != 0 {
		t.Errorf("level 1 not symmetric: B.X=%v C.X=%v", b.X, c.X)
	}
	if got := math.Abs(b.X - c.X); got != stepX {
		t.Errorf("level 1 spacing = %v, want %v", got, stepX)
	}
	if d.X != 0 || a.X != 0 {
		t.Errorf("single-node levels must center at 0: A.X=%v D.X=%v", a.X, d.X)
	}
}

func TestApplyCycleFallback(t *testing.T) {
	g := flow.Graph{
		Nodes: []flow.Node{
			{ID: "A", Position: flow.Position{X: 12, Y: 34}},
			{ID: "B"}, // no position supplied: stays at origin
		},
		Edges: edges([2]string{"A", "B"}, [2]string{"B", "A"}),
	}

	first, err := Apply(g, Config{})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	second, err := Apply(first, Config{})
	if err != nil {
		t.Fatalf("Apply twice: %v", err)
	}

	wantA := flow.Position{X: 12, Y: 34}
	wantB := flow.Position{}
	for _, out := range []flow.Graph{first, second} {
		if got := positionOf(t, out, "A"); got != wantA {
			t.Errorf("A position = %+v, want %+v (identity)", got, wantA)
		}
		if got := positionOf(t, out, "B"); got != wantB {
			t.Errorf("B position = %+v, want %+v (identity)", got, wantB)
		}
	}
}

func TestApplyPreservesNodeSet(t *testing.T) {
	tests := []struct {
		name  string
		graph flow.Graph
	}{
		{
			name: "Acyclic",
			graph: flow.Graph{
				Nodes: nodes("A", "B", "C"),
				Edges: edges([2]string{"A", "B"}),
			},
		},
		{
			name: "Cycle",
			graph: flow.Graph{
				Nodes: nodes("A", "B", "C"),
				Edges: edges([2]string{"A", "B"}, [2]string{"B", "A"}),
			},
		},
		{
			name: "DanglingEdges",
			graph: flow.Graph{
				Nodes: nodes("A", "B"),
				Edges: edges([2]string{"A", "missing"}, [2]string{"ghost", "B"}),
			},
		},
		{
			name: "Disconnected",
			graph: flow.Graph{
				Nodes: nodes("A", "B", "C", "island"),
				Edges: edges([2]string{"A", "B"}, [2]string{"B", "C"}),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Apply(tt.graph, Config{})
			if err != nil {
				t.Fatalf("Apply: %v", err)
			}

			if got, want := len(out.Nodes), len(tt.graph.Nodes); got != want {
				t.Fatalf("output nodes = %d, want %d", got, want)
			}
			for i := range tt.graph.Nodes {
				if _, ok := out.Node(tt.graph.Nodes[i].ID); !ok {
					t.Errorf("node %s dropped from output", tt.graph.Nodes[i].ID)
				}
			}
		})
	}
}

func TestApplyLevelCentering(t *testing.T) {
	// Five independent nodes all land on level 0.
	g := flow.Graph{Nodes: nodes("a", "b", "c", "d", "e")}

	out, err := Apply(g, Config{})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}

	var xs []float64
	var sum float64
	for i := range out.Nodes {
		if out.Nodes[i].Position.Y != 0 {
			t.Errorf("%s.Y = %v, want 0", out.Nodes[i].ID, out.Nodes[i].Position.Y)
		}
		xs = append(xs, out.Nodes[i].Position.X)
		sum += out.Nodes[i].Position.X
	}

	if sum != 0 {
		t.Errorf("x coordinates not symmetric about 0: sum = %v", sum)
	}
	for i := 1; i < len(xs); i++ {
		if got := xs[i] - xs[i-1]; got != stepX {
			t.Errorf("spacing between slot %d and %d = %v, want %v", i-1, i, got, stepX)
		}
	}
}

func TestApplyIsolatedNodeNotDropped(t *testing.T) {
	g := flow.Graph{
		Nodes: nodes("A", "B", "C", "island"),
		Edges: edges([2]string{"A", "B"}, [2]string{"B", "C"}),
	}

	out, err := Apply(g, Config{})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}

	if len(out.Nodes) != 4 {
		t.Fatalf("output nodes = %d, want 4", len(out.Nodes))
	}

	island := positionOf(t, out, "island")
	head := positionOf(t, out, "A")
	if island == head {
		t.Errorf("island overlaps chain head at %+v", island)
	}
	if island.Y != 0 {
		t.Errorf("island.Y = %v, want level 0", island.Y)
	}
}

func TestApplySelfLoopDoesNotBlock(t *testing.T) {
	g := flow.Graph{
		Nodes: nodes("A", "B"),
		Edges: edges([2]string{"A", "A"}, [2]string{"A", "B"}),
	}

	out, err := Apply(g, Config{})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}

	if got := positionOf(t, out, "A").Y; got != 0 {
		t.Errorf("A.Y = %v, want 0", got)
	}
	if got := positionOf(t, out, "B").Y; got != stepY {
		t.Errorf("B.Y = %v, want %v", got, stepY)
	}
}

func TestApplyEdgeOrderingProperty(t *testing.T) {
	// For every valid edge (u→v), v must be laid out strictly below u.
	g := flow.Graph{
		Nodes: nodes("api", "web", "db", "cache", "queue", "worker"),
		Edges: edges(
			[2]string{"web", "api"},
			[2]string{"api", "db"},
			[2]string{"api", "cache"},
			[2]string{"api", "queue"},
			[2]string{"queue", "worker"},
			[2]string{"worker", "db"},
		),
	}

	out, err := Apply(g, Config{})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}

	for _, e := range g.Edges {
		src := positionOf(t, out, e.Source)
		dst := positionOf(t, out, e.Target)
		if src.Y >= dst.Y {
			t.Errorf("edge %s→%s: source.Y=%v not above target.Y=%v", e.Source, e.Target, src.Y, dst.Y)
		}
	}
}

func TestApplyCustomConfig(t *testing.T) {
	g := flow.Graph{
		Nodes: nodes("A", "B"),
		Edges: edges([2]string{"A", "B"}),
	}

	out, err := Apply(g, Config{
		NodeWidth:         100,
		NodeHeight:        50,
		HorizontalSpacing: 20,
		VerticalSpacing:   30,
	})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}

	if got := positionOf(t, out, "B").Y; got != 80 {
		t.Errorf("B.Y = %v, want 80 (height+vspacing)", got)
	}
}

func TestApplyFractionalConfig(t *testing.T) {
	g := flow.Graph{Nodes: nodes("A", "B"), Edges: edges([2]string{"A", "B"})}

	out, err := Apply(g, Config{NodeHeight: 10.5, VerticalSpacing: 2.25})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if got := positionOf(t, out, "B").Y; got != 12.75 {
		t.Errorf("B.Y = %v, want 12.75 (no rounding)", got)
	}
}

func TestApplyInvalidInput(t *testing.T) {
	valid := flow.Graph{Nodes: nodes("A")}

	tests := []struct {
		name  string
		graph flow.Graph
		cfg   Config
	}{
		{name: "NaNWidth", graph: valid, cfg: Config{NodeWidth: math.NaN()}},
		{name: "InfSpacing", graph: valid, cfg: Config{VerticalSpacing: math.Inf(1)}},
		{name: "NegativeHeight", graph: valid, cfg: Config{NodeHeight: -1}},
		{
			name: "NaNCoordinate",
			graph: flow.Graph{Nodes: []flow.Node{
				{ID: "A", Position: flow.Position{X: math.NaN()}},
			}},
		},
		{
			name: "InfCoordinate",
			graph: flow.Graph{Nodes: []flow.Node{
				{ID: "A", Position: flow.Position{Y: math.Inf(-1)}},
			}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Apply(tt.graph, tt.cfg); err == nil {
				t.Fatal("expected error, got nil")
			}
		})
	}
}

func TestApplyEmptyGraph(t *testing.T) {
	out, err := Apply(flow.Graph{}, Config{})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if len(out.Nodes) != 0 || len(out.Edges) != 0 {
		t.Errorf("output = %d nodes, %d edges, want empty", len(out.Nodes), len(out.Edges))
	}
}

func TestApplyPreservesPayload(t *testing.T) {
	g := flow.Graph{
		Nodes: []flow.Node{
			{
				ID:   "A",
				Type: flow.NodeTypeTech,
				Data: map[string]any{"label": "React", "type": "frontend", "details": "React 18"},
			},
			{ID: "B", Data: map[string]any{"label": "Flask"}},
		},
		Edges: []flow.Edge{
			{ID: "e1", Source: "A", Target: "B", Type: flow.EdgeTypeDefault,
				MarkerEnd: map[string]any{"type": "arrowclosed"}},
		},
	}

	out, err := Apply(g, Config{})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}

	a, _ := out.Node("A")
	if a.Type != flow.NodeTypeTech {
		t.Errorf("node type = %q, want %q", a.Type, flow.NodeTypeTech)
	}
	if a.Data["details"] != "React 18" {
		t.Errorf("data.details = %v, want React 18", a.Data["details"])
	}
	if len(out.Edges) != 1 || out.Edges[0].MarkerEnd["type"] != "arrowclosed" {
		t.Errorf("edges not passed through: %+v", out.Edges)
	}
}

func TestApplyDeterministic(t *testing.T) {
	g := flow.Graph{
		Nodes: nodes("A", "B", "C", "D", "E"),
		Edges: edges(
			[2]string{"A", "C"}, [2]string{"B", "C"},
			[2]string{"C", "D"}, [2]string{"C", "E"},
		),
	}

	first, err := Apply(g, Config{})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	second, err := Apply(g, Config{})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}

	for i := range first.Nodes {
		if first.Nodes[i].Position != second.Nodes[i].Position {
			t.Errorf("node %s: %+v != %+v across identical runs",
				first.Nodes[i].ID, first.Nodes[i].Position, second.Nodes[i].Position)
		}
	}
}
