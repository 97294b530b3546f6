package flow

import "errors"

var (
	// ErrInvalidNodeID is returned by [Graph.Validate] when a node has an
	// empty identifier. All nodes must have non-empty IDs.
	ErrInvalidNodeID = errors.New("node id must not be empty")

	// ErrDuplicateNodeID is returned by [Graph.Validate] when two nodes share
	// the same identifier. Node IDs must be unique within a graph.
	ErrDuplicateNodeID = errors.New("duplicate node id")

	// ErrGraphHasCycle is returned by [Graph.Validate] when a directed cycle
	// is detected. Cycles are detected using depth-first search with
	// white/gray/black coloring. Self-loops do not count as cycles here; the
	// layout engine ignores them entirely.
	ErrGraphHasCycle = errors.New("graph contains a cycle")
)

// Validate checks graph integrity and returns nil if valid.
// It verifies that every node has a non-empty, unique ID and that the graph
// is acyclic. Dangling edges are not a validation failure; use
// [Graph.DanglingEdges] to detect them.
//
// Cycle detection runs in O(N+E) time.
func (g *Graph) Validate() error {
	seen := make(map[string]bool, len(g.Nodes))
	for i := range g.Nodes {
		id := g.Nodes[i].ID
		if id == "" {
			return ErrInvalidNodeID
		}
		if seen[id] {
			return ErrDuplicateNodeID
		}
		seen[id] = true
	}
	return g.detectCycles(seen)
}

// DanglingEdges returns the edges whose source or target does not name a node
// in the graph. Such edges are tolerated (the canvas can hold inconsistent
// state mid-edit) but skipped by layout and export.
func (g *Graph) DanglingEdges() []Edge {
	known := make(map[string]bool, len(g.Nodes))
	for i := range g.Nodes {
		known[g.Nodes[i].ID] = true
	}

	var dangling []Edge
	for _, e := range g.Edges {
		if !known[e.Source] || !known[e.Target] {
			dangling = append(dangling, e)
		}
	}
	return dangling
}

// adjacency builds the outgoing adjacency list over valid, non-self-loop
// edges. Targets appear in edge input order.
func (g *Graph) adjacency(known map[string]bool) map[string][]string {
	adj := make(map[string][]string, len(g.Nodes))
	for _, e := range g.Edges {
		if e.IsSelfLoop() || !known[e.Source] || !known[e.Target] {
			continue
		}
		adj[e.Source] = append(adj[e.Source], e.Target)
	}
	return adj
}

func (g *Graph) detectCycles(known map[string]bool) error {
	const (
		white = iota
		gray
		black
	)

	adj := g.adjacency(known)
	color := make(map[string]int, len(g.Nodes))
	var hasCycle bool

	var dfs func(id string)
	dfs = func(id string) {
		color[id] = gray
		for _, child := range adj[id] {
			switch color[child] {
			case white:
				dfs(child)
			case gray:
				hasCycle = true
				return
			}
		}
		color[id] = black
	}

	for i := range g.Nodes {
		if color[g.Nodes[i].ID] == white {
			dfs(g.Nodes[i].ID)
			if hasCycle {
				return ErrGraphHasCycle
			}
		}
	}
	return nil
}
