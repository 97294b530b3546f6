package layout

import (
	"errors"

	"github.com/stackcanvas/stackcanvas/pkg/flow"
)

// ErrCycle is returned by [Sort] when the graph contains a directed cycle and
// no topological ordering exists. It is a signal, not a fatal condition:
// [Apply] consumes it to fall back to the identity layout.
var ErrCycle = errors.New("no topological ordering exists: graph contains a cycle")

// indexes holds the per-call adjacency bookkeeping for Kahn's algorithm.
// Built fresh on every invocation and discarded afterwards.
type indexes struct {
	adjacency map[string][]string // source id -> target ids, edge input order
	inDegree  map[string]int      // node id -> count of valid incoming edges
	skipped   []flow.Edge         // dangling edges excluded from accounting
}

// buildIndexes scans the edge list and accumulates in-degree counts and
// adjacency lists over the known node set. Edges referencing unknown node IDs
// are collected in skipped rather than counted; self-loops are excluded from
// accounting entirely so a node cannot block itself.
func buildIndexes(g flow.Graph) indexes {
	known := make(map[string]bool, len(g.Nodes))
	for i := range g.Nodes {
		known[g.Nodes[i].ID] = true
	}

	idx := indexes{
		adjacency: make(map[string][]string, len(g.Nodes)),
		inDegree:  make(map[string]int, len(g.Nodes)),
	}
	for i := range g.Nodes {
		idx.inDegree[g.Nodes[i].ID] = 0
	}

	for _, e := range g.Edges {
		if !known[e.Source] || !known[e.Target] {
			idx.skipped = append(idx.skipped, e)
			continue
		}
		if e.IsSelfLoop() {
			continue
		}
		idx.adjacency[e.Source] = append(idx.adjacency[e.Source], e.Target)
		idx.inDegree[e.Target]++
	}

	return idx
}

// Sort returns the node IDs of g in topological order: for every valid edge
// (u→v), u precedes v. The ordering contains every node ID exactly once.
// Returns [ErrCycle] if the graph contains a directed cycle.
//
// Ties are broken by input order: the queue is seeded with in-degree-0 nodes
// in the same relative order as g.Nodes, which makes the result deterministic
// for a given input.
//
// Dangling edges (unknown source or target) are treated as absent. Self-loop
// edges are likewise ignored. An empty graph sorts to an empty ordering.
func Sort(g flow.Graph) ([]string, error) {
	order, _, err := kahn(g, buildIndexes(g))
	return order, err
}

// kahn runs Kahn's algorithm over prebuilt indexes. It returns the ordering
// and the level assignment computed in the same pass: each node's level is
// the maximum over its valid incoming edges of the source's level plus one,
// or zero for source nodes. Processing in topological order guarantees every
// source level is final before its targets are read.
//
// The in-degree map in idx is consumed.
func kahn(g flow.Graph, idx indexes) (order []string, levels map[string]int, err error) {
	order = make([]string, 0, len(g.Nodes))
	levels = make(map[string]int, len(g.Nodes))

	queue := make([]string, 0, len(g.Nodes))
	for i := range g.Nodes {
		if id := g.Nodes[i].ID; idx.inDegree[id] == 0 {
			queue = append(queue, id)
		}
	}

	for len(queue) > 0 {
		curr := queue[0]
		queue = queue[1:]
		order = append(order, curr)

		for _, child := range idx.adjacency[curr] {
			if level := levels[curr] + 1; level > levels[child] {
				levels[child] = level
			}
			idx.inDegree[child]--
			if idx.inDegree[child] == 0 {
				queue = append(queue, child)
			}
		}
	}

	if len(order) != len(g.Nodes) {
		return nil, nil, ErrCycle
	}
	return order, levels, nil
}
