package layout

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/charmbracelet/log"

	"github.com/stackcanvas/stackcanvas/pkg/flow"
)

// Default layout dimensions, in canvas units. These are stable across calls;
// override individual fields of [Config] to change them.
const (
	// DefaultNodeWidth is the assumed width of a node box.
	DefaultNodeWidth = 150.0

	// DefaultNodeHeight is the assumed height of a node box.
	DefaultNodeHeight = 80.0

	// DefaultHorizontalSpacing is the gap between nodes within a level.
	DefaultHorizontalSpacing = 100.0

	// DefaultVerticalSpacing is the gap between consecutive levels.
	DefaultVerticalSpacing = 100.0
)

// Config controls node dimensions and spacing for [Apply].
// The zero value is usable: unset fields take the package defaults.
type Config struct {
	// NodeWidth is the assumed node box width.
	NodeWidth float64 `json:"node_width,omitempty"`

	// NodeHeight is the assumed node box height.
	NodeHeight float64 `json:"node_height,omitempty"`

	// HorizontalSpacing is the gap between adjacent nodes in a level.
	HorizontalSpacing float64 `json:"horizontal_spacing,omitempty"`

	// VerticalSpacing is the gap between consecutive levels.
	VerticalSpacing float64 `json:"vertical_spacing,omitempty"`

	// Logger receives warnings about skipped edges and fallbacks.
	// Defaults to a discard logger when nil.
	Logger *log.Logger `json:"-"`
}

// setDefaults fills unset fields with package defaults.
func (c *Config) setDefaults() {
	if c.NodeWidth == 0 {
		c.NodeWidth = DefaultNodeWidth
	}
	if c.NodeHeight == 0 {
		c.NodeHeight = DefaultNodeHeight
	}
	if c.HorizontalSpacing == 0 {
		c.HorizontalSpacing = DefaultHorizontalSpacing
	}
	if c.VerticalSpacing == 0 {
		c.VerticalSpacing = DefaultVerticalSpacing
	}
	if c.Logger == nil {
		c.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// validate rejects non-finite or negative dimensions before the algorithm
// runs. This is the only condition under which layout returns an error.
func (c *Config) validate() error {
	for _, p := range []struct {
		name  string
		value float64
	}{
		{"node_width", c.NodeWidth},
		{"node_height", c.NodeHeight},
		{"horizontal_spacing", c.HorizontalSpacing},
		{"vertical_spacing", c.VerticalSpacing},
	} {
		if math.IsNaN(p.value) || math.IsInf(p.value, 0) {
			return fmt.Errorf("layout config: %s must be finite, got %v", p.name, p.value)
		}
		if p.value < 0 {
			return fmt.Errorf("layout config: %s must be non-negative, got %v", p.name, p.value)
		}
	}
	return nil
}

// validatePositions rejects non-finite input coordinates at the boundary so
// they cannot surface mid-algorithm as silently corrupted output.
func validatePositions(g flow.Graph) error {
	for i := range g.Nodes {
		p := g.Nodes[i].Position
		if math.IsNaN(p.X) || math.IsInf(p.X, 0) || math.IsNaN(p.Y) || math.IsInf(p.Y, 0) {
			return fmt.Errorf("node %q: position must be finite, got (%v, %v)", g.Nodes[i].ID, p.X, p.Y)
		}
	}
	return nil
}

// Apply computes a hierarchical top-down layout for g and returns a copy of
// the graph with every node's position rewritten. Edges and node payloads are
// passed through untouched.
//
// Nodes are assigned levels by longest path from the graph's sources: a node
// with no valid incoming edges sits at level 0, every other node one level
// below its deepest parent. Each level is laid out horizontally, centered
// around x = 0 and spaced by NodeWidth + HorizontalSpacing; level y
// coordinates stack downward by NodeHeight + VerticalSpacing.
//
// Degraded modes, in order of application:
//
//   - Dangling edges are skipped (and logged) before sorting.
//   - If the graph contains a cycle, Apply returns the identity layout:
//     every node keeps its existing position. Applying twice yields the same
//     result.
//   - Any input node absent from the computed placement is appended at
//     level 0, to the right of the right-most level-0 node, so the output
//     node set always equals the input node set.
//
// The only error Apply returns is non-finite numeric input (configuration or
// node coordinates), rejected before the algorithm runs.
func Apply(g flow.Graph, cfg Config) (flow.Graph, error) {
	cfg.setDefaults()
	if err := cfg.validate(); err != nil {
		return flow.Graph{}, err
	}
	if err := validatePositions(g); err != nil {
		return flow.Graph{}, err
	}

	idx := buildIndexes(g)
	for _, e := range idx.skipped {
		cfg.Logger.Warn("skipping edge referencing unknown node",
			"edge", e.ID, "source", e.Source, "target", e.Target)
	}

	order, levels, err := kahn(g, idx)
	if errors.Is(err, ErrCycle) {
		cfg.Logger.Warn("cycle detected, keeping existing positions",
			"nodes", len(g.Nodes), "edges", len(g.Edges))
		return identity(g), nil
	}

	positions := placeLevels(order, levels, cfg)

	out := flow.Graph{
		Nodes: make([]flow.Node, len(g.Nodes)),
		Edges: g.Edges,
	}
	stepX := cfg.NodeWidth + cfg.HorizontalSpacing
	for i := range g.Nodes {
		out.Nodes[i] = g.Nodes[i]
		pos, ok := positions[g.Nodes[i].ID]
		if !ok {
			// Safety net: never drop a node. Append at level 0, to the
			// right of the right-most node already placed there.
			pos = nextLevelZeroSlot(positions, levels, stepX)
			positions[g.Nodes[i].ID] = pos
			levels[g.Nodes[i].ID] = 0
			cfg.Logger.Warn("node missing from computed layout, appending at level 0",
				"node", g.Nodes[i].ID)
		}
		out.Nodes[i].Position = pos
	}
	return out, nil
}

// identity returns a copy of g with every node at its existing position.
// Node structs are zero-initialized to (0,0) when no position was supplied,
// so absent positions default as documented.
func identity(g flow.Graph) flow.Graph {
	out := flow.Graph{
		Nodes: make([]flow.Node, len(g.Nodes)),
		Edges: g.Edges,
	}
	copy(out.Nodes, g.Nodes)
	return out
}

// placeLevels groups the sorted node IDs by level and computes coordinates.
// Each level is centered around x = 0 independently; the first node's center
// sits at -span/2 + width/2 and subsequent nodes step right by
// width + spacing. The y coordinate is level * (height + spacing).
func placeLevels(order []string, levels map[string]int, cfg Config) map[string]flow.Position {
	levelGroups := make(map[int][]string)
	for _, id := range order {
		lvl := levels[id]
		levelGroups[lvl] = append(levelGroups[lvl], id)
	}

	stepX := cfg.NodeWidth + cfg.HorizontalSpacing
	stepY := cfg.NodeHeight + cfg.VerticalSpacing

	positions := make(map[string]flow.Position, len(order))
	for lvl, ids := range levelGroups {
		span := float64(len(ids))*stepX - cfg.HorizontalSpacing
		x := -span/2 + cfg.NodeWidth/2
		y := float64(lvl) * stepY
		for _, id := range ids {
			positions[id] = flow.Position{X: x, Y: y}
			x += stepX
		}
	}
	return positions
}

// nextLevelZeroSlot returns the position one step to the right of the
// right-most node currently placed at level 0, or the origin when level 0 is
// empty.
func nextLevelZeroSlot(positions map[string]flow.Position, levels map[string]int, stepX float64) flow.Position {
	maxX := math.Inf(-1)
	found := false
	for id, pos := range positions {
		if levels[id] != 0 {
			continue
		}
		found = true
		if pos.X > maxX {
			maxX = pos.X
		}
	}
	if !found {
		return flow.Position{}
	}
	return flow.Position{X: maxX + stepX, Y: 0}
}
