package flow

// Common values for Node.Type and Edge.Type as emitted by the canvas and the
// AI generation service.
const (
	// NodeTypeTech is the default canvas node type.
	NodeTypeTech = "techNode"

	// EdgeTypeDefault is the default canvas edge type.
	EdgeTypeDefault = "default"
)

// Data keys the canvas stores inside Node.Data. The backend treats Data as
// opaque except for reading these for display purposes.
const (
	DataKeyLabel   = "label"
	DataKeyType    = "type"
	DataKeyDetails = "details"
)

// Position is a 2D coordinate in canvas units.
// Units are arbitrary planar units interpreted by the rendering surface;
// fractional values are valid.
type Position struct {
	X float64 `json:"x" bson:"x"`
	Y float64 `json:"y" bson:"y"`
}

// Node is a placeable entity in the diagram.
//
// ID must be unique within a graph; the caller guarantees uniqueness and
// [Graph.Validate] checks it. Position is mutable: the layout engine
// overwrites it for every node it places. Data is an opaque payload that
// must survive every transformation untouched.
type Node struct {
	ID       string         `json:"id" bson:"id"`
	Type     string         `json:"type,omitempty" bson:"type,omitempty"`
	Position Position       `json:"position" bson:"position"`
	Data     map[string]any `json:"data,omitempty" bson:"data,omitempty"`
}

// Label returns the display label from the node's data payload,
// falling back to the node ID when absent.
func (n *Node) Label() string {
	if n.Data != nil {
		if label, ok := n.Data[DataKeyLabel].(string); ok && label != "" {
			return label
		}
	}
	return n.ID
}

// Details returns the technical details string from the node's data payload,
// or the empty string when absent.
func (n *Node) Details() string {
	if n.Data != nil {
		if details, ok := n.Data[DataKeyDetails].(string); ok {
			return details
		}
	}
	return ""
}

// Category returns the categorical type (frontend, backend, database, ...)
// from the node's data payload, or the empty string when absent.
func (n *Node) Category() string {
	if n.Data != nil {
		if t, ok := n.Data[DataKeyType].(string); ok {
			return t
		}
	}
	return ""
}

// Edge is a directed relationship between two node IDs, encoding a
// "depends on" / "flows to" relationship used to compute hierarchy depth.
type Edge struct {
	ID        string         `json:"id,omitempty" bson:"id,omitempty"`
	Source    string         `json:"source" bson:"source"`
	Target    string         `json:"target" bson:"target"`
	Type      string         `json:"type,omitempty" bson:"type,omitempty"`
	MarkerEnd map[string]any `json:"markerEnd,omitempty" bson:"marker_end,omitempty"`
}

// IsSelfLoop reports whether the edge connects a node to itself.
// Self-loops are ignored by the layout engine.
func (e *Edge) IsSelfLoop() bool { return e.Source == e.Target }

// Graph is the canonical serialization format for canvas diagrams.
// Used for API requests/responses, storage, caching, and file exchange.
type Graph struct {
	Nodes []Node `json:"nodes" bson:"nodes"`
	Edges []Edge `json:"edges" bson:"edges"`
}

// NodeCount returns the number of nodes in the graph.
func (g *Graph) NodeCount() int { return len(g.Nodes) }

// EdgeCount returns the number of edges in the graph.
func (g *Graph) EdgeCount() int { return len(g.Edges) }

// Node returns the node with the given ID and true, or nil and false if not
// found. The returned pointer refers into the graph's node slice.
func (g *Graph) Node(id string) (*Node, bool) {
	for i := range g.Nodes {
		if g.Nodes[i].ID == id {
			return &g.Nodes[i], true
		}
	}
	return nil, false
}

// NodeIDs returns the IDs of all nodes in input order.
func (g *Graph) NodeIDs() []string {
	ids := make([]string, len(g.Nodes))
	for i := range g.Nodes {
		ids[i] = g.Nodes[i].ID
	}
	return ids
}
