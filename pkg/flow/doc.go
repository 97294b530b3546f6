// Package flow models tech-stack diagrams in the node/edge wire format used
// by the browser canvas.
//
// A diagram is a [Graph] of positioned [Node]s connected by directed [Edge]s.
// Nodes carry an opaque Data payload (label, category, details, styling) that
// the backend passes through untouched; only positions are ever rewritten, by
// the layout engine in the flow/layout subpackage.
//
// The JSON shape matches what the canvas and the AI generation service
// exchange:
//
//	{
//	  "nodes": [
//	    {"id": "node_react", "type": "techNode",
//	     "position": {"x": 0, "y": 0},
//	     "data": {"label": "React", "type": "frontend", "details": "React 18"}}
//	  ],
//	  "edges": [
//	    {"id": "edge_react_api", "source": "node_react", "target": "node_api"}
//	  ]
//	}
//
// # Serialization
//
// Use [MarshalGraph]/[UnmarshalGraph] for in-memory data, [ReadGraphFile] and
// [WriteGraphFile] for files, or [ReadGraph]/[WriteGraph] for streams.
//
// # Validation
//
// [Graph.Validate] checks structural integrity (non-empty unique node IDs,
// acyclicity). Dangling edges are deliberately not a validation failure: the
// canvas can hold transiently inconsistent state mid-edit, so they are
// surfaced separately by [Graph.DanglingEdges] and skipped by the layout
// engine.
package flow
