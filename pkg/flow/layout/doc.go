// Package layout computes hierarchical top-down layouts for canvas diagrams.
//
// The engine assigns each node a discrete level (its longest-path depth from
// the sources of the graph) and derives 2D coordinates placing nodes
// level-by-level, each level centered horizontally around x = 0. It is the
// piece of the editor that turns an AI-generated or hand-edited tangle into a
// readable hierarchy.
//
// # Operations
//
// [Sort] produces a topological ordering of the node IDs using Kahn's
// algorithm, or [ErrCycle] when no ordering exists. [Apply] runs the full
// layout: sort, level assignment, coordinate placement.
//
// # Degradation, not failure
//
// Malformed graphs never panic and never abort the editor:
//
//   - Edges referencing unknown node IDs are skipped and logged as warnings.
//   - Self-loop edges are ignored entirely; a node must not be made
//     unreachable by its own self-reference.
//   - A cycle makes [Apply] fall back to the identity layout: every node is
//     returned at its existing position.
//   - Any node missing from the computed placement is appended at level 0 so
//     that the output node set always equals the input node set.
//
// The only hard error is non-finite numeric input (NaN/Inf coordinates or
// configuration), which is rejected up front before the algorithm runs.
//
// # Statelessness
//
// Every call builds its own bookkeeping maps and discards them; the engine
// holds no state between calls and is safe to invoke concurrently on
// disjoint inputs. Given identical input it produces identical output.
package layout
