// Package gridgraph treats a rectangular character grid as a maze graph:
// floor tiles are vertices and orthogonally adjacent floor tiles are joined
// by unit-cost edges.
//
// What:
//
//   - Grid wraps an immutable, rectangular block of single-byte tiles.
//   - Parse reads a maze from any io.Reader, padding rows whose trailing
//     void was stripped by an editor.
//   - Passages builds the adjacency list of floor tiles (4-connectivity).
//   - Components groups floor tiles into connected regions, ignoring portals.
//
// Tiles:
//
//	'.'       floor (walkable)
//	'#'       wall
//	' '       void (outside the maze or the donut hole)
//	'A'..'Z'  letters of two-character portal labels
//
// Complexity:
//
//   - NewGrid / Parse:  O(W×H) time and memory.
//   - Passages:         O(W×H×4) time, O(W×H) memory.
//   - Components:       O(V + E) over the passage graph.
//
// Errors:
//
//   - ErrEmptyGrid: input has no rows or no columns.
//   - ErrNonRectangular: rows have differing lengths.
package gridgraph
