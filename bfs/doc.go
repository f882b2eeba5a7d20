// Package bfs provides the flat-maze breadth-first search: the shortest
// number of unit steps between two floor tiles when every portal pair is a
// free, bidirectional one-step link.
//
// What
//
//   - Explore tiles in non-decreasing distance from the start tile, through
//     passage-graph neighbours first and then the tile's portal partner.
//   - Stop as soon as the end tile is dequeued.
//   - Return a Result holding:
//   - Found:   whether the end tile was reached
//   - Steps:   distance from start to end (valid when Found)
//   - Path:    start … end, inclusive
//   - Order:   visit sequence
//   - Depth:   distance of every discovered tile
//   - Supports functional hooks at three stages:
//   - OnEnqueue (when a tile is discovered)
//   - OnDequeue (immediately before visiting)
//   - OnVisit   (when visiting; may abort with an error)
//   - Allows pruning of individual moves via WithFilterNeighbor, depth
//     limiting via WithMaxDepth, and plain-maze search via WithoutPortals.
//
// Unreachable
//
//	An end tile that cannot be reached is a normal outcome: Result.Found is
//	false and err is nil. Errors are reserved for invalid input, option
//	violations, cancellation and hook failures.
//
// Determinism
//
//	Passage neighbours come in a fixed up, right, down, left order and the
//	portal partner is always tried last, so Order and Path are reproducible.
//
// Complexity (V = floor tiles, E = passages + portal links)
//
//   - Time:   O(V + E)
//   - Memory: O(V)
//
// Usage
//
//	res, err := bfs.Search(passages, layout.Portals, layout.Start, layout.End)
//	if err != nil {
//	    // ErrStartNotFound, ErrEndNotFound, ErrOptionViolation, ctx or hook errors
//	}
//	if steps, ok := res.Length(); ok {
//	    fmt.Println(steps)
//	}
package bfs
