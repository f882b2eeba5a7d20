// Package recursive solves the recursive ("donut") maze: every inner-ring
// portal leads one level deeper into an identical copy of the maze and every
// outer-ring portal leads one level back out.
//
// What
//
//   - The state space is (level, tile) pairs, expanded lazily; nothing is
//     materialised for levels the search never reaches.
//   - Step is the single transition rule:
//   - inner-ring tile → level + 1, always allowed
//   - outer-ring tile → level − 1, refused at level 0
//   - Search pops states from a min-heap ordered by step count (ties broken by
//     discovery order) and accepts only the end tile at level 0. The start and
//     end tiles at deeper levels are ordinary floor.
//   - States deeper than MaxLevel are never generated. This prunes branches
//     that descend forever; it never aborts the whole search.
//
// Unreachable
//
//	Result.Found is false when the frontier empties first. Errors are kept
//	for invalid tiles, option violations, cancellation and hook failures.
//
// Complexity (V = floor tiles, E = passages + portal links, L = MaxLevel+1)
//
//   - Time:  O((V + E)·L · log(V·L))
//   - Space: O(V·L)
//
// Usage
//
//	res, err := recursive.Search(passages, layout.Portals, layout.Start, layout.End,
//	    recursive.WithMaxLevel(100),
//	)
//	if err == nil && res.Found {
//	    fmt.Println(res.Steps, "steps, deepest level", res.DeepestLevel)
//	}
package recursive
