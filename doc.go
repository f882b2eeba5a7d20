// Package donutmaze finds shortest walks through donut mazes: grids of
// corridors whose two-letter labelled openings pair up into portals.
//
// 🚀 What is donutmaze?
//
//	A small, dependency-light toolkit that brings together:
//		• gridgraph: immutable grids, the passage graph and its regions
//		• portal:    label scanning, inner/outer classification and pairing
//		• bfs:       flat search where every portal hop costs one step
//		• recursive: leveled search where inner portals descend a level
//		• maze:      one-call pipeline that runs both searches
//		• server:    the solver behind a gin HTTP endpoint
//
// ✨ Two topologies, one maze:
//
//   - Flat – portals are plain shortcuts; the answer is a BFS distance.
//   - Leveled – the maze contains a smaller copy of itself behind every
//     inner portal. Inner openings go one level deeper, outer openings come
//     back up, and the walk must finish at the exit on level 0.
//
// Quick ASCII example:
//
//	     A
//	     A
//	  ###.###
//	  #.....#
//	  #.###.#
//	  #.# #.#
//	  #.###.#
//	  #.....#
//	  ###.###
//	     Z
//	     Z
//
// AA and ZZ sit on the outer ring and mark the entry and exit; any other
// label appears twice and joins its two floor tiles.
//
// Under the hood, every package takes the parsed *gridgraph.Grid explicitly
// and hands back read-only values, so a single maze can serve concurrent
// searches.
//
//	go install github.com/katalvlaran/donutmaze/cmd/donutmaze@latest
package donutmaze
