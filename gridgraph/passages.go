package gridgraph

// Passages is the adjacency list of a maze: every floor tile maps to the
// floor tiles one orthogonal step away. Tiles without floor neighbours are
// still present, with an empty list, so membership doubles as "is walkable".
type Passages map[Coord][]Coord

// Passages builds the passage graph of g. Edges are symmetric because each
// floor tile independently discovers its floor neighbours.
// Complexity: O(W×H×4) time, O(W×H) memory.
func (g *Grid) Passages() Passages {
	p := make(Passages)
	for r := 0; r < g.Height; r++ {
		for c := 0; c < g.Width; c++ {
			u := Coord{Row: r, Col: c}
			if !g.IsFloor(u) {
				continue
			}
			adj := make([]Coord, 0, len(neighborOffsets))
			for _, d := range neighborOffsets {
				v := u.Add(d[0], d[1])
				if g.IsFloor(v) {
					adj = append(adj, v)
				}
			}
			p[u] = adj
		}
	}
	return p
}

// Has reports whether c is a vertex of the passage graph.
func (p Passages) Has(c Coord) bool {
	_, ok := p[c]
	return ok
}

// Neighbors returns the floor tiles adjacent to c, in up, right, down, left
// order. The returned slice must not be modified.
func (p Passages) Neighbors(c Coord) []Coord {
	return p[c]
}

// EdgeCount returns the number of undirected edges in the graph.
func (p Passages) EdgeCount() int {
	n := 0
	for _, adj := range p {
		n += len(adj)
	}
	return n / 2
}
