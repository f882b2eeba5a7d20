package gridgraph

// Components finds all contiguous regions of floor tiles in the passage
// graph, ignoring any portal links. Regions are returned in row-major order of
// their first tile, and each region lists its tiles in BFS discovery order.
//
// Time:   O(V + E).
// Memory: O(V) for the seen set and output.
func (g *Grid) Components(p Passages) [][]Coord {
	seen := make(map[Coord]bool, len(p))
	var comps [][]Coord

	for r := 0; r < g.Height; r++ {
		for c := 0; c < g.Width; c++ {
			start := Coord{Row: r, Col: c}
			if !p.Has(start) || seen[start] {
				continue
			}
			// BFS to collect component
			queue := []Coord{start}
			seen[start] = true
			for qi := 0; qi < len(queue); qi++ {
				for _, v := range p.Neighbors(queue[qi]) {
					if !seen[v] {
						seen[v] = true
						queue = append(queue, v)
					}
				}
			}
			comps = append(comps, queue)
		}
	}
	return comps
}
