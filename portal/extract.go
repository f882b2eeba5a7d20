package portal

import (
	"fmt"
	"sort"

	"github.com/katalvlaran/donutmaze/gridgraph"
)

// scanDirs are the two reading directions: top-to-bottom and left-to-right.
var scanDirs = [2][2]int{{1, 0}, {0, 1}}

// Scan returns every labeled opening of g in row-major order. For each cell
// it inspects the vertical and the horizontal three-cell window starting
// there. Windows that run off the grid simply fail to match.
// Complexity: O(W×H).
func Scan(g *gridgraph.Grid) []Occurrence {
	var out []Occurrence
	for r := 0; r < g.Height; r++ {
		for c := 0; c < g.Width; c++ {
			p0 := gridgraph.Coord{Row: r, Col: c}
			for _, d := range scanDirs {
				p1 := p0.Add(d[0], d[1])
				p2 := p1.Add(d[0], d[1])
				a, b, f := g.At(p0), g.At(p1), g.At(p2)

				switch {
				case gridgraph.IsLetter(a) && gridgraph.IsLetter(b) && f == gridgraph.Floor:
					out = append(out, Occurrence{
						Label: Label{a, b},
						Layer: classify(g, p0, p1),
						Tile:  p2,
					})
				case a == gridgraph.Floor && gridgraph.IsLetter(b) && gridgraph.IsLetter(f):
					out = append(out, Occurrence{
						Label: Label{b, f},
						Layer: classify(g, p1, p2),
						Tile:  p0,
					})
				}
			}
		}
	}
	return out
}

// classify returns Outer when the letters first and second touch the edge
// of the grid along their reading direction, Inner otherwise.
func classify(g *gridgraph.Grid, first, second gridgraph.Coord) Layer {
	if first.Col == second.Col {
		if first.Row == 0 || second.Row == g.Height-1 {
			return Outer
		}
		return Inner
	}
	if first.Col == 0 || second.Col == g.Width-1 {
		return Outer
	}
	return Inner
}

// Pair groups occurrences by label, separates the entry and exit sentinels
// and links every other label's two tiles to each other.
// Returns ErrOptionViolation for bad options, ErrMalformedLabel when a label
// occurs the wrong number of times and ErrMissingSentinel when the entry or
// exit label is absent.
func Pair(occ []Occurrence, opts ...Option) (*Layout, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}

	byLabel := make(map[Label][]Occurrence)
	for _, oc := range occ {
		byLabel[oc.Label] = append(byLabel[oc.Label], oc)
	}
	labels := make([]Label, 0, len(byLabel))
	for l := range byLabel {
		labels = append(labels, l)
	}
	sort.Slice(labels, func(i, j int) bool { return labels[i].String() < labels[j].String() })

	layout := &Layout{
		Portals:     make(Map, len(occ)),
		Occurrences: occ,
	}
	var haveStart, haveEnd bool
	for _, l := range labels {
		group := byLabel[l]
		switch l {
		case o.Entry:
			if len(group) != 1 {
				return nil, malformed(l, group)
			}
			layout.Start, haveStart = group[0].Tile, true
		case o.Exit:
			if len(group) != 1 {
				return nil, malformed(l, group)
			}
			layout.End, haveEnd = group[0].Tile, true
		default:
			if len(group) != 2 {
				return nil, malformed(l, group)
			}
			u, v := group[0], group[1]
			if u.Tile == v.Tile || layout.owned(u.Tile) || layout.owned(v.Tile) {
				return nil, malformed(l, group)
			}
			layout.Portals[u.Tile] = Link{Label: l, Layer: u.Layer, To: v.Tile, ToLayer: v.Layer}
			layout.Portals[v.Tile] = Link{Label: l, Layer: v.Layer, To: u.Tile, ToLayer: u.Layer}
		}
	}

	if !haveStart {
		return nil, fmt.Errorf("%w: entry %s not found", ErrMissingSentinel, o.Entry)
	}
	if !haveEnd {
		return nil, fmt.Errorf("%w: exit %s not found", ErrMissingSentinel, o.Exit)
	}
	// a sentinel tile must not double as a portal tile
	for _, c := range []gridgraph.Coord{layout.Start, layout.End} {
		if link, ok := layout.Portals[c]; ok {
			return nil, fmt.Errorf("%w: %s shares tile %v with a sentinel", ErrMalformedLabel, link.Label, c)
		}
	}
	return layout, nil
}

// owned reports whether c is already linked to some portal.
func (l *Layout) owned(c gridgraph.Coord) bool {
	_, ok := l.Portals[c]
	return ok
}

// Extract scans g and pairs the labels it finds. See Scan and Pair.
func Extract(g *gridgraph.Grid, opts ...Option) (*Layout, error) {
	return Pair(Scan(g), opts...)
}

// malformed builds an ErrMalformedLabel naming the label and its tiles.
func malformed(l Label, group []Occurrence) error {
	tiles := make([]gridgraph.Coord, len(group))
	for i, oc := range group {
		tiles[i] = oc.Tile
	}
	return fmt.Errorf("%w: %s occurs %d times at %v", ErrMalformedLabel, l, len(group), tiles)
}
