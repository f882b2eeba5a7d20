package recursive_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/donutmaze/bfs"
	"github.com/katalvlaran/donutmaze/gridgraph"
	"github.com/katalvlaran/donutmaze/portal"
	"github.com/katalvlaran/donutmaze/recursive"
)

// referenceMaze needs 23 steps flat but 26 recursively: its portal route
// would have to climb out of level 0 through FG.
const referenceMaze = `         A
         A
  #######.#########
  #######.........#
  #######.#######.#
  #######.#######.#
  #######.#######.#
  #####  B    ###.#
BC...##  C    ###.#
  ##.##       ###.#
  ##...DE  F  ###.#
  #####    G  ###.#
  #########.#####.#
DE..#######...###.#
  #.#########.###.#
FG..#########.....#
  ###########.#####
             Z
             Z
`

func at(r, c int) gridgraph.Coord { return gridgraph.Coord{Row: r, Col: c} }

func st(level, r, c int) recursive.State {
	return recursive.State{Level: level, Tile: at(r, c)}
}

// network is a hand-built passage graph plus portal map; tiles need not be
// grid-adjacent, which keeps the scenarios small.
type network struct {
	p  gridgraph.Passages
	pm portal.Map
}

func newNetwork(tiles ...gridgraph.Coord) *network {
	n := &network{p: gridgraph.Passages{}, pm: portal.Map{}}
	for _, c := range tiles {
		n.p[c] = nil
	}
	return n
}

// chain joins consecutive tiles with passage edges.
func (n *network) chain(tiles ...gridgraph.Coord) *network {
	for i, c := range tiles {
		if _, ok := n.p[c]; !ok {
			n.p[c] = nil
		}
		if i > 0 {
			prev := tiles[i-1]
			n.p[prev] = append(n.p[prev], c)
			n.p[c] = append(n.p[c], prev)
		}
	}
	return n
}

// portal pairs u (on layer lu) with v (on layer lv).
func (n *network) portal(label string, u gridgraph.Coord, lu portal.Layer, v gridgraph.Coord, lv portal.Layer) *network {
	l := portal.Label{label[0], label[1]}
	n.pm[u] = portal.Link{Label: l, Layer: lu, To: v, ToLayer: lv}
	n.pm[v] = portal.Link{Label: l, Layer: lv, To: u, ToLayer: lu}
	return n
}

func (n *network) both(t *testing.T, start, end gridgraph.Coord, opts ...recursive.Option) (*bfs.Result, *recursive.Result) {
	t.Helper()
	flat, err := bfs.Search(n.p, n.pm, start, end)
	require.NoError(t, err)
	lev, err := recursive.Search(n.p, n.pm, start, end, opts...)
	require.NoError(t, err)
	return flat, lev
}

//----------------------------------------------------------------------------//
// Step: the level transition rule
//----------------------------------------------------------------------------//

// TestStep covers every (layer, level) combination, including the links
// produced for openings on each physical edge of a grid.
func TestStep(t *testing.T) {
	inner := portal.Link{Layer: portal.Inner, ToLayer: portal.Outer}
	outer := portal.Link{Layer: portal.Outer, ToLayer: portal.Inner}
	cases := []struct {
		name  string
		level int
		link  portal.Link
		next  int
		ok    bool
	}{
		{"InnerAtTop", 0, inner, 1, true},
		{"InnerDeep", 7, inner, 8, true},
		{"OuterAtTop", 0, outer, 0, false},
		{"OuterAtOne", 1, outer, 0, true},
		{"OuterDeep", 9, outer, 8, true},
		// both ends outer: inert at level 0, ascends elsewhere
		{"OuterOuterTop", 0, portal.Link{Layer: portal.Outer, ToLayer: portal.Outer}, 0, false},
		{"OuterOuterDeep", 3, portal.Link{Layer: portal.Outer, ToLayer: portal.Outer}, 2, true},
		// both ends inner: always descends
		{"InnerInner", 0, portal.Link{Layer: portal.Inner, ToLayer: portal.Inner}, 1, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			next, ok := recursive.Step(tc.level, tc.link)
			require.Equal(t, tc.ok, ok)
			if ok {
				require.Equal(t, tc.next, next)
			}
		})
	}
}

// TestStep_GridEdges pairs an opening on each physical edge with an inner
// opening and checks both directions of travel.
func TestStep_GridEdges(t *testing.T) {
	grids := map[string][]string{
		"Top":    {"X", "Y", ".", ".", "X", "Y", "#"},
		"Bottom": {"#", "X", "Y", ".", ".", "X", "Y"},
		"Left":   {"XY..XY#"},
		"Right":  {"#XY..XY"},
	}
	for name, rows := range grids {
		t.Run(name, func(t *testing.T) {
			g, err := gridgraph.NewGrid(rows)
			require.NoError(t, err)
			occ := portal.Scan(g)
			occ = append(occ,
				portal.Occurrence{Label: portal.Label{'A', 'A'}, Tile: at(90, 90)},
				portal.Occurrence{Label: portal.Label{'Z', 'Z'}, Tile: at(91, 91)},
			)
			layout, err := portal.Pair(occ)
			require.NoError(t, err)
			require.Len(t, layout.Portals, 2)

			var outers, inners int
			for _, link := range layout.Portals {
				require.NotEqual(t, link.Layer, link.ToLayer)
				switch link.Layer {
				case portal.Outer:
					outers++
					_, ok := recursive.Step(0, link)
					require.False(t, ok, "outer %v must be inert at level 0", link)
					next, ok := recursive.Step(2, link)
					require.True(t, ok)
					require.Equal(t, 1, next)
				case portal.Inner:
					inners++
					next, ok := recursive.Step(0, link)
					require.True(t, ok)
					require.Equal(t, 1, next)
				}
			}
			require.Equal(t, 1, outers)
			require.Equal(t, 1, inners)
		})
	}
}

//----------------------------------------------------------------------------//
// Search: errors and options
//----------------------------------------------------------------------------//

func TestSearch_Errors(t *testing.T) {
	n := newNetwork().chain(at(0, 0), at(0, 1))
	_, err := recursive.Search(n.p, n.pm, at(9, 9), at(0, 1))
	require.ErrorIs(t, err, recursive.ErrStartNotFound)
	_, err = recursive.Search(n.p, n.pm, at(0, 0), at(9, 9))
	require.ErrorIs(t, err, recursive.ErrEndNotFound)
	_, err = recursive.Search(n.p, n.pm, at(0, 0), at(0, 1), recursive.WithMaxLevel(-1))
	require.ErrorIs(t, err, recursive.ErrOptionViolation)
}

func TestSearch_Cancellation(t *testing.T) {
	n := newNetwork().chain(at(0, 0), at(0, 1), at(0, 2))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := recursive.Search(n.p, n.pm, at(0, 0), at(0, 2), recursive.WithContext(ctx))
	require.ErrorIs(t, err, context.Canceled)
}

func TestSearch_VisitHook(t *testing.T) {
	n := newNetwork().chain(at(0, 0), at(0, 1), at(0, 2))
	var seen []string
	stop := errors.New("stop")
	_, err := recursive.Search(n.p, n.pm, at(0, 0), at(0, 2), recursive.WithOnVisit(func(s recursive.State, d int) error {
		seen = append(seen, s.String())
		if d == 1 {
			return stop
		}
		return nil
	}))
	require.ErrorIs(t, err, stop)
	require.Equal(t, []string{"0@0,0", "0@0,1"}, seen)
}

//----------------------------------------------------------------------------//
// Search: scenarios
//----------------------------------------------------------------------------//

// TestSearch_Corridor: no portals, corridor of length 4.
func TestSearch_Corridor(t *testing.T) {
	n := newNetwork().chain(at(0, 0), at(0, 1), at(0, 2), at(0, 3), at(0, 4))
	flat, lev := n.both(t, at(0, 0), at(0, 4))
	require.Equal(t, 4, flat.Steps)
	require.True(t, lev.Found)
	require.Equal(t, 4, lev.Steps)
	require.Equal(t, 0, lev.DeepestLevel)
}

// TestSearch_OuterShortcutInert: an outer/outer pair shortcuts a corridor
// of 20 in the flat maze but leads nowhere from level 0.
func TestSearch_OuterShortcutInert(t *testing.T) {
	tiles := make([]gridgraph.Coord, 21)
	for i := range tiles {
		tiles[i] = at(0, i)
	}
	n := newNetwork().chain(tiles...).portal("XY", at(0, 1), portal.Outer, at(0, 19), portal.Outer)
	flat, lev := n.both(t, at(0, 0), at(0, 20))
	require.Equal(t, 3, flat.Steps)
	require.Equal(t, 20, lev.Steps)
	require.GreaterOrEqual(t, lev.Steps, flat.Steps)
}

// TestSearch_DescendAndReturn: the only route dives through an inner portal
// and climbs back through an outer one; both searches agree on its length
// and the leveled path records the detour.
func TestSearch_DescendAndReturn(t *testing.T) {
	n := newNetwork().
		chain(at(0, 0), at(0, 1)).
		chain(at(5, 5), at(5, 6)).
		chain(at(0, 3), at(0, 4)).
		portal("XX", at(0, 1), portal.Inner, at(5, 5), portal.Outer).
		portal("YY", at(5, 6), portal.Outer, at(0, 3), portal.Inner)
	flat, lev := n.both(t, at(0, 0), at(0, 4))
	require.Equal(t, 5, flat.Steps)
	require.Equal(t, 5, lev.Steps)
	require.Equal(t, []recursive.State{
		st(0, 0, 0), st(0, 0, 1), st(1, 5, 5), st(1, 5, 6), st(0, 0, 3), st(0, 0, 4),
	}, lev.Path)
	require.Equal(t, 1, lev.DeepestLevel)
}

// TestSearch_NoWayBackUp: the same layout with the return portal reversed
// reaches the end only on deeper levels, which does not count.
func TestSearch_NoWayBackUp(t *testing.T) {
	n := newNetwork().
		chain(at(0, 0), at(0, 1)).
		chain(at(5, 5), at(5, 6)).
		chain(at(0, 3), at(0, 4)).
		portal("XX", at(0, 1), portal.Inner, at(5, 5), portal.Outer).
		portal("YY", at(5, 6), portal.Inner, at(0, 3), portal.Outer)
	flat, lev := n.both(t, at(0, 0), at(0, 4))
	require.True(t, flat.Found)
	require.Equal(t, 5, flat.Steps)
	require.False(t, lev.Found)
	require.Nil(t, lev.Path)
}

// TestSearch_EndPassThrough walks across the end tile on level 1 before
// climbing back to level 0 to finish there.
func TestSearch_EndPassThrough(t *testing.T) {
	S, A, B, E, C, D := at(0, 0), at(0, 1), at(1, 0), at(0, 9), at(2, 0), at(3, 0)
	n := newNetwork().
		chain(S, A).
		chain(B, E, C).
		chain(D, E).
		portal("XX", A, portal.Inner, B, portal.Outer).
		portal("YY", C, portal.Outer, D, portal.Inner)
	flat, lev := n.both(t, S, E)
	require.Equal(t, 3, flat.Steps)
	require.True(t, lev.Found)
	require.Equal(t, 6, lev.Steps)
	require.Equal(t, []recursive.State{
		{Level: 0, Tile: S}, {Level: 0, Tile: A}, {Level: 1, Tile: B},
		{Level: 1, Tile: E}, {Level: 1, Tile: C}, {Level: 0, Tile: D}, {Level: 0, Tile: E},
	}, lev.Path)
}

// TestSearch_Disconnected: no portal bridge, both searches report unreachable.
func TestSearch_Disconnected(t *testing.T) {
	n := newNetwork().chain(at(0, 0), at(0, 1)).chain(at(0, 5), at(0, 6))
	flat, lev := n.both(t, at(0, 0), at(0, 6))
	require.False(t, flat.Found)
	require.False(t, lev.Found)
	require.Equal(t, 2, lev.Visited)
}

// TestSearch_CeilingTerminates: a loop that keeps descending never reaches
// an isolated end; the level ceiling bounds the work.
func TestSearch_CeilingTerminates(t *testing.T) {
	n := newNetwork(at(9, 9)).
		chain(at(0, 0), at(0, 1), at(1, 1), at(2, 1), at(2, 0)).
		portal("XX", at(0, 1), portal.Inner, at(2, 0), portal.Outer)

	lev, err := recursive.Search(n.p, n.pm, at(0, 0), at(9, 9), recursive.WithMaxLevel(5))
	require.NoError(t, err)
	require.False(t, lev.Found)
	require.Equal(t, 5, lev.DeepestLevel)
	require.Equal(t, 5*6, lev.Visited)
}

// TestSearch_MaxLevelZero never leaves the outermost maze.
func TestSearch_MaxLevelZero(t *testing.T) {
	n := newNetwork().
		chain(at(0, 0), at(0, 1)).
		chain(at(5, 5), at(5, 6)).
		chain(at(0, 3), at(0, 4)).
		portal("XX", at(0, 1), portal.Inner, at(5, 5), portal.Outer).
		portal("YY", at(5, 6), portal.Outer, at(0, 3), portal.Inner)
	lev, err := recursive.Search(n.p, n.pm, at(0, 0), at(0, 4), recursive.WithMaxLevel(0))
	require.NoError(t, err)
	require.False(t, lev.Found)
}

//----------------------------------------------------------------------------//
// Search on the reference maze
//----------------------------------------------------------------------------//

type ReferenceSuite struct {
	suite.Suite
	passages gridgraph.Passages
	layout   *portal.Layout
}

func (s *ReferenceSuite) SetupSuite() {
	g, err := gridgraph.Parse(strings.NewReader(referenceMaze))
	s.Require().NoError(err)
	s.passages = g.Passages()
	s.layout, err = portal.Extract(g)
	s.Require().NoError(err)
}

func (s *ReferenceSuite) search(opts ...recursive.Option) *recursive.Result {
	res, err := recursive.Search(s.passages, s.layout.Portals, s.layout.Start, s.layout.End, opts...)
	s.Require().NoError(err)
	return res
}

func (s *ReferenceSuite) TestSteps() {
	res := s.search()
	s.Require().True(res.Found)
	s.Require().Equal(26, res.Steps)
	s.Require().Len(res.Path, 27)
	s.Require().Equal(recursive.State{Level: 0, Tile: s.layout.Start}, res.Path[0])
	s.Require().Equal(recursive.State{Level: 0, Tile: s.layout.End}, res.Path[26])
}

func (s *ReferenceSuite) TestNotShorterThanFlat() {
	flat, err := bfs.Search(s.passages, s.layout.Portals, s.layout.Start, s.layout.End)
	s.Require().NoError(err)
	s.Require().GreaterOrEqual(s.search().Steps, flat.Steps)
}

func (s *ReferenceSuite) TestDeterministic() {
	first := s.search()
	for i := 0; i < 5; i++ {
		again := s.search()
		s.Require().Equal(first.Steps, again.Steps)
		s.Require().Equal(first.Path, again.Path)
		s.Require().Equal(first.Visited, again.Visited)
	}
}

func (s *ReferenceSuite) TestPathMovesAreLegal() {
	res := s.search()
	for i := 1; i < len(res.Path); i++ {
		u, v := res.Path[i-1], res.Path[i]
		if u.Level == v.Level && adjacent(s.passages, u.Tile, v.Tile) {
			continue
		}
		link, ok := s.layout.Portals.Partner(u.Tile)
		s.Require().True(ok, "illegal move %v→%v", u, v)
		next, ok := recursive.Step(u.Level, link)
		s.Require().True(ok)
		s.Require().Equal(recursive.State{Level: next, Tile: link.To}, v)
	}
}

func adjacent(p gridgraph.Passages, u, v gridgraph.Coord) bool {
	for _, n := range p.Neighbors(u) {
		if n == v {
			return true
		}
	}
	return false
}

func TestReferenceSuite(t *testing.T) {
	suite.Run(t, new(ReferenceSuite))
}
