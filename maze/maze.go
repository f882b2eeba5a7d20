// Package maze wires the pipeline together: parse a grid, derive its passage
// graph and portal layout once, then answer flat and recursive shortest-path
// queries against those read-only values.
package maze

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"sync"

	"github.com/katalvlaran/donutmaze/bfs"
	"github.com/katalvlaran/donutmaze/gridgraph"
	"github.com/katalvlaran/donutmaze/portal"
	"github.com/katalvlaran/donutmaze/recursive"
)

// Maze is a parsed maze with everything the searches need. All fields are
// read-only after New returns, so one Maze may serve concurrent searches.
type Maze struct {
	Grid     *gridgraph.Grid
	Passages gridgraph.Passages
	Layout   *portal.Layout
}

// New derives the passage graph and portal layout of g.
// Portal options (sentinel labels) are forwarded to portal.Extract.
func New(g *gridgraph.Grid, opts ...portal.Option) (*Maze, error) {
	if g == nil {
		return nil, gridgraph.ErrEmptyGrid
	}
	layout, err := portal.Extract(g, opts...)
	if err != nil {
		return nil, err
	}
	return &Maze{Grid: g, Passages: g.Passages(), Layout: layout}, nil
}

// Load parses r and calls New.
func Load(r io.Reader, opts ...portal.Option) (*Maze, error) {
	g, err := gridgraph.Parse(r)
	if err != nil {
		return nil, err
	}
	return New(g, opts...)
}

// Flat runs the flat-topology search from the entry to the exit.
func (m *Maze) Flat(opts ...bfs.Option) (*bfs.Result, error) {
	return bfs.Search(m.Passages, m.Layout.Portals, m.Layout.Start, m.Layout.End, opts...)
}

// Leveled runs the recursive-topology search from the entry to the exit.
func (m *Maze) Leveled(opts ...recursive.Option) (*recursive.Result, error) {
	return recursive.Search(m.Passages, m.Layout.Portals, m.Layout.Start, m.Layout.End, opts...)
}

// Outcome is one search result as reported to callers.
type Outcome struct {
	Found   bool `json:"found"`
	Steps   int  `json:"steps"`
	Visited int  `json:"visited"`
}

// String renders the step count, or "unreachable".
func (o Outcome) String() string {
	if !o.Found {
		return "unreachable"
	}
	return strconv.Itoa(o.Steps)
}

// LeveledOutcome adds the deepest level explored by the recursive search.
type LeveledOutcome struct {
	Outcome
	DeepestLevel int `json:"deepestLevel"`
}

// Report summarises a maze and both of its shortest paths.
type Report struct {
	Width   int             `json:"width"`
	Height  int             `json:"height"`
	Start   gridgraph.Coord `json:"start"`
	End     gridgraph.Coord `json:"end"`
	Labels  []portal.Label  `json:"labels"`
	Regions int             `json:"regions"`
	Flat    Outcome         `json:"flat"`
	Leveled LeveledOutcome  `json:"leveled"`
}

// Options configures Solve.
type Options struct {
	Ctx      context.Context
	MaxLevel int
	Parallel bool
}

// Option is a functional option for Solve.
type Option func(*Options)

// DefaultOptions returns a background context, recursive.DefaultMaxLevel and
// sequential execution.
func DefaultOptions() Options {
	return Options{
		Ctx:      context.Background(),
		MaxLevel: recursive.DefaultMaxLevel,
	}
}

// WithContext sets the context both searches observe.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithMaxLevel forwards the recursion ceiling to the leveled search.
func WithMaxLevel(n int) Option {
	return func(o *Options) { o.MaxLevel = n }
}

// WithParallel runs the two searches on separate goroutines.
func WithParallel(on bool) Option {
	return func(o *Options) { o.Parallel = on }
}

// Solve runs both searches and assembles a Report.
func (m *Maze) Solve(opts ...Option) (*Report, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	var (
		flat       *bfs.Result
		lev        *recursive.Result
		flatErr    error
		leveledErr error
		runFlat    = func() { flat, flatErr = m.Flat(bfs.WithContext(o.Ctx)) }
		runLeveled = func() {
			lev, leveledErr = m.Leveled(recursive.WithContext(o.Ctx), recursive.WithMaxLevel(o.MaxLevel))
		}
	)
	if o.Parallel {
		var wg sync.WaitGroup
		wg.Add(2)
		go func() { defer wg.Done(); runFlat() }()
		go func() { defer wg.Done(); runLeveled() }()
		wg.Wait()
	} else {
		runFlat()
		runLeveled()
	}
	if flatErr != nil {
		return nil, fmt.Errorf("maze: flat search: %w", flatErr)
	}
	if leveledErr != nil {
		return nil, fmt.Errorf("maze: leveled search: %w", leveledErr)
	}

	return &Report{
		Width:   m.Grid.Width,
		Height:  m.Grid.Height,
		Start:   m.Layout.Start,
		End:     m.Layout.End,
		Labels:  m.Layout.Labels(),
		Regions: len(m.Grid.Components(m.Passages)),
		Flat:    Outcome{Found: flat.Found, Steps: flat.Steps, Visited: flat.Visited()},
		Leveled: LeveledOutcome{
			Outcome:      Outcome{Found: lev.Found, Steps: lev.Steps, Visited: lev.Visited},
			DeepestLevel: lev.DeepestLevel,
		},
	}, nil
}
