// Package bfs provides tunable options and error definitions
// for the flat-maze breadth-first search.
package bfs

import (
	"context"
	"errors"
	"fmt"

	"github.com/katalvlaran/donutmaze/gridgraph"
)

// Sentinel errors for BFS execution.
var (
	// ErrStartNotFound is returned when the start tile is not a floor tile.
	ErrStartNotFound = errors.New("bfs: start tile not in passage graph")

	// ErrEndNotFound is returned when the end tile is not a floor tile.
	ErrEndNotFound = errors.New("bfs: end tile not in passage graph")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("bfs: invalid option supplied")
)

// Option configures BFS behavior via functional arguments.
// If an Option is invalid (e.g. negative depth), it will be recorded
// internally and surfaced as ErrOptionViolation when Search is invoked.
type Option func(*Options)

// Options holds parameters and callbacks to customize BFS execution.
type Options struct {
	// Ctx allows cancellation and deadlines.
	Ctx context.Context

	// OnEnqueue is called when a tile is discovered, with its distance.
	OnEnqueue func(tile gridgraph.Coord, depth int)

	// OnDequeue is called immediately before visiting a tile.
	OnDequeue func(tile gridgraph.Coord, depth int)

	// OnVisit is called when visiting a tile. If it returns an error,
	// the search aborts and propagates that error.
	OnVisit func(tile gridgraph.Coord, depth int) error

	// MaxDepth, if > 0, stops exploring beyond this depth.
	// A value of 0 explicitly disables any depth limit.
	MaxDepth int

	// FilterNeighbor can skip moves by returning false.
	// Called for each move curr→next, portal hops included.
	FilterNeighbor func(curr, next gridgraph.Coord) bool

	// Portals enables portal hops; false searches the plain maze.
	Portals bool

	// internal error recorded during option parsing
	err error
}

// DefaultOptions returns an Options with sane defaults:
//   - Context.Background()
//   - no depth limit (MaxDepth == 0)
//   - no filtering (all moves allowed)
//   - portals enabled
//   - no-op hooks (OnEnqueue, OnDequeue, OnVisit)
func DefaultOptions() Options {
	return Options{
		Ctx:            context.Background(),
		OnEnqueue:      func(gridgraph.Coord, int) {},
		OnDequeue:      func(gridgraph.Coord, int) {},
		OnVisit:        func(gridgraph.Coord, int) error { return nil },
		MaxDepth:       0,
		FilterNeighbor: func(_, _ gridgraph.Coord) bool { return true },
		Portals:        true,
		err:            nil,
	}
}

// WithContext sets a custom context for cancellation.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithOnEnqueue registers a callback to run on enqueue.
func WithOnEnqueue(fn func(tile gridgraph.Coord, depth int)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnEnqueue = fn
		}
	}
}

// WithOnDequeue registers a callback to run on dequeue.
func WithOnDequeue(fn func(tile gridgraph.Coord, depth int)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnDequeue = fn
		}
	}
}

// WithOnVisit registers a callback to run on visit; returning an error
// from this callback stops the search.
func WithOnVisit(fn func(tile gridgraph.Coord, depth int) error) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnVisit = fn
		}
	}
}

// WithMaxDepth stops the search at the given depth (inclusive).
//
//	d > 0: limit to depth d
//	d == 0: explicit no depth limit
//	d < 0: invalid option → ErrOptionViolation
func WithMaxDepth(d int) Option {
	return func(o *Options) {
		switch {
		case d < 0:
			o.err = fmt.Errorf("%w: MaxDepth cannot be negative (%d)", ErrOptionViolation, d)
		case d == 0:
			// explicit "no limit"
			o.MaxDepth = 0
		default:
			o.MaxDepth = d
		}
	}
}

// WithFilterNeighbor skips moves when fn returns false.
func WithFilterNeighbor(fn func(curr, next gridgraph.Coord) bool) Option {
	return func(o *Options) {
		if fn != nil {
			o.FilterNeighbor = fn
		}
	}
}

// WithoutPortals ignores the portal map and searches passages only.
func WithoutPortals() Option {
	return func(o *Options) {
		o.Portals = false
	}
}

// Result holds the outcome of a search:
//   - Found: end tile reached; Steps and Path are meaningful only then.
//   - Order: tiles visited, in visit sequence.
//   - Depth: distance of each discovered tile from the start.
type Result struct {
	Found  bool
	Steps  int
	Path   []gridgraph.Coord
	Order  []gridgraph.Coord
	Depth  map[gridgraph.Coord]int
	parent map[gridgraph.Coord]gridgraph.Coord
}

// Length returns the number of steps and whether a path exists.
func (r *Result) Length() (int, bool) {
	return r.Steps, r.Found
}

// Visited returns how many tiles were dequeued.
func (r *Result) Visited() int {
	return len(r.Order)
}

// PathTo reconstructs the path from the start tile to dest, which need not be
// the end tile as long as it was discovered.
// Returns an error if dest was not reached.
func (r *Result) PathTo(dest gridgraph.Coord) ([]gridgraph.Coord, error) {
	if _, ok := r.Depth[dest]; !ok {
		return nil, fmt.Errorf("bfs: no path to %v", dest)
	}
	// build reversed path
	path := []gridgraph.Coord{}
	for cur := dest; ; {
		path = append(path, cur)
		prev, ok := r.parent[cur]
		if !ok {
			break
		}
		cur = prev
	}
	// reverse to get start → dest
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}

	return path, nil
}
