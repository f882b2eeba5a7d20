package recursive

import (
	"context"
	"errors"
	"fmt"

	"github.com/katalvlaran/donutmaze/gridgraph"
)

// DefaultMaxLevel bounds recursion depth unless WithMaxLevel overrides it.
const DefaultMaxLevel = 60

// Sentinel errors returned by Search.
var (
	// ErrStartNotFound indicates the start tile is not a floor tile.
	ErrStartNotFound = errors.New("recursive: start tile not in passage graph")

	// ErrEndNotFound indicates the end tile is not a floor tile.
	ErrEndNotFound = errors.New("recursive: end tile not in passage graph")

	// ErrOptionViolation indicates an invalid Option.
	ErrOptionViolation = errors.New("recursive: invalid option supplied")
)

// State is a tile inside the maze copy at a given recursion level;
// level 0 is the outermost maze.
type State struct {
	Level int             `json:"level"`
	Tile  gridgraph.Coord `json:"tile"`
}

// String formats the state as "level@row,col".
func (s State) String() string {
	return fmt.Sprintf("%d@%v", s.Level, s.Tile)
}

// Options configures Search.
//
// Ctx      – cancellation; checked once per popped state.
// MaxLevel – deepest level a state may reach. Must be ≥ 0.
// OnVisit  – called for every settled state; a non-nil error aborts.
type Options struct {
	Ctx      context.Context
	MaxLevel int
	OnVisit  func(s State, steps int) error

	// internal error recorded during option parsing
	err error
}

// Option represents a functional option for configuring Search.
type Option func(*Options)

// DefaultOptions returns background context, DefaultMaxLevel and a no-op hook.
func DefaultOptions() Options {
	return Options{
		Ctx:      context.Background(),
		MaxLevel: DefaultMaxLevel,
		OnVisit:  func(State, int) error { return nil },
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

// WithMaxLevel sets the recursion ceiling. Zero keeps the search on level 0;
// negative values cause ErrOptionViolation.
func WithMaxLevel(n int) Option {
	return func(o *Options) {
		if n < 0 {
			o.err = fmt.Errorf("%w: MaxLevel cannot be negative (%d)", ErrOptionViolation, n)
			return
		}
		o.MaxLevel = n
	}
}

// WithOnVisit registers a callback invoked when a state is settled.
func WithOnVisit(fn func(s State, steps int) error) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnVisit = fn
		}
	}
}

// Result holds the outcome of a leveled search.
//
// Found        – (0, end) was reached; Steps and Path are meaningful only then.
// Steps        – minimal number of moves.
// Path         – states from (0, start) to (0, end), inclusive.
// Visited      – number of settled states.
// DeepestLevel – deepest level any settled state reached.
type Result struct {
	Found        bool
	Steps        int
	Path         []State
	Visited      int
	DeepestLevel int
}

// Length returns the number of steps and whether a path exists.
func (r *Result) Length() (int, bool) {
	return r.Steps, r.Found
}
