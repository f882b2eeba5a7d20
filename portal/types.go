package portal

import (
	"errors"
	"fmt"
	"sort"

	"github.com/katalvlaran/donutmaze/gridgraph"
)

// Sentinel errors for portal extraction.
var (
	// ErrMalformedLabel is returned when a label has the wrong number of occurrences.
	ErrMalformedLabel = errors.New("portal: malformed label")

	// ErrMissingSentinel is returned when the entry or exit label is absent.
	ErrMissingSentinel = errors.New("portal: missing sentinel label")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("portal: invalid option supplied")
)

// Layer tells which ring of the donut a labeled opening sits on.
type Layer int

const (
	// Outer openings sit on the physical edge of the grid.
	Outer Layer = iota
	// Inner openings border the central hole.
	Inner
)

// String returns "outer" or "inner".
func (l Layer) String() string {
	if l == Inner {
		return "inner"
	}
	return "outer"
}

// MarshalText lets layers appear by name in JSON reports.
func (l Layer) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// Label is a two-letter portal name, read top-to-bottom or left-to-right.
type Label [2]byte

// ParseLabel converts a two-letter string into a Label.
func ParseLabel(s string) (Label, error) {
	if len(s) != 2 || !gridgraph.IsLetter(s[0]) || !gridgraph.IsLetter(s[1]) {
		return Label{}, fmt.Errorf("%w: label %q must be two uppercase letters", ErrOptionViolation, s)
	}
	return Label{s[0], s[1]}, nil
}

// String returns the two letters.
func (l Label) String() string {
	return string(l[:])
}

// MarshalText renders the label as its two letters.
func (l Label) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

// UnmarshalText accepts the form produced by MarshalText.
func (l *Label) UnmarshalText(b []byte) error {
	parsed, err := ParseLabel(string(b))
	if err != nil {
		return err
	}
	*l = parsed
	return nil
}

// Occurrence is one labeled opening found in the grid.
type Occurrence struct {
	Label Label
	Layer Layer
	Tile  gridgraph.Coord // walkable floor tile next to the letters
}

// Link is one end of a portal as seen from its own tile.
type Link struct {
	Label   Label
	Layer   Layer           // ring of the tile that owns this link
	To      gridgraph.Coord // partner tile
	ToLayer Layer           // ring of the partner tile
}

// Map associates every paired portal tile with its link. Labels pair tiles
// one to one, so each tile has at most one partner.
type Map map[gridgraph.Coord]Link

// Partner returns the link registered for c, if any.
func (m Map) Partner(c gridgraph.Coord) (Link, bool) {
	l, ok := m[c]
	return l, ok
}

// Layout is everything Extract derives from a grid.
type Layout struct {
	Start, End  gridgraph.Coord
	Portals     Map
	Occurrences []Occurrence // in scan order, sentinels included
}

// Labels returns the paired (non-sentinel) labels in lexical order.
func (l *Layout) Labels() []Label {
	seen := make(map[Label]bool, len(l.Portals)/2)
	out := make([]Label, 0, len(l.Portals)/2)
	for _, link := range l.Portals {
		if !seen[link.Label] {
			seen[link.Label] = true
			out = append(out, link.Label)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].String() < out[j].String() })
	return out
}

// Option configures extraction via functional arguments.
// Invalid options are recorded and surfaced as ErrOptionViolation by Pair.
type Option func(*Options)

// Options holds the sentinel labels that mark the global entry and exit.
type Options struct {
	Entry Label
	Exit  Label

	// internal error recorded during option parsing
	err error
}

// DefaultOptions returns entry AA and exit ZZ.
func DefaultOptions() Options {
	return Options{
		Entry: Label{'A', 'A'},
		Exit:  Label{'Z', 'Z'},
	}
}

// WithSentinels overrides the entry and exit labels. Both must be two
// uppercase letters and they must differ.
func WithSentinels(entry, exit string) Option {
	return func(o *Options) {
		in, err := ParseLabel(entry)
		if err != nil {
			o.err = err
			return
		}
		out, err := ParseLabel(exit)
		if err != nil {
			o.err = err
			return
		}
		if in == out {
			o.err = fmt.Errorf("%w: entry and exit are both %s", ErrOptionViolation, in)
			return
		}
		o.Entry, o.Exit = in, out
	}
}
