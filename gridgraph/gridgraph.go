// Package gridgraph provides an immutable character grid and the passage
// graph derived from its floor tiles.
package gridgraph

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Tile symbols recognised by the grid.
const (
	Floor byte = '.'
	Wall  byte = '#'
	Void  byte = ' '
)

// IsLetter reports whether b is an uppercase label letter.
func IsLetter(b byte) bool {
	return b >= 'A' && b <= 'Z'
}

// Coord identifies a single cell by row and column. It is comparable and
// therefore usable directly as a map key.
type Coord struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// String formats the coordinate as "row,col".
func (c Coord) String() string {
	return fmt.Sprintf("%d,%d", c.Row, c.Col)
}

// Add returns c shifted by the given row and column offsets.
func (c Coord) Add(dr, dc int) Coord {
	return Coord{Row: c.Row + dr, Col: c.Col + dc}
}

// neighborOffsets lists the 4-connected moves as {dRow, dCol} in a fixed
// order: up, right, down, left. All traversals use it so that results are
// reproducible.
var neighborOffsets = [4][2]int{{-1, 0}, {0, 1}, {1, 0}, {0, -1}}

// Grid is an immutable rectangular maze. Rows are stored as strings, so
// nothing handed out by the accessors can mutate it.
type Grid struct {
	Width, Height int
	rows          []string
}

// NewGrid constructs a Grid from a non-empty, rectangular set of rows.
// Returns ErrEmptyGrid if there are no rows or the rows are empty,
// ErrNonRectangular if any row length differs from the first.
// Complexity: O(W×H).
func NewGrid(rows []string) (*Grid, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrEmptyGrid
	}
	w := len(rows[0])
	for i, row := range rows {
		if len(row) != w {
			return nil, fmt.Errorf("%w: row %d has length %d, want %d", ErrNonRectangular, i, len(row), w)
		}
	}
	cp := make([]string, len(rows))
	copy(cp, rows)

	return &Grid{Width: w, Height: len(cp), rows: cp}, nil
}

// Parse reads a maze from r, one grid row per line. Leading and trailing
// blank lines are dropped and shorter rows are padded on the right with Void,
// since maze files frequently lose their trailing spaces. A kept blank line on
// top would shift the outer labels off the edge.
func Parse(r io.Reader) (*Grid, error) {
	var lines []string
	width := 0
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")
		lines = append(lines, line)
		if len(line) > width {
			width = len(line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("gridgraph: read maze: %w", err)
	}
	for len(lines) > 0 && strings.TrimSpace(lines[0]) == "" {
		lines = lines[1:]
	}
	for len(lines) > 0 && strings.TrimSpace(lines[len(lines)-1]) == "" {
		lines = lines[:len(lines)-1]
	}
	for i, line := range lines {
		if len(line) < width {
			lines[i] = line + strings.Repeat(string(Void), width-len(line))
		}
	}

	return NewGrid(lines)
}

// InBounds reports whether c lies within the grid.
// Complexity: O(1).
func (g *Grid) InBounds(c Coord) bool {
	return c.Row >= 0 && c.Row < g.Height && c.Col >= 0 && c.Col < g.Width
}

// At returns the tile at c, or Void when c is outside the grid.
func (g *Grid) At(c Coord) byte {
	if !g.InBounds(c) {
		return Void
	}
	return g.rows[c.Row][c.Col]
}

// IsFloor reports whether c is an in-bounds floor tile.
func (g *Grid) IsFloor(c Coord) bool {
	return g.At(c) == Floor
}

// Rows returns a copy of the grid rows.
func (g *Grid) Rows() []string {
	out := make([]string, len(g.rows))
	copy(out, g.rows)
	return out
}

// String renders the grid verbatim, one row per line.
func (g *Grid) String() string {
	return strings.Join(g.rows, "\n")
}
