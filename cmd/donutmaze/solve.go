package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/katalvlaran/donutmaze/gridgraph"
	"github.com/katalvlaran/donutmaze/maze"
	"github.com/katalvlaran/donutmaze/portal"
)

type solveOptions struct {
	entry    string
	exit     string
	quiet    bool
	parallel bool
	json     bool
}

func runSolve(ctx context.Context, log *slog.Logger, stdin io.Reader, stdout io.Writer, files []string, ro *rootOptions, so *solveOptions) error {
	src, err := readInput(stdin, files)
	if err != nil {
		return err
	}

	g, err := gridgraph.Parse(bytes.NewReader(src))
	if err != nil {
		return err
	}
	// The echo comes first so a maze with bad labels is still shown.
	if !so.quiet && !so.json {
		if _, err := fmt.Fprintln(stdout, g); err != nil {
			return err
		}
	}

	m, err := maze.New(g, portal.WithSentinels(so.entry, so.exit))
	if err != nil {
		return err
	}
	log.Debug("maze loaded",
		"width", m.Grid.Width, "height", m.Grid.Height,
		"start", m.Layout.Start, "end", m.Layout.End,
		"portals", len(m.Layout.Portals)/2)

	rep, err := m.Solve(
		maze.WithContext(ctx),
		maze.WithMaxLevel(ro.maxLevel),
		maze.WithParallel(so.parallel),
	)
	if err != nil {
		return err
	}
	log.Debug("maze solved",
		"flat_visited", rep.Flat.Visited,
		"leveled_visited", rep.Leveled.Visited,
		"deepest_level", rep.Leveled.DeepestLevel)

	if so.json {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(rep)
	}
	_, err = fmt.Fprintf(stdout, "%v\n%v\n", rep.Flat, rep.Leveled)
	return err
}

// readInput returns the concatenated contents of files, or stdin when there
// are none. Each file is terminated with a newline so rows never merge
// across file boundaries.
func readInput(stdin io.Reader, files []string) ([]byte, error) {
	if len(files) == 0 {
		b, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return b, nil
	}

	var buf bytes.Buffer
	for _, name := range files {
		b, err := os.ReadFile(name)
		if err != nil {
			return nil, err
		}
		buf.Write(b)
		if len(b) > 0 && b[len(b)-1] != '\n' {
			buf.WriteByte('\n')
		}
	}
	return buf.Bytes(), nil
}
