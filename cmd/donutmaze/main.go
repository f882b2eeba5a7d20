// Command donutmaze solves donut mazes from files or stdin, or serves the
// solver over HTTP.
//
// Examples:
//
//	donutmaze maze.txt
//	donutmaze --quiet --max-level 100 part1.txt part2.txt
//	cat maze.txt | donutmaze --json
//	donutmaze serve --addr :8080
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/donutmaze/recursive"
)

// rootOptions holds the flags shared by every subcommand.
type rootOptions struct {
	maxLevel int
	verbose  bool
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := newRootCmd(os.Stdin, os.Stdout, os.Stderr)
	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "donutmaze:", err)
		stop()
		os.Exit(1)
	}
}

// newRootCmd builds the command tree around the given streams.
func newRootCmd(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	ro := &rootOptions{}
	so := &solveOptions{}

	rootCmd := &cobra.Command{
		Use:   "donutmaze [file ...]",
		Short: "Shortest paths through donut mazes with portals",
		Long: `donutmaze reads a donut maze, echoes it and prints two answers:
the shortest AA→ZZ walk when portals are plain shortcuts, and the shortest
walk when every inner portal leads one level deeper into a copy of the maze.

With no file arguments the maze is read from standard input; several files
are concatenated in order.`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSolve(cmd.Context(), newLogger(stderr, ro.verbose), stdin, stdout, args, ro, so)
		},
	}
	rootCmd.SetIn(stdin)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	pf := rootCmd.PersistentFlags()
	pf.IntVar(&ro.maxLevel, "max-level", recursive.DefaultMaxLevel, "Deepest recursion level the leveled search may reach")
	pf.BoolVarP(&ro.verbose, "verbose", "v", false, "Log debug details to stderr")

	f := rootCmd.Flags()
	f.StringVar(&so.entry, "entry", "AA", "Label marking the start tile")
	f.StringVar(&so.exit, "exit", "ZZ", "Label marking the end tile")
	f.BoolVarP(&so.quiet, "quiet", "q", false, "Do not echo the maze")
	f.BoolVar(&so.parallel, "parallel", false, "Run both searches concurrently")
	f.BoolVar(&so.json, "json", false, "Print the full report as JSON")

	rootCmd.AddCommand(newServeCmd(stderr, ro))

	return rootCmd
}

// newLogger returns a text logger on w, at debug level when verbose is set.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
