package main

import (
	"io"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/donutmaze/server"
)

func newServeCmd(stderr io.Writer, ro *rootOptions) *cobra.Command {
	cfg := server.DefaultConfig()

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the solver over HTTP",
		Long: `Start an HTTP server exposing POST /solve and GET /healthz.

Examples:
  donutmaze serve
  donutmaze serve --addr 127.0.0.1:9000 --allow-origin http://localhost:3000`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !ro.verbose {
				gin.SetMode(gin.ReleaseMode)
			}
			cfg.MaxLevel = ro.maxLevel
			cfg.Logger = newLogger(stderr, ro.verbose)
			return server.Run(cmd.Context(), cfg)
		},
	}
	cmd.Flags().StringVar(&cfg.Addr, "addr", cfg.Addr, "Listen address")
	cmd.Flags().StringVar(&cfg.AllowOrigin, "allow-origin", "", "CORS origin allowed to call the API")
	cmd.Flags().Int64Var(&cfg.MaxBodyBytes, "max-body", cfg.MaxBodyBytes, "Largest accepted maze in bytes")
	cmd.Flags().IntVar(&cfg.MaxLevelLimit, "max-level-limit", cfg.MaxLevelLimit, "Largest maxLevel a request may ask for")
	cmd.Flags().DurationVar(&cfg.SolveTimeout, "solve-timeout", cfg.SolveTimeout, "Time budget for one /solve request")

	return cmd
}
