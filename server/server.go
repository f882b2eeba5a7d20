// Package server exposes the maze solver over HTTP with gin.
//
// Routes:
//
//	POST /solve    – body is the maze text, or a JSON solveRequest when the
//	                 Content-Type is application/json. Query parameters
//	                 maxLevel, entry and exit apply to both forms; JSON fields
//	                 win when both are present.
//	GET  /healthz  – liveness probe.
//
// Every request parses its own maze, so handlers share no mutable state.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/katalvlaran/donutmaze/gridgraph"
	"github.com/katalvlaran/donutmaze/maze"
	"github.com/katalvlaran/donutmaze/portal"
	"github.com/katalvlaran/donutmaze/recursive"
)

// Request limits applied by /solve unless Config overrides them.
const (
	DefaultMaxBodyBytes  = 1 << 20
	DefaultMaxLevelLimit = 4 * recursive.DefaultMaxLevel
	DefaultSolveTimeout  = 10 * time.Second
)

// Config configures the HTTP server.
type Config struct {
	Addr          string        // listen address, e.g. ":8080"
	AllowOrigin   string        // CORS origin; empty disables the CORS headers
	MaxLevel      int           // default recursion ceiling for /solve
	MaxLevelLimit int           // largest maxLevel a client may ask for; 0 means DefaultMaxLevelLimit
	MaxBodyBytes  int64         // request body limit; 0 means DefaultMaxBodyBytes
	SolveTimeout  time.Duration // per-request search budget; 0 means DefaultSolveTimeout
	Logger        *slog.Logger  // nil means slog.Default()
}

// DefaultConfig listens on :8080 with the library's default recursion ceiling.
func DefaultConfig() Config {
	return Config{
		Addr:          ":8080",
		MaxLevel:      recursive.DefaultMaxLevel,
		MaxLevelLimit: DefaultMaxLevelLimit,
		MaxBodyBytes:  DefaultMaxBodyBytes,
		SolveTimeout:  DefaultSolveTimeout,
	}
}

// solveRequest is the JSON form of a /solve body.
type solveRequest struct {
	Maze     string `json:"maze" binding:"required"`
	MaxLevel *int   `json:"maxLevel"`
	Entry    string `json:"entry"`
	Exit     string `json:"exit"`
	Parallel bool   `json:"parallel"`
}

// NewRouter builds the gin engine with recovery, request logging and, when
// configured, CORS.
func NewRouter(cfg Config) *gin.Engine {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if cfg.MaxLevelLimit <= 0 {
		cfg.MaxLevelLimit = DefaultMaxLevelLimit
	}
	if cfg.SolveTimeout <= 0 {
		cfg.SolveTimeout = DefaultSolveTimeout
	}

	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(cfg.Logger))
	if cfg.AllowOrigin != "" {
		r.Use(corsMiddleware(cfg.AllowOrigin))
	}

	h := &handler{cfg: cfg}
	r.GET("/healthz", h.health)
	r.POST("/solve", h.solve)

	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func Run(ctx context.Context, cfg Config) error {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           NewRouter(cfg),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		cfg.Logger.Info("listening", "addr", cfg.Addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server: listen: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		cfg.Logger.Info("shutting down")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server: shutdown: %w", err)
		}
		return nil
	}
}

type handler struct {
	cfg Config
}

func (h *handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *handler) solve(c *gin.Context) {
	req, err := h.readRequest(c)
	if err != nil {
		status := http.StatusBadRequest
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			status = http.StatusRequestEntityTooLarge
		}
		c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
		return
	}

	var popts []portal.Option
	if req.Entry != "" || req.Exit != "" {
		defaults := portal.DefaultOptions()
		entry, exit := req.Entry, req.Exit
		if entry == "" {
			entry = defaults.Entry.String()
		}
		if exit == "" {
			exit = defaults.Exit.String()
		}
		popts = append(popts, portal.WithSentinels(entry, exit))
	}

	m, err := maze.Load(strings.NewReader(req.Maze), popts...)
	if err != nil {
		h.fail(c, err)
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.cfg.SolveTimeout)
	defer cancel()
	rep, err := m.Solve(
		maze.WithContext(ctx),
		maze.WithMaxLevel(*req.MaxLevel),
		maze.WithParallel(req.Parallel),
	)
	if err != nil {
		h.fail(c, err)
		return
	}

	h.cfg.Logger.Debug("solved",
		"width", rep.Width, "height", rep.Height,
		"flat", rep.Flat.String(), "leveled", rep.Leveled.String())
	c.JSON(http.StatusOK, rep)
}

// readRequest decodes the body and merges the query parameters into it.
func (h *handler) readRequest(c *gin.Context) (*solveRequest, error) {
	body := http.MaxBytesReader(c.Writer, c.Request.Body, h.cfg.MaxBodyBytes)
	req := &solveRequest{
		Entry: c.Query("entry"),
		Exit:  c.Query("exit"),
	}
	if v := c.Query("maxLevel"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("maxLevel: %q is not an integer", v)
		}
		req.MaxLevel = &n
	}
	if v := c.Query("parallel"); v != "" {
		on, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("parallel: %q is not a boolean", v)
		}
		req.Parallel = on
	}

	if c.ContentType() == gin.MIMEJSON {
		var in solveRequest
		c.Request.Body = body
		if err := c.ShouldBindJSON(&in); err != nil {
			return nil, fmt.Errorf("decode request: %w", err)
		}
		req.Maze = in.Maze
		if in.MaxLevel != nil {
			req.MaxLevel = in.MaxLevel
		}
		if in.Entry != "" {
			req.Entry = in.Entry
		}
		if in.Exit != "" {
			req.Exit = in.Exit
		}
		req.Parallel = req.Parallel || in.Parallel
	} else {
		raw, err := io.ReadAll(body)
		if err != nil {
			return nil, fmt.Errorf("read body: %w", err)
		}
		req.Maze = string(raw)
	}

	if req.MaxLevel == nil {
		n := h.cfg.MaxLevel
		req.MaxLevel = &n
	}
	if *req.MaxLevel > h.cfg.MaxLevelLimit {
		return nil, fmt.Errorf("%w: maxLevel %d exceeds the server limit of %d",
			recursive.ErrOptionViolation, *req.MaxLevel, h.cfg.MaxLevelLimit)
	}
	return req, nil
}

// fail maps input errors to 400, an expired or cancelled solve to 503 and
// everything else to 500.
func (h *handler) fail(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	if isInputError(err) {
		status = http.StatusBadRequest
	} else if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		status = http.StatusServiceUnavailable
	}
	if status >= http.StatusInternalServerError {
		h.cfg.Logger.Error("solve failed", "error", err)
	}
	c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
}

func isInputError(err error) bool {
	for _, target := range []error{
		gridgraph.ErrEmptyGrid,
		gridgraph.ErrNonRectangular,
		portal.ErrMalformedLabel,
		portal.ErrMissingSentinel,
		portal.ErrOptionViolation,
		recursive.ErrOptionViolation,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
