// Package bfs provides breadth-first search over a maze passage graph joined
// by portal links, returning the shortest step count, the path and the visit
// order.
package bfs

import (
	"context"
	"fmt"

	"github.com/katalvlaran/donutmaze/gridgraph"
	"github.com/katalvlaran/donutmaze/portal"
)

// queueItem pairs a tile with its BFS depth.
type queueItem struct {
	tile  gridgraph.Coord
	depth int
}

// walker encapsulates mutable BFS state.
type walker struct {
	passages gridgraph.Passages
	portals  portal.Map
	end      gridgraph.Coord
	opts     Options
	ctx      context.Context
	queue    []queueItem
	visited  map[gridgraph.Coord]bool
	res      *Result
}

// Search runs breadth-first search from start to end over the passages of a
// maze plus the portal links in portals, each move costing one step.
// Returns ErrStartNotFound or ErrEndNotFound when either tile is not floor,
// ErrOptionViolation for bad options, or any context or hook error.
// An unreachable end tile yields Result.Found == false and a nil error.
func Search(passages gridgraph.Passages, portals portal.Map, start, end gridgraph.Coord, opts ...Option) (*Result, error) {
	// Build options and catch any invalid ones immediately
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}

	if !passages.Has(start) {
		return nil, fmt.Errorf("%w: %v", ErrStartNotFound, start)
	}
	if !passages.Has(end) {
		return nil, fmt.Errorf("%w: %v", ErrEndNotFound, end)
	}
	if !o.Portals {
		portals = nil
	}

	n := len(passages)
	w := &walker{
		passages: passages,
		portals:  portals,
		end:      end,
		opts:     o,
		ctx:      o.Ctx,
		queue:    make([]queueItem, 0, n),
		visited:  make(map[gridgraph.Coord]bool, n),
		res: &Result{
			Order:  make([]gridgraph.Coord, 0, n),
			Depth:  make(map[gridgraph.Coord]int, n),
			parent: make(map[gridgraph.Coord]gridgraph.Coord, n),
		},
	}

	// Seed queue with start tile (no parent)
	w.enqueue(start, 0, start, false)
	if err := w.loop(); err != nil {
		return nil, err
	}
	if w.res.Found {
		path, err := w.res.PathTo(end)
		if err != nil {
			return nil, err
		}
		w.res.Path = path
	}
	return w.res, nil
}

// enqueue marks tile visited at depth d, records its parent, calls OnEnqueue,
// and adds it to the queue.
func (w *walker) enqueue(tile gridgraph.Coord, d int, parent gridgraph.Coord, hasParent bool) {
	w.visited[tile] = true
	w.res.Depth[tile] = d
	if hasParent {
		w.res.parent[tile] = parent
	}
	w.opts.OnEnqueue(tile, d)
	w.queue = append(w.queue, queueItem{tile: tile, depth: d})
}

// loop processes the queue until the end tile is visited, the queue empties,
// an error occurs, or the context is cancelled.
func (w *walker) loop() error {
	for len(w.queue) > 0 {
		// cancellation check (once per loop)
		select {
		case <-w.ctx.Done():
			return w.ctx.Err()
		default:
		}

		item := w.dequeue()
		if err := w.visit(item); err != nil {
			return err
		}
		if item.tile == w.end {
			w.res.Found = true
			w.res.Steps = item.depth
			return nil
		}
		w.enqueueNeighbors(item)
	}
	return nil
}

// dequeue pops the first item, invokes OnDequeue, and returns it.
func (w *walker) dequeue() queueItem {
	item := w.queue[0]
	w.queue = w.queue[1:]
	w.opts.OnDequeue(item.tile, item.depth)
	return item
}

// visit records the tile in Order and calls OnVisit.
func (w *walker) visit(item queueItem) error {
	w.res.Order = append(w.res.Order, item.tile)
	if err := w.opts.OnVisit(item.tile, item.depth); err != nil {
		return fmt.Errorf("bfs: OnVisit error at %v: %w", item.tile, err)
	}
	return nil
}

// enqueueNeighbors applies filtering and MaxDepth to the passage neighbours
// and the portal partner of item, enqueuing each unseen one.
func (w *walker) enqueueNeighbors(item queueItem) {
	nextDepth := item.depth + 1
	if w.opts.MaxDepth > 0 && nextDepth > w.opts.MaxDepth {
		return
	}
	try := func(next gridgraph.Coord) {
		if w.visited[next] || !w.opts.FilterNeighbor(item.tile, next) {
			return
		}
		w.enqueue(next, nextDepth, item.tile, true)
	}
	for _, nbr := range w.passages.Neighbors(item.tile) {
		try(nbr)
	}
	if link, ok := w.portals.Partner(item.tile); ok {
		try(link.To)
	}
}
