// Package recursive implements shortest-path search over the (level, tile)
// state space of a recursive donut maze.
package recursive

import (
	"container/heap"
	"fmt"

	"github.com/katalvlaran/donutmaze/gridgraph"
	"github.com/katalvlaran/donutmaze/portal"
)

// Step returns the level reached by taking link from level. Inner-ring tiles
// descend one level; outer-ring tiles ascend one level, which is refused at
// level 0 because there is no shallower maze.
func Step(level int, link portal.Link) (int, bool) {
	if link.Layer == portal.Inner {
		return level + 1, true
	}
	if level == 0 {
		return 0, false
	}
	return level - 1, true
}

// Search computes the fewest steps from (0, start) to (0, end).
//
// Preconditions (in order):
//  1. Options must be valid (ErrOptionViolation).
//  2. start must be a passage-graph vertex (ErrStartNotFound).
//  3. end must be a passage-graph vertex (ErrEndNotFound).
//
// An unreachable target yields Result.Found == false and a nil error.
func Search(passages gridgraph.Passages, portals portal.Map, start, end gridgraph.Coord, opts ...Option) (*Result, error) {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.err != nil {
		return nil, cfg.err
	}
	if !passages.Has(start) {
		return nil, fmt.Errorf("%w: %v", ErrStartNotFound, start)
	}
	if !passages.Has(end) {
		return nil, fmt.Errorf("%w: %v", ErrEndNotFound, end)
	}

	r := &runner{
		passages: passages,
		portals:  portals,
		options:  cfg,
		goal:     State{Level: 0, Tile: end},
		dist:     make(map[State]int, len(passages)),
		prev:     make(map[State]State, len(passages)),
		settled:  make(map[State]bool, len(passages)),
		res:      &Result{},
	}
	r.push(State{Level: 0, Tile: start}, 0, State{}, false)
	if err := r.process(); err != nil {
		return nil, err
	}
	if r.res.Found {
		r.res.Path = r.path()
	}
	return r.res, nil
}

// runner holds the mutable state for a single Search execution.
type runner struct {
	passages gridgraph.Passages
	portals  portal.Map
	options  Options
	goal     State
	dist     map[State]int   // best known step count per state
	prev     map[State]State // predecessor on the best known path
	settled  map[State]bool  // distance is final
	pq       statePQ
	seq      int // insertion counter for deterministic tie-breaking
	res      *Result
}

// push records a tentative distance for s and adds it to the heap.
func (r *runner) push(s State, d int, from State, hasFrom bool) {
	r.dist[s] = d
	if hasFrom {
		r.prev[s] = from
	}
	heap.Push(&r.pq, &stateItem{state: s, steps: d, seq: r.seq})
	r.seq++
}

// process pops states in step order until the goal is settled or the heap
// empties.
func (r *runner) process() error {
	ctx := r.options.Ctx
	for r.pq.Len() > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		item := heap.Pop(&r.pq).(*stateItem)
		u := item.state
		// stale heap entry
		if r.settled[u] {
			continue
		}
		r.settled[u] = true
		r.res.Visited++
		if u.Level > r.res.DeepestLevel {
			r.res.DeepestLevel = u.Level
		}
		if err := r.options.OnVisit(u, item.steps); err != nil {
			return fmt.Errorf("recursive: OnVisit error at %v: %w", u, err)
		}

		if u == r.goal {
			r.res.Found = true
			r.res.Steps = item.steps
			return nil
		}
		r.relax(u, item.steps)
	}
	return nil
}

// relax offers every move out of u: passage moves on the same level and the
// portal hop, if u has one and Step allows it within MaxLevel.
func (r *runner) relax(u State, d int) {
	for _, nbr := range r.passages.Neighbors(u.Tile) {
		r.offer(State{Level: u.Level, Tile: nbr}, d+1, u)
	}
	link, ok := r.portals.Partner(u.Tile)
	if !ok {
		return
	}
	next, ok := Step(u.Level, link)
	if !ok || next > r.options.MaxLevel {
		return
	}
	r.offer(State{Level: next, Tile: link.To}, d+1, u)
}

// offer pushes v when d improves on its best known distance.
func (r *runner) offer(v State, d int, from State) {
	if r.settled[v] {
		return
	}
	if old, seen := r.dist[v]; seen && d >= old {
		return
	}
	r.push(v, d, from, true)
}

// path walks predecessors back from the goal.
func (r *runner) path() []State {
	var rev []State
	for cur := r.goal; ; {
		rev = append(rev, cur)
		p, ok := r.prev[cur]
		if !ok {
			break
		}
		cur = p
	}
	out := make([]State, len(rev))
	for i, s := range rev {
		out[len(rev)-1-i] = s
	}
	return out
}

// stateItem is a heap entry: a state, its tentative step count and the order
// in which it was pushed.
type stateItem struct {
	state State
	steps int
	seq   int
}

// statePQ is a min-heap of *stateItem ordered by steps, then seq.
// Outdated entries stay in the heap and are skipped when popped.
type statePQ []*stateItem

func (pq statePQ) Len() int { return len(pq) }

func (pq statePQ) Less(i, j int) bool {
	if pq[i].steps != pq[j].steps {
		return pq[i].steps < pq[j].steps
	}
	return pq[i].seq < pq[j].seq
}

func (pq statePQ) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

// Push adds x, which must be a *stateItem.
func (pq *statePQ) Push(x interface{}) { *pq = append(*pq, x.(*stateItem)) }

// Pop removes and returns the last element; heap.Pop arranges for it to be
// the minimum.
func (pq *statePQ) Pop() interface{} {
	old := *pq
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*pq = old[:n-1]

	return item
}
