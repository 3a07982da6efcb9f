package bfs

import (
	"context"
	"fmt"

	"github.com/katalvlaran/tankroute/terrain"
)

// queueItem pairs a row-major tile index with its depth.
type queueItem struct {
	tile  int
	depth int
}

// walker encapsulates mutable BFS state.
type walker struct {
	t       *terrain.Terrain
	opts    Options
	ctx     context.Context
	queue   []queueItem
	visited []bool
	res     *Result
}

// Distances runs breadth-first search on t starting from start.
// Returns ErrNilTerrain or ErrStartOutOfBounds for invalid input,
// ErrOptionViolation for bad options, the context error on cancellation,
// or any error returned by the OnVisit hook.
// Complexity: O(W×H) time and memory.
func Distances(t *terrain.Terrain, start terrain.Cell, opts ...Option) (*Result, error) {
	if t == nil {
		return nil, ErrNilTerrain
	}
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.err != nil {
		return nil, o.err
	}
	if !t.Contains(start) {
		return nil, fmt.Errorf("%w: %+v", ErrStartOutOfBounds, start)
	}

	n := t.Len()
	w := &walker{
		t:       t,
		opts:    o,
		ctx:     o.Ctx,
		queue:   make([]queueItem, 0, n),
		visited: make([]bool, n),
		res: &Result{
			Start:  start,
			Order:  make([]terrain.Cell, 0, n),
			Depth:  make(map[terrain.Cell]int, n),
			Parent: make(map[terrain.Cell]terrain.Cell, n),
		},
	}

	w.enqueue(t.Index(start), 0, -1)
	return w.res, w.loop()
}

// enqueue marks tile visited at depth d, records its parent and queues it.
func (w *walker) enqueue(tile, d, parent int) {
	w.visited[tile] = true
	c := w.t.CellOf(tile)
	w.res.Depth[c] = d
	if parent >= 0 {
		w.res.Parent[c] = w.t.CellOf(parent)
	}
	w.queue = append(w.queue, queueItem{tile: tile, depth: d})
}

// loop processes the queue until empty, error, or cancellation.
func (w *walker) loop() error {
	for len(w.queue) > 0 {
		select {
		case <-w.ctx.Done():
			return w.ctx.Err()
		default:
		}

		item := w.queue[0]
		w.queue = w.queue[1:]

		c := w.t.CellOf(item.tile)
		w.res.Order = append(w.res.Order, c)
		if err := w.opts.OnVisit(c, item.depth); err != nil {
			return fmt.Errorf("bfs: OnVisit error at %+v: %w", c, err)
		}

		next := item.depth + 1
		if w.opts.MaxDepth > 0 && next > w.opts.MaxDepth {
			continue
		}
		for _, e := range w.t.ExitIndices(item.tile) {
			if !w.visited[e] {
				w.enqueue(e, next, item.tile)
			}
		}
	}
	return nil
}
