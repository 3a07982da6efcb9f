// Package astar implements the A* route search over terrain exits.
//
// Notes on implementation choices:
//
//   - Nodes are appended to a per-call arena and referenced by index; the
//     heap stores arena indices, predecessors are arena indices.
//   - visited is set when a tile is popped, not when it is discovered, so a
//     tile may sit in the heap several times with different costs.
//   - Passability is never re-checked: the search only walks exits, and
//     exits never point at Mountains, Water or outside the grid.
//   - When the start is accessible and its region differs from the target's,
//     the answer is known without searching and no nodes are expanded.
package astar

import (
	"container/heap"
	"fmt"

	"github.com/katalvlaran/tankroute/terrain"
)

// checkEvery is how many pops pass between context checks.
const checkEvery = 64

// Route computes the waypoints a unit at pixel position unit must follow to
// reach pixel position target. Both positions are converted to cells by
// floor-dividing by the terrain's tile size.
//
// Returns:
//
//   - the route start → target inclusive, one point per tile at
//     cell × TileSize; Route(p, p) yields a single point.
//   - an empty, non-nil slice when no route exists (target impassable or
//     cut off).
//   - ErrNilTerrain, ErrInvalidPosition, ErrBudgetExceeded or the context
//     error on failure.
func Route(t *terrain.Terrain, unit, target terrain.Point, opts ...Option) ([]terrain.Point, error) {
	res, err := SearchPoints(t, unit, target, opts...)
	if err != nil {
		return nil, err
	}
	return res.Waypoints(t), nil
}

// SearchPoints is Search for pixel positions: unit and target are
// floor-divided by the tile size before searching. Use it instead of Route
// when the cost and expansion count are wanted alongside the path.
func SearchPoints(t *terrain.Terrain, unit, target terrain.Point, opts ...Option) (*Result, error) {
	if t == nil {
		return nil, ErrNilTerrain
	}
	return Search(t, t.CellAt(unit), t.CellAt(target), opts...)
}

// Search runs A* from cell from to cell to.
//
// Preconditions and validation (in order):
//  1. t must be non-nil (ErrNilTerrain).
//  2. from must be inside the grid (ErrInvalidPosition).
//  3. to must be inside the grid (ErrInvalidPosition).
//
// An unreachable target yields a Result with Found == false and an empty
// Path, and a nil error.
func Search(t *terrain.Terrain, from, to terrain.Cell, opts ...Option) (*Result, error) {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}

	if t == nil {
		return nil, ErrNilTerrain
	}
	if !t.Contains(from) {
		return nil, fmt.Errorf("%w: start %+v on %dx%d grid", ErrInvalidPosition, from, t.Width, t.Height)
	}
	if !t.Contains(to) {
		return nil, fmt.Errorf("%w: target %+v on %dx%d grid", ErrInvalidPosition, to, t.Width, t.Height)
	}

	if from == to {
		return &Result{Path: []terrain.Cell{from}, Found: true}, nil
	}
	if t.IsAccessible(from.Row, from.Col) && !t.Connected(from, to) {
		return &Result{Path: []terrain.Cell{}}, nil
	}

	r := &runner{
		t:       t,
		opts:    cfg,
		target:  t.Index(to),
		goal:    to,
		visited: make([]bool, t.Len()),
	}
	r.open.arena = make([]node, 0, 4*(abs(from.Col-to.Col)+abs(from.Row-to.Row)+1))

	return r.run(t.Index(from))
}

// runner holds the mutable state for a single search.
type runner struct {
	t        *terrain.Terrain
	opts     Options
	target   int          // row-major index of the target tile
	goal     terrain.Cell // target as a cell, for the heuristic
	open     frontier
	visited  []bool
	expanded int
}

// run is the main A* loop.
func (r *runner) run(start int) (*Result, error) {
	r.open.add(node{tile: start, g: 0, f: r.heuristic(start), parent: -1})

	for pops := 0; r.open.Len() > 0; pops++ {
		if pops%checkEvery == 0 {
			if err := r.opts.Ctx.Err(); err != nil {
				return nil, err
			}
		}

		ni := r.open.next()
		n := r.open.arena[ni]

		if n.tile == r.target {
			return r.result(ni), nil
		}
		// Stale duplicate of a tile that was already settled more cheaply.
		if r.visited[n.tile] {
			continue
		}
		if r.opts.MaxExpansions > 0 && r.expanded >= r.opts.MaxExpansions {
			return nil, fmt.Errorf("%w: %d tiles expanded", ErrBudgetExceeded, r.expanded)
		}

		r.visited[n.tile] = true
		r.expanded++
		r.opts.OnExpand(r.t.CellOf(n.tile), n.g)

		for _, e := range r.t.ExitIndices(n.tile) {
			if r.visited[e] {
				continue
			}
			g := n.g + r.stepCost(e)
			r.open.add(node{tile: e, g: g, f: g + r.heuristic(e), parent: ni})
		}
	}

	return &Result{Path: []terrain.Cell{}, Expanded: r.expanded}, nil
}

// result walks predecessors from the terminal node and reverses them into
// travel order.
func (r *runner) result(terminal int) *Result {
	var path []terrain.Cell
	for i := terminal; i >= 0; i = r.open.arena[i].parent {
		path = append(path, r.t.CellOf(r.open.arena[i].tile))
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}

	return &Result{
		Path:     path,
		Cost:     r.open.arena[terminal].g,
		Expanded: r.expanded,
		Found:    true,
	}
}

// heuristic is the Manhattan distance from tile i to the target, in cells.
func (r *runner) heuristic(i int) float64 {
	c := r.t.CellOf(i)
	return float64(abs(c.Col-r.goal.Col) + abs(c.Row-r.goal.Row))
}

// stepCost is the cost of entering tile i. Exits are always accessible, so
// the terrain speed is positive under CostTerrain.
func (r *runner) stepCost(i int) float64 {
	if r.opts.Cost != CostTerrain {
		return 1
	}
	c := r.t.CellOf(i)
	return 1 / terrain.SpeedOf(r.t.Type(c.Row, c.Col))
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

// node is one search record. parent is an arena index, -1 for the start.
type node struct {
	tile   int
	g, f   float64
	parent int
}

// frontier is a min-heap of arena indices ordered by f ascending, then g
// descending, then arena index ascending (insertion order).
type frontier struct {
	arena []node
	items []int
}

// add appends n to the arena and pushes its index.
func (q *frontier) add(n node) {
	q.arena = append(q.arena, n)
	heap.Push(q, len(q.arena)-1)
}

// next pops the index of the best node.
func (q *frontier) next() int {
	return heap.Pop(q).(int)
}

// Len returns the number of queued entries.
func (q *frontier) Len() int { return len(q.items) }

// Less orders by f, then prefers the deeper node, then the older entry.
func (q *frontier) Less(i, j int) bool {
	a, b := &q.arena[q.items[i]], &q.arena[q.items[j]]
	if a.f != b.f {
		return a.f < b.f
	}
	if a.g != b.g {
		return a.g > b.g
	}
	return q.items[i] < q.items[j]
}

// Swap swaps two heap entries.
func (q *frontier) Swap(i, j int) { q.items[i], q.items[j] = q.items[j], q.items[i] }

// Push is called by heap.Push; x must be an int arena index.
func (q *frontier) Push(x interface{}) { q.items = append(q.items, x.(int)) }

// Pop is called by heap.Pop.
func (q *frontier) Pop() interface{} {
	old := q.items
	n := len(old)
	item := old[n-1]
	q.items = old[:n-1]

	return item
}
