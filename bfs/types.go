// Package bfs provides tunable options and error definitions for
// breadth-first search over terrain exits.
package bfs

import (
	"context"
	"errors"
	"fmt"

	"github.com/katalvlaran/tankroute/terrain"
)

// Sentinel errors for BFS execution.
var (
	// ErrNilTerrain is returned if a nil terrain pointer is passed.
	ErrNilTerrain = errors.New("bfs: terrain is nil")

	// ErrStartOutOfBounds is returned when the start cell is outside the grid.
	ErrStartOutOfBounds = errors.New("bfs: start cell out of bounds")

	// ErrOptionViolation is returned when an invalid Option is supplied.
	ErrOptionViolation = errors.New("bfs: invalid option supplied")

	// ErrNotReached is returned by PathTo for cells the search never reached.
	ErrNotReached = errors.New("bfs: cell not reached")
)

// Option configures BFS behavior via functional arguments.
// If an Option is invalid (e.g. negative depth), it will be recorded
// internally and surfaced as ErrOptionViolation when Distances is invoked.
type Option func(*Options)

// Options holds parameters and callbacks to customize BFS execution.
type Options struct {
	// Ctx allows cancellation and deadlines.
	Ctx context.Context

	// OnVisit is called when visiting a cell. If it returns an error,
	// the search aborts and propagates that error.
	OnVisit func(c terrain.Cell, depth int) error

	// MaxDepth, if > 0, stops exploring beyond this depth.
	MaxDepth int

	err error
}

// DefaultOptions returns Options with a background context, no depth limit
// and a no-op visit hook.
func DefaultOptions() Options {
	return Options{
		Ctx:      context.Background(),
		OnVisit:  func(terrain.Cell, int) error { return nil },
		MaxDepth: 0,
	}
}

// WithContext sets a custom context for cancellation.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithOnVisit registers a callback to run on visit; returning an error
// from this callback stops the search.
func WithOnVisit(fn func(c terrain.Cell, depth int) error) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnVisit = fn
		}
	}
}

// WithMaxDepth stops the search at the given depth.
//
//	d > 0: limit to depth d
//	d == 0: no depth limit
//	d < 0: invalid option → ErrOptionViolation
func WithMaxDepth(d int) Option {
	return func(o *Options) {
		if d < 0 {
			o.err = fmt.Errorf("%w: MaxDepth cannot be negative (%d)", ErrOptionViolation, d)
			return
		}
		o.MaxDepth = d
	}
}

// Result holds the outcome of a search:
//   - Order: cells in visit sequence.
//   - Depth: steps from the start to each reached cell.
//   - Parent: predecessor of each reached cell except the start.
type Result struct {
	Start  terrain.Cell
	Order  []terrain.Cell
	Depth  map[terrain.Cell]int
	Parent map[terrain.Cell]terrain.Cell
}

// Reached reports whether c was visited.
func (r *Result) Reached(c terrain.Cell) bool {
	_, ok := r.Depth[c]
	return ok
}

// PathTo reconstructs the path from the start cell to dest.
// Returns ErrNotReached if dest was not reached.
func (r *Result) PathTo(dest terrain.Cell) ([]terrain.Cell, error) {
	if !r.Reached(dest) {
		return nil, fmt.Errorf("%w: %+v", ErrNotReached, dest)
	}
	path := []terrain.Cell{}
	for cur := dest; ; {
		path = append(path, cur)
		prev, ok := r.Parent[cur]
		if !ok {
			break
		}
		cur = prev
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}

	return path, nil
}
