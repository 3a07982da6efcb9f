// Package astar defines options, cost models and sentinel errors for the
// A* route search.
package astar

import (
	"context"
	"errors"
	"fmt"

	"github.com/katalvlaran/tankroute/terrain"
)

// Sentinel errors returned by Route and Search.
var (
	// ErrNilTerrain indicates that a nil *terrain.Terrain was passed.
	ErrNilTerrain = errors.New("astar: terrain is nil")

	// ErrInvalidPosition indicates that the unit or target position maps to
	// a cell outside the terrain.
	ErrInvalidPosition = errors.New("astar: position outside terrain bounds")

	// ErrBudgetExceeded indicates that the search expanded more nodes than
	// allowed by WithMaxExpansions without settling the target.
	ErrBudgetExceeded = errors.New("astar: expansion budget exceeded")
)

// CostModel selects how much one step onto a tile costs.
type CostModel int

const (
	// CostUniform charges 1 per step regardless of terrain.
	CostUniform CostModel = iota

	// CostTerrain charges 1/SpeedOf(entered tile), so slow ground is avoided
	// when a detour is cheaper.
	CostTerrain
)

// String returns "uniform" or "terrain".
func (m CostModel) String() string {
	switch m {
	case CostTerrain:
		return "terrain"
	default:
		return "uniform"
	}
}

// ParseCostModel maps "uniform" (or "") and "terrain" to a CostModel.
func ParseCostModel(s string) (CostModel, error) {
	switch s {
	case "", "uniform":
		return CostUniform, nil
	case "terrain":
		return CostTerrain, nil
	default:
		return CostUniform, fmt.Errorf("astar: unknown cost model %q", s)
	}
}

// Options configures a search.
//
// Ctx           – cancellation and deadlines; checked every checkEvery pops.
// Cost          – per-step cost model (CostUniform by default).
// MaxExpansions – cap on settled tiles, 0 for unlimited (ErrBudgetExceeded).
// OnExpand      – called for every tile as it is settled, with its g-score.
type Options struct {
	Ctx           context.Context
	Cost          CostModel
	MaxExpansions int
	OnExpand      func(c terrain.Cell, g float64)
}

// Option represents a functional option for configuring a search.
type Option func(*Options)

// DefaultOptions returns a background context, uniform cost, no budget and
// a no-op expansion hook.
func DefaultOptions() Options {
	return Options{
		Ctx:           context.Background(),
		Cost:          CostUniform,
		MaxExpansions: 0,
		OnExpand:      func(terrain.Cell, float64) {},
	}
}

// WithContext sets a context for cancellation. A nil context is ignored.
func WithContext(ctx context.Context) Option {
	return func(o *Options) {
		if ctx != nil {
			o.Ctx = ctx
		}
	}
}

// WithCostModel selects the per-step cost model.
func WithCostModel(m CostModel) Option {
	return func(o *Options) {
		o.Cost = m
	}
}

// WithMaxExpansions caps how many tiles may be expanded.
// Panics if n is negative; 0 removes the cap.
func WithMaxExpansions(n int) Option {
	if n < 0 {
		panic("astar: WithMaxExpansions(n<0)")
	}
	return func(o *Options) {
		o.MaxExpansions = n
	}
}

// WithOnExpand registers a hook invoked as each tile is expanded.
func WithOnExpand(fn func(c terrain.Cell, g float64)) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnExpand = fn
		}
	}
}

// Result is the outcome of Search.
//
// Path     – cells from start to target inclusive; empty when not Found.
// Cost     – g-score of the target (number of steps under CostUniform).
// Expanded – number of tiles settled during the search.
type Result struct {
	Path     []terrain.Cell
	Cost     float64
	Expanded int
	Found    bool
}

// Waypoints converts Path to tile-origin pixel points on t. The slice is
// never nil; an unfound route yields an empty slice.
func (r *Result) Waypoints(t *terrain.Terrain) []terrain.Point {
	out := make([]terrain.Point, 0, len(r.Path))
	for _, c := range r.Path {
		out = append(out, t.PointOf(c))
	}
	return out
}
