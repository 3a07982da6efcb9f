// SPDX-License-Identifier: MIT
// Package: tankroute/mapgen
//
// options.go - functional options for the map generator.
//
// Contract:
//   • Options are functional (type Option func(*config)).
//   • Option constructors VALIDATE and PANIC on meaningless inputs;
//     generators themselves never panic and return sentinel errors.
//   • Determinism is explicit: the default RNG is seeded with DefaultSeed,
//     WithSeed/WithRand override it.

package mapgen

import (
	"math/rand"

	"github.com/katalvlaran/tankroute/terrain"
)

// DefaultSeed seeds the RNG when neither WithSeed nor WithRand is given.
const DefaultSeed int64 = 1

// tileKinds is the number of terrain types a weight table covers.
const tileKinds = 5

// wall is a vertical line of Mountains at col with one open tile at gapRow
// (gapRow < 0 means no gap).
type wall struct {
	col, gapRow int
}

// config collects generator settings; built by newConfig from Options.
type config struct {
	rng         *rand.Rand
	weights     [tileKinds]int
	border      terrain.TileType
	hasBorder   bool
	walls       []wall
	terrainOpts []terrain.Option
}

// Option customizes a generator run.
type Option func(*config)

func newConfig(opts []Option) *config {
	c := &config{weights: [tileKinds]int{1, 0, 0, 0, 0}}
	for _, opt := range opts {
		opt(c)
	}
	if c.rng == nil {
		c.rng = rand.New(rand.NewSource(DefaultSeed))
	}
	return c
}

// WithSeed creates a new *rand.Rand with the given seed (deterministic).
func WithSeed(seed int64) Option {
	return func(c *config) {
		c.rng = rand.New(rand.NewSource(seed))
	}
}

// WithRand provides an explicit RNG. Panics on nil.
func WithRand(r *rand.Rand) Option {
	if r == nil {
		panic("mapgen: WithRand(nil)")
	}
	return func(c *config) {
		c.rng = r
	}
}

// WithWeights sets the relative frequency of each terrain type.
// Panics if any weight is negative or all are zero.
func WithWeights(grass, forest, rocks, mountains, water int) Option {
	w := [tileKinds]int{grass, forest, rocks, mountains, water}
	total := 0
	for _, v := range w {
		if v < 0 {
			panic("mapgen: WithWeights(negative weight)")
		}
		total += v
	}
	if total == 0 {
		panic("mapgen: WithWeights(all zero)")
	}
	return func(c *config) {
		c.weights = w
	}
}

// WithBorder rings the map with tiles of type tt.
func WithBorder(tt terrain.TileType) Option {
	return func(c *config) {
		c.border, c.hasBorder = tt, true
	}
}

// WithWall draws a vertical Mountains wall at col, leaving gapRow open
// (Grass). A negative gapRow closes the wall completely. Panics if col < 0.
// Walls are applied after the border, in the order given.
func WithWall(col, gapRow int) Option {
	if col < 0 {
		panic("mapgen: WithWall(col<0)")
	}
	return func(c *config) {
		c.walls = append(c.walls, wall{col: col, gapRow: gapRow})
	}
}

// WithTerrainOptions forwards options to terrain.New when using Build.
func WithTerrainOptions(opts ...terrain.Option) Option {
	return func(c *config) {
		c.terrainOpts = append(c.terrainOpts, opts...)
	}
}
