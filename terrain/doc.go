// Package terrain models a battlefield as a fixed rectangular grid of tiles,
// each tagged with a terrain type, and derives the static 4-neighbour
// adjacency ("exits") that route planners walk.
//
// What:
//
//   - Terrain owns Width×Height tiles in row-major order; it is immutable once built.
//   - IsAccessible(row, col) is the single passability oracle: in bounds and
//     neither Mountains nor Water.
//   - Every tile carries exits to its accessible east, west, south and north
//     neighbours, stored as row-major indices, computed once at construction.
//   - Accessible tiles are labelled with connected-region ids so that callers
//     can answer "no route" without searching.
//   - SpeedModifier maps the tile under a pixel position to a movement
//     multiplier (Grass 1, Rocks 0.75, Forest 0.5, Mountains/Water 0).
//
// Map source format:
//
//	3
//	GGFW
//	grmw
//	GG
//
// The first line holds the row count; each following character is a
// case-insensitive terrain code (G, F, R, M, W). Unknown characters, short
// rows and missing lines default to Grass. The width is the longest row.
//
// Complexity:
//
//   - Construction (types, exits, regions): O(W×H), Memory: O(W×H).
//   - IsAccessible, Type, CellAt, PointOf: O(1).
//
// Errors:
//
//   - ErrEmptyGrid: no rows or zero width.
//   - ErrBadHeader: the map source does not start with a non-negative row count.
//
// Concurrency: a *Terrain is read-only after construction and may be shared
// by any number of goroutines without locking.
package terrain
