// SPDX-License-Identifier: MIT
// Package: tankroute/mapgen
//
// generate.go - Generate, Text and Build.
//
// Contract:
//   • rows ≥ 1 and cols ≥ 1 (else ErrTooSmall).
//   • Tiles are drawn row-major from the weight table with cfg.rng, so a
//     fixed seed always yields the same map.
//   • The border overwrites the outer ring; walls overwrite whole columns,
//     and a wall column beyond the map width is ignored.
//   • Returns only sentinel errors; never panics at runtime.
//
// Complexity:
//   • Time O(rows×cols), Space O(rows×cols).

package mapgen

import (
	"errors"
	"fmt"
	"strings"

	"github.com/katalvlaran/tankroute/terrain"
)

// ErrTooSmall indicates a non-positive row or column count.
var ErrTooSmall = errors.New("mapgen: rows and cols must be positive")

// Generate returns rows×cols map code rows.
// Complexity: O(rows×cols).
func Generate(rows, cols int, opts ...Option) ([]string, error) {
	if rows < 1 || cols < 1 {
		return nil, fmt.Errorf("%w: rows=%d, cols=%d", ErrTooSmall, rows, cols)
	}
	cfg := newConfig(opts)
	grid := fill(rows, cols, cfg)

	if cfg.hasBorder {
		for y := 0; y < rows; y++ {
			for x := 0; x < cols; x++ {
				if y == 0 || x == 0 || y == rows-1 || x == cols-1 {
					grid[y][x] = cfg.border
				}
			}
		}
	}
	for _, w := range cfg.walls {
		if w.col >= cols {
			continue
		}
		for y := 0; y < rows; y++ {
			if y == w.gapRow {
				grid[y][w.col] = terrain.Grass
			} else {
				grid[y][w.col] = terrain.Mountains
			}
		}
	}

	out := make([]string, rows)
	var sb strings.Builder
	for y, row := range grid {
		sb.Reset()
		for _, tt := range row {
			sb.WriteRune(tt.Code())
		}
		out[y] = sb.String()
	}
	return out, nil
}

// fill draws every tile from the weight table.
func fill(rows, cols int, cfg *config) [][]terrain.TileType {
	total := 0
	for _, w := range cfg.weights {
		total += w
	}
	grid := make([][]terrain.TileType, rows)
	for y := range grid {
		grid[y] = make([]terrain.TileType, cols)
		for x := range grid[y] {
			grid[y][x] = pick(cfg, total)
		}
	}
	return grid
}

func pick(cfg *config, total int) terrain.TileType {
	if cfg.weights[0] == total {
		return terrain.Grass
	}
	r := cfg.rng.Intn(total)
	for i, w := range cfg.weights {
		if r < w {
			return terrain.TileType(i)
		}
		r -= w
	}
	return terrain.Grass
}

// Text renders a complete map file: header line plus rows.
func Text(rows, cols int, opts ...Option) (string, error) {
	lines, err := Generate(rows, cols, opts...)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%d\n%s\n", rows, strings.Join(lines, "\n")), nil
}

// Build generates a map and constructs the terrain directly.
func Build(rows, cols int, opts ...Option) (*terrain.Terrain, error) {
	lines, err := Generate(rows, cols, opts...)
	if err != nil {
		return nil, err
	}
	cfg := newConfig(opts)
	types := make([][]terrain.TileType, len(lines))
	for y, line := range lines {
		types[y] = make([]terrain.TileType, 0, len(line))
		for _, ch := range line {
			types[y] = append(types[y], terrain.ParseTileType(ch))
		}
	}
	return terrain.New(types, cfg.terrainOpts...)
}
