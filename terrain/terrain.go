// Package terrain provides the tile grid, its passability oracle and
// pixel↔cell conversion.
package terrain

import (
	"math"
	"strconv"
	"strings"
)

// Terrain is a fixed-size grid of tiles. It is immutable once built.
// Width and Height are in tiles; TileSize is the pixel edge of one tile.
// tiles is row-major: tiles[row*Width+col].
type Terrain struct {
	Width, Height int
	TileSize      int
	tiles         []Tile
	regions       []int
	regionCount   int
}

// New constructs a Terrain from rows of tile types. The width is the
// longest row; shorter rows are padded with Grass. Exits and regions are
// computed before New returns.
// Returns ErrEmptyGrid if rows is empty or every row is empty.
// Complexity: O(W×H) time and memory.
func New(rows [][]TileType, opts ...Option) (*Terrain, error) {
	cfg := buildOptions(opts)

	w := 0
	for _, row := range rows {
		if len(row) > w {
			w = len(row)
		}
	}
	if len(rows) == 0 || w == 0 {
		return nil, ErrEmptyGrid
	}

	t := newBlank(len(rows), w, cfg.TileSize)
	for y, row := range rows {
		for x, tt := range row {
			t.tiles[y*w+x].Type = tt
		}
	}
	t.buildExits()
	t.labelRegions()

	return t, nil
}

// newBlank allocates an all-Grass grid with coordinates assigned but no
// exits or regions.
func newBlank(h, w, tileSize int) *Terrain {
	t := &Terrain{
		Width:    w,
		Height:   h,
		TileSize: tileSize,
		tiles:    make([]Tile, w*h),
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			tile := &t.tiles[y*w+x]
			tile.Col, tile.Row = x, y
		}
	}
	return t
}

// InBounds reports whether (row, col) lies within the grid.
func (t *Terrain) InBounds(row, col int) bool {
	return row >= 0 && row < t.Height && col >= 0 && col < t.Width
}

// IsAccessible reports whether (row, col) is inside the grid and its tile
// is neither Mountains nor Water.
// Complexity: O(1).
func (t *Terrain) IsAccessible(row, col int) bool {
	if !t.InBounds(row, col) {
		return false
	}
	return t.tiles[row*t.Width+col].Type.Passable()
}

// Type returns the terrain type at (row, col), or Grass when out of bounds.
func (t *Terrain) Type(row, col int) TileType {
	if !t.InBounds(row, col) {
		return Grass
	}
	return t.tiles[row*t.Width+col].Type
}

// Tile returns a copy of the tile at (row, col) and whether it exists.
func (t *Terrain) Tile(row, col int) (Tile, bool) {
	if !t.InBounds(row, col) {
		return Tile{}, false
	}
	return t.tiles[row*t.Width+col], true
}

// Exits returns the cells reachable in one step from (row, col).
// Out-of-bounds coordinates have no exits.
func (t *Terrain) Exits(row, col int) []Cell {
	if !t.InBounds(row, col) {
		return nil
	}
	idx := t.tiles[row*t.Width+col].exits
	cells := make([]Cell, len(idx))
	for i, e := range idx {
		cells[i] = t.CellOf(e)
	}
	return cells
}

// ExitIndices returns the row-major exit indices of the tile at index i.
// The returned slice is shared with the terrain and must not be modified.
func (t *Terrain) ExitIndices(i int) []int {
	return t.tiles[i].exits
}

// Len returns the number of tiles.
func (t *Terrain) Len() int {
	return len(t.tiles)
}

// Index maps a cell to its row-major index: Row*Width + Col.
// The cell must be in bounds.
func (t *Terrain) Index(c Cell) int {
	return c.Row*t.Width + c.Col
}

// CellOf converts a row-major index back to a cell.
func (t *Terrain) CellOf(i int) Cell {
	return Cell{Col: i % t.Width, Row: i / t.Width}
}

// Contains reports whether c lies within the grid.
func (t *Terrain) Contains(c Cell) bool {
	return t.InBounds(c.Row, c.Col)
}

// CellAt converts a pixel position to the cell containing it. Division is
// floored, so negative pixels map to negative (out-of-bounds) cells.
func (t *Terrain) CellAt(p Point) Cell {
	size := float64(t.TileSize)
	return Cell{
		Col: int(math.Floor(p.X / size)),
		Row: int(math.Floor(p.Y / size)),
	}
}

// PointOf converts a cell to the pixel position of its top-left corner.
func (t *Terrain) PointOf(c Cell) Point {
	return Point{
		X: float64(c.Col * t.TileSize),
		Y: float64(c.Row * t.TileSize),
	}
}

// Rows renders the grid as map code letters, one string per row.
func (t *Terrain) Rows() []string {
	rows := make([]string, t.Height)
	var sb strings.Builder
	for y := 0; y < t.Height; y++ {
		sb.Reset()
		for x := 0; x < t.Width; x++ {
			sb.WriteRune(t.tiles[y*t.Width+x].Type.Code())
		}
		rows[y] = sb.String()
	}
	return rows
}

// String renders the grid in map-file form: a row count followed by rows.
func (t *Terrain) String() string {
	var sb strings.Builder
	sb.WriteString(strconv.Itoa(t.Height))
	sb.WriteByte('\n')
	for _, row := range t.Rows() {
		sb.WriteString(row)
		sb.WriteByte('\n')
	}
	return sb.String()
}
