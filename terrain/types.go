// Package terrain defines tile types, coordinates, options and sentinel
// errors for the terrain grid.
package terrain

import (
	"errors"
	"log"
	"unicode"
)

// Sentinel errors for terrain construction.
var (
	// ErrEmptyGrid indicates the input has no rows or every row is empty.
	ErrEmptyGrid = errors.New("terrain: grid must have at least one row and one column")
	// ErrBadHeader indicates the map source does not begin with a row count.
	ErrBadHeader = errors.New("terrain: map header must be a non-negative row count")
	// ErrTooLarge indicates the map source declares more tiles than a grid may hold.
	ErrTooLarge = errors.New("terrain: map exceeds the maximum grid size")
)

// TileType classifies the ground of a single tile.
type TileType uint8

const (
	// Grass is open ground and the default for unknown codes.
	Grass TileType = iota
	// Forest slows units to half speed.
	Forest
	// Rocks slow units to three quarters speed.
	Rocks
	// Mountains are impassable.
	Mountains
	// Water is impassable.
	Water
)

// tileNames and tileCodes are indexed by TileType.
var (
	tileNames = [...]string{"grass", "forest", "rocks", "mountains", "water"}
	tileCodes = [...]rune{'G', 'F', 'R', 'M', 'W'}
)

// String returns the lowercase terrain name.
func (t TileType) String() string {
	if int(t) < len(tileNames) {
		return tileNames[t]
	}
	return "unknown"
}

// Code returns the upper-case map letter for t; unknown types render as 'G'.
func (t TileType) Code() rune {
	if int(t) < len(tileCodes) {
		return tileCodes[t]
	}
	return 'G'
}

// Passable reports whether units may enter a tile of this type.
func (t TileType) Passable() bool {
	return t != Mountains && t != Water
}

// ParseTileType maps a map code to its TileType, case-insensitively.
// Any unrecognised rune yields Grass.
func ParseTileType(r rune) TileType {
	switch unicode.ToUpper(r) {
	case 'F':
		return Forest
	case 'R':
		return Rocks
	case 'M':
		return Mountains
	case 'W':
		return Water
	default:
		return Grass
	}
}

// Cell is a grid coordinate.
type Cell struct {
	Col int `json:"col"`
	Row int `json:"row"`
}

// Point is a pixel-space position.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Tile is one grid cell. Col and Row always equal the tile's grid position.
type Tile struct {
	Col, Row int
	Type     TileType
	exits    []int // row-major indices of accessible neighbours
}

// Default option values.
const (
	DefaultTileSize     = 32
	DefaultFallbackRows = 25
	DefaultFallbackCols = 40
)

// Options configures terrain construction.
//
// TileSize     – pixels per tile edge, used for pixel↔cell conversion (> 0).
// FallbackRows – height of the all-Grass grid Load falls back to (> 0).
// FallbackCols – width of the all-Grass grid Load falls back to (> 0).
// Logger       – receives load diagnostics.
type Options struct {
	TileSize     int
	FallbackRows int
	FallbackCols int
	Logger       *log.Logger
}

// Option represents a functional option for terrain construction.
type Option func(*Options)

// DefaultOptions returns TileSize=32, a 25×40 fallback grid and log.Default().
func DefaultOptions() Options {
	return Options{
		TileSize:     DefaultTileSize,
		FallbackRows: DefaultFallbackRows,
		FallbackCols: DefaultFallbackCols,
		Logger:       log.Default(),
	}
}

// WithTileSize sets the pixel size of one tile. Panics if px <= 0.
func WithTileSize(px int) Option {
	if px <= 0 {
		panic("terrain: WithTileSize(px<=0)")
	}
	return func(o *Options) {
		o.TileSize = px
	}
}

// WithFallbackSize sets the dimensions of the grid Load uses when the map
// source cannot be read. Panics if either dimension is not positive.
func WithFallbackSize(rows, cols int) Option {
	if rows <= 0 || cols <= 0 {
		panic("terrain: WithFallbackSize(rows<=0 || cols<=0)")
	}
	return func(o *Options) {
		o.FallbackRows, o.FallbackCols = rows, cols
	}
}

// WithLogger routes load diagnostics to l. A nil logger is ignored.
func WithLogger(l *log.Logger) Option {
	return func(o *Options) {
		if l != nil {
			o.Logger = l
		}
	}
}

func buildOptions(opts []Option) Options {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}
