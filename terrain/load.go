package terrain

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

const (
	// maxLineBytes bounds a single map row.
	maxLineBytes = 1 << 20
	// MaxRows bounds the row count a map header may declare.
	MaxRows = 1 << 14
	// MaxTiles bounds the padded width×height of a parsed map.
	MaxTiles = 1 << 22
)

// Parse reads a map source: a row count on the first line followed by that
// many rows of terrain codes. Unknown codes, short rows and missing rows
// default to Grass. Lines beyond the declared count are ignored.
//
// Returns ErrBadHeader if the first line does not start with a non-negative
// integer no larger than MaxRows, ErrTooLarge if the padded grid would hold
// more than MaxTiles tiles, ErrEmptyGrid if the declared rows hold no characters at all, or
// the underlying read error.
// Complexity: O(W×H).
func Parse(r io.Reader, opts ...Option) (*Terrain, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 4096), maxLineBytes)

	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return nil, fmt.Errorf("terrain: reading header: %w", err)
		}
		return nil, ErrBadHeader
	}
	n, err := parseHeader(sc.Text())
	if err != nil {
		return nil, err
	}

	var rows [][]TileType
	w := 0
	for len(rows) < n && sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")
		row := make([]TileType, 0, len(line))
		for _, ch := range line {
			row = append(row, ParseTileType(ch))
		}
		if len(row) > w {
			w = len(row)
			if w > MaxTiles/n {
				return nil, fmt.Errorf("%w: %d rows of width %d", ErrTooLarge, n, w)
			}
		}
		rows = append(rows, row)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("terrain: reading rows: %w", err)
	}
	// Missing rows become Grass once New pads them to width.
	for len(rows) < n {
		rows = append(rows, nil)
	}

	return New(rows, opts...)
}

// parseHeader extracts the leading row count; trailing tokens are ignored.
func parseHeader(line string) (int, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return 0, ErrBadHeader
	}
	n, err := strconv.Atoi(fields[0])
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: %q", ErrBadHeader, fields[0])
	}
	if n > MaxRows {
		return 0, fmt.Errorf("%w: %d rows exceeds %d", ErrBadHeader, n, MaxRows)
	}
	return n, nil
}

// Open parses the map file at path.
func Open(path string, opts ...Option) (*Terrain, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("terrain: open map: %w", err)
	}
	defer f.Close()

	t, err := Parse(f, opts...)
	if err != nil {
		return nil, fmt.Errorf("terrain: parse %s: %w", path, err)
	}
	return t, nil
}

// Load parses the map file at path and never fails: if the file cannot be
// opened or parsed the problem is logged and an all-Grass grid of the
// configured fallback size is returned instead.
func Load(path string, opts ...Option) *Terrain {
	t, err := Open(path, opts...)
	if err == nil {
		return t
	}

	cfg := buildOptions(opts)
	cfg.Logger.Printf("terrain: could not load %q, defaulting to grass: %v", path, err)
	return Fallback(opts...)
}

// Fallback returns an all-Grass grid of the configured fallback size.
func Fallback(opts ...Option) *Terrain {
	cfg := buildOptions(opts)
	t := newBlank(cfg.FallbackRows, cfg.FallbackCols, cfg.TileSize)
	t.buildExits()
	t.labelRegions()
	return t
}
