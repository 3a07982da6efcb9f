package mapgen_test

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/tankroute/mapgen"
	"github.com/katalvlaran/tankroute/terrain"
)

func TestGenerate_TooSmall(t *testing.T) {
	for _, dims := range [][2]int{{0, 3}, {3, 0}, {-1, -1}} {
		_, err := mapgen.Generate(dims[0], dims[1])
		assert.ErrorIs(t, err, mapgen.ErrTooSmall)
	}
	_, err := mapgen.Build(0, 1)
	assert.ErrorIs(t, err, mapgen.ErrTooSmall)
	_, err = mapgen.Text(1, 0)
	assert.ErrorIs(t, err, mapgen.ErrTooSmall)
}

func TestGenerate_DefaultIsOpenField(t *testing.T) {
	rows, err := mapgen.Generate(3, 4)
	require.NoError(t, err)
	assert.Equal(t, []string{"GGGG", "GGGG", "GGGG"}, rows)
}

func TestGenerate_Deterministic(t *testing.T) {
	opts := []mapgen.Option{mapgen.WithWeights(3, 1, 1, 1, 1)}

	a, err := mapgen.Generate(10, 10, append(opts, mapgen.WithSeed(5))...)
	require.NoError(t, err)
	b, err := mapgen.Generate(10, 10, append(opts, mapgen.WithSeed(5))...)
	require.NoError(t, err)
	assert.Equal(t, a, b)

	c, err := mapgen.Generate(10, 10, append(opts, mapgen.WithRand(rand.New(rand.NewSource(5))))...)
	require.NoError(t, err)
	assert.Equal(t, a, c, "WithRand with the same seed matches WithSeed")

	d, err := mapgen.Generate(10, 10, append(opts, mapgen.WithSeed(6))...)
	require.NoError(t, err)
	assert.NotEqual(t, a, d)
}

func TestGenerate_WeightsRestrictTypes(t *testing.T) {
	rows, err := mapgen.Generate(20, 20, mapgen.WithWeights(0, 1, 0, 0, 1))
	require.NoError(t, err)
	for _, row := range rows {
		for _, ch := range row {
			assert.Contains(t, "FW", string(ch))
		}
	}
}

func TestGenerate_BorderAndWall(t *testing.T) {
	rows, err := mapgen.Generate(5, 6,
		mapgen.WithBorder(terrain.Water),
		mapgen.WithWall(3, 2),
		mapgen.WithWall(10, 0), // beyond the map, ignored
	)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"WWWMWW",
		"WGGMGW",
		"WGGGGW",
		"WGGMGW",
		"WWWMWW",
	}, rows)
}

func TestGenerate_ClosedWallSplitsRegions(t *testing.T) {
	tr, err := mapgen.Build(6, 9, mapgen.WithWall(4, -1))
	require.NoError(t, err)
	assert.Equal(t, 2, tr.RegionCount())
	assert.False(t, tr.Connected(terrain.Cell{Col: 0, Row: 0}, terrain.Cell{Col: 8, Row: 5}))

	tr, err = mapgen.Build(6, 9, mapgen.WithWall(4, 3))
	require.NoError(t, err)
	assert.Equal(t, 1, tr.RegionCount())
}

func TestText_ParsesBack(t *testing.T) {
	text, err := mapgen.Text(7, 11, mapgen.WithSeed(2), mapgen.WithWeights(5, 2, 1, 1, 1))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(text, "7\n"))

	tr, err := terrain.Parse(strings.NewReader(text))
	require.NoError(t, err)
	assert.Equal(t, 7, tr.Height)
	assert.Equal(t, 11, tr.Width)
	assert.Equal(t, text, tr.String())
}

func TestBuild_TerrainOptions(t *testing.T) {
	tr, err := mapgen.Build(2, 2, mapgen.WithTerrainOptions(terrain.WithTileSize(8)))
	require.NoError(t, err)
	assert.Equal(t, 8, tr.TileSize)
}

func TestOptions_Panics(t *testing.T) {
	assert.Panics(t, func() { mapgen.WithRand(nil) })
	assert.Panics(t, func() { mapgen.WithWeights(1, -1, 0, 0, 0) })
	assert.Panics(t, func() { mapgen.WithWeights(0, 0, 0, 0, 0) })
	assert.Panics(t, func() { mapgen.WithWall(-1, 0) })
}
