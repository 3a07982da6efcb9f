package terrain_test

import (
	"math/rand"
	"testing"

	"github.com/katalvlaran/tankroute/terrain"
)

// BenchmarkNew measures construction (types, exits, regions) of a random
// 500×500 grid.
// Complexity: O(W×H)
func BenchmarkNew(b *testing.B) {
	const n = 500
	rng := rand.New(rand.NewSource(42))
	rows := make([][]terrain.TileType, n)
	for y := range rows {
		rows[y] = make([]terrain.TileType, n)
		for x := range rows[y] {
			rows[y][x] = terrain.TileType(rng.Intn(5))
		}
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := terrain.New(rows); err != nil {
			b.Fatal(err)
		}
	}
}
