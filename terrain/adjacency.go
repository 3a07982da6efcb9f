package terrain

// exitProbes lists neighbour offsets {dCol, dRow} in probe order:
// east, west, south, north. Order only affects which of several equal-cost
// expansions a search discovers first.
var exitProbes = [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}

// buildExits derives the directed adjacency once all tile types are set.
// For each tile in row-major order, every neighbour that passes
// IsAccessible is appended as a row-major index. Impassable tiles still get
// exits; they are simply never entered by any other tile.
// Complexity: O(W×H) time, at most 4 exits per tile.
func (t *Terrain) buildExits() {
	for y := 0; y < t.Height; y++ {
		for x := 0; x < t.Width; x++ {
			tile := &t.tiles[y*t.Width+x]
			tile.exits = make([]int, 0, len(exitProbes))
			for _, d := range exitProbes {
				nx, ny := x+d[0], y+d[1]
				if t.IsAccessible(ny, nx) {
					tile.exits = append(tile.exits, ny*t.Width+nx)
				}
			}
		}
	}
}
