package terrain

// SpeedOf returns the movement multiplier for a terrain type:
// Grass 1.0, Rocks 0.75, Forest 0.5, Mountains and Water 0.0.
// Unrecognised types move at full speed.
func SpeedOf(tt TileType) float64 {
	switch tt {
	case Grass:
		return 1.0
	case Forest:
		return 0.5
	case Rocks:
		return 0.75
	case Mountains, Water:
		return 0.0
	default:
		return 1.0
	}
}

// SpeedModifier returns the movement multiplier of the tile under the pixel
// position p. Positions outside the grid return 0: nothing moves there.
func (t *Terrain) SpeedModifier(p Point) float64 {
	c := t.CellAt(p)
	if !t.Contains(c) {
		return 0
	}
	return SpeedOf(t.tiles[t.Index(c)].Type)
}
