package terrain

// labelRegions floods accessible tiles over their exits and assigns each
// connected region a dense id starting at 0. Impassable tiles get -1.
// Complexity: O(W×H) time and memory.
func (t *Terrain) labelRegions() {
	t.regions = make([]int, len(t.tiles))
	for i := range t.regions {
		t.regions[i] = -1
	}
	t.regionCount = 0

	queue := make([]int, 0, len(t.tiles))
	for i := range t.tiles {
		if t.regions[i] >= 0 || !t.tiles[i].Type.Passable() {
			continue
		}
		id := t.regionCount
		t.regionCount++
		t.regions[i] = id
		queue = append(queue[:0], i)
		for qi := 0; qi < len(queue); qi++ {
			for _, e := range t.tiles[queue[qi]].exits {
				if t.regions[e] < 0 {
					t.regions[e] = id
					queue = append(queue, e)
				}
			}
		}
	}
}

// Region returns the region id of c, or -1 if c is impassable or out of bounds.
func (t *Terrain) Region(c Cell) int {
	if !t.Contains(c) {
		return -1
	}
	return t.regions[t.Index(c)]
}

// RegionCount returns the number of connected accessible regions.
func (t *Terrain) RegionCount() int {
	return t.regionCount
}

// Connected reports whether a and b are both accessible and lie in the same region.
func (t *Terrain) Connected(a, b Cell) bool {
	ra := t.Region(a)
	return ra >= 0 && ra == t.Region(b)
}
