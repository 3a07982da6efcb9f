// Package mapgen generates synthetic battlefields in the terrain map format.
//
// Generated maps are deterministic for a fixed seed, which makes them
// suitable for property tests, benchmarks and demo scenarios:
//
//	rows, _ := mapgen.Generate(20, 30,
//	    mapgen.WithSeed(7),
//	    mapgen.WithWeights(6, 2, 1, 1, 1),
//	    mapgen.WithWall(15, 10),
//	)
//
// Layering order: random fill, then border, then walls.
package mapgen
