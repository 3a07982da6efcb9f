// Package tankroute plans tank movement across a tile battlefield.
//
// A battlefield is a rectangular grid of square tiles. Each tile is grass,
// forest, rocks, mountains or water; mountains and water cannot be
// entered, and the others slow a unit to a fixed fraction of full speed.
//
// Subpackages:
//
//	terrain/             tile grid, map loading, accessibility, exits, regions, speed table
//	astar/               A* route search over terrain exits (uniform or terrain-weighted)
//	bfs/                 breadth-first step distances; reachability maps and route oracle
//	mapgen/              deterministic synthetic maps for tests, benchmarks and demos
//	config/              TANKROUTE_* environment settings with .env support
//	api/                 REST API over gorilla/mux
//	transport/websocket/ per-unit route feed
//	transport/mcp/       Model Context Protocol tools
//	cmd/tankroute/       command-line entry point
//
// Quick start:
//
//	t := terrain.Load("assets/terrain.txt")
//	route, err := astar.Route(t, terrain.Point{X: 0, Y: 0}, terrain.Point{X: 320, Y: 160})
//	if err != nil {
//	    // position off the map
//	}
//	if len(route) == 0 {
//	    // target impassable or cut off
//	}
//
// Coordinates: Cell{Col, Row} addresses tiles; Point{X, Y} is in pixels.
// A pixel maps to the tile containing it (floor division by the tile size),
// and waypoints are the top-left pixel of each tile on the route.
package tankroute
