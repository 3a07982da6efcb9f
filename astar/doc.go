// Package astar routes a unit across a terrain.Terrain with an informed
// best-first (A*) search over the terrain's precomputed exits.
//
// Overview:
//
//   - Route takes the unit's pixel position and a target pixel position,
//     converts both to cells and returns the waypoints of a shortest route,
//     start and target inclusive, one pixel point per tile.
//   - Search is the cell-level entry point and also reports the route cost
//     and the number of expanded nodes.
//   - Every step costs 1 by default; the heuristic is the Manhattan distance,
//     which is admissible and consistent on a 4-connected grid, so the first
//     time the target is popped its route is optimal.
//   - CostTerrain charges 1/speed of the entered tile instead (Forest 2,
//     Rocks 4/3, Grass 1); Manhattan stays admissible since no step is cheaper than 1.
//
// Algorithm:
//
//  1. Seed a min-heap (ascending f = g + h) with the start cell, g = 0.
//  2. Pop the lowest f. If it is the target, stop.
//  3. Otherwise mark its tile visited and push one node per unvisited exit.
//     A tile may be queued several times ("lazy decrease-key"); entries for
//     tiles that are already visited are dropped when popped.
//  4. An empty heap means there is no route.
//
// Ties on f are broken by the larger g (the node closer to the target
// along its own path), then by insertion order, so results are
// deterministic for a given terrain.
//
// Memory model:
//
//	Search nodes live in a per-call arena ([]node) and reference their
//	predecessor by arena index. Nothing is shared between calls, so any
//	number of goroutines may search the same terrain concurrently.
//
// Complexity:
//
//   - Time:  O(N log N) in the worst case, N = number of tiles.
//   - Space: O(N) for the visited set, arena and heap.
//
// Errors (sentinel):
//
//   - ErrNilTerrain:      terrain pointer is nil.
//   - ErrInvalidPosition: the unit or target maps to a cell outside the grid.
//   - ErrBudgetExceeded:  WithMaxExpansions budget exhausted before a result.
//
// An unreachable target is not an error: Route returns an empty slice.
package astar
