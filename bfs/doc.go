// Package bfs floods a terrain breadth-first from one cell over its exits,
// returning step counts, parent links and visit order.
//
// What
//
//   - Explore tiles in non-decreasing step count from a start cell.
//   - Returns a Result containing:
//   - Order: visit sequence
//   - Depth: map from cell → steps from start
//   - Parent: map from cell → its predecessor in the BFS tree
//   - OnVisit hook (may abort with an error).
//   - Honors MaxDepth limit (d>0) or explicit "no limit" (d==0).
//
// Why
//
//   - Reachability maps for a unit ("which tiles can I reach in 5 moves?").
//   - Ground truth for shortest route lengths: every step costs 1, so Depth
//     is exactly the length of an optimal uniform-cost route.
//
// Determinism
//
//	Exits are stored in probe order (east, west, south, north) and enqueued
//	in that order, so the visit sequence is fully reproducible.
//
// The start cell may be impassable; it is visited, and its accessible
// neighbours are expanded as usual.
//
// Complexity (N = tiles)
//
//   - Time:   O(N)   (each tile and exit seen at most once)
//   - Memory: O(N)   (queue, Depth map, Parent map, visited set)
//
// Usage
//
//	res, err := bfs.Distances(t, terrain.Cell{Col: 3, Row: 4},
//	    bfs.WithContext(ctx),
//	    bfs.WithMaxDepth(5),
//	)
//	if err != nil {
//	    // ErrNilTerrain, ErrStartOutOfBounds, ErrOptionViolation,
//	    // ctx.Err() or a wrapped OnVisit error
//	}
//	path, _ := res.PathTo(terrain.Cell{Col: 6, Row: 4})
//
// Errors
//
//   - ErrNilTerrain        if the terrain pointer is nil.
//   - ErrStartOutOfBounds  if the start cell is outside the grid.
//   - ErrOptionViolation   if an Option is invalid (e.g. negative MaxDepth).
//   - ErrNotReached        from PathTo for cells the search never reached.
package bfs
