// Package api exposes a terrain and its route planner over HTTP.
//
// Endpoints (all JSON):
//
//	GET  /api/terrain             grid size, tile size, region count, map rows
//	GET  /api/tiles/{row}/{col}   one tile: type, accessibility, speed, exits
//	GET  /api/speed?x=&y=         speed modifier at a pixel position
//	GET  /api/reach?row=&col=     step distances from a cell (optional max_depth)
//	POST /api/route               plan a route between two pixel positions
//	GET  /ws?unit=ID              subscribe to route updates for a unit
//
// Route request:
//
//	{"unit_id": "tank-1", "unit": {"x": 0, "y": 64}, "target": {"x": 0, "y": 0}, "cost": "terrain"}
//
// unit_id and cost are optional. When unit_id is set and the server has a
// hub, the planned route is also pushed to that unit's websocket
// subscribers as a "route" event, or a "no_route" event carrying the
// target when nothing reaches it. An unreachable target is a 200 response with found=false
// and no waypoints.
//
// Errors are reported as {"error": "..."} with status 400 for malformed
// input or positions off the grid, and 404 for unknown tiles.
package api
