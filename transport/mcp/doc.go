// Package mcp exposes the route planner as Model Context Protocol tools so
// an assistant can query the battlefield and plan unit moves.
//
// Tools:
//
//   - plan_route:       waypoints from a unit position to a target (pixels)
//   - is_accessible:    whether a tile (row, col) can be entered
//   - speed_modifier:   movement multiplier at a pixel position
//   - describe_terrain: map size, legend and rows
//
// The server answers directly from an in-memory terrain; there is no
// HTTP round trip. Serve it over stdio with ServeStdio, or embed the
// underlying *server.MCPServer elsewhere via MCPServer.
package mcp
