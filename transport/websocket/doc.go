// Package websocket pushes route updates to subscribed clients.
//
// A central Hub owns every connection. Clients subscribe to one unit id via
// the /ws?unit=ID endpoint; when a route is planned for that unit, each
// subscriber receives:
//
//	{"unit_id": "tank-1", "event": "route", "waypoints": [{"x": 0, "y": 64}, ...]}
//
// A target nothing can reach is reported instead as
//
//	{"unit_id": "tank-1", "event": "no_route", "data": {"target": {"x": 96, "y": 0}}}
//
// Every text frame carries exactly one such object.
//
// Usage:
//
//	hub := websocket.NewHub()
//	go hub.Run()
//	defer hub.Close()
//
//	hub.BroadcastRoute("tank-1", route)
//
// Concurrency:
//
// Registration and broadcasting are serialised through the Run loop; each
// client has its own read and write goroutines. ClientCount may be called
// from any goroutine.
package websocket
