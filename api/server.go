package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/katalvlaran/tankroute/astar"
	"github.com/katalvlaran/tankroute/bfs"
	"github.com/katalvlaran/tankroute/terrain"
	"github.com/katalvlaran/tankroute/transport/websocket"
)

// Server is the REST front end of one terrain.
type Server struct {
	terrain *terrain.Terrain
	hub     *websocket.Hub
	router  *mux.Router
}

// NewServer builds the router. hub may be nil, which disables /ws and route
// broadcasts.
func NewServer(t *terrain.Terrain, hub *websocket.Hub) *Server {
	s := &Server{
		terrain: t,
		hub:     hub,
		router:  mux.NewRouter(),
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	api := s.router.PathPrefix("/api").Subrouter()

	api.HandleFunc("/terrain", s.handleTerrain).Methods("GET")
	api.HandleFunc("/tiles/{row}/{col}", s.handleTile).Methods("GET")
	api.HandleFunc("/speed", s.handleSpeed).Methods("GET")
	api.HandleFunc("/reach", s.handleReach).Methods("GET")
	api.HandleFunc("/route", s.handleRoute).Methods("POST")

	s.router.HandleFunc("/ws", s.handleWebSocket)
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Response helpers
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// TerrainInfo is the body of GET /api/terrain.
type TerrainInfo struct {
	Width    int      `json:"width"`
	Height   int      `json:"height"`
	TileSize int      `json:"tile_size"`
	Regions  int      `json:"regions"`
	Rows     []string `json:"rows"`
}

// TileInfo is the body of GET /api/tiles/{row}/{col}.
type TileInfo struct {
	Row        int            `json:"row"`
	Col        int            `json:"col"`
	Type       string         `json:"type"`
	Accessible bool           `json:"accessible"`
	Speed      float64        `json:"speed"`
	Region     int            `json:"region"`
	Exits      []terrain.Cell `json:"exits"`
}

// RouteRequest is the body of POST /api/route.
type RouteRequest struct {
	UnitID string         `json:"unit_id,omitempty"`
	Unit   *terrain.Point `json:"unit"`
	Target *terrain.Point `json:"target"`
	Cost   string         `json:"cost,omitempty"`
}

// NoRouteEvent is the payload of a no_route feed event.
type NoRouteEvent struct {
	Target terrain.Point `json:"target"`
}

// RouteResponse is the reply to POST /api/route.
type RouteResponse struct {
	Found     bool            `json:"found"`
	Waypoints []terrain.Point `json:"waypoints"`
	Cost      float64         `json:"cost"`
	Expanded  int             `json:"expanded"`
}

// ReachResponse is the reply to GET /api/reach.
type ReachResponse struct {
	Start    terrain.Cell `json:"start"`
	Reached  int          `json:"reached"`
	MaxDepth int          `json:"max_depth"`
	Farthest int          `json:"farthest"`
	Depths   [][]int      `json:"depths"`
}

func (s *Server) handleTerrain(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, TerrainInfo{
		Width:    s.terrain.Width,
		Height:   s.terrain.Height,
		TileSize: s.terrain.TileSize,
		Regions:  s.terrain.RegionCount(),
		Rows:     s.terrain.Rows(),
	})
}

func (s *Server) handleTile(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	row, err := strconv.Atoi(vars["row"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "row must be an integer")
		return
	}
	col, err := strconv.Atoi(vars["col"])
	if err != nil {
		respondError(w, http.StatusBadRequest, "col must be an integer")
		return
	}

	tile, ok := s.terrain.Tile(row, col)
	if !ok {
		respondError(w, http.StatusNotFound, fmt.Sprintf("tile (%d, %d) is outside the %dx%d grid",
			row, col, s.terrain.Height, s.terrain.Width))
		return
	}

	respondJSON(w, http.StatusOK, TileInfo{
		Row:        row,
		Col:        col,
		Type:       tile.Type.String(),
		Accessible: s.terrain.IsAccessible(row, col),
		Speed:      terrain.SpeedOf(tile.Type),
		Region:     s.terrain.Region(terrain.Cell{Col: col, Row: row}),
		Exits:      s.terrain.Exits(row, col),
	})
}

func (s *Server) handleSpeed(w http.ResponseWriter, r *http.Request) {
	p, err := pointFromQuery(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]float64{"speed": s.terrain.SpeedModifier(p)})
}

func (s *Server) handleReach(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	row, err := strconv.Atoi(query.Get("row"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "row must be an integer")
		return
	}
	col, err := strconv.Atoi(query.Get("col"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "col must be an integer")
		return
	}
	maxDepth := 0
	if v := query.Get("max_depth"); v != "" {
		if maxDepth, err = strconv.Atoi(v); err != nil {
			respondError(w, http.StatusBadRequest, "max_depth must be an integer")
			return
		}
	}

	start := terrain.Cell{Col: col, Row: row}
	res, err := bfs.Distances(s.terrain, start,
		bfs.WithContext(r.Context()), bfs.WithMaxDepth(maxDepth))
	switch {
	case errors.Is(err, bfs.ErrStartOutOfBounds), errors.Is(err, bfs.ErrOptionViolation):
		respondError(w, http.StatusBadRequest, err.Error())
		return
	case err != nil:
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	depths := make([][]int, s.terrain.Height)
	farthest := 0
	for y := range depths {
		depths[y] = make([]int, s.terrain.Width)
		for x := range depths[y] {
			d, ok := res.Depth[terrain.Cell{Col: x, Row: y}]
			if !ok {
				d = -1
			}
			if d > farthest {
				farthest = d
			}
			depths[y][x] = d
		}
	}

	respondJSON(w, http.StatusOK, ReachResponse{
		Start:    start,
		Reached:  len(res.Order),
		MaxDepth: maxDepth,
		Farthest: farthest,
		Depths:   depths,
	})
}

func (s *Server) handleRoute(w http.ResponseWriter, r *http.Request) {
	var req RouteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.Unit == nil || req.Target == nil {
		respondError(w, http.StatusBadRequest, "unit and target are required")
		return
	}
	model, err := astar.ParseCostModel(req.Cost)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	res, err := astar.SearchPoints(s.terrain, *req.Unit, *req.Target,
		astar.WithContext(r.Context()), astar.WithCostModel(model))
	switch {
	case errors.Is(err, astar.ErrInvalidPosition):
		respondError(w, http.StatusBadRequest, err.Error())
		return
	case err != nil:
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	waypoints := res.Waypoints(s.terrain)

	if req.UnitID != "" && s.hub != nil {
		if res.Found {
			s.hub.BroadcastRoute(req.UnitID, waypoints)
		} else {
			s.hub.BroadcastEvent(req.UnitID, websocket.EventNoRoute, NoRouteEvent{Target: *req.Target})
		}
	}

	respondJSON(w, http.StatusOK, RouteResponse{
		Found:     res.Found,
		Waypoints: waypoints,
		Cost:      res.Cost,
		Expanded:  res.Expanded,
	})
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	if s.hub == nil {
		http.Error(w, "route feed disabled", http.StatusServiceUnavailable)
		return
	}
	unitID := r.URL.Query().Get("unit")
	if unitID == "" {
		http.Error(w, "unit parameter required", http.StatusBadRequest)
		return
	}

	s.hub.ServeWS(w, r, unitID)
}

// pointFromQuery reads the x and y query parameters as pixel coordinates.
func pointFromQuery(r *http.Request) (terrain.Point, error) {
	query := r.URL.Query()
	x, err := strconv.ParseFloat(query.Get("x"), 64)
	if err != nil {
		return terrain.Point{}, errors.New("x must be a number")
	}
	y, err := strconv.ParseFloat(query.Get("y"), 64)
	if err != nil {
		return terrain.Point{}, errors.New("y must be a number")
	}
	return terrain.Point{X: x, Y: y}, nil
}
