package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	gorillaws "github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/tankroute/api"
	"github.com/katalvlaran/tankroute/terrain"
	"github.com/katalvlaran/tankroute/transport/websocket"
)

// ridge is a 3×4 map whose only route from the bottom-left to the top-left
// corner goes around the east end of a mountain ridge. The last column is
// water.
const ridge = "3\nGGGW\nMMGW\nGFGW\n"

func newServer(t *testing.T, hub *websocket.Hub) *api.Server {
	t.Helper()
	tr, err := terrain.Parse(strings.NewReader(ridge))
	require.NoError(t, err)
	return api.NewServer(tr, hub)
}

// do runs one request against s and returns the recorder.
func do(t *testing.T, s http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			require.NoError(t, json.NewEncoder(&buf).Encode(b))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v))
}

//----------------------------------------------------------------------------//
// Terrain queries
//----------------------------------------------------------------------------//

func TestTerrain(t *testing.T) {
	rec := do(t, newServer(t, nil), "GET", "/api/terrain", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var info api.TerrainInfo
	decode(t, rec, &info)
	assert.Equal(t, api.TerrainInfo{
		Width:    4,
		Height:   3,
		TileSize: terrain.DefaultTileSize,
		Regions:  1,
		Rows:     []string{"GGGW", "MMGW", "GFGW"},
	}, info)
}

func TestTile(t *testing.T) {
	s := newServer(t, nil)

	rec := do(t, s, "GET", "/api/tiles/2/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var tile api.TileInfo
	decode(t, rec, &tile)
	assert.Equal(t, "forest", tile.Type)
	assert.True(t, tile.Accessible)
	assert.Equal(t, 0.5, tile.Speed)
	assert.Equal(t, []terrain.Cell{{Col: 2, Row: 2}, {Col: 0, Row: 2}}, tile.Exits)

	rec = do(t, s, "GET", "/api/tiles/1/0", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &tile)
	assert.Equal(t, "mountains", tile.Type)
	assert.False(t, tile.Accessible)
	assert.Equal(t, -1, tile.Region)

	assert.Equal(t, http.StatusNotFound, do(t, s, "GET", "/api/tiles/3/0", nil).Code)
	assert.Equal(t, http.StatusNotFound, do(t, s, "GET", "/api/tiles/-1/0", nil).Code)
	assert.Equal(t, http.StatusBadRequest, do(t, s, "GET", "/api/tiles/a/0", nil).Code)
}

func TestSpeed(t *testing.T) {
	s := newServer(t, nil)
	cases := []struct {
		query string
		want  float64
	}{
		{"x=0&y=0", 1.0},
		{"x=40.5&y=70", 0.5},
		{"x=70&y=70", 1.0},
		{"x=100&y=70", 0.0},
		{"x=-1&y=0", 0.0},
		{"x=500&y=0", 0.0},
	}
	for _, tc := range cases {
		rec := do(t, s, "GET", "/api/speed?"+tc.query, nil)
		require.Equal(t, http.StatusOK, rec.Code, tc.query)
		var got map[string]float64
		decode(t, rec, &got)
		assert.Equal(t, tc.want, got["speed"], tc.query)
	}

	assert.Equal(t, http.StatusBadRequest, do(t, s, "GET", "/api/speed?x=a&y=0", nil).Code)
	assert.Equal(t, http.StatusBadRequest, do(t, s, "GET", "/api/speed?x=0", nil).Code)
}

func TestReach(t *testing.T) {
	s := newServer(t, nil)

	rec := do(t, s, "GET", "/api/reach?row=2&col=0", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var got api.ReachResponse
	decode(t, rec, &got)
	assert.Equal(t, 7, got.Reached)
	assert.Equal(t, 6, got.Farthest)
	assert.Equal(t, [][]int{
		{6, 5, 4, -1},
		{-1, -1, 3, -1},
		{0, 1, 2, -1},
	}, got.Depths)

	rec = do(t, s, "GET", "/api/reach?row=2&col=0&max_depth=1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &got)
	assert.Equal(t, 2, got.Reached)

	assert.Equal(t, http.StatusBadRequest, do(t, s, "GET", "/api/reach?row=9&col=0", nil).Code)
	assert.Equal(t, http.StatusBadRequest, do(t, s, "GET", "/api/reach?row=0&col=0&max_depth=-2", nil).Code)
	assert.Equal(t, http.StatusBadRequest, do(t, s, "GET", "/api/reach?row=x&col=0", nil).Code)
}

//----------------------------------------------------------------------------//
// Routing
//----------------------------------------------------------------------------//

func TestRoute(t *testing.T) {
	s := newServer(t, nil)

	rec := do(t, s, "POST", "/api/route", api.RouteRequest{
		Unit:   &terrain.Point{X: 5, Y: 70},
		Target: &terrain.Point{X: 0, Y: 0},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var got api.RouteResponse
	decode(t, rec, &got)
	assert.True(t, got.Found)
	assert.Equal(t, 6.0, got.Cost)
	assert.Equal(t, []terrain.Point{
		{X: 0, Y: 64}, {X: 32, Y: 64}, {X: 64, Y: 64},
		{X: 64, Y: 32},
		{X: 64, Y: 0}, {X: 32, Y: 0}, {X: 0, Y: 0},
	}, got.Waypoints)
}

func TestRoute_Unreachable(t *testing.T) {
	rec := do(t, newServer(t, nil), "POST", "/api/route", api.RouteRequest{
		Unit:   &terrain.Point{X: 0, Y: 0},
		Target: &terrain.Point{X: 100, Y: 0},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var got api.RouteResponse
	decode(t, rec, &got)
	assert.False(t, got.Found)
	assert.NotNil(t, got.Waypoints)
	assert.Empty(t, got.Waypoints)
}

func TestRoute_BadRequests(t *testing.T) {
	s := newServer(t, nil)
	cases := map[string]interface{}{
		"malformed body": "{",
		"missing target": `{"unit":{"x":0,"y":0}}`,
		"off grid":       `{"unit":{"x":0,"y":0},"target":{"x":128,"y":0}}`,
		"negative pixel": `{"unit":{"x":-0.5,"y":0},"target":{"x":0,"y":0}}`,
		"cost model":     `{"unit":{"x":0,"y":0},"target":{"x":32,"y":0},"cost":"diagonal"}`,
	}
	for name, body := range cases {
		rec := do(t, s, "POST", "/api/route", body)
		assert.Equal(t, http.StatusBadRequest, rec.Code, name)
		var got map[string]string
		decode(t, rec, &got)
		assert.NotEmpty(t, got["error"], name)
	}
}

func TestRoute_WrongMethod(t *testing.T) {
	rec := do(t, newServer(t, nil), "GET", "/api/route", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

//----------------------------------------------------------------------------//
// Route feed
//----------------------------------------------------------------------------//

func TestWebSocket_Disabled(t *testing.T) {
	rec := do(t, newServer(t, nil), "GET", "/ws?unit=tank-1", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestWebSocket_RequiresUnit(t *testing.T) {
	hub := websocket.NewHub()
	go hub.Run()
	defer hub.Close()

	rec := do(t, newServer(t, hub), "GET", "/ws", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRoute_BroadcastsToSubscribers(t *testing.T) {
	hub := websocket.NewHub()
	go hub.Run()
	defer hub.Close()

	srv := httptest.NewServer(newServer(t, hub))
	defer srv.Close()

	conn, _, err := gorillaws.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/ws?unit=tank-1", nil)
	require.NoError(t, err)
	defer conn.Close()
	require.Eventually(t, func() bool { return hub.ClientCount("tank-1") == 1 },
		2*time.Second, 10*time.Millisecond)

	body, err := json.Marshal(api.RouteRequest{
		UnitID: "tank-1",
		Unit:   &terrain.Point{X: 0, Y: 0},
		Target: &terrain.Point{X: 64, Y: 0},
	})
	require.NoError(t, err)
	resp, err := http.Post(srv.URL+"/api/route", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var msg websocket.Message
	require.NoError(t, json.Unmarshal(data, &msg))
	assert.Equal(t, "tank-1", msg.UnitID)
	assert.Equal(t, websocket.EventRoute, msg.Event)
	assert.Equal(t, []terrain.Point{{X: 0, Y: 0}, {X: 32, Y: 0}, {X: 64, Y: 0}}, msg.Waypoints)
}

func TestRoute_BroadcastsNoRoute(t *testing.T) {
	hub := websocket.NewHub()
	go hub.Run()
	defer hub.Close()

	srv := httptest.NewServer(newServer(t, hub))
	defer srv.Close()

	conn, _, err := gorillaws.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/ws?unit=tank-2", nil)
	require.NoError(t, err)
	defer conn.Close()
	require.Eventually(t, func() bool { return hub.ClientCount("tank-2") == 1 },
		2*time.Second, 10*time.Millisecond)

	// (0,3) is water.
	body, err := json.Marshal(api.RouteRequest{
		UnitID: "tank-2",
		Unit:   &terrain.Point{X: 0, Y: 0},
		Target: &terrain.Point{X: 96, Y: 0},
	})
	require.NoError(t, err)
	resp, err := http.Post(srv.URL+"/api/route", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var msg websocket.Message
	require.NoError(t, json.Unmarshal(data, &msg))
	assert.Equal(t, "tank-2", msg.UnitID)
	assert.Equal(t, websocket.EventNoRoute, msg.Event)
	assert.Empty(t, msg.Waypoints)
	assert.Equal(t, map[string]interface{}{
		"target": map[string]interface{}{"x": 96.0, "y": 0.0},
	}, msg.Data)
}
