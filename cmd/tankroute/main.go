// Command tankroute loads a battlefield map and plans tank routes across it.
//
// Modes:
//  1. "show"     – print the map, its size and connected regions
//  2. "route"    – print the waypoints from -from to -to (pixel positions)
//  3. "reach"    – print step distances from -from to every reachable tile
//  4. "generate" – write a random map in the map file format
//  5. "serve"    – run the HTTP API with the websocket route feed and /mcp endpoint (default)
//  6. "mcp"      – serve MCP tools over stdio
//
// Settings come from TANKROUTE_* environment variables (optionally from a
// .env file); flags given on the command line take precedence.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/katalvlaran/tankroute/api"
	"github.com/katalvlaran/tankroute/astar"
	"github.com/katalvlaran/tankroute/bfs"
	"github.com/katalvlaran/tankroute/config"
	"github.com/katalvlaran/tankroute/mapgen"
	"github.com/katalvlaran/tankroute/terrain"
	"github.com/katalvlaran/tankroute/transport/mcp"
	"github.com/katalvlaran/tankroute/transport/websocket"
)

// Version information
const (
	Version = "1.0.0"
	AppName = "Tank Route Planner"
)

var (
	mapFile  = flag.String("map", "", "Terrain map file (overrides "+config.EnvTerrainFile+")")
	tileSize = flag.Int("tile", 0, "Tile size in pixels (overrides "+config.EnvTileSize+")")
	host     = flag.String("host", "", "HTTP server host (overrides "+config.EnvHost+")")
	port     = flag.Int("port", 0, "HTTP server port (overrides "+config.EnvPort+")")
	debug    = flag.Bool("debug", false, "Enable debug logging (overrides "+config.EnvDebug+")")
	strict   = flag.Bool("strict", false, "Fail on an unreadable map instead of using an all-grass field")
	version  = flag.Bool("version", false, "Show version information")

	from     = flag.String("from", "0,0", "Unit position in pixels as x,y (route, reach)")
	to       = flag.String("to", "", "Target position in pixels as x,y (route)")
	costName = flag.String("cost", "uniform", "Step cost model: uniform or terrain (route)")
	depth    = flag.Int("depth", 0, "Maximum step count, 0 for unlimited (reach)")

	rows    = flag.Int("rows", 25, "Map rows (generate)")
	cols    = flag.Int("cols", 40, "Map columns (generate)")
	seed    = flag.Int64("seed", mapgen.DefaultSeed, "Random seed (generate)")
	weights = flag.String("weights", "6,2,1,1,1", "Relative frequency of G,F,R,M,W (generate)")
	border  = flag.String("border", "", "Ring the map with this tile code, e.g. M (generate)")
	wall    = flag.String("wall", "", "Mountain wall as col:gapRow, gapRow -1 for none (generate)")
)

func init() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [OPTIONS] [MODE]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "%s v%s\n\n", AppName, Version)
		fmt.Fprintf(os.Stderr, "Available modes:\n")
		fmt.Fprintf(os.Stderr, "  serve       Run HTTP API, websocket route feed and /mcp endpoint (default)\n")
		fmt.Fprintf(os.Stderr, "  mcp         Run MCP stdio server\n")
		fmt.Fprintf(os.Stderr, "  show        Print the loaded map\n")
		fmt.Fprintf(os.Stderr, "  route       Print a route between -from and -to\n")
		fmt.Fprintf(os.Stderr, "  reach       Print step distances from -from\n")
		fmt.Fprintf(os.Stderr, "  generate    Print a random map\n")
		fmt.Fprintf(os.Stderr, "\nOptions:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s -map assets/terrain.txt route -from 0,0 -to 320,160\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s generate -rows 20 -cols 30 -wall 15:10 > map.txt\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -port 9090 serve\n", os.Args[0])
	}
}

func main() {
	if err := config.LoadDotEnv(); err != nil {
		log.Printf("Warning: %v", err)
	}

	flag.Parse()

	if *version {
		fmt.Printf("%s v%s\n", AppName, Version)
		os.Exit(0)
	}

	cfg, err := resolveConfig()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	if cfg.Debug {
		log.SetFlags(log.LstdFlags | log.Lshortfile)
	} else {
		log.SetFlags(log.LstdFlags)
	}

	// Flags may follow the mode ("route -from 0,0"); parse the remainder.
	mode := "serve"
	if args := flag.Args(); len(args) > 0 {
		mode = args[0]
		if err := flag.CommandLine.Parse(args[1:]); err != nil {
			log.Fatalf("Invalid arguments: %v", err)
		}
		if cfg, err = resolveConfig(); err != nil {
			log.Fatalf("Invalid configuration: %v", err)
		}
	}

	if mode == "generate" {
		if err := runGenerate(os.Stdout); err != nil {
			log.Fatalf("Generate failed: %v", err)
		}
		return
	}

	tr, err := loadTerrain(cfg)
	if err != nil {
		log.Fatalf("Failed to load terrain: %v", err)
	}

	switch mode {
	case "show":
		runShow(os.Stdout, tr)

	case "route":
		if err := runRoute(os.Stdout, tr, *from, *to, *costName); err != nil {
			log.Fatalf("Route failed: %v", err)
		}

	case "reach":
		if err := runReach(os.Stdout, tr, *from, *depth); err != nil {
			log.Fatalf("Reach failed: %v", err)
		}

	case "mcp", "stdio-mcp":
		log.Printf("Starting %s v%s (mode: mcp)", AppName, Version)
		if err := mcp.NewServer(tr).ServeStdio(); err != nil {
			log.Fatalf("MCP server failed: %v", err)
		}

	case "serve", "server", "http":
		log.Printf("Starting %s v%s (mode: serve)", AppName, Version)
		runHTTPServer(cfg, tr)

	default:
		log.Fatalf("Unknown mode: %s. Use serve, mcp, show, route, reach or generate", mode)
	}
}

// resolveConfig reads the environment and applies explicitly set flags.
func resolveConfig() (config.Config, error) {
	cfg, err := config.FromEnv()
	if err != nil {
		return cfg, err
	}

	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "map":
			cfg.TerrainFile = *mapFile
		case "tile":
			cfg.TileSize = *tileSize
		case "host":
			cfg.Host = *host
		case "port":
			cfg.Port = *port
		case "debug":
			cfg.Debug = *debug
		}
	})

	return cfg, cfg.Validate()
}

// loadTerrain reads the configured map. Unless -strict is set, an unreadable
// map is logged and replaced by the all-grass fallback field.
func loadTerrain(cfg config.Config) (*terrain.Terrain, error) {
	opts := cfg.TerrainOptions()
	if *strict {
		return terrain.Open(cfg.TerrainFile, opts...)
	}
	return terrain.Load(cfg.TerrainFile, opts...), nil
}

// parsePoint parses "x,y" into a pixel position.
func parsePoint(s string) (terrain.Point, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return terrain.Point{}, fmt.Errorf("position %q must be x,y", s)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return terrain.Point{}, fmt.Errorf("position %q: bad x: %w", s, err)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return terrain.Point{}, fmt.Errorf("position %q: bad y: %w", s, err)
	}
	return terrain.Point{X: x, Y: y}, nil
}

// parseWeights parses "g,f,r,m,w" for mapgen.WithWeights.
func parseWeights(s string) ([5]int, error) {
	var w [5]int
	parts := strings.Split(s, ",")
	if len(parts) != len(w) {
		return w, fmt.Errorf("weights %q must have 5 comma-separated values", s)
	}
	total := 0
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil || n < 0 {
			return w, fmt.Errorf("weights %q: %q is not a non-negative integer", s, p)
		}
		w[i] = n
		total += n
	}
	if total == 0 {
		return w, fmt.Errorf("weights %q: at least one weight must be positive", s)
	}
	return w, nil
}

// parseWall parses "col:gapRow" for mapgen.WithWall.
func parseWall(s string) (col, gapRow int, err error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("wall %q must be col:gapRow", s)
	}
	if col, err = strconv.Atoi(parts[0]); err != nil || col < 0 {
		return 0, 0, fmt.Errorf("wall %q: bad column", s)
	}
	if gapRow, err = strconv.Atoi(parts[1]); err != nil {
		return 0, 0, fmt.Errorf("wall %q: bad gap row", s)
	}
	return col, gapRow, nil
}

func runShow(w io.Writer, tr *terrain.Terrain) {
	fmt.Fprintf(w, "%d x %d tiles, %d px each, %d region(s)\n", tr.Height, tr.Width, tr.TileSize, tr.RegionCount())
	for _, row := range tr.Rows() {
		fmt.Fprintln(w, row)
	}
}

func runRoute(w io.Writer, tr *terrain.Terrain, fromStr, toStr, cost string) error {
	unit, err := parsePoint(fromStr)
	if err != nil {
		return err
	}
	target, err := parsePoint(toStr)
	if err != nil {
		return err
	}
	model, err := astar.ParseCostModel(cost)
	if err != nil {
		return err
	}

	route, err := astar.Route(tr, unit, target, astar.WithCostModel(model))
	if err != nil {
		return err
	}
	if len(route) == 0 {
		fmt.Fprintln(w, "no route")
		return nil
	}
	for _, p := range route {
		fmt.Fprintf(w, "%g,%g\n", p.X, p.Y)
	}
	return nil
}

func runReach(w io.Writer, tr *terrain.Terrain, fromStr string, maxDepth int) error {
	p, err := parsePoint(fromStr)
	if err != nil {
		return err
	}
	res, err := bfs.Distances(tr, tr.CellAt(p), bfs.WithMaxDepth(maxDepth))
	if err != nil {
		return err
	}

	for y := 0; y < tr.Height; y++ {
		cells := make([]string, tr.Width)
		for x := range cells {
			if d, ok := res.Depth[terrain.Cell{Col: x, Row: y}]; ok {
				cells[x] = strconv.Itoa(d)
			} else {
				cells[x] = "."
			}
		}
		fmt.Fprintln(w, strings.Join(cells, "\t"))
	}
	fmt.Fprintf(w, "%d tile(s) reachable\n", len(res.Order))
	return nil
}

func runGenerate(w io.Writer) error {
	wt, err := parseWeights(*weights)
	if err != nil {
		return err
	}
	opts := []mapgen.Option{
		mapgen.WithSeed(*seed),
		mapgen.WithWeights(wt[0], wt[1], wt[2], wt[3], wt[4]),
	}
	if *border != "" {
		opts = append(opts, mapgen.WithBorder(terrain.ParseTileType([]rune(*border)[0])))
	}
	if *wall != "" {
		col, gap, err := parseWall(*wall)
		if err != nil {
			return err
		}
		opts = append(opts, mapgen.WithWall(col, gap))
	}

	text, err := mapgen.Text(*rows, *cols, opts...)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, text)
	return err
}

// newHandler combines the REST API and the /mcp endpoint.
func newHandler(tr *terrain.Terrain, hub *websocket.Hub) http.Handler {
	apiServer := api.NewServer(tr, hub)
	tools := mcp.NewServer(tr)

	mainRouter := http.NewServeMux()
	mainRouter.Handle("/", apiServer)
	mainRouter.HandleFunc("/mcp", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		body, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, "Failed to read request", http.StatusBadRequest)
			return
		}
		defer r.Body.Close()

		response := tools.MCPServer().HandleMessage(r.Context(), body)

		w.Header().Set("Content-Type", "application/json")
		responseData, err := json.Marshal(response)
		if err != nil {
			http.Error(w, "Failed to marshal response", http.StatusInternalServerError)
			return
		}
		w.Write(responseData)
	})
	return mainRouter
}

// runHTTPServer serves until SIGINT or SIGTERM, then shuts down gracefully.
func runHTTPServer(cfg config.Config, tr *terrain.Terrain) {
	hub := websocket.NewHub()
	go hub.Run()
	defer hub.Close()

	addr := cfg.Addr()
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      newHandler(tr, hub),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	errc := make(chan error, 1)
	go func() {
		log.Printf("HTTP server listening on %s", addr)
		log.Printf("REST API: http://%s/api", addr)
		log.Printf("WebSocket: ws://%s/ws?unit=<unit_id>", addr)
		log.Printf("MCP endpoint: http://%s/mcp", addr)
		errc <- httpServer.ListenAndServe()
	}()

	select {
	case sig := <-stop:
		log.Printf("Received signal: %v. Shutting down...", sig)
	case err := <-errc:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("HTTP server failed: %v", err)
		}
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}
	log.Println("Server stopped")
}
