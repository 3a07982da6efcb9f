package mcp

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/katalvlaran/tankroute/astar"
	"github.com/katalvlaran/tankroute/terrain"
)

// Name and Version identify the tool server to clients.
const (
	Name    = "tankroute"
	Version = "1.0.0"
)

// Server wraps an MCP server bound to one terrain.
type Server struct {
	terrain   *terrain.Terrain
	mcpServer *server.MCPServer
}

// NewServer registers every tool against t.
func NewServer(t *terrain.Terrain) *Server {
	s := &Server{terrain: t}
	s.mcpServer = server.NewMCPServer(
		Name,
		Version,
		server.WithToolCapabilities(true),
		server.WithInstructions(`Tank route planner - MCP Interface

The battlefield is a grid of square tiles. Positions passed to plan_route and
speed_modifier are PIXELS (x to the right, y downwards); tile (row, col)
covers pixels [col*tile_size, (col+1)*tile_size) × [row*tile_size, (row+1)*tile_size).

Terrain legend: G grass (speed 1.0), R rocks (0.75), F forest (0.5),
M mountains and W water (impassable).

AVAILABLE TOOLS:
- describe_terrain: map size, tile size and rows; call this first
- is_accessible: can a unit enter tile (row, col)?
- speed_modifier: movement multiplier at a pixel position
- plan_route: shortest 4-directional route between two pixel positions`),
	)

	s.registerTools()
	return s
}

// MCPServer returns the underlying server for custom transports.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio blocks serving tools over stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

func number(description string) map[string]interface{} {
	return map[string]interface{}{
		"type":        "number",
		"description": description,
	}
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.Tool{
		Name:        "plan_route",
		Description: "Plan the shortest route for a unit; returns one waypoint per tile, start and target included",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"unit_x":   number("Unit x position in pixels"),
				"unit_y":   number("Unit y position in pixels"),
				"target_x": number("Target x position in pixels"),
				"target_y": number("Target y position in pixels"),
				"cost": map[string]interface{}{
					"type":        "string",
					"description": "Step cost model: 'uniform' (default, fewest tiles) or 'terrain' (prefers fast ground)",
					"enum":        []string{"uniform", "terrain"},
				},
			},
			Required: []string{"unit_x", "unit_y", "target_x", "target_y"},
		},
	}, s.handlePlanRoute)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "is_accessible",
		Description: "Check whether a unit may enter the tile at (row, col)",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"row": number("Tile row (0-based)"),
				"col": number("Tile column (0-based)"),
			},
			Required: []string{"row", "col"},
		},
	}, s.handleIsAccessible)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "speed_modifier",
		Description: "Get the movement speed multiplier at a pixel position",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"x": number("x position in pixels"),
				"y": number("y position in pixels"),
			},
			Required: []string{"x", "y"},
		},
	}, s.handleSpeedModifier)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "describe_terrain",
		Description: "Describe the battlefield: size, tile size, legend and map rows",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, s.handleDescribeTerrain)
}

var (
	// errMissingArgument is reported when a required numeric argument is absent.
	errMissingArgument = errors.New("missing or non-numeric argument")
	// errNotInteger is reported when a tile index has a fractional part.
	errNotInteger = errors.New("argument must be a whole number")
)

// floatArg reads a JSON number argument.
func floatArg(args map[string]interface{}, key string) (float64, error) {
	switch v := args[key].(type) {
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	default:
		return 0, fmt.Errorf("%w: %s", errMissingArgument, key)
	}
}

// intArg reads a tile index; fractional and out-of-range values are rejected
// rather than truncated.
func intArg(args map[string]interface{}, key string) (int, error) {
	v, err := floatArg(args, key)
	if err != nil {
		return 0, err
	}
	if v != math.Trunc(v) || math.Abs(v) > math.MaxInt32 {
		return 0, fmt.Errorf("%w: %s=%g", errNotInteger, key, v)
	}
	return int(v), nil
}

func arguments(request mcp.CallToolRequest) map[string]interface{} {
	args, _ := request.Params.Arguments.(map[string]interface{})
	if args == nil {
		return map[string]interface{}{}
	}
	return args
}

func (s *Server) handlePlanRoute(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)

	var coords [4]float64
	for i, key := range []string{"unit_x", "unit_y", "target_x", "target_y"} {
		v, err := floatArg(args, key)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		coords[i] = v
	}
	costName, _ := args["cost"].(string)
	model, err := astar.ParseCostModel(costName)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	unit := terrain.Point{X: coords[0], Y: coords[1]}
	target := terrain.Point{X: coords[2], Y: coords[3]}
	route, err := astar.Route(s.terrain, unit, target, astar.WithContext(ctx), astar.WithCostModel(model))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(formatRoute(unit, target, route)), nil
}

func formatRoute(unit, target terrain.Point, route []terrain.Point) string {
	if len(route) == 0 {
		return fmt.Sprintf("No route from (%g, %g) to (%g, %g): the target is impassable or cut off.",
			unit.X, unit.Y, target.X, target.Y)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Route with %d waypoints (%d steps):\n", len(route), len(route)-1)
	for i, p := range route {
		fmt.Fprintf(&sb, "%d. (%g, %g)\n", i, p.X, p.Y)
	}
	return sb.String()
}

func (s *Server) handleIsAccessible(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	r, err := intArg(args, "row")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	c, err := intArg(args, "col")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	if !s.terrain.InBounds(r, c) {
		return mcp.NewToolResultText(fmt.Sprintf("Tile (%d, %d) is outside the %dx%d grid: not accessible.",
			r, c, s.terrain.Height, s.terrain.Width)), nil
	}

	tt := s.terrain.Type(r, c)
	if s.terrain.IsAccessible(r, c) {
		return mcp.NewToolResultText(fmt.Sprintf("Tile (%d, %d) is %s: accessible.", r, c, tt)), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Tile (%d, %d) is %s: not accessible.", r, c, tt)), nil
}

func (s *Server) handleSpeedModifier(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := arguments(request)
	x, err := floatArg(args, "x")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	y, err := floatArg(args, "y")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	speed := s.terrain.SpeedModifier(terrain.Point{X: x, Y: y})
	return mcp.NewToolResultText(fmt.Sprintf("Speed modifier at (%g, %g): %g", x, y, speed)), nil
}

func (s *Server) handleDescribeTerrain(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	t := s.terrain

	var sb strings.Builder
	fmt.Fprintf(&sb, "Terrain %d rows x %d cols, tile size %d px, %d connected region(s).\n",
		t.Height, t.Width, t.TileSize, t.RegionCount())
	sb.WriteString("Legend: G grass 1.0, R rocks 0.75, F forest 0.5, M mountains (blocked), W water (blocked)\n\n")
	for _, row := range t.Rows() {
		sb.WriteString(row)
		sb.WriteByte('\n')
	}
	return mcp.NewToolResultText(sb.String()), nil
}
