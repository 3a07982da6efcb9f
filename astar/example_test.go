package astar_test

import (
	"fmt"
	"strings"

	"github.com/katalvlaran/tankroute/astar"
	"github.com/katalvlaran/tankroute/terrain"
)

// ExampleRoute drives a unit from the bottom-left corner to the top-left
// corner around a mountain ridge.
func ExampleRoute() {
	tr, err := terrain.Parse(strings.NewReader("3\nGGG\nMMG\nGGG\n"))
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	route, err := astar.Route(tr, terrain.Point{X: 5, Y: 70}, terrain.Point{X: 0, Y: 0})
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	for _, p := range route {
		fmt.Println(p.X, p.Y)
	}
	// Output:
	// 0 64
	// 32 64
	// 64 64
	// 64 32
	// 64 0
	// 32 0
	// 0 0
}
