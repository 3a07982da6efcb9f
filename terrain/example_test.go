package terrain_test

import (
	"fmt"
	"strings"

	"github.com/katalvlaran/tankroute/terrain"
)

// ExampleParse loads a small battlefield and queries passability, exits and
// the movement multiplier under a pixel position.
func ExampleParse() {
	src := `3
GGFW
gmRG
GGGG`
	tr, err := terrain.Parse(strings.NewReader(src), terrain.WithTileSize(32))
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	fmt.Println("size:", tr.Width, "x", tr.Height)
	fmt.Println("accessible (1,1):", tr.IsAccessible(1, 1))
	fmt.Println("accessible (0,2):", tr.IsAccessible(0, 2))
	fmt.Println("exits of (0,0):", tr.Exits(0, 0))
	fmt.Println("speed at (70,10):", tr.SpeedModifier(terrain.Point{X: 70, Y: 10}))
	// Output:
	// size: 4 x 3
	// accessible (1,1): false
	// accessible (0,2): true
	// exits of (0,0): [{1 0} {0 1}]
	// speed at (70,10): 0.5
}
