package noise_test

import (
	"fmt"

	"github.com/katalvlaran/heightfield/noise"
	"github.com/katalvlaran/heightfield/runway"
)

// ExampleGenerate produces a Local-normalized map: the full [0,1] range is
// always used.
func ExampleGenerate() {
	p := noise.DefaultParams()
	p.Seed = 42

	g, err := noise.Generate(64, 64, p)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	lo, hi := g.MinMax()
	fmt.Println(g.Width(), g.Height(), lo, hi)

	// Output:
	// 64 64 0 1
}

// ExampleGenerate_runway carves a centred landing strip into a Global map.
func ExampleGenerate_runway() {
	rw := runway.DefaultSettings()
	rw.Enabled = true

	p := noise.DefaultParams()
	p.Seed = 42
	p.Mode = noise.Global
	p.Runway = &rw

	g, _ := noise.Generate(64, 64, p, noise.WithWorkers(4))
	v, _ := g.At(32, 32)
	fmt.Println(v >= runway.FlatHeight && v < runway.FlatHeight+runway.RoughAmplitude)

	// Output:
	// true
}

// ExampleMaxPossibleAmplitude shows the Global-mode bound for four halving octaves.
func ExampleMaxPossibleAmplitude() {
	fmt.Println(noise.MaxPossibleAmplitude(4, 0.5))

	// Output:
	// 1.875
}
