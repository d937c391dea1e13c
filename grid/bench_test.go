package grid_test

import (
	"testing"

	"github.com/katalvlaran/heightfield/grid"
)

// BenchmarkMinMax measures a full scan over a 1024×1024 grid.
// Complexity: O(W×H)
func BenchmarkMinMax(b *testing.B) {
	g, err := grid.New(1024, 1024)
	if err != nil {
		b.Fatalf("setup New failed: %v", err)
	}
	data := g.Data()
	for i := range data {
		data[i] = float64(i%977) / 977
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = g.MinMax()
	}
}
