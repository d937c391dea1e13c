// SPDX-License-Identifier: MIT

package noise

import (
	perlin "github.com/aquilax/go-perlin"
)

// Source is a coherent 2D noise function. Sample returns a value in [0,1].
// Implementations must be safe for concurrent reads.
type Source interface {
	Sample(x, y float64) float64
}

// SourceFunc adapts a plain function to Source.
type SourceFunc func(x, y float64) float64

// Sample calls f(x, y).
func (f SourceFunc) Sample(x, y float64) float64 { return f(x, y) }

// Perlin lattice parameters. One harmonic: octaves are summed by Generate, not here.
const (
	perlinAlpha     = 2.0
	perlinBeta      = 2.0
	perlinHarmonics = int32(1)

	// DefaultPermutationSeed fixes the Perlin permutation table. The terrain
	// seed only moves the octave offsets across this fixed field.
	DefaultPermutationSeed int64 = 0
)

// PerlinSource samples classic gradient noise from go-perlin, remapped to [0,1].
type PerlinSource struct {
	p *perlin.Perlin
}

var _ Source = (*PerlinSource)(nil)

// NewPerlinSource builds a single-harmonic Perlin field for the given permutation seed.
func NewPerlinSource(seed int64) *PerlinSource {
	return &PerlinSource{p: perlin.NewPerlin(perlinAlpha, perlinBeta, perlinHarmonics, seed)}
}

// Sample returns (Noise2D + 1) / 2 clamped to [0,1].
func (s *PerlinSource) Sample(x, y float64) float64 {
	v := (s.p.Noise2D(x, y) + 1) / 2
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}

	return v
}
