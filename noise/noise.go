// SPDX-License-Identifier: MIT

package noise

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/heightfield/grid"
	"github.com/katalvlaran/heightfield/runway"
)

const (
	// offsetRange bounds each octave offset draw to [-offsetRange, offsetRange).
	offsetRange = 100000

	// GlobalHeadroom scales the amplitude bound in Global mode:
	// height = (raw + 1) / (maxPossibleAmplitude / GlobalHeadroom).
	GlobalHeadroom = 0.9
)

// OctaveOffsets draws the per-octave sampling offsets for seed.
// Implementation:
//   - Stage 1: seed a call-local math/rand stream.
//   - Stage 2: for octave i in ascending order draw x then y, each uniform in
//     [-100000, 100000).
//   - Stage 3: x += offset.X, y -= offset.Y.
//
// Determinism:
//   - Exactly two draws per octave; the first k offsets do not depend on the
//     total octave count.
func OctaveOffsets(seed int64, octaves int, offset Offset) []Offset {
	rng := rand.New(rand.NewSource(seed))
	out := make([]Offset, octaves)
	for i := range out {
		ox := float64(rng.Intn(2*offsetRange)-offsetRange) + offset.X
		oy := float64(rng.Intn(2*offsetRange)-offsetRange) - offset.Y
		out[i] = Offset{X: ox, Y: oy}
	}

	return out
}

// MaxPossibleAmplitude returns Σ persistence^i for i in [0, octaves):
// the height reached when every octave peaks together.
func MaxPossibleAmplitude(octaves int, persistence float64) float64 {
	var sum float64
	amplitude := 1.0
	for i := 0; i < octaves; i++ {
		sum += amplitude
		amplitude *= persistence
	}

	return sum
}

// Generate builds a width×height heightmap from p.
// MAIN DESCRIPTION:
//   - Fractal (fBm) Perlin noise, normalized per p.Mode, optionally shaped by
//     a runway corridor.
//
// Implementation:
//   - Stage 1: coerce p (Octaves >= 1, Lacunarity >= 1, Scale > 0).
//   - Stage 2: draw octave offsets and the amplitude bound once.
//   - Stage 3: sample every cell, tracking min/max (row bands in parallel
//     when WithWorkers > 1).
//   - Stage 4: normalize the whole grid (after Stage 3 completes).
//   - Stage 5: runway.Shape when p.Runway is enabled.
//
// Errors:
//   - ErrInvalidDimensions when width <= 0 or height <= 0.
//
// Complexity:
//   - Time O(w*h*octaves), Space O(w*h).
func Generate(width, height int, p Params, opts ...Option) (*grid.Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("Generate(%d,%d): %w", width, height, ErrInvalidDimensions)
	}
	o := gatherOptions(opts...)
	p = p.coerced()

	g, err := grid.New(width, height)
	if err != nil {
		return nil, fmt.Errorf("Generate(%d,%d): %w", width, height, err)
	}

	offsets := OctaveOffsets(p.Seed, p.Octaves, p.Offset)
	maxAmplitude := MaxPossibleAmplitude(p.Octaves, p.Persistence)

	start := time.Now()
	lo, hi := sampleField(g, p, offsets, o.source, o.workers)
	o.logger.Debug("noise field sampled",
		zap.Int("width", width),
		zap.Int("height", height),
		zap.Int("octaves", p.Octaves),
		zap.Int("workers", o.workers),
		zap.Float64("min", lo),
		zap.Float64("max", hi),
		zap.Duration("elapsed", time.Since(start)))

	normalize(g, p.Mode, lo, hi, maxAmplitude)

	if p.Runway != nil && p.Runway.Enabled {
		start = time.Now()
		runway.Shape(g, *p.Runway)
		o.logger.Debug("runway shaped",
			zap.Int("smooth_intensity", p.Runway.SmoothIntensity),
			zap.Duration("elapsed", time.Since(start)))
	}

	return g, nil
}

// sampleField fills g with raw fractal heights and returns their min and max.
// Rows are split into contiguous bands; each band keeps its own extremes and
// the bands are merged after all of them finish.
func sampleField(g *grid.Grid, p Params, offsets []Offset, src Source, workers int) (lo, hi float64) {
	h := g.Height()
	bands := workers
	if bands > h {
		bands = h
	}
	los := make([]float64, bands)
	his := make([]float64, bands)

	if bands == 1 {
		los[0], his[0] = sampleRows(g, 0, h, p, offsets, src)
	} else {
		var eg errgroup.Group
		eg.SetLimit(workers)
		rowsPer := (h + bands - 1) / bands
		for b := 0; b < bands; b++ {
			y0 := b * rowsPer
			y1 := y0 + rowsPer
			if y1 > h {
				y1 = h
			}
			if y0 >= y1 {
				los[b], his[b] = math.MaxFloat64, -math.MaxFloat64
				continue
			}
			b := b
			eg.Go(func() error {
				los[b], his[b] = sampleRows(g, y0, y1, p, offsets, src)
				return nil
			})
		}
		_ = eg.Wait() // bands never fail
	}

	lo, hi = los[0], his[0]
	for b := 1; b < bands; b++ {
		lo = math.Min(lo, los[b])
		hi = math.Max(hi, his[b])
	}

	return lo, hi
}

// sampleRows computes raw heights for rows [y0, y1).
func sampleRows(g *grid.Grid, y0, y1 int, p Params, offsets []Offset, src Source) (lo, hi float64) {
	w, h := g.Shape()
	data := g.Data()
	halfWidth := float64(w) / 2
	halfHeight := float64(h) / 2
	lo, hi = math.MaxFloat64, -math.MaxFloat64

	var amplitude, frequency, height, sx, sy float64
	for y := y0; y < y1; y++ {
		cy := float64(y) - halfHeight
		for x := 0; x < w; x++ {
			cx := float64(x) - halfWidth
			amplitude, frequency, height = 1, 1, 0
			for _, off := range offsets {
				sx = (cx + off.X) / p.Scale * frequency
				sy = (cy + off.Y) / p.Scale * frequency
				height += (src.Sample(sx, sy)*2 - 1) * amplitude

				amplitude *= p.Persistence
				frequency *= p.Lacunarity
			}
			if height < lo {
				lo = height
			}
			if height > hi {
				hi = height
			}
			data[y*w+x] = height
		}
	}

	return lo, hi
}

// normalize rescales every raw height in place.
//   - Local: inverse-lerp [lo, hi] → [0,1]; a flat field maps to 0.
//   - Global: (v + 1) / (maxAmplitude / GlobalHeadroom), floored at 0, no ceiling.
func normalize(g *grid.Grid, mode NormalizeMode, lo, hi, maxAmplitude float64) {
	data := g.Data()
	switch mode {
	case Global:
		denom := maxAmplitude / GlobalHeadroom
		for i, v := range data {
			data[i] = math.Max((v+1)/denom, 0)
		}
	default:
		for i, v := range data {
			data[i] = inverseLerp(lo, hi, v)
		}
	}
}

// inverseLerp returns where v sits between a and b, clamped to [0,1].
func inverseLerp(a, b, v float64) float64 {
	if a == b {
		return 0
	}
	t := (v - a) / (b - a)
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}

	return t
}
