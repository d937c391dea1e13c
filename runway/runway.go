// SPDX-License-Identifier: MIT

package runway

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/katalvlaran/heightfield/grid"
)

// Corridor and roughening constants.
const (
	// FlatHeight is the value written into every corridor cell by Flatten.
	FlatHeight = 0.5

	// RoughSeed seeds the roughening stream. It is fixed and independent of
	// the terrain seed.
	RoughSeed int64 = 1

	// RoughThreshold is the lowest value Roughen touches.
	RoughThreshold = 0.25

	// RoughAmplitude is the exclusive upper bound of the roughening offset.
	RoughAmplitude = 0.025

	// roughSteps is the resolution of the roughening offset: delta = k/roughSteps*RoughAmplitude, k in [1, roughSteps).
	roughSteps = 1000
)

// Settings ranges.
const (
	MinSmoothRadius    = 1
	MaxSmoothRadius    = 10
	MaxSmoothIntensity = 3
)

// Settings describes the corridor as fractions of the map size.
// Meaningless when Enabled is false.
type Settings struct {
	Enabled bool `json:"enabled"`

	// XPos, YPos locate the corridor centre as fractions of width/height.
	XPos float64 `json:"x_pos"`
	YPos float64 `json:"y_pos"`

	// XLength, YLength give the corridor extent as fractions of width/height.
	XLength float64 `json:"x_length"`
	YLength float64 `json:"y_length"`

	// SmoothRadius is the distance (cells) from an edge that gets blurred.
	SmoothRadius int `json:"smooth_radius"`

	// SmoothIntensity is the number of blur passes.
	SmoothIntensity int `json:"smooth_intensity"`

	// LegacyBounds selects the historical rectangle formula (see Bounds).
	LegacyBounds bool `json:"legacy_bounds,omitempty"`
}

// DefaultSettings returns a disabled, centred corridor covering 20% of each axis.
func DefaultSettings() Settings {
	return Settings{
		XPos:            0.5,
		YPos:            0.5,
		XLength:         0.2,
		YLength:         0.2,
		SmoothRadius:    2,
		SmoothIntensity: 1,
	}
}

// Validate checks the documented ranges. Shape does not call it.
func (s Settings) Validate() error {
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"x_pos", s.XPos}, {"y_pos", s.YPos}, {"x_length", s.XLength}, {"y_length", s.YLength},
	} {
		if math.IsNaN(f.v) || f.v < 0 || f.v > 1 {
			return fmt.Errorf("%s=%g: %w", f.name, f.v, ErrFractionRange)
		}
	}
	if s.SmoothRadius < MinSmoothRadius || s.SmoothRadius > MaxSmoothRadius {
		return fmt.Errorf("smooth_radius=%d: %w", s.SmoothRadius, ErrSmoothRadius)
	}
	if s.SmoothIntensity < 0 || s.SmoothIntensity > MaxSmoothIntensity {
		return fmt.Errorf("smooth_intensity=%d: %w", s.SmoothIntensity, ErrSmoothIntensity)
	}

	return nil
}

// Rect is the corridor rectangle in cell coordinates. Bounds are exclusive.
type Rect struct {
	XMin, XMax float64
	YMin, YMax float64
}

// Contains reports whether (x, y) lies strictly inside r.
func (r Rect) Contains(x, y int) bool {
	fx, fy := float64(x), float64(y)
	return fx > r.XMin && fx < r.XMax && fy > r.YMin && fy < r.YMax
}

// nearEdge reports whether (x, y) falls in the smoothing band: within radius of
// a vertical edge inside the vertical span, or within radius of a horizontal
// edge inside the horizontal span.
func (r Rect) nearEdge(x, y int, radius float64) bool {
	fx, fy := float64(x), float64(y)
	nearVertical := math.Abs(r.XMax-fx) < radius || math.Abs(r.XMin-fx) < radius
	nearHorizontal := math.Abs(r.YMax-fy) < radius || math.Abs(r.YMin-fy) < radius

	return (nearVertical && fy < r.YMax && fy > r.YMin) ||
		(nearHorizontal && fx < r.XMax && fx > r.XMin)
}

// Bounds computes the corridor rectangle for a width×height map.
// MAIN DESCRIPTION:
//   - Centre (cx, cy) = (XPos*width, YPos*height); half extents
//     XLength*width/2 and YLength*height/2.
//
// Behavior highlights:
//   - Default: XMin = cx - halfX, XMax = cx + halfX, YMin = cy - halfY, YMax = cy + halfY.
//   - LegacyBounds: XMin = cy - halfX. Older maps were carved with this formula;
//     it skews the rectangle whenever cx != cy and can make it empty.
//
// Complexity:
//   - Time O(1).
func Bounds(width, height int, s Settings) Rect {
	cx := s.XPos * float64(width)
	cy := s.YPos * float64(height)
	halfX := s.XLength * float64(width) / 2
	halfY := s.YLength * float64(height) / 2

	r := Rect{
		XMin: cx - halfX,
		XMax: cx + halfX,
		YMin: cy - halfY,
		YMax: cy + halfY,
	}
	if s.LegacyBounds {
		r.XMin = cy - halfX
	}

	return r
}

// Shape carves the corridor into g in place and returns g.
// Implementation:
//   - Stage 1: Flatten the rectangle to FlatHeight.
//   - Stage 2: SmoothIntensity blur passes, each reading only the previous pass.
//   - Stage 3: Roughen the whole grid.
//
// Settings are trusted; run Validate beforehand.
func Shape(g *grid.Grid, s Settings) *grid.Grid {
	r := Bounds(g.Width(), g.Height(), s)

	Flatten(g, r)
	if s.SmoothIntensity > 0 {
		scratch := g.Clone()
		for i := 0; i < s.SmoothIntensity; i++ {
			if i > 0 {
				_ = scratch.CopyFrom(g) // same shape by construction
			}
			smoothPass(g, scratch, r, float64(s.SmoothRadius))
		}
	}
	Roughen(g)

	return g
}

// Flatten sets every cell strictly inside r to FlatHeight.
func Flatten(g *grid.Grid, r Rect) {
	w, h := g.Shape()
	data := g.Data()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if r.Contains(x, y) {
				data[y*w+x] = FlatHeight
			}
		}
	}
}

// Smooth runs one blur pass over the band within radius of r's edges.
// Reads come from a snapshot taken before the pass.
func Smooth(g *grid.Grid, r Rect, radius int) {
	smoothPass(g, g.Clone(), r, float64(radius))
}

// smoothPass writes into dst the 3×3 mean of src for every band cell.
// The first row and column are skipped; neighbour reads are clamped to the grid.
func smoothPass(dst, src *grid.Grid, r Rect, radius float64) {
	w, h := dst.Shape()
	out := dst.Data()
	var sum float64
	for y := 1; y < h; y++ {
		for x := 1; x < w; x++ {
			if !r.nearEdge(x, y, radius) {
				continue
			}
			sum = 0
			for j := -1; j <= 1; j++ {
				for i := -1; i <= 1; i++ {
					sum += src.Clamped(x+i, y+j)
				}
			}
			out[y*w+x] = sum / 9
		}
	}
}

// Roughen adds a pseudo-random offset in (0, RoughAmplitude) to every cell
// whose value is at least RoughThreshold. The stream is seeded with RoughSeed
// and consumed in row-major order, one draw per qualifying cell.
func Roughen(g *grid.Grid) {
	rng := rand.New(rand.NewSource(RoughSeed))
	data := g.Data()
	for i, v := range data {
		if v >= RoughThreshold {
			data[i] = v + float64(rng.Intn(roughSteps-1)+1)/roughSteps*RoughAmplitude
		}
	}
}
