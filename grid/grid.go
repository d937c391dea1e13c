// SPDX-License-Identifier: MIT

// Package grid - dense HeightGrid storage (row-major) & safe accessors.
//
// Purpose:
//   - Provide a cache-friendly row-major buffer with the explicit index formula y*width + x.
//   - Guarantee safety at the public surface: At/Set return errors instead of panicking.
//   - Keep determinism (fixed y-then-x loop orders).
//
// Complexity quicksheet:
//   - New: O(w*h) zero-init; At/Set: O(1); Clone: O(w*h); MinMax: O(w*h).

package grid

import (
	"fmt"
	"math"
	"strings"
)

// ---------- error context tags ----------

const (
	ctxAt  = "At"  // method tag used in error wrappers
	ctxSet = "Set" // method tag used in error wrappers
)

// ---------- Formatting literals ----------
const (
	_fmtRowOpen  = "["
	_fmtRowClose = "]\n"
	_fmtSep      = ", "
)

// gridErrorf wraps an error with a uniform Grid context and callsite coordinates.
func gridErrorf(method string, x, y int, err error) error {
	return fmt.Errorf("Grid.%s(%d,%d): %w", method, x, y, err)
}

// Grid is a dense width×height heightmap.
//   - w,h hold dimensions (columns, rows).
//   - data is a flat buffer of length w*h in row-major order (offset = y*w + x).
type Grid struct {
	w, h int       // column and row counts (> 0)
	data []float64 // contiguous row-major storage (len == w*h)
}

var _ fmt.Stringer = (*Grid)(nil)

// New creates a width×height grid of zeros.
// MAIN DESCRIPTION:
//   - Public constructor with strict shape validation.
//
// Implementation:
//   - Stage 1: validate width>0 && height>0 and that width*height fits in int;
//     else ErrInvalidDimensions.
//   - Stage 2: allocate a zero-filled flat buffer.
//
// Behavior highlights:
//   - No panics on user errors; returns sentinel errors.
//
// Complexity:
//   - Time O(w*h), Space O(w*h).
func New(width, height int) (*Grid, error) {
	if width <= 0 || height <= 0 || width > math.MaxInt/height {
		return nil, fmt.Errorf("grid.New(%d,%d): %w", width, height, ErrInvalidDimensions)
	}

	return &Grid{
		w:    width,
		h:    height,
		data: make([]float64, width*height),
	}, nil
}

// FromRows builds a grid from rows[y][x], deep-copying the input.
// Returns ErrEmptyGrid if there are no rows or no columns and
// ErrNonRectangular if any row length differs.
// Complexity: O(W×H) time and memory.
func FromRows(rows [][]float64) (*Grid, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrEmptyGrid
	}
	h, w := len(rows), len(rows[0])
	for _, row := range rows {
		if len(row) != w {
			return nil, ErrNonRectangular
		}
	}
	g := &Grid{w: w, h: h, data: make([]float64, w*h)}
	for y := 0; y < h; y++ {
		copy(g.data[y*w:(y+1)*w], rows[y])
	}

	return g, nil
}

// FromData wraps a copy of a row-major slice as a width×height grid.
func FromData(width, height int, data []float64) (*Grid, error) {
	if width <= 0 || height <= 0 || width > math.MaxInt/height {
		return nil, fmt.Errorf("grid.FromData(%d,%d): %w", width, height, ErrInvalidDimensions)
	}
	if len(data) != width*height {
		return nil, fmt.Errorf("grid.FromData: len %d != %d*%d: %w", len(data), width, height, ErrDimensionMismatch)
	}
	g := &Grid{w: width, h: height, data: make([]float64, len(data))}
	copy(g.data, data)

	return g, nil
}

// Width returns the column count. Complexity: O(1).
func (g *Grid) Width() int { return g.w }

// Height returns the row count. Complexity: O(1).
func (g *Grid) Height() int { return g.h }

// Shape packs Width() and Height() into a single call.
func (g *Grid) Shape() (width, height int) { return g.w, g.h }

// Len returns width*height.
func (g *Grid) Len() int { return len(g.data) }

// Index maps (x,y) to a row-major offset: y*Width + x.
// No bounds check; use InBounds first when coordinates are untrusted.
// Complexity: O(1).
func (g *Grid) Index(x, y int) int { return y*g.w + x }

// Coordinate converts a row-major offset back to (x,y).
func (g *Grid) Coordinate(idx int) (x, y int) { return idx % g.w, idx / g.w }

// InBounds reports whether (x,y) lies within the grid.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.w && y >= 0 && y < g.h
}

// Data returns the backing row-major slice. Writes through it mutate the grid.
// Intended for hot loops that already guarantee in-range offsets.
func (g *Grid) Data() []float64 { return g.data }

// At returns the value at (x, y) or a wrapped ErrOutOfRange.
// Complexity: O(1).
func (g *Grid) At(x, y int) (float64, error) {
	if !g.InBounds(x, y) {
		return 0, gridErrorf(ctxAt, x, y, ErrOutOfRange)
	}

	return g.data[y*g.w+x], nil
}

// Set stores v at (x, y). It rejects out-of-range coordinates and non-finite values.
// Complexity: O(1).
func (g *Grid) Set(x, y int, v float64) error {
	if !g.InBounds(x, y) {
		return gridErrorf(ctxSet, x, y, ErrOutOfRange)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return gridErrorf(ctxSet, x, y, ErrNaNInf)
	}
	g.data[y*g.w+x] = v

	return nil
}

// Clamped returns the value at (x, y) with both coordinates clamped to the
// grid edge, so reads just outside the border repeat the border sample.
func (g *Grid) Clamped(x, y int) float64 {
	if x < 0 {
		x = 0
	} else if x >= g.w {
		x = g.w - 1
	}
	if y < 0 {
		y = 0
	} else if y >= g.h {
		y = g.h - 1
	}

	return g.data[y*g.w+x]
}

// Clone returns a deep copy with an independent buffer.
func (g *Grid) Clone() *Grid {
	cp := make([]float64, len(g.data))
	copy(cp, g.data)

	return &Grid{w: g.w, h: g.h, data: cp}
}

// CopyFrom overwrites g with the samples of src. Shapes must match.
func (g *Grid) CopyFrom(src *Grid) error {
	if g.w != src.w || g.h != src.h {
		return fmt.Errorf("Grid.CopyFrom(%dx%d <- %dx%d): %w", g.w, g.h, src.w, src.h, ErrDimensionMismatch)
	}
	copy(g.data, src.data)

	return nil
}

// MinMax returns the smallest and largest sample.
// Complexity: O(w*h).
func (g *Grid) MinMax() (lo, hi float64) {
	lo, hi = g.data[0], g.data[0]
	for _, v := range g.data[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}

	return lo, hi
}

// Rows returns a copy of the grid as rows[y][x].
func (g *Grid) Rows() [][]float64 {
	out := make([][]float64, g.h)
	for y := 0; y < g.h; y++ {
		row := make([]float64, g.w)
		copy(row, g.data[y*g.w:(y+1)*g.w])
		out[y] = row
	}

	return out
}

// Do visits each sample in row-major order (y outer, x inner) and calls f(x, y, v).
// Iteration stops early when f returns false.
func (g *Grid) Do(f func(x, y int, v float64) bool) {
	var x, y, base int
	for y = 0; y < g.h; y++ {
		base = y * g.w
		for x = 0; x < g.w; x++ {
			if !f(x, y, g.data[base+x]) {
				return
			}
		}
	}
}

// String provides a readable row-wise dump for diagnostics.
func (g *Grid) String() string {
	var b strings.Builder
	var x, y, base int
	for y = 0; y < g.h; y++ {
		b.WriteString(_fmtRowOpen)
		base = y * g.w
		for x = 0; x < g.w; x++ {
			b.WriteString(fmt.Sprintf("%g", g.data[base+x]))
			if x+1 < g.w {
				b.WriteString(_fmtSep)
			}
		}
		b.WriteString(_fmtRowClose)
	}

	return b.String()
}
