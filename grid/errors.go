// SPDX-License-Identifier: MIT
// Package grid: sentinel error set.
// All grid operations return these sentinels (optionally wrapped with
// coordinates); callers match them with errors.Is.

package grid

import "errors"

var (
	// ErrInvalidDimensions indicates that requested width or height is non-positive.
	ErrInvalidDimensions = errors.New("grid: dimensions must be > 0")

	// ErrOutOfRange indicates that (x, y) lies outside the grid.
	// Public accessors (At/Set) MUST return this, not panic.
	ErrOutOfRange = errors.New("grid: index out of range")

	// ErrNaNInf signals a NaN or ±Inf value passed to Set.
	ErrNaNInf = errors.New("grid: NaN or Inf encountered")

	// ErrEmptyGrid indicates a [][]float64 input with no rows or no columns.
	ErrEmptyGrid = errors.New("grid: input must have at least one row and one column")

	// ErrNonRectangular indicates rows of differing lengths.
	ErrNonRectangular = errors.New("grid: all rows must have the same length")

	// ErrDimensionMismatch indicates two grids of different shape.
	ErrDimensionMismatch = errors.New("grid: dimension mismatch")
)
