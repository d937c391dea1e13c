// Package grid provides HeightGrid, the dense 2D float64 buffer every stage of
// heightfield generation reads and writes.
//
// What:
//
//   - Grid stores width×height samples in one flat row-major slice.
//   - The index convention is fixed: Index(x, y) = y*width + x, where x is the
//     column (0..width-1) and y is the row (0..height-1).
//   - At/Set are bounds-checked and return sentinel errors instead of panicking.
//   - Data exposes the backing slice for hot loops (noise sampling, smoothing).
//
// Why:
//
//   - One allocation per map, cache-friendly scans in y-then-x order.
//   - No hidden [][]float64 bounds checks in the inner sampling loop.
//
// Complexity:
//
//   - New/Clone/MinMax/Rows: O(W×H). At/Set/Index/Clamped: O(1).
//
// Errors:
//
//   - ErrInvalidDimensions, ErrOutOfRange, ErrNaNInf, ErrEmptyGrid,
//     ErrNonRectangular, ErrDimensionMismatch.
package grid
