// Package runway carves a flattened, smoothed rectangular corridor (a landing
// strip or similar feature) into a normalized heightmap.
//
// What:
//
//   - Bounds derives the corridor rectangle from fractional Settings.
//   - Flatten sets every cell strictly inside the rectangle to FlatHeight.
//   - Smooth replaces cells near the rectangle edges with their 3×3 mean.
//   - Roughen adds a small fixed-seed offset to every cell at or above
//     RoughThreshold so the corridor texture is identical across terrain seeds.
//   - Shape chains the three: Flatten → Smooth×SmoothIntensity → Roughen.
//
// Geometry:
//
//	         XMin            XMax
//	YMin ─────┼──────────────┼─────
//	          │  FlatHeight  │   ← smoothing band: within SmoothRadius of an edge
//	YMax ─────┼──────────────┼─────
//
// Settings.LegacyBounds reproduces an older rectangle formula that derived
// XMin from the corridor's y centre. See Bounds.
//
// Errors:
//
//   - Shape never fails; Settings.Validate is the fail-fast gate callers run once.
package runway
