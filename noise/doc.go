// Package noise generates normalized fractal-noise heightmaps.
//
// 🚀 What does it do?
//
//	Generate sums octaves of coherent 2D Perlin noise over a width×height
//	grid, then rescales the result into [0,1]:
//	  • Local  — inverse-lerp over the observed min/max of this map
//	  • Global — divide by a theoretical amplitude bound so maps that share
//	             octave/persistence settings stay comparable
//
//	When Params.Runway is enabled the normalized grid is handed to
//	runway.Shape before it is returned.
//
// ✨ Key properties:
//   - deterministic: identical width, height and Params give bit-identical grids
//   - octave offsets come from a call-local math/rand stream seeded by Params.Seed
//   - two full passes (sample, then normalize); normalization never starts
//     before every raw sample exists
//   - optional row-parallel sampling (WithWorkers) with identical output
//
// ⚙️ Usage:
//
//	p := noise.DefaultParams()
//	p.Seed = 42
//	p.Mode = noise.Global
//	g, err := noise.Generate(256, 256, p, noise.WithWorkers(4))
//
// Caveat:
//
//	Global mode clamps only the lower bound. Configurations whose octaves add
//	up constructively can produce values above 1.
package noise
