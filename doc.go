// Package heightfield generates procedural terrain heightmaps: fractal
// Perlin noise summed over octaves, normalized into [0,1], with an optional
// flattened runway corridor carved into the result.
//
// 🚀 What is heightfield?
//
//	A deterministic heightmap toolkit that brings together:
//		• Grid: row-major float64 buffer with bounds-checked access
//		• Noise: seeded octave offsets, parallel sampling, Local/Global normalization
//		• Runway: flatten → smooth → roughen a rectangular corridor
//		• Export: 16-bit grayscale PNG and JSON documents
//		• Store: named heightmaps in a JSON file or PostgreSQL
//		• Server: websocket preview endpoint for interactive tuning
//
// ✨ Guarantees
//
//   - Same seed and parameters → bit-identical map, for any worker count
//   - Local maps always span exactly [0,1] (flat input yields all zeros)
//   - Global maps share one scale across seeds, so tiles stitch
//
// Layout:
//
//	grid/           — Grid type, indexing y*width + x, min/max, iteration
//	noise/          — Params, Source (Perlin), Generate, normalization
//	runway/         — Settings, Bounds, Flatten, Smooth, Roughen, Shape
//	config/         — YAML configuration with environment overrides
//	export/         — PNG and JSON encoders
//	store/          — Store interface, JSON and PostgreSQL drivers
//	server/         — websocket preview server
//	cmd/heightfield — CLI: generate, serve, config init, store list/show
//
// Quick start:
//
//	p := noise.DefaultParams()
//	p.Seed = 42
//	g, err := noise.Generate(256, 256, p)
//	if err != nil {
//		log.Fatal(err)
//	}
//	_ = export.Write(f, export.FormatPNG, g, export.Meta{Seed: p.Seed})
package heightfield
