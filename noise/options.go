// SPDX-License-Identifier: MIT

// Package noise: functional configuration for Generate.
// This file defines:
//   - Option / Options (functional options with internal state),
//   - documented defaults (constants),
//   - WithX constructors with strong validation (panic on nonsensical values),
//   - gatherOptions helper (internal).
//
// Options never change what a grid looks like, only how it is produced:
// a different Source is the single exception and is explicit.

package noise

import "go.uber.org/zap"

// DefaultWorkers keeps sampling on the calling goroutine.
const DefaultWorkers = 1

const (
	panicWorkersInvalid = "noise: WithWorkers: n must be >= 1"
	panicSourceNil      = "noise: WithSource: source must not be nil"
)

// Option mutates internal options. Constructors panic only on nonsensical
// values (programmer error).
type Option func(*Options)

// Options stores the effective configuration after applying Option setters.
type Options struct {
	source  Source      // nil ⇒ NewPerlinSource(DefaultPermutationSeed)
	workers int         // DefaultWorkers
	logger  *zap.Logger // zap.NewNop()
}

// WithSource replaces the coherent noise function.
// Panics when src is nil.
func WithSource(src Source) Option {
	if src == nil {
		panic(panicSourceNil)
	}

	return func(o *Options) { o.source = src }
}

// WithWorkers samples rows on up to n goroutines.
// Output is bit-identical for every n; panics when n < 1.
func WithWorkers(n int) Option {
	if n < 1 {
		panic(panicWorkersInvalid)
	}

	return func(o *Options) { o.workers = n }
}

// WithLogger attaches a logger for pass-level debug output. nil resets to a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(o *Options) {
		if l == nil {
			l = zap.NewNop()
		}
		o.logger = l
	}
}

// gatherOptions applies user setters over defaults; last writer wins.
func gatherOptions(user ...Option) Options {
	o := Options{
		workers: DefaultWorkers,
		logger:  zap.NewNop(),
	}
	for _, set := range user {
		set(&o)
	}
	if o.source == nil {
		o.source = NewPerlinSource(DefaultPermutationSeed)
	}

	return o
}
