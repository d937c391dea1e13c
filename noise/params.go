// SPDX-License-Identifier: MIT

package noise

import (
	"fmt"
	"strings"

	"github.com/katalvlaran/heightfield/runway"
)

// NormalizeMode selects how raw noise heights are mapped into [0,1].
type NormalizeMode int

const (
	// Local rescales using the observed min/max of the generated map.
	Local NormalizeMode = iota

	// Global rescales using the theoretical maximum amplitude.
	Global
)

const (
	modeLocal  = "local"
	modeGlobal = "global"
)

// String returns the lower-case mode name.
func (m NormalizeMode) String() string {
	switch m {
	case Local:
		return modeLocal
	case Global:
		return modeGlobal
	default:
		return fmt.Sprintf("NormalizeMode(%d)", int(m))
	}
}

// ParseNormalizeMode parses "local" or "global" (case-insensitive).
func ParseNormalizeMode(s string) (NormalizeMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case modeLocal:
		return Local, nil
	case modeGlobal:
		return Global, nil
	default:
		return Local, fmt.Errorf("%q: %w", s, ErrUnknownNormalizeMode)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (m NormalizeMode) MarshalText() ([]byte, error) {
	if m != Local && m != Global {
		return nil, fmt.Errorf("%d: %w", int(m), ErrUnknownNormalizeMode)
	}

	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *NormalizeMode) UnmarshalText(b []byte) error {
	parsed, err := ParseNormalizeMode(string(b))
	if err != nil {
		return err
	}
	*m = parsed

	return nil
}

// Offset is a 2D sampling offset.
type Offset struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Parameter guards.
const (
	// MinScale replaces a non-positive Scale.
	MinScale = 1e-4

	// MinOctaves and MinLacunarity are the entry coercion floors.
	MinOctaves    = 1
	MinLacunarity = 1.0
)

// Params are the fractal parameters of one Generate call.
type Params struct {
	Seed        int64         `json:"seed"`
	Scale       float64       `json:"scale"`
	Octaves     int           `json:"octaves"`
	Persistence float64       `json:"persistence"` // per-octave amplitude factor, [0,1]
	Lacunarity  float64       `json:"lacunarity"`  // per-octave frequency factor, >= 1
	Offset      Offset        `json:"offset"`
	Mode        NormalizeMode `json:"normalize_mode"`

	// Runway, when non-nil and Enabled, is carved after normalization.
	Runway *runway.Settings `json:"runway,omitempty"`
}

// DefaultParams returns a four-octave Local configuration.
func DefaultParams() Params {
	return Params{
		Seed:        0,
		Scale:       50,
		Octaves:     4,
		Persistence: 0.5,
		Lacunarity:  2,
		Mode:        Local,
	}
}

// coerced applies the entry guards: Octaves >= 1, Lacunarity >= 1, Scale > 0.
func (p Params) coerced() Params {
	if p.Octaves < MinOctaves {
		p.Octaves = MinOctaves
	}
	if p.Lacunarity < MinLacunarity {
		p.Lacunarity = MinLacunarity
	}
	if p.Scale <= 0 {
		p.Scale = MinScale
	}

	return p
}
