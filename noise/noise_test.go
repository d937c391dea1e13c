package noise_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/heightfield/grid"
	"github.com/katalvlaran/heightfield/noise"
	"github.com/katalvlaran/heightfield/runway"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixtureParams is the 64×64 regression configuration:
// seed 42, 4 octaves, persistence 0.5, lacunarity 2, scale 50, Global.
func fixtureParams() noise.Params {
	return noise.Params{
		Seed:        42,
		Scale:       50,
		Octaves:     4,
		Persistence: 0.5,
		Lacunarity:  2,
		Mode:        noise.Global,
	}
}

// mustGenerate calls Generate or fails the test.
func mustGenerate(t *testing.T, w, h int, p noise.Params, opts ...noise.Option) *grid.Grid {
	t.Helper()
	g, err := noise.Generate(w, h, p, opts...)
	require.NoError(t, err)
	require.NotNil(t, g)

	return g
}

// TestGenerateInvalidDimensions verifies the only failure mode.
func TestGenerateInvalidDimensions(t *testing.T) {
	cases := []struct {
		name string
		w, h int
	}{
		{"ZeroWidth", 0, 8},
		{"ZeroHeight", 8, 0},
		{"Negative", -1, -1},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			g, err := noise.Generate(tc.w, tc.h, noise.DefaultParams())
			require.ErrorIs(t, err, noise.ErrInvalidDimensions)
			require.Nil(t, g)
		})
	}
}

// TestGenerateDeterministic: same inputs, bit-identical grids.
func TestGenerateDeterministic(t *testing.T) {
	p := fixtureParams()
	a := mustGenerate(t, 48, 32, p)
	b := mustGenerate(t, 48, 32, p)

	require.Equal(t, a.Data(), b.Data())
}

// TestGenerateSeedChangesOutput guards against the seed being ignored.
func TestGenerateSeedChangesOutput(t *testing.T) {
	p := fixtureParams()
	a := mustGenerate(t, 32, 32, p)
	p.Seed = 43
	b := mustGenerate(t, 32, 32, p)

	require.NotEqual(t, a.Data(), b.Data())
}

// TestLocalRange: Local mode spans exactly [0,1] for any octave count.
func TestLocalRange(t *testing.T) {
	for octaves := 1; octaves <= 6; octaves++ {
		p := fixtureParams()
		p.Mode = noise.Local
		p.Octaves = octaves
		g := mustGenerate(t, 40, 40, p)

		lo, hi := g.MinMax()
		assert.Equal(t, 0.0, lo, "octaves=%d", octaves)
		assert.Equal(t, 1.0, hi, "octaves=%d", octaves)
	}
}

// TestLacunarityCoercion: lacunarity below 1 behaves as 1.
func TestLacunarityCoercion(t *testing.T) {
	p := fixtureParams()
	p.Lacunarity = 1
	want := mustGenerate(t, 32, 32, p)

	p.Lacunarity = 0.5
	got := mustGenerate(t, 32, 32, p)

	require.Equal(t, want.Data(), got.Data())
}

// TestOctaveCoercion: zero or negative octave counts behave as one octave.
func TestOctaveCoercion(t *testing.T) {
	p := fixtureParams()
	p.Octaves = 1
	want := mustGenerate(t, 32, 32, p)

	for _, n := range []int{0, -3} {
		p.Octaves = n
		got := mustGenerate(t, 32, 32, p)
		require.Equal(t, want.Data(), got.Data(), "octaves=%d", n)
	}
}

// TestScaleGuard: non-positive scales are replaced by MinScale.
func TestScaleGuard(t *testing.T) {
	p := fixtureParams()
	p.Scale = noise.MinScale
	want := mustGenerate(t, 16, 16, p)

	for _, s := range []float64{0, -50} {
		p.Scale = s
		got := mustGenerate(t, 16, 16, p)
		require.Equal(t, want.Data(), got.Data(), "scale=%g", s)
		for _, v := range got.Data() {
			require.False(t, math.IsNaN(v) || math.IsInf(v, 0))
		}
	}
}

// TestOctaveOffsets covers range, determinism, prefix stability and the
// global offset combination (x added, y subtracted).
func TestOctaveOffsets(t *testing.T) {
	a := noise.OctaveOffsets(7, 5, noise.Offset{})
	b := noise.OctaveOffsets(7, 5, noise.Offset{})
	require.Len(t, a, 5)
	require.Equal(t, a, b)

	for _, o := range a {
		assert.GreaterOrEqual(t, o.X, -100000.0)
		assert.Less(t, o.X, 100000.0)
		assert.Equal(t, math.Trunc(o.X), o.X)
	}

	prefix := noise.OctaveOffsets(7, 3, noise.Offset{})
	require.Equal(t, a[:3], prefix)

	shifted := noise.OctaveOffsets(7, 5, noise.Offset{X: 10, Y: 20})
	for i := range a {
		assert.Equal(t, a[i].X+10, shifted[i].X)
		assert.Equal(t, a[i].Y-20, shifted[i].Y)
	}
}

// TestMaxPossibleAmplitude checks Σ persistence^i.
func TestMaxPossibleAmplitude(t *testing.T) {
	assert.Equal(t, 1.875, noise.MaxPossibleAmplitude(4, 0.5))
	assert.Equal(t, 1.0, noise.MaxPossibleAmplitude(1, 0.5))
	assert.Equal(t, 3.0, noise.MaxPossibleAmplitude(3, 1))
	assert.Equal(t, 1.0, noise.MaxPossibleAmplitude(5, 0))
}

// TestGlobalFormula pins (raw+1)/(max/0.9) with a constant source, including
// the lower clamp and the intentionally missing upper clamp.
func TestGlobalFormula(t *testing.T) {
	p := fixtureParams() // 4 octaves, persistence 0.5 ⇒ max amplitude 1.875
	denom := 1.875 / noise.GlobalHeadroom

	cases := []struct {
		name   string
		sample float64
		want   float64
	}{
		{"Midpoint", 0.5, 1 / denom},
		{"Quarter", 0.75, (0.5*1.875 + 1) / denom},
		{"FloorAtZero", 0, 0},
		{"AboveOne", 1, (1.875 + 1) / denom},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			src := noise.SourceFunc(func(x, y float64) float64 { return tc.sample })
			g := mustGenerate(t, 4, 4, p, noise.WithSource(src))
			for _, v := range g.Data() {
				assert.InDelta(t, tc.want, v, 1e-12)
			}
		})
	}
}

// TestLocalFlatField: a constant source has min == max and maps to zero.
func TestLocalFlatField(t *testing.T) {
	p := fixtureParams()
	p.Mode = noise.Local
	src := noise.SourceFunc(func(x, y float64) float64 { return 0.3 })

	g := mustGenerate(t, 8, 8, p, noise.WithSource(src))
	for _, v := range g.Data() {
		require.Equal(t, 0.0, v)
	}
}

// TestSampleCoordinates checks centring, scale and offsets with a recording source.
func TestSampleCoordinates(t *testing.T) {
	p := noise.Params{Seed: 1, Scale: 2, Octaves: 1, Persistence: 0.5, Lacunarity: 2, Mode: noise.Local}
	off := noise.OctaveOffsets(p.Seed, 1, p.Offset)[0]

	type pt struct{ x, y float64 }
	var got []pt
	src := noise.SourceFunc(func(x, y float64) float64 {
		got = append(got, pt{x, y})
		return 0.5
	})
	mustGenerate(t, 2, 1, p, noise.WithSource(src))

	require.Len(t, got, 2)
	assert.Equal(t, pt{(-1 + off.X) / 2, (-0.5 + off.Y) / 2}, got[0])
	assert.Equal(t, pt{(0 + off.X) / 2, (-0.5 + off.Y) / 2}, got[1])
}

// TestWorkersBitIdentical: parallel sampling matches the sequential result.
func TestWorkersBitIdentical(t *testing.T) {
	for _, mode := range []noise.NormalizeMode{noise.Local, noise.Global} {
		p := fixtureParams()
		p.Mode = mode
		want := mustGenerate(t, 37, 29, p)
		for _, n := range []int{2, 4, 7, 64} {
			got := mustGenerate(t, 37, 29, p, noise.WithWorkers(n))
			require.Equal(t, want.Data(), got.Data(), "mode=%s workers=%d", mode, n)
		}
	}
}

// TestWithWorkersPanics: nonsensical worker counts are programmer errors.
func TestWithWorkersPanics(t *testing.T) {
	require.Panics(t, func() { noise.WithWorkers(0) })
	require.Panics(t, func() { noise.WithSource(nil) })
}

// TestGlobalFixture is the 64×64 seed-42 regression scenario: every value in [0,1].
func TestGlobalFixture(t *testing.T) {
	g := mustGenerate(t, 64, 64, fixtureParams())

	lo, hi := g.MinMax()
	assert.GreaterOrEqual(t, lo, 0.0)
	assert.LessOrEqual(t, hi, 1.0)
}

// TestRunwayFixture runs the fixture with a centred runway and checks that
// the corridor trends to FlatHeight and that roughening hits every
// off-corridor cell at or above the threshold.
func TestRunwayFixture(t *testing.T) {
	const size = 64
	rw := runway.Settings{
		Enabled: true, XPos: 0.5, YPos: 0.5, XLength: 0.2, YLength: 0.2,
		SmoothRadius: 2, SmoothIntensity: 1,
	}
	base := mustGenerate(t, size, size, fixtureParams())

	p := fixtureParams()
	p.Runway = &rw
	shaped := mustGenerate(t, size, size, p)

	// Reference pre-roughen grid: same flatten + smooth applied to the base map.
	r := runway.Bounds(size, size, rw)
	pre := base.Clone()
	runway.Flatten(pre, r)
	runway.Smooth(pre, r, rw.SmoothRadius)

	var devBefore, devAfter float64
	var inside int
	shaped.Do(func(x, y int, v float64) bool {
		idx := shaped.Index(x, y)
		p0 := pre.Data()[idx]
		if p0 >= runway.RoughThreshold {
			assert.Greater(t, v, p0, "(%d,%d)", x, y)
			assert.Less(t, v, p0+runway.RoughAmplitude, "(%d,%d)", x, y)
		} else {
			assert.Equal(t, p0, v, "(%d,%d)", x, y)
		}
		if r.Contains(x, y) {
			inside++
			devBefore += math.Abs(base.Data()[idx] - runway.FlatHeight)
			devAfter += math.Abs(v - runway.FlatHeight)
		}
		return true
	})
	require.Equal(t, 13*13, inside)
	assert.Less(t, devAfter, devBefore)

	// The core of the corridor, clear of the smoothing band, is flat + rough.
	for y := 29; y <= 35; y++ {
		for x := 29; x <= 35; x++ {
			v, err := shaped.At(x, y)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, v, runway.FlatHeight)
			assert.Less(t, v, runway.FlatHeight+runway.RoughAmplitude)
		}
	}
}

// TestRunwayDisabled: a disabled runway leaves the map untouched.
func TestRunwayDisabled(t *testing.T) {
	want := mustGenerate(t, 32, 32, fixtureParams())

	p := fixtureParams()
	rw := runway.DefaultSettings()
	rw.Enabled = false
	p.Runway = &rw
	got := mustGenerate(t, 32, 32, p)

	require.Equal(t, want.Data(), got.Data())
}

// TestParseNormalizeMode covers names, case folding and the unknown sentinel.
func TestParseNormalizeMode(t *testing.T) {
	m, err := noise.ParseNormalizeMode("Global")
	require.NoError(t, err)
	require.Equal(t, noise.Global, m)

	m, err = noise.ParseNormalizeMode(" local ")
	require.NoError(t, err)
	require.Equal(t, noise.Local, m)

	_, err = noise.ParseNormalizeMode("planet")
	require.ErrorIs(t, err, noise.ErrUnknownNormalizeMode)

	var back noise.NormalizeMode
	text, err := noise.Global.MarshalText()
	require.NoError(t, err)
	require.NoError(t, back.UnmarshalText(text))
	require.Equal(t, noise.Global, back)
}

// TestPerlinSourceRange samples a dense lattice and checks [0,1].
func TestPerlinSourceRange(t *testing.T) {
	src := noise.NewPerlinSource(noise.DefaultPermutationSeed)
	for i := 0; i < 2000; i++ {
		x := float64(i)*0.137 - 50
		y := float64(i)*0.071 + 13
		v := src.Sample(x, y)
		require.GreaterOrEqual(t, v, 0.0)
		require.LessOrEqual(t, v, 1.0)
	}
}
