package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/heightfield/config"
	"github.com/katalvlaran/heightfield/noise"
)

func TestDefaultConfigValidates(t *testing.T) {
	require.NoError(t, config.DefaultConfig().Validate())
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)

	if diff := cmp.Diff(config.DefaultConfig(), cfg); diff != "" {
		t.Fatalf("Load(missing) mismatch (-want +got):\n%s", diff)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "heightfield.yaml")

	want := config.DefaultConfig()
	want.Map.Width = 128
	want.Noise.Seed = 42
	want.Noise.NormalizeMode = "global"
	want.Runway.Enabled = true
	want.Runway.LegacyBounds = true
	want.Output.Format = "json"
	require.NoError(t, want.Save(path))

	got, err := config.Load(path)
	require.NoError(t, err)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partial.yaml")
	require.NoError(t, os.WriteFile(path, []byte("noise:\n  seed: 7\n  octaves: 6\n"), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, int64(7), cfg.Noise.Seed)
	assert.Equal(t, 6, cfg.Noise.Octaves)
	assert.Equal(t, 0.5, cfg.Noise.Persistence)
	assert.Equal(t, 256, cfg.Map.Width)
}

func TestLoadMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("map: [unclosed"), 0o644))

	_, err := config.Load(path)
	require.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv(config.EnvSeed, "1234")
	t.Setenv(config.EnvStoreDSN, "postgres://localhost/heightfield")
	t.Setenv(config.EnvLogLevel, "debug")
	t.Setenv(config.EnvServerAddr, "127.0.0.1:9090")

	cfg, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, int64(1234), cfg.Noise.Seed)
	assert.Equal(t, "postgres://localhost/heightfield", cfg.Store.DSN)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "127.0.0.1:9090", cfg.Server.Addr)
}

func TestEnvSeedInvalid(t *testing.T) {
	t.Setenv(config.EnvSeed, "forty-two")

	_, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestValidateRejects(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{"ZeroWidth", func(c *config.Config) { c.Map.Width = 0 }},
		{"PersistenceAboveOne", func(c *config.Config) { c.Noise.Persistence = 1.5 }},
		{"NoOctaves", func(c *config.Config) { c.Noise.Octaves = 0 }},
		{"LowLacunarity", func(c *config.Config) { c.Noise.Lacunarity = 0.5 }},
		{"NoWorkers", func(c *config.Config) { c.Noise.Workers = 0 }},
		{"UnknownMode", func(c *config.Config) { c.Noise.NormalizeMode = "planet" }},
		{"RunwayRadius", func(c *config.Config) { c.Runway.Enabled = true; c.Runway.SmoothRadius = 20 }},
		{"OutputFormat", func(c *config.Config) { c.Output.Format = "tiff" }},
		{"StoreDriver", func(c *config.Config) { c.Store.Driver = "redis" }},
		{"MaxCells", func(c *config.Config) { c.Server.MaxCells = 0 }},
		{"MaxOctaves", func(c *config.Config) { c.Server.MaxOctaves = 0 }},
		{"LogLevel", func(c *config.Config) { c.Logging.Level = "loud" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.DefaultConfig()
			tc.mutate(cfg)
			require.ErrorIs(t, cfg.Validate(), config.ErrInvalidConfig)
		})
	}
}

// A disabled runway is not validated: its settings are meaningless.
func TestValidateIgnoresDisabledRunway(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Runway.SmoothRadius = 99
	require.NoError(t, cfg.Validate())
}

func TestNoiseParams(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Noise.Seed = 42
	cfg.Noise.OffsetX, cfg.Noise.OffsetY = 3, -4
	cfg.Noise.NormalizeMode = "global"

	p := cfg.NoiseParams()
	assert.Equal(t, int64(42), p.Seed)
	assert.Equal(t, noise.Global, p.Mode)
	assert.Equal(t, noise.Offset{X: 3, Y: -4}, p.Offset)
	assert.Nil(t, p.Runway)

	cfg.Runway.Enabled = true
	p = cfg.NoiseParams()
	require.NotNil(t, p.Runway)
	assert.True(t, p.Runway.Enabled)
	assert.Equal(t, cfg.Runway.SmoothRadius, p.Runway.SmoothRadius)
}
