// Package config loads, validates and saves heightfield configuration files.
//
// A Config is validated once (Validate) and then treated as immutable; there
// is no live re-validation. Missing files fall back to DefaultConfig, and a
// few environment variables override file values.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/heightfield/noise"
	"github.com/katalvlaran/heightfield/runway"
)

// ErrInvalidConfig is wrapped by every Validate failure.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Environment overrides.
const (
	EnvSeed       = "HEIGHTFIELD_SEED"
	EnvStoreDSN   = "HEIGHTFIELD_STORE_DSN"
	EnvLogLevel   = "HEIGHTFIELD_LOG_LEVEL"
	EnvServerAddr = "HEIGHTFIELD_SERVER_ADDR"
)

// Config holds all heightfield configuration.
type Config struct {
	Map     MapConfig     `yaml:"map"`
	Noise   NoiseConfig   `yaml:"noise"`
	Runway  RunwayConfig  `yaml:"runway"`
	Output  OutputConfig  `yaml:"output"`
	Server  ServerConfig  `yaml:"server"`
	Store   StoreConfig   `yaml:"store"`
	Logging LoggingConfig `yaml:"logging"`
}

// MapConfig sets the grid dimensions.
type MapConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// NoiseConfig mirrors noise.Params.
type NoiseConfig struct {
	Seed          int64   `yaml:"seed"`
	Scale         float64 `yaml:"scale"`
	Octaves       int     `yaml:"octaves"`
	Persistence   float64 `yaml:"persistence"`
	Lacunarity    float64 `yaml:"lacunarity"`
	OffsetX       float64 `yaml:"offset_x"`
	OffsetY       float64 `yaml:"offset_y"`
	NormalizeMode string  `yaml:"normalize_mode"` // local, global
	Workers       int     `yaml:"workers"`
}

// RunwayConfig mirrors runway.Settings.
type RunwayConfig struct {
	Enabled         bool    `yaml:"enabled"`
	XPos            float64 `yaml:"x_pos"`
	YPos            float64 `yaml:"y_pos"`
	XLength         float64 `yaml:"x_length"`
	YLength         float64 `yaml:"y_length"`
	SmoothRadius    int     `yaml:"smooth_radius"`
	SmoothIntensity int     `yaml:"smooth_intensity"`
	LegacyBounds    bool    `yaml:"legacy_bounds"`
}

// OutputConfig selects the export format and destination.
type OutputConfig struct {
	Format string `yaml:"format"` // png, json
	Path   string `yaml:"path"`
}

// ServerConfig configures the websocket preview server.
type ServerConfig struct {
	Addr       string `yaml:"addr"`
	MaxCells   int    `yaml:"max_cells"`
	MaxOctaves int    `yaml:"max_octaves"`
}

// StoreConfig selects where generated maps are persisted.
type StoreConfig struct {
	Driver string `yaml:"driver"` // json, postgres
	DSN    string `yaml:"dsn"`    // file path for json, connection string for postgres
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	p := noise.DefaultParams()
	rw := runway.DefaultSettings()

	return &Config{
		Map: MapConfig{Width: 256, Height: 256},
		Noise: NoiseConfig{
			Seed:          p.Seed,
			Scale:         p.Scale,
			Octaves:       p.Octaves,
			Persistence:   p.Persistence,
			Lacunarity:    p.Lacunarity,
			NormalizeMode: p.Mode.String(),
			Workers:       noise.DefaultWorkers,
		},
		Runway: RunwayConfig{
			Enabled:         rw.Enabled,
			XPos:            rw.XPos,
			YPos:            rw.YPos,
			XLength:         rw.XLength,
			YLength:         rw.YLength,
			SmoothRadius:    rw.SmoothRadius,
			SmoothIntensity: rw.SmoothIntensity,
		},
		Output: OutputConfig{Format: "png", Path: "heightmap.png"},
		Server: ServerConfig{Addr: ":8080", MaxCells: 1024 * 1024, MaxOctaves: 16},
		Store:  StoreConfig{Driver: "json", DSN: "heightmaps.json"},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load loads configuration from a YAML file.
// A missing file yields DefaultConfig; environment overrides apply either way.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes the configuration as YAML, creating parent directories.
func (c *Config) Save(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

func (c *Config) applyEnvOverrides() error {
	if v := os.Getenv(EnvSeed); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%s=%q: %w", EnvSeed, v, ErrInvalidConfig)
		}
		c.Noise.Seed = seed
	}
	if v := os.Getenv(EnvStoreDSN); v != "" {
		c.Store.DSN = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv(EnvServerAddr); v != "" {
		c.Server.Addr = v
	}

	return nil
}

// Validate checks the whole configuration once. Every failure wraps
// ErrInvalidConfig and names the offending field.
func (c *Config) Validate() error {
	if c.Map.Width <= 0 || c.Map.Height <= 0 {
		return fmt.Errorf("map: %dx%d: %w", c.Map.Width, c.Map.Height, ErrInvalidConfig)
	}
	if c.Noise.Persistence < 0 || c.Noise.Persistence > 1 {
		return fmt.Errorf("noise.persistence=%g: %w", c.Noise.Persistence, ErrInvalidConfig)
	}
	if c.Noise.Octaves < noise.MinOctaves {
		return fmt.Errorf("noise.octaves=%d: %w", c.Noise.Octaves, ErrInvalidConfig)
	}
	if c.Noise.Lacunarity < noise.MinLacunarity {
		return fmt.Errorf("noise.lacunarity=%g: %w", c.Noise.Lacunarity, ErrInvalidConfig)
	}
	if c.Noise.Workers < 1 {
		return fmt.Errorf("noise.workers=%d: %w", c.Noise.Workers, ErrInvalidConfig)
	}
	if _, err := noise.ParseNormalizeMode(c.Noise.NormalizeMode); err != nil {
		return fmt.Errorf("noise.normalize_mode: %v: %w", err, ErrInvalidConfig)
	}
	if c.Runway.Enabled {
		if err := c.RunwaySettings().Validate(); err != nil {
			return fmt.Errorf("runway: %v: %w", err, ErrInvalidConfig)
		}
	}
	switch c.Output.Format {
	case "png", "json":
	default:
		return fmt.Errorf("output.format=%q: %w", c.Output.Format, ErrInvalidConfig)
	}
	switch c.Store.Driver {
	case "json", "postgres":
	default:
		return fmt.Errorf("store.driver=%q: %w", c.Store.Driver, ErrInvalidConfig)
	}
	if c.Server.MaxCells <= 0 {
		return fmt.Errorf("server.max_cells=%d: %w", c.Server.MaxCells, ErrInvalidConfig)
	}
	if c.Server.MaxOctaves <= 0 {
		return fmt.Errorf("server.max_octaves=%d: %w", c.Server.MaxOctaves, ErrInvalidConfig)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level=%q: %w", c.Logging.Level, ErrInvalidConfig)
	}

	return nil
}

// RunwaySettings converts the runway section.
func (c *Config) RunwaySettings() runway.Settings {
	return runway.Settings{
		Enabled:         c.Runway.Enabled,
		XPos:            c.Runway.XPos,
		YPos:            c.Runway.YPos,
		XLength:         c.Runway.XLength,
		YLength:         c.Runway.YLength,
		SmoothRadius:    c.Runway.SmoothRadius,
		SmoothIntensity: c.Runway.SmoothIntensity,
		LegacyBounds:    c.Runway.LegacyBounds,
	}
}

// NoiseParams converts the noise and runway sections. Call Validate first;
// an unparsable normalize mode falls back to Local here.
func (c *Config) NoiseParams() noise.Params {
	mode, _ := noise.ParseNormalizeMode(c.Noise.NormalizeMode)
	p := noise.Params{
		Seed:        c.Noise.Seed,
		Scale:       c.Noise.Scale,
		Octaves:     c.Noise.Octaves,
		Persistence: c.Noise.Persistence,
		Lacunarity:  c.Noise.Lacunarity,
		Offset:      noise.Offset{X: c.Noise.OffsetX, Y: c.Noise.OffsetY},
		Mode:        mode,
	}
	if c.Runway.Enabled {
		rw := c.RunwaySettings()
		p.Runway = &rw
	}

	return p
}
