package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katalvlaran/heightfield/config"
	"github.com/katalvlaran/heightfield/export"
	"github.com/katalvlaran/heightfield/grid"
	"github.com/katalvlaran/heightfield/noise"
	"github.com/katalvlaran/heightfield/store"
)

type generateFlags struct {
	seed         int64
	width        int
	height       int
	mode         string
	runway       bool
	legacyBounds bool
	out          string
	format       string
	workers      int
	save         string
}

func newGenerateCmd(a *app) *cobra.Command {
	f := &generateFlags{}
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a heightmap and write it to disk",
		Long: `Generates one heightmap from the config file plus flag overrides.

Examples:
  heightfield generate --seed 42 --out terrain.png
  heightfield generate --mode global --runway --format json --out strip.json --save strip`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f.apply(cmd, a.cfg)
			return a.generate(cmd, f.save)
		},
	}

	fl := cmd.Flags()
	fl.Int64Var(&f.seed, "seed", 0, "terrain seed")
	fl.IntVar(&f.width, "width", 0, "map width in cells")
	fl.IntVar(&f.height, "height", 0, "map height in cells")
	fl.StringVar(&f.mode, "mode", "", "normalize mode: local or global")
	fl.BoolVar(&f.runway, "runway", false, "carve the configured runway corridor")
	fl.BoolVar(&f.legacyBounds, "legacy-bounds", false, "use the historical runway rectangle formula")
	fl.StringVarP(&f.out, "out", "o", "", "output file")
	fl.StringVar(&f.format, "format", "", "output format: png or json (default: from --out extension or config)")
	fl.IntVar(&f.workers, "workers", 0, "goroutines used for noise sampling")
	fl.StringVar(&f.save, "save", "", "also persist the map in the configured store under this name")

	return cmd
}

// apply copies explicitly set flags over cfg.
func (f *generateFlags) apply(cmd *cobra.Command, cfg *config.Config) {
	changed := cmd.Flags().Changed
	if changed("seed") {
		cfg.Noise.Seed = f.seed
	}
	if changed("width") {
		cfg.Map.Width = f.width
	}
	if changed("height") {
		cfg.Map.Height = f.height
	}
	if changed("mode") {
		cfg.Noise.NormalizeMode = f.mode
	}
	if changed("runway") {
		cfg.Runway.Enabled = f.runway
	}
	if changed("legacy-bounds") {
		cfg.Runway.LegacyBounds = f.legacyBounds
	}
	if changed("workers") {
		cfg.Noise.Workers = f.workers
	}
	if changed("out") {
		cfg.Output.Path = f.out
		if !changed("format") {
			if ext := filepath.Ext(f.out); ext != "" {
				if format, err := export.ParseFormat(ext[1:]); err == nil {
					cfg.Output.Format = format.String()
				}
			}
		}
	}
	if changed("format") {
		cfg.Output.Format = f.format
	}
}

func (a *app) generate(cmd *cobra.Command, saveName string) error {
	if err := a.cfg.Validate(); err != nil {
		return err
	}
	p := a.cfg.NoiseParams()

	g, err := noise.Generate(a.cfg.Map.Width, a.cfg.Map.Height, p,
		noise.WithWorkers(a.cfg.Noise.Workers), noise.WithLogger(a.logger))
	if err != nil {
		return err
	}
	lo, hi := g.MinMax()
	a.logger.Info("Generated heightmap",
		zap.Int("width", g.Width()),
		zap.Int("height", g.Height()),
		zap.Int64("seed", p.Seed),
		zap.Stringer("mode", p.Mode),
		zap.Bool("runway", p.Runway != nil),
		zap.Float64("min", lo),
		zap.Float64("max", hi))

	format, err := export.ParseFormat(a.cfg.Output.Format)
	if err != nil {
		return err
	}
	meta := export.Meta{Seed: p.Seed, Mode: p.Mode.String(), Runway: p.Runway != nil}
	if err := writeGrid(a.cfg.Output.Path, format, g, meta); err != nil {
		return err
	}

	if saveName != "" {
		st, err := store.Open(a.cfg.Store.Driver, a.cfg.Store.DSN)
		if err != nil {
			return err
		}
		defer st.Close()
		if err := st.Save(store.NewRecord(saveName, g, p)); err != nil {
			return err
		}
		a.logger.Info("Stored heightmap", zap.String("name", saveName), zap.String("driver", a.cfg.Store.Driver))
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %dx%d heightmap (%s) to %s\n", g.Width(), g.Height(), format, a.cfg.Output.Path)

	return nil
}

// writeGrid encodes g into path, creating parent directories.
func writeGrid(path string, format export.Format, g *grid.Grid, meta export.Meta) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := export.Write(f, format, g, meta); err != nil {
		_ = f.Close()
		return err
	}

	return f.Close()
}
