// Package export encodes heightmaps for consumers: a 16-bit grayscale PNG for
// image tools and engines, and a JSON document that round-trips losslessly.
package export

import (
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
	"strings"

	"github.com/katalvlaran/heightfield/grid"
)

var (
	// ErrUnknownFormat indicates an unsupported output format name.
	ErrUnknownFormat = errors.New("export: unknown format")

	// ErrMalformed indicates a JSON document whose rows do not match its header.
	ErrMalformed = errors.New("export: malformed heightmap document")
)

// Format is an output encoding.
type Format int

const (
	FormatPNG Format = iota
	FormatJSON
)

// String returns the format name used in configs and flags.
func (f Format) String() string {
	switch f {
	case FormatPNG:
		return "png"
	case FormatJSON:
		return "json"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// ParseFormat parses "png" or "json" (case-insensitive).
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "png":
		return FormatPNG, nil
	case "json":
		return FormatJSON, nil
	default:
		return FormatPNG, fmt.Errorf("%q: %w", s, ErrUnknownFormat)
	}
}

// Meta describes how a heightmap was produced.
type Meta struct {
	Seed   int64  `json:"seed"`
	Mode   string `json:"normalize_mode,omitempty"`
	Runway bool   `json:"runway,omitempty"`
}

// document is the JSON layout: rows[y][x].
type document struct {
	Width  int         `json:"width"`
	Height int         `json:"height"`
	Meta   Meta        `json:"meta"`
	Rows   [][]float64 `json:"rows"`
}

// Write encodes g in format f.
func Write(w io.Writer, f Format, g *grid.Grid, meta Meta) error {
	switch f {
	case FormatPNG:
		return WritePNG(w, g)
	case FormatJSON:
		return WriteJSON(w, g, meta)
	default:
		return fmt.Errorf("%s: %w", f, ErrUnknownFormat)
	}
}

// WritePNG encodes g as a 16-bit grayscale image, one pixel per cell.
// Values are clamped to [0,1] first, so Global maps above 1 saturate to white.
func WritePNG(w io.Writer, g *grid.Grid) error {
	width, height := g.Shape()
	img := image.NewGray16(image.Rect(0, 0, width, height))
	data := g.Data()
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			v := math.Min(math.Max(data[y*width+x], 0), 1)
			img.SetGray16(x, y, color.Gray16{Y: uint16(math.Round(v * math.MaxUint16))})
		}
	}
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("export: encode png: %w", err)
	}

	return nil
}

// WriteJSON encodes g and meta as an indented JSON document.
func WriteJSON(w io.Writer, g *grid.Grid, meta Meta) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	doc := document{Width: g.Width(), Height: g.Height(), Meta: meta, Rows: g.Rows()}
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("export: encode json: %w", err)
	}

	return nil
}

// ReadJSON decodes a document written by WriteJSON.
func ReadJSON(r io.Reader) (*grid.Grid, Meta, error) {
	var doc document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, Meta{}, fmt.Errorf("export: decode json: %w", err)
	}
	g, err := grid.FromRows(doc.Rows)
	if err != nil {
		return nil, Meta{}, fmt.Errorf("export: %v: %w", err, ErrMalformed)
	}
	if g.Width() != doc.Width || g.Height() != doc.Height {
		return nil, Meta{}, fmt.Errorf("export: header %dx%d, rows %dx%d: %w",
			doc.Width, doc.Height, g.Width(), g.Height(), ErrMalformed)
	}

	return g, doc.Meta, nil
}
