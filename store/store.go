// Package store persists generated heightmaps by name.
package store

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/katalvlaran/heightfield/grid"
	"github.com/katalvlaran/heightfield/noise"
)

var (
	// ErrNotFound indicates no heightmap is stored under the requested name.
	ErrNotFound = errors.New("store: heightmap not found")

	// ErrUnknownDriver indicates an unsupported store driver name.
	ErrUnknownDriver = errors.New("store: unknown driver")
)

// Storage drivers accepted by Open.
const (
	DriverJSON     = "json"
	DriverPostgres = "postgres"
)

// Store defines the interface for heightmap persistence.
type Store interface {
	Save(rec *Record) error
	Load(name string) (*Record, error)
	List() ([]string, error)
	Close() error
}

// Record is one persisted heightmap with the parameters that produced it.
type Record struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Width     int       `json:"width"`
	Height    int       `json:"height"`
	Seed      int64     `json:"seed"`
	Mode      string    `json:"normalize_mode"`
	Runway    bool      `json:"runway"`
	Heights   []float64 `json:"heights"` // row-major, y*width + x
	CreatedAt time.Time `json:"created_at"`
}

// NewRecord snapshots g (copied) under name.
func NewRecord(name string, g *grid.Grid, p noise.Params) *Record {
	heights := make([]float64, g.Len())
	copy(heights, g.Data())

	return &Record{
		ID:        uuid.NewString(),
		Name:      name,
		Width:     g.Width(),
		Height:    g.Height(),
		Seed:      p.Seed,
		Mode:      p.Mode.String(),
		Runway:    p.Runway != nil && p.Runway.Enabled,
		Heights:   heights,
		CreatedAt: time.Now().UTC(),
	}
}

// clone returns a deep copy of r.
func (r *Record) clone() *Record {
	c := *r
	if r.Heights != nil {
		c.Heights = make([]float64, len(r.Heights))
		copy(c.Heights, r.Heights)
	}

	return &c
}

// Grid rebuilds the heightmap.
func (r *Record) Grid() (*grid.Grid, error) {
	return grid.FromData(r.Width, r.Height, r.Heights)
}

// Open creates a store for driver: a file path for "json", a connection
// string for "postgres".
func Open(driver, dsn string) (Store, error) {
	switch driver {
	case DriverJSON:
		return NewJSONStore(dsn)
	case DriverPostgres:
		return NewPostgresStore(dsn)
	default:
		return nil, fmt.Errorf("%q: %w", driver, ErrUnknownDriver)
	}
}
