package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq" // PostgreSQL driver and array codecs
)

// PostgresStore handles heightmap persistence using PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore connects, pings and initializes the schema.
func NewPostgresStore(connectionString string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	store := &PostgresStore{db: db}
	if err := store.initSchema(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return store, nil
}

const schema = `
	CREATE TABLE IF NOT EXISTS heightmaps (
		id TEXT PRIMARY KEY,
		name TEXT UNIQUE NOT NULL,
		width INTEGER NOT NULL,
		height INTEGER NOT NULL,
		seed BIGINT NOT NULL,
		normalize_mode TEXT NOT NULL,
		runway BOOLEAN NOT NULL DEFAULT FALSE,
		heights DOUBLE PRECISION[] NOT NULL,
		created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
	);`

func (ps *PostgresStore) initSchema() error {
	_, err := ps.db.Exec(schema)
	return err
}

const upsertHeightmap = `
	INSERT INTO heightmaps (id, name, width, height, seed, normalize_mode, runway, heights, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	ON CONFLICT (name) DO UPDATE SET
		id = EXCLUDED.id,
		width = EXCLUDED.width,
		height = EXCLUDED.height,
		seed = EXCLUDED.seed,
		normalize_mode = EXCLUDED.normalize_mode,
		runway = EXCLUDED.runway,
		heights = EXCLUDED.heights,
		created_at = EXCLUDED.created_at`

// Save upserts rec by name.
func (ps *PostgresStore) Save(rec *Record) error {
	_, err := ps.db.Exec(upsertHeightmap,
		rec.ID, rec.Name, rec.Width, rec.Height, rec.Seed, rec.Mode, rec.Runway,
		pq.Array(rec.Heights), rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save heightmap %q: %w", rec.Name, err)
	}

	return nil
}

// Load returns the record stored under name.
func (ps *PostgresStore) Load(name string) (*Record, error) {
	rec := &Record{}
	var heights pq.Float64Array
	err := ps.db.QueryRow(`
		SELECT id, name, width, height, seed, normalize_mode, runway, heights, created_at
		FROM heightmaps WHERE name = $1`, name).
		Scan(&rec.ID, &rec.Name, &rec.Width, &rec.Height, &rec.Seed, &rec.Mode, &rec.Runway, &heights, &rec.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%q: %w", name, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load heightmap %q: %w", name, err)
	}
	rec.Heights = heights

	return rec, nil
}

// List returns stored names in ascending order.
func (ps *PostgresStore) List() ([]string, error) {
	rows, err := ps.db.Query(`SELECT name FROM heightmaps ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list heightmaps: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}

	return names, rows.Err()
}

// Close closes the database connection.
func (ps *PostgresStore) Close() error {
	return ps.db.Close()
}
