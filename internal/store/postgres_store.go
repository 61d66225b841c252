package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	_ "github.com/lib/pq" // PostgreSQL driver

	"github.com/samdwyer/bulletarena/internal/world"
)

const schema = `
CREATE TABLE IF NOT EXISTS levels (
	name TEXT PRIMARY KEY,
	level_id TEXT NOT NULL,
	seed BIGINT NOT NULL,
	width INTEGER NOT NULL,
	height INTEGER NOT NULL,
	room_count INTEGER NOT NULL,
	fingerprint TEXT NOT NULL,
	layout JSONB NOT NULL,
	created_at TIMESTAMP WITH TIME ZONE DEFAULT NOW(),
	updated_at TIMESTAMP WITH TIME ZONE DEFAULT NOW()
);
`

// PostgresStore keeps levels in a PostgreSQL table.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore connects to PostgreSQL and makes sure the schema exists.
func NewPostgresStore(ctx context.Context, connectionString string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &PostgresStore{db: db}, nil
}

// SaveLevel upserts a level under name.
func (ps *PostgresStore) SaveLevel(ctx context.Context, name string, level *world.Level) error {
	if level == nil || level.Grid == nil {
		return fmt.Errorf("cannot save empty level %q", name)
	}

	layout, err := json.Marshal(level)
	if err != nil {
		return fmt.Errorf("failed to marshal level %q: %w", name, err)
	}

	query := `
	INSERT INTO levels (name, level_id, seed, width, height, room_count, fingerprint, layout)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	ON CONFLICT (name)
	DO UPDATE SET
		level_id = $2, seed = $3, width = $4, height = $5,
		room_count = $6, fingerprint = $7, layout = $8,
		updated_at = NOW()
	`

	_, err = ps.db.ExecContext(ctx, query,
		name, level.ID, level.Seed, level.Grid.Width(), level.Grid.Height(),
		len(level.Rooms), fmt.Sprintf("%016x", level.Grid.Fingerprint()), string(layout))
	if err != nil {
		return fmt.Errorf("failed to save level %q: %w", name, err)
	}
	return nil
}

// LoadLevel reads the level stored under name.
func (ps *PostgresStore) LoadLevel(ctx context.Context, name string) (*world.Level, error) {
	var layout string
	err := ps.db.QueryRowContext(ctx, `SELECT layout FROM levels WHERE name = $1`, name).Scan(&layout)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return nil, fmt.Errorf("failed to load level %q: %w", name, err)
	}

	var level world.Level
	if err := json.Unmarshal([]byte(layout), &level); err != nil {
		return nil, fmt.Errorf("failed to unmarshal level %q: %w", name, err)
	}
	if err := checkLoaded(name, &level); err != nil {
		return nil, err
	}
	return &level, nil
}

// ListLevels returns the stored level names in sorted order.
func (ps *PostgresStore) ListLevels(ctx context.Context) ([]string, error) {
	rows, err := ps.db.QueryContext(ctx, `SELECT name FROM levels ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list levels: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan level name: %w", err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// Close closes the database connection.
func (ps *PostgresStore) Close() error {
	log.Println("Closing database connection...")
	return ps.db.Close()
}
