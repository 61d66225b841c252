// Package store persists generated levels by name.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/samdwyer/bulletarena/internal/world"
)

var (
	// ErrNotFound is returned when no level is stored under a name.
	ErrNotFound = errors.New("level not found")
	// ErrCorrupt is returned when a stored level decodes but is not a valid level.
	ErrCorrupt = errors.New("stored level is corrupt")
)

// Storage defines the interface for level persistence.
type Storage interface {
	SaveLevel(ctx context.Context, name string, level *world.Level) error
	LoadLevel(ctx context.Context, name string) (*world.Level, error)
	ListLevels(ctx context.Context) ([]string, error)
	Close() error
}

// checkLoaded rejects stored levels that fail world.Level.Validate.
func checkLoaded(name string, level *world.Level) error {
	if level == nil {
		return fmt.Errorf("%w: %s is empty", ErrCorrupt, name)
	}
	if err := level.Validate(); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrCorrupt, name, err)
	}
	return nil
}
