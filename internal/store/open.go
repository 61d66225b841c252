package store

import (
	"context"
	"fmt"

	"github.com/samdwyer/bulletarena/internal/config"
)

// Open returns the storage backend selected by cfg.
func Open(ctx context.Context, cfg config.StoreConfig) (Storage, error) {
	switch cfg.Type {
	case config.StorePostgres:
		return NewPostgresStore(ctx, cfg.DatabaseURL)
	case config.StoreJSON, "":
		return NewJSONStore(cfg.Path)
	default:
		return nil, fmt.Errorf("unknown store type %q", cfg.Type)
	}
}
