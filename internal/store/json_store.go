package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"sync"

	"github.com/samdwyer/bulletarena/internal/world"
)

// JSONStore keeps levels in a single local JSON file.
type JSONStore struct {
	filePath string
	mutex    sync.RWMutex
	levels   map[string]*world.Level
}

type jsonData struct {
	Levels map[string]*world.Level `json:"levels"`
}

// NewJSONStore opens the store at filePath, creating the file if it does not exist.
func NewJSONStore(filePath string) (*JSONStore, error) {
	store := &JSONStore{
		filePath: filePath,
		levels:   make(map[string]*world.Level),
	}

	content, err := os.ReadFile(filePath)
	switch {
	case err == nil:
		var data jsonData
		if err := json.Unmarshal(content, &data); err != nil {
			return nil, fmt.Errorf("failed to load JSON store %s: %w", filePath, err)
		}
		if data.Levels != nil {
			store.levels = data.Levels
		}
	case errors.Is(err, os.ErrNotExist):
		if err := store.write(); err != nil {
			return nil, fmt.Errorf("failed to create JSON store file %s: %w", filePath, err)
		}
	default:
		return nil, fmt.Errorf("failed to read JSON store %s: %w", filePath, err)
	}

	return store, nil
}

// write saves all levels to disk. Callers must hold the write lock.
func (js *JSONStore) write() error {
	data, err := json.MarshalIndent(jsonData{Levels: js.levels}, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(js.filePath, data, 0o644)
}

// SaveLevel stores a level under name, replacing any previous one.
func (js *JSONStore) SaveLevel(_ context.Context, name string, level *world.Level) error {
	if level == nil || level.Grid == nil {
		return fmt.Errorf("cannot save empty level %q", name)
	}

	js.mutex.Lock()
	defer js.mutex.Unlock()

	js.levels[name] = level
	if err := js.write(); err != nil {
		return fmt.Errorf("failed to save level %q: %w", name, err)
	}
	return nil
}

// LoadLevel returns the level stored under name.
func (js *JSONStore) LoadLevel(_ context.Context, name string) (*world.Level, error) {
	js.mutex.RLock()
	defer js.mutex.RUnlock()

	level, ok := js.levels[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	if err := checkLoaded(name, level); err != nil {
		return nil, err
	}
	return level, nil
}

// ListLevels returns the stored level names in sorted order.
func (js *JSONStore) ListLevels(_ context.Context) ([]string, error) {
	js.mutex.RLock()
	defer js.mutex.RUnlock()

	names := make([]string, 0, len(js.levels))
	for name := range js.levels {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Close closes the store (no-op for JSON store).
func (js *JSONStore) Close() error {
	return nil
}
