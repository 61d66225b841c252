package store

import (
	"context"
	"errors"
	"os"
	"fmt"
	"path/filepath"
	"sync"
	"testing"

	"github.com/samdwyer/bulletarena/internal/config"
	"github.com/samdwyer/bulletarena/internal/world"
)

func testLevel(t *testing.T, seed int64) *world.Level {
	t.Helper()
	level, err := world.NewGenerator(world.DefaultParams(), seed).Generate(context.Background())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	return level
}

func checkSameLevel(t *testing.T, got, want *world.Level) {
	t.Helper()
	if got.ID != want.ID || got.Seed != want.Seed {
		t.Errorf("loaded level %s/%d, want %s/%d", got.ID, got.Seed, want.ID, want.Seed)
	}
	if got.Grid.Fingerprint() != want.Grid.Fingerprint() {
		t.Error("loaded grid differs from saved grid")
	}
	if len(got.Rooms) != len(want.Rooms) || len(got.Edges) != len(want.Edges) {
		t.Fatalf("loaded %d rooms / %d edges, want %d / %d",
			len(got.Rooms), len(got.Edges), len(want.Rooms), len(want.Edges))
	}
	for i := range want.Rooms {
		if got.Rooms[i] != want.Rooms[i] {
			t.Errorf("room %d = %+v, want %+v", i, got.Rooms[i], want.Rooms[i])
		}
	}
	if got.Params != want.Params {
		t.Errorf("params = %+v, want %+v", got.Params, want.Params)
	}
	if err := got.Validate(); err != nil {
		t.Errorf("loaded level fails validation: %v", err)
	}
}

func TestJSONStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "levels.json")

	store, err := NewJSONStore(path)
	if err != nil {
		t.Fatalf("NewJSONStore: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("store file not created: %v", err)
	}

	level := testLevel(t, 31)
	if err := store.SaveLevel(ctx, "arena-1", level); err != nil {
		t.Fatalf("SaveLevel: %v", err)
	}

	got, err := store.LoadLevel(ctx, "arena-1")
	if err != nil {
		t.Fatalf("LoadLevel: %v", err)
	}
	checkSameLevel(t, got, level)

	// A fresh store reads what the first one wrote.
	reopened, err := NewJSONStore(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	got, err = reopened.LoadLevel(ctx, "arena-1")
	if err != nil {
		t.Fatalf("LoadLevel after reopen: %v", err)
	}
	checkSameLevel(t, got, level)
}

func TestJSONStoreList(t *testing.T) {
	ctx := context.Background()
	store, err := NewJSONStore(filepath.Join(t.TempDir(), "levels.json"))
	if err != nil {
		t.Fatalf("NewJSONStore: %v", err)
	}

	for i, name := range []string{"zeta", "alpha", "mid"} {
		if err := store.SaveLevel(ctx, name, testLevel(t, int64(i+1))); err != nil {
			t.Fatalf("SaveLevel(%s): %v", name, err)
		}
	}

	names, err := store.ListLevels(ctx)
	if err != nil {
		t.Fatalf("ListLevels: %v", err)
	}
	want := []string{"alpha", "mid", "zeta"}
	if len(names) != len(want) {
		t.Fatalf("ListLevels = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("ListLevels[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}

func TestJSONStoreErrors(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	store, err := NewJSONStore(filepath.Join(dir, "levels.json"))
	if err != nil {
		t.Fatalf("NewJSONStore: %v", err)
	}
	if _, err := store.LoadLevel(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("LoadLevel(missing) error = %v, want ErrNotFound", err)
	}
	if err := store.SaveLevel(ctx, "nil", nil); err == nil {
		t.Error("saving a nil level should fail")
	}

	corrupt := filepath.Join(dir, "corrupt.json")
	if err := os.WriteFile(corrupt, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := NewJSONStore(corrupt); err == nil {
		t.Error("opening a corrupt store should fail")
	}
}

func TestJSONStoreRejectsCorruptLevels(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "levels.json")

	doc := `{"levels": {
		"nogrid": {"id": "a", "seed": 1, "grid": null, "rooms": [], "edges": []},
		"empty": null,
		"untyped": {"id": "b", "seed": 2,
			"grid": {"width": 4, "height": 4, "rows": ["####", "####", "####", "####"]},
			"rooms": [{"id": 0, "center": {"X": 2, "Y": 2}, "size": {"w": 2, "h": 2}}],
			"edges": []}
	}}`
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	store, err := NewJSONStore(path)
	if err != nil {
		t.Fatalf("NewJSONStore: %v", err)
	}

	for _, name := range []string{"nogrid", "empty", "untyped"} {
		level, err := store.LoadLevel(ctx, name)
		if !errors.Is(err, ErrCorrupt) {
			t.Errorf("LoadLevel(%s) error = %v, want ErrCorrupt", name, err)
		}
		if level != nil {
			t.Errorf("LoadLevel(%s) returned a level", name)
		}
	}
}

func TestJSONStoreConcurrentSaves(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "levels.json")

	store, err := NewJSONStore(path)
	if err != nil {
		t.Fatalf("NewJSONStore: %v", err)
	}

	level := testLevel(t, 5)
	const n = 16
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if err := store.SaveLevel(ctx, fmt.Sprintf("level-%02d", i), level); err != nil {
				t.Errorf("SaveLevel(%d): %v", i, err)
			}
		}(i)
	}
	wg.Wait()

	// The file on disk must hold every save, not just the last writer's view.
	reopened, err := NewJSONStore(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	names, err := reopened.ListLevels(ctx)
	if err != nil {
		t.Fatalf("ListLevels: %v", err)
	}
	if len(names) != n {
		t.Errorf("reopened store has %d levels, want %d", len(names), n)
	}
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	s, err := Open(ctx, config.StoreConfig{Type: config.StoreJSON, Path: filepath.Join(t.TempDir(), "l.json")})
	if err != nil {
		t.Fatalf("Open(json): %v", err)
	}
	if _, ok := s.(*JSONStore); !ok {
		t.Errorf("Open(json) returned %T", s)
	}
	s.Close()

	if _, err := Open(ctx, config.StoreConfig{Type: "redis"}); err == nil {
		t.Error("Open with an unknown type should fail")
	}
}

// TestPostgresStore runs against a real database when ARENA_TEST_DATABASE_URL is set.
func TestPostgresStore(t *testing.T) {
	url := os.Getenv("ARENA_TEST_DATABASE_URL")
	if url == "" {
		t.Skip("ARENA_TEST_DATABASE_URL not set")
	}
	ctx := context.Background()

	store, err := NewPostgresStore(ctx, url)
	if err != nil {
		t.Fatalf("NewPostgresStore: %v", err)
	}
	defer store.Close()

	level := testLevel(t, 77)
	name := "test-" + level.ID
	if err := store.SaveLevel(ctx, name, level); err != nil {
		t.Fatalf("SaveLevel: %v", err)
	}
	got, err := store.LoadLevel(ctx, name)
	if err != nil {
		t.Fatalf("LoadLevel: %v", err)
	}
	checkSameLevel(t, got, level)

	if _, err := store.LoadLevel(ctx, name+"-missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("LoadLevel(missing) error = %v, want ErrNotFound", err)
	}

	bad := name + "-nogrid"
	_, err = store.db.ExecContext(ctx,
		`INSERT INTO levels (name, level_id, seed, width, height, room_count, fingerprint, layout)
		VALUES ($1, 'x', 0, 0, 0, 0, '', '{"id": "x", "grid": null}')`, bad)
	if err != nil {
		t.Fatalf("insert corrupt row: %v", err)
	}
	defer store.db.ExecContext(ctx, `DELETE FROM levels WHERE name = $1`, bad)
	if _, err := store.LoadLevel(ctx, bad); !errors.Is(err, ErrCorrupt) {
		t.Errorf("LoadLevel(corrupt) error = %v, want ErrCorrupt", err)
	}
}
