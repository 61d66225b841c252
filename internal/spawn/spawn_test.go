package spawn

import (
	"context"
	"errors"
	"math/rand"
	"testing"

	"github.com/samdwyer/bulletarena/internal/gamedata"
	"github.com/samdwyer/bulletarena/internal/world"
)

func generate(t *testing.T, seed int64) *world.Level {
	t.Helper()
	level, err := world.NewGenerator(world.DefaultParams(), seed).Generate(context.Background())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	return level
}

func TestNewPlan(t *testing.T) {
	level := generate(t, 11)
	registry := gamedata.MustLoadEnemyRegistry()
	waves := gamedata.MustLoadWaveConfig()

	plan, err := NewPlan(level, registry, waves, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("NewPlan: %v", err)
	}

	if len(plan.Spawners) != len(level.Rooms) {
		t.Fatalf("got %d spawners, want one per room (%d)", len(plan.Spawners), len(level.Rooms))
	}

	start := plan.PlayerStart
	if !level.Grid.IsWalkable(start.X, start.Y) {
		t.Errorf("player start %v is not walkable", start)
	}
	if level.RoomAt(start.X, start.Y) != plan.PlayerRoom {
		t.Errorf("player start %v is not in room %d", start, plan.PlayerRoom)
	}

	for i, s := range plan.Spawners {
		room := level.Rooms[i]
		if s.RoomID != room.ID || s.Position != room.Center {
			t.Errorf("spawner %d at room %d %v, want room %d %v", i, s.RoomID, s.Position, room.ID, room.Center)
		}
		if len(s.Waves) != waves.WavesPerSpawner {
			t.Errorf("spawner %d has %d waves, want %d", i, len(s.Waves), waves.WavesPerSpawner)
		}
		for j, w := range s.Waves {
			if w.Enemy == nil {
				t.Fatalf("spawner %d wave %d has no enemy", i, j)
			}
			if want := w.Enemy.WaveSize + j*waves.GrowthPerWave; w.Count != want {
				t.Errorf("spawner %d wave %d count %d, want %d", i, j, w.Count, want)
			}
			if want := float64(j) * waves.SecondsBetweenWaves; w.StartAfter != want {
				t.Errorf("spawner %d wave %d starts after %v, want %v", i, j, w.StartAfter, want)
			}
		}
		if plan.SpawnerAt(room.Center) == nil {
			t.Errorf("SpawnerAt(%v) = nil", room.Center)
		}
	}

	if plan.EnemyCount() <= 0 {
		t.Error("plan should spawn enemies")
	}
}

func TestNewPlanDeterministic(t *testing.T) {
	level := generate(t, 21)
	registry := gamedata.MustLoadEnemyRegistry()
	waves := gamedata.MustLoadWaveConfig()

	a, err := NewPlan(level, registry, waves, rand.New(rand.NewSource(5)))
	if err != nil {
		t.Fatalf("NewPlan: %v", err)
	}
	b, err := NewPlan(level, registry, waves, rand.New(rand.NewSource(5)))
	if err != nil {
		t.Fatalf("NewPlan: %v", err)
	}

	if a.PlayerRoom != b.PlayerRoom {
		t.Errorf("player room %d != %d", a.PlayerRoom, b.PlayerRoom)
	}
	for i := range a.Spawners {
		for j := range a.Spawners[i].Waves {
			if a.Spawners[i].Waves[j].Enemy.ID != b.Spawners[i].Waves[j].Enemy.ID {
				t.Errorf("spawner %d wave %d differs", i, j)
			}
		}
	}
}

func TestNewPlanNoRooms(t *testing.T) {
	p := world.DefaultParams()
	p.RoomCount = 0
	level, err := world.NewGenerator(p, 1).Generate(context.Background())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	plan, err := NewPlan(level, gamedata.MustLoadEnemyRegistry(), gamedata.MustLoadWaveConfig(), rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("NewPlan: %v", err)
	}
	if plan.HasPlayerStart() || plan.PlayerRoom != NoRoom {
		t.Errorf("player room = %d, want NoRoom", plan.PlayerRoom)
	}
	if len(plan.Spawners) != 0 || plan.EnemyCount() != 0 {
		t.Errorf("got %d spawners / %d enemies, want none", len(plan.Spawners), plan.EnemyCount())
	}
}

func TestNewPlanNilLevel(t *testing.T) {
	_, err := NewPlan(nil, gamedata.MustLoadEnemyRegistry(), gamedata.MustLoadWaveConfig(), rand.New(rand.NewSource(1)))
	if !errors.Is(err, ErrNoLevel) {
		t.Errorf("NewPlan error = %v, want ErrNoLevel", err)
	}
}

func TestNewPlanWithoutEnemies(t *testing.T) {
	level := generate(t, 4)
	registry := gamedata.NewEnemyRegistry([]gamedata.EnemyDef{{ID: "idle", SpawnWeight: 0, WaveSize: 1}})

	if _, err := NewPlan(level, registry, gamedata.WaveConfig{WavesPerSpawner: 1}, rand.New(rand.NewSource(1))); err == nil {
		t.Error("NewPlan should fail when no enemy can spawn")
	}
}
