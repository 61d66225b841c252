// Package spawn plans where the player starts and which enemy spawners each
// room of a generated arena receives.
package spawn

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/samdwyer/bulletarena/internal/gamedata"
	"github.com/samdwyer/bulletarena/internal/world"
)

// ErrNoLevel is returned when there is no level to plan for.
var ErrNoLevel = errors.New("no level to plan spawns for")

// Wave is one batch of enemies released by a spawner.
type Wave struct {
	Index int
	Enemy *gamedata.EnemyDef
	Count int
	// StartAfter is the delay in seconds from the first wave.
	StartAfter float64
	// Interval is the delay in seconds between enemies of this wave.
	Interval float64
}

// Spawner sits at a room center and releases its waves inside the room.
type Spawner struct {
	RoomID   int
	Position world.Point
	Area     world.Room
	Waves    []Wave
}

// EnemyCount returns the number of enemies across all waves.
func (s Spawner) EnemyCount() int {
	n := 0
	for _, w := range s.Waves {
		n += w.Count
	}
	return n
}

// Plan is the spawn layout for one level. A level without rooms gets an
// empty plan with PlayerRoom set to NoRoom.
type Plan struct {
	PlayerRoom  int
	PlayerStart world.Point
	Spawners    []Spawner
}

// NoRoom marks a plan whose level has no room to start in.
const NoRoom = -1

// HasPlayerStart reports whether the plan places the player.
func (p *Plan) HasPlayerStart() bool {
	return p.PlayerRoom != NoRoom
}

// NewPlan puts the player at the center of a random room and one spawner at
// every room center. Each spawner's waves draw enemy types by weight from
// registry. A roomless level yields an empty plan.
func NewPlan(level *world.Level, registry *gamedata.EnemyRegistry, waves gamedata.WaveConfig, rng *rand.Rand) (*Plan, error) {
	if level == nil {
		return nil, ErrNoLevel
	}
	if len(level.Rooms) == 0 {
		return &Plan{PlayerRoom: NoRoom}, nil
	}

	playerRoom := level.Rooms[rng.Intn(len(level.Rooms))]
	plan := &Plan{
		PlayerRoom:  playerRoom.ID,
		PlayerStart: playerRoom.Center,
		Spawners:    make([]Spawner, 0, len(level.Rooms)),
	}

	for _, room := range level.Rooms {
		spawner := Spawner{
			RoomID:   room.ID,
			Position: room.Center,
			Area:     room,
			Waves:    make([]Wave, 0, waves.WavesPerSpawner),
		}
		for i := 0; i < waves.WavesPerSpawner; i++ {
			enemy := registry.SpawnRandom(rng)
			if enemy == nil {
				return nil, fmt.Errorf("no spawnable enemy for room %d", room.ID)
			}
			spawner.Waves = append(spawner.Waves, Wave{
				Index:      i,
				Enemy:      enemy,
				Count:      enemy.WaveSize + i*waves.GrowthPerWave,
				StartAfter: float64(i) * waves.SecondsBetweenWaves,
				Interval:   waves.SecondsBetweenSpawns,
			})
		}
		plan.Spawners = append(plan.Spawners, spawner)
	}

	return plan, nil
}

// SpawnerAt returns the spawner positioned at p, or nil.
func (p *Plan) SpawnerAt(pos world.Point) *Spawner {
	for i := range p.Spawners {
		if p.Spawners[i].Position == pos {
			return &p.Spawners[i]
		}
	}
	return nil
}

// EnemyCount returns the number of enemies across all spawners.
func (p *Plan) EnemyCount() int {
	n := 0
	for _, s := range p.Spawners {
		n += s.EnemyCount()
	}
	return n
}
