package gamedata

import (
	"errors"
	"math/rand"
)

// EnemyRegistry holds loaded enemy definitions and provides spawning utilities.
type EnemyRegistry struct {
	enemies     []EnemyDef
	byID        map[string]*EnemyDef
	totalWeight int
}

// NewEnemyRegistry creates a registry from loaded enemy definitions.
func NewEnemyRegistry(enemies []EnemyDef) *EnemyRegistry {
	r := &EnemyRegistry{
		enemies: enemies,
		byID:    make(map[string]*EnemyDef, len(enemies)),
	}
	for i := range enemies {
		r.totalWeight += enemies[i].SpawnWeight
		r.byID[enemies[i].ID] = &enemies[i]
	}
	return r
}

// LoadEnemyRegistry loads and creates a registry from the embedded enemies.json.
func LoadEnemyRegistry() (*EnemyRegistry, error) {
	enemies, err := LoadEnemies()
	if err != nil {
		return nil, err
	}
	if len(enemies) == 0 {
		return nil, errors.New("no enemies loaded from enemies.json")
	}
	return NewEnemyRegistry(enemies), nil
}

// MustLoadEnemyRegistry loads a registry, panicking on error.
func MustLoadEnemyRegistry() *EnemyRegistry {
	registry, err := LoadEnemyRegistry()
	if err != nil {
		panic(err)
	}
	return registry
}

// SpawnRandom selects a random enemy definition using weighted probability.
// Enemies with higher spawnWeight are more likely to be selected. It returns
// nil when no enemy has a positive weight.
func (r *EnemyRegistry) SpawnRandom(rng *rand.Rand) *EnemyDef {
	if r.totalWeight <= 0 || len(r.enemies) == 0 {
		return nil
	}

	roll := rng.Intn(r.totalWeight)

	cumulative := 0
	for i := range r.enemies {
		cumulative += r.enemies[i].SpawnWeight
		if roll < cumulative {
			return &r.enemies[i]
		}
	}

	// Fallback (shouldn't happen)
	return &r.enemies[0]
}

// GetByID returns the enemy definition with the given ID, or nil if not found.
func (r *EnemyRegistry) GetByID(id string) *EnemyDef {
	return r.byID[id]
}

// All returns all enemy definitions.
func (r *EnemyRegistry) All() []EnemyDef {
	return r.enemies
}

// Count returns the number of enemy types in the registry.
func (r *EnemyRegistry) Count() int {
	return len(r.enemies)
}
