package gamedata

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
)

// EnemyDef defines an enemy type loaded from JSON.
type EnemyDef struct {
	ID               string  `json:"id"`               // Unique identifier (e.g., "grunt")
	Name             string  `json:"name"`             // Display name (e.g., "Grunt")
	Glyph            string  `json:"glyph"`            // Single character for map previews
	Color            string  `json:"color"`            // Hex color code (e.g., "#E04F3A")
	HP               int     `json:"hp"`               // Base hit points
	ProjectileDamage int     `json:"projectileDamage"` // Damage per projectile hit
	FireRate         float64 `json:"fireRate"`         // Shots per second
	SpawnWeight      int     `json:"spawnWeight"`      // Relative spawn frequency (higher = more common)
	WaveSize         int     `json:"waveSize"`         // Enemies of this type in a first wave
}

// GlyphRune returns the glyph as a rune for rendering.
func (e *EnemyDef) GlyphRune() rune {
	for _, r := range e.Glyph {
		return r
	}
	return '?'
}

// TCellColor returns the color as a tcell.Color.
func (e *EnemyDef) TCellColor() tcell.Color {
	color, err := ParseHexColor(e.Color)
	if err != nil {
		return tcell.ColorWhite // fallback
	}
	return color
}

// validate checks the fields spawning depends on.
func (e *EnemyDef) validate() error {
	switch {
	case e.ID == "":
		return fmt.Errorf("enemy %q has no id", e.Name)
	case e.SpawnWeight < 0:
		return fmt.Errorf("enemy %s has negative spawnWeight %d", e.ID, e.SpawnWeight)
	case e.WaveSize <= 0:
		return fmt.Errorf("enemy %s has non-positive waveSize %d", e.ID, e.WaveSize)
	}
	return nil
}

// EnemiesFile represents the structure of enemies.json.
type EnemiesFile struct {
	Enemies []EnemyDef `json:"enemies"`
}

// LoadEnemies loads enemy definitions from the embedded enemies.json file.
func LoadEnemies() ([]EnemyDef, error) {
	file, err := Load[EnemiesFile]("enemies.json")
	if err != nil {
		return nil, err
	}
	for i := range file.Enemies {
		if err := file.Enemies[i].validate(); err != nil {
			return nil, fmt.Errorf("invalid enemies.json: %w", err)
		}
	}
	return file.Enemies, nil
}
