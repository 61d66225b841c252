// Package game provides the interactive arena preview loop.
package game

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.opentelemetry.io/otel/attribute"

	"github.com/samdwyer/bulletarena/internal/gamedata"
	"github.com/samdwyer/bulletarena/internal/spawn"
	"github.com/samdwyer/bulletarena/internal/store"
	"github.com/samdwyer/bulletarena/internal/telemetry"
	"github.com/samdwyer/bulletarena/internal/ui"
	"github.com/samdwyer/bulletarena/internal/world"
)

const saveTimeout = 5 * time.Second

// Game holds the preview state: the current level, its spawn plan and the
// player walking it.
type Game struct {
	screen   *ui.Screen
	renderer *ui.Renderer

	storage  store.Storage // optional
	registry *gamedata.EnemyRegistry
	waves    gamedata.WaveConfig

	level   *world.Level
	plan    *spawn.Plan
	player  world.Point
	message string
	running bool
}

// New creates a game on a fresh terminal screen showing level.
func New(storage store.Storage, level *world.Level) (*Game, error) {
	screen, err := ui.NewScreen()
	if err != nil {
		return nil, err
	}
	g, err := newGame(storage, level)
	if err != nil {
		screen.Close()
		return nil, err
	}
	g.screen = screen
	g.renderer = ui.NewRenderer(screen)
	return g, nil
}

// newGame builds the game state without a screen.
func newGame(storage store.Storage, level *world.Level) (*Game, error) {
	registry, err := gamedata.LoadEnemyRegistry()
	if err != nil {
		return nil, fmt.Errorf("failed to load enemies: %w", err)
	}
	waves, err := gamedata.LoadWaveConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load waves: %w", err)
	}

	g := &Game{
		storage:  storage,
		registry: registry,
		waves:    waves,
		running:  true,
	}
	if err := g.setLevel(level); err != nil {
		return nil, err
	}
	return g, nil
}

// setLevel installs level, plans its spawners and puts the player at the start.
func (g *Game) setLevel(level *world.Level) error {
	rng := rand.New(rand.NewSource(level.Seed))
	plan, err := spawn.NewPlan(level, g.registry, g.waves, rng)
	if err != nil {
		return err
	}
	g.level = level
	g.plan = plan
	g.player = plan.PlayerStart
	if !plan.HasPlayerStart() {
		// Nothing to walk; keep the view centered on the map.
		g.player = world.Point{X: level.Grid.Width() / 2, Y: level.Grid.Height() / 2}
	}
	g.message = g.status()
	return nil
}

func (g *Game) status() string {
	if !g.plan.HasPlayerStart() {
		return fmt.Sprintf("seed %d  no rooms  [r] new [s] save [q] quit", g.level.Seed)
	}
	return fmt.Sprintf("seed %d  rooms %d  enemies %d  [arrows] move [r] new [s] save [q] quit",
		g.level.Seed, len(g.level.Rooms), g.plan.EnemyCount())
}

// Run executes the main preview loop until the player quits.
func (g *Game) Run(ctx context.Context) error {
	_, span := telemetry.Tracer("game").Start(ctx, "game.init")
	span.SetAttributes(
		attribute.String("arena.level_id", g.level.ID),
		attribute.Int("arena.rooms", len(g.level.Rooms)),
		attribute.Int("player.start_x", g.player.X),
		attribute.Int("player.start_y", g.player.Y),
	)
	span.End()

	for g.running {
		g.renderer.Render(ui.View{
			Level:      g.level,
			Plan:       g.plan,
			Player:     g.player,
			HidePlayer: !g.plan.HasPlayerStart(),
			Message:    g.message,
		})

		// Handle input (blocking)
		g.handleInput(ctx)
	}

	g.screen.Close()
	return nil
}

// handleInput processes a single input event.
func (g *Game) handleInput(ctx context.Context) {
	ev := g.screen.PollEvent()

	switch ev := ev.(type) {
	case *tcell.EventKey:
		g.handleKey(ctx, ev.Key(), ev.Rune())
	case *tcell.EventResize:
		g.screen.Sync()
	}
}

// handleKey processes keyboard input.
func (g *Game) handleKey(ctx context.Context, key tcell.Key, ch rune) {
	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		g.running = false

	case tcell.KeyUp:
		g.tryMove(0, -1)
	case tcell.KeyDown:
		g.tryMove(0, 1)
	case tcell.KeyLeft:
		g.tryMove(-1, 0)
	case tcell.KeyRight:
		g.tryMove(1, 0)

	case tcell.KeyRune:
		switch ch {
		case 'q', 'Q':
			g.running = false
		case 'r', 'R':
			g.regenerate(ctx)
		case 's', 'S':
			g.save(ctx)
		}
	}
}

// tryMove moves the player by the given delta if the target cell is walkable.
func (g *Game) tryMove(dx, dy int) bool {
	if !g.plan.HasPlayerStart() {
		return false
	}
	next := g.player.Add(world.Point{X: dx, Y: dy})
	if !g.level.Grid.IsWalkable(next.X, next.Y) {
		return false
	}
	g.player = next
	return true
}

// regenerate builds a new level from the next seed and keeps the old one on failure.
func (g *Game) regenerate(ctx context.Context) {
	seed := g.level.Seed + 1
	if seed == 0 {
		seed = 1
	}
	level, err := world.NewGenerator(g.level.Params, seed).Generate(ctx)
	if err != nil {
		g.message = fmt.Sprintf("generation failed: %v", err)
		return
	}
	if err := g.setLevel(level); err != nil {
		g.message = fmt.Sprintf("spawn planning failed: %v", err)
	}
}

// save stores the current level under its seed.
func (g *Game) save(ctx context.Context) {
	if g.storage == nil {
		g.message = "no level store configured"
		return
	}
	ctx, cancel := context.WithTimeout(ctx, saveTimeout)
	defer cancel()

	name := fmt.Sprintf("seed-%d", g.level.Seed)
	if err := g.storage.SaveLevel(ctx, name, g.level); err != nil {
		g.message = fmt.Sprintf("save failed: %v", err)
		return
	}
	g.message = fmt.Sprintf("saved as %s", name)
}

// Close cleans up game resources.
func (g *Game) Close() {
	if g.screen != nil {
		g.screen.Close()
	}
}
