package ui

import (
	"context"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/bulletarena/internal/gamedata"
	"github.com/samdwyer/bulletarena/internal/spawn"
	"github.com/samdwyer/bulletarena/internal/world"
)

type fakeCell struct {
	r     rune
	style tcell.Style
}

type fakeCanvas struct {
	width, height int
	cells         map[[2]int]fakeCell
	shown         int
}

func newFakeCanvas(w, h int) *fakeCanvas {
	return &fakeCanvas{width: w, height: h, cells: make(map[[2]int]fakeCell)}
}

func (c *fakeCanvas) Clear()               { c.cells = make(map[[2]int]fakeCell) }
func (c *fakeCanvas) Show()                { c.shown++ }
func (c *fakeCanvas) Size() (int, int)     { return c.width, c.height }
func (c *fakeCanvas) at(x, y int) fakeCell { return c.cells[[2]int{x, y}] }
func (c *fakeCanvas) SetContent(x, y int, r rune, style tcell.Style) {
	c.cells[[2]int{x, y}] = fakeCell{r: r, style: style}
}

func testLevel(t *testing.T) *world.Level {
	t.Helper()
	rooms := []world.Room{
		{ID: 0, Center: world.Point{X: 2, Y: 2}, Size: world.Size{W: 3, H: 3}},
		{ID: 1, Center: world.Point{X: 7, Y: 7}, Size: world.Size{W: 3, H: 3}},
	}
	level, err := world.Build(context.Background(), 10, 10, rooms, false)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	return level
}

func TestRenderDrawsGridAndPlayer(t *testing.T) {
	level := testLevel(t)
	canvas := newFakeCanvas(10, 11)
	r := NewRenderer(canvas)

	r.Render(View{Level: level, Player: world.Point{X: 2, Y: 2}, Message: "hi"})

	if canvas.shown != 1 {
		t.Errorf("Show called %d times, want 1", canvas.shown)
	}
	if got := canvas.at(0, 0).r; got != world.CellEmpty.Rune() {
		t.Errorf("cell (0,0) = %q, want %q", got, world.CellEmpty.Rune())
	}
	if got := canvas.at(1, 1).r; got != world.CellRoom.Rune() {
		t.Errorf("cell (1,1) = %q, want %q", got, world.CellRoom.Rune())
	}
	if got := canvas.at(2, 2).r; got != playerSymbol {
		t.Errorf("player cell = %q, want %q", got, playerSymbol)
	}
	if got := canvas.at(0, 10).r; got != 'h' {
		t.Errorf("status line starts with %q, want 'h'", got)
	}

	corridors := 0
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			if canvas.at(x, y).r == world.CellCorridor.Rune() {
				corridors++
			}
		}
	}
	if want := level.Grid.Count(world.CellCorridor); corridors != want {
		t.Errorf("drew %d corridor cells, want %d", corridors, want)
	}
}

func TestRenderHidePlayer(t *testing.T) {
	level := testLevel(t)
	canvas := newFakeCanvas(10, 11)
	NewRenderer(canvas).Render(View{Level: level, Player: world.Point{X: 2, Y: 2}, HidePlayer: true})

	if got := canvas.at(2, 2).r; got != world.CellRoom.Rune() {
		t.Errorf("cell (2,2) = %q, want room floor with the player hidden", got)
	}
}

func TestRenderColorsRoomsApart(t *testing.T) {
	level := testLevel(t)
	canvas := newFakeCanvas(10, 11)
	NewRenderer(canvas).Render(View{Level: level, Player: world.Point{X: 5, Y: 5}})

	a := canvas.at(1, 1).style
	b := canvas.at(6, 6).style
	if a == b {
		t.Error("rooms 0 and 1 share a style, want distinct colors")
	}
}

func TestRenderDrawsSpawners(t *testing.T) {
	level := testLevel(t)
	enemy := gamedata.EnemyDef{ID: "grunt", Glyph: "g", Color: "#ff0000", SpawnWeight: 1, WaveSize: 1}
	plan := &spawn.Plan{
		Spawners: []spawn.Spawner{{
			RoomID:   1,
			Position: world.Point{X: 7, Y: 7},
			Waves:    []spawn.Wave{{Enemy: &enemy, Count: 1}},
		}},
	}
	canvas := newFakeCanvas(10, 11)
	NewRenderer(canvas).Render(View{Level: level, Plan: plan, Player: world.Point{X: 2, Y: 2}})

	if got := canvas.at(7, 7).r; got != 'g' {
		t.Errorf("spawner cell = %q, want 'g'", got)
	}
}

func TestRenderWithoutLevel(t *testing.T) {
	canvas := newFakeCanvas(20, 5)
	NewRenderer(canvas).Render(View{Message: "loading"})

	if got := canvas.at(0, 0).r; got != 'l' {
		t.Errorf("message cell = %q, want 'l'", got)
	}
	if canvas.shown != 1 {
		t.Errorf("Show called %d times, want 1", canvas.shown)
	}
}

func TestViewport(t *testing.T) {
	tests := []struct {
		name         string
		focus        world.Point
		wantX, wantY int
	}{
		{"top left clamps to zero", world.Point{X: 1, Y: 1}, 0, 0},
		{"middle centers", world.Point{X: 50, Y: 50}, 40, 45},
		{"bottom right clamps", world.Point{X: 99, Y: 99}, 80, 90},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y := Viewport(tt.focus, 100, 100, 20, 10)
			if x != tt.wantX || y != tt.wantY {
				t.Errorf("Viewport() = (%d, %d), want (%d, %d)", x, y, tt.wantX, tt.wantY)
			}
		})
	}

	if x, y := Viewport(world.Point{X: 3, Y: 3}, 10, 10, 40, 40); x != 0 || y != 0 {
		t.Errorf("Viewport() on small grid = (%d, %d), want (0, 0)", x, y)
	}
}

func TestRoomPalette(t *testing.T) {
	palette := RoomPalette(6)
	if len(palette) != 6 {
		t.Fatalf("len = %d, want 6", len(palette))
	}
	seen := make(map[tcell.Color]bool)
	for _, c := range palette {
		if seen[c] {
			t.Errorf("duplicate color %v", c)
		}
		seen[c] = true
	}
	if len(RoomPalette(0)) != 0 {
		t.Error("RoomPalette(0) should be empty")
	}
}
