package ui

import (
	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/bulletarena/internal/spawn"
	"github.com/samdwyer/bulletarena/internal/world"
)

const playerSymbol = '@'

// View is everything drawn in one frame.
type View struct {
	Level  *world.Level
	Plan   *spawn.Plan // optional
	Player world.Point
	// HidePlayer centers the view on Player without drawing it.
	HidePlayer bool
	Message    string
}

// Renderer handles drawing arenas to a canvas.
type Renderer struct {
	canvas  Canvas
	palette []tcell.Color
	level   *world.Level
}

// NewRenderer creates a new renderer for the given canvas.
func NewRenderer(canvas Canvas) *Renderer {
	return &Renderer{canvas: canvas}
}

// Render draws the visible part of the level, centered on the player, with
// spawners, the player and a status line at the bottom.
func (r *Renderer) Render(v View) {
	r.canvas.Clear()
	if v.Level == nil || v.Level.Grid == nil {
		r.RenderMessage(v.Message, 0)
		r.canvas.Show()
		return
	}
	if r.level != v.Level {
		r.level = v.Level
		r.palette = RoomPalette(len(v.Level.Rooms))
	}

	width, height := r.canvas.Size()
	mapHeight := height - 1 // last row holds the status line
	offX, offY := Viewport(v.Player, v.Level.Grid.Width(), v.Level.Grid.Height(), width, mapHeight)

	// Draw arena cells
	for sy := 0; sy < mapHeight; sy++ {
		for sx := 0; sx < width; sx++ {
			x, y := sx+offX, sy+offY
			if !v.Level.Grid.InBounds(x, y) {
				continue
			}
			cell := v.Level.Grid.At(x, y)
			r.canvas.SetContent(sx, sy, cell.Rune(), r.cellStyle(cell, v.Level.RoomAt(x, y)))
		}
	}

	// Draw spawners on top of their rooms
	if v.Plan != nil {
		for _, s := range v.Plan.Spawners {
			sx, sy := s.Position.X-offX, s.Position.Y-offY
			if sx < 0 || sx >= width || sy < 0 || sy >= mapHeight || len(s.Waves) == 0 {
				continue
			}
			enemy := s.Waves[0].Enemy
			style := tcell.StyleDefault.Foreground(enemy.TCellColor()).Bold(true)
			r.canvas.SetContent(sx, sy, enemy.GlyphRune(), style)
		}
	}

	// Draw player on top
	playerStyle := tcell.StyleDefault.
		Foreground(tcell.ColorYellow).
		Bold(true)
	if px, py := v.Player.X-offX, v.Player.Y-offY; !v.HidePlayer && px >= 0 && px < width && py >= 0 && py < mapHeight {
		r.canvas.SetContent(px, py, playerSymbol, playerStyle)
	}

	if mapHeight >= 0 {
		r.RenderMessage(v.Message, mapHeight)
	}
	r.canvas.Show()
}

// cellStyle returns the style for a cell; room cells take their room's color.
func (r *Renderer) cellStyle(cell world.Cell, room int) tcell.Style {
	switch cell {
	case world.CellEmpty:
		return tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
	case world.CellRoom:
		if room >= 0 && room < len(r.palette) {
			return tcell.StyleDefault.Foreground(r.palette[room])
		}
		return tcell.StyleDefault.Foreground(tcell.ColorGray)
	case world.CellCorridor:
		return tcell.StyleDefault.Foreground(tcell.ColorSilver)
	default:
		return tcell.StyleDefault
	}
}

// RenderMessage displays a message on the given row.
func (r *Renderer) RenderMessage(msg string, y int) {
	style := tcell.StyleDefault.Foreground(tcell.ColorWhite)
	x := 0
	for _, ch := range msg {
		r.canvas.SetContent(x, y, ch, style)
		x++
	}
}

// Viewport returns the top-left world coordinate of a viewW x viewH window
// centered on focus and clamped to the grid.
func Viewport(focus world.Point, gridW, gridH, viewW, viewH int) (int, int) {
	return clampOffset(focus.X-viewW/2, gridW-viewW), clampOffset(focus.Y-viewH/2, gridH-viewH)
}

func clampOffset(off, maxOff int) int {
	if off > maxOff {
		off = maxOff
	}
	if off < 0 {
		off = 0
	}
	return off
}
