package ui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/samdwyer/bulletarena/internal/gamedata"
)

// RoomPalette returns n distinct muted colors with hues spread evenly around
// the color wheel, so neighbouring room ids stay distinguishable.
func RoomPalette(n int) []tcell.Color {
	palette := make([]tcell.Color, n)
	for i := range palette {
		hue := 360 * float64(i) / float64(n)
		palette[i] = gamedata.TCellFromColorful(colorful.Hsv(hue, 0.45, 0.75))
	}
	return palette
}
