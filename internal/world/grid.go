package world

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// Grid is a fixed-size 2D array of cells. Dimensions are set at construction.
// Every accessor is bounds-checked: out-of-bounds reads return CellEmpty and
// out-of-bounds writes are ignored.
type Grid struct {
	width  int
	height int
	cells  []Cell
}

// NewGrid creates a grid filled with empty cells.
func NewGrid(width, height int) *Grid {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	cells := make([]Cell, width*height)
	for i := range cells {
		cells[i] = CellEmpty
	}
	return &Grid{
		width:  width,
		height: height,
		cells:  cells,
	}
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.height }

// InBounds returns true if (x, y) lies on the grid.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

// At returns the cell at the given position, or CellEmpty when out of bounds.
func (g *Grid) At(x, y int) Cell {
	if !g.InBounds(x, y) {
		return CellEmpty
	}
	return g.cells[y*g.width+x]
}

// IsWalkable returns true if the given position is an in-bounds room or corridor cell.
func (g *Grid) IsWalkable(x, y int) bool {
	return g.At(x, y).IsWalkable()
}

// IsType returns true if the given position is in bounds and holds the given cell type.
func (g *Grid) IsType(x, y int, c Cell) bool {
	return g.InBounds(x, y) && g.cells[y*g.width+x] == c
}

// Set stores a cell at the given position. Out-of-bounds writes are ignored.
func (g *Grid) Set(x, y int, c Cell) {
	if !g.InBounds(x, y) {
		return
	}
	g.cells[y*g.width+x] = c
}

// Count returns how many cells hold the given type.
func (g *Grid) Count(c Cell) int {
	n := 0
	for _, cell := range g.cells {
		if cell == c {
			n++
		}
	}
	return n
}

// Fingerprint returns a 64-bit hash of the grid dimensions and contents.
// Two grids with equal fingerprints hold the same layout.
func (g *Grid) Fingerprint() uint64 {
	d := xxhash.New()
	var dims [16]byte
	binary.LittleEndian.PutUint64(dims[:8], uint64(g.width))
	binary.LittleEndian.PutUint64(dims[8:], uint64(g.height))
	_, _ = d.Write(dims[:])

	row := make([]byte, g.width)
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			row[x] = byte(g.cells[y*g.width+x])
		}
		_, _ = d.Write(row)
	}
	return d.Sum64()
}

// Rows returns the grid as one string per row, top row first.
func (g *Grid) Rows() []string {
	rows := make([]string, g.height)
	var b strings.Builder
	for y := 0; y < g.height; y++ {
		b.Reset()
		for x := 0; x < g.width; x++ {
			b.WriteRune(g.cells[y*g.width+x].Rune())
		}
		rows[y] = b.String()
	}
	return rows
}

// String renders the grid as newline-separated rows.
func (g *Grid) String() string {
	return strings.Join(g.Rows(), "\n")
}

type gridJSON struct {
	Width  int      `json:"width"`
	Height int      `json:"height"`
	Rows   []string `json:"rows"`
}

// MarshalJSON encodes the grid as its dimensions plus one string per row.
func (g *Grid) MarshalJSON() ([]byte, error) {
	return json.Marshal(gridJSON{
		Width:  g.width,
		Height: g.height,
		Rows:   g.Rows(),
	})
}

// UnmarshalJSON decodes a grid written by MarshalJSON.
func (g *Grid) UnmarshalJSON(data []byte) error {
	var raw gridJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.Width < 0 || raw.Height < 0 {
		return fmt.Errorf("invalid grid dimensions %dx%d", raw.Width, raw.Height)
	}
	if len(raw.Rows) != raw.Height {
		return fmt.Errorf("grid has %d rows, want %d", len(raw.Rows), raw.Height)
	}

	decoded := NewGrid(raw.Width, raw.Height)
	for y, row := range raw.Rows {
		runes := []rune(row)
		if len(runes) != raw.Width {
			return fmt.Errorf("grid row %d has %d cells, want %d", y, len(runes), raw.Width)
		}
		for x, r := range runes {
			c := Cell(r)
			if !c.Valid() {
				return fmt.Errorf("invalid cell %q at (%d,%d)", r, x, y)
			}
			decoded.cells[y*raw.Width+x] = c
		}
	}

	*g = *decoded
	return nil
}
