// Package world provides arena generation: room placement, room connectivity
// and corridor carving over a grid of typed cells.
package world

// Cell represents a single grid cell. The cell type alone decides walkability.
type Cell rune

const (
	// CellEmpty is solid space outside rooms and corridors.
	CellEmpty Cell = '#'
	// CellRoom is floor belonging to a room.
	CellRoom Cell = '.'
	// CellCorridor is floor carved between rooms.
	CellCorridor Cell = '+'
)

// IsWalkable returns true for room and corridor cells.
func (c Cell) IsWalkable() bool {
	return c == CellRoom || c == CellCorridor
}

// Valid reports whether c is one of the known cell types.
func (c Cell) Valid() bool {
	switch c {
	case CellEmpty, CellRoom, CellCorridor:
		return true
	default:
		return false
	}
}

// Rune returns the cell's display character.
func (c Cell) Rune() rune {
	return rune(c)
}

// String returns a human-readable cell type name.
func (c Cell) String() string {
	switch c {
	case CellEmpty:
		return "empty"
	case CellRoom:
		return "room"
	case CellCorridor:
		return "corridor"
	default:
		return "unknown"
	}
}

// Point is an integer grid coordinate.
type Point struct {
	X, Y int
}

// Add returns p translated by d.
func (p Point) Add(d Point) Point {
	return Point{X: p.X + d.X, Y: p.Y + d.Y}
}

// Manhattan returns the 4-directional step distance between p and q.
func (p Point) Manhattan(q Point) int {
	return abs(p.X-q.X) + abs(p.Y-q.Y)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
