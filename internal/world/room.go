package world

// Size is a width/height pair in cells.
type Size struct {
	W int `json:"w"`
	H int `json:"h"`
}

// Room represents a rectangular room placed on the grid. Rooms are immutable
// once placed; ID is the room's position in placement order.
type Room struct {
	ID     int   `json:"id"`
	Center Point `json:"center"`
	Size   Size  `json:"size"`
}

// XMin returns the first column covered by the room.
func (r Room) XMin() int { return r.Center.X - r.Size.W/2 }

// XMax returns the column just past the room (exclusive).
func (r Room) XMax() int { return r.Center.X + r.Size.W/2 }

// YMin returns the first row covered by the room.
func (r Room) YMin() int { return r.Center.Y - r.Size.H/2 }

// YMax returns the row just past the room (exclusive).
func (r Room) YMax() int { return r.Center.Y + r.Size.H/2 }

// Contains returns true if the given cell lies inside the room's bounds.
func (r Room) Contains(x, y int) bool {
	return x >= r.XMin() && x < r.XMax() && y >= r.YMin() && y < r.YMax()
}

// Intersects returns true if this room's bounds overlap another room's.
func (r Room) Intersects(other Room) bool {
	return r.XMin() < other.XMax() &&
		r.XMax() > other.XMin() &&
		r.YMin() < other.YMax() &&
		r.YMax() > other.YMin()
}

// Within returns true if the room's bounds fit inside a width x height grid.
func (r Room) Within(width, height int) bool {
	return r.XMin() >= 0 && r.YMin() >= 0 && r.XMax() <= width && r.YMax() <= height
}

// Area returns the number of cells covered by the room.
func (r Room) Area() int {
	return (r.XMax() - r.XMin()) * (r.YMax() - r.YMin())
}
