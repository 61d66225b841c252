package world

import (
	"fmt"
	"time"

	"github.com/zyedidia/generic/mapset"
)

// Level is the finished output of a generation run. Callers treat it as
// read-only: renderers and spawners only query the grid and rooms.
type Level struct {
	ID        string    `json:"id"`
	Seed      int64     `json:"seed"`
	Params    Params    `json:"params"`
	Grid      *Grid     `json:"grid"`
	Rooms     []Room    `json:"rooms"`
	Edges     []Edge    `json:"edges"`
	CreatedAt time.Time `json:"createdAt"`
}

// RoomAt returns the index of the room containing the position, or -1 if not in a room.
func (l *Level) RoomAt(x, y int) int {
	for i, room := range l.Rooms {
		if room.Contains(x, y) {
			return i
		}
	}
	return -1
}

// Validate checks the structural guarantees of a finished level: rooms lie
// on the grid without overlapping, every room cell is typed as room, the MST
// has one edge fewer than there are rooms, and every room center is reachable
// from the first one over walkable cells.
func (l *Level) Validate() error {
	if l.Grid == nil {
		return fmt.Errorf("%w: level has no grid", ErrInvalidParams)
	}
	w, h := l.Grid.Width(), l.Grid.Height()

	for i, room := range l.Rooms {
		if room.ID != i {
			return fmt.Errorf("room at index %d has id %d", i, room.ID)
		}
		if !room.Within(w, h) {
			return fmt.Errorf("room %d exceeds the %dx%d grid", room.ID, w, h)
		}
		for _, other := range l.Rooms[i+1:] {
			if room.Intersects(other) {
				return fmt.Errorf("room %d overlaps room %d", room.ID, other.ID)
			}
		}
		for y := room.YMin(); y < room.YMax(); y++ {
			for x := room.XMin(); x < room.XMax(); x++ {
				if !l.Grid.IsType(x, y, CellRoom) {
					return fmt.Errorf("room %d cell (%d,%d) is %s", room.ID, x, y, l.Grid.At(x, y))
				}
			}
		}
	}

	if want := max(0, len(l.Rooms)-1); len(l.Edges) != want {
		return fmt.Errorf("%w: %d edges for %d rooms", ErrDisconnected, len(l.Edges), len(l.Rooms))
	}
	if len(l.Rooms) < 2 {
		return nil
	}

	reached := l.reachableRooms(l.Rooms[0].Center)
	if reached.Size() != len(l.Rooms) {
		return fmt.Errorf("%w: %d of %d rooms reachable", ErrDisconnected, reached.Size(), len(l.Rooms))
	}
	return nil
}

// reachableRooms flood-fills walkable cells from start and collects the ids of
// every room whose center was reached.
func (l *Level) reachableRooms(start Point) mapset.Set[int] {
	reached := mapset.New[int]()
	g := l.Grid
	if !g.IsWalkable(start.X, start.Y) {
		return reached
	}

	centers := make(map[Point]int, len(l.Rooms))
	for _, room := range l.Rooms {
		centers[room.Center] = room.ID
	}

	visited := make([]bool, g.Width()*g.Height())
	stack := []Point{start}
	visited[start.Y*g.Width()+start.X] = true
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if id, ok := centers[p]; ok {
			reached.Put(id)
		}
		for _, dir := range directions {
			n := p.Add(dir)
			if !g.IsWalkable(n.X, n.Y) || visited[n.Y*g.Width()+n.X] {
				continue
			}
			visited[n.Y*g.Width()+n.X] = true
			stack = append(stack, n)
		}
	}
	return reached
}
