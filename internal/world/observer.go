package world

// Observer receives generation progress. It is passed to the generator
// explicitly with WithObserver; callbacks run synchronously on the
// generating goroutine.
type Observer interface {
	RoomPlaced(room Room)
	CorridorCarved(edge Edge, path []Point)
}

// ObserverFuncs adapts plain functions to Observer. Nil fields are skipped.
type ObserverFuncs struct {
	OnRoomPlaced     func(room Room)
	OnCorridorCarved func(edge Edge, path []Point)
}

// RoomPlaced implements Observer.
func (o ObserverFuncs) RoomPlaced(room Room) {
	if o.OnRoomPlaced != nil {
		o.OnRoomPlaced(room)
	}
}

// CorridorCarved implements Observer.
func (o ObserverFuncs) CorridorCarved(edge Edge, path []Point) {
	if o.OnCorridorCarved != nil {
		o.OnCorridorCarved(edge, path)
	}
}

type nopObserver struct{}

func (nopObserver) RoomPlaced(Room)             {}
func (nopObserver) CorridorCarved(Edge, []Point) {}
