package world

import "fmt"

// Rand is the random source consumed by room placement. *rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
}

// PlaceRooms places count non-overlapping rooms inside a width x height grid by
// rejection sampling. Room sizes are drawn from [minSize, maxSize) per axis.
// Each room gets at most maxAttempts candidates; when the budget runs out the
// rooms placed so far are returned together with an error wrapping ErrRoomPlacement.
func PlaceRooms(rng Rand, count int, minSize, maxSize Size, width, height, maxAttempts int) ([]Room, error) {
	rooms := make([]Room, 0, count)

	for len(rooms) < count {
		placed := false
		for attempt := 0; attempt < maxAttempts; attempt++ {
			candidate, ok := sampleRoom(rng, minSize, maxSize, width, height)
			if !ok || intersectsAny(candidate, rooms) {
				continue
			}
			candidate.ID = len(rooms)
			rooms = append(rooms, candidate)
			placed = true
			break
		}
		if !placed {
			return rooms, fmt.Errorf("%w %d of %d after %d attempts", ErrRoomPlacement, len(rooms)+1, count, maxAttempts)
		}
	}

	return rooms, nil
}

// sampleRoom draws a random size and a center that keeps the room on the grid.
func sampleRoom(rng Rand, minSize, maxSize Size, width, height int) (Room, bool) {
	size := Size{
		W: randRange(rng, minSize.W, maxSize.W),
		H: randRange(rng, minSize.H, maxSize.H),
	}

	// Center ranges are [size/2, dim - size/2).
	loX, hiX := size.W/2, width-size.W/2
	loY, hiY := size.H/2, height-size.H/2
	if hiX <= loX || hiY <= loY {
		return Room{}, false
	}

	return Room{
		ID: -1,
		Center: Point{
			X: randRange(rng, loX, hiX),
			Y: randRange(rng, loY, hiY),
		},
		Size: size,
	}, true
}

// randRange returns a value in [lo, hi), or lo when the range is empty.
func randRange(rng Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + rng.Intn(hi-lo)
}

func intersectsAny(candidate Room, rooms []Room) bool {
	for _, r := range rooms {
		if r.Intersects(candidate) {
			return true
		}
	}
	return false
}
