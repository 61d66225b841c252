package world

import (
	"math"
	"sort"
)

// Edge connects two rooms by id. Weight is the Euclidean distance between
// the room centers.
type Edge struct {
	A      int     `json:"a"`
	B      int     `json:"b"`
	Weight float64 `json:"weight"`
}

// distance returns the Euclidean distance between two points.
func distance(p, q Point) float64 {
	return math.Hypot(float64(p.X-q.X), float64(p.Y-q.Y))
}

// completeGraph enumerates every unordered room pair (i < j) in index order.
func completeGraph(rooms []Room) []Edge {
	n := len(rooms)
	if n < 2 {
		return nil
	}
	edges := make([]Edge, 0, n*(n-1)/2)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			edges = append(edges, Edge{
				A:      rooms[i].ID,
				B:      rooms[j].ID,
				Weight: distance(rooms[i].Center, rooms[j].Center),
			})
		}
	}
	return edges
}

// BuildMST returns the minimum spanning tree of the complete graph over room
// centers using Kruskal's algorithm. Equal weights keep enumeration order, so
// the result is deterministic for a fixed room order. Rooms are addressed by
// ID, which must equal their index in rooms.
func BuildMST(rooms []Room) []Edge {
	edges := completeGraph(rooms)
	if len(edges) == 0 {
		return nil
	}

	sort.SliceStable(edges, func(a, b int) bool {
		return edges[a].Weight < edges[b].Weight
	})

	ds := NewDisjointSet(len(rooms))
	mst := make([]Edge, 0, len(rooms)-1)
	for _, e := range edges {
		if ds.Union(e.A, e.B) {
			mst = append(mst, e)
			if len(mst) == len(rooms)-1 {
				break
			}
		}
	}
	return mst
}

// TotalWeight sums the weights of the given edges.
func TotalWeight(edges []Edge) float64 {
	total := 0.0
	for _, e := range edges {
		total += e.Weight
	}
	return total
}
