package world

import "github.com/zyedidia/generic/queue"

// directions lists 4-neighbour offsets in the order BFS expands them.
var directions = [4]Point{
	{X: 1, Y: 0},
	{X: -1, Y: 0},
	{X: 0, Y: 1},
	{X: 0, Y: -1},
}

// ShortestPath returns a shortest 4-directional path from start to goal,
// both endpoints included. Every in-bounds cell is traversable regardless of
// its type. It returns nil if either endpoint is out of bounds or no path exists.
func ShortestPath(g *Grid, start, goal Point) []Point {
	if !g.InBounds(start.X, start.Y) || !g.InBounds(goal.X, goal.Y) {
		return nil
	}

	index := func(p Point) int { return p.Y*g.width + p.X }

	visited := make([]bool, len(g.cells))
	parent := make([]int, len(g.cells))
	for i := range parent {
		parent[i] = -1
	}

	frontier := queue.New[Point]()
	frontier.Enqueue(start)
	visited[index(start)] = true

	found := false
	for !frontier.Empty() {
		current := frontier.Dequeue()
		if current == goal {
			found = true
			break
		}

		for _, dir := range directions {
			next := current.Add(dir)
			if !g.InBounds(next.X, next.Y) {
				continue
			}
			ni := index(next)
			if visited[ni] {
				continue
			}
			visited[ni] = true
			parent[ni] = index(current)
			frontier.Enqueue(next)
		}
	}
	if !found {
		return nil
	}

	// Walk parents back from the goal, then reverse.
	path := []Point{goal}
	for cur := index(goal); cur != index(start); {
		cur = parent[cur]
		if cur < 0 {
			return nil
		}
		path = append(path, Point{X: cur % g.width, Y: cur / g.width})
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// CarvePath finds a shortest path between start and goal and marks it as
// corridor. Room cells are never overwritten. With widen set, the
// 4-neighbours of every path cell are carved as well. It returns the carved
// path, or nil when nothing was carved.
func CarvePath(g *Grid, start, goal Point, widen bool) []Point {
	path := ShortestPath(g, start, goal)
	if path == nil {
		return nil
	}

	for _, p := range path {
		carveCell(g, p)
	}

	if widen {
		for _, p := range path {
			for _, dir := range directions {
				carveCell(g, p.Add(dir))
			}
		}
	}

	return path
}

// carveCell marks an in-bounds, non-room cell as corridor.
func carveCell(g *Grid, p Point) {
	if !g.InBounds(p.X, p.Y) || g.IsType(p.X, p.Y, CellRoom) {
		return
	}
	g.Set(p.X, p.Y, CellCorridor)
}
