package engine

import "errors"

// ErrNoPathFound is returned when the end cell cannot be reached from the
// start cell through the allowed cells.
var ErrNoPathFound = errors.New("engine: no path found")

// ShortestPath runs a breadth-first search from start to end over the
// 4-neighbourhood, stepping only onto cells in allowed.
//
// The returned path includes both endpoints. Neighbours are expanded in the
// order left, right, up, down, so ties between equally short paths always
// resolve the same way. Each cell is visited at most once. When end is not
// reachable the result is nil and ErrNoPathFound.
func ShortestPath(allowed CellSet, start, end Cell) ([]Cell, error) {
	if start == end {
		return []Cell{start}, nil
	}

	parent := map[Cell]Cell{}
	visited := NewCellSet(start)
	queue := []Cell{start}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		if cur == end {
			return buildPath(parent, start, end), nil
		}

		for _, d := range neighbourOrder {
			next := cur.Step(d)
			if !allowed.Has(next) || visited.Has(next) {
				continue
			}
			visited.Add(next)
			parent[next] = cur
			queue = append(queue, next)
		}
	}

	return nil, ErrNoPathFound
}

// buildPath walks parent links back from end and returns start..end.
func buildPath(parent map[Cell]Cell, start, end Cell) []Cell {
	var path []Cell
	for c := end; c != start; c = parent[c] {
		path = append(path, c)
	}
	path = append(path, start)

	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}
