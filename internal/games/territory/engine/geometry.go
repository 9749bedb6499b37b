package engine

// PointInPolygon reports whether p lies inside polygon using ray casting.
//
// For every edge (wrapping last -> first) whose y-span straddles p.Y under the
// half-open rule (y1 > py) != (y2 > py), the edge's x-intercept at p.Y is
// computed; the edge counts when p.X is strictly left of it. The point is
// inside iff the count is odd. Horizontal edges never count. Points exactly
// on an edge are classified by the same rule and have no further guarantee.
func PointInPolygon(p Point, polygon []Point) bool {
	n := len(polygon)
	crossings := 0

	for i := range n {
		a := polygon[i]
		b := polygon[(i+1)%n]

		if (a.Y > p.Y) != (b.Y > p.Y) {
			xIntersect := (b.X-a.X)*(p.Y-a.Y)/(b.Y-a.Y) + a.X
			if p.X < xIntersect {
				crossings++
			}
		}
	}

	return crossings%2 == 1
}

// CellsInPolygon returns every cell whose top-left world point lies inside
// polygon, in row-major order.
//
// The scan covers cell indices [minX/cellSize, (maxX+3*cellSize)/cellSize) by
// [minY/cellSize, (maxY+cellSize)/cellSize). The asymmetric padding
// over-covers the bounding box on purpose and must stay as it is.
func CellsInPolygon(polygon []Point, cellSize int) []Cell {
	if len(polygon) == 0 || cellSize <= 0 {
		return nil
	}

	minX, maxX := int(polygon[0].X), int(polygon[0].X)
	minY, maxY := int(polygon[0].Y), int(polygon[0].Y)
	for _, v := range polygon[1:] {
		minX = min(minX, int(v.X))
		maxX = max(maxX, int(v.X))
		minY = min(minY, int(v.Y))
		maxY = max(maxY, int(v.Y))
	}

	x0 := floorDiv(minX, cellSize)
	x1 := floorDiv(maxX+3*cellSize, cellSize)
	y0 := floorDiv(minY, cellSize)
	y1 := floorDiv(maxY+cellSize, cellSize)

	var inside []Cell
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			c := C(x, y)
			if PointInPolygon(c.World(cellSize), polygon) {
				inside = append(inside, c)
			}
		}
	}
	return inside
}

// Outline converts a cell sequence into world-space polygon vertices.
func Outline(cells []Cell, cellSize int) []Point {
	points := make([]Point, len(cells))
	for i, c := range cells {
		points[i] = c.World(cellSize)
	}
	return points
}

// floorDiv divides rounding toward negative infinity.
func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
