package game

import "math"

// UpdateFOV recomputes the visible grid from (x, y) with the given sight
// radius. Rays are cast to every cell on the edge of the radius square; a ray
// stops at the first opaque cell, which is itself visible. Every visible cell
// is marked explored.
func (m *Map) UpdateFOV(x, y, radius int) {
	clear(m.visible)
	if !m.InBounds(x, y) {
		return
	}
	m.SetVisible(x, y, true)
	if radius <= 0 {
		return
	}

	for i := -radius; i <= radius; i++ {
		m.castRay(x, y, x+i, y-radius, radius)
		m.castRay(x, y, x+i, y+radius, radius)
		m.castRay(x, y, x-radius, y+i, radius)
		m.castRay(x, y, x+radius, y+i, radius)
	}
}

// castRay walks a Bresenham line from (x0, y0) toward (x1, y1).
func (m *Map) castRay(x0, y0, x1, y1, radius int) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := sign(x1-x0), sign(y1-y0)
	err := dx + dy

	x, y := x0, y0
	for x != x1 || y != y1 {
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x += sx
		}
		if e2 <= dx {
			err += dx
			y += sy
		}
		if !m.InBounds(x, y) || distance(x0, y0, x, y) > float64(radius)+0.5 {
			return
		}
		m.SetVisible(x, y, true)
		if !m.IsTransparent(x, y) {
			return
		}
	}
}

func distance(x1, y1, x2, y2 int) float64 {
	return math.Hypot(float64(x2-x1), float64(y2-y1))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
