package surface

import (
	"image"
	"math"
)

// plotFunc sets a single cell of an integer grid
type plotFunc func(x, y int)

// fillTriangle fills a triangle on an integer grid using a scanline algorithm
func fillTriangle(bounds image.Rectangle, x1, y1, x2, y2, x3, y3 float64, plot plotFunc) {
	vertices := [3][2]float64{
		{x1, y1},
		{x2, y2},
		{x3, y3},
	}

	// Sort vertices by Y coordinate (top to bottom)
	if vertices[0][1] > vertices[1][1] {
		vertices[0], vertices[1] = vertices[1], vertices[0]
	}
	if vertices[1][1] > vertices[2][1] {
		vertices[1], vertices[2] = vertices[2], vertices[1]
	}
	if vertices[0][1] > vertices[1][1] {
		vertices[0], vertices[1] = vertices[1], vertices[0]
	}

	x1, y1 = vertices[0][0], vertices[0][1]
	x2, y2 = vertices[1][0], vertices[1][1]
	x3, y3 = vertices[2][0], vertices[2][1]

	yStart := int(math.Max(float64(bounds.Min.Y), math.Ceil(y1)))
	yEnd := int(math.Min(float64(bounds.Max.Y-1), math.Floor(y3)))

	for y := yStart; y <= yEnd; y++ {
		fy := float64(y)
		intersections := make([]float64, 0, 3)

		// Edge 1-2
		if y1 != y2 && fy >= y1 && fy <= y2 {
			t := (fy - y1) / (y2 - y1)
			intersections = append(intersections, x1+t*(x2-x1))
		}

		// Edge 2-3
		if y2 != y3 && fy >= y2 && fy <= y3 {
			t := (fy - y2) / (y3 - y2)
			intersections = append(intersections, x2+t*(x3-x2))
		}

		// Edge 1-3
		if y1 != y3 && fy >= y1 && fy <= y3 {
			t := (fy - y1) / (y3 - y1)
			intersections = append(intersections, x1+t*(x3-x1))
		}

		if len(intersections) < 2 {
			continue
		}

		xStart, xEnd := intersections[0], intersections[0]
		for _, x := range intersections[1:] {
			xStart = math.Min(xStart, x)
			xEnd = math.Max(xEnd, x)
		}

		// Clamp to grid bounds
		xFrom := int(math.Max(float64(bounds.Min.X), math.Round(xStart)))
		xTo := int(math.Min(float64(bounds.Max.X-1), math.Round(xEnd)))

		for x := xFrom; x <= xTo; x++ {
			plot(x, y)
		}
	}
}

// fillPolygon fills a convex polygon as a triangle fan
func fillPolygon(bounds image.Rectangle, xs, ys []float64, plot plotFunc) {
	for i := 2; i < len(xs); i++ {
		fillTriangle(bounds, xs[0], ys[0], xs[i-1], ys[i-1], xs[i], ys[i], plot)
	}
}

// drawLine draws a line on an integer grid using Bresenham's algorithm
func drawLine(bounds image.Rectangle, x1, y1, x2, y2 int, plot plotFunc) {
	dx := abs(x2 - x1)
	dy := abs(y2 - y1)

	var sx, sy int
	if x1 < x2 {
		sx = 1
	} else {
		sx = -1
	}
	if y1 < y2 {
		sy = 1
	} else {
		sy = -1
	}

	err := dx - dy

	for {
		if image.Pt(x1, y1).In(bounds) {
			plot(x1, y1)
		}

		if x1 == x2 && y1 == y2 {
			break
		}

		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
