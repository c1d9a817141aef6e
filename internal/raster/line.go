package raster

import "iter"

// LinePixels yields the pixels of the segment from (x1, y1) to (x2, y2),
// endpoints included, in the order Bresenham's algorithm visits them.
func LinePixels(x1, y1, x2, y2 int) iter.Seq2[int, int] {
	return func(yield func(x, y int) bool) {
		dx := abs(x2 - x1)
		dy := abs(y2 - y1)

		sx := 1
		if x1 > x2 {
			sx = -1
		}
		sy := 1
		if y1 > y2 {
			sy = -1
		}

		err := dx - dy

		for {
			if !yield(x1, y1) {
				return
			}

			if x1 == x2 && y1 == y2 {
				return
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
}

// DrawLine draws a line on the canvas using Bresenham's algorithm.
// Pixels off the canvas are clipped.
func DrawLine(c *Canvas, x1, y1, x2, y2 int, v Index) {
	for x, y := range LinePixels(x1, y1, x2, y2) {
		c.Set(x, y, v)
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
