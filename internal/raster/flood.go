package raster

import "image"

// FloodFill performs a 4-connected fill starting at (x, y) and returns the
// number of pixels it set to fill.
//
// Pixels are taken from an explicit work list rather than the call stack.
// A pixel is skipped if it is off the canvas, already visited, or already
// holds fill or boundary; otherwise it is painted and its four neighbours
// are queued. A seed that is off the canvas or on the boundary fills nothing.
func FloodFill(c *Canvas, x, y int, fill, boundary Index) int {
	if !c.InBounds(x, y) {
		return 0
	}

	visited := make([]bool, len(c.pix))
	stack := []image.Point{{X: x, Y: y}}
	filled := 0

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if !c.InBounds(p.X, p.Y) {
			continue
		}
		i := p.Y*c.width + p.X
		if visited[i] {
			continue
		}
		if v := c.pix[i]; v == fill || v == boundary {
			continue
		}

		c.pix[i] = fill
		visited[i] = true
		filled++

		stack = append(stack,
			image.Point{X: p.X + 1, Y: p.Y},
			image.Point{X: p.X - 1, Y: p.Y},
			image.Point{X: p.X, Y: p.Y + 1},
			image.Point{X: p.X, Y: p.Y - 1},
		)
	}

	return filled
}
