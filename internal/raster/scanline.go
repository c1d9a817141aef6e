package raster

import (
	"math"
	"slices"
)

// ScanlineFill fills the interior of poly using the even-odd rule, then
// redraws the outline with boundary.
//
// For each integer row y between the lowest and highest vertex, an edge
// crosses the row when y lies in [min(y1,y2), max(y1,y2)), so horizontal
// edges never cross and a vertex shared by two edges is counted once. The
// crossings are sorted and the spans between pairs (0,1), (2,3), ... are
// filled. A trailing unpaired crossing is dropped.
func ScanlineFill(c *Canvas, poly []Point, fill, boundary Index) {
	r, ok := Bounds(poly)
	if !ok {
		return
	}

	// Rows off the canvas have nothing to fill.
	yStart := max(r.Min.Y, 0)
	yEnd := min(r.Max.Y, c.height-1)

	var xs []int
	for y := yStart; y <= yEnd; y++ {
		xs = crossings(poly, y, xs[:0])
		slices.Sort(xs)
		fillSpans(c, y, xs, fill)
	}

	DrawPolygon(c, poly, boundary)
}

// crossings appends to buf the truncated x-coordinates where the edges of
// poly cross row y. The result is unsorted.
func crossings(poly []Point, y int, buf []int) []int {
	yf := float64(y)
	n := len(poly)
	for i := 0; i < n; i++ {
		p1 := poly[i]
		p2 := poly[(i+1)%n]
		if !finite(p1.X) || !finite(p1.Y) || !finite(p2.X) || !finite(p2.Y) {
			continue
		}

		if yf < math.Min(p1.Y, p2.Y) || yf >= math.Max(p1.Y, p2.Y) {
			continue
		}

		x := p1.X + (yf-p1.Y)*(p2.X-p1.X)/(p2.Y-p1.Y)
		buf = append(buf, int(x))
	}
	return buf
}

// fillSpans fills row y between consecutive pairs of the sorted crossings
// xs, clamped to the canvas width. An odd trailing crossing is ignored.
func fillSpans(c *Canvas, y int, xs []int, fill Index) {
	if y < 0 || y >= c.height {
		return
	}
	row := c.pix[y*c.width : (y+1)*c.width]
	for i := 0; i+1 < len(xs); i += 2 {
		left := max(xs[i], 0)
		right := min(xs[i+1], c.width-1)
		for x := left; x <= right; x++ {
			row[x] = fill
		}
	}
}
