package raster

import (
	"image"
	"math"
	"slices"
)

// DrawPolygon draws the closed outline of poly: edge i joins vertex i to
// vertex (i+1) mod n. Vertices are truncated toward zero. A single vertex
// draws one pixel and two vertices draw the same edge twice. Edges touching
// a non-finite vertex are skipped.
func DrawPolygon(c *Canvas, poly []Point, v Index) {
	n := len(poly)
	for i := 0; i < n; i++ {
		x1, y1, ok1 := pixel(poly[i])
		x2, y2, ok2 := pixel(poly[(i+1)%n])
		if !ok1 || !ok2 {
			continue
		}
		DrawLine(c, x1, y1, x2, y2, v)
	}
}

// pixel truncates p to integer pixel coordinates.
func pixel(p Point) (x, y int, ok bool) {
	if !finite(p.X) || !finite(p.Y) {
		return 0, 0, false
	}
	return int(p.X), int(p.Y), true
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// Contains reports whether p lies inside poly under the even-odd rule,
// by casting a horizontal ray towards +x and counting edge crossings.
func Contains(poly []Point, p Point) bool {
	inside := false
	n := len(poly)
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		a, b := poly[i], poly[j]
		if (a.Y > p.Y) != (b.Y > p.Y) &&
			p.X < (b.X-a.X)*(p.Y-a.Y)/(b.Y-a.Y)+a.X {
			inside = !inside
		}
	}
	return inside
}

// Bounds returns the integer bounding box of the finite vertices of poly:
// Min is truncated down and Max rounded up, so the box is inclusive on both
// ends. ok is false if poly has no finite vertex.
func Bounds(poly []Point) (r image.Rectangle, ok bool) {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range poly {
		if !finite(p.X) || !finite(p.Y) {
			continue
		}
		minX = min(minX, p.X)
		minY = min(minY, p.Y)
		maxX = max(maxX, p.X)
		maxY = max(maxY, p.Y)
		ok = true
	}
	if !ok {
		return image.Rectangle{}, false
	}
	r = image.Rect(
		int(math.Floor(minX)), int(math.Floor(minY)),
		int(math.Ceil(maxX)), int(math.Ceil(maxY)),
	)
	return r, true
}

// InteriorPoint returns a pixel suitable as a flood fill seed. Rows are
// tried from the middle of the bounding box outwards; the first span at
// least three pixels wide whose midpoint is not on the outline wins.
func InteriorPoint(poly []Point) (image.Point, bool) {
	r, ok := Bounds(poly)
	if !ok {
		return image.Point{}, false
	}

	mid := (r.Min.Y + r.Max.Y) / 2
	var xs []int
	for d := 0; mid-d >= r.Min.Y || mid+d <= r.Max.Y; d++ {
		rows := []int{mid - d, mid + d}
		if d == 0 {
			rows = rows[:1]
		}
		for _, y := range rows {
			if y < r.Min.Y || y > r.Max.Y {
				continue
			}
			xs = crossings(poly, y, xs[:0])
			slices.Sort(xs)
			for i := 0; i+1 < len(xs); i += 2 {
				if xs[i+1]-xs[i] < 2 {
					continue
				}
				p := image.Pt((xs[i]+xs[i+1])/2, y)
				if !onOutline(poly, p) {
					return p, true
				}
			}
		}
	}
	return image.Point{}, false
}

// onOutline reports whether DrawPolygon would set pixel p.
func onOutline(poly []Point, p image.Point) bool {
	n := len(poly)
	for i := 0; i < n; i++ {
		x1, y1, ok1 := pixel(poly[i])
		x2, y2, ok2 := pixel(poly[(i+1)%n])
		if !ok1 || !ok2 {
			continue
		}
		if p.Y < min(y1, y2) || p.Y > max(y1, y2) || p.X < min(x1, x2) || p.X > max(x1, x2) {
			continue
		}
		for x, y := range LinePixels(x1, y1, x2, y2) {
			if x == p.X && y == p.Y {
				return true
			}
		}
	}
	return false
}
