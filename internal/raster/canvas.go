// Package raster implements the pixel-level core: an indexed canvas,
// Bresenham lines, polygon outlines, and the flood and scanline fillers.
package raster

import (
	"image"
	"image/color"
)

// Index is a palette index stored in a Canvas cell.
type Index uint8

// Palette indices. Only these three values carry meaning inside a Canvas.
const (
	Transparent Index = iota // unfilled
	Fill                     // interior
	Boundary                 // polygon outline
)

// NumIndices is the number of distinct palette indices.
const NumIndices = 3

func (i Index) String() string {
	switch i {
	case Transparent:
		return "transparent"
	case Fill:
		return "fill"
	case Boundary:
		return "boundary"
	}
	return "invalid"
}

// Point represents a 2D coordinate.
// Rasterization truncates both components toward zero.
type Point struct {
	X, Y float64
}

// Canvas is a fixed-size grid of palette indices in row-major order.
// A Canvas is not safe for concurrent use.
type Canvas struct {
	width  int
	height int
	pix    []Index // Flat slice: [y * width + x]
}

// NewCanvas creates a zero-initialized (fully transparent) canvas.
// Negative dimensions are treated as zero.
func NewCanvas(width, height int) *Canvas {
	width = max(width, 0)
	height = max(height, 0)
	return &Canvas{
		width:  width,
		height: height,
		pix:    make([]Index, width*height),
	}
}

// Width returns the canvas width in pixels.
func (c *Canvas) Width() int {
	return c.width
}

// Height returns the canvas height in pixels.
func (c *Canvas) Height() int {
	return c.height
}

// InBounds reports whether (x, y) lies on the canvas.
func (c *Canvas) InBounds(x, y int) bool {
	return x >= 0 && x < c.width && y >= 0 && y < c.height
}

// Set writes v at (x, y). Out-of-bounds writes are silently ignored.
func (c *Canvas) Set(x, y int, v Index) {
	if c.InBounds(x, y) {
		c.pix[y*c.width+x] = v
	}
}

// Get returns the index stored at (x, y), or Transparent outside the canvas.
func (c *Canvas) Get(x, y int) Index {
	if !c.InBounds(x, y) {
		return Transparent
	}
	return c.pix[y*c.width+x]
}

// Clear resets all pixels to Transparent.
func (c *Canvas) Clear() {
	clear(c.pix)
}

// Count returns how many pixels hold v.
func (c *Canvas) Count(v Index) int {
	n := 0
	for _, p := range c.pix {
		if p == v {
			n++
		}
	}
	return n
}

// Rows returns a row-major copy of the canvas contents.
func (c *Canvas) Rows() [][]Index {
	rows := make([][]Index, c.height)
	for y := range rows {
		rows[y] = append([]Index(nil), c.pix[y*c.width:(y+1)*c.width]...)
	}
	return rows
}

// Paletted returns an image view of the canvas that shares no memory with
// it. The palette must have at least NumIndices entries.
func (c *Canvas) Paletted(p color.Palette) *image.Paletted {
	img := image.NewPaletted(image.Rect(0, 0, c.width, c.height), p)
	for i, v := range c.pix {
		img.Pix[i] = uint8(v)
	}
	return img
}
