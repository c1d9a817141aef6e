package fill

import "github.com/tomz197/polyfill/internal/raster"

// Canvas size used when neither the request nor the engine specifies one.
const (
	DefaultWidth  = 600
	DefaultHeight = 400
)

// Colour tokens used when a caller leaves them empty.
const (
	DefaultFillColor     = "#ff0000"
	DefaultBoundaryColor = "#0000ff"
)

// DefaultShape returns a fresh copy of the butterfly outline served to
// callers that do not supply a polygon.
func DefaultShape() []raster.Point {
	return []raster.Point{
		{X: 350, Y: 200}, // top middle
		{X: 250, Y: 150}, // left wing tip
		{X: 300, Y: 250}, // lower left
		{X: 350, Y: 220}, // bottom middle
		{X: 400, Y: 250}, // lower right
		{X: 450, Y: 150}, // right wing tip
	}
}
