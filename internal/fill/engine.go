// Package fill turns a polygon, a fill mode and two colour tokens into an
// indexed pixel buffer and the palette that goes with it.
package fill

import (
	"image"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/polyfill/internal/raster"
)

// Mode selects the fill algorithm.
type Mode string

const (
	ModeFloodFill Mode = "flood_fill"
	ModeScanline  Mode = "scanline"
	ModeOutline   Mode = "outline" // no fill step
)

// ParseMode maps a mode name to a Mode. Besides the canonical names it
// accepts "seed_fill", "scan_line" and "none"; dashes count as underscores
// and case is ignored. ok is false for anything else, in which case the returned
// Mode holds s unchanged so the engine falls back to an outline.
func ParseMode(s string) (m Mode, ok bool) {
	switch strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_") {
	case "flood_fill", "seed_fill":
		return ModeFloodFill, true
	case "scanline", "scan_line":
		return ModeScanline, true
	case "outline", "none":
		return ModeOutline, true
	}
	return Mode(s), false
}

// Request describes one fill.
type Request struct {
	Polygon       []raster.Point
	Mode          Mode
	FillColor     string
	BoundaryColor string
	Seed          *image.Point // flood fill only
	Width         int          // 0 selects the engine default
	Height        int          // 0 selects the engine default
}

// Result is the outcome of a fill. The canvas belongs to the caller.
type Result struct {
	Canvas  *raster.Canvas
	Palette Palette
	Width   int
	Height  int
	Filled  int // pixels set by the fill step
}

// Options configures an Engine.
type Options struct {
	Width  int // default canvas width, DefaultWidth if zero
	Height int // default canvas height, DefaultHeight if zero
	Logger *log.Logger
}

// Engine runs fill requests. It holds only configuration, so one Engine may
// serve concurrent callers; every Fill works on its own canvas.
type Engine struct {
	width  int
	height int
	logger *log.Logger
}

// NewEngine creates an engine with the given defaults.
func NewEngine(opts Options) *Engine {
	e := &Engine{
		width:  opts.Width,
		height: opts.Height,
		logger: opts.Logger,
	}
	if e.width <= 0 {
		e.width = DefaultWidth
	}
	if e.height <= 0 {
		e.height = DefaultHeight
	}
	if e.logger == nil {
		e.logger = log.Default()
	}
	return e
}

// Size returns the default canvas dimensions.
func (e *Engine) Size() (width, height int) {
	return e.width, e.height
}

// Fill allocates a canvas, draws the outline of req.Polygon and fills it
// according to req.Mode. It never fails: a missing or misplaced seed leaves
// the outline unfilled and an unknown mode draws the outline only. Both
// cases are logged.
func (e *Engine) Fill(req Request) Result {
	start := time.Now()

	width, height := req.Width, req.Height
	if width <= 0 {
		width = e.width
	}
	if height <= 0 {
		height = e.height
	}

	c := raster.NewCanvas(width, height)
	raster.DrawPolygon(c, req.Polygon, raster.Boundary)

	filled := 0
	switch req.Mode {
	case ModeFloodFill:
		filled = e.floodFill(c, req)
	case ModeScanline:
		before := c.Count(raster.Fill)
		raster.ScanlineFill(c, req.Polygon, raster.Fill, raster.Boundary)
		filled = c.Count(raster.Fill) - before
	case ModeOutline:
	default:
		e.logger.Warn("unknown fill mode, drawing outline only", "mode", string(req.Mode))
	}

	e.logger.Debug("fill done",
		"mode", string(req.Mode),
		"vertices", len(req.Polygon),
		"width", width,
		"height", height,
		"filled", filled,
		"elapsed", time.Since(start),
	)

	return Result{
		Canvas:  c,
		Palette: NewPalette(req.FillColor, req.BoundaryColor),
		Width:   width,
		Height:  height,
		Filled:  filled,
	}
}

func (e *Engine) floodFill(c *raster.Canvas, req Request) int {
	if req.Seed == nil {
		e.logger.Warn("flood fill without seed point")
		return 0
	}
	seed := *req.Seed

	switch {
	case !c.InBounds(seed.X, seed.Y):
		e.logger.Warn("seed point outside canvas", "x", seed.X, "y", seed.Y)
		return 0
	case c.Get(seed.X, seed.Y) == raster.Boundary:
		e.logger.Warn("seed point on boundary", "x", seed.X, "y", seed.Y)
		return 0
	case !raster.Contains(req.Polygon, raster.Point{X: float64(seed.X), Y: float64(seed.Y)}):
		// Still filled: the region outside the outline is a valid target.
		e.logger.Warn("seed point outside polygon", "x", seed.X, "y", seed.Y)
	}

	return raster.FloodFill(c, seed.X, seed.Y, raster.Fill, raster.Boundary)
}
