package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"math"

	"github.com/tomz197/polyfill/internal/fill"
	"github.com/tomz197/polyfill/internal/raster"
)

// Errors returned while decoding a fill request. Handlers map them to
// status codes.
var (
	ErrInvalid  = errors.New("invalid request")
	ErrTooLarge = errors.New("canvas too large")
)

// SeedPoint is the flood fill seed. It decodes from either {"x": 1, "y": 2}
// or [1, 2]; fractional coordinates are truncated.
type SeedPoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// UnmarshalJSON implements json.Unmarshaler.
func (p *SeedPoint) UnmarshalJSON(data []byte) error {
	if bytes.HasPrefix(bytes.TrimSpace(data), []byte("[")) {
		var xy [2]float64
		if err := json.Unmarshal(data, &xy); err != nil {
			return err
		}
		p.X, p.Y = xy[0], xy[1]
		return nil
	}
	type plain SeedPoint
	return json.Unmarshal(data, (*plain)(p))
}

// FillRequest is the body of POST /api/fill. Shape and Algorithm are the
// older names of Polygon and Mode and are used when the newer ones are empty.
type FillRequest struct {
	Polygon       [][2]float64 `json:"polygon,omitempty"`
	Shape         [][2]float64 `json:"shape,omitempty"`
	Mode          string       `json:"mode,omitempty"`
	Algorithm     string       `json:"algorithm,omitempty"`
	FillColor     string       `json:"fill_color,omitempty"`
	BoundaryColor string       `json:"boundary_color,omitempty"`
	SeedPoint     *SeedPoint   `json:"seed_point,omitempty"`
	CanvasWidth   int          `json:"canvas_width,omitempty"`
	CanvasHeight  int          `json:"canvas_height,omitempty"`
}

// FillResponse is the body of a successful POST /api/fill.
type FillResponse struct {
	Buffer  [][]int      `json:"buffer"`
	Palette fill.Palette `json:"palette"`
	Width   int          `json:"width"`
	Height  int          `json:"height"`
}

// ShapeResponse is the body of GET /api/shape.
type ShapeResponse struct {
	Shape  [][2]float64 `json:"shape"`
	Width  int          `json:"width"`
	Height int          `json:"height"`
}

// newFillResponse flattens a fill result for the wire. The buffer uses
// []int rows since []uint8 would be encoded as base64.
func newFillResponse(res fill.Result) FillResponse {
	rows := res.Canvas.Rows()
	buf := make([][]int, len(rows))
	for y, row := range rows {
		buf[y] = make([]int, len(row))
		for x, v := range row {
			buf[y][x] = int(v)
		}
	}
	return FillResponse{
		Buffer:  buf,
		Palette: res.Palette,
		Width:   res.Width,
		Height:  res.Height,
	}
}

func toPoints(xy [][2]float64) []raster.Point {
	pts := make([]raster.Point, len(xy))
	for i, p := range xy {
		pts[i] = raster.Point{X: p[0], Y: p[1]}
	}
	return pts
}

func fromPoints(pts []raster.Point) [][2]float64 {
	xy := make([][2]float64, len(pts))
	for i, p := range pts {
		xy[i] = [2]float64{p.X, p.Y}
	}
	return xy
}

// toFillRequest applies defaults and limits to fr. Strict mode adds the
// validation the engine itself never performs.
func (s *Server) toFillRequest(fr FillRequest) (fill.Request, error) {
	var req fill.Request

	poly := fr.Polygon
	if len(poly) == 0 {
		poly = fr.Shape
	}
	if len(poly) == 0 {
		req.Polygon = fill.DefaultShape()
	} else {
		req.Polygon = toPoints(poly)
	}
	if s.opts.Strict && len(req.Polygon) < 3 {
		return req, fmt.Errorf("%w: polygon needs at least 3 vertices, got %d", ErrInvalid, len(req.Polygon))
	}
	for i, p := range req.Polygon {
		if math.IsNaN(p.X) || math.IsNaN(p.Y) || math.Abs(p.X) > MaxCoordinate || math.Abs(p.Y) > MaxCoordinate {
			return req, fmt.Errorf("%w: vertex %d (%g, %g) out of range", ErrInvalid, i, p.X, p.Y)
		}
	}

	name := fr.Mode
	if name == "" {
		name = fr.Algorithm
	}
	mode, ok := fill.ParseMode(name)
	if !ok && s.opts.Strict {
		return req, fmt.Errorf("%w: unknown mode %q", ErrInvalid, name)
	}
	req.Mode = mode

	req.FillColor = fr.FillColor
	if req.FillColor == "" {
		req.FillColor = fill.DefaultFillColor
	}
	req.BoundaryColor = fr.BoundaryColor
	if req.BoundaryColor == "" {
		req.BoundaryColor = fill.DefaultBoundaryColor
	}
	if s.opts.Strict {
		for _, tok := range []string{req.FillColor, req.BoundaryColor} {
			if !fill.ValidColor(tok) {
				return req, fmt.Errorf("%w: %q is not a hex colour", ErrInvalid, tok)
			}
		}
	}

	if fr.CanvasWidth < 0 || fr.CanvasHeight < 0 {
		return req, fmt.Errorf("%w: negative canvas size %dx%d", ErrInvalid, fr.CanvasWidth, fr.CanvasHeight)
	}
	req.Width, req.Height = s.engine.Size()
	if fr.CanvasWidth > 0 {
		req.Width = fr.CanvasWidth
	}
	if fr.CanvasHeight > 0 {
		req.Height = fr.CanvasHeight
	}
	if limit := s.opts.MaxPixels; limit > 0 &&
		(req.Width > limit || req.Height > limit || req.Width*req.Height > limit) {
		return req, fmt.Errorf("%w: %dx%d exceeds %d pixels", ErrTooLarge, req.Width, req.Height, s.opts.MaxPixels)
	}

	if fr.SeedPoint != nil {
		if math.IsNaN(fr.SeedPoint.X) || math.IsNaN(fr.SeedPoint.Y) ||
			math.Abs(fr.SeedPoint.X) > MaxCoordinate || math.Abs(fr.SeedPoint.Y) > MaxCoordinate {
			return req, fmt.Errorf("%w: seed point out of range", ErrInvalid)
		}
		req.Seed = &image.Point{X: int(fr.SeedPoint.X), Y: int(fr.SeedPoint.Y)}
	}
	if s.opts.Strict && req.Mode == fill.ModeFloodFill {
		if req.Seed == nil {
			return req, fmt.Errorf("%w: flood fill needs a seed point", ErrInvalid)
		}
		if !req.Seed.In(image.Rect(0, 0, req.Width, req.Height)) {
			return req, fmt.Errorf("%w: seed point %v outside %dx%d canvas", ErrInvalid, *req.Seed, req.Width, req.Height)
		}
	}

	return req, nil
}
