// Package viewer is an interactive terminal front end for the fill engine.
// It shows one polygon, lets the user move a seed point and re-runs the
// engine on every key press.
package viewer

import (
	"bufio"
	"context"
	"image"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"

	"github.com/tomz197/polyfill/internal/draw"
	"github.com/tomz197/polyfill/internal/fill"
	"github.com/tomz197/polyfill/internal/input"
	"github.com/tomz197/polyfill/internal/raster"
)

// Options configures a Viewer. Zero values select defaults.
type Options struct {
	TermSizeFunc  draw.TermSizeFunc
	Engine        *fill.Engine
	Shape         []raster.Point // fill.DefaultShape if empty
	FillColor     string
	BoundaryColor string
	Renderer      *lipgloss.Renderer // colour profile for the output
	Logger        *log.Logger
}

// Viewer handles rendering and input for a single terminal.
type Viewer struct {
	engine        *fill.Engine
	shape         []raster.Point
	fillColor     string
	boundaryColor string
	logger        *log.Logger

	preview      *draw.Preview
	chunkWriter  *draw.ChunkWriter
	statusStyle  lipgloss.Style
	writer       io.Writer
	inputStream  *input.Stream
	termSizeFunc draw.TermSizeFunc

	mode        fill.Mode
	seed        image.Point
	initialSeed image.Point
	result      fill.Result

	termWidth  int
	termHeight int
	lastInput  time.Time
	dirty      bool
	running    bool
}

// New creates a viewer reading keys from r and drawing to w.
func New(r *bufio.Reader, w io.Writer, opts Options) *Viewer {
	v := &Viewer{
		engine:        opts.Engine,
		shape:         opts.Shape,
		fillColor:     opts.FillColor,
		boundaryColor: opts.BoundaryColor,
		logger:        opts.Logger,
		writer:        w,
		termSizeFunc:  opts.TermSizeFunc,
		mode:          fill.ModeOutline,
		lastInput:     time.Now(),
		dirty:         true,
		running:       true,
	}
	if v.engine == nil {
		v.engine = fill.NewEngine(fill.Options{Logger: opts.Logger})
	}
	if len(v.shape) == 0 {
		v.shape = fill.DefaultShape()
	}
	if v.fillColor == "" {
		v.fillColor = fill.DefaultFillColor
	}
	if v.boundaryColor == "" {
		v.boundaryColor = fill.DefaultBoundaryColor
	}
	if v.logger == nil {
		v.logger = log.Default()
	}
	if v.termSizeFunc == nil {
		v.termSizeFunc = draw.DefaultTermSizeFunc
	}
	renderer := opts.Renderer
	if renderer == nil {
		renderer = lipgloss.NewRenderer(w)
	}

	if p, ok := raster.InteriorPoint(v.shape); ok {
		v.initialSeed = p
	} else {
		b, _ := raster.Bounds(v.shape)
		v.initialSeed = b.Min.Add(b.Size().Div(2))
	}
	v.seed = v.initialSeed

	v.termWidth, v.termHeight = v.termSize()
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(v.termWidth, v.termHeight)
	v.preview = draw.NewPreview(renderer, renderWidth, renderHeight)
	v.preview.SetOffset(offsetCol, offsetRow)
	v.chunkWriter = draw.NewChunkWriter(w, offsetCol, offsetRow)
	v.statusStyle = renderer.NewStyle().Faint(true)
	v.inputStream = input.StartStream(r)

	v.refill()
	return v
}

// Run starts the viewer loop. It blocks until the user quits, the input
// closes, the session goes idle or ctx is done.
func (v *Viewer) Run(ctx context.Context) error {
	draw.HideCursor(v.writer)
	defer draw.ShowCursor(v.writer)
	draw.ClearScreen(v.writer)

	ticker := time.NewTicker(FrameTime)
	defer ticker.Stop()

	for v.running {
		v.processInput()
		if !v.running {
			break
		}

		v.updateScreen()
		if v.dirty {
			if err := v.drawFrame(); err != nil {
				return err
			}
			v.dirty = false
		}

		select {
		case <-ctx.Done():
			v.running = false
		case <-ticker.C:
		}
	}

	draw.ClearScreen(v.writer)
	return nil
}

// processInput reads pending keys and applies them in order.
func (v *Viewer) processInput() {
	in := input.ReadInput(v.inputStream)
	if in.Closed {
		v.running = false
		return
	}

	if len(in.Pressed) > 0 {
		v.lastInput = time.Now()
	} else if time.Since(v.lastInput) > InactivityDisconnect {
		v.logger.Info("disconnecting idle viewer", "idle", time.Since(v.lastInput).Round(time.Second))
		v.running = false
		return
	}

	for _, a := range in.Actions {
		v.apply(a)
		if !v.running {
			return
		}
	}
}

// apply runs one action. Every action but quit re-runs the engine.
func (v *Viewer) apply(a input.Action) {
	switch a {
	case input.ActionQuit:
		v.running = false
		return
	case input.ActionLeft:
		v.moveSeed(-SeedStep, 0)
	case input.ActionRight:
		v.moveSeed(SeedStep, 0)
	case input.ActionUp:
		v.moveSeed(0, -SeedStep)
	case input.ActionDown:
		v.moveSeed(0, SeedStep)
	case input.ActionFloodFill:
		v.mode = fill.ModeFloodFill
	case input.ActionScanline:
		v.mode = fill.ModeScanline
	case input.ActionReset:
		v.mode = fill.ModeOutline
		v.seed = v.initialSeed
	default:
		return
	}

	v.logger.Debug("viewer action", "action", a, "mode", string(v.mode), "seed", v.seed)
	v.refill()
	v.dirty = true
}

// moveSeed shifts the seed, keeping it on the canvas.
func (v *Viewer) moveSeed(dx, dy int) {
	width, height := v.engine.Size()
	v.seed.X = min(max(v.seed.X+dx, 0), width-1)
	v.seed.Y = min(max(v.seed.Y+dy, 0), height-1)
}

// refill runs the engine on a fresh canvas.
func (v *Viewer) refill() {
	seed := v.seed
	v.result = v.engine.Fill(fill.Request{
		Polygon:       v.shape,
		Mode:          v.mode,
		FillColor:     v.fillColor,
		BoundaryColor: v.boundaryColor,
		Seed:          &seed,
	})
}

func (v *Viewer) termSize() (width, height int) {
	width, height, err := v.termSizeFunc()
	if err != nil || width <= 0 || height <= 0 {
		return fallbackTermWidth, fallbackTermHeight
	}
	return width, height
}

// updateScreen handles terminal resize. On a size change the whole terminal
// is cleared and the frame redrawn.
func (v *Viewer) updateScreen() {
	width, height, err := v.termSizeFunc()
	if err != nil || width <= 0 || height <= 0 {
		return
	}
	if width == v.termWidth && height == v.termHeight {
		return
	}
	v.termWidth, v.termHeight = width, height

	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(width, height)
	v.preview.Resize(renderWidth, renderHeight)
	v.preview.SetOffset(offsetCol, offsetRow)
	v.chunkWriter.SetOffset(offsetCol, offsetRow)
	v.dirty = true
}

// clampTermSize clamps terminal dimensions to the max render resolution, keeps
// StatusRows free below the preview and computes the centering offset.
func clampTermSize(termWidth, termHeight int) (renderWidth, renderHeight, offsetCol, offsetRow int) {
	renderWidth = min(termWidth, MaxTermWidth)
	renderHeight = min(max(termHeight-StatusRows, 0), MaxTermHeight)
	offsetCol = (termWidth - renderWidth) / 2
	offsetRow = (termHeight - StatusRows - renderHeight) / 2
	return
}

// ProfileForTerm picks a colour profile from a TERM value, as reported by
// an SSH pty request.
func ProfileForTerm(term string) termenv.Profile {
	term = strings.ToLower(term)
	switch {
	case term == "" || term == "dumb":
		return termenv.Ascii
	case strings.Contains(term, "truecolor"), strings.Contains(term, "24bit"), strings.Contains(term, "direct"):
		return termenv.TrueColor
	case strings.Contains(term, "256color"):
		return termenv.ANSI256
	}
	return termenv.ANSI
}
