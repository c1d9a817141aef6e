package draw

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
	xdraw "golang.org/x/image/draw"

	"github.com/tomz197/polyfill/internal/fill"
	"github.com/tomz197/polyfill/internal/raster"
)

// maxChunkSize is the maximum bytes to write at once for optimal network flow.
// 1500 bytes matches typical MTU size for smooth SSH/network transmission.
const maxChunkSize = 1400

// indexPalette gives every raster.Index a distinct colour, so scaling a
// canvas through it preserves indices exactly.
var indexPalette = color.Palette{
	raster.Transparent: color.RGBA{},
	raster.Fill:        color.RGBA{R: 0xff, A: 0xff},
	raster.Boundary:    color.RGBA{B: 0xff, A: 0xff},
}

// fallbackColor stands in for tokens that are not hex colours.
var fallbackColor = color.Gray{Y: 0x88}

// Preview draws an indexed canvas into a terminal area with half-block
// characters: each cell shows two vertically stacked pixels. The canvas is
// scaled to fit the area with its aspect ratio kept, then centered.
type Preview struct {
	renderer   *lipgloss.Renderer
	termWidth  int // Columns available
	termHeight int // Rows available

	// Placement of the scaled image inside the area, in sub-pixels
	// (one column by half a row).
	dst image.Rectangle

	// Offset of the area itself, added to every cursor position.
	offsetCol int
	offsetRow int

	// Reusable buffers to reduce allocations
	scaled    *image.Paletted
	renderBuf strings.Builder
}

// NewPreview creates a preview for an area of termWidth × termHeight cells.
// The renderer decides which colour escape sequences, if any, are emitted.
func NewPreview(renderer *lipgloss.Renderer, termWidth, termHeight int) *Preview {
	p := &Preview{renderer: renderer}
	p.Resize(termWidth, termHeight)
	return p
}

// Resize updates the area available to the preview.
func (p *Preview) Resize(termWidth, termHeight int) {
	p.termWidth = max(termWidth, 0)
	p.termHeight = max(termHeight, 0)
	p.dst = image.Rectangle{}
}

// SetOffset sets the column and row offset of the preview area.
// Offsets are 0-based terminal positions.
func (p *Preview) SetOffset(col, row int) {
	p.offsetCol = col
	p.offsetRow = row
}

// layout fits a canvasWidth × canvasHeight image into the area.
func (p *Preview) layout(canvasWidth, canvasHeight int) image.Rectangle {
	areaW := p.termWidth
	areaH := p.termHeight * 2
	if canvasWidth <= 0 || canvasHeight <= 0 || areaW == 0 || areaH == 0 {
		return image.Rectangle{}
	}

	w, h := areaW, canvasHeight*areaW/canvasWidth
	if h > areaH {
		w, h = canvasWidth*areaH/canvasHeight, areaH
	}
	w, h = max(w, 1), max(h, 1)

	x0 := (areaW - w) / 2
	y0 := (areaH - h) / 2
	y0 -= y0 % 2 // keep pixel rows paired with terminal rows
	return image.Rect(x0, y0, x0+w, y0+h)
}

// CanvasToTerminal converts canvas pixel coordinates to a 1-based terminal
// position (col, row), using the layout of the last Render.
func (p *Preview) CanvasToTerminal(c *raster.Canvas, x, y int) (col, row int) {
	dst := p.dst
	if dst.Empty() {
		dst = p.layout(c.Width(), c.Height())
	}
	if c.Width() == 0 || c.Height() == 0 {
		return 1 + p.offsetCol, 1 + p.offsetRow
	}
	px := dst.Min.X + x*dst.Dx()/c.Width()
	py := dst.Min.Y + y*dst.Dy()/c.Height()
	return px + 1 + p.offsetCol, py/2 + 1 + p.offsetRow
}

// cells returns the rendered string for every (top, bottom) index pair.
// Pairs of transparent pixels are empty and are skipped when drawing.
func (p *Preview) cells(pal fill.Palette) [raster.NumIndices][raster.NumIndices]string {
	var colors [raster.NumIndices]lipgloss.Color
	for i, c := range pal.Colors(fallbackColor) {
		colors[i] = terminalColor(c)
	}

	var res [raster.NumIndices][raster.NumIndices]string
	for top := range raster.NumIndices {
		for bot := range raster.NumIndices {
			style := p.renderer.NewStyle()
			var ch rune
			switch {
			case top == 0 && bot == 0:
				continue
			case top == bot:
				style = style.Foreground(colors[top])
				ch = BlockFull
			case bot == 0:
				style = style.Foreground(colors[top])
				ch = BlockUpperHalf
			case top == 0:
				style = style.Foreground(colors[bot])
				ch = BlockLowerHalf
			default:
				style = style.Foreground(colors[top]).Background(colors[bot])
				ch = BlockUpperHalf
			}
			res[top][bot] = style.Render(string(ch))
		}
	}
	return res
}

// terminalColor converts c to the #rrggbb form lipgloss expects. Fully
// transparent colours get fallbackColor.
func terminalColor(c color.Color) lipgloss.Color {
	cf, ok := colorful.MakeColor(c)
	if !ok {
		cf, _ = colorful.MakeColor(fallbackColor)
	}
	return lipgloss.Color(cf.Hex())
}

// Render outputs the canvas to the writer using half-block characters,
// coloured according to pal.
func (p *Preview) Render(w io.Writer, c *raster.Canvas, pal fill.Palette) {
	p.dst = p.layout(c.Width(), c.Height())
	if p.dst.Empty() {
		return
	}

	size := image.Rect(0, 0, p.dst.Dx(), p.dst.Dy())
	if p.scaled == nil || p.scaled.Rect != size {
		p.scaled = image.NewPaletted(size, indexPalette)
	}
	src := c.Paletted(indexPalette)
	xdraw.NearestNeighbor.Scale(p.scaled, size, src, src.Bounds(), xdraw.Src, nil)

	cells := p.cells(pal)

	// Reset and pre-grow buffer for better performance
	p.renderBuf.Reset()
	p.renderBuf.Grow(size.Dx() * size.Dy() * 8)

	stride := p.scaled.Stride
	for y := 0; y < size.Dy(); y += 2 {
		row := (p.dst.Min.Y+y)/2 + 1 + p.offsetRow
		topOffset := y * stride
		bottomOffset := (y + 1) * stride

		for x := 0; x < size.Dx(); x++ {
			top := p.scaled.Pix[topOffset+x]
			var bottom uint8
			if y+1 < size.Dy() {
				bottom = p.scaled.Pix[bottomOffset+x]
			}
			if top == 0 && bottom == 0 {
				continue // Skip empty cells
			}

			col := p.dst.Min.X + x + 1 + p.offsetCol
			fmt.Fprintf(&p.renderBuf, "\033[%d;%dH%s", row, col, cells[top][bottom])
		}
	}

	// Write output in chunks for optimal network flow
	data := p.renderBuf.String()
	for len(data) > 0 {
		chunk := data
		if len(chunk) > maxChunkSize {
			chunk = data[:maxChunkSize]
		}
		io.WriteString(w, chunk)
		data = data[len(chunk):]
	}
}
