package viewer

import (
	"fmt"

	"github.com/tomz197/polyfill/internal/draw"
	"github.com/tomz197/polyfill/internal/fill"
)

const helpText = "[f]lood  [s]canline  [r]eset  arrows/hjkl move seed  [q]uit"

// drawFrame redraws the whole screen: preview, seed marker and status line.
func (v *Viewer) drawFrame() error {
	cw := v.chunkWriter
	cw.WriteString("\033[H\033[2J")

	v.preview.Render(cw, v.result.Canvas, v.result.Palette)
	v.drawSeed()
	v.drawStatus()

	return cw.Flush()
}

// drawSeed marks the seed point unless the scanline fill is shown, which
// does not use it.
func (v *Viewer) drawSeed() {
	if v.mode == fill.ModeScanline {
		return
	}
	col, row := v.preview.CanvasToTerminal(v.result.Canvas, v.seed.X, v.seed.Y)
	draw.MoveCursor(v.chunkWriter, col, row)
	v.chunkWriter.WriteString(string(draw.BlockMarker))
}

// drawStatus writes the status line below the preview.
func (v *Viewer) drawStatus() {
	renderWidth, renderHeight, _, _ := clampTermSize(v.termWidth, v.termHeight)

	status := fmt.Sprintf("%s  seed (%d, %d)  filled %d  %s",
		v.mode, v.seed.X, v.seed.Y, v.result.Filled, helpText)
	if len(status) > renderWidth {
		status = status[:max(renderWidth, 0)]
	}

	v.chunkWriter.MoveCursor(1, renderHeight+1)
	draw.ClearLine(v.chunkWriter)
	v.chunkWriter.WriteString(v.statusStyle.Render(status))
}
