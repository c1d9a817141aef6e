// Package draw renders indexed canvases to ANSI terminals.
package draw

import (
	"fmt"
	"io"
)

// Block characters for drawing.
const (
	BlockFull      = '█'
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
	BlockMarker    = '+'
)

// ClearScreen clears the terminal and moves cursor to top-left.
func ClearScreen(w io.Writer) {
	fmt.Fprint(w, "\033[H\033[2J")
}

// ClearLine clears the line the cursor is on.
func ClearLine(w io.Writer) {
	fmt.Fprint(w, "\033[2K")
}

// HideCursor hides the terminal cursor.
func HideCursor(w io.Writer) {
	fmt.Fprint(w, "\033[?25l")
}

// ShowCursor shows the terminal cursor.
func ShowCursor(w io.Writer) {
	fmt.Fprint(w, "\033[?25h")
}

// MoveCursor moves cursor to a specific position (1-based).
func MoveCursor(w io.Writer, x, y int) {
	fmt.Fprintf(w, "\033[%d;%dH", y, x)
}
