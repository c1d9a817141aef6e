package viewer

import "time"

// Render area limits, in terminal cells. Larger terminals get a centered
// area of this size.
const (
	MaxTermWidth  = 200
	MaxTermHeight = 60
	StatusRows    = 1 // Rows reserved below the preview
)

// Fallback size when the terminal size cannot be read.
const (
	fallbackTermWidth  = 80
	fallbackTermHeight = 24
)

// Seed movement, in canvas pixels per key press.
const SeedStep = 10

// Frame timing. The viewer only redraws after input or a resize.
const (
	TargetFPS = 30
	FrameTime = time.Second / TargetFPS
)

// Inactivity
const (
	InactivityDisconnect = 10 * time.Minute
)
