// Package input turns raw terminal bytes into viewer actions.
package input

import (
	"bufio"
)

// Action is a single viewer command.
type Action int

const (
	ActionNone Action = iota
	ActionQuit
	ActionLeft
	ActionRight
	ActionUp
	ActionDown
	ActionFloodFill
	ActionScanline
	ActionReset
)

var actionNames = [...]string{
	ActionNone:      "none",
	ActionQuit:      "quit",
	ActionLeft:      "left",
	ActionRight:     "right",
	ActionUp:        "up",
	ActionDown:      "down",
	ActionFloodFill: "flood_fill",
	ActionScanline:  "scanline",
	ActionReset:     "reset",
}

func (a Action) String() string {
	if a < 0 || int(a) >= len(actionNames) {
		return "unknown"
	}
	return actionNames[a]
}

// Input is everything read since the previous ReadInput call.
type Input struct {
	Actions []Action // In the order the keys were pressed
	Pressed []byte
	Closed  bool // The underlying reader returned an error
}

// Has reports whether a was pressed.
func (in Input) Has(a Action) bool {
	for _, got := range in.Actions {
		if got == a {
			return true
		}
	}
	return false
}

// Stream delivers input bytes via a channel.
type Stream struct {
	ch chan byte
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
// The channel is closed when r returns an error.
func StartStream(r *bufio.Reader) *Stream {
	s := &Stream{ch: make(chan byte, 128)}
	go func() {
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

// ReadInput drains all available bytes from the stream without blocking.
func ReadInput(s *Stream) Input {
	var in Input

drain:
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				in.Closed = true
				break drain
			}
			in.Pressed = append(in.Pressed, b)
		default:
			break drain
		}
	}

	in.Actions = Parse(in.Pressed)
	return in
}

// Parse maps bytes to actions. Arrow keys arrive as ESC [ A..D; a lone ESC
// quits.
func Parse(buf []byte) []Action {
	var actions []Action
	for i := 0; i < len(buf); i++ {
		b := buf[i]

		if b == '\x1b' && i+1 < len(buf) && buf[i+1] == '[' {
			if i+2 >= len(buf) {
				break // Truncated sequence
			}
			switch buf[i+2] {
			case 'A':
				actions = append(actions, ActionUp)
			case 'B':
				actions = append(actions, ActionDown)
			case 'C':
				actions = append(actions, ActionRight)
			case 'D':
				actions = append(actions, ActionLeft)
			}
			i += 2
			continue
		}

		if a := byteAction(b); a != ActionNone {
			actions = append(actions, a)
		}
	}
	return actions
}

func byteAction(b byte) Action {
	switch b {
	case 'q', 'Q', '\x1b', '\x03':
		return ActionQuit
	case 'h', 'H':
		return ActionLeft
	case 'l', 'L':
		return ActionRight
	case 'k', 'K':
		return ActionUp
	case 'j', 'J':
		return ActionDown
	case 'f', 'F':
		return ActionFloodFill
	case 's', 'S':
		return ActionScanline
	case 'r', 'R':
		return ActionReset
	}
	return ActionNone
}
