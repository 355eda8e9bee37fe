package playback

import (
	"strings"

	"github.com/calvinmclean/euromorse/morse"
)

// Frame is the output of a single clock tick
type Frame struct {
	Glyph *morse.Character
	Tick  int
	Index int

	Gate           bool
	EndOfCharacter bool
	EndOfWord      bool
	EndOfMessage   bool
}

// Message plays text from a reset through exactly one full cycle, ending with the
// end-of-message marker
func Message(table *morse.Table, text string) []Frame {
	c := New(table, text)

	var frames []Frame
	var inMessageGap bool
	for {
		f := c.Advance()
		if f.Glyph == morse.EndOfMessage {
			inMessageGap = true
		} else if inMessageGap {
			return frames
		}
		frames = append(frames, f)

		// empty text never leaves the message gap
		if len(c.text) == 0 && len(frames) == morse.MessageGapLen {
			return frames
		}
	}
}

// Timeline renders frames as one character per tick: '#' for gate high, '.' for low
func Timeline(frames []Frame) string {
	var sb strings.Builder
	for _, f := range frames {
		if f.Gate {
			sb.WriteByte('#')
		} else {
			sb.WriteByte('.')
		}
	}
	return sb.String()
}
