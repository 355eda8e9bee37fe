package controller

import (
	"fmt"

	"github.com/calvinmclean/euromorse"
	"github.com/calvinmclean/euromorse/morse"
)

// Snapshot is a read-only view of the controller for a display renderer
type Snapshot struct {
	Mode euromorse.Mode

	// Label and Sequence describe the glyph or marker being played
	Label    string
	Sequence string
	Gate     bool
	Boundary bool

	// Prefix is the part of the text already played and Current the character playing now
	Prefix  string
	Current string

	Text      string
	TextIndex int
	Pitch     float64

	// OldPitch is the pitch before AdjustPitch was entered
	OldPitch float64
	// Candidate is the text shown in SelectText
	CandidateIndex int
	Candidate      string
}

// Snapshot captures the state needed to paint the display
func (c *Controller) Snapshot() Snapshot {
	glyph := c.cursor.Glyph()
	prefix, current := c.cursor.Position()

	s := Snapshot{
		Mode:      c.mode,
		Label:     glyph.Label(),
		Sequence:  glyph.Sequence(),
		Gate:      c.frame.Gate,
		Boundary:  glyph.IsBoundary(),
		Prefix:    prefix,
		Current:   current,
		Text:      c.cursor.Text(),
		TextIndex: c.settings.TextIndex(),
		Pitch:     c.settings.Pitch(),
	}

	switch c.mode {
	case euromorse.ModeAdjustPitch:
		s.OldPitch = c.oldPitch
	case euromorse.ModeSelectText:
		s.CandidateIndex = c.newIndex
		s.Candidate = c.settings.Text(c.newIndex)
	}
	return s
}

// Lines renders the snapshot as three display lines of at most width characters: a title
// line and two content lines. Centering is left to the display.
func (s Snapshot) Lines(width int) [3]string {
	var lines [3]string

	switch s.Mode {
	case euromorse.ModePaused:
		lines[0] = head(s.Text, width)
		lines[1] = "||"
		return lines
	default:
		title := s.Prefix
		if s.Gate || s.Label == morse.EndOfMessage.Label() {
			title += s.Current
		}
		lines[0] = tail(title, width)
	}

	switch s.Mode {
	case euromorse.ModeAdjustPitch:
		lines[1] = fmt.Sprintf("CUR CV %1.3f", s.OldPitch)
		lines[2] = fmt.Sprintf("NEW CV %1.3f", s.Pitch)
	case euromorse.ModeSelectText:
		lines[1] = "-->"
		lines[2] = head(s.Candidate, width)
	default:
		lines[1] = head(s.Sequence, width)
		if s.Label == morse.EndOfWord.Label() || s.Label == morse.EndOfMessage.Label() {
			lines[2] = s.Label
		}
	}
	return lines
}

func head(s string, width int) string {
	r := []rune(s)
	if width <= 0 || len(r) <= width {
		return s
	}
	return string(r[:width])
}

func tail(s string, width int) string {
	r := []rune(s)
	if width <= 0 || len(r) <= width {
		return s
	}
	return string(r[len(r)-width:])
}
