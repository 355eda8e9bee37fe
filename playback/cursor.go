// Package playback walks a text one clock tick at a time and derives the gate and boundary
// marker levels for every tick.
package playback

import (
	"github.com/calvinmclean/euromorse/morse"
)

// WrapFunc is called each time playback restarts from the first character. Returning
// ok=true swaps in a new text before the first character is resolved.
type WrapFunc func() (text string, ok bool)

// Cursor is the per-session playback state. It is not safe for concurrent use; all calls are
// expected from the single control thread.
type Cursor struct {
	table  *morse.Table
	text   []rune
	index  int
	tick   int
	glyph  *morse.Character
	onWrap WrapFunc
}

// New creates a Cursor positioned before the first character of text
func New(table *morse.Table, text string) *Cursor {
	if table == nil {
		table = morse.Default
	}
	c := &Cursor{table: table}
	c.SetText(text)
	return c
}

// OnWrap registers the hook sampled at the message-loop boundary
func (c *Cursor) OnWrap(f WrapFunc) {
	c.onWrap = f
}

// SetText swaps the active text and resets playback
func (c *Cursor) SetText(text string) {
	c.text = []rune(text)
	c.Reset()
}

// Reset forces the next Advance to start the message from its first character
func (c *Cursor) Reset() {
	c.index = -1
	c.tick = -1
	c.glyph = morse.EndOfCharacter
}

// Advance moves forward by exactly one clock tick
func (c *Cursor) Advance() Frame {
	c.tick = (c.tick + 1) % c.glyph.Duration()
	if c.tick == 0 {
		c.resolveNext()
	}
	return c.Frame()
}

// resolveNext picks the glyph that follows the one that just completed
func (c *Cursor) resolveNext() {
	next := c.index + 1
	switch {
	case c.glyph != morse.EndOfMessage && next == len(c.text):
		c.glyph = morse.EndOfMessage
	case next < len(c.text) && c.text[next] == morse.WordSeparator:
		c.index = next
		c.glyph = morse.EndOfWord
	case c.glyph.IsBoundary():
		if len(c.text) == 0 {
			c.glyph = morse.EndOfMessage
			return
		}
		c.index = next % len(c.text)
		if c.index == 0 && c.onWrap != nil {
			if text, ok := c.onWrap(); ok {
				c.text = []rune(text)
				if len(c.text) == 0 {
					c.index = -1
					c.glyph = morse.EndOfMessage
					return
				}
			}
		}
		// a leading separator is only reachable by wrapping
		if r := c.text[c.index]; r == morse.WordSeparator {
			c.glyph = morse.EndOfWord
		} else {
			c.glyph = c.table.LookupOrError(r)
		}
	default:
		c.glyph = morse.EndOfCharacter
	}
}

// Frame describes the current tick without advancing
func (c *Cursor) Frame() Frame {
	f := Frame{
		Glyph: c.glyph,
		Tick:  c.tick,
		Index: c.index,
	}
	if c.tick < 0 {
		return f
	}
	f.Gate = c.glyph.Pulse(c.tick)
	f.EndOfCharacter, f.EndOfWord, f.EndOfMessage = Markers(c.glyph, c.tick)
	return f
}

// Glyph is the character or marker currently playing
func (c *Cursor) Glyph() *morse.Character {
	return c.glyph
}

// Text returns the active text
func (c *Cursor) Text() string {
	return string(c.text)
}

// Position splits the text at the current character for display: the part already played
// and the character being played. Both are empty before the first tick.
func (c *Cursor) Position() (prefix string, current string) {
	if c.index < 0 || c.index >= len(c.text) {
		return "", ""
	}
	return string(c.text[:c.index]), string(c.text[c.index])
}

// Markers derives the boundary outputs for tick of glyph. End-of-character is held only for
// the first CharGapLen ticks of any marker so a longer marker does not keep re-asserting it.
func Markers(glyph *morse.Character, tick int) (endOfCharacter, endOfWord, endOfMessage bool) {
	endOfCharacter = glyph.IsBoundary() && tick < morse.CharGapLen
	endOfWord = glyph == morse.EndOfWord ||
		(glyph == morse.EndOfMessage && tick < morse.WordGapLen)
	endOfMessage = glyph == morse.EndOfMessage
	return
}
