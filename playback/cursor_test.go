package playback

import (
	"strings"
	"testing"

	"github.com/calvinmclean/euromorse/morse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func glyphLabels(frames []Frame) []string {
	var labels []string
	for i, f := range frames {
		if i == 0 || f.Tick == 0 {
			labels = append(labels, f.Glyph.Label())
		}
	}
	return labels
}

func markerString(frames []Frame, get func(Frame) bool) string {
	var sb strings.Builder
	for _, f := range frames {
		if get(f) {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}

func TestMessageSOS(t *testing.T) {
	frames := Message(nil, "SOS")

	assert.Equal(t, []string{"S", "EOC", "O", "EOC", "S", "EOM"}, glyphLabels(frames))
	assert.Equal(t, "#.#.#"+"..."+"###.###.###"+"..."+"#.#.#"+".......", Timeline(frames))

	eoc := markerString(frames, func(f Frame) bool { return f.EndOfCharacter })
	eow := markerString(frames, func(f Frame) bool { return f.EndOfWord })
	eom := markerString(frames, func(f Frame) bool { return f.EndOfMessage })

	assert.Equal(t, "00000"+"111"+"00000000000"+"111"+"00000"+"1110000", eoc)
	assert.Equal(t, "00000"+"000"+"00000000000"+"000"+"00000"+"1111111", eow)
	assert.Equal(t, "00000"+"000"+"00000000000"+"000"+"00000"+"1111111", eom)
}

func TestSOSLoopsBackToFirstCharacter(t *testing.T) {
	c := New(nil, "SOS")
	for range 34 {
		c.Advance()
	}

	f := c.Advance()
	assert.Equal(t, "S", f.Glyph.Label())
	assert.Equal(t, 0, f.Index)
	assert.Equal(t, 0, f.Tick)
	assert.True(t, f.Gate)
	assert.False(t, f.EndOfMessage)
}

func TestLoopingIsIdempotent(t *testing.T) {
	for _, text := range []string{"SOS", "E", "HELLO", "12?", "T"} {
		t.Run(text, func(t *testing.T) {
			cycle := len(Message(nil, text))
			c := New(nil, text)

			var first []Frame
			for range cycle {
				first = append(first, c.Advance())
			}
			for n := range 3 {
				for i := range cycle {
					assert.Equal(t, first[i], c.Advance(), "cycle %d tick %d", n, i)
				}
			}
		})
	}
}

func TestWordSeparatorSupersedesEndOfCharacter(t *testing.T) {
	frames := Message(nil, "A B")

	assert.Equal(t, []string{"A", "EOW", "B", "EOM"}, glyphLabels(frames))
	assert.Equal(t, "#.###"+"......."+"###.#.#.#"+".......", Timeline(frames))

	eoc := markerString(frames, func(f Frame) bool { return f.EndOfCharacter })
	eow := markerString(frames, func(f Frame) bool { return f.EndOfWord })
	assert.Equal(t, "00000"+"1110000"+"000000000"+"1110000", eoc)
	assert.Equal(t, "00000"+"1111111"+"000000000"+"1111111", eow)
}

func TestEdgeCases(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		glyphs []string
	}{
		{"Empty", "", []string{"EOM"}},
		{"SingleCharacter", "E", []string{"E", "EOM"}},
		{"TrailingSeparator", "AB ", []string{"A", "EOC", "B", "EOW", "EOM"}},
		{"LeadingSeparator", " E", []string{"EOW", "E", "EOM"}},
		{"DoubleSeparator", "E  T", []string{"E", "EOW", "EOW", "T", "EOM"}},
		{"OnlySeparator", " ", []string{"EOW", "EOM"}},
		{"UnknownCharacter", "A#", []string{"A", "EOC", "ERROR", "EOM"}},
		{"LowerCase", "sos", []string{"S", "EOC", "O", "EOC", "S", "EOM"}},
		{"Umlaut", "Ö", []string{"Ö", "EOM"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frames := Message(nil, tt.text)
			assert.Equal(t, tt.glyphs, glyphLabels(frames))
			assert.Equal(t, morse.EndOfMessage, frames[len(frames)-1].Glyph)
		})
	}
}

func TestEmptyTextStaysSilent(t *testing.T) {
	c := New(nil, "")
	for range 100 {
		f := c.Advance()
		assert.False(t, f.Gate)
		assert.True(t, f.EndOfMessage)
	}
}

func TestSingleCharacterRepeats(t *testing.T) {
	c := New(nil, "T")
	var timeline []Frame
	for range 20 {
		timeline = append(timeline, c.Advance())
	}
	assert.Equal(t, "###......."+"###.......", Timeline(timeline))
}

func TestFrameBeforeFirstTick(t *testing.T) {
	c := New(nil, "SOS")
	f := c.Frame()

	assert.Equal(t, -1, f.Tick)
	assert.Equal(t, -1, f.Index)
	assert.False(t, f.Gate)
	assert.False(t, f.EndOfCharacter)
	assert.False(t, f.EndOfWord)
	assert.False(t, f.EndOfMessage)

	prefix, current := c.Position()
	assert.Empty(t, prefix)
	assert.Empty(t, current)
}

func TestResetRestartsMessage(t *testing.T) {
	c := New(nil, "SOS")
	for range 12 {
		c.Advance()
	}
	prefix, current := c.Position()
	assert.Equal(t, "S", prefix)
	assert.Equal(t, "O", current)

	c.Reset()
	f := c.Advance()
	assert.Equal(t, "S", f.Glyph.Label())
	assert.Equal(t, 0, f.Index)
	assert.True(t, f.Gate)
}

func TestSetTextResets(t *testing.T) {
	c := New(nil, "SOS")
	for range 30 {
		c.Advance()
	}

	c.SetText("E")
	assert.Equal(t, "E", c.Text())

	frames := []Frame{c.Advance(), c.Advance()}
	assert.Equal(t, "E", frames[0].Glyph.Label())
	assert.Equal(t, morse.EndOfMessage, frames[1].Glyph)
}

func TestWrapHook(t *testing.T) {
	c := New(nil, "E")

	var calls int
	c.OnWrap(func() (string, bool) {
		calls++
		if calls == 2 {
			return "T", true
		}
		return "", false
	})

	var frames []Frame
	for range 8 + 10 {
		frames = append(frames, c.Advance())
	}

	assert.Equal(t, 2, calls)
	assert.Equal(t, []string{"E", "EOM", "T", "EOM"}, glyphLabels(frames))
	assert.Equal(t, "T", c.Text())
}

func TestWrapHookToEmptyText(t *testing.T) {
	c := New(nil, "E")
	c.OnWrap(func() (string, bool) {
		return "", c.Text() == "E" && c.Glyph() == morse.EndOfMessage
	})

	for range 9 {
		c.Advance()
	}
	require.Empty(t, c.Text())

	for range 20 {
		f := c.Advance()
		assert.Equal(t, morse.EndOfMessage, f.Glyph)
	}
}

func TestMarkers(t *testing.T) {
	tests := []struct {
		name  string
		glyph *morse.Character
		tick  int
		eoc   bool
		eow   bool
		eom   bool
	}{
		{"GlyphTick", morse.Error, 0, false, false, false},
		{"EndOfCharacterStart", morse.EndOfCharacter, 0, true, false, false},
		{"EndOfCharacterLast", morse.EndOfCharacter, 2, true, false, false},
		{"EndOfWordStart", morse.EndOfWord, 0, true, true, false},
		{"EndOfWordTail", morse.EndOfWord, 3, false, true, false},
		{"EndOfMessageStart", morse.EndOfMessage, 2, true, true, true},
		{"EndOfMessageTail", morse.EndOfMessage, 6, false, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eoc, eow, eom := Markers(tt.glyph, tt.tick)
			assert.Equal(t, tt.eoc, eoc)
			assert.Equal(t, tt.eow, eow)
			assert.Equal(t, tt.eom, eom)
		})
	}
}
