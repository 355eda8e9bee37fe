package morse

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// expectedDuration counts ticks directly from the notation
func expectedDuration(pattern string) int {
	d := len([]rune(pattern)) - 1
	for _, r := range pattern {
		if r == Dit {
			d += DitLen
		} else {
			d += DahLen
		}
	}
	return d
}

func TestDefaultTable(t *testing.T) {
	assert.Equal(t, len(DefaultPatterns), Default.Len())

	for r := 'A'; r <= 'Z'; r++ {
		_, err := Default.Lookup(r)
		assert.NoError(t, err, "letter %q", r)
	}
	for r := '0'; r <= '9'; r++ {
		_, err := Default.Lookup(r)
		assert.NoError(t, err, "digit %q", r)
	}

	for r, pattern := range DefaultPatterns {
		c, err := Default.Lookup(r)
		require.NoError(t, err)
		assert.Equal(t, pattern, c.Pattern())
		assert.Equal(t, expectedDuration(pattern), c.Duration(), "character %q", r)
		assert.Equal(t, c.Duration(), len(c.Pulses()))
	}
}

func TestLookupUnknown(t *testing.T) {
	for _, r := range []rune{' ', '#', '\n', 'ß'} {
		_, err := Default.Lookup(r)
		assert.ErrorIs(t, err, ErrUnknownCharacter, "character %q", r)
		assert.Same(t, Error, Default.LookupOrError(r))
	}
}

func TestLookupLowerCase(t *testing.T) {
	lower, err := Default.Lookup('s')
	require.NoError(t, err)
	upper, err := Default.Lookup('S')
	require.NoError(t, err)
	assert.Same(t, upper, lower)

	umlaut, err := Default.Lookup('ö')
	require.NoError(t, err)
	assert.Equal(t, "Ö", umlaut.Label())
}

func TestNewTableRejectsWordSeparator(t *testing.T) {
	_, err := NewTable(map[rune]string{' ': "."})
	assert.ErrorIs(t, err, ErrInvalidPattern)
}

func TestRoundTrip(t *testing.T) {
	for _, c := range Default.Characters() {
		t.Run(c.Label(), func(t *testing.T) {
			pattern, err := Decode(c.Pulses())
			require.NoError(t, err)
			assert.Equal(t, c.Pattern(), pattern)

			for _, r := range Runs(c.Pulses()) {
				if r.High {
					assert.Contains(t, []int{DitLen, DahLen}, r.Len)
				} else {
					assert.Equal(t, SymbolGapLen, r.Len)
				}
			}

			match, ok := Default.Match(pattern)
			require.True(t, ok)
			assert.Same(t, c, match)
		})
	}
}

func TestMatchAcceptsDashAlternative(t *testing.T) {
	c, ok := Default.Match("---")
	require.True(t, ok)
	assert.Equal(t, "O", c.Label())

	_, ok = Default.Match(strings.Repeat(".", 7))
	assert.False(t, ok)
}

func TestDecodeInvalid(t *testing.T) {
	tests := []struct {
		name   string
		pulses string
	}{
		{"Empty", ""},
		{"LeadingGap", "0101"},
		{"LongHigh", "11"},
		{"CharacterGap", "1000111"},
		{"OnlyLow", "000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(pulses(tt.pulses))
			assert.ErrorIs(t, err, ErrInvalidPattern)
		})
	}
}

func TestRuns(t *testing.T) {
	assert.Equal(t, []Run{{true, 3}, {false, 1}, {true, 1}}, Runs(pulses("11101")))
	assert.Empty(t, Runs(nil))
}

func TestDecodeMessage(t *testing.T) {
	tests := []struct {
		name     string
		pulses   string
		expected string
	}{
		{"SOS", "10101" + "000" + "11101110111" + "000" + "10101" + "0000000", "SOS"},
		{"TwoWords", "1" + "0000000" + "111", "E T"},
		{"LeadingGap", "000" + "1", "E"},
		{"NoTrailingGap", "101", "I"},
		{"Empty", "0000000", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, err := Default.DecodeMessage(pulses(tt.pulses))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, text)
		})
	}
}

func TestDecodeMessageErrors(t *testing.T) {
	_, err := Default.DecodeMessage(pulses("11"))
	assert.ErrorIs(t, err, ErrInvalidPattern)

	// eight dahs are neither a character nor the error glyph
	_, err = Default.DecodeMessage(pulses(strings.Repeat("1110", 7) + "111"))
	assert.ErrorIs(t, err, ErrUnknownCharacter)
}

func TestDecodeMessageErrorGlyph(t *testing.T) {
	var gate []bool
	gate = append(gate, Default.LookupOrError('A').Pulses()...)
	gate = append(gate, false, false, false)
	gate = append(gate, Error.Pulses()...)
	gate = append(gate, false, false, false, false, false, false, false)

	text, err := Default.DecodeMessage(gate)
	require.NoError(t, err)
	assert.Equal(t, "A\uFFFD", text)
}
