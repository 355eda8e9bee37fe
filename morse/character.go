// Package morse maps printable characters to clock-tick pulse patterns using the
// international timing ratios.
package morse

import (
	"errors"
	"fmt"
	"strings"
)

// Timing in clock ticks, one tick is one dit
const (
	DitLen        = 1
	DahLen        = 3 * DitLen
	SymbolGapLen  = DitLen
	CharGapLen    = 3 * DitLen
	WordGapLen    = 7 * DitLen
	MessageGapLen = 7 * DitLen
)

// Canonical pattern notation. DahAlt is accepted on input.
const (
	Dit    = '.'
	Dah    = '_'
	DahAlt = '-'
)

var (
	ErrInvalidPattern   = errors.New("invalid morse pattern")
	ErrUnknownCharacter = errors.New("unknown character")
)

// Symbol is a single element of a character's sequence
type Symbol int

const (
	SymbolDot Symbol = iota
	SymbolDash
	SymbolGap
)

func (s Symbol) String() string {
	switch s {
	case SymbolDot:
		return "."
	case SymbolDash:
		return "_"
	default:
		return " "
	}
}

// ticks returns the gate level and number of ticks the symbol occupies
func (s Symbol) ticks() (bool, int) {
	switch s {
	case SymbolDot:
		return true, DitLen
	case SymbolDash:
		return true, DahLen
	default:
		return false, SymbolGapLen
	}
}

// Kind separates playable glyphs from the synthetic boundary markers
type Kind int

const (
	KindGlyph Kind = iota
	KindEndOfCharacter
	KindEndOfWord
	KindEndOfMessage
	KindError
)

// Character is an immutable glyph with its expanded pulse pattern
type Character struct {
	label   string
	kind    Kind
	symbols []Symbol
	pulses  []bool
}

// Encode expands a canonical dot/dash pattern into its symbol sequence, inserting a gap
// between every pair of elements
func Encode(pattern string) ([]Symbol, error) {
	if pattern == "" {
		return nil, fmt.Errorf("%w: empty", ErrInvalidPattern)
	}

	symbols := make([]Symbol, 0, 2*len(pattern)-1)
	for i, r := range pattern {
		if i > 0 {
			symbols = append(symbols, SymbolGap)
		}
		switch r {
		case Dit:
			symbols = append(symbols, SymbolDot)
		case Dah, DahAlt:
			symbols = append(symbols, SymbolDash)
		default:
			return nil, fmt.Errorf("%w: %q", ErrInvalidPattern, pattern)
		}
	}
	return symbols, nil
}

// Pulses expands symbols to one gate level per clock tick
func Pulses(symbols []Symbol) []bool {
	var pulses []bool
	for _, s := range symbols {
		level, n := s.ticks()
		for range n {
			pulses = append(pulses, level)
		}
	}
	return pulses
}

// NewCharacter builds the glyph for label from its canonical pattern
func NewCharacter(label string, pattern string) (*Character, error) {
	symbols, err := Encode(pattern)
	if err != nil {
		return nil, fmt.Errorf("error encoding %q: %w", label, err)
	}
	return &Character{
		label:   label,
		kind:    KindGlyph,
		symbols: symbols,
		pulses:  Pulses(symbols),
	}, nil
}

func mustCharacter(label string, pattern string) *Character {
	c, err := NewCharacter(label, pattern)
	if err != nil {
		panic(err)
	}
	return c
}

func newBoundary(label string, kind Kind, ticks int) *Character {
	symbols := make([]Symbol, ticks)
	for i := range symbols {
		symbols[i] = SymbolGap
	}
	return &Character{
		label:   label,
		kind:    kind,
		symbols: symbols,
		pulses:  Pulses(symbols),
	}
}

// Boundary markers and the diagnostic error glyph. These are never part of a Table.
var (
	EndOfCharacter = newBoundary("EOC", KindEndOfCharacter, CharGapLen)
	EndOfWord      = newBoundary("EOW", KindEndOfWord, WordGapLen)
	EndOfMessage   = newBoundary("EOM", KindEndOfMessage, MessageGapLen)
	Error          = func() *Character {
		c := mustCharacter("ERROR", strings.Repeat(string(Dit), 8))
		c.kind = KindError
		return c
	}()
)

func (c *Character) Label() string {
	return c.label
}

func (c *Character) Kind() Kind {
	return c.kind
}

// IsBoundary is true for end-of-character, end-of-word and end-of-message markers
func (c *Character) IsBoundary() bool {
	switch c.kind {
	case KindEndOfCharacter, KindEndOfWord, KindEndOfMessage:
		return true
	default:
		return false
	}
}

// Duration is the number of clock ticks needed to play the character
func (c *Character) Duration() int {
	return len(c.pulses)
}

// Pulse returns the gate level at tick i. Out of range ticks are low.
func (c *Character) Pulse(i int) bool {
	if i < 0 || i >= len(c.pulses) {
		return false
	}
	return c.pulses[i]
}

// Pulses returns a copy of the pulse pattern
func (c *Character) Pulses() []bool {
	return append([]bool(nil), c.pulses...)
}

// Symbols returns a copy of the symbol sequence
func (c *Character) Symbols() []Symbol {
	return append([]Symbol(nil), c.symbols...)
}

// Pattern is the canonical dot/dash notation, empty for boundary markers
func (c *Character) Pattern() string {
	var sb strings.Builder
	for _, s := range c.symbols {
		if s != SymbolGap {
			sb.WriteString(s.String())
		}
	}
	return sb.String()
}

// Sequence is the display form of the symbols, e.g. ". . ." for S
func (c *Character) Sequence() string {
	var sb strings.Builder
	for _, s := range c.symbols {
		sb.WriteString(s.String())
	}
	return sb.String()
}

func (c *Character) String() string {
	return c.label
}
