package morse

import (
	"fmt"
	"sort"
	"unicode"
)

// WordSeparator is detected structurally and never looked up in a Table
const WordSeparator = ' '

// Table maps a printable character to its glyph. It is read-only after construction.
type Table struct {
	chars    map[rune]*Character
	patterns map[string]*Character
}

// NewTable builds a table from label to canonical pattern
func NewTable(patterns map[rune]string) (*Table, error) {
	t := &Table{
		chars:    make(map[rune]*Character, len(patterns)),
		patterns: make(map[string]*Character, len(patterns)),
	}
	for r, p := range patterns {
		if r == WordSeparator {
			return nil, fmt.Errorf("%w: word separator cannot be encoded", ErrInvalidPattern)
		}
		c, err := NewCharacter(string(r), p)
		if err != nil {
			return nil, err
		}
		t.chars[r] = c
		t.patterns[c.Pattern()] = c
	}
	return t, nil
}

// Lookup returns the glyph for r. Lower-case letters are looked up as upper-case.
func (t *Table) Lookup(r rune) (*Character, error) {
	if c, ok := t.chars[r]; ok {
		return c, nil
	}
	if c, ok := t.chars[unicode.ToUpper(r)]; ok {
		return c, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownCharacter, r)
}

// LookupOrError substitutes the diagnostic Error glyph for unsupported characters
func (t *Table) LookupOrError(r rune) *Character {
	c, err := t.Lookup(r)
	if err != nil {
		return Error
	}
	return c
}

// Match finds the character with the given canonical pattern
func (t *Table) Match(pattern string) (*Character, bool) {
	symbols, err := Encode(pattern)
	if err != nil {
		return nil, false
	}
	c, ok := t.patterns[(&Character{symbols: symbols}).Pattern()]
	return c, ok
}

// Len is the number of encodable characters
func (t *Table) Len() int {
	return len(t.chars)
}

// Characters lists all glyphs ordered by label
func (t *Table) Characters() []*Character {
	result := make([]*Character, 0, len(t.chars))
	for _, c := range t.chars {
		result = append(result, c)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].label < result[j].label
	})
	return result
}

// DefaultPatterns is the supported alphabet
var DefaultPatterns = map[rune]string{
	// latin letters
	'A': "._", 'B': "_...", 'C': "_._.", 'D': "_..", 'E': ".",
	'F': ".._.", 'G': "__.", 'H': "....", 'I': "..", 'J': ".___",
	'K': "_._", 'L': "._..", 'M': "__", 'N': "_.", 'O': "___",
	'P': ".__.", 'Q': "__._", 'R': "._.", 'S': "...", 'T': "_",
	'U': ".._", 'V': "..._", 'W': ".__", 'X': "_.._", 'Y': "_.__",
	'Z': "__..",

	// digits
	'1': ".____", '2': "..___", '3': "...__", '4': "...._", '5': ".....",
	'6': "_....", '7': "__...", '8': "___..", '9': "____.", '0': "_____",

	// accented letters
	'Á': ".__._", 'Ä': "._._", 'É': ".._..", 'Ñ': "__.__", 'Ö': "___.", 'Ü': "..__",

	// punctuation
	'.': "._._._", ',': "__..__", ':': "___...", ';': "_._._.",
	'?': "..__..", '!': "_._.__", '-': "_...._", '_': "..__._",
	'(': "_.__.", ')': "_.__._", '\'': ".____.", '=': "_..._",
	'+': "._._.", '/': "_.._.", '@': ".__._.", '"': "._.._.",
}

// Default is the table built from DefaultPatterns
var Default = func() *Table {
	t, err := NewTable(DefaultPatterns)
	if err != nil {
		panic(err)
	}
	return t
}()
