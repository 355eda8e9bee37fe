// Package settings holds the process-wide module state that survives power cycles
package settings

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Pitch range in volts. One semitone is 1/12 V.
const (
	DefaultPitch = 4.333 // roughly E4 (659 Hz)
	MinPitch     = 3.250 // roughly Eb3 (311 Hz)
	MaxPitch     = 5.0   // roughly C5 (1047 Hz)
	Semitone     = 1.0 / 12

	PitchSteps = int((MaxPitch - MinPitch) * 12)
)

var ErrMalformedState = errors.New("malformed state")

// DefaultTexts is used when no state has been stored
var DefaultTexts = []string{
	"HELLO WORLD",
	"TEMPUS FUGIT",
	"SOS",
	"HELP",
	"EVE",
	"OMNE VIVUM EX VIVO",
	"THAT'S ONE SMALL STEP FOR A MAN, ONE GIANT LEAP FOR MANKIND.",
	"IM ANFANG WAR DAS WORT!",
	"IM ANFANG WAR DER SINN.",
	"IM ANFANG WAR DIE KRAFT!",
	"IM ANFANG WAR DIE THAT!",
}

// Settings is mutated only through its setters so the dirty flag tracks every real change
type Settings struct {
	pitch     float64
	textIndex int
	texts     []string
	dirty     bool
}

// Default returns settings with the default pitch and built-in texts
func Default() *Settings {
	return &Settings{
		pitch:     DefaultPitch,
		textIndex: 0,
		texts:     append([]string(nil), DefaultTexts...),
	}
}

// New creates settings for texts. There must be at least one text and none may be empty,
// since the stored form has one text per line. Pitch and index are clamped.
func New(pitch float64, textIndex int, texts []string) (*Settings, error) {
	if len(texts) == 0 {
		return nil, fmt.Errorf("%w: no texts", ErrMalformedState)
	}
	for i, text := range texts {
		if text == "" {
			return nil, fmt.Errorf("%w: text %d is empty", ErrMalformedState, i)
		}
	}
	s := &Settings{texts: append([]string(nil), texts...)}
	s.pitch = ClampPitch(pitch)
	s.textIndex = s.clampIndex(textIndex)
	return s, nil
}

// Parse reads the stored form: pitch on the first line, text index on the second and one
// text per remaining line
func Parse(raw string) (*Settings, error) {
	lines := strings.Split(strings.ReplaceAll(raw, "\r\n", "\n"), "\n")
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	if len(lines) < 3 {
		return nil, fmt.Errorf("%w: expected at least 3 lines, got %d", ErrMalformedState, len(lines))
	}

	pitch, err := strconv.ParseFloat(strings.TrimSpace(lines[0]), 64)
	if err != nil || math.IsNaN(pitch) {
		return nil, fmt.Errorf("%w: invalid pitch %q", ErrMalformedState, lines[0])
	}

	textIndex, err := strconv.Atoi(strings.TrimSpace(lines[1]))
	if err != nil {
		return nil, fmt.Errorf("%w: invalid text index %q", ErrMalformedState, lines[1])
	}

	return New(pitch, textIndex, lines[2:])
}

// Serialize returns the stored form read by Parse
func (s *Settings) Serialize() string {
	return fmt.Sprintf("%1.3f\n%d\n", s.pitch, s.textIndex) + strings.Join(s.texts, "\n")
}

func (s *Settings) Pitch() float64 {
	return s.pitch
}

// SetPitch clamps v to the pitch range and reports whether the stored value changed
func (s *Settings) SetPitch(v float64) bool {
	v = ClampPitch(v)
	if v == s.pitch {
		return false
	}
	s.pitch = v
	s.dirty = true
	return true
}

func (s *Settings) TextIndex() int {
	return s.textIndex
}

// SetTextIndex clamps i to the text list and reports whether the stored value changed
func (s *Settings) SetTextIndex(i int) bool {
	i = s.clampIndex(i)
	if i == s.textIndex {
		return false
	}
	s.textIndex = i
	s.dirty = true
	return true
}

func (s *Settings) clampIndex(i int) int {
	return max(0, min(i, len(s.texts)-1))
}

// Len is the number of selectable texts
func (s *Settings) Len() int {
	return len(s.texts)
}

// Text returns the text at i, clamped to the list
func (s *Settings) Text(i int) string {
	return s.texts[s.clampIndex(i)]
}

// CurrentText is the selected text
func (s *Settings) CurrentText() string {
	return s.texts[s.textIndex]
}

// Texts returns a copy of the text list
func (s *Settings) Texts() []string {
	return append([]string(nil), s.texts...)
}

// Dirty reports unsaved changes
func (s *Settings) Dirty() bool {
	return s.dirty
}

// MarkSaved clears the dirty flag after a successful save
func (s *Settings) MarkSaved() {
	s.dirty = false
}

// ClampPitch limits v to [MinPitch, MaxPitch]
func ClampPitch(v float64) float64 {
	if math.IsNaN(v) {
		return DefaultPitch
	}
	return max(MinPitch, min(v, MaxPitch))
}

// PitchForStep converts a knob step in [0, PitchSteps] to volts
func PitchForStep(step int) float64 {
	step = max(0, min(step, PitchSteps))
	return MinPitch + float64(step)/12
}
