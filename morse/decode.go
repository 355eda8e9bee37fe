package morse

import (
	"fmt"
	"strings"
	"unicode"
)

// Run is a maximal stretch of equal gate levels
type Run struct {
	High bool
	Len  int
}

// Runs collapses a pulse pattern into alternating high and low runs
func Runs(pulses []bool) []Run {
	var runs []Run
	for _, p := range pulses {
		if n := len(runs); n > 0 && runs[n-1].High == p {
			runs[n-1].Len++
			continue
		}
		runs = append(runs, Run{High: p, Len: 1})
	}
	return runs
}

// Decode recovers the canonical pattern of a single character from its pulses. High runs
// must be dits or dahs and low runs must be symbol gaps.
func Decode(pulses []bool) (string, error) {
	var sb strings.Builder
	for i, r := range Runs(pulses) {
		switch {
		case r.High && r.Len == DitLen:
			sb.WriteRune(Dit)
		case r.High && r.Len == DahLen:
			sb.WriteRune(Dah)
		case !r.High && r.Len == SymbolGapLen && i > 0:
			continue
		default:
			return "", fmt.Errorf("%w: run %d has length %d", ErrInvalidPattern, i, r.Len)
		}
	}
	if sb.Len() == 0 {
		return "", fmt.Errorf("%w: no symbols", ErrInvalidPattern)
	}
	return sb.String(), nil
}

// DecodeMessage recovers text from the gate pulses of a played message. Low runs of at least
// WordGapLen separate words and shorter runs of at least CharGapLen separate characters.
// Gaps at either end are ignored. The error glyph decodes as unicode.ReplacementChar.
func (t *Table) DecodeMessage(pulses []bool) (string, error) {
	var (
		sb    strings.Builder
		start = -1
		pos   int
	)

	flush := func(end int) error {
		if start < 0 {
			return nil
		}
		pattern, err := Decode(pulses[start:end])
		if err != nil {
			return err
		}
		c, ok := t.Match(pattern)
		switch {
		case ok:
			sb.WriteString(c.Label())
		case pattern == Error.Pattern():
			sb.WriteRune(unicode.ReplacementChar)
		default:
			return fmt.Errorf("%w: %q", ErrUnknownCharacter, pattern)
		}
		start = -1
		return nil
	}

	for _, r := range Runs(pulses) {
		switch {
		case r.High && start < 0:
			start = pos
		case !r.High && r.Len >= CharGapLen:
			err := flush(pos)
			if err != nil {
				return "", err
			}
			if r.Len >= WordGapLen && sb.Len() > 0 && pos+r.Len < len(pulses) {
				sb.WriteRune(WordSeparator)
			}
		}
		pos += r.Len
	}

	err := flush(pos)
	if err != nil {
		return "", err
	}
	return sb.String(), nil
}
