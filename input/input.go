// Package input turns raw front-panel readings into the discrete values the controller uses
package input

import (
	"math"
	"sync/atomic"
	"time"

	"github.com/calvinmclean/euromorse"
)

const (
	ShortPressInterval = 600 * time.Millisecond  // feels about 1 second
	LongPressInterval  = 2400 * time.Millisecond // feels about 4 seconds

	// DefaultAnalogThreshold is the analog input level below which text selection is left alone
	DefaultAnalogThreshold = 0.1
)

// Knob is a bounded control read as a fraction in [0, 1]
type Knob interface {
	Percent() float64
}

// Range quantizes the knob into one of steps buckets, 0 to steps-1
func Range(k Knob, steps int) int {
	if k == nil || steps <= 0 {
		return 0
	}
	return Quantize(k.Percent(), steps)
}

// Quantize maps percent in [0, 1] onto 0 to steps-1
func Quantize(percent float64, steps int) int {
	if steps <= 0 || math.IsNaN(percent) {
		return 0
	}
	return max(0, min(int(percent*float64(steps)), steps-1))
}

// TextJump returns the text index selected by an analog level. ok is false while the level
// is at or below threshold.
func TextJump(percent, threshold float64, texts int) (index int, ok bool) {
	if texts <= 0 || !(percent > threshold) {
		return 0, false
	}
	index = int((percent - threshold) * float64(texts))
	return max(0, min(index, texts-1)), true
}

// Classify converts how long a button was held into a press event
func Classify(held time.Duration) euromorse.Press {
	switch {
	case held >= LongPressInterval:
		return euromorse.PressLong
	case held >= ShortPressInterval:
		return euromorse.PressShort
	default:
		return euromorse.PressClick
	}
}

// Sim is a knob or analog input whose position is set in software
type Sim struct {
	bits atomic.Uint64
}

var _ Knob = &Sim{}

// Set stores percent clamped to [0, 1]
func (s *Sim) Set(percent float64) {
	if math.IsNaN(percent) {
		percent = 0
	}
	s.bits.Store(math.Float64bits(max(0, min(percent, 1))))
}

func (s *Sim) Percent() float64 {
	return math.Float64frombits(s.bits.Load())
}
