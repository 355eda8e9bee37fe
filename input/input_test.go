package input

import (
	"math"
	"testing"
	"time"

	"github.com/calvinmclean/euromorse"
	"github.com/stretchr/testify/assert"
)

func TestQuantize(t *testing.T) {
	tests := []struct {
		name     string
		percent  float64
		steps    int
		expected int
	}{
		{"Zero", 0, 10, 0},
		{"Full", 1, 10, 9},
		{"Middle", 0.55, 10, 5},
		{"AboveRange", 1.5, 10, 9},
		{"BelowRange", -0.5, 10, 0},
		{"NaN", math.NaN(), 10, 0},
		{"NoSteps", 0.5, 0, 0},
		{"PitchTop", 1, 22, 21},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Quantize(tt.percent, tt.steps))
		})
	}
}

func TestRange(t *testing.T) {
	var k Sim
	assert.Equal(t, 0, Range(&k, 5))

	k.Set(0.99)
	assert.Equal(t, 4, Range(&k, 5))
	assert.Equal(t, 0, Range(nil, 5))
}

func TestSimClamps(t *testing.T) {
	var k Sim
	k.Set(2)
	assert.Equal(t, 1.0, k.Percent())
	k.Set(-1)
	assert.Equal(t, 0.0, k.Percent())
	k.Set(math.NaN())
	assert.Equal(t, 0.0, k.Percent())
}

func TestTextJump(t *testing.T) {
	tests := []struct {
		name    string
		percent float64
		texts   int
		index   int
		ok      bool
	}{
		{"BelowThreshold", 0.05, 10, 0, false},
		{"AtThreshold", 0.1, 10, 0, false},
		{"JustAbove", 0.15, 10, 0, true},
		{"Middle", 0.5, 10, 4, true},
		{"Full", 1.0, 10, 9, true},
		{"NoTexts", 0.5, 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			index, ok := TextJump(tt.percent, DefaultAnalogThreshold, tt.texts)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.index, index)
		})
	}
}

func TestClassify(t *testing.T) {
	assert.Equal(t, euromorse.PressClick, Classify(0))
	assert.Equal(t, euromorse.PressClick, Classify(599*time.Millisecond))
	assert.Equal(t, euromorse.PressShort, Classify(600*time.Millisecond))
	assert.Equal(t, euromorse.PressShort, Classify(2399*time.Millisecond))
	assert.Equal(t, euromorse.PressLong, Classify(2400*time.Millisecond))
}

func TestButtonTracker(t *testing.T) {
	var b ButtonTracker
	start := time.Now()

	_, ok := b.Up(start)
	assert.False(t, ok)

	b.Down(start)
	assert.True(t, b.Held())
	p, ok := b.Up(start.Add(time.Second))
	assert.True(t, ok)
	assert.Equal(t, euromorse.PressShort, p)
	assert.False(t, b.Held())

	b.Down(start)
	p, _ = b.Up(start.Add(50 * time.Millisecond))
	assert.Equal(t, euromorse.PressClick, p)
}
