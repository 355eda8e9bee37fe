//go:build tinygo

package device

import (
	"machine"
	"sync/atomic"
	"time"

	"github.com/calvinmclean/euromorse"
	"github.com/calvinmclean/euromorse/input"
)

// Analog reads an ADC pin as a fraction of fullScale
type Analog struct {
	adc       machine.ADC
	fullScale uint16
	invert    bool
}

var _ input.Knob = &Analog{}

// NewAnalog configures an ADC pin. Knobs on the EuroPi read high when turned left, so they
// are inverted.
func NewAnalog(pin machine.Pin, fullScale uint16, invert bool) *Analog {
	adc := machine.ADC{Pin: pin}
	adc.Configure(machine.ADCConfig{})
	if fullScale == 0 {
		fullScale = 0xFFFF
	}
	return &Analog{adc: adc, fullScale: fullScale, invert: invert}
}

func (a *Analog) Percent() float64 {
	p := min(float64(a.adc.Get())/float64(a.fullScale), 1)
	if a.invert {
		return 1 - p
	}
	return p
}

// Button tracks one front-panel button. The inputs are pulled up, so pressed reads low.
type Button struct {
	pin      machine.Pin
	button   euromorse.Button
	debounce time.Duration

	tracker  input.ButtonTracker
	lastEdge time.Time
}

func NewButton(pin machine.Pin, button euromorse.Button, debounce time.Duration) *Button {
	pin.Configure(machine.PinConfig{Mode: machine.PinInputPullup})
	return &Button{pin: pin, button: button, debounce: debounce}
}

// Poll samples the button and returns the press once it is released
func (b *Button) Poll(now time.Time) (euromorse.Press, bool) {
	pressed := !b.pin.Get()
	if pressed == b.tracker.Held() || now.Sub(b.lastEdge) < b.debounce {
		return euromorse.PressClick, false
	}
	b.lastEdge = now

	if pressed {
		b.tracker.Down(now)
		return euromorse.PressClick, false
	}
	return b.tracker.Up(now)
}

// ClockIn latches rising clock edges. The input is inverted by the protection circuit, so a
// rising edge at the jack is a falling edge at the pin.
type ClockIn struct {
	pending atomic.Uint32
	missed  atomic.Uint32
}

func NewClockIn(pin machine.Pin) (*ClockIn, error) {
	c := &ClockIn{}
	pin.Configure(machine.PinConfig{Mode: machine.PinInput})
	err := pin.SetInterrupt(machine.PinFalling, func(machine.Pin) {
		c.pending.Add(1)
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Take reports whether an edge arrived since the last call. Edges beyond the first are not
// queued, they are counted as missed.
func (c *ClockIn) Take() bool {
	n := c.pending.Swap(0)
	if n > 1 {
		c.missed.Add(n - 1)
	}
	return n > 0
}

// Missed is the number of edges lost because they arrived faster than they were taken
func (c *ClockIn) Missed() uint32 {
	return c.missed.Load()
}

// Button is the front-panel button this tracks
func (b *Button) Button() euromorse.Button {
	return b.button
}
