// Package device assembles a complete module from the controller, its settings store and
// the front-panel inputs. Both the firmware and the host simulator run one Device.
package device

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/calvinmclean/euromorse"
	"github.com/calvinmclean/euromorse/controller"
	"github.com/calvinmclean/euromorse/input"
	"github.com/calvinmclean/euromorse/settings"
)

// ErrNotSimulated is returned when setting an input that is read from hardware
var ErrNotSimulated = errors.New("input is not simulated")

// Config has the values needed to assemble a Device
type Config struct {
	Controller   controller.Config
	SaveInterval time.Duration
	Verbose      bool

	// Now is the clock used for save intervals and log timestamps. Defaults to time.Now.
	Now func() time.Time
}

// Device is one morse module. It is driven from a single goroutine: clock pulses, button
// presses and Step calls must not overlap. Other goroutines go through a Queue.
type Device struct {
	ctrl     *controller.Controller
	settings *settings.Settings
	saver    *settings.Saver
	knob     input.Knob
	analog   input.Knob

	in  io.ByteReader
	out io.Writer
	now func() time.Time

	// startTime is set when playback first starts and is used for log timestamps
	startTime time.Time
	verbose   bool
}

// New loads the settings from store and creates a paused Device. Commands are read from in
// and log lines written to out; either may be nil.
func New(cfg Config, store settings.Store, outputs controller.Outputs, knob, analog input.Knob, in io.ByteReader, out io.Writer) *Device {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if out == nil {
		out = io.Discard
	}

	d := &Device{
		knob:    knob,
		analog:  analog,
		in:      in,
		out:     out,
		now:     cfg.Now,
		verbose: cfg.Verbose,
	}

	s, err := settings.Load(store)
	if err != nil {
		d.logf("error loading state, using defaults: %v", err)
	}
	d.settings = s
	d.saver = settings.NewSaver(store, cfg.SaveInterval, cfg.Now())
	d.ctrl = controller.New(cfg.Controller, s, outputs, knob, analog)

	return d
}

// Clock handles one clock pulse
func (d *Device) Clock() {
	if !d.ctrl.Clock() && d.verbose {
		d.logf("dropped clock pulse")
	}
}

// Press handles a classified button press
func (d *Device) Press(b euromorse.Button, p euromorse.Press) euromorse.Mode {
	from := d.ctrl.Mode()
	dropped := d.ctrl.Dropped()
	to := d.ctrl.Press(b, p)
	if d.ctrl.Dropped() != dropped {
		if d.verbose {
			d.logf("dropped %s %s", b, p)
		}
		return to
	}

	if to == euromorse.ModeRunning && d.startTime.IsZero() {
		d.startTime = d.now()
	}
	if d.verbose {
		d.logf("%s %s: %s -> %s", b, p, from, to)
	}
	return to
}

// Step is one pass of the slow path: sample the knob, then save settings if they changed and
// enough time has passed since the last save
func (d *Device) Step() {
	d.ctrl.Update()

	saved, err := d.saver.SaveIfDirty(d.settings, d.now())
	if err != nil {
		d.logf("error: %v", err)
		return
	}
	if saved && d.verbose {
		d.logf("saved state")
	}
}

// Flush saves unsaved settings right away. It is called on shutdown.
func (d *Device) Flush() error {
	return d.saver.Flush(d.settings, d.now())
}

// SetKnob moves a simulated knob
func (d *Device) SetKnob(percent float64) error {
	return setSim(d.knob, percent)
}

// SetAnalog sets a simulated analog input level
func (d *Device) SetAnalog(percent float64) error {
	return setSim(d.analog, percent)
}

func setSim(k input.Knob, percent float64) error {
	sim, ok := k.(*input.Sim)
	if !ok || sim == nil {
		return ErrNotSimulated
	}
	sim.Set(percent)
	return nil
}

// Snapshot returns the state for a display renderer
func (d *Device) Snapshot() controller.Snapshot {
	return d.ctrl.Snapshot()
}

// Mode is the active mode
func (d *Device) Mode() euromorse.Mode {
	return d.ctrl.Mode()
}

// Settings returns the live settings
func (d *Device) Settings() *settings.Settings {
	return d.settings
}

// Debug prints a one-line summary of the Device's state
func (d *Device) Debug() {
	s := d.ctrl.Snapshot()
	gate := 0
	if s.Gate {
		gate = 1
	}
	d.logf("%s text=%d pitch=%1.3f glyph=%s gate=%d", s.Mode, s.TextIndex, s.Pitch, s.Label, gate)
}

// Verbose enables a log line for every transition and save
func (d *Device) Verbose() {
	d.verbose = true
	d.logf("Set Verbose Mode")
}

// Println writes a line without a timestamp
func (d *Device) Println(line string) {
	fmt.Fprintln(d.out, line)
}

// ReadByte reads the next command byte
func (d *Device) ReadByte() (byte, error) {
	if d.in == nil {
		return 0, io.EOF
	}
	return d.in.ReadByte()
}

func (d *Device) logf(format string, args ...any) {
	fmt.Fprintf(d.out, d.ts()+" "+format+"\n", args...)
}

// ts returns the duration timestamp for logging
func (d *Device) ts() string {
	if d.startTime.IsZero() {
		return "[-]"
	}
	return "[" + d.now().Sub(d.startTime).Round(time.Millisecond).String() + "]"
}
