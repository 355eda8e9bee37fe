package controller

import (
	"sync/atomic"

	"github.com/calvinmclean/euromorse"
	"github.com/calvinmclean/euromorse/input"
	"github.com/calvinmclean/euromorse/playback"
	"github.com/calvinmclean/euromorse/settings"
)

// Controller is the operator-facing state machine. It owns the playback cursor and routes
// button, clock and knob events to the active mode.
type Controller struct {
	cfg      Config
	settings *settings.Settings
	cursor   *playback.Cursor
	outputs  Outputs
	knob     input.Knob
	analog   input.Knob

	mode euromorse.Mode
	// parent is where AdjustPitch and SelectText return to
	parent euromorse.Mode

	// oldPitch is restored when a pitch change is reverted
	oldPitch float64
	// knobPitch and knobIndex are the last quantized knob readings. Only a change from these
	// writes to the settings.
	knobPitch float64
	knobIndex int
	// newIndex is the text chosen in SelectText, not yet committed
	newIndex int

	frame playback.Frame

	// busy guards against a clock pulse or press arriving while another event is handled
	busy    atomic.Bool
	dropped atomic.Uint64
}

// New creates a Controller in the Paused mode with all outputs off. analog may be nil.
func New(cfg Config, s *settings.Settings, outputs Outputs, knob input.Knob, analog input.Knob) *Controller {
	if analog == nil {
		analog = noopAnalog{}
	}
	if cfg.AnalogThreshold == 0 {
		cfg.AnalogThreshold = input.DefaultAnalogThreshold
	}

	c := &Controller{
		cfg:      cfg,
		settings: s,
		cursor:   playback.New(cfg.Table, s.CurrentText()),
		outputs:  outputs,
		knob:     knob,
		analog:   analog,
		mode:     euromorse.ModePaused,
		parent:   euromorse.ModePaused,
	}
	c.cursor.OnWrap(c.sampleAnalog)
	c.frame = c.cursor.Frame()
	c.allOff()
	return c
}

type event struct {
	button euromorse.Button
	press  euromorse.Press
}

type transition func(*Controller) euromorse.Mode

var (
	primaryClick   = event{euromorse.ButtonPrimary, euromorse.PressClick}
	primaryShort   = event{euromorse.ButtonPrimary, euromorse.PressShort}
	secondaryClick = event{euromorse.ButtonSecondary, euromorse.PressClick}
)

// transitions lists every button event that does something. Anything missing is a no-op.
var transitions = map[euromorse.Mode]map[event]transition{
	euromorse.ModePaused: {
		primaryClick: (*Controller).start,
	},
	euromorse.ModeRunning: {
		primaryClick:   (*Controller).pause,
		primaryShort:   (*Controller).enterAdjustPitch,
		secondaryClick: (*Controller).enterSelectText,
	},
	euromorse.ModeAdjustPitch: {
		primaryClick:   (*Controller).commitPitch,
		secondaryClick: (*Controller).revertPitch,
	},
	euromorse.ModeSelectText: {
		primaryClick:   (*Controller).commitText,
		secondaryClick: (*Controller).discardText,
	},
}

func (c *Controller) acquire() bool {
	return c.busy.CompareAndSwap(false, true)
}

func (c *Controller) release() {
	c.busy.Store(false)
}

// Press handles a classified button press and returns the resulting mode
func (c *Controller) Press(b euromorse.Button, p euromorse.Press) euromorse.Mode {
	if !c.acquire() {
		c.dropped.Add(1)
		return c.mode
	}
	defer c.release()

	t, ok := transitions[c.mode][event{b, p}]
	if !ok {
		return c.mode
	}
	c.mode = t(c)
	return c.mode
}

// Clock handles one external clock pulse. It returns false if the pulse was dropped because
// another event was still being handled.
func (c *Controller) Clock() bool {
	if !c.acquire() {
		c.dropped.Add(1)
		return false
	}
	defer c.release()

	switch {
	case c.mode == euromorse.ModeRunning:
		c.tick()
	case c.mode.Sub() && c.parent == euromorse.ModeRunning:
		// sub-modes keep playing underneath
		c.tick()
	default:
		c.allOff()
	}
	return true
}

// Update samples the knob. Only AdjustPitch and SelectText read it.
func (c *Controller) Update() {
	if !c.acquire() {
		return
	}
	defer c.release()

	switch c.mode {
	case euromorse.ModeAdjustPitch:
		v := c.knobPitchReading()
		if v == c.knobPitch {
			return
		}
		c.knobPitch = v
		if c.settings.SetPitch(v) {
			c.outputs.Voltage(euromorse.OutputPitch, c.settings.Pitch())
		}
	case euromorse.ModeSelectText:
		i := input.Range(c.knob, c.settings.Len())
		if i == c.knobIndex {
			return
		}
		c.knobIndex = i
		c.newIndex = i
	}
}

func (c *Controller) tick() {
	c.frame = c.cursor.Advance()
	c.outputs.Set(euromorse.OutputGate, c.frame.Gate)
	c.outputs.Voltage(euromorse.OutputPitch, c.settings.Pitch())
	c.outputs.Set(euromorse.OutputEndOfCharacter, c.frame.EndOfCharacter)
	c.outputs.Set(euromorse.OutputEndOfWord, c.frame.EndOfWord)
	c.outputs.Set(euromorse.OutputEndOfMessage, c.frame.EndOfMessage)
}

func (c *Controller) allOff() {
	for o := range euromorse.NumOutputs {
		c.outputs.Set(euromorse.Output(o), false)
	}
}

// sampleAnalog is called by the cursor each time the message starts over
func (c *Controller) sampleAnalog() (string, bool) {
	i, ok := input.TextJump(c.analog.Percent(), c.cfg.AnalogThreshold, c.settings.Len())
	if !ok || !c.settings.SetTextIndex(i) {
		return "", false
	}
	return c.settings.CurrentText(), true
}

func (c *Controller) knobPitchReading() float64 {
	return settings.PitchForStep(input.Range(c.knob, settings.PitchSteps+1))
}

func (c *Controller) start() euromorse.Mode {
	c.resetPlayback()
	c.outputs.Set(euromorse.OutputRunning, true)
	return euromorse.ModeRunning
}

func (c *Controller) pause() euromorse.Mode {
	c.allOff()
	c.resetPlayback()
	c.parent = euromorse.ModePaused
	return euromorse.ModePaused
}

func (c *Controller) enterAdjustPitch() euromorse.Mode {
	c.parent = euromorse.ModeRunning
	c.oldPitch = c.settings.Pitch()
	c.knobPitch = c.knobPitchReading()
	return euromorse.ModeAdjustPitch
}

func (c *Controller) commitPitch() euromorse.Mode {
	return c.parent
}

func (c *Controller) revertPitch() euromorse.Mode {
	if c.settings.SetPitch(c.oldPitch) {
		c.outputs.Voltage(euromorse.OutputPitch, c.settings.Pitch())
	}
	return c.parent
}

func (c *Controller) enterSelectText() euromorse.Mode {
	if c.settings.Len() == 0 {
		return c.mode
	}
	c.parent = euromorse.ModeRunning
	c.knobIndex = input.Range(c.knob, c.settings.Len())
	c.newIndex = c.settings.TextIndex()
	return euromorse.ModeSelectText
}

func (c *Controller) commitText() euromorse.Mode {
	c.settings.SetTextIndex(c.newIndex)
	c.resetPlayback()
	return c.parent
}

func (c *Controller) discardText() euromorse.Mode {
	return c.parent
}

// resetPlayback restarts the cursor on the selected text so no marker state carries over
func (c *Controller) resetPlayback() {
	c.cursor.SetText(c.settings.CurrentText())
	c.frame = c.cursor.Frame()
}

// Mode is the active mode
func (c *Controller) Mode() euromorse.Mode {
	return c.mode
}

// Settings returns the settings the controller mutates
func (c *Controller) Settings() *settings.Settings {
	return c.settings
}

// Frame is the output of the most recent clock pulse
func (c *Controller) Frame() playback.Frame {
	return c.frame
}

// Dropped counts clock pulses and button presses lost to the reentrancy guard
func (c *Controller) Dropped() uint64 {
	return c.dropped.Load()
}
