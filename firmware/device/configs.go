//go:build tinygo

package device

import (
	"machine"
	"time"
)

// OutputConfig is one CV output jack driven by a PWM channel through the output filter
type OutputConfig struct {
	Pin machine.Pin
	PWM PWM
}

// PWM is the part of a TinyGo PWM group used for the CV outputs
type PWM interface {
	Configure(config machine.PWMConfig) error
	Channel(pin machine.Pin) (uint8, error)
	Top() uint32
	Set(channel uint8, value uint32)
}

// Config is the pin map of the module
type Config struct {
	// Outputs are indexed by euromorse.Output
	Outputs    [6]OutputConfig
	MaxVoltage float64

	ClockIn   machine.Pin
	Knob      machine.Pin
	AnalogIn  machine.Pin
	Buttons   [2]machine.Pin
	Debounce  time.Duration
	AnalogMax uint16

	I2C        *machine.I2C
	SDA        machine.Pin
	SCL        machine.Pin
	OLEDWidth  int16
	OLEDHeight int16
	OLEDAddr   uint16
}

// EuroPi is the pin map of the EuroPi module
var EuroPi = Config{
	Outputs: [6]OutputConfig{
		{Pin: machine.GP21, PWM: machine.PWM2},
		{Pin: machine.GP20, PWM: machine.PWM2},
		{Pin: machine.GP16, PWM: machine.PWM0},
		{Pin: machine.GP17, PWM: machine.PWM0},
		{Pin: machine.GP18, PWM: machine.PWM1},
		{Pin: machine.GP19, PWM: machine.PWM1},
	},
	MaxVoltage: 10,

	ClockIn:  machine.GP22,
	Knob:     machine.ADC1,
	AnalogIn: machine.ADC0,
	Buttons:  [2]machine.Pin{machine.GP4, machine.GP5},
	Debounce: 5 * time.Millisecond,
	// the analog input tops out around 10V
	AnalogMax: 0xFFFF,

	I2C:        machine.I2C0,
	SDA:        machine.GP0,
	SCL:        machine.GP1,
	OLEDWidth:  128,
	OLEDHeight: 32,
	OLEDAddr:   0x3C,
}
