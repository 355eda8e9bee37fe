//go:build tinygo

package device

import (
	"errors"
	"machine"

	"github.com/calvinmclean/euromorse"
	"github.com/calvinmclean/euromorse/controller"
)

// pwmPeriod is the PWM period in nanoseconds. The output filter smooths it into a DC voltage.
const pwmPeriod = 1e9 / 100_000

type output struct {
	pwm     PWM
	channel uint8
}

// Outputs drives the CV jacks. Gates are written as controller.GateVoltage.
type Outputs struct {
	outputs    [euromorse.NumOutputs]output
	maxVoltage float64
}

var _ controller.Outputs = &Outputs{}

// NewOutputs configures a PWM channel for each output jack
func NewOutputs(cfg Config) (*Outputs, error) {
	o := &Outputs{maxVoltage: cfg.MaxVoltage}
	if o.maxVoltage <= 0 {
		return nil, errors.New("invalid max voltage")
	}

	for i, outCfg := range cfg.Outputs {
		err := outCfg.PWM.Configure(machine.PWMConfig{Period: pwmPeriod})
		if err != nil {
			return nil, errors.New("error configuring PWM: " + err.Error())
		}

		ch, err := outCfg.PWM.Channel(outCfg.Pin)
		if err != nil {
			return nil, errors.New("error getting PWM channel: " + err.Error())
		}
		o.outputs[i] = output{pwm: outCfg.PWM, channel: ch}
	}

	return o, nil
}

func (o *Outputs) Set(out euromorse.Output, on bool) {
	v := 0.0
	if on {
		v = controller.GateVoltage
	}
	o.Voltage(out, v)
}

func (o *Outputs) Voltage(out euromorse.Output, v float64) {
	if int(out) < 0 || int(out) >= len(o.outputs) {
		return
	}
	ch := o.outputs[out]
	duty := max(0, min(v/o.maxVoltage, 1))
	ch.pwm.Set(ch.channel, uint32(duty*float64(ch.pwm.Top())))
}
