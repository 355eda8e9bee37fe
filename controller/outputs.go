package controller

import (
	"fmt"
	"strings"

	"github.com/calvinmclean/euromorse"
)

// Outputs drives the CV output jacks
type Outputs interface {
	// Set switches a gate output fully on or off
	Set(o euromorse.Output, on bool)
	// Voltage sets an output to v volts
	Voltage(o euromorse.Output, v float64)
}

// GateVoltage is the level of a gate output that is on
const GateVoltage = 5.0

// Jacks records the last value written to every output
type Jacks struct {
	levels [euromorse.NumOutputs]float64
}

var _ Outputs = &Jacks{}

func (j *Jacks) Set(o euromorse.Output, on bool) {
	if on {
		j.Voltage(o, GateVoltage)
	} else {
		j.Voltage(o, 0)
	}
}

func (j *Jacks) Voltage(o euromorse.Output, v float64) {
	if int(o) < 0 || int(o) >= len(j.levels) {
		return
	}
	j.levels[o] = v
}

// Level is the last voltage written to o
func (j *Jacks) Level(o euromorse.Output) float64 {
	if int(o) < 0 || int(o) >= len(j.levels) {
		return 0
	}
	return j.levels[o]
}

// On reports whether o is above zero
func (j *Jacks) On(o euromorse.Output) bool {
	return j.Level(o) > 0
}

// String formats all outputs like "GATE=1 EOC=0 EOW=0 PITCH=4.333 EOM=0 RUN=1"
func (j *Jacks) String() string {
	parts := make([]string, 0, len(j.levels))
	for i, v := range j.levels {
		o := euromorse.Output(i)
		if o == euromorse.OutputPitch {
			parts = append(parts, fmt.Sprintf("%s=%1.3f", o, v))
			continue
		}
		on := 0
		if v > 0 {
			on = 1
		}
		parts = append(parts, fmt.Sprintf("%s=%d", o, on))
	}
	return strings.Join(parts, " ")
}
