package controller

import "github.com/calvinmclean/euromorse/input"

// noopAnalog is used when no analog input is connected. It never selects a text.
type noopAnalog struct{}

var _ input.Knob = noopAnalog{}

// Percent implements input.Knob.
func (noopAnalog) Percent() float64 {
	return 0
}
