package controller

import (
	"github.com/calvinmclean/euromorse/input"
	"github.com/calvinmclean/euromorse/morse"
)

// Config has the tunable values for a Controller
type Config struct {
	// Table is the character table used for playback. Defaults to morse.Default.
	Table *morse.Table

	// AnalogThreshold is the analog input level that must be exceeded before the input
	// selects a text at the start of each message
	AnalogThreshold float64
}

// DefaultConfig returns the values used by the hardware module
func DefaultConfig() Config {
	return Config{
		Table:           morse.Default,
		AnalogThreshold: input.DefaultAnalogThreshold,
	}
}
