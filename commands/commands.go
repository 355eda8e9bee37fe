// Package commands implements the single-byte serial protocol used to drive a module from a
// host: one flag byte followed by a fixed number of argument bytes.
package commands

import (
	"errors"
	"fmt"
	"io"

	"github.com/calvinmclean/euromorse"
)

type Command struct {
	Flag        byte
	InputSize   uint
	Run         func(Controller, []byte) error
	Description string
}

// Controller is used to control a module
type Controller interface {
	Clock()
	Press(euromorse.Button, euromorse.Press) euromorse.Mode
	SetKnob(float64) error
	SetAnalog(float64) error
	Step()
	Debug()
	Verbose()

	// I/O
	Println(string)
	ReadByte() (byte, error)
}

var ErrInvalidInput = errors.New("invalid input")

var (
	TickCommand = &Command{
		Flag:      'T',
		InputSize: 0,
		Run: func(c Controller, _ []byte) error {
			c.Clock()
			return nil
		},
		Description: "Send one clock pulse.",
	}
	TicksCommand = &Command{
		Flag:      'N',
		InputSize: 2,
		Run: func(c Controller, b []byte) error {
			n, err := b2i(b[0], b[1])
			if err != nil {
				return err
			}
			for range n {
				c.Clock()
			}
			return nil
		},
		Description: "Send several clock pulses. Input: count 00-99.",
	}
	ButtonCommand = &Command{
		Flag:      'B',
		InputSize: 2,
		Run: func(c Controller, b []byte) error {
			var button euromorse.Button
			switch b[0] {
			case '1':
				button = euromorse.ButtonPrimary
			case '2':
				button = euromorse.ButtonSecondary
			default:
				return fmt.Errorf("%w: button %q", ErrInvalidInput, b[0])
			}

			var press euromorse.Press
			switch b[1] {
			case 'C', 'c':
				press = euromorse.PressClick
			case 'S', 's':
				press = euromorse.PressShort
			case 'L', 'l':
				press = euromorse.PressLong
			default:
				return fmt.Errorf("%w: press %q", ErrInvalidInput, b[1])
			}

			c.Press(button, press)
			return nil
		},
		Description: "Press a button. Input: button '1' or '2', then 'C' (click), 'S' (short press) or 'L' (long press).",
	}
	KnobCommand = &Command{
		Flag:      'K',
		InputSize: 2,
		Run: func(c Controller, b []byte) error {
			p, err := b2i(b[0], b[1])
			if err != nil {
				return err
			}
			return c.SetKnob(float64(p) / 100)
		},
		Description: "Move the knob. Input: position 00-99 percent.",
	}
	AnalogCommand = &Command{
		Flag:      'A',
		InputSize: 2,
		Run: func(c Controller, b []byte) error {
			p, err := b2i(b[0], b[1])
			if err != nil {
				return err
			}
			return c.SetAnalog(float64(p) / 100)
		},
		Description: "Set the analog input. Input: level 00-99 percent.",
	}
	UpdateCommand = &Command{
		Flag:      'U',
		InputSize: 0,
		Run: func(c Controller, _ []byte) error {
			c.Step()
			return nil
		},
		Description: "Sample the knob and save settings if needed.",
	}
	DebugCommand = &Command{
		Flag:      'D',
		InputSize: 0,
		Run: func(c Controller, _ []byte) error {
			c.Debug()
			return nil
		},
		Description: "Print the current state.",
	}
	VerboseCommand = &Command{
		Flag:      'V',
		InputSize: 0,
		Run: func(c Controller, _ []byte) error {
			c.Verbose()
			return nil
		},
		Description: "Enable verbose output.",
	}
	HelpCommand = &Command{
		Flag:        'H',
		InputSize:   0,
		Description: "Show all available commands and their descriptions.",
		Run: func(c Controller, _ []byte) error {
			c.Println("Available Commands:")
			for _, cmd := range commands {
				c.Println(string(cmd.Flag) + ": " + cmd.Description)
			}
			return nil
		},
	}
)

// b2i parses two ASCII digits
func b2i(hi, lo byte) (int, error) {
	if hi < '0' || hi > '9' || lo < '0' || lo > '9' {
		return 0, fmt.Errorf("%w: %q", ErrInvalidInput, []byte{hi, lo})
	}
	return int(hi-'0')*10 + int(lo-'0'), nil
}

var commands = []*Command{
	TickCommand,
	TicksCommand,
	ButtonCommand,
	KnobCommand,
	AnalogCommand,
	UpdateCommand,
	DebugCommand,
	VerboseCommand,
}

// Run reads and executes commands until the input reaches io.EOF. Other read errors are
// retried, so a serial port with no pending data just keeps polling.
func Run(c Controller) error {
	cmdMap := map[byte]*Command{
		HelpCommand.Flag: HelpCommand,
	}

	for _, cmd := range commands {
		cmdMap[cmd.Flag] = cmd
	}

	for {
		cmdIn, err := c.ReadByte()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			continue
		}

		cmd, ok := cmdMap[cmdIn]
		if !ok {
			continue
		}

		in := make([]byte, cmd.InputSize)
		for i := 0; i < int(cmd.InputSize); {
			b, err := c.ReadByte()
			if errors.Is(err, io.EOF) {
				return nil
			}
			if err != nil {
				continue
			}

			in[i] = b
			i++
		}

		err = cmd.Run(c, in)
		if err != nil {
			c.Println("error: " + err.Error())
		}
	}
}
