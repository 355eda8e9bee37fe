//go:build tinygo

package main

import (
	"machine"
	"strconv"
	"time"

	"github.com/calvinmclean/euromorse"
	"github.com/calvinmclean/euromorse/commands"
	"github.com/calvinmclean/euromorse/controller"
	"github.com/calvinmclean/euromorse/device"
	hw "github.com/calvinmclean/euromorse/firmware/device"
)

const (
	clockPollInterval = time.Millisecond
	// stepEvery is the number of clock polls between knob samples and saves
	stepEvery = 10
	// paintEvery is the number of steps between display refreshes
	paintEvery = 5
)

func main() {
	cfg := hw.EuroPi
	machine.InitADC()

	outputs, err := hw.NewOutputs(cfg)
	if err != nil {
		panic(err)
	}

	clockIn, err := hw.NewClockIn(cfg.ClockIn)
	if err != nil {
		panic(err)
	}

	display, err := hw.NewDisplay(cfg)
	if err != nil {
		panic(err)
	}

	buttons := []*hw.Button{
		hw.NewButton(cfg.Buttons[0], euromorse.ButtonPrimary, cfg.Debounce),
		hw.NewButton(cfg.Buttons[1], euromorse.ButtonSecondary, cfg.Debounce),
	}

	serial := hw.NewSerial()
	d := device.New(
		device.Config{Controller: controller.DefaultConfig()},
		hw.NewFlashStore(),
		outputs,
		hw.NewAnalog(cfg.Knob, 0, true),
		hw.NewAnalog(cfg.AnalogIn, cfg.AnalogMax, false),
		nil,
		serial,
	)

	// only the poll loop below touches d, other goroutines go through the queue
	queue := device.NewQueue(d, serial)

	snapshots := make(chan controller.Snapshot, 1)
	go func() {
		for s := range snapshots {
			err := display.Paint(s)
			if err != nil {
				queue.Println("error painting display: " + err.Error())
			}
		}
	}()

	go func() {
		err := commands.Run(queue)
		if err != nil {
			queue.Println("error running commands: " + err.Error())
		}
	}()

	var missed uint32
	for polls := 0; ; polls++ {
		if clockIn.Take() {
			d.Clock()
		}
		queue.Drain()

		if polls%stepEvery == 0 {
			now := time.Now()
			for _, b := range buttons {
				if press, ok := b.Poll(now); ok {
					d.Press(b.Button(), press)
				}
			}
			d.Step()

			if m := clockIn.Missed(); m != missed {
				missed = m
				d.Println("missed clock pulses: " + strconv.Itoa(int(m)))
			}

			if polls%(stepEvery*paintEvery) == 0 {
				select {
				case snapshots <- d.Snapshot():
				default:
				}
			}
		}

		time.Sleep(clockPollInterval)
	}
}
