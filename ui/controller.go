package ui

import (
	"io"

	"fyne.io/fyne/v2"

	"github.com/calvinmclean/euromorse"
	"github.com/calvinmclean/euromorse/commands"
	"github.com/calvinmclean/euromorse/device"
)

// controllerWrapper runs serial commands against the panel's device on the fyne main
// goroutine, so the command stream and the panel never touch the device at the same time
type controllerWrapper struct {
	panel *Panel
	in    io.ByteReader
}

var _ commands.Controller = &controllerWrapper{}

// Commands returns a commands.Controller reading from in. It is only valid once Run has
// been called.
func (p *Panel) Commands(in io.ByteReader) commands.Controller {
	return &controllerWrapper{panel: p, in: in}
}

func (c *controllerWrapper) do(fn func(*device.Device)) {
	fyne.DoAndWait(func() {
		fn(c.panel.device)
		c.panel.refresh()
	})
}

func (c *controllerWrapper) Clock() {
	c.do(func(d *device.Device) { d.Clock() })
}

func (c *controllerWrapper) Press(b euromorse.Button, p euromorse.Press) (mode euromorse.Mode) {
	c.do(func(d *device.Device) { mode = d.Press(b, p) })
	return mode
}

func (c *controllerWrapper) SetKnob(percent float64) (err error) {
	c.do(func(d *device.Device) { err = d.SetKnob(percent) })
	return err
}

func (c *controllerWrapper) SetAnalog(percent float64) (err error) {
	c.do(func(d *device.Device) { err = d.SetAnalog(percent) })
	return err
}

func (c *controllerWrapper) Step() {
	c.do(func(d *device.Device) { d.Step() })
}

func (c *controllerWrapper) Debug() {
	c.do(func(d *device.Device) { d.Debug() })
}

func (c *controllerWrapper) Verbose() {
	c.do(func(d *device.Device) { d.Verbose() })
}

func (c *controllerWrapper) Println(line string) {
	c.do(func(d *device.Device) { d.Println(line) })
}

func (c *controllerWrapper) ReadByte() (byte, error) {
	if c.in == nil {
		return 0, io.EOF
	}
	return c.in.ReadByte()
}
