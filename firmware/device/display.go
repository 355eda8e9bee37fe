//go:build tinygo

package device

import (
	"errors"
	"image/color"
	"machine"

	"tinygo.org/x/drivers/ssd1306"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"

	"github.com/calvinmclean/euromorse/controller"
)

const (
	// charsPerLine fits the 128 pixel wide OLED with the proggy font
	charsPerLine = 16
	lineHeight   = 11
)

var white = color.RGBA{R: 255, G: 255, B: 255, A: 255}

// Display paints controller snapshots on the OLED
type Display struct {
	oled  *ssd1306.Device
	font  tinyfont.Fonter
	width int16

	last [3]string
}

func NewDisplay(cfg Config) (*Display, error) {
	err := cfg.I2C.Configure(machine.I2CConfig{
		Frequency: 400 * machine.KHz,
		SDA:       cfg.SDA,
		SCL:       cfg.SCL,
	})
	if err != nil {
		return nil, errors.New("error configuring I2C: " + err.Error())
	}

	oled := ssd1306.NewI2C(cfg.I2C)
	oled.Configure(ssd1306.Config{
		Address: cfg.OLEDAddr,
		Width:   cfg.OLEDWidth,
		Height:  cfg.OLEDHeight,
	})
	oled.ClearDisplay()

	return &Display{
		oled:  oled,
		font:  &proggy.TinySZ8pt7b,
		width: cfg.OLEDWidth,
	}, nil
}

// Paint redraws the display if the rendered lines changed
func (d *Display) Paint(s controller.Snapshot) error {
	lines := s.Lines(charsPerLine)
	if lines == d.last {
		return nil
	}
	d.last = lines

	d.oled.ClearBuffer()
	for i, line := range lines {
		if line == "" {
			continue
		}
		_, w := tinyfont.LineWidth(d.font, line)
		x := (d.width - int16(w)) / 2
		y := int16(i+1)*lineHeight - 2
		tinyfont.WriteLine(d.oled, d.font, x, y, line, white)
	}
	return d.oled.Display()
}
