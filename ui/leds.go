package ui

import (
	"fmt"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/calvinmclean/euromorse"
	"github.com/calvinmclean/euromorse/controller"
)

var (
	ledOn  = color.RGBA{R: 220, G: 20, B: 60, A: 255}
	ledOff = color.RGBA{R: 60, G: 60, B: 60, A: 255}
)

// led shows one output jack. Gates light up at full level and the pitch output shows its
// voltage.
type led struct {
	output    euromorse.Output
	circle    *canvas.Circle
	label     *widget.Label
	container *fyne.Container
}

func newLED(o euromorse.Output) *led {
	l := &led{
		output: o,
		circle: canvas.NewCircle(ledOff),
		label:  widget.NewLabel(o.String()),
	}
	l.container = container.NewHBox(
		container.NewGridWrap(fyne.NewSize(16, 16), l.circle),
		l.label,
	)
	return l
}

func (l *led) set(level float64) {
	l.circle.FillColor = ledColor(level)
	l.circle.Refresh()

	if l.output == euromorse.OutputPitch {
		l.label.SetText(fmt.Sprintf("%s %1.3f V", l.output, level))
	}
}

// ledColor fades between off and on in proportion to the jack voltage
func ledColor(level float64) color.Color {
	f := max(0, min(level/controller.GateVoltage, 1))
	mix := func(a, b uint8) uint8 {
		return uint8(float64(a) + (float64(b)-float64(a))*f)
	}
	return color.RGBA{
		R: mix(ledOff.R, ledOn.R),
		G: mix(ledOff.G, ledOn.G),
		B: mix(ledOff.B, ledOn.B),
		A: 255,
	}
}
