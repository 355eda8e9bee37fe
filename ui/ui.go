// Package ui is a fyne front panel for a simulated module: the display, one LED per output
// jack, both buttons, the knob, the analog input and an internal clock.
package ui

import (
	"context"
	"fmt"
	"image/color"
	"strconv"
	"strings"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"github.com/calvinmclean/euromorse"
	"github.com/calvinmclean/euromorse/controller"
	"github.com/calvinmclean/euromorse/device"
	"github.com/calvinmclean/euromorse/input"
)

const (
	appID = "com.calvinmclean.euromorse"

	// displayWidth is the number of characters on one line of the 128x32 OLED
	displayWidth = 16

	stepInterval = 50 * time.Millisecond
	maxLogLines  = 200
)

// Panel is the simulator window. Every device call runs on the fyne main goroutine.
type Panel struct {
	app    fyne.App
	device *device.Device

	Jacks  *controller.Jacks
	Knob   *input.Sim
	Analog *input.Sim

	clock    *clock
	stepper  *clock
	interval time.Duration

	lines  [3]*canvas.Text
	leds   [euromorse.NumOutputs]*led
	status *widget.Label

	logMtx     sync.Mutex
	logLines   []string
	logContent *widget.Label
}

var displayColor = color.RGBA{R: 135, G: 206, B: 250, A: 255}

// NewPanel creates the fyne app and the simulated inputs. The device is attached with Run.
func NewPanel(clockInterval time.Duration) *Panel {
	p := &Panel{
		app:        app.NewWithID(appID),
		Jacks:      &controller.Jacks{},
		Knob:       &input.Sim{},
		Analog:     &input.Sim{},
		interval:   clockInterval,
		status:     widget.NewLabel(""),
		logContent: widget.NewLabel(""),
	}
	for i := range p.lines {
		p.lines[i] = canvas.NewText("", displayColor)
		p.lines[i].TextStyle = fyne.TextStyle{Monospace: true}
		p.lines[i].Alignment = fyne.TextAlignCenter
	}
	for o := range euromorse.NumOutputs {
		p.leds[o] = newLED(euromorse.Output(o))
	}
	return p
}

// Preferences is where the panel keeps the module's settings between runs
func (p *Panel) Preferences() fyne.Preferences {
	return p.app.Preferences()
}

// Write appends log output from the device to the log accordion
func (p *Panel) Write(b []byte) (int, error) {
	p.logMtx.Lock()
	for _, line := range strings.Split(strings.TrimRight(string(b), "\n"), "\n") {
		p.logLines = append(p.logLines, line)
	}
	if len(p.logLines) > maxLogLines {
		p.logLines = p.logLines[len(p.logLines)-maxLogLines:]
	}
	text := strings.Join(p.logLines, "\n")
	p.logMtx.Unlock()

	fyne.Do(func() {
		p.logContent.SetText(text)
	})
	return len(b), nil
}

// Run shows the window and blocks until it is closed or ctx is done
func (p *Panel) Run(ctx context.Context, d *device.Device) {
	p.device = d

	window := p.app.NewWindow("Morse Code")

	p.clock = newClock(p.interval, func() {
		p.device.Clock()
		p.refresh()
	})
	p.stepper = newClock(stepInterval, func() {
		p.device.Step()
		p.refresh()
	})
	p.stepper.Start()

	b1 := newPressButton("B1", func(press euromorse.Press) {
		p.device.Press(euromorse.ButtonPrimary, press)
		p.refresh()
	})
	b2 := newPressButton("B2", func(press euromorse.Press) {
		p.device.Press(euromorse.ButtonSecondary, press)
		p.refresh()
	})

	ledBox := container.NewVBox()
	for _, l := range p.leds {
		ledBox.Add(l.container)
	}

	contentContainer := container.NewVBox(
		container.NewStack(
			canvas.NewRectangle(color.Black),
			container.NewPadded(container.NewVBox(p.lines[0], p.lines[1], p.lines[2])),
		),
		p.status,
		container.NewHBox(
			container.NewVBox(
				container.NewGridWithColumns(2, b1, b2),
				p.createSlider("Knob", p.Knob),
				p.createSlider("Analog", p.Analog),
				p.createClockControls(),
			),
			layout.NewSpacer(),
			ledBox,
		),
		createLogAccordion(p.logContent),
	)

	go func() {
		<-ctx.Done()
		fyne.Do(func() {
			p.app.Quit()
		})
	}()

	p.refresh()
	window.SetContent(contentContainer)
	window.Resize(fyne.NewSize(420, 360))
	window.ShowAndRun()

	p.clock.Stop()
	p.stepper.Stop()
}

func (p *Panel) refresh() {
	snap := p.device.Snapshot()
	for i, line := range snap.Lines(displayWidth) {
		p.lines[i].Text = line
		p.lines[i].Refresh()
	}
	for o, l := range p.leds {
		l.set(p.Jacks.Level(euromorse.Output(o)))
	}
	p.status.SetText(fmt.Sprintf("%s  text %d/%d  pitch %1.3f V", snap.Mode, snap.TextIndex+1, p.device.Settings().Len(), snap.Pitch))
}

func (p *Panel) createSlider(labelText string, sim *input.Sim) *fyne.Container {
	valueLabel := widget.NewLabel("0%")

	slider := widget.NewSlider(0, 1)
	slider.Step = 0.01
	slider.OnChanged = func(value float64) {
		valueLabel.SetText(fmt.Sprintf("%.0f%%", value*100))
		sim.Set(value)
	}
	slider.OnChangeEnded = func(float64) {
		p.device.Step()
		p.refresh()
	}

	return container.NewVBox(
		container.NewGridWithColumns(2,
			widget.NewLabel(labelText),
			valueLabel,
		),
		slider,
	)
}

func (p *Panel) createClockControls() *fyne.Container {
	tickButton := widget.NewButton("Tick", func() {
		p.device.Clock()
		p.refresh()
	})

	var runButton *widget.Button
	runButton = widget.NewButton("Start Clock", func() {
		if p.clock.Running() {
			p.clock.Stop()
			runButton.SetText("Start Clock")
			return
		}
		p.clock.Start()
		runButton.SetText("Stop Clock")
	})

	bpmEntry := widget.NewEntry()
	bpmEntry.SetPlaceHolder(strconv.Itoa(int(time.Minute / p.interval)))
	bpmEntry.OnSubmitted = func(s string) {
		bpmEntry.SetText("")

		bpm, err := strconv.Atoi(s)
		if err != nil || bpm <= 0 {
			fmt.Fprintln(p, "Invalid input. Please enter the BPM as a number.")
			return
		}
		p.clock.SetInterval(time.Minute / time.Duration(bpm))
		bpmEntry.SetPlaceHolder(strconv.Itoa(bpm))
	}

	return container.NewGridWithColumns(3, tickButton, runButton, bpmEntry)
}

func createLogAccordion(logContent *widget.Label) *widget.Accordion {
	logScroll := container.NewVScroll(logContent)
	logScroll.SetMinSize(fyne.NewSize(300, 100))

	return widget.NewAccordion(
		widget.NewAccordionItem("Logs", logScroll),
	)
}
