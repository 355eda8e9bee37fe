package ui

import (
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"github.com/calvinmclean/euromorse"
	"github.com/calvinmclean/euromorse/input"
)

// pressButton classifies how long it is held, like the hardware buttons
type pressButton struct {
	widget.Button

	tracker input.ButtonTracker
	now     func() time.Time
	onPress func(euromorse.Press)
}

var _ desktop.Mouseable = &pressButton{}

func newPressButton(label string, onPress func(euromorse.Press)) *pressButton {
	b := &pressButton{
		now:     time.Now,
		onPress: onPress,
	}
	b.Text = label
	b.ExtendBaseWidget(b)
	return b
}

// Tapped is a no-op since the press is reported on release
func (b *pressButton) Tapped(*fyne.PointEvent) {}

func (b *pressButton) MouseDown(*desktop.MouseEvent) {
	b.tracker.Down(b.now())
}

func (b *pressButton) MouseUp(*desktop.MouseEvent) {
	press, ok := b.tracker.Up(b.now())
	if ok {
		b.onPress(press)
	}
}
