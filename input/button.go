package input

import (
	"time"

	"github.com/calvinmclean/euromorse"
)

// ButtonTracker remembers when a button went down and classifies the press when it is
// released. Edges must already be debounced.
type ButtonTracker struct {
	pressedAt time.Time
	down      bool
}

// Down records the press start
func (b *ButtonTracker) Down(now time.Time) {
	b.pressedAt = now
	b.down = true
}

// Up classifies the press. ok is false for a release without a recorded press.
func (b *ButtonTracker) Up(now time.Time) (p euromorse.Press, ok bool) {
	if !b.down {
		return euromorse.PressClick, false
	}
	b.down = false
	return Classify(now.Sub(b.pressedAt)), true
}

// Held reports whether the button is currently down
func (b *ButtonTracker) Held() bool {
	return b.down
}
