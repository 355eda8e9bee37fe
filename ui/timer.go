package ui

import (
	"sync"
	"time"

	"fyne.io/fyne/v2"
)

// clock calls fn on the fyne main goroutine at a fixed interval while it is running
type clock struct {
	fn       func()
	interval time.Duration
	mtx      *sync.Mutex
	stop     chan struct{}
}

func newClock(interval time.Duration, fn func()) *clock {
	if interval <= 0 {
		interval = time.Second
	}
	return &clock{
		fn:       fn,
		interval: interval,
		mtx:      &sync.Mutex{},
	}
}

func (c *clock) Running() bool {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	return c.stop != nil
}

func (c *clock) Start() {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	if c.stop != nil {
		return
	}
	c.stop = make(chan struct{})
	go c.run(c.interval, c.stop)
}

func (c *clock) Stop() {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	if c.stop == nil {
		return
	}
	close(c.stop)
	c.stop = nil
}

// SetInterval changes the interval, restarting the clock if it is running
func (c *clock) SetInterval(d time.Duration) {
	if d <= 0 {
		return
	}
	running := c.Running()
	c.Stop()

	c.mtx.Lock()
	c.interval = d
	c.mtx.Unlock()

	if running {
		c.Start()
	}
}

func (c *clock) run(d time.Duration, stop chan struct{}) {
	ticker := time.NewTicker(d)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			fyne.Do(c.fn)
		}
	}
}
