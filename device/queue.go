package device

import (
	"io"

	"github.com/calvinmclean/euromorse"
)

// Queue lets other goroutines use a Device without overlapping the goroutine that owns it.
// Each call waits until the owner runs it with Drain. Bytes are read from in directly.
type Queue struct {
	d     *Device
	in    io.ByteReader
	calls chan func()
}

func NewQueue(d *Device, in io.ByteReader) *Queue {
	return &Queue{d: d, in: in, calls: make(chan func())}
}

// Drain runs the calls that are waiting. It never blocks and must only be called by the
// goroutine that owns the Device.
func (q *Queue) Drain() {
	for {
		select {
		case fn := <-q.calls:
			fn()
		default:
			return
		}
	}
}

func (q *Queue) do(fn func(*Device)) {
	done := make(chan struct{})
	q.calls <- func() {
		fn(q.d)
		close(done)
	}
	<-done
}

func (q *Queue) Clock() {
	q.do(func(d *Device) { d.Clock() })
}

func (q *Queue) Press(b euromorse.Button, p euromorse.Press) (mode euromorse.Mode) {
	q.do(func(d *Device) { mode = d.Press(b, p) })
	return mode
}

func (q *Queue) SetKnob(percent float64) (err error) {
	q.do(func(d *Device) { err = d.SetKnob(percent) })
	return err
}

func (q *Queue) SetAnalog(percent float64) (err error) {
	q.do(func(d *Device) { err = d.SetAnalog(percent) })
	return err
}

func (q *Queue) Step() {
	q.do(func(d *Device) { d.Step() })
}

func (q *Queue) Debug() {
	q.do(func(d *Device) { d.Debug() })
}

func (q *Queue) Verbose() {
	q.do(func(d *Device) { d.Verbose() })
}

func (q *Queue) Println(line string) {
	q.do(func(d *Device) { d.Println(line) })
}

func (q *Queue) ReadByte() (byte, error) {
	if q.in == nil {
		return 0, io.EOF
	}
	return q.in.ReadByte()
}
