//go:build tinygo

package device

import (
	"bytes"
	"machine"
	"time"
)

// Serial reads command bytes from the USB serial port. When no data is buffered it sleeps
// briefly so other goroutines get to run.
type Serial struct {
	uart machine.Serialer
}

func NewSerial() *Serial {
	return &Serial{uart: machine.Serial}
}

func (s *Serial) ReadByte() (byte, error) {
	b, err := s.uart.ReadByte()
	if err != nil {
		time.Sleep(time.Millisecond)
	}
	return b, err
}

// Write sends p with "\n" line endings expanded to "\r\n" for terminals
func (s *Serial) Write(p []byte) (int, error) {
	_, err := s.uart.Write(bytes.ReplaceAll(p, []byte("\n"), []byte("\r\n")))
	if err != nil {
		return 0, err
	}
	return len(p), nil
}
