//go:build tinygo

package device

import (
	"encoding/binary"
	"errors"
	"machine"

	"github.com/calvinmclean/euromorse/settings"
)

// maxStateSize bounds what is read back from flash, since an erased block reads as 0xFF
const maxStateSize = 16 * 1024

// FlashStore keeps the settings at the start of the flash area reserved for data. The
// state is stored with a four byte length prefix.
type FlashStore struct{}

var _ settings.Store = &FlashStore{}

func NewFlashStore() *FlashStore {
	return &FlashStore{}
}

func (f *FlashStore) Load() (string, error) {
	var header [4]byte
	_, err := machine.Flash.ReadAt(header[:], 0)
	if err != nil {
		return "", errors.New("error reading flash: " + err.Error())
	}

	n := binary.LittleEndian.Uint32(header[:])
	if n == 0 || n > maxStateSize {
		return "", settings.ErrNoState
	}

	data := make([]byte, n)
	_, err = machine.Flash.ReadAt(data, int64(len(header)))
	if err != nil {
		return "", errors.New("error reading flash: " + err.Error())
	}
	return string(data), nil
}

func (f *FlashStore) Save(raw string) error {
	data := make([]byte, 4+len(raw))
	binary.LittleEndian.PutUint32(data, uint32(len(raw)))
	copy(data[4:], raw)

	blockSize := machine.Flash.EraseBlockSize()
	blocks := (int64(len(data)) + blockSize - 1) / blockSize
	err := machine.Flash.EraseBlocks(0, blocks)
	if err != nil {
		return errors.New("error erasing flash: " + err.Error())
	}

	_, err = machine.Flash.WriteAt(data, 0)
	if err != nil {
		return errors.New("error writing flash: " + err.Error())
	}
	return nil
}
