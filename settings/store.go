package settings

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// ErrNoState is returned by a Store that has nothing saved yet
var ErrNoState = errors.New("no stored state")

// Store persists the serialized settings
type Store interface {
	Load() (string, error)
	Save(string) error
}

// Load reads settings from store, falling back to Default when nothing is stored or the
// stored state cannot be parsed. The returned error is informational only.
func Load(store Store) (*Settings, error) {
	if store == nil {
		return Default(), nil
	}

	raw, err := store.Load()
	if errors.Is(err, ErrNoState) {
		return Default(), nil
	}
	if err != nil {
		return Default(), fmt.Errorf("error loading state: %w", err)
	}

	s, err := Parse(raw)
	if err != nil {
		return Default(), err
	}
	return s, nil
}

// FileStore keeps the state in a single file
type FileStore struct {
	Path string
}

var _ Store = FileStore{}

func (f FileStore) Load() (string, error) {
	data, err := os.ReadFile(f.Path)
	if errors.Is(err, os.ErrNotExist) {
		return "", ErrNoState
	}
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Save writes to a temporary file and renames it so a crash never leaves a partial state
func (f FileStore) Save(raw string) error {
	dir := filepath.Dir(f.Path)
	err := os.MkdirAll(dir, 0o755)
	if err != nil {
		return fmt.Errorf("error creating state directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(f.Path)+".*")
	if err != nil {
		return fmt.Errorf("error creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	_, err = tmp.WriteString(raw)
	if err != nil {
		tmp.Close()
		return fmt.Errorf("error writing state: %w", err)
	}
	err = tmp.Close()
	if err != nil {
		return fmt.Errorf("error closing state file: %w", err)
	}

	return os.Rename(tmp.Name(), f.Path)
}

// MemoryStore keeps the state in memory and counts saves
type MemoryStore struct {
	Raw   string
	Saved bool
	Saves int
}

var _ Store = &MemoryStore{}

func (m *MemoryStore) Load() (string, error) {
	if !m.Saved {
		return "", ErrNoState
	}
	return m.Raw, nil
}

func (m *MemoryStore) Save(raw string) error {
	m.Raw = raw
	m.Saved = true
	m.Saves++
	return nil
}

// DefaultSaveInterval bounds how often settings are written to flash-like storage
const DefaultSaveInterval = 5000 * time.Millisecond

// Saver flushes dirty settings no more often than Interval
type Saver struct {
	store     Store
	interval  time.Duration
	lastSaved time.Time
}

// NewSaver creates a Saver. The interval starts counting at now.
func NewSaver(store Store, interval time.Duration, now time.Time) *Saver {
	if interval <= 0 {
		interval = DefaultSaveInterval
	}
	return &Saver{
		store:     store,
		interval:  interval,
		lastSaved: now,
	}
}

// SaveIfDirty writes s when it has unsaved changes and the interval has elapsed. It returns
// true when a save happened.
func (sv *Saver) SaveIfDirty(s *Settings, now time.Time) (bool, error) {
	if sv.store == nil || !s.Dirty() || now.Sub(sv.lastSaved) < sv.interval {
		return false, nil
	}

	err := sv.store.Save(s.Serialize())
	if err != nil {
		sv.lastSaved = now
		return false, fmt.Errorf("error saving state: %w", err)
	}

	s.MarkSaved()
	sv.lastSaved = now
	return true, nil
}

// Flush writes s if it has unsaved changes, ignoring the interval
func (sv *Saver) Flush(s *Settings, now time.Time) error {
	sv.lastSaved = time.Time{}
	_, err := sv.SaveIfDirty(s, now)
	return err
}
