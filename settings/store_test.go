package settings

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingStore struct {
	loadErr error
	saveErr error
}

func (f failingStore) Load() (string, error) { return "", f.loadErr }
func (f failingStore) Save(string) error     { return f.saveErr }

func TestLoad(t *testing.T) {
	t.Run("NilStore", func(t *testing.T) {
		s, err := Load(nil)
		require.NoError(t, err)
		assert.Equal(t, DefaultTexts, s.Texts())
	})

	t.Run("NoState", func(t *testing.T) {
		s, err := Load(&MemoryStore{})
		require.NoError(t, err)
		assert.Equal(t, DefaultTexts, s.Texts())
	})

	t.Run("Stored", func(t *testing.T) {
		s, err := Load(&MemoryStore{Raw: "4.000\n1\nA\nB", Saved: true})
		require.NoError(t, err)
		assert.Equal(t, "B", s.CurrentText())
	})

	t.Run("MalformedFallsBackToDefault", func(t *testing.T) {
		s, err := Load(&MemoryStore{Raw: "garbage", Saved: true})
		assert.ErrorIs(t, err, ErrMalformedState)
		require.NotNil(t, s)
		assert.Equal(t, DefaultPitch, s.Pitch())
		assert.Equal(t, DefaultTexts, s.Texts())
	})

	t.Run("LoadErrorFallsBackToDefault", func(t *testing.T) {
		loadErr := errors.New("flash unavailable")
		s, err := Load(failingStore{loadErr: loadErr})
		assert.ErrorIs(t, err, loadErr)
		require.NotNil(t, s)
		assert.Equal(t, DefaultTexts, s.Texts())
	})
}

func TestFileStore(t *testing.T) {
	store := FileStore{Path: filepath.Join(t.TempDir(), "nested", "state.txt")}

	_, err := store.Load()
	assert.ErrorIs(t, err, ErrNoState)

	s := Default()
	s.SetTextIndex(3)
	require.NoError(t, store.Save(s.Serialize()))

	loaded, err := Load(store)
	require.NoError(t, err)
	assert.Equal(t, "HELP", loaded.CurrentText())

	entries, err := os.ReadDir(filepath.Dir(store.Path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestSaver(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	store := &MemoryStore{}
	saver := NewSaver(store, 5*time.Second, start)
	s := Default()

	saved, err := saver.SaveIfDirty(s, start.Add(time.Minute))
	require.NoError(t, err)
	assert.False(t, saved, "clean settings are not saved")

	s.SetPitch(4.0)

	saved, err = saver.SaveIfDirty(s, start.Add(time.Second))
	require.NoError(t, err)
	assert.False(t, saved, "interval has not elapsed")
	assert.True(t, s.Dirty())

	saved, err = saver.SaveIfDirty(s, start.Add(6*time.Second))
	require.NoError(t, err)
	assert.True(t, saved)
	assert.False(t, s.Dirty())
	assert.Equal(t, 1, store.Saves)
	assert.Equal(t, s.Serialize(), store.Raw)

	s.SetPitch(4.5)
	saved, err = saver.SaveIfDirty(s, start.Add(8*time.Second))
	require.NoError(t, err)
	assert.False(t, saved)

	saved, err = saver.SaveIfDirty(s, start.Add(11*time.Second))
	require.NoError(t, err)
	assert.True(t, saved)
	assert.Equal(t, 2, store.Saves)
}

func TestSaverError(t *testing.T) {
	start := time.Now()
	saveErr := errors.New("disk full")
	saver := NewSaver(failingStore{saveErr: saveErr}, 0, start)
	s := Default()
	s.SetTextIndex(1)

	saved, err := saver.SaveIfDirty(s, start.Add(DefaultSaveInterval))
	assert.ErrorIs(t, err, saveErr)
	assert.False(t, saved)
	assert.True(t, s.Dirty())
}

func TestSaverFlush(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	store := &MemoryStore{}
	saver := NewSaver(store, time.Hour, start)
	s := Default()

	require.NoError(t, saver.Flush(s, start))
	assert.Equal(t, 0, store.Saves)

	s.SetTextIndex(3)
	require.NoError(t, saver.Flush(s, start.Add(time.Second)))
	assert.Equal(t, 1, store.Saves)
	assert.False(t, s.Dirty())
}
