package ui

import (
	"fyne.io/fyne/v2"

	"github.com/calvinmclean/euromorse/settings"
)

const stateKey = "state"

// preferencesStore keeps the module settings in the fyne app preferences
type preferencesStore struct {
	prefs fyne.Preferences
}

// NewPreferencesStore creates a settings.Store backed by prefs
func NewPreferencesStore(prefs fyne.Preferences) settings.Store {
	return &preferencesStore{prefs: prefs}
}

func (s *preferencesStore) Load() (string, error) {
	raw := s.prefs.StringWithFallback(stateKey, "")
	if raw == "" {
		return "", settings.ErrNoState
	}
	return raw, nil
}

func (s *preferencesStore) Save(raw string) error {
	s.prefs.SetString(stateKey, raw)
	return nil
}
