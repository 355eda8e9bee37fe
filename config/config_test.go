package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, data string) string {
	t.Helper()
	filename := filepath.Join(t.TempDir(), "euromorse.yaml")
	require.NoError(t, os.WriteFile(filename, []byte(data), 0o644))
	return filename
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name     string
		data     string
		expected Config
	}{
		{
			"Empty",
			"",
			Config{
				StateFile:       DefaultStateFile,
				SaveInterval:    5 * time.Second,
				AnalogThreshold: 0.1,
				Serial:          SerialConfig{BaudRate: DefaultBaudRate},
				Clock:           ClockConfig{BPM: DefaultBPM},
			},
		},
		{
			"AllFields",
			`state_file: /tmp/morse.state
save_interval: 1s
analog_threshold: 0.2
verbose: true
serial:
  port: /dev/ttyACM0
  baud_rate: 9600
clock:
  bpm: 120
`,
			Config{
				StateFile:       "/tmp/morse.state",
				SaveInterval:    time.Second,
				AnalogThreshold: 0.2,
				Verbose:         true,
				Serial:          SerialConfig{Port: "/dev/ttyACM0", BaudRate: 9600},
				Clock:           ClockConfig{BPM: 120},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(writeConfig(t, tt.data))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, *cfg)
		})
	}
}

func TestLoadErrors(t *testing.T) {
	t.Run("MissingFile", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("InvalidYAML", func(t *testing.T) {
		_, err := Load(writeConfig(t, "clock: [1, 2"))
		assert.ErrorContains(t, err, "failed to parse config file")
	})

	t.Run("InvalidThreshold", func(t *testing.T) {
		_, err := Load(writeConfig(t, "analog_threshold: 1.5"))
		assert.EqualError(t, err, "invalid analog_threshold: 1.5")
	})
}

func TestLoadDefaultFilename(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load(DefaultFilename)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"EUROMORSE_PORT":       "/dev/ttyUSB1",
		"EUROMORSE_STATE_FILE": "other.state",
		"EUROMORSE_VERBOSE":    "true",
	}

	cfg := Default()
	require.NoError(t, cfg.ApplyEnv(func(k string) string { return env[k] }))
	assert.Equal(t, "/dev/ttyUSB1", cfg.Serial.Port)
	assert.Equal(t, "other.state", cfg.StateFile)
	assert.True(t, cfg.Verbose)

	env["EUROMORSE_VERBOSE"] = "maybe"
	assert.Error(t, cfg.ApplyEnv(func(k string) string { return env[k] }))
}

func TestClockInterval(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 250*time.Millisecond, cfg.ClockInterval())

	cfg.Clock.BPM = 60
	assert.Equal(t, time.Second, cfg.ClockInterval())
}
