// Package config loads the host-side configuration used by the simulator and the serial
// bridge
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/calvinmclean/euromorse/input"
	"github.com/calvinmclean/euromorse/settings"
	"gopkg.in/yaml.v3"
)

const (
	DefaultFilename  = "euromorse.yaml"
	DefaultStateFile = "euromorse.state"
	DefaultBaudRate  = 115200
	DefaultBPM       = 240
)

// Config is the host configuration. Zero values are replaced by defaults.
type Config struct {
	StateFile       string        `yaml:"state_file"`
	SaveInterval    time.Duration `yaml:"save_interval"`
	AnalogThreshold float64       `yaml:"analog_threshold"`
	Verbose         bool          `yaml:"verbose"`

	Serial SerialConfig `yaml:"serial"`
	Clock  ClockConfig  `yaml:"clock"`
}

// SerialConfig selects the USB serial port of a module
type SerialConfig struct {
	Port     string `yaml:"port"`
	BaudRate int    `yaml:"baud_rate"`
}

// ClockConfig drives the simulator's internal clock. One beat is one tick.
type ClockConfig struct {
	BPM int `yaml:"bpm"`
}

// Default returns the configuration used when no file is given
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads a YAML config file. An empty filename returns the defaults. If filename is
// DefaultFilename and it does not exist, the defaults are used too.
func Load(filename string) (*Config, error) {
	if filename == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(filename)
	if errors.Is(err, os.ErrNotExist) && filename == DefaultFilename {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	cfg.applyDefaults()

	return &cfg, cfg.Validate()
}

func (c *Config) applyDefaults() {
	if c.StateFile == "" {
		c.StateFile = DefaultStateFile
	}
	if c.SaveInterval == 0 {
		c.SaveInterval = settings.DefaultSaveInterval
	}
	if c.AnalogThreshold == 0 {
		c.AnalogThreshold = input.DefaultAnalogThreshold
	}
	if c.Serial.BaudRate == 0 {
		c.Serial.BaudRate = DefaultBaudRate
	}
	if c.Clock.BPM == 0 {
		c.Clock.BPM = DefaultBPM
	}
}

// Validate reports values that cannot be used
func (c *Config) Validate() error {
	switch {
	case c.SaveInterval < 0:
		return fmt.Errorf("invalid save_interval: %s", c.SaveInterval)
	case c.AnalogThreshold < 0 || c.AnalogThreshold >= 1:
		return fmt.Errorf("invalid analog_threshold: %v", c.AnalogThreshold)
	case c.Serial.BaudRate < 0:
		return fmt.Errorf("invalid baud_rate: %d", c.Serial.BaudRate)
	case c.Clock.BPM < 0:
		return fmt.Errorf("invalid bpm: %d", c.Clock.BPM)
	}
	return nil
}

// ApplyEnv overrides values from EUROMORSE_PORT, EUROMORSE_STATE_FILE and EUROMORSE_VERBOSE
func (c *Config) ApplyEnv(getenv func(string) string) error {
	if getenv == nil {
		getenv = os.Getenv
	}

	if port := getenv("EUROMORSE_PORT"); port != "" {
		c.Serial.Port = port
	}
	if stateFile := getenv("EUROMORSE_STATE_FILE"); stateFile != "" {
		c.StateFile = stateFile
	}
	if verbose := getenv("EUROMORSE_VERBOSE"); verbose != "" {
		v, err := strconv.ParseBool(verbose)
		if err != nil {
			return fmt.Errorf("invalid EUROMORSE_VERBOSE: %w", err)
		}
		c.Verbose = v
	}
	return nil
}

// ClockInterval is the time between two internal clock pulses
func (c *Config) ClockInterval() time.Duration {
	if c.Clock.BPM <= 0 {
		return time.Minute / DefaultBPM
	}
	return time.Minute / time.Duration(c.Clock.BPM)
}
