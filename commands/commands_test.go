package commands_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/calvinmclean/euromorse"
	"github.com/calvinmclean/euromorse/commands"
	"github.com/calvinmclean/euromorse/controller"
	"github.com/calvinmclean/euromorse/device"
	"github.com/calvinmclean/euromorse/input"
	"github.com/calvinmclean/euromorse/settings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	_ commands.Controller = &device.Device{}
	_ commands.Controller = &device.Queue{}
)

func run(t *testing.T, in string) (*device.Device, *controller.Jacks, string) {
	t.Helper()
	store := &settings.MemoryStore{Raw: "4.333\n0\nSOS\nE\nT", Saved: true}
	jacks := &controller.Jacks{}
	out := &bytes.Buffer{}

	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	cfg := device.Config{Now: func() time.Time { return now }}

	d := device.New(cfg, store, jacks, &input.Sim{}, &input.Sim{}, strings.NewReader(in), out)
	require.NoError(t, commands.Run(d))
	return d, jacks, out.String()
}

func TestRun(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		mode     euromorse.Mode
		expected string
	}{
		{
			"StartAndDebug",
			"B1C T D",
			euromorse.ModeRunning,
			"[0s] RUNNING text=0 pitch=4.333 glyph=S gate=1\n",
		},
		{
			"SeveralTicks",
			"B1C N05 T D",
			euromorse.ModeRunning,
			"[0s] RUNNING text=0 pitch=4.333 glyph=EOC gate=0\n",
		},
		{
			"PauseAgain",
			"B1C N10 B1C D",
			euromorse.ModePaused,
			"[0s] PAUSED text=0 pitch=4.333 glyph=EOC gate=0\n",
		},
		{
			"SelectText",
			"B1C B2C K99 U B1C T D",
			euromorse.ModeRunning,
			"[0s] RUNNING text=2 pitch=4.333 glyph=T gate=1\n",
		},
		{
			"AdjustPitchRevert",
			"B1C B1S K99 U B2C D",
			euromorse.ModeRunning,
			"[0s] RUNNING text=0 pitch=4.333 glyph=EOC gate=0\n",
		},
		{
			"AdjustPitchCommit",
			"B1C B1S K99 U B1C D",
			euromorse.ModeRunning,
			"[0s] RUNNING text=0 pitch=5.000 glyph=EOC gate=0\n",
		},
		{
			"UnknownFlagsIgnored",
			"xyz\r\n",
			euromorse.ModePaused,
			"",
		},
		{
			"TruncatedInput",
			"B1",
			euromorse.ModePaused,
			"",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, _, out := run(t, tt.in)
			assert.Equal(t, tt.mode, d.Mode())
			assert.Equal(t, tt.expected, out)
		})
	}
}

func TestRunDrivesOutputs(t *testing.T) {
	_, jacks, _ := run(t, "B1C T")
	assert.True(t, jacks.On(euromorse.OutputGate))
	assert.True(t, jacks.On(euromorse.OutputRunning))
}

func TestRunInvalidInput(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"Button", "B3C"},
		{"Press", "B1X"},
		{"Knob", "Kxx"},
		{"Analog", "A1-"},
		{"Ticks", "N-1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, out := run(t, tt.in)
			assert.True(t, strings.HasPrefix(out, "error: invalid input"), out)
		})
	}
}

func TestHelp(t *testing.T) {
	_, _, out := run(t, "H")
	assert.True(t, strings.HasPrefix(out, "Available Commands:\n"))
	assert.Contains(t, out, "T: Send one clock pulse.\n")
	assert.Contains(t, out, "B: Press a button.")
}
