package main

import (
	"bufio"
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/calvinmclean/euromorse/commands"
	"github.com/calvinmclean/euromorse/config"
	"github.com/calvinmclean/euromorse/controller"
	"github.com/calvinmclean/euromorse/device"
	"github.com/calvinmclean/euromorse/input"
	"github.com/calvinmclean/euromorse/morse"
	"github.com/calvinmclean/euromorse/settings"
	"github.com/calvinmclean/euromorse/ui"
)

func newSimCommand(getConfig func() *config.Config) *cobra.Command {
	var enableUI bool

	cmd := &cobra.Command{
		Use:   "sim",
		Short: "Run a simulated module driven by serial commands on stdin",
		Long: `Run a simulated module. Commands are read from stdin using the same protocol as
the serial port of the hardware module. Send H for a list of commands.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := getConfig()
			if enableUI {
				return runUI(cmd, cfg)
			}
			return runCLI(cmd, cfg)
		},
	}
	cmd.Flags().BoolVar(&enableUI, "ui", os.Getenv("ENABLE_UI") == "true", "show the front panel")

	return cmd
}

func deviceConfig(cfg *config.Config) device.Config {
	return device.Config{
		Controller: controller.Config{
			Table:           morse.Default,
			AnalogThreshold: cfg.AnalogThreshold,
		},
		SaveInterval: cfg.SaveInterval,
		Verbose:      cfg.Verbose,
	}
}

func runCLI(cmd *cobra.Command, cfg *config.Config) error {
	d := device.New(
		deviceConfig(cfg),
		&settings.FileStore{Path: cfg.StateFile},
		&controller.Jacks{},
		&input.Sim{},
		&input.Sim{},
		bufio.NewReader(cmd.InOrStdin()),
		cmd.OutOrStdout(),
	)

	err := commands.Run(d)
	if err != nil {
		return err
	}
	return d.Flush()
}

func runUI(cmd *cobra.Command, cfg *config.Config) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	panel := ui.NewPanel(cfg.ClockInterval())
	d := device.New(
		deviceConfig(cfg),
		ui.NewPreferencesStore(panel.Preferences()),
		panel.Jacks,
		panel.Knob,
		panel.Analog,
		nil,
		io.MultiWriter(cmd.OutOrStdout(), panel),
	)

	// read from stdin also
	go func() {
		err := commands.Run(panel.Commands(bufio.NewReader(cmd.InOrStdin())))
		if err != nil {
			cmd.PrintErrln(err)
		}
	}()

	panel.Run(ctx, d)
	return d.Flush()
}
