package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/calvinmclean/euromorse/config"
)

func main() {
	err := newRootCommand().Execute()
	if err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var (
		configFile string
		cfg        *config.Config
	)

	root := &cobra.Command{
		Use:          "euromorse",
		Short:        "Morse code sequencer for eurorack",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			cfg, err = config.Load(configFile)
			if err != nil {
				return err
			}

			err = cfg.ApplyEnv(os.Getenv)
			if err != nil {
				return fmt.Errorf("error reading environment: %w", err)
			}
			return nil
		},
	}
	root.PersistentFlags().StringVar(&configFile, "config", config.DefaultFilename, "path to the YAML config file")

	getConfig := func() *config.Config {
		return cfg
	}

	root.AddCommand(
		newSimCommand(getConfig),
		newSerialCommand(getConfig),
		newPortsCommand(),
		newEncodeCommand(),
		newDecodeCommand(),
		newTableCommand(),
	)
	return root
}
