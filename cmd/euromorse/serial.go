package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.bug.st/serial"
	"go.bug.st/serial/enumerator"

	"github.com/calvinmclean/euromorse/config"
)

var ErrNoUSBSerial = errors.New("no USB serial ports found")

func newSerialCommand(getConfig func() *config.Config) *cobra.Command {
	var (
		port     string
		baudRate int
	)

	cmd := &cobra.Command{
		Use:   "serial",
		Short: "Connect stdin and stdout to a module's USB serial port",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := getConfig()
			if cmd.Flags().Changed("port") {
				cfg.Serial.Port = port
			}
			if cmd.Flags().Changed("baud") {
				cfg.Serial.BaudRate = baudRate
			}

			if cfg.Serial.Port == "" {
				ports, err := usbSerialPorts()
				if err != nil {
					return err
				}
				cfg.Serial.Port = ports[0]
			}

			return bridge(cmd, cfg.Serial)
		},
	}
	cmd.Flags().StringVar(&port, "port", "", "serial port, defaults to the first USB serial port")
	cmd.Flags().IntVar(&baudRate, "baud", config.DefaultBaudRate, "baud rate")

	return cmd
}

func bridge(cmd *cobra.Command, cfg config.SerialConfig) error {
	port, err := serial.Open(cfg.Port, &serial.Mode{BaudRate: cfg.BaudRate})
	if err != nil {
		return fmt.Errorf("error opening serial port %q: %w", cfg.Port, err)
	}
	defer port.Close()

	cmd.PrintErrf("connected to %s\n", cfg.Port)

	errs := make(chan error, 2)
	go func() {
		_, err := io.Copy(cmd.OutOrStdout(), port)
		errs <- err
	}()
	go func() {
		_, err := io.Copy(port, cmd.InOrStdin())
		errs <- err
	}()

	return <-errs
}

func newPortsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "ports",
		Short: "List USB serial ports",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ports, err := usbSerialPorts()
			if err != nil {
				return err
			}
			for _, p := range ports {
				fmt.Fprintln(cmd.OutOrStdout(), p)
			}
			return nil
		},
	}
}

// usbSerialPorts lists the serial ports that belong to a USB device
func usbSerialPorts() ([]string, error) {
	details, err := enumerator.GetDetailedPortsList()
	if err != nil {
		return nil, fmt.Errorf("error listing serial ports: %w", err)
	}

	var ports []string
	for _, p := range details {
		if p.IsUSB {
			ports = append(ports, p.Name)
		}
	}
	if len(ports) == 0 {
		return nil, ErrNoUSBSerial
	}
	return ports, nil
}
