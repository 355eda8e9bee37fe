package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/calvinmclean/euromorse/morse"
	"github.com/calvinmclean/euromorse/playback"
)

func newEncodeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "encode TEXT",
		Short: "Print one full cycle of a message as a tick timeline",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			frames := playback.Message(morse.Default, strings.Join(args, " "))

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 1, ' ', 0)
			fmt.Fprintf(w, "GATE\t%s\n", playback.Timeline(frames))
			fmt.Fprintf(w, "EOC\t%s\n", markers(frames, func(f playback.Frame) bool { return f.EndOfCharacter }))
			fmt.Fprintf(w, "EOW\t%s\n", markers(frames, func(f playback.Frame) bool { return f.EndOfWord }))
			fmt.Fprintf(w, "EOM\t%s\n", markers(frames, func(f playback.Frame) bool { return f.EndOfMessage }))
			fmt.Fprintf(w, "TICKS\t%d\n", len(frames))
			return w.Flush()
		},
	}
}

func markers(frames []playback.Frame, on func(playback.Frame) bool) string {
	var sb strings.Builder
	for _, f := range frames {
		if on(f) {
			sb.WriteByte('#')
		} else {
			sb.WriteByte('.')
		}
	}
	return sb.String()
}

func newTableCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "table",
		Short: "Print the morse alphabet",
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "CHAR\tPATTERN\tTICKS")
			for _, c := range morse.Default.Characters() {
				fmt.Fprintf(w, "%s\t%s\t%d\n", c.Label(), c.Pattern(), c.Duration())
			}
			return w.Flush()
		},
	}
}

func newDecodeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "decode TIMELINE",
		Short: "Decode a gate timeline printed by encode, e.g. #.#.#...###",
		Long: `Decode a gate timeline printed by encode, e.g. #.#.#...###. The error glyph played
for unknown characters decodes as U+FFFD.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pulses := make([]bool, 0, len(args[0]))
			for _, c := range args[0] {
				switch c {
				case '#', '1':
					pulses = append(pulses, true)
				case '.', '0':
					pulses = append(pulses, false)
				default:
					return fmt.Errorf("invalid timeline character %q", c)
				}
			}

			text, err := morse.Default.DecodeMessage(pulses)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), text)
			return nil
		},
	}
}
