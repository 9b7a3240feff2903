package cmd

import (
	"fmt"
	"strconv"

	"github.com/jsphweid/rebeam/beammode"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(beammodeCmd)
}

var beammodeCmd = &cobra.Command{
	Use:   "beammode VALUE...",
	Short: "Converts MuseScore 3 beam modes to MuseScore 4",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, arg := range args {
			v, err := strconv.Atoi(arg)
			if err != nil {
				return fmt.Errorf("bad beam mode %q: %w", arg, err)
			}
			mode := beammode.ConvertMode(beammode.Legacy(v))
			fmt.Printf("%d -> %d (%v)\n", v, int(mode), mode)
		}
		return nil
	},
}
