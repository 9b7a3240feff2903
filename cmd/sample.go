package cmd

import (
	"fmt"
	"os"

	"github.com/jsphweid/rebeam/model"
	"github.com/jsphweid/rebeam/sample"
	"github.com/spf13/cobra"
)

var sampleMeasures int

func init() {
	sampleCmd.Flags().IntVar(&sampleMeasures, "measures", 1, "measures per time signature")
	rootCmd.AddCommand(sampleCmd)
}

var sampleCmd = &cobra.Command{
	Use:   "sample OUT.mid N/D...",
	Short: "Writes a MIDI file with the given time signatures",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		var signatures []model.TimeSignature
		for _, arg := range args[1:] {
			ts, err := model.ParseTimeSignature(arg)
			if err != nil {
				return err
			}
			signatures = append(signatures, ts)
		}
		s, err := sample.Create(signatures, sampleMeasures)
		if err != nil {
			return err
		}
		f, err := os.Create(args[0])
		if err != nil {
			return fmt.Errorf("couldn't create file %s: %w", args[0], err)
		}
		defer f.Close()
		if _, err := s.WriteTo(f); err != nil {
			return fmt.Errorf("write failed for file %s: %w", args[0], err)
		}
		return nil
	},
}
