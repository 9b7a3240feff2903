package cmd

import (
	"fmt"
	"strconv"

	"github.com/jsphweid/rebeam/tuplet"
	"github.com/spf13/cobra"
)

var tupletNarrow bool

func init() {
	tupletCmd.Flags().BoolVar(&tupletNarrow, "narrow", false, "clip sub-beam treatments to the beam treatment")
	rootCmd.AddCommand(tupletCmd)
}

var tupletCmd = &cobra.Command{
	Use:   "tuplet COUNT UNIT",
	Short: "Prints the beaming rules inside a tuplet",
	Long: `Prints the beaming rules inside a tuplet of COUNT notes, each UNIT quarter
notes long. UNIT may be a fraction: "tuplet 3 1/2" is an eighth note triplet.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		count, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("bad tuplet count: %w", err)
		}
		unit, err := tuplet.ParseUnit(args[1])
		if err != nil {
			return err
		}
		if err := tuplet.Check(count, unit); err != nil {
			return err
		}
		rules := tuplet.Derive(count, unit)
		if tupletNarrow || cfg.Derive.Narrow {
			rules = rules.Narrowed()
		}
		return printJSON(rules)
	},
}
