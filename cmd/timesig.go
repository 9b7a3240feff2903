package cmd

import (
	"encoding/json"
	"os"
	"strconv"
	"strings"

	"github.com/jsphweid/rebeam/model"
	"github.com/jsphweid/rebeam/timesig"
	"github.com/spf13/cobra"
)

var (
	timesigCustom     bool
	timesigNarrow     bool
	timesigNumerators string
)

func init() {
	timesigCmd.Flags().BoolVar(&timesigCustom, "custom", false, "apply overrides and pad every sequence to the full measure")
	timesigCmd.Flags().BoolVar(&timesigNarrow, "narrow", false, "clip sub-beam treatments to the beam treatment")
	timesigCmd.Flags().StringVar(&timesigNumerators, "score-numerators", "", "comma separated numerators used elsewhere in the score, e.g. 4,6")
	rootCmd.AddCommand(timesigCmd)
}

var timesigCmd = &cobra.Command{
	Use:   "timesig N/D",
	Short: "Prints the beaming rules of a time signature",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ts, err := model.ParseTimeSignature(args[0])
		if err != nil {
			return err
		}
		numerators, err := parseNumerators(timesigNumerators)
		if err != nil {
			return err
		}
		d, err := newDeriver(cmd.Context(), false)
		if err != nil {
			return err
		}
		rules, err := d.Derive(timesig.Request{
			Numerator:       ts.Numerator,
			Denominator:     ts.Denominator,
			Custom:          timesigCustom || cfg.Derive.Custom,
			ScoreNumerators: numerators,
		})
		if err != nil {
			return err
		}
		if timesigNarrow || cfg.Derive.Narrow {
			rules = rules.Narrowed()
		}
		return printJSON(rules)
	},
}

func parseNumerators(s string) (model.NumeratorSet, error) {
	var nums []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return model.NumeratorSet{}, err
		}
		nums = append(nums, n)
	}
	return model.NewNumeratorSet(nums...), nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
