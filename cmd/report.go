package cmd

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/jsphweid/rebeam/constants"
	"github.com/jsphweid/rebeam/model"
	"github.com/jsphweid/rebeam/timesig"
	"github.com/jsphweid/rebeam/util"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(reportCmd)
}

var reportCmd = &cobra.Command{
	Use:   "report [maxNumerator]",
	Short: "Reports which time signatures have splits covering the measure",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		maxNumerator := constants.DefaultReportNumerator
		if len(args) == 1 {
			n, err := strconv.Atoi(args[0])
			if err != nil {
				return err
			}
			maxNumerator = n
		}
		d := &timesig.Deriver{NumeratorDriven: cfg.Derive.NumeratorDriven, Logger: logger}
		rep, err := coverage(d, maxNumerator)
		if err != nil {
			return err
		}
		rep.print(os.Stdout)
		return nil
	},
}

type coverageReport struct {
	numSignatures int
	// per level, how many signatures fail to span the measure
	uncovered map[string]int
	examples  map[string][]model.TimeSignature
}

var levels = []struct {
	name  string
	units float64
	get   func(model.BeamRuleSet) model.Positions
}{
	{"split8", model.EighthUnits, func(r model.BeamRuleSet) model.Positions { return r.Split8 }},
	{"split16", model.SixteenthUnits, func(r model.BeamRuleSet) model.Positions { return r.Split16 }},
	{"split32", model.ThirtySecondUnits, func(r model.BeamRuleSet) model.Positions { return r.Split32 }},
	{"sub8in16", model.SixteenthUnits, func(r model.BeamRuleSet) model.Positions { return r.Sub8In16 }},
	{"sub8in32", model.ThirtySecondUnits, func(r model.BeamRuleSet) model.Positions { return r.Sub8In32 }},
	{"sub16in32", model.ThirtySecondUnits, func(r model.BeamRuleSet) model.Positions { return r.Sub16In32 }},
}

func coverage(d *timesig.Deriver, maxNumerator int) (coverageReport, error) {
	rep := coverageReport{
		uncovered: make(map[string]int),
		examples:  make(map[string][]model.TimeSignature),
	}
	for _, den := range timesig.Denominators {
		for num := 1; num <= maxNumerator; num++ {
			ts := model.TimeSignature{Numerator: num, Denominator: den}
			r, err := d.Derive(timesig.Request{Numerator: num, Denominator: den})
			if err != nil {
				return rep, err
			}
			rep.numSignatures++
			for _, level := range levels {
				if !spans(level.get(r), ts.Length()*level.units) {
					rep.uncovered[level.name]++
					if len(rep.examples[level.name]) < 3 {
						rep.examples[level.name] = append(rep.examples[level.name], ts)
					}
				}
			}
		}
	}
	return rep, nil
}

func spans(p model.Positions, total float64) bool {
	last, ok := util.Last(p)
	return ok && p[0] == 0 && last == total && util.IsNonDecreasing(p)
}

// failures counts every level a signature fails, over all levels.
func (rep coverageReport) failures() uint64 {
	counts := make([]int, 0, len(levels))
	for _, level := range levels {
		counts = append(counts, rep.uncovered[level.name])
	}
	return util.Sum(counts)
}

func (rep coverageReport) print(w io.Writer) {
	fmt.Fprintf(w, "time signatures checked: %v\n", rep.numSignatures)
	fmt.Fprintf(w, "levels not spanning the measure: %v\n", rep.failures())
	for _, level := range levels {
		fmt.Fprintf(w, "%-10s not spanning the measure: %v", level.name, rep.uncovered[level.name])
		if ex := rep.examples[level.name]; len(ex) > 0 {
			fmt.Fprintf(w, " (e.g. %v)", ex)
		}
		fmt.Fprintln(w)
	}
}
