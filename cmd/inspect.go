package cmd

import (
	"fmt"

	"github.com/jsphweid/rebeam/model"
	"github.com/jsphweid/rebeam/util"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(inspectCmd)
}

var inspectCmd = &cobra.Command{
	Use:   "inspect TABLE",
	Short: "Inspects a rule table",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		tables, err := util.ReadBinary[[]model.RuleTable](args[0])
		if err != nil {
			return err
		}
		inspect(tables)
		return nil
	},
}

func inspect(tables []model.RuleTable) {
	for _, table := range tables {
		fmt.Printf("file %v: %v (%d measures)\n", table.FileNum, table.Path, len(table.Measures))
		for _, m := range table.Measures {
			fmt.Printf("  measure %d %v: split8 %v split16 %v split32 %v\n",
				m.Index+1, m.TimeSignature, m.Rules.Split8, m.Rules.Split16, m.Rules.Split32)
		}
	}
}
