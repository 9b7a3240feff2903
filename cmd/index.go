package cmd

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strconv"

	"github.com/google/uuid"
	"github.com/jsphweid/rebeam/constants"
	"github.com/jsphweid/rebeam/file"
	"github.com/jsphweid/rebeam/midi"
	"github.com/jsphweid/rebeam/model"
	"github.com/jsphweid/rebeam/score"
	"github.com/jsphweid/rebeam/util"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(indexCmd)
}

var indexCmd = &cobra.Command{
	Use:   "index PATH [max]",
	Short: "Derives per-measure rules for MIDI files",
	Long: `Derives per-measure beaming rules for every MIDI file under PATH and
writes them to a rule table in the output directory.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		var maxNum int
		if len(args) == 2 {
			arg, err := strconv.Atoi(args[1])
			if err != nil {
				return err
			}
			maxNum = arg
		}
		d, err := newDeriver(cmd.Context(), false)
		if err != nil {
			return err
		}
		path, err := Index(args[0], maxNum, d)
		if err != nil {
			return err
		}
		fmt.Println(path)
		return nil
	},
}

// Index writes the rule tables of up to maxNum files under root and returns
// the table path. A file with an unrecognised time signature stops the run.
func Index(root string, maxNum int, d score.Deriver) (string, error) {
	if err := util.EnsureOutputDir(cfg.Output.Dir); err != nil {
		return "", err
	}
	paths, err := util.GatherAllMidiPaths(root, maxNum)
	if err != nil {
		return "", err
	}
	fileNumMap := file.CreateFileNumMap(paths)

	var tables []model.RuleTable
	for i, num := range util.GetKeys(fileNumMap) {
		path := fileNumMap[num]
		logger.Info("Processing midi file", slog.Int("n", i+1), slog.Int("of", len(fileNumMap)), slog.String("path", path))
		table, err := indexFile(num, path, d)
		if err != nil {
			return "", fmt.Errorf("%s: %w", path, err)
		}
		if table != nil {
			tables = append(tables, *table)
		}
	}

	out := filepath.Join(cfg.Output.Dir, uuid.New().String()+constants.TableExt)
	if err := util.CreateBinary(out, tables); err != nil {
		return "", err
	}
	return out, nil
}

func indexFile(num uint32, path string, d score.Deriver) (*model.RuleTable, error) {
	parsed, err := midi.ReadMidiFile(path)
	if err != nil {
		logger.Warn("Skipping midi file", slog.String("path", path), slog.String("error", err.Error()))
		return nil, nil
	}
	sc, err := score.FromSMF(parsed)
	if err != nil {
		logger.Warn("Skipping midi file", slog.String("path", path), slog.String("error", err.Error()))
		return nil, nil
	}
	measures, err := sc.Rules(d, cfg.Derive.Custom)
	if err != nil {
		return nil, err
	}
	if cfg.Derive.Narrow {
		for i := range measures {
			measures[i].Rules = measures[i].Rules.Narrowed()
		}
	}
	return &model.RuleTable{FileNum: num, Path: path, Measures: measures}, nil
}
