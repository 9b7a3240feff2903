package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/jsphweid/rebeam/config"
	"github.com/jsphweid/rebeam/custom"
	"github.com/jsphweid/rebeam/timesig"
	"github.com/spf13/cobra"
)

var (
	configPath string
	logLevel   string

	cfg    = config.DefaultConfig()
	logger = slog.Default()
)

var rootCmd = &cobra.Command{
	Use:   "rebeam",
	Short: "Derives beam grouping rules",
	Long: `rebeam derives where beams break for a time signature or tuplet,
converts legacy beam modes, and applies the rules to the measures of MIDI files.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default: rebeam.yaml in this or a parent directory)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "debug, info, warn or error")
}

func setup() error {
	loaded, err := config.NewLoader(logger).Load(configPath)
	if err != nil {
		return err
	}
	if logLevel != "" {
		loaded.LogLevel = logLevel
	}
	level, err := config.ParseLevel(loaded.LogLevel)
	if err != nil {
		return err
	}
	cfg = loaded
	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return nil
}

// newDeriver wires the configured override sources into a deriver. When
// watch is set the overrides file is reloaded until ctx ends.
func newDeriver(ctx context.Context, watch bool) (*timesig.Deriver, error) {
	var sources custom.Chain

	if cfg.Overrides.File != "" {
		fileSource, err := custom.NewFileSource(cfg.Overrides.File)
		if err != nil {
			return nil, err
		}
		if watch && cfg.Overrides.Watch {
			if err := custom.Watch(ctx, fileSource, cfg.Overrides.Debounce, logger, nil); err != nil {
				return nil, fmt.Errorf("could not watch overrides: %w", err)
			}
		}
		sources = append(sources, fileSource)
	}

	if cfg.Overrides.DynamoTable != "" {
		client, err := custom.DialDynamo(cfg.Overrides.DynamoRegion, cfg.Overrides.DynamoEndpoint)
		if err != nil {
			return nil, err
		}
		sources = append(sources, custom.NewDynamoSource(client, cfg.Overrides.DynamoTable, logger))
	}

	d := &timesig.Deriver{
		NumeratorDriven: cfg.Derive.NumeratorDriven,
		Logger:          logger,
	}
	if len(sources) > 0 {
		d.Overrides = sources
	}
	return d, nil
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}
