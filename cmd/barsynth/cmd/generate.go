package cmd

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rustyeddy/barsynth/config"
	"github.com/rustyeddy/barsynth/market"
	"github.com/rustyeddy/barsynth/report"
)

var (
	generateFlags    genFlags
	generateResample string
	generateMinBars  int
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Print a sequence of bars",
	Long: `Generate consecutive bars starting at output.start (or the anchor time).

With a schedule enabled, bars land only on session boundaries and skip
weekends and holidays.

Examples:
  barsynth generate -n 10
  barsynth generate -c spy.yaml -f csv -n 500 > spy.csv
  barsynth generate -m seeded -i M5 --start 2025-01-02T00:00:00Z
  barsynth generate -i M5 -n 780 --resample H1`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)
	generateFlags.bind(generateCmd)
	generateCmd.Flags().StringVar(&generateResample, "resample", "", "roll generated bars up to a coarser interval")
	generateCmd.Flags().IntVar(&generateMinBars, "min-bars", 1, "source bars required to keep a resampled bar")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := generateFlags.configFor(cmd)
	if err != nil {
		return err
	}

	s, err := cfg.BuildSeries(cmd.Context())
	if err != nil {
		return err
	}
	start, err := cfg.StartTime()
	if err != nil {
		return err
	}

	log.WithFields(logrus.Fields{
		"run_id":   runID,
		"symbol":   s.Symbol(),
		"interval": s.Interval().String(),
		"count":    cfg.Output.Count,
		"start":    start,
	}).Info("generating bars")

	bars := s.Take(start, cfg.Output.Count)
	if generateResample != "" {
		to, err := market.ParseInterval(generateResample)
		if err != nil {
			return fmt.Errorf("--resample: %w", err)
		}
		if to.Milliseconds() < s.Interval().Milliseconds() {
			return fmt.Errorf("--resample %s is finer than the series interval %s", to, s.Interval())
		}
		if bars, err = market.Aggregate(bars, to, generateMinBars); err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	switch cfg.Output.Format {
	case config.FormatCSV:
		return report.WriteCSV(out, bars)
	case config.FormatTable:
		return report.WriteTable(out, s.Symbol(), bars)
	default:
		return fmt.Errorf("unknown output format %q", cfg.Output.Format)
	}
}
