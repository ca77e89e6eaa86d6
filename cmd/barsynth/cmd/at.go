package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/barsynth/config"
	"github.com/rustyeddy/barsynth/market"
	"github.com/rustyeddy/barsynth/report"
)

var atFlags genFlags

var atCmd = &cobra.Command{
	Use:   "at <timestamp>",
	Short: "Print the bar containing a timestamp",
	Long: `Compute a single bar directly, without generating earlier bars.

Example:
  barsynth at 2025-01-03T14:00:00Z`,
	Args: cobra.ExactArgs(1),
	RunE: runAt,
}

func init() {
	rootCmd.AddCommand(atCmd)
	atFlags.bind(atCmd)
}

func runAt(cmd *cobra.Command, args []string) error {
	ts, err := config.ParseTime(args[0])
	if err != nil {
		return err
	}
	cfg, err := atFlags.configFor(cmd)
	if err != nil {
		return err
	}
	s, err := cfg.BuildSeries(cmd.Context())
	if err != nil {
		return err
	}

	if cal := s.Calendar(); cal != nil && !cal.IsValidBarTime(ts) {
		log.WithField("run_id", runID).Warnf("%s is outside the trading schedule", ts.Format("2006-01-02 15:04 MST"))
	}

	bars := []market.Bar{s.BarAt(ts)}
	out := cmd.OutOrStdout()
	if cfg.Output.Format == config.FormatCSV {
		return report.WriteCSV(out, bars)
	}
	if err := report.WriteTable(out, s.Symbol(), bars); err != nil {
		return fmt.Errorf("write bar: %w", err)
	}
	return nil
}
