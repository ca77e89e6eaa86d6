package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rustyeddy/barsynth/market"
	"github.com/rustyeddy/barsynth/report"
)

var summaryFlags genFlags

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Summarize a generated bar sequence",
	Long: `Generate bars as "generate" would and print statistics over them:
price range, mean close, log return volatility and total volume.

Example:
  barsynth summary -n 2000 --seed 7`,
	Args: cobra.NoArgs,
	RunE: runSummary,
}

func init() {
	rootCmd.AddCommand(summaryCmd)
	summaryFlags.bind(summaryCmd)
}

func runSummary(cmd *cobra.Command, args []string) error {
	cfg, err := summaryFlags.configFor(cmd)
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

	bars := s.Take(start, cfg.Output.Count)
	sum, err := report.Summarize(bars)
	if err != nil {
		return err
	}
	_, gaps := market.FindGaps(bars, s.Interval())
	sum.Gaps = &gaps

	log.WithFields(logrus.Fields{
		"run_id": runID,
		"symbol": s.Symbol(),
		"count":  sum.Count,
	}).Info("summarized bars")

	return report.WriteSummary(cmd.OutOrStdout(), s.Symbol(), sum)
}
