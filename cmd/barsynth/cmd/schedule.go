package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/barsynth/calendar"
	"github.com/rustyeddy/barsynth/config"
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Inspect the trading schedule",
	Long: `Query the configured trading session, holidays and bar interval.

Subcommands:
  next   - List the bar times that follow a timestamp
  check  - Report whether a timestamp is a valid bar time

Examples:
  barsynth schedule next 2025-01-03T15:00:00Z -n 5
  barsynth schedule check 2025-01-01T10:00:00Z`,
}

var scheduleNextCmd = &cobra.Command{
	Use:   "next <timestamp>",
	Short: "List the bar times that follow a timestamp",
	Args:  cobra.ExactArgs(1),
	RunE:  runScheduleNext,
}

var scheduleCheckCmd = &cobra.Command{
	Use:   "check <timestamp>",
	Short: "Report whether a timestamp is a valid bar time",
	Args:  cobra.ExactArgs(1),
	RunE:  runScheduleCheck,
}

var (
	scheduleInterval string
	scheduleCount    int
)

func init() {
	rootCmd.AddCommand(scheduleCmd)
	scheduleCmd.AddCommand(scheduleNextCmd)
	scheduleCmd.AddCommand(scheduleCheckCmd)

	scheduleCmd.PersistentFlags().StringVarP(&scheduleInterval, "interval", "i", "", "bar interval (overrides config)")
	scheduleNextCmd.Flags().IntVarP(&scheduleCount, "count", "n", 1, "number of bar times to list")
}

// loadSchedule builds the configured schedule even when the config leaves
// it disabled for generation.
func loadSchedule(cmd *cobra.Command) (*calendar.Schedule, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	if scheduleInterval != "" {
		cfg.Interval = scheduleInterval
	}
	cfg.Schedule.Enabled = true
	return cfg.BuildSchedule(cmd.Context())
}

func runScheduleNext(cmd *cobra.Command, args []string) error {
	ts, err := config.ParseTime(args[0])
	if err != nil {
		return err
	}
	if scheduleCount < 1 {
		return fmt.Errorf("--count must be positive")
	}
	sched, err := loadSchedule(cmd)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	cursor := ts
	for i := 0; i < scheduleCount; i++ {
		cursor = sched.NextValidBarTime(cursor)
		fmt.Fprintln(out, cursor.Format("2006-01-02T15:04:05Z07:00 Mon"))
	}
	return nil
}

func runScheduleCheck(cmd *cobra.Command, args []string) error {
	ts, err := config.ParseTime(args[0])
	if err != nil {
		return err
	}
	sched, err := loadSchedule(cmd)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if sched.IsValidBarTime(ts) {
		fmt.Fprintf(out, "%s: valid bar time (%s)\n", ts.Format("2006-01-02T15:04:05Z07:00"), sched)
		return nil
	}
	fmt.Fprintf(out, "%s: not a bar time, next is %s\n",
		ts.Format("2006-01-02T15:04:05Z07:00"),
		sched.NextValidBarTime(ts).Format("2006-01-02T15:04:05Z07:00"))
	return nil
}
