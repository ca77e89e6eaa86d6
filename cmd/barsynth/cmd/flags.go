package cmd

import (
	"github.com/spf13/cobra"

	"github.com/rustyeddy/barsynth/config"
)

// genFlags override config values when set on the command line.
type genFlags struct {
	seed     int64
	symbol   string
	model    string
	interval string
	count    int
	start    string
	format   string

	noSchedule bool
}

func (f *genFlags) bind(cmd *cobra.Command) {
	cmd.Flags().Int64Var(&f.seed, "seed", 0, "generator seed")
	cmd.Flags().StringVarP(&f.symbol, "symbol", "s", "", "instrument symbol")
	cmd.Flags().StringVarP(&f.model, "model", "m", "", "model: gbm or seeded")
	cmd.Flags().StringVarP(&f.interval, "interval", "i", "", "bar interval, e.g. M5 or 1h")
	cmd.Flags().IntVarP(&f.count, "count", "n", 0, "number of bars")
	cmd.Flags().StringVar(&f.start, "start", "", "first timestamp (RFC3339)")
	cmd.Flags().StringVarP(&f.format, "format", "f", "", "output format: table or csv")
	cmd.Flags().BoolVar(&f.noSchedule, "no-schedule", false, "step by raw interval, ignoring the configured schedule")
}

// configFor loads the config and layers any changed flags on top.
func (f *genFlags) configFor(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Seed = f.seed
	}
	if flags.Changed("symbol") {
		cfg.Symbol = f.symbol
	}
	if flags.Changed("model") {
		cfg.Model = f.model
	}
	if flags.Changed("interval") {
		cfg.Interval = f.interval
	}
	if flags.Changed("count") {
		cfg.Output.Count = f.count
	}
	if flags.Changed("start") {
		cfg.Output.Start = f.start
	}
	if flags.Changed("format") {
		cfg.Output.Format = f.format
	}
	if f.noSchedule {
		cfg.Schedule.Enabled = false
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
