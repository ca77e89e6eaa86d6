package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const envPrefix = "BARSYNTH_"

// LoadEnvFile loads KEY=VALUE pairs into the process environment without
// overriding variables that are already set. A missing file is not an error.
func LoadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load %s file: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides fields from BARSYNTH_* variables found by lookup.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if lookup == nil {
		lookup = os.LookupEnv
	}

	if v, ok := lookup(envPrefix + "SEED"); ok {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("%sSEED: %w", envPrefix, err)
		}
		c.Seed = n
	}
	if v, ok := lookup(envPrefix + "SYMBOL"); ok {
		c.Symbol = v
	}
	if v, ok := lookup(envPrefix + "MODEL"); ok {
		c.Model = v
	}
	if v, ok := lookup(envPrefix + "DRIFT"); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%sDRIFT: %w", envPrefix, err)
		}
		c.Drift = f
	}
	if v, ok := lookup(envPrefix + "VOLATILITY"); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%sVOLATILITY: %w", envPrefix, err)
		}
		c.Volatility = f
	}
	if v, ok := lookup(envPrefix + "INTERVAL"); ok {
		c.Interval = v
	}
	if v, ok := lookup(envPrefix + "HOLIDAYS_DB"); ok {
		c.Schedule.HolidaysDB = v
	}
	return nil
}
