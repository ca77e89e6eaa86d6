package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/rustyeddy/barsynth/calendar"
	"github.com/rustyeddy/barsynth/market"
)

const (
	ModelGBM    = "gbm"
	ModelSeeded = "seeded"

	FormatTable = "table"
	FormatCSV   = "csv"
)

// Config represents a complete bar generation setup
type Config struct {
	Seed       int64          `json:"seed" yaml:"seed"`
	Symbol     string         `json:"symbol" yaml:"symbol"`
	Model      string         `json:"model" yaml:"model"` // "gbm" or "seeded"
	Drift      float64        `json:"drift" yaml:"drift"`
	Volatility float64        `json:"volatility" yaml:"volatility"`
	Interval   string         `json:"interval" yaml:"interval"` // e.g. "M5", "1h"
	Anchor     AnchorConfig   `json:"anchor" yaml:"anchor"`
	Schedule   ScheduleConfig `json:"schedule" yaml:"schedule"`
	Output     OutputConfig   `json:"output" yaml:"output"`
}

// AnchorConfig pins the GBM price path. Both fields empty means unanchored.
type AnchorConfig struct {
	Time  string `json:"time,omitempty" yaml:"time,omitempty"`   // RFC3339
	Price string `json:"price,omitempty" yaml:"price,omitempty"` // decimal; empty uses the symbol's reference price
}

// ScheduleConfig restricts bars to trading sessions
type ScheduleConfig struct {
	Enabled    bool     `json:"enabled" yaml:"enabled"`
	Open       string   `json:"open,omitempty" yaml:"open,omitempty"`   // "09:30"
	Close      string   `json:"close,omitempty" yaml:"close,omitempty"` // "16:00"
	Location   string   `json:"location,omitempty" yaml:"location,omitempty"`
	Market     string   `json:"market,omitempty" yaml:"market,omitempty"`
	Holidays   []string `json:"holidays,omitempty" yaml:"holidays,omitempty"` // YYYY-MM-DD
	HolidaysDB string   `json:"holidays_db,omitempty" yaml:"holidays_db,omitempty"`
}

// OutputConfig controls what the CLI prints
type OutputConfig struct {
	Format string `json:"format" yaml:"format"` // "table" or "csv"
	Count  int    `json:"count" yaml:"count"`
	Start  string `json:"start,omitempty" yaml:"start,omitempty"`
}

// LoadFromFile loads configuration from a file (YAML, falling back to JSON)
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := &Config{}

	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		err = json.Unmarshal(data, cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// SaveToFile saves configuration as YAML or JSON depending on the extension
func (c *Config) SaveToFile(path string) error {
	var data []byte
	var err error

	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}

	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Symbol == "" {
		return fmt.Errorf("symbol is required")
	}
	if c.Model != ModelGBM && c.Model != ModelSeeded {
		return fmt.Errorf("model must be '%s' or '%s'", ModelGBM, ModelSeeded)
	}
	if _, err := c.ParsedInterval(); err != nil {
		return err
	}
	if c.Model == ModelGBM && c.Volatility < 0 {
		return fmt.Errorf("volatility must not be negative")
	}

	anchor, err := c.ParsedAnchor()
	if err != nil {
		return err
	}

	if c.Schedule.Enabled {
		if _, _, err := c.sessionHours(); err != nil {
			return err
		}
		if _, err := c.location(); err != nil {
			return err
		}
		if _, err := calendar.ParseHolidays(c.Schedule.Holidays); err != nil {
			return fmt.Errorf("schedule.holidays: %w", err)
		}
		if c.Model == ModelSeeded {
			return fmt.Errorf("model '%s' steps by raw interval; disable schedule", ModelSeeded)
		}
		if anchor == nil {
			return fmt.Errorf("anchor is required for a scheduled gbm series")
		}
	}

	if c.Output.Format != FormatTable && c.Output.Format != FormatCSV {
		return fmt.Errorf("output.format must be '%s' or '%s'", FormatTable, FormatCSV)
	}
	if c.Output.Count <= 0 {
		return fmt.Errorf("output.count must be positive")
	}
	if c.Output.Start != "" {
		if _, err := ParseTime(c.Output.Start); err != nil {
			return fmt.Errorf("output.start: %w", err)
		}
	}
	return nil
}

// ParsedInterval returns the configured bar interval
func (c *Config) ParsedInterval() (market.BarInterval, error) {
	bi, err := market.ParseInterval(c.Interval)
	if err != nil {
		return market.BarInterval{}, fmt.Errorf("interval: %w", err)
	}
	return bi, nil
}

// ParsedAnchor returns nil when no anchor time is configured.
func (c *Config) ParsedAnchor() (*market.BarAnchor, error) {
	if c.Anchor.Time == "" {
		if c.Anchor.Price != "" {
			return nil, fmt.Errorf("anchor.time is required when anchor.price is set")
		}
		return nil, nil
	}

	ts, err := ParseTime(c.Anchor.Time)
	if err != nil {
		return nil, fmt.Errorf("anchor.time: %w", err)
	}

	meta, _ := market.LookupInstrument(c.Symbol)
	price := meta.ReferencePrice
	if c.Anchor.Price != "" {
		price, err = decimal.NewFromString(strings.TrimSpace(c.Anchor.Price))
		if err != nil {
			return nil, fmt.Errorf("anchor.price: %w", err)
		}
	}

	a, err := market.NewBarAnchor(ts, price)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// StartTime is where the CLI begins a sequence: output.start, else the
// anchor time, else the current hour.
func (c *Config) StartTime() (time.Time, error) {
	if c.Output.Start != "" {
		return ParseTime(c.Output.Start)
	}
	if c.Anchor.Time != "" {
		return ParseTime(c.Anchor.Time)
	}
	return time.Now().UTC().Truncate(time.Hour), nil
}

func (c *Config) sessionHours() (open, close calendar.TimeOfDay, err error) {
	open, close = calendar.DefaultOpen, calendar.DefaultClose
	if c.Schedule.Open != "" {
		if open, err = calendar.ParseTimeOfDay(c.Schedule.Open); err != nil {
			return 0, 0, fmt.Errorf("schedule.open: %w", err)
		}
	}
	if c.Schedule.Close != "" {
		if close, err = calendar.ParseTimeOfDay(c.Schedule.Close); err != nil {
			return 0, 0, fmt.Errorf("schedule.close: %w", err)
		}
	}
	if open >= close {
		return 0, 0, fmt.Errorf("schedule.open must be before schedule.close")
	}
	return open, close, nil
}

func (c *Config) location() (*time.Location, error) {
	if c.Schedule.Location == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(c.Schedule.Location)
	if err != nil {
		return nil, fmt.Errorf("schedule.location: %w", err)
	}
	return loc, nil
}

// Market is the holiday table key, defaulting to the built-in US table.
func (c *Config) Market() string {
	if c.Schedule.Market == "" {
		return calendar.USEquity
	}
	return c.Schedule.Market
}

// ParseTime accepts RFC3339, RFC3339Nano, a bare "2006-01-02T15:04:05"
// or a date, the last two read as UTC.
func ParseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{time.RFC3339, time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02 15:04", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("bad time %q", s)
}

// Default returns a configuration with sensible defaults
func Default() *Config {
	return &Config{
		Seed:       42,
		Symbol:     "SPY",
		Model:      ModelGBM,
		Drift:      0.05,
		Volatility: 0.2,
		Interval:   "1h",
		Anchor: AnchorConfig{
			Time:  "2025-01-02T09:30:00Z",
			Price: "480.00",
		},
		Schedule: ScheduleConfig{
			Enabled:  true,
			Open:     "09:30",
			Close:    "16:00",
			Location: "UTC",
			Market:   calendar.USEquity,
		},
		Output: OutputConfig{
			Format: FormatTable,
			Count:  20,
			Start:  "2025-01-02T09:30:00Z",
		},
	}
}
