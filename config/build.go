package config

import (
	"context"
	"errors"
	"fmt"

	"github.com/rustyeddy/barsynth/calendar"
	"github.com/rustyeddy/barsynth/series"
)

var ErrNoHolidays = errors.New("empty holiday store")

// Holidays resolves the holiday set: the SQLite store when holidays_db is
// set, otherwise the built-in table for the market, plus any dates listed
// inline.
func (c *Config) Holidays(ctx context.Context) (calendar.Holidays, error) {
	extra, err := calendar.ParseHolidays(c.Schedule.Holidays)
	if err != nil {
		return calendar.Holidays{}, fmt.Errorf("schedule.holidays: %w", err)
	}

	var src calendar.HolidaySource = calendar.BuiltinHolidays()
	if c.Schedule.HolidaysDB != "" {
		store, err := calendar.OpenSQLite(c.Schedule.HolidaysDB)
		if err != nil {
			return calendar.Holidays{}, fmt.Errorf("open holidays db: %w", err)
		}
		defer store.Close()
		src = store
	} else if len(c.Schedule.Holidays) > 0 && c.Schedule.Market == "" {
		// inline dates with no market replace the built-in table
		return extra, nil
	}

	h, err := src.Holidays(ctx, c.Market())
	if err != nil {
		return calendar.Holidays{}, err
	}
	if h.Len() == 0 && c.Schedule.HolidaysDB != "" {
		return calendar.Holidays{}, fmt.Errorf("%w: no holidays for market %q in %s (run holidays import)",
			ErrNoHolidays, c.Market(), c.Schedule.HolidaysDB)
	}
	return h.Union(extra), nil
}

// BuildSchedule returns nil when the schedule is disabled.
func (c *Config) BuildSchedule(ctx context.Context) (*calendar.Schedule, error) {
	if !c.Schedule.Enabled {
		return nil, nil
	}

	interval, err := c.ParsedInterval()
	if err != nil {
		return nil, err
	}
	open, close, err := c.sessionHours()
	if err != nil {
		return nil, err
	}
	loc, err := c.location()
	if err != nil {
		return nil, err
	}
	holidays, err := c.Holidays(ctx)
	if err != nil {
		return nil, err
	}

	return calendar.NewSchedule(calendar.ScheduleConfig{
		Open:     open,
		Close:    close,
		Holidays: holidays,
		Interval: interval,
		Location: loc,
	})
}

// BuildSeries validates the configuration and wires the matching factory.
func (c *Config) BuildSeries(ctx context.Context) (*series.Series, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	interval, err := c.ParsedInterval()
	if err != nil {
		return nil, err
	}
	anchor, err := c.ParsedAnchor()
	if err != nil {
		return nil, err
	}
	sched, err := c.BuildSchedule(ctx)
	if err != nil {
		return nil, err
	}

	if c.Model == ModelSeeded {
		return series.NewSeededSeries(c.Seed, c.Symbol, interval)
	}

	params := series.GBMParams{
		Seed:       c.Seed,
		Symbol:     c.Symbol,
		Drift:      c.Drift,
		Volatility: c.Volatility,
	}

	switch {
	case sched != nil:
		return series.NewScheduledGBMSeries(params, sched, *anchor)
	case anchor != nil:
		return series.NewAnchoredGBMSeries(params, interval, *anchor)
	default:
		return series.NewGBMSeries(params, interval)
	}
}
