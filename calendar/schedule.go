// Package calendar decides which instants are valid bar boundaries and how
// to step from one to the next. A Schedule stores no state between calls:
// every answer is recomputed from the timestamp and the static
// configuration, so a single Schedule can be shared freely.
package calendar

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rustyeddy/barsynth/market"
)

var ErrInvalidSession = errors.New("invalid trading session")

// Calendar is what a bar series needs from a trading schedule.
type Calendar interface {
	IsValidBarTime(ts time.Time) bool
	NextValidBarTime(prior time.Time) time.Time
	Interval() market.BarInterval
}

// TimeOfDay is an offset from local midnight.
type TimeOfDay time.Duration

const day = TimeOfDay(24 * time.Hour)

func NewTimeOfDay(hour, minute int) TimeOfDay {
	return TimeOfDay(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
}

// ParseTimeOfDay accepts "HH:MM" or "HH:MM:SS".
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{"15:04:05", "15:04"} {
		t, err := time.Parse(layout, s)
		if err == nil {
			return clock(t), nil
		}
	}
	return 0, fmt.Errorf("%w: bad time of day %q", ErrInvalidSession, s)
}

func (t TimeOfDay) String() string {
	d := time.Duration(t)
	h := int(d / time.Hour)
	m := int(d % time.Hour / time.Minute)
	sec := int(d % time.Minute / time.Second)
	if sec != 0 {
		return fmt.Sprintf("%02d:%02d:%02d", h, m, sec)
	}
	return fmt.Sprintf("%02d:%02d", h, m)
}

func clock(t time.Time) TimeOfDay {
	h, m, s := t.Clock()
	return TimeOfDay(time.Duration(h)*time.Hour +
		time.Duration(m)*time.Minute +
		time.Duration(s)*time.Second +
		time.Duration(t.Nanosecond()))
}

// ScheduleConfig describes a session. Zero Open/Close select the
// 09:30-16:00 defaults and a nil Location selects UTC.
type ScheduleConfig struct {
	Open     TimeOfDay
	Close    TimeOfDay
	Holidays Holidays
	Interval market.BarInterval
	Location *time.Location
}

var (
	DefaultOpen  = NewTimeOfDay(9, 30)
	DefaultClose = NewTimeOfDay(16, 0)
)

type Schedule struct {
	open     TimeOfDay
	close    TimeOfDay
	holidays Holidays
	interval market.BarInterval
	loc      *time.Location
}

func NewSchedule(cfg ScheduleConfig) (*Schedule, error) {
	if cfg.Open == 0 && cfg.Close == 0 {
		cfg.Open, cfg.Close = DefaultOpen, DefaultClose
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if err := cfg.Interval.Validate(); err != nil {
		return nil, fmt.Errorf("schedule: %w", err)
	}
	if cfg.Open < 0 || cfg.Close > day {
		return nil, fmt.Errorf("%w: session %s-%s outside the day", ErrInvalidSession, cfg.Open, cfg.Close)
	}
	if cfg.Open >= cfg.Close {
		return nil, fmt.Errorf("%w: open %s must be before close %s", ErrInvalidSession, cfg.Open, cfg.Close)
	}

	return &Schedule{
		open:     cfg.Open,
		close:    cfg.Close,
		holidays: cfg.Holidays,
		interval: cfg.Interval,
		loc:      cfg.Location,
	}, nil
}

// NewUSEquitySchedule is a 09:30-16:00 session over the built-in holiday table.
func NewUSEquitySchedule(interval market.BarInterval, loc *time.Location) (*Schedule, error) {
	return NewSchedule(ScheduleConfig{
		Open:     DefaultOpen,
		Close:    DefaultClose,
		Holidays: USEquityHolidays(),
		Interval: interval,
		Location: loc,
	})
}

func (s *Schedule) Interval() market.BarInterval { return s.interval }
func (s *Schedule) Location() *time.Location     { return s.loc }
func (s *Schedule) Open() TimeOfDay              { return s.open }
func (s *Schedule) Close() TimeOfDay             { return s.close }
func (s *Schedule) Holidays() Holidays           { return s.holidays }

// IsTradingDay reports whether ts falls on a weekday that is not a holiday.
func (s *Schedule) IsTradingDay(ts time.Time) bool {
	l := ts.In(s.loc)
	switch l.Weekday() {
	case time.Saturday, time.Sunday:
		return false
	}
	return !s.holidays.Contains(l)
}

func (s *Schedule) IsValidBarTime(ts time.Time) bool {
	if !s.IsTradingDay(ts) {
		return false
	}
	tod := clock(ts.In(s.loc))
	return s.open <= tod && tod < s.close
}

// NextTradingDay returns local midnight of the first trading day strictly
// after the date of ts.
func (s *Schedule) NextTradingDay(ts time.Time) time.Time {
	l := ts.In(s.loc)
	y, m, d := l.Date()
	for i := 1; ; i++ {
		next := time.Date(y, m, d+i, 0, 0, 0, 0, s.loc)
		if s.IsTradingDay(next) {
			return next
		}
	}
}

// SessionOpenOn returns the session open on the date of ts.
func (s *Schedule) SessionOpenOn(ts time.Time) time.Time {
	return s.at(ts, s.open)
}

func (s *Schedule) at(ts time.Time, tod TimeOfDay) time.Time {
	l := ts.In(s.loc)
	y, m, d := l.Date()
	dur := time.Duration(tod)
	return time.Date(y, m, d,
		int(dur/time.Hour),
		int(dur%time.Hour/time.Minute),
		int(dur%time.Minute/time.Second),
		int(dur%time.Second),
		s.loc)
}

// NextValidBarTime steps one interval past prior and then forward until
// the candidate lands inside a session.
func (s *Schedule) NextValidBarTime(prior time.Time) time.Time {
	step := s.interval.Duration()
	candidate := prior.Add(step)

	for !s.IsValidBarTime(candidate) {
		tod := clock(candidate.In(s.loc))
		switch {
		case tod >= s.close || !s.IsTradingDay(candidate):
			candidate = s.SessionOpenOn(s.NextTradingDay(candidate))
		case tod < s.open:
			candidate = s.SessionOpenOn(candidate)
		default:
			candidate = candidate.Add(step)
		}
	}
	return candidate
}

func (s *Schedule) String() string {
	return fmt.Sprintf("%s-%s %s every %s (%d holidays)",
		s.open, s.close, s.loc, s.interval, s.holidays.Len())
}
