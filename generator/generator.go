// Package generator synthesizes OHLCV bars as pure functions of a
// timestamp and an immutable configuration. Generators carry no mutable
// state after construction and may be shared between goroutines.
package generator

import (
	"errors"
	"fmt"
	"time"

	"github.com/rustyeddy/barsynth/calendar"
	"github.com/rustyeddy/barsynth/market"
	"github.com/rustyeddy/barsynth/noise"
)

var ErrUnsupportedTimeSource = errors.New("unsupported time source")

// Generator produces the bar covering a timestamp.
type Generator interface {
	BarAt(ts time.Time) market.Bar
	Interval() market.BarInterval
}

type sourceKind int

const (
	rawInterval sourceKind = iota + 1
	scheduleAware
)

// TimeSource says where a generator's bar spacing comes from: either a
// raw interval or a trading schedule.
type TimeSource struct {
	kind     sourceKind
	interval market.BarInterval
	schedule *calendar.Schedule
}

func RawInterval(bi market.BarInterval) TimeSource {
	return TimeSource{kind: rawInterval, interval: bi}
}

func ScheduleAware(s *calendar.Schedule) TimeSource {
	return TimeSource{kind: scheduleAware, schedule: s}
}

func (ts TimeSource) Interval() market.BarInterval {
	if ts.kind == scheduleAware && ts.schedule != nil {
		return ts.schedule.Interval()
	}
	return ts.interval
}

// Schedule is nil for a raw interval source.
func (ts TimeSource) Schedule() *calendar.Schedule {
	return ts.schedule
}

func (ts TimeSource) IsScheduled() bool {
	return ts.kind == scheduleAware
}

func (ts TimeSource) Validate() error {
	switch ts.kind {
	case rawInterval:
		return ts.interval.Validate()
	case scheduleAware:
		if ts.schedule == nil {
			return fmt.Errorf("%w: nil schedule", ErrUnsupportedTimeSource)
		}
		return ts.schedule.Interval().Validate()
	default:
		return fmt.Errorf("%w: kind %d", ErrUnsupportedTimeSource, ts.kind)
	}
}

func (ts TimeSource) String() string {
	switch ts.kind {
	case rawInterval:
		return "interval " + ts.interval.String()
	case scheduleAware:
		if ts.schedule != nil {
			return "schedule " + ts.schedule.String()
		}
	}
	return "unset"
}

type options struct {
	epoch time.Time
}

type Option func(*options)

// WithEpoch moves the reference instant elapsed time is measured from.
func WithEpoch(epoch time.Time) Option {
	return func(o *options) {
		o.epoch = epoch
	}
}

func buildOptions(opts []Option) options {
	o := options{epoch: noise.DefaultEpoch}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
