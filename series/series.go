// Package series exposes a generator as point queries and as lazy,
// forward-only bar sequences, optionally stepping along a trading calendar.
package series

import (
	"fmt"
	"iter"
	"time"

	"github.com/rustyeddy/barsynth/calendar"
	"github.com/rustyeddy/barsynth/generator"
	"github.com/rustyeddy/barsynth/market"
)

// Series pairs a generator with the rule for advancing between bars.
// It holds no mutable state; iterators carry their own cursor.
type Series struct {
	symbol   string
	gen      generator.Generator
	interval market.BarInterval
	cal      calendar.Calendar
}

// New builds a series stepping by the generator's interval, or along cal
// when it is non-nil.
func New(symbol string, gen generator.Generator, cal calendar.Calendar) (*Series, error) {
	if gen == nil {
		return nil, fmt.Errorf("series %q: generator is required", symbol)
	}
	interval := gen.Interval()
	if cal != nil {
		interval = cal.Interval()
	}
	if err := interval.Validate(); err != nil {
		return nil, fmt.Errorf("series %q: %w", symbol, err)
	}
	return &Series{symbol: symbol, gen: gen, interval: interval, cal: cal}, nil
}

func (s *Series) Symbol() string                 { return s.symbol }
func (s *Series) Interval() market.BarInterval   { return s.interval }
func (s *Series) Generator() generator.Generator { return s.gen }

// Calendar is nil when the series steps by raw interval.
func (s *Series) Calendar() calendar.Calendar { return s.cal }

// BarAt returns the bar covering ts.
func (s *Series) BarAt(ts time.Time) market.Bar {
	return s.gen.BarAt(ts)
}

func (s *Series) next(cursor time.Time) time.Time {
	if s.cal != nil {
		return s.cal.NextValidBarTime(cursor)
	}
	return cursor.Add(s.interval.Duration())
}

// Bars starts an unbounded sequence at start. The first bar is
// BarAt(start); each later one advances the cursor by one step.
func (s *Series) Bars(start time.Time) *Iterator {
	return &Iterator{s: s, cursor: start}
}

// All is Bars as a range-over-func sequence.
func (s *Series) All(start time.Time) iter.Seq[market.Bar] {
	return func(yield func(market.Bar) bool) {
		it := s.Bars(start)
		for it.Next() {
			if !yield(it.Bar()) {
				return
			}
		}
	}
}

// Take collects the first n bars from start.
func (s *Series) Take(start time.Time, n int) []market.Bar {
	if n <= 0 {
		return nil
	}
	out := make([]market.Bar, 0, n)
	it := s.Bars(start)
	for len(out) < n && it.Next() {
		out = append(out, it.Bar())
	}
	return out
}

// Iterator pulls one bar per Next. It is not safe for concurrent use.
type Iterator struct {
	s       *Series
	cursor  time.Time
	started bool
	bar     market.Bar
}

// Next computes the next bar. The sequence never ends on its own, so
// Next always reports true.
func (it *Iterator) Next() bool {
	if it.started {
		it.cursor = it.s.next(it.cursor)
	}
	it.started = true
	it.bar = it.s.gen.BarAt(it.cursor)
	return true
}

func (it *Iterator) Bar() market.Bar {
	return it.bar
}

// Time is the cursor the current bar was queried at.
func (it *Iterator) Time() time.Time {
	return it.cursor
}
