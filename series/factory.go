package series

import (
	"fmt"

	"github.com/rustyeddy/barsynth/calendar"
	"github.com/rustyeddy/barsynth/generator"
	"github.com/rustyeddy/barsynth/market"
)

// GBMParams are the model inputs shared by every GBM factory.
type GBMParams struct {
	Seed       int64
	Symbol     string
	Drift      float64
	Volatility float64
}

// DefaultGBMParams returns a 5% drift, 20% volatility model.
func DefaultGBMParams(seed int64, symbol string) GBMParams {
	return GBMParams{Seed: seed, Symbol: symbol, Drift: 0.05, Volatility: 0.2}
}

// NewSeededSeries builds a sine-wave series stepping by interval.
func NewSeededSeries(seed int64, symbol string, interval market.BarInterval, opts ...generator.Option) (*Series, error) {
	g, err := generator.NewSeeded(seed, interval, opts...)
	if err != nil {
		return nil, err
	}
	return New(symbol, g, nil)
}

// NewGBMSeries builds an unanchored GBM series stepping by interval.
func NewGBMSeries(p GBMParams, interval market.BarInterval) (*Series, error) {
	return newGBM(p, generator.RawInterval(interval), nil, nil)
}

// NewAnchoredGBMSeries builds a GBM series through anchor, stepping by interval.
func NewAnchoredGBMSeries(p GBMParams, interval market.BarInterval, anchor market.BarAnchor) (*Series, error) {
	return newGBM(p, generator.RawInterval(interval), &anchor, nil)
}

// NewScheduledGBMSeries builds a GBM series through anchor that only
// visits valid bar times of sched.
func NewScheduledGBMSeries(p GBMParams, sched *calendar.Schedule, anchor market.BarAnchor) (*Series, error) {
	if sched == nil {
		return nil, fmt.Errorf("series %q: %w: nil schedule", p.Symbol, generator.ErrUnsupportedTimeSource)
	}
	return newGBM(p, generator.ScheduleAware(sched), &anchor, sched)
}

func newGBM(p GBMParams, src generator.TimeSource, anchor *market.BarAnchor, sched *calendar.Schedule) (*Series, error) {
	g, err := generator.NewGBM(generator.GBMConfig{
		Seed:       p.Seed,
		Drift:      p.Drift,
		Volatility: p.Volatility,
		Source:     src,
		Anchor:     anchor,
	})
	if err != nil {
		return nil, fmt.Errorf("series %q: %w", p.Symbol, err)
	}

	// a nil *Schedule must not become a non-nil Calendar
	var cal calendar.Calendar
	if sched != nil {
		cal = sched
	}
	return New(p.Symbol, g, cal)
}
