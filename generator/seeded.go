package generator

import (
	"fmt"
	"math"
	"time"

	"github.com/rustyeddy/barsynth/market"
	"github.com/rustyeddy/barsynth/noise"
)

// Seeded draws bars from a pair of sine waves around 100. The bars are
// self-consistent but follow no price model.
type Seeded struct {
	seed     int64
	interval market.BarInterval
	epoch    time.Time
}

func NewSeeded(seed int64, interval market.BarInterval, opts ...Option) (*Seeded, error) {
	if err := interval.Validate(); err != nil {
		return nil, fmt.Errorf("seeded generator: %w", err)
	}
	o := buildOptions(opts)
	return &Seeded{seed: seed, interval: interval, epoch: o.epoch}, nil
}

func (g *Seeded) Interval() market.BarInterval { return g.interval }
func (g *Seeded) Seed() int64                  { return g.seed }

// BarAt returns the bar whose interval contains ts, stamped with the
// aligned interval start rather than ts itself.
func (g *Seeded) BarAt(ts time.Time) market.Bar {
	aligned := AlignTicks(ts, g.interval)
	t := noise.Seconds(aligned, g.epoch)
	s := float64(g.seed)

	baseWave := math.Sin(0.0001*t + s)
	harmonic := math.Sin(0.0007*t + 2*s)
	h := noise.HashTime(aligned, g.seed)
	spike := float64(h%1000) / 1000.0

	open := baseWave*10 + harmonic*2 + 100
	high := open + math.Abs(harmonic) + spike
	low := open - math.Abs(baseWave) - spike
	closePx := open + math.Sin(0.00005*t+s)
	volume := int64(h%10000) + 1000

	return market.NewBar(aligned, open, high, low, closePx, volume)
}
