package generator

import (
	"errors"
	"fmt"
	"math"
	"math/bits"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rustyeddy/barsynth/market"
	"github.com/rustyeddy/barsynth/noise"
)

const (
	hoursPerYear = 365.25 * 24

	// phase offsets for the close/high/low samples
	closeOffset = 100.0
	highOffset  = 200.0
	lowOffset   = 300.0
)

var (
	minLogPrice = math.Log(0.1)
	maxLogPrice = math.Log(10)
)

// GBMConfig configures a geometric Brownian motion generator. Drift and
// Volatility are annualized.
type GBMConfig struct {
	Seed       int64
	Drift      float64
	Volatility float64
	Source     TimeSource
	Anchor     *market.BarAnchor
	Epoch      time.Time
}

// GBM produces bars along a log-normal price path. With an anchor the
// path passes through the anchor price at the anchor's bar.
type GBM struct {
	cfg      GBMConfig
	interval market.BarInterval

	hourlyDrift     float64
	hourlyVol       float64
	variationFactor float64
	paramSeed       int64

	anchored    bool
	anchorBar   time.Time
	anchorValue float64
	anchorPrice decimal.Decimal
}

func NewGBM(cfg GBMConfig) (*GBM, error) {
	if err := cfg.Source.Validate(); err != nil {
		return nil, fmt.Errorf("gbm generator: %w", err)
	}
	if math.IsNaN(cfg.Drift) || math.IsInf(cfg.Drift, 0) {
		return nil, errors.New("gbm generator: drift must be finite")
	}
	if math.IsNaN(cfg.Volatility) || math.IsInf(cfg.Volatility, 0) || cfg.Volatility < 0 {
		return nil, fmt.Errorf("gbm generator: volatility must be finite and >= 0, got %v", cfg.Volatility)
	}
	if cfg.Epoch.IsZero() {
		cfg.Epoch = noise.DefaultEpoch
	}

	interval := cfg.Source.Interval()
	g := &GBM{
		cfg:             cfg,
		interval:        interval,
		hourlyDrift:     cfg.Drift / hoursPerYear,
		hourlyVol:       cfg.Volatility / math.Sqrt(hoursPerYear),
		variationFactor: math.Sqrt(interval.Minutes()/60) * 0.005,
		anchorValue:     1.0,
	}

	seed := cfg.Seed
	seed ^= int64(noise.Hash(interval.Milliseconds(), cfg.Seed))
	seed ^= int64(noise.Hash(paramBits(cfg.Drift, cfg.Volatility), cfg.Seed))
	if cfg.Source.IsScheduled() {
		seed ^= int64(math.Round(interval.Minutes()*1000)) * 7919
	}
	g.paramSeed = seed

	if cfg.Anchor != nil {
		if err := cfg.Anchor.Validate(); err != nil {
			return nil, fmt.Errorf("gbm generator: %w", err)
		}
		g.anchored = true
		g.anchorBar = g.align(cfg.Anchor.Time)
		g.anchorPrice = cfg.Anchor.Price
		g.anchorValue = cfg.Anchor.Price.InexactFloat64()
	}

	return g, nil
}

func paramBits(drift, vol float64) int64 {
	return int64(math.Float64bits(drift) ^ bits.RotateLeft64(math.Float64bits(vol), 17))
}

func foldPhase(seed int64) int64 {
	u := uint64(seed)
	return int64(uint32(u) ^ uint32(u>>32))
}

func (g *GBM) Interval() market.BarInterval { return g.interval }
func (g *GBM) Config() GBMConfig            { return g.cfg }

func (g *GBM) align(ts time.Time) time.Time {
	return AlignInDay(ts, g.interval)
}

// elapsed is the signed distance in seconds from the path origin to the
// bar at aligned.
func (g *GBM) elapsed(aligned time.Time) float64 {
	if g.anchored {
		return noise.Seconds(aligned, g.anchorBar)
	}
	return noise.Seconds(aligned, g.cfg.Epoch)
}

// BarAt returns the bar covering ts. Bar.Time is ts itself; every price
// depends only on the aligned bar start.
func (g *GBM) BarAt(ts time.Time) market.Bar {
	aligned := g.align(ts)
	t := g.elapsed(aligned)
	hours := t / 3600

	combined := g.paramSeed ^ int64(noise.HashTime(aligned, g.cfg.Seed))
	// PseudoNoise reads its seed as a float phase; 32 bits keeps the
	// sample offsets above its rounding step
	phase := foldPhase(combined)

	logPrice := g.hourlyDrift*hours + g.hourlyVol*noise.PseudoNoise(hours, phase)
	if !g.anchored {
		logPrice = math.Max(minLogPrice, math.Min(maxLogPrice, logPrice))
	}
	open := g.anchorValue * math.Exp(logPrice)
	openDec := decimal.NewFromFloat(open)

	if g.anchored && math.Abs(t) < 1 {
		open = g.anchorValue
		openDec = g.anchorPrice
	}

	vf := g.variationFactor
	closePx := open * (1 + noise.PseudoNoise(hours+closeOffset, phase)*vf)
	high := math.Max(open, closePx) * (1 + math.Abs(noise.PseudoNoise(hours+highOffset, phase))*vf)
	low := math.Min(open, closePx) * (1 - math.Abs(noise.PseudoNoise(hours+lowOffset, phase))*vf)

	volume := int64(noise.Hash(aligned.UnixMilli()+1, combined)%10000) + 1000

	return market.NewBarDecimal(ts,
		openDec,
		decimal.NewFromFloat(high),
		decimal.NewFromFloat(low),
		decimal.NewFromFloat(closePx),
		volume)
}
