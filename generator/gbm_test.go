package generator

import (
	"math"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/barsynth/calendar"
	"github.com/rustyeddy/barsynth/market"
)

var anchorTime = time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)

func anchorAt(ts time.Time, price string) *market.BarAnchor {
	return &market.BarAnchor{Time: ts, Price: decimal.RequireFromString(price)}
}

func newGBM(t *testing.T, cfg GBMConfig) *GBM {
	t.Helper()
	if cfg.Source == (TimeSource{}) {
		cfg.Source = RawInterval(market.Hours(1))
	}
	g, err := NewGBM(cfg)
	require.NoError(t, err)
	return g
}

func TestGBMDeterministic(t *testing.T) {
	t.Parallel()

	cfg := GBMConfig{Seed: 42, Drift: 0.05, Volatility: 0.2, Anchor: anchorAt(anchorTime, "100")}
	ts := time.Date(2025, 2, 3, 14, 0, 0, 0, time.UTC)

	first := newGBM(t, cfg).BarAt(ts)
	for i := 0; i < 10; i++ {
		again := newGBM(t, cfg).BarAt(ts)
		assert.True(t, first.Equal(again), "run %d: %s != %s", i, first, again)
		assert.Equal(t, first.Open.String(), again.Open.String())
	}
}

func TestGBMDivergence(t *testing.T) {
	t.Parallel()

	ts := time.Date(2025, 3, 10, 11, 0, 0, 0, time.UTC)
	base := GBMConfig{Seed: 42, Drift: 0.05, Volatility: 0.2}

	tests := []struct {
		name   string
		mutate func(c *GBMConfig)
	}{
		{"seed", func(c *GBMConfig) { c.Seed = 43 }},
		{"drift", func(c *GBMConfig) { c.Drift = 0.06 }},
		{"volatility", func(c *GBMConfig) { c.Volatility = 0.25 }},
	}

	for _, anchored := range []bool{false, true} {
		for _, tt := range tests {
			cfg := base
			if anchored {
				cfg.Anchor = anchorAt(anchorTime, "100")
			}
			other := cfg
			tt.mutate(&other)

			a := newGBM(t, cfg).BarAt(ts)
			b := newGBM(t, other).BarAt(ts)
			assert.False(t, a.Open.Equal(b.Open), "%s (anchored=%v): both opened at %s", tt.name, anchored, a.Open)
		}
	}
}

func TestGBMLargeSeedEnvelopes(t *testing.T) {
	t.Parallel()

	g := newGBM(t, GBMConfig{Seed: 1<<62 + 12345, Drift: 0.05, Volatility: 0.2})
	start := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)

	// close and high offsets scale the same variation factor; with
	// distinct noise samples their relative sizes differ bar to bar
	same := 0
	for i := 0; i < 24; i++ {
		b := g.BarAt(start.Add(time.Duration(i) * time.Hour))
		require.NoError(t, b.Validate())

		open, closePx := b.Open.InexactFloat64(), b.Close.InexactFloat64()
		body := math.Abs(closePx/open - 1)
		wick := b.High.InexactFloat64()/math.Max(open, closePx) - 1
		if math.Abs(body-wick) < 1e-12 {
			same++
		}
	}
	assert.Less(t, same, 3)
}

func TestFoldPhase(t *testing.T) {
	t.Parallel()

	for _, seed := range []int64{0, 42, -1, 1 << 62, math.MinInt64} {
		p := foldPhase(seed)
		assert.GreaterOrEqual(t, p, int64(0))
		assert.LessOrEqual(t, p, int64(math.MaxUint32))
	}
	assert.Equal(t, int64(42), foldPhase(42))
	assert.NotEqual(t, foldPhase(1<<40), foldPhase(1<<41))
}

func TestGBMOHLCInvariant(t *testing.T) {
	t.Parallel()

	intervals := []market.BarInterval{
		market.Seconds(30), market.Minutes(1), market.Minutes(5),
		market.Hours(1), market.Hours(4), market.Days(1), market.Weeks(1),
	}

	for _, bi := range intervals {
		for _, anchor := range []*market.BarAnchor{nil, anchorAt(anchorTime, "57.125")} {
			g := newGBM(t, GBMConfig{
				Seed:       int64(bi.Milliseconds() % 977),
				Drift:      0.1,
				Volatility: 0.9,
				Source:     RawInterval(bi),
				Anchor:     anchor,
			})
			ts := anchorTime.Add(-50 * bi.Duration())
			for i := 0; i < 200; i++ {
				b := g.BarAt(ts)
				require.NoError(t, b.Validate(), "interval %s at %s", bi, ts)
				require.True(t, b.Low.IsPositive())
				ts = ts.Add(bi.Duration())
			}
		}
	}
}

func TestGBMAnchorExactness(t *testing.T) {
	t.Parallel()

	prices := []string{"100", "1.08495", "123.456789012345678", "0.00001"}
	params := []struct{ drift, vol float64 }{
		{0, 0}, {0.05, 0.2}, {-0.8, 2.5}, {0.5, 0.001},
	}

	for _, p := range prices {
		for _, pr := range params {
			anchor := anchorAt(anchorTime, p)
			g := newGBM(t, GBMConfig{Seed: 7, Drift: pr.drift, Volatility: pr.vol, Anchor: anchor})

			b := g.BarAt(anchor.Time)
			assert.True(t, b.Open.Equal(anchor.Price), "price %s drift %v vol %v: open %s", p, pr.drift, pr.vol, b.Open)
			assert.Equal(t, anchor.Price.String(), b.Open.String())
			assert.NoError(t, b.Validate())
		}
	}
}

func TestGBMAnchorExactnessOffBoundary(t *testing.T) {
	t.Parallel()

	// 09:17 is inside the 09:00 hourly bar; the anchor's own bar still
	// opens at the anchor price.
	anchor := anchorAt(time.Date(2025, 1, 1, 9, 17, 0, 0, time.UTC), "250.5")
	g := newGBM(t, GBMConfig{Seed: 3, Drift: 0.2, Volatility: 0.4, Anchor: anchor})

	b := g.BarAt(anchor.Time)
	assert.True(t, b.Open.Equal(anchor.Price))
	assert.True(t, anchor.Time.Equal(b.Time))
}

func TestGBMDriftMonotonicity(t *testing.T) {
	t.Parallel()

	g := newGBM(t, GBMConfig{Seed: 42, Drift: 0.5, Volatility: 0.001, Anchor: anchorAt(anchorTime, "100")})

	at := g.BarAt(anchorTime)
	next := g.BarAt(anchorTime.Add(24 * time.Hour))
	prev := g.BarAt(anchorTime.Add(-24 * time.Hour))

	assert.True(t, at.Open.Equal(decimal.NewFromInt(100)))
	assert.True(t, next.Open.GreaterThan(at.Open), "next %s <= anchor %s", next.Open, at.Open)
	assert.True(t, prev.Open.LessThan(at.Open), "prev %s >= anchor %s", prev.Open, at.Open)
}

func TestGBMReturnsQueryTimestamp(t *testing.T) {
	t.Parallel()

	g := newGBM(t, GBMConfig{Seed: 1, Drift: 0.05, Volatility: 0.2, Source: RawInterval(market.Minutes(15))})

	q := time.Date(2025, 1, 6, 10, 22, 41, 0, time.UTC)
	b := g.BarAt(q)
	assert.True(t, q.Equal(b.Time))

	// prices depend on the aligned bar only
	aligned := g.BarAt(time.Date(2025, 1, 6, 10, 15, 0, 0, time.UTC))
	assert.True(t, aligned.Open.Equal(b.Open))
	assert.True(t, aligned.Close.Equal(b.Close))
	assert.Equal(t, aligned.Volume, b.Volume)
}

func TestGBMUnanchoredStaysInBand(t *testing.T) {
	t.Parallel()

	lo := decimal.NewFromFloat(0.1)
	hi := decimal.NewFromInt(10)

	for _, drift := range []float64{-5, 0.05, 5} {
		g := newGBM(t, GBMConfig{Seed: 11, Drift: drift, Volatility: 0.3, Source: RawInterval(market.Days(1))})
		ts := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
		for i := 0; i < 100; i++ {
			o := g.BarAt(ts).Open
			assert.True(t, o.GreaterThanOrEqual(lo.Sub(decimal.New(1, -9))), "drift %v: %s", drift, o)
			assert.True(t, o.LessThanOrEqual(hi.Add(decimal.New(1, -9))), "drift %v: %s", drift, o)
			ts = ts.AddDate(0, 0, 1)
		}
	}
}

func TestGBMScheduleAwareDiffersFromRaw(t *testing.T) {
	t.Parallel()

	sched, err := calendar.NewUSEquitySchedule(market.Hours(1), time.UTC)
	require.NoError(t, err)

	raw := newGBM(t, GBMConfig{Seed: 5, Drift: 0.05, Volatility: 0.2, Source: RawInterval(market.Hours(1))})
	scheduled := newGBM(t, GBMConfig{Seed: 5, Drift: 0.05, Volatility: 0.2, Source: ScheduleAware(sched)})

	assert.Equal(t, market.Hours(1), scheduled.Interval())

	ts := time.Date(2025, 1, 6, 10, 30, 0, 0, time.UTC)
	assert.False(t, raw.BarAt(ts).Open.Equal(scheduled.BarAt(ts).Open))
}

func TestGBMDistinctIntervalsDiverge(t *testing.T) {
	t.Parallel()

	ts := time.Date(2025, 1, 6, 12, 0, 0, 0, time.UTC)
	a := newGBM(t, GBMConfig{Seed: 5, Drift: 0.05, Volatility: 0.2, Source: RawInterval(market.Minutes(30))})
	b := newGBM(t, GBMConfig{Seed: 5, Drift: 0.05, Volatility: 0.2, Source: RawInterval(market.Hours(1))})

	assert.False(t, a.BarAt(ts).Open.Equal(b.BarAt(ts).Open))
}

func TestNewGBMErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cfg  GBMConfig
		is   error
	}{
		{"unset source", GBMConfig{Volatility: 0.2}, ErrUnsupportedTimeSource},
		{"nil schedule", GBMConfig{Volatility: 0.2, Source: ScheduleAware(nil)}, ErrUnsupportedTimeSource},
		{"zero interval", GBMConfig{Volatility: 0.2, Source: RawInterval(market.Minutes(0))}, market.ErrInvalidInterval},
		{"bad anchor", GBMConfig{Volatility: 0.2, Source: RawInterval(market.Hours(1)), Anchor: anchorAt(anchorTime, "0")}, market.ErrInvalidAnchor},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewGBM(tt.cfg)
			assert.ErrorIs(t, err, tt.is)
		})
	}

	_, err := NewGBM(GBMConfig{Volatility: -1, Source: RawInterval(market.Hours(1))})
	assert.Error(t, err)
}

func TestGBMConcurrentQueries(t *testing.T) {
	t.Parallel()

	g := newGBM(t, GBMConfig{Seed: 9, Drift: 0.05, Volatility: 0.2, Anchor: anchorAt(anchorTime, "100")})

	want := make([]market.Bar, 100)
	for i := range want {
		want[i] = g.BarAt(anchorTime.Add(time.Duration(i) * time.Hour))
	}

	var wg sync.WaitGroup
	errs := make(chan string, 8*len(want))
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range want {
				if got := g.BarAt(anchorTime.Add(time.Duration(i) * time.Hour)); !got.Equal(want[i]) {
					errs <- got.String()
				}
			}
		}()
	}
	wg.Wait()
	close(errs)

	for e := range errs {
		t.Errorf("concurrent query diverged: %s", e)
	}
}

func TestTimeSource(t *testing.T) {
	t.Parallel()

	sched, err := calendar.NewSchedule(calendar.ScheduleConfig{Interval: market.Minutes(5)})
	require.NoError(t, err)

	raw := RawInterval(market.Minutes(10))
	assert.False(t, raw.IsScheduled())
	assert.Nil(t, raw.Schedule())
	assert.Equal(t, "interval 10m", raw.String())

	s := ScheduleAware(sched)
	assert.True(t, s.IsScheduled())
	assert.Equal(t, market.Minutes(5), s.Interval())
	assert.NoError(t, s.Validate())

	assert.Equal(t, "unset", TimeSource{}.String())
}
