package market

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

var ErrUnordered = errors.New("bars are not in time order")

// Aggregate rolls bars up into buckets of interval to, floored from the Unix
// epoch. A bucket is kept only when at least minBars source bars fall into
// it. Input must be in time order.
func Aggregate(bars []Bar, to BarInterval, minBars int) ([]Bar, error) {
	if err := to.Validate(); err != nil {
		return nil, err
	}
	if minBars < 1 {
		minBars = 1
	}

	step := to.Milliseconds()
	var (
		out     []Bar
		cur     Bar
		bucket  int64
		count   int
		started bool
	)

	flush := func() {
		if started && count >= minBars {
			out = append(out, cur)
		}
	}

	for i, b := range bars {
		ms := b.Time.UnixMilli()
		k := ms / step * step
		if ms%step < 0 {
			k -= step
		}

		if started && k < bucket {
			return nil, fmt.Errorf("%w: bar %d at %s", ErrUnordered, i, b.Time.Format(time.RFC3339))
		}

		if !started || k != bucket {
			flush()
			cur = Bar{
				Time:   time.UnixMilli(k).In(b.Time.Location()),
				Open:   b.Open,
				High:   b.High,
				Low:    b.Low,
				Close:  b.Close,
				Volume: b.Volume,
			}
			bucket = k
			count = 1
			started = true
			continue
		}

		cur.High = decimal.Max(cur.High, b.High)
		cur.Low = decimal.Min(cur.Low, b.Low)
		cur.Close = b.Close
		cur.Volume += b.Volume
		count++
	}
	flush()

	return out, nil
}

type GapKind string

const (
	GapIntraday  GapKind = "intraday"
	GapOvernight GapKind = "overnight"
	GapWeekend   GapKind = "weekend"
	GapExtended  GapKind = "extended"
)

// Gap is a stretch between consecutive bars longer than one interval.
type Gap struct {
	After   time.Time // last bar before the gap
	Missing int64     // whole intervals skipped
	Kind    GapKind
}

type GapStats struct {
	Count    int
	Weekend  int
	Extended int
	Longest  time.Duration
}

// FindGaps reports every place where consecutive bars are further apart
// than interval. Weekend means at least a day long and starting on Friday,
// Saturday or Sunday; extended is any other gap of a day or more.
func FindGaps(bars []Bar, interval BarInterval) ([]Gap, GapStats) {
	var (
		gaps  []Gap
		stats GapStats
	)
	step := interval.Duration()
	if step <= 0 {
		return nil, stats
	}

	for i := 1; i < len(bars); i++ {
		prev, next := bars[i-1].Time, bars[i].Time
		d := next.Sub(prev)
		if d <= step {
			continue
		}

		g := Gap{After: prev, Missing: int64(d/step) - 1, Kind: classifyGap(prev, d)}
		gaps = append(gaps, g)

		stats.Count++
		switch g.Kind {
		case GapWeekend:
			stats.Weekend++
		case GapExtended:
			stats.Extended++
		}
		if d > stats.Longest {
			stats.Longest = d
		}
	}
	return gaps, stats
}

func classifyGap(start time.Time, d time.Duration) GapKind {
	if d >= 24*time.Hour {
		switch start.Weekday() {
		case time.Friday, time.Saturday, time.Sunday:
			return GapWeekend
		}
		return GapExtended
	}
	if start.YearDay() != start.Add(d).YearDay() {
		return GapOvernight
	}
	return GapIntraday
}
