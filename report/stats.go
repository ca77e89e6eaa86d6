package report

import (
	"errors"
	"math"
	"time"

	"github.com/montanaflynn/stats"
	"github.com/shopspring/decimal"

	"github.com/rustyeddy/barsynth/market"
)

var ErrNoBars = errors.New("no bars to summarize")

// Summary describes a bar sequence.
type Summary struct {
	Count           int
	First           time.Time
	Last            time.Time
	Low             decimal.Decimal
	High            decimal.Decimal
	MeanClose       float64
	LogReturnStdDev float64 // population stddev of ln(close[i]/close[i-1])
	TotalVolume     int64

	// Gaps is filled in by callers that know the bar interval.
	Gaps *market.GapStats
}

func Summarize(bars []market.Bar) (Summary, error) {
	if len(bars) == 0 {
		return Summary{}, ErrNoBars
	}

	s := Summary{
		Count: len(bars),
		First: bars[0].Time,
		Last:  bars[len(bars)-1].Time,
		Low:   bars[0].Low,
		High:  bars[0].High,
	}

	closes := make(stats.Float64Data, 0, len(bars))
	returns := make(stats.Float64Data, 0, len(bars))
	for i, b := range bars {
		s.Low = decimal.Min(s.Low, b.Low)
		s.High = decimal.Max(s.High, b.High)
		s.TotalVolume += b.Volume

		c := b.Close.InexactFloat64()
		closes = append(closes, c)
		if i > 0 {
			prev := closes[i-1]
			if prev > 0 && c > 0 {
				returns = append(returns, math.Log(c/prev))
			}
		}
	}

	mean, err := stats.Mean(closes)
	if err != nil {
		return Summary{}, err
	}
	s.MeanClose = mean

	if len(returns) > 0 {
		sd, err := stats.StandardDeviation(returns)
		if err != nil {
			return Summary{}, err
		}
		s.LogReturnStdDev = sd
	}

	return s, nil
}
