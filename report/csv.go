package report

import (
	"fmt"
	"io"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"

	"github.com/rustyeddy/barsynth/market"
)

// BarRecord is the flat CSV shape of a bar.
type BarRecord struct {
	Time   string `csv:"time"`
	Open   string `csv:"open"`
	High   string `csv:"high"`
	Low    string `csv:"low"`
	Close  string `csv:"close"`
	Volume int64  `csv:"volume"`
}

func NewBarRecord(b market.Bar) BarRecord {
	return BarRecord{
		Time:   b.Time.UTC().Format(time.RFC3339Nano),
		Open:   b.Open.String(),
		High:   b.High.String(),
		Low:    b.Low.String(),
		Close:  b.Close.String(),
		Volume: b.Volume,
	}
}

// Bar parses the record back. Prices are exact decimal strings so the
// round trip is lossless.
func (r BarRecord) Bar() (market.Bar, error) {
	ts, err := time.Parse(time.RFC3339Nano, r.Time)
	if err != nil {
		return market.Bar{}, fmt.Errorf("time: %w", err)
	}

	var prices [4]decimal.Decimal
	for i, s := range []string{r.Open, r.High, r.Low, r.Close} {
		if prices[i], err = decimal.NewFromString(s); err != nil {
			return market.Bar{}, fmt.Errorf("price %q: %w", s, err)
		}
	}

	return market.Bar{
		Time:   ts,
		Open:   prices[0],
		High:   prices[1],
		Low:    prices[2],
		Close:  prices[3],
		Volume: r.Volume,
	}, nil
}

// WriteCSV writes a header row followed by one row per bar.
func WriteCSV(w io.Writer, bars []market.Bar) error {
	records := make([]*BarRecord, 0, len(bars))
	for _, b := range bars {
		rec := NewBarRecord(b)
		records = append(records, &rec)
	}

	if err := gocsv.Marshal(&records, w); err != nil {
		return fmt.Errorf("WriteCSV: %w", err)
	}
	return nil
}

// ReadCSV is the inverse of WriteCSV. Every bar is validated.
func ReadCSV(r io.Reader) ([]market.Bar, error) {
	var records []*BarRecord
	if err := gocsv.Unmarshal(r, &records); err != nil {
		return nil, fmt.Errorf("ReadCSV: %w", err)
	}

	bars := make([]market.Bar, 0, len(records))
	for i, rec := range records {
		b, err := rec.Bar()
		if err != nil {
			return nil, fmt.Errorf("ReadCSV: row %d: %w", i+1, err)
		}
		if err := b.Validate(); err != nil {
			return nil, fmt.Errorf("ReadCSV: row %d: %w", i+1, err)
		}
		bars = append(bars, b)
	}
	return bars, nil
}
