package market

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Bar is one OHLCV record for a fixed time span.
type Bar struct {
	Time   time.Time
	Open   decimal.Decimal
	High   decimal.Decimal
	Low    decimal.Decimal
	Close  decimal.Decimal
	Volume int64
}

// Equal reports whether two bars carry the same values.
func (b Bar) Equal(o Bar) bool {
	return b.Time.Equal(o.Time) &&
		b.Open.Equal(o.Open) &&
		b.High.Equal(o.High) &&
		b.Low.Equal(o.Low) &&
		b.Close.Equal(o.Close) &&
		b.Volume == o.Volume
}

// Validate checks the OHLC envelope and volume.
func (b Bar) Validate() error {
	if b.High.LessThan(b.Open) || b.High.LessThan(b.Close) {
		return fmt.Errorf("bar %s: high %s below open/close", b.Time.Format(time.RFC3339), b.High)
	}
	if b.Low.GreaterThan(b.Open) || b.Low.GreaterThan(b.Close) {
		return fmt.Errorf("bar %s: low %s above open/close", b.Time.Format(time.RFC3339), b.Low)
	}
	if b.High.LessThan(b.Low) {
		return fmt.Errorf("bar %s: high %s below low %s", b.Time.Format(time.RFC3339), b.High, b.Low)
	}
	if b.Volume <= 0 {
		return fmt.Errorf("bar %s: volume must be positive, got %d", b.Time.Format(time.RFC3339), b.Volume)
	}
	return nil
}

// NewBar converts float prices to a Bar and widens High/Low so they
// bound Open and Close after conversion.
func NewBar(ts time.Time, open, high, low, close float64, volume int64) Bar {
	return NewBarDecimal(ts,
		decimal.NewFromFloat(open),
		decimal.NewFromFloat(high),
		decimal.NewFromFloat(low),
		decimal.NewFromFloat(close),
		volume)
}

// NewBarDecimal is NewBar for prices already in decimal form.
func NewBarDecimal(ts time.Time, open, high, low, close decimal.Decimal, volume int64) Bar {
	return Bar{
		Time:   ts,
		Open:   open,
		High:   decimal.Max(open, close, high),
		Low:    decimal.Min(open, close, low),
		Close:  close,
		Volume: volume,
	}
}

func (b Bar) String() string {
	return fmt.Sprintf("%s O=%s H=%s L=%s C=%s V=%d",
		b.Time.Format(time.RFC3339), b.Open, b.High, b.Low, b.Close, b.Volume)
}
