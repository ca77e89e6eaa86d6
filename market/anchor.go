package market

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

var ErrInvalidAnchor = errors.New("invalid bar anchor")

// BarAnchor pins the price path: the bar at Time opens at exactly Price.
type BarAnchor struct {
	Time  time.Time
	Price decimal.Decimal
}

func NewBarAnchor(ts time.Time, price decimal.Decimal) (BarAnchor, error) {
	a := BarAnchor{Time: ts, Price: price}
	if err := a.Validate(); err != nil {
		return BarAnchor{}, err
	}
	return a, nil
}

func (a BarAnchor) Validate() error {
	if a.Time.IsZero() {
		return fmt.Errorf("%w: time is required", ErrInvalidAnchor)
	}
	if !a.Price.IsPositive() {
		return fmt.Errorf("%w: price must be positive, got %s", ErrInvalidAnchor, a.Price)
	}
	return nil
}
