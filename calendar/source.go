package calendar

import (
	"context"
	"fmt"
)

// HolidaySource supplies the closures of one market.
type HolidaySource interface {
	Holidays(ctx context.Context, market string) (Holidays, error)
}

// StaticHolidays is an in-memory source keyed by market.
type StaticHolidays map[string]Holidays

func (s StaticHolidays) Holidays(ctx context.Context, market string) (Holidays, error) {
	h, ok := s[market]
	if !ok {
		return Holidays{}, fmt.Errorf("no holiday table for market %q", market)
	}
	return h, nil
}

// BuiltinHolidays serves the compiled-in US equity table.
func BuiltinHolidays() StaticHolidays {
	return StaticHolidays{USEquity: USEquityHolidays()}
}
