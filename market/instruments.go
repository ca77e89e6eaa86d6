// market/instruments.go
package market

import (
	"strings"

	"github.com/shopspring/decimal"
)

// InstrumentMeta is display and reference data for a symbol. Generation
// never depends on it; it only fills in defaults.
type InstrumentMeta struct {
	Name           string
	Description    string
	PriceDecimals  int32
	ReferencePrice decimal.Decimal
}

var Instruments = map[string]InstrumentMeta{
	"SPY": {
		Name:           "SPY",
		Description:    "S&P 500 ETF",
		PriceDecimals:  2,
		ReferencePrice: decimal.RequireFromString("480.00"),
	},
	"QQQ": {
		Name:           "QQQ",
		Description:    "Nasdaq 100 ETF",
		PriceDecimals:  2,
		ReferencePrice: decimal.RequireFromString("410.00"),
	},
	"EUR_USD": {
		Name:           "EUR_USD",
		Description:    "Euro / US Dollar",
		PriceDecimals:  5,
		ReferencePrice: decimal.RequireFromString("1.0850"),
	},
	"USD_JPY": {
		Name:           "USD_JPY",
		Description:    "US Dollar / Japanese Yen",
		PriceDecimals:  3,
		ReferencePrice: decimal.RequireFromString("149.50"),
	},
	"BTC_USD": {
		Name:           "BTC_USD",
		Description:    "Bitcoin / US Dollar",
		PriceDecimals:  2,
		ReferencePrice: decimal.RequireFromString("42000"),
	},
}

// DefaultInstrument describes any symbol missing from Instruments.
var DefaultInstrument = InstrumentMeta{
	Description:    "synthetic instrument",
	PriceDecimals:  4,
	ReferencePrice: decimal.NewFromInt(100),
}

// LookupInstrument is case-insensitive and falls back to DefaultInstrument.
func LookupInstrument(symbol string) (InstrumentMeta, bool) {
	if m, ok := Instruments[strings.ToUpper(strings.TrimSpace(symbol))]; ok {
		return m, true
	}
	m := DefaultInstrument
	m.Name = symbol
	return m, false
}
