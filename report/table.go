// Package report renders bar sequences for people and for other tools.
package report

import (
	"io"

	"github.com/olekukonko/tablewriter"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/rustyeddy/barsynth/market"
)

const timeLayout = "2006-01-02 15:04 MST"

// WriteTable prints bars as a console table. Prices use the symbol's
// display precision; volumes get thousands separators.
func WriteTable(w io.Writer, symbol string, bars []market.Bar) error {
	meta, _ := market.LookupInstrument(symbol)
	p := message.NewPrinter(language.English)

	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Time", "Open", "High", "Low", "Close", "Volume"})
	table.SetAlignment(tablewriter.ALIGN_RIGHT)
	table.SetColumnSeparator("")
	table.SetBorder(false)

	for _, b := range bars {
		table.Append([]string{
			b.Time.Format(timeLayout),
			b.Open.StringFixed(meta.PriceDecimals),
			b.High.StringFixed(meta.PriceDecimals),
			b.Low.StringFixed(meta.PriceDecimals),
			b.Close.StringFixed(meta.PriceDecimals),
			p.Sprintf("%d", b.Volume),
		})
	}

	table.Render()
	return nil
}

// WriteSummary prints a Summary as a two-column table.
func WriteSummary(w io.Writer, symbol string, s Summary) error {
	meta, _ := market.LookupInstrument(symbol)
	p := message.NewPrinter(language.English)

	table := tablewriter.NewWriter(w)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetColumnSeparator("")
	table.SetBorder(false)

	table.AppendBulk([][]string{
		{"symbol", meta.Name},
		{"bars", p.Sprintf("%d", s.Count)},
		{"first", s.First.Format(timeLayout)},
		{"last", s.Last.Format(timeLayout)},
		{"low", s.Low.StringFixed(meta.PriceDecimals)},
		{"high", s.High.StringFixed(meta.PriceDecimals)},
		{"mean close", decimal.NewFromFloat(s.MeanClose).StringFixed(meta.PriceDecimals)},
		{"log return stddev", p.Sprintf("%.6f", s.LogReturnStdDev)},
		{"volume", p.Sprintf("%d", s.TotalVolume)},
	})
	if g := s.Gaps; g != nil {
		table.AppendBulk([][]string{
			{"gaps", p.Sprintf("%d", g.Count)},
			{"weekend gaps", p.Sprintf("%d", g.Weekend)},
			{"extended gaps", p.Sprintf("%d", g.Extended)},
			{"longest gap", g.Longest.String()},
		})
	}

	table.Render()
	return nil
}
