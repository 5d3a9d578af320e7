package quote

import (
	"slices"

	"github.com/newthinker/stockdeck/internal/core"
	"github.com/shopspring/decimal"
)

// SeriesStats summarises the closes of a series for the chart header.
type SeriesStats struct {
	First         decimal.Decimal `json:"first"`
	Last          decimal.Decimal `json:"last"`
	Change        decimal.Decimal `json:"change"`
	ChangePercent decimal.Decimal `json:"change_percent"`
	High          decimal.Decimal `json:"high"`
	Low           decimal.Decimal `json:"low"`
	Average       decimal.Decimal `json:"average"`
}

// Stats computes close-based statistics. Empty series yield zero stats.
func Stats(s core.Series) SeriesStats {
	if len(s.Bars) == 0 {
		return SeriesStats{}
	}

	first := s.Bars[0].Close
	last := s.Bars[len(s.Bars)-1].Close
	high, low, sum := first, first, decimal.Zero
	for _, b := range s.Bars {
		if b.Close.GreaterThan(high) {
			high = b.Close
		}
		if b.Close.LessThan(low) {
			low = b.Close
		}
		sum = sum.Add(b.Close)
	}
	change, pct := Change(last, first)

	return SeriesStats{
		First:         first,
		Last:          last,
		Change:        change,
		ChangePercent: pct,
		High:          high,
		Low:           low,
		Average:       sum.Div(decimal.NewFromInt(int64(len(s.Bars)))),
	}
}

func sortBars(bars []core.Bar) {
	slices.SortStableFunc(bars, func(a, b core.Bar) int {
		return a.Time.Compare(b.Time)
	})
}
