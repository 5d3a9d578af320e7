// Package quote turns raw upstream chart payloads into core quotes and series,
// and formats them for display.
package quote

import (
	"time"

	"github.com/newthinker/stockdeck/internal/core"
	"github.com/newthinker/stockdeck/internal/upstream"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Normalize converts a 1-day chart payload into a Quote. The result is empty
// when the payload carries no chart result; that is a normal outcome.
func Normalize(raw *upstream.ChartResponse) core.Result[core.Quote] {
	res := raw.FirstResult()
	if res == nil || res.Meta == nil || len(res.Indicators.Quote) == 0 {
		return core.None[core.Quote]()
	}
	meta := res.Meta

	previousClose := meta.PreviousClose
	if previousClose == 0 {
		previousClose = meta.ChartPreviousClose
	}
	price := firstNonZero(meta.RegularMarketPrice, previousClose)

	ind := res.Indicators.Quote[0]

	open := lastValue(ind.Open)
	if open == 0 {
		open = price
	}
	high, ok := extreme(ind.High, func(a, b float64) bool { return a > b })
	if !ok || high == 0 {
		high = price
	}
	low, ok := extreme(ind.Low, func(a, b float64) bool { return a < b })
	if !ok || low == 0 {
		low = price
	}

	p := decimal.NewFromFloat(price)
	pc := decimal.NewFromFloat(previousClose)
	change, changePercent := Change(p, pc)

	volume := meta.RegularMarketVolume
	if volume < 0 {
		volume = 0
	}

	asOf := time.Unix(meta.RegularMarketTime, 0).UTC()

	symbol := meta.Symbol
	return core.Some(core.Quote{
		Symbol:        symbol,
		Market:        ClassifyMarket(symbol),
		Price:         p,
		Open:          decimal.NewFromFloat(open),
		High:          decimal.NewFromFloat(high),
		Low:           decimal.NewFromFloat(low),
		PreviousClose: pc,
		Change:        change,
		ChangePercent: changePercent,
		Volume:        volume,
		AsOf:          asOf,
		TradingDay:    asOf.Format(time.DateOnly),
		MarketCap:     optional(meta.MarketCap),
		Beta:          optional(meta.Beta),
		TrailingPE:    optional(meta.TrailingPE),
		TrailingEPS:   optional(meta.TrailingEPS),
		Bid:           optional(meta.Bid),
		Ask:           optional(meta.Ask),
	})
}

// Change returns price - previousClose and the percentage move. The
// percentage is zero when previousClose is zero.
func Change(price, previousClose decimal.Decimal) (decimal.Decimal, decimal.Decimal) {
	change := price.Sub(previousClose)
	if previousClose.IsZero() {
		return change, decimal.Zero
	}
	return change, change.Div(previousClose).Mul(hundred)
}

// NormalizeSeries converts a chart payload into a chronologically ascending
// series. Missing bar values become zero. Empty when there are no timestamps.
func NormalizeSeries(raw *upstream.ChartResponse, interval, rng string) core.Result[core.Series] {
	res := raw.FirstResult()
	if res == nil || len(res.Timestamp) == 0 || len(res.Indicators.Quote) == 0 {
		return core.None[core.Series]()
	}
	ind := res.Indicators.Quote[0]

	symbol := ""
	if res.Meta != nil {
		symbol = res.Meta.Symbol
	}

	bars := make([]core.Bar, 0, len(res.Timestamp))
	for i, ts := range res.Timestamp {
		bars = append(bars, core.Bar{
			Time:   time.Unix(ts, 0).UTC(),
			Open:   decimal.NewFromFloat(at(ind.Open, i)),
			High:   decimal.NewFromFloat(at(ind.High, i)),
			Low:    decimal.NewFromFloat(at(ind.Low, i)),
			Close:  decimal.NewFromFloat(at(ind.Close, i)),
			Volume: atInt(ind.Volume, i),
		})
	}
	sortBars(bars)

	return core.Some(core.Series{
		Symbol:   symbol,
		Interval: interval,
		Range:    rng,
		Bars:     bars,
	})
}

func firstNonZero(vals ...float64) float64 {
	for _, v := range vals {
		if v != 0 {
			return v
		}
	}
	return 0
}

func lastValue(vals []*float64) float64 {
	if len(vals) == 0 || vals[len(vals)-1] == nil {
		return 0
	}
	return *vals[len(vals)-1]
}

// extreme returns the best non-null value according to better.
func extreme(vals []*float64, better func(a, b float64) bool) (float64, bool) {
	var (
		best  float64
		found bool
	)
	for _, v := range vals {
		if v == nil {
			continue
		}
		if !found || better(*v, best) {
			best = *v
			found = true
		}
	}
	return best, found
}

func at(vals []*float64, i int) float64 {
	if i >= len(vals) || vals[i] == nil {
		return 0
	}
	return *vals[i]
}

func atInt(vals []*int64, i int) int64 {
	if i >= len(vals) || vals[i] == nil {
		return 0
	}
	return *vals[i]
}

func optional(v *float64) *decimal.Decimal {
	if v == nil || *v == 0 {
		return nil
	}
	d := decimal.NewFromFloat(*v)
	return &d
}
