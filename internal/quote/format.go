// internal/quote/format.go
package quote

import (
	"github.com/dustin/go-humanize"
	"github.com/newthinker/stockdeck/internal/core"
	"github.com/shopspring/decimal"
)

// NotAvailable marks a metric the provider did not report.
const NotAvailable = "N/A"

// noQuote marks an absent bid or ask.
const noQuote = "—"

var capUnits = []struct {
	scale  decimal.Decimal
	suffix string
}{
	{decimal.New(1, 12), "T"},
	{decimal.New(1, 9), "B"},
	{decimal.New(1, 6), "M"},
}

// FormatMarketCap renders a market capitalisation with the largest of T/B/M
// that applies and three decimals. Smaller values use thousands grouping.
func FormatMarketCap(v *decimal.Decimal) string {
	if v == nil || v.IsZero() {
		return NotAvailable
	}
	for _, u := range capUnits {
		if v.GreaterThanOrEqual(u.scale) {
			return v.Div(u.scale).StringFixed(3) + u.suffix
		}
	}
	return humanize.CommafWithDigits(v.InexactFloat64(), 3)
}

// FormatPrice renders a price with the symbol's currency sign and two decimals.
func FormatPrice(symbol string, v decimal.Decimal) string {
	return CurrencySymbol(symbol) + v.StringFixed(2)
}

// FormatSignedPrice renders a price move with an explicit sign.
func FormatSignedPrice(symbol string, v decimal.Decimal) string {
	if v.IsNegative() {
		return "-" + CurrencySymbol(symbol) + v.Abs().StringFixed(2)
	}
	return "+" + CurrencySymbol(symbol) + v.StringFixed(2)
}

// FormatChangePercent renders e.g. +3.45% or -0.12%.
func FormatChangePercent(v decimal.Decimal) string {
	if v.IsNegative() {
		return v.StringFixed(2) + "%"
	}
	return "+" + v.StringFixed(2) + "%"
}

// FormatRatio renders an optional metric with two decimals.
func FormatRatio(v *decimal.Decimal) string {
	if v == nil {
		return NotAvailable
	}
	return v.StringFixed(2)
}

func formatOptionalPrice(symbol string, v *decimal.Decimal) string {
	if v == nil {
		return noQuote
	}
	return FormatPrice(symbol, *v)
}

// Stat is one labelled row of the key statistics table.
type Stat struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// View is a display-ready rendering of a quote.
type View struct {
	Symbol        string `json:"symbol"`
	DisplaySymbol string `json:"display_symbol"`
	Currency      string `json:"currency"`
	Price         string `json:"price"`
	Change        string `json:"change"`
	ChangePercent string `json:"change_percent"`
	Gaining       bool   `json:"gaining"`
	Volume        string `json:"volume"`
	TradingDay    string `json:"trading_day"`
	Stats         []Stat `json:"stats"`
}

// Render builds the display view of q.
func Render(q core.Quote) View {
	s := q.Symbol
	return View{
		Symbol:        s,
		DisplaySymbol: DisplaySymbol(s),
		Currency:      CurrencySymbol(s),
		Price:         FormatPrice(s, q.Price),
		Change:        FormatSignedPrice(s, q.Change),
		ChangePercent: FormatChangePercent(q.ChangePercent),
		Gaining:       !q.Change.IsNegative(),
		Volume:        humanize.Comma(q.Volume),
		TradingDay:    q.TradingDay,
		Stats: []Stat{
			{Label: "Previous Close", Value: FormatPrice(s, q.PreviousClose)},
			{Label: "Open", Value: FormatPrice(s, q.Open)},
			{Label: "Bid", Value: formatOptionalPrice(s, q.Bid)},
			{Label: "Ask", Value: formatOptionalPrice(s, q.Ask)},
			{Label: "Market Cap (intraday)", Value: FormatMarketCap(q.MarketCap)},
			{Label: "Beta (5Y Monthly)", Value: FormatRatio(q.Beta)},
			{Label: "PE Ratio (TTM)", Value: FormatRatio(q.TrailingPE)},
			{Label: "EPS (TTM)", Value: FormatRatio(q.TrailingEPS)},
		},
	}
}
