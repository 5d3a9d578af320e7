package core

import (
	"time"

	"github.com/shopspring/decimal"
)

// Market is the presentational market a symbol is listed on.
type Market string

const (
	MarketIndia   Market = "IN"
	MarketDefault Market = "DEFAULT"
)

// Quote is a normalized snapshot of one symbol's trading state.
type Quote struct {
	Symbol        string          `json:"symbol"`
	Market        Market          `json:"market"`
	Price         decimal.Decimal `json:"price"`
	Open          decimal.Decimal `json:"open"`
	High          decimal.Decimal `json:"high"`
	Low           decimal.Decimal `json:"low"`
	PreviousClose decimal.Decimal `json:"previous_close"`
	Change        decimal.Decimal `json:"change"`
	ChangePercent decimal.Decimal `json:"change_percent"`
	Volume        int64           `json:"volume"`
	AsOf          time.Time       `json:"as_of"`
	TradingDay    string          `json:"trading_day"`

	// Optional metrics; nil means the provider did not report them.
	MarketCap   *decimal.Decimal `json:"market_cap,omitempty"`
	Beta        *decimal.Decimal `json:"beta,omitempty"`
	TrailingPE  *decimal.Decimal `json:"trailing_pe,omitempty"`
	TrailingEPS *decimal.Decimal `json:"trailing_eps,omitempty"`
	Bid         *decimal.Decimal `json:"bid,omitempty"`
	Ask         *decimal.Decimal `json:"ask,omitempty"`
}

// IsGaining reports whether the quote moved up since the previous close.
func (q Quote) IsGaining() bool {
	return q.ChangePercent.IsPositive()
}

// IsDeclining reports whether the quote moved down since the previous close.
func (q Quote) IsDeclining() bool {
	return q.ChangePercent.IsNegative()
}

// Bar is one OHLCV point of a price series.
type Bar struct {
	Time   time.Time       `json:"time"`
	Open   decimal.Decimal `json:"open"`
	High   decimal.Decimal `json:"high"`
	Low    decimal.Decimal `json:"low"`
	Close  decimal.Decimal `json:"close"`
	Volume int64           `json:"volume"`
}

// Series is a chronologically ascending run of bars for one symbol.
type Series struct {
	Symbol   string `json:"symbol"`
	Interval string `json:"interval"`
	Range    string `json:"range"`
	Bars     []Bar  `json:"bars"`
}

// Len returns the number of bars.
func (s Series) Len() int {
	return len(s.Bars)
}

// SearchEntry is one candidate returned by a symbol search.
type SearchEntry struct {
	Symbol      string `json:"symbol"`
	Name        string `json:"name"`
	Type        string `json:"type"`
	Region      string `json:"region"`
	Currency    string `json:"currency"`
	Description string `json:"description,omitempty"`
}
