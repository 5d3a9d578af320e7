package quote

import (
	"testing"

	"github.com/newthinker/stockdeck/internal/core"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(v float64) *decimal.Decimal {
	d := decimal.NewFromFloat(v)
	return &d
}

func TestFormatMarketCap(t *testing.T) {
	tests := []struct {
		name string
		in   *decimal.Decimal
		want string
	}{
		{"nil", nil, "N/A"},
		{"zero", dec(0), "N/A"},
		{"trillion", dec(2.5e12), "2.500T"},
		{"billion", dec(1234567890), "1.235B"},
		{"million", dec(1e6), "1.000M"},
		{"grouped", dec(500000), "500,000"},
		{"fraction", dec(1234.5), "1,234.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatMarketCap(tt.in))
		})
	}
}

func TestClassifyMarket(t *testing.T) {
	tests := []struct {
		symbol string
		want   core.Market
	}{
		{"RELIANCE.NS", core.MarketIndia},
		{"TCS.BO", core.MarketIndia},
		{"infy.ns", core.MarketIndia},
		{"AAPL", core.MarketDefault},
		{"0700.HK", core.MarketDefault},
		{"NSE", core.MarketDefault},
	}

	for _, tt := range tests {
		assert.Equalf(t, tt.want, ClassifyMarket(tt.symbol), "ClassifyMarket(%s)", tt.symbol)
	}
}

func TestCurrencyAndDisplaySymbol(t *testing.T) {
	assert.Equal(t, "₹", CurrencySymbol("RELIANCE.NS"))
	assert.Equal(t, "$", CurrencySymbol("AAPL"))
	assert.Equal(t, "RELIANCE", DisplaySymbol("RELIANCE.NS"))
	assert.Equal(t, "SBIN", DisplaySymbol("SBIN.BO"))
	assert.Equal(t, "BP.L", DisplaySymbol("BP.L"))
}

func TestFormatChange(t *testing.T) {
	assert.Equal(t, "+3.45%", FormatChangePercent(decimal.NewFromFloat(3.448)))
	assert.Equal(t, "-0.12%", FormatChangePercent(decimal.NewFromFloat(-0.1234)))
	assert.Equal(t, "+0.00%", FormatChangePercent(decimal.Zero))
	assert.Equal(t, "+$5.00", FormatSignedPrice("AAPL", decimal.NewFromInt(5)))
	assert.Equal(t, "-₹12.50", FormatSignedPrice("TCS.NS", decimal.NewFromFloat(-12.5)))
}

func TestRender(t *testing.T) {
	q := core.Quote{
		Symbol:        "RELIANCE.NS",
		Price:         decimal.NewFromFloat(2950.5),
		PreviousClose: decimal.NewFromInt(2900),
		Change:        decimal.NewFromFloat(50.5),
		ChangePercent: decimal.NewFromFloat(1.741),
		Volume:        1234567,
		Beta:          dec(0.91),
	}

	v := Render(q)
	assert.Equal(t, "RELIANCE", v.DisplaySymbol)
	assert.Equal(t, "₹2950.50", v.Price)
	assert.Equal(t, "+1.74%", v.ChangePercent)
	assert.Equal(t, "1,234,567", v.Volume)
	assert.True(t, v.Gaining)

	stats := map[string]string{}
	for _, s := range v.Stats {
		stats[s.Label] = s.Value
	}
	assert.Equal(t, "—", stats["Bid"])
	assert.Equal(t, "N/A", stats["Market Cap (intraday)"])
	assert.Equal(t, "0.91", stats["Beta (5Y Monthly)"])
	assert.Equal(t, "N/A", stats["PE Ratio (TTM)"])
}
