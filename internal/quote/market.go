package quote

import (
	"strings"

	"github.com/newthinker/stockdeck/internal/core"
)

// indiaSuffixes are the National Stock Exchange and Bombay Stock Exchange
// symbol suffixes.
var indiaSuffixes = []string{".NS", ".BO"}

// ClassifyMarket returns the display market of a symbol from its suffix.
func ClassifyMarket(symbol string) core.Market {
	upper := strings.ToUpper(symbol)
	for _, suffix := range indiaSuffixes {
		if strings.HasSuffix(upper, suffix) {
			return core.MarketIndia
		}
	}
	return core.MarketDefault
}

// CurrencySymbol returns the currency sign used to display prices of symbol.
func CurrencySymbol(symbol string) string {
	if ClassifyMarket(symbol) == core.MarketIndia {
		return "₹"
	}
	return "$"
}

// DisplaySymbol strips Indian exchange suffixes for display.
func DisplaySymbol(symbol string) string {
	upper := strings.ToUpper(symbol)
	for _, suffix := range indiaSuffixes {
		if strings.HasSuffix(upper, suffix) {
			return symbol[:len(symbol)-len(suffix)]
		}
	}
	return symbol
}
