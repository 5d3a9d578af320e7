package upstream

// ChartResponse is the raw v8 chart payload. Fields the provider may omit are
// pointers or zero-valued; normalization happens in package quote.
type ChartResponse struct {
	Chart struct {
		Result []ChartResult `json:"result"`
		Error  *APIError     `json:"error"`
	} `json:"chart"`
}

// APIError is the provider's in-body error object.
type APIError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

type ChartResult struct {
	Meta       *ChartMeta `json:"meta"`
	Timestamp  []int64    `json:"timestamp"`
	Indicators Indicators `json:"indicators"`
}

type ChartMeta struct {
	Symbol              string   `json:"symbol"`
	Currency            string   `json:"currency"`
	ExchangeName        string   `json:"exchangeName"`
	RegularMarketPrice  float64  `json:"regularMarketPrice"`
	PreviousClose       float64  `json:"previousClose"`
	ChartPreviousClose  float64  `json:"chartPreviousClose"`
	RegularMarketVolume int64    `json:"regularMarketVolume"`
	RegularMarketTime   int64    `json:"regularMarketTime"`
	MarketCap           *float64 `json:"marketCap"`
	Beta                *float64 `json:"beta"`
	TrailingPE          *float64 `json:"trailingPE"`
	TrailingEPS         *float64 `json:"trailingEPS"`
	Bid                 *float64 `json:"bid"`
	Ask                 *float64 `json:"ask"`
}

type Indicators struct {
	Quote []QuoteIndicator `json:"quote"`
}

type QuoteIndicator struct {
	Open   []*float64 `json:"open"`
	High   []*float64 `json:"high"`
	Low    []*float64 `json:"low"`
	Close  []*float64 `json:"close"`
	Volume []*int64   `json:"volume"`
}

// FirstResult returns the first chart result, or nil when there is none.
func (c *ChartResponse) FirstResult() *ChartResult {
	if c == nil || len(c.Chart.Result) == 0 {
		return nil
	}
	return &c.Chart.Result[0]
}

// SearchResponse is the raw v1 search payload.
type SearchResponse struct {
	Quotes []SearchQuote `json:"quotes"`
}

type SearchQuote struct {
	Symbol    string `json:"symbol"`
	ShortName string `json:"shortname"`
	LongName  string `json:"longname"`
	QuoteType string `json:"quoteType"`
	Exchange  string `json:"exchange"`
	Currency  string `json:"currency"`
}
