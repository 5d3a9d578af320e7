package app

import (
	"context"
	"slices"
	"strings"

	"github.com/newthinker/stockdeck/internal/core"
)

// Listing is a symbol with its display name
type Listing struct {
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
}

// Board is a fixed market listing shown on the markets page
type Board struct {
	Name     string    `json:"name"`
	Listings []Listing `json:"listings"`
}

// Boards are listed in display order
var Boards = []Board{
	{Name: "India", Listings: []Listing{
		{"RELIANCE.NS", "Reliance Industries"},
		{"TCS.NS", "Tata Consultancy Services"},
		{"HDFCBANK.NS", "HDFC Bank"},
		{"INFY.NS", "Infosys"},
		{"HINDUNILVR.NS", "Hindustan Unilever"},
		{"ICICIBANK.NS", "ICICI Bank"},
		{"SBIN.NS", "State Bank of India"},
		{"BHARTIARTL.NS", "Bharti Airtel"},
		{"KOTAKBANK.NS", "Kotak Mahindra Bank"},
		{"ITC.NS", "ITC"},
	}},
	{Name: "USA", Listings: []Listing{
		{"AAPL", "Apple Inc."},
		{"MSFT", "Microsoft Corporation"},
		{"GOOGL", "Alphabet Inc."},
		{"AMZN", "Amazon.com Inc."},
		{"TSLA", "Tesla Inc."},
		{"META", "Meta Platforms Inc."},
		{"NVDA", "NVIDIA Corporation"},
		{"JPM", "JPMorgan Chase & Co."},
	}},
	{Name: "UK", Listings: []Listing{
		{"BP.L", "BP p.l.c."},
		{"GSK.L", "GSK plc"},
		{"HSBA.L", "HSBC Holdings plc"},
		{"VOD.L", "Vodafone Group plc"},
	}},
	{Name: "Japan", Listings: []Listing{
		{"7203.T", "Toyota Motor Corporation"},
		{"6758.T", "Sony Group Corporation"},
		{"9984.T", "SoftBank Group Corp."},
	}},
	{Name: "China", Listings: []Listing{
		{"0700.HK", "Tencent Holdings"},
		{"0941.HK", "China Mobile"},
		{"1299.HK", "AIA Group"},
	}},
	{Name: "Germany", Listings: []Listing{
		{"SAP.DE", "SAP SE"},
		{"SIE.DE", "Siemens AG"},
		{"VOW3.DE", "Volkswagen AG"},
	}},
}

// DefaultIndexRegion is used for unknown regions
const DefaultIndexRegion = "US"

// Indices maps a region to its index listings
var Indices = map[string][]Listing{
	"US": {
		{"^GSPC", "S&P 500"},
		{"^DJI", "Dow 30"},
		{"^IXIC", "Nasdaq"},
		{"^RUT", "Russell 2000"},
		{"^VIX", "VIX"},
		{"GC=F", "Gold"},
	},
	"Europe": {
		{"^FTSE", "FTSE 100"},
		{"^GDAXI", "DAX"},
		{"^FCHI", "CAC 40"},
	},
	"Asia": {
		{"^N225", "Nikkei 225"},
		{"^HSI", "Hang Seng"},
		{"000001.SS", "Shanghai"},
	},
}

// IndexRegions lists the regions in display order
var IndexRegions = []string{"US", "Europe", "Asia"}

// BoardQuotes is a board with the quotes that could be fetched
type BoardQuotes struct {
	Name   string       `json:"name"`
	Quotes []core.Quote `json:"quotes"`
}

// IndexQuote is an index listing with its quote
type IndexQuote struct {
	Listing
	Quote core.Quote `json:"quote"`
}

// IndexSummary is the market summary for one region
type IndexSummary struct {
	Region  string       `json:"region"`
	Entries []IndexQuote `json:"entries"`
}

// Snapshot is the watchlist page state
type Snapshot struct {
	Symbols   []string     `json:"symbols"`
	Quotes    []core.Quote `json:"quotes"`
	Gaining   int          `json:"gaining"`
	Declining int          `json:"declining"`
}

// LookupBoard finds a board by name, case-insensitively
func LookupBoard(name string) (Board, bool) {
	for _, b := range Boards {
		if strings.EqualFold(b.Name, strings.TrimSpace(name)) {
			return b, true
		}
	}
	return Board{}, false
}

// LookupRegion resolves a region name, falling back to DefaultIndexRegion
func LookupRegion(region string) string {
	for _, r := range IndexRegions {
		if strings.EqualFold(r, strings.TrimSpace(region)) {
			return r
		}
	}
	return DefaultIndexRegion
}

// Catalog returns every board and index listing as search entries
func Catalog() []core.SearchEntry {
	var entries []core.SearchEntry
	for _, b := range Boards {
		for _, l := range b.Listings {
			entries = append(entries, core.SearchEntry{
				Symbol:      l.Symbol,
				Name:        l.Name,
				Type:        "EQUITY",
				Region:      b.Name,
				Currency:    currencyCode(l.Symbol),
				Description: b.Name + " equity",
			})
		}
	}
	for _, region := range IndexRegions {
		for _, l := range Indices[region] {
			entries = append(entries, core.SearchEntry{
				Symbol:      l.Symbol,
				Name:        l.Name,
				Type:        "INDEX",
				Region:      region,
				Currency:    currencyCode(l.Symbol),
				Description: region + " index",
			})
		}
	}
	return entries
}

// Board fetches one board's quotes sequentially
func (a *App) Board(ctx context.Context, name string) core.Result[BoardQuotes] {
	b, ok := LookupBoard(name)
	if !ok {
		return core.None[BoardQuotes]()
	}
	return core.Some(BoardQuotes{Name: b.Name, Quotes: a.Quotes(ctx, symbolsOf(b.Listings))})
}

// AllBoards fetches every board in display order
func (a *App) AllBoards(ctx context.Context) []BoardQuotes {
	out := make([]BoardQuotes, 0, len(Boards))
	for i, b := range Boards {
		if ctx.Err() != nil {
			break
		}
		out = append(out, BoardQuotes{Name: b.Name, Quotes: a.Quotes(ctx, symbolsOf(b.Listings))})
		if i < len(Boards)-1 && sleep(ctx, a.cfg.RequestDelay) != nil {
			break
		}
	}
	return out
}

// IndexSummary fetches a region's indices with the index pacing
func (a *App) IndexSummary(ctx context.Context, region string) IndexSummary {
	region = LookupRegion(region)
	listings := Indices[region]

	summary := IndexSummary{Region: region, Entries: make([]IndexQuote, 0, len(listings))}
	for i, l := range listings {
		if q, ok := a.Quote(ctx, l.Symbol).Get(); ok {
			summary.Entries = append(summary.Entries, IndexQuote{Listing: l, Quote: q})
		}
		if i < len(listings)-1 && sleep(ctx, a.cfg.IndexDelay) != nil {
			break
		}
	}
	return summary
}

// Trending returns board quotes ordered by absolute percentage move, largest
// first. A positive limit truncates the result.
func (a *App) Trending(ctx context.Context, limit int) []core.Quote {
	var symbols []string
	for _, b := range Boards {
		symbols = append(symbols, symbolsOf(b.Listings)...)
	}

	quotes := a.Quotes(ctx, symbols)
	slices.SortStableFunc(quotes, func(x, y core.Quote) int {
		return y.ChangePercent.Abs().Cmp(x.ChangePercent.Abs())
	})
	if limit > 0 && len(quotes) > limit {
		quotes = quotes[:limit]
	}
	return quotes
}

// WatchlistSnapshot fetches quotes for the watchlist and counts movers
func (a *App) WatchlistSnapshot(ctx context.Context) Snapshot {
	symbols := a.Watchlist(ctx)
	snap := Snapshot{Symbols: symbols, Quotes: a.Quotes(ctx, symbols)}
	for _, q := range snap.Quotes {
		switch {
		case q.IsGaining():
			snap.Gaining++
		case q.IsDeclining():
			snap.Declining++
		}
	}
	return snap
}

func symbolsOf(listings []Listing) []string {
	out := make([]string, len(listings))
	for i, l := range listings {
		out[i] = l.Symbol
	}
	return out
}

func currencyCode(symbol string) string {
	switch {
	case strings.HasSuffix(symbol, ".NS"), strings.HasSuffix(symbol, ".BO"):
		return "INR"
	case strings.HasSuffix(symbol, ".L"):
		return "GBP"
	case strings.HasSuffix(symbol, ".T"):
		return "JPY"
	case strings.HasSuffix(symbol, ".HK"):
		return "HKD"
	case strings.HasSuffix(symbol, ".DE"):
		return "EUR"
	case strings.HasSuffix(symbol, ".SS"):
		return "CNY"
	default:
		return "USD"
	}
}
