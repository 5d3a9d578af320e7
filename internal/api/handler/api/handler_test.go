package api

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/newthinker/stockdeck/internal/api/response"
	"github.com/newthinker/stockdeck/internal/app"
	"github.com/newthinker/stockdeck/internal/core"
	"github.com/newthinker/stockdeck/internal/poller"
	"github.com/newthinker/stockdeck/internal/search"
	"github.com/shopspring/decimal"
)

// fakeApp implements every handler interface over in-memory data.
type fakeApp struct {
	mu        sync.Mutex
	quotes    map[string]core.Quote
	series    map[string]core.Series
	watchlist []string
	failWrite bool
	lastRange string
}

func newFakeApp() *fakeApp {
	return &fakeApp{
		quotes: map[string]core.Quote{
			"AAPL":   testQuote("AAPL", "150.25", "1.5"),
			"MSFT":   testQuote("MSFT", "310.10", "-0.4"),
			"TCS.NS": testQuote("TCS.NS", "3500", "2.1"),
		},
		series: map[string]core.Series{
			"AAPL": {
				Symbol: "AAPL", Interval: "5m", Range: "1d",
				Bars: []core.Bar{
					{Close: decimal.RequireFromString("149"), High: decimal.RequireFromString("150"), Low: decimal.RequireFromString("148")},
					{Close: decimal.RequireFromString("151"), High: decimal.RequireFromString("152"), Low: decimal.RequireFromString("149")},
				},
			},
		},
	}
}

func testQuote(symbol, price, pct string) core.Quote {
	return core.Quote{
		Symbol:        symbol,
		Market:        core.MarketDefault,
		Price:         decimal.RequireFromString(price),
		ChangePercent: decimal.RequireFromString(pct),
		AsOf:          time.Date(2024, 3, 1, 15, 30, 0, 0, time.UTC),
	}
}

func (f *fakeApp) Quote(ctx context.Context, symbol string) core.Result[core.Quote] {
	if q, ok := f.quotes[symbol]; ok {
		return core.Some(q)
	}
	return core.None[core.Quote]()
}

func (f *fakeApp) Quotes(ctx context.Context, symbols []string) []core.Quote {
	var out []core.Quote
	for _, s := range symbols {
		if q, ok := f.quotes[s]; ok {
			out = append(out, q)
		}
	}
	return out
}

func (f *fakeApp) Intraday(ctx context.Context, symbol, rangeLabel string) core.Result[core.Series] {
	f.lastRange = rangeLabel
	if s, ok := f.series[symbol]; ok {
		return core.Some(s)
	}
	return core.None[core.Series]()
}

func (f *fakeApp) Suggest(ctx context.Context, query string, mode app.SearchMode) []search.Match {
	if len(query) < 2 {
		return nil
	}
	var out []search.Match
	for _, e := range app.Catalog() {
		if e.Symbol == query {
			out = append(out, search.Match{SearchEntry: e, Field: "symbol"})
		}
	}
	return out
}

func (f *fakeApp) Board(ctx context.Context, name string) core.Result[app.BoardQuotes] {
	b, ok := app.LookupBoard(name)
	if !ok || name == "Japan" {
		return core.None[app.BoardQuotes]()
	}
	return core.Some(app.BoardQuotes{Name: b.Name, Quotes: []core.Quote{f.quotes["AAPL"]}})
}

func (f *fakeApp) AllBoards(ctx context.Context) []app.BoardQuotes {
	return []app.BoardQuotes{{Name: "USA", Quotes: []core.Quote{f.quotes["AAPL"], f.quotes["MSFT"]}}}
}

func (f *fakeApp) IndexSummary(ctx context.Context, region string) app.IndexSummary {
	return app.IndexSummary{Region: app.LookupRegion(region)}
}

func (f *fakeApp) Trending(ctx context.Context, limit int) []core.Quote {
	all := []core.Quote{f.quotes["TCS.NS"], f.quotes["AAPL"], f.quotes["MSFT"]}
	if limit < len(all) {
		all = all[:limit]
	}
	return all
}

func (f *fakeApp) Watchlist(ctx context.Context) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.watchlist)
}

func (f *fakeApp) InWatchlist(ctx context.Context, symbol string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Contains(f.watchlist, symbol)
}

func (f *fakeApp) AddToWatchlist(ctx context.Context, symbol string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWrite || slices.Contains(f.watchlist, symbol) {
		return false
	}
	f.watchlist = append(f.watchlist, symbol)
	return true
}

func (f *fakeApp) RemoveFromWatchlist(ctx context.Context, symbol string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWrite {
		return false
	}
	f.watchlist = slices.DeleteFunc(f.watchlist, func(s string) bool { return s == symbol })
	return true
}

func (f *fakeApp) ClearWatchlist(ctx context.Context) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failWrite {
		return false
	}
	f.watchlist = nil
	return true
}

func (f *fakeApp) WatchlistSnapshot(ctx context.Context) app.Snapshot {
	symbols := f.Watchlist(ctx)
	snap := app.Snapshot{Symbols: symbols, Quotes: f.Quotes(ctx, symbols)}
	for _, q := range snap.Quotes {
		if q.IsGaining() {
			snap.Gaining++
		} else if q.IsDeclining() {
			snap.Declining++
		}
	}
	return snap
}

func (f *fakeApp) PollQuote(symbol string, interval time.Duration, sink func(core.Result[core.Quote])) *poller.Task {
	return poller.Start(interval, func(ctx context.Context) core.Result[core.Quote] {
		return f.Quote(ctx, symbol)
	}, sink)
}

func decodeSuccess(t *testing.T, w *httptest.ResponseRecorder) response.SuccessResponse {
	t.Helper()
	var resp response.SuccessResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	return resp
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) response.ErrorResponse {
	t.Helper()
	var resp response.ErrorResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding error response: %v", err)
	}
	return resp
}
