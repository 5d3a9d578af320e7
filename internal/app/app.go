// Package app is the presented surface of stockdeck. Every call returns a
// value or an explicit empty result; upstream and storage faults are logged
// and never returned.
package app

import (
	"context"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/newthinker/stockdeck/internal/core"
	"github.com/newthinker/stockdeck/internal/poller"
	"github.com/newthinker/stockdeck/internal/quote"
	"github.com/newthinker/stockdeck/internal/search"
	"github.com/newthinker/stockdeck/internal/upstream"
	"github.com/newthinker/stockdeck/internal/watchlist"
	"go.uber.org/zap"
)

// Upstream is the quote/search provider the app reads from
type Upstream interface {
	Chart(ctx context.Context, req upstream.ChartRequest) (*upstream.ChartResponse, error)
	Search(ctx context.Context, keywords string) ([]upstream.SearchQuote, error)
}

// Config holds pacing and ranking settings
type Config struct {
	RequestDelay time.Duration
	IndexDelay   time.Duration
	Search       search.Options
}

// DefaultConfig returns the pacing used by the dashboard
func DefaultConfig() Config {
	return Config{
		RequestDelay: 100 * time.Millisecond,
		IndexDelay:   200 * time.Millisecond,
		Search:       search.DefaultOptions(),
	}
}

// App is the main application orchestrator
type App struct {
	cfg       Config
	upstream  Upstream
	watchlist *watchlist.Store
	logger    *zap.Logger
	cycles    poller.CycleObserver
	catalog   []core.SearchEntry
}

// New creates a new App instance
func New(cfg Config, up Upstream, wl *watchlist.Store, logger *zap.Logger) *App {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &App{
		cfg:       cfg,
		upstream:  up,
		watchlist: wl,
		logger:    logger,
		catalog:   Catalog(),
	}
}

// SetCycleObserver records poll cycles started through the app
func (a *App) SetCycleObserver(o poller.CycleObserver) {
	a.cycles = o
}

// Quote fetches the latest snapshot for one symbol
func (a *App) Quote(ctx context.Context, symbol string) core.Result[core.Quote] {
	symbol = normalizeSymbol(symbol)
	raw, err := a.upstream.Chart(ctx, upstream.ChartRequest{
		Symbol:         symbol,
		Interval:       "1d",
		Range:          "1d",
		IncludePrePost: true,
	})
	if err != nil {
		a.logger.Warn("quote unavailable", zap.String("symbol", symbol), zap.Error(err))
		return core.None[core.Quote]()
	}

	res := quote.Normalize(raw)
	q, ok := res.Get()
	if !ok {
		a.logger.Debug("no quote data", zap.String("symbol", symbol))
		return res
	}
	if q.Symbol == "" {
		q.Symbol = symbol
		q.Market = quote.ClassifyMarket(symbol)
	}
	return core.Some(q)
}

// Quotes fetches symbols one at a time with the configured pause between
// requests. Symbols without data are left out; order is preserved.
func (a *App) Quotes(ctx context.Context, symbols []string) []core.Quote {
	return a.sequential(ctx, symbols, a.cfg.RequestDelay)
}

// Intraday fetches a chart series for a range label such as "1D" or "5Y"
func (a *App) Intraday(ctx context.Context, symbol, rangeLabel string) core.Result[core.Series] {
	symbol = normalizeSymbol(symbol)
	r := upstream.LookupRange(rangeLabel)

	raw, err := a.upstream.Chart(ctx, upstream.ChartRequest{
		Symbol:   symbol,
		Interval: r.Interval,
		Range:    r.Range,
	})
	if err != nil {
		a.logger.Warn("series unavailable",
			zap.String("symbol", symbol),
			zap.String("range", r.Label),
			zap.Error(err),
		)
		return core.None[core.Series]()
	}

	res := quote.NormalizeSeries(raw, r.Interval, r.Range)
	s, ok := res.Get()
	if !ok {
		a.logger.Debug("no series data", zap.String("symbol", symbol), zap.String("range", r.Label))
		return res
	}
	if s.Symbol == "" {
		s.Symbol = symbol
	}
	return core.Some(s)
}

// Search queries the upstream symbol search
func (a *App) Search(ctx context.Context, keywords string) []core.SearchEntry {
	keywords = strings.TrimSpace(keywords)
	if keywords == "" {
		return []core.SearchEntry{}
	}

	quotes, err := a.upstream.Search(ctx, keywords)
	if err != nil {
		a.logger.Warn("search unavailable", zap.String("keywords", keywords), zap.Error(err))
		return []core.SearchEntry{}
	}

	entries := make([]core.SearchEntry, 0, len(quotes))
	for _, q := range quotes {
		if q.Symbol == "" {
			continue
		}
		entries = append(entries, searchEntry(q))
	}
	return entries
}

// SearchMode selects a suggestion strategy
type SearchMode string

const (
	ModeSubstring SearchMode = "substring"
	ModeFuzzy     SearchMode = "fuzzy"
)

// ParseSearchMode maps a request value to a mode, defaulting to substring
func ParseSearchMode(v string) SearchMode {
	if strings.EqualFold(strings.TrimSpace(v), string(ModeFuzzy)) {
		return ModeFuzzy
	}
	return ModeSubstring
}

// Suggest ranks the built-in catalog, extended with upstream search hits for
// the query, against the query. Substring matches carry a zero score.
func (a *App) Suggest(ctx context.Context, query string, mode SearchMode) []search.Match {
	if utf8.RuneCountInString(search.NormalizeQuery(query)) < a.minQueryLength(mode) {
		return []search.Match{}
	}

	catalog := mergeCatalog(a.catalog, a.Search(ctx, query))

	if mode == ModeFuzzy {
		return search.Fuzzy(query, catalog, a.cfg.Search)
	}

	hits := search.Substring(query, catalog)
	matches := make([]search.Match, len(hits))
	for i, e := range hits {
		matches[i] = search.Match{SearchEntry: e}
	}
	return matches
}

// minQueryLength is the shortest query, in runes, worth an upstream search
// for the given mode
func (a *App) minQueryLength(mode SearchMode) int {
	if mode == ModeFuzzy {
		return max(a.cfg.Search.MinMatchLength, 1)
	}
	return search.MinQueryLength
}

// Watchlist returns the watchlist symbols in insertion order
func (a *App) Watchlist(ctx context.Context) []string {
	return a.watchlist.List(ctx)
}

// InWatchlist reports whether symbol is on the watchlist
func (a *App) InWatchlist(ctx context.Context, symbol string) bool {
	return a.watchlist.Contains(ctx, symbol)
}

// AddToWatchlist appends symbol; false when present or not persisted
func (a *App) AddToWatchlist(ctx context.Context, symbol string) bool {
	return a.watchlist.Add(ctx, symbol)
}

// RemoveFromWatchlist drops symbol; false only when the write fails
func (a *App) RemoveFromWatchlist(ctx context.Context, symbol string) bool {
	return a.watchlist.Remove(ctx, symbol)
}

// ClearWatchlist deletes every symbol
func (a *App) ClearWatchlist(ctx context.Context) bool {
	return a.watchlist.Clear(ctx)
}

// ReplaceWatchlist overwrites the watchlist
func (a *App) ReplaceWatchlist(ctx context.Context, symbols []string) bool {
	return a.watchlist.Replace(ctx, symbols)
}

func (a *App) sequential(ctx context.Context, symbols []string, delay time.Duration) []core.Quote {
	quotes := make([]core.Quote, 0, len(symbols))
	for i, symbol := range symbols {
		if q, ok := a.Quote(ctx, symbol).Get(); ok {
			quotes = append(quotes, q)
		}
		if i == len(symbols)-1 {
			break
		}
		if err := sleep(ctx, delay); err != nil {
			a.logger.Debug("sequential fetch cancelled",
				zap.Int("fetched", i+1),
				zap.Int("total", len(symbols)),
			)
			break
		}
	}
	return quotes
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func normalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

func searchEntry(q upstream.SearchQuote) core.SearchEntry {
	e := core.SearchEntry{
		Symbol:   q.Symbol,
		Name:     firstNonEmpty(q.LongName, q.ShortName, q.Symbol),
		Type:     firstNonEmpty(q.QuoteType, "EQUITY"),
		Region:   firstNonEmpty(q.Exchange, "Unknown"),
		Currency: firstNonEmpty(q.Currency, "USD"),
	}
	if q.ShortName != "" && q.ShortName != e.Name {
		e.Description = q.ShortName
	}
	return e
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

func mergeCatalog(base, extra []core.SearchEntry) []core.SearchEntry {
	out := slices.Clone(base)
	for _, e := range extra {
		if !slices.ContainsFunc(out, func(b core.SearchEntry) bool { return strings.EqualFold(b.Symbol, e.Symbol) }) {
			out = append(out, e)
		}
	}
	return out
}
