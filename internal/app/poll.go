package app

import (
	"context"
	"time"

	"github.com/newthinker/stockdeck/internal/core"
	"github.com/newthinker/stockdeck/internal/poller"
)

// Poll views
const (
	ViewDetail    = "detail"
	ViewWatchlist = "watchlist"
	ViewSummary   = "summary"
	ViewListing   = "listing"
)

// PollQuote refreshes one symbol's quote every interval
func (a *App) PollQuote(symbol string, interval time.Duration, sink func(core.Result[core.Quote])) *poller.Task {
	return poller.Start(interval, func(ctx context.Context) core.Result[core.Quote] {
		return a.Quote(ctx, symbol)
	}, sink, a.pollOptions(ViewDetail)...)
}

// PollWatchlist refreshes the watchlist snapshot every interval
func (a *App) PollWatchlist(interval time.Duration, sink func(Snapshot)) *poller.Task {
	return poller.Start(interval, a.WatchlistSnapshot, sink, a.pollOptions(ViewWatchlist)...)
}

// PollIndices refreshes a region's index summary every interval
func (a *App) PollIndices(region string, interval time.Duration, sink func(IndexSummary)) *poller.Task {
	return poller.Start(interval, func(ctx context.Context) IndexSummary {
		return a.IndexSummary(ctx, region)
	}, sink, a.pollOptions(ViewSummary)...)
}

// PollBoards refreshes every board every interval
func (a *App) PollBoards(interval time.Duration, sink func([]BoardQuotes)) *poller.Task {
	return poller.Start(interval, a.AllBoards, sink, a.pollOptions(ViewListing)...)
}

func (a *App) pollOptions(view string) []poller.Option {
	opts := []poller.Option{poller.WithView(view), poller.WithLogger(a.logger)}
	if a.cycles != nil {
		opts = append(opts, poller.WithObserver(a.cycles))
	}
	return opts
}
