// internal/api/handler/api/quotes.go
package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/newthinker/stockdeck/internal/api/response"
	"github.com/newthinker/stockdeck/internal/core"
	"github.com/newthinker/stockdeck/internal/quote"
	"github.com/newthinker/stockdeck/internal/upstream"
)

// MaxSymbolsPerRequest bounds a multi-quote request; each symbol is fetched
// sequentially with the upstream pause.
const MaxSymbolsPerRequest = 50

// QuotesApp defines the interface needed from app.App.
type QuotesApp interface {
	Quote(ctx context.Context, symbol string) core.Result[core.Quote]
	Quotes(ctx context.Context, symbols []string) []core.Quote
	Intraday(ctx context.Context, symbol, rangeLabel string) core.Result[core.Series]
}

// QuotesHandler handles quote and chart API requests
type QuotesHandler struct {
	app QuotesApp
}

// NewQuotesHandler creates a new quotes handler
func NewQuotesHandler(app QuotesApp) *QuotesHandler {
	return &QuotesHandler{app: app}
}

// Get handles GET /api/v1/quotes/{symbol}
func (h *QuotesHandler) Get(w http.ResponseWriter, r *http.Request, symbol string) {
	symbol, err := parseSymbol(symbol)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err)
		return
	}

	q, ok := h.app.Quote(r.Context(), symbol).Get()
	if !ok {
		response.Error(w, http.StatusNotFound, core.ErrNoData)
		return
	}

	response.JSON(w, http.StatusOK, map[string]any{
		"quote":   q,
		"display": quote.Render(q),
	})
}

// List handles GET /api/v1/quotes?symbols=A,B,C
func (h *QuotesHandler) List(w http.ResponseWriter, r *http.Request) {
	var symbols []string
	for _, s := range strings.Split(r.URL.Query().Get("symbols"), ",") {
		if strings.TrimSpace(s) == "" {
			continue
		}
		sym, err := parseSymbol(s)
		if err != nil {
			response.Error(w, http.StatusBadRequest, err)
			return
		}
		symbols = append(symbols, sym)
	}

	if len(symbols) == 0 {
		response.Error(w, http.StatusBadRequest,
			core.WrapError(core.ErrBadRequest, fmt.Errorf("symbols is required")))
		return
	}
	if len(symbols) > MaxSymbolsPerRequest {
		response.Error(w, http.StatusBadRequest,
			core.WrapError(core.ErrBadRequest, fmt.Errorf("at most %d symbols per request", MaxSymbolsPerRequest)))
		return
	}

	response.List(w, h.app.Quotes(r.Context(), symbols))
}

// Intraday handles GET /api/v1/intraday/{symbol}?range=1D
func (h *QuotesHandler) Intraday(w http.ResponseWriter, r *http.Request, symbol string) {
	symbol, err := parseSymbol(symbol)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err)
		return
	}

	rng := upstream.LookupRange(r.URL.Query().Get("range"))
	series, ok := h.app.Intraday(r.Context(), symbol, rng.Label).Get()
	if !ok {
		response.Error(w, http.StatusNotFound, core.ErrNoData)
		return
	}

	response.JSON(w, http.StatusOK, map[string]any{
		"symbol": symbol,
		"range":  rng,
		"series": series,
		"stats":  quote.Stats(series),
	})
}

// Ranges handles GET /api/v1/intraday/ranges
func (h *QuotesHandler) Ranges(w http.ResponseWriter, r *http.Request) {
	response.List(w, upstream.Ranges)
}

func parseSymbol(s string) (string, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if err := upstream.ValidateSymbol(s); err != nil {
		return "", err
	}
	return s, nil
}
