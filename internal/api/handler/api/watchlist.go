// internal/api/handler/api/watchlist.go
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/newthinker/stockdeck/internal/api/response"
	"github.com/newthinker/stockdeck/internal/app"
	"github.com/newthinker/stockdeck/internal/core"
)

// WatchlistApp defines the interface needed from app.App.
type WatchlistApp interface {
	Watchlist(ctx context.Context) []string
	InWatchlist(ctx context.Context, symbol string) bool
	AddToWatchlist(ctx context.Context, symbol string) bool
	RemoveFromWatchlist(ctx context.Context, symbol string) bool
	ClearWatchlist(ctx context.Context) bool
	WatchlistSnapshot(ctx context.Context) app.Snapshot
}

// WatchlistHandler handles watchlist API requests.
type WatchlistHandler struct {
	app      WatchlistApp
	validate *validator.Validate
}

// NewWatchlistHandler creates a new watchlist handler.
func NewWatchlistHandler(app WatchlistApp) *WatchlistHandler {
	return &WatchlistHandler{
		app:      app,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// AddRequest is the request body for adding a symbol.
type AddRequest struct {
	Symbol string `json:"symbol" validate:"required,max=24"`
}

// List returns all symbols in the watchlist.
func (h *WatchlistHandler) List(w http.ResponseWriter, r *http.Request) {
	symbols := h.app.Watchlist(r.Context())
	response.JSON(w, http.StatusOK, map[string]any{
		"symbols": symbols,
		"count":   len(symbols),
	})
}

// Add adds a symbol to the watchlist. Adding a symbol that is already
// present is not an error.
func (h *WatchlistHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req AddRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest,
			core.WrapError(core.ErrBadRequest, err))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		response.Error(w, http.StatusBadRequest,
			core.WrapError(core.ErrBadRequest, err))
		return
	}

	symbol, err := parseSymbol(req.Symbol)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err)
		return
	}

	if h.app.AddToWatchlist(r.Context(), symbol) {
		response.JSON(w, http.StatusCreated, map[string]any{
			"symbol": symbol,
			"added":  true,
		})
		return
	}

	if h.app.InWatchlist(r.Context(), symbol) {
		response.JSON(w, http.StatusOK, map[string]any{
			"symbol": symbol,
			"added":  false,
		})
		return
	}

	response.Error(w, http.StatusServiceUnavailable, core.ErrStorageUnavailable)
}

// Contains reports whether a symbol is on the watchlist.
func (h *WatchlistHandler) Contains(w http.ResponseWriter, r *http.Request, symbol string) {
	symbol, err := parseSymbol(symbol)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err)
		return
	}

	response.JSON(w, http.StatusOK, map[string]any{
		"symbol":  symbol,
		"watched": h.app.InWatchlist(r.Context(), symbol),
	})
}

// Remove removes a symbol from the watchlist. Removing an absent symbol
// succeeds.
func (h *WatchlistHandler) Remove(w http.ResponseWriter, r *http.Request, symbol string) {
	symbol, err := parseSymbol(symbol)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err)
		return
	}

	if !h.app.RemoveFromWatchlist(r.Context(), symbol) {
		response.Error(w, http.StatusServiceUnavailable, core.ErrStorageUnavailable)
		return
	}

	response.JSON(w, http.StatusOK, map[string]any{
		"symbol":  symbol,
		"removed": true,
	})
}

// Clear removes every symbol.
func (h *WatchlistHandler) Clear(w http.ResponseWriter, r *http.Request) {
	if !h.app.ClearWatchlist(r.Context()) {
		response.Error(w, http.StatusServiceUnavailable, core.ErrStorageUnavailable)
		return
	}
	response.JSON(w, http.StatusOK, map[string]any{"cleared": true})
}

// Snapshot returns quotes for the watchlist with mover counts.
func (h *WatchlistHandler) Snapshot(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, h.app.WatchlistSnapshot(r.Context()))
}
