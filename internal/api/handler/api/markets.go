package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/newthinker/stockdeck/internal/api/response"
	"github.com/newthinker/stockdeck/internal/app"
	"github.com/newthinker/stockdeck/internal/core"
)

// DefaultTrendingLimit is used when no limit is given
const DefaultTrendingLimit = 10

// MarketsApp defines the interface needed from app.App.
type MarketsApp interface {
	Board(ctx context.Context, name string) core.Result[app.BoardQuotes]
	AllBoards(ctx context.Context) []app.BoardQuotes
	IndexSummary(ctx context.Context, region string) app.IndexSummary
	Trending(ctx context.Context, limit int) []core.Quote
}

// MarketsHandler serves boards, index summaries and trending symbols
type MarketsHandler struct {
	app MarketsApp
}

// NewMarketsHandler creates a new markets handler
func NewMarketsHandler(app MarketsApp) *MarketsHandler {
	return &MarketsHandler{app: app}
}

// Boards handles GET /api/v1/boards
func (h *MarketsHandler) Boards(w http.ResponseWriter, r *http.Request) {
	response.List(w, h.app.AllBoards(r.Context()))
}

// Board handles GET /api/v1/boards/{name}
func (h *MarketsHandler) Board(w http.ResponseWriter, r *http.Request, name string) {
	if _, ok := app.LookupBoard(name); !ok {
		response.Error(w, http.StatusNotFound,
			core.WrapError(core.ErrNoData, fmt.Errorf("unknown board %q", name)))
		return
	}
	response.Result(w, h.app.Board(r.Context(), name))
}

// Indices handles GET /api/v1/indices/{region}
func (h *MarketsHandler) Indices(w http.ResponseWriter, r *http.Request, region string) {
	response.JSON(w, http.StatusOK, h.app.IndexSummary(r.Context(), region))
}

// Trending handles GET /api/v1/trending?limit=N
func (h *MarketsHandler) Trending(w http.ResponseWriter, r *http.Request) {
	limit := DefaultTrendingLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			response.Error(w, http.StatusBadRequest,
				core.WrapError(core.ErrBadRequest, fmt.Errorf("limit must be a positive integer")))
			return
		}
		limit = n
	}
	response.List(w, h.app.Trending(r.Context(), limit))
}
