package api

import (
	"context"
	"net/http"

	"github.com/newthinker/stockdeck/internal/api/response"
	"github.com/newthinker/stockdeck/internal/app"
	"github.com/newthinker/stockdeck/internal/search"
)

// SearchApp defines the interface needed from app.App.
type SearchApp interface {
	Suggest(ctx context.Context, query string, mode app.SearchMode) []search.Match
}

// SearchHandler handles symbol search requests
type SearchHandler struct {
	app SearchApp
}

// NewSearchHandler creates a new search handler
func NewSearchHandler(app SearchApp) *SearchHandler {
	return &SearchHandler{app: app}
}

// Search handles GET /api/v1/search?q=...&mode=substring|fuzzy. Short
// queries return an empty list.
func (h *SearchHandler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	mode := app.ParseSearchMode(q.Get("mode"))
	response.List(w, h.app.Suggest(r.Context(), q.Get("q"), mode))
}
