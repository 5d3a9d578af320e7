package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSearchHandler_Search(t *testing.T) {
	handler := NewSearchHandler(newFakeApp())

	req := httptest.NewRequest("GET", "/api/v1/search?q=AAPL&mode=fuzzy", nil)
	w := httptest.NewRecorder()

	handler.Search(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	matches := decodeSuccess(t, w).Data.([]any)
	if len(matches) != 1 {
		t.Fatalf("expected 1 match, got %d", len(matches))
	}
	m := matches[0].(map[string]any)
	if m["symbol"] != "AAPL" || m["field"] != "symbol" {
		t.Errorf("unexpected match %v", m)
	}
}

func TestSearchHandler_ShortQueryIsEmptyList(t *testing.T) {
	handler := NewSearchHandler(newFakeApp())

	req := httptest.NewRequest("GET", "/api/v1/search?q=A", nil)
	w := httptest.NewRecorder()

	handler.Search(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	resp := decodeSuccess(t, w)
	if matches, ok := resp.Data.([]any); !ok || len(matches) != 0 {
		t.Errorf("expected empty list, got %v", resp.Data)
	}
}
