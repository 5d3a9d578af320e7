// internal/api/handler/api/watchlist_test.go
package api

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestWatchlistHandler_List(t *testing.T) {
	a := newFakeApp()
	a.watchlist = []string{"AAPL", "GOOG"}

	handler := NewWatchlistHandler(a)

	req := httptest.NewRequest("GET", "/api/v1/watchlist", nil)
	w := httptest.NewRecorder()

	handler.List(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}

	data := decodeSuccess(t, w).Data.(map[string]any)
	symbols := data["symbols"].([]any)
	if len(symbols) != 2 {
		t.Errorf("expected 2 symbols, got %d", len(symbols))
	}
	if data["count"].(float64) != 2 {
		t.Errorf("expected count 2, got %v", data["count"])
	}
}

func TestWatchlistHandler_Add(t *testing.T) {
	a := newFakeApp()
	handler := NewWatchlistHandler(a)

	body := bytes.NewBufferString(`{"symbol": " aapl "}`)
	req := httptest.NewRequest("POST", "/api/v1/watchlist", body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	handler.Add(w, req)

	if w.Code != http.StatusCreated {
		t.Errorf("expected 201, got %d", w.Code)
	}

	watchlist := a.Watchlist(req.Context())
	if len(watchlist) != 1 || watchlist[0] != "AAPL" {
		t.Errorf("expected AAPL in watchlist, got %v", watchlist)
	}
}

func TestWatchlistHandler_Add_AlreadyPresent(t *testing.T) {
	a := newFakeApp()
	a.watchlist = []string{"AAPL"}
	handler := NewWatchlistHandler(a)

	req := httptest.NewRequest("POST", "/api/v1/watchlist", bytes.NewBufferString(`{"symbol": "AAPL"}`))
	w := httptest.NewRecorder()

	handler.Add(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if added := decodeSuccess(t, w).Data.(map[string]any)["added"]; added != false {
		t.Errorf("expected added=false, got %v", added)
	}
	if n := len(a.Watchlist(req.Context())); n != 1 {
		t.Errorf("expected 1 symbol, got %d", n)
	}
}

func TestWatchlistHandler_Add_StorageFailure(t *testing.T) {
	a := newFakeApp()
	a.failWrite = true
	handler := NewWatchlistHandler(a)

	req := httptest.NewRequest("POST", "/api/v1/watchlist", bytes.NewBufferString(`{"symbol": "AAPL"}`))
	w := httptest.NewRecorder()

	handler.Add(w, req)

	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("expected 503, got %d", w.Code)
	}
	if code := decodeError(t, w).Error.Code; code != "STORAGE_UNAVAILABLE" {
		t.Errorf("expected STORAGE_UNAVAILABLE, got %s", code)
	}
}

func TestWatchlistHandler_Add_BadRequests(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"invalid json", `{invalid json}`},
		{"empty symbol", `{"symbol": ""}`},
		{"missing symbol", `{}`},
		{"too long", `{"symbol": "ABCDEFGHIJKLMNOPQRSTUVWXYZ"}`},
		{"bad format", `{"symbol": "AA PL"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newFakeApp()
			handler := NewWatchlistHandler(a)

			req := httptest.NewRequest("POST", "/api/v1/watchlist", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			handler.Add(w, req)

			if w.Code != http.StatusBadRequest {
				t.Errorf("expected 400, got %d", w.Code)
			}
			if len(a.watchlist) != 0 {
				t.Errorf("expected empty watchlist, got %v", a.watchlist)
			}
		})
	}
}

func TestWatchlistHandler_Contains(t *testing.T) {
	a := newFakeApp()
	a.watchlist = []string{"AAPL"}
	handler := NewWatchlistHandler(a)

	for symbol, want := range map[string]bool{"aapl": true, "MSFT": false} {
		req := httptest.NewRequest("GET", "/api/v1/watchlist/"+symbol, nil)
		w := httptest.NewRecorder()

		handler.Contains(w, req, symbol)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		if got := decodeSuccess(t, w).Data.(map[string]any)["watched"]; got != want {
			t.Errorf("%s: expected watched=%v, got %v", symbol, want, got)
		}
	}
}

func TestWatchlistHandler_Remove(t *testing.T) {
	a := newFakeApp()
	a.watchlist = []string{"AAPL", "GOOG"}
	handler := NewWatchlistHandler(a)

	req := httptest.NewRequest("DELETE", "/api/v1/watchlist/AAPL", nil)
	w := httptest.NewRecorder()

	handler.Remove(w, req, "AAPL")

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}

	watchlist := a.Watchlist(req.Context())
	if len(watchlist) != 1 || watchlist[0] != "GOOG" {
		t.Errorf("expected [GOOG], got %v", watchlist)
	}
}

func TestWatchlistHandler_Remove_Absent(t *testing.T) {
	handler := NewWatchlistHandler(newFakeApp())

	req := httptest.NewRequest("DELETE", "/api/v1/watchlist/AAPL", nil)
	w := httptest.NewRecorder()

	handler.Remove(w, req, "AAPL")

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
}

func TestWatchlistHandler_Remove_StorageFailure(t *testing.T) {
	a := newFakeApp()
	a.watchlist = []string{"AAPL"}
	a.failWrite = true
	handler := NewWatchlistHandler(a)

	req := httptest.NewRequest("DELETE", "/api/v1/watchlist/AAPL", nil)
	w := httptest.NewRecorder()

	handler.Remove(w, req, "AAPL")

	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("expected 503, got %d", w.Code)
	}
}

func TestWatchlistHandler_Clear(t *testing.T) {
	a := newFakeApp()
	a.watchlist = []string{"AAPL", "GOOG"}
	handler := NewWatchlistHandler(a)

	req := httptest.NewRequest("DELETE", "/api/v1/watchlist", nil)
	w := httptest.NewRecorder()

	handler.Clear(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", w.Code)
	}
	if len(a.watchlist) != 0 {
		t.Errorf("expected empty watchlist, got %v", a.watchlist)
	}
}

func TestWatchlistHandler_Snapshot(t *testing.T) {
	a := newFakeApp()
	a.watchlist = []string{"AAPL", "MSFT", "TCS.NS"}
	handler := NewWatchlistHandler(a)

	req := httptest.NewRequest("GET", "/api/v1/watchlist/snapshot", nil)
	w := httptest.NewRecorder()

	handler.Snapshot(w, req)

	data := decodeSuccess(t, w).Data.(map[string]any)
	if data["gaining"].(float64) != 2 || data["declining"].(float64) != 1 {
		t.Errorf("expected 2 gaining and 1 declining, got %v", data)
	}
}
