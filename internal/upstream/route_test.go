package upstream_test

import (
	"net/url"
	"testing"

	"github.com/newthinker/stockdeck/internal/upstream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirectRoute_Resolve(t *testing.T) {
	tests := []struct {
		base string
		want string
	}{
		{"https://query1.finance.yahoo.com", "https://query1.finance.yahoo.com/v8/finance/chart/AAPL?range=1d"},
		{"http://localhost:5173/api/yahoo/", "http://localhost:5173/api/yahoo/v8/finance/chart/AAPL?range=1d"},
	}

	for _, tt := range tests {
		r := upstream.DirectRoute{BaseURL: tt.base}
		got := r.Resolve("/v8/finance/chart/AAPL", url.Values{"range": {"1d"}})
		assert.Equal(t, tt.want, got)
	}
}

func TestRelayRoute_Resolve(t *testing.T) {
	r := upstream.RelayRoute{RelayURL: "https://api.allorigins.win/raw", Target: upstream.DefaultBaseURL}
	got := r.Resolve("/v1/finance/search", url.Values{"q": {"tcs"}})

	u, err := url.Parse(got)
	require.NoError(t, err)
	assert.Equal(t, "api.allorigins.win", u.Host)
	assert.Equal(t, "https://query1.finance.yahoo.com/v1/finance/search?q=tcs", u.Query().Get("url"))
}

func TestNewRoute(t *testing.T) {
	r, err := upstream.NewRoute("", "", "")
	require.NoError(t, err)
	assert.Equal(t, "direct", r.Name())

	r, err = upstream.NewRoute("relay", "", "")
	require.NoError(t, err)
	assert.Equal(t, "relay", r.Name())

	_, err = upstream.NewRoute("carrier-pigeon", "", "")
	assert.Error(t, err)
}

func TestLookupRange(t *testing.T) {
	assert.Equal(t, "5m", upstream.LookupRange("1D").Interval)
	assert.Equal(t, "1wk", upstream.LookupRange("1y").Interval)
	assert.Equal(t, "max", upstream.LookupRange("all").Range)
	assert.Equal(t, "1d", upstream.LookupRange("bogus").Range)
}
