package upstream

import (
	"fmt"
	"net/url"
	"strings"
)

const (
	// DefaultBaseURL is the upstream finance host.
	DefaultBaseURL = "https://query1.finance.yahoo.com"
	// DefaultRelayURL is a public CORS relay that fetches the url query parameter.
	DefaultRelayURL = "https://api.allorigins.win/raw"
)

// Route turns an upstream path and query into the URL actually requested.
type Route interface {
	Name() string
	Resolve(path string, query url.Values) string
}

// DirectRoute sends requests straight to BaseURL. BaseURL may be the upstream
// host or a local relay path in front of it (e.g. http://localhost:5173/api/yahoo).
type DirectRoute struct {
	BaseURL string
}

func (r DirectRoute) Name() string {
	return "direct"
}

func (r DirectRoute) Resolve(path string, query url.Values) string {
	u := strings.TrimSuffix(r.BaseURL, "/") + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

// RelayRoute wraps the upstream URL into a relay request of the form
// <RelayURL>?url=<escaped target>.
type RelayRoute struct {
	RelayURL string
	Target   string
}

func (r RelayRoute) Name() string {
	return "relay"
}

func (r RelayRoute) Resolve(path string, query url.Values) string {
	target := DirectRoute{BaseURL: r.Target}.Resolve(path, query)
	sep := "?"
	if strings.Contains(r.RelayURL, "?") {
		sep = "&"
	}
	return r.RelayURL + sep + "url=" + url.QueryEscape(target)
}

// NewRoute builds a route from its configured mode.
func NewRoute(mode, baseURL, relayURL string) (Route, error) {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	switch mode {
	case "", "direct":
		return DirectRoute{BaseURL: baseURL}, nil
	case "relay":
		if relayURL == "" {
			relayURL = DefaultRelayURL
		}
		return RelayRoute{RelayURL: relayURL, Target: baseURL}, nil
	default:
		return nil, fmt.Errorf("unknown upstream mode: %s", mode)
	}
}
