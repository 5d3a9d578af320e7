// internal/upstream/client.go
package upstream

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"time"

	"github.com/newthinker/stockdeck/internal/core"
	"go.uber.org/zap"
)

const (
	chartPath  = "/v8/finance/chart/"
	searchPath = "/v1/finance/search"

	defaultUserAgent = "Mozilla/5.0"
	searchCount      = 10
)

// validSymbol matches symbols like AAPL, BRK-B, RELIANCE.NS, 0700.HK, ^GSPC, GC=F
var validSymbol = regexp.MustCompile(`^\^?[A-Za-z0-9][A-Za-z0-9&\-]{0,14}(=[A-Za-z]{1,2})?(\.[A-Za-z]{1,4})?$`)

// ValidateSymbol checks if a symbol has valid format
func ValidateSymbol(symbol string) error {
	if symbol == "" {
		return core.WrapError(core.ErrInvalidSymbol, fmt.Errorf("symbol cannot be empty"))
	}
	if len(symbol) > 20 {
		return core.WrapError(core.ErrInvalidSymbol, fmt.Errorf("symbol too long: %s", symbol))
	}
	if !validSymbol.MatchString(symbol) {
		return core.WrapError(core.ErrInvalidSymbol, fmt.Errorf("invalid symbol format: %s", symbol))
	}
	return nil
}

// Observer receives one callback per upstream call.
type Observer interface {
	ObserveUpstream(call, outcome string, seconds float64)
}

// Client calls the finance chart and search endpoints through a Route.
type Client struct {
	httpClient HTTPClient
	route      Route
	userAgent  string
	observer   Observer
	logger     *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the HTTP client.
func WithHTTPClient(c HTTPClient) Option {
	return func(cl *Client) {
		cl.httpClient = c
	}
}

// WithRoute sets how upstream URLs are resolved.
func WithRoute(r Route) Option {
	return func(cl *Client) {
		cl.route = r
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(cl *Client) {
		if ua != "" {
			cl.userAgent = ua
		}
	}
}

// WithObserver registers a metrics observer.
func WithObserver(o Observer) Option {
	return func(cl *Client) {
		cl.observer = o
	}
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(cl *Client) {
		if l != nil {
			cl.logger = l
		}
	}
}

// New creates a client. Without options it talks directly to the upstream host.
func New(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		route:      DirectRoute{BaseURL: DefaultBaseURL},
		userAgent:  defaultUserAgent,
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Route returns the configured route.
func (c *Client) Route() Route {
	return c.route
}

// ChartRequest describes one chart call.
type ChartRequest struct {
	Symbol         string
	Interval       string
	Range          string
	IncludePrePost bool
}

// Chart fetches the raw chart payload. A payload without results is returned
// as-is; deciding that it holds no data is the caller's job.
func (c *Client) Chart(ctx context.Context, req ChartRequest) (*ChartResponse, error) {
	if err := ValidateSymbol(req.Symbol); err != nil {
		return nil, err
	}

	q := url.Values{}
	q.Set("interval", req.Interval)
	q.Set("range", req.Range)
	if req.IncludePrePost {
		q.Set("includePrePost", strconv.FormatBool(true))
	}

	var result ChartResponse
	if err := c.get(ctx, "chart", chartPath+url.PathEscape(req.Symbol), q, &result); err != nil {
		return nil, err
	}

	if result.Chart.Error != nil {
		return nil, core.WrapError(core.ErrNoData,
			fmt.Errorf("upstream error: %s", result.Chart.Error.Description))
	}

	return &result, nil
}

// Search looks up candidate symbols for free-text keywords.
func (c *Client) Search(ctx context.Context, keywords string) ([]SearchQuote, error) {
	q := url.Values{}
	q.Set("q", keywords)
	q.Set("quotesCount", strconv.Itoa(searchCount))
	q.Set("newsCount", "0")

	var result SearchResponse
	if err := c.get(ctx, "search", searchPath, q, &result); err != nil {
		return nil, err
	}
	return result.Quotes, nil
}

func (c *Client) get(ctx context.Context, call, path string, query url.Values, out any) (err error) {
	start := time.Now()
	defer func() {
		outcome := "ok"
		if err != nil {
			outcome = "error"
		}
		if c.observer != nil {
			c.observer.ObserveUpstream(call, outcome, time.Since(start).Seconds())
		}
	}()

	target := c.route.Resolve(path, query)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return core.WrapError(core.ErrUpstreamUnavailable, fmt.Errorf("building request: %w", err))
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	c.logger.Debug("upstream request",
		zap.String("call", call),
		zap.String("route", c.route.Name()),
		zap.String("url", target),
	)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return core.WrapError(core.ErrUpstreamUnavailable, fmt.Errorf("fetching %s: %w", call, err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return core.WrapError(core.ErrUpstreamUnavailable, fmt.Errorf("unexpected status: %d", resp.StatusCode))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return core.WrapError(core.ErrUpstreamUnavailable, fmt.Errorf("decoding response: %w", err))
	}
	return nil
}
