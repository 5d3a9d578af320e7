package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Registry holds all Prometheus metrics.
type Registry struct {
	*prometheus.Registry

	// HTTP metrics
	httpRequestsTotal    *prometheus.CounterVec
	httpRequestDuration  *prometheus.HistogramVec
	httpRequestsInFlight prometheus.Gauge

	// Dashboard metrics
	upstreamRequests *prometheus.CounterVec
	upstreamDuration *prometheus.HistogramVec
	watchlistSymbols prometheus.Gauge
	pollCycles       *prometheus.CounterVec
	streamClients    prometheus.Gauge
}

// NewRegistry creates a new metrics registry with all metrics registered.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()

	// Register Go runtime metrics
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	r := &Registry{
		Registry: reg,

		httpRequestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status"},
		),

		httpRequestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),

		httpRequestsInFlight: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Name: "http_requests_in_flight",
				Help: "Number of HTTP requests currently in flight",
			},
		),
	}

	reg.MustRegister(r.httpRequestsTotal)
	reg.MustRegister(r.httpRequestDuration)
	reg.MustRegister(r.httpRequestsInFlight)

	// Dashboard metrics
	r.upstreamRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stockdeck_upstream_requests_total",
			Help: "Total number of upstream quote and search calls",
		},
		[]string{"call", "outcome"},
	)
	r.upstreamDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "stockdeck_upstream_duration_seconds",
			Help:    "Upstream call duration in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"call"},
	)
	r.watchlistSymbols = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "stockdeck_watchlist_symbols",
			Help: "Number of symbols in watchlist",
		},
	)
	r.pollCycles = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stockdeck_poll_cycles_total",
			Help: "Total number of delivered poll cycles",
		},
		[]string{"view"},
	)
	r.streamClients = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "stockdeck_stream_subscribers",
			Help: "Number of connected quote stream clients",
		},
	)

	reg.MustRegister(r.upstreamRequests)
	reg.MustRegister(r.upstreamDuration)
	reg.MustRegister(r.watchlistSymbols)
	reg.MustRegister(r.pollCycles)
	reg.MustRegister(r.streamClients)

	return r
}

// RecordRequest records metrics for an HTTP request.
func (r *Registry) RecordRequest(method, path string, status int, duration float64) {
	statusStr := statusToString(status)
	r.httpRequestsTotal.WithLabelValues(method, path, statusStr).Inc()
	r.httpRequestDuration.WithLabelValues(method, path).Observe(duration)
}

// InFlightInc increments in-flight requests.
func (r *Registry) InFlightInc() {
	r.httpRequestsInFlight.Inc()
}

// InFlightDec decrements in-flight requests.
func (r *Registry) InFlightDec() {
	r.httpRequestsInFlight.Dec()
}

// ObserveUpstream records one upstream call.
func (r *Registry) ObserveUpstream(call, outcome string, seconds float64) {
	r.upstreamRequests.WithLabelValues(call, outcome).Inc()
	r.upstreamDuration.WithLabelValues(call).Observe(seconds)
}

// ObserveWatchlistSize sets the watchlist size.
func (r *Registry) ObserveWatchlistSize(size int) {
	r.watchlistSymbols.Set(float64(size))
}

// ObservePollCycle counts a delivered poll cycle for a view.
func (r *Registry) ObservePollCycle(view string) {
	r.pollCycles.WithLabelValues(view).Inc()
}

// StreamOpened increments connected stream clients.
func (r *Registry) StreamOpened() {
	r.streamClients.Inc()
}

// StreamClosed decrements connected stream clients.
func (r *Registry) StreamClosed() {
	r.streamClients.Dec()
}

func statusToString(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	case status >= 200:
		return "2xx"
	default:
		return "1xx"
	}
}
