// internal/api/server.go
package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	handler "github.com/newthinker/stockdeck/internal/api/handler/api"
	"github.com/newthinker/stockdeck/internal/api/middleware"
	"github.com/newthinker/stockdeck/internal/app"
	"github.com/newthinker/stockdeck/internal/metrics"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Server represents the HTTP server for the dashboard API
type Server struct {
	httpServer *http.Server
	logger     *zap.Logger
	mux        *http.ServeMux
}

// Config holds server configuration
type Config struct {
	Host           string
	Port           int
	AllowedOrigins []string
	MetricsPath    string        // empty disables the endpoint
	StreamInterval time.Duration // refresh interval for websocket quote streams
}

// Dependencies holds the services the handlers call into
type Dependencies struct {
	App     *app.App
	Metrics *metrics.Registry // optional
}

// NewServer creates a new HTTP server
func NewServer(cfg Config, deps Dependencies, logger *zap.Logger) (*Server, error) {
	if deps.App == nil {
		return nil, fmt.Errorf("app is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.StreamInterval <= 0 {
		cfg.StreamInterval = time.Minute
	}

	mux := http.NewServeMux()

	s := &Server{
		logger: logger,
		mux:    mux,
	}

	s.setupRoutes(cfg, deps)

	var h http.Handler = mux
	h = middleware.CORS(cfg.AllowedOrigins)(h)
	if deps.Metrics != nil {
		h = metrics.HTTPMiddleware(deps.Metrics)(h)
	}
	h = metrics.LoggingMiddleware(logger)(h)
	h = middleware.Recover(logger)(h)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      h,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second, // sequential multi-symbol fetches pause between calls
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes(cfg Config, deps Dependencies) {
	quotes := handler.NewQuotesHandler(deps.App)
	search := handler.NewSearchHandler(deps.App)
	markets := handler.NewMarketsHandler(deps.App)
	watchlist := handler.NewWatchlistHandler(deps.App)

	var streamObserver handler.StreamObserver
	if deps.Metrics != nil {
		streamObserver = deps.Metrics
	}
	stream := handler.NewStreamHandler(deps.App, cfg.StreamInterval,
		middleware.OriginAllowed(cfg.AllowedOrigins), streamObserver, s.logger)

	s.mux.HandleFunc("GET /api/health", s.handleHealth)

	// Quotes and charts
	s.mux.HandleFunc("GET /api/v1/quotes", quotes.List)
	s.mux.HandleFunc("GET /api/v1/quotes/{symbol}", func(w http.ResponseWriter, r *http.Request) {
		quotes.Get(w, r, r.PathValue("symbol"))
	})
	s.mux.HandleFunc("GET /api/v1/intraday/ranges", quotes.Ranges)
	s.mux.HandleFunc("GET /api/v1/intraday/{symbol}", func(w http.ResponseWriter, r *http.Request) {
		quotes.Intraday(w, r, r.PathValue("symbol"))
	})
	s.mux.HandleFunc("GET /api/v1/stream/{symbol}", func(w http.ResponseWriter, r *http.Request) {
		stream.Stream(w, r, r.PathValue("symbol"))
	})

	// Search
	s.mux.HandleFunc("GET /api/v1/search", search.Search)

	// Markets
	s.mux.HandleFunc("GET /api/v1/boards", markets.Boards)
	s.mux.HandleFunc("GET /api/v1/boards/{name}", func(w http.ResponseWriter, r *http.Request) {
		markets.Board(w, r, r.PathValue("name"))
	})
	s.mux.HandleFunc("GET /api/v1/indices/{region}", func(w http.ResponseWriter, r *http.Request) {
		markets.Indices(w, r, r.PathValue("region"))
	})
	s.mux.HandleFunc("GET /api/v1/trending", markets.Trending)

	// Watchlist
	s.mux.HandleFunc("GET /api/v1/watchlist", watchlist.List)
	s.mux.HandleFunc("POST /api/v1/watchlist", watchlist.Add)
	s.mux.HandleFunc("DELETE /api/v1/watchlist", watchlist.Clear)
	s.mux.HandleFunc("GET /api/v1/watchlist/snapshot", watchlist.Snapshot)
	s.mux.HandleFunc("GET /api/v1/watchlist/{symbol}", func(w http.ResponseWriter, r *http.Request) {
		watchlist.Contains(w, r, r.PathValue("symbol"))
	})
	s.mux.HandleFunc("DELETE /api/v1/watchlist/{symbol}", func(w http.ResponseWriter, r *http.Request) {
		watchlist.Remove(w, r, r.PathValue("symbol"))
	})

	if deps.Metrics != nil && cfg.MetricsPath != "" {
		s.mux.Handle("GET "+cfg.MetricsPath, promhttp.HandlerFor(deps.Metrics.Registry, promhttp.HandlerOpts{}))
	}
}

// Handler returns the root handler with all middleware applied
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.logger.Info("starting HTTP server", zap.String("addr", s.httpServer.Addr))
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down HTTP server")
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
