package api

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/newthinker/stockdeck/internal/api/response"
	"github.com/newthinker/stockdeck/internal/core"
	"github.com/newthinker/stockdeck/internal/poller"
	"go.uber.org/zap"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
)

// StreamApp defines the interface needed from app.App.
type StreamApp interface {
	PollQuote(symbol string, interval time.Duration, sink func(core.Result[core.Quote])) *poller.Task
}

// StreamObserver tracks connected clients
type StreamObserver interface {
	StreamOpened()
	StreamClosed()
}

// StreamMessage is one pushed update. Quote is null when the refresh found
// no data.
type StreamMessage struct {
	Symbol string                  `json:"symbol"`
	Quote  core.Result[core.Quote] `json:"quote"`
	SentAt time.Time               `json:"sent_at"`
}

// StreamHandler pushes a symbol's quote over a websocket every interval
type StreamHandler struct {
	app      StreamApp
	interval time.Duration
	upgrader websocket.Upgrader
	observer StreamObserver
	logger   *zap.Logger
}

// NewStreamHandler creates a stream handler. checkOrigin may be nil to
// accept same-origin requests only.
func NewStreamHandler(app StreamApp, interval time.Duration, checkOrigin func(*http.Request) bool, observer StreamObserver, logger *zap.Logger) *StreamHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StreamHandler{
		app:      app,
		interval: interval,
		upgrader: websocket.Upgrader{
			HandshakeTimeout: 10 * time.Second,
			ReadBufferSize:   1024,
			WriteBufferSize:  1024,
			CheckOrigin:      checkOrigin,
		},
		observer: observer,
		logger:   logger,
	}
}

// Stream handles GET /api/v1/stream/{symbol}. The poll task lives exactly as
// long as the connection.
func (h *StreamHandler) Stream(w http.ResponseWriter, r *http.Request, symbol string) {
	symbol, err := parseSymbol(symbol)
	if err != nil {
		response.Error(w, http.StatusBadRequest, err)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Debug("websocket upgrade failed", zap.String("symbol", symbol), zap.Error(err))
		return
	}
	defer conn.Close()

	if h.observer != nil {
		h.observer.StreamOpened()
		defer h.observer.StreamClosed()
	}

	updates := make(chan core.Result[core.Quote], 1)
	task := h.app.PollQuote(symbol, h.interval, func(res core.Result[core.Quote]) {
		select {
		case updates <- res:
		default:
			// writer is behind; the next cycle carries fresher data
		}
	})
	defer task.Stop()

	// The hijacked connection keeps the server's deadlines; replace them with
	// ping/pong keepalive.
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	ping := time.NewTicker(pingPeriod)
	defer ping.Stop()

	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	h.logger.Debug("stream opened", zap.String("symbol", symbol))
	for {
		select {
		case <-closed:
			h.logger.Debug("stream closed", zap.String("symbol", symbol))
			return
		case <-ping.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		case res := <-updates:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(StreamMessage{Symbol: symbol, Quote: res, SentAt: time.Now().UTC()}); err != nil {
				h.logger.Debug("stream write failed", zap.String("symbol", symbol), zap.Error(err))
				return
			}
		}
	}
}
