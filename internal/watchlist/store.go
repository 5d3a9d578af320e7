// Package watchlist keeps the user's ordered, deduplicated set of symbols in
// one durable key-value slot.
package watchlist

import (
	"context"
	"encoding/json"
	"errors"
	"slices"
	"strings"
	"sync"

	"github.com/newthinker/stockdeck/internal/core"
	"github.com/newthinker/stockdeck/internal/storage/kv"
	"go.uber.org/zap"
)

// DefaultKey is the slot the watchlist is persisted under
const DefaultKey = "stockTracker_watchlist"

// SizeObserver is notified of the list length after each successful write
type SizeObserver interface {
	ObserveWatchlistSize(n int)
}

// Store is a watchlist over a kv.Store. Storage faults never reach callers:
// reads degrade to an empty list and writes report false.
type Store struct {
	kv       kv.Store
	key      string
	logger   *zap.Logger
	observer SizeObserver

	mu sync.Mutex
}

// Option configures a Store
type Option func(*Store)

// WithKey overrides the slot key
func WithKey(key string) Option {
	return func(s *Store) {
		if key != "" {
			s.key = key
		}
	}
}

// WithLogger sets the logger
func WithLogger(logger *zap.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithObserver sets the size observer
func WithObserver(o SizeObserver) Option {
	return func(s *Store) {
		s.observer = o
	}
}

// New creates a watchlist over store
func New(store kv.Store, opts ...Option) *Store {
	s := &Store{
		kv:     store,
		key:    DefaultKey,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Key returns the slot key in use
func (s *Store) Key() string {
	return s.key
}

// Normalize trims and upper-cases a symbol
func Normalize(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

// List returns the symbols in insertion order
func (s *Store) List(ctx context.Context) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

// Contains reports whether symbol is on the list
func (s *Store) Contains(ctx context.Context, symbol string) bool {
	symbol = Normalize(symbol)
	if symbol == "" {
		return false
	}
	return slices.Contains(s.List(ctx), symbol)
}

// Add appends symbol. It returns false when the symbol is already present,
// empty, or could not be persisted.
func (s *Store) Add(ctx context.Context, symbol string) bool {
	symbol = Normalize(symbol)
	if symbol == "" {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	symbols := s.load(ctx)
	if slices.Contains(symbols, symbol) {
		return false
	}
	return s.save(ctx, append(symbols, symbol))
}

// Remove drops symbol and persists the filtered list even when nothing was
// removed. It returns false only when the write fails.
func (s *Store) Remove(ctx context.Context, symbol string) bool {
	symbol = Normalize(symbol)

	s.mu.Lock()
	defer s.mu.Unlock()

	symbols := slices.DeleteFunc(s.load(ctx), func(v string) bool {
		return v == symbol
	})
	return s.save(ctx, symbols)
}

// Clear deletes the slot
func (s *Store) Clear(ctx context.Context) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.kv.Delete(ctx, s.key); err != nil {
		s.logger.Warn("failed to clear watchlist",
			zap.String("key", s.key),
			zap.Error(core.WrapError(core.ErrStorageUnavailable, err)),
		)
		return false
	}
	s.observe(0)
	return true
}

// Replace overwrites the list, dropping blanks and duplicates
func (s *Store) Replace(ctx context.Context, symbols []string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(ctx, dedupe(symbols))
}

func (s *Store) load(ctx context.Context) []string {
	data, err := s.kv.Read(ctx, s.key)
	if errors.Is(err, core.ErrKeyNotFound) {
		return []string{}
	}
	if err != nil {
		s.logger.Warn("failed to read watchlist",
			zap.String("key", s.key),
			zap.Error(core.WrapError(core.ErrStorageUnavailable, err)),
		)
		return []string{}
	}

	var symbols []string
	if err := json.Unmarshal(data, &symbols); err != nil {
		s.logger.Warn("discarding corrupt watchlist",
			zap.String("key", s.key),
			zap.Error(err),
		)
		return []string{}
	}
	return dedupe(symbols)
}

func (s *Store) save(ctx context.Context, symbols []string) bool {
	data, err := json.Marshal(symbols)
	if err != nil {
		s.logger.Error("failed to encode watchlist", zap.Error(err))
		return false
	}
	if err := s.kv.Write(ctx, s.key, data); err != nil {
		s.logger.Warn("failed to persist watchlist",
			zap.String("key", s.key),
			zap.Error(core.WrapError(core.ErrStorageUnavailable, err)),
		)
		return false
	}
	s.observe(len(symbols))
	return true
}

func (s *Store) observe(n int) {
	if s.observer != nil {
		s.observer.ObserveWatchlistSize(n)
	}
}

func dedupe(symbols []string) []string {
	out := make([]string, 0, len(symbols))
	seen := make(map[string]struct{}, len(symbols))
	for _, v := range symbols {
		v = Normalize(v)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
