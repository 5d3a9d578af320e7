package main

import (
	"fmt"
	"net/http"

	"github.com/newthinker/stockdeck/internal/app"
	"github.com/newthinker/stockdeck/internal/config"
	"github.com/newthinker/stockdeck/internal/logger"
	"github.com/newthinker/stockdeck/internal/metrics"
	"github.com/newthinker/stockdeck/internal/search"
	"github.com/newthinker/stockdeck/internal/storage/kv"
	"github.com/newthinker/stockdeck/internal/upstream"
	"github.com/newthinker/stockdeck/internal/watchlist"
	"go.uber.org/zap"
)

// env holds everything a command needs. Close releases the store.
type env struct {
	cfg   *config.Config
	log   *zap.Logger
	app   *app.App
	store kv.Store
}

func (e *env) Close() {
	if err := e.store.Close(); err != nil {
		e.log.Warn("closing watchlist store", zap.Error(err))
	}
	e.log.Sync()
}

func loadConfig() (*config.Config, error) {
	var cfg *config.Config
	if cfgFile != "" {
		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
	} else {
		cfg = config.Defaults()
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// setup loads config and wires the store, upstream client and app. reg may
// be nil when metrics are not collected.
func setup(reg *metrics.Registry) (*env, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	log, err := logger.ForMode(cfg.Server.Mode, debug)
	if err != nil {
		return nil, fmt.Errorf("creating logger: %w", err)
	}
	if cfgFile == "" {
		log.Debug("no config file specified, using defaults")
	}

	store, err := kv.Open(kv.Config{
		Backend: cfg.Watchlist.Backend,
		Path:    cfg.Watchlist.Path,
		DSN:     cfg.Watchlist.DSN,
		S3: kv.S3Config{
			Bucket:    cfg.Watchlist.S3.Bucket,
			Endpoint:  cfg.Watchlist.S3.Endpoint,
			Region:    cfg.Watchlist.S3.Region,
			AccessKey: cfg.Watchlist.S3.AccessKey,
			SecretKey: cfg.Watchlist.S3.SecretKey,
			Prefix:    cfg.Watchlist.S3.Prefix,
		},
	})
	if err != nil {
		// Quotes and search do not depend on the watchlist; keep serving
		// with a list that lives only as long as the process.
		log.Warn("watchlist storage unavailable, using in-memory watchlist",
			zap.String("backend", cfg.Watchlist.Backend),
			zap.Error(err),
		)
		store = kv.NewMemory()
	}

	route, err := upstream.NewRoute(cfg.Upstream.Mode, cfg.Upstream.BaseURL, cfg.Upstream.RelayURL)
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("creating upstream route: %w", err)
	}

	wlOpts := []watchlist.Option{
		watchlist.WithKey(cfg.Watchlist.Key),
		watchlist.WithLogger(log),
	}
	upOpts := []upstream.Option{
		upstream.WithHTTPClient(&http.Client{Timeout: cfg.Upstream.Timeout}),
		upstream.WithRoute(route),
		upstream.WithUserAgent(cfg.Upstream.UserAgent),
		upstream.WithLogger(log),
	}
	if reg != nil {
		wlOpts = append(wlOpts, watchlist.WithObserver(reg))
		upOpts = append(upOpts, upstream.WithObserver(reg))
	}

	a := app.New(app.Config{
		RequestDelay: cfg.Upstream.RequestDelay,
		IndexDelay:   cfg.Upstream.IndexDelay,
		Search: search.Options{
			Threshold:      cfg.Search.Threshold,
			MinMatchLength: cfg.Search.MinMatchLength,
			Limit:          cfg.Search.Limit,
		},
	}, upstream.New(upOpts...), watchlist.New(store, wlOpts...), log)
	if reg != nil {
		a.SetCycleObserver(reg)
	}

	log.Debug("upstream route", zap.String("route", route.Name()))

	return &env{cfg: cfg, log: log, app: a, store: store}, nil
}
