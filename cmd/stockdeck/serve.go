package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/newthinker/stockdeck/internal/api"
	"github.com/newthinker/stockdeck/internal/metrics"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the dashboard API server",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	reg := metrics.NewRegistry()

	e, err := setup(reg)
	if err != nil {
		return err
	}
	defer e.Close()

	cfg, log := e.cfg, e.log

	// Seed the size gauge before the first mutation
	reg.ObserveWatchlistSize(len(e.app.Watchlist(cmd.Context())))

	log.Info("starting stockdeck server",
		zap.String("host", cfg.Server.Host),
		zap.Int("port", cfg.Server.Port),
		zap.String("upstream_mode", cfg.Upstream.Mode),
		zap.String("watchlist_backend", cfg.Watchlist.Backend),
	)

	deps := api.Dependencies{App: e.app}
	metricsPath := ""
	if cfg.Metrics.Enabled {
		deps.Metrics = reg
		metricsPath = cfg.Metrics.Path
	}

	server, err := api.NewServer(api.Config{
		Host:           cfg.Server.Host,
		Port:           cfg.Server.Port,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		MetricsPath:    metricsPath,
		StreamInterval: cfg.Polling.Detail,
	}, deps, log)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case err := <-errCh:
		if err != nil {
			return err
		}
		return nil
	}

	log.Info("shutting down stockdeck server")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	return server.Shutdown(ctx)
}
