// Command api is the Footscout Data API server.
//
// Usage:
//
//	footscout-api
//	API_PORT=8080 footscout-api

// @title Footscout Data API
// @version 1.0.0
// @description Football statistics API serving league, club, and player data harvested from public stat tables, plus season-over-season analytics and ad-hoc crawl endpoints.
// @host localhost:8000
// @BasePath /api
// @schemes http https
// @contact.name Footscout
// @license.name MIT
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"

	"github.com/footscout/footscout-data/internal/api"
	"github.com/footscout/footscout-data/internal/cache"
	"github.com/footscout/footscout-data/internal/config"
	"github.com/footscout/footscout-data/internal/crawl"
	"github.com/footscout/footscout-data/internal/db"
	"github.com/footscout/footscout-data/internal/schedule"
	"github.com/footscout/footscout-data/internal/scrape"

	_ "github.com/footscout/footscout-data/docs" // swagger docs
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	// Load .env if present
	_ = godotenv.Load(".env")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Context with signal handling
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	// Connect to database
	logger.Info("Connecting to database...")
	pool, err := db.New(ctx, cfg)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()
	logger.Info("Database connected",
		"min_conns", cfg.DBPoolMinConns,
		"max_conns", cfg.DBPoolMaxConns)

	// Initialize cache
	appCache := cache.New(cfg.CacheEnabled)
	logger.Info("Cache initialized", "enabled", cfg.CacheEnabled)

	// Start background tickers (reachability sweep, orphan audit)
	if cfg.CrawlSweepInterval > 0 {
		client := scrape.NewClient(cfg, logger)
		orch := crawl.NewOrchestrator(client, cfg.CrawlWorkers, logger)
		schedCfg := schedule.DefaultConfig()
		schedCfg.SweepInterval = cfg.CrawlSweepInterval
		go schedule.Start(ctx, pool.Pool, orch, schedCfg, logger)
	} else {
		logger.Info("Background sweep disabled (CRAWL_SWEEP_INTERVAL_MINUTES=0)")
	}

	// Create router
	router := api.NewRouter(pool.Pool, appCache, cfg)

	// Create HTTP server
	addr := fmt.Sprintf("%s:%d", cfg.APIHost, cfg.APIPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in background
	go func() {
		logger.Info("Starting Footscout Data API",
			"addr", addr,
			"environment", cfg.Environment,
			"docs", fmt.Sprintf("http://localhost:%d/docs/", cfg.APIPort))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt
	<-ctx.Done()
	logger.Info("Shutting down...")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Shutdown error", "error", err)
	}
	logger.Info("Server stopped")
}
