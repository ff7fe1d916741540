// Package handler provides HTTP handlers for all API endpoints.
// Read handlers query Postgres directly via pgxpool — no service layer.
// Crawl handlers drive the orchestrator/aggregator and report per-URL
// status instead of failing wholesale.
package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/footscout/footscout-data/internal/analytics"
	"github.com/footscout/footscout-data/internal/api/respond"
	"github.com/footscout/footscout-data/internal/cache"
	"github.com/footscout/footscout-data/internal/config"
	"github.com/footscout/footscout-data/internal/crawl"
	"github.com/footscout/footscout-data/internal/ingest"
	"github.com/footscout/footscout-data/internal/scrape"
)

// Handler holds shared dependencies for all endpoint handlers.
type Handler struct {
	pool     *pgxpool.Pool
	cache    *cache.Cache
	cfg      *config.Config
	engine   *analytics.Engine
	orch     *crawl.Orchestrator
	agg      *crawl.Aggregator
	ingestor *ingest.Ingestor
	logger   *slog.Logger
}

// New creates a Handler with shared dependencies.
func New(pool *pgxpool.Pool, c *cache.Cache, cfg *config.Config) *Handler {
	logger := slog.Default()
	client := scrape.NewClient(cfg, logger)
	return &Handler{
		pool:     pool,
		cache:    c,
		cfg:      cfg,
		engine:   analytics.New(pool),
		orch:     crawl.NewOrchestrator(client, cfg.CrawlWorkers, logger),
		agg:      crawl.NewAggregator(client, cfg.AggregateWorkers, logger),
		ingestor: ingest.New(pool, logger),
		logger:   logger,
	}
}

// Root serves API info at /.
// @Summary API root info
// @Description Returns API name, version, and status.
// @Tags meta
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router / [get]
func (h *Handler) Root(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"name":    "Footscout Data API",
		"version": "1.0.0",
		"status":  "running",
		"docs":    "/docs",
	})
}

// HealthCheck returns basic health status.
// @Summary Health check
// @Description Returns basic health status and timestamp.
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health [get]
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// HealthCheckDB verifies database connectivity.
// @Summary Database health check
// @Description Verifies Postgres connectivity.
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /health/db [get]
func (h *Handler) HealthCheckDB(w http.ResponseWriter, r *http.Request) {
	var n int
	err := h.pool.QueryRow(r.Context(), "health_check").Scan(&n)
	if err != nil {
		respond.WriteJSONObject(w, http.StatusServiceUnavailable, map[string]interface{}{
			"status":    "unhealthy",
			"database":  "disconnected",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
		return
	}
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"database":  "connected",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// HealthCheckCache returns cache statistics.
// @Summary Cache health check
// @Description Returns in-memory cache statistics.
// @Tags health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health/cache [get]
func (h *Handler) HealthCheckCache(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSONObject(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"cache":     h.cache.Stats(),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
