// Package schedule runs periodic background tasks as Go tickers. All
// scheduled work is driven from Go since the API is already a persistent,
// long-running service.
package schedule

import (
	"context"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/footscout/footscout-data/internal/config"
	"github.com/footscout/footscout-data/internal/crawl"
)

// Config controls background task intervals. Zero duration disables a task.
type Config struct {
	SweepInterval time.Duration // Reachability sweep over all registered leagues
	AuditInterval time.Duration // Orphan stat-row audit
}

// DefaultConfig returns sensible production defaults.
func DefaultConfig() Config {
	return Config{
		SweepInterval: 6 * time.Hour,
		AuditInterval: 1 * time.Hour,
	}
}

// Start launches all configured tickers. Blocks until ctx is cancelled.
// Intended to be called with `go`.
func Start(ctx context.Context, pool *pgxpool.Pool, orch *crawl.Orchestrator, cfg Config, logger *slog.Logger) {
	logger.Info("Schedule tickers started",
		"sweep", cfg.SweepInterval,
		"audit", cfg.AuditInterval)

	tickers := make([]*time.Ticker, 0, 2)
	defer func() {
		for _, t := range tickers {
			t.Stop()
		}
	}()

	// Sweep: probe every registered league URL so dead seasons surface in
	// the logs before a crawl job trips over them.
	if cfg.SweepInterval > 0 {
		t := time.NewTicker(cfg.SweepInterval)
		tickers = append(tickers, t)
		go runLoop(ctx, t.C, func() { sweep(ctx, orch, logger) })
	}

	// Audit: count stat rows that never linked to a player row.
	if cfg.AuditInterval > 0 {
		t := time.NewTicker(cfg.AuditInterval)
		tickers = append(tickers, t)
		go runLoop(ctx, t.C, func() { auditOrphans(ctx, pool, logger) })
	}

	<-ctx.Done()
	logger.Info("Schedule tickers stopped")
}

func runLoop(ctx context.Context, ch <-chan time.Time, fn func()) {
	for {
		select {
		case <-ch:
			fn()
		case <-ctx.Done():
			return
		}
	}
}

// --------------------------------------------------------------------------
// Task implementations
// --------------------------------------------------------------------------

// sweep probes every season URL of every registered league and logs the
// unreachable ones.
func sweep(ctx context.Context, orch *crawl.Orchestrator, logger *slog.Logger) {
	for id, def := range config.LeagueRegistry {
		results := orch.CrawlLeague(ctx, def)
		dead := 0
		for _, info := range results {
			if info.Status != crawl.StatusReachable {
				dead++
				logger.Warn("Sweep: season URL unreachable",
					"league", id, "season", info.Season, "url", info.URL)
			}
		}
		logger.Info("Sweep: league probed",
			"league", id, "urls", len(results), "unreachable", dead)
	}
}

// auditOrphans reports how many goalkeeping and shooting rows are still
// unlinked. Orphans are retained on purpose; a growing count usually means
// the source changed its player reference format.
func auditOrphans(ctx context.Context, pool *pgxpool.Pool, logger *slog.Logger) {
	var gk, sh int
	err := pool.QueryRow(ctx, `
		SELECT
			(SELECT COUNT(*) FROM goalkeeping WHERE player_id IS NULL),
			(SELECT COUNT(*) FROM shooting WHERE player_id IS NULL)`).Scan(&gk, &sh)
	if err != nil {
		logger.Warn("Audit: orphan count query failed", "error", err)
		return
	}
	if gk > 0 || sh > 0 {
		logger.Info("Audit: unlinked stat rows present",
			"goalkeeping", gk, "shooting", sh)
	}
}
