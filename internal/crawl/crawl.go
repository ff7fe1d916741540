// Package crawl discovers season pages per league and assembles complete
// team-data bundles from individual pages.
//
// Network failure is always isolated to the URL it happened on: a crawl of
// N season URLs returns N entries with per-URL status, never a batch error.
package crawl

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/footscout/footscout-data/internal/config"
	"github.com/footscout/footscout-data/internal/model"
	"github.com/footscout/footscout-data/internal/scrape"
)

// Probe outcome labels recorded on URLInformation.Status.
const (
	StatusReachable   = "reachable"
	StatusUnreachable = "unreachable"
	StatusRejected    = "rejected"
)

// Orchestrator probes league season URLs across a fixed-size worker pool.
type Orchestrator struct {
	client  *scrape.Client
	workers int
	logger  *slog.Logger
}

// NewOrchestrator creates an orchestrator; workers below 1 are clamped.
func NewOrchestrator(client *scrape.Client, workers int, logger *slog.Logger) *Orchestrator {
	if workers < 1 {
		workers = 1
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Orchestrator{client: client, workers: workers, logger: logger}
}

// IsServerAlive issues a single lightweight probe against url.
func (o *Orchestrator) IsServerAlive(ctx context.Context, url string) bool {
	return o.client.IsAlive(ctx, url)
}

// CrawlLeague probes every known season URL of a league and records the
// outcome per URL. Results come back in registry order regardless of probe
// completion order.
func (o *Orchestrator) CrawlLeague(ctx context.Context, def config.LeagueDefinition) []model.URLInformation {
	results := make([]model.URLInformation, len(def.Seasons))

	type job struct {
		idx    int
		season string
	}
	jobs := make(chan job, len(def.Seasons))
	for i, season := range def.Seasons {
		jobs <- job{idx: i, season: season}
	}
	close(jobs)

	workers := o.workers
	if workers > len(def.Seasons) {
		workers = len(def.Seasons)
	}

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				url := fmt.Sprintf(def.SeasonURLPattern, j.season, j.season)
				info := model.URLInformation{
					Label:  fmt.Sprintf("%s %s", def.Name, j.season),
					URL:    url,
					League: def.Name,
					Season: j.season,
				}

				code, err := o.client.Probe(ctx, url)
				info.StatusCode = code
				switch {
				case err != nil:
					info.Status = StatusUnreachable
					o.logger.Warn("Season probe failed", "league", def.ID, "season", j.season, "error", err)
				case code >= 200 && code < 400:
					info.Status = StatusReachable
				default:
					info.Status = StatusRejected
				}

				results[j.idx] = info
			}
		}()
	}
	wg.Wait()

	return results
}
