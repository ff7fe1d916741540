package crawl

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/footscout/footscout-data/internal/config"
	"github.com/footscout/footscout-data/internal/model"
	"github.com/footscout/footscout-data/internal/scrape"
)

// Aggregator runs every table extraction against one team page and bundles
// the results. The players table is the required minimum; any other table
// missing from the page yields an empty slice for that schema.
type Aggregator struct {
	client  *scrape.Client
	workers int
	logger  *slog.Logger
}

// NewAggregator creates an aggregator; workers bounds AggregateAll fan-out.
func NewAggregator(client *scrape.Client, workers int, logger *slog.Logger) *Aggregator {
	if workers < 1 {
		workers = 1
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Aggregator{client: client, workers: workers, logger: logger}
}

// Client exposes the underlying fetch client for callers that need the
// raw page alongside the bundle.
func (a *Aggregator) Client() *scrape.Client {
	return a.client
}

// Aggregate fetches one team page and extracts every target schema from it.
func (a *Aggregator) Aggregate(ctx context.Context, url, teamID, season string) (*model.CompleteTeamData, error) {
	html, _, err := a.client.FetchPage(ctx, url)
	if err != nil {
		return nil, err
	}
	return a.AggregateHTML(html, url, teamID, season)
}

// AggregateHTML extracts every target schema from an already-fetched page.
func (a *Aggregator) AggregateHTML(html, url, teamID, season string) (*model.CompleteTeamData, error) {
	players, err := scrape.ExtractPlayers(html, config.SelectorPlayers, season)
	if err != nil {
		return nil, fmt.Errorf("team %s: players table: %w", teamID, err)
	}

	bundle := &model.CompleteTeamData{
		TeamID:      teamID,
		SourceURL:   url,
		Players:     players,
		RawHTML:     html,
		ExtractedAt: time.Now().UTC(),
	}

	bundle.Goalkeeping = optional(a.logger, teamID, "goalkeeping", func() ([]model.Goalkeeping, error) {
		return scrape.ExtractGoalkeeping(html, config.SelectorGoalkeeping, season)
	})
	bundle.Shooting = optional(a.logger, teamID, "shooting", func() ([]model.Shooting, error) {
		return scrape.ExtractShooting(html, config.SelectorShooting, season)
	})
	bundle.MatchLogs = optional(a.logger, teamID, "match logs", func() ([]model.MatchLog, error) {
		return scrape.ExtractMatchLogs(html, config.SelectorMatchLogs, season)
	})
	bundle.SquadStandard = optional(a.logger, teamID, "squad standard", func() ([]model.SquadStandard, error) {
		return scrape.ExtractSquadStandard(html, config.SelectorSquadStandard, season)
	})

	return bundle, nil
}

// optional runs one extraction and converts a missing table into an empty
// result instead of failing the aggregation.
func optional[T any](logger *slog.Logger, teamID, name string, fn func() ([]T, error)) []T {
	rows, err := fn()
	if err != nil {
		var perr *scrape.ParseError
		if errors.As(err, &perr) {
			logger.Debug("Optional table absent", "team", teamID, "table", name)
			return nil
		}
		logger.Warn("Optional table extraction failed", "team", teamID, "table", name, "error", err)
		return nil
	}
	return rows
}

// TeamPage identifies one team page to aggregate.
type TeamPage struct {
	URL    string
	TeamID string
	Season string
}

// TeamResult pairs a page with its bundle or error.
type TeamResult struct {
	Page   TeamPage
	Bundle *model.CompleteTeamData
	Err    error
}

// AggregateAll aggregates many team pages with bounded parallelism.
// Results are returned in input order, not completion order, so downstream
// processing stays deterministic. Per-page failures land in the result
// entry; the batch itself never fails.
func (a *Aggregator) AggregateAll(ctx context.Context, pages []TeamPage) []TeamResult {
	results := make([]TeamResult, len(pages))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(a.workers)
	for i, page := range pages {
		i, page := i, page
		g.Go(func() error {
			bundle, err := a.Aggregate(ctx, page.URL, page.TeamID, page.Season)
			results[i] = TeamResult{Page: page, Bundle: bundle, Err: err}
			return nil
		})
	}
	_ = g.Wait()

	return results
}
