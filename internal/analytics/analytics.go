// Package analytics computes season-over-season player comparisons and
// multi-season club trends from persisted rows. It is read-only: it never
// writes and never blocks on crawl or import activity.
package analytics

import (
	"context"
	"fmt"
	"sort"

	"github.com/footscout/footscout-data/internal/model"
	"github.com/footscout/footscout-data/internal/store"
)

// Engine answers analytical queries against committed data.
type Engine struct {
	q store.Querier
}

// New creates an Engine on any query handle (pool in production).
func New(q store.Querier) *Engine {
	return &Engine{q: q}
}

// CompareSeasons gathers all season rows for a player and computes deltas
// between each adjacent pair, oldest first.
func (e *Engine) CompareSeasons(ctx context.Context, playerRefID string) ([]model.PlayerSeasonComparison, error) {
	rows, err := store.ListPlayerSeasons(ctx, e.q, playerRefID)
	if err != nil {
		return nil, fmt.Errorf("load player seasons: %w", err)
	}
	return BuildComparisons(rows)
}

// BuildComparisons sorts season rows chronologically and produces one
// comparison per adjacent season pair. Percentage changes against a zero
// previous value come back nil rather than faulting.
func BuildComparisons(rows []model.Player) ([]model.PlayerSeasonComparison, error) {
	if len(rows) < 2 {
		return nil, nil
	}

	keyed := make([]struct {
		key int
		row model.Player
	}, 0, len(rows))
	for _, r := range rows {
		key, err := model.SeasonKey(r.Season)
		if err != nil {
			return nil, err
		}
		keyed = append(keyed, struct {
			key int
			row model.Player
		}{key, r})
	}
	sort.SliceStable(keyed, func(i, j int) bool { return keyed[i].key < keyed[j].key })

	comparisons := make([]model.PlayerSeasonComparison, 0, len(keyed)-1)
	for i := 1; i < len(keyed); i++ {
		prev, cur := keyed[i-1].row, keyed[i].row

		c := model.PlayerSeasonComparison{
			PlayerRefID:        cur.PlayerRefID,
			Name:               cur.Name,
			PreviousSeason:     prev.Season,
			CurrentSeason:      cur.Season,
			GoalsDelta:         cur.Goals - prev.Goals,
			AssistsDelta:       cur.Assists - prev.Assists,
			AppearancesDelta:   cur.MatchesPlayed - prev.MatchesPlayed,
			MinutesDelta:       cur.Minutes - prev.Minutes,
			GoalsPctChange:     pctChange(prev.Goals, cur.Goals),
			AssistsPctChange:   pctChange(prev.Assists, cur.Assists),
			MinutesPctChange:   pctChange(prev.Minutes, cur.Minutes),
			GoalsPer90Previous: per90(prev.Goals, prev.Minutes),
			GoalsPer90Current:  per90(cur.Goals, cur.Minutes),
		}
		c.GoalsPer90Delta = c.GoalsPer90Current - c.GoalsPer90Previous
		c.PerformanceTrend = classifyTrend(c.GoalsDelta + c.AssistsDelta)

		comparisons = append(comparisons, c)
	}
	return comparisons, nil
}

// ClubTrend aggregates a club's per-season totals, most recent season
// first, returning at most `seasons` entries. A club with fewer distinct
// seasons yields all of them.
func (e *Engine) ClubTrend(ctx context.Context, clubID, seasons int) ([]model.ClubTrend, error) {
	totals, err := store.ClubSeasonTotals(ctx, e.q, clubID)
	if err != nil {
		return nil, fmt.Errorf("load club season totals: %w", err)
	}
	return BuildClubTrend(clubID, totals, seasons)
}

// BuildClubTrend orders season totals chronologically descending and
// truncates to the requested count.
func BuildClubTrend(clubID int, totals []store.SeasonTotals, seasons int) ([]model.ClubTrend, error) {
	if seasons <= 0 {
		seasons = 5
	}

	keyed := make([]struct {
		key int
		t   store.SeasonTotals
	}, 0, len(totals))
	for _, t := range totals {
		key, err := model.SeasonKey(t.Season)
		if err != nil {
			return nil, err
		}
		keyed = append(keyed, struct {
			key int
			t   store.SeasonTotals
		}{key, t})
	}
	sort.SliceStable(keyed, func(i, j int) bool { return keyed[i].key > keyed[j].key })

	if len(keyed) > seasons {
		keyed = keyed[:seasons]
	}

	trend := make([]model.ClubTrend, 0, len(keyed))
	for _, k := range keyed {
		trend = append(trend, model.ClubTrend{
			ClubID:       clubID,
			Season:       k.t.Season,
			TotalGoals:   k.t.Goals,
			GoalsAgainst: k.t.GoalsAgainst,
			TotalAssists: k.t.Assists,
			PlayerCount:  k.t.PlayerCount,
		})
	}
	return trend, nil
}

// pctChange returns (current-previous)/previous*100, or nil when the
// previous value was zero — undefined, never a divide-by-zero fault.
func pctChange(previous, current int) *float64 {
	if previous == 0 {
		return nil
	}
	v := float64(current-previous) / float64(previous) * 100
	return &v
}

// per90 normalizes a count to a per-90-minutes rate.
func per90(count, minutes int) float64 {
	if minutes == 0 {
		return 0
	}
	return float64(count) / float64(minutes) * 90
}

// classifyTrend is the three-way sign classification of the combined
// goals+assists delta.
func classifyTrend(combinedDelta int) string {
	switch {
	case combinedDelta > 0:
		return model.TrendImproving
	case combinedDelta < 0:
		return model.TrendDeclining
	default:
		return model.TrendStable
	}
}
