package crawl

import (
	"context"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/footscout/footscout-data/internal/config"
	"github.com/footscout/footscout-data/internal/scrape"
)

func testClient(t *testing.T) *scrape.Client {
	t.Helper()
	cfg := &config.Config{
		UserAgent:         "footscout-test",
		FetchTimeout:      5 * time.Second,
		ProbeTimeout:      time.Second,
		RequestsPerMinute: 60000, // effectively unlimited in tests
	}
	return scrape.NewClient(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// deadURL returns a URL nothing listens on.
func deadURL(t *testing.T) string {
	t.Helper()
	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := l.Addr().String()
	require.NoError(t, l.Close())
	return "http://" + addr
}

func TestCrawlLeaguePartialFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Path, "2019-2020") {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	def := config.LeagueDefinition{
		ID:               "test-league",
		Name:             "Test League",
		SeasonURLPattern: srv.URL + "/comps/%s/%s-stats",
		Seasons: []string{
			"2019-2020", "2020-2021", "2021-2022", "2022-2023", "2023-2024",
		},
	}

	orch := NewOrchestrator(testClient(t), 3, slog.New(slog.NewTextHandler(io.Discard, nil)))
	results := orch.CrawlLeague(context.Background(), def)

	// One URL per season, in registry order, regardless of which probe
	// finished first.
	require.Len(t, results, 5)
	for i, season := range def.Seasons {
		require.Equal(t, season, results[i].Season)
		require.Contains(t, results[i].URL, season)
	}

	require.Equal(t, StatusRejected, results[0].Status)
	require.Equal(t, http.StatusNotFound, results[0].StatusCode)
	for _, info := range results[1:] {
		require.Equal(t, StatusReachable, info.Status)
	}
}

func TestCrawlLeagueUnreachableHost(t *testing.T) {
	def := config.LeagueDefinition{
		ID:               "test-league",
		Name:             "Test League",
		SeasonURLPattern: deadURL(t) + "/comps/%s/%s-stats",
		Seasons:          []string{"2022-2023", "2023-2024"},
	}

	orch := NewOrchestrator(testClient(t), 2, slog.New(slog.NewTextHandler(io.Discard, nil)))
	results := orch.CrawlLeague(context.Background(), def)

	require.Len(t, results, 2)
	for _, info := range results {
		require.Equal(t, StatusUnreachable, info.Status)
		require.Zero(t, info.StatusCode)
	}
}

func TestIsServerAlive(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	orch := NewOrchestrator(testClient(t), 1, slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.True(t, orch.IsServerAlive(context.Background(), srv.URL))
	require.False(t, orch.IsServerAlive(context.Background(), deadURL(t)))
}

const teamPageHTML = `
<html><body>
<table id="stats_standard">
<thead><tr><th>Player</th><th>Nation</th><th>Pos</th><th>Age</th><th>MP</th><th>Starts</th><th>Min</th><th>Gls</th><th>Ast</th></tr></thead>
<tbody>
<tr><th data-append-csv="abc"><a href="/en/players/abc/A">Alpha</a></th><td>eng ENG</td><td>FW</td><td>24</td><td>30</td><td>28</td><td>2500</td><td>12</td><td>4</td></tr>
</tbody>
</table>
</body></html>`

func TestAggregateHTMLOptionalTables(t *testing.T) {
	agg := NewAggregator(testClient(t), 2, slog.New(slog.NewTextHandler(io.Discard, nil)))

	bundle, err := agg.AggregateHTML(teamPageHTML, "http://example.com/t", "team-a", "2023-2024")
	require.NoError(t, err)
	require.Equal(t, "team-a", bundle.TeamID)
	require.Len(t, bundle.Players, 1)
	// The page has no keeper/shooting/matchlog tables; their absence is not
	// an error.
	require.Empty(t, bundle.Goalkeeping)
	require.Empty(t, bundle.Shooting)
	require.Empty(t, bundle.MatchLogs)
}

func TestAggregateHTMLRequiresPlayersTable(t *testing.T) {
	agg := NewAggregator(testClient(t), 2, slog.New(slog.NewTextHandler(io.Discard, nil)))

	_, err := agg.AggregateHTML("<html><body></body></html>", "http://example.com/t", "team-a", "2023-2024")
	require.Error(t, err)
}

func TestAggregateAllInputOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Path, "broken") {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(teamPageHTML))
	}))
	defer srv.Close()

	agg := NewAggregator(testClient(t), 2, slog.New(slog.NewTextHandler(io.Discard, nil)))
	pages := []TeamPage{
		{URL: srv.URL + "/a", TeamID: "team-a", Season: "2023-2024"},
		{URL: srv.URL + "/broken", TeamID: "team-b", Season: "2023-2024"},
		{URL: srv.URL + "/c", TeamID: "team-c", Season: "2023-2024"},
	}

	results := agg.AggregateAll(context.Background(), pages)
	require.Len(t, results, 3)
	require.Equal(t, "team-a", results[0].Page.TeamID)
	require.NoError(t, results[0].Err)
	require.NotNil(t, results[0].Bundle)

	// The broken page fails alone; its neighbors still aggregate.
	require.Error(t, results[1].Err)
	require.Nil(t, results[1].Bundle)
	require.Equal(t, "team-c", results[2].Page.TeamID)
	require.NoError(t, results[2].Err)
}
