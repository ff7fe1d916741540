package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/footscout/footscout-data/internal/cache"
	"github.com/footscout/footscout-data/internal/config"
)

func testHandler(t *testing.T) *Handler {
	t.Helper()
	cfg := &config.Config{
		UserAgent:         "footscout-test",
		FetchTimeout:      5 * time.Second,
		ProbeTimeout:      time.Second,
		CrawlWorkers:      2,
		AggregateWorkers:  2,
		RequestsPerMinute: 60000,
	}
	// A nil pool is fine here: these tests only exercise paths that fail
	// before any query runs.
	return New(nil, cache.New(false), cfg)
}

func errorCode(t *testing.T, body []byte) string {
	t.Helper()
	var resp struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(body, &resp))
	return resp.Error.Code
}

func TestImportTeamDataRequiresClubAndLeague(t *testing.T) {
	h := testHandler(t)

	r := httptest.NewRequest(http.MethodPost, "/api/simplecrawler/import?url=http://example.test&id=arsenal", nil)
	w := httptest.NewRecorder()
	h.ImportTeamData(w, r)

	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "MISSING_PARAMS", errorCode(t, w.Body.Bytes()))
}

func TestImportTeamDataRejectsBadSeason(t *testing.T) {
	h := testHandler(t)

	r := httptest.NewRequest(http.MethodPost,
		"/api/simplecrawler/import?url=http://example.test&id=arsenal&club=Arsenal&league=Premier+League&season=2023/2024", nil)
	w := httptest.NewRecorder()
	h.ImportTeamData(w, r)

	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "INVALID_SEASON", errorCode(t, w.Body.Bytes()))
}

func TestImportTeamDataRequiresURLAndID(t *testing.T) {
	h := testHandler(t)

	r := httptest.NewRequest(http.MethodPost,
		"/api/simplecrawler/import?club=Arsenal&league=Premier+League", nil)
	w := httptest.NewRecorder()
	h.ImportTeamData(w, r)

	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "MISSING_PARAMS", errorCode(t, w.Body.Bytes()))
}
