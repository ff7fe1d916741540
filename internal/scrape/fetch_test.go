package scrape

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/footscout/footscout-data/internal/config"
)

func newTestClient(t *testing.T, rpm int) *Client {
	t.Helper()
	cfg := &config.Config{
		UserAgent:         "footscout-test",
		FetchTimeout:      5 * time.Second,
		ProbeTimeout:      time.Second,
		RequestsPerMinute: rpm,
	}
	return NewClient(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestClientUnthrottledWhenRateUnset(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	}))
	defer srv.Close()

	c := newTestClient(t, 0)

	// Repeated fetches must not stall once the initial burst token is
	// spent.
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	for i := 0; i < 3; i++ {
		body, code, err := c.FetchPage(ctx, srv.URL)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, code)
		require.Equal(t, "ok", body)
	}
}

func TestFetchPageNon200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	c := newTestClient(t, 0)

	_, code, err := c.FetchPage(context.Background(), srv.URL)
	require.Error(t, err)
	require.Equal(t, http.StatusForbidden, code)
}
