package scrape

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-resty/resty/v2"
	"golang.org/x/time/rate"

	"github.com/footscout/footscout-data/internal/config"
)

// Client fetches stat pages. Outbound requests share a token-bucket
// limiter so crawls stay within the source server's tolerance.
type Client struct {
	http    *resty.Client
	limiter *rate.Limiter
	probe   time.Duration
	logger  *slog.Logger
}

// NewClient creates a rate-limited fetch client. RequestsPerMinute <= 0
// disables outbound throttling; a literal zero rate would never refill the
// bucket and every call after the first would block.
func NewClient(cfg *config.Config, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	limit := rate.Inf
	if cfg.RequestsPerMinute > 0 {
		limit = rate.Limit(float64(cfg.RequestsPerMinute) / 60.0)
	}
	return &Client{
		http: resty.New().
			SetTimeout(cfg.FetchTimeout).
			SetHeader("User-Agent", cfg.UserAgent),
		limiter: rate.NewLimiter(limit, 1),
		probe:   cfg.ProbeTimeout,
		logger:  logger,
	}
}

// FetchPage downloads one document. It returns the body, the HTTP status
// code, and an error for transport failures or non-200 responses.
func (c *Client) FetchPage(ctx context.Context, url string) (string, int, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", 0, fmt.Errorf("rate limit wait: %w", err)
	}

	resp, err := c.http.R().SetContext(ctx).Get(url)
	if err != nil {
		return "", 0, fmt.Errorf("fetch %s: %w", url, err)
	}
	if resp.StatusCode() != 200 {
		return "", resp.StatusCode(), fmt.Errorf("fetch %s: status %d", url, resp.StatusCode())
	}

	c.logger.Debug("Fetched page", "url", url, "bytes", len(resp.Body()))
	return resp.String(), resp.StatusCode(), nil
}

// Probe issues a lightweight liveness check against one URL with its own
// bounded timeout. The status code is 0 on transport failure.
func (c *Client) Probe(ctx context.Context, url string) (int, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return 0, fmt.Errorf("rate limit wait: %w", err)
	}

	probeCtx, cancel := context.WithTimeout(ctx, c.probe)
	defer cancel()

	resp, err := c.http.R().SetContext(probeCtx).Head(url)
	if err != nil {
		return 0, fmt.Errorf("probe %s: %w", url, err)
	}
	return resp.StatusCode(), nil
}

// IsAlive reports whether the source server answers a single probe.
func (c *Client) IsAlive(ctx context.Context, url string) bool {
	code, err := c.Probe(ctx, url)
	return err == nil && code >= 200 && code < 400
}
