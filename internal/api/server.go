package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	corslib "github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/footscout/footscout-data/internal/api/handler"
	"github.com/footscout/footscout-data/internal/cache"
	"github.com/footscout/footscout-data/internal/config"
)

// NewRouter creates and configures the Chi router with all middleware and routes.
func NewRouter(pool *pgxpool.Pool, appCache *cache.Cache, cfg *config.Config) *chi.Mux {
	r := chi.NewRouter()

	// --- Middleware stack ---
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(TimingMiddleware)
	r.Use(middleware.Compress(5)) // gzip

	// CORS
	c := corslib.New(corslib.Options{
		AllowedOrigins:   cfg.CORSAllowOrigins,
		AllowedMethods:   []string{"GET", "HEAD", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Accept-Encoding", "Content-Type", "If-None-Match", "Cache-Control"},
		ExposedHeaders:   []string{"X-Process-Time", "X-Cache", "Link", "ETag"},
		AllowCredentials: false,
	})
	r.Use(c.Handler)

	// Rate limiting
	if cfg.RateLimitEnabled {
		r.Use(RateLimitMiddleware(cfg.RateLimitRequests, cfg.RateLimitWindow))
	}

	// --- Handler dependencies ---
	h := handler.New(pool, appCache, cfg)

	// --- Routes ---

	// Root
	r.Get("/", h.Root)

	// Health checks
	r.Route("/health", func(r chi.Router) {
		r.Get("/", h.HealthCheck)
		r.Get("/db", h.HealthCheckDB)
		r.Get("/cache", h.HealthCheckCache)
	})

	// Swagger UI
	r.Get("/docs/*", httpSwagger.Handler(
		httpSwagger.URL("/docs/doc.json"),
	))

	// API routes
	r.Route("/api", func(r chi.Router) {
		// Leagues and clubs
		r.Get("/leagues", h.GetLeagues)
		r.Get("/club/league/{id}/clubs", h.GetClubsByLeague)
		r.Get("/club/{id}/trends", h.GetClubTrends)

		// Players
		r.Get("/player/club/{id}/players", h.GetPlayersByClub)
		r.Get("/player/club/{id}/players/current", h.GetCurrentPlayersByClub)
		r.Get("/player/{refId}/details", h.GetPlayerDetails)
		r.Get("/player/{refId}/season-comparisons", h.GetSeasonComparisons)
		r.Get("/player/{refId}/goalkeeping", h.GetPlayerGoalkeeping)
		r.Get("/player/{refId}/shooting", h.GetPlayerShooting)

		// Search / autofill
		r.Get("/search/league/{id}/index", h.GetSearchIndex)

		// Crawl jobs
		r.Get("/crawljobs/{league}", h.RunCrawlJob)

		// Ad-hoc crawling
		r.Route("/simplecrawler", func(r chi.Router) {
			r.Get("/all-data", h.GetAllTeamData)
			r.Post("/import", h.ImportTeamData)
			r.Get("/squad-standard", h.GetSquadStandard)
			r.Get("/download-json", h.DownloadTeamDataJSON)
			r.Get("/download-zip", h.DownloadTeamDataZip)
		})
	})

	return r
}
