// Package config provides centralized configuration loaded from environment
// variables. Shared by both cmd/api and cmd/crawl.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// --------------------------------------------------------------------------
// League registry — the leagues the crawler knows how to harvest
// --------------------------------------------------------------------------

// LeagueDefinition describes one league's crawl surface: the season URL
// pattern is formatted with the season token (e.g. "2023-2024").
type LeagueDefinition struct {
	ID               string
	Name             string
	Nation           string
	SeasonURLPattern string
	Seasons          []string
}

// DefaultSeason is used when a caller does not name a season explicitly.
const DefaultSeason = "2024-2025"

var LeagueRegistry = map[string]LeagueDefinition{
	"premier-league": {
		ID:               "premier-league",
		Name:             "Premier League",
		Nation:           "England",
		SeasonURLPattern: "https://fbref.com/en/comps/9/%s/stats/%s-Premier-League-Stats",
		Seasons: []string{
			"2019-2020", "2020-2021", "2021-2022",
			"2022-2023", "2023-2024", "2024-2025",
		},
	},
	"romania-liga1": {
		ID:               "romania-liga1",
		Name:             "Liga 1",
		Nation:           "Romania",
		SeasonURLPattern: "https://fbref.com/en/comps/47/%s/stats/%s-Liga-I-Stats",
		Seasons: []string{
			"2019-2020", "2020-2021", "2021-2022",
			"2022-2023", "2023-2024", "2024-2025",
		},
	},
}

// --------------------------------------------------------------------------
// Table selectors — default CSS selectors for team-page tables
// --------------------------------------------------------------------------

const (
	SelectorPlayers       = "table#stats_standard"
	SelectorGoalkeeping   = "table#stats_keeper"
	SelectorShooting      = "table#stats_shooting"
	SelectorMatchLogs     = "table#matchlogs_for"
	SelectorSquadStandard = "table#stats_squads_standard_for"
)

// --------------------------------------------------------------------------
// Table names — single source of truth, matches schema.sql
// --------------------------------------------------------------------------

const (
	LeaguesTable        = "leagues"
	ClubsTable          = "clubs"
	PlayersTable        = "players"
	GoalkeepingTable    = "goalkeeping"
	ShootingTable       = "shooting"
	MatchLogsTable      = "match_logs"
	PlayerDetailsTable  = "player_details"
	SquadStandardsTable = "squad_standards"
)

// --------------------------------------------------------------------------
// Config struct — populated from environment variables
// --------------------------------------------------------------------------

type Config struct {
	// Database
	DatabaseURL    string
	DBPoolMinConns int
	DBPoolMaxConns int
	DBPoolMaxLife  time.Duration

	// API server
	APIHost     string
	APIPort     int
	Environment string // development, staging, production
	Debug       bool

	// CORS
	CORSAllowOrigins []string

	// Rate limiting (inbound API)
	RateLimitEnabled  bool
	RateLimitRequests int
	RateLimitWindow   time.Duration

	// Crawling
	UserAgent          string
	FetchTimeout       time.Duration
	ProbeTimeout       time.Duration
	CrawlWorkers       int
	AggregateWorkers   int
	RequestsPerMinute  int
	CrawlSweepInterval time.Duration // zero disables the background sweep

	// Cache
	CacheEnabled bool
}

// Load reads configuration from environment variables with sensible defaults.
func Load() (*Config, error) {
	dbURL := envOr("DATABASE_URL", envOr("FOOTSCOUT_DATABASE_URL", ""))
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL or FOOTSCOUT_DATABASE_URL must be set")
	}

	return &Config{
		DatabaseURL:    dbURL,
		DBPoolMinConns: envInt("DB_POOL_MIN_CONNS", 2),
		DBPoolMaxConns: envInt("DB_POOL_MAX_CONNS", 10),
		DBPoolMaxLife:  time.Duration(envInt("DB_POOL_MAX_LIFE_MINUTES", 30)) * time.Minute,

		APIHost:     envOr("API_HOST", "0.0.0.0"),
		APIPort:     envInt("API_PORT", envInt("PORT", 8000)),
		Environment: envOr("ENVIRONMENT", "development"),
		Debug:       envBool("DEBUG", false),

		CORSAllowOrigins: envList("CORS_ALLOW_ORIGINS", []string{
			"http://localhost:3000",
			"http://localhost:4200",
			"http://localhost:5173",
		}),

		RateLimitEnabled:  envBool("RATE_LIMIT_ENABLED", true),
		RateLimitRequests: envInt("RATE_LIMIT_REQUESTS", 100),
		RateLimitWindow:   time.Duration(envInt("RATE_LIMIT_WINDOW", 60)) * time.Second,

		UserAgent:          envOr("CRAWL_USER_AGENT", "footscout-data/1.0"),
		FetchTimeout:       time.Duration(envInt("CRAWL_FETCH_TIMEOUT_SECONDS", 30)) * time.Second,
		ProbeTimeout:       time.Duration(envInt("CRAWL_PROBE_TIMEOUT_SECONDS", 10)) * time.Second,
		CrawlWorkers:       envInt("CRAWL_WORKERS", 4),
		AggregateWorkers:   envInt("CRAWL_AGGREGATE_WORKERS", 3),
		RequestsPerMinute:  envInt("CRAWL_REQUESTS_PER_MINUTE", 20),
		CrawlSweepInterval: time.Duration(envInt("CRAWL_SWEEP_INTERVAL_MINUTES", 0)) * time.Minute,

		CacheEnabled: envBool("CACHE_ENABLED", true),
	}, nil
}

// IsProduction returns true if running in production environment.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// --------------------------------------------------------------------------
// Env helpers
// --------------------------------------------------------------------------

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return fallback
}

func envList(key string, fallback []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		if len(result) > 0 {
			return result
		}
	}
	return fallback
}
