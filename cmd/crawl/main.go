// Command crawl is the Footscout data harvesting CLI.
//
// Usage:
//
//	footscout-crawl probe premier-league
//	footscout-crawl team --url https://fbref.com/... --id arsenal --club Arsenal --league "Premier League" --nation England --season 2023-2024
//	footscout-crawl details --url https://fbref.com/... --ref a1b2c3d4 --club Arsenal
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/footscout/footscout-data/internal/config"
	"github.com/footscout/footscout-data/internal/crawl"
	"github.com/footscout/footscout-data/internal/db"
	"github.com/footscout/footscout-data/internal/ingest"
	"github.com/footscout/footscout-data/internal/reconcile"
	"github.com/footscout/footscout-data/internal/scrape"
)

var logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

func main() {
	// Load .env if present
	_ = godotenv.Load(".env")

	root := &cobra.Command{
		Use:   "footscout-crawl",
		Short: "Footscout data harvesting CLI",
	}

	root.AddCommand(probeCmd())
	root.AddCommand(teamCmd())
	root.AddCommand(detailsCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// --------------------------------------------------------------------------
// probe command
// --------------------------------------------------------------------------

func probeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "probe <league>",
		Short: "Probe every known season URL of a registered league",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			def, ok := config.LeagueRegistry[args[0]]
			if !ok {
				return fmt.Errorf("unknown league %q", args[0])
			}
			return runCrawl(true, func(ctx context.Context, cfg *config.Config, pool *db.Pool) error {
				client := scrape.NewClient(cfg, logger)
				orch := crawl.NewOrchestrator(client, cfg.CrawlWorkers, logger)

				start := time.Now()
				results := orch.CrawlLeague(ctx, def)
				for _, info := range results {
					logger.Info("Season probed",
						"season", info.Season, "status", info.Status,
						"code", info.StatusCode, "url", info.URL)
				}
				logger.Info("Probe finished",
					"league", def.ID, "urls", len(results),
					"duration", time.Since(start).Round(time.Millisecond))
				return nil
			})
		},
	}
}

// --------------------------------------------------------------------------
// team command
// --------------------------------------------------------------------------

func teamCmd() *cobra.Command {
	var (
		url, teamID          string
		clubName, leagueName string
		nation, season       string
		dryRun               bool
	)
	cmd := &cobra.Command{
		Use:   "team",
		Short: "Crawl one team page, reconcile it, and import the bundle",
		RunE: func(cmd *cobra.Command, args []string) error {
			if url == "" || teamID == "" {
				return fmt.Errorf("--url and --id are required")
			}
			if !dryRun && (clubName == "" || leagueName == "") {
				return fmt.Errorf("--club and --league are required unless --dry-run is set")
			}
			return runCrawl(dryRun, func(ctx context.Context, cfg *config.Config, pool *db.Pool) error {
				client := scrape.NewClient(cfg, logger)
				agg := crawl.NewAggregator(client, cfg.AggregateWorkers, logger)

				start := time.Now()
				bundle, err := agg.Aggregate(ctx, url, teamID, season)
				if err != nil {
					return fmt.Errorf("aggregate %s: %w", teamID, err)
				}
				merged := reconcile.Merge(bundle)
				for _, w := range merged.Warnings {
					logger.Warn("Unresolved stat row",
						"type", w.DataType, "name", w.Name, "season", w.Season,
						"closest", w.Closest, "similarity", fmt.Sprintf("%.2f", w.Similarity))
				}
				if dryRun {
					logger.Info("Dry run finished",
						"team", teamID, "players", len(merged.Players),
						"matchlogs", len(merged.MatchLogs),
						"warnings", len(merged.Warnings),
						"duration", time.Since(start).Round(time.Second))
					return nil
				}

				ing := ingest.New(pool.Pool, logger)
				result, err := ing.ImportBundle(ctx, merged, clubName, leagueName, nation, season)
				if err != nil {
					return err
				}
				logger.Info("Team crawl finished",
					"club", clubName, "season", season,
					"duration", time.Since(start).Round(time.Second),
					"summary", result.Summary())
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&url, "url", "", "Team page URL")
	cmd.Flags().StringVar(&teamID, "id", "", "Team identifier")
	cmd.Flags().StringVar(&clubName, "club", "", "Club name for import scoping")
	cmd.Flags().StringVar(&leagueName, "league", "", "League name for import scoping")
	cmd.Flags().StringVar(&nation, "nation", "", "League nation")
	cmd.Flags().StringVar(&season, "season", config.DefaultSeason, "Season token (e.g. 2023-2024)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Reconcile and report without touching the database")
	return cmd
}

// --------------------------------------------------------------------------
// details command
// --------------------------------------------------------------------------

func detailsCmd() *cobra.Command {
	var url, refID, selector, clubHint string
	cmd := &cobra.Command{
		Use:   "details",
		Short: "Crawl one player biography page and import it",
		RunE: func(cmd *cobra.Command, args []string) error {
			if url == "" || refID == "" {
				return fmt.Errorf("--url and --ref are required")
			}
			return runCrawl(false, func(ctx context.Context, cfg *config.Config, pool *db.Pool) error {
				client := scrape.NewClient(cfg, logger)

				html, _, err := client.FetchPage(ctx, url)
				if err != nil {
					return err
				}
				details, err := scrape.ExtractPlayerDetails(html, selector, clubHint)
				if err != nil {
					return fmt.Errorf("extract details: %w", err)
				}
				details.PlayerRefID = refID

				ing := ingest.New(pool.Pool, logger)
				if err := ing.ImportPlayerDetails(ctx, *details); err != nil {
					return err
				}
				logger.Info("Player details imported", "ref", refID, "name", details.FullName)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&url, "url", "", "Player page URL")
	cmd.Flags().StringVar(&refID, "ref", "", "Player reference ID")
	cmd.Flags().StringVar(&selector, "selector", "div#meta", "CSS selector of the biography block")
	cmd.Flags().StringVar(&clubHint, "club", "", "Club name hint for ambiguous biography labels")
	return cmd
}

// --------------------------------------------------------------------------
// Shared setup
// --------------------------------------------------------------------------

// runCrawl handles config loading, DB connection, and context cancellation.
// When noDB is set the pool is nil; probe and dry runs never touch Postgres.
func runCrawl(noDB bool, fn func(ctx context.Context, cfg *config.Config, pool *db.Pool) error) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	var pool *db.Pool
	if !noDB {
		pool, err = db.New(ctx, cfg)
		if err != nil {
			return fmt.Errorf("connect to database: %w", err)
		}
		defer pool.Close()
	}

	return fn(ctx, cfg, pool)
}
