// Package ingest persists reconciled team bundles. One ImportBundle call
// is one transaction: either every row of the bundle becomes durable or
// none does.
package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/footscout/footscout-data/internal/model"
	"github.com/footscout/footscout-data/internal/reconcile"
	"github.com/footscout/footscout-data/internal/store"
)

// ImportError is fatal to one import call. It carries the data-type, club,
// and season context of the failure; the transaction it happened in has
// been rolled back in full.
type ImportError struct {
	DataType string
	Club     string
	Season   string
	Err      error
}

func (e *ImportError) Error() string {
	return fmt.Sprintf("import %s for %s %s: %v", e.DataType, e.Club, e.Season, e.Err)
}

func (e *ImportError) Unwrap() error { return e.Err }

// ImportResult tracks counts from one import call.
type ImportResult struct {
	PlayersUpserted   int
	GoalkeepingRows   int
	ShootingRows      int
	MatchLogsInserted int
	MatchLogsSkipped  int
	SquadRowsUpserted int
	OrphansRetained   int
	ClubID            int
	LeagueID          int
}

// Summary returns a human-readable summary of the import.
func (r *ImportResult) Summary() string {
	return fmt.Sprintf(
		"players=%d goalkeeping=%d shooting=%d matchlogs=%d skipped=%d squads=%d orphans=%d",
		r.PlayersUpserted, r.GoalkeepingRows, r.ShootingRows,
		r.MatchLogsInserted, r.MatchLogsSkipped, r.SquadRowsUpserted,
		r.OrphansRetained)
}

// Ingestor writes reconciled bundles to the store. Imports for the same
// (club, season) are serialized so concurrent calls cannot race on the
// same player rows.
type Ingestor struct {
	pool   *pgxpool.Pool
	logger *slog.Logger

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// New creates an Ingestor on a connection pool.
func New(pool *pgxpool.Pool, logger *slog.Logger) *Ingestor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Ingestor{pool: pool, logger: logger, locks: make(map[string]*sync.Mutex)}
}

// playerIndex maps a bundle's upserted players to their row ids so stat
// rows can link. Ref-less players are reachable by normalized name, the
// same key reconciliation matched them on.
type playerIndex struct {
	byRef  map[string]int
	byName map[string]int
}

func newPlayerIndex(size int) *playerIndex {
	return &playerIndex{
		byRef:  make(map[string]int, size),
		byName: make(map[string]int, size),
	}
}

func (ix *playerIndex) add(p model.Player, id int) {
	if p.PlayerRefID != "" {
		ix.byRef[p.PlayerRefID] = id
	}
	name := reconcile.NormalizeName(p.Name)
	if _, dup := ix.byName[name]; !dup {
		ix.byName[name] = id
	}
}

// lookup resolves the player id for a stat row. A ref id is authoritative:
// an unknown ref is never rescued by name. Ref-less rows fall back to the
// normalized-name match.
func (ix *playerIndex) lookup(refID, name string) *int {
	if refID != "" {
		if id, ok := ix.byRef[refID]; ok {
			return &id
		}
		return nil
	}
	if id, ok := ix.byName[reconcile.NormalizeName(name)]; ok {
		return &id
	}
	return nil
}

func (ing *Ingestor) keyLock(club, season string) *sync.Mutex {
	ing.mu.Lock()
	defer ing.mu.Unlock()
	key := club + "|" + season
	l, ok := ing.locks[key]
	if !ok {
		l = &sync.Mutex{}
		ing.locks[key] = l
	}
	return l
}

// ImportBundle upserts one reconciled bundle scoped by league/club/season.
// The season token is validated before any transaction is opened; any
// failure inside the transaction rolls everything back and surfaces an
// ImportError.
func (ing *Ingestor) ImportBundle(
	ctx context.Context,
	bundle *reconcile.ReconciledTeamData,
	clubName, leagueName, nation, season string,
) (ImportResult, error) {
	var result ImportResult

	if err := model.ValidateSeason(season); err != nil {
		return result, err
	}
	if clubName == "" || leagueName == "" {
		return result, &ImportError{
			DataType: "bundle", Club: clubName, Season: season,
			Err: fmt.Errorf("league and club context are required"),
		}
	}

	lock := ing.keyLock(clubName, season)
	lock.Lock()
	defer lock.Unlock()

	tx, err := ing.pool.Begin(ctx)
	if err != nil {
		return result, &ImportError{DataType: "bundle", Club: clubName, Season: season, Err: err}
	}
	defer tx.Rollback(ctx)

	if err := ing.importTx(ctx, tx, bundle, clubName, leagueName, nation, season, &result); err != nil {
		return ImportResult{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return ImportResult{}, &ImportError{DataType: "bundle", Club: clubName, Season: season, Err: err}
	}

	ing.logger.Info("Bundle imported",
		"club", clubName, "season", season, "summary", result.Summary())
	return result, nil
}

func (ing *Ingestor) importTx(
	ctx context.Context,
	tx pgx.Tx,
	bundle *reconcile.ReconciledTeamData,
	clubName, leagueName, nation, season string,
	result *ImportResult,
) error {
	fail := func(dataType string, err error) error {
		return &ImportError{DataType: dataType, Club: clubName, Season: season, Err: err}
	}

	league, err := store.GetOrCreateLeague(ctx, tx, leagueName, nation)
	if err != nil {
		return fail("league", err)
	}
	club, err := store.GetOrCreateClub(ctx, tx, clubName, nation, league.ID)
	if err != nil {
		return fail("club", err)
	}
	result.LeagueID = league.ID
	result.ClubID = club.ID

	// Players first: stat rows link against the ids assigned here.
	idx := newPlayerIndex(len(bundle.Players))
	for _, p := range bundle.Players {
		p.ClubID = club.ID
		p.Season = season
		id, err := store.UpsertPlayer(ctx, tx, p)
		if err != nil {
			return fail("player", err)
		}
		idx.add(p, id)
		result.PlayersUpserted++
	}

	for _, gk := range bundle.Goalkeeping {
		gk.ClubID = club.ID
		gk.Season = season
		gk.PlayerID = idx.lookup(gk.PlayerRefID, gk.Name)
		if err := store.UpsertGoalkeeping(ctx, tx, gk); err != nil {
			return fail("goalkeeping", err)
		}
		result.GoalkeepingRows++
	}
	for _, gk := range bundle.UnresolvedGoalkeeping {
		gk.ClubID = club.ID
		gk.Season = season
		gk.PlayerID = nil
		if err := store.UpsertGoalkeeping(ctx, tx, gk); err != nil {
			return fail("goalkeeping", err)
		}
		result.GoalkeepingRows++
		result.OrphansRetained++
	}

	for _, sh := range bundle.Shooting {
		sh.ClubID = club.ID
		sh.Season = season
		sh.PlayerID = idx.lookup(sh.PlayerRefID, sh.Name)
		if err := store.UpsertShooting(ctx, tx, sh); err != nil {
			return fail("shooting", err)
		}
		result.ShootingRows++
	}
	for _, sh := range bundle.UnresolvedShooting {
		sh.ClubID = club.ID
		sh.Season = season
		sh.PlayerID = nil
		if err := store.UpsertShooting(ctx, tx, sh); err != nil {
			return fail("shooting", err)
		}
		result.ShootingRows++
		result.OrphansRetained++
	}

	for _, m := range bundle.MatchLogs {
		m.ClubID = club.ID
		m.Season = season
		inserted, err := store.InsertMatchLog(ctx, tx, m)
		if err != nil {
			return fail("matchlog", err)
		}
		if inserted {
			result.MatchLogsInserted++
		} else {
			result.MatchLogsSkipped++
		}
	}

	for _, s := range bundle.SquadStandard {
		s.ClubID = club.ID
		s.Season = season
		if err := store.UpsertSquadStandard(ctx, tx, s); err != nil {
			return fail("squad_standard", err)
		}
		result.SquadRowsUpserted++
	}

	return nil
}

// ImportPlayerDetails upserts one biography row keyed by player_ref_id.
func (ing *Ingestor) ImportPlayerDetails(ctx context.Context, d model.PlayerDetails) error {
	if d.PlayerRefID == "" {
		return &model.ValidationError{Field: "player_ref_id", Value: "", Msg: "required"}
	}
	return store.UpsertPlayerDetails(ctx, ing.pool, d)
}
