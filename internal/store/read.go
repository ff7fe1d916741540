package store

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/footscout/footscout-data/internal/config"
	"github.com/footscout/footscout-data/internal/model"
)

const playerColumns = `id, name, nation, position, age, matches_played, starts,
	minutes, goals, assists, yellow_cards, red_cards, expected_goals,
	player_ref_id, season, club_id`

func scanPlayer(row pgx.Row) (model.Player, error) {
	var p model.Player
	err := row.Scan(&p.ID, &p.Name, &p.Nation, &p.Position, &p.Age,
		&p.MatchesPlayed, &p.Starts, &p.Minutes, &p.Goals, &p.Assists,
		&p.YellowCards, &p.RedCards, &p.ExpectedGoals, &p.PlayerRefID,
		&p.Season, &p.ClubID)
	return p, err
}

func collectPlayers(rows pgx.Rows) ([]model.Player, error) {
	defer rows.Close()
	var players []model.Player
	for rows.Next() {
		p, err := scanPlayer(rows)
		if err != nil {
			return nil, err
		}
		players = append(players, p)
	}
	return players, rows.Err()
}

// ListLeagues returns all leagues ordered by name.
func ListLeagues(ctx context.Context, q Querier) ([]model.League, error) {
	rows, err := q.Query(ctx, `
		SELECT id, name, nation FROM `+config.LeaguesTable+` ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var leagues []model.League
	for rows.Next() {
		var l model.League
		if err := rows.Scan(&l.ID, &l.Name, &l.Nation); err != nil {
			return nil, err
		}
		leagues = append(leagues, l)
	}
	return leagues, rows.Err()
}

// ListClubsByLeague returns a league's clubs ordered by name.
func ListClubsByLeague(ctx context.Context, q Querier, leagueID int) ([]model.Club, error) {
	rows, err := q.Query(ctx, `
		SELECT id, name, nation, league_id FROM `+config.ClubsTable+`
		WHERE league_id = $1 ORDER BY name`, leagueID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var clubs []model.Club
	for rows.Next() {
		var c model.Club
		if err := rows.Scan(&c.ID, &c.Name, &c.Nation, &c.LeagueID); err != nil {
			return nil, err
		}
		clubs = append(clubs, c)
	}
	return clubs, rows.Err()
}

// ListPlayersByClub returns every season row of a club's players.
func ListPlayersByClub(ctx context.Context, q Querier, clubID int) ([]model.Player, error) {
	rows, err := q.Query(ctx, `
		SELECT `+playerColumns+` FROM `+config.PlayersTable+`
		WHERE club_id = $1 ORDER BY season, name`, clubID)
	if err != nil {
		return nil, err
	}
	return collectPlayers(rows)
}

// ListPlayersByClubSeason returns a club's players for one season.
func ListPlayersByClubSeason(ctx context.Context, q Querier, clubID int, season string) ([]model.Player, error) {
	rows, err := q.Query(ctx, `
		SELECT `+playerColumns+` FROM `+config.PlayersTable+`
		WHERE club_id = $1 AND season = $2 ORDER BY name`, clubID, season)
	if err != nil {
		return nil, err
	}
	return collectPlayers(rows)
}

// ListPlayerSeasons returns all season rows for one player_ref_id, in
// arbitrary season order; chronological ordering happens in analytics
// where season tokens are parsed.
func ListPlayerSeasons(ctx context.Context, q Querier, playerRefID string) ([]model.Player, error) {
	rows, err := q.Query(ctx, `
		SELECT `+playerColumns+` FROM `+config.PlayersTable+`
		WHERE player_ref_id = $1`, playerRefID)
	if err != nil {
		return nil, err
	}
	return collectPlayers(rows)
}

// ListGoalkeepingByRef returns a player's linked keeper rows. Unresolved
// rows are excluded from this player-joined view.
func ListGoalkeepingByRef(ctx context.Context, q Querier, playerRefID string) ([]model.Goalkeeping, error) {
	rows, err := q.Query(ctx, `
		SELECT id, player_ref_id, season, name, nation, matches_played,
			starts, minutes, goals_against, shots_on_target_against, saves,
			save_pct, clean_sheets, player_id, club_id
		FROM `+config.GoalkeepingTable+`
		WHERE player_ref_id = $1 AND player_id IS NOT NULL`, playerRefID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var keepers []model.Goalkeeping
	for rows.Next() {
		var gk model.Goalkeeping
		if err := rows.Scan(&gk.ID, &gk.PlayerRefID, &gk.Season, &gk.Name,
			&gk.Nation, &gk.MatchesPlayed, &gk.Starts, &gk.Minutes,
			&gk.GoalsAgainst, &gk.ShotsOnTargetAgainst, &gk.Saves,
			&gk.SavePct, &gk.CleanSheets, &gk.PlayerID, &gk.ClubID); err != nil {
			return nil, err
		}
		keepers = append(keepers, gk)
	}
	return keepers, rows.Err()
}

// ListShootingByRef returns a player's linked shooting rows, excluding
// unresolved rows.
func ListShootingByRef(ctx context.Context, q Querier, playerRefID string) ([]model.Shooting, error) {
	rows, err := q.Query(ctx, `
		SELECT id, player_ref_id, season, name, goals, shots,
			shots_on_target, shots_on_target_pct, goals_per_shot,
			avg_shot_distance, player_id, club_id
		FROM `+config.ShootingTable+`
		WHERE player_ref_id = $1 AND player_id IS NOT NULL`, playerRefID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var shooting []model.Shooting
	for rows.Next() {
		var sh model.Shooting
		if err := rows.Scan(&sh.ID, &sh.PlayerRefID, &sh.Season, &sh.Name,
			&sh.Goals, &sh.Shots, &sh.ShotsOnTarget, &sh.ShotsOnTargetPct,
			&sh.GoalsPerShot, &sh.AvgShotDistance, &sh.PlayerID, &sh.ClubID); err != nil {
			return nil, err
		}
		shooting = append(shooting, sh)
	}
	return shooting, rows.Err()
}

// SeasonTotals is one season's summed output of a club's players.
type SeasonTotals struct {
	Season       string
	Goals        int
	Assists      int
	GoalsAgainst int
	PlayerCount  int
}

// ClubSeasonTotals aggregates goals/assists per season across a club's
// players, with goals-against summed from the club's linked keeper rows.
func ClubSeasonTotals(ctx context.Context, q Querier, clubID int) ([]SeasonTotals, error) {
	rows, err := q.Query(ctx, `
		SELECT p.season,
			COALESCE(SUM(p.goals), 0),
			COALESCE(SUM(p.assists), 0),
			COUNT(*),
			COALESCE((
				SELECT SUM(gk.goals_against)
				FROM `+config.GoalkeepingTable+` gk
				WHERE gk.club_id = p.club_id
				  AND gk.season = p.season
				  AND gk.player_id IS NOT NULL
			), 0)
		FROM `+config.PlayersTable+` p
		WHERE p.club_id = $1
		GROUP BY p.season, p.club_id`, clubID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var totals []SeasonTotals
	for rows.Next() {
		var t SeasonTotals
		if err := rows.Scan(&t.Season, &t.Goals, &t.Assists, &t.PlayerCount, &t.GoalsAgainst); err != nil {
			return nil, err
		}
		totals = append(totals, t)
	}
	return totals, rows.Err()
}
