package store

import (
	"context"
	"fmt"

	"github.com/footscout/footscout-data/internal/config"
	"github.com/footscout/footscout-data/internal/model"
)

// GetOrCreateLeague looks a league up by name, creating it on first sight.
func GetOrCreateLeague(ctx context.Context, q Querier, name, nation string) (model.League, error) {
	var l model.League
	err := q.QueryRow(ctx, `
		SELECT id, name, nation FROM `+config.LeaguesTable+` WHERE name = $1`,
		name).Scan(&l.ID, &l.Name, &l.Nation)
	if err == nil {
		return l, nil
	}

	err = q.QueryRow(ctx, `
		INSERT INTO `+config.LeaguesTable+` (name, nation)
		VALUES ($1, $2)
		ON CONFLICT (name) DO UPDATE SET nation = EXCLUDED.nation
		RETURNING id, name, nation`,
		name, nation).Scan(&l.ID, &l.Name, &l.Nation)
	if err != nil {
		return model.League{}, fmt.Errorf("create league %q: %w", name, err)
	}
	return l, nil
}

// GetOrCreateClub looks a club up by (name, league), creating it on first
// sight.
func GetOrCreateClub(ctx context.Context, q Querier, name, nation string, leagueID int) (model.Club, error) {
	var c model.Club
	err := q.QueryRow(ctx, `
		SELECT id, name, nation, league_id FROM `+config.ClubsTable+`
		WHERE name = $1 AND league_id = $2`,
		name, leagueID).Scan(&c.ID, &c.Name, &c.Nation, &c.LeagueID)
	if err == nil {
		return c, nil
	}

	err = q.QueryRow(ctx, `
		INSERT INTO `+config.ClubsTable+` (name, nation, league_id)
		VALUES ($1, $2, $3)
		ON CONFLICT (name, league_id) DO UPDATE SET nation = EXCLUDED.nation
		RETURNING id, name, nation, league_id`,
		name, nation, leagueID).Scan(&c.ID, &c.Name, &c.Nation, &c.LeagueID)
	if err != nil {
		return model.Club{}, fmt.Errorf("create club %q: %w", name, err)
	}
	return c, nil
}

// UpsertPlayer writes one season row: insert if absent, update fields if
// present. Rows with a ref id are keyed by (player_ref_id, season);
// ref-less rows fall back to (club_id, season, name) so two distinct
// unidentified players in one season stay separate rows. Returns the row
// id.
func UpsertPlayer(ctx context.Context, q Querier, p model.Player) (int, error) {
	conflict := `(player_ref_id, season) WHERE player_ref_id <> ''`
	if p.PlayerRefID == "" {
		conflict = `(club_id, season, name) WHERE player_ref_id = ''`
	}

	var id int
	err := q.QueryRow(ctx, `
		INSERT INTO `+config.PlayersTable+` (
			name, nation, position, age, matches_played, starts, minutes,
			goals, assists, yellow_cards, red_cards, expected_goals,
			player_ref_id, season, club_id
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)
		ON CONFLICT `+conflict+` DO UPDATE SET
			name = EXCLUDED.name,
			nation = EXCLUDED.nation,
			position = EXCLUDED.position,
			age = EXCLUDED.age,
			matches_played = EXCLUDED.matches_played,
			starts = EXCLUDED.starts,
			minutes = EXCLUDED.minutes,
			goals = EXCLUDED.goals,
			assists = EXCLUDED.assists,
			yellow_cards = EXCLUDED.yellow_cards,
			red_cards = EXCLUDED.red_cards,
			expected_goals = EXCLUDED.expected_goals,
			club_id = EXCLUDED.club_id,
			updated_at = NOW()
		RETURNING id`,
		p.Name, p.Nation, p.Position, p.Age, p.MatchesPlayed, p.Starts,
		p.Minutes, p.Goals, p.Assists, p.YellowCards, p.RedCards,
		p.ExpectedGoals, p.PlayerRefID, p.Season, p.ClubID,
	).Scan(&id)
	return id, err
}

// UpsertGoalkeeping writes one keeper row. Resolved rows carry the linked
// player id; unresolved rows are stored without a link. Ref-less rows are
// keyed by (club_id, season, name) so re-imports update in place instead
// of appending duplicates.
func UpsertGoalkeeping(ctx context.Context, q Querier, gk model.Goalkeeping) error {
	conflict := `(player_ref_id, season) WHERE player_ref_id <> ''`
	if gk.PlayerRefID == "" {
		conflict = `(club_id, season, name) WHERE player_ref_id = ''`
	}

	_, err := q.Exec(ctx, `
		INSERT INTO `+config.GoalkeepingTable+` (
			player_ref_id, season, name, nation, matches_played, starts,
			minutes, goals_against, shots_on_target_against, saves,
			save_pct, clean_sheets, player_id, club_id
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
		ON CONFLICT `+conflict+` DO UPDATE SET
			name = EXCLUDED.name,
			nation = EXCLUDED.nation,
			matches_played = EXCLUDED.matches_played,
			starts = EXCLUDED.starts,
			minutes = EXCLUDED.minutes,
			goals_against = EXCLUDED.goals_against,
			shots_on_target_against = EXCLUDED.shots_on_target_against,
			saves = EXCLUDED.saves,
			save_pct = EXCLUDED.save_pct,
			clean_sheets = EXCLUDED.clean_sheets,
			player_id = EXCLUDED.player_id,
			club_id = EXCLUDED.club_id,
			updated_at = NOW()`,
		gk.PlayerRefID, gk.Season, gk.Name, gk.Nation, gk.MatchesPlayed,
		gk.Starts, gk.Minutes, gk.GoalsAgainst, gk.ShotsOnTargetAgainst,
		gk.Saves, gk.SavePct, gk.CleanSheets, gk.PlayerID, gk.ClubID)
	return err
}

// UpsertShooting writes one shooting row, mirroring UpsertGoalkeeping.
func UpsertShooting(ctx context.Context, q Querier, sh model.Shooting) error {
	conflict := `(player_ref_id, season) WHERE player_ref_id <> ''`
	if sh.PlayerRefID == "" {
		conflict = `(club_id, season, name) WHERE player_ref_id = ''`
	}

	_, err := q.Exec(ctx, `
		INSERT INTO `+config.ShootingTable+` (
			player_ref_id, season, name, goals, shots, shots_on_target,
			shots_on_target_pct, goals_per_shot, avg_shot_distance,
			player_id, club_id
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
		ON CONFLICT `+conflict+` DO UPDATE SET
			name = EXCLUDED.name,
			goals = EXCLUDED.goals,
			shots = EXCLUDED.shots,
			shots_on_target = EXCLUDED.shots_on_target,
			shots_on_target_pct = EXCLUDED.shots_on_target_pct,
			goals_per_shot = EXCLUDED.goals_per_shot,
			avg_shot_distance = EXCLUDED.avg_shot_distance,
			player_id = EXCLUDED.player_id,
			club_id = EXCLUDED.club_id,
			updated_at = NOW()`,
		sh.PlayerRefID, sh.Season, sh.Name, sh.Goals, sh.Shots,
		sh.ShotsOnTarget, sh.ShotsOnTargetPct, sh.GoalsPerShot,
		sh.AvgShotDistance, sh.PlayerID, sh.ClubID)
	return err
}

// InsertMatchLog appends one fixture row. The dedup key (club, season,
// date, opponent, competition) makes re-imports no-ops.
func InsertMatchLog(ctx context.Context, q Querier, m model.MatchLog) (inserted bool, err error) {
	tag, err := q.Exec(ctx, `
		INSERT INTO `+config.MatchLogsTable+` (
			club_id, season, date, opponent, competition, round, venue,
			result, goals_for, goals_against, possession
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
		ON CONFLICT (club_id, season, date, opponent, competition) DO NOTHING`,
		m.ClubID, m.Season, m.Date, m.Opponent, m.Competition, m.Round,
		m.Venue, m.Result, m.GoalsFor, m.GoalsAgainst, m.Possession)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// UpsertPlayerDetails writes biography data keyed by player_ref_id alone:
// created once per person, only updated afterwards.
func UpsertPlayerDetails(ctx context.Context, q Querier, d model.PlayerDetails) error {
	_, err := q.Exec(ctx, `
		INSERT INTO `+config.PlayerDetailsTable+` (
			player_ref_id, full_name, birth_date, birth_place, nationality,
			height, weight, foot, current_club, photo_url
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		ON CONFLICT (player_ref_id) DO UPDATE SET
			full_name = EXCLUDED.full_name,
			birth_date = EXCLUDED.birth_date,
			birth_place = EXCLUDED.birth_place,
			nationality = EXCLUDED.nationality,
			height = EXCLUDED.height,
			weight = EXCLUDED.weight,
			foot = EXCLUDED.foot,
			current_club = EXCLUDED.current_club,
			photo_url = EXCLUDED.photo_url,
			updated_at = NOW()`,
		d.PlayerRefID, d.FullName, d.BirthDate, d.BirthPlace, d.Nationality,
		d.Height, d.Weight, d.Foot, d.CurrentClub, d.PhotoURL)
	return err
}

// UpsertSquadStandard writes the per-club/season aggregate row.
func UpsertSquadStandard(ctx context.Context, q Querier, s model.SquadStandard) error {
	_, err := q.Exec(ctx, `
		INSERT INTO `+config.SquadStandardsTable+` (
			club_id, season, players_used, avg_age, possession,
			matches_played, goals, assists, goals_assists_per_90s
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
		ON CONFLICT (club_id, season) DO UPDATE SET
			players_used = EXCLUDED.players_used,
			avg_age = EXCLUDED.avg_age,
			possession = EXCLUDED.possession,
			matches_played = EXCLUDED.matches_played,
			goals = EXCLUDED.goals,
			assists = EXCLUDED.assists,
			goals_assists_per_90s = EXCLUDED.goals_assists_per_90s,
			updated_at = NOW()`,
		s.ClubID, s.Season, s.PlayersUsed, s.AvgAge, s.Possession,
		s.MatchesPlayed, s.Goals, s.Assists, s.GoalsAssistsPer90s)
	return err
}
