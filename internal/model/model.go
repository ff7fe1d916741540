// Package model defines the persistent entities and in-flight bundles the
// harvesting pipeline operates on. Relationships are expressed as explicit
// foreign-key values; entities never hold live references to each other.
package model

import "time"

// League groups clubs of one national competition.
type League struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Nation string `json:"nation"`
}

// Club belongs to exactly one league. Players reference it by ClubID.
type Club struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	Nation   string `json:"nation"`
	LeagueID int    `json:"league_id"`
}

// Player is one season-scoped standard-stats row. PlayerRefID identifies
// the same physical person across seasons; (PlayerRefID, Season) is unique.
type Player struct {
	ID            int     `json:"id"`
	Name          string  `json:"name"`
	Nation        string  `json:"nation"`
	Position      string  `json:"position"`
	Age           int     `json:"age"`
	MatchesPlayed int     `json:"matches_played"`
	Starts        int     `json:"starts"`
	Minutes       int     `json:"minutes"`
	Goals         int     `json:"goals"`
	Assists       int     `json:"assists"`
	YellowCards   int     `json:"yellow_cards"`
	RedCards      int     `json:"red_cards"`
	ExpectedGoals float64 `json:"expected_goals"`
	PlayerRefID   string  `json:"player_ref_id"`
	Season        string  `json:"season"`
	ClubID        int     `json:"club_id"`
}

// Goalkeeping is one season-scoped keeper-stats row. PlayerID is nil until
// reconciliation links it to a Player, and stays nil for orphan rows.
type Goalkeeping struct {
	ID                   int     `json:"id"`
	PlayerRefID          string  `json:"player_ref_id"`
	Season               string  `json:"season"`
	Name                 string  `json:"name"`
	Nation               string  `json:"nation"`
	MatchesPlayed        int     `json:"matches_played"`
	Starts               int     `json:"starts"`
	Minutes              int     `json:"minutes"`
	GoalsAgainst         int     `json:"goals_against"`
	ShotsOnTargetAgainst int     `json:"shots_on_target_against"`
	Saves                int     `json:"saves"`
	SavePct              float64 `json:"save_pct"`
	CleanSheets          int     `json:"clean_sheets"`
	PlayerID             *int    `json:"player_id,omitempty"`
	ClubID               int     `json:"club_id"`
}

// Shooting is one season-scoped shooting-stats row, linked like Goalkeeping.
type Shooting struct {
	ID               int     `json:"id"`
	PlayerRefID      string  `json:"player_ref_id"`
	Season           string  `json:"season"`
	Name             string  `json:"name"`
	Goals            int     `json:"goals"`
	Shots            int     `json:"shots"`
	ShotsOnTarget    int     `json:"shots_on_target"`
	ShotsOnTargetPct float64 `json:"shots_on_target_pct"`
	GoalsPerShot     float64 `json:"goals_per_shot"`
	AvgShotDistance  float64 `json:"avg_shot_distance"`
	PlayerID         *int    `json:"player_id,omitempty"`
	ClubID           int     `json:"club_id"`
}

// MatchLog is one fixture row of a club's season. It has no stable source
// key; (Date, Opponent, Competition) is the dedup key.
type MatchLog struct {
	ID           int     `json:"id"`
	ClubID       int     `json:"club_id"`
	Season       string  `json:"season"`
	Date         string  `json:"date"`
	Opponent     string  `json:"opponent"`
	Competition  string  `json:"competition"`
	Round        string  `json:"round"`
	Venue        string  `json:"venue"`
	Result       string  `json:"result"`
	GoalsFor     int     `json:"goals_for"`
	GoalsAgainst int     `json:"goals_against"`
	Possession   float64 `json:"possession"`
}

// PlayerDetails is biographical data scraped from a profile page. One row
// per PlayerRefID, not season-scoped.
type PlayerDetails struct {
	PlayerRefID string `json:"player_ref_id"`
	FullName    string `json:"full_name"`
	BirthDate   string `json:"birth_date"`
	BirthPlace  string `json:"birth_place"`
	Nationality string `json:"nationality"`
	Height      string `json:"height"`
	Weight      string `json:"weight"`
	Foot        string `json:"foot"`
	CurrentClub string `json:"current_club"`
	PhotoURL    string `json:"photo_url"`
}

// SquadStandard is one aggregate squad row per club/season.
type SquadStandard struct {
	ID                 int     `json:"id"`
	ClubID             int     `json:"club_id"`
	Season             string  `json:"season"`
	PlayersUsed        int     `json:"players_used"`
	AvgAge             float64 `json:"avg_age"`
	Possession         float64 `json:"possession"`
	MatchesPlayed      int     `json:"matches_played"`
	Goals              int     `json:"goals"`
	Assists            int     `json:"assists"`
	GoalsAssistsPer90s float64 `json:"goals_assists_per_90s"`
}

// URLInformation is the per-URL outcome of a crawl probe. It exists only
// for the duration of the crawl response and is never persisted.
type URLInformation struct {
	Label      string `json:"label"`
	URL        string `json:"url"`
	League     string `json:"league"`
	StatusCode int    `json:"status_code"`
	Status     string `json:"status"`
	Season     string `json:"season"`
}

// CompleteTeamData bundles everything extracted from one team page. It is
// in-flight state between aggregation and import.
type CompleteTeamData struct {
	TeamID        string          `json:"team_id"`
	SourceURL     string          `json:"source_url"`
	Players       []Player        `json:"players"`
	Goalkeeping   []Goalkeeping   `json:"goalkeeping"`
	Shooting      []Shooting      `json:"shooting"`
	MatchLogs     []MatchLog      `json:"match_logs"`
	SquadStandard []SquadStandard `json:"squad_standard"`
	RawHTML       string          `json:"-"`
	ExtractedAt   time.Time       `json:"extracted_at"`
}

// PlayerSeasonComparison is a derived season-over-season delta for one
// player; it is computed on demand and never persisted. Percentage fields
// are nil when the previous season's value was zero.
type PlayerSeasonComparison struct {
	PlayerRefID        string   `json:"player_ref_id"`
	Name               string   `json:"name"`
	PreviousSeason     string   `json:"previous_season"`
	CurrentSeason      string   `json:"current_season"`
	GoalsDelta         int      `json:"goals_delta"`
	AssistsDelta       int      `json:"assists_delta"`
	AppearancesDelta   int      `json:"appearances_delta"`
	MinutesDelta       int      `json:"minutes_delta"`
	GoalsPctChange     *float64 `json:"goals_pct_change"`
	AssistsPctChange   *float64 `json:"assists_pct_change"`
	MinutesPctChange   *float64 `json:"minutes_pct_change"`
	GoalsPer90Previous float64  `json:"goals_per_90_previous"`
	GoalsPer90Current  float64  `json:"goals_per_90_current"`
	GoalsPer90Delta    float64  `json:"goals_per_90_delta"`
	PerformanceTrend   string   `json:"performance_trend"`
}

// Performance trend classifications for PlayerSeasonComparison.
const (
	TrendImproving = "Improving"
	TrendDeclining = "Declining"
	TrendStable    = "Stable"
)

// ClubTrend is one season's aggregate line of a club's multi-season trend.
type ClubTrend struct {
	ClubID       int    `json:"club_id"`
	Season       string `json:"season"`
	TotalGoals   int    `json:"total_goals"`
	GoalsAgainst int    `json:"goals_against"`
	TotalAssists int    `json:"total_assists"`
	PlayerCount  int    `json:"player_count"`
}
