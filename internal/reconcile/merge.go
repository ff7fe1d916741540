// Package reconcile matches stat rows produced by independent table
// extractions into a coherent per-player view.
//
// Merging is deterministic: rows are processed in extraction order and no
// decision depends on map iteration order.
package reconcile

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/antzucaro/matchr"

	"github.com/footscout/footscout-data/internal/model"
)

// Warning records a stat row that could not be matched to any player.
// Unresolved rows stay in the output for auditability; the warning carries
// the closest player name as a lead for manual review.
type Warning struct {
	DataType   string  `json:"data_type"`
	Name       string  `json:"name"`
	Season     string  `json:"season"`
	Closest    string  `json:"closest,omitempty"`
	Similarity float64 `json:"similarity,omitempty"`
}

func (w Warning) String() string {
	return fmt.Sprintf("%s row %q (%s) matched no player, closest %q", w.DataType, w.Name, w.Season, w.Closest)
}

// ReconciledTeamData is a team bundle after reconciliation: players unique
// on (PlayerRefID, Season), stat rows partitioned into resolved and
// unresolved, match logs deduplicated.
type ReconciledTeamData struct {
	TeamID                string                `json:"team_id"`
	SourceURL             string                `json:"source_url"`
	Players               []model.Player        `json:"players"`
	Goalkeeping           []model.Goalkeeping   `json:"goalkeeping"`
	Shooting              []model.Shooting      `json:"shooting"`
	UnresolvedGoalkeeping []model.Goalkeeping   `json:"unresolved_goalkeeping,omitempty"`
	UnresolvedShooting    []model.Shooting      `json:"unresolved_shooting,omitempty"`
	MatchLogs             []model.MatchLog      `json:"match_logs"`
	SquadStandard         []model.SquadStandard `json:"squad_standard"`
	Warnings              []Warning             `json:"warnings,omitempty"`
}

// Merge reconciles one extracted bundle. Goalkeeping and shooting rows are
// joined to players by (PlayerRefID, Season); rows without a ref id fall
// back to an exact normalized-name match within the same season. Rows
// matching neither are retained as unresolved.
func Merge(bundle *model.CompleteTeamData) *ReconciledTeamData {
	out := &ReconciledTeamData{
		TeamID:        bundle.TeamID,
		SourceURL:     bundle.SourceURL,
		SquadStandard: bundle.SquadStandard,
	}

	// Players: first occurrence of (ref, season) wins; rows without a ref
	// id are keyed by normalized name instead so repeats still collapse.
	seen := make(map[string]bool, len(bundle.Players))
	refIdx := make(map[string]model.Player)
	nameIdx := make(map[string]model.Player)
	for _, p := range bundle.Players {
		key := p.PlayerRefID + "|" + p.Season
		if p.PlayerRefID == "" {
			key = "name:" + NormalizeName(p.Name) + "|" + p.Season
		}
		if seen[key] {
			continue
		}
		seen[key] = true
		out.Players = append(out.Players, p)

		if p.PlayerRefID != "" {
			refIdx[p.PlayerRefID+"|"+p.Season] = p
		}
		nameKey := NormalizeName(p.Name) + "|" + p.Season
		if _, dup := nameIdx[nameKey]; !dup {
			nameIdx[nameKey] = p
		}
	}

	for _, gk := range bundle.Goalkeeping {
		if p, ok := match(gk.PlayerRefID, gk.Name, gk.Season, refIdx, nameIdx); ok {
			gk.PlayerRefID = p.PlayerRefID
			out.Goalkeeping = append(out.Goalkeeping, gk)
			continue
		}
		out.UnresolvedGoalkeeping = append(out.UnresolvedGoalkeeping, gk)
		out.Warnings = append(out.Warnings, warning("goalkeeping", gk.Name, gk.Season, out.Players))
	}

	for _, sh := range bundle.Shooting {
		if p, ok := match(sh.PlayerRefID, sh.Name, sh.Season, refIdx, nameIdx); ok {
			sh.PlayerRefID = p.PlayerRefID
			out.Shooting = append(out.Shooting, sh)
			continue
		}
		out.UnresolvedShooting = append(out.UnresolvedShooting, sh)
		out.Warnings = append(out.Warnings, warning("shooting", sh.Name, sh.Season, out.Players))
	}

	out.MatchLogs = DedupMatchLogs(bundle.MatchLogs)

	return out
}

// match joins a stat row to a player: ref id + season first, exact
// normalized name within the season as fallback.
func match(refID, name, season string, refIdx, nameIdx map[string]model.Player) (model.Player, bool) {
	if refID != "" {
		if p, ok := refIdx[refID+"|"+season]; ok {
			return p, true
		}
		// A ref id that matches no player is not rescued by name: the ids
		// disagree and a name collision would link the wrong person.
		return model.Player{}, false
	}
	p, ok := nameIdx[NormalizeName(name)+"|"+season]
	return p, ok
}

// warning builds an unresolved-row warning with the most similar player
// name in the bundle. Similarity is informational only and never links.
func warning(dataType, name, season string, players []model.Player) Warning {
	w := Warning{DataType: dataType, Name: name, Season: season}
	norm := NormalizeName(name)
	for _, p := range players {
		if p.Season != season {
			continue
		}
		sim := matchr.JaroWinkler(norm, NormalizeName(p.Name), false)
		if sim > w.Similarity {
			w.Similarity = sim
			w.Closest = p.Name
		}
	}
	return w
}

// DedupMatchLogs drops repeated fixtures, keeping the first occurrence in
// document order. Pages relist a fixture when a postponed match is
// replayed; (date, opponent, competition) identifies the fixture.
func DedupMatchLogs(logs []model.MatchLog) []model.MatchLog {
	if len(logs) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(logs))
	out := make([]model.MatchLog, 0, len(logs))
	for _, m := range logs {
		key := m.Date + "|" + NormalizeName(m.Opponent) + "|" + m.Competition
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, m)
	}
	return out
}

var nameJunk = regexp.MustCompile(`[^a-z0-9 ]`)

// NormalizeName lowercases, strips punctuation, and collapses whitespace
// so name comparison survives accents-stripped relistings.
func NormalizeName(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = nameJunk.ReplaceAllString(s, "")
	return strings.Join(strings.Fields(s), " ")
}
