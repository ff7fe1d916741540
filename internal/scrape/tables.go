package scrape

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/footscout/footscout-data/internal/model"
)

// Column-index-to-field mappings are fixed per target schema. Rows with
// fewer cells than the schema needs are dropped; rows remain in document
// order.

// ExtractPlayers parses a standard-stats table into player rows.
func ExtractPlayers(html, selector, season string) ([]model.Player, error) {
	rows, err := tableRows(html, selector)
	if err != nil {
		return nil, err
	}

	players := make([]model.Player, 0, len(rows))
	for _, row := range rows {
		cells := cellTexts(row)
		if len(cells) < 9 || cells[0] == "" {
			continue
		}
		p := model.Player{
			Name:          cells[0],
			Nation:        nationCode(cells[1]),
			Position:      cells[2],
			Age:           parseIntCell(cells[3]),
			MatchesPlayed: parseIntCell(cells[4]),
			Starts:        parseIntCell(cells[5]),
			Minutes:       parseIntCell(cells[6]),
			Goals:         parseIntCell(cells[7]),
			Assists:       parseIntCell(cells[8]),
			PlayerRefID:   playerRef(row),
			Season:        season,
		}
		if len(cells) > 9 {
			p.YellowCards = parseIntCell(cells[9])
		}
		if len(cells) > 10 {
			p.RedCards = parseIntCell(cells[10])
		}
		if len(cells) > 11 {
			p.ExpectedGoals = parseFloatCell(cells[11])
		}
		players = append(players, p)
	}
	return players, nil
}

// ExtractGoalkeeping parses a keeper-stats table.
func ExtractGoalkeeping(html, selector, season string) ([]model.Goalkeeping, error) {
	rows, err := tableRows(html, selector)
	if err != nil {
		return nil, err
	}

	keepers := make([]model.Goalkeeping, 0, len(rows))
	for _, row := range rows {
		cells := cellTexts(row)
		if len(cells) < 10 || cells[0] == "" {
			continue
		}
		keepers = append(keepers, model.Goalkeeping{
			Name:                 cells[0],
			Nation:               nationCode(cells[1]),
			MatchesPlayed:        parseIntCell(cells[2]),
			Starts:               parseIntCell(cells[3]),
			Minutes:              parseIntCell(cells[4]),
			GoalsAgainst:         parseIntCell(cells[5]),
			ShotsOnTargetAgainst: parseIntCell(cells[6]),
			Saves:                parseIntCell(cells[7]),
			SavePct:              parseFloatCell(cells[8]),
			CleanSheets:          parseIntCell(cells[9]),
			PlayerRefID:          playerRef(row),
			Season:               season,
		})
	}
	return keepers, nil
}

// ExtractShooting parses a shooting-stats table.
func ExtractShooting(html, selector, season string) ([]model.Shooting, error) {
	rows, err := tableRows(html, selector)
	if err != nil {
		return nil, err
	}

	shooting := make([]model.Shooting, 0, len(rows))
	for _, row := range rows {
		cells := cellTexts(row)
		if len(cells) < 7 || cells[0] == "" {
			continue
		}
		shooting = append(shooting, model.Shooting{
			Name:             cells[0],
			Goals:            parseIntCell(cells[1]),
			Shots:            parseIntCell(cells[2]),
			ShotsOnTarget:    parseIntCell(cells[3]),
			ShotsOnTargetPct: parseFloatCell(cells[4]),
			GoalsPerShot:     parseFloatCell(cells[5]),
			AvgShotDistance:  parseFloatCell(cells[6]),
			PlayerRefID:      playerRef(row),
			Season:           season,
		})
	}
	return shooting, nil
}

// ExtractMatchLogs parses a fixture-log table. Document order is preserved
// so the log stays chronological.
func ExtractMatchLogs(html, selector, season string) ([]model.MatchLog, error) {
	rows, err := tableRows(html, selector)
	if err != nil {
		return nil, err
	}

	logs := make([]model.MatchLog, 0, len(rows))
	for _, row := range rows {
		cells := cellTexts(row)
		if len(cells) < 8 || cells[0] == "" {
			continue
		}
		m := model.MatchLog{
			Date:         cells[0],
			Competition:  cells[1],
			Round:        cells[2],
			Venue:        cells[3],
			Result:       cells[4],
			GoalsFor:     parseIntCell(cells[5]),
			GoalsAgainst: parseIntCell(cells[6]),
			Opponent:     cells[7],
			Season:       season,
		}
		if len(cells) > 8 {
			m.Possession = parseFloatCell(cells[8])
		}
		logs = append(logs, m)
	}
	return logs, nil
}

// ExtractSquadStandard parses the per-squad aggregate table.
func ExtractSquadStandard(html, selector, season string) ([]model.SquadStandard, error) {
	rows, err := tableRows(html, selector)
	if err != nil {
		return nil, err
	}

	squads := make([]model.SquadStandard, 0, len(rows))
	for _, row := range rows {
		cells := cellTexts(row)
		if len(cells) < 8 || cells[0] == "" {
			continue
		}
		squads = append(squads, model.SquadStandard{
			PlayersUsed:        parseIntCell(cells[1]),
			AvgAge:             parseFloatCell(cells[2]),
			Possession:         parseFloatCell(cells[3]),
			MatchesPlayed:      parseIntCell(cells[4]),
			Goals:              parseIntCell(cells[5]),
			Assists:            parseIntCell(cells[6]),
			GoalsAssistsPer90s: parseFloatCell(cells[7]),
			Season:             season,
		})
	}
	return squads, nil
}

// ExtractPlayerDetails parses a player profile page. The selector targets
// the biography block; clubHint disambiguates the current club when the
// page mentions several.
func ExtractPlayerDetails(html, selector, clubHint string) (*model.PlayerDetails, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, &ParseError{Selector: selector, Detail: err.Error()}
	}

	info := doc.Find(selector).First()
	if info.Length() == 0 {
		return nil, &ParseError{Selector: selector, Detail: "no matching bio block"}
	}

	details := &model.PlayerDetails{
		FullName: strings.TrimSpace(info.Find("h1").First().Text()),
	}
	if src, ok := info.Find("img").First().Attr("src"); ok {
		details.PhotoURL = src
	}

	info.Find("p").Each(func(_ int, p *goquery.Selection) {
		label := strings.TrimSpace(p.Find("strong").First().Text())
		text := strings.TrimSpace(p.Text())
		value := strings.TrimSpace(strings.TrimPrefix(text, label))
		value = strings.TrimLeft(value, ": ")

		switch {
		case strings.HasPrefix(label, "Born"):
			// "June 24, 1987 in Rosario, Argentina"
			if idx := strings.Index(value, " in "); idx >= 0 {
				details.BirthDate = strings.TrimSpace(value[:idx])
				details.BirthPlace = strings.TrimSpace(value[idx+4:])
			} else {
				details.BirthDate = value
			}
		case strings.HasPrefix(label, "National"):
			details.Nationality = value
		case strings.HasPrefix(label, "Height"):
			details.Height = value
		case strings.HasPrefix(label, "Weight"):
			details.Weight = value
		case strings.HasPrefix(label, "Foot"):
			details.Foot = value
		case strings.HasPrefix(label, "Club"):
			details.CurrentClub = value
		}
	})

	// Profile pages for transferred players list old clubs in the bio; the
	// hint from the crawled team page wins when the block is ambiguous.
	if details.CurrentClub == "" && clubHint != "" {
		details.CurrentClub = clubHint
	} else if clubHint != "" && !strings.EqualFold(details.CurrentClub, clubHint) &&
		strings.Contains(strings.ToLower(html), strings.ToLower(clubHint)) {
		details.CurrentClub = clubHint
	}

	return details, nil
}
