package scrape

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

const playersHTML = `
<html><body>
<table id="stats_standard">
<thead><tr><th>Player</th><th>Nation</th><th>Pos</th><th>Age</th><th>MP</th><th>Starts</th><th>Min</th><th>Gls</th><th>Ast</th><th>CrdY</th><th>CrdR</th><th>xG</th></tr></thead>
<tbody>
<tr>
  <th data-append-csv="abc12345"><a href="/en/players/abc12345/Bukayo-Saka">Bukayo Saka</a></th>
  <td>eng ENG</td><td>FW</td><td>22</td><td>35</td><td>34</td><td>3,014</td><td>16</td><td>9</td><td>5</td><td>0</td><td>14.2</td>
</tr>
<tr class="thead"><th>Player</th><td>Nation</td><td>Pos</td><td>Age</td><td>MP</td><td>Starts</td><td>Min</td><td>Gls</td><td>Ast</td><td>CrdY</td><td>CrdR</td><td>xG</td></tr>
<tr>
  <th><a href="/en/players/def67890/Gabriel-Jesus">Gabriel Jesus</a></th>
  <td>br BRA</td><td>FW</td><td>27</td><td>27</td><td>18</td><td>1,534</td><td>—</td><td>-</td><td>2</td><td>0</td><td>8.1</td>
</tr>
<tr><th></th><td>truncated row</td></tr>
</tbody>
</table>
</body></html>`

func TestExtractPlayers(t *testing.T) {
	players, err := ExtractPlayers(playersHTML, "table#stats_standard", "2023-2024")
	require.NoError(t, err)
	require.Len(t, players, 2)

	saka := players[0]
	require.Equal(t, "Bukayo Saka", saka.Name)
	require.Equal(t, "abc12345", saka.PlayerRefID)
	require.Equal(t, "ENG", saka.Nation)
	require.Equal(t, "FW", saka.Position)
	require.Equal(t, 3014, saka.Minutes)
	require.Equal(t, 16, saka.Goals)
	require.Equal(t, 9, saka.Assists)
	require.InDelta(t, 14.2, saka.ExpectedGoals, 1e-9)
	require.Equal(t, "2023-2024", saka.Season)

	// Ref falls back to the href path segment when data-append-csv is absent,
	// and dash placeholders parse as zero instead of failing the row.
	jesus := players[1]
	require.Equal(t, "def67890", jesus.PlayerRefID)
	require.Equal(t, 0, jesus.Goals)
	require.Equal(t, 0, jesus.Assists)
}

func TestExtractPlayersSelectorMiss(t *testing.T) {
	_, err := ExtractPlayers(playersHTML, "table#stats_keeper", "2023-2024")
	require.Error(t, err)
	var perr *ParseError
	require.True(t, errors.As(err, &perr))
	require.Equal(t, "table#stats_keeper", perr.Selector)
}

func TestExtractPlayersEmptyTable(t *testing.T) {
	html := `<table id="stats_standard"><thead><tr><th>Player</th></tr></thead><tbody></tbody></table>`
	players, err := ExtractPlayers(html, "table#stats_standard", "2023-2024")
	require.NoError(t, err)
	require.Empty(t, players)
}

const matchLogsHTML = `
<table id="matchlogs_for">
<thead><tr><th>Date</th><th>Comp</th><th>Round</th><th>Venue</th><th>Result</th><th>GF</th><th>GA</th><th>Opponent</th><th>Poss</th></tr></thead>
<tbody>
<tr><th>2023-08-12</th><td>Premier League</td><td>Matchweek 1</td><td>Home</td><td>W</td><td>2</td><td>1</td><td>Nottingham Forest</td><td>72</td></tr>
<tr><th>2023-08-21</th><td>Premier League</td><td>Matchweek 2</td><td>Away</td><td>W</td><td>1</td><td>0</td><td>Crystal Palace</td><td>64</td></tr>
<tr><th>2023-01-09</th><td>FA Cup</td><td>Third round</td><td>Away</td><td>L</td><td>0</td><td>2</td><td>Oxford United</td><td>68</td></tr>
</tbody>
</table>`

func TestExtractMatchLogsDocumentOrder(t *testing.T) {
	logs, err := ExtractMatchLogs(matchLogsHTML, "table#matchlogs_for", "2023-2024")
	require.NoError(t, err)
	require.Len(t, logs, 3)

	// Rows come back in document order, not date order.
	require.Equal(t, "2023-08-12", logs[0].Date)
	require.Equal(t, "2023-08-21", logs[1].Date)
	require.Equal(t, "2023-01-09", logs[2].Date)
	require.Equal(t, "FA Cup", logs[2].Competition)
	require.Equal(t, 2, logs[0].GoalsFor)
	require.InDelta(t, 64.0, logs[1].Possession, 1e-9)
}

func TestExtractGoalkeeping(t *testing.T) {
	html := `
<table id="stats_keeper">
<thead><tr><th>Player</th><th>Nation</th><th>MP</th><th>Starts</th><th>Min</th><th>GA</th><th>SoTA</th><th>Saves</th><th>Save%</th><th>CS</th></tr></thead>
<tbody>
<tr><th data-append-csv="gk001"><a href="/en/players/gk001/Keeper">David Raya</a></th>
<td>es ESP</td><td>32</td><td>32</td><td>2880</td><td>24</td><td>98</td><td>76</td><td>77.6%</td><td>16</td></tr>
</tbody>
</table>`
	keepers, err := ExtractGoalkeeping(html, "table#stats_keeper", "2023-2024")
	require.NoError(t, err)
	require.Len(t, keepers, 1)
	require.Equal(t, "gk001", keepers[0].PlayerRefID)
	require.Equal(t, 24, keepers[0].GoalsAgainst)
	require.InDelta(t, 77.6, keepers[0].SavePct, 1e-9)
	require.Equal(t, 16, keepers[0].CleanSheets)
}

func TestExtractPlayerDetails(t *testing.T) {
	html := `
<div id="meta">
  <img src="https://cdn.example.com/headshots/abc12345.jpg">
  <h1>Bukayo Saka</h1>
  <p><strong>Born:</strong> September 5, 2001 in Ealing, England</p>
  <p><strong>National Team:</strong> England</p>
  <p><strong>Height:</strong> 178cm</p>
  <p><strong>Footed:</strong> Left</p>
  <p><strong>Club:</strong> Arsenal</p>
</div>`
	details, err := ExtractPlayerDetails(html, "div#meta", "")
	require.NoError(t, err)
	require.Equal(t, "Bukayo Saka", details.FullName)
	require.Equal(t, "September 5, 2001", details.BirthDate)
	require.Equal(t, "Ealing, England", details.BirthPlace)
	require.Equal(t, "England", details.Nationality)
	require.Equal(t, "178cm", details.Height)
	require.Equal(t, "Left", details.Foot)
	require.Equal(t, "Arsenal", details.CurrentClub)
	require.Equal(t, "https://cdn.example.com/headshots/abc12345.jpg", details.PhotoURL)
}

func TestExtractPlayerDetailsClubHint(t *testing.T) {
	html := `<div id="meta"><h1>Journeyman</h1><p><strong>Born:</strong> May 1, 1990</p></div>`
	details, err := ExtractPlayerDetails(html, "div#meta", "Brentford")
	require.NoError(t, err)
	require.Equal(t, "Brentford", details.CurrentClub)
	require.Equal(t, "May 1, 1990", details.BirthDate)
	require.Empty(t, details.BirthPlace)

	_, err = ExtractPlayerDetails(html, "div#missing", "")
	require.Error(t, err)
}

func TestCleanNumber(t *testing.T) {
	require.Equal(t, 3014, parseIntCell("3,014"))
	require.Equal(t, 0, parseIntCell("—"))
	require.Equal(t, 0, parseIntCell("N/A"))
	require.Equal(t, 0, parseIntCell(""))
	require.InDelta(t, 77.6, parseFloatCell("77.6%"), 1e-9)
	require.Equal(t, "ENG", nationCode("eng ENG"))
	require.Equal(t, "", nationCode("  "))
}
