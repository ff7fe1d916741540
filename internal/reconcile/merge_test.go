package reconcile

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/footscout/footscout-data/internal/model"
)

func bundleWith(players []model.Player) *model.CompleteTeamData {
	return &model.CompleteTeamData{
		TeamID:    "arsenal",
		SourceURL: "https://example.com/arsenal",
		Players:   players,
	}
}

func TestMergeDedupsPlayers(t *testing.T) {
	bundle := bundleWith([]model.Player{
		{PlayerRefID: "abc", Name: "Bukayo Saka", Season: "2023-2024", Goals: 16},
		{PlayerRefID: "abc", Name: "Bukayo Saka", Season: "2023-2024", Goals: 99}, // relisted
		{PlayerRefID: "abc", Name: "Bukayo Saka", Season: "2022-2023", Goals: 14},
		{PlayerRefID: "", Name: "Trialist", Season: "2023-2024"},
		{PlayerRefID: "", Name: "Trialist", Season: "2023-2024"},
	})

	out := Merge(bundle)
	require.Len(t, out.Players, 3)
	// First occurrence wins.
	require.Equal(t, 16, out.Players[0].Goals)
	require.Equal(t, "2022-2023", out.Players[1].Season)
	require.Equal(t, "Trialist", out.Players[2].Name)
}

func TestMergeResolvesByRefThenName(t *testing.T) {
	bundle := bundleWith([]model.Player{
		{PlayerRefID: "gk001", Name: "David Raya", Season: "2023-2024"},
		{PlayerRefID: "fw002", Name: "Gabriel Jesus", Season: "2023-2024"},
	})
	bundle.Goalkeeping = []model.Goalkeeping{
		{PlayerRefID: "gk001", Name: "D. Raya", Season: "2023-2024", Saves: 76},
	}
	bundle.Shooting = []model.Shooting{
		// No ref id; matches by normalized name despite case and spacing.
		{PlayerRefID: "", Name: "GABRIEL  Jesus ", Season: "2023-2024", Shots: 50},
	}

	out := Merge(bundle)
	require.Len(t, out.Goalkeeping, 1)
	require.Equal(t, "gk001", out.Goalkeeping[0].PlayerRefID)
	require.Len(t, out.Shooting, 1)
	require.Equal(t, "fw002", out.Shooting[0].PlayerRefID)
	require.Empty(t, out.UnresolvedGoalkeeping)
	require.Empty(t, out.UnresolvedShooting)
	require.Empty(t, out.Warnings)
}

func TestMergeRetainsOrphans(t *testing.T) {
	bundle := bundleWith([]model.Player{
		{PlayerRefID: "abc", Name: "Bukayo Saka", Season: "2023-2024"},
	})
	bundle.Shooting = []model.Shooting{
		// Ref id unknown to the players table; a matching name must NOT
		// rescue it, the ids disagree.
		{PlayerRefID: "zzz", Name: "Bukayo Saka", Season: "2023-2024", Shots: 10},
		// Same season, unknown name, no ref.
		{PlayerRefID: "", Name: "Mystery Man", Season: "2023-2024", Shots: 3},
	}

	out := Merge(bundle)
	require.Empty(t, out.Shooting)
	require.Len(t, out.UnresolvedShooting, 2)
	require.Len(t, out.Warnings, 2)
	require.Equal(t, "shooting", out.Warnings[0].DataType)
	require.Equal(t, "Bukayo Saka", out.Warnings[0].Closest)
	require.Greater(t, out.Warnings[0].Similarity, 0.9)
}

func TestMergeSeasonScopedMatching(t *testing.T) {
	bundle := bundleWith([]model.Player{
		{PlayerRefID: "abc", Name: "Bukayo Saka", Season: "2022-2023"},
	})
	bundle.Goalkeeping = []model.Goalkeeping{
		{PlayerRefID: "abc", Name: "Bukayo Saka", Season: "2023-2024"},
	}

	out := Merge(bundle)
	require.Empty(t, out.Goalkeeping)
	require.Len(t, out.UnresolvedGoalkeeping, 1)
}

func TestDedupMatchLogs(t *testing.T) {
	logs := []model.MatchLog{
		{Date: "2023-08-12", Opponent: "Nottingham Forest", Competition: "Premier League", GoalsFor: 2},
		{Date: "2023-08-12", Opponent: "Nottingham  Forest", Competition: "Premier League", GoalsFor: 9}, // relisted
		{Date: "2023-08-12", Opponent: "Nottingham Forest", Competition: "FA Cup"},
		{Date: "2023-08-21", Opponent: "Crystal Palace", Competition: "Premier League"},
	}

	out := DedupMatchLogs(logs)
	require.Len(t, out, 3)
	// First occurrence wins on the duplicated fixture.
	require.Equal(t, 2, out[0].GoalsFor)
	require.Equal(t, "FA Cup", out[1].Competition)

	require.Nil(t, DedupMatchLogs(nil))
}

func TestMergeDeterministic(t *testing.T) {
	bundle := bundleWith([]model.Player{
		{PlayerRefID: "a", Name: "Alpha", Season: "2023-2024"},
		{PlayerRefID: "b", Name: "Beta", Season: "2023-2024"},
	})
	bundle.Shooting = []model.Shooting{
		{PlayerRefID: "", Name: "Gamma", Season: "2023-2024"},
		{PlayerRefID: "", Name: "Delta", Season: "2023-2024"},
	}

	first := Merge(bundle)
	for i := 0; i < 10; i++ {
		again := Merge(bundle)
		require.Equal(t, first, again)
	}
}

func TestNormalizeName(t *testing.T) {
	require.Equal(t, "kevin debruyne", NormalizeName("  Kevin   De-Bruyne  "))
	require.Equal(t, "kevin de bruyne", NormalizeName("Kevin  De  Bruyne"))
	require.Equal(t, "oneil", NormalizeName("O'Neil"))
	require.Equal(t, "", NormalizeName(" "))
}
