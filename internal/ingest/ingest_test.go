package ingest

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/footscout/footscout-data/internal/model"
	"github.com/footscout/footscout-data/internal/reconcile"
)

func TestImportBundleValidatesBeforeTransaction(t *testing.T) {
	// A nil pool proves validation failures never reach the database.
	ing := New(nil, nil)
	bundle := &reconcile.ReconciledTeamData{TeamID: "arsenal"}

	_, err := ing.ImportBundle(context.Background(), bundle, "Arsenal", "Premier League", "England", "2023/2024")
	var verr *model.ValidationError
	require.True(t, errors.As(err, &verr))
	require.Equal(t, "season", verr.Field)

	_, err = ing.ImportBundle(context.Background(), bundle, "", "Premier League", "England", "2023-2024")
	var ierr *ImportError
	require.True(t, errors.As(err, &ierr))
	require.Equal(t, "bundle", ierr.DataType)
	require.Equal(t, "2023-2024", ierr.Season)

	_, err = ing.ImportBundle(context.Background(), bundle, "Arsenal", "", "England", "2023-2024")
	require.Error(t, err)
}

func TestPlayerIndexKeepsReflessPlayersSeparate(t *testing.T) {
	// Two unidentified players in one squad must stay addressable as two
	// distinct rows, and a name-matched stat row must link to the right
	// one.
	idx := newPlayerIndex(3)
	idx.add(model.Player{PlayerRefID: "e46012d4", Name: "Kevin De Bruyne"}, 1)
	idx.add(model.Player{PlayerRefID: "", Name: "First Trialist"}, 2)
	idx.add(model.Player{PlayerRefID: "", Name: "Second Trialist"}, 3)

	id := idx.lookup("e46012d4", "Kevin De Bruyne")
	require.NotNil(t, id)
	require.Equal(t, 1, *id)

	id = idx.lookup("", "FIRST  Trialist ")
	require.NotNil(t, id)
	require.Equal(t, 2, *id)

	id = idx.lookup("", "Second Trialist")
	require.NotNil(t, id)
	require.Equal(t, 3, *id)
}

func TestPlayerIndexRefIsAuthoritative(t *testing.T) {
	idx := newPlayerIndex(1)
	idx.add(model.Player{PlayerRefID: "e46012d4", Name: "Kevin De Bruyne"}, 1)

	// An unknown ref is never rescued by name.
	require.Nil(t, idx.lookup("ffffffff", "Kevin De Bruyne"))
	require.Nil(t, idx.lookup("", "Nobody Here"))
}

func TestImportPlayerDetailsRequiresRef(t *testing.T) {
	ing := New(nil, nil)
	err := ing.ImportPlayerDetails(context.Background(), model.PlayerDetails{FullName: "No Ref"})
	var verr *model.ValidationError
	require.True(t, errors.As(err, &verr))
	require.Equal(t, "player_ref_id", verr.Field)
}

func TestImportErrorContext(t *testing.T) {
	cause := errors.New("duplicate key")
	err := &ImportError{DataType: "matchlog", Club: "Arsenal", Season: "2023-2024", Err: cause}
	require.Contains(t, err.Error(), "matchlog")
	require.Contains(t, err.Error(), "Arsenal")
	require.Contains(t, err.Error(), "2023-2024")
	require.ErrorIs(t, err, cause)
}

func TestKeyLockReuse(t *testing.T) {
	ing := New(nil, nil)
	a := ing.keyLock("Arsenal", "2023-2024")
	b := ing.keyLock("Arsenal", "2023-2024")
	c := ing.keyLock("Arsenal", "2022-2023")
	require.Same(t, a, b)
	require.NotSame(t, a, c)
}

func TestImportResultSummary(t *testing.T) {
	r := ImportResult{PlayersUpserted: 25, MatchLogsInserted: 38, MatchLogsSkipped: 2, OrphansRetained: 1}
	s := r.Summary()
	require.Contains(t, s, "players=25")
	require.Contains(t, s, "matchlogs=38")
	require.Contains(t, s, "skipped=2")
	require.Contains(t, s, "orphans=1")
}
