package model

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSeasonKey(t *testing.T) {
	testCases := []struct {
		season  string
		key     int
		wantErr bool
	}{
		{season: "2023-2024", key: 2023},
		{season: "1999-2000", key: 1999}, // decade boundary
		{season: "2024-2025", key: 2024},
		{season: "2023-2025", wantErr: true}, // gap year
		{season: "2024-2023", wantErr: true}, // reversed
		{season: "2023", wantErr: true},
		{season: "2023/2024", wantErr: true},
		{season: "23-24", wantErr: true},
		{season: "", wantErr: true},
		{season: "Twenty23-2024", wantErr: true},
	}

	for _, tc := range testCases {
		key, err := SeasonKey(tc.season)
		if tc.wantErr {
			require.Error(t, err, "season %q", tc.season)
			var verr *ValidationError
			require.True(t, errors.As(err, &verr), "season %q should fail validation", tc.season)
			require.Equal(t, "season", verr.Field)
			continue
		}
		require.NoError(t, err, "season %q", tc.season)
		require.Equal(t, tc.key, key, "season %q", tc.season)
	}
}

func TestSeasonKeyOrdersAcrossDecades(t *testing.T) {
	earlier, err := SeasonKey("1999-2000")
	require.NoError(t, err)
	later, err := SeasonKey("2019-2020")
	require.NoError(t, err)
	require.Less(t, earlier, later)
}

func TestValidateSeason(t *testing.T) {
	require.NoError(t, ValidateSeason("2021-2022"))
	require.Error(t, ValidateSeason("2021-2021"))
}
