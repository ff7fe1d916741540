package model

import (
	"fmt"
	"regexp"
	"strconv"
)

// Season tokens are opaque labels like "2023-2024". Ordering them requires
// the parsed start year; lexicographic comparison breaks across decade and
// digit-count boundaries.
var seasonPattern = regexp.MustCompile(`^(\d{4})-(\d{4})$`)

// ValidationError reports input rejected before any transaction is opened.
type ValidationError struct {
	Field string
	Value string
	Msg   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation: %s %q: %s", e.Field, e.Value, e.Msg)
}

// SeasonKey parses a season token into its chronological sort key (the
// start year). A malformed token yields a ValidationError.
func SeasonKey(season string) (int, error) {
	m := seasonPattern.FindStringSubmatch(season)
	if m == nil {
		return 0, &ValidationError{Field: "season", Value: season, Msg: "expected YYYY-YYYY"}
	}
	start, _ := strconv.Atoi(m[1])
	end, _ := strconv.Atoi(m[2])
	if end != start+1 {
		return 0, &ValidationError{Field: "season", Value: season, Msg: "end year must follow start year"}
	}
	return start, nil
}

// ValidateSeason checks a season token without returning the key.
func ValidateSeason(season string) error {
	_, err := SeasonKey(season)
	return err
}
