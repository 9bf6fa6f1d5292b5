package forecast

import (
	"fmt"
	"strings"

	"github.com/richard-senior/kickcast/pkg/util"
)

// ParseSeason normalizes the various season labels seen in upstream data to
// the starting year of the season. Accepted forms:
//
//	2023        (already a year, int or string)
//	2023/2024   (full cross-year form)
//	2023-2024   (hyphen delimited)
//	2023/24     (abbreviated second year)
//	2023-24
//
// The starting year is what the match store filters on.
func ParseSeason(season any) (int, error) {
	if season == nil {
		return 0, fmt.Errorf("must pass a season")
	}

	ss, err := util.GetAsString(season)
	if err != nil {
		return 0, err
	}
	ss = strings.TrimSpace(ss)

	// cross-year forms: take everything before the delimiter
	if i := strings.IndexAny(ss, "/-"); i >= 0 {
		ss = ss[:i]
	}

	if len(ss) != 4 {
		return 0, fmt.Errorf("invalid season format: %q", ss)
	}

	year, err := util.GetAsInteger(ss)
	if err != nil {
		return 0, fmt.Errorf("invalid season format: %q: %w", ss, err)
	}
	if year < 1800 || year > 2200 {
		return 0, fmt.Errorf("season year %d out of range", year)
	}
	return year, nil
}

// SeasonLabel renders a starting year in the cross-year form used by most
// competition sites, e.g. 2023 -> "2023/2024"
func SeasonLabel(year int) string {
	return fmt.Sprintf("%d/%d", year, year+1)
}
