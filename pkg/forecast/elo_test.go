package forecast_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/richard-senior/kickcast/pkg/forecast"
)

func completedMatch(day int, home, away string, hg, ag int) *forecast.Match {
	m := forecast.NewMatch()
	m.Date = time.Date(2023, 8, day, 15, 0, 0, 0, time.UTC)
	m.Competition = "PL"
	m.Season = 2023
	m.HomeTeam = home
	m.AwayTeam = away
	m.HomeGoals = hg
	m.AwayGoals = ag
	return m
}

func TestUnknownTeamStartsAtBase(t *testing.T) {
	r := forecast.NewRatings()
	assert.Equal(t, 1500.0, r.Rating("Nobody"))
	assert.Equal(t, 0, r.Len(), "lookup must not create an entry")
}

func TestSingleMatchUpdate(t *testing.T) {
	r := forecast.NewRatings()

	// Equal ratings, so the expected score is exactly 0.5 and a win moves
	// each side by K * 0.5 = 10 points
	require.InDelta(t, 0.5, r.Expected("A", "B"), 1e-12)

	r.Update("A", "B", 3, 1)
	assert.InDelta(t, 1510.0, r.Rating("A"), 1e-9)
	assert.InDelta(t, 1490.0, r.Rating("B"), 1e-9)
	assert.Greater(t, r.Rating("A"), 1500.0)
	assert.Less(t, r.Rating("B"), 1500.0)
}

func TestUpdateIsZeroSum(t *testing.T) {
	cases := []struct {
		name   string
		hg, ag int
	}{
		{"home win", 4, 0},
		{"draw", 2, 2},
		{"away win", 0, 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := forecast.NewRatings()
			// Skew the table first so expectations are not 0.5
			r.Update("A", "B", 2, 0)
			r.Update("A", "C", 3, 1)

			before := r.Rating("A") + r.Rating("B")
			r.Update("A", "B", tc.hg, tc.ag)
			after := r.Rating("A") + r.Rating("B")

			assert.InDelta(t, before, after, 1e-9)
		})
	}
}

func TestDrawMovesRatingsTowardsEachOther(t *testing.T) {
	r := forecast.NewRatings()
	r.Update("Strong", "Weak", 5, 0)

	strongBefore := r.Rating("Strong")
	weakBefore := r.Rating("Weak")

	// A draw is an underperformance for the higher-rated side
	r.Update("Strong", "Weak", 1, 1)
	assert.Less(t, r.Rating("Strong"), strongBefore)
	assert.Greater(t, r.Rating("Weak"), weakBefore)
}

func TestReplayRatings(t *testing.T) {
	matches := []*forecast.Match{
		completedMatch(1, "A", "B", 3, 1),
		completedMatch(2, "B", "C", 2, 2),
		completedMatch(3, "C", "A", 0, 1),
	}

	replayed := forecast.ReplayRatings(matches)

	manual := forecast.NewRatings()
	for _, m := range matches {
		manual.Update(m.HomeTeam, m.AwayTeam, m.HomeGoals, m.AwayGoals)
	}

	assert.Equal(t, manual.Snapshot(), replayed.Snapshot())
	assert.Equal(t, 3, replayed.Len())
}

func TestReplayRatingsSkipsPendingMatches(t *testing.T) {
	pending := forecast.NewMatch()
	pending.Date = time.Date(2023, 9, 1, 15, 0, 0, 0, time.UTC)
	pending.HomeTeam = "A"
	pending.AwayTeam = "B"

	replayed := forecast.ReplayRatings([]*forecast.Match{pending})
	assert.Equal(t, 0, replayed.Len())
}
