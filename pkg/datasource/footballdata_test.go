package datasource_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/richard-senior/kickcast/pkg/datasource"
)

// samplePayload is a trimmed football-data.org v4 response: one played
// match, one scheduled fixture and one row without team names.
const samplePayload = `{
  "matches": [
    {
      "utcDate": "2023-08-12T14:00:00Z",
      "competition": {"code": "PL"},
      "season": {"startDate": "2023-08-11"},
      "homeTeam": {"name": "Arsenal"},
      "awayTeam": {"name": "Everton"},
      "score": {"fullTime": {"home": 2, "away": 1}}
    },
    {
      "utcDate": "2024-05-19T15:00:00Z",
      "competition": {"code": ""},
      "season": {"startDate": "2023-08-11"},
      "homeTeam": {"name": "Everton"},
      "awayTeam": {"name": "Arsenal"},
      "score": {"fullTime": {"home": null, "away": null}}
    },
    {
      "utcDate": "2023-08-13T14:00:00Z",
      "homeTeam": {"name": ""},
      "awayTeam": {"name": "Fulham"},
      "score": {"fullTime": {"home": 0, "away": 0}}
    }
  ]
}`

func TestParseMatchesPayload(t *testing.T) {
	matches, err := datasource.ParseMatchesPayload([]byte(samplePayload), "PL")
	require.NoError(t, err)
	require.Len(t, matches, 2, "the nameless row must be dropped")

	played := matches[0]
	assert.Equal(t, "Arsenal", played.HomeTeam)
	assert.Equal(t, "Everton", played.AwayTeam)
	assert.Equal(t, "PL", played.Competition)
	assert.Equal(t, 2023, played.Season)
	assert.Equal(t, time.Date(2023, 8, 12, 14, 0, 0, 0, time.UTC), played.Date)
	assert.True(t, played.Completed())
	assert.Equal(t, 2, played.HomeGoals)
	assert.Equal(t, 1, played.AwayGoals)

	fixture := matches[1]
	assert.True(t, fixture.Pending())
	assert.Equal(t, -1, fixture.HomeGoals)
	assert.Equal(t, -1, fixture.AwayGoals)
	// Empty competition codes fall back to the requested one
	assert.Equal(t, "PL", fixture.Competition)
}

func TestParseMatchesPayloadPartialScoreStaysPending(t *testing.T) {
	payload := `{"matches": [{
		"utcDate": "2023-08-12T14:00:00Z",
		"competition": {"code": "PL"},
		"homeTeam": {"name": "A"},
		"awayTeam": {"name": "B"},
		"score": {"fullTime": {"home": 1, "away": null}}
	}]}`

	matches, err := datasource.ParseMatchesPayload([]byte(payload), "PL")
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.True(t, matches[0].Pending())
}

func TestParseMatchesPayloadTruncatedSeasonStartDate(t *testing.T) {
	payload := `{"matches": [{
		"utcDate": "2023-08-12T14:00:00Z",
		"competition": {"code": "PL"},
		"season": {"startDate": "23"},
		"homeTeam": {"name": "A"},
		"awayTeam": {"name": "B"},
		"score": {"fullTime": {"home": 1, "away": 0}}
	}]}`

	matches, err := datasource.ParseMatchesPayload([]byte(payload), "PL")
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, 0, matches[0].Season, "a truncated start date leaves the season unset")
}

func TestParseMatchesPayloadSkipsDatelessRows(t *testing.T) {
	payload := `{"matches": [
		{
			"homeTeam": {"name": "A"},
			"awayTeam": {"name": "B"},
			"score": {"fullTime": {"home": 1, "away": 0}}
		},
		{
			"utcDate": "2023-08-12T14:00:00Z",
			"competition": {"code": "PL"},
			"homeTeam": {"name": "C"},
			"awayTeam": {"name": "D"},
			"score": {"fullTime": {"home": null, "away": null}}
		}
	]}`

	matches, err := datasource.ParseMatchesPayload([]byte(payload), "PL")
	require.NoError(t, err)
	require.Len(t, matches, 1, "a row without a date cannot be stored and must be dropped")
	assert.Equal(t, "C", matches[0].HomeTeam)
	assert.NoError(t, matches[0].Validate())
}

func TestParseMatchesPayloadRejectsGarbage(t *testing.T) {
	_, err := datasource.ParseMatchesPayload([]byte("not json"), "PL")
	assert.Error(t, err)

	matches, err := datasource.ParseMatchesPayload([]byte(`{"matches": []}`), "PL")
	require.NoError(t, err)
	assert.Empty(t, matches)
}
