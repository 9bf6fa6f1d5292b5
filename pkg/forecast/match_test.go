package forecast_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/richard-senior/kickcast/pkg/forecast"
)

func TestMatchLifecycle(t *testing.T) {
	m := forecast.NewMatch()
	assert.Equal(t, -1, m.HomeGoals)
	assert.Equal(t, -1, m.AwayGoals)
	assert.True(t, m.Pending())
	assert.False(t, m.Completed())
	assert.Equal(t, "", m.Result())

	m.HomeGoals = 2
	m.AwayGoals = 2
	assert.True(t, m.Completed())
	assert.Equal(t, "D", m.Result())
	assert.Equal(t, "2 - 2", m.ScoreString())
}

func TestMatchResult(t *testing.T) {
	home := completedMatch(1, "A", "B", 3, 1)
	assert.Equal(t, "H", home.Result())

	away := completedMatch(2, "A", "B", 0, 2)
	assert.Equal(t, "A", away.Result())
}

func TestMatchValidate(t *testing.T) {
	valid := completedMatch(1, "A", "B", 1, 0)
	assert.NoError(t, valid.Validate())

	missingName := completedMatch(1, "", "B", 1, 0)
	assert.Error(t, missingName.Validate())

	sameTeam := completedMatch(1, "A", "A", 1, 0)
	assert.Error(t, sameTeam.Validate())

	noDate := completedMatch(1, "A", "B", 1, 0)
	noDate.Date = time.Time{}
	assert.Error(t, noDate.Validate())

	partial := completedMatch(1, "A", "B", 1, 0)
	partial.AwayGoals = -1
	assert.Error(t, partial.Validate(), "a result needs both goal counts")
}
