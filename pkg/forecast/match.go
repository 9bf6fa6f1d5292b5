package forecast

import (
	"fmt"
	"time"
)

// Match represents a single fixture, played or not. Goal counts use the -1
// sentinel so that a genuine 0-0 result is distinguishable from a fixture
// whose result is not yet known.
type Match struct {
	Date        time.Time `json:"date"`
	Competition string    `json:"competition"`
	Season      int       `json:"season"`
	HomeTeam    string    `json:"homeTeam"`
	AwayTeam    string    `json:"awayTeam"`
	HomeGoals   int       `json:"homeGoals"`
	AwayGoals   int       `json:"awayGoals"`
}

// NewMatch creates a Match with both goal counts defaulted to -1 (pending)
func NewMatch() *Match {
	return &Match{
		HomeGoals: -1,
		AwayGoals: -1,
	}
}

// Completed determines if the match has a known result
func (m *Match) Completed() bool {
	return m.HomeGoals >= 0 && m.AwayGoals >= 0
}

// Pending determines if the match has yet to be played
func (m *Match) Pending() bool {
	return !m.Completed()
}

// Result returns "H" for a home win, "D" for a draw, "A" for an away win
// and the empty string for a pending match
func (m *Match) Result() string {
	if !m.Completed() {
		return ""
	}
	if m.HomeGoals > m.AwayGoals {
		return "H"
	} else if m.HomeGoals < m.AwayGoals {
		return "A"
	}
	return "D"
}

// ScoreString renders the result as "2 - 1", or "" for a pending match
func (m *Match) ScoreString() string {
	if !m.Completed() {
		return ""
	}
	return fmt.Sprintf("%d - %d", m.HomeGoals, m.AwayGoals)
}

// Validate rejects malformed records at the repository boundary so that the
// model code can assume well-formed input
func (m *Match) Validate() error {
	if m.HomeTeam == "" || m.AwayTeam == "" {
		return fmt.Errorf("match is missing a team name: %q vs %q", m.HomeTeam, m.AwayTeam)
	}
	if m.HomeTeam == m.AwayTeam {
		return fmt.Errorf("match has the same team on both sides: %q", m.HomeTeam)
	}
	if m.Date.IsZero() {
		return fmt.Errorf("match %s vs %s has no date", m.HomeTeam, m.AwayTeam)
	}
	// A record with exactly one goal count present is neither completed nor
	// pending and indicates a broken upstream source
	if (m.HomeGoals >= 0) != (m.AwayGoals >= 0) {
		return fmt.Errorf("match %s vs %s has a partial result", m.HomeTeam, m.AwayTeam)
	}
	return nil
}
