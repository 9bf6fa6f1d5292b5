package forecast

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/richard-senior/kickcast/internal/logger"
	_ "modernc.org/sqlite"
)

// MatchStore is the match repository: a sqlite-backed table of completed
// and pending fixtures. It is the only component in the engine that
// performs I/O.
type MatchStore struct {
	db *sql.DB
}

const createMatchTableSQL = `
CREATE TABLE IF NOT EXISTS match (
	date        TEXT NOT NULL,
	competition TEXT NOT NULL,
	season      INTEGER NOT NULL,
	home_team   TEXT NOT NULL,
	away_team   TEXT NOT NULL,
	home_goals  INTEGER DEFAULT -1,
	away_goals  INTEGER DEFAULT -1,
	PRIMARY KEY (date, competition, season, home_team, away_team)
)`

var matchIndexSQL = []string{
	"CREATE INDEX IF NOT EXISTS idx_match_competition ON match(competition)",
	"CREATE INDEX IF NOT EXISTS idx_match_season ON match(season)",
	"CREATE INDEX IF NOT EXISTS idx_match_date ON match(date)",
}

// OpenMatchStore opens (creating if necessary) the match database at the
// given path.
func OpenMatchStore(path string) (*MatchStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	store := &MatchStore{db: db}
	if err := store.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}

	logger.Info("Match store initialized", path)
	return store, nil
}

// Close closes the underlying database connection
func (s *MatchStore) Close() error {
	return s.db.Close()
}

func (s *MatchStore) ensureSchema() error {
	if _, err := s.db.Exec(createMatchTableSQL); err != nil {
		return fmt.Errorf("failed to create match table: %w", err)
	}
	for _, query := range matchIndexSQL {
		if _, err := s.db.Exec(query); err != nil {
			logger.Warn("Failed to create index", err)
		}
	}
	return nil
}

// SaveMatch validates and upserts a single match. Re-saving a fixture whose
// result has since become known overwrites the pending row.
func (s *MatchStore) SaveMatch(m *Match) error {
	if err := m.Validate(); err != nil {
		return fmt.Errorf("rejecting malformed match: %w", err)
	}

	_, err := s.db.Exec(
		`INSERT OR REPLACE INTO match (date, competition, season, home_team, away_team, home_goals, away_goals)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		m.Date.UTC().Format(time.RFC3339), m.Competition, m.Season,
		m.HomeTeam, m.AwayTeam, m.HomeGoals, m.AwayGoals,
	)
	if err != nil {
		return fmt.Errorf("failed to save match %s vs %s: %w", m.HomeTeam, m.AwayTeam, err)
	}
	return nil
}

// SaveMatches upserts a batch of matches in a single transaction. Any
// malformed record aborts the batch.
func (s *MatchStore) SaveMatches(matches []*Match) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(
		`INSERT OR REPLACE INTO match (date, competition, season, home_team, away_team, home_goals, away_goals)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, m := range matches {
		if err := m.Validate(); err != nil {
			return fmt.Errorf("rejecting malformed match: %w", err)
		}
		if _, err := stmt.Exec(
			m.Date.UTC().Format(time.RFC3339), m.Competition, m.Season,
			m.HomeTeam, m.AwayTeam, m.HomeGoals, m.AwayGoals,
		); err != nil {
			return fmt.Errorf("failed to save match %s vs %s: %w", m.HomeTeam, m.AwayTeam, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	logger.Debug("Saved matches", len(matches))
	return nil
}

// ListCompleted returns matches with known results, ascending by date.
// Competition "" and season 0 mean "all"; both filters are available on
// every query path.
func (s *MatchStore) ListCompleted(competition string, season int) ([]*Match, error) {
	return s.list("home_goals >= 0 AND away_goals >= 0", competition, season)
}

// ListPending returns fixtures whose results are not yet known, ascending
// by date, with the same uniform competition/season filtering as
// ListCompleted
func (s *MatchStore) ListPending(competition string, season int) ([]*Match, error) {
	return s.list("home_goals < 0 AND away_goals < 0", competition, season)
}

func (s *MatchStore) list(resultClause string, competition string, season int) ([]*Match, error) {
	var conditions []string
	var args []any

	conditions = append(conditions, resultClause)
	if competition != "" {
		conditions = append(conditions, "competition = ?")
		args = append(args, competition)
	}
	if season != 0 {
		conditions = append(conditions, "season = ?")
		args = append(args, season)
	}

	query := fmt.Sprintf(
		`SELECT date, competition, season, home_team, away_team, home_goals, away_goals
		 FROM match WHERE %s ORDER BY date ASC`,
		strings.Join(conditions, " AND "))

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query matches: %w", err)
	}
	defer rows.Close()

	var matches []*Match
	for rows.Next() {
		m := NewMatch()
		var dateStr string
		if err := rows.Scan(&dateStr, &m.Competition, &m.Season, &m.HomeTeam, &m.AwayTeam, &m.HomeGoals, &m.AwayGoals); err != nil {
			return nil, fmt.Errorf("failed to scan match row: %w", err)
		}
		m.Date, err = time.Parse(time.RFC3339, dateStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse match date %q: %w", dateStr, err)
		}
		matches = append(matches, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating match rows: %w", err)
	}

	return matches, nil
}

// CountMatches returns the total number of rows in the store
func (s *MatchStore) CountMatches() (int, error) {
	var count int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM match").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count matches: %w", err)
	}
	return count, nil
}
