package datasource

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/richard-senior/kickcast/internal/logger"
	"github.com/richard-senior/kickcast/pkg/forecast"
)

// openfootballLine is one newline-delimited JSON record as exported from
// openfootball and similar bulk sources. Goal counts are pointers so that
// pending fixtures (absent fields) survive the round trip.
type openfootballLine struct {
	Date        string `json:"date"`
	Competition string `json:"competition"`
	Season      any    `json:"season"`
	Home        string `json:"home"`
	Away        string `json:"away"`
	HomeGoals   *int   `json:"home_goals"`
	AwayGoals   *int   `json:"away_goals"`
}

// LoadOpenfootballFolder reads every file in the folder as newline-delimited
// JSON match records. Malformed lines and files are skipped with a warning;
// a missing folder is an error.
func LoadOpenfootballFolder(folder string) ([]*forecast.Match, error) {
	entries, err := os.ReadDir(folder)
	if err != nil {
		return nil, fmt.Errorf("failed to read folder %s: %w", folder, err)
	}

	var matches []*forecast.Match
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(folder, entry.Name())
		fileMatches, err := loadOpenfootballFile(path)
		if err != nil {
			logger.Warn("Skipping unreadable file", path, err)
			continue
		}
		matches = append(matches, fileMatches...)
	}

	logger.Info("Loaded matches from folder", folder, len(matches))
	return matches, nil
}

func loadOpenfootballFile(path string) ([]*forecast.Match, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var matches []*forecast.Match
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var raw openfootballLine
		if err := json.Unmarshal(line, &raw); err != nil {
			logger.Warn("Skipping malformed line", path, lineNo, err)
			continue
		}

		m, err := convertOpenfootballLine(&raw)
		if err != nil {
			logger.Warn("Skipping invalid match record", path, lineNo, err)
			continue
		}
		matches = append(matches, m)
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return matches, nil
}

func convertOpenfootballLine(raw *openfootballLine) (*forecast.Match, error) {
	if raw.Home == "" || raw.Away == "" {
		return nil, fmt.Errorf("missing team name")
	}

	m := forecast.NewMatch()
	m.HomeTeam = raw.Home
	m.AwayTeam = raw.Away
	m.Competition = raw.Competition

	date, err := time.Parse("2006-01-02", raw.Date)
	if err != nil {
		return nil, fmt.Errorf("bad date %q: %w", raw.Date, err)
	}
	m.Date = date

	if raw.Season != nil {
		season, err := forecast.ParseSeason(raw.Season)
		if err != nil {
			return nil, err
		}
		m.Season = season
	}

	if raw.HomeGoals != nil && raw.AwayGoals != nil {
		m.HomeGoals = *raw.HomeGoals
		m.AwayGoals = *raw.AwayGoals
	}

	return m, nil
}
