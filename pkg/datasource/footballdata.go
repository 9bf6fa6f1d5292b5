package datasource

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/richard-senior/kickcast/internal/logger"
	"github.com/richard-senior/kickcast/pkg/forecast"
)

const defaultBaseURL = "https://api.football-data.org/v4"

// FootballDataClient fetches competition fixtures and results from the
// football-data.org v4 API. All retry and timeout policy lives here; the
// forecast engine never sees a network error.
type FootballDataClient struct {
	BaseURL string
	token   string
	http    *retryablehttp.Client
}

// NewFootballDataClient creates a client authenticating with the given API
// token. The free tier works for the major European leagues.
func NewFootballDataClient(token string) *FootballDataClient {
	client := retryablehttp.NewClient()
	client.RetryMax = 3
	client.RetryWaitMin = 1 * time.Second
	client.RetryWaitMax = 10 * time.Second
	client.HTTPClient.Timeout = 30 * time.Second
	client.Logger = nil

	return &FootballDataClient{
		BaseURL: defaultBaseURL,
		token:   token,
		http:    client,
	}
}

// matchesPayload mirrors the slice of the v4 response we care about
type matchesPayload struct {
	Matches []struct {
		UTCDate     string `json:"utcDate"`
		Competition struct {
			Code string `json:"code"`
		} `json:"competition"`
		Season struct {
			StartDate string `json:"startDate"`
		} `json:"season"`
		HomeTeam struct {
			Name string `json:"name"`
		} `json:"homeTeam"`
		AwayTeam struct {
			Name string `json:"name"`
		} `json:"awayTeam"`
		Score struct {
			FullTime struct {
				Home *int `json:"home"`
				Away *int `json:"away"`
			} `json:"fullTime"`
		} `json:"score"`
	} `json:"matches"`
}

// CompetitionMatches fetches all matches (played and scheduled) for a
// competition code like "PL". Season 0 means the provider's current season.
func (c *FootballDataClient) CompetitionMatches(ctx context.Context, code string, season int) ([]*forecast.Match, error) {
	url := fmt.Sprintf("%s/competitions/%s/matches", c.BaseURL, code)
	if season != 0 {
		url = fmt.Sprintf("%s?season=%d", url, season)
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	if c.token != "" {
		req.Header.Set("X-Auth-Token", c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch matches for %s: %w", code, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		return nil, fmt.Errorf("unexpected status %d fetching matches for %s", resp.StatusCode, code)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	matches, err := ParseMatchesPayload(body, code)
	if err != nil {
		return nil, err
	}

	logger.Info("Fetched matches for competition", code, len(matches))
	return matches, nil
}

// ParseMatchesPayload decodes a football-data.org matches response into
// match records. Rows missing a team name are dropped rather than passed
// through to the repository.
func ParseMatchesPayload(data []byte, fallbackCompetition string) ([]*forecast.Match, error) {
	var payload matchesPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("failed to decode matches payload: %w", err)
	}

	matches := make([]*forecast.Match, 0, len(payload.Matches))
	for _, raw := range payload.Matches {
		if raw.HomeTeam.Name == "" || raw.AwayTeam.Name == "" {
			logger.Warn("Skipping match with missing team name", raw.UTCDate)
			continue
		}

		m := forecast.NewMatch()
		m.HomeTeam = raw.HomeTeam.Name
		m.AwayTeam = raw.AwayTeam.Name

		m.Competition = raw.Competition.Code
		if m.Competition == "" {
			m.Competition = fallbackCompetition
		}

		if raw.UTCDate == "" {
			logger.Warn("Skipping match with no date", raw.HomeTeam.Name, raw.AwayTeam.Name)
			continue
		}
		t, err := time.Parse(time.RFC3339, raw.UTCDate)
		if err != nil {
			logger.Warn("Skipping match with unparseable date", raw.UTCDate, err)
			continue
		}
		m.Date = t

		// Season start dates shorter than a year are provider garbage; leave
		// the season unset rather than failing the row
		if len(raw.Season.StartDate) >= 4 {
			if year, err := forecast.ParseSeason(raw.Season.StartDate[:4]); err == nil {
				m.Season = year
			}
		}

		// A fullTime score with both sides present marks a completed match;
		// anything else stays pending
		if raw.Score.FullTime.Home != nil && raw.Score.FullTime.Away != nil {
			m.HomeGoals = *raw.Score.FullTime.Home
			m.AwayGoals = *raw.Score.FullTime.Away
		}

		matches = append(matches, m)
	}

	return matches, nil
}
