package forecast

import (
	"fmt"

	"github.com/richard-senior/kickcast/internal/logger"
)

// Models bundles the rating table and fitted strengths derived from one
// snapshot of completed matches. Both members must come from the same
// snapshot for a forecast run to be internally consistent; BuildModels
// guarantees this by loading the history exactly once. Callers assembling a
// Models by hand take on that contract themselves.
type Models struct {
	Ratings   *Ratings
	Strengths *Strengths
}

// MatchForecast pairs a pending fixture with its prediction
type MatchForecast struct {
	Match      *Match      `json:"match"`
	Prediction *Prediction `json:"prediction"`
}

// BuildModels loads the completed-match history for the given competition
// and season (zero values mean "all") and derives both models from that
// single snapshot
func BuildModels(store *MatchStore, competition string, season int) (*Models, error) {
	completed, err := store.ListCompleted(competition, season)
	if err != nil {
		return nil, fmt.Errorf("failed to load completed matches: %w", err)
	}

	logger.Info("Building models from completed matches", len(completed))

	return &Models{
		Ratings:   ReplayRatings(completed),
		Strengths: FitStrengths(completed),
	}, nil
}

// PredictUpcoming forecasts every pending fixture for the given competition
// and season. Fixtures come back in the store's date order.
func PredictUpcoming(store *MatchStore, models *Models, competition string, season int) ([]*MatchForecast, error) {
	pending, err := store.ListPending(competition, season)
	if err != nil {
		return nil, fmt.Errorf("failed to load pending fixtures: %w", err)
	}

	forecasts := make([]*MatchForecast, 0, len(pending))
	for _, m := range pending {
		forecasts = append(forecasts, &MatchForecast{
			Match:      m,
			Prediction: Predict(m.HomeTeam, m.AwayTeam, models.Strengths),
		})
	}

	logger.Info("Forecast pending fixtures", len(forecasts))
	return forecasts, nil
}
