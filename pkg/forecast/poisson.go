package forecast

import (
	"math"
	"sort"
)

// Scoreline is one exact-score outcome with its probability under the
// independent-Poisson model
type Scoreline struct {
	HomeGoals   int     `json:"homeGoals"`
	AwayGoals   int     `json:"awayGoals"`
	Probability float64 `json:"probability"`
}

// Prediction is the forecast for a single fixture. Probabilities are taken
// over the truncated scoreline grid, so HomeWin + Draw + AwayWin equals the
// total grid mass and is strictly less than 1; the remainder is the
// negligible tail beyond ScoreGridBound goals per side.
type Prediction struct {
	HomeTeam   string      `json:"homeTeam"`
	AwayTeam   string      `json:"awayTeam"`
	LambdaHome float64     `json:"lambdaHome"`
	LambdaAway float64     `json:"lambdaAway"`
	Scorelines []Scoreline `json:"scorelines"`
	HomeWin    float64     `json:"homeWin"`
	Draw       float64     `json:"draw"`
	AwayWin    float64     `json:"awayWin"`
}

// TopScoreline returns the most likely exact score
func (p *Prediction) TopScoreline() Scoreline {
	return p.Scorelines[0]
}

// PoissonPMF calculates P(X = k) where X ~ Poisson(lambda), computed in log
// space for numerical stability
func PoissonPMF(k int, lambda float64) float64 {
	if k < 0 {
		return 0
	}
	if lambda <= 0 {
		if k == 0 {
			return 1.0
		}
		return 0
	}
	logProb := float64(k)*math.Log(lambda) - lambda - logFactorial(k)
	return math.Exp(logProb)
}

// logFactorial computes log(n!)
func logFactorial(n int) float64 {
	result := 0.0
	for i := 2; i <= n; i++ {
		result += math.Log(float64(i))
	}
	return result
}

// Predict forecasts a fixture using the configured home advantage.
// Pure and safe to call concurrently across independent argument sets.
func Predict(home, away string, strengths *Strengths) *Prediction {
	return PredictWithAdvantage(home, away, strengths, Config.HomeAdvantage)
}

// PredictWithAdvantage forecasts a fixture with an explicit home-advantage
// multiplier. Unknown teams are forecast with neutral factors; no lookup in
// here can fail.
func PredictWithAdvantage(home, away string, strengths *Strengths, homeAdvantage float64) *Prediction {
	lambdaHome := strengths.LeagueAverage * strengths.AttackFactor(home) * strengths.DefenseFactor(away) * homeAdvantage
	lambdaAway := strengths.LeagueAverage * strengths.AttackFactor(away) * strengths.DefenseFactor(home)

	prediction := &Prediction{
		HomeTeam:   home,
		AwayTeam:   away,
		LambdaHome: lambdaHome,
		LambdaAway: lambdaAway,
	}

	// Fixed 7x7 grid in enumeration order: home goals ascending, then away
	// goals ascending. The enumeration order doubles as the tie break below.
	grid := make([]Scoreline, 0, (ScoreGridBound+1)*(ScoreGridBound+1))
	for gh := 0; gh <= ScoreGridBound; gh++ {
		pmfHome := PoissonPMF(gh, lambdaHome)
		for ga := 0; ga <= ScoreGridBound; ga++ {
			p := pmfHome * PoissonPMF(ga, lambdaAway)
			grid = append(grid, Scoreline{HomeGoals: gh, AwayGoals: ga, Probability: p})

			switch {
			case gh > ga:
				prediction.HomeWin += p
			case gh == ga:
				prediction.Draw += p
			default:
				prediction.AwayWin += p
			}
		}
	}

	// Probability descending. The stable sort keeps grid enumeration order
	// for exactly-equal probabilities, which happens at low rates where
	// distinct cells share a floating point value.
	sort.SliceStable(grid, func(i, j int) bool {
		return grid[i].Probability > grid[j].Probability
	})

	top := Config.TopScorelines
	if top > len(grid) {
		top = len(grid)
	}
	prediction.Scorelines = grid[:top]

	return prediction
}
