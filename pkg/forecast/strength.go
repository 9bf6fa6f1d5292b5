package forecast

// Strengths holds the fitted per-team attack/defense multipliers and the
// league-average goals rate they are normalized against. A value of 1.0
// means perfectly average; above 1.0 means scores (or concedes) more than
// the league average.
//
// Strengths are computed once per FitStrengths call from a fixed snapshot
// of completed matches. They cannot be updated incrementally; refit from
// scratch whenever the underlying match set changes.
type Strengths struct {
	Attack        map[string]float64
	Defense       map[string]float64
	LeagueAverage float64
}

// AttackFactor returns the attack multiplier for a team, or the neutral
// factor if the team is unknown. Lookups never fail.
func (s *Strengths) AttackFactor(team string) float64 {
	return factorOrNeutral(s.Attack, team)
}

// DefenseFactor returns the defense multiplier for a team, or the neutral
// factor if the team is unknown
func (s *Strengths) DefenseFactor(team string) float64 {
	return factorOrNeutral(s.Defense, team)
}

// factorOrNeutral is the single lookup-with-default used for every team
// lookup in the engine
func factorOrNeutral(factors map[string]float64, team string) float64 {
	if factors != nil {
		if f, ok := factors[team]; ok {
			return f
		}
	}
	return Config.NeutralFactor
}

// FitStrengths derives attack/defense multipliers and the league-average
// goals rate from a snapshot of completed matches. It is a pure function of
// its input: the same match set always yields the same output, and no state
// is carried between calls.
//
// This is a single-pass aggregation, not a regression. It deliberately
// trades the accuracy of iterative attack/defense estimators for an O(n)
// fit that needs no convergence handling.
func FitStrengths(matches []*Match) *Strengths {
	scored := make(map[string]int)
	conceded := make(map[string]int)
	played := make(map[string]int)

	totalGoals := 0
	appearances := 0

	for _, m := range matches {
		if !m.Completed() {
			continue
		}

		scored[m.HomeTeam] += m.HomeGoals
		conceded[m.HomeTeam] += m.AwayGoals
		played[m.HomeTeam]++

		scored[m.AwayTeam] += m.AwayGoals
		conceded[m.AwayTeam] += m.HomeGoals
		played[m.AwayTeam]++

		// Each completed match contributes two team-appearances
		totalGoals += m.HomeGoals + m.AwayGoals
		appearances += 2
	}

	// No history at all: fall back to the configured league average rather
	// than failing. Factor maps stay empty and lookups return the neutral
	// factor.
	leagueAverage := Config.FallbackLeagueAverage
	if appearances > 0 {
		leagueAverage = float64(totalGoals) / float64(appearances)
	}

	strengths := &Strengths{
		Attack:        make(map[string]float64, len(played)),
		Defense:       make(map[string]float64, len(played)),
		LeagueAverage: leagueAverage,
	}

	for team, games := range played {
		if games > 0 && leagueAverage > 0 {
			strengths.Attack[team] = (float64(scored[team]) / float64(games)) / leagueAverage
			strengths.Defense[team] = (float64(conceded[team]) / float64(games)) / leagueAverage
		} else {
			strengths.Attack[team] = Config.NeutralFactor
			strengths.Defense[team] = Config.NeutralFactor
		}
	}

	return strengths
}
