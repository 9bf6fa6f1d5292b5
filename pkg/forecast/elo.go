package forecast

import "math"

// Ratings maintains one scalar Elo-style skill rating per team, updated
// sequentially over a chronologically ordered match history. Each instance
// owns its own rating map with an independent lifetime; there is no shared
// state between instances.
//
// Update is not safe for concurrent use on the same instance. Callers that
// replay histories in parallel must use one instance per worker.
type Ratings struct {
	K       float64
	Base    float64
	ratings map[string]float64
}

// NewRatings creates a fresh rating table using the configured K factor and
// base rating
func NewRatings() *Ratings {
	return &Ratings{
		K:       Config.KFactor,
		Base:    Config.BaseRating,
		ratings: make(map[string]float64),
	}
}

// Rating returns the current rating for a team. Teams that have never been
// observed sit at the base rating; looking one up is not an error and does
// not mutate the table.
func (r *Ratings) Rating(team string) float64 {
	if val, ok := r.ratings[team]; ok {
		return val
	}
	return r.Base
}

// Expected returns the expected score of team a against team b under the
// standard logistic curve with a 400-point scale
func (r *Ratings) Expected(a, b string) float64 {
	ra := r.Rating(a)
	rb := r.Rating(b)
	return 1.0 / (1.0 + math.Pow(10, (rb-ra)/400.0))
}

// Update applies one completed match to both teams' ratings. The adjustment
// is zero-sum: whatever a gains, b loses. Matches must be applied in
// non-decreasing date order for the ratings to be meaningful; ordering is
// the caller's responsibility since the model carries no timestamps.
func (r *Ratings) Update(a, b string, goalsA, goalsB int) {
	ea := r.Expected(a, b)

	var sa float64
	if goalsA > goalsB {
		sa = 1.0
	} else if goalsA == goalsB {
		sa = 0.5
	}

	r.ratings[a] = r.Rating(a) + r.K*(sa-ea)
	r.ratings[b] = r.Rating(b) + r.K*((1.0-sa)-(1.0-ea))
}

// Len returns the number of teams that have been observed
func (r *Ratings) Len() int {
	return len(r.ratings)
}

// Snapshot returns a copy of the rating map, keyed by team name
func (r *Ratings) Snapshot() map[string]float64 {
	out := make(map[string]float64, len(r.ratings))
	for team, rating := range r.ratings {
		out[team] = rating
	}
	return out
}

// ReplayRatings builds a rating table by applying every completed match in
// the given slice, in order, to a fresh Ratings instance. Pending matches
// are skipped. The slice is expected to be in ascending date order, as
// returned by MatchStore.ListCompleted.
func ReplayRatings(matches []*Match) *Ratings {
	ratings := NewRatings()
	for _, m := range matches {
		if !m.Completed() {
			continue
		}
		ratings.Update(m.HomeTeam, m.AwayTeam, m.HomeGoals, m.AwayGoals)
	}
	return ratings
}
