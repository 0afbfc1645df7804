// Package rating implements the deterministic Elo-style rating engine:
// the per-match update formula, per-run player state, and the
// single-pass, time-ordered match processor.
package rating

import "math"

// Default formula parameters.
const (
	defaultKFactor       = 32
	defaultProvisionalK  = 64
	defaultInitialRating = 1500
)

// FormulaOption applies a configuration option to the Formula.
type FormulaOption func(*Formula)

// WithKFactor sets the step size for established players.
func WithKFactor(k float64) FormulaOption {
	return func(f *Formula) {
		if k > 0 {
			f.k = k
		}
	}
}

// WithProvisionalKFactor sets the step size used while estimating an
// unrated newcomer's initial rating during the grace period.
func WithProvisionalKFactor(k float64) FormulaOption {
	return func(f *Formula) {
		if k > 0 {
			f.provisionalK = k
		}
	}
}

// Formula computes a single match's rating delta. It is a pure value:
// no state beyond its configured step sizes.
type Formula struct {
	k            float64
	provisionalK float64
}

// NewFormula creates a Formula with configuration options.
func NewFormula(opts ...FormulaOption) *Formula {
	f := &Formula{
		k:            defaultKFactor,
		provisionalK: defaultProvisionalK,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Expected returns the expected score of a player rated ra against an
// opponent rated rb.
func (f *Formula) Expected(ra, rb float64) float64 {
	return 1.0 / (1.0 + math.Pow(10, (rb-ra)/400.0))
}

// Delta returns the rating change for a player rated ra who scored
// score (1 win, 0.5 draw, 0 loss) against an opponent rated rb.
// A zero factor yields a zero delta.
func (f *Formula) Delta(ra, rb, score, factor float64) float64 {
	return f.k * factor * (score - f.Expected(ra, rb))
}

// Update returns the new rating for a player rated ra. The symmetric
// update for the opponent uses score 1-score.
func (f *Formula) Update(ra, rb, score, factor float64) float64 {
	return ra + f.Delta(ra, rb, score, factor)
}

// UpdateProvisional is Update with the provisional step size. Used only
// for the internal estimate of a grace-period player's initial rating,
// which needs to converge within a handful of games.
func (f *Formula) UpdateProvisional(ra, rb, score, factor float64) float64 {
	return ra + f.provisionalK*factor*(score-f.Expected(ra, rb))
}
