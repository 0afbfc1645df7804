package rating

import "time"

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithFormula sets the rating formula.
func WithFormula(f *Formula) Option {
	return func(e *Engine) {
		if f != nil {
			e.formula = f
		}
	}
}

// WithGradeLookup sets the grade resolver used for seeding, grace
// detection, and floors.
func WithGradeLookup(g GradeLookup) Option {
	return func(e *Engine) {
		if g != nil {
			e.grades = g
		}
	}
}

// WithGraceGames sets the length of the unrated grace period.
func WithGraceGames(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.graceGames = n
		}
	}
}

// WithInactivityGap sets the gap that resets the returning-player
// counter and bounds the active-player window.
func WithInactivityGap(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.inactivityGap = d
		}
	}
}

// WithInitialRating seeds the estimate of players without a grade.
func WithInitialRating(r float64) Option {
	return func(e *Engine) {
		if r > 0 {
			e.initialRating = r
		}
	}
}

// WithProtectionBand sets how far below its grade anchor a protected
// rating may fall.
func WithProtectionBand(band float64) Option {
	return func(e *Engine) {
		if band >= 0 {
			e.protectionBand = band
		}
	}
}
