package rating

import (
	"time"

	"github.com/jvolf/kifu/internal/domain/model"
	"github.com/jvolf/kifu/internal/domain/rank"
)

// PlayerState is the per-player accumulator owned by exactly one Engine
// run. It is created lazily on first reference and discarded wholesale
// on Reset, so no transient calculation field ever leaks between runs.
type PlayerState struct {
	ID     model.PlayerID
	Rating float64

	FirstMatch time.Time
	LastMatch  time.Time
	PrevMatch  time.Time

	// Matches counts every recorded game, byes and factor-0 games
	// included.
	Matches int

	// MatchesSinceReturn restarts from zero whenever the gap since the
	// previous game exceeds the inactivity threshold; it flags players
	// returning from a long break.
	MatchesSinceReturn int

	Wins   int
	Losses int
	Draws  int

	// InitialGrade is the grade in force at the player's first game.
	// Unknown triggers the grace period.
	InitialGrade rank.Grade

	// Estimate carries the converging initial-rating estimate while the
	// player is in the grace period; it becomes the public Rating on
	// the game that ends the grace period.
	Estimate float64
}

// ActiveAt reports whether the player has played within window before
// asOf.
func (s *PlayerState) ActiveAt(asOf time.Time, window time.Duration) bool {
	if s.LastMatch.IsZero() {
		return false
	}
	return !s.LastMatch.Before(asOf.Add(-window)) && !s.LastMatch.After(asOf)
}
