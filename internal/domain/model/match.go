// Package model contains domain models passed between layers.
package model

import (
	"fmt"
	"time"
)

// PlayerID identifies a player. An empty id on a match side marks a bye.
type PlayerID string

// DefaultFactor is the rating weight of an ordinary match.
const DefaultFactor = 1.0

// Match is an immutable match event. The engine consumes matches in
// strictly ascending Timestamp order.
type Match struct {
	ID          string    // unique match identifier
	Timestamp   time.Time // when the match was played
	First       PlayerID  // first side; empty for a bye on this side
	Second      PlayerID  // second side; empty for a bye on this side
	FirstScore  float64   // points scored by the first side
	SecondScore float64   // points scored by the second side
	Factor      float64   // rating weight; 0 records the match without rating impact
	Tournament  string    // owning tournament id, if any
	Round       int       // round number within the tournament, if any
	Name        string    // display name / tag, e.g. "SWA League Night"
}

// NewMatch builds a match with the default factor.
func NewMatch(id string, ts time.Time, first, second PlayerID, firstScore, secondScore float64) Match {
	return Match{
		ID:          id,
		Timestamp:   ts,
		First:       first,
		Second:      second,
		FirstScore:  firstScore,
		SecondScore: secondScore,
		Factor:      DefaultFactor,
	}
}

// Validate checks the structural invariants of a match record.
// A match with both sides empty is refused; the engine never skips
// malformed records silently.
func (m *Match) Validate() error {
	if m.First == "" && m.Second == "" {
		return fmt.Errorf("match %q: %w", m.ID, ErrNoPlayers)
	}
	if m.First != "" && m.First == m.Second {
		return fmt.Errorf("match %q: %w", m.ID, ErrSamePlayer)
	}
	if m.Factor < 0 {
		return fmt.Errorf("match %q: %w", m.ID, ErrNegativeFactor)
	}
	if m.Timestamp.IsZero() {
		return fmt.Errorf("match %q: %w", m.ID, ErrNoTimestamp)
	}
	return nil
}

// IsBye reports whether exactly one side is empty.
func (m *Match) IsBye() bool {
	return (m.First == "") != (m.Second == "")
}

// Involves reports whether id played in this match.
func (m *Match) Involves(id PlayerID) bool {
	return id != "" && (m.First == id || m.Second == id)
}

// Opponent returns the other side of the match for id. The second
// return is false for byes or when id did not play.
func (m *Match) Opponent(id PlayerID) (PlayerID, bool) {
	switch {
	case m.First == id && m.Second != "":
		return m.Second, true
	case m.Second == id && m.First != "":
		return m.First, true
	default:
		return "", false
	}
}

// ScoreOf returns (own, opponent) points from id's perspective.
func (m *Match) ScoreOf(id PlayerID) (float64, float64) {
	if m.Second == id {
		return m.SecondScore, m.FirstScore
	}
	return m.FirstScore, m.SecondScore
}

// ActivityKey is the de-duplication key for monthly activity lists:
// the tournament id when set, otherwise the display name, otherwise
// the match id.
func (m *Match) ActivityKey() string {
	if m.Tournament != "" {
		return m.Tournament
	}
	if m.Name != "" {
		return m.Name
	}
	return m.ID
}
