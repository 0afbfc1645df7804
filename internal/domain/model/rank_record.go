package model

import (
	"time"

	"github.com/jvolf/kifu/internal/domain/rank"
)

// RankRecord is an externally asserted grade for a player. Records are
// read-only inputs to promotion tracking; the engine never mutates them.
type RankRecord struct {
	PlayerID      PlayerID
	Grade         rank.Grade
	EffectiveDate time.Time // calendar date the grade was awarded
	Organization  string    // issuing organization
	Tournament    string    // tournament the grade was earned at, if any
}

// EffectiveFrom returns the instant the record takes effect. Promotions
// apply at the end of their effective day: a grade awarded on day D
// counts from midnight UTC of D+1. The same rule is used everywhere a
// record's effectiveness is compared against an instant.
func (r *RankRecord) EffectiveFrom() time.Time {
	d := r.EffectiveDate.UTC()
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, 1)
}

// EffectiveAt reports whether the record is in force at instant t.
func (r *RankRecord) EffectiveAt(t time.Time) bool {
	return !r.EffectiveFrom().After(t)
}

// Bonus is a one-time rating injection granted when a promotion's floor
// exceeded the computed rating. Bonuses live in a consume-once ledger
// keyed by the promotion's effective date.
type Bonus struct {
	EffectiveDate time.Time
	Amount        float64
}

// TournamentParticipant links a player to a tournament. The manual
// position (when set by an organizer) and the calculated Swiss position
// are reported side by side, never merged.
type TournamentParticipant struct {
	Tournament     string
	PlayerID       PlayerID
	ManualPosition int         // 0 when not set
	Promotion      *RankRecord // post-tournament promotion, if any
}
