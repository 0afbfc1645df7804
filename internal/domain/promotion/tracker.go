package promotion

import (
	"time"

	"github.com/jvolf/kifu/internal/domain/model"
	"github.com/jvolf/kifu/internal/domain/rating"
)

// Default tracker parameters.
const defaultProtectionBand = 100

// Ratings is the engine view the tracker needs: read a rating, raise it
// to a floor, and inspect per-player run state.
type Ratings interface {
	RatingOf(id model.PlayerID) (float64, error)
	ApplyFloor(id model.PlayerID, floor float64) bool
	State(id model.PlayerID) (rating.PlayerState, bool)
	Players() []model.PlayerID
}

// TrackerOption applies a configuration option to the Tracker.
type TrackerOption func(*Tracker)

// WithProtectionBand sets how far below a grade anchor its bonus floor
// sits. Must match the engine's band for consistent floors.
func WithProtectionBand(band float64) TrackerOption {
	return func(t *Tracker) {
		if band >= 0 {
			t.band = band
		}
	}
}

// Tracker injects one-time rating bonuses when a recorded promotion
// outruns the computed rating, and owns the consume-once bonus ledger.
type Tracker struct {
	ratings Ratings
	history *History
	ledger  *Ledger
	band    float64
}

// NewTracker creates a Tracker over the given engine view and rank
// history.
func NewTracker(ratings Ratings, history *History, opts ...TrackerOption) *Tracker {
	t := &Tracker{
		ratings: ratings,
		history: history,
		ledger:  NewLedger(),
		band:    defaultProtectionBand,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Check compares the player's computed rating against the floor implied
// by the newest rank record effective on or before asOf. When the
// record is a promotion and the rating sits below the floor, the rating
// is raised once and the bonus recorded in the ledger. Repeated calls
// for different as-of instants are idempotent with respect to the
// ledger: snapshot building re-checks at every month boundary.
// It reports whether a bonus was injected.
func (t *Tracker) Check(id model.PlayerID, asOf time.Time) bool {
	rec, prev, ok := t.history.effectiveAt(id, asOf)
	if !ok || rec.Grade <= prev {
		return false
	}

	r, err := t.ratings.RatingOf(id)
	if err != nil {
		// Unrated or grace-period players take no promotion bonus.
		return false
	}
	floor := rec.Grade.Floor(t.band)
	if r >= floor {
		return false
	}
	if !t.ratings.ApplyFloor(id, floor) {
		return false
	}
	return t.ledger.Add(id, model.Bonus{
		EffectiveDate: rec.EffectiveDate,
		Amount:        floor - r,
	})
}

// CheckAll runs Check for every player the run has seen. Returns the
// number of bonuses injected.
func (t *Tracker) CheckAll(asOf time.Time) int {
	n := 0
	for _, id := range t.ratings.Players() {
		if t.Check(id, asOf) {
			n++
		}
	}
	return n
}

// Consume returns and removes the player's bonuses effective in
// [from, to). Bonuses dated before the player's very first recorded
// match predate their participation and are dropped without being
// surfaced.
func (t *Tracker) Consume(id model.PlayerID, from, to time.Time) []model.Bonus {
	consumed := t.ledger.Consume(id, from, to)
	if len(consumed) == 0 {
		return nil
	}
	s, ok := t.ratings.State(id)
	if !ok {
		return nil
	}
	out := consumed[:0]
	for _, b := range consumed {
		if b.EffectiveDate.Before(s.FirstMatch) {
			continue
		}
		out = append(out, b)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

// Pending returns the number of unconsumed ledger entries.
func (t *Tracker) Pending() int {
	return t.ledger.Size()
}
