package rating

import (
	"fmt"
	"time"

	"github.com/jvolf/kifu/internal/domain/model"
	"github.com/jvolf/kifu/internal/domain/rank"
)

// Default engine parameters.
const (
	defaultGraceGames     = 12
	defaultInactivityGap  = 2 * 365 * 24 * time.Hour
	defaultProtectionBand = 100
)

// GradeLookup resolves a player's externally asserted grades. The
// engine uses it to seed starting ratings, detect the unrated grace
// period, and derive protected floors at finalize time.
type GradeLookup interface {
	// GradeAt is the grade in force at the given instant, honoring the
	// end-of-day effectiveness rule.
	GradeAt(id model.PlayerID, at time.Time) rank.Grade
}

// noGrades is the fallback lookup: every player is unrated.
type noGrades struct{}

func (noGrades) GradeAt(model.PlayerID, time.Time) rank.Grade { return rank.Unknown }

// Engine is a single-pass, time-ordered match processor. One Engine
// instance owns one run's PlayerState set; Reset must be called before
// reusing an instance for an independent run.
type Engine struct {
	formula *Formula
	grades  GradeLookup

	graceGames     int
	inactivityGap  time.Duration
	initialRating  float64
	protectionBand float64

	states    map[model.PlayerID]*PlayerState
	finalized bool
}

// NewEngine creates an Engine with configuration options.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		formula:        NewFormula(),
		grades:         noGrades{},
		graceGames:     defaultGraceGames,
		inactivityGap:  defaultInactivityGap,
		initialRating:  defaultInitialRating,
		protectionBand: defaultProtectionBand,
		states:         make(map[model.PlayerID]*PlayerState),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Reset discards every PlayerState, returning the engine to its empty
// pre-run state. Required before each independent run.
func (e *Engine) Reset() {
	e.states = make(map[model.PlayerID]*PlayerState)
	e.finalized = false
}

// state returns the PlayerState for id, creating it lazily. A new
// player is seeded with the grade in force at ts, their first game;
// a record that only becomes effective later must not preempt the
// unrated grace period.
func (e *Engine) state(id model.PlayerID, ts time.Time) *PlayerState {
	s, ok := e.states[id]
	if !ok {
		grade := e.grades.GradeAt(id, ts)
		s = &PlayerState{
			ID:           id,
			InitialGrade: grade,
			Estimate:     e.initialRating,
		}
		if !grade.IsUnknown() {
			s.Rating = grade.Rating()
		}
		e.states[id] = s
	}
	return s
}

// inGrace reports whether s is still in the unrated grace period.
func (e *Engine) inGrace(s *PlayerState) bool {
	return s.InitialGrade.IsUnknown() && s.Matches < e.graceGames
}

// effectiveRating is the rating the formula sees: the internal estimate
// for grace-period players, the public rating otherwise.
func (e *Engine) effectiveRating(s *PlayerState) float64 {
	if e.inGrace(s) {
		return s.Estimate
	}
	return s.Rating
}

// touch records activity for s at ts: timestamps, lifetime count, and
// the returning-player counter.
func (e *Engine) touch(s *PlayerState, ts time.Time) {
	if s.FirstMatch.IsZero() {
		s.FirstMatch = ts
	}
	if !s.LastMatch.IsZero() && ts.Sub(s.LastMatch) > e.inactivityGap {
		s.MatchesSinceReturn = 0
	}
	s.PrevMatch = s.LastMatch
	s.LastMatch = ts
	s.Matches++
	s.MatchesSinceReturn++
}

// tally records the win/loss/draw outcome for s given own and opponent
// points.
func tally(s *PlayerState, own, opp float64) {
	switch {
	case own > opp:
		s.Wins++
	case own < opp:
		s.Losses++
	default:
		s.Draws++
	}
}

// AddMatch feeds one match into the run. Matches must arrive in
// ascending timestamp order. Malformed records are refused, never
// skipped.
func (e *Engine) AddMatch(m *model.Match) error {
	if e.finalized {
		return ErrFinalized
	}
	if err := m.Validate(); err != nil {
		return err
	}

	if m.IsBye() {
		// A bye updates the real side's tally and activity but never
		// touches the formula: there is no opponent rating, and no
		// state is created for the empty side.
		id := m.First
		if id == "" {
			id = m.Second
		}
		s := e.state(id, m.Timestamp)
		e.touch(s, m.Timestamp)
		if m.Factor > 0 {
			own, opp := m.ScoreOf(id)
			tally(s, own, opp)
		}
		return nil
	}

	a := e.state(m.First, m.Timestamp)
	b := e.state(m.Second, m.Timestamp)

	var sa float64
	switch {
	case m.FirstScore > m.SecondScore:
		sa = 1
	case m.FirstScore < m.SecondScore:
		sa = 0
	default:
		sa = 0.5
	}

	ra := e.effectiveRating(a)
	rb := e.effectiveRating(b)
	graceA := e.inGrace(a)
	graceB := e.inGrace(b)

	e.touch(a, m.Timestamp)
	e.touch(b, m.Timestamp)
	tally(a, m.FirstScore, m.SecondScore)
	tally(b, m.SecondScore, m.FirstScore)

	e.apply(a, graceA, ra, rb, sa, m.Factor)
	e.apply(b, graceB, rb, ra, 1-sa, m.Factor)
	return nil
}

// apply routes the formula update to the public rating or, during the
// grace period, to the converging initial-rating estimate. The game
// that completes the grace period publishes the estimate.
func (e *Engine) apply(s *PlayerState, grace bool, own, opp, score, factor float64) {
	if grace {
		s.Estimate = e.formula.UpdateProvisional(own, opp, score, factor)
		if s.Matches >= e.graceGames {
			s.Rating = s.Estimate
		}
		return
	}
	s.Rating = e.formula.Update(own, opp, score, factor)
}

// RatingOf returns the player's public rating. It returns ErrUnrated
// when the player has never been added or is still in the grace period,
// so callers can fall back to a grade-derived estimate.
func (e *Engine) RatingOf(id model.PlayerID) (float64, error) {
	s, ok := e.states[id]
	if !ok {
		return 0, fmt.Errorf("player %s: %w", id, ErrUnrated)
	}
	if e.inGrace(s) {
		return 0, fmt.Errorf("player %s in grace period: %w", id, ErrUnrated)
	}
	return s.Rating, nil
}

// EstimateOf exposes the internal initial-rating estimate of a
// grace-period player. The second return is false when the player is
// unknown or already publicly rated.
func (e *Engine) EstimateOf(id model.PlayerID) (float64, bool) {
	s, ok := e.states[id]
	if !ok || !e.inGrace(s) {
		return 0, false
	}
	return s.Estimate, true
}

// FinalRating is the floored view of a player's rating at asOf: the
// public rating raised to the protected floor of the grade in force.
// Grace-period players have no floor and no public rating.
func (e *Engine) FinalRating(id model.PlayerID, asOf time.Time) (float64, error) {
	r, err := e.RatingOf(id)
	if err != nil {
		return 0, err
	}
	grade := e.grades.GradeAt(id, asOf)
	if floor := grade.Floor(e.protectionBand); r < floor {
		return floor, nil
	}
	return r, nil
}

// ApplyFloor raises the player's rating to floor. It reports whether
// the rating changed. Grace-period players are never floored.
func (e *Engine) ApplyFloor(id model.PlayerID, floor float64) bool {
	s, ok := e.states[id]
	if !ok || e.inGrace(s) {
		return false
	}
	if s.Rating < floor {
		s.Rating = floor
		return true
	}
	return false
}

// Finalize applies protected-rating floors as of the given instant and
// marks the run read-only. It must be called exactly once per run,
// after all matches and promotion checks.
func (e *Engine) Finalize(asOf time.Time) error {
	if e.finalized {
		return ErrFinalized
	}
	for id, s := range e.states {
		if e.inGrace(s) {
			continue
		}
		grade := e.grades.GradeAt(id, asOf)
		if floor := grade.Floor(e.protectionBand); s.Rating < floor {
			s.Rating = floor
		}
	}
	e.finalized = true
	return nil
}

// State returns a copy of the player's accumulator.
func (e *Engine) State(id model.PlayerID) (PlayerState, bool) {
	s, ok := e.states[id]
	if !ok {
		return PlayerState{}, false
	}
	return *s, true
}

// Players returns every player referenced so far, in no particular
// order.
func (e *Engine) Players() []model.PlayerID {
	ids := make([]model.PlayerID, 0, len(e.states))
	for id := range e.states {
		ids = append(ids, id)
	}
	return ids
}

// ActivePlayers returns the players whose last game falls within the
// inactivity window ending at asOf. Grace-period players are included;
// rankability filtering is the caller's concern.
func (e *Engine) ActivePlayers(asOf time.Time) []model.PlayerID {
	var ids []model.PlayerID
	for id, s := range e.states {
		if s.ActiveAt(asOf, e.inactivityGap) {
			ids = append(ids, id)
		}
	}
	return ids
}

// InGracePeriod reports whether the player is still in the unrated
// grace period.
func (e *Engine) InGracePeriod(id model.PlayerID) bool {
	s, ok := e.states[id]
	return ok && e.inGrace(s)
}

// Formula exposes the configured formula for hypothetical (forecast)
// computations.
func (e *Engine) Formula() *Formula {
	return e.formula
}
