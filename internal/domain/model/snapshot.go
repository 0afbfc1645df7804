package model

// MonthlySnapshot is a frozen (rating, position, activity) tuple for one
// player at a month boundary. Pure output: regenerated on every call,
// never persisted by the engine.
type MonthlySnapshot struct {
	Month      Month
	Rating     float64
	MatchCount int      // matches the player played this month
	Activity   []string // distinct tournament-or-name keys seen this month, in order
	Position   int      // 1-based rank among eligible players; 0 when not ranked
	Ranked     int      // total eligible players at the snapshot instant
	Bonuses    []Bonus  // promotion bonuses attributed to this month
}

// PlayerProfile is the directory view of a player consumed from outside
// the core: display data and visibility/eligibility status.
type PlayerProfile struct {
	ID           PlayerID
	DisplayName  string
	Local        bool // belongs to the league's locality
	Hidden       bool
	Blocked      bool
	Professional bool
	AlwaysShown  bool // overrides Hidden for ranking views
}

// Rankable reports whether the player may appear in public rankings of
// a league. International leagues skip the locality requirement.
func (p *PlayerProfile) Rankable(international bool) bool {
	if p.Blocked || p.Professional {
		return false
	}
	if p.Hidden && !p.AlwaysShown {
		return false
	}
	if !international && !p.Local {
		return false
	}
	return true
}
