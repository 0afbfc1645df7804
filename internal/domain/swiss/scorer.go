// Package swiss computes Swiss-system tournament standings: per-player
// tallies, Sum-of-Opponents'-Scores tie-breaks, and a fully tie-broken
// standings order. It is independent of the rating engine.
package swiss

import (
	"sort"

	"github.com/jvolf/kifu/internal/domain/model"
)

// PlayerScore is one player's tournament tally with tie-break
// statistics and the calculated position.
type PlayerScore struct {
	Player model.PlayerID

	// Wins is the Swiss score: outright wins plus 0.5 per draw.
	Wins     float64
	WinCount int // outright wins only
	Losses   int
	Draws    int

	PointsFor     float64
	PointsAgainst float64

	// Opponents lists real opponents in play order. Byes register no
	// opponent and therefore never affect anyone's SOS or SOSOS.
	Opponents []model.PlayerID

	SOS   float64 // sum of opponents' Swiss scores
	SOSOS float64 // sum of opponents' SOS

	// Position is 1-based. Every undefeated player with at least one
	// win shares position 1; numbering for the rest continues from
	// their true index in the sorted order.
	Position int
}

// Undefeated reports whether the player has no losses and at least one
// outright win.
func (p *PlayerScore) Undefeated() bool {
	return p.Losses == 0 && p.WinCount >= 1
}

// pointDiff is the points-for minus points-against tie-break.
func (p *PlayerScore) pointDiff() float64 {
	return p.PointsFor - p.PointsAgainst
}

// Option applies a configuration option to standings construction.
type Option func(*config)

type config struct {
	name func(model.PlayerID) string
}

// WithNamer supplies display names for the deterministic final
// tie-break. Without it, player ids are compared.
func WithNamer(name func(model.PlayerID) string) Option {
	return func(c *config) {
		if name != nil {
			c.name = name
		}
	}
}

// Score tallies a tournament's matches into per-player scores with SOS
// and SOSOS filled in. Positions are not assigned; see Standings.
func Score(matches []model.Match) (map[model.PlayerID]*PlayerScore, error) {
	scores := make(map[model.PlayerID]*PlayerScore)
	get := func(id model.PlayerID) *PlayerScore {
		s, ok := scores[id]
		if !ok {
			s = &PlayerScore{Player: id}
			scores[id] = s
		}
		return s
	}

	for i := range matches {
		m := &matches[i]
		if err := m.Validate(); err != nil {
			return nil, err
		}

		if m.IsBye() {
			id := m.First
			if id == "" {
				id = m.Second
			}
			s := get(id)
			own, opp := m.ScoreOf(id)
			record(s, own, opp)
			continue
		}

		a := get(m.First)
		b := get(m.Second)
		record(a, m.FirstScore, m.SecondScore)
		record(b, m.SecondScore, m.FirstScore)
		a.Opponents = append(a.Opponents, m.Second)
		b.Opponents = append(b.Opponents, m.First)
	}

	for _, s := range scores {
		for _, opp := range s.Opponents {
			s.SOS += scores[opp].Wins
		}
	}
	for _, s := range scores {
		for _, opp := range s.Opponents {
			s.SOSOS += scores[opp].SOS
		}
	}
	return scores, nil
}

// record books one game's outcome and points onto s.
func record(s *PlayerScore, own, opp float64) {
	s.PointsFor += own
	s.PointsAgainst += opp
	switch {
	case own > opp:
		s.Wins++
		s.WinCount++
	case own < opp:
		s.Losses++
	default:
		s.Wins += 0.5
		s.Draws++
	}
}

// Standings returns the fully tie-broken standings order with
// calculated positions assigned.
func Standings(matches []model.Match, opts ...Option) ([]PlayerScore, error) {
	cfg := &config{name: func(id model.PlayerID) string { return string(id) }}
	for _, opt := range opts {
		opt(cfg)
	}

	scores, err := Score(matches)
	if err != nil {
		return nil, err
	}

	out := make([]PlayerScore, 0, len(scores))
	for _, s := range scores {
		out = append(out, *s)
	}

	sort.SliceStable(out, func(i, j int) bool {
		a, b := &out[i], &out[j]
		if a.Undefeated() != b.Undefeated() {
			return a.Undefeated()
		}
		if a.Wins != b.Wins {
			return a.Wins > b.Wins
		}
		if a.SOS != b.SOS {
			return a.SOS > b.SOS
		}
		if a.SOSOS != b.SOSOS {
			return a.SOSOS > b.SOSOS
		}
		if a.pointDiff() != b.pointDiff() {
			return a.pointDiff() > b.pointDiff()
		}
		return cfg.name(a.Player) < cfg.name(b.Player)
	})

	for i := range out {
		switch {
		case out[i].Undefeated():
			// Every undefeated player ties for the championship.
			out[i].Position = 1
		case i > 0 && !out[i-1].Undefeated() && tied(&out[i], &out[i-1]):
			out[i].Position = out[i-1].Position
		default:
			out[i].Position = i + 1
		}
	}
	return out, nil
}

// tied reports whether two defeated players share (wins, SOS, SOSOS).
func tied(a, b *PlayerScore) bool {
	return a.Wins == b.Wins && a.SOS == b.SOS && a.SOSOS == b.SOSOS
}
