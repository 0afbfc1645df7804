package simulation

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"github.com/jvolf/kifu/internal/adapters/source"
	"github.com/jvolf/kifu/internal/domain/model"
	"github.com/jvolf/kifu/internal/domain/rank"
)

// League is a generated synthetic league backed by an in-memory source.
type League struct {
	Source      *source.Memory
	Players     []model.PlayerID
	Newcomer    model.PlayerID // unrated player exercising the grace period
	Promoted    model.PlayerID // player promoted mid-league
	Tournaments []string
	Start       time.Time
	End         time.Time
}

// Generate builds a league: graded players with profiles and rank
// records, an unrated newcomer, weekly league nights with occasional
// byes and factor-0 friendlies, a Swiss tournament every third month,
// and one mid-league promotion.
func Generate(cfg *Config) (*League, error) {
	rng := rand.New(rand.NewSource(cfg.Seed)) //nolint:gosec // deterministic seed for reproducible leagues

	mem := source.NewMemory()
	l := &League{
		Source: mem,
		Start:  cfg.Start,
	}

	// Players 0..n-2 carry certified grades from the league start; the
	// last one is the unrated newcomer.
	for i := 0; i < cfg.Players; i++ {
		id := model.PlayerID(uuid.New().String())
		l.Players = append(l.Players, id)
		mem.SetProfile(model.PlayerProfile{
			ID:          id,
			DisplayName: fmt.Sprintf("Player %02d", i+1),
			Local:       true,
		})
		if i == cfg.Players-1 {
			l.Newcomer = id
			continue
		}
		grade := rank.Kyu(1 + rng.Intn(15))
		if rng.Intn(4) == 0 {
			grade = rank.Dan(1 + rng.Intn(3))
		}
		mem.AddRankRecord(cfg.League, model.RankRecord{
			PlayerID:      id,
			Grade:         grade,
			EffectiveDate: cfg.Start.AddDate(0, 0, -7),
			Organization:  "SWA",
		})
	}
	l.Promoted = l.Players[0]

	matchID := 0
	nextID := func() string {
		matchID++
		return fmt.Sprintf("m-%04d", matchID)
	}

	for month := 0; month < cfg.Months; month++ {
		monthStart := cfg.Start.AddDate(0, month, 0)

		// Weekly league nights: shuffle and pair off.
		for week := 0; week < 4; week++ {
			ts := monthStart.AddDate(0, 0, week*7).Add(19 * time.Hour)
			order := rng.Perm(len(l.Players))
			for p := 0; p+1 < len(order); p += 2 {
				a := l.Players[order[p]]
				b := l.Players[order[p+1]]
				m := model.NewMatch(nextID(), ts, a, b, 1, 0)
				if rng.Intn(2) == 0 {
					m.FirstScore, m.SecondScore = 0, 1
				}
				m.Name = "SWA League Night"
				if rng.Intn(12) == 0 {
					// Handicap friendly: recorded, no rating impact.
					m.Factor = 0
					m.Name = "Friendly"
				}
				if err := mem.AddMatch(cfg.League, m); err != nil {
					return nil, err
				}
			}
			if len(order)%2 == 1 {
				// Odd player out takes a bye.
				bye := model.NewMatch(nextID(), ts, l.Players[order[len(order)-1]], "", 1, 0)
				bye.Name = "SWA League Night"
				if err := mem.AddMatch(cfg.League, bye); err != nil {
					return nil, err
				}
			}
		}

		// A small Swiss tournament every third month.
		if month%3 == 2 {
			tid := fmt.Sprintf("%s-open-%02d", cfg.League, month+1)
			l.Tournaments = append(l.Tournaments, tid)
			if err := generateTournament(cfg, mem, rng, l, tid, monthStart.AddDate(0, 0, 14), nextID); err != nil {
				return nil, err
			}
		}

		// Mid-league promotion for the first player.
		if month == cfg.Months/2 {
			mem.AddRankRecord(cfg.League, model.RankRecord{
				PlayerID:      l.Promoted,
				Grade:         rank.Dan(4),
				EffectiveDate: monthStart.AddDate(0, 0, 20),
				Organization:  "SWA",
			})
		}
	}

	l.End = cfg.Start.AddDate(0, cfg.Months, 0)
	return l, nil
}

// generateTournament emits a 3-round Swiss event among 8 random
// players, registering participants as it goes.
func generateTournament(cfg *Config, mem *source.Memory, rng *rand.Rand, l *League, tid string, start time.Time, nextID func() string) error {
	n := 8
	if n > len(l.Players) {
		n = len(l.Players) &^ 1
	}
	order := rng.Perm(len(l.Players))[:n]
	for _, idx := range order {
		mem.AddParticipant(model.TournamentParticipant{
			Tournament: tid,
			PlayerID:   l.Players[idx],
		})
	}

	for round := 1; round <= 3; round++ {
		ts := start.AddDate(0, 0, round-1).Add(10 * time.Hour)
		pairing := rng.Perm(n)
		for p := 0; p+1 < n; p += 2 {
			a := l.Players[order[pairing[p]]]
			b := l.Players[order[pairing[p+1]]]
			m := model.NewMatch(nextID(), ts, a, b, 1, 0)
			if rng.Intn(2) == 0 {
				m.FirstScore, m.SecondScore = 0, 1
			}
			m.Tournament = tid
			m.Round = round
			if err := mem.AddMatch(cfg.League, m); err != nil {
				return err
			}
		}
	}
	return nil
}
