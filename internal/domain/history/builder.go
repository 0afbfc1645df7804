// Package history builds month-by-month rating and position snapshots
// for one focal player via a single forward pass over the full match
// stream: O(matches), not O(matches x months).
package history

import (
	"context"
	"sort"
	"time"

	"github.com/jvolf/kifu/internal/domain/model"
	"github.com/jvolf/kifu/internal/domain/promotion"
	"github.com/jvolf/kifu/internal/domain/rating"
)

// Directory is the player-status lookup consumed from outside the core.
type Directory interface {
	Profile(id model.PlayerID) (model.PlayerProfile, bool)
}

// openDirectory is the fallback: every player is local and visible.
type openDirectory struct{}

func (openDirectory) Profile(id model.PlayerID) (model.PlayerProfile, bool) {
	return model.PlayerProfile{ID: id, Local: true}, true
}

// BuilderOption applies a configuration option to the Builder.
type BuilderOption func(*Builder)

// WithDirectory sets the player-status lookup used for position
// filtering.
func WithDirectory(d Directory) BuilderOption {
	return func(b *Builder) {
		if d != nil {
			b.directory = d
		}
	}
}

// WithInternational marks the league as international: locality is not
// required for ranking eligibility.
func WithInternational(international bool) BuilderOption {
	return func(b *Builder) {
		b.international = international
	}
}

// Builder replays a league's matches through a dedicated engine and
// freezes a snapshot at the end of every calendar month between the
// focal player's eligible start month and the present.
type Builder struct {
	engine        *rating.Engine
	tracker       *promotion.Tracker
	grades        rating.GradeLookup
	directory     Directory
	international bool
}

// NewBuilder creates a Builder over a dedicated engine instance. The
// engine must not be shared with other concurrent runs; Build resets it.
func NewBuilder(engine *rating.Engine, tracker *promotion.Tracker, grades rating.GradeLookup, opts ...BuilderOption) *Builder {
	b := &Builder{
		engine:    engine,
		tracker:   tracker,
		grades:    grades,
		directory: openDirectory{},
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// monthAccum collects the focal player's activity within the month
// being accumulated.
type monthAccum struct {
	matches  int
	activity []string
	seen     map[string]bool
}

func (a *monthAccum) reset() {
	a.matches = 0
	a.activity = nil
	a.seen = make(map[string]bool)
}

func (a *monthAccum) add(m *model.Match) {
	a.matches++
	if k := m.ActivityKey(); !a.seen[k] {
		a.seen[k] = true
		a.activity = append(a.activity, k)
	}
}

// Build walks matches in ascending time order and returns one snapshot
// per calendar month from the focal player's eligible start month
// through the month containing now. Months without activity get flat
// snapshots that still reflect promotions effective during the gap.
// The current month's effective instant is now, not end-of-month.
func (b *Builder) Build(ctx context.Context, focal model.PlayerID, matches []model.Match, now time.Time) ([]model.MonthlySnapshot, error) {
	b.engine.Reset()

	var snaps []model.MonthlySnapshot
	var cur model.Month
	started := false
	acc := &monthAccum{}
	acc.reset()

	// closeThrough closes the accumulated month and synthesizes flat
	// snapshots for every month strictly before next.
	closeThrough := func(next model.Month) {
		b.closeMonth(&snaps, focal, cur, cur.End(), acc)
		acc.reset()
		for g := cur.Next(); g.Before(next); g = g.Next() {
			b.closeMonth(&snaps, focal, g, g.End(), acc)
		}
	}

	for i := range matches {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		m := &matches[i]
		if m.Timestamp.After(now) {
			break
		}
		mm := model.MonthOf(m.Timestamp)
		if started && mm != cur {
			closeThrough(mm)
			cur = mm
		}
		if !started {
			cur = mm
			started = true
		}
		if err := b.engine.AddMatch(m); err != nil {
			return nil, err
		}
		if m.Involves(focal) {
			acc.add(m)
		}
	}

	if !started {
		return nil, nil
	}

	nowMonth := model.MonthOf(now)
	if cur.Before(nowMonth) {
		closeThrough(nowMonth)
		// The in-progress month is evaluated at now so it never
		// reports a future-dated position.
		b.closeMonth(&snaps, focal, nowMonth, now, acc)
		return snaps, nil
	}
	b.closeMonth(&snaps, focal, cur, now, acc)
	return snaps, nil
}

// closeMonth freezes one snapshot, if the focal player is eligible:
// they have played at least one game and are past the grace period.
func (b *Builder) closeMonth(snaps *[]model.MonthlySnapshot, focal model.PlayerID, month model.Month, asOf time.Time, acc *monthAccum) {
	// Re-check promotions for everyone active in the accumulated data,
	// so a player who did not play this month still gets a bonus
	// attributed to the month it became effective.
	b.tracker.CheckAll(asOf)

	s, ok := b.engine.State(focal)
	if !ok || s.Matches < 1 || b.engine.InGracePeriod(focal) {
		return
	}

	r, err := b.engine.FinalRating(focal, asOf)
	if err != nil {
		return
	}

	pos, ranked := b.position(focal, asOf)
	*snaps = append(*snaps, model.MonthlySnapshot{
		Month:      month,
		Rating:     r,
		MatchCount: acc.matches,
		Activity:   acc.activity,
		Position:   pos,
		Ranked:     ranked,
		Bonuses:    b.tracker.Consume(focal, month.Start(), asOf),
	})
}

// position ranks the focal player among currently eligible players:
// active within the window, publicly rated, and rankable per their
// profile. Ordering is rating desc, official grade desc, display name
// asc.
func (b *Builder) position(focal model.PlayerID, asOf time.Time) (int, int) {
	type ranked struct {
		id     model.PlayerID
		rating float64
		grade  int
		name   string
	}

	var list []ranked
	for _, id := range b.engine.ActivePlayers(asOf) {
		r, err := b.engine.FinalRating(id, asOf)
		if err != nil {
			continue
		}
		p, ok := b.directory.Profile(id)
		if !ok {
			p = model.PlayerProfile{ID: id, Local: true}
		}
		if !p.Rankable(b.international) {
			continue
		}
		name := p.DisplayName
		if name == "" {
			name = string(id)
		}
		list = append(list, ranked{
			id:     id,
			rating: r,
			grade:  int(b.grades.GradeAt(id, asOf)),
			name:   name,
		})
	}

	sort.Slice(list, func(i, j int) bool {
		if list[i].rating != list[j].rating {
			return list[i].rating > list[j].rating
		}
		if list[i].grade != list[j].grade {
			return list[i].grade > list[j].grade
		}
		return list[i].name < list[j].name
	})

	for i := range list {
		if list[i].id == focal {
			return i + 1, len(list)
		}
	}
	return 0, len(list)
}
