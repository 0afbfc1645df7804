package promotion

import (
	"sort"
	"time"

	"github.com/jvolf/kifu/internal/domain/model"
)

// Ledger holds per-player promotion bonuses keyed by the promotion's
// effective date. A date is written at most once per player, even
// after its entry has been consumed, so a bonus is never re-granted or
// double-counted across reporting windows.
type Ledger struct {
	entries map[model.PlayerID]map[time.Time]model.Bonus
	spent   map[model.PlayerID]map[time.Time]struct{}
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{
		entries: make(map[model.PlayerID]map[time.Time]model.Bonus),
		spent:   make(map[model.PlayerID]map[time.Time]struct{}),
	}
}

// Add records a bonus for the player unless the same effective date was
// already written, live or consumed. It reports whether the entry was
// written.
func (l *Ledger) Add(id model.PlayerID, b model.Bonus) bool {
	key := b.EffectiveDate.UTC().Truncate(24 * time.Hour)
	if _, consumed := l.spent[id][key]; consumed {
		return false
	}
	m, ok := l.entries[id]
	if !ok {
		m = make(map[time.Time]model.Bonus)
		l.entries[id] = m
	}
	if _, exists := m[key]; exists {
		return false
	}
	m[key] = b
	return true
}

// Consume returns and removes the player's bonuses whose effective date
// falls in [from, to), marking each date spent so it can never be
// re-added. A window with no entries yields an empty result, not an
// error.
func (l *Ledger) Consume(id model.PlayerID, from, to time.Time) []model.Bonus {
	m := l.entries[id]
	if len(m) == 0 {
		return nil
	}
	var out []model.Bonus
	for key, b := range m {
		if key.Before(from) || !key.Before(to) {
			continue
		}
		out = append(out, b)
		delete(m, key)
		if l.spent[id] == nil {
			l.spent[id] = make(map[time.Time]struct{})
		}
		l.spent[id][key] = struct{}{}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].EffectiveDate.Before(out[j].EffectiveDate)
	})
	return out
}

// Size returns the number of unconsumed entries across all players.
func (l *Ledger) Size() int {
	n := 0
	for _, m := range l.entries {
		n += len(m)
	}
	return n
}
