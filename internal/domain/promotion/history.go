// Package promotion compares externally recorded rank promotions
// against computed ratings, injects one-time bonuses at the promotion's
// effective date, and keeps a consume-once ledger of those bonuses for
// monthly reporting.
package promotion

import (
	"sort"
	"time"

	"github.com/jvolf/kifu/internal/domain/model"
	"github.com/jvolf/kifu/internal/domain/rank"
)

// History is a read-only index of rank records per player, sorted by
// effective date. It implements the engine's GradeLookup using the
// end-of-day effectiveness rule from model.RankRecord.
type History struct {
	records map[model.PlayerID][]model.RankRecord
}

// NewHistory indexes the given records. The input is not mutated.
func NewHistory(records []model.RankRecord) *History {
	h := &History{records: make(map[model.PlayerID][]model.RankRecord)}
	for _, r := range records {
		h.records[r.PlayerID] = append(h.records[r.PlayerID], r)
	}
	for id := range h.records {
		rs := h.records[id]
		sort.SliceStable(rs, func(i, j int) bool {
			return rs[i].EffectiveDate.Before(rs[j].EffectiveDate)
		})
	}
	return h
}

// GradeAt returns the grade in force at the given instant.
func (h *History) GradeAt(id model.PlayerID, at time.Time) rank.Grade {
	r, _, ok := h.effectiveAt(id, at)
	if !ok {
		return rank.Unknown
	}
	return r.Grade
}

// effectiveAt returns the newest record effective at the instant and
// the grade held immediately before it.
func (h *History) effectiveAt(id model.PlayerID, at time.Time) (model.RankRecord, rank.Grade, bool) {
	rs := h.records[id]
	prev := rank.Unknown
	found := false
	var cur model.RankRecord
	for i := range rs {
		if !rs[i].EffectiveAt(at) {
			break
		}
		if found {
			prev = cur.Grade
		}
		cur = rs[i]
		found = true
	}
	return cur, prev, found
}

// Records returns the player's records in ascending effective order.
func (h *History) Records(id model.PlayerID) []model.RankRecord {
	return h.records[id]
}
