package service

import (
	"sort"

	"partsearch/internal/services/search/domain"
)

// dedupe collapses records sharing an identity key down to one survivor:
// the record that ranks first under the composite key, ties going to the
// earliest merge position
//
// total and deterministic because the merge step already fixed a stable order
func dedupe(records []domain.Record) []domain.Record {
	type slot struct {
		rec domain.Record
		pos int
	}

	idx := make(map[string]int, len(records))
	var kept []slot
	for i, r := range records {
		k := r.IdentityKey()
		j, seen := idx[k]
		if !seen {
			idx[k] = len(kept)
			kept = append(kept, slot{rec: r, pos: i})
			continue
		}
		// strict improvement only, so ties keep the earlier record
		if ranksAhead(r, kept[j].rec) {
			kept[j] = slot{rec: r, pos: i}
		}
	}

	sort.Slice(kept, func(i, j int) bool { return kept[i].pos < kept[j].pos })
	out := make([]domain.Record, len(kept))
	for i, s := range kept {
		out[i] = s.rec
	}
	return out
}
