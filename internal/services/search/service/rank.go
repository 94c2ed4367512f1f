package service

import (
	"sort"

	"partsearch/internal/core/catalog"
	"partsearch/internal/services/search/domain"
)

// ranksAhead reports whether a sorts strictly before b under the composite key:
// in stock first, then known price ascending with unknown price after all known
// within the same stock class, then quantity descending
func ranksAhead(a, b domain.Record) bool {
	if a.InStock != b.InStock {
		return a.InStock
	}
	if a.PriceKnown != b.PriceKnown {
		return a.PriceKnown
	}
	if a.PriceKnown && b.PriceKnown && !a.Price.Equal(b.Price) {
		return a.Price.LessThan(b.Price)
	}
	return a.QuantityAvailable > b.QuantityAvailable
}

// rankAndGroup partitions records by category and stably sorts each group
//
// requested categories always appear in request order, empty when nothing
// survived, to distinguish "no matches" from "not requested"; categories
// present in records but not requested follow in first appearance order
func rankAndGroup(records []domain.Record, requested []catalog.Category) []domain.CategoryGroup {
	want := make(map[catalog.Category]struct{}, len(requested))
	for _, c := range requested {
		want[c] = struct{}{}
	}

	byCat := make(map[catalog.Category][]domain.Record)
	var extras []catalog.Category
	for _, r := range records {
		if _, seen := byCat[r.Category]; !seen {
			if _, ok := want[r.Category]; !ok {
				extras = append(extras, r.Category)
			}
		}
		byCat[r.Category] = append(byCat[r.Category], r)
	}

	groups := make([]domain.CategoryGroup, 0, len(requested)+len(extras))
	emit := func(c catalog.Category) {
		rs := byCat[c]
		sort.SliceStable(rs, func(i, j int) bool { return ranksAhead(rs[i], rs[j]) })
		if rs == nil {
			rs = []domain.Record{}
		}
		groups = append(groups, domain.CategoryGroup{Category: c, Records: rs})
	}
	for _, c := range requested {
		emit(c)
	}
	for _, c := range extras {
		emit(c)
	}
	return groups
}
