// Package catalog defines the canonical part category vocabulary and the
// alias table that maps supplier-specific labels onto it
package catalog

import (
	"strings"

	perr "partsearch/internal/platform/errors"
)

// Category is a canonical part category label
type Category string

// Canonical categories
const (
	OilFilter   Category = "Oil Filter"
	AirFilter   Category = "Air Filter"
	CabinFilter Category = "Cabin Filter"
)

// All returns the canonical vocabulary in display order
func All() []Category {
	return []Category{OilFilter, AirFilter, CabinFilter}
}

// aliases maps lowercased supplier labels to canonical categories
// keys include the canonical names themselves so Normalize is idempotent
var aliases = map[string]Category{
	"oil filter":          OilFilter,
	"air filter":          AirFilter,
	"cabin filter":        CabinFilter,
	"cabin air filter":    CabinFilter,
	"cabin pollen filter": CabinFilter,
}

// Normalize maps a source-specific category label to its canonical form
// unmapped labels return ok=false so callers can treat the offer as unmappable
func Normalize(label string) (Category, bool) {
	key := strings.ToLower(strings.TrimSpace(label))
	if key == "" {
		return "", false
	}
	c, ok := aliases[key]
	return c, ok
}

// Parse normalizes a list of requested labels, preserving request order and
// dropping duplicates; an unmappable label is a caller error
func Parse(labels []string) ([]Category, error) {
	out := make([]Category, 0, len(labels))
	seen := make(map[Category]struct{}, len(labels))
	for _, l := range labels {
		c, ok := Normalize(l)
		if !ok {
			return nil, perr.InvalidArgf("unknown category %q", l)
		}
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out, nil
}
