// Package domain defines the types and interfaces for the search service
package domain

import (
	"partsearch/internal/core/catalog"
	"partsearch/internal/core/normalize"

	"github.com/shopspring/decimal"
)

// Query describes one part availability search
// immutable after construction, never mutated after dispatch
type Query struct {
	Rego       string             `json:"rego"`
	State      string             `json:"state"`
	Categories []catalog.Category `json:"categories"`
}

// RawOffer is the loose payload shape adapters hand to the normalizer
// Price and Quantity stay untyped so adapters can pass through whatever
// the source sent (numbers, "$1,234.50", "Available", "10+", ...)
type RawOffer struct {
	Code        string `json:"code"`
	Category    string `json:"category"`
	Brand       string `json:"brand"`
	Description string `json:"description"`
	Price       any    `json:"price"`
	Quantity    any    `json:"quantity"`
	URL         string `json:"url"`
}

// Record is the canonical offer shape produced by normalization
// records are immutable after normalization, later stages only reorder them
type Record struct {
	SourceID    string           `json:"source_id"`
	Category    catalog.Category `json:"category"`
	PartNumber  string           `json:"part_number"`
	Brand       string           `json:"brand,omitempty"`
	Description string           `json:"description,omitempty"`

	// Price is the ex GST sell price, meaningful only when PriceKnown is true
	// PriceIncGST is derived from it at normalization time
	Price       decimal.Decimal `json:"price"`
	PriceIncGST decimal.Decimal `json:"price_inc_gst"`
	PriceKnown  bool            `json:"price_known"`

	QuantityAvailable int  `json:"quantity_available"`
	InStock           bool `json:"in_stock"`

	// Availability is the user facing display string derived from quantity
	Availability string `json:"availability"`

	Link string `json:"link,omitempty"`
}

// IdentityKey derives the dedup key from part number, category and brand
// pure function of the record's own fields
func (r Record) IdentityKey() string {
	return normalize.Key(r.PartNumber, r.Brand, r.Category)
}

// FetchStatus is the terminal state of one adapter invocation
type FetchStatus string

// Fetch statuses
const (
	FetchOK       FetchStatus = "ok"
	FetchFailed   FetchStatus = "failed"
	FetchTimedOut FetchStatus = "timed_out"
)

// FetchOutcome is the per adapter result of one aggregation call
// Records feed the merge step and are not serialized to callers
type FetchOutcome struct {
	SourceID string      `json:"source_id"`
	Status   FetchStatus `json:"status"`
	Error    string      `json:"error,omitempty"`
	Warnings []string    `json:"warnings,omitempty"`
	Records  []Record    `json:"-"`
}

// CategoryGroup is one ranked category partition of the final result
type CategoryGroup struct {
	Category catalog.Category `json:"category"`
	Records  []Record         `json:"records"`
}

// Result is the aggregation output: ordered category groups plus the
// per source outcomes for observability
type Result struct {
	Groups   []CategoryGroup `json:"groups"`
	Outcomes []FetchOutcome  `json:"outcomes"`
}
