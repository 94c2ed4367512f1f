package domain

import (
	"context"

	"partsearch/internal/core/catalog"
)

// SourcePort is the fetch contract each supplier adapter implements
// adapters are stateless with respect to each other and individually
// enable/disable-able
type SourcePort interface {
	// SourceID returns the stable identifier for this source
	SourceID() string
	// Categories returns the canonical categories this source can answer for
	Categories() []catalog.Category
	// Fetch retrieves raw offers for the query, bounded by ctx
	Fetch(ctx context.Context, q Query) ([]RawOffer, error)
}

// BaseURLPort is optionally implemented by adapters whose offers carry
// relative product links
type BaseURLPort interface {
	BaseURL() string
}

// SearcherPort runs the full aggregation pipeline for a query
type SearcherPort interface {
	Search(ctx context.Context, q Query) (Result, error)
}
