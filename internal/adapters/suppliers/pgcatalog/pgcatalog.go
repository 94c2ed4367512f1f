// Package pgcatalog provides a supplier adapter backed by a Postgres offer catalog
// useful when a supplier feed has been mirrored into the local database
package pgcatalog

import (
	"context"

	"partsearch/internal/core/catalog"
	"partsearch/internal/modkit/repokit"
	perr "partsearch/internal/platform/errors"
	"partsearch/internal/services/search/domain"
)

// price and quantity come back as text so the normalizer sees the raw values
const fetchSQL = `
SELECT code,
       category,
       COALESCE(brand, ''),
       COALESCE(description, ''),
       COALESCE(price::text, ''),
       COALESCE(quantity::text, ''),
       COALESCE(url, '')
FROM supplier_offers
WHERE source_id = $1
  AND rego = $2
  AND (state = $3 OR state = '')
ORDER BY code
`

// Adapter reads raw offers for one source id from supplier_offers
type Adapter struct {
	id   string
	base string
	cats []catalog.Category
	q    repokit.Queryer
}

var (
	_ domain.SourcePort  = (*Adapter)(nil)
	_ domain.BaseURLPort = (*Adapter)(nil)
)

// New constructs an adapter for sourceID over the given queryer
// cats defaults to the full canonical vocabulary when empty
func New(sourceID string, q repokit.Queryer, cats []catalog.Category, baseURL string) *Adapter {
	if len(cats) == 0 {
		cats = catalog.All()
	}
	return &Adapter{id: sourceID, base: baseURL, cats: cats, q: q}
}

// binder implements repokit.Binder[domain.SourcePort]
type binder struct {
	id   string
	base string
	cats []catalog.Category
}

// NewBinder returns a Binder that fixes the adapter identity and defers the queryer
func NewBinder(sourceID string, cats []catalog.Category, baseURL string) repokit.Binder[domain.SourcePort] {
	return binder{id: sourceID, base: baseURL, cats: cats}
}

// Bind implements repokit.Binder
func (b binder) Bind(q repokit.Queryer) domain.SourcePort {
	return New(b.id, q, b.cats, b.base)
}

// SourceID satisfies domain.SourcePort
func (a *Adapter) SourceID() string { return a.id }

// Categories satisfies domain.SourcePort
func (a *Adapter) Categories() []catalog.Category {
	return append([]catalog.Category(nil), a.cats...)
}

// BaseURL satisfies domain.BaseURLPort
func (a *Adapter) BaseURL() string { return a.base }

// Fetch loads the mirrored offers for the query
func (a *Adapter) Fetch(ctx context.Context, q domain.Query) ([]domain.RawOffer, error) {
	rows, err := a.q.Query(ctx, fetchSQL, a.id, q.Rego, q.State)
	if err != nil {
		return nil, perr.Upstreamf("%s: catalog query: %v", a.id, err)
	}
	defer rows.Close()

	var offers []domain.RawOffer
	for rows.Next() {
		var code, cat, brand, desc, price, qty, link string
		if err := rows.Scan(&code, &cat, &brand, &desc, &price, &qty, &link); err != nil {
			return nil, perr.Upstreamf("%s: catalog scan: %v", a.id, err)
		}
		offers = append(offers, domain.RawOffer{
			Code:        code,
			Category:    cat,
			Brand:       brand,
			Description: desc,
			Price:       price,
			Quantity:    qty,
			URL:         link,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, perr.Upstreamf("%s: catalog rows: %v", a.id, err)
	}
	return offers, nil
}
