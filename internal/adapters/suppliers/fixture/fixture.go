// Package fixture provides demo supplier adapters backed by embedded payloads
// they stand in for real supplier integrations in development and tests
package fixture

import (
	"context"
	_ "embed"
	"encoding/json"

	"partsearch/internal/core/catalog"
	perr "partsearch/internal/platform/errors"
	"partsearch/internal/services/search/domain"
)

//go:embed data/autoparts_direct.json
var autopartsDirectData []byte

//go:embed data/partshub_pro.json
var partsHubProData []byte

// Adapter serves a fixed raw offer payload for any query
type Adapter struct {
	id      string
	base    string
	cats    []catalog.Category
	payload []byte
}

var (
	_ domain.SourcePort  = (*Adapter)(nil)
	_ domain.BaseURLPort = (*Adapter)(nil)
)

// AutoPartsDirect returns the first demo supplier
func AutoPartsDirect() *Adapter {
	return &Adapter{
		id:      "autoparts_direct",
		base:    "https://autopartsdirect.example.com",
		cats:    catalog.All(),
		payload: autopartsDirectData,
	}
}

// PartsHubPro returns the second demo supplier
func PartsHubPro() *Adapter {
	return &Adapter{
		id:      "partshub_pro",
		base:    "https://partshubpro.example.com",
		cats:    catalog.All(),
		payload: partsHubProData,
	}
}

// SourceID satisfies domain.SourcePort
func (a *Adapter) SourceID() string { return a.id }

// Categories satisfies domain.SourcePort
func (a *Adapter) Categories() []catalog.Category {
	return append([]catalog.Category(nil), a.cats...)
}

// BaseURL satisfies domain.BaseURLPort for relative product links
func (a *Adapter) BaseURL() string { return a.base }

// Fetch decodes the embedded payload
// the query is accepted for contract parity, demo data is static
func (a *Adapter) Fetch(ctx context.Context, _ domain.Query) ([]domain.RawOffer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var offers []domain.RawOffer
	if err := json.Unmarshal(a.payload, &offers); err != nil {
		return nil, perr.Upstreamf("%s: bad demo payload: %v", a.id, err)
	}
	return offers, nil
}
