package service

import (
	"fmt"

	"partsearch/internal/core/catalog"
	"partsearch/internal/core/normalize"
	"partsearch/internal/services/search/domain"
)

// normalizeBatch maps raw offers to canonical records
// per offer failures become warnings, siblings in the batch proceed
func normalizeBatch(src domain.SourcePort, offers []domain.RawOffer) ([]domain.Record, []string) {
	base := ""
	if b, ok := src.(domain.BaseURLPort); ok {
		base = b.BaseURL()
	}

	records := make([]domain.Record, 0, len(offers))
	var warnings []string
	for _, o := range offers {
		rec, err := normalizeOffer(src.SourceID(), base, o)
		if err != nil {
			warnings = append(warnings, err.Error())
			continue
		}
		records = append(records, rec)
	}
	return records, warnings
}

// normalizeOffer maps one raw offer to at most one record
// an unmapped category or missing part number fails only this offer
func normalizeOffer(sourceID, base string, o domain.RawOffer) (domain.Record, error) {
	if o.Code == "" {
		return domain.Record{}, fmt.Errorf("offer without part number in category %q", o.Category)
	}
	cat, ok := catalog.Normalize(o.Category)
	if !ok {
		return domain.Record{}, fmt.Errorf("offer %q: unmapped category %q", o.Code, o.Category)
	}

	price, known := normalize.Price(o.Price)
	qty := normalize.Quantity(o.Quantity)

	rec := domain.Record{
		SourceID:          sourceID,
		Category:          cat,
		PartNumber:        o.Code,
		Brand:             o.Brand,
		Description:       o.Description,
		Price:             price,
		PriceKnown:        known,
		QuantityAvailable: qty,
		InStock:           qty > 0,
		Availability:      normalize.AvailabilityDisplay(o.Quantity, qty),
		Link:              normalize.AbsoluteURL(base, o.URL),
	}
	if known {
		rec.PriceIncGST = normalize.IncGST(price)
	}
	return rec, nil
}
