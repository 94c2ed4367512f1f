package service

import (
	"context"
	"encoding/json"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"partsearch/internal/core/catalog"
	perr "partsearch/internal/platform/errors"
	"partsearch/internal/services/search/domain"
)

// fakeSource is a scriptable adapter for pipeline tests
type fakeSource struct {
	id     string
	cats   []catalog.Category
	offers []domain.RawOffer
	err    error
	delay  time.Duration
	base   string
	calls  atomic.Int32
}

func (f *fakeSource) SourceID() string                { return f.id }
func (f *fakeSource) Categories() []catalog.Category  { return f.cats }
func (f *fakeSource) BaseURL() string                 { return f.base }
func (f *fakeSource) Fetch(ctx context.Context, _ domain.Query) ([]domain.RawOffer, error) {
	f.calls.Add(1)
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.offers, nil
}

func oilQuery() domain.Query {
	return domain.Query{Rego: "ABC123", State: "VIC", Categories: []catalog.Category{catalog.OilFilter}}
}

func oilSource(id string, offers ...domain.RawOffer) *fakeSource {
	return &fakeSource{id: id, cats: []catalog.Category{catalog.OilFilter}, offers: offers}
}

func groupFor(t *testing.T, res domain.Result, c catalog.Category) []domain.Record {
	t.Helper()
	for _, g := range res.Groups {
		if g.Category == c {
			return g.Records
		}
	}
	t.Fatalf("no group for category %q in %+v", c, res.Groups)
	return nil
}

func TestSearch_NoAdaptersIsCallerError(t *testing.T) {
	t.Parallel()

	svc := New(nil, Config{})
	_, err := svc.Search(context.Background(), oilQuery())
	if err == nil {
		t.Fatal("expected error with zero adapters")
	}
	if !perr.IsCode(err, perr.ErrorCodeInvalidArgument) {
		t.Fatalf("code = %v, want invalid argument", perr.CodeOf(err))
	}
}

func TestSearch_DedupPrefersInStockOverCheaperOutOfStock(t *testing.T) {
	t.Parallel()

	a := oilSource("supplier_a", domain.RawOffer{Code: "F100", Category: "oil filter", Price: 12.50, Quantity: 4})
	b := oilSource("supplier_b", domain.RawOffer{Code: "F100", Category: "oil filter", Price: 11.00, Quantity: 0})

	svc := New([]domain.SourcePort{a, b}, Config{})
	res, err := svc.Search(context.Background(), oilQuery())
	if err != nil {
		t.Fatalf("Search: %v", err)
	}

	recs := groupFor(t, res, catalog.OilFilter)
	if len(recs) != 1 {
		t.Fatalf("expected 1 survivor, got %d", len(recs))
	}
	if recs[0].SourceID != "supplier_a" {
		t.Fatalf("survivor = %s, want supplier_a (in stock beats cheaper out of stock)", recs[0].SourceID)
	}
	if !recs[0].InStock || recs[0].QuantityAvailable != 4 {
		t.Fatalf("survivor fields off: %+v", recs[0])
	}
}

func TestSearch_PriceTieBrokenByQuantityDescending(t *testing.T) {
	t.Parallel()

	a := oilSource("supplier_a",
		domain.RawOffer{Code: "F1", Category: "oil filter", Price: "10.00", Quantity: 3},
		domain.RawOffer{Code: "F2", Category: "oil filter", Price: "10.00", Quantity: 7},
	)

	svc := New([]domain.SourcePort{a}, Config{})
	res, err := svc.Search(context.Background(), oilQuery())
	if err != nil {
		t.Fatalf("Search: %v", err)
	}

	recs := groupFor(t, res, catalog.OilFilter)
	if len(recs) != 2 {
		t.Fatalf("expected 2 records, got %d", len(recs))
	}
	if recs[0].PartNumber != "F2" || recs[1].PartNumber != "F1" {
		t.Fatalf("order = [%s %s], want [F2 F1]", recs[0].PartNumber, recs[1].PartNumber)
	}
}

func TestSearch_UnknownPriceSortsAfterKnownWithinStockClass(t *testing.T) {
	t.Parallel()

	a := oilSource("supplier_a",
		domain.RawOffer{Code: "OUT", Category: "oil filter", Price: "1.00", Quantity: 0},
		domain.RawOffer{Code: "MYSTERY", Category: "oil filter", Price: "N/A", Quantity: 5},
		domain.RawOffer{Code: "KNOWN", Category: "oil filter", Price: "12.00", Quantity: 2},
	)

	svc := New([]domain.SourcePort{a}, Config{})
	res, err := svc.Search(context.Background(), oilQuery())
	if err != nil {
		t.Fatalf("Search: %v", err)
	}

	recs := groupFor(t, res, catalog.OilFilter)
	want := []string{"KNOWN", "MYSTERY", "OUT"}
	if len(recs) != len(want) {
		t.Fatalf("expected %d records, got %d", len(want), len(recs))
	}
	for i, pn := range want {
		if recs[i].PartNumber != pn {
			t.Fatalf("recs[%d] = %s, want %s (full order %+v)", i, recs[i].PartNumber, pn, recs)
		}
	}
	if recs[1].PriceKnown {
		t.Fatal("MYSTERY should have unknown price")
	}
}

func TestSearch_StableSortPreservesMergeOrderOnTies(t *testing.T) {
	t.Parallel()

	// identical ranking keys, distinct identity keys
	a := oilSource("supplier_a", domain.RawOffer{Code: "T1", Category: "oil filter", Price: "5.00", Quantity: 2})
	b := oilSource("supplier_b", domain.RawOffer{Code: "T2", Category: "oil filter", Price: "5.00", Quantity: 2})

	svc := New([]domain.SourcePort{a, b}, Config{})
	res, err := svc.Search(context.Background(), oilQuery())
	if err != nil {
		t.Fatalf("Search: %v", err)
	}

	recs := groupFor(t, res, catalog.OilFilter)
	if len(recs) != 2 || recs[0].PartNumber != "T1" || recs[1].PartNumber != "T2" {
		t.Fatalf("tie order not preserved: %+v", recs)
	}
}

func TestSearch_DedupTieGoesToEarliestMergePosition(t *testing.T) {
	t.Parallel()

	// same identity key, identical ranking keys across both sources
	a := oilSource("supplier_a", domain.RawOffer{Code: "f 100", Category: "oil filter", Brand: "Ryco", Price: "9.00", Quantity: 3})
	b := oilSource("supplier_b", domain.RawOffer{Code: "F100", Category: "Oil Filter", Brand: "RYCO", Price: "9.00", Quantity: 3})

	svc := New([]domain.SourcePort{a, b}, Config{})
	res, err := svc.Search(context.Background(), oilQuery())
	if err != nil {
		t.Fatalf("Search: %v", err)
	}

	recs := groupFor(t, res, catalog.OilFilter)
	if len(recs) != 1 {
		t.Fatalf("expected 1 survivor, got %d", len(recs))
	}
	if recs[0].SourceID != "supplier_a" {
		t.Fatalf("tie should keep first registered source, got %s", recs[0].SourceID)
	}
}

func TestSearch_PartialFailureIsolation(t *testing.T) {
	t.Parallel()

	good := oilSource("supplier_a", domain.RawOffer{Code: "F1", Category: "oil filter", Price: "3.00", Quantity: 1})
	bad := oilSource("supplier_b")
	bad.err = errors.New("connection refused")

	svc := New([]domain.SourcePort{good, bad}, Config{})
	res, err := svc.Search(context.Background(), oilQuery())
	if err != nil {
		t.Fatalf("Search must not fail on a degraded source: %v", err)
	}

	if len(groupFor(t, res, catalog.OilFilter)) != 1 {
		t.Fatal("records from the healthy source must survive")
	}
	if len(res.Outcomes) != 2 {
		t.Fatalf("expected 2 outcomes, got %d", len(res.Outcomes))
	}
	if res.Outcomes[0].Status != domain.FetchOK {
		t.Fatalf("outcome[0] = %s, want ok", res.Outcomes[0].Status)
	}
	if res.Outcomes[1].Status != domain.FetchFailed || res.Outcomes[1].Error == "" {
		t.Fatalf("outcome[1] = %+v, want failed with detail", res.Outcomes[1])
	}
}

func TestSearch_TimeoutIsolation(t *testing.T) {
	t.Parallel()

	fast := oilSource("supplier_a", domain.RawOffer{Code: "F1", Category: "oil filter", Price: "3.00", Quantity: 1})
	slow := oilSource("supplier_b", domain.RawOffer{Code: "F2", Category: "oil filter", Price: "1.00", Quantity: 9})
	slow.delay = 500 * time.Millisecond

	svc := New([]domain.SourcePort{fast, slow}, Config{AdapterTimeout: 50 * time.Millisecond})
	res, err := svc.Search(context.Background(), oilQuery())
	if err != nil {
		t.Fatalf("Search: %v", err)
	}

	if res.Outcomes[1].Status != domain.FetchTimedOut {
		t.Fatalf("slow outcome = %s, want timed_out", res.Outcomes[1].Status)
	}
	recs := groupFor(t, res, catalog.OilFilter)
	if len(recs) != 1 || recs[0].PartNumber != "F1" {
		t.Fatalf("timed out source leaked records: %+v", recs)
	}
}

func TestSearch_Determinism(t *testing.T) {
	t.Parallel()

	mk := func() *Service {
		a := oilSource("supplier_a",
			domain.RawOffer{Code: "F1", Category: "oil filter", Price: "3.00", Quantity: 1},
			domain.RawOffer{Code: "F2", Category: "oil filter", Price: "N/A", Quantity: "Available"},
		)
		b := oilSource("supplier_b",
			domain.RawOffer{Code: "F1", Category: "Oil Filter", Price: "2.50", Quantity: 0},
			domain.RawOffer{Code: "F3", Category: "oil filter", Price: "3.00", Quantity: 1},
		)
		// jitter completion order without breaking the timeout budget
		a.delay = 5 * time.Millisecond
		return New([]domain.SourcePort{a, b}, Config{AdapterTimeout: time.Second})
	}

	var first []byte
	for i := 0; i < 5; i++ {
		res, err := mk().Search(context.Background(), oilQuery())
		if err != nil {
			t.Fatalf("run %d: %v", i, err)
		}
		bs, err := json.Marshal(res)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		if first == nil {
			first = bs
			continue
		}
		if string(bs) != string(first) {
			t.Fatalf("run %d differs:\n%s\nvs\n%s", i, bs, first)
		}
	}
}

func TestSearch_UnmappedCategoryDropsOneOfferOnly(t *testing.T) {
	t.Parallel()

	a := oilSource("supplier_a",
		domain.RawOffer{Code: "F1", Category: "oil filter", Price: "3.00", Quantity: 1},
		domain.RawOffer{Code: "X9", Category: "flux capacitor", Price: "3.00", Quantity: 1},
		domain.RawOffer{Code: "F2", Category: "oil filter", Price: "4.00", Quantity: 1},
	)

	svc := New([]domain.SourcePort{a}, Config{})
	res, err := svc.Search(context.Background(), oilQuery())
	if err != nil {
		t.Fatalf("Search: %v", err)
	}

	if got := len(groupFor(t, res, catalog.OilFilter)); got != 2 {
		t.Fatalf("expected siblings to survive, got %d records", got)
	}
	if len(res.Outcomes[0].Warnings) != 1 {
		t.Fatalf("warnings = %v, want exactly one", res.Outcomes[0].Warnings)
	}
	if res.Outcomes[0].Status != domain.FetchOK {
		t.Fatal("a normalization warning must not degrade the outcome status")
	}
}

func TestSearch_EmptyRequestedCategoryIsSignaled(t *testing.T) {
	t.Parallel()

	a := oilSource("supplier_a", domain.RawOffer{Code: "F1", Category: "oil filter", Price: "3.00", Quantity: 1})

	svc := New([]domain.SourcePort{a}, Config{})
	q := domain.Query{Rego: "ABC123", Categories: []catalog.Category{catalog.OilFilter, catalog.CabinFilter}}
	res, err := svc.Search(context.Background(), q)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}

	cabin := groupFor(t, res, catalog.CabinFilter)
	if cabin == nil {
		t.Fatal("requested category must be present as an empty slice, not nil")
	}
	if len(cabin) != 0 {
		t.Fatalf("cabin group should be empty, got %+v", cabin)
	}
	// requested order preserved
	if res.Groups[0].Category != catalog.OilFilter || res.Groups[1].Category != catalog.CabinFilter {
		t.Fatalf("group order = %+v", res.Groups)
	}
}

func TestSearch_UnrequestedCategoryAppendedAfterRequested(t *testing.T) {
	t.Parallel()

	a := oilSource("supplier_a",
		domain.RawOffer{Code: "F1", Category: "oil filter", Price: "3.00", Quantity: 1},
		domain.RawOffer{Code: "A1", Category: "air filter", Price: "6.00", Quantity: 2},
	)

	svc := New([]domain.SourcePort{a}, Config{})
	res, err := svc.Search(context.Background(), oilQuery())
	if err != nil {
		t.Fatalf("Search: %v", err)
	}

	if len(res.Groups) != 2 {
		t.Fatalf("expected 2 groups, got %+v", res.Groups)
	}
	if res.Groups[0].Category != catalog.OilFilter || res.Groups[1].Category != catalog.AirFilter {
		t.Fatalf("group order = %+v", res.Groups)
	}
}

func TestSearch_SkipsAdaptersNotCoveringRequestedCategories(t *testing.T) {
	t.Parallel()

	oil := oilSource("supplier_a", domain.RawOffer{Code: "F1", Category: "oil filter", Price: "3.00", Quantity: 1})
	cabinOnly := &fakeSource{id: "supplier_c", cats: []catalog.Category{catalog.CabinFilter}}

	svc := New([]domain.SourcePort{oil, cabinOnly}, Config{})
	res, err := svc.Search(context.Background(), oilQuery())
	if err != nil {
		t.Fatalf("Search: %v", err)
	}

	if cabinOnly.calls.Load() != 0 {
		t.Fatal("non covering adapter must not be invoked")
	}
	if len(res.Outcomes) != 1 || res.Outcomes[0].SourceID != "supplier_a" {
		t.Fatalf("outcomes = %+v", res.Outcomes)
	}
}

func TestSearch_RelativeLinksAbsolutized(t *testing.T) {
	t.Parallel()

	a := oilSource("supplier_a", domain.RawOffer{Code: "F1", Category: "oil filter", Price: "3.00", Quantity: 1, URL: "/parts/f1"})
	a.base = "https://autopartsdirect.example.com"

	svc := New([]domain.SourcePort{a}, Config{})
	res, err := svc.Search(context.Background(), oilQuery())
	if err != nil {
		t.Fatalf("Search: %v", err)
	}

	recs := groupFor(t, res, catalog.OilFilter)
	if recs[0].Link != "https://autopartsdirect.example.com/parts/f1" {
		t.Fatalf("link = %q", recs[0].Link)
	}
}

func TestSearch_MessyQuantityAndPriceStrings(t *testing.T) {
	t.Parallel()

	a := oilSource("supplier_a",
		domain.RawOffer{Code: "F1", Category: "oil filter", Price: "$1,250.00", Quantity: "10+"},
		domain.RawOffer{Code: "F2", Category: "oil filter", Price: "8.00", Quantity: "Available"},
		domain.RawOffer{Code: "F3", Category: "oil filter", Price: "2.00", Quantity: "Special Order"},
	)

	svc := New([]domain.SourcePort{a}, Config{})
	res, err := svc.Search(context.Background(), oilQuery())
	if err != nil {
		t.Fatalf("Search: %v", err)
	}

	recs := groupFor(t, res, catalog.OilFilter)
	if len(recs) != 3 {
		t.Fatalf("expected 3 records, got %d", len(recs))
	}
	// F2 (8.00, in stock) before F1 (1250.00, in stock) before F3 (out of stock)
	if recs[0].PartNumber != "F2" || recs[1].PartNumber != "F1" || recs[2].PartNumber != "F3" {
		t.Fatalf("order = %+v", recs)
	}
	if recs[1].Price.String() != "1250" || recs[1].QuantityAvailable != 10 {
		t.Fatalf("F1 coercion off: %+v", recs[1])
	}
	if recs[1].PriceIncGST.String() != "1375" {
		t.Fatalf("F1 inc GST = %s, want 1375", recs[1].PriceIncGST)
	}
	if recs[0].Availability != "Available locally" {
		t.Fatalf("F2 availability = %q", recs[0].Availability)
	}
	if recs[2].InStock {
		t.Fatalf("F3 should be out of stock: %+v", recs[2])
	}
	if recs[2].Availability != "Special Order" {
		t.Fatalf("F3 availability = %q, want the supplier label echoed", recs[2].Availability)
	}
}

func TestSearch_DerivesGSTInclusivePrice(t *testing.T) {
	t.Parallel()

	a := oilSource("supplier_a",
		domain.RawOffer{Code: "F1", Category: "oil filter", Price: "18.95", Quantity: 4},
		domain.RawOffer{Code: "F2", Category: "oil filter", Price: "N/A", Quantity: 1},
	)

	svc := New([]domain.SourcePort{a}, Config{})
	res, err := svc.Search(context.Background(), oilQuery())
	if err != nil {
		t.Fatalf("Search: %v", err)
	}

	recs := groupFor(t, res, catalog.OilFilter)
	for _, rec := range recs {
		switch rec.PartNumber {
		case "F1":
			if rec.PriceIncGST.String() != "20.85" {
				t.Fatalf("F1 inc GST = %s, want 20.85", rec.PriceIncGST)
			}
		case "F2":
			if !rec.PriceIncGST.IsZero() {
				t.Fatalf("unknown price must not derive inc GST: %+v", rec)
			}
		}
	}
}

func TestSearch_CallerCancellationIsNotATimeout(t *testing.T) {
	t.Parallel()

	a := oilSource("supplier_a", domain.RawOffer{Code: "F1", Category: "oil filter", Price: "3.00", Quantity: 1})
	a.delay = 50 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	svc := New([]domain.SourcePort{a}, Config{AdapterTimeout: time.Second})
	res, err := svc.Search(ctx, oilQuery())
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if res.Outcomes[0].Status != domain.FetchFailed {
		t.Fatalf("outcome = %s, want failed (cancellation is not a timeout)", res.Outcomes[0].Status)
	}
}
