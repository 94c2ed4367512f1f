// Package service implements the search aggregation pipeline:
// concurrent per source fetch, normalization, dedup and ranking
package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"partsearch/internal/core/catalog"
	perr "partsearch/internal/platform/errors"
	"partsearch/internal/platform/logger"
	"partsearch/internal/services/search/domain"
)

// Config tunes the aggregation run
type Config struct {
	// AdapterTimeout bounds each adapter fetch individually
	AdapterTimeout time.Duration
}

// Service aggregates offers across the registered source adapters
type Service struct {
	adapters []domain.SourcePort
	cfg      Config
}

// compile time check
var _ domain.SearcherPort = (*Service)(nil)

// New constructs the search service over the given adapters
// adapter order is the registration order and fixes merge determinism
func New(adapters []domain.SourcePort, cfg Config) *Service {
	if cfg.AdapterTimeout <= 0 {
		cfg.AdapterTimeout = 5 * time.Second
	}
	return &Service{adapters: adapters, cfg: cfg}
}

// Search fans out to every enabled adapter covering a requested category,
// joins all outcomes, then merges, dedupes and ranks the records
//
// outcomes are always indexed by registration order, never completion order,
// so repeated runs over the same inputs produce identical output
func (s *Service) Search(ctx context.Context, q domain.Query) (domain.Result, error) {
	if len(s.adapters) == 0 {
		return domain.Result{}, perr.InvalidArgf("no source adapters enabled")
	}

	requested := q.Categories
	if len(requested) == 0 {
		requested = catalog.All()
	}

	run := s.covering(requested)

	outcomes := make([]domain.FetchOutcome, len(run))
	var wg sync.WaitGroup
	for i, ad := range run {
		wg.Add(1)
		go func(i int, ad domain.SourcePort) {
			defer wg.Done()
			outcomes[i] = s.fetchOne(ctx, ad, q)
		}(i, ad)
	}
	wg.Wait()

	var merged []domain.Record
	for i := range outcomes {
		merged = append(merged, outcomes[i].Records...)
	}

	deduped := dedupe(merged)
	groups := rankAndGroup(deduped, requested)

	return domain.Result{Groups: groups, Outcomes: outcomes}, nil
}

// covering filters adapters down to those answering at least one requested category
func (s *Service) covering(requested []catalog.Category) []domain.SourcePort {
	want := make(map[catalog.Category]struct{}, len(requested))
	for _, c := range requested {
		want[c] = struct{}{}
	}
	var run []domain.SourcePort
	for _, ad := range s.adapters {
		for _, c := range ad.Categories() {
			if _, ok := want[c]; ok {
				run = append(run, ad)
				break
			}
		}
	}
	return run
}

// fetchOne runs a single adapter under its own timeout and normalizes its batch
// a failing or timed out adapter yields a degraded outcome, never an error
func (s *Service) fetchOne(ctx context.Context, ad domain.SourcePort, q domain.Query) domain.FetchOutcome {
	cctx, cancel := context.WithTimeout(ctx, s.cfg.AdapterTimeout)
	defer cancel()

	out := domain.FetchOutcome{SourceID: ad.SourceID(), Status: domain.FetchOK}

	offers, err := ad.Fetch(cctx, q)
	if err != nil {
		// a caller cancelled parent also cancels cctx, so only a genuine
		// deadline on either context counts as a timeout
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(cctx.Err(), context.DeadlineExceeded) {
			out.Status = domain.FetchTimedOut
		} else {
			out.Status = domain.FetchFailed
		}
		out.Error = err.Error()
		logger.Source(ad.SourceID()).Warn().
			Err(err).
			Str("status", string(out.Status)).
			Msg("source fetch degraded")
		return out
	}

	out.Records, out.Warnings = normalizeBatch(ad, offers)
	return out
}
