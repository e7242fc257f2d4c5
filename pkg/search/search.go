package search

import (
	"context"
	"log/slog"

	"github.com/nodelens/nodelens/pkg/types"
)

// RecordStore is the single collaborator capability the engine requires:
// execute a structural filter against the graph store and return the matching
// records with their labels and properties. The returned order carries no
// semantic meaning but serves as the stable reference order for tie-breaking.
// Cancellation, retry, and timeout policy belong to the implementation.
type RecordStore interface {
	QueryRecords(ctx context.Context, filters *SearchFilters) ([]*types.Record, error)
}

// SearchResult is the payload the engine exposes to its caller.
type SearchResult struct {
	Results      []*PublicScoredMatch `json:"results"`
	TotalMatches int                  `json:"total_matches"`
	Returned     int                  `json:"returned"`
}

// Searcher wires the engine stages together for one store. It is stateless
// across requests; each Search call builds its own candidate set and ranked
// output with no shared mutable state.
type Searcher struct {
	store   RecordStore
	builder *FilterBuilder
	ranker  *Ranker
	shaper  *Shaper
	logger  *slog.Logger
}

// NewSearcher creates a searcher over the given store with the given policy.
func NewSearcher(store RecordStore, policy Policy, logger *slog.Logger) *Searcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Searcher{
		store:   store,
		builder: NewFilterBuilder(policy),
		ranker:  NewRanker(NewScorer(policy), 0),
		shaper:  NewShaper(policy),
		logger:  logger,
	}
}

// Search runs the full flow: validate and build filters, query the store,
// score and rank candidates, and sanitize the output. limit must be positive;
// callers with no preference pass DefaultLimit.
//
// Validation failures are detected before any store access and returned as
// ValidationError. Store failures are returned as StoreError with no partial
// results. A legitimate empty result is TotalMatches == 0 with a nil error.
func (s *Searcher) Search(ctx context.Context, query string, raw RawFilters, limit int) (*SearchResult, error) {
	filters, err := s.builder.BuildFilters(query, raw)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		return nil, NewValidationError("limit", "limit must be positive")
	}

	records, err := s.store.QueryRecords(ctx, filters)
	if err != nil {
		return nil, &StoreError{Op: "query", Err: err}
	}

	ranked, err := s.ranker.Rank(ctx, records, query, limit)
	if err != nil {
		return nil, err
	}

	results := s.shaper.Shape(ranked.Results)
	s.logger.Debug("search completed",
		"query", query,
		"candidates", len(records),
		"total_matches", ranked.TotalMatches,
		"returned", len(results),
	)

	return &SearchResult{
		Results:      results,
		TotalMatches: ranked.TotalMatches,
		Returned:     len(results),
	}, nil
}
