package search

import (
	"context"
	"sort"

	"github.com/nodelens/nodelens/pkg/types"
	"github.com/nodelens/nodelens/pkg/utils"
)

// DefaultLimit is the result cap applied when the caller does not specify one.
const DefaultLimit = 50

// RankedResult is the output of ranking one candidate set.
type RankedResult struct {
	// Results is the score-ordered, truncated match list.
	Results []*types.ScoredMatch `json:"results"`

	// TotalMatches counts every record that scored above zero, before
	// truncation to the limit.
	TotalMatches int `json:"total_matches"`
}

// Ranker scores every candidate record, drops non-matches, and produces a
// stable score-descending ordering capped at the caller's limit.
type Ranker struct {
	scorer  *Scorer
	workers int
}

// NewRanker creates a ranker around the given scorer. workers bounds the
// scoring concurrency; zero or negative selects the utils default.
func NewRanker(scorer *Scorer, workers int) *Ranker {
	return &Ranker{scorer: scorer, workers: workers}
}

// Rank scores records against the query concurrently, discards zero scores,
// sorts the remainder by score descending, and truncates to limit. The sort
// is stable over the store's arrival order: records with equal scores keep
// the relative order they were retrieved in, regardless of which worker
// finished first. A non-positive limit is a ValidationError.
func (r *Ranker) Rank(ctx context.Context, records []*types.Record, query string, limit int) (*RankedResult, error) {
	if limit <= 0 {
		return nil, NewValidationError("limit", "limit must be positive")
	}

	pool := utils.NewWorkerPool(r.workers, func(_ context.Context, record *types.Record) (types.ScoredMatch, error) {
		return r.scorer.Score(record, query), nil
	})

	scored, errs := pool.ProcessItems(ctx, records)
	for _, err := range errs {
		if err != nil {
			// Scoring is pure and cannot fail; anything here is a recovered
			// panic or a cancelled context, and aborts the whole batch.
			return nil, err
		}
	}
	if err := ctx.Err(); err != nil {
		// Never rank a batch the context cut short, even if every item
		// happened to be scored before the workers noticed.
		return nil, err
	}

	matches := make([]*types.ScoredMatch, 0, len(scored))
	for i := range scored {
		if scored[i].Matched() {
			match := scored[i]
			matches = append(matches, &match)
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})

	total := len(matches)
	if len(matches) > limit {
		matches = matches[:limit]
	}

	return &RankedResult{Results: matches, TotalMatches: total}, nil
}
