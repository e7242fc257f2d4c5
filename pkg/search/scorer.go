package search

import (
	"strings"

	"github.com/nodelens/nodelens/pkg/types"
)

// Base scores per match type. A priority-key match multiplies the base by
// PriorityBoost, and every match is then multiplied by (1 + lengthRatio) where
// lengthRatio = len(query)/len(candidate). The length boost is deliberately
// uncapped for compatibility: a candidate shorter than the query (only
// possible for substring-less exact forms) would push the ratio above 1.
const (
	ScoreExact     = 100.0
	ScorePrefix    = 50.0
	ScoreSubstring = 25.0
	PriorityBoost  = 3.0
)

// Scorer computes the relevance of a single record against the query text.
// It performs no I/O and cannot fail: malformed records degrade to a zero
// score instead of raising.
type Scorer struct {
	sensitive map[string]struct{}
	priority  map[string]struct{}
}

// NewScorer creates a scorer enforcing the given policy's sensitive and
// priority key sets.
func NewScorer(policy Policy) *Scorer {
	return &Scorer{
		sensitive: stringSet(policy.SensitiveKeys),
		priority:  stringSet(policy.PriorityKeys),
	}
}

// Score scans the record's properties and returns the single best (property,
// match type, score) triple. String properties contribute one candidate value;
// list properties contribute each string element as its own candidate; numeric
// properties are never matched against free text. Sensitive keys are skipped
// entirely. Property keys are scanned in lexical order and the first maximum
// wins, so equal-scoring candidates later in the scan never overwrite an
// earlier winner.
func (s *Scorer) Score(record *types.Record, query string) types.ScoredMatch {
	match := types.ScoredMatch{Record: record}
	if record == nil || len(record.Properties) == 0 {
		return match
	}

	loweredQuery := strings.ToLower(query)

	for _, key := range record.PropertyKeys() {
		if _, skip := s.sensitive[key]; skip {
			continue
		}

		switch value := record.Properties[key].(type) {
		case types.StringValue:
			s.consider(&match, key, string(value), loweredQuery)
		case types.ListValue:
			for _, element := range value {
				s.consider(&match, key, element, loweredQuery)
			}
		case types.NumberValue:
			// numbers only participate in equality filters, not text match
		}
	}

	return match
}

// consider scores one candidate value and records it if it strictly beats the
// current best. Strict comparison is what keeps the first maximum.
func (s *Scorer) consider(match *types.ScoredMatch, key, candidate, loweredQuery string) {
	matchType, ok := classify(strings.ToLower(candidate), loweredQuery)
	if !ok {
		return
	}

	score := baseScore(matchType)
	if _, boosted := s.priority[key]; boosted {
		score *= PriorityBoost
	}

	lengthRatio := float64(len(loweredQuery)) / float64(len(candidate))
	score *= 1 + lengthRatio

	if score > match.Score {
		match.Score = score
		match.MatchedProperty = key
		match.MatchType = matchType
	}
}

// classify determines how a lower-cased candidate relates to the lower-cased
// query. The cases are mutually exclusive: exact wins over prefix wins over
// substring.
func classify(candidate, query string) (types.MatchType, bool) {
	switch {
	case candidate == query:
		return types.MatchExact, true
	case strings.HasPrefix(candidate, query):
		return types.MatchPrefix, true
	case strings.Contains(candidate, query):
		return types.MatchSubstring, true
	default:
		return "", false
	}
}

func baseScore(matchType types.MatchType) float64 {
	switch matchType {
	case types.MatchExact:
		return ScoreExact
	case types.MatchPrefix:
		return ScorePrefix
	default:
		return ScoreSubstring
	}
}
