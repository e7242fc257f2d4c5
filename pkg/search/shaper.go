package search

import (
	"github.com/nodelens/nodelens/pkg/types"
)

// PublicScoredMatch is the sanitized form of a match that leaves the engine.
// Sensitive property keys are removed from Properties; labels, score, and the
// match attribution pass through unchanged.
type PublicScoredMatch struct {
	Uuid            string           `json:"uuid,omitempty"`
	Labels          []string         `json:"labels"`
	Properties      types.Properties `json:"properties"`
	Score           float64          `json:"score"`
	MatchedProperty string           `json:"matched_property,omitempty"`
	MatchType       types.MatchType  `json:"match_type,omitempty"`
}

// Shaper strips sensitive properties from matched records before they leave
// the core. The sensitive keys were already excluded from scoring; stripping
// them again here keeps them out of responses even when a stored record
// carries them.
type Shaper struct {
	sensitive map[string]struct{}
}

// NewShaper creates a shaper enforcing the given policy's sensitive key set.
func NewShaper(policy Policy) *Shaper {
	return &Shaper{sensitive: stringSet(policy.SensitiveKeys)}
}

// Shape projects ranked matches into their public form. It is a pure
// projection with no failure modes; source records are cloned, never mutated.
func (s *Shaper) Shape(matches []*types.ScoredMatch) []*PublicScoredMatch {
	shaped := make([]*PublicScoredMatch, 0, len(matches))
	for _, match := range matches {
		record := match.Record.Clone()
		for key := range s.sensitive {
			delete(record.Properties, key)
		}
		shaped = append(shaped, &PublicScoredMatch{
			Uuid:            record.Uuid,
			Labels:          record.Labels,
			Properties:      record.Properties,
			Score:           match.Score,
			MatchedProperty: match.MatchedProperty,
			MatchType:       match.MatchType,
		})
	}
	return shaped
}
