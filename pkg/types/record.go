package types

import (
	"errors"
	"sort"
)

var (
	// ErrEmptyUuid is returned when a record operation requires a uuid.
	ErrEmptyUuid = errors.New("record uuid is empty")
)

// Record is a node from the graph store: a set of category labels plus a map
// of typed properties. Label insertion order is irrelevant; an empty label set
// is tolerated even though records carry at least one label in practice.
type Record struct {
	Uuid       string     `json:"uuid,omitempty"`
	Labels     []string   `json:"labels"`
	Properties Properties `json:"properties"`
}

// HasLabel reports whether the record carries the given label.
func (r *Record) HasLabel(label string) bool {
	for _, l := range r.Labels {
		if l == label {
			return true
		}
	}
	return false
}

// HasAnyLabel reports whether the record carries at least one of the given
// labels. An empty candidate set never matches.
func (r *Record) HasAnyLabel(labels []string) bool {
	for _, l := range labels {
		if r.HasLabel(l) {
			return true
		}
	}
	return false
}

// PropertyKeys returns the record's property keys in lexical order. Scoring
// scans properties in this order so tie-breaking within a record is
// deterministic.
func (r *Record) PropertyKeys() []string {
	keys := make([]string, 0, len(r.Properties))
	for key := range r.Properties {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Clone returns a deep copy of the record. The response shaper mutates the
// copy when stripping sensitive properties; the original stays untouched.
func (r *Record) Clone() *Record {
	clone := &Record{
		Uuid:       r.Uuid,
		Labels:     append([]string(nil), r.Labels...),
		Properties: make(map[string]Value, len(r.Properties)),
	}
	for key, value := range r.Properties {
		if list, ok := value.(ListValue); ok {
			clone.Properties[key] = ListValue(append([]string(nil), list...))
			continue
		}
		clone.Properties[key] = value
	}
	return clone
}

// MatchType classifies how a candidate string related to the query text.
type MatchType string

const (
	MatchExact     MatchType = "exact"
	MatchPrefix    MatchType = "prefix"
	MatchSubstring MatchType = "substring"
)

// ScoredMatch is the result of scoring one record against the query text.
// A zero score means the record did not match; such matches carry no
// MatchedProperty or MatchType and are dropped before ranking.
type ScoredMatch struct {
	Record          *Record   `json:"record"`
	Score           float64   `json:"score"`
	MatchedProperty string    `json:"matched_property,omitempty"`
	MatchType       MatchType `json:"match_type,omitempty"`
}

// Matched reports whether the record matched the query at all.
func (m *ScoredMatch) Matched() bool {
	return m.Score > 0
}

// ContextKey is the type for request-scoped context values.
type ContextKey string

const (
	// ContextKeyRequestID carries the request correlation id.
	ContextKeyRequestID ContextKey = "request_id"
	// ContextKeyPrincipal carries the authenticated subject, when present.
	ContextKeyPrincipal ContextKey = "principal"
	// ContextKeyRequestSource marks where a request entered the system.
	ContextKeyRequestSource ContextKey = "request_source"
)
