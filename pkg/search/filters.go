package search

import (
	"strings"
)

// MinQueryLength is the minimum trimmed query length accepted by the engine.
const MinQueryLength = 2

// RawFilters is the caller-supplied structural constraints for a search,
// exactly as they arrive from the transport layer. Property filters are
// unparsed "key:value" pairs.
type RawFilters struct {
	IncludeLabels   []string `json:"include_labels,omitempty"`
	ExcludeLabels   []string `json:"exclude_labels,omitempty"`
	PropertyFilters []string `json:"property_filters,omitempty"`
}

// SearchFilters is the structural filter sent to the record store. It is
// derived once per request and immutable thereafter. It always crosses the
// store boundary as structured data bound to query parameters, never as
// interpolated query text.
type SearchFilters struct {
	// IncludeLabels, when non-empty, requires a record to carry at least one
	// of these labels (logical OR).
	IncludeLabels []string `json:"include_labels,omitempty"`

	// ExcludeLabels rejects any record carrying any of these labels. The
	// policy blacklist is always merged in here.
	ExcludeLabels []string `json:"exclude_labels,omitempty"`

	// PropertyFilters requires each named property to equal the given value,
	// or to contain it when the stored value is a list.
	PropertyFilters map[string]string `json:"property_filters,omitempty"`
}

// FilterBuilder translates caller input into store filters while enforcing the
// policy blacklist. It is a pure transformation with no side effects.
type FilterBuilder struct {
	blacklist []string
}

// NewFilterBuilder creates a filter builder enforcing the given policy.
func NewFilterBuilder(policy Policy) *FilterBuilder {
	return &FilterBuilder{
		blacklist: append([]string(nil), policy.BlacklistedLabels...),
	}
}

// BuildFilters validates the query text and derives the store filter from the
// raw constraints. A trimmed query shorter than MinQueryLength fails with a
// ValidationError before any store access. Malformed property filter pairs
// are silently dropped rather than failing the request. The policy blacklist
// is unconditionally merged into the exclusions; callers cannot override it.
func (b *FilterBuilder) BuildFilters(query string, raw RawFilters) (*SearchFilters, error) {
	if len(strings.TrimSpace(query)) < MinQueryLength {
		return nil, NewValidationError("query", "query too short")
	}

	filters := &SearchFilters{
		IncludeLabels: append([]string(nil), raw.IncludeLabels...),
	}

	seen := make(map[string]struct{})
	for _, label := range raw.ExcludeLabels {
		if _, dup := seen[label]; dup {
			continue
		}
		seen[label] = struct{}{}
		filters.ExcludeLabels = append(filters.ExcludeLabels, label)
	}
	for _, label := range b.blacklist {
		if _, dup := seen[label]; dup {
			continue
		}
		seen[label] = struct{}{}
		filters.ExcludeLabels = append(filters.ExcludeLabels, label)
	}

	if len(raw.PropertyFilters) > 0 {
		filters.PropertyFilters = make(map[string]string, len(raw.PropertyFilters))
		for _, pair := range raw.PropertyFilters {
			key, value, ok := parsePropertyFilter(pair)
			if !ok {
				continue
			}
			filters.PropertyFilters[key] = value
		}
		if len(filters.PropertyFilters) == 0 {
			filters.PropertyFilters = nil
		}
	}

	return filters, nil
}

// parsePropertyFilter splits a "key:value" pair. The value may itself contain
// colons; only the first one separates. Pairs with an empty key or value are
// malformed.
func parsePropertyFilter(pair string) (key, value string, ok bool) {
	key, value, found := strings.Cut(pair, ":")
	if !found {
		return "", "", false
	}
	key = strings.TrimSpace(key)
	value = strings.TrimSpace(value)
	if key == "" || value == "" {
		return "", "", false
	}
	return key, value, true
}
