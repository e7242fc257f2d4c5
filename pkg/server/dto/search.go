package dto

import (
	"github.com/nodelens/nodelens/pkg/search"
)

// SearchRequest is the body of POST /api/v1/search. Limit is a pointer so an
// omitted limit falls back to the engine default while an explicit zero or
// negative value is rejected.
type SearchRequest struct {
	Query           string   `json:"query" binding:"required"`
	IncludeLabels   []string `json:"include_labels,omitempty"`
	ExcludeLabels   []string `json:"exclude_labels,omitempty"`
	PropertyFilters []string `json:"property_filters,omitempty"`
	Limit           *int     `json:"limit,omitempty"`
}

// RawFilters extracts the structural filter inputs from the request.
func (r *SearchRequest) RawFilters() search.RawFilters {
	return search.RawFilters{
		IncludeLabels:   r.IncludeLabels,
		ExcludeLabels:   r.ExcludeLabels,
		PropertyFilters: r.PropertyFilters,
	}
}

// EffectiveLimit resolves the optional limit against the engine default.
func (r *SearchRequest) EffectiveLimit() int {
	if r.Limit == nil {
		return search.DefaultLimit
	}
	return *r.Limit
}

// SearchResponse is the body of a successful search.
type SearchResponse struct {
	Results      []*search.PublicScoredMatch `json:"results"`
	TotalMatches int                         `json:"total_matches"`
	Returned     int                         `json:"returned"`
}
