package search

import (
	"errors"
	"testing"
)

func TestBuildFiltersRejectsShortQuery(t *testing.T) {
	builder := NewFilterBuilder(DefaultPolicy())

	tests := []struct {
		name  string
		query string
		valid bool
	}{
		{name: "empty", query: "", valid: false},
		{name: "one char", query: "h", valid: false},
		{name: "whitespace padded single char", query: "  h  ", valid: false},
		{name: "only whitespace", query: "    ", valid: false},
		{name: "two chars", query: "ho", valid: true},
		{name: "padded two chars", query: " ho ", valid: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := builder.BuildFilters(tt.query, RawFilters{})
			if tt.valid && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !tt.valid {
				var ve *ValidationError
				if !errors.As(err, &ve) {
					t.Fatalf("expected ValidationError, got %v", err)
				}
				if ve.Field != "query" {
					t.Errorf("expected field 'query', got %q", ve.Field)
				}
			}
		})
	}
}

func TestBuildFiltersMergesBlacklist(t *testing.T) {
	builder := NewFilterBuilder(Policy{BlacklistedLabels: []string{"User", "Session"}})

	filters, err := builder.BuildFilters("homer", RawFilters{
		ExcludeLabels: []string{"Draft", "User"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := map[string]bool{"Draft": false, "User": false, "Session": false}
	for _, label := range filters.ExcludeLabels {
		if _, known := want[label]; !known {
			t.Errorf("unexpected excluded label %q", label)
		}
		if want[label] {
			t.Errorf("label %q excluded twice", label)
		}
		want[label] = true
	}
	for label, seen := range want {
		if !seen {
			t.Errorf("label %q missing from exclusions", label)
		}
	}
}

func TestBuildFiltersBlacklistNotOverridable(t *testing.T) {
	builder := NewFilterBuilder(DefaultPolicy())

	// Attempting to include the blacklisted label does not remove it from
	// the exclusions.
	filters, err := builder.BuildFilters("homer", RawFilters{
		IncludeLabels: []string{"User"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	found := false
	for _, label := range filters.ExcludeLabels {
		if label == "User" {
			found = true
		}
	}
	if !found {
		t.Error("blacklisted label must stay excluded regardless of include list")
	}
}

func TestBuildFiltersPropertyPairs(t *testing.T) {
	builder := NewFilterBuilder(DefaultPolicy())

	tests := []struct {
		name  string
		pairs []string
		want  map[string]string
	}{
		{
			name:  "valid pairs",
			pairs: []string{"genre:epic", "language:greek"},
			want:  map[string]string{"genre": "epic", "language": "greek"},
		},
		{
			name:  "malformed pairs dropped silently",
			pairs: []string{"no-colon", ":novalue", "nokey:", "genre:epic"},
			want:  map[string]string{"genre": "epic"},
		},
		{
			name:  "value may contain colons",
			pairs: []string{"uri:neo4j://localhost:7687"},
			want:  map[string]string{"uri": "neo4j://localhost:7687"},
		},
		{
			name:  "all malformed yields nil map",
			pairs: []string{"bad", ":"},
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filters, err := builder.BuildFilters("homer", RawFilters{PropertyFilters: tt.pairs})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(filters.PropertyFilters) != len(tt.want) {
				t.Fatalf("expected %d filters, got %v", len(tt.want), filters.PropertyFilters)
			}
			for key, value := range tt.want {
				if filters.PropertyFilters[key] != value {
					t.Errorf("filter %q: expected %q, got %q", key, value, filters.PropertyFilters[key])
				}
			}
		})
	}
}
