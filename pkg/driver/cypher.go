package driver

import (
	"fmt"
	"sort"
	"strings"

	"github.com/nodelens/nodelens/pkg/search"
)

// BuildRecordQuery translates search filters into a parameterized Cypher
// query plus its parameter map. Every filter value is bound to a $parameter;
// property keys use dynamic property access (n[$key]) so they are bound too.
// The ORDER BY gives callers a deterministic reference order for tie-breaking.
func BuildRecordQuery(filters *search.SearchFilters) (string, map[string]any) {
	conditions := []string{}
	params := map[string]any{}

	if filters != nil {
		if len(filters.IncludeLabels) > 0 {
			conditions = append(conditions, "any(label IN labels(n) WHERE label IN $include_labels)")
			params["include_labels"] = filters.IncludeLabels
		}
		if len(filters.ExcludeLabels) > 0 {
			conditions = append(conditions, "none(label IN labels(n) WHERE label IN $exclude_labels)")
			params["exclude_labels"] = filters.ExcludeLabels
		}

		// Sort keys so identical filters always produce identical query text.
		keys := make([]string, 0, len(filters.PropertyFilters))
		for key := range filters.PropertyFilters {
			keys = append(keys, key)
		}
		sort.Strings(keys)

		for i, key := range keys {
			keyParam := fmt.Sprintf("pf_key_%d", i)
			valParam := fmt.Sprintf("pf_val_%d", i)
			conditions = append(conditions, fmt.Sprintf(
				"(n[$%s] = $%s OR (n[$%s] IS :: LIST<ANY> AND $%s IN n[$%s]))",
				keyParam, valParam, keyParam, valParam, keyParam,
			))
			params[keyParam] = key
			params[valParam] = filters.PropertyFilters[key]
		}
	}

	var sb strings.Builder
	sb.WriteString("MATCH (n)\n")
	if len(conditions) > 0 {
		sb.WriteString("WHERE ")
		sb.WriteString(strings.Join(conditions, "\n  AND "))
		sb.WriteString("\n")
	}
	sb.WriteString("RETURN n\nORDER BY n.uuid")

	return sb.String(), params
}
