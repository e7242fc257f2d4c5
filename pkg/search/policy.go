package search

// Policy holds the fixed security and relevance sets the engine is constructed
// with. Defaults preserve the historical behavior; deployments override them
// through configuration, never per request.
type Policy struct {
	// BlacklistedLabels are always merged into every filter's exclusions.
	// Records carrying any of these labels never appear in results.
	BlacklistedLabels []string `json:"blacklisted_labels" mapstructure:"blacklisted_labels"`

	// PriorityKeys are property keys whose matches score triple.
	PriorityKeys []string `json:"priority_keys" mapstructure:"priority_keys"`

	// SensitiveKeys are property keys that are never scored and never leave
	// the engine, even when present on a stored record.
	SensitiveKeys []string `json:"sensitive_keys" mapstructure:"sensitive_keys"`
}

// DefaultPolicy returns the stock policy: authentication principals are
// blacklisted, display-name-like keys are boosted, credential-like keys are
// sensitive.
func DefaultPolicy() Policy {
	return Policy{
		BlacklistedLabels: []string{"User"},
		PriorityKeys:      []string{"name", "display_name", "title"},
		SensitiveKeys:     []string{"password", "password_hash", "secret", "token", "api_key"},
	}
}

// stringSet builds a membership set from a slice.
func stringSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}
