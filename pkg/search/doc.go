// Package search implements the nodelens relevance engine: building
// structural filters from caller input, scoring candidate records against a
// free-text query, ranking the matches, and sanitizing them for output.
//
// The flow for one request is
//
//	FilterBuilder -> RecordStore -> Scorer (per candidate) -> Ranker -> Shaper
//
// All stages are pure, request-scoped computations; the only I/O is the
// RecordStore call between filter building and scoring. Candidate scoring runs
// on a worker pool, with each record keeping its original store index so the
// ranker's stable sort can break score ties by arrival order.
//
// Policy (blacklisted labels, priority property keys, sensitive property keys)
// is injected at construction time rather than read from globals. The
// blacklist is a hard exclusion merged into every filter; sensitive keys are
// both excluded from scoring and stripped from every response.
package search
