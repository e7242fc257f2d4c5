// Package nodelens provides relevance-ranked search over labeled property
// graphs.
//
// Records are nodes carrying labels and typed properties. A search scores
// each candidate record's text properties against the query, boosts matches
// on priority keys, and returns results ranked by relevance with sensitive
// properties stripped. Structural filters narrow the candidate set by label
// and property equality before any scoring happens.
//
// The library ships two stores: a Neo4j-backed store for production and an
// in-memory store for tests and local development. Both honor the same
// filter semantics, so code written against one behaves identically on the
// other.
//
// Basic usage:
//
//	store := driver.NewMemoryStore()
//	client, err := nodelens.NewClient(nodelens.Options{Store: store})
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer client.Close(ctx)
//
//	result, err := client.Search(ctx, "edge router", search.RawFilters{
//		IncludeLabels: []string{"Device"},
//	}, 10)
package nodelens
