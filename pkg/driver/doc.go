// Package driver provides record store implementations for the nodelens
// search engine: a Neo4j-backed store, an in-memory store for tests and local
// development, and a circuit-breaker wrapper.
//
// Every store receives search filters as structured data and binds them to
// query parameters. Filter values never reach the store as interpolated query
// text; the only interpolated identifiers are record labels on write paths,
// which Cypher cannot parameterize and which are therefore validated against a
// strict identifier pattern first.
package driver
