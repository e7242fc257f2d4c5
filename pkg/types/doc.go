// Package types defines the data model shared by the nodelens core: labeled
// property records retrieved from the graph store, the closed variant type for
// property values, and the scored-match output of the relevance engine.
package types
