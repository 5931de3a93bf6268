// Package builder assembles a typedgraph.TypedGraph from streamed typed edge
// rows (New, Prune) and generates deterministic fixture rows for tests and
// examples (GenSingleClique).
package builder
