// Package analytics implements the companion graph analyses that run
// alongside the typed-bipartite beam search: connected components, k-cores,
// coreness, k-trusses, and k-peaks over simple (untyped, undirected)
// graphs. Each algorithm is grounded on the original tool's
// algorithms/{connected_components,coreness,k_peaks}.rs, re-expressed over
// a plain adjacency map rather than a trait hierarchy.
//
// Connected components reuse the bfs package directly (the same BFS the
// typed-graph side of the tool would use if it needed unweighted shortest
// paths); coreness, k-truss, and k-peaks operate on a deduplicated
// adjacency map built straight from the input rows, matching the
// HashSet-based neighbor de-duplication the original performs before
// counting degree.
package analytics
