// Package algorithms collects auxiliary graph algorithms that run over the
// companion core.Graph substrate alongside the mining-oriented analytics in
// package analytics: unweighted and weighted shortest paths, Brandes
// betweenness centrality, per-vertex triangle counts and a transitivity
// ratio (three times the textbook global clustering coefficient), eigenvector
// centrality via the matrix package's Jacobi eigensolver, and greedy
// modularity-maximization (CNM) community detection.
//
// Each algorithm is grounded on its counterpart under
// original_source/src/dachshund/algorithms/ in the retrieval pack, adapted
// to operate on *core.Graph rather than the original's trait-based node
// model.
package algorithms
