// Package matrix provides the dense matrix primitives the algorithms package
// needs for eigenvector centrality: a Matrix interface and Dense
// implementation, an adjacency-matrix builder from a core.Graph, and a Jacobi
// eigensolver for symmetric matrices.
package matrix
