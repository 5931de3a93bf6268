// Package graph is the root of the dachshund module, an in-memory toolkit
// for building, exploring, and analyzing graphs in Go.
//
// 🚀 What is in the module?
//
//	  • Core primitives: create vertices & edges, mutate safely under locks
//	  • Matrix views: dense adjacency matrices and a symmetric eigensolver
//	  • Classic algorithms: BFS, DFS cycle detection, Dijkstra
//	  • Analytics: components, k-core, coreness, k-truss, k-peaks,
//	    centrality, transitivity, CNM communities
//	  • Typed bipartite clique mining by beam search
//
// ✨ Highlights
//
//   - Rock-solid           — built-in R/W locks make core.Graph thread-safe
//   - Extensible           — attach OnVisit/OnEnqueue hooks to BFS for custom logic
//   - Pure Go              — no cgo
//
// Subpackages:
//
//	core/       — fundamental Graph, Vertex, Edge types & thread-safe primitives
//	matrix/     — dense adjacency matrices, validators, Jacobi eigensolver
//	bfs/, dfs/, dijkstra/ — traversal, cycle detection, shortest paths
//	algorithms/ — shortest paths, betweenness, eigenvector centrality,
//	              transitivity, CNM communities, cycles
//	analytics/  — connected components, k-core, coreness, k-truss, k-peaks
//	ids/, registry/, row/, typedgraph/, builder/, candidate/, scorer/,
//	beam/       — typed clique mining
//	stream/     — line-oriented batch driver used by cmd/dachshund
//
// Quick ASCII example:
//
//	    A───B
//	    │   │
//	    C───D
//
//	represents a square with four vertices and four edges.
//
//	go get github.com/katalvlaran/dachshund
package graph
