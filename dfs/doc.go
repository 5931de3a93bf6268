// Package dfs implements robust cycle detection for both directed and
// undirected core.Graphs. DetectCycles enumerates all simple cycles using
// depth-first search with three-color marking and back-edge detection. It
// honors per-edge Directed flags when mixed-edge mode is enabled, correctly
// handles self-loops and trivial 2-cycles in undirected graphs, and produces
// canonical minimal rotations of each cycle via Booth's algorithm in O(L)
// time. The final cycle list is sorted for deterministic output.
//
// Complexity: Time O(V + E + C·L) (V=#vertices, E=#edges, C=#cycles,
// L=avg cycle length); Memory O(V + L_max).
package dfs
