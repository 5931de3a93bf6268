package algorithms

import (
	"strconv"

	"github.com/katalvlaran/dachshund/core"
	"github.com/katalvlaran/dachshund/dfs"
)

// Cycles reports every simple cycle in g, deduplicated up to rotation and
// direction, via dfs.DetectCycles's three-color DFS. A companion analytics
// pass over a mined core graph: batches that round-trip the same pair of
// core nodes through more than one path surface here even though the beam
// search itself never needs to detect them.
func Cycles(g *core.Graph) ([][]string, error) {
	if g == nil {
		return nil, ErrGraphNil
	}
	_, cycles, err := dfs.DetectCycles(g)
	if err != nil {
		return nil, err
	}
	return cycles, nil
}

// CyclesOutputRows renders each cycle as the external interface's
// "graph_key\tcycle_index\tnode_id" rows, one line per (cycle, node) pair in
// the cycle's canonical order, cycles in the order DetectCycles returned
// them (already sorted by canonical signature).
func CyclesOutputRows(graphKey string, cycles [][]string) []string {
	out := make([]string, 0)
	for i, cycle := range cycles {
		for _, node := range cycle {
			out = append(out, graphKey+"\t"+strconv.Itoa(i)+"\t"+node)
		}
	}
	return out
}
