package candidate

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/katalvlaran/dachshund/ids"
	"github.com/katalvlaran/dachshund/registry"
	"github.com/katalvlaran/dachshund/row"
)

// ToRows serializes the candidate's members as seed rows, the format used
// to re-seed a future search. "Long format" output is produced by ToLongRows.
func (c *Candidate) ToRows(graphID ids.GraphId) []row.SeedRow {
	out := make([]row.SeedRow, 0, len(c.CoreIDs)+len(c.NonCoreIDs))
	for _, coreID := range c.SortedCoreIDs() {
		out = append(out, row.SeedRow{GraphID: graphID, NodeID: coreID, TargetType: nil})
	}
	for _, nonCoreID := range c.SortedNonCoreIDs() {
		tid := *c.Node(nonCoreID).NonCoreType
		out = append(out, row.SeedRow{GraphID: graphID, NodeID: nonCoreID, TargetType: &tid})
	}
	return out
}

// ToLongRows encodes the candidate as "long format" output: one row per
// member, graph_key\tnode_id\ttype_name (the registered core type name for
// core nodes, the non-core type name otherwise).
func (c *Candidate) ToLongRows(graphID ids.GraphId, reg *registry.TypeRegistry) ([]string, error) {
	out := make([]string, 0, len(c.CoreIDs)+len(c.NonCoreIDs))
	for _, coreID := range c.SortedCoreIDs() {
		out = append(out, fmt.Sprintf("%d\t%d\t%s", int64(graphID), int64(coreID), reg.CoreTypeName()))
	}
	for _, nonCoreID := range c.SortedNonCoreIDs() {
		tid := *c.Node(nonCoreID).NonCoreType
		name, ok := reg.NonCoreTypeName(tid)
		if !ok {
			return nil, ErrNodeNotCore
		}
		out = append(out, fmt.Sprintf("%d\t%d\t%s", int64(graphID), int64(nonCoreID), name))
	}
	return out, nil
}

// ToPrintableRow encodes the candidate as the tab-separated "wide" output
// format: graph_key, core count, non-core count, JSON core ids, JSON
// non-core ids, JSON non-core type names, cliqueness, JSON per-core-node
// densities, JSON per-non-core-type densities.
func (c *Candidate) ToPrintableRow(graphID ids.GraphId, reg *registry.TypeRegistry) (string, error) {
	coreIDs := c.SortedCoreIDs()
	nonCoreIDs := c.SortedNonCoreIDs()

	coreVals := make([]int64, len(coreIDs))
	for i, id := range coreIDs {
		coreVals[i] = int64(id)
	}
	nonCoreVals := make([]int64, len(nonCoreIDs))
	nonCoreTypeNames := make([]string, len(nonCoreIDs))
	for i, id := range nonCoreIDs {
		nonCoreVals[i] = int64(id)
		tid := *c.Node(id).NonCoreType
		name, ok := reg.NonCoreTypeName(tid)
		if !ok {
			name = fmt.Sprintf("type:%d", tid.Value())
		}
		nonCoreTypeNames[i] = name
	}

	coreJSON, err := json.Marshal(coreVals)
	if err != nil {
		return "", err
	}
	nonCoreJSON, err := json.Marshal(nonCoreVals)
	if err != nil {
		return "", err
	}
	typesJSON, err := json.Marshal(nonCoreTypeNames)
	if err != nil {
		return "", err
	}
	coreDensities := c.coreDensities()
	coreDensitiesJSON, err := json.Marshal(coreDensities)
	if err != nil {
		return "", err
	}
	nonCoreDensities, err := c.nonCoreDensities(reg)
	if err != nil {
		return "", err
	}
	nonCoreDensitiesJSON, err := json.Marshal(nonCoreDensities)
	if err != nil {
		return "", err
	}

	fields := []string{
		fmt.Sprintf("%d", int64(graphID)),
		fmt.Sprintf("%d", len(coreIDs)),
		fmt.Sprintf("%d", len(nonCoreIDs)),
		string(coreJSON),
		string(nonCoreJSON),
		string(typesJSON),
		fmt.Sprintf("%v", c.Cliqueness()),
		string(coreDensitiesJSON),
		string(nonCoreDensitiesJSON),
	}
	return strings.Join(fields, "\t"), nil
}

// coreDensities returns, for every core node, its tie count with the
// candidate's non-core nodes divided by the maximum possible tie count with
// those same non-core nodes.
func (c *Candidate) coreDensities() []float32 {
	var maxSize int64
	for nonCoreID := range c.NonCoreIDs {
		n, _ := c.Node(nonCoreID).MaxEdgeCountWithCoreNode()
		maxSize += n
	}
	out := make([]float32, 0, len(c.CoreIDs))
	for _, nodeID := range c.SortedCoreIDs() {
		ties := int64(c.Node(nodeID).CountTiesWithIDs(c.NonCoreIDs))
		if maxSize == 0 {
			out = append(out, 0)
			continue
		}
		out = append(out, float32(ties)/float32(maxSize))
	}
	return out
}

// nonCoreDensities returns, for every registered non-core type (in sorted
// name order), the overall density of ties between that type's members in
// the candidate and the candidate's core nodes.
func (c *Candidate) nonCoreDensities(reg *registry.TypeRegistry) ([]float32, error) {
	names := reg.NonCoreTypeNames()
	maxCounts := make([]int64, len(names))
	outCounts := make([]int64, len(names))
	nameIndex := make(map[string]int, len(names))
	for i, name := range names {
		nameIndex[name] = i
	}

	for nonCoreID := range c.NonCoreIDs {
		node := c.Node(nonCoreID)
		if node.NonCoreType == nil {
			return nil, ErrNodeNotCore
		}
		name, ok := reg.NonCoreTypeName(*node.NonCoreType)
		if !ok {
			continue
		}
		idx := nameIndex[name]
		maxDensity, ok := node.MaxEdgeCountWithCoreNode()
		if !ok {
			return nil, ErrNodeNotCore
		}
		maxCounts[idx] += maxDensity * int64(len(c.CoreIDs))
		outCounts[idx] += int64(node.CountTiesWithIDs(c.CoreIDs))
	}

	out := make([]float32, len(names))
	for i := range names {
		if maxCounts[i] == 0 {
			continue
		}
		out[i] = float32(outCounts[i]) / float32(maxCounts[i])
	}
	return out, nil
}
