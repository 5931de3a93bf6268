package row

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/katalvlaran/dachshund/ids"
	"github.com/katalvlaran/dachshund/registry"
)

// ErrMalformedLine indicates a line did not have the expected number of
// tab-separated fields. stream.Driver skips such a line, without logging
// it, rather than aborting the batch.
var ErrMalformedLine = errors.New("row: malformed line")

// ErrMalformedToken indicates a field within an otherwise well-shaped line
// could not be parsed as an integer id. An unknown type name is reported as
// registry.ErrUnknownType instead. stream.Driver aborts on either error.
var ErrMalformedToken = errors.New("row: malformed token")

// TypedLineProcessor turns tab-separated lines into EdgeRow or SeedRow
// values for the beam-search front-end. A seed row is
// graph_id\tnode_id\tnode_type\t\t\t (field 4, core_type, empty); an edge
// row is graph_id\tcore_id\tnon_core_id\tcore_type\tedge_type\tnon_core_type
// with field 4 non-empty. A trimmed 3-field line (no trailing empty tabs) is
// accepted as a seed row too.
type TypedLineProcessor struct {
	CoreType string
	Registry *registry.TypeRegistry
}

// ProcessLine parses one line into a Row.
func (p *TypedLineProcessor) ProcessLine(line string) (Row, error) {
	fields := strings.Split(line, "\t")
	switch len(fields) {
	case 6:
		if strings.TrimRight(fields[3], "\r\n") == "" {
			return p.parseSeedRow(fields)
		}
		return p.parseEdgeRow(fields)
	case 3:
		return p.parseSeedRow(fields)
	default:
		return nil, fmt.Errorf("row: %w: expected 3 or 6 fields, got %d", ErrMalformedLine, len(fields))
	}
}

func (p *TypedLineProcessor) parseEdgeRow(fields []string) (Row, error) {
	graphID, err := parseGraphID(fields[0])
	if err != nil {
		return nil, err
	}
	coreID, err := parseNodeID(fields[1])
	if err != nil {
		return nil, err
	}
	nonCoreID, err := parseNodeID(fields[2])
	if err != nil {
		return nil, err
	}
	edgeType := strings.TrimRight(fields[4], "\r\n")
	nonCoreType := strings.TrimRight(fields[5], "\r\n")

	nonCoreTypeID, err := p.Registry.NonCoreType(nonCoreType)
	if err != nil {
		return nil, err
	}
	edgeTypeID, err := p.Registry.EdgeType(edgeType)
	if err != nil {
		return nil, err
	}

	return NewEdgeRow(EdgeRow{
		GraphID:      graphID,
		SourceID:     coreID,
		TargetID:     nonCoreID,
		SourceTypeID: p.Registry.CoreTypeID(),
		TargetTypeID: nonCoreTypeID,
		EdgeTypeID:   edgeTypeID,
	}), nil
}

func (p *TypedLineProcessor) parseSeedRow(fields []string) (Row, error) {
	graphID, err := parseGraphID(fields[0])
	if err != nil {
		return nil, err
	}
	nodeID, err := parseNodeID(fields[1])
	if err != nil {
		return nil, err
	}
	nodeType := strings.TrimRight(fields[2], "\r\n")

	var targetType *ids.NodeTypeId
	if nodeType != p.CoreType {
		tid, err := p.Registry.NonCoreType(nodeType)
		if err != nil {
			return nil, err
		}
		targetType = &tid
	}

	return NewSeedRow(SeedRow{GraphID: graphID, NodeID: nodeID, TargetType: targetType}), nil
}

// SimpleLineProcessor turns three-field tab-separated lines
// (graph_key\tsource_id\ttarget_id) into SimpleEdgeRow values for the
// companion analytics front-end. graph_key is an arbitrary string, assigned
// an ascending integer GraphId the first time it is seen.
type SimpleLineProcessor struct {
	ids        map[string]int64
	reverseIDs []string
}

// NewSimpleLineProcessor returns a processor with no keys recorded yet.
func NewSimpleLineProcessor() *SimpleLineProcessor {
	return &SimpleLineProcessor{ids: make(map[string]int64)}
}

// ProcessLine parses one line into a SimpleEdgeRow, wrapped as a Row.
func (p *SimpleLineProcessor) ProcessLine(line string) (Row, error) {
	fields := strings.Split(line, "\t")
	if len(fields) != 3 {
		return nil, fmt.Errorf("row: %w: expected 3 fields, got %d", ErrMalformedLine, len(fields))
	}
	graphID := p.recordKey(fields[0])
	sourceID, err := parseNodeID(fields[1])
	if err != nil {
		return nil, err
	}
	targetID, err := parseNodeID(fields[2])
	if err != nil {
		return nil, err
	}
	return NewSimpleEdgeRow(SimpleEdgeRow{GraphID: graphID, SourceID: sourceID, TargetID: targetID}), nil
}

// recordKey assigns key the next ascending GraphId the first time it is
// seen, and returns its (possibly pre-existing) id thereafter.
func (p *SimpleLineProcessor) recordKey(key string) ids.GraphId {
	if id, ok := p.ids[key]; ok {
		return ids.GraphId(id)
	}
	id := int64(len(p.ids))
	p.ids[key] = id
	p.reverseIDs = append(p.reverseIDs, key)
	return ids.GraphId(id)
}

// OriginalKey returns the original string key for a GraphId previously
// assigned by recordKey, used when serializing output back to the caller's
// own key space.
func (p *SimpleLineProcessor) OriginalKey(id ids.GraphId) (string, bool) {
	idx := int64(id)
	if idx < 0 || idx >= int64(len(p.reverseIDs)) {
		return "", false
	}
	return p.reverseIDs[idx], true
}

func parseGraphID(s string) (ids.GraphId, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("row: graph id %q: %w: %v", s, ErrMalformedToken, err)
	}
	return ids.GraphId(n), nil
}

func parseNodeID(s string) (ids.NodeId, error) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("row: node id %q: %w: %v", s, ErrMalformedToken, err)
	}
	return ids.NodeId(n), nil
}
