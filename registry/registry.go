// Package registry maps the opaque type-name strings carried in input rows
// ("author", "works_at", "university", ...) to the small integer ids the
// typed graph and mining packages operate on.
//
// A TypeRegistry is built once from a typespec — a list of
// [core_type, edge_type, non_core_type] triples — and is read-only for the
// remainder of a batch. The core type always receives id 0; non-core types
// receive ascending ids in the order first seen, sorted for determinism.
package registry

import (
	"errors"
	"fmt"
	"sort"

	"github.com/katalvlaran/dachshund/ids"
)

// ErrUnknownType indicates a lookup for a type name the registry was never
// told about.
var ErrUnknownType = errors.New("registry: unknown type name")

// TypeSpecRow is one [core_type, edge_type, non_core_type] triple, matching
// the JSON typespec accepted by the CLI and config file.
type TypeSpecRow struct {
	CoreType    string
	EdgeType    string
	NonCoreType string
}

// TypeRegistry maps type names to ids (core and non-core node types, plus
// edge types) and tracks each non-core type's maximum edges-per-core-node.
type TypeRegistry struct {
	coreTypeName string
	coreTypeID   ids.NodeTypeId

	nonCoreByName map[string]ids.NodeTypeId
	edgeByName    map[string]ids.EdgeTypeId
	nextNonCoreID int64
	nextEdgeID    int64
}

// NewTypeRegistry builds a TypeRegistry from a typespec. Rows are processed
// in sorted (non-core, edge) order so that ids are assigned
// deterministically regardless of input order; the core type is fixed at id
// 0, and each row increments its non-core type's max-edges-per-core counter
// exactly once per row — matching a typed edge appearing once per relation.
func NewTypeRegistry(rows []TypeSpecRow) (*TypeRegistry, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("registry: %w: empty typespec", ErrUnknownType)
	}

	sorted := make([]TypeSpecRow, len(rows))
	copy(sorted, rows)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].NonCoreType != sorted[j].NonCoreType {
			return sorted[i].NonCoreType < sorted[j].NonCoreType
		}
		return sorted[i].EdgeType < sorted[j].EdgeType
	})

	r := &TypeRegistry{
		coreTypeName:  sorted[0].CoreType,
		coreTypeID:    ids.NewNodeTypeId(0).MakeCore(),
		nonCoreByName: make(map[string]ids.NodeTypeId),
		edgeByName:    make(map[string]ids.EdgeTypeId),
		nextNonCoreID: 1,
	}

	for _, row := range sorted {
		if row.CoreType != r.coreTypeName {
			return nil, fmt.Errorf("registry: typespec has multiple core types: %q and %q", r.coreTypeName, row.CoreType)
		}
		r.insertNonCore(row.NonCoreType)
		r.insertEdge(row.EdgeType)

		tid := r.nonCoreByName[row.NonCoreType]
		r.nonCoreByName[row.NonCoreType] = tid.IncrementPossibleEdgeCount()
	}

	return r, nil
}

func (r *TypeRegistry) insertNonCore(name string) {
	if _, ok := r.nonCoreByName[name]; ok {
		return
	}
	r.nonCoreByName[name] = ids.NewNodeTypeId(r.nextNonCoreID)
	r.nextNonCoreID++
}

func (r *TypeRegistry) insertEdge(name string) {
	if _, ok := r.edgeByName[name]; ok {
		return
	}
	r.edgeByName[name] = ids.EdgeTypeId(r.nextEdgeID)
	r.nextEdgeID++
}

// CoreTypeName returns the registered core type's name.
func (r *TypeRegistry) CoreTypeName() string { return r.coreTypeName }

// CoreTypeID returns the registered core type's id.
func (r *TypeRegistry) CoreTypeID() ids.NodeTypeId { return r.coreTypeID }

// NonCoreType resolves a non-core type name to its id.
func (r *TypeRegistry) NonCoreType(name string) (ids.NodeTypeId, error) {
	tid, ok := r.nonCoreByName[name]
	if !ok {
		return ids.NodeTypeId{}, fmt.Errorf("registry: non-core type %q: %w", name, ErrUnknownType)
	}
	return tid, nil
}

// EdgeType resolves an edge type name to its id.
func (r *TypeRegistry) EdgeType(name string) (ids.EdgeTypeId, error) {
	eid, ok := r.edgeByName[name]
	if !ok {
		return ids.EdgeTypeId(0), fmt.Errorf("registry: edge type %q: %w", name, ErrUnknownType)
	}
	return eid, nil
}

// NonCoreTypeName performs the reverse lookup used by output serialization
// (long-format rows emit type names, not ids).
func (r *TypeRegistry) NonCoreTypeName(tid ids.NodeTypeId) (string, bool) {
	for name, id := range r.nonCoreByName {
		if id.Value() == tid.Value() {
			return name, true
		}
	}
	return "", false
}

// NonCoreTypeNames returns every registered non-core type name, sorted.
func (r *TypeRegistry) NonCoreTypeNames() []string {
	names := make([]string, 0, len(r.nonCoreByName))
	for name := range r.nonCoreByName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
