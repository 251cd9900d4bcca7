// Package mesh provides the mesh-source abstraction consumed by the
// decomposition: named scalar dimensions and named integer connectivity
// arrays, resolvable under both the current and the legacy naming
// convention, delivered in a naive contiguous (linear) distribution
// across the process group.
//
// All connectivity values are 1-based global IDs; zero or any
// out-of-range value means "no such neighbor".
package mesh

import (
	"fmt"
	"unicode"
	"unicode/utf8"
)

// Current dimension names. Legacy names are the lowerCamel forms
// (nCells, cellsOnCell, ...).
const (
	DimNCells         = "NCells"
	DimNEdges         = "NEdges"
	DimNVertices      = "NVertices"
	DimMaxEdges       = "MaxEdges"
	DimMaxCellsOnEdge = "MaxCellsOnEdge"
	DimVertexDegree   = "VertexDegree"
)

// Current connectivity array names.
const (
	VarCellsOnCell    = "CellsOnCell"
	VarEdgesOnCell    = "EdgesOnCell"
	VarVerticesOnCell = "VerticesOnCell"
	VarCellsOnEdge    = "CellsOnEdge"
	VarEdgesOnEdge    = "EdgesOnEdge"
	VarVerticesOnEdge = "VerticesOnEdge"
	VarCellsOnVertex  = "CellsOnVertex"
	VarEdgesOnVertex  = "EdgesOnVertex"
)

// LegacyName returns the legacy alias for a current dimension or array
// name: the same name with a lower-case first rune.
func LegacyName(name string) string {
	r, n := utf8.DecodeRuneInString(name)
	if n == 0 {
		return name
	}
	return string(unicode.ToLower(r)) + name[n:]
}

// Source exposes a mesh file or in-memory mesh by name. Dimension and
// array lookups use exact names; callers resolve current-versus-legacy
// aliases themselves (see ResolveDim, ResolveRows).
//
// ReadRows returns rows [lo,hi) of the named array flattened row-major;
// row r of an array keyed by entity kind K holds the adjacency of the
// entity with global ID r+1.
type Source interface {
	Dimension(name string) (int, bool)
	ReadRows(name string, lo, hi int) ([]int64, error)
	Close() error
}

// Sizes carries the global mesh dimensions.
type Sizes struct {
	NCells         int
	NEdges         int
	NVertices      int
	MaxEdges       int
	MaxCellsOnEdge int
	VertexDegree   int
}

// ResolveDim looks a dimension up under the current name, then the legacy
// alias, and requires the resolved value to be positive.
func ResolveDim(src Source, name string) (int, error) {
	v, ok := src.Dimension(name)
	if !ok {
		v, ok = src.Dimension(LegacyName(name))
	}
	if !ok {
		return 0, fmt.Errorf("dimension %q not found under current or legacy name", name)
	}
	if v <= 0 {
		return 0, fmt.Errorf("dimension %q resolved to non-positive size %d", name, v)
	}
	return v, nil
}

// ResolveRows reads rows [lo,hi) of an array under the current name, then
// the legacy alias.
func ResolveRows(src Source, name string, lo, hi int) ([]int64, error) {
	data, err := src.ReadRows(name, lo, hi)
	if err == nil {
		return data, nil
	}
	data, lerr := src.ReadRows(LegacyName(name), lo, hi)
	if lerr == nil {
		return data, nil
	}
	return nil, fmt.Errorf("array %q not readable under current or legacy name: %v", name, err)
}

// Mesh is a complete in-memory mesh: sizes plus the eight connectivity
// arrays, each flattened row-major with the stride implied by Sizes.
// It doubles as the payload of the gob file format (see FileSource) and
// as the backing store of MapSource.
type Mesh struct {
	Sizes

	CellsOnCell    []int64 // stride MaxEdges, row per cell
	EdgesOnCell    []int64 // stride MaxEdges, row per cell
	VerticesOnCell []int64 // stride MaxEdges, row per cell
	CellsOnEdge    []int64 // stride MaxCellsOnEdge, row per edge
	EdgesOnEdge    []int64 // stride 2*MaxEdges - 2, row per edge
	VerticesOnEdge []int64 // stride 2, row per edge
	CellsOnVertex  []int64 // stride VertexDegree, row per vertex
	EdgesOnVertex  []int64 // stride VertexDegree, row per vertex
}

// Stride returns the row stride of the named connectivity array.
func (m *Mesh) Stride(name string) (int, bool) {
	switch name {
	case VarCellsOnCell, VarEdgesOnCell, VarVerticesOnCell:
		return m.MaxEdges, true
	case VarCellsOnEdge:
		return m.MaxCellsOnEdge, true
	case VarEdgesOnEdge:
		return 2*m.MaxEdges - 2, true
	case VarVerticesOnEdge:
		return 2, true
	case VarCellsOnVertex, VarEdgesOnVertex:
		return m.VertexDegree, true
	}
	return 0, false
}

// Rows returns the number of rows of the named connectivity array.
func (m *Mesh) Rows(name string) (int, bool) {
	switch name {
	case VarCellsOnCell, VarEdgesOnCell, VarVerticesOnCell:
		return m.NCells, true
	case VarCellsOnEdge, VarEdgesOnEdge, VarVerticesOnEdge:
		return m.NEdges, true
	case VarCellsOnVertex, VarEdgesOnVertex:
		return m.NVertices, true
	}
	return 0, false
}

func (m *Mesh) array(name string) ([]int64, bool) {
	switch name {
	case VarCellsOnCell:
		return m.CellsOnCell, true
	case VarEdgesOnCell:
		return m.EdgesOnCell, true
	case VarVerticesOnCell:
		return m.VerticesOnCell, true
	case VarCellsOnEdge:
		return m.CellsOnEdge, true
	case VarEdgesOnEdge:
		return m.EdgesOnEdge, true
	case VarVerticesOnEdge:
		return m.VerticesOnEdge, true
	case VarCellsOnVertex:
		return m.CellsOnVertex, true
	case VarEdgesOnVertex:
		return m.EdgesOnVertex, true
	}
	return nil, false
}
