package mesh

import (
	"encoding/gob"
	"fmt"
	"os"
)

// MapSource serves a Mesh from memory under a chosen naming convention.
// Tests use it to exercise both the current and the legacy name paths.
type MapSource struct {
	mesh   *Mesh
	legacy bool // serve names under the legacy alias only
}

// NewMapSource wraps a mesh under the current naming convention.
func NewMapSource(m *Mesh) *MapSource { return &MapSource{mesh: m} }

// NewLegacyMapSource wraps a mesh so that only legacy names resolve.
func NewLegacyMapSource(m *Mesh) *MapSource { return &MapSource{mesh: m, legacy: true} }

// canonical maps an incoming lookup name to the current name the Mesh
// accessors use, honoring the source's naming convention.
func (s *MapSource) canonical(name string) (string, bool) {
	for _, cur := range []string{
		DimNCells, DimNEdges, DimNVertices, DimMaxEdges, DimMaxCellsOnEdge, DimVertexDegree,
		VarCellsOnCell, VarEdgesOnCell, VarVerticesOnCell,
		VarCellsOnEdge, VarEdgesOnEdge, VarVerticesOnEdge,
		VarCellsOnVertex, VarEdgesOnVertex,
	} {
		if s.legacy {
			if name == LegacyName(cur) {
				return cur, true
			}
		} else if name == cur {
			return cur, true
		}
	}
	return "", false
}

// Dimension implements Source.
func (s *MapSource) Dimension(name string) (int, bool) {
	cur, ok := s.canonical(name)
	if !ok {
		return 0, false
	}
	switch cur {
	case DimNCells:
		return s.mesh.NCells, true
	case DimNEdges:
		return s.mesh.NEdges, true
	case DimNVertices:
		return s.mesh.NVertices, true
	case DimMaxEdges:
		return s.mesh.MaxEdges, true
	case DimMaxCellsOnEdge:
		return s.mesh.MaxCellsOnEdge, true
	case DimVertexDegree:
		return s.mesh.VertexDegree, true
	}
	return 0, false
}

// ReadRows implements Source.
func (s *MapSource) ReadRows(name string, lo, hi int) ([]int64, error) {
	cur, ok := s.canonical(name)
	if !ok {
		return nil, fmt.Errorf("array %q not found", name)
	}
	arr, _ := s.mesh.array(cur)
	stride, _ := s.mesh.Stride(cur)
	rows, _ := s.mesh.Rows(cur)
	if lo < 0 || hi < lo || hi > rows {
		return nil, fmt.Errorf("array %q: row range [%d,%d) outside [0,%d)", name, lo, hi, rows)
	}
	out := make([]int64, (hi-lo)*stride)
	copy(out, arr[lo*stride:hi*stride])
	return out, nil
}

// Close implements Source.
func (s *MapSource) Close() error { return nil }

// FileSource reads a gob-encoded Mesh from disk. The whole mesh is
// decoded at open; ReadRows then serves ranges from memory. Mesh files
// at the scales this library targets fit comfortably in memory on every
// rank, and the linear-distribution reader only ever asks for this
// rank's chunk.
type FileSource struct {
	*MapSource
	path string
}

// Open decodes the mesh file at path.
func Open(path string) (*FileSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open mesh %s: %w", path, err)
	}
	defer f.Close()
	var m Mesh
	if err := gob.NewDecoder(f).Decode(&m); err != nil {
		return nil, fmt.Errorf("decode mesh %s: %w", path, err)
	}
	return &FileSource{MapSource: NewMapSource(&m), path: path}, nil
}

// Write gob-encodes the mesh to path, the inverse of Open.
func (m *Mesh) Write(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create mesh %s: %w", path, err)
	}
	if err := gob.NewEncoder(f).Encode(m); err != nil {
		f.Close()
		return fmt.Errorf("encode mesh %s: %w", path, err)
	}
	return f.Close()
}

// Path returns the file path the source was opened from.
func (s *FileSource) Path() string { return s.path }
