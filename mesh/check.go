package mesh

import "fmt"

// Check validates a fully assembled mesh: positive dimensions, array
// lengths matching their strides, every adjacency value either the
// "no neighbor" encoding or an in-range global ID, and reciprocal
// incidence between cells and their edges and vertices.
func (m *Mesh) Check() error {
	if m.NCells <= 0 || m.NEdges <= 0 || m.NVertices <= 0 {
		return fmt.Errorf("invalid dimensions: nCells=%d, nEdges=%d, nVertices=%d",
			m.NCells, m.NEdges, m.NVertices)
	}
	if m.MaxEdges <= 0 || m.MaxCellsOnEdge <= 0 || m.VertexDegree <= 0 {
		return fmt.Errorf("invalid strides: maxEdges=%d, maxCellsOnEdge=%d, vertexDegree=%d",
			m.MaxEdges, m.MaxCellsOnEdge, m.VertexDegree)
	}

	for _, a := range []struct {
		name string
		arr  []int64
		rows int
		// max is the exclusive upper bound on referenced global IDs.
		stride, max int
	}{
		{VarCellsOnCell, m.CellsOnCell, m.NCells, m.MaxEdges, m.NCells},
		{VarEdgesOnCell, m.EdgesOnCell, m.NCells, m.MaxEdges, m.NEdges},
		{VarVerticesOnCell, m.VerticesOnCell, m.NCells, m.MaxEdges, m.NVertices},
		{VarCellsOnEdge, m.CellsOnEdge, m.NEdges, m.MaxCellsOnEdge, m.NCells},
		{VarVerticesOnEdge, m.VerticesOnEdge, m.NEdges, 2, m.NVertices},
		{VarEdgesOnEdge, m.EdgesOnEdge, m.NEdges, 2*m.MaxEdges - 2, m.NEdges},
		{VarCellsOnVertex, m.CellsOnVertex, m.NVertices, m.VertexDegree, m.NCells},
		{VarEdgesOnVertex, m.EdgesOnVertex, m.NVertices, m.VertexDegree, m.NEdges},
	} {
		if len(a.arr) != a.rows*a.stride {
			return fmt.Errorf("%s length %d does not match %d rows of stride %d",
				a.name, len(a.arr), a.rows, a.stride)
		}
		for i, v := range a.arr {
			if v < 0 || v > int64(a.max) {
				return fmt.Errorf("%s[%d] = %d outside [0,%d]", a.name, i, v, a.max)
			}
		}
	}

	if err := m.checkReciprocal(VarCellsOnEdge, m.CellsOnEdge, m.MaxCellsOnEdge, m.EdgesOnCell, VarEdgesOnCell); err != nil {
		return err
	}
	return m.checkReciprocal(VarCellsOnVertex, m.CellsOnVertex, m.VertexDegree, m.VerticesOnCell, VarVerticesOnCell)
}

// checkReciprocal verifies that when entity e lists cell c, cell c lists
// e back. onCell holds the cell-side rows with stride MaxEdges.
func (m *Mesh) checkReciprocal(name string, onEntity []int64, stride int, onCell []int64, cellName string) error {
	rows := len(onEntity) / stride
	for e := 0; e < rows; e++ {
		for _, cgid := range onEntity[e*stride : (e+1)*stride] {
			if cgid < 1 {
				continue
			}
			row := onCell[(cgid-1)*int64(m.MaxEdges) : cgid*int64(m.MaxEdges)]
			found := false
			for _, v := range row {
				if v == int64(e)+1 {
					found = true
					break
				}
			}
			if !found {
				return fmt.Errorf("%s row %d references cell %d but %s does not list it back",
					name, e+1, cgid, cellName)
			}
		}
	}
	return nil
}
