package mesh

// Synthetic meshes for tests and examples. Both constructors produce the
// eight connectivity arrays mutually consistent: every edge appears in the
// edge lists of its incident cells, every vertex in the vertex lists of
// its incident cells, and so on, with 0 in slots where no neighbor exists.

// Ring builds a cyclic mesh of n cells: cell i is adjacent to cells i-1
// and i+1 (mod n), with one edge and one vertex between each adjacent
// pair. Scenario meshes for halo tests are rings.
func Ring(n int) *Mesh {
	m := &Mesh{Sizes: Sizes{
		NCells:         n,
		NEdges:         n,
		NVertices:      n,
		MaxEdges:       2,
		MaxCellsOnEdge: 2,
		VertexDegree:   2,
	}}
	gid := func(i int) int64 { return int64((i%n+n)%n + 1) }

	m.CellsOnCell = make([]int64, 2*n)
	m.EdgesOnCell = make([]int64, 2*n)
	m.VerticesOnCell = make([]int64, 2*n)
	m.CellsOnEdge = make([]int64, 2*n)
	m.EdgesOnEdge = make([]int64, 2*n) // stride 2*MaxEdges-2 == 2
	m.VerticesOnEdge = make([]int64, 2*n)
	m.CellsOnVertex = make([]int64, 2*n)
	m.EdgesOnVertex = make([]int64, 2*n)

	for i := 0; i < n; i++ {
		// Edge i and vertex i both sit between cell i and cell i+1.
		m.CellsOnCell[2*i] = gid(i - 1)
		m.CellsOnCell[2*i+1] = gid(i + 1)
		m.EdgesOnCell[2*i] = gid(i - 1)
		m.EdgesOnCell[2*i+1] = gid(i)
		m.VerticesOnCell[2*i] = gid(i - 1)
		m.VerticesOnCell[2*i+1] = gid(i)

		m.CellsOnEdge[2*i] = gid(i)
		m.CellsOnEdge[2*i+1] = gid(i + 1)
		m.EdgesOnEdge[2*i] = gid(i - 1)
		m.EdgesOnEdge[2*i+1] = gid(i + 1)
		m.VerticesOnEdge[2*i] = gid(i)
		m.VerticesOnEdge[2*i+1] = gid(i + 1)

		m.CellsOnVertex[2*i] = gid(i)
		m.CellsOnVertex[2*i+1] = gid(i + 1)
		m.EdgesOnVertex[2*i] = gid(i)
		m.EdgesOnVertex[2*i+1] = gid(i + 1)
	}
	return m
}

// Grid builds an nx-by-ny structured quad mesh with 4-neighbor cell
// adjacency. Edges exist between adjacent cell pairs; vertices are the
// interior grid points where four cells meet. Boundary slots hold 0.
func Grid(nx, ny int) *Mesh {
	nCells := nx * ny
	nH := (nx - 1) * ny // edges between horizontal neighbors
	nV := nx * (ny - 1) // edges between vertical neighbors
	nVert := (nx - 1) * (ny - 1)

	m := &Mesh{Sizes: Sizes{
		NCells:         nCells,
		NEdges:         nH + nV,
		NVertices:      nVert,
		MaxEdges:       4,
		MaxCellsOnEdge: 2,
		VertexDegree:   4,
	}}

	cell := func(x, y int) int64 {
		if x < 0 || x >= nx || y < 0 || y >= ny {
			return 0
		}
		return int64(y*nx + x + 1)
	}
	hEdge := func(x, y int) int64 { // between cells (x,y) and (x+1,y)
		if x < 0 || x >= nx-1 || y < 0 || y >= ny {
			return 0
		}
		return int64(y*(nx-1) + x + 1)
	}
	vEdge := func(x, y int) int64 { // between cells (x,y) and (x,y+1)
		if x < 0 || x >= nx || y < 0 || y >= ny-1 {
			return 0
		}
		return int64(nH + y*nx + x + 1)
	}
	vert := func(x, y int) int64 { // corner of cells (x,y)..(x+1,y+1)
		if x < 0 || x >= nx-1 || y < 0 || y >= ny-1 {
			return 0
		}
		return int64(y*(nx-1) + x + 1)
	}

	m.CellsOnCell = make([]int64, 4*nCells)
	m.EdgesOnCell = make([]int64, 4*nCells)
	m.VerticesOnCell = make([]int64, 4*nCells)
	for y := 0; y < ny; y++ {
		for x := 0; x < nx; x++ {
			r := 4 * (y*nx + x)
			m.CellsOnCell[r+0] = cell(x-1, y)
			m.CellsOnCell[r+1] = cell(x+1, y)
			m.CellsOnCell[r+2] = cell(x, y-1)
			m.CellsOnCell[r+3] = cell(x, y+1)
			m.EdgesOnCell[r+0] = hEdge(x-1, y)
			m.EdgesOnCell[r+1] = hEdge(x, y)
			m.EdgesOnCell[r+2] = vEdge(x, y-1)
			m.EdgesOnCell[r+3] = vEdge(x, y)
			m.VerticesOnCell[r+0] = vert(x-1, y-1)
			m.VerticesOnCell[r+1] = vert(x, y-1)
			m.VerticesOnCell[r+2] = vert(x-1, y)
			m.VerticesOnCell[r+3] = vert(x, y)
		}
	}

	m.CellsOnEdge = make([]int64, 2*(nH+nV))
	m.VerticesOnEdge = make([]int64, 2*(nH+nV))
	for y := 0; y < ny; y++ {
		for x := 0; x < nx-1; x++ {
			r := 2 * int(hEdge(x, y)-1)
			m.CellsOnEdge[r+0] = cell(x, y)
			m.CellsOnEdge[r+1] = cell(x+1, y)
			m.VerticesOnEdge[r+0] = vert(x, y-1)
			m.VerticesOnEdge[r+1] = vert(x, y)
		}
	}
	for y := 0; y < ny-1; y++ {
		for x := 0; x < nx; x++ {
			r := 2 * int(vEdge(x, y)-1)
			m.CellsOnEdge[r+0] = cell(x, y)
			m.CellsOnEdge[r+1] = cell(x, y+1)
			m.VerticesOnEdge[r+0] = vert(x-1, y)
			m.VerticesOnEdge[r+1] = vert(x, y)
		}
	}

	m.CellsOnVertex = make([]int64, 4*nVert)
	m.EdgesOnVertex = make([]int64, 4*nVert)
	for y := 0; y < ny-1; y++ {
		for x := 0; x < nx-1; x++ {
			r := 4 * int(vert(x, y)-1)
			m.CellsOnVertex[r+0] = cell(x, y)
			m.CellsOnVertex[r+1] = cell(x+1, y)
			m.CellsOnVertex[r+2] = cell(x, y+1)
			m.CellsOnVertex[r+3] = cell(x+1, y+1)
			m.EdgesOnVertex[r+0] = hEdge(x, y)
			m.EdgesOnVertex[r+1] = hEdge(x, y+1)
			m.EdgesOnVertex[r+2] = vEdge(x, y)
			m.EdgesOnVertex[r+3] = vEdge(x+1, y)
		}
	}

	// Edge-to-edge adjacency: edges sharing an endpoint vertex.
	eoe := 2*m.MaxEdges - 2
	m.EdgesOnEdge = make([]int64, eoe*(nH+nV))
	for e := 0; e < nH+nV; e++ {
		row := m.EdgesOnEdge[e*eoe : (e+1)*eoe]
		k := 0
		seen := map[int64]bool{int64(e + 1): true}
		for _, v := range m.VerticesOnEdge[2*e : 2*e+2] {
			if v < 1 {
				continue
			}
			for _, other := range m.EdgesOnVertex[4*(v-1) : 4*(v-1)+4] {
				if other < 1 || seen[other] || k >= eoe {
					continue
				}
				seen[other] = true
				row[k] = other
				k++
			}
		}
	}
	return m
}
