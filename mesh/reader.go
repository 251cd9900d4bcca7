package mesh

import (
	"fmt"

	"github.com/notargets/meshdecomp/comm"
)

// Chunk returns the half-open row range [lo,hi) that rank holds under
// the naive linear distribution of n rows over size ranks: every rank
// holds n/size rows and the last rank holds the remainder.
func Chunk(n, size, rank int) (lo, hi int) {
	chunk := n / size
	lo = rank * chunk
	hi = lo + chunk
	if rank == size-1 {
		hi = n
	}
	return lo, hi
}

// Linear is the output of the reader: the global sizes plus this rank's
// linear-distribution chunk of each of the eight connectivity arrays.
// Row r of a chunk is the adjacency row of global ID lo+r+1 for the
// array's entity kind.
type Linear struct {
	Sizes
	Group comm.Group

	// Chunk bounds per entity kind.
	CellLo, CellHi     int
	EdgeLo, EdgeHi     int
	VertexLo, VertexHi int

	CellsOnCell    []int64
	EdgesOnCell    []int64
	VerticesOnCell []int64
	CellsOnEdge    []int64
	EdgesOnEdge    []int64
	VerticesOnEdge []int64
	CellsOnVertex  []int64
	EdgesOnVertex  []int64
}

// Read loads the global sizes and this rank's linear chunk of every
// connectivity array. Names resolve under the current convention first,
// then the legacy alias; a name missing under both, or a non-positive
// dimension, fails the read. No partitioning logic lives here.
func Read(src Source, g comm.Group) (*Linear, error) {
	var (
		lm  = &Linear{Group: g}
		err error
	)
	for _, d := range []struct {
		name string
		dst  *int
	}{
		{DimNCells, &lm.NCells},
		{DimNEdges, &lm.NEdges},
		{DimNVertices, &lm.NVertices},
		{DimMaxEdges, &lm.MaxEdges},
		{DimMaxCellsOnEdge, &lm.MaxCellsOnEdge},
		{DimVertexDegree, &lm.VertexDegree},
	} {
		if *d.dst, err = ResolveDim(src, d.name); err != nil {
			return nil, err
		}
	}

	lm.CellLo, lm.CellHi = Chunk(lm.NCells, g.Size(), g.Rank())
	lm.EdgeLo, lm.EdgeHi = Chunk(lm.NEdges, g.Size(), g.Rank())
	lm.VertexLo, lm.VertexHi = Chunk(lm.NVertices, g.Size(), g.Rank())

	for _, a := range []struct {
		name   string
		lo, hi int
		dst    *[]int64
	}{
		{VarCellsOnCell, lm.CellLo, lm.CellHi, &lm.CellsOnCell},
		{VarEdgesOnCell, lm.CellLo, lm.CellHi, &lm.EdgesOnCell},
		{VarVerticesOnCell, lm.CellLo, lm.CellHi, &lm.VerticesOnCell},
		{VarCellsOnEdge, lm.EdgeLo, lm.EdgeHi, &lm.CellsOnEdge},
		{VarEdgesOnEdge, lm.EdgeLo, lm.EdgeHi, &lm.EdgesOnEdge},
		{VarVerticesOnEdge, lm.EdgeLo, lm.EdgeHi, &lm.VerticesOnEdge},
		{VarCellsOnVertex, lm.VertexLo, lm.VertexHi, &lm.CellsOnVertex},
		{VarEdgesOnVertex, lm.VertexLo, lm.VertexHi, &lm.EdgesOnVertex},
	} {
		if *a.dst, err = ResolveRows(src, a.name, a.lo, a.hi); err != nil {
			return nil, err
		}
	}
	return lm, nil
}

// ChunkCounts returns the chunk row count of every rank for n rows, in
// rank order. Broadcast loops use it to size incoming chunks.
func ChunkCounts(n, size int) []int {
	counts := make([]int, size)
	for r := 0; r < size; r++ {
		lo, hi := Chunk(n, size, r)
		counts[r] = hi - lo
	}
	return counts
}

// validate sanity-checks chunk bounds against the array lengths; used by
// tests constructing Linear by hand.
func (lm *Linear) validate() error {
	check := func(name string, arr []int64, rows, stride int) error {
		if len(arr) != rows*stride {
			return fmt.Errorf("%s: have %d values, want %d rows x %d", name, len(arr), rows, stride)
		}
		return nil
	}
	eoe := 2*lm.MaxEdges - 2
	for _, c := range []struct {
		name   string
		arr    []int64
		rows   int
		stride int
	}{
		{VarCellsOnCell, lm.CellsOnCell, lm.CellHi - lm.CellLo, lm.MaxEdges},
		{VarEdgesOnCell, lm.EdgesOnCell, lm.CellHi - lm.CellLo, lm.MaxEdges},
		{VarVerticesOnCell, lm.VerticesOnCell, lm.CellHi - lm.CellLo, lm.MaxEdges},
		{VarCellsOnEdge, lm.CellsOnEdge, lm.EdgeHi - lm.EdgeLo, lm.MaxCellsOnEdge},
		{VarEdgesOnEdge, lm.EdgesOnEdge, lm.EdgeHi - lm.EdgeLo, eoe},
		{VarVerticesOnEdge, lm.VerticesOnEdge, lm.EdgeHi - lm.EdgeLo, 2},
		{VarCellsOnVertex, lm.CellsOnVertex, lm.VertexHi - lm.VertexLo, lm.VertexDegree},
		{VarEdgesOnVertex, lm.EdgesOnVertex, lm.VertexHi - lm.VertexLo, lm.VertexDegree},
	} {
		if err := check(c.name, c.arr, c.rows, c.stride); err != nil {
			return err
		}
	}
	return nil
}
