// Package partitions produces the global cell-to-rank assignment vector
// that drives mesh decomposition. The contract is a pure function from a
// CSR adjacency graph and a part count to an assignment in [0,numParts),
// and every realization must be deterministic: when the partitioner runs
// redundantly on a replicated graph, each rank must compute a
// bit-identical assignment, because nothing downstream broadcasts or
// verifies it.
package partitions

import "fmt"

// CSR is a compressed sparse row adjacency graph over vertices
// 0..N-1, pruned of boundary sentinels: Adjncy holds only valid
// neighbor vertex indices.
type CSR struct {
	XAdj   []int32 // length N+1, row offsets into Adjncy
	Adjncy []int32 // concatenated neighbor lists
}

// NumVertices returns the vertex count of the graph.
func (g CSR) NumVertices() int { return len(g.XAdj) - 1 }

// Row returns the neighbor list of vertex v.
func (g CSR) Row(v int) []int32 { return g.Adjncy[g.XAdj[v]:g.XAdj[v+1]] }

// FromAdjacency builds a CSR from a row-major fixed-stride adjacency
// array of 1-based global IDs, dropping every slot that is zero or out
// of range. n is the vertex count; len(adj) must equal n*stride.
func FromAdjacency(adj []int64, stride, n int) (CSR, error) {
	if len(adj) != n*stride {
		return CSR{}, fmt.Errorf("adjacency length %d != %d vertices x stride %d", len(adj), n, stride)
	}
	g := CSR{XAdj: make([]int32, n+1)}
	g.Adjncy = make([]int32, 0, len(adj))
	for v := 0; v < n; v++ {
		for _, gid := range adj[v*stride : (v+1)*stride] {
			if gid < 1 || gid > int64(n) {
				continue
			}
			g.Adjncy = append(g.Adjncy, int32(gid-1))
		}
		g.XAdj[v+1] = int32(len(g.Adjncy))
	}
	return g, nil
}
