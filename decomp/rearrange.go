package decomp

import (
	"fmt"

	"github.com/notargets/meshdecomp/comm"
	"github.com/notargets/meshdecomp/mesh"
)

// rearrange redistributes a row-major connectivity array from the linear
// distribution into the final local ordering given by ids: out row i is
// the source row of global ID ids[i]. Each rank broadcasts its linear
// chunk in turn and every rank copies the rows it still needs out of
// each incoming chunk — O(P) full-chunk broadcasts instead of any
// reverse-lookup or point-to-point routing, the deliberate trade-off of
// this layer. Values pass through verbatim: a "no neighbor" sentinel in
// the source stays exactly as written, for translation to resolve later.
func rearrange(c *comm.Comm, chunk []int64, stride, nGlobal int, ids []int64) ([]int64, error) {
	g := c.Group()
	at := make(map[int64]int, len(ids))
	for i, gid := range ids {
		at[gid] = i
	}
	out := make([]int64, len(ids)*stride)
	filled := 0
	for p := 0; p < g.Size(); p++ {
		plo, phi := mesh.Chunk(nGlobal, g.Size(), p)
		var send []int64
		if p == g.Rank() {
			send = chunk
		}
		recv, err := comm.Bcast(c, send, p)
		if err != nil {
			return nil, err
		}
		for gid, i := range at {
			if gid <= int64(plo) || gid > int64(phi) {
				continue
			}
			r := (gid - int64(plo) - 1) * int64(stride)
			copy(out[i*stride:(i+1)*stride], recv[r:r+int64(stride)])
			filled++
		}
	}
	if filled != len(ids) {
		return nil, fmt.Errorf("%w: rearrangement resolved %d of %d rows", ErrConsistency, filled, len(ids))
	}
	return out, nil
}
