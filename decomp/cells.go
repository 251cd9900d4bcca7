package decomp

import (
	"fmt"

	"github.com/notargets/meshdecomp/comm"
	"github.com/notargets/meshdecomp/mesh"
)

// rowFetch returns the adjacency rows for a set of global IDs, keyed by
// ID. The two realizations below must agree: one searches a replicated
// array directly, the other learns rows only through bounded collective
// broadcasts of each rank's linear chunk.
type rowFetch func(need []int64) (map[int64][]int64, error)

// replicatedRows serves rows out of a fully assembled array.
func replicatedRows(full []int64, stride int) rowFetch {
	return func(need []int64) (map[int64][]int64, error) {
		rows := make(map[int64][]int64, len(need))
		for _, gid := range need {
			rows[gid] = full[(gid-1)*int64(stride) : gid*int64(stride)]
		}
		return rows, nil
	}
}

// broadcastRows serves rows by round-robin broadcast of each rank's
// linear-distribution chunk: every rank broadcasts its chunk in turn and
// each receiver searches its outstanding-need list against the incoming
// chunk's ID range. O(P) chunk broadcasts per call, no point-to-point
// routing and no directory service. Every rank must call the returned
// fetch the same number of times with any need list, since each call is
// one collective round.
func broadcastRows(c *comm.Comm, chunk []int64, stride, nGlobal int) rowFetch {
	return func(need []int64) (map[int64][]int64, error) {
		g := c.Group()
		rows := make(map[int64][]int64, len(need))
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
			for _, gid := range need {
				if gid <= int64(plo) || gid > int64(phi) {
					continue
				}
				r := (gid - int64(plo) - 1) * int64(stride)
				rows[gid] = recv[r : r+int64(stride)]
			}
		}
		return rows, nil
	}
}

// ownerPositions computes, for every global cell ID, the cell's local
// index on its owning rank: its rank among that owner's owned cells in
// ascending global ID order. Derivable by every rank from the replicated
// assignment alone.
func ownerPositions(assign []int32, numParts int) []int32 {
	pos := make([]int32, len(assign))
	next := make([]int32, numParts)
	for i, owner := range assign {
		pos[i] = next[owner]
		next[owner]++
	}
	return pos
}

// partCells derives this rank's owned cells and halo shells from the
// replicated assignment vector. Owned cells come first in ascending
// global ID order; each halo shell is discovered by iterating the
// previous shell's cells in their established local order and scanning
// neighbor slots in degree order, appending unseen cells in
// first-discovery order.
func partCells(c *comm.Comm, lm *mesh.Linear, assign []int32, haloWidth int) (Span, error) {
	fetch := broadcastRows(c, lm.CellsOnCell, lm.MaxEdges, lm.NCells)
	return cellSpan(c.Rank(), c.Size(), lm.NCells, assign, haloWidth, fetch)
}

// cellSpan is the search shared by both realizations; fetch supplies
// CellsOnCell rows.
func cellSpan(rank, numParts, nCells int, assign []int32, haloWidth int, fetch rowFetch) (Span, error) {
	if len(assign) != nCells {
		return Span{}, fmt.Errorf("%w: assignment covers %d of %d cells", ErrPartition, len(assign), nCells)
	}
	pos := ownerPositions(assign, numParts)

	s := Span{NHalo: make([]int, haloWidth)}
	known := make(map[int64]bool, nCells/numParts+1)
	for gid := int64(1); gid <= int64(nCells); gid++ {
		if assign[gid-1] == int32(rank) {
			s.ID = append(s.ID, gid)
			s.Loc = append(s.Loc, Loc{Rank: int32(rank), Index: pos[gid-1]})
			known[gid] = true
		}
	}
	s.NOwned = len(s.ID)

	frontier := s.ID[:s.NOwned]
	for h := 0; h < haloWidth; h++ {
		rows, err := fetch(frontier)
		if err != nil {
			return Span{}, err
		}
		shellStart := len(s.ID)
		for _, gid := range frontier {
			for _, nbr := range rows[gid] {
				if nbr < 1 || nbr > int64(nCells) || known[nbr] {
					continue
				}
				known[nbr] = true
				s.ID = append(s.ID, nbr)
				s.Loc = append(s.Loc, Loc{Rank: assign[nbr-1], Index: pos[nbr-1]})
			}
		}
		s.NHalo[h] = len(s.ID)
		frontier = s.ID[shellStart:]
	}
	s.NAll = len(s.ID)
	return s, nil
}
