package decomp

import (
	"fmt"

	"github.com/notargets/meshdecomp/comm"
)

// incidentInput carries what edge and vertex partitioning share. The two
// kinds differ only in which incidence arrays and strides they read;
// ownership and halo derivation are identical.
type incidentInput struct {
	nGlobal        int     // global entity count (NEdges or NVertices)
	incidentOnCell []int64 // entity IDs per local cell, local cell order
	stride         int     // row stride of incidentOnCell
	linCells       []int64 // linear chunk of CellsOnEdge / CellsOnVertex
	linStride      int
	cells          *Span
	assign         []int32 // replicated cell assignment
	nCells         int
	haloWidth      int
}

// partIncident derives ownership and halo shells for edges or vertices.
// An entity is owned by whichever rank owns its canonical incident cell,
// the first valid entry of its cell-incidence row, learned from the
// still-linear incidence array by round-robin chunk broadcast. Shell 1
// is split while iterating owned cells and their incident slots in fixed
// order: locally owned entities fill the front, first-halo entities fill
// in reverse discovery order from the end of the level inward (a legacy
// ordering requirement). Shells 2..H derive from cell shells 1..H-1 by
// the same incident-slot scan; the outermost cell shell's discoveries
// merge into shell H so every local cell's incidence stays locally
// resolvable.
func partIncident(c *comm.Comm, in incidentInput) (Span, error) {
	rank := int32(c.Rank())
	cells := in.cells

	// All distinct entities on local cells, in discovery order.
	seen := make(map[int64]bool)
	var candidates []int64
	for ci := 0; ci < cells.NAll; ci++ {
		for _, gid := range in.incidentOnCell[ci*in.stride : (ci+1)*in.stride] {
			if gid < 1 || gid > int64(in.nGlobal) || seen[gid] {
				continue
			}
			seen[gid] = true
			candidates = append(candidates, gid)
		}
	}

	// Ownership via canonical incident cell.
	fetch := broadcastRows(c, in.linCells, in.linStride, in.nGlobal)
	cellRows, err := fetch(candidates)
	if err != nil {
		return Span{}, err
	}
	owner := make(map[int64]int32, len(candidates))
	for _, gid := range candidates {
		canonical := int64(0)
		for _, cgid := range cellRows[gid] {
			if cgid >= 1 && cgid <= int64(in.nCells) {
				canonical = cgid
				break
			}
		}
		if canonical == 0 {
			return Span{}, fmt.Errorf("%w: entity %d has no valid incident cell", ErrConsistency, gid)
		}
		owner[gid] = in.assign[canonical-1]
	}

	// Shell construction. placed tracks entities already assigned to a
	// level; scan order is cell local order then incident-slot order.
	placed := make(map[int64]bool, len(candidates))
	scan := func(cellLo, cellHi int, visit func(gid int64)) {
		for ci := cellLo; ci < cellHi; ci++ {
			for _, gid := range in.incidentOnCell[ci*in.stride : (ci+1)*in.stride] {
				if gid < 1 || gid > int64(in.nGlobal) || placed[gid] {
					continue
				}
				placed[gid] = true
				visit(gid)
			}
		}
	}

	var ownedIDs, haloDisc []int64
	scan(0, cells.NOwned, func(gid int64) {
		if owner[gid] == rank {
			ownedIDs = append(ownedIDs, gid)
		} else {
			haloDisc = append(haloDisc, gid)
		}
	})

	s := Span{NOwned: len(ownedIDs), NHalo: make([]int, in.haloWidth)}
	s.ID = append(s.ID, ownedIDs...)
	for i := len(haloDisc) - 1; i >= 0; i-- {
		s.ID = append(s.ID, haloDisc[i])
	}
	s.NHalo[0] = len(s.ID)

	// Cell shell cs feeds entity shell cs+1, capped at the halo width.
	cellShell := func(cs int) (int, int) {
		lo := cells.NOwned
		if cs >= 2 {
			lo = cells.NHalo[cs-2]
		}
		return lo, cells.NHalo[cs-1]
	}
	for cs := 1; cs <= in.haloWidth; cs++ {
		lo, hi := cellShell(cs)
		scan(lo, hi, func(gid int64) {
			s.ID = append(s.ID, gid)
		})
		shell := cs + 1
		if shell > in.haloWidth {
			shell = in.haloWidth
		}
		if cs == in.haloWidth || shell < in.haloWidth {
			s.NHalo[shell-1] = len(s.ID)
		}
	}
	s.NAll = len(s.ID)

	// Locations: owned entities index themselves; halo entities learn
	// their (rank, index) by matching each rank's broadcast owned-ID
	// list, one round per rank.
	s.Loc = make([]Loc, s.NAll)
	for i := 0; i < s.NOwned; i++ {
		s.Loc[i] = Loc{Rank: rank, Index: int32(i)}
	}
	for i := s.NOwned; i < s.NAll; i++ {
		s.Loc[i] = Loc{Rank: -1}
	}
	for p := 0; p < c.Size(); p++ {
		var send []int64
		if p == c.Rank() {
			send = ownedIDs
		}
		list, err := comm.Bcast(c, send, p)
		if err != nil {
			return Span{}, err
		}
		if p == c.Rank() {
			continue
		}
		at := make(map[int64]int32, len(list))
		for idx, gid := range list {
			at[gid] = int32(idx)
		}
		for i := s.NOwned; i < s.NAll; i++ {
			if s.Loc[i].Rank >= 0 {
				continue
			}
			if idx, ok := at[s.ID[i]]; ok {
				s.Loc[i] = Loc{Rank: int32(p), Index: idx}
			}
		}
	}
	for i := s.NOwned; i < s.NAll; i++ {
		if s.Loc[i].Rank < 0 {
			return Span{}, fmt.Errorf("%w: entity %d claimed by no rank", ErrConsistency, s.ID[i])
		}
	}
	return s, nil
}
