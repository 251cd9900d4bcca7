package decomp

// globalMap is the ordered global-ID to local-index map built during
// index translation. Insertion is first-wins: the seed entry mapping the
// impossible ID NGlobal+1 to the boundary index can never be overwritten,
// and neither can any ID already placed.
type globalMap struct {
	m        map[int64]int32
	nGlobal  int
	boundary int32
}

// newGlobalMap seeds the boundary entry first, then every local ID in
// local-index order.
func newGlobalMap(nGlobal int, ids []int64) *globalMap {
	gm := &globalMap{
		m:        make(map[int64]int32, len(ids)+1),
		nGlobal:  nGlobal,
		boundary: int32(len(ids)),
	}
	gm.insert(int64(nGlobal)+1, gm.boundary)
	for i, gid := range ids {
		gm.insert(gid, int32(i))
	}
	return gm
}

func (gm *globalMap) insert(gid int64, idx int32) {
	if _, exists := gm.m[gid]; !exists {
		gm.m[gid] = idx
	}
}

// lookup resolves a global ID. IDs outside 1..NGlobal resolve to the
// boundary index; the impossible ID NGlobal+1 does so via its seed
// entry.
func (gm *globalMap) lookup(gid int64) (int32, bool) {
	if idx, ok := gm.m[gid]; ok {
		return idx, true
	}
	if gid < 1 || gid > int64(gm.nGlobal) {
		return gm.boundary, true
	}
	return 0, false
}

// translate rewrites every slot of a global-ID adjacency array into
// local indices. Out-of-range source values (the mesh's "no neighbor"
// encoding) become the boundary index. A valid global ID with no local
// entry also becomes the boundary index, a genuine inconsistency or an
// insufficient halo width, indistinguishable here; the map records the
// assignment so subsequent lookups of the same ID agree. The returned
// count covers every substituted slot, repeats of an already recorded
// ID included. Local entities never map to the boundary index, so any
// in-range ID resolving there is a substitution.
func (gm *globalMap) translate(src []int64) ([]int32, int) {
	out := make([]int32, len(src))
	substituted := 0
	for i, gid := range src {
		if gid < 1 || gid > int64(gm.nGlobal) {
			out[i] = gm.boundary
			continue
		}
		idx, ok := gm.m[gid]
		if !ok {
			idx = gm.boundary
			gm.m[gid] = idx
		}
		if idx == gm.boundary {
			substituted++
		}
		out[i] = idx
	}
	return out, substituted
}
