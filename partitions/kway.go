package partitions

import "fmt"

// KWay is a deterministic greedy graph-growing k-way partitioner. Parts
// are grown one at a time by breadth-first search from the lowest-index
// unassigned vertex, visiting neighbor slots in CSR order, until the
// part reaches its target size. Every scan is over a fixed order and no
// map iteration or randomness is involved, so the assignment is a pure
// function of the graph bytes: redundant invocations on a replicated
// graph yield bit-identical results on every rank.
//
// Partition quality is adequate for contiguous meshes and is not a goal
// here; quality-sensitive runs delegate to METIS instead.
type KWay struct{}

// Partition implements Partitioner.
func (KWay) Partition(g CSR, numParts int) ([]int32, error) {
	n := g.NumVertices()
	if numParts < 1 {
		return nil, fmt.Errorf("kway: numParts %d < 1", numParts)
	}
	if numParts > n {
		return nil, fmt.Errorf("kway: numParts %d exceeds %d vertices", numParts, n)
	}

	// Target sizes: n/numParts each, the first n%numParts parts take
	// one extra.
	target := make([]int, numParts)
	for p := range target {
		target[p] = n / numParts
		if p < n%numParts {
			target[p]++
		}
	}

	assign := make([]int32, n)
	for v := range assign {
		assign[v] = -1
	}

	seed := 0 // lowest possibly-unassigned vertex, advances monotonically
	for part := 0; part < numParts; part++ {
		grown := 0
		var queue []int32
		for grown < target[part] {
			if len(queue) == 0 {
				// Disconnected remainder: restart from the lowest
				// unassigned vertex.
				for seed < n && assign[seed] >= 0 {
					seed++
				}
				queue = append(queue, int32(seed))
				assign[seed] = int32(part)
				grown++
				if grown == target[part] {
					break
				}
			}
			v := queue[0]
			queue = queue[1:]
			for _, w := range g.Row(int(v)) {
				if assign[w] >= 0 {
					continue
				}
				assign[w] = int32(part)
				queue = append(queue, w)
				grown++
				if grown == target[part] {
					break
				}
			}
		}
	}
	return assign, nil
}
