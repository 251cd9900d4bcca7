package partitions

import (
	"gonum.org/v1/gonum/stat"
)

// Stats summarizes the balance and communication quality of an
// assignment.
type Stats struct {
	NumParts    int
	PartSizes   []int
	MinVertices int
	MaxVertices int
	AvgVertices float64
	Imbalance   float64 // MaxVertices / AvgVertices
	CutRatio    float64 // fraction of adjacency entries crossing parts
}

// ComputeStats analyzes an assignment over its graph.
func ComputeStats(g CSR, assign []int32, numParts int) Stats {
	s := Stats{NumParts: numParts, PartSizes: make([]int, numParts)}
	sizes := make([]float64, numParts)
	for _, p := range assign {
		s.PartSizes[p]++
		sizes[p]++
	}

	s.MinVertices = len(assign)
	for _, sz := range s.PartSizes {
		if sz < s.MinVertices {
			s.MinVertices = sz
		}
		if sz > s.MaxVertices {
			s.MaxVertices = sz
		}
	}
	s.AvgVertices = stat.Mean(sizes, nil)
	if s.AvgVertices > 0 {
		s.Imbalance = float64(s.MaxVertices) / s.AvgVertices
	}

	total, cut := 0, 0
	for v := 0; v < g.NumVertices(); v++ {
		for _, w := range g.Row(v) {
			total++
			if assign[v] != assign[w] {
				cut++
			}
		}
	}
	if total > 0 {
		s.CutRatio = float64(cut) / float64(total)
	}
	return s
}
