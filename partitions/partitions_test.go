package partitions

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/notargets/meshdecomp/comm"
	"github.com/notargets/meshdecomp/mesh"
)

func ringCSR(t *testing.T, n int) CSR {
	t.Helper()
	m := mesh.Ring(n)
	g, err := FromAdjacency(m.CellsOnCell, m.MaxEdges, m.NCells)
	if err != nil {
		t.Fatalf("build CSR: %v", err)
	}
	return g
}

func gridCSR(t *testing.T, nx, ny int) CSR {
	t.Helper()
	m := mesh.Grid(nx, ny)
	g, err := FromAdjacency(m.CellsOnCell, m.MaxEdges, m.NCells)
	if err != nil {
		t.Fatalf("build CSR: %v", err)
	}
	return g
}

func TestFromAdjacencyPrunesSentinels(t *testing.T) {
	// 3 vertices, stride 2: vertex 0 has one boundary slot, vertex 2
	// has an out-of-range reference.
	adj := []int64{2, 0, 1, 3, 2, 99}
	g, err := FromAdjacency(adj, 2, 3)
	if err != nil {
		t.Fatalf("FromAdjacency: %v", err)
	}
	if g.NumVertices() != 3 {
		t.Fatalf("NumVertices = %d, want 3", g.NumVertices())
	}
	wantRows := [][]int32{{1}, {0, 2}, {1}}
	for v, want := range wantRows {
		got := g.Row(v)
		if len(got) != len(want) {
			t.Fatalf("row %d = %v, want %v", v, got, want)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Errorf("row %d slot %d = %d, want %d", v, i, got[i], want[i])
			}
		}
	}
}

func TestFromAdjacencyLengthMismatch(t *testing.T) {
	if _, err := FromAdjacency([]int64{1, 2, 3}, 2, 3); err == nil {
		t.Fatal("expected length mismatch error")
	}
}

func TestParseMethod(t *testing.T) {
	for _, s := range []string{"trivial", "serial-kway", "metis-kway", "distributed-kway"} {
		if _, err := ParseMethod(s); err != nil {
			t.Errorf("ParseMethod(%q): %v", s, err)
		}
	}
	if _, err := ParseMethod("recursive-bisection"); err == nil {
		t.Error("expected error for unknown method")
	}
}

func TestTrivialSinglePart(t *testing.T) {
	g := ringCSR(t, 5)
	assign, err := Trivial{}.Partition(g, 1)
	if err != nil {
		t.Fatalf("trivial: %v", err)
	}
	for v, p := range assign {
		if p != 0 {
			t.Errorf("vertex %d assigned to %d, want 0", v, p)
		}
	}
	if _, err := (Trivial{}).Partition(g, 2); err == nil {
		t.Error("trivial must reject more than one part")
	}
}

func TestKWayCoverageAndBalance(t *testing.T) {
	for _, tc := range []struct {
		g        CSR
		numParts int
	}{
		{ringCSR(t, 4), 2},
		{ringCSR(t, 10), 3},
		{gridCSR(t, 10, 10), 4},
		{gridCSR(t, 7, 5), 5},
	} {
		assign, err := KWay{}.Partition(tc.g, tc.numParts)
		if err != nil {
			t.Fatalf("kway: %v", err)
		}
		n := tc.g.NumVertices()
		if len(assign) != n {
			t.Fatalf("assignment covers %d of %d vertices", len(assign), n)
		}
		sizes := make([]int, tc.numParts)
		for v, p := range assign {
			if p < 0 || int(p) >= tc.numParts {
				t.Fatalf("vertex %d assigned to %d, outside [0,%d)", v, p, tc.numParts)
			}
			sizes[p]++
		}
		for p, sz := range sizes {
			base := n / tc.numParts
			if sz != base && sz != base+1 {
				t.Errorf("part %d holds %d vertices, want %d or %d", p, sz, base, base+1)
			}
		}
	}
}

func TestMetisSinglePartShortCircuit(t *testing.T) {
	g := ringCSR(t, 5)
	assign, err := (Metis{}).Partition(g, 1)
	if err != nil {
		t.Fatalf("metis single part: %v", err)
	}
	for v, p := range assign {
		if p != 0 {
			t.Errorf("vertex %d assigned to %d, want 0", v, p)
		}
	}
}

func TestMetisCoverage(t *testing.T) {
	g := gridCSR(t, 8, 8)
	assign, err := (Metis{}).Partition(g, 4)
	if err != nil {
		t.Fatalf("metis: %v", err)
	}
	if len(assign) != g.NumVertices() {
		t.Fatalf("assignment covers %d of %d vertices", len(assign), g.NumVertices())
	}
	seen := make([]bool, 4)
	for v, p := range assign {
		if p < 0 || p >= 4 {
			t.Fatalf("vertex %d assigned to %d, outside [0,4)", v, p)
		}
		seen[p] = true
	}
	for p, ok := range seen {
		if !ok {
			t.Errorf("part %d received no vertices", p)
		}
	}
}

func TestKWayDeterministic(t *testing.T) {
	g := gridCSR(t, 12, 9)
	a, err := KWay{}.Partition(g, 4)
	if err != nil {
		t.Fatalf("kway: %v", err)
	}
	b, err := KWay{}.Partition(g, 4)
	if err != nil {
		t.Fatalf("kway: %v", err)
	}
	assert.Equal(t, a, b, "redundant invocations must be bit-identical")
}

func TestKWayRejectsBadPartCounts(t *testing.T) {
	g := ringCSR(t, 3)
	if _, err := (KWay{}).Partition(g, 0); err == nil {
		t.Error("expected error for zero parts")
	}
	if _, err := (KWay{}).Partition(g, 4); err == nil {
		t.Error("expected error for more parts than vertices")
	}
}

func TestDistributedMatchesSerial(t *testing.T) {
	m := mesh.Grid(8, 8)
	g, err := FromAdjacency(m.CellsOnCell, m.MaxEdges, m.NCells)
	if err != nil {
		t.Fatalf("build CSR: %v", err)
	}
	serial, err := KWay{}.Partition(g, 4)
	if err != nil {
		t.Fatalf("serial kway: %v", err)
	}

	err = comm.Run(4, func(c *comm.Comm) error {
		lo, hi := mesh.Chunk(m.NCells, c.Size(), c.Rank())
		chunk := m.CellsOnCell[lo*m.MaxEdges : hi*m.MaxEdges]
		assign, err := Distributed{}.PartitionChunks(c, chunk, m.MaxEdges, m.NCells, 4)
		if err != nil {
			return err
		}
		assert.Equal(t, serial, assign, "rank %d diverged from serial assignment", c.Rank())
		return nil
	})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
}

func TestComputeStats(t *testing.T) {
	g := ringCSR(t, 8)
	assign, err := KWay{}.Partition(g, 2)
	if err != nil {
		t.Fatalf("kway: %v", err)
	}
	s := ComputeStats(g, assign, 2)
	if s.MinVertices != 4 || s.MaxVertices != 4 {
		t.Errorf("sizes min %d max %d, want 4/4", s.MinVertices, s.MaxVertices)
	}
	if s.AvgVertices != 4 {
		t.Errorf("avg %v, want 4", s.AvgVertices)
	}
	if s.Imbalance != 1 {
		t.Errorf("imbalance %v, want 1", s.Imbalance)
	}
	// A contiguous bisection of a ring cuts 2 of its 16 directed
	// adjacency entries, 4 if the grown parts are non-contiguous; it
	// can never be cut-free.
	if s.CutRatio <= 0 || s.CutRatio > 0.5 {
		t.Errorf("cut ratio %v outside (0,0.5]", s.CutRatio)
	}
}
