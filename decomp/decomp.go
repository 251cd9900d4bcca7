// Package decomp partitions an unstructured mesh across a process group,
// derives per-rank ownership and multi-level halo shells for cells, edges
// and vertices, redistributes every connectivity array from the naive
// linear distribution into the final local ordering, and rewrites all
// adjacency from 1-based global IDs into 0-based local indices with a
// reserved boundary sentinel.
//
// The pipeline is strictly sequential and collective: every rank executes
// the identical stage sequence, and all cross-rank data motion is
// round-robin blocking broadcast, one rank's chunk at a time. A finished
// Decomp is immutable and safe for concurrent readers.
package decomp

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/notargets/meshdecomp/comm"
	"github.com/notargets/meshdecomp/mesh"
	"github.com/notargets/meshdecomp/partitions"
)

// Stage tracks construction progress. No stage is retried; failure at
// any stage is terminal.
type Stage uint8

const (
	Unconstructed Stage = iota
	Reading
	CellPartitioning
	CellRearrange
	EdgePartitioning
	EdgeRearrange
	VertexPartitioning
	VertexRearrange
	IndexTranslation
	Ready
)

var stageNames = [...]string{
	"Unconstructed", "Reading", "CellPartitioning", "CellRearrange",
	"EdgePartitioning", "EdgeRearrange", "VertexPartitioning",
	"VertexRearrange", "IndexTranslation", "Ready",
}

func (s Stage) String() string {
	if int(s) < len(stageNames) {
		return stageNames[s]
	}
	return fmt.Sprintf("Stage(%d)", uint8(s))
}

// Loc identifies where an entity lives: the owning rank and the
// entity's local index on that rank.
type Loc struct {
	Rank  int32
	Index int32
}

// Span holds one entity kind's local view: owned entities first, then
// halo shells in non-decreasing level order. ID[i] is the 1-based global
// ID at local index i; Loc[i] is its owning location. NHalo is
// cumulative and halo-inclusive: NHalo[h] counts owned entities plus all
// shells up to and including h+1, so NHalo[len(NHalo)-1] == NAll.
type Span struct {
	NOwned int
	NHalo  []int
	NAll   int
	ID     []int64
	Loc    []Loc

	index *globalMap
}

// Boundary returns the reserved local index meaning "no such entity".
func (s *Span) Boundary() int32 { return int32(s.NAll) }

// GlobalToLocal resolves a global ID to its local index. The impossible
// ID NGlobal+1 resolves to the boundary index.
func (s *Span) GlobalToLocal(gid int64) (int32, bool) {
	return s.index.lookup(gid)
}

// LocalToGlobal returns the global ID at a local index.
func (s *Span) LocalToGlobal(idx int32) (int64, bool) {
	if idx < 0 || int(idx) >= s.NAll {
		return 0, false
	}
	return s.ID[idx], true
}

// Options configures one decomposition build.
type Options struct {
	// Name registers the decomposition; must be unique per registry.
	Name string
	// Method selects the graph partitioner realization.
	Method partitions.Method
	// HaloWidth is the number of halo shells to materialize, >= 1.
	HaloWidth int
	// StrictHalo turns silently substituted adjacency slots into a
	// ConsistencyError after translation instead of a logged warning.
	StrictHalo bool
	// Logger receives one structured line per stage. Defaults to a nop
	// logger.
	Logger *zap.Logger
}

// Decomp is a finished mesh decomposition: per-kind ownership and halo
// spans, plus the eight adjacency arrays rewritten to local indices.
// Adjacency arrays are row-major over local indices of their keyed kind
// with the strides given by Sizes; a slot holding the kind's boundary
// index means "no such neighbor".
type Decomp struct {
	Name      string
	Group     comm.Group
	Method    partitions.Method
	HaloWidth int

	mesh.Sizes

	Cells    Span
	Edges    Span
	Vertices Span

	// Keyed by local cell, stride MaxEdges.
	CellsOnCell    []int32
	EdgesOnCell    []int32
	VerticesOnCell []int32
	// Keyed by local edge; strides MaxCellsOnEdge, 2*MaxEdges-2, 2.
	CellsOnEdge    []int32
	EdgesOnEdge    []int32
	VerticesOnEdge []int32
	// Keyed by local vertex, stride VertexDegree.
	CellsOnVertex []int32
	EdgesOnVertex []int32

	stage Stage
}

// Stage returns the construction stage; Ready once Create has returned.
func (d *Decomp) Stage() Stage { return d.stage }

// Create builds a decomposition over the communicator's group. The
// stages run in strict order; the first failure aborts construction and
// nothing partial is returned. Every rank of the group must call Create
// with identical options and an equivalent mesh source.
func Create(c *comm.Comm, src mesh.Source, opts Options) (*Decomp, error) {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	log = log.With(zap.String("decomp", opts.Name), zap.Int("rank", c.Rank()))

	if opts.HaloWidth < 1 {
		return nil, fmt.Errorf("%w: halo width %d < 1", ErrConfig, opts.HaloWidth)
	}
	method, err := partitions.ParseMethod(string(opts.Method))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfig, err)
	}
	if method == partitions.MethodTrivial && c.Size() != 1 {
		return nil, fmt.Errorf("%w: trivial method on a group of %d ranks", ErrConfig, c.Size())
	}

	d := &Decomp{
		Name:      opts.Name,
		Group:     c.Group(),
		Method:    method,
		HaloWidth: opts.HaloWidth,
		stage:     Reading,
	}
	log.Info("decomposition start", zap.String("method", string(method)),
		zap.Int("haloWidth", opts.HaloWidth))

	lm, err := mesh.Read(src, c.Group())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMeshFormat, err)
	}
	d.Sizes = lm.Sizes
	log.Info("mesh read", zap.Int("nCells", d.NCells), zap.Int("nEdges", d.NEdges),
		zap.Int("nVertices", d.NVertices))

	d.stage = CellPartitioning
	assign, err := partitionCells(c, lm, method)
	if err != nil {
		return nil, err
	}
	d.Cells, err = partCells(c, lm, assign, opts.HaloWidth)
	if err != nil {
		return nil, err
	}
	log.Info("cells partitioned", zap.Int("owned", d.Cells.NOwned),
		zap.Int("all", d.Cells.NAll))

	d.stage = CellRearrange
	cellsOnCell, err := rearrange(c, lm.CellsOnCell, d.MaxEdges, d.NCells, d.Cells.ID)
	if err != nil {
		return nil, err
	}
	edgesOnCell, err := rearrange(c, lm.EdgesOnCell, d.MaxEdges, d.NCells, d.Cells.ID)
	if err != nil {
		return nil, err
	}
	verticesOnCell, err := rearrange(c, lm.VerticesOnCell, d.MaxEdges, d.NCells, d.Cells.ID)
	if err != nil {
		return nil, err
	}

	d.stage = EdgePartitioning
	d.Edges, err = partIncident(c, incidentInput{
		nGlobal:        d.NEdges,
		incidentOnCell: edgesOnCell,
		stride:         d.MaxEdges,
		linCells:       lm.CellsOnEdge,
		linStride:      d.MaxCellsOnEdge,
		cells:          &d.Cells,
		assign:         assign,
		nCells:         d.NCells,
		haloWidth:      opts.HaloWidth,
	})
	if err != nil {
		return nil, err
	}
	log.Info("edges partitioned", zap.Int("owned", d.Edges.NOwned),
		zap.Int("all", d.Edges.NAll))

	d.stage = EdgeRearrange
	cellsOnEdge, err := rearrange(c, lm.CellsOnEdge, d.MaxCellsOnEdge, d.NEdges, d.Edges.ID)
	if err != nil {
		return nil, err
	}
	edgesOnEdge, err := rearrange(c, lm.EdgesOnEdge, 2*d.MaxEdges-2, d.NEdges, d.Edges.ID)
	if err != nil {
		return nil, err
	}
	verticesOnEdge, err := rearrange(c, lm.VerticesOnEdge, 2, d.NEdges, d.Edges.ID)
	if err != nil {
		return nil, err
	}

	d.stage = VertexPartitioning
	d.Vertices, err = partIncident(c, incidentInput{
		nGlobal:        d.NVertices,
		incidentOnCell: verticesOnCell,
		stride:         d.MaxEdges,
		linCells:       lm.CellsOnVertex,
		linStride:      d.VertexDegree,
		cells:          &d.Cells,
		assign:         assign,
		nCells:         d.NCells,
		haloWidth:      opts.HaloWidth,
	})
	if err != nil {
		return nil, err
	}
	log.Info("vertices partitioned", zap.Int("owned", d.Vertices.NOwned),
		zap.Int("all", d.Vertices.NAll))

	d.stage = VertexRearrange
	cellsOnVertex, err := rearrange(c, lm.CellsOnVertex, d.VertexDegree, d.NVertices, d.Vertices.ID)
	if err != nil {
		return nil, err
	}
	edgesOnVertex, err := rearrange(c, lm.EdgesOnVertex, d.VertexDegree, d.NVertices, d.Vertices.ID)
	if err != nil {
		return nil, err
	}

	d.stage = IndexTranslation
	d.Cells.index = newGlobalMap(d.NCells, d.Cells.ID)
	d.Edges.index = newGlobalMap(d.NEdges, d.Edges.ID)
	d.Vertices.index = newGlobalMap(d.NVertices, d.Vertices.ID)

	var subs int
	sub := func(name string, out *[]int32, src []int64, gm *globalMap) {
		var n int
		*out, n = gm.translate(src)
		if n > 0 {
			log.Warn("adjacency slots substituted with boundary sentinel",
				zap.String("array", name), zap.Int("slots", n))
		}
		subs += n
	}
	sub(mesh.VarCellsOnCell, &d.CellsOnCell, cellsOnCell, d.Cells.index)
	sub(mesh.VarEdgesOnCell, &d.EdgesOnCell, edgesOnCell, d.Edges.index)
	sub(mesh.VarVerticesOnCell, &d.VerticesOnCell, verticesOnCell, d.Vertices.index)
	sub(mesh.VarCellsOnEdge, &d.CellsOnEdge, cellsOnEdge, d.Cells.index)
	sub(mesh.VarEdgesOnEdge, &d.EdgesOnEdge, edgesOnEdge, d.Edges.index)
	sub(mesh.VarVerticesOnEdge, &d.VerticesOnEdge, verticesOnEdge, d.Vertices.index)
	sub(mesh.VarCellsOnVertex, &d.CellsOnVertex, cellsOnVertex, d.Cells.index)
	sub(mesh.VarEdgesOnVertex, &d.EdgesOnVertex, edgesOnVertex, d.Edges.index)

	if subs > 0 && opts.StrictHalo {
		return nil, fmt.Errorf("%w: %d adjacency slots resolved to no local entity (halo width %d)",
			ErrConsistency, subs, opts.HaloWidth)
	}

	d.stage = Ready
	log.Info("decomposition ready")
	return d, nil
}

// partitionCells produces the replicated assignment vector for the
// configured method. All realizations return bit-identical assignments
// on every rank; divergence here would silently corrupt everything
// downstream.
func partitionCells(c *comm.Comm, lm *mesh.Linear, method partitions.Method) ([]int32, error) {
	numParts := c.Size()
	if numParts == 1 {
		// Never hand a k-way partitioner one part.
		return make([]int32, lm.NCells), nil
	}
	switch method {
	case partitions.MethodDistributedKWay:
		assign, err := partitions.Distributed{}.PartitionChunks(
			c, lm.CellsOnCell, lm.MaxEdges, lm.NCells, numParts)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrPartition, err)
		}
		return assign, nil
	default:
		full, err := partitions.AssembleChunks(c, lm.CellsOnCell, lm.MaxEdges, lm.NCells)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrPartition, err)
		}
		g, err := partitions.FromAdjacency(full, lm.MaxEdges, lm.NCells)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrPartition, err)
		}
		p, err := partitions.ForMethod(method)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrConfig, err)
		}
		assign, err := p.Partition(g, numParts)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrPartition, err)
		}
		return assign, nil
	}
}
