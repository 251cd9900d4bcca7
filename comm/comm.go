// Package comm provides the process-group and collective-communication
// layer for SPMD mesh decomposition. Every rank executes the same program
// over its own data; all cross-rank data motion goes through blocking
// collective broadcast. The package presents an MPI-like surface but runs
// the ranks as goroutines inside one process, which keeps the decomposition
// code testable at any rank count without a launcher. A real MPI transport
// would slot in behind the same Comm methods.
//
// All calls are blocking: a broadcast returns only once every member of the
// group has issued the matching call. There is no cancellation and no
// timeout; a rank that fails abandons the group and the run is over.
package comm

import (
	"fmt"
	"sync"
)

// Group describes a contiguous set of cooperating ranks with a designated
// root.
type Group struct {
	rank int
	size int
	root int
}

// NewGroup builds the view of a group from one rank's perspective.
func NewGroup(rank, size int) Group {
	return Group{rank: rank, size: size, root: 0}
}

// Rank returns the calling process's rank, 0 <= Rank < Size.
func (g Group) Rank() int { return g.rank }

// Size returns the number of ranks in the group.
func (g Group) Size() int { return g.size }

// Root returns the designated root rank.
func (g Group) Root() int { return g.root }

// Contains reports whether rank is a member of the group.
func (g Group) Contains(rank int) bool { return rank >= 0 && rank < g.size }

// Elem constrains the value types the collective layer can move: the
// integer and float widths used by connectivity and coordinate arrays,
// plus booleans and strings for control data.
type Elem interface {
	~int32 | ~int64 | ~float32 | ~float64 | ~bool | ~string
}

// message is one broadcast payload in flight from a root to one receiver.
type message struct {
	root    int
	payload any
}

// World owns the channel fabric connecting all ranks of one group. Every
// rank holds a *Comm bound to the same World.
type World struct {
	size  int
	inbox []chan message
}

// NewWorld creates the fabric for size ranks.
func NewWorld(size int) *World {
	if size < 1 {
		panic(fmt.Sprintf("comm: world size %d < 1", size))
	}
	w := &World{size: size, inbox: make([]chan message, size)}
	for i := range w.inbox {
		w.inbox[i] = make(chan message, size)
	}
	return w
}

// Comm returns the communicator for the given rank.
func (w *World) Comm(rank int) *Comm {
	if rank < 0 || rank >= w.size {
		panic(fmt.Sprintf("comm: rank %d out of range [0,%d)", rank, w.size))
	}
	return &Comm{group: NewGroup(rank, w.size), world: w}
}

// Comm is one rank's handle on the group. It is not safe for concurrent
// use by multiple goroutines; the SPMD model is one goroutine per rank.
type Comm struct {
	group Group
	world *World
}

// Group returns the group this communicator belongs to.
func (c *Comm) Group() Group { return c.group }

// Rank is shorthand for c.Group().Rank().
func (c *Comm) Rank() int { return c.group.rank }

// Size is shorthand for c.Group().Size().
func (c *Comm) Size() int { return c.group.size }

// Bcast broadcasts buf from root to every rank of the group and returns
// the broadcast slice. On the root the input slice itself is returned; on
// other ranks buf is ignored and the received slice is returned. All
// receiving ranks share one underlying array: the returned slice is
// read-only, and a rank that needs to mutate the data must copy it
// first. Every rank must call Bcast with the same root in the same
// collective sequence; a mismatched root is a sequencing bug and is
// reported as an error.
func Bcast[T Elem](c *Comm, buf []T, root int) ([]T, error) {
	if !c.group.Contains(root) {
		return nil, fmt.Errorf("comm: broadcast root %d outside group of size %d", root, c.group.size)
	}
	if c.group.rank == root {
		out := make([]T, len(buf))
		copy(out, buf)
		for r := 0; r < c.group.size; r++ {
			if r == root {
				continue
			}
			c.world.inbox[r] <- message{root: root, payload: out}
		}
		return buf, nil
	}
	m := <-c.world.inbox[c.group.rank]
	if m.root != root {
		return nil, fmt.Errorf("comm: rank %d expected broadcast from %d, got %d", c.group.rank, root, m.root)
	}
	recv, ok := m.payload.([]T)
	if !ok {
		return nil, fmt.Errorf("comm: rank %d received %T from root %d, element type mismatch", c.group.rank, m.payload, root)
	}
	return recv, nil
}

// BcastScalar broadcasts a single value from root to every rank.
func BcastScalar[T Elem](c *Comm, v T, root int) (T, error) {
	out, err := Bcast(c, []T{v}, root)
	if err != nil {
		var zero T
		return zero, err
	}
	return out[0], nil
}

// Run executes fn as an SPMD program on size ranks, one goroutine per
// rank, and returns the first error any rank produced. It is the test and
// example harness; production launchers own their own rank loop.
func Run(size int, fn func(c *Comm) error) error {
	w := NewWorld(size)
	errs := make([]error, size)
	var wg sync.WaitGroup
	wg.Add(size)
	for r := 0; r < size; r++ {
		go func(rank int) {
			defer wg.Done()
			errs[rank] = fn(w.Comm(rank))
		}(r)
	}
	wg.Wait()
	for r, err := range errs {
		if err != nil {
			return fmt.Errorf("rank %d: %w", r, err)
		}
	}
	return nil
}

// Self returns a single-rank communicator, the degenerate world used for
// serial runs.
func Self() *Comm {
	return NewWorld(1).Comm(0)
}
