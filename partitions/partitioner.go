package partitions

import (
	"fmt"
)

// Method names the partitioning strategies accepted by configuration.
type Method string

const (
	// MethodTrivial assigns every cell to rank 0. Only valid for a
	// single-rank group.
	MethodTrivial Method = "trivial"
	// MethodSerialKWay runs the pure-Go deterministic k-way grower
	// redundantly on the replicated graph.
	MethodSerialKWay Method = "serial-kway"
	// MethodMetisKWay delegates to METIS on the replicated graph.
	MethodMetisKWay Method = "metis-kway"
	// MethodDistributedKWay assembles the linearly pre-distributed
	// subgraph chunks and runs the serial k-way kernel on the result.
	MethodDistributedKWay Method = "distributed-kway"
)

// ParseMethod validates a configuration string.
func ParseMethod(s string) (Method, error) {
	switch Method(s) {
	case MethodTrivial, MethodSerialKWay, MethodMetisKWay, MethodDistributedKWay:
		return Method(s), nil
	}
	return "", fmt.Errorf("unknown partition method %q", s)
}

// Partitioner maps a graph onto numParts parts. Implementations must be
// deterministic functions of their inputs.
type Partitioner interface {
	Partition(g CSR, numParts int) ([]int32, error)
}

// ForMethod returns the serial Partitioner realizing a method. The
// distributed method shares the serial k-way kernel once its input has
// been assembled (see Distributed).
func ForMethod(m Method) (Partitioner, error) {
	switch m {
	case MethodTrivial:
		return Trivial{}, nil
	case MethodSerialKWay, MethodDistributedKWay:
		return KWay{}, nil
	case MethodMetisKWay:
		return Metis{}, nil
	}
	return nil, fmt.Errorf("unknown partition method %q", m)
}

// Trivial assigns everything to part 0. It exists so the single-rank
// path never reaches an external k-way partitioner: some of those fault
// when asked for one part.
type Trivial struct{}

// Partition implements Partitioner.
func (Trivial) Partition(g CSR, numParts int) ([]int32, error) {
	if numParts != 1 {
		return nil, fmt.Errorf("trivial partitioner supports exactly 1 part, got %d", numParts)
	}
	return make([]int32, g.NumVertices()), nil
}
