package decomp

import "errors"

// Error taxonomy. Everything in this layer is terminal: a wrapped
// sentinel propagates up through Create and no partially built
// decomposition is ever registered or returned.
var (
	// ErrConfig marks a missing or malformed configuration input.
	ErrConfig = errors.New("decomp: configuration error")
	// ErrMeshFormat marks a dimension or array absent under both naming
	// conventions, or a non-positive resolved size.
	ErrMeshFormat = errors.New("decomp: mesh format error")
	// ErrPartition marks a failure of the delegated graph partitioner.
	ErrPartition = errors.New("decomp: partition error")
	// ErrConsistency marks adjacency that resolves to no local entity.
	// Translation substitutes the boundary sentinel for such slots; the
	// error is only raised under Options.StrictHalo, since a substituted
	// slot can equally be a true mesh boundary or a halo width too small
	// to capture a dependency.
	ErrConsistency = errors.New("decomp: consistency error")
	// ErrNotFound marks a registry lookup for an absent name.
	ErrNotFound = errors.New("decomp: no such decomposition")
)
