package decomp

import (
	"fmt"

	"github.com/notargets/meshdecomp/comm"
	"github.com/notargets/meshdecomp/mesh"
)

// Registry holds the named decompositions of one rank. It is an explicit
// object owned by whoever drives initialization, not a process-wide
// singleton. The registry is populated during the initialization phase,
// which is single-threaded per rank, so it carries no locking; finished
// decompositions are immutable and may be read from any thread.
type Registry struct {
	byName  map[string]*Decomp
	defName string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]*Decomp)}
}

// Create builds a decomposition (see Create) and registers it under its
// name. The first registered decomposition becomes the default.
// Construction is all-or-nothing: on any stage failure nothing is
// registered.
func (r *Registry) Create(c *comm.Comm, src mesh.Source, opts Options) (*Decomp, error) {
	if opts.Name == "" {
		return nil, fmt.Errorf("%w: decomposition name is empty", ErrConfig)
	}
	if _, exists := r.byName[opts.Name]; exists {
		return nil, fmt.Errorf("%w: decomposition %q already registered", ErrConfig, opts.Name)
	}
	d, err := Create(c, src, opts)
	if err != nil {
		return nil, err
	}
	r.byName[opts.Name] = d
	if r.defName == "" {
		r.defName = opts.Name
	}
	return d, nil
}

// Get retrieves a decomposition by name.
func (r *Registry) Get(name string) (*Decomp, error) {
	d, ok := r.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return d, nil
}

// GetDefault retrieves the default decomposition.
func (r *Registry) GetDefault() (*Decomp, error) {
	if r.defName == "" {
		return nil, fmt.Errorf("%w: no default decomposition", ErrNotFound)
	}
	return r.Get(r.defName)
}

// SetDefault marks a registered decomposition as the default.
func (r *Registry) SetDefault(name string) error {
	if _, ok := r.byName[name]; !ok {
		return fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	r.defName = name
	return nil
}

// Erase removes one decomposition, releasing its storage.
func (r *Registry) Erase(name string) error {
	if _, ok := r.byName[name]; !ok {
		return fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	delete(r.byName, name)
	if r.defName == name {
		r.defName = ""
	}
	return nil
}

// Clear removes every decomposition.
func (r *Registry) Clear() {
	r.byName = make(map[string]*Decomp)
	r.defName = ""
}

// Len returns the number of registered decompositions.
func (r *Registry) Len() int { return len(r.byName) }
