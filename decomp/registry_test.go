package decomp

import (
	"errors"
	"fmt"
	"testing"

	"github.com/notargets/meshdecomp/comm"
	"github.com/notargets/meshdecomp/mesh"
	"github.com/notargets/meshdecomp/partitions"
)

func registryCreate(t *testing.T, r *Registry, name string) *Decomp {
	t.Helper()
	d, err := r.Create(comm.Self(), mesh.NewMapSource(mesh.Ring(4)), Options{
		Name: name, Method: partitions.MethodTrivial, HaloWidth: 1,
	})
	if err != nil {
		t.Fatalf("create %q: %v", name, err)
	}
	return d
}

func TestRegistryLifecycle(t *testing.T) {
	r := NewRegistry()

	first := registryCreate(t, r, "Default")
	second := registryCreate(t, r, "Ocean")
	if r.Len() != 2 {
		t.Fatalf("Len = %d, want 2", r.Len())
	}

	got, err := r.Get("Ocean")
	if err != nil || got != second {
		t.Errorf("Get(Ocean) = %v, %v", got, err)
	}
	def, err := r.GetDefault()
	if err != nil || def != first {
		t.Errorf("default should be the first registered decomposition")
	}

	if err := r.SetDefault("Ocean"); err != nil {
		t.Fatalf("SetDefault: %v", err)
	}
	def, err = r.GetDefault()
	if err != nil || def != second {
		t.Errorf("default should follow SetDefault")
	}

	if err := r.Erase("Ocean"); err != nil {
		t.Fatalf("Erase: %v", err)
	}
	if _, err := r.Get("Ocean"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get after erase: %v, want ErrNotFound", err)
	}
	if _, err := r.GetDefault(); !errors.Is(err, ErrNotFound) {
		t.Errorf("erasing the default must clear it, got %v", err)
	}

	r.Clear()
	if r.Len() != 0 {
		t.Errorf("Len after clear = %d", r.Len())
	}
}

func TestRegistryRejectsDuplicateAndEmptyNames(t *testing.T) {
	r := NewRegistry()
	registryCreate(t, r, "Default")

	_, err := r.Create(comm.Self(), mesh.NewMapSource(mesh.Ring(4)), Options{
		Name: "Default", Method: partitions.MethodTrivial, HaloWidth: 1,
	})
	if !errors.Is(err, ErrConfig) {
		t.Errorf("duplicate name: %v, want ErrConfig", err)
	}
	_, err = r.Create(comm.Self(), mesh.NewMapSource(mesh.Ring(4)), Options{
		Method: partitions.MethodTrivial, HaloWidth: 1,
	})
	if !errors.Is(err, ErrConfig) {
		t.Errorf("empty name: %v, want ErrConfig", err)
	}
	if r.Len() != 1 {
		t.Errorf("failed creates must register nothing, Len = %d", r.Len())
	}
}

func TestRegistryEraseUnknown(t *testing.T) {
	r := NewRegistry()
	if err := r.Erase("ghost"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Erase(ghost) = %v, want ErrNotFound", err)
	}
	if err := r.SetDefault("ghost"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("SetDefault(ghost) = %v, want ErrNotFound", err)
	}
}

// Each rank keeps its own registry; creation is collective but
// registration is rank-local.
func TestRegistryPerRank(t *testing.T) {
	err := comm.Run(2, func(c *comm.Comm) error {
		r := NewRegistry()
		_, err := r.Create(c, mesh.NewMapSource(mesh.Ring(8)), Options{
			Name: "Default", Method: partitions.MethodSerialKWay, HaloWidth: 1,
		})
		if err != nil {
			return err
		}
		d, err := r.GetDefault()
		if err != nil {
			return err
		}
		if d.Cells.NOwned != 4 {
			return fmt.Errorf("rank %d owns %d cells, want 4", c.Rank(), d.Cells.NOwned)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
}
