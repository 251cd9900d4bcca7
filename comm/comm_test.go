package comm

import (
	"testing"
)

func TestBcastSliceAllRanks(t *testing.T) {
	const size = 4
	err := Run(size, func(c *Comm) error {
		for root := 0; root < size; root++ {
			var send []int64
			if c.Rank() == root {
				send = []int64{int64(root), int64(root) * 10, int64(root) * 100}
			}
			got, err := Bcast(c, send, root)
			if err != nil {
				return err
			}
			want := []int64{int64(root), int64(root) * 10, int64(root) * 100}
			if len(got) != len(want) {
				t.Errorf("rank %d root %d: got %d values, want %d", c.Rank(), root, len(got), len(want))
				return nil
			}
			for i := range want {
				if got[i] != want[i] {
					t.Errorf("rank %d root %d: got[%d]=%d, want %d", c.Rank(), root, i, got[i], want[i])
				}
			}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
}

func TestBcastScalarTypes(t *testing.T) {
	err := Run(3, func(c *Comm) error {
		s, err := BcastScalar(c, "halo", 0)
		if err != nil {
			return err
		}
		if s != "halo" {
			t.Errorf("rank %d: got %q", c.Rank(), s)
		}
		b, err := BcastScalar(c, c.Rank() == 2, 2)
		if err != nil {
			return err
		}
		if !b {
			t.Errorf("rank %d: bool broadcast lost", c.Rank())
		}
		f, err := BcastScalar(c, float64(2.5), 1)
		if err != nil {
			return err
		}
		if f != 2.5 {
			t.Errorf("rank %d: got %v", c.Rank(), f)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
}

func TestBcastRootOutOfRange(t *testing.T) {
	c := Self()
	if _, err := Bcast(c, []int32{1}, 5); err == nil {
		t.Fatal("expected error for root outside group")
	}
}

func TestSelfWorld(t *testing.T) {
	c := Self()
	if c.Rank() != 0 || c.Size() != 1 {
		t.Fatalf("self comm: rank %d size %d", c.Rank(), c.Size())
	}
	got, err := Bcast(c, []float32{1, 2}, 0)
	if err != nil {
		t.Fatalf("self broadcast: %v", err)
	}
	if len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Fatalf("self broadcast returned %v", got)
	}
}

func TestGroupMembership(t *testing.T) {
	g := NewGroup(2, 4)
	if !g.Contains(0) || !g.Contains(3) {
		t.Error("group should contain ranks 0 and 3")
	}
	if g.Contains(4) || g.Contains(-1) {
		t.Error("group should not contain 4 or -1")
	}
	if g.Root() != 0 {
		t.Errorf("root = %d, want 0", g.Root())
	}
}
