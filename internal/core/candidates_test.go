package core

import "testing"

func TestCandidatesSetHasClear(t *testing.T) {
	var c Candidates
	c = c.Set(3).Set(7)
	if !c.Has(3) || !c.Has(7) {
		t.Fatalf("expected 3 and 7 set, got %v", c)
	}
	if c.Has(1) {
		t.Error("1 should not be set")
	}
	c = c.Clear(3)
	if c.Has(3) {
		t.Error("3 should be cleared")
	}
}

func TestCandidatesOnly(t *testing.T) {
	c := NewCandidates([]int{5})
	d, ok := c.Only()
	if !ok || d != 5 {
		t.Errorf("Only() = (%d, %v), want (5, true)", d, ok)
	}
	c2 := NewCandidates([]int{5, 6})
	if _, ok := c2.Only(); ok {
		t.Error("Only() should be false for 2 candidates")
	}
}

func TestCandidatesSetOps(t *testing.T) {
	a := NewCandidates([]int{1, 2, 3})
	b := NewCandidates([]int{2, 3, 4})
	if got := a.Intersect(b); !got.Equals(NewCandidates([]int{2, 3})) {
		t.Errorf("Intersect = %v, want {2,3}", got)
	}
	if got := a.Union(b); !got.Equals(NewCandidates([]int{1, 2, 3, 4})) {
		t.Errorf("Union = %v, want {1,2,3,4}", got)
	}
	if got := a.Subtract(b); !got.Equals(NewCandidates([]int{1})) {
		t.Errorf("Subtract = %v, want {1}", got)
	}
}

func TestFullCandidatesCountIsNine(t *testing.T) {
	if got := FullCandidates().Count(); got != 9 {
		t.Errorf("FullCandidates().Count() = %d, want 9", got)
	}
}

func TestCandidatesToSliceSorted(t *testing.T) {
	c := NewCandidates([]int{9, 1, 5})
	got := c.ToSlice()
	want := []int{1, 5, 9}
	if len(got) != len(want) {
		t.Fatalf("ToSlice() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("ToSlice()[%d] = %d, want %d", i, got[i], want[i])
		}
	}
}
