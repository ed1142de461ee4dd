package core

import "testing"

func TestFromStringRoundTrip(t *testing.T) {
	puzzle := "530070000600195000098000060800060003400803001700020006060000280000419005000080079"
	g, err := FromString(puzzle)
	if err != nil {
		t.Fatalf("FromString returned error: %v", err)
	}
	if got := g.String(); got != puzzle {
		t.Errorf("String() = %q, want %q", got, puzzle)
	}
}

func TestFromStringRejectsWrongLength(t *testing.T) {
	if _, err := FromString("123"); err == nil {
		t.Error("expected error for short puzzle string")
	}
}

func TestFromStringRejectsInvalidChar(t *testing.T) {
	bad := "a30070000600195000098000060800060003400803001700020006060000280000419005000080079"
	if _, err := FromString(bad); err == nil {
		t.Error("expected error for invalid character")
	}
}

func TestRecalculateCandidatesExcludesRowPeers(t *testing.T) {
	g, err := FromString("530070000600195000098000060800060003400803001700020006060000280000419005000080079")
	if err != nil {
		t.Fatal(err)
	}
	// R1C3 (idx 2) is empty; 5 and 3 are givens in row 0, so 5 and 3 cannot be candidates there.
	cands := g.Candidates(IndexOf(0, 2))
	if cands.Has(5) || cands.Has(3) {
		t.Errorf("candidates at R1C3 = %v, should exclude row givens 5 and 3", cands)
	}
}

func TestDeepCloneIsIndependent(t *testing.T) {
	g := NewEmptyGrid()
	clone := g.DeepClone()
	clone.SetCellUnchecked(Position{0, 0}, 5)
	clone.RecalculateCandidates()
	if v, ok := g.Get(Position{0, 0}); ok {
		t.Errorf("original grid mutated by clone: got %d", v)
	}
}

func TestIsCompleteAndIsValid(t *testing.T) {
	g := NewEmptyGrid()
	if g.IsComplete() {
		t.Error("empty grid should not be complete")
	}
	if !g.IsValid() {
		t.Error("empty grid should be valid")
	}
}

func TestEmptyPositionsCount(t *testing.T) {
	puzzle := "530070000600195000098000060800060003400803001700020006060000280000419005000080079"
	g, _ := FromString(puzzle)
	given := 0
	for _, ch := range puzzle {
		if ch != '0' && ch != '.' {
			given++
		}
	}
	if got := len(g.EmptyPositions()); got != 81-given {
		t.Errorf("EmptyPositions() length = %d, want %d", got, 81-given)
	}
}
