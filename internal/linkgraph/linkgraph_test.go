package linkgraph

import (
	"testing"

	"sudoku-engine/internal/core"
	"sudoku-engine/internal/fabric"
)

const puzzle = "530070000600195000098000060800060003400803001700020006060000280000419005000080079"

func build(t *testing.T) *fabric.Fabric {
	t.Helper()
	g, err := core.FromString(puzzle)
	if err != nil {
		t.Fatal(err)
	}
	return fabric.Build(g)
}

func TestStrongLinkImpliesWeakLink(t *testing.T) {
	g := Build(build(t))
	for v, strongs := range g.strong {
		for _, s := range strongs {
			if !g.IsStrong(v, s) {
				t.Errorf("%v -> %v recorded as strong but IsStrong is false", v, s)
			}
			found := false
			for _, w := range g.weak[v] {
				if w == s {
					found = true
				}
			}
			if !found {
				t.Errorf("%v -> %v is strong but missing from weak links", v, s)
			}
		}
	}
}

func TestBivalueCellProducesStrongLink(t *testing.T) {
	f := build(t)
	g := Build(f)
	for i := 0; i < 81; i++ {
		digits := f.Candidates(i).ToSlice()
		if len(digits) != 2 {
			continue
		}
		a, b := Vertex{i, digits[0]}, Vertex{i, digits[1]}
		if !g.IsStrong(a, b) {
			t.Errorf("cell %d bivalue %v should be strongly linked", i, digits)
		}
	}
}

func TestFindAlternatingChainRespectsMaxLen(t *testing.T) {
	f := build(t)
	g := Build(f)
	var start Vertex
	found := false
	for i := 0; i < 81 && !found; i++ {
		for _, d := range f.Candidates(i).ToSlice() {
			start = Vertex{i, d}
			found = true
			break
		}
	}
	if !found {
		t.Skip("no candidates to start a chain from")
	}
	chain := FindAlternatingChain(g, start, 100, 2, func(Chain) bool { return true })
	if chain != nil {
		t.Errorf("expected no chain within maxLen=2 requiring minLen=100, got %v", chain)
	}
}
