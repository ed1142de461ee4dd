package fabric

import (
	"testing"

	"sudoku-engine/internal/core"
)

func TestBuildMatchesGridCandidates(t *testing.T) {
	g, err := core.FromString("530070000600195000098000060800060003400803001700020006060000280000419005000080079")
	if err != nil {
		t.Fatal(err)
	}
	f := Build(g)
	for i := 0; i < 81; i++ {
		if f.Candidates(i) != g.Candidates(i) {
			t.Errorf("cell %d: fabric candidates %v != grid candidates %v", i, f.Candidates(i), g.Candidates(i))
		}
	}
}

func TestHouseDigitCellsConsistency(t *testing.T) {
	g, err := core.FromString("530070000600195000098000060800060003400803001700020006060000280000419005000080079")
	if err != nil {
		t.Fatal(err)
	}
	f := Build(g)
	houses := core.AllHouses()
	for h, house := range houses {
		for d := 1; d <= 9; d++ {
			cells := f.HouseDigitCells(h, d)
			for _, idx := range cells {
				if !f.Candidates(idx).Has(d) {
					t.Errorf("house %d digit %d cell %d lacks candidate", h, d, idx)
				}
				found := false
				for _, hc := range house.Cells {
					if hc == idx {
						found = true
					}
				}
				if !found {
					t.Errorf("cell %d not a member of house %d", idx, h)
				}
			}
		}
	}
}

func TestBivalueIndex(t *testing.T) {
	g := core.NewEmptyGrid()
	g.SetCellUnchecked(core.Position{Row: 0, Col: 0}, 1)
	g.RecalculateCandidates()
	f := Build(g)
	for _, idx := range f.Bivalue() {
		if f.Candidates(idx).Count() != 2 {
			t.Errorf("cell %d in bivalue index has count %d", idx, f.Candidates(idx).Count())
		}
	}
}
