package basic

import (
	"testing"

	"sudoku-engine/internal/core"
	"sudoku-engine/internal/fabric"
	"sudoku-engine/internal/model"
)

func build(t *testing.T, puzzle string) *fabric.Fabric {
	t.Helper()
	g, err := core.FromString(puzzle)
	if err != nil {
		t.Fatal(err)
	}
	return fabric.Build(g)
}

const easyPuzzle = "530070000600195000098000060800060003400803001700020006060000280000419005000080079"

func TestFindNakedSingleSound(t *testing.T) {
	f := build(t, easyPuzzle)
	finding := FindNakedSingle(f)
	if finding == nil {
		t.Fatal("expected a naked single on the easy puzzle")
	}
	if finding.Technique != model.NakedSingle {
		t.Errorf("technique = %v, want NakedSingle", finding.Technique)
	}
	if finding.Inference.Kind != model.Placement {
		t.Error("naked single must be a placement")
	}
}

func TestFindHiddenSingleNoFalsePositive(t *testing.T) {
	// FindHiddenSingle skips cells that are already naked singles; check it
	// never flags an already-single cell (that's NakedSingle's job).
	f := build(t, easyPuzzle)
	finding := FindHiddenSingle(f)
	if finding == nil {
		return
	}
	if f.Candidates(finding.Inference.Cell).Count() <= 1 {
		t.Error("hidden single should not fire on a cell that is already a naked single")
	}
}

func TestFindNakedSubsetEliminationNonEmpty(t *testing.T) {
	for _, k := range []int{2, 3, 4} {
		f := build(t, easyPuzzle)
		if finding := FindNakedSubset(f, k); finding != nil {
			if len(finding.Inference.Values) == 0 {
				t.Errorf("k=%d: empty elimination set emitted", k)
			}
		}
	}
}

func TestFindHiddenSubsetEliminationNonEmpty(t *testing.T) {
	for _, k := range []int{2, 3, 4} {
		f := build(t, easyPuzzle)
		if finding := FindHiddenSubset(f, k); finding != nil {
			if len(finding.Inference.Values) == 0 {
				t.Errorf("k=%d: empty elimination set emitted", k)
			}
		}
	}
}

func TestCombinationsLexicographicOrder(t *testing.T) {
	combos := combinations([]int{1, 2, 3, 4}, 2)
	want := [][2]int{{1, 2}, {1, 3}, {1, 4}, {2, 3}, {2, 4}, {3, 4}}
	if len(combos) != len(want) {
		t.Fatalf("len(combos) = %d, want %d", len(combos), len(want))
	}
	for i, w := range want {
		if combos[i][0] != w[0] || combos[i][1] != w[1] {
			t.Errorf("combos[%d] = %v, want %v", i, combos[i], w)
		}
	}
}
