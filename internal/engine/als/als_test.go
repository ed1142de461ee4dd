package als

import (
	"testing"

	"sudoku-engine/internal/core"
	"sudoku-engine/internal/fabric"
	"sudoku-engine/internal/model"
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

func checkElimination(t *testing.T, name string, finding *model.Finding) {
	t.Helper()
	if finding == nil {
		return
	}
	if finding.Inference.Kind != model.Elimination {
		t.Errorf("%s: expected an Elimination inference", name)
	}
	if len(finding.Inference.Values) == 0 {
		t.Errorf("%s: elimination with no values", name)
	}
}

func TestFindXYWingSound(t *testing.T) {
	checkElimination(t, "XYWing", FindXYWing(build(t)))
}

func TestFindXYZWingSound(t *testing.T) {
	checkElimination(t, "XYZWing", FindXYZWing(build(t)))
}

func TestFindWXYZWingSound(t *testing.T) {
	checkElimination(t, "WXYZWing", FindWXYZWing(build(t)))
}

func TestFindAlsXzSound(t *testing.T) {
	checkElimination(t, "AlsXz", FindAlsXz(build(t)))
}

func TestFindAlsXyWingSound(t *testing.T) {
	checkElimination(t, "AlsXyWing", FindAlsXyWing(build(t)))
}

func TestFindAlsChainSound(t *testing.T) {
	checkElimination(t, "AlsChain", FindAlsChain(build(t)))
}

func TestFindSueDeCoqSound(t *testing.T) {
	checkElimination(t, "SueDeCoq", FindSueDeCoq(build(t)))
}

func TestFindDeathBlossomSound(t *testing.T) {
	checkElimination(t, "DeathBlossom", FindDeathBlossom(build(t)))
}

func TestFindAlignedPairExclusionSound(t *testing.T) {
	checkElimination(t, "AlignedPairExclusion", FindAlignedPairExclusion(build(t)))
}

func TestFindAlignedTripletExclusionSound(t *testing.T) {
	checkElimination(t, "AlignedTripletExclusion", FindAlignedTripletExclusion(build(t)))
}

func TestFindAllALSRespectsSizeBound(t *testing.T) {
	f := build(t)
	for _, a := range findAllALS(f, 4) {
		if len(a.Cells) < 1 || len(a.Cells) > 4 {
			t.Errorf("ALS size %d out of range", len(a.Cells))
		}
		if len(a.Digits) != len(a.Cells)+1 {
			t.Errorf("ALS with %d cells has %d digits, want %d", len(a.Cells), len(a.Digits), len(a.Cells)+1)
		}
	}
}

func TestCombinationsLexicographicOrder(t *testing.T) {
	combos := combinations([]int{1, 2, 3, 4}, 2)
	want := [][]int{{1, 2}, {1, 3}, {1, 4}, {2, 3}, {2, 4}, {3, 4}}
	if len(combos) != len(want) {
		t.Fatalf("len(combos) = %d, want %d", len(combos), len(want))
	}
	for i, combo := range combos {
		for j, v := range combo {
			if v != want[i][j] {
				t.Errorf("combos[%d] = %v, want %v", i, combo, want[i])
			}
		}
	}
}
