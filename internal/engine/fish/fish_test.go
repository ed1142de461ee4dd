package fish

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

func TestFindPointingPairSound(t *testing.T) {
	checkElimination(t, "PointingPair", FindPointingPair(build(t)))
}

func TestFindBoxLineReductionSound(t *testing.T) {
	checkElimination(t, "BoxLineReduction", FindBoxLineReduction(build(t)))
}

func TestFindBasicFishSound(t *testing.T) {
	for _, size := range []int{2, 3, 4} {
		checkElimination(t, "BasicFish", FindBasicFish(build(t), size))
	}
}

func TestFindFinnedFishSound(t *testing.T) {
	for _, size := range []int{2, 3, 4} {
		checkElimination(t, "FinnedFish", FindFinnedFish(build(t), size))
	}
}

func TestFindFrankenFishSound(t *testing.T) {
	for _, size := range []int{2, 3, 4} {
		checkElimination(t, "FrankenFish", FindFrankenFish(build(t), size))
	}
}

func TestFindMutantFishSound(t *testing.T) {
	for _, size := range []int{2, 3, 4} {
		checkElimination(t, "MutantFish", FindMutantFish(build(t), size))
	}
}

func TestFindSiameseFishSound(t *testing.T) {
	for _, size := range []int{2, 3, 4} {
		checkElimination(t, "SiameseFish", FindSiameseFish(build(t), size))
	}
}

func TestCombinationsCoverAllSubsets(t *testing.T) {
	houses := core.AllHouses()
	rows := make([]core.House, 0, 9)
	for _, h := range houses {
		if h.Kind == core.HouseRow {
			rows = append(rows, h)
		}
	}
	combos := combinations(rows, 2)
	want := 9 * 8 / 2
	if len(combos) != want {
		t.Errorf("len(combinations) = %d, want %d", len(combos), want)
	}
}

func TestCoverIndexOfMatchesHouseKind(t *testing.T) {
	idx := core.IndexOf(4, 5)
	if coverIndexOf(idx, core.HouseRow) != 4 {
		t.Error("row cover index mismatch")
	}
	if coverIndexOf(idx, core.HouseCol) != 5 {
		t.Error("col cover index mismatch")
	}
	if coverIndexOf(idx, core.HouseBox) != core.BoxOf(idx) {
		t.Error("box cover index mismatch")
	}
}
