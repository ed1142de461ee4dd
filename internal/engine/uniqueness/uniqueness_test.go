package uniqueness

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

func checkFinding(t *testing.T, name string, finding *model.Finding) {
	t.Helper()
	if finding == nil {
		return
	}
	switch finding.Inference.Kind {
	case model.Elimination:
		if len(finding.Inference.Values) == 0 {
			t.Errorf("%s: elimination with no values", name)
		}
	case model.Placement:
		if finding.Inference.Value < 1 || finding.Inference.Value > 9 {
			t.Errorf("%s: placement with invalid value %d", name, finding.Inference.Value)
		}
	}
}

func TestFindUniqueRectangleSound(t *testing.T) {
	checkFinding(t, "UniqueRectangle", FindUniqueRectangle(build(t)))
}

func TestFindHiddenRectangleSound(t *testing.T) {
	checkFinding(t, "HiddenRectangle", FindHiddenRectangle(build(t)))
}

func TestFindAvoidableRectangleSound(t *testing.T) {
	checkFinding(t, "AvoidableRectangle", FindAvoidableRectangle(build(t)))
}

func TestFindExtendedUniqueRectangleSound(t *testing.T) {
	checkFinding(t, "ExtendedUniqueRectangle", FindExtendedUniqueRectangle(build(t)))
}

func TestFindEmptyRectangleSound(t *testing.T) {
	checkFinding(t, "EmptyRectangle", FindEmptyRectangle(build(t)))
}

func TestFindBUGSound(t *testing.T) {
	checkFinding(t, "BUG", FindBUG(build(t)))
}

func TestChooseIntsSizeBounds(t *testing.T) {
	if combos := chooseInts([]int{1, 2, 3}, 0); combos != nil {
		t.Error("size 0 should return nil")
	}
	if combos := chooseInts([]int{1, 2, 3}, 4); combos != nil {
		t.Error("size larger than input should return nil")
	}
	combos := chooseInts([]int{1, 2, 3}, 2)
	if len(combos) != 3 {
		t.Errorf("len(combos) = %d, want 3", len(combos))
	}
}
