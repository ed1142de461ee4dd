package backtrack

import (
	"testing"

	"sudoku-engine/internal/core"
)

const puzzle = "530070000600195000098000060800060003400803001700020006060000280000419005000080079"
const solved = "534678912672195348198342567859761423426853791713924856961537284287419635345286179"

func grid(t *testing.T) *core.Grid {
	t.Helper()
	g, err := core.FromString(puzzle)
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func TestSolveFindsKnownSolution(t *testing.T) {
	g := Solve(grid(t))
	if g == nil {
		t.Fatal("Solve returned nil for a solvable puzzle")
	}
	if !g.IsComplete() || !g.IsValid() {
		t.Fatal("Solve returned an incomplete or invalid grid")
	}
	if g.String() != solved {
		t.Errorf("Solve() = %s, want %s", g.String(), solved)
	}
}

func TestCountSolutionsUniquePuzzle(t *testing.T) {
	if n := CountSolutions(grid(t), 2); n != 1 {
		t.Errorf("CountSolutions = %d, want 1", n)
	}
	if !HasUniqueSolution(grid(t)) {
		t.Error("HasUniqueSolution = false for a uniquely-solvable puzzle")
	}
}

func TestHasContradictionFalseForConsistentPuzzle(t *testing.T) {
	g, err := core.FromString(puzzle)
	if err != nil {
		t.Fatal(err)
	}
	if HasContradiction(g) {
		t.Error("HasContradiction = true for a consistent puzzle")
	}
}

func TestPropagateSinglesTerminates(t *testing.T) {
	g := grid(t)
	empties := g.EmptyPositions()
	if len(empties) == 0 {
		t.Fatal("fixture puzzle has no empty cells")
	}
	idx := empties[0].Index()
	d, ok := g.Candidates(idx).Only()
	if !ok {
		d = g.Candidates(idx).ToSlice()[0]
	}
	_, valid := PropagateSingles(g, idx, d)
	_ = valid // either outcome is acceptable; this only checks it terminates cleanly
}

func TestPropagateFullRespectsIterationCap(t *testing.T) {
	g := grid(t)
	empties := g.EmptyPositions()
	idx := empties[0].Index()
	digits := g.Candidates(idx).ToSlice()
	if len(digits) == 0 {
		t.Fatal("fixture cell has no candidates")
	}
	if _, _, panicked := safePropagateFull(g, idx, digits[0]); panicked {
		t.Error("PropagateFull panicked")
	}
}

func safePropagateFull(g *core.Grid, idx, digit int) (res *core.Grid, ok bool, panicked bool) {
	defer func() {
		if r := recover(); r != nil {
			panicked = true
		}
	}()
	res, ok = PropagateFull(g, idx, digit)
	return
}

func TestFindBacktrackingHintPlacesAValidDigit(t *testing.T) {
	finding := FindBacktrackingHint(grid(t))
	if finding == nil {
		t.Fatal("expected a backtracking hint for a solvable puzzle")
	}
	if finding.Inference.Value < 1 || finding.Inference.Value > 9 {
		t.Errorf("invalid placed value %d", finding.Inference.Value)
	}
}
