package solver

import (
	"testing"

	"sudoku-engine/internal/core"
	"sudoku-engine/internal/model"
	"sudoku-engine/pkg/constants"
)

const easyPuzzle = "530070000600195000098000060800060003400803001700020006060000280000419005000080079"

func mustGrid(t *testing.T, puzzle string) *core.Grid {
	t.Helper()
	g, err := core.FromString(puzzle)
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func TestSolveEasy(t *testing.T) {
	s := New()
	solution := s.Solve(mustGrid(t, easyPuzzle))
	if solution == nil || !solution.IsComplete() {
		t.Fatal("Solve did not complete the easy puzzle")
	}
}

func TestHasUniqueSolution(t *testing.T) {
	s := New()
	if !s.HasUniqueSolution(mustGrid(t, easyPuzzle)) {
		t.Error("HasUniqueSolution = false, want true")
	}
}

func TestGetHint(t *testing.T) {
	s := New()
	hint := s.GetHint(mustGrid(t, easyPuzzle))
	if hint == nil {
		t.Fatal("GetHint returned nil for a solvable puzzle")
	}
}

func TestRateDifficulty(t *testing.T) {
	s := New()
	difficulty := s.RateDifficulty(mustGrid(t, easyPuzzle))
	if difficulty < model.Easy {
		t.Errorf("RateDifficulty = %v, want at least Easy", difficulty)
	}
}

func TestSolveWithTechniquesRegression(t *testing.T) {
	working := mustGrid(t, easyPuzzle)
	maxTech := solveWithTechniques(working)
	if maxTech >= model.Backtracking {
		t.Errorf("easy puzzle required Backtracking (max technique = %v), want a human technique", maxTech)
	}
	if !working.IsComplete() {
		t.Error("solveWithTechniques left the grid incomplete")
	}
}

// TestHintSoundness mirrors original_source's test_hint_soundness: every hint
// GetHint returns, applied in sequence, must agree with the puzzle's unique
// solution — a placement must match the solution's digit, an elimination
// must never remove the solution's digit.
func TestHintSoundness(t *testing.T) {
	puzzles := []string{
		easyPuzzle,
		"020000600008020050500060020060000093003905100790000080050090004010070300006000010",
		"800000000003600000070090200050007000000045700000100030001000068008500010090000400",
	}

	s := New()
	for _, puzzleStr := range puzzles {
		grid := mustGrid(t, puzzleStr)
		solution := s.Solve(grid)
		if solution == nil || !solution.IsComplete() {
			continue
		}

		working := mustGrid(t, puzzleStr)
		steps := 0
		for !working.IsComplete() && steps < constants.HintSoundnessStepCap {
			hint := s.GetHint(working)
			if hint == nil {
				break
			}

			idx := hint.Pos.Index()
			switch hint.Kind {
			case model.SetValue:
				solVal, _ := solution.Get(hint.Pos)
				if solVal != hint.Value {
					t.Fatalf("unsound placement by %v: %s = %d, solution has %d. Puzzle: %s",
						hint.Technique, hint.Pos, hint.Value, solVal, puzzleStr)
				}
				working.SetCellUnchecked(hint.Pos, hint.Value)
				working.RecalculateCandidates()
			case model.EliminateCandidates:
				solVal, _ := solution.Get(hint.Pos)
				for _, v := range hint.Values {
					if v == solVal {
						t.Fatalf("unsound elimination by %v: removing %d from %s but solution needs it. Puzzle: %s",
							hint.Technique, v, hint.Pos, puzzleStr)
					}
				}
				for _, v := range hint.Values {
					working.RemoveCandidate(idx, v)
				}
			}
			steps++
		}
	}
}
