// Command solve is a one-off CLI harness over the orchestrator, grounded on
// api/cmd/test_puzzle/main.go's shape: feed it a puzzle string, get back the
// solution, uniqueness, SE and difficulty ratings, and first hint without standing up
// the HTTP server.
package main

import (
	"fmt"
	"os"

	"sudoku-engine/internal/core"
	"sudoku-engine/internal/solver"
	"sudoku-engine/pkg/constants"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: solve <puzzle_string>")
		os.Exit(1)
	}

	puzzleStr := os.Args[1]
	if len(puzzleStr) != constants.TotalCells {
		fmt.Printf("Puzzle must be %d characters, got %d\n", constants.TotalCells, len(puzzleStr))
		os.Exit(1)
	}

	grid, err := core.FromString(puzzleStr)
	if err != nil {
		fmt.Printf("Invalid puzzle: %v\n", err)
		os.Exit(1)
	}

	s := solver.New()

	solution := s.Solve(grid)
	if solution == nil {
		fmt.Println("No solution exists for this puzzle.")
		os.Exit(1)
	}
	fmt.Printf("Solution: %s\n", solution.String())
	fmt.Printf("Unique:   %v\n", s.HasUniqueSolution(grid))
	fmt.Printf("SE rating: %.1f\n", s.RateSE(grid))
	fmt.Printf("Difficulty: %s\n", s.RateDifficulty(grid))

	if hint := s.GetHint(grid); hint != nil {
		fmt.Printf("First hint: %s at %s (%s)\n", hint.Technique, hint.Pos, hint.Description)
	}
}
