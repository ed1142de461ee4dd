// Package http is the Gin JSON transport over the orchestrator's six public
// operations, grounded on api/internal/transport/http/routes.go's handler
// shape. The teacher's puzzle-generation, session, and scoring routes are
// dropped (spec.md §1 Non-goals: no persistence, no network auth) along with
// the JWT middleware those routes needed.
package http

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"sudoku-engine/internal/core"
	"sudoku-engine/internal/model"
	"sudoku-engine/internal/solver"
	"sudoku-engine/pkg/config"
	"sudoku-engine/pkg/constants"
)

// RegisterRoutes wires every handler onto r. cfg is accepted for parity with
// the teacher's signature even though no handler currently reads it.
func RegisterRoutes(r *gin.Engine, cfg *config.Config) {
	s := solver.New()

	r.GET("/health", healthHandler)

	api := r.Group("/api")
	{
		api.POST("/solve", solveHandler(s))
		api.POST("/hint", hintHandler(s))
		api.POST("/difficulty", difficultyHandler(s))
		api.POST("/se-rating", seRatingHandler(s))
		api.POST("/unique-solution", uniqueSolutionHandler(s))
		api.POST("/count-solutions", countSolutionsHandler(s))
	}
}

func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// PuzzleRequest is the shared request shape: an 81-character puzzle string
// ('0' or '.' for empty cells).
type PuzzleRequest struct {
	Puzzle string `json:"puzzle" binding:"required"`
}

func parsePuzzle(c *gin.Context) (*core.Grid, bool) {
	var req PuzzleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, false
	}
	if err := validatePuzzleString(req.Puzzle); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, false
	}
	grid, err := core.FromString(req.Puzzle)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, false
	}
	return grid, true
}

// validatePuzzleString checks shape and given-count, mirroring the teacher's
// validatePuzzleString in routes.go.
func validatePuzzleString(puzzle string) error {
	if len(puzzle) != constants.TotalCells {
		return fmt.Errorf("puzzle must be exactly %d characters, got %d", constants.TotalCells, len(puzzle))
	}
	givenCount := 0
	for i, ch := range puzzle {
		if (ch < '0' || ch > '9') && ch != '.' {
			return fmt.Errorf("invalid character %q at position %d", ch, i)
		}
		if ch != '0' && ch != '.' {
			givenCount++
		}
	}
	if givenCount < constants.MinGivens {
		return fmt.Errorf("puzzle must have at least %d givens for a unique solution, got %d", constants.MinGivens, givenCount)
	}
	return nil
}

func solveHandler(s *solver.Solver) gin.HandlerFunc {
	return func(c *gin.Context) {
		grid, ok := parsePuzzle(c)
		if !ok {
			return
		}
		solution := s.Solve(grid)
		if solution == nil {
			c.JSON(http.StatusOK, gin.H{"solved": false})
			return
		}
		c.JSON(http.StatusOK, gin.H{"solved": true, "solution": solution.String()})
	}
}

func hintHandler(s *solver.Solver) gin.HandlerFunc {
	return func(c *gin.Context) {
		grid, ok := parsePuzzle(c)
		if !ok {
			return
		}
		hint := s.GetHint(grid)
		if hint == nil {
			c.JSON(http.StatusOK, gin.H{"hint": nil})
			return
		}
		c.JSON(http.StatusOK, gin.H{"hint": hintToJSON(hint)})
	}
}

func difficultyHandler(s *solver.Solver) gin.HandlerFunc {
	return func(c *gin.Context) {
		grid, ok := parsePuzzle(c)
		if !ok {
			return
		}
		difficulty := s.RateDifficulty(grid)
		c.JSON(http.StatusOK, gin.H{"difficulty": difficulty.String()})
	}
}

func seRatingHandler(s *solver.Solver) gin.HandlerFunc {
	return func(c *gin.Context) {
		grid, ok := parsePuzzle(c)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, gin.H{"se_rating": s.RateSE(grid)})
	}
}

func uniqueSolutionHandler(s *solver.Solver) gin.HandlerFunc {
	return func(c *gin.Context) {
		grid, ok := parsePuzzle(c)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, gin.H{"unique": s.HasUniqueSolution(grid)})
	}
}

// hintToJSON flattens a Hint into a JSON-friendly map; placements carry
// "value", eliminations carry "values", and both always carry the cell's row
// and column.
func hintToJSON(hint *model.Hint) gin.H {
	body := gin.H{
		"technique":   hint.Technique.String(),
		"row":         hint.Pos.Row,
		"col":         hint.Pos.Col,
		"description": hint.Description,
	}
	switch hint.Kind {
	case model.SetValue:
		body["action"] = "set_value"
		body["value"] = hint.Value
	case model.EliminateCandidates:
		body["action"] = "eliminate_candidates"
		body["values"] = hint.Values
	}
	return body
}

func countSolutionsHandler(s *solver.Solver) gin.HandlerFunc {
	return func(c *gin.Context) {
		grid, ok := parsePuzzle(c)
		if !ok {
			return
		}
		limit := constants.SolutionCountLimit
		c.JSON(http.StatusOK, gin.H{"count": s.CountSolutions(grid, limit)})
	}
}
