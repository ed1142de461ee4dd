// Package core is the Grid collaborator named in spec.md §6: parsing,
// cell-level mutation, and candidate bookkeeping. The technique pipeline
// (internal/fabric, internal/engine/*, internal/solver) treats it as an
// external, already-correct dependency and never duplicates its invariants.
package core

import (
	"fmt"
	"strings"

	"sudoku-engine/pkg/constants"
)

// Grid is a 9x9 Sudoku matrix: each cell holds a solved digit (1-9) or, while
// unsolved, a candidate bitmask computed by RecalculateCandidates.
type Grid struct {
	cells      [constants.TotalCells]int
	candidates [constants.TotalCells]Candidates
}

// NewEmptyGrid returns an all-empty grid with full candidates everywhere.
func NewEmptyGrid() *Grid {
	g := &Grid{}
	g.RecalculateCandidates()
	return g
}

// FromString parses an 81-character row-major puzzle string ('.' or '0' for
// empty, '1'-'9' for a given) into a Grid.
func FromString(s string) (*Grid, error) {
	s = strings.TrimSpace(s)
	if len(s) != constants.TotalCells {
		return nil, fmt.Errorf("sudoku: puzzle string must be %d characters, got %d", constants.TotalCells, len(s))
	}
	g := &Grid{}
	for i, ch := range s {
		switch {
		case ch == '.' || ch == '0':
			g.cells[i] = 0
		case ch >= '1' && ch <= '9':
			g.cells[i] = int(ch - '0')
		default:
			return nil, fmt.Errorf("sudoku: invalid character %q at position %d", ch, i)
		}
	}
	g.RecalculateCandidates()
	return g, nil
}

// DeepClone returns an independent copy; mutating the clone never affects g.
func (g *Grid) DeepClone() *Grid {
	clone := &Grid{}
	clone.cells = g.cells
	clone.candidates = g.candidates
	return clone
}

// RecalculateCandidates recomputes every unsolved cell's candidate bitmask
// from the current cell values. Solved cells get an empty bitmask.
func (g *Grid) RecalculateCandidates() {
	for i := 0; i < constants.TotalCells; i++ {
		if g.cells[i] != 0 {
			g.candidates[i] = 0
			continue
		}
		var cands Candidates
		for d := 1; d <= constants.GridSize; d++ {
			if g.canPlace(i, d) {
				cands = cands.Set(d)
			}
		}
		g.candidates[i] = cands
	}
}

func (g *Grid) canPlace(idx, digit int) bool {
	for _, p := range Peers[idx] {
		if g.cells[p] == digit {
			return false
		}
	}
	return true
}

// Get returns the solved digit at pos, or (0, false) if the cell is unsolved.
func (g *Grid) Get(pos Position) (int, bool) {
	v := g.cells[pos.Index()]
	if v == 0 {
		return 0, false
	}
	return v, true
}

// GetIndex returns the raw cell value at idx (0 = unsolved).
func (g *Grid) GetIndex(idx int) int {
	return g.cells[idx]
}

// Candidates returns the candidate bitmask for cell idx (0 once solved).
func (g *Grid) Candidates(idx int) Candidates {
	return g.candidates[idx]
}

// RemoveCandidate removes digit from cell idx's candidate set, if present.
// Reports whether it was actually removed.
func (g *Grid) RemoveCandidate(idx, digit int) bool {
	if g.candidates[idx].Has(digit) {
		g.candidates[idx] = g.candidates[idx].Clear(digit)
		return true
	}
	return false
}

// SetCellUnchecked places (or clears, if value is 0) a digit at pos without
// validating the move against house constraints. Candidates are not
// recomputed automatically; call RecalculateCandidates afterward.
func (g *Grid) SetCellUnchecked(pos Position, value int) {
	idx := pos.Index()
	g.cells[idx] = value
	if value != 0 {
		g.candidates[idx] = 0
	}
}

// EmptyPositions returns the positions of all unsolved cells, in row-major order.
func (g *Grid) EmptyPositions() []Position {
	var out []Position
	for i := 0; i < constants.TotalCells; i++ {
		if g.cells[i] == 0 {
			out = append(out, IndexToPosition(i))
		}
	}
	return out
}

// IsComplete reports whether every cell holds a digit.
func (g *Grid) IsComplete() bool {
	for i := 0; i < constants.TotalCells; i++ {
		if g.cells[i] == 0 {
			return false
		}
	}
	return true
}

// IsValid reports whether the grid has no duplicate digit within any house.
func (g *Grid) IsValid() bool {
	for _, h := range AllHouses() {
		var seen Candidates
		for _, idx := range h.Cells {
			v := g.cells[idx]
			if v == 0 {
				continue
			}
			if seen.Has(v) {
				return false
			}
			seen = seen.Set(v)
		}
	}
	return true
}

// String renders the grid as an 81-character row-major string ('0' = empty).
func (g *Grid) String() string {
	var sb strings.Builder
	sb.Grow(constants.TotalCells)
	for i := 0; i < constants.TotalCells; i++ {
		sb.WriteByte(byte('0' + g.cells[i]))
	}
	return sb.String()
}
