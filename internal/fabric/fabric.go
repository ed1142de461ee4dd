// Package fabric builds the Candidate Fabric: an immutable per-pipeline-step
// snapshot of a Grid's candidates plus the indices every engine needs
// (per-house-digit cell lists, the bivalue index). It is built once per
// orchestrator step and shared read-only by every engine (spec.md §3, §4.1).
package fabric

import (
	"sudoku-engine/internal/core"
	"sudoku-engine/pkg/constants"
)

// Fabric is an immutable snapshot derived solely from a Grid. Any mutation of
// the underlying grid invalidates it; callers must build a fresh Fabric
// before the next engine call (spec.md §3 invariant).
type Fabric struct {
	candidates [constants.TotalCells]core.Candidates
	values     [constants.TotalCells]int
	// houseDigitCells[h][d] holds the cell indices in house h (canonical order,
	// see core.AllHouses) that still carry d as a candidate.
	houseDigitCells [27][10][]int
	bivalue         []int
}

// Build constructs a Fabric from the current state of grid in one pass.
func Build(grid *core.Grid) *Fabric {
	f := &Fabric{}
	for i := 0; i < constants.TotalCells; i++ {
		f.candidates[i] = grid.Candidates(i)
		f.values[i] = grid.GetIndex(i)
		if f.candidates[i].Count() == 2 {
			f.bivalue = append(f.bivalue, i)
		}
	}
	houses := core.AllHouses()
	for h, house := range houses {
		for d := 1; d <= constants.GridSize; d++ {
			for _, idx := range house.Cells {
				if f.candidates[idx].Has(d) {
					f.houseDigitCells[h][d] = append(f.houseDigitCells[h][d], idx)
				}
			}
		}
	}
	return f
}

// Candidates returns the candidate bitmask for cell idx.
func (f *Fabric) Candidates(idx int) core.Candidates {
	return f.candidates[idx]
}

// IsSolved reports whether cell idx holds no candidates because it was
// already solved when the fabric was built (a solved cell's bitmask is empty).
func (f *Fabric) IsSolved(idx int) bool {
	return f.candidates[idx].IsEmpty()
}

// Value returns the solved digit at cell idx, or 0 if it was unsolved when
// the fabric was built.
func (f *Fabric) Value(idx int) int {
	return f.values[idx]
}

// HouseDigitCells returns the cells of house index houseIdx (canonical order)
// that still hold digit as a candidate.
func (f *Fabric) HouseDigitCells(houseIdx, digit int) []int {
	return f.houseDigitCells[houseIdx][digit]
}

// HouseCellsForKind returns the cells of the houseIdx-th house of the given
// kind (0-8 within that kind) holding digit as a candidate.
func (f *Fabric) HouseCellsForKind(kind core.HouseKind, houseIdx, digit int) []int {
	return f.houseDigitCells[canonicalHouseIndex(kind, houseIdx)][digit]
}

func canonicalHouseIndex(kind core.HouseKind, idx int) int {
	switch kind {
	case core.HouseRow:
		return idx
	case core.HouseCol:
		return 9 + idx
	default:
		return 18 + idx
	}
}

// Bivalue returns the cells whose candidate set has exactly size 2, in
// ascending index order.
func (f *Fabric) Bivalue() []int {
	return f.bivalue
}

// Peers returns the 20 peer indices of cell idx.
func (f *Fabric) Peers(idx int) []int {
	return core.Peers[idx]
}

// CellsWithCount returns all unsolved cells whose candidate count equals n.
func (f *Fabric) CellsWithCount(n int) []int {
	var out []int
	for i := 0; i < constants.TotalCells; i++ {
		if f.candidates[i].Count() == n {
			out = append(out, i)
		}
	}
	return out
}

// CellsWithCountInRange returns all unsolved cells whose candidate count is
// within [min, max].
func (f *Fabric) CellsWithCountInRange(min, max int) []int {
	var out []int
	for i := 0; i < constants.TotalCells; i++ {
		c := f.candidates[i].Count()
		if c >= min && c <= max {
			out = append(out, i)
		}
	}
	return out
}

// HouseCellsWithDigit returns the cells of house h (a core.House value) that
// hold digit as a candidate.
func (f *Fabric) HouseCellsWithDigit(h core.House, digit int) []int {
	var out []int
	for _, idx := range h.Cells {
		if f.candidates[idx].Has(digit) {
			out = append(out, idx)
		}
	}
	return out
}
