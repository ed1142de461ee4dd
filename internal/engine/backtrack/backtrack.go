// Package backtrack implements the Backtracker (spec.md §4.7): a
// minimum-remaining-values depth-first solver used for solution counting,
// uniqueness checks, and the last-resort hint when every technique engine is
// exhausted. It also exposes the propagation oracle (propagate singles to a
// fixpoint, detect contradictions) that the AIC engine's forcing-chain family
// drives against hypothetical assignments.
package backtrack

import (
	"sudoku-engine/internal/core"
	"sudoku-engine/internal/model"
	"sudoku-engine/pkg/constants"
)

// Solve runs MRV backtracking to completion and returns the solved grid, or
// nil if the puzzle has no solution. Grounded on
// api/internal/sudoku/dp/solver.go's solve/isValid, adapted to pick the
// unsolved cell with the fewest remaining candidates at each step instead of
// the first empty cell (spec.md §4.7 REDESIGN).
func Solve(grid *core.Grid) *core.Grid {
	work := grid.DeepClone()
	if solveRecursive(work) {
		return work
	}
	return nil
}

func solveRecursive(g *core.Grid) bool {
	idx, cands, ok := mrvCell(g)
	if !ok {
		return true
	}
	for _, d := range cands.ToSlice() {
		g.SetCellUnchecked(core.IndexToPosition(idx), d)
		g.RecalculateCandidates()
		if g.IsValid() && solveRecursive(g) {
			return true
		}
		g.SetCellUnchecked(core.IndexToPosition(idx), 0)
		g.RecalculateCandidates()
	}
	return false
}

// mrvCell returns the unsolved cell with the fewest candidates (ties broken
// by lowest index) and its candidate set, or ok=false if the grid is complete.
func mrvCell(g *core.Grid) (idx int, cands core.Candidates, ok bool) {
	best := -1
	bestCount := constants.GridSize + 1
	for i := 0; i < constants.TotalCells; i++ {
		if g.GetIndex(i) != 0 {
			continue
		}
		n := g.Candidates(i).Count()
		if n < bestCount {
			best, bestCount = i, n
			if n <= 1 {
				break
			}
		}
	}
	if best == -1 {
		return 0, 0, false
	}
	return best, g.Candidates(best), true
}

// CountSolutions counts solutions up to limit, stopping early once reached.
// Grounded on dp/solver.go's CountSolutions/countSolutionsHelper.
func CountSolutions(grid *core.Grid, limit int) int {
	count := 0
	countRecursive(grid.DeepClone(), &count, limit)
	return count
}

func countRecursive(g *core.Grid, count *int, limit int) {
	if *count >= limit {
		return
	}
	idx, cands, ok := mrvCell(g)
	if !ok {
		*count++
		return
	}
	for _, d := range cands.ToSlice() {
		g.SetCellUnchecked(core.IndexToPosition(idx), d)
		g.RecalculateCandidates()
		if g.IsValid() {
			countRecursive(g, count, limit)
		}
		if *count >= limit {
			g.SetCellUnchecked(core.IndexToPosition(idx), 0)
			g.RecalculateCandidates()
			return
		}
	}
	g.SetCellUnchecked(core.IndexToPosition(idx), 0)
	g.RecalculateCandidates()
}

// HasUniqueSolution reports whether grid has exactly one solution.
func HasUniqueSolution(grid *core.Grid) bool {
	return CountSolutions(grid, constants.SolutionCountLimit) == 1
}

// HasContradiction reports whether grid is unsolvable as-is: some unsolved
// cell has no candidates left, or some house no longer has a home for one of
// its digits.
func HasContradiction(grid *core.Grid) bool {
	for i := 0; i < constants.TotalCells; i++ {
		if grid.GetIndex(i) == 0 && grid.Candidates(i).IsEmpty() {
			return true
		}
	}
	for _, h := range core.AllHouses() {
		for d := 1; d <= constants.GridSize; d++ {
			placed := false
			canGo := 0
			for _, idx := range h.Cells {
				if v := grid.GetIndex(idx); v != 0 {
					if v == d {
						placed = true
						break
					}
					continue
				}
				if grid.Candidates(idx).Has(d) {
					canGo++
				}
			}
			if !placed && canGo == 0 {
				return true
			}
		}
	}
	return !grid.IsValid()
}

// TechniqueStep applies one step of the full non-forcing-chain technique
// pipeline to grid (basic, fish, uniqueness, ALS, or AIC findings — anything
// findFirstTechnique dispatches ahead of the forcing-chain family) and
// reports whether it made progress. This package never implements it
// directly since it would need every engine package to do so, which would
// make backtrack depend on all of them; instead internal/solver wires in the
// concrete implementation through its init function, matching spec.md §9's
// note that propagation is "modeled as a first-class dependency" rather than
// hardcoded into the oracle. PropagateFull falls back to singlesStep if
// nothing has wired a TechniqueStep in (e.g. this package's own tests, run in
// isolation from internal/solver).
var TechniqueStep func(grid *core.Grid) bool

// PropagateSingles places digit at idx on a clone of grid, then repeatedly
// applies naked and hidden singles until no further progress or a
// contradiction is found. Returns the resulting grid and whether it stayed
// consistent. Grounded on techniques_forcing.go's propagateSingles.
func PropagateSingles(grid *core.Grid, idx, digit int) (*core.Grid, bool) {
	return propagateFixpoint(grid, idx, digit, constants.TotalCells, singlesStep)
}

// PropagateFull re-runs the full non-forcing-chain technique dispatch (via
// TechniqueStep) to a fixpoint, capped at spec.md §5's iteration bound
// (constants.DynamicFCIterationCap). This is the oracle Dynamic Forcing Chain
// drives against each branch of a chain — it needs to be strictly
// stronger than singles-only propagation, or Dynamic Forcing Chain could
// never find a contradiction that Cell/Region Forcing Chain miss. Grounded on
// original_source/crates/sudoku-core/src/solver/mod.rs's propagate_full,
// which re-dispatches its full technique set on every iteration rather than
// singles alone.
func PropagateFull(grid *core.Grid, idx, digit int) (*core.Grid, bool) {
	step := TechniqueStep
	if step == nil {
		step = singlesStep
	}
	return propagateFixpoint(grid, idx, digit, constants.DynamicFCIterationCap, step)
}

func propagateFixpoint(grid *core.Grid, idx, digit, maxSteps int, step func(*core.Grid) bool) (*core.Grid, bool) {
	sim := grid.DeepClone()
	sim.SetCellUnchecked(core.IndexToPosition(idx), digit)
	sim.RecalculateCandidates()
	if HasContradiction(sim) {
		return sim, false
	}

	for i := 0; i < maxSteps; i++ {
		if !step(sim) {
			break
		}
		if HasContradiction(sim) {
			return sim, false
		}
	}
	return sim, true
}

// singlesStep applies every naked and hidden single currently available to
// sim and reports whether any were applied. Grounded on
// techniques_forcing.go's propagateSingles.
func singlesStep(sim *core.Grid) bool {
	progress := false

	for i := 0; i < constants.TotalCells; i++ {
		if sim.GetIndex(i) != 0 {
			continue
		}
		if d, ok := sim.Candidates(i).Only(); ok {
			sim.SetCellUnchecked(core.IndexToPosition(i), d)
			progress = true
		}
	}
	sim.RecalculateCandidates()

	for _, h := range core.AllHouses() {
		for d := 1; d <= constants.GridSize; d++ {
			var only int
			n := 0
			placed := false
			for _, c := range h.Cells {
				if v := sim.GetIndex(c); v != 0 {
					if v == d {
						placed = true
					}
					continue
				}
				if sim.Candidates(c).Has(d) {
					only = c
					n++
				}
			}
			if !placed && n == 1 {
				sim.SetCellUnchecked(core.IndexToPosition(only), d)
				progress = true
			}
		}
	}
	sim.RecalculateCandidates()

	return progress
}

// FindBacktrackingHint solves the grid and returns a placement for the first
// unsolved cell (row-major order) tagged model.Backtracking: the pipeline's
// last resort when no technique engine produces a finding (spec.md §9). It
// carries only a position and value, no witness chain, since a full
// backtracking search has no human-readable justification to offer.
func FindBacktrackingHint(grid *core.Grid) *model.Finding {
	solved := Solve(grid)
	if solved == nil {
		return nil
	}
	for i := 0; i < constants.TotalCells; i++ {
		if grid.GetIndex(i) != 0 {
			continue
		}
		v := solved.GetIndex(i)
		return model.NewPlacement(model.Backtracking, i, v, model.Witness{
			Cells:       []int{i},
			Digits:      []int{v},
			Description: "Backtracking search found no simpler justification for this placement.",
		})
	}
	return nil
}
