// Package solver is the orchestrator (spec.md §3, §9): it owns the public
// solving API (Solve, CountSolutions, HasUniqueSolution, GetHint,
// RateDifficulty, RateSE) and the strictly ordered technique dispatch that
// backs GetHint, RateDifficulty and RateSE (Solve, CountSolutions and
// HasUniqueSolution go straight to the backtracker). Every engine package is a stateless pure function
// over a Fabric (or, for the forcing-chain family, a Grid); this package is
// the only one that decides pipeline order and mutates a working Grid.
//
// Dispatch order is taken directly from
// original_source/crates/sudoku-core/src/solver/mod.rs's find_first_technique/
// solve_with_techniques, the Rust program this spec was distilled from — it is
// the authoritative source for phase ordering since spec.md §4.8 only
// describes it in prose.
package solver

import (
	"sudoku-engine/internal/core"
	"sudoku-engine/internal/engine/aic"
	"sudoku-engine/internal/engine/als"
	"sudoku-engine/internal/engine/backtrack"
	"sudoku-engine/internal/engine/basic"
	"sudoku-engine/internal/engine/fish"
	"sudoku-engine/internal/engine/uniqueness"
	"sudoku-engine/internal/fabric"
	"sudoku-engine/internal/model"
)

// init wires this package's full non-forcing-chain technique dispatch into
// backtrack.PropagateFull, so Dynamic Forcing Chain's propagation oracle is
// strictly stronger than naked/hidden singles alone (spec.md §4.6): it is the
// only place that can supply this, since backtrack itself can't import every
// engine package without depending on this package's dispatch order.
func init() {
	backtrack.TechniqueStep = propagationStep
}

// propagationStep applies the first non-forcing-chain technique that fires
// against grid and reports whether it made progress, mutating grid in place.
// This is backtrack.PropagateFull's TechniqueStep hook.
func propagationStep(grid *core.Grid) bool {
	fab := fabric.Build(grid)
	finding := findFirstNonForcingTechnique(fab)
	if finding == nil {
		return false
	}
	applyFinding(grid, finding)
	return true
}

// Solver is stateless: every method takes the grid it operates on as an
// argument, so one Solver value is safe to share across goroutines.
type Solver struct{}

// New returns a ready-to-use Solver.
func New() *Solver {
	return &Solver{}
}

// Solve runs the backtracker to completion and returns the solved grid, or
// nil if grid has no solution.
func (s *Solver) Solve(grid *core.Grid) *core.Grid {
	return backtrack.Solve(grid)
}

// CountSolutions counts solutions up to limit.
func (s *Solver) CountSolutions(grid *core.Grid, limit int) int {
	return backtrack.CountSolutions(grid, limit)
}

// HasUniqueSolution reports whether grid has exactly one solution.
func (s *Solver) HasUniqueSolution(grid *core.Grid) bool {
	return backtrack.HasUniqueSolution(grid)
}

// GetHint returns the next Hint a human solver would apply: the highest
// priority technique that currently fires, or a Backtracking hint as a last
// resort (spec.md §9 Open Question decision #2).
func (s *Solver) GetHint(grid *core.Grid) *model.Hint {
	working := grid.DeepClone()
	working.RecalculateCandidates()

	if finding := findFirstTechnique(working); finding != nil {
		hint := finding.ToHint()
		return &hint
	}
	if finding := backtrack.FindBacktrackingHint(working); finding != nil {
		hint := finding.ToHint()
		return &hint
	}
	return nil
}

// RateDifficulty solves grid with the technique pipeline and maps the
// hardest technique used, plus the puzzle's empty-cell count, to an ordinal
// Difficulty (spec.md §4.8).
func (s *Solver) RateDifficulty(grid *core.Grid) model.Difficulty {
	emptyCount := len(grid.EmptyPositions())
	working := grid.DeepClone()
	maxTech := solveWithTechniques(working)
	return model.DifficultyFor(maxTech, emptyCount)
}

// RateSE solves grid with the technique pipeline and returns the Sudoku
// Explainer-style numeric rating of the hardest technique used.
func (s *Solver) RateSE(grid *core.Grid) float32 {
	working := grid.DeepClone()
	maxTech := solveWithTechniques(working)
	return maxTech.SERating()
}

// findFirstTechnique walks the full pipeline once against a freshly built
// Fabric and returns the first Finding, or nil if nothing fires. This is the
// phase order find_first_technique pins in mod.rs.
func findFirstTechnique(grid *core.Grid) *model.Finding {
	fab := fabric.Build(grid)

	if f := findFirstNonForcingTechnique(fab); f != nil {
		return f
	}

	// Forcing chains need the Grid itself for propagation, not just the
	// Fabric snapshot.
	if f := aic.FindNishioForcingChain(grid); f != nil {
		return f
	}
	if f := aic.FindKrakenFish(grid); f != nil {
		return f
	}
	if f := aic.FindRegionForcingChain(grid); f != nil {
		return f
	}
	if f := aic.FindCellForcingChain(grid); f != nil {
		return f
	}
	// Dynamic FC propagates with backtrack.PropagateFull (the full
	// non-forcing-chain dispatch rather than the singles-only oracle used
	// above), capped at constants.DynamicFCIterationCap; it is tried last
	// since it is the most expensive.
	if f := aic.FindDynamicForcingChain(grid); f != nil {
		return f
	}

	return nil
}

// findFirstNonForcingTechnique walks phases 1-7 of the pipeline (everything
// ahead of the forcing-chain family) against fab and returns the first
// Finding, or nil if nothing fires. Split out from findFirstTechnique so it
// can double as backtrack.PropagateFull's technique-dispatch hook: the
// forcing-chain family must never appear here, or propagationStep could
// recurse into PropagateFull through its own oracle.
func findFirstNonForcingTechnique(fab *fabric.Fabric) *model.Finding {
	// Phase 1: Basic
	if f := basic.FindNakedSingle(fab); f != nil {
		return f
	}
	if f := basic.FindHiddenSingle(fab); f != nil {
		return f
	}

	// Phase 2: Subsets
	if f := basic.FindNakedSubset(fab, 2); f != nil {
		return f
	}
	if f := basic.FindHiddenSubset(fab, 2); f != nil {
		return f
	}
	if f := basic.FindNakedSubset(fab, 3); f != nil {
		return f
	}
	if f := basic.FindHiddenSubset(fab, 3); f != nil {
		return f
	}

	// Phase 3: Intersections (size-1 fish)
	if f := fish.FindPointingPair(fab); f != nil {
		return f
	}
	if f := fish.FindBoxLineReduction(fab); f != nil {
		return f
	}

	// Phase 4: Fish (size 2-4) + quads
	if f := fish.FindBasicFish(fab, 2); f != nil {
		return f
	}
	if f := fish.FindFinnedFish(fab, 2); f != nil {
		return f
	}
	if f := fish.FindBasicFish(fab, 3); f != nil {
		return f
	}
	if f := fish.FindFinnedFish(fab, 3); f != nil {
		return f
	}
	if f := fish.FindBasicFish(fab, 4); f != nil {
		return f
	}
	if f := fish.FindFinnedFish(fab, 4); f != nil {
		return f
	}
	if f := basic.FindNakedSubset(fab, 4); f != nil {
		return f
	}
	if f := basic.FindHiddenSubset(fab, 4); f != nil {
		return f
	}

	// Phase 5: Uniqueness
	if f := uniqueness.FindEmptyRectangle(fab); f != nil {
		return f
	}
	if f := uniqueness.FindAvoidableRectangle(fab); f != nil {
		return f
	}
	if f := uniqueness.FindUniqueRectangle(fab); f != nil {
		return f
	}
	if f := uniqueness.FindHiddenRectangle(fab); f != nil {
		return f
	}

	// Phase 6: Master
	if f := als.FindXYWing(fab); f != nil {
		return f
	}
	if f := als.FindXYZWing(fab); f != nil {
		return f
	}
	if f := als.FindWXYZWing(fab); f != nil {
		return f
	}
	if f := aic.FindWWing(fab); f != nil {
		return f
	}
	// AIC family: X-Chain, 3D Medusa, AIC all walk the same shared link graph
	// inside internal/linkgraph; each Find* call here rebuilds it once.
	if f := aic.FindXChain(fab); f != nil {
		return f
	}
	if f := aic.FindThreeDMedusa(fab); f != nil {
		return f
	}
	if f := als.FindSueDeCoq(fab); f != nil {
		return f
	}
	if f := aic.FindAIC(fab); f != nil {
		return f
	}
	// Franken/Siamese fish, like Basic/Finned fish above, span every size —
	// the technique itself doesn't pin one, so every size is tried in turn.
	for size := 2; size <= 4; size++ {
		if f := fish.FindFrankenFish(fab, size); f != nil {
			return f
		}
	}
	for size := 2; size <= 4; size++ {
		if f := fish.FindSiameseFish(fab, size); f != nil {
			return f
		}
	}
	if f := als.FindAlsXz(fab); f != nil {
		return f
	}
	if f := uniqueness.FindExtendedUniqueRectangle(fab); f != nil {
		return f
	}
	if f := uniqueness.FindBUG(fab); f != nil {
		return f
	}

	// Phase 7: Extreme
	if f := als.FindAlsXyWing(fab); f != nil {
		return f
	}
	if f := als.FindAlsChain(fab); f != nil {
		return f
	}
	for size := 2; size <= 4; size++ {
		if f := fish.FindMutantFish(fab, size); f != nil {
			return f
		}
	}
	if f := als.FindAlignedPairExclusion(fab); f != nil {
		return f
	}
	if f := als.FindAlignedTripletExclusion(fab); f != nil {
		return f
	}
	if f := als.FindDeathBlossom(fab); f != nil {
		return f
	}

	return nil
}

// solveWithTechniques drives grid to completion via the technique pipeline,
// falling back to the backtracker once nothing fires, and returns the
// hardest technique used (or model.Backtracking if the backtracker had to
// finish the puzzle). Grounded on mod.rs's solve_with_techniques.
func solveWithTechniques(grid *core.Grid) model.Technique {
	grid.RecalculateCandidates()
	maxTechnique := model.NakedSingle

	for !grid.IsComplete() {
		finding := findFirstTechnique(grid)
		if finding == nil {
			solved := backtrack.Solve(grid)
			if solved != nil {
				*grid = *solved
			}
			return model.Backtracking
		}
		if finding.Technique > maxTechnique {
			maxTechnique = finding.Technique
		}
		applyFinding(grid, finding)
	}

	return maxTechnique
}

// applyFinding mutates grid to reflect finding: a placement sets the cell and
// recomputes every candidate from scratch; an elimination only clears the
// named candidates (RecalculateCandidates must never run afterward, since it
// would silently restore an elimination that still looks locally consistent).
func applyFinding(grid *core.Grid, finding *model.Finding) {
	pos := core.IndexToPosition(finding.Inference.Cell)
	switch finding.Inference.Kind {
	case model.Placement:
		grid.SetCellUnchecked(pos, finding.Inference.Value)
		grid.RecalculateCandidates()
	case model.Elimination:
		for _, v := range finding.Inference.Values {
			grid.RemoveCandidate(finding.Inference.Cell, v)
		}
	}
}
