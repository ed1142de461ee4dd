// Package aic implements the link-graph family of techniques (spec.md §4.6):
// X-Chain, W-Wing, 3D Medusa, the general Alternating Inference Chain, and
// the forcing-chain family (Nishio, Region, Cell, Dynamic) plus Kraken Fish.
// X-Chain, 3D Medusa and AIC walk internal/linkgraph's strong/weak link graph,
// W-Wing reads conjugate pairs straight from the Fabric, and the rest drives
// internal/engine/backtrack's propagation oracle against hypothetical
// assignments; none of it mutates a Grid directly.
package aic

import (
	"fmt"
	"sort"

	"sudoku-engine/internal/core"
	"sudoku-engine/internal/engine/backtrack"
	"sudoku-engine/internal/fabric"
	"sudoku-engine/internal/linkgraph"
	"sudoku-engine/internal/model"
)

// FindXChain searches, for each digit independently, an alternating chain of
// conjugate pairs (strong links) joined by weak (same-house) links, opening
// and closing on a strong link, where the two ends see each other: one of
// the two ends must hold the digit, so the digit can be eliminated from
// every cell that sees both ends. Grounded on
// techniques_aic.go's bfsAIC/checkChainConclusion, restricted to a single
// digit throughout (no same-cell link ever changes digit, so this is X-chain
// rather than a general AIC).
func FindXChain(f *fabric.Fabric) *model.Finding {
	g := linkgraph.Build(f)
	for d := 1; d <= 9; d++ {
		starts := f.CellsWithCountInRange(1, 9)
		for _, cell := range starts {
			if !f.Candidates(cell).Has(d) {
				continue
			}
			start := linkgraph.Vertex{Cell: cell, Digit: d}
			chain := linkgraph.FindAlternatingChain(g, start, 3, 12, func(c linkgraph.Chain) bool {
				for _, l := range c {
					if l.From.Digit != d || l.To.Digit != d {
						return false
					}
				}
				_, end := c.Ends()
				return c[len(c)-1].Strong && end.Cell != start.Cell && core.ArePeers(end.Cell, start.Cell)
			})
			if chain == nil {
				continue
			}
			_, end := chain.Ends()
			elims := eliminationsSeeingChainEnds(f, d, chainCells(chain), start.Cell, end.Cell)
			if len(elims) == 0 {
				continue
			}
			return model.NewElimination(model.XChain, elims[0], []int{d}, model.Witness{
				Cells:       chainCells(chain),
				Digits:      []int{d},
				Description: fmt.Sprintf("X-Chain on %d: the two ends of this chain see each other, so %d is eliminated from cells seeing both.", d, d),
			})
		}
	}
	return nil
}

func chainCells(c linkgraph.Chain) []int {
	seen := map[int]bool{}
	var out []int
	add := func(v linkgraph.Vertex) {
		if !seen[v.Cell] {
			seen[v.Cell] = true
			out = append(out, v.Cell)
		}
	}
	for _, l := range c {
		add(l.From)
		add(l.To)
	}
	sort.Ints(out)
	return out
}

func eliminationsSeeingChainEnds(f *fabric.Fabric, digit int, chainCellsList []int, a, b int) []int {
	inChain := map[int]bool{}
	for _, c := range chainCellsList {
		inChain[c] = true
	}
	var out []int
	for i := 0; i < len(core.Peers); i++ {
		if inChain[i] || !f.Candidates(i).Has(digit) {
			continue
		}
		if core.ArePeers(i, a) && core.ArePeers(i, b) {
			out = append(out, i)
		}
	}
	return out
}

// FindWWing looks for two bivalue cells holding the same candidate pair
// {d1,d2} that do not see each other, connected by a conjugate pair on one of
// the two digits whose cells each see one bivalue cell. The other digit is
// then eliminated from every cell seeing both bivalue cells. Grounded on
// techniques_chains.go's detectWWing.
func FindWWing(f *fabric.Fabric) *model.Finding {
	bivalue := f.Bivalue()
	for i := 0; i < len(bivalue); i++ {
		for j := i + 1; j < len(bivalue); j++ {
			a, b := bivalue[i], bivalue[j]
			if !f.Candidates(a).Equals(f.Candidates(b)) {
				continue
			}
			if core.ArePeers(a, b) {
				continue
			}
			digits := f.Candidates(a).ToSlice()
			if len(digits) != 2 {
				continue
			}
			for _, linkDigit := range digits {
				elimDigit := otherOf(digits, linkDigit)
				if finding := wWingAt(f, a, b, linkDigit, elimDigit); finding != nil {
					return finding
				}
			}
		}
	}
	return nil
}

func otherOf(digits []int, d int) int {
	if digits[0] == d {
		return digits[1]
	}
	return digits[0]
}

func wWingAt(f *fabric.Fabric, a, b, linkDigit, elimDigit int) *model.Finding {
	for h := range core.AllHouses() {
		cells := f.HouseDigitCells(h, linkDigit)
		if len(cells) != 2 {
			continue
		}
		var link1, link2 int = -1, -1
		if core.ArePeers(cells[0], a) && core.ArePeers(cells[1], b) {
			link1, link2 = cells[0], cells[1]
		} else if core.ArePeers(cells[1], a) && core.ArePeers(cells[0], b) {
			link1, link2 = cells[1], cells[0]
		}
		if link1 == -1 {
			continue
		}
		excluded := map[int]bool{a: true, b: true, link1: true, link2: true}
		elims := eliminationsSeeingAll(f, elimDigit, excluded, []int{a}, []int{b})
		if len(elims) == 0 {
			continue
		}
		return model.NewElimination(model.WWing, elims[0], []int{elimDigit}, model.Witness{
			Cells:  []int{a, b, link1, link2},
			Digits: []int{linkDigit, elimDigit},
			Description: fmt.Sprintf(
				"W-Wing: bivalue cells sharing {%d,%d} are joined by a strong link on %d, eliminating %d from cells seeing both.",
				f.Candidates(a).ToSlice()[0], f.Candidates(a).ToSlice()[1], linkDigit, elimDigit),
		})
	}
	return nil
}

func eliminationsSeeingAll(f *fabric.Fabric, digit int, excluded map[int]bool, groups ...[]int) []int {
	var out []int
	for i := 0; i < len(core.Peers); i++ {
		if excluded[i] || !f.Candidates(i).Has(digit) {
			continue
		}
		seesAll := true
		for _, group := range groups {
			for _, c := range group {
				if !core.ArePeers(i, c) {
					seesAll = false
				}
			}
		}
		if seesAll {
			out = append(out, i)
		}
	}
	return out
}

// color is one of two opposing parities assigned during 3D Medusa coloring.
type color int

const (
	colorA color = iota
	colorB
)

func flip(c color) color {
	if c == colorA {
		return colorB
	}
	return colorA
}

// FindThreeDMedusa two-colors the strong-link graph (bivalue same-cell links
// plus conjugate same-house links) and looks for one of three contradictions:
// a cell holding the same color twice, a house holding the same color/digit
// twice where the two cells see each other, or an uncolored candidate that
// sees both colors of its own digit. Grounded on techniques_medusa.go's
// detectMedusa3D/checkSameCellContradiction/checkSameUnitContradiction/
// checkUncoloredSeesBothColors (that file's Rule 4 is left commented out by
// the teacher as a known-buggy case and is not reproduced here).
func FindThreeDMedusa(f *fabric.Fabric) *model.Finding {
	g := linkgraph.Build(f)
	colored := map[linkgraph.Vertex]color{}

	var component []linkgraph.Vertex
	for i := 0; i < len(core.Peers); i++ {
		for _, d := range f.Candidates(i).ToSlice() {
			v := linkgraph.Vertex{Cell: i, Digit: d}
			if _, ok := colored[v]; ok {
				continue
			}
			component = component[:0]
			colorComponent(g, v, colorA, colored, &component)
			if len(component) < 4 {
				continue
			}
			if finding := checkMedusaContradictions(f, colored, component); finding != nil {
				return finding
			}
		}
	}
	return nil
}

func colorComponent(g *linkgraph.Graph, start linkgraph.Vertex, c color, colored map[linkgraph.Vertex]color, component *[]linkgraph.Vertex) {
	queue := []linkgraph.Vertex{start}
	colored[start] = c
	*component = append(*component, start)
	for len(queue) > 0 {
		v := queue[0]
		queue = queue[1:]
		next := flip(colored[v])
		for _, n := range g.StrongLinks(v) {
			if _, ok := colored[n]; ok {
				continue
			}
			colored[n] = next
			*component = append(*component, n)
			queue = append(queue, n)
		}
	}
}

func checkMedusaContradictions(f *fabric.Fabric, colored map[linkgraph.Vertex]color, component []linkgraph.Vertex) *model.Finding {
	// Rule 1: same cell, same color, two different digits -> the whole color is false.
	byCell := map[int][]linkgraph.Vertex{}
	for _, v := range component {
		byCell[v.Cell] = append(byCell[v.Cell], v)
	}
	for _, vs := range byCell {
		for i := 0; i < len(vs); i++ {
			for j := i + 1; j < len(vs); j++ {
				if colored[vs[i]] == colored[vs[j]] {
					return eliminateColor(f, colored, colored[vs[i]],
						fmt.Sprintf("3D Medusa: cell %d cannot hold two same-colored candidates, so that color is false.", vs[i].Cell))
				}
			}
		}
	}

	// Rule 2: same house, same digit, same color, cells see each other -> that color is false.
	byDigit := map[int][]linkgraph.Vertex{}
	for _, v := range component {
		byDigit[v.Digit] = append(byDigit[v.Digit], v)
	}
	for d, vs := range byDigit {
		for i := 0; i < len(vs); i++ {
			for j := i + 1; j < len(vs); j++ {
				if vs[i].Cell != vs[j].Cell && colored[vs[i]] == colored[vs[j]] && core.ArePeers(vs[i].Cell, vs[j].Cell) {
					return eliminateColor(f, colored, colored[vs[i]],
						fmt.Sprintf("3D Medusa: digit %d cannot repeat in a house under one color, so that color is false.", d))
				}
			}
		}
	}

	// Rule 3: an uncolored candidate sees both colors of its own digit -> eliminate it.
	for d, vs := range byDigit {
		for i := 0; i < len(core.Peers); i++ {
			if !f.Candidates(i).Has(d) {
				continue
			}
			v := linkgraph.Vertex{Cell: i, Digit: d}
			if _, ok := colored[v]; ok {
				continue
			}
			seesA, seesB := false, false
			for _, cv := range vs {
				if !core.ArePeers(i, cv.Cell) && i != cv.Cell {
					continue
				}
				if colored[cv] == colorA {
					seesA = true
				} else {
					seesB = true
				}
			}
			if seesA && seesB {
				return model.NewElimination(model.ThreeDMedusa, i, []int{d}, model.Witness{
					Cells:       component2Cells(component),
					Digits:      []int{d},
					Description: fmt.Sprintf("3D Medusa: candidate %d at an uncolored cell sees both colors of %d, so it cannot be true.", d, d),
				})
			}
		}
	}
	return nil
}

func component2Cells(component []linkgraph.Vertex) []int {
	seen := map[int]bool{}
	var out []int
	for _, v := range component {
		if !seen[v.Cell] {
			seen[v.Cell] = true
			out = append(out, v.Cell)
		}
	}
	sort.Ints(out)
	return out
}

func eliminateColor(f *fabric.Fabric, colored map[linkgraph.Vertex]color, falseColor color, desc string) *model.Finding {
	for v, c := range colored {
		if c != falseColor {
			continue
		}
		if f.Candidates(v.Cell).Has(v.Digit) {
			return model.NewElimination(model.ThreeDMedusa, v.Cell, []int{v.Digit}, model.Witness{
				Cells:       []int{v.Cell},
				Digits:      []int{v.Digit},
				Description: desc,
			})
		}
	}
	return nil
}

// FindAIC performs a general alternating inference chain search (mixed
// digits, traversing both same-cell bivalue links and same-house conjugate
// links) and reports the first sound conclusion it finds: a discontinuous
// nice loop (chain returns to its start vertex with matching polarity,
// licensing a placement) or a same-digit, different-cell chain whose ends
// see each other (licensing an elimination, same shape as X-Chain but across
// mixed digits). Grounded on techniques_aic.go's detectAIC/bfsAIC/
// checkChainConclusion.
func FindAIC(f *fabric.Fabric) *model.Finding {
	g := linkgraph.Build(f)
	for i := 0; i < len(core.Peers); i++ {
		for _, d := range f.Candidates(i).ToSlice() {
			start := linkgraph.Vertex{Cell: i, Digit: d}

			loop := linkgraph.FindAlternatingChain(g, start, 4, 12, func(c linkgraph.Chain) bool {
				last := c[len(c)-1]
				return last.To == start && last.Strong
			})
			if loop != nil {
				return model.NewPlacement(model.AIC, start.Cell, start.Digit, model.Witness{
					Cells:       chainCells(loop),
					Digits:      []int{start.Digit},
					Description: fmt.Sprintf("AIC: a discontinuous nice loop forces %d at this cell.", start.Digit),
				})
			}

			chain := linkgraph.FindAlternatingChain(g, start, 3, 12, func(c linkgraph.Chain) bool {
				_, end := c.Ends()
				return c[len(c)-1].Strong && end.Digit == start.Digit && end.Cell != start.Cell && core.ArePeers(end.Cell, start.Cell)
			})
			if chain == nil {
				continue
			}
			_, end := chain.Ends()
			elims := eliminationsSeeingChainEnds(f, start.Digit, chainCells(chain), start.Cell, end.Cell)
			if len(elims) == 0 {
				continue
			}
			return model.NewElimination(model.AIC, elims[0], []int{start.Digit}, model.Witness{
				Cells:       chainCells(chain),
				Digits:      []int{start.Digit},
				Description: fmt.Sprintf("AIC: the two ends of this chain share digit %d and see each other, eliminating it from cells seeing both.", start.Digit),
			})
		}
	}
	return nil
}

// --- Forcing chain family: drives backtrack's propagation oracle instead of
// the link graph, since these techniques reason over hypothetical full-grid
// consequences rather than local candidate chains. Grounded on
// techniques_forcing.go/techniques_digit_forcing.go.

// branchOutcome is one hypothesis's propagated consequence.
type branchOutcome struct {
	grid       *core.Grid
	consistent bool
}

// propagator is the propagation oracle a forcing-chain finder drives against
// each branch of a hypothesis. Nishio/Kraken/Region/Cell FC use
// backtrack.PropagateSingles; only Dynamic FC steps up to
// backtrack.PropagateFull's full technique dispatch, which is what gives it a
// genuine strength gap over the rest of the family instead of merely
// reusing their result under a different name.
type propagator func(grid *core.Grid, idx, digit int) (*core.Grid, bool)

// FindNishioForcingChain tries a single (cell, digit) hypothesis and, if
// propagating it to a fixpoint produces a contradiction, eliminates that
// candidate. Grounded on techniques_forcing.go's single-branch contradiction
// check (Nishio: "is this assumption consistent at all?").
func FindNishioForcingChain(grid *core.Grid) *model.Finding {
	for i := 0; i < 81; i++ {
		if grid.GetIndex(i) != 0 {
			continue
		}
		for _, d := range grid.Candidates(i).ToSlice() {
			_, ok := backtrack.PropagateSingles(grid, i, d)
			if !ok {
				return model.NewElimination(model.NishioForcingChain, i, []int{d}, model.Witness{
					Cells:       []int{i},
					Digits:      []int{d},
					Description: fmt.Sprintf("Nishio Forcing Chain: assuming %d here leads to a contradiction, so it cannot be true.", d),
				})
			}
		}
	}
	return nil
}

// FindCellForcingChain tries every candidate of one cell and looks for a
// common consequence (another cell settling to the same digit, or one digit
// becoming impossible everywhere) across every branch. Grounded on
// techniques_forcing.go's detectCellForcingChain.
func FindCellForcingChain(grid *core.Grid) *model.Finding {
	return findCellForcingChain(grid, model.CellForcingChain, backtrack.PropagateSingles)
}

func findCellForcingChain(grid *core.Grid, tech model.Technique, propagate propagator) *model.Finding {
	for i := 0; i < 81; i++ {
		if grid.GetIndex(i) != 0 {
			continue
		}
		digits := grid.Candidates(i).ToSlice()
		if len(digits) < 2 {
			continue
		}
		var branches []branchOutcome
		allConsistent := true
		for _, d := range digits {
			sim, ok := propagate(grid, i, d)
			branches = append(branches, branchOutcome{grid: sim, consistent: ok})
			if !ok {
				allConsistent = false
			}
		}
		if !allConsistent {
			continue // a branch contradiction belongs to Nishio, not Cell FC
		}
		if finding := commonConsequence(grid, branches, tech, i, digits,
			"Cell Forcing Chain: every candidate of this cell forces the same consequence."); finding != nil {
			return finding
		}
	}
	return nil
}

// FindRegionForcingChain is the teacher's "Unit Forcing Chain": for each
// house/digit pair with more than one remaining cell, try placing the digit
// in each candidate cell of the house and look for a common consequence.
// Grounded on techniques_forcing.go's detectUnitForcingChain/
// tryUnitForcingChain.
func FindRegionForcingChain(grid *core.Grid) *model.Finding {
	return findRegionForcingChain(grid, model.RegionForcingChain, backtrack.PropagateSingles)
}

func findRegionForcingChain(grid *core.Grid, tech model.Technique, propagate propagator) *model.Finding {
	for _, h := range core.AllHouses() {
		for d := 1; d <= 9; d++ {
			var cells []int
			for _, c := range h.Cells {
				if grid.GetIndex(c) == 0 && grid.Candidates(c).Has(d) {
					cells = append(cells, c)
				}
			}
			if len(cells) < 2 {
				continue
			}
			var branches []branchOutcome
			allConsistent := true
			for _, c := range cells {
				sim, ok := propagate(grid, c, d)
				branches = append(branches, branchOutcome{grid: sim, consistent: ok})
				if !ok {
					allConsistent = false
				}
			}
			if !allConsistent {
				continue
			}
			if finding := commonConsequence(grid, branches, tech, -1, []int{d},
				fmt.Sprintf("Region Forcing Chain: every placement of %d in this house forces the same consequence.", d)); finding != nil {
				return finding
			}
		}
	}
	return nil
}

// FindDigitForcingChain is kept for completeness of the forcing-chain family
// named in techniques_digit_forcing.go but is equivalent in this engine to
// FindRegionForcingChain (both branch over one digit's remaining positions in
// a house); callers needing the distinct teacher name can alias it.
func FindDigitForcingChain(grid *core.Grid) *model.Finding {
	return FindRegionForcingChain(grid)
}

// FindDynamicForcingChain tries both the cell and region branch shapes, like
// Cell/Region Forcing Chain, but drives each branch with
// backtrack.PropagateFull's full technique-pipeline propagation instead of
// PropagateSingles. Grounded on mod.rs's find_dynamic_fc, the one forcing
// chain variant the Rust source wires to propagate_full rather than
// propagate_singles — the strength gap this preserves over Cell/Region FC is
// the entire reason Dynamic FC outranks them on the SE scale.
func FindDynamicForcingChain(grid *core.Grid) *model.Finding {
	if finding := findCellForcingChain(grid, model.DynamicForcingChain, backtrack.PropagateFull); finding != nil {
		return finding
	}
	if finding := findRegionForcingChain(grid, model.DynamicForcingChain, backtrack.PropagateFull); finding != nil {
		return finding
	}
	return nil
}

// commonConsequence looks for a single unsolved cell that settles to the same
// digit, or a single candidate eliminated, across every consistent branch.
// orig is the grid the branches were all forked from, used to confirm a
// reported elimination actually removes a live candidate.
func commonConsequence(orig *core.Grid, branches []branchOutcome, tech model.Technique, sourceCell int, sourceDigits []int, desc string) *model.Finding {
	if len(branches) == 0 {
		return nil
	}
	settled := func(g *core.Grid, i int) (int, bool) {
		if v := g.GetIndex(i); v != 0 {
			return v, true
		}
		return g.Candidates(i).Only()
	}
	for i := 0; i < 81; i++ {
		if orig.GetIndex(i) != 0 {
			continue
		}
		common, ok := settled(branches[0].grid, i)
		if !ok {
			continue
		}
		agree := true
		for _, b := range branches[1:] {
			d, ok := settled(b.grid, i)
			if !ok || d != common {
				agree = false
				break
			}
		}
		if agree {
			return model.NewPlacement(tech, i, common, model.Witness{
				Cells:       []int{i},
				Digits:      sourceDigits,
				Description: desc,
			})
		}
	}

	for d := 1; d <= 9; d++ {
		for i := 0; i < 81; i++ {
			if orig.GetIndex(i) != 0 || !orig.Candidates(i).Has(d) {
				continue // nothing live to eliminate here
			}
			eliminatedEverywhere := true
			for _, b := range branches {
				if b.grid.GetIndex(i) != 0 || b.grid.Candidates(i).Has(d) {
					eliminatedEverywhere = false
					break
				}
			}
			if eliminatedEverywhere {
				return model.NewElimination(tech, i, []int{d}, model.Witness{
					Cells:       []int{i},
					Digits:      sourceDigits,
					Description: desc,
				})
			}
		}
	}
	return nil
}

// FindKrakenFish is a simplified Kraken search: for a digit with 2-5
// unsolved candidate cells left in the whole grid, it places the digit in
// each of those cells in turn, propagates every branch to a fixpoint via
// backtrack.PropagateSingles (the oracle Nishio/Region/Cell FC use), and
// reports a consequence all branches agree on. It does not build a fish
// pattern or single out fin cells, and it follows no per-fin AIC chains.
func FindKrakenFish(grid *core.Grid) *model.Finding {
	for d := 1; d <= 9; d++ {
		var cells []int
		for i := 0; i < 81; i++ {
			if grid.GetIndex(i) == 0 && grid.Candidates(i).Has(d) {
				cells = append(cells, i)
			}
		}
		if len(cells) < 2 || len(cells) > 5 {
			continue
		}
		var branches []branchOutcome
		allConsistent := true
		for _, c := range cells {
			sim, ok := backtrack.PropagateSingles(grid, c, d)
			branches = append(branches, branchOutcome{grid: sim, consistent: ok})
			if !ok {
				allConsistent = false
			}
		}
		if !allConsistent {
			continue
		}
		if finding := commonConsequence(grid, branches, model.KrakenFish, -1, []int{d},
			fmt.Sprintf("Kraken Fish: every remaining placement of %d in this candidate set forces the same consequence.", d)); finding != nil {
			return finding
		}
	}
	return nil
}
