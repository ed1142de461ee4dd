// Package fish implements pointing pairs, box-line reduction, and the fish
// family of techniques (spec.md §4.3): basic fish sizes 2-4, finned, franken,
// mutant, and a simplified siamese fish built on top of basic fish.
//
// A fish of size n picks n "base" houses whose candidate positions for one
// digit are confined to n "cover" houses; the digit can then be eliminated
// from every cover-house cell outside the base houses. Basic fish restricts
// base and cover houses to rows and columns (one kind each); franken fish
// allows a box on either side; mutant fish allows any mix, including
// box/box. Pointing pair and box-line reduction are the degenerate,
// well-known size-1 case of a box/line fish and are kept as their own
// functions because the pipeline ranks them separately (spec.md §3).
package fish

import (
	"fmt"

	"sudoku-engine/internal/core"
	"sudoku-engine/internal/fabric"
	"sudoku-engine/internal/model"
	"sudoku-engine/pkg/constants"
)

// FindPointingPair finds a digit confined, within one box, to a single row or
// column, and eliminates it from the rest of that row/column outside the box.
func FindPointingPair(f *fabric.Fabric) *model.Finding {
	houses := core.AllHouses()
	for h := 18; h < 27; h++ { // boxes
		box := houses[h]
		for d := 1; d <= constants.GridSize; d++ {
			cells := f.HouseCellsWithDigit(box, d)
			if len(cells) < 2 || len(cells) > 3 {
				continue
			}
			if row, ok := sameRow(cells); ok {
				if finding := lineElimination(f, model.PointingPair, core.HouseRow, row, d, cells, box); finding != nil {
					return finding
				}
			}
			if col, ok := sameCol(cells); ok {
				if finding := lineElimination(f, model.PointingPair, core.HouseCol, col, d, cells, box); finding != nil {
					return finding
				}
			}
		}
	}
	return nil
}

// FindBoxLineReduction finds a digit confined, within one row or column, to a
// single box, and eliminates it from the rest of that box outside the line.
func FindBoxLineReduction(f *fabric.Fabric) *model.Finding {
	houses := core.AllHouses()
	for h := 0; h < 18; h++ { // rows then columns
		line := houses[h]
		for d := 1; d <= constants.GridSize; d++ {
			cells := f.HouseCellsWithDigit(line, d)
			if len(cells) < 2 || len(cells) > 3 {
				continue
			}
			box, ok := sameBox(cells)
			if !ok {
				continue
			}
			boxHouse := houses[18+box]
			var eliminations []int
			for _, idx := range boxHouse.Cells {
				if contains(cells, idx) {
					continue
				}
				if f.Candidates(idx).Has(d) {
					eliminations = append(eliminations, idx)
				}
			}
			if len(eliminations) == 0 {
				continue
			}
			cell := eliminations[0]
			return model.NewElimination(model.BoxLineReduction, cell, []int{d}, model.Witness{
				Cells:       append(append([]int{}, cells...), eliminations...),
				Digits:      []int{d},
				Houses:      []int{line.Index, box},
				Description: fmt.Sprintf("Box-Line Reduction: %d in %s %d confines box %d, eliminating from %s", d, line.Kind, line.Index+1, box+1, core.IndexToPosition(cell)),
			})
		}
	}
	return nil
}

func lineElimination(f *fabric.Fabric, tech model.Technique, kind core.HouseKind, lineIndex, digit int, baseCells []int, box core.House) *model.Finding {
	houses := core.AllHouses()
	var line core.House
	if kind == core.HouseRow {
		line = houses[lineIndex]
	} else {
		line = houses[9+lineIndex]
	}
	var eliminations []int
	for _, idx := range line.Cells {
		if contains(baseCells, idx) {
			continue
		}
		if f.Candidates(idx).Has(digit) {
			eliminations = append(eliminations, idx)
		}
	}
	if len(eliminations) == 0 {
		return nil
	}
	cell := eliminations[0]
	return model.NewElimination(tech, cell, []int{digit}, model.Witness{
		Cells:       append(append([]int{}, baseCells...), eliminations...),
		Digits:      []int{digit},
		Houses:      []int{box.Index, line.Index},
		Description: fmt.Sprintf("Pointing Pair: %d in box %d confines %s %d, eliminating from %s", digit, box.Index+1, line.Kind, line.Index+1, core.IndexToPosition(cell)),
	})
}

// FindBasicFish finds a size-n fish (n in 2..4) over rows-as-base/cols-as-cover
// and cols-as-base/rows-as-cover.
func FindBasicFish(f *fabric.Fabric, size int) *model.Finding {
	tech := fishTechnique(size, false, false)
	if finding := scanFish(f, size, core.HouseRow, core.HouseCol, tech, false); finding != nil {
		return finding
	}
	return scanFish(f, size, core.HouseCol, core.HouseRow, tech, false)
}

// FindFinnedFish finds a size-n finned fish: like a basic fish, but base
// houses may carry extra ("fin") candidates outside the cover houses, and
// eliminations are restricted to cells that also see every fin.
func FindFinnedFish(f *fabric.Fabric, size int) *model.Finding {
	tech := fishTechnique(size, true, false)
	if finding := scanFish(f, size, core.HouseRow, core.HouseCol, tech, true); finding != nil {
		return finding
	}
	return scanFish(f, size, core.HouseCol, core.HouseRow, tech, true)
}

// FindFrankenFish finds a size-n fish where the cover set may substitute a
// box for a line on one side.
func FindFrankenFish(f *fabric.Fabric, size int) *model.Finding {
	if finding := scanMixedFish(f, size, core.HouseRow, []core.HouseKind{core.HouseCol, core.HouseBox}, model.FrankenFish); finding != nil {
		return finding
	}
	return scanMixedFish(f, size, core.HouseCol, []core.HouseKind{core.HouseRow, core.HouseBox}, model.FrankenFish)
}

// FindMutantFish finds a size-n fish with no restriction on base/cover kinds
// (boxes may appear on both sides, mixed with rows and columns).
func FindMutantFish(f *fabric.Fabric, size int) *model.Finding {
	kinds := []core.HouseKind{core.HouseRow, core.HouseCol, core.HouseBox}
	for _, baseKind := range kinds {
		if finding := scanMixedFish(f, size, baseKind, kinds, model.MutantFish); finding != nil {
			return finding
		}
	}
	return nil
}

// FindSiameseFish looks for size base rows of one digit whose candidates fit
// both within at most size columns and within at most size boxes, and returns
// the union of the two patterns' eliminations as a single finding. This is a
// simplified reading of siamese fish: only row bases are scanned, both
// patterns share every base row, and neither pattern allows fins.
func FindSiameseFish(f *fabric.Fabric, size int) *model.Finding {
	for d := 1; d <= constants.GridSize; d++ {
		patternsA := candidateLines(f, core.HouseRow, d, size)
		for _, bases := range combinations(patternsA, size) {
			coverA, coversA := coverHouses(f, bases, core.HouseCol, d)
			if !coversA || len(coverA) > size {
				continue
			}
			coverB, coversB := coverHouses(f, bases, core.HouseBox, d)
			if !coversB {
				continue
			}
			elimA := fishEliminations(f, bases, coverA, core.HouseCol, d)
			elimB := fishEliminations(f, bases, coverB, core.HouseBox, d)
			combined := mergeUnique(elimA, elimB)
			if len(combined) == 0 {
				continue
			}
			cell := combined[0]
			return model.NewElimination(model.SiameseFish, cell, []int{d}, model.Witness{
				Cells:       append(baseCellsOf(bases), combined...),
				Digits:      []int{d},
				Description: fmt.Sprintf("Siamese Fish: %d shares base rows across two cover sets, eliminating from %s", d, core.IndexToPosition(cell)),
			})
		}
	}
	return nil
}

func fishTechnique(size int, finned, _ bool) model.Technique {
	switch {
	case size == 2 && !finned:
		return model.XWing
	case size == 2 && finned:
		return model.FinnedXWing
	case size == 3 && !finned:
		return model.Swordfish
	case size == 3 && finned:
		return model.FinnedSwordfish
	case size == 4 && !finned:
		return model.Jellyfish
	default:
		return model.FinnedJellyfish
	}
}

// scanFish implements basic and finned fish for a single base/cover kind
// pairing (e.g. rows-as-base, cols-as-cover).
func scanFish(f *fabric.Fabric, size int, baseKind, coverKind core.HouseKind, tech model.Technique, allowFins bool) *model.Finding {
	for d := 1; d <= constants.GridSize; d++ {
		lines := candidateLines(f, baseKind, d, size)
		for _, bases := range combinations(lines, size) {
			covers, basicFit := coverHouses(f, bases, coverKind, d)
			if !basicFit {
				if !allowFins {
					continue
				}
				covers = coverHousesWithFins(f, bases, coverKind, d, size)
				if covers == nil {
					continue
				}
			}
			if len(covers) > size {
				continue
			}
			var fins []int
			if allowFins {
				fins = finCells(f, bases, covers, coverKind, d)
			}
			eliminations := fishEliminationsWithFins(f, bases, covers, coverKind, d, fins)
			if len(eliminations) == 0 {
				continue
			}
			cell := eliminations[0]
			desc := fmt.Sprintf("%s: %d confined to %d %ss, eliminating from %s", tech, d, size, coverKind, core.IndexToPosition(cell))
			if len(fins) > 0 {
				desc = fmt.Sprintf("%s (finned): %d confined to %d %ss with fins, eliminating from %s", tech, d, size, coverKind, core.IndexToPosition(cell))
			}
			return model.NewElimination(tech, cell, []int{d}, model.Witness{
				Cells:       append(append(baseCellsOf(bases), fins...), eliminations...),
				Digits:      []int{d},
				Description: desc,
			})
		}
	}
	return nil
}

// scanMixedFish implements franken/mutant fish: base houses are all of
// baseKind, cover houses may be any kind in coverKinds.
func scanMixedFish(f *fabric.Fabric, size int, baseKind core.HouseKind, coverKinds []core.HouseKind, tech model.Technique) *model.Finding {
	for d := 1; d <= constants.GridSize; d++ {
		lines := candidateLines(f, baseKind, d, size)
		for _, bases := range combinations(lines, size) {
			baseCellSet := toSet(baseCellsOf(bases))
			var allCoverCells []int
			covers := findMinimalCovers(f, bases, d, coverKinds, size)
			if covers == nil {
				continue
			}
			for _, h := range covers {
				allCoverCells = append(allCoverCells, h.Cells[:]...)
			}
			var eliminations []int
			seen := map[int]bool{}
			for _, idx := range allCoverCells {
				if baseCellSet[idx] || seen[idx] {
					continue
				}
				seen[idx] = true
				if f.Candidates(idx).Has(d) {
					eliminations = append(eliminations, idx)
				}
			}
			if len(eliminations) == 0 {
				continue
			}
			cell := eliminations[0]
			return model.NewElimination(tech, cell, []int{d}, model.Witness{
				Cells:       append(baseCellsOf(bases), eliminations...),
				Digits:      []int{d},
				Description: fmt.Sprintf("%s: %d confined across mixed houses, eliminating from %s", tech, d, core.IndexToPosition(cell)),
			})
		}
	}
	return nil
}

// findMinimalCovers finds up to size houses, drawn from coverKinds, whose
// union contains every candidate cell of digit d within bases.
func findMinimalCovers(f *fabric.Fabric, bases []core.House, d int, coverKinds []core.HouseKind, size int) []core.House {
	targetCells := map[int]bool{}
	for _, b := range bases {
		for _, idx := range b.Cells {
			if f.Candidates(idx).Has(d) {
				targetCells[idx] = true
			}
		}
	}
	if len(targetCells) == 0 {
		return nil
	}
	var candidateHouses []core.House
	for _, h := range core.AllHouses() {
		if !kindIn(h.Kind, coverKinds) {
			continue
		}
		if sameHouseSet(h, bases) {
			continue
		}
		candidateHouses = append(candidateHouses, h)
	}
	for _, combo := range combinations(candidateHouses, size) {
		covered := map[int]bool{}
		for _, h := range combo {
			for _, idx := range h.Cells {
				if f.Candidates(idx).Has(d) {
					covered[idx] = true
				}
			}
		}
		allCovered := true
		for idx := range targetCells {
			if !covered[idx] {
				allCovered = false
				break
			}
		}
		if allCovered {
			return combo
		}
	}
	return nil
}

func sameHouseSet(h core.House, bases []core.House) bool {
	for _, b := range bases {
		if b.Kind == h.Kind && b.Index == h.Index {
			return true
		}
	}
	return false
}

func kindIn(k core.HouseKind, kinds []core.HouseKind) bool {
	for _, x := range kinds {
		if x == k {
			return true
		}
	}
	return false
}

// candidateLines returns the houses of kind with between 2 and size cells
// holding digit d as a candidate.
func candidateLines(f *fabric.Fabric, kind core.HouseKind, d, size int) []core.House {
	var out []core.House
	for _, h := range core.AllHouses() {
		if h.Kind != kind {
			continue
		}
		n := len(f.HouseCellsWithDigit(h, d))
		if n >= 2 && n <= size {
			out = append(out, h)
		}
	}
	return out
}

// coverHouses computes the exact set of cover-kind houses needed to contain
// every candidate cell of digit d across bases, with no fins allowed. The
// second return value is false if the candidates don't fit cleanly into
// cover houses (e.g. a candidate line that crosses more than size cover
// houses).
func coverHouses(f *fabric.Fabric, bases []core.House, coverKind core.HouseKind, d int) ([]core.House, bool) {
	needed := map[int]bool{}
	for _, b := range bases {
		for _, idx := range b.Cells {
			if !f.Candidates(idx).Has(d) {
				continue
			}
			needed[coverIndexOf(idx, coverKind)] = true
		}
	}
	if len(needed) > len(bases) {
		return nil, false
	}
	var out []core.House
	houses := core.AllHouses()
	for idx := range needed {
		out = append(out, houseOfKind(houses, coverKind, idx))
	}
	sortHouses(out)
	return out, true
}

// coverHousesWithFins is like coverHouses but tolerates base cells whose
// cover index falls outside the minimal cover set, treating them as
// potential fins rather than failing outright. It returns the size cover
// indices holding the most candidates, or nil if the candidates already fit
// in size cover houses (no fins needed).
func coverHousesWithFins(f *fabric.Fabric, bases []core.House, coverKind core.HouseKind, d, size int) []core.House {
	counts := map[int]int{}
	for _, b := range bases {
		for _, idx := range b.Cells {
			if !f.Candidates(idx).Has(d) {
				continue
			}
			counts[coverIndexOf(idx, coverKind)]++
		}
	}
	if len(counts) <= size {
		return nil // no fins needed; scanFish already tried the non-finned path
	}
	type kv struct {
		idx, n int
	}
	var all []kv
	for idx, n := range counts {
		all = append(all, kv{idx, n})
	}
	// Sort descending by count so the covers chosen are the heaviest
	// (most-populated) lines; leftover light lines become fins.
	for i := 1; i < len(all); i++ {
		for j := i; j > 0 && all[j-1].n < all[j].n; j-- {
			all[j-1], all[j] = all[j], all[j-1]
		}
	}
	if len(all) < size {
		return nil
	}
	houses := core.AllHouses()
	var out []core.House
	for i := 0; i < size; i++ {
		out = append(out, houseOfKind(houses, coverKind, all[i].idx))
	}
	sortHouses(out)
	return out
}

func coverIndexOf(cellIdx int, kind core.HouseKind) int {
	switch kind {
	case core.HouseRow:
		return core.RowOf(cellIdx)
	case core.HouseCol:
		return core.ColOf(cellIdx)
	default:
		return core.BoxOf(cellIdx)
	}
}

func houseOfKind(houses [27]core.House, kind core.HouseKind, index int) core.House {
	for _, h := range houses {
		if h.Kind == kind && h.Index == index {
			return h
		}
	}
	return core.House{}
}

func sortHouses(hs []core.House) {
	for i := 1; i < len(hs); i++ {
		for j := i; j > 0 && hs[j-1].Index > hs[j].Index; j-- {
			hs[j-1], hs[j] = hs[j], hs[j-1]
		}
	}
}

// finCells returns base-house candidate cells of digit d that fall outside
// the chosen cover houses — candidates the fish pattern doesn't cleanly
// cover, whose presence restricts eliminations to cells that see them all.
func finCells(f *fabric.Fabric, bases, covers []core.House, coverKind core.HouseKind, d int) []int {
	coverSet := map[int]bool{}
	for _, c := range covers {
		coverSet[c.Index] = true
	}
	var fins []int
	for _, b := range bases {
		for _, idx := range b.Cells {
			if !f.Candidates(idx).Has(d) {
				continue
			}
			if !coverSet[coverIndexOf(idx, coverKind)] {
				fins = append(fins, idx)
			}
		}
	}
	return fins
}

// fishEliminations returns cover-house cells holding d outside the base
// houses, with no fin constraint.
func fishEliminations(f *fabric.Fabric, bases, covers []core.House, coverKind core.HouseKind, d int) []int {
	return fishEliminationsWithFins(f, bases, covers, coverKind, d, nil)
}

// fishEliminationsWithFins returns cover-house cells holding d outside the
// base houses; if fins is non-empty, a cell only qualifies if it is also a
// peer of every fin cell.
func fishEliminationsWithFins(f *fabric.Fabric, bases, covers []core.House, coverKind core.HouseKind, d int, fins []int) []int {
	baseSet := toSet(baseCellsOf(bases))
	var out []int
	for _, c := range covers {
		for _, idx := range c.Cells {
			if baseSet[idx] || !f.Candidates(idx).Has(d) {
				continue
			}
			if len(fins) > 0 && !seesAll(idx, fins) {
				continue
			}
			out = append(out, idx)
		}
	}
	return out
}

func seesAll(idx int, fins []int) bool {
	for _, fin := range fins {
		if idx == fin || !core.ArePeers(idx, fin) {
			return false
		}
	}
	return true
}

func baseCellsOf(bases []core.House) []int {
	var out []int
	for _, b := range bases {
		out = append(out, b.Cells[:]...)
	}
	return out
}

func sameRow(cells []int) (int, bool) {
	r := core.RowOf(cells[0])
	for _, c := range cells[1:] {
		if core.RowOf(c) != r {
			return 0, false
		}
	}
	return r, true
}

func sameCol(cells []int) (int, bool) {
	c0 := core.ColOf(cells[0])
	for _, c := range cells[1:] {
		if core.ColOf(c) != c0 {
			return 0, false
		}
	}
	return c0, true
}

func sameBox(cells []int) (int, bool) {
	b := core.BoxOf(cells[0])
	for _, c := range cells[1:] {
		if core.BoxOf(c) != b {
			return 0, false
		}
	}
	return b, true
}

func contains(xs []int, v int) bool {
	for _, x := range xs {
		if x == v {
			return true
		}
	}
	return false
}

func toSet(xs []int) map[int]bool {
	s := make(map[int]bool, len(xs))
	for _, x := range xs {
		s[x] = true
	}
	return s
}

func mergeUnique(a, b []int) []int {
	seen := map[int]bool{}
	var out []int
	for _, x := range append(append([]int{}, a...), b...) {
		if !seen[x] {
			seen[x] = true
			out = append(out, x)
		}
	}
	return out
}

// combinations returns all size-element subsets of houses, in input order.
func combinations(houses []core.House, size int) [][]core.House {
	if size <= 0 || size > len(houses) {
		return nil
	}
	var out [][]core.House
	idx := make([]int, size)
	for i := range idx {
		idx[i] = i
	}
	for {
		combo := make([]core.House, size)
		for i, ix := range idx {
			combo[i] = houses[ix]
		}
		out = append(out, combo)

		i := size - 1
		for i >= 0 && idx[i] == i+len(houses)-size {
			i--
		}
		if i < 0 {
			break
		}
		idx[i]++
		for j := i + 1; j < size; j++ {
			idx[j] = idx[j-1] + 1
		}
	}
	return out
}
