// Package uniqueness implements the deadly-pattern techniques of spec.md
// §4.4: unique/hidden/avoidable/extended rectangles, empty rectangle, and
// BUG. Every technique here assumes the puzzle being solved has exactly one
// solution — see the package-level note below on when that assumption
// holds.
//
// The orchestrator that drives this engine offers no proof that a puzzle
// fed to it is proper (spec.md's open question on this point): a malformed
// or intentionally multi-solution grid can make these techniques emit an
// incorrect elimination. Callers that cannot guarantee a proper puzzle
// should disable this engine rather than trust its output unconditionally.
package uniqueness

import (
	"fmt"

	"sudoku-engine/internal/core"
	"sudoku-engine/internal/fabric"
	"sudoku-engine/internal/model"
	"sudoku-engine/pkg/constants"
)

// rectangle is a potential deadly-pattern rectangle: 4 cells spanning
// exactly 2 boxes, ordered [r1c1, r1c2, r3c1, r3c2] so that 0-1 and 2-3
// share a row, 0-2 and 1-3 share a column, and 0-3, 1-2 are diagonal.
type rectangle struct {
	corners [4]int
}

// floorRoofPairs enumerates which corner pairs act as the "floor" (bivalue
// side) and "roof" (extra-candidate side) for UR types 2-4; grounded on the
// same four orientations the teacher's ur.go tries.
var floorRoofPairs = [][2][2]int{
	{{0, 1}, {2, 3}},
	{{2, 3}, {0, 1}},
	{{0, 2}, {1, 3}},
	{{1, 3}, {0, 2}},
}

func findRectangles(f *fabric.Fabric, d1, d2 int) []rectangle {
	var cells []int
	for i := 0; i < constants.TotalCells; i++ {
		if f.Candidates(i).Has(d1) && f.Candidates(i).Has(d2) {
			cells = append(cells, i)
		}
	}
	if len(cells) < 4 {
		return nil
	}
	var out []rectangle
	for i := 0; i < len(cells); i++ {
		for j := i + 1; j < len(cells); j++ {
			if core.RowOf(cells[i]) != core.RowOf(cells[j]) || core.ColOf(cells[i]) == core.ColOf(cells[j]) {
				continue
			}
			for k := j + 1; k < len(cells); k++ {
				for l := k + 1; l < len(cells); l++ {
					if core.RowOf(cells[k]) != core.RowOf(cells[l]) {
						continue
					}
					if core.RowOf(cells[k]) == core.RowOf(cells[i]) {
						continue
					}
					c1, c2 := core.ColOf(cells[i]), core.ColOf(cells[j])
					c3, c4 := core.ColOf(cells[k]), core.ColOf(cells[l])
					if !((c3 == c1 && c4 == c2) || (c3 == c2 && c4 == c1)) {
						continue
					}
					boxes := map[int]bool{
						core.BoxOf(cells[i]): true, core.BoxOf(cells[j]): true,
						core.BoxOf(cells[k]): true, core.BoxOf(cells[l]): true,
					}
					if len(boxes) != 2 {
						continue
					}
					var r rectangle
					r.corners[0], r.corners[1] = cells[i], cells[j]
					if c3 == c1 {
						r.corners[2], r.corners[3] = cells[k], cells[l]
					} else {
						r.corners[2], r.corners[3] = cells[l], cells[k]
					}
					out = append(out, r)
				}
			}
		}
	}
	return out
}

// FindUniqueRectangle searches UR types 1-4 (in that priority order, the
// same order the teacher's detector functions are tried in) for every digit
// pair, returning the first elimination found.
func FindUniqueRectangle(f *fabric.Fabric) *model.Finding {
	for d1 := 1; d1 < constants.GridSize; d1++ {
		for d2 := d1 + 1; d2 <= constants.GridSize; d2++ {
			for _, r := range findRectangles(f, d1, d2) {
				if finding := type1(f, r, d1, d2); finding != nil {
					return finding
				}
				if finding := type2(f, r, d1, d2); finding != nil {
					return finding
				}
				if finding := type3(f, r, d1, d2); finding != nil {
					return finding
				}
				if finding := type4(f, r, d1, d2); finding != nil {
					return finding
				}
			}
		}
	}
	return nil
}

func type1(f *fabric.Fabric, r rectangle, d1, d2 int) *model.Finding {
	bivalueCount, extra := 0, -1
	for _, c := range r.corners {
		switch {
		case f.Candidates(c).Count() == 2:
			bivalueCount++
		case f.Candidates(c).Count() > 2:
			extra = c
		}
	}
	if bivalueCount != 3 || extra < 0 {
		return nil
	}
	return model.NewElimination(model.UniqueRectangle, extra, []int{d1, d2}, model.Witness{
		Cells:       r.corners[:],
		Digits:      []int{d1, d2},
		Description: fmt.Sprintf("Unique Rectangle Type 1: %d/%d would form a deadly pattern, eliminating both from %s", d1, d2, core.IndexToPosition(extra)),
	})
}

func type2(f *fabric.Fabric, r rectangle, d1, d2 int) *model.Finding {
	for _, pair := range floorRoofPairs {
		floor0, floor1 := r.corners[pair[0][0]], r.corners[pair[0][1]]
		roof0, roof1 := r.corners[pair[1][0]], r.corners[pair[1][1]]
		if f.Candidates(floor0).Count() != 2 || f.Candidates(floor1).Count() != 2 {
			continue
		}
		extras0 := f.Candidates(roof0).Subtract(core.NewCandidates([]int{d1, d2})).ToSlice()
		extras1 := f.Candidates(roof1).Subtract(core.NewCandidates([]int{d1, d2})).ToSlice()
		if len(extras0) != 1 || len(extras1) != 1 || extras0[0] != extras1[0] {
			continue
		}
		extra := extras0[0]
		var eliminations []int
		for _, idx := range core.CommonPeers([]int{roof0, roof1}) {
			if f.Candidates(idx).Has(extra) {
				eliminations = append(eliminations, idx)
			}
		}
		if len(eliminations) == 0 {
			continue
		}
		cell := eliminations[0]
		return model.NewElimination(model.UniqueRectangle, cell, []int{extra}, model.Witness{
			Cells:       append(append([]int{}, r.corners[:]...), eliminations...),
			Digits:      []int{d1, d2, extra},
			Description: fmt.Sprintf("Unique Rectangle Type 2: %d/%d with extra %d eliminates from %s", d1, d2, extra, core.IndexToPosition(cell)),
		})
	}
	return nil
}

func type3(f *fabric.Fabric, r rectangle, d1, d2 int) *model.Finding {
	urDigits := core.NewCandidates([]int{d1, d2})
	for _, pair := range floorRoofPairs {
		floor0, floor1 := r.corners[pair[0][0]], r.corners[pair[0][1]]
		roof0, roof1 := r.corners[pair[1][0]], r.corners[pair[1][1]]
		if f.Candidates(floor0).Count() != 2 || f.Candidates(floor1).Count() != 2 {
			continue
		}
		if f.Candidates(roof0).Count() <= 2 && f.Candidates(roof1).Count() <= 2 {
			continue
		}
		combined := f.Candidates(roof0).Subtract(urDigits).Union(f.Candidates(roof1).Subtract(urDigits))
		if combined.IsEmpty() || combined.Count() > 3 {
			continue
		}
		for _, house := range sharedHouses(roof0, roof1) {
			if finding := pseudoCellSubset(f, r, roof0, roof1, combined, house, d1, d2); finding != nil {
				return finding
			}
		}
	}
	return nil
}

func pseudoCellSubset(f *fabric.Fabric, r rectangle, roof0, roof1 int, combined core.Candidates, house core.House, d1, d2 int) *model.Finding {
	size := combined.Count()
	var others []int
	for _, idx := range house.Cells {
		if idx == roof0 || idx == roof1 || f.IsSolved(idx) {
			continue
		}
		c := f.Candidates(idx)
		if c.Count() < 1 || c.Subtract(combined).Count() != 0 {
			continue
		}
		others = append(others, idx)
	}
	// size-1 pseudo-cell contribution means the roof pair already spans
	// `size` total digits together with `size-1` other cells forming the
	// naked subset.
	need := size - 1
	if need <= 0 || len(others) < need {
		return nil
	}
	for _, combo := range chooseInts(others, need) {
		union := combined
		for _, idx := range combo {
			union = union.Union(f.Candidates(idx))
		}
		if union.Count() != size {
			continue
		}
		var eliminations []int
		for _, idx := range house.Cells {
			if idx == roof0 || idx == roof1 || contains(combo, idx) || f.IsSolved(idx) {
				continue
			}
			if !f.Candidates(idx).Intersect(union).IsEmpty() {
				eliminations = append(eliminations, idx)
			}
		}
		if len(eliminations) == 0 {
			continue
		}
		cell := eliminations[0]
		values := f.Candidates(cell).Intersect(union).ToSlice()
		if len(values) == 0 {
			continue
		}
		return model.NewElimination(model.UniqueRectangle, cell, values, model.Witness{
			Cells:       append(append(append([]int{}, r.corners[:]...), combo...), eliminations...),
			Digits:      union.ToSlice(),
			Houses:      []int{house.Index},
			Description: fmt.Sprintf("Unique Rectangle Type 3: pseudo-cell at %s/%s forms a naked subset in %s %d", core.IndexToPosition(roof0), core.IndexToPosition(roof1), house.Kind, house.Index+1),
		})
	}
	return nil
}

func type4(f *fabric.Fabric, r rectangle, d1, d2 int) *model.Finding {
	for _, pair := range floorRoofPairs {
		floor0, floor1 := r.corners[pair[0][0]], r.corners[pair[0][1]]
		roof0, roof1 := r.corners[pair[1][0]], r.corners[pair[1][1]]
		if f.Candidates(floor0).Count() != 2 || f.Candidates(floor1).Count() != 2 {
			continue
		}
		if f.Candidates(roof0).Count() <= 2 || f.Candidates(roof1).Count() <= 2 {
			continue
		}
		house, ok := sharedLine(roof0, roof1)
		if !ok {
			continue
		}
		d1Confined := confinedToCells(f, house, d1, []int{roof0, roof1})
		d2Confined := confinedToCells(f, house, d2, []int{roof0, roof1})
		var keep, drop int
		switch {
		case d1Confined && !d2Confined:
			keep, drop = d1, d2
		case d2Confined && !d1Confined:
			keep, drop = d2, d1
		default:
			continue
		}
		var eliminations []int
		for _, idx := range []int{roof0, roof1} {
			if f.Candidates(idx).Has(drop) {
				eliminations = append(eliminations, idx)
			}
		}
		if len(eliminations) == 0 {
			continue
		}
		cell := eliminations[0]
		return model.NewElimination(model.UniqueRectangle, cell, []int{drop}, model.Witness{
			Cells:       append(append([]int{}, r.corners[:]...), eliminations...),
			Digits:      []int{keep, drop},
			Houses:      []int{house.Index},
			Description: fmt.Sprintf("Unique Rectangle Type 4: %d confined to the UR in %s %d, eliminating %d from %s", keep, house.Kind, house.Index+1, drop, core.IndexToPosition(cell)),
		})
	}
	return nil
}

func confinedToCells(f *fabric.Fabric, house core.House, digit int, allowed []int) bool {
	for _, idx := range house.Cells {
		if contains(allowed, idx) {
			continue
		}
		if f.Candidates(idx).Has(digit) {
			return false
		}
	}
	return true
}

func sharedLine(a, b int) (core.House, bool) {
	houses := core.AllHouses()
	if core.RowOf(a) == core.RowOf(b) {
		return houses[core.RowOf(a)], true
	}
	if core.ColOf(a) == core.ColOf(b) {
		return houses[9+core.ColOf(a)], true
	}
	return core.House{}, false
}

func sharedHouses(a, b int) []core.House {
	var out []core.House
	houses := core.AllHouses()
	if core.RowOf(a) == core.RowOf(b) {
		out = append(out, houses[core.RowOf(a)])
	}
	if core.ColOf(a) == core.ColOf(b) {
		out = append(out, houses[9+core.ColOf(a)])
	}
	if core.BoxOf(a) == core.BoxOf(b) {
		out = append(out, houses[18+core.BoxOf(a)])
	}
	return out
}

// FindHiddenRectangle implements the hidden UR: if digit d2 forms a
// conjugate pair in both columns of the rectangle and the pivot corner holds
// only d1 and d2, digit d1 can be eliminated from the corner diagonal to the
// pivot, since placing d1 there would force d2 into a deadly pattern at the
// other three corners. Only the rectangle's columns are checked for
// conjugate pairs; pairs along its rows are not searched.
func FindHiddenRectangle(f *fabric.Fabric) *model.Finding {
	for d1 := 1; d1 < constants.GridSize; d1++ {
		for d2 := d1 + 1; d2 <= constants.GridSize; d2++ {
			for _, r := range findRectangles(f, d1, d2) {
				if finding := hiddenRectangleForDigits(f, r, d1, d2); finding != nil {
					return finding
				}
				if finding := hiddenRectangleForDigits(f, r, d2, d1); finding != nil {
					return finding
				}
			}
		}
	}
	return nil
}

func hiddenRectangleForDigits(f *fabric.Fabric, r rectangle, d1, d2 int) *model.Finding {
	c0, c1, c2, c3 := r.corners[0], r.corners[1], r.corners[2], r.corners[3]
	houses := core.AllHouses()
	col1, col2 := houses[9+core.ColOf(c0)], houses[9+core.ColOf(c1)]
	if !isConjugatePair(f, col1, d2, c0, c2) || !isConjugatePair(f, col2, d2, c1, c3) {
		return nil
	}
	if f.Candidates(c0).Count() != 2 {
		return nil
	}
	if !f.Candidates(c3).Has(d1) {
		return nil
	}
	return model.NewElimination(model.HiddenRectangle, c3, []int{d1}, model.Witness{
		Cells:       r.corners[:],
		Digits:      []int{d1, d2},
		Description: fmt.Sprintf("Hidden Rectangle: %d conjugate in both columns forces %d out of %s", d2, d1, core.IndexToPosition(c3)),
	})
}

func isConjugatePair(f *fabric.Fabric, house core.House, digit, a, b int) bool {
	cells := f.HouseCellsWithDigit(house, digit)
	return len(cells) == 2 && contains(cells, a) && contains(cells, b)
}

// FindAvoidableRectangle looks for a rectangle where two diagonal corners
// are already-solved givens holding d1 and d2 respectively, and the other
// two corners are unsolved with both as candidates: placing the digit that
// mirrors the solved diagonal would reproduce the same two solutions with
// d1 and d2 swapped, so that digit is eliminated from whichever unsolved
// corner would complete the pattern.
func FindAvoidableRectangle(f *fabric.Fabric) *model.Finding {
	for r1 := 0; r1 < constants.GridSize; r1++ {
		for r2 := r1 + 1; r2 < constants.GridSize; r2++ {
			for c1 := 0; c1 < constants.GridSize; c1++ {
				for c2 := c1 + 1; c2 < constants.GridSize; c2++ {
					if core.BoxOf(core.IndexOf(r1, c1)) == core.BoxOf(core.IndexOf(r2, c2)) {
						continue
					}
					boxes := map[int]bool{
						core.BoxOf(core.IndexOf(r1, c1)): true, core.BoxOf(core.IndexOf(r1, c2)): true,
						core.BoxOf(core.IndexOf(r2, c1)): true, core.BoxOf(core.IndexOf(r2, c2)): true,
					}
					if len(boxes) != 2 {
						continue
					}
					if finding := avoidableRectangleAt(f, r1, c1, r2, c2); finding != nil {
						return finding
					}
				}
			}
		}
	}
	return nil
}

func avoidableRectangleAt(f *fabric.Fabric, r1, c1, r2, c2 int) *model.Finding {
	a, b := core.IndexOf(r1, c1), core.IndexOf(r2, c2) // one diagonal
	p, q := core.IndexOf(r1, c2), core.IndexOf(r2, c1) // the other diagonal

	av, bv := f.Value(a), f.Value(b)
	if av == 0 || bv == 0 || av == bv {
		return nil
	}
	if f.IsSolved(p) || f.IsSolved(q) {
		return nil
	}
	if !f.Candidates(p).Has(av) || !f.Candidates(p).Has(bv) {
		return nil
	}
	if !f.Candidates(q).Has(av) || !f.Candidates(q).Has(bv) {
		return nil
	}
	// Placing bv at p (mirroring a=av/b=bv with p=bv,q=av) completes the
	// swap-symmetric deadly pattern; eliminate bv from p.
	return model.NewElimination(model.AvoidableRectangle, p, []int{bv}, model.Witness{
		Cells:       []int{a, b, p, q},
		Digits:      []int{av, bv},
		Description: fmt.Sprintf("Avoidable Rectangle: givens %d/%d force %s away from %d", av, bv, core.IndexToPosition(p), bv),
	})
}

// FindExtendedUniqueRectangle generalizes Type 1 to a 2x3 (or 3x2) block:
// two lines of one orientation crossed with three of the other, five of the
// six cells holding exactly {d1,d2} and the sixth holding d1 and/or d2 plus
// extra candidates; eliminate d1 and d2 from that sixth cell.
func FindExtendedUniqueRectangle(f *fabric.Fabric) *model.Finding {
	for d1 := 1; d1 < constants.GridSize; d1++ {
		for d2 := d1 + 1; d2 <= constants.GridSize; d2++ {
			digits := core.NewCandidates([]int{d1, d2})
			if finding := extendedRectangleScan(f, d1, d2, digits, core.HouseRow); finding != nil {
				return finding
			}
			if finding := extendedRectangleScan(f, d1, d2, digits, core.HouseCol); finding != nil {
				return finding
			}
		}
	}
	return nil
}

// extendedRectangleScan enumerates 2 base lines x 3 cross lines: baseKind
// picks whether the 2-line side is rows (cross side columns) or columns
// (cross side rows).
func extendedRectangleScan(f *fabric.Fabric, d1, d2 int, digits core.Candidates, baseKind core.HouseKind) *model.Finding {
	n, m := constants.GridSize, constants.GridSize
	for b1 := 0; b1 < n; b1++ {
		for b2 := b1 + 1; b2 < n; b2++ {
			for _, crossCombo := range chooseInts(sequence(m), 3) {
				var cells []int
				for _, base := range []int{b1, b2} {
					for _, cross := range crossCombo {
						var idx int
						if baseKind == core.HouseRow {
							idx = core.IndexOf(base, cross)
						} else {
							idx = core.IndexOf(cross, base)
						}
						cells = append(cells, idx)
					}
				}
				if finding := extendedRectangleCheck(f, cells, d1, d2, digits); finding != nil {
					return finding
				}
			}
		}
	}
	return nil
}

func extendedRectangleCheck(f *fabric.Fabric, cells []int, d1, d2 int, digits core.Candidates) *model.Finding {
	bivalueCount, extra := 0, -1
	for _, idx := range cells {
		c := f.Candidates(idx)
		if c.IsEmpty() {
			return nil
		}
		if c.Subtract(digits).IsEmpty() {
			if c.Count() != 2 {
				return nil
			}
			bivalueCount++
			continue
		}
		if extra >= 0 {
			return nil // more than one cell with extras: not this pattern
		}
		extra = idx
	}
	if bivalueCount != len(cells)-1 || extra < 0 {
		return nil
	}
	values := f.Candidates(extra).Intersect(digits).ToSlice()
	if len(values) == 0 {
		return nil
	}
	return model.NewElimination(model.ExtendedUniqueRectangle, extra, values, model.Witness{
		Cells:       cells,
		Digits:      []int{d1, d2},
		Description: fmt.Sprintf("Extended Unique Rectangle: %d/%d deadly pattern eliminates from %s", d1, d2, core.IndexToPosition(extra)),
	})
}

func sequence(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}

// FindEmptyRectangle finds a box where every candidate for digit d lies on
// the intersection of one row and one column within the box, with at least
// one candidate on each arm away from the crossing cell (a box whose
// candidates all lie on a single line is not used), then looks for a
// conjugate pair on a crossing line
// outside the box to eliminate d from the cell where that line meets the
// empty rectangle's other arm.
func FindEmptyRectangle(f *fabric.Fabric) *model.Finding {
	houses := core.AllHouses()
	for box := 0; box < constants.GridSize; box++ {
		boxHouse := houses[18+box]
		for d := 1; d <= constants.GridSize; d++ {
			positions := f.HouseCellsWithDigit(boxHouse, d)
			if len(positions) < 2 || len(positions) > 4 {
				continue
			}
			erRow, erCol, ok := findEmptyRectanglePivot(boxHouse, positions)
			if !ok {
				continue
			}
			if finding := emptyRectangleElimination(f, box, d, erRow, erCol, positions); finding != nil {
				return finding
			}
		}
	}
	return nil
}

func findEmptyRectanglePivot(box core.House, positions []int) (int, int, bool) {
	boxRowStart := core.RowOf(box.Cells[0])
	boxColStart := core.ColOf(box.Cells[0])
	for erRow := boxRowStart; erRow < boxRowStart+constants.BoxSize; erRow++ {
		for erCol := boxColStart; erCol < boxColStart+constants.BoxSize; erCol++ {
			validRowArm, validColArm, rowArm, colArm := true, true, false, false
			for _, pos := range positions {
				r, c := core.RowOf(pos), core.ColOf(pos)
				if r != erRow && c != erCol {
					validRowArm, validColArm = false, false
					break
				}
				if r == erRow && c != erCol {
					rowArm = true
				}
				if c == erCol && r != erRow {
					colArm = true
				}
			}
			if validRowArm && validColArm && rowArm && colArm {
				return erRow, erCol, true
			}
		}
	}
	return 0, 0, false
}

func emptyRectangleElimination(f *fabric.Fabric, box, d, erRow, erCol int, positions []int) *model.Finding {
	houses := core.AllHouses()
	boxRowStart := (box / constants.BoxSize) * constants.BoxSize
	boxColStart := (box % constants.BoxSize) * constants.BoxSize

	for linkCol := 0; linkCol < constants.GridSize; linkCol++ {
		if linkCol >= boxColStart && linkCol < boxColStart+constants.BoxSize {
			continue
		}
		col := houses[9+linkCol]
		cells := f.HouseCellsWithDigit(col, d)
		if len(cells) != 2 {
			continue
		}
		linkRow := -1
		if core.RowOf(cells[0]) == erRow {
			linkRow = core.RowOf(cells[1])
		} else if core.RowOf(cells[1]) == erRow {
			linkRow = core.RowOf(cells[0])
		}
		if linkRow < 0 || (linkRow >= boxRowStart && linkRow < boxRowStart+constants.BoxSize) {
			continue
		}
		target := core.IndexOf(linkRow, erCol)
		if f.Candidates(target).Has(d) {
			return model.NewElimination(model.EmptyRectangle, target, []int{d}, model.Witness{
				Cells:       append(append([]int{}, positionsOf(positions)...), target),
				Digits:      []int{d},
				Houses:      []int{box, linkCol},
				Description: fmt.Sprintf("Empty Rectangle: %d in box %d with conjugate pair in column %d eliminates from %s", d, box+1, linkCol+1, core.IndexToPosition(target)),
			})
		}
	}
	for linkRow := 0; linkRow < constants.GridSize; linkRow++ {
		if linkRow >= boxRowStart && linkRow < boxRowStart+constants.BoxSize {
			continue
		}
		row := houses[linkRow]
		cells := f.HouseCellsWithDigit(row, d)
		if len(cells) != 2 {
			continue
		}
		linkCol := -1
		if core.ColOf(cells[0]) == erCol {
			linkCol = core.ColOf(cells[1])
		} else if core.ColOf(cells[1]) == erCol {
			linkCol = core.ColOf(cells[0])
		}
		if linkCol < 0 || (linkCol >= boxColStart && linkCol < boxColStart+constants.BoxSize) {
			continue
		}
		target := core.IndexOf(erRow, linkCol)
		if f.Candidates(target).Has(d) {
			return model.NewElimination(model.EmptyRectangle, target, []int{d}, model.Witness{
				Cells:       append(append([]int{}, positionsOf(positions)...), target),
				Digits:      []int{d},
				Houses:      []int{box, linkRow},
				Description: fmt.Sprintf("Empty Rectangle: %d in box %d with conjugate pair in row %d eliminates from %s", d, box+1, linkRow+1, core.IndexToPosition(target)),
			})
		}
	}
	return nil
}

func positionsOf(xs []int) []int { return append([]int{}, xs...) }

// FindBUG finds the BUG+1 pattern: every unsolved cell is bivalue except
// one with exactly three candidates; the digit among those three that
// appears an odd number of times (three) in its row, column, or box is the
// cell's forced value, since any other assignment leaves a Bivalue
// Universal Grave deadly pattern behind.
func FindBUG(f *fabric.Fabric) *model.Finding {
	var extraCells []int
	for i := 0; i < constants.TotalCells; i++ {
		if f.IsSolved(i) {
			continue
		}
		if f.Candidates(i).Count() != 2 {
			extraCells = append(extraCells, i)
		}
	}
	if len(extraCells) != 1 {
		return nil
	}
	bugCell := extraCells[0]
	if f.Candidates(bugCell).Count() != 3 {
		return nil
	}
	houses := core.AllHouses()
	row, col, box := core.RowOf(bugCell), core.ColOf(bugCell), core.BoxOf(bugCell)
	for _, digit := range f.Candidates(bugCell).ToSlice() {
		rowCount := len(f.HouseCellsWithDigit(houses[row], digit))
		colCount := len(f.HouseCellsWithDigit(houses[9+col], digit))
		boxCount := len(f.HouseCellsWithDigit(houses[18+box], digit))
		if rowCount == 3 || colCount == 3 || boxCount == 3 {
			return model.NewPlacement(model.BivalueUniversalGrave, bugCell, digit, model.Witness{
				Cells:       []int{bugCell},
				Digits:      []int{digit},
				Description: fmt.Sprintf("BUG+1: every other cell is bivalue; %s must be %d to avoid a universal grave", core.IndexToPosition(bugCell), digit),
			})
		}
	}
	return nil
}

func contains(xs []int, v int) bool {
	for _, x := range xs {
		if x == v {
			return true
		}
	}
	return false
}

// chooseInts returns all size-element subsets of xs, in input order.
func chooseInts(xs []int, size int) [][]int {
	if size <= 0 || size > len(xs) {
		return nil
	}
	var out [][]int
	idx := make([]int, size)
	for i := range idx {
		idx[i] = i
	}
	for {
		combo := make([]int, size)
		for i, ix := range idx {
			combo[i] = xs[ix]
		}
		out = append(out, combo)

		i := size - 1
		for i >= 0 && idx[i] == i+len(xs)-size {
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
