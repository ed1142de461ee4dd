// Package als implements the Almost Locked Set family (spec.md §4.5):
// XY-Wing, XYZ-Wing, WXYZ-Wing, ALS-XZ, ALS-XY-Wing, ALS chain, Sue de Coq,
// aligned pair/triplet exclusion, and death blossom. All of these reduce to
// the same shape: find one or more almost-locked sets (or bivalue/trivalue
// cells, which are ALS of size 1-2 degenerate cases) connected by a
// restricted-common digit, then eliminate a shared digit from any cell that
// sees every occurrence of it across the pattern.
package als

import (
	"fmt"

	"sudoku-engine/internal/core"
	"sudoku-engine/internal/fabric"
	"sudoku-engine/internal/model"
	"sudoku-engine/pkg/constants"
)

// ALS is an Almost Locked Set: N unsolved cells confined to one house whose
// combined candidates span exactly N+1 digits.
type ALS struct {
	Cells   []int
	Digits  []int
	ByDigit map[int][]int
}

// findAllALS scans every house for almost locked sets of size 1..maxSize,
// grounded on the teacher's findAllALS (techniques_wings.go): size 1 is a
// bivalue cell, which is the degenerate ALS every wing technique pivots on.
func findAllALS(f *fabric.Fabric, maxSize int) []ALS {
	var out []ALS
	houses := core.AllHouses()
	for _, house := range houses {
		var unsolved []int
		for _, idx := range house.Cells {
			if !f.IsSolved(idx) {
				unsolved = append(unsolved, idx)
			}
		}
		for size := 1; size <= maxSize && size <= len(unsolved); size++ {
			for _, combo := range combinations(unsolved, size) {
				var union core.Candidates
				for _, idx := range combo {
					union = union.Union(f.Candidates(idx))
				}
				if union.Count() != size+1 {
					continue
				}
				byDigit := make(map[int][]int)
				for _, idx := range combo {
					for _, d := range f.Candidates(idx).ToSlice() {
						byDigit[d] = append(byDigit[d], idx)
					}
				}
				out = append(out, ALS{Cells: append([]int{}, combo...), Digits: union.ToSlice(), ByDigit: byDigit})
			}
		}
	}
	return out
}

func alsShareCells(a, b ALS) bool {
	for _, x := range a.Cells {
		if contains(b.Cells, x) {
			return true
		}
	}
	return false
}

func findCommonDigits(a, b []int) []int {
	var out []int
	for _, d := range a {
		if contains(b, d) {
			out = append(out, d)
		}
	}
	return out
}

// isRestrictedCommon reports whether every cell holding d in a sees every
// cell holding d in b (core.AllSeeAll), the condition that licenses treating
// d as the chain's pivot digit between two ALS.
func isRestrictedCommon(a, b ALS, d int) bool {
	ca, cb := a.ByDigit[d], b.ByDigit[d]
	if len(ca) == 0 || len(cb) == 0 {
		return false
	}
	return core.AllSeeAll(ca, cb)
}

func restrictedCommons(a, b ALS) []int {
	var out []int
	for _, d := range findCommonDigits(a.Digits, b.Digits) {
		if isRestrictedCommon(a, b, d) {
			out = append(out, d)
		}
	}
	return out
}

// eliminationsSeeingAll returns every unsolved cell (outside excluded) that
// holds digit and sees every cell in each of groups.
func eliminationsSeeingAll(f *fabric.Fabric, digit int, excluded map[int]bool, groups ...[]int) []int {
	var out []int
	for i := 0; i < constants.TotalCells; i++ {
		if excluded[i] || f.IsSolved(i) || !f.Candidates(i).Has(digit) {
			continue
		}
		ok := true
		for _, g := range groups {
			if !core.AllSeeAll([]int{i}, g) {
				ok = false
				break
			}
		}
		if ok {
			out = append(out, i)
		}
	}
	return out
}

func cellSet(groups ...[]int) map[int]bool {
	s := map[int]bool{}
	for _, g := range groups {
		for _, c := range g {
			s[c] = true
		}
	}
	return s
}

// FindXYWing finds a bivalue pivot {x,y} with two bivalue pincers {x,z} and
// {y,z} that both see the pivot, eliminating z from cells seeing both
// pincers. Grounded on techniques_fish.go's detectXYWing.
func FindXYWing(f *fabric.Fabric) *model.Finding {
	bivalues := f.Bivalue()
	for _, pivot := range bivalues {
		pc := f.Candidates(pivot).ToSlice()
		if len(pc) != 2 {
			continue
		}
		x, y := pc[0], pc[1]
		var xzWings, yzWings []int
		for _, wing := range bivalues {
			if wing == pivot || !core.ArePeers(pivot, wing) {
				continue
			}
			wc := f.Candidates(wing)
			hasX, hasY := wc.Has(x), wc.Has(y)
			if hasX && !hasY {
				xzWings = append(xzWings, wing)
			} else if hasY && !hasX {
				yzWings = append(yzWings, wing)
			}
		}
		for _, xz := range xzWings {
			z1 := otherDigit(f.Candidates(xz), x)
			for _, yz := range yzWings {
				if xz == yz {
					continue
				}
				z2 := otherDigit(f.Candidates(yz), y)
				if z1 != z2 {
					continue
				}
				z := z1
				excluded := cellSet([]int{pivot, xz, yz})
				elims := eliminationsSeeingAll(f, z, excluded, []int{xz}, []int{yz})
				if len(elims) == 0 {
					continue
				}
				cell := elims[0]
				desc := fmt.Sprintf("XY-Wing: pivot %s {%d,%d}, wings %s and %s; eliminate %d from %s",
					core.IndexToPosition(pivot), x, y, core.IndexToPosition(xz), core.IndexToPosition(yz), z, core.IndexToPosition(cell))
				return model.NewElimination(model.XYWing, cell, []int{z}, model.Witness{
					Cells:       []int{pivot, xz, yz},
					Digits:      []int{x, y, z},
					Description: desc,
				})
			}
		}
	}
	return nil
}

func otherDigit(c core.Candidates, known int) int {
	for _, d := range c.ToSlice() {
		if d != known {
			return d
		}
	}
	return 0
}

// FindXYZWing finds a trivalue pivot {x,y,z} with bivalue wings {x,z} and
// {y,z} both seeing the pivot, eliminating z from cells seeing all three.
// Grounded on techniques_wings.go's detectXYZWing.
func FindXYZWing(f *fabric.Fabric) *model.Finding {
	bivalues := f.Bivalue()
	trivalues := f.CellsWithCount(3)
	for _, pivot := range trivalues {
		pc := f.Candidates(pivot).ToSlice()
		for _, z := range pc {
			var others []int
			for _, d := range pc {
				if d != z {
					others = append(others, d)
				}
			}
			x, y := others[0], others[1]
			var xzWings, yzWings []int
			for _, wing := range bivalues {
				if wing == pivot || !core.ArePeers(pivot, wing) {
					continue
				}
				wc := f.Candidates(wing)
				if wc.Has(x) && wc.Has(z) {
					xzWings = append(xzWings, wing)
				}
				if wc.Has(y) && wc.Has(z) {
					yzWings = append(yzWings, wing)
				}
			}
			for _, xz := range xzWings {
				for _, yz := range yzWings {
					if xz == yz {
						continue
					}
					excluded := cellSet([]int{pivot, xz, yz})
					elims := eliminationsSeeingAll(f, z, excluded, []int{pivot}, []int{xz}, []int{yz})
					if len(elims) == 0 {
						continue
					}
					cell := elims[0]
					desc := fmt.Sprintf("XYZ-Wing: pivot %s {%d,%d,%d}, wings %s and %s; eliminate %d from %s",
						core.IndexToPosition(pivot), x, y, z, core.IndexToPosition(xz), core.IndexToPosition(yz), z, core.IndexToPosition(cell))
					return model.NewElimination(model.XYZWing, cell, []int{z}, model.Witness{
						Cells:       []int{pivot, xz, yz},
						Digits:      []int{x, y, z},
						Description: desc,
					})
				}
			}
		}
	}
	return nil
}

// FindWXYZWing finds 4 cells (2-4 candidates each) spanning exactly 4 digits
// with exactly one non-restricted digit, eliminating it from any cell seeing
// every occurrence within the quad. Grounded on techniques_wings.go's
// detectWXYZWing.
func FindWXYZWing(f *fabric.Fabric) *model.Finding {
	cells := f.CellsWithCountInRange(2, 4)
	n := len(cells)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			for k := j + 1; k < n; k++ {
				for l := k + 1; l < n; l++ {
					quad := []int{cells[i], cells[j], cells[k], cells[l]}
					if !quadConnected(quad) {
						continue
					}
					var union core.Candidates
					for _, c := range quad {
						union = union.Union(f.Candidates(c))
					}
					if union.Count() != 4 {
						continue
					}
					digits := union.ToSlice()
					var nonRestricted []int
					for _, d := range digits {
						if !digitRestrictedInQuad(f, quad, d) {
							nonRestricted = append(nonRestricted, d)
						}
					}
					if len(nonRestricted) != 1 {
						continue
					}
					z := nonRestricted[0]
					var zCells []int
					for _, c := range quad {
						if f.Candidates(c).Has(z) {
							zCells = append(zCells, c)
						}
					}
					if len(zCells) == 0 {
						continue
					}
					excluded := cellSet(quad)
					elims := eliminationsSeeingAll(f, z, excluded, zCells)
					if len(elims) == 0 {
						continue
					}
					cell := elims[0]
					desc := fmt.Sprintf("WXYZ-Wing: quad %v spans {%v}, non-restricted digit %d; eliminate from %s",
						positions(quad), digits, z, core.IndexToPosition(cell))
					return model.NewElimination(model.WXYZWing, cell, []int{z}, model.Witness{
						Cells:       quad,
						Digits:      digits,
						Description: desc,
					})
				}
			}
		}
	}
	return nil
}

func quadConnected(quad []int) bool {
	for i, a := range quad {
		seesAny := false
		for j, b := range quad {
			if i != j && core.ArePeers(a, b) {
				seesAny = true
				break
			}
		}
		if !seesAny {
			return false
		}
	}
	return true
}

func digitRestrictedInQuad(f *fabric.Fabric, quad []int, d int) bool {
	var withD []int
	for _, c := range quad {
		if f.Candidates(c).Has(d) {
			withD = append(withD, c)
		}
	}
	for i := 0; i < len(withD); i++ {
		for j := i + 1; j < len(withD); j++ {
			if !core.ArePeers(withD[i], withD[j]) {
				return false
			}
		}
	}
	return true
}

func positions(cells []int) []string {
	out := make([]string, len(cells))
	for i, c := range cells {
		out[i] = core.IndexToPosition(c).String()
	}
	return out
}

// FindAlsXz finds two ALS sharing a restricted common digit x and a second
// common digit z, eliminating z from cells seeing every z-occurrence in
// both ALS. Grounded on techniques_wings.go's detectALSXZ.
func FindAlsXz(f *fabric.Fabric) *model.Finding {
	allALS := findAllALS(f, 4)
	for i := 0; i < len(allALS); i++ {
		for j := i + 1; j < len(allALS); j++ {
			a, b := allALS[i], allALS[j]
			if alsShareCells(a, b) {
				continue
			}
			common := findCommonDigits(a.Digits, b.Digits)
			if len(common) < 2 {
				continue
			}
			for _, x := range common {
				if !isRestrictedCommon(a, b, x) {
					continue
				}
				for _, z := range common {
					if z == x {
						continue
					}
					excluded := cellSet(a.Cells, b.Cells)
					elims := eliminationsSeeingAll(f, z, excluded, a.ByDigit[z], b.ByDigit[z])
					if len(elims) == 0 {
						continue
					}
					cell := elims[0]
					desc := fmt.Sprintf("ALS-XZ: ALS %v and %v share restricted common %d; eliminate %d from %s",
						positions(a.Cells), positions(b.Cells), x, z, core.IndexToPosition(cell))
					return model.NewElimination(model.AlsXz, cell, []int{z}, model.Witness{
						Cells:       append(append([]int{}, a.Cells...), b.Cells...),
						Digits:      []int{x, z},
						Description: desc,
					})
				}
			}
		}
	}
	return nil
}

// FindAlsXyWing finds three ALS A, B, C where A-B share restricted common x,
// A-C share restricted common y (x != y), and B, C share a non-restricted
// digit z eliminable from cells seeing all z in B and C. Grounded on
// techniques_als_chains.go's detectALSXYWing.
func FindAlsXyWing(f *fabric.Fabric) *model.Finding {
	allALS := findAllALS(f, 3)
	n := len(allALS)
	for ai := 0; ai < n; ai++ {
		a := allALS[ai]
		for bi := 0; bi < n; bi++ {
			if bi == ai {
				continue
			}
			b := allALS[bi]
			if alsShareCells(a, b) {
				continue
			}
			rcAB := restrictedCommons(a, b)
			if len(rcAB) == 0 {
				continue
			}
			for ci := 0; ci < n; ci++ {
				if ci == ai || ci == bi {
					continue
				}
				c := allALS[ci]
				if alsShareCells(a, c) || alsShareCells(b, c) {
					continue
				}
				rcAC := restrictedCommons(a, c)
				if len(rcAC) == 0 {
					continue
				}
				for _, x := range rcAB {
					for _, y := range rcAC {
						if x == y {
							continue
						}
						for _, z := range findCommonDigits(b.Digits, c.Digits) {
							if z == x || z == y || isRestrictedCommon(b, c, z) {
								continue
							}
							excluded := cellSet(a.Cells, b.Cells, c.Cells)
							elims := eliminationsSeeingAll(f, z, excluded, b.ByDigit[z], c.ByDigit[z])
							if len(elims) == 0 {
								continue
							}
							cell := elims[0]
							desc := fmt.Sprintf("ALS-XY-Wing: A=%v B=%v C=%v, RC(A,B)=%d RC(A,C)=%d; eliminate %d from %s",
								positions(a.Cells), positions(b.Cells), positions(c.Cells), x, y, z, core.IndexToPosition(cell))
							return model.NewElimination(model.AlsXyWing, cell, []int{z}, model.Witness{
								Cells:       append(append(append([]int{}, a.Cells...), b.Cells...), c.Cells...),
								Digits:      []int{x, y, z},
								Description: desc,
							})
						}
					}
				}
			}
		}
	}
	return nil
}

// FindAlsChain extends ALS-XZ to chains of 3-6 ALS linked by alternating
// restricted commons, eliminating a digit common to the first and last ALS
// that is not itself one of the chain's RC digits. Grounded on
// techniques_als_chains.go's detectALSXYChain.
func FindAlsChain(f *fabric.Fabric) *model.Finding {
	allALS := findAllALS(f, 3)
	n := len(allALS)
	adj := make([]map[int][]int, n)
	for i := range adj {
		adj[i] = map[int][]int{}
		for j := 0; j < n; j++ {
			if i == j || alsShareCells(allALS[i], allALS[j]) {
				continue
			}
			if rcs := restrictedCommons(allALS[i], allALS[j]); len(rcs) > 0 {
				adj[i][j] = rcs
			}
		}
	}
	for start := 0; start < n; start++ {
		if finding := searchALSChain(f, allALS, adj, start, 6); finding != nil {
			return finding
		}
	}
	return nil
}

type chainState struct {
	path    []int
	rcUsed  []int
	visited map[int]bool
}

func searchALSChain(f *fabric.Fabric, allALS []ALS, adj []map[int][]int, start, maxLen int) *model.Finding {
	stack := []chainState{{path: []int{start}, visited: map[int]bool{start: true}}}
	for len(stack) > 0 {
		curr := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		last := curr.path[len(curr.path)-1]

		if len(curr.path) >= 3 {
			if finding := checkChainElimination(f, allALS, curr.path, curr.rcUsed); finding != nil {
				return finding
			}
		}
		if len(curr.path) >= maxLen {
			continue
		}
		for next, rcs := range adj[last] {
			if curr.visited[next] {
				continue
			}
			for _, rc := range rcs {
				if len(curr.rcUsed) > 0 && contains(curr.rcUsed, rc) {
					continue
				}
				newPath := append(append([]int{}, curr.path...), next)
				newRC := append(append([]int{}, curr.rcUsed...), rc)
				newVisited := make(map[int]bool, len(curr.visited)+1)
				for k, v := range curr.visited {
					newVisited[k] = v
				}
				newVisited[next] = true
				stack = append(stack, chainState{path: newPath, rcUsed: newRC, visited: newVisited})
			}
		}
	}
	return nil
}

func checkChainElimination(f *fabric.Fabric, allALS []ALS, path, rcUsed []int) *model.Finding {
	first, last := allALS[path[0]], allALS[path[len(path)-1]]
	var chainCells []int
	for _, idx := range path {
		chainCells = append(chainCells, allALS[idx].Cells...)
	}
	excluded := cellSet(chainCells)
	for _, z := range findCommonDigits(first.Digits, last.Digits) {
		if contains(rcUsed, z) {
			continue
		}
		zFirst, zLast := first.ByDigit[z], last.ByDigit[z]
		if len(zFirst) == 0 || len(zLast) == 0 {
			continue
		}
		elims := eliminationsSeeingAll(f, z, excluded, zFirst, zLast)
		if len(elims) == 0 {
			continue
		}
		cell := elims[0]
		desc := fmt.Sprintf("ALS Chain: %d ALS linked by RCs %v; eliminate %d from %s", len(path), rcUsed, z, core.IndexToPosition(cell))
		return model.NewElimination(model.AlsChain, cell, []int{z}, model.Witness{
			Cells:       chainCells,
			Digits:      append(append([]int{}, rcUsed...), z),
			Description: desc,
		})
	}
	return nil
}

// FindSueDeCoq finds a box/line intersection of 2-3 cells whose combined
// candidates split exactly between an ALS in the rest of the box and an ALS
// in the rest of the line, eliminating each ALS's digits from the rest of
// its own house. Grounded on techniques_sdc.go's detectSueDeCoq.
func FindSueDeCoq(f *fabric.Fabric) *model.Finding {
	for box := 0; box < constants.GridSize; box++ {
		boxCells := core.BoxIndices[box]
		rows, cols := uniqueLines(boxCells)
		for _, r := range rows {
			if finding := sueDeCoqAt(f, box, core.RowIndices[r][:], true); finding != nil {
				return finding
			}
		}
		for _, c := range cols {
			if finding := sueDeCoqAt(f, box, core.ColIndices[c][:], false); finding != nil {
				return finding
			}
		}
	}
	return nil
}

func uniqueLines(boxCells []int) (rows, cols []int) {
	seenR, seenC := map[int]bool{}, map[int]bool{}
	for _, c := range boxCells {
		r := core.RowOf(c)
		col := core.ColOf(c)
		if !seenR[r] {
			seenR[r] = true
			rows = append(rows, r)
		}
		if !seenC[col] {
			seenC[col] = true
			cols = append(cols, col)
		}
	}
	return rows, cols
}

func sueDeCoqAt(f *fabric.Fabric, box int, line []int, isRow bool) *model.Finding {
	boxSet := toSet(core.BoxIndices[box])

	var intersection []int
	for _, idx := range line {
		if boxSet[idx] && !f.IsSolved(idx) {
			intersection = append(intersection, idx)
		}
	}
	if len(intersection) < 2 || len(intersection) > 3 {
		return nil
	}
	var interDigits core.Candidates
	for _, idx := range intersection {
		interDigits = interDigits.Union(f.Candidates(idx))
	}
	if interDigits.Count() < len(intersection)+2 {
		return nil
	}

	var boxRest, lineRest []int
	for _, idx := range core.BoxIndices[box] {
		if !f.IsSolved(idx) && !contains(intersection, idx) {
			boxRest = append(boxRest, idx)
		}
	}
	for _, idx := range line {
		if !f.IsSolved(idx) && !boxSet[idx] {
			lineRest = append(lineRest, idx)
		}
	}

	boxALS := alsOverlapping(f, boxRest, interDigits)
	lineALS := alsOverlapping(f, lineRest, interDigits)

	for _, a := range boxALS {
		for _, b := range lineALS {
			if len(findCommonDigits(a.Digits, b.Digits)) > 0 {
				continue
			}
			combined := core.NewCandidates(a.Digits).Union(core.NewCandidates(b.Digits))
			if combined.Count() != len(interDigits.ToSlice()) || combined.Intersect(interDigits) != interDigits {
				continue
			}
			var eliminations []int
			firstCell := -1
			var firstValues []int
			for _, idx := range boxRest {
				if contains(a.Cells, idx) {
					continue
				}
				if overlap := f.Candidates(idx).Intersect(core.NewCandidates(a.Digits)); !overlap.IsEmpty() {
					eliminations = append(eliminations, idx)
					if firstCell == -1 {
						firstCell, firstValues = idx, overlap.ToSlice()
					}
				}
			}
			for _, idx := range lineRest {
				if contains(b.Cells, idx) {
					continue
				}
				if overlap := f.Candidates(idx).Intersect(core.NewCandidates(b.Digits)); !overlap.IsEmpty() {
					eliminations = append(eliminations, idx)
					if firstCell == -1 {
						firstCell, firstValues = idx, overlap.ToSlice()
					}
				}
			}
			if firstCell == -1 {
				continue
			}
			kind := "column"
			if isRow {
				kind = "row"
			}
			desc := fmt.Sprintf("Sue de Coq: box %d / %s intersection %v split into ALS %v and %v; eliminate %v from %s",
				box+1, kind, positions(intersection), positions(a.Cells), positions(b.Cells), firstValues, core.IndexToPosition(firstCell))
			return model.NewElimination(model.SueDeCoq, firstCell, firstValues, model.Witness{
				Cells:       append(append(append([]int{}, intersection...), a.Cells...), b.Cells...),
				Digits:      interDigits.ToSlice(),
				Description: desc,
			})
		}
	}
	return nil
}

// alsOverlapping returns every ALS of size 1-3 within cells whose digits
// intersect interDigits, mirroring the teacher's findALSInCells restriction
// (an ALS that shares nothing with the intersection cannot contribute).
func alsOverlapping(f *fabric.Fabric, cells []int, interDigits core.Candidates) []ALS {
	var out []ALS
	for size := 1; size <= 3 && size <= len(cells); size++ {
		for _, combo := range combinations(cells, size) {
			var union core.Candidates
			for _, idx := range combo {
				union = union.Union(f.Candidates(idx))
			}
			if union.Count() != size+1 {
				continue
			}
			if union.Intersect(interDigits).IsEmpty() {
				continue
			}
			byDigit := make(map[int][]int)
			for _, idx := range combo {
				for _, d := range f.Candidates(idx).ToSlice() {
					byDigit[d] = append(byDigit[d], idx)
				}
			}
			out = append(out, ALS{Cells: append([]int{}, combo...), Digits: union.ToSlice(), ByDigit: byDigit})
		}
	}
	return out
}

// FindDeathBlossom finds a 2-3 candidate stem cell whose every candidate
// connects to a distinct petal ALS, eliminating a digit common to every
// petal (but absent from the stem) from cells seeing all its occurrences
// across every petal. Grounded on techniques_blossom.go's detectDeathBlossom.
func FindDeathBlossom(f *fabric.Fabric) *model.Finding {
	allALS := findAllALS(f, 4)
	if len(allALS) < 2 {
		return nil
	}
	var stems []int
	for i := 0; i < constants.TotalCells; i++ {
		n := f.Candidates(i).Count()
		if n == 2 || n == 3 {
			stems = append(stems, i)
		}
	}
	for _, stem := range stems {
		stemDigits := f.Candidates(stem).ToSlice()
		petalsByDigit := make(map[int][]ALS)
		complete := true
		for _, d := range stemDigits {
			var petals []ALS
			for _, a := range allALS {
				if contains(a.Cells, stem) || !contains(a.Digits, d) {
					continue
				}
				if core.AllSeeAll(a.ByDigit[d], []int{stem}) && len(a.ByDigit[d]) > 0 {
					petals = append(petals, a)
				}
			}
			if len(petals) == 0 {
				complete = false
				break
			}
			petalsByDigit[d] = petals
		}
		if !complete {
			continue
		}
		if finding := tryPetalCombinations(f, stem, stemDigits, petalsByDigit); finding != nil {
			return finding
		}
	}
	return nil
}

func tryPetalCombinations(f *fabric.Fabric, stem int, stemDigits []int, petalsByDigit map[int][]ALS) *model.Finding {
	switch len(stemDigits) {
	case 2:
		for _, p1 := range petalsByDigit[stemDigits[0]] {
			for _, p2 := range petalsByDigit[stemDigits[1]] {
				if alsShareCells(p1, p2) {
					continue
				}
				if finding := blossomElimination(f, stem, stemDigits, []ALS{p1, p2}); finding != nil {
					return finding
				}
			}
		}
	case 3:
		for _, p1 := range petalsByDigit[stemDigits[0]] {
			for _, p2 := range petalsByDigit[stemDigits[1]] {
				if alsShareCells(p1, p2) {
					continue
				}
				for _, p3 := range petalsByDigit[stemDigits[2]] {
					if alsShareCells(p1, p3) || alsShareCells(p2, p3) {
						continue
					}
					if finding := blossomElimination(f, stem, stemDigits, []ALS{p1, p2, p3}); finding != nil {
						return finding
					}
				}
			}
		}
	}
	return nil
}

func blossomElimination(f *fabric.Fabric, stem int, stemDigits []int, petals []ALS) *model.Finding {
	common := core.NewCandidates(petals[0].Digits)
	for _, p := range petals[1:] {
		common = common.Intersect(core.NewCandidates(p.Digits))
	}
	common = common.Subtract(f.Candidates(stem))

	excludedCells := []int{stem}
	var petalCells []int
	for _, p := range petals {
		excludedCells = append(excludedCells, p.Cells...)
		petalCells = append(petalCells, p.Cells...)
	}
	excluded := toSet(excludedCells)

	for _, z := range common.ToSlice() {
		var zCells []int
		for _, p := range petals {
			zCells = append(zCells, p.ByDigit[z]...)
		}
		if len(zCells) == 0 {
			continue
		}
		elims := eliminationsSeeingAll(f, z, excluded, zCells)
		if len(elims) == 0 {
			continue
		}
		cell := elims[0]
		desc := fmt.Sprintf("Death Blossom: stem %s {%v} with %d petals; eliminate %d from %s",
			core.IndexToPosition(stem), stemDigits, len(petals), z, core.IndexToPosition(cell))
		return model.NewElimination(model.DeathBlossom, cell, []int{z}, model.Witness{
			Cells:       append([]int{stem}, petalCells...),
			Digits:      append(append([]int{}, stemDigits...), z),
			Description: desc,
		})
	}
	return nil
}

// FindAlignedPairExclusion finds two unsolved, non-peer cells A and B sharing
// at least one common peer, then eliminates a digit from A (or B) when every
// candidate pairing (a, b) that uses it would leave some common peer with no
// candidates left. Not present in the teacher's pack; authored on the same
// ALS-adjacent combinatorial pattern as the rest of this package, restricted
// to a single common-peer contradiction check to keep it tractable and sound
// (see DESIGN.md).
func FindAlignedPairExclusion(f *fabric.Fabric) *model.Finding {
	unsolved := f.CellsWithCountInRange(2, 5)
	for i := 0; i < len(unsolved); i++ {
		a := unsolved[i]
		for j := i + 1; j < len(unsolved); j++ {
			b := unsolved[j]
			if core.ArePeers(a, b) {
				continue
			}
			common := sharedUnsolvedPeers(f, a, b)
			if len(common) == 0 || len(common) > 3 {
				continue
			}
			if finding := alignedExclusion(f, model.AlignedPairExclusion, []int{a, b}, common); finding != nil {
				return finding
			}
		}
	}
	return nil
}

// FindAlignedTripletExclusion is the 3-cell generalization of
// FindAlignedPairExclusion. Same grounding note applies.
func FindAlignedTripletExclusion(f *fabric.Fabric) *model.Finding {
	unsolved := f.CellsWithCountInRange(2, 5)
	n := len(unsolved)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			for k := j + 1; k < n; k++ {
				trio := []int{unsolved[i], unsolved[j], unsolved[k]}
				common := sharedUnsolvedPeers(f, trio...)
				if len(common) == 0 || len(common) > 2 {
					continue
				}
				if finding := alignedExclusion(f, model.AlignedTripletExclusion, trio, common); finding != nil {
					return finding
				}
			}
		}
	}
	return nil
}

func sharedUnsolvedPeers(f *fabric.Fabric, cells ...int) []int {
	common := core.CommonPeers(cells)
	var out []int
	for _, c := range common {
		if !f.IsSolved(c) {
			out = append(out, c)
		}
	}
	return out
}

// alignedExclusion tries every assignment of candidate digits to cells and
// marks an assignment invalid if it empties a common peer's candidates or
// repeats a digit between peer cells in the group. If one digit in one cell
// is never part of a valid assignment, it is eliminated.
func alignedExclusion(f *fabric.Fabric, tech model.Technique, cells, common []int) *model.Finding {
	digitSets := make([][]int, len(cells))
	for i, c := range cells {
		digitSets[i] = f.Candidates(c).ToSlice()
	}
	valid := make([]map[int]bool, len(cells)) // cell index -> digit -> ever valid
	for i := range valid {
		valid[i] = map[int]bool{}
	}

	var assign func(i int, chosen []int)
	assign = func(i int, chosen []int) {
		if i == len(cells) {
			if assignmentValid(f, cells, chosen, common) {
				for k, d := range chosen {
					valid[k][d] = true
				}
			}
			return
		}
		for _, d := range digitSets[i] {
			assign(i+1, append(chosen, d))
		}
	}
	assign(0, nil)

	for i, c := range cells {
		for _, d := range digitSets[i] {
			if !valid[i][d] {
				desc := fmt.Sprintf("%s: no valid assignment over %v places %d in %s; eliminate it",
					tech, positions(cells), d, core.IndexToPosition(c))
				return model.NewElimination(tech, c, []int{d}, model.Witness{
					Cells:       append(append([]int{}, cells...), common...),
					Digits:      []int{d},
					Description: desc,
				})
			}
		}
	}
	return nil
}

// assignmentValid reports whether chosen (one digit per cell, same order as
// cells) is consistent: no two peer cells in the group repeat a digit, and
// no common peer (which by construction sees every cell in the group) is
// left with zero candidates once every chosen digit is ruled out of it.
func assignmentValid(f *fabric.Fabric, cells, chosen, common []int) bool {
	for i := 0; i < len(cells); i++ {
		for j := i + 1; j < len(cells); j++ {
			if chosen[i] == chosen[j] && core.ArePeers(cells[i], cells[j]) {
				return false
			}
		}
	}
	used := core.NewCandidates(chosen)
	for _, c := range common {
		if f.Candidates(c).Subtract(used).IsEmpty() {
			return false
		}
	}
	return true
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

// combinations returns all size-element subsets of xs in lexicographic index order.
func combinations(xs []int, size int) [][]int {
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
