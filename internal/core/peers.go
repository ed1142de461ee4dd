package core

import "sudoku-engine/pkg/constants"

// HouseKind distinguishes a row, column, or box house.
type HouseKind int

const (
	HouseRow HouseKind = iota
	HouseCol
	HouseBox
)

func (k HouseKind) String() string {
	switch k {
	case HouseRow:
		return "row"
	case HouseCol:
		return "column"
	case HouseBox:
		return "box"
	}
	return ""
}

// House is one row, column, or box: 9 cell indices plus its kind and index.
type House struct {
	Kind  HouseKind
	Index int
	Cells [9]int
}

var (
	// RowIndices[r] holds the 9 cell indices of row r.
	RowIndices [constants.GridSize][]int
	// ColIndices[c] holds the 9 cell indices of column c.
	ColIndices [constants.GridSize][]int
	// BoxIndices[b] holds the 9 cell indices of box b.
	BoxIndices [constants.GridSize][]int

	// Peers[i] holds the 20 peer indices of cell i (row ∪ col ∪ box, excluding i).
	Peers [constants.TotalCells][]int

	// houses holds all 27 houses in canonical order: rows 0..9, cols 0..9, boxes 0..9.
	houses [27]House
)

func init() {
	for r := 0; r < constants.GridSize; r++ {
		for c := 0; c < constants.GridSize; c++ {
			idx := IndexOf(r, c)
			RowIndices[r] = append(RowIndices[r], idx)
			ColIndices[c] = append(ColIndices[c], idx)
			box := (r/constants.BoxSize)*constants.BoxSize + c/constants.BoxSize
			BoxIndices[box] = append(BoxIndices[box], idx)
		}
	}

	for i := 0; i < constants.TotalCells; i++ {
		row, col, box := RowOf(i), ColOf(i), BoxOf(i)
		seen := make(map[int]bool, 20)
		for _, idx := range RowIndices[row] {
			if idx != i && !seen[idx] {
				seen[idx] = true
				Peers[i] = append(Peers[i], idx)
			}
		}
		for _, idx := range ColIndices[col] {
			if idx != i && !seen[idx] {
				seen[idx] = true
				Peers[i] = append(Peers[i], idx)
			}
		}
		for _, idx := range BoxIndices[box] {
			if idx != i && !seen[idx] {
				seen[idx] = true
				Peers[i] = append(Peers[i], idx)
			}
		}
	}

	n := 0
	for r := 0; r < constants.GridSize; r++ {
		houses[n] = House{Kind: HouseRow, Index: r, Cells: toArray9(RowIndices[r])}
		n++
	}
	for c := 0; c < constants.GridSize; c++ {
		houses[n] = House{Kind: HouseCol, Index: c, Cells: toArray9(ColIndices[c])}
		n++
	}
	for b := 0; b < constants.GridSize; b++ {
		houses[n] = House{Kind: HouseBox, Index: b, Cells: toArray9(BoxIndices[b])}
		n++
	}
}

func toArray9(cells []int) [9]int {
	var a [9]int
	copy(a[:], cells)
	return a
}

// AllHouses returns all 27 houses in canonical order: rows, then columns, then boxes.
func AllHouses() [27]House {
	return houses
}

// ArePeers reports whether two distinct cells share a house.
func ArePeers(a, b int) bool {
	if a == b {
		return false
	}
	return RowOf(a) == RowOf(b) || ColOf(a) == ColOf(b) || BoxOf(a) == BoxOf(b)
}

// AllSeeAll reports whether every cell in a sees every cell in b.
func AllSeeAll(a, b []int) bool {
	for _, x := range a {
		for _, y := range b {
			if x != y && !ArePeers(x, y) {
				return false
			}
		}
	}
	return true
}

// CommonPeers returns cells that are peers of every cell in cells (excluding
// members of cells themselves).
func CommonPeers(cells []int) []int {
	if len(cells) == 0 {
		return nil
	}
	in := make(map[int]bool, len(cells))
	for _, c := range cells {
		in[c] = true
	}
	candidateSet := make(map[int]bool)
	for _, p := range Peers[cells[0]] {
		if !in[p] {
			candidateSet[p] = true
		}
	}
	for _, cell := range cells[1:] {
		peerSet := make(map[int]bool, len(Peers[cell]))
		for _, p := range Peers[cell] {
			peerSet[p] = true
		}
		for p := range candidateSet {
			if !peerSet[p] {
				delete(candidateSet, p)
			}
		}
	}
	out := make([]int, 0, len(candidateSet))
	for p := range candidateSet {
		out = append(out, p)
	}
	sortInts(out)
	return out
}

func sortInts(xs []int) {
	for i := 1; i < len(xs); i++ {
		for j := i; j > 0 && xs[j-1] > xs[j]; j-- {
			xs[j-1], xs[j] = xs[j], xs[j-1]
		}
	}
}
