package core

import "testing"

func TestRowOfColOfBoxOf(t *testing.T) {
	tests := []struct {
		idx              int
		row, col, boxNum int
	}{
		{0, 0, 0, 0},
		{8, 0, 8, 2},
		{9, 1, 0, 0},
		{40, 4, 4, 4},
		{80, 8, 8, 8},
	}
	for _, tt := range tests {
		if got := RowOf(tt.idx); got != tt.row {
			t.Errorf("RowOf(%d) = %d, want %d", tt.idx, got, tt.row)
		}
		if got := ColOf(tt.idx); got != tt.col {
			t.Errorf("ColOf(%d) = %d, want %d", tt.idx, got, tt.col)
		}
		if got := BoxOf(tt.idx); got != tt.boxNum {
			t.Errorf("BoxOf(%d) = %d, want %d", tt.idx, got, tt.boxNum)
		}
	}
}

func TestPeersCountIsTwenty(t *testing.T) {
	for i := 0; i < 81; i++ {
		if got := len(Peers[i]); got != 20 {
			t.Errorf("len(Peers[%d]) = %d, want 20", i, got)
		}
	}
}

func TestArePeers(t *testing.T) {
	if !ArePeers(IndexOf(0, 0), IndexOf(0, 5)) {
		t.Error("same-row cells should be peers")
	}
	if !ArePeers(IndexOf(0, 0), IndexOf(5, 0)) {
		t.Error("same-column cells should be peers")
	}
	if !ArePeers(IndexOf(0, 0), IndexOf(1, 1)) {
		t.Error("same-box cells should be peers")
	}
	if ArePeers(IndexOf(0, 0), IndexOf(4, 4)) {
		t.Error("cells in different row/col/box should not be peers")
	}
	if ArePeers(IndexOf(0, 0), IndexOf(0, 0)) {
		t.Error("a cell is never its own peer")
	}
}

func TestAllHousesCanonicalOrder(t *testing.T) {
	hs := AllHouses()
	if len(hs) != 27 {
		t.Fatalf("len(AllHouses()) = %d, want 27", len(hs))
	}
	for i := 0; i < 9; i++ {
		if hs[i].Kind != HouseRow || hs[i].Index != i {
			t.Errorf("house %d = %+v, want row %d", i, hs[i], i)
		}
		if hs[9+i].Kind != HouseCol || hs[9+i].Index != i {
			t.Errorf("house %d = %+v, want col %d", 9+i, hs[9+i], i)
		}
		if hs[18+i].Kind != HouseBox || hs[18+i].Index != i {
			t.Errorf("house %d = %+v, want box %d", 18+i, hs[18+i], i)
		}
	}
}

func TestCommonPeers(t *testing.T) {
	// Two cells in the same row: common peers should include the rest of that
	// row plus any shared column/box members, but not either cell itself.
	a, b := IndexOf(0, 0), IndexOf(0, 1)
	common := CommonPeers([]int{a, b})
	for _, p := range common {
		if p == a || p == b {
			t.Errorf("CommonPeers included an input cell: %d", p)
		}
		if !ArePeers(p, a) || !ArePeers(p, b) {
			t.Errorf("cell %d is not a peer of both inputs", p)
		}
	}
}
