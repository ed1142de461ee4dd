package aic

import (
	"testing"

	"sudoku-engine/internal/core"
	"sudoku-engine/internal/fabric"
	"sudoku-engine/internal/model"
)

const puzzle = "530070000600195000098000060800060003400803001700020006060000280000419005000080079"

func build(t *testing.T) *fabric.Fabric {
	t.Helper()
	g, err := core.FromString(puzzle)
	if err != nil {
		t.Fatal(err)
	}
	return fabric.Build(g)
}

func grid(t *testing.T) *core.Grid {
	t.Helper()
	g, err := core.FromString(puzzle)
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func checkElimination(t *testing.T, name string, finding *model.Finding) {
	t.Helper()
	if finding == nil {
		return
	}
	if finding.Inference.Kind != model.Elimination {
		t.Errorf("%s: expected an Elimination inference", name)
		return
	}
	if len(finding.Inference.Values) == 0 {
		t.Errorf("%s: elimination with no values", name)
	}
}

func checkFinding(t *testing.T, name string, finding *model.Finding) {
	t.Helper()
	if finding == nil {
		return
	}
	switch finding.Inference.Kind {
	case model.Elimination:
		if len(finding.Inference.Values) == 0 {
			t.Errorf("%s: elimination with no values", name)
		}
	case model.Placement:
		if finding.Inference.Value < 1 || finding.Inference.Value > 9 {
			t.Errorf("%s: invalid placed value %d", name, finding.Inference.Value)
		}
	}
}

func TestFindXChainSound(t *testing.T) {
	checkElimination(t, "XChain", FindXChain(build(t)))
}

func TestFindWWingSound(t *testing.T) {
	checkElimination(t, "WWing", FindWWing(build(t)))
}

func TestFindThreeDMedusaSound(t *testing.T) {
	checkElimination(t, "ThreeDMedusa", FindThreeDMedusa(build(t)))
}

func TestFindAICSound(t *testing.T) {
	checkFinding(t, "AIC", FindAIC(build(t)))
}

func TestFindNishioForcingChainSound(t *testing.T) {
	checkElimination(t, "NishioForcingChain", FindNishioForcingChain(grid(t)))
}

func TestFindCellForcingChainSound(t *testing.T) {
	checkFinding(t, "CellForcingChain", FindCellForcingChain(grid(t)))
}

func TestFindRegionForcingChainSound(t *testing.T) {
	checkFinding(t, "RegionForcingChain", FindRegionForcingChain(grid(t)))
}

func TestFindDynamicForcingChainSound(t *testing.T) {
	finding := FindDynamicForcingChain(grid(t))
	checkFinding(t, "DynamicForcingChain", finding)
	if finding != nil && finding.Technique != model.DynamicForcingChain {
		t.Errorf("DynamicForcingChain: technique tag = %v, want DynamicForcingChain", finding.Technique)
	}
}

func TestFindKrakenFishSound(t *testing.T) {
	checkFinding(t, "KrakenFish", FindKrakenFish(grid(t)))
}

func TestChainCellsOfNilChainIsEmpty(t *testing.T) {
	cells := chainCells(nil)
	if len(cells) != 0 {
		t.Errorf("chainCells(nil) = %v, want empty", cells)
	}
}

func TestColorFlip(t *testing.T) {
	if flip(colorA) != colorB || flip(colorB) != colorA {
		t.Error("flip must swap colorA and colorB")
	}
}
