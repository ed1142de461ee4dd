package model

import "sudoku-engine/internal/core"

// InferenceKind distinguishes a placement from an elimination.
type InferenceKind int

const (
	Placement InferenceKind = iota
	Elimination
)

// Inference is the atomic logical consequence of a Finding: either placing a
// single digit, or eliminating one or more candidate digits from one cell.
type Inference struct {
	Kind   InferenceKind
	Cell   int // linear cell index
	Value  int // the placed digit, when Kind == Placement
	Values []int // the eliminated digits, when Kind == Elimination (non-empty)
}

// Witness preserves the human-readable evidence for a Finding — the cells,
// digits, and houses that justify it — so a Hint can be projected without the
// orchestrator needing to understand any engine's internals.
type Witness struct {
	Cells       []int
	Digits      []int
	Houses      []int
	Description string
}

// Finding is one engine's output: a technique tag, the inference it licenses,
// and the witness explaining why.
type Finding struct {
	Technique Technique
	Inference Inference
	Witness   Witness
}

// NewPlacement builds a Placement Finding.
func NewPlacement(tech Technique, cell, value int, witness Witness) *Finding {
	return &Finding{
		Technique: tech,
		Inference: Inference{Kind: Placement, Cell: cell, Value: value},
		Witness:   witness,
	}
}

// NewElimination builds an Elimination Finding. Returns nil if values is empty
// — engines must never emit an elimination with nothing to eliminate
// (spec.md §4.2).
func NewElimination(tech Technique, cell int, values []int, witness Witness) *Finding {
	if len(values) == 0 {
		return nil
	}
	return &Finding{
		Technique: tech,
		Inference: Inference{Kind: Elimination, Cell: cell, Values: values},
		Witness:   witness,
	}
}

// ToHint projects a Finding to its user-facing Hint.
func (f *Finding) ToHint() Hint {
	pos := core.IndexToPosition(f.Inference.Cell)
	switch f.Inference.Kind {
	case Placement:
		return Hint{
			Technique:   f.Technique,
			Kind:        SetValue,
			Pos:         pos,
			Value:       f.Inference.Value,
			Description: f.Witness.Description,
		}
	default:
		return Hint{
			Technique:   f.Technique,
			Kind:        EliminateCandidates,
			Pos:         pos,
			Values:      f.Inference.Values,
			Description: f.Witness.Description,
		}
	}
}

// HintKind distinguishes the two shapes a Hint can take.
type HintKind int

const (
	SetValue HintKind = iota
	EliminateCandidates
)

// Hint is the user-facing projection of a Finding (spec.md §3): a technique
// tag, target position(s), value(s), and a description, derived purely from
// the Finding that produced it.
type Hint struct {
	Technique   Technique
	Kind        HintKind
	Pos         core.Position
	Value       int
	Values      []int
	Description string
}
