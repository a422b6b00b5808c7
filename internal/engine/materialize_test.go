package engine

import (
	"errors"
	"math"
	"testing"

	"github.com/mingu600/tapu-simu/internal/battle"
)

func dmgInstr(amount int) battle.Instruction {
	return battle.Instruction{
		Kind:   battle.InstrPositionDamage,
		Target: battle.Position{Side: battle.SideTwo, Slot: 0},
		Amount: amount,
	}
}

func TestMaterialize_MergesIdenticalSequences(t *testing.T) {
	branches := []branch{
		{prob: 0.25, instrs: []battle.Instruction{dmgInstr(40)}},
		{prob: 0.25, instrs: []battle.Instruction{dmgInstr(40)}},
		{prob: 0.5, instrs: []battle.Instruction{dmgInstr(60)}},
	}
	sets, err := materialize(branches)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sets) != 2 {
		t.Fatalf("expected identical sequences merged into 2 sets, got %d", len(sets))
	}
	for _, s := range sets {
		if math.Abs(s.Percentage-50.0) > 1e-9 {
			t.Fatalf("expected both sets at 50%%, got %.6f", s.Percentage)
		}
	}
}

func TestMaterialize_PrunesAndRedistributes(t *testing.T) {
	branches := []branch{
		{prob: 0.999950, instrs: []battle.Instruction{dmgInstr(40)}},
		{prob: 0.000050, instrs: []battle.Instruction{dmgInstr(60)}},
	}
	sets, err := materialize(branches)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// 0.005% falls below the pruning threshold; its mass is folded back in.
	if len(sets) != 1 {
		t.Fatalf("expected negligible leaf pruned, got %d sets", len(sets))
	}
	if math.Abs(sets[0].Percentage-100.0) > 1e-9 {
		t.Fatalf("redistributed percentage = %.6f, want 100", sets[0].Percentage)
	}
}

func TestMaterialize_RejectsBrokenSum(t *testing.T) {
	branches := []branch{
		{prob: 0.5, instrs: []battle.Instruction{dmgInstr(40)}},
		{prob: 0.3, instrs: []battle.Instruction{dmgInstr(60)}},
	}
	_, err := materialize(branches)
	if err == nil {
		t.Fatalf("expected invariant error for probabilities summing to 80%%")
	}
	var iErr *InvariantError
	if !errors.As(err, &iErr) {
		t.Fatalf("expected InvariantError, got %T: %v", err, err)
	}
}

func TestMaterialize_OrdersByDescendingProbability(t *testing.T) {
	branches := []branch{
		{prob: 0.1, instrs: []battle.Instruction{dmgInstr(10)}},
		{prob: 0.6, instrs: []battle.Instruction{dmgInstr(20)}},
		{prob: 0.3, instrs: []battle.Instruction{dmgInstr(30)}},
	}
	sets, err := materialize(branches)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 1; i < len(sets); i++ {
		if sets[i].Percentage > sets[i-1].Percentage {
			t.Fatalf("sets must be ordered by descending percentage")
		}
	}
}
