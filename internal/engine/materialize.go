package engine

import (
	"fmt"
	"math"
	"sort"

	"github.com/mingu600/tapu-simu/internal/battle"
)

const (
	// pruneThresholdPct: leaves below this percentage may be pruned; their
	// mass is redistributed proportionally across the survivors.
	pruneThresholdPct = 0.01
	// sumTolerancePct: materialized percentages must sum to 100 within this
	// tolerance. A violation is a branch-modeling bug, not a rounding issue.
	sumTolerancePct = 0.1
)

// InvariantError reports a broken internal invariant during turn
// resolution. It is never caused by client input.
type InvariantError struct {
	Reason string
}

func (e *InvariantError) Error() string {
	return "turn resolution invariant violated: " + e.Reason
}

// materialize converts expanded branches into the client-facing instruction
// sets: structurally identical instruction sequences are merged with their
// probabilities summed, negligible leaves are pruned with proportional
// redistribution, and the result is ordered by descending probability.
func materialize(branches []branch) ([]battle.InstructionSet, error) {
	sets := make([]battle.InstructionSet, 0, len(branches))
	for _, br := range branches {
		pct := br.prob * 100
		merged := false
		for i := range sets {
			if battle.EqualInstructions(sets[i].Instructions, br.instrs) {
				sets[i].Percentage += pct
				merged = true
				break
			}
		}
		if !merged {
			sets = append(sets, battle.InstructionSet{Percentage: pct, Instructions: br.instrs})
		}
	}

	sum := 0.0
	for _, s := range sets {
		sum += s.Percentage
	}
	if math.Abs(sum-100.0) > sumTolerancePct {
		return nil, &InvariantError{Reason: fmt.Sprintf("probabilities sum to %.4f%%, expected 100%%", sum)}
	}

	kept := sets[:0]
	prunedMass := 0.0
	for _, s := range sets {
		if s.Percentage < pruneThresholdPct {
			prunedMass += s.Percentage
			continue
		}
		kept = append(kept, s)
	}
	if len(kept) == 0 {
		return nil, &InvariantError{Reason: "all branches fell below the pruning threshold"}
	}
	if prunedMass > 0 {
		scale := 100.0 / (sum - prunedMass)
		for i := range kept {
			kept[i].Percentage *= scale
		}
	}

	sort.SliceStable(kept, func(i, j int) bool { return kept[i].Percentage > kept[j].Percentage })
	return kept, nil
}
