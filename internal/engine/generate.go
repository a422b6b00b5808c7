// Package engine is the turn resolution core: given the two simultaneous
// side choices and the current battle state it deterministically enumerates
// every possible probabilistic outcome of the turn as a weighted list of
// instruction sets, and applies a chosen set back onto the state.
package engine

import (
	"github.com/mingu600/tapu-simu/internal/battle"
)

// GenerateInstructions resolves one turn: it validates both choices against
// the current state, orders the actions, expands every probabilistic branch
// and materializes the merged instruction sets. The passed state is never
// mutated; expansion works on clones.
func GenerateInstructions(st *battle.State, choiceOne, choiceTwo battle.Choice) ([]battle.InstructionSet, error) {
	if err := choiceOne.ValidateFor(st, battle.SideOne, "side_one_choice"); err != nil {
		return nil, err
	}
	if err := choiceTwo.ValidateFor(st, battle.SideTwo, "side_two_choice"); err != nil {
		return nil, err
	}
	actions := OrderActions(st, choiceOne, choiceTwo)
	branches := expandTurn(st, actions)
	return materialize(branches)
}
