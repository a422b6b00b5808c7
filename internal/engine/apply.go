package engine

import (
	"fmt"

	"github.com/mingu600/tapu-simu/internal/battle"
)

// ApplyInstructionSet executes every instruction of the chosen set against
// the state, in order, and advances the turn counter. Application is
// atomic: instructions run against a deep copy and the copy only replaces
// the caller's state when every instruction applied cleanly, so a malformed
// set can never leave partial mutations visible.
func ApplyInstructionSet(st *battle.State, set battle.InstructionSet) error {
	work := st.Clone()
	for i, in := range set.Instructions {
		if err := applyInstruction(work, in); err != nil {
			return fmt.Errorf("instruction %d (%s): %w", i, in.Kind, err)
		}
	}
	work.Turn++
	*st = *work
	return nil
}

// applyToState is the non-failing variant used while expanding branches:
// the engine generated these instructions itself against the same state, so
// application errors there would be programming bugs, not input errors.
func applyToState(st *battle.State, instrs []battle.Instruction) {
	for _, in := range instrs {
		_ = applyInstruction(st, in)
	}
}

func applyInstruction(st *battle.State, in battle.Instruction) error {
	switch in.Kind {
	case battle.InstrPositionDamage:
		p := st.PokemonAt(in.Target)
		if p == nil {
			return fmt.Errorf("no pokemon at %s", in.Target)
		}
		if in.Amount < 0 {
			return fmt.Errorf("negative damage %d", in.Amount)
		}
		p.HP -= in.Amount
		if p.HP < 0 {
			p.HP = 0
		}
	case battle.InstrPositionHeal:
		p := st.PokemonAt(in.Target)
		if p == nil {
			return fmt.Errorf("no pokemon at %s", in.Target)
		}
		if in.Amount < 0 {
			return fmt.Errorf("negative heal %d", in.Amount)
		}
		p.HP += in.Amount
		if p.HP > p.MaxHP {
			p.HP = p.MaxHP
		}
	case battle.InstrSwitch:
		side := st.Side(in.Side)
		if in.Slot < 0 || in.Slot >= len(side.ActivePokemonIndices) {
			return fmt.Errorf("slot %d out of range", in.Slot)
		}
		if in.ToIndex < 0 || in.ToIndex >= len(side.Pokemon) {
			return fmt.Errorf("roster index %d out of range", in.ToIndex)
		}
		side.ActivePokemonIndices[in.Slot] = in.ToIndex
	case battle.InstrApplyStatus:
		p := st.PokemonAt(in.Target)
		if p == nil {
			return fmt.Errorf("no pokemon at %s", in.Target)
		}
		p.Status = in.Status
	case battle.InstrStatChange:
		p := st.PokemonAt(in.Target)
		if p == nil {
			return fmt.Errorf("no pokemon at %s", in.Target)
		}
		if p.StatBoosts == nil {
			p.StatBoosts = make(map[string]int)
		}
		v := p.StatBoosts[in.Stat] + in.Stages
		if v > 6 {
			v = 6
		}
		if v < -6 {
			v = -6
		}
		p.StatBoosts[in.Stat] = v
	case battle.InstrFaint:
		p := st.PokemonAt(in.Target)
		if p == nil {
			return fmt.Errorf("no pokemon at %s", in.Target)
		}
		p.HP = 0
	case battle.InstrSideCondition:
		side := st.Side(in.Side)
		if side.SideConditions == nil {
			side.SideConditions = make(map[string]int)
		}
		v := side.SideConditions[in.Condition] + in.Delta
		if v < 0 {
			v = 0
		}
		side.SideConditions[in.Condition] = v
	case battle.InstrOther:
		// descriptive only, no state change
	default:
		return fmt.Errorf("unknown instruction kind %q", in.Kind)
	}
	return nil
}
