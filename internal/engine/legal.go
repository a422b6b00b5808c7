package engine

import (
	"github.com/mingu600/tapu-simu/internal/battle"
)

// LegalOptions enumerates every choice a side may legally submit for the
// current turn. It is a pure function of the state: callers must re-invoke
// it after any apply or state replacement rather than caching results
// across mutations.
func LegalOptions(st *battle.State, side battle.SideRef) []battle.Choice {
	s := st.Side(side)
	options := make([]battle.Choice, 0, 8)

	for slot := range s.ActivePokemonIndices {
		active := s.ActiveAt(slot)
		if active == nil {
			continue
		}
		if active.IsFainted() {
			// Forced replacement: only switches are legal.
			return switchOptions(s)
		}
		for i := range active.Moves {
			m := &active.Moves[i]
			if m.PP <= 0 {
				continue
			}
			targets := defaultTargets(st, side, slot, m)
			options = append(options, battle.NewMoveChoice(i, targets...))
		}
	}

	options = append(options, switchOptions(s)...)
	if len(options) == 0 {
		options = append(options, battle.NewNoneChoice())
	}
	return options
}

func switchOptions(s *battle.Side) []battle.Choice {
	out := make([]battle.Choice, 0, len(s.Pokemon))
	for i := range s.Pokemon {
		if s.Pokemon[i].IsFainted() {
			continue
		}
		active := false
		for _, idx := range s.ActivePokemonIndices {
			if idx == i {
				active = true
				break
			}
		}
		if active {
			continue
		}
		out = append(out, battle.NewSwitchChoice(i))
	}
	return out
}

// defaultTargets resolves the standard target set for a move: side-targeting
// moves carry no positions, self-targeting moves target the user, everything
// else targets the opposing slot across from the user. Explicit targets in a
// submitted choice override these.
func defaultTargets(st *battle.State, side battle.SideRef, slot int, m *battle.Move) []battle.Position {
	switch m.Target {
	case battle.TargetAllySide, battle.TargetFoeSide:
		return nil
	case battle.TargetSelf:
		return []battle.Position{{Side: side, Slot: slot}}
	}
	opp := side.Opposite()
	// Prefer the slot directly across; fall back to any occupied, healthy slot.
	if p := st.Side(opp).ActiveAt(slot); p != nil && !p.IsFainted() {
		return []battle.Position{{Side: opp, Slot: slot}}
	}
	for oppSlot := range st.Side(opp).ActivePokemonIndices {
		if p := st.Side(opp).ActiveAt(oppSlot); p != nil && !p.IsFainted() {
			return []battle.Position{{Side: opp, Slot: oppSlot}}
		}
	}
	return []battle.Position{{Side: opp, Slot: slot}}
}
