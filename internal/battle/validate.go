package battle

import "fmt"

// ValidationError identifies the offending field of a client-supplied value.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Validate checks the structural invariants of a battle state. It is called
// before a session is created and before every wholesale state replacement:
// replacement is all-or-nothing, so a state that fails here must never
// become authoritative.
func (st *State) Validate() error {
	// Turn resolution acts on a single active slot per side, so multi-slot
	// formats cannot become authoritative state.
	if st.Format.ActivePokemonCount != 1 {
		return &ValidationError{Field: "format.active_pokemon_count", Reason: "only formats with one active slot per side are supported"}
	}
	if st.Format.FormatType == "" {
		return &ValidationError{Field: "format.format_type", Reason: "missing"}
	}
	if err := validateSide("side_one", &st.SideOne, st.Format.ActivePokemonCount); err != nil {
		return err
	}
	return validateSide("side_two", &st.SideTwo, st.Format.ActivePokemonCount)
}

func validateSide(field string, s *Side, activeCount int) error {
	if len(s.Pokemon) == 0 {
		return &ValidationError{Field: field + ".pokemon", Reason: "roster is empty"}
	}
	if len(s.ActivePokemonIndices) != activeCount {
		return &ValidationError{
			Field:  field + ".active_pokemon_indices",
			Reason: fmt.Sprintf("expected %d active slots, got %d", activeCount, len(s.ActivePokemonIndices)),
		}
	}
	seen := make(map[int]bool, len(s.ActivePokemonIndices))
	for slot, idx := range s.ActivePokemonIndices {
		if idx < 0 || idx >= len(s.Pokemon) {
			return &ValidationError{
				Field:  fmt.Sprintf("%s.active_pokemon_indices[%d]", field, slot),
				Reason: fmt.Sprintf("index %d out of roster range", idx),
			}
		}
		if seen[idx] {
			return &ValidationError{
				Field:  fmt.Sprintf("%s.active_pokemon_indices[%d]", field, slot),
				Reason: fmt.Sprintf("roster index %d active in more than one slot", idx),
			}
		}
		seen[idx] = true
	}
	for i := range s.Pokemon {
		if err := validatePokemon(fmt.Sprintf("%s.pokemon[%d]", field, i), &s.Pokemon[i]); err != nil {
			return err
		}
	}
	return nil
}

func validatePokemon(field string, p *Pokemon) error {
	if p.Species == "" {
		return &ValidationError{Field: field + ".species", Reason: "missing species"}
	}
	if p.Level < 1 || p.Level > 100 {
		return &ValidationError{Field: field + ".level", Reason: "level must be 1-100"}
	}
	if p.MaxHP < 1 {
		return &ValidationError{Field: field + ".max_hp", Reason: "must be positive"}
	}
	if p.HP < 0 || p.HP > p.MaxHP {
		return &ValidationError{Field: field + ".hp", Reason: "out of 0..max_hp range"}
	}
	if len(p.Moves) == 0 || len(p.Moves) > 4 {
		return &ValidationError{Field: field + ".moves", Reason: "move set must have 1-4 moves"}
	}
	if len(p.IVs) != 0 && len(p.IVs) != 6 {
		return &ValidationError{Field: field + ".ivs", Reason: "expected 6 values"}
	}
	for i, iv := range p.IVs {
		if iv < 0 || iv > 31 {
			return &ValidationError{Field: fmt.Sprintf("%s.ivs[%d]", field, i), Reason: "IV must be 0-31"}
		}
	}
	if len(p.EVs) != 0 && len(p.EVs) != 6 {
		return &ValidationError{Field: field + ".evs", Reason: "expected 6 values"}
	}
	evSum := 0
	for i, ev := range p.EVs {
		if ev < 0 || ev > 252 {
			return &ValidationError{Field: fmt.Sprintf("%s.evs[%d]", field, i), Reason: "EV must be 0-252"}
		}
		evSum += ev
	}
	if evSum > 510 {
		return &ValidationError{Field: field + ".evs", Reason: "EV total exceeds 510"}
	}
	return nil
}
