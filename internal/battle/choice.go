package battle

import "fmt"

// ChoiceType tags the variant of a submitted choice.
type ChoiceType string

const (
	ChoiceMove   ChoiceType = "move"
	ChoiceSwitch ChoiceType = "switch"
	ChoiceNone   ChoiceType = "none"
)

// Choice is one side's submitted action for a turn: use a move against
// target positions, switch to a roster member, or do nothing.
type Choice struct {
	Type            ChoiceType `json:"choice_type"`
	MoveIndex       *int       `json:"move_index"`
	TargetPositions []Position `json:"target_positions"`
	PokemonIndex    *int       `json:"pokemon_index"`
}

// NewMoveChoice builds a move choice for the given move slot and targets.
func NewMoveChoice(moveIndex int, targets ...Position) Choice {
	idx := moveIndex
	return Choice{Type: ChoiceMove, MoveIndex: &idx, TargetPositions: targets}
}

// NewSwitchChoice builds a switch choice to the given roster index.
func NewSwitchChoice(pokemonIndex int) Choice {
	idx := pokemonIndex
	return Choice{Type: ChoiceSwitch, PokemonIndex: &idx}
}

// NewNoneChoice builds a no-op choice.
func NewNoneChoice() Choice { return Choice{Type: ChoiceNone} }

// IsSwitch reports whether the choice is a switch action.
func (c *Choice) IsSwitch() bool { return c.Type == ChoiceSwitch }

// IsMove reports whether the choice is a move action.
func (c *Choice) IsMove() bool { return c.Type == ChoiceMove }

// ValidateFor checks a choice against the state of the side submitting it.
// Field names in errors follow the wire payload so clients can surface the
// offending input.
func (c *Choice) ValidateFor(st *State, side SideRef, field string) error {
	s := st.Side(side)
	switch c.Type {
	case ChoiceMove:
		if c.MoveIndex == nil {
			return &ValidationError{Field: field + ".move_index", Reason: "required for move choices"}
		}
		active := s.ActiveAt(0)
		if active == nil {
			return &ValidationError{Field: field, Reason: "side has no active pokemon"}
		}
		if active.IsFainted() {
			return &ValidationError{Field: field + ".choice_type", Reason: "active pokemon fainted; a switch is required"}
		}
		if *c.MoveIndex < 0 || *c.MoveIndex >= len(active.Moves) {
			return &ValidationError{
				Field:  field + ".move_index",
				Reason: fmt.Sprintf("index %d out of range for %d known moves", *c.MoveIndex, len(active.Moves)),
			}
		}
		for i, pos := range c.TargetPositions {
			if pos.Side != SideOne && pos.Side != SideTwo {
				return &ValidationError{
					Field:  fmt.Sprintf("%s.target_positions[%d].side", field, i),
					Reason: fmt.Sprintf("unknown side %q", pos.Side),
				}
			}
			if pos.Slot < 0 || pos.Slot >= st.Format.ActivePokemonCount {
				return &ValidationError{
					Field:  fmt.Sprintf("%s.target_positions[%d].slot", field, i),
					Reason: fmt.Sprintf("slot %d out of range", pos.Slot),
				}
			}
		}
	case ChoiceSwitch:
		if c.PokemonIndex == nil {
			return &ValidationError{Field: field + ".pokemon_index", Reason: "required for switch choices"}
		}
		idx := *c.PokemonIndex
		if idx < 0 || idx >= len(s.Pokemon) {
			return &ValidationError{
				Field:  field + ".pokemon_index",
				Reason: fmt.Sprintf("index %d out of roster range", idx),
			}
		}
		for _, active := range s.ActivePokemonIndices {
			if active == idx {
				return &ValidationError{Field: field + ".pokemon_index", Reason: "pokemon is already active"}
			}
		}
		if s.Pokemon[idx].IsFainted() {
			return &ValidationError{Field: field + ".pokemon_index", Reason: "cannot switch to a fainted pokemon"}
		}
	case ChoiceNone:
		// always legal
	default:
		return &ValidationError{Field: field + ".choice_type", Reason: fmt.Sprintf("unknown choice type %q", c.Type)}
	}
	return nil
}
