package battle

import (
	"encoding/json"
	"fmt"
)

// InstructionKind tags the variant of an atomic state-mutation instruction.
type InstructionKind string

const (
	InstrPositionDamage InstructionKind = "PositionDamage"
	InstrPositionHeal   InstructionKind = "PositionHeal"
	InstrSwitch         InstructionKind = "Switch"
	InstrApplyStatus    InstructionKind = "ApplyStatus"
	InstrStatChange     InstructionKind = "StatChange"
	InstrFaint          InstructionKind = "Faint"
	InstrSideCondition  InstructionKind = "SideCondition"
	InstrOther          InstructionKind = "Other"
)

// Instruction is one atomic mutation of the battle state. It is a flat
// tagged variant: Kind selects which fields are meaningful. All fields are
// comparable values so structurally identical instructions compare equal
// with ==, which the materializer relies on when merging branches.
type Instruction struct {
	Kind InstructionKind

	// PositionDamage / PositionHeal / ApplyStatus / StatChange / Faint
	Target Position
	Amount int

	// Switch
	Side      SideRef
	Slot      int
	FromIndex int
	ToIndex   int

	// ApplyStatus
	Status Status

	// StatChange
	Stat   string
	Stages int

	// SideCondition
	Condition string
	Delta     int

	// Other
	Description string
}

// Describe renders a human-readable summary of the instruction.
func (in *Instruction) Describe() string {
	switch in.Kind {
	case InstrPositionDamage:
		return fmt.Sprintf("Deal %d damage to %s", in.Amount, in.Target)
	case InstrPositionHeal:
		return fmt.Sprintf("Heal %d HP at %s", in.Amount, in.Target)
	case InstrSwitch:
		return fmt.Sprintf("Switch side %s slot %d: roster %d -> %d", in.Side, in.Slot, in.FromIndex, in.ToIndex)
	case InstrApplyStatus:
		return fmt.Sprintf("Apply %s to %s", in.Status, in.Target)
	case InstrStatChange:
		return fmt.Sprintf("Change %s by %+d at %s", in.Stat, in.Stages, in.Target)
	case InstrFaint:
		return fmt.Sprintf("Faint at %s", in.Target)
	case InstrSideCondition:
		return fmt.Sprintf("Side condition %s %+d on side %s", in.Condition, in.Delta, in.Side)
	default:
		return in.Description
	}
}

// MarshalJSON renders the wire representation consumed by battle clients:
// an instruction type, a description and a details object with the
// type-specific parameters.
func (in Instruction) MarshalJSON() ([]byte, error) {
	type wire struct {
		InstructionType InstructionKind        `json:"instruction_type"`
		Description     string                 `json:"description"`
		TargetPosition  *Position              `json:"target_position,omitempty"`
		Details         map[string]interface{} `json:"details"`
	}
	w := wire{InstructionType: in.Kind, Description: in.Describe(), Details: map[string]interface{}{}}
	switch in.Kind {
	case InstrPositionDamage:
		t := in.Target
		w.TargetPosition = &t
		w.Details["damage_amount"] = in.Amount
	case InstrPositionHeal:
		t := in.Target
		w.TargetPosition = &t
		w.Details["heal_amount"] = in.Amount
	case InstrSwitch:
		w.Details["side"] = in.Side
		w.Details["slot"] = in.Slot
		w.Details["from_index"] = in.FromIndex
		w.Details["to_index"] = in.ToIndex
	case InstrApplyStatus:
		t := in.Target
		w.TargetPosition = &t
		w.Details["status"] = in.Status
	case InstrStatChange:
		t := in.Target
		w.TargetPosition = &t
		w.Details["stat"] = in.Stat
		w.Details["stages"] = in.Stages
	case InstrFaint:
		t := in.Target
		w.TargetPosition = &t
	case InstrSideCondition:
		w.Details["side"] = in.Side
		w.Details["condition"] = in.Condition
		w.Details["delta"] = in.Delta
	}
	return json.Marshal(w)
}

// InstructionSet is one deterministic, fully-ordered outcome of resolving a
// turn, tagged with its probability as a percentage. All sets produced for
// a single turn sum to 100 within floating tolerance.
type InstructionSet struct {
	Percentage   float64       `json:"percentage"`
	Instructions []Instruction `json:"instructions"`
}

// EqualInstructions reports whether two instruction sequences are
// structurally identical: same instructions, same order, same parameters.
func EqualInstructions(a, b []Instruction) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
