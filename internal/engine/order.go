package engine

import (
	"github.com/mingu600/tapu-simu/internal/battle"
)

// Action is one side's choice placed into execution order.
type Action struct {
	Side   battle.SideRef
	Choice battle.Choice
}

// OrderActions determines the sequence in which the two submitted choices
// execute. Switch actions always run before move actions so that a
// switched-in Pokemon's stats are the ones an opposing attack resolves
// against. Among moves, higher priority goes first, then higher effective
// speed. Full ties resolve to side one: a fixed, documented precedence, so
// repeated calls against the same state order identically.
func OrderActions(st *battle.State, choiceOne, choiceTwo battle.Choice) []Action {
	one := Action{Side: battle.SideOne, Choice: choiceOne}
	two := Action{Side: battle.SideTwo, Choice: choiceTwo}

	if choiceOne.IsSwitch() != choiceTwo.IsSwitch() {
		if choiceOne.IsSwitch() {
			return []Action{one, two}
		}
		return []Action{two, one}
	}

	// Both switches or both moves: compare priority (moves only), then speed.
	if choiceOne.IsMove() && choiceTwo.IsMove() {
		p1 := movePriority(st, battle.SideOne, choiceOne)
		p2 := movePriority(st, battle.SideTwo, choiceTwo)
		if p1 != p2 {
			if p1 > p2 {
				return []Action{one, two}
			}
			return []Action{two, one}
		}
	}

	if effectiveSpeed(st, battle.SideTwo) > effectiveSpeed(st, battle.SideOne) {
		return []Action{two, one}
	}
	return []Action{one, two}
}

func movePriority(st *battle.State, side battle.SideRef, c battle.Choice) int {
	if c.MoveIndex == nil {
		return 0
	}
	active := st.Side(side).ActiveAt(0)
	if active == nil || *c.MoveIndex < 0 || *c.MoveIndex >= len(active.Moves) {
		return 0
	}
	return active.Moves[*c.MoveIndex].Priority
}

func effectiveSpeed(st *battle.State, side battle.SideRef) int {
	active := st.Side(side).ActiveAt(0)
	if active == nil {
		return 0
	}
	return active.EffectiveStat(battle.StatSpeed)
}
