package engine

import (
	"reflect"
	"testing"

	"github.com/mingu600/tapu-simu/internal/battle"
)

func TestLegalOptions_MovesAndSwitches(t *testing.T) {
	one := sideWith(
		testPokemon("Garchomp", []string{"dragon", "ground"}, 200, 120, 100, 102,
			physicalMove("Return", 80, 100),
			physicalMove("Rock Slide", 75, 90)),
		testPokemon("Slowbro", []string{"water", "psychic"}, 180, 90, 150, 30,
			physicalMove("Return", 80, 100)),
	)
	two := sideWith(testPokemon("Milotic", []string{"water"}, 200, 120, 100, 81,
		physicalMove("Return", 80, 100)))
	st := singlesState(one, two)

	opts := LegalOptions(st, battle.SideOne)
	// 2 moves + 1 switch.
	if len(opts) != 3 {
		t.Fatalf("expected 3 options, got %d", len(opts))
	}
	moves, switches := 0, 0
	for _, o := range opts {
		switch {
		case o.IsMove():
			moves++
		case o.IsSwitch():
			switches++
		}
	}
	if moves != 2 || switches != 1 {
		t.Fatalf("got %d moves and %d switches, want 2 and 1", moves, switches)
	}
}

func TestLegalOptions_FaintedActiveForcesSwitch(t *testing.T) {
	fainted := testPokemon("Garchomp", []string{"dragon", "ground"}, 200, 120, 100, 102,
		physicalMove("Return", 80, 100))
	fainted.HP = 0
	one := sideWith(
		fainted,
		testPokemon("Slowbro", []string{"water", "psychic"}, 180, 90, 150, 30,
			physicalMove("Return", 80, 100)),
	)
	two := sideWith(testPokemon("Milotic", []string{"water"}, 200, 120, 100, 81,
		physicalMove("Return", 80, 100)))
	st := singlesState(one, two)

	opts := LegalOptions(st, battle.SideOne)
	if len(opts) != 1 {
		t.Fatalf("expected exactly the forced switch, got %d options", len(opts))
	}
	if !opts[0].IsSwitch() || *opts[0].PokemonIndex != 1 {
		t.Fatalf("expected switch to roster index 1, got %+v", opts[0])
	}
}

func TestLegalOptions_SkipsExhaustedMoves(t *testing.T) {
	empty := physicalMove("Return", 80, 100)
	empty.PP = 0
	one := sideWith(testPokemon("Garchomp", []string{"dragon", "ground"}, 200, 120, 100, 102,
		empty,
		physicalMove("Rock Slide", 75, 90)))
	two := sideWith(testPokemon("Milotic", []string{"water"}, 200, 120, 100, 81,
		physicalMove("Return", 80, 100)))
	st := singlesState(one, two)

	opts := LegalOptions(st, battle.SideOne)
	for _, o := range opts {
		if o.IsMove() && *o.MoveIndex == 0 {
			t.Fatalf("move with 0 PP must not be offered")
		}
	}
}

func TestLegalOptions_PureFunctionOfState(t *testing.T) {
	one := sideWith(testPokemon("Garchomp", []string{"dragon", "ground"}, 200, 120, 100, 102,
		physicalMove("Return", 80, 100)))
	two := sideWith(testPokemon("Milotic", []string{"water"}, 200, 120, 100, 81,
		physicalMove("Return", 80, 100)))
	st := singlesState(one, two)

	first := LegalOptions(st, battle.SideOne)
	second := LegalOptions(st, battle.SideOne)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("repeated enumeration against the same state must match")
	}
}
