package engine

import (
	"testing"

	"github.com/mingu600/tapu-simu/internal/battle"
)

func TestSwitchInstructions_EntryHazards(t *testing.T) {
	one := sideWith(
		testPokemon("Garchomp", []string{"dragon", "ground"}, 200, 120, 100, 102,
			physicalMove("Return", 80, 100)),
		testPokemon("Slowbro", []string{"water", "psychic"}, 160, 90, 150, 30,
			physicalMove("Return", 80, 100)),
	)
	one.SideConditions[battle.ConditionStealthRock] = 1
	one.SideConditions[battle.ConditionSpikes] = 1
	two := sideWith(testPokemon("Milotic", []string{"water"}, 200, 120, 100, 81,
		physicalMove("Return", 80, 100)))
	st := singlesState(one, two)

	instrs := switchInstructions(st, battle.SideOne, 1)
	if len(instrs) != 3 {
		t.Fatalf("expected switch + rocks + spikes, got %d instructions", len(instrs))
	}
	if instrs[0].Kind != battle.InstrSwitch {
		t.Fatalf("first instruction must be the switch")
	}
	// Neutral Stealth Rock: 160/8 = 20. One layer of Spikes: 160/8 = 20.
	if instrs[1].Kind != battle.InstrPositionDamage || instrs[1].Amount != 20 {
		t.Fatalf("stealth rock damage = %+v, want 20", instrs[1])
	}
	if instrs[2].Kind != battle.InstrPositionDamage || instrs[2].Amount != 20 {
		t.Fatalf("spikes damage = %+v, want 20", instrs[2])
	}
}

func TestSwitchInstructions_FlyingAvoidsSpikes(t *testing.T) {
	one := sideWith(
		testPokemon("Garchomp", []string{"dragon", "ground"}, 200, 120, 100, 102,
			physicalMove("Return", 80, 100)),
		testPokemon("Corviknight", []string{"flying", "steel"}, 200, 110, 105, 67,
			physicalMove("Return", 80, 100)),
	)
	one.SideConditions[battle.ConditionSpikes] = 3
	two := sideWith(testPokemon("Milotic", []string{"water"}, 200, 120, 100, 81,
		physicalMove("Return", 80, 100)))
	st := singlesState(one, two)

	instrs := switchInstructions(st, battle.SideOne, 1)
	if len(instrs) != 1 || instrs[0].Kind != battle.InstrSwitch {
		t.Fatalf("flying switch-in must take no spikes damage, got %+v", instrs)
	}
}

func TestSwitchInstructions_HazardsCanFaint(t *testing.T) {
	// Fire/flying takes 4x rocks: 160/2 = 80, well past its remaining 20 HP.
	frail := testPokemon("Charizard", []string{"fire", "flying"}, 160, 104, 78, 100,
		physicalMove("Return", 80, 100))
	frail.HP = 20
	one := sideWith(
		testPokemon("Garchomp", []string{"dragon", "ground"}, 200, 120, 100, 102,
			physicalMove("Return", 80, 100)),
		frail,
	)
	one.SideConditions[battle.ConditionStealthRock] = 1
	two := sideWith(testPokemon("Milotic", []string{"water"}, 200, 120, 100, 81,
		physicalMove("Return", 80, 100)))
	st := singlesState(one, two)

	instrs := switchInstructions(st, battle.SideOne, 1)
	last := instrs[len(instrs)-1]
	if last.Kind != battle.InstrFaint {
		t.Fatalf("lethal hazard damage must end in a faint, got %+v", instrs)
	}
}
