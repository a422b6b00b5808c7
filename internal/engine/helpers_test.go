package engine

import (
	"github.com/mingu600/tapu-simu/internal/battle"
)

// Test fixtures: compact builders for singles states with fully explicit
// stats so damage numbers in assertions are easy to derive by hand.

func physicalMove(name string, power, accuracy int) battle.Move {
	return battle.Move{
		Name:      name,
		MoveType:  "normal",
		Category:  battle.CategoryPhysical,
		BasePower: power,
		Accuracy:  accuracy,
		PP:        16,
		MaxPP:     16,
		Target:    battle.TargetNormal,
	}
}

func testPokemon(species string, types []string, hp, atk, def, spe int, moves ...battle.Move) battle.Pokemon {
	return battle.Pokemon{
		Species: species,
		Level:   50,
		Types:   types,
		HP:      hp,
		MaxHP:   hp,
		Stats: battle.Stats{
			HP:             hp,
			Attack:         atk,
			Defense:        def,
			SpecialAttack:  atk,
			SpecialDefense: def,
			Speed:          spe,
		},
		Moves:   moves,
		Ability: "pressure",
	}
}

func sideWith(mons ...battle.Pokemon) battle.Side {
	return battle.Side{
		Pokemon:              mons,
		ActivePokemonIndices: []int{0},
		SideConditions:       map[string]int{},
	}
}

func singlesState(one, two battle.Side) *battle.State {
	return &battle.State{
		Format: battle.Format{
			Name:               "gen9ou",
			FormatType:         battle.FormatSingles,
			Generation:         "9",
			ActivePokemonCount: 1,
		},
		SideOne: one,
		SideTwo: two,
		Turn:    1,
	}
}

func totalPercentage(sets []battle.InstructionSet) float64 {
	sum := 0.0
	for _, s := range sets {
		sum += s.Percentage
	}
	return sum
}

func firstDamageAmount(set battle.InstructionSet) (int, bool) {
	for _, in := range set.Instructions {
		if in.Kind == battle.InstrPositionDamage {
			return in.Amount, true
		}
	}
	return 0, false
}
