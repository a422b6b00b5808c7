package engine

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/mingu600/tapu-simu/internal/battle"
)

func TestGenerateInstructions_CritBranchesBothSides(t *testing.T) {
	one := sideWith(testPokemon("Garchomp", []string{"dragon", "ground"}, 200, 120, 100, 102,
		physicalMove("Return", 80, 100)))
	two := sideWith(testPokemon("Milotic", []string{"water"}, 200, 120, 100, 81,
		physicalMove("Return", 80, 100)))
	st := singlesState(one, two)

	sets, err := GenerateInstructions(st, battle.NewMoveChoice(0), battle.NewMoveChoice(0))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Two independent crit rolls: 2x2 distinct outcomes.
	if len(sets) != 4 {
		t.Fatalf("expected 4 instruction sets, got %d", len(sets))
	}
	if diff := math.Abs(totalPercentage(sets) - 100.0); diff > 1e-9 {
		t.Fatalf("percentages must sum to 100, off by %g", diff)
	}
	// Sets are ordered by descending probability; no-crit/no-crit leads.
	want := math.Pow(23.0/24.0, 2) * 100
	if math.Abs(sets[0].Percentage-want) > 1e-9 {
		t.Fatalf("top set percentage = %.6f, want %.6f", sets[0].Percentage, want)
	}
	// Level 50, 80 BP, 120 atk vs 100 def, neutral: 44 damage, 66 on a crit.
	dmg, ok := firstDamageAmount(sets[0])
	if !ok {
		t.Fatalf("top set has no damage instruction")
	}
	if dmg != 44 {
		t.Fatalf("non-crit damage = %d, want 44", dmg)
	}
}

func TestGenerateInstructions_SwitchResolvesBeforeDamage(t *testing.T) {
	one := sideWith(
		testPokemon("Garchomp", []string{"dragon", "ground"}, 200, 120, 100, 102,
			physicalMove("Return", 80, 100)),
		testPokemon("Slowbro", []string{"water", "psychic"}, 180, 90, 150, 30,
			physicalMove("Return", 80, 100)),
	)
	two := sideWith(testPokemon("Milotic", []string{"water"}, 200, 120, 100, 81,
		physicalMove("Return", 80, 100)))
	st := singlesState(one, two)

	sets, err := GenerateInstructions(st, battle.NewSwitchChoice(1), battle.NewMoveChoice(0))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// The switch is deterministic; only the attacker's crit roll branches.
	if len(sets) != 2 {
		t.Fatalf("expected 2 instruction sets, got %d", len(sets))
	}
	wantTop := 23.0 / 24.0 * 100
	if math.Abs(sets[0].Percentage-wantTop) > 1e-9 {
		t.Fatalf("top set percentage = %.6f, want %.6f", sets[0].Percentage, wantTop)
	}

	for i, set := range sets {
		if len(set.Instructions) == 0 || set.Instructions[0].Kind != battle.InstrSwitch {
			t.Fatalf("set %d must start with the switch instruction", i)
		}
	}
	// Damage must be computed against the switched-in Slowbro (150 def),
	// not the Garchomp that left: 30 non-crit, 45 crit.
	if dmg, _ := firstDamageAmount(sets[0]); dmg != 30 {
		t.Fatalf("non-crit damage vs switched-in defender = %d, want 30", dmg)
	}
	if dmg, _ := firstDamageAmount(sets[1]); dmg != 45 {
		t.Fatalf("crit damage vs switched-in defender = %d, want 45", dmg)
	}
	for _, set := range sets {
		for _, in := range set.Instructions {
			if in.Kind == battle.InstrPositionDamage && in.Target.Side != battle.SideOne {
				t.Fatalf("damage should land on side one, got %s", in.Target)
			}
		}
	}
}

func TestGenerateInstructions_AccuracyBranch(t *testing.T) {
	one := sideWith(testPokemon("Garchomp", []string{"dragon", "ground"}, 200, 120, 100, 102,
		physicalMove("Rock Slide", 80, 90)))
	two := sideWith(testPokemon("Milotic", []string{"water"}, 200, 120, 100, 81,
		physicalMove("Return", 80, 100)))
	st := singlesState(one, two)

	sets, err := GenerateInstructions(st, battle.NewMoveChoice(0), battle.NewNoneChoice())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// hit/no-crit, miss, hit/crit.
	if len(sets) != 3 {
		t.Fatalf("expected 3 instruction sets, got %d", len(sets))
	}
	wantPcts := []float64{86.25, 10.0, 3.75}
	for i, want := range wantPcts {
		if math.Abs(sets[i].Percentage-want) > 1e-9 {
			t.Fatalf("set %d percentage = %.6f, want %.6f", i, sets[i].Percentage, want)
		}
	}
}

func TestGenerateInstructions_BurnHalvesPhysicalAndTicks(t *testing.T) {
	burned := testPokemon("Garchomp", []string{"dragon", "ground"}, 200, 120, 100, 102,
		physicalMove("Return", 80, 100))
	burned.Status = battle.StatusBurn
	one := sideWith(burned)
	two := sideWith(testPokemon("Milotic", []string{"water"}, 200, 120, 100, 81,
		physicalMove("Return", 80, 100)))
	st := singlesState(one, two)

	sets, err := GenerateInstructions(st, battle.NewMoveChoice(0), battle.NewNoneChoice())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(sets) != 2 {
		t.Fatalf("expected 2 instruction sets, got %d", len(sets))
	}
	// 44 halved by burn; crit multiplies after: 33.
	if dmg, _ := firstDamageAmount(sets[0]); dmg != 22 {
		t.Fatalf("burned physical damage = %d, want 22", dmg)
	}
	if dmg, _ := firstDamageAmount(sets[1]); dmg != 33 {
		t.Fatalf("burned crit damage = %d, want 33", dmg)
	}
	// Every branch ends with the burn residual on the user: 200/16 = 12.
	for i, set := range sets {
		last := set.Instructions[len(set.Instructions)-1]
		if last.Kind != battle.InstrPositionDamage || last.Target.Side != battle.SideOne || last.Amount != 12 {
			t.Fatalf("set %d missing burn residual, last instruction: %+v", i, last)
		}
	}
}

func TestGenerateInstructions_ImmunityIsDeterministic(t *testing.T) {
	one := sideWith(testPokemon("Snorlax", []string{"normal"}, 240, 110, 65, 30,
		physicalMove("Body Slam", 85, 100)))
	two := sideWith(testPokemon("Gengar", []string{"ghost", "poison"}, 160, 65, 60, 110,
		physicalMove("Shadow Claw", 70, 100)))
	st := singlesState(one, two)

	sets, err := GenerateInstructions(st, battle.NewMoveChoice(0), battle.NewNoneChoice())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Normal vs ghost cannot connect: no chance sources, one certain set.
	if len(sets) != 1 {
		t.Fatalf("expected a single set for an immune target, got %d", len(sets))
	}
	if math.Abs(sets[0].Percentage-100.0) > 1e-9 {
		t.Fatalf("single set percentage = %.6f, want 100", sets[0].Percentage)
	}
}

func TestGenerateInstructions_DoesNotMutateInput(t *testing.T) {
	one := sideWith(testPokemon("Garchomp", []string{"dragon", "ground"}, 200, 120, 100, 102,
		physicalMove("Return", 80, 100)))
	two := sideWith(testPokemon("Milotic", []string{"water"}, 200, 120, 100, 81,
		physicalMove("Return", 80, 100)))
	st := singlesState(one, two)

	before, err := json.Marshal(st)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if _, err := GenerateInstructions(st, battle.NewMoveChoice(0), battle.NewMoveChoice(0)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	after, err := json.Marshal(st)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(before) != string(after) {
		t.Fatalf("state was mutated during generation")
	}
}

func TestGenerateInstructions_RejectsIllegalChoice(t *testing.T) {
	one := sideWith(testPokemon("Garchomp", []string{"dragon", "ground"}, 200, 120, 100, 102,
		physicalMove("Return", 80, 100)))
	two := sideWith(testPokemon("Milotic", []string{"water"}, 200, 120, 100, 81,
		physicalMove("Return", 80, 100)))
	st := singlesState(one, two)

	_, err := GenerateInstructions(st, battle.NewMoveChoice(3), battle.NewMoveChoice(0))
	if err == nil {
		t.Fatalf("expected validation error for out-of-range move index")
	}
	var vErr *battle.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got %T: %v", err, err)
	}
}
