package engine

import (
	"github.com/mingu600/tapu-simu/internal/battle"
	"github.com/mingu600/tapu-simu/internal/dex"
)

const (
	critChance     = 1.0 / 24.0
	critMultiplier = 1.5
	stabMultiplier = 1.5
)

// calculateDamage computes the deterministic damage of one hit of a move.
// The standard damage formula with STAB, type effectiveness, burn and
// screen modifiers; no random damage roll, since every distinct outcome
// must surface as an explicit branch and the roll range is not one of the
// modeled chance sources.
func calculateDamage(st *battle.State, attacker, defender *battle.Pokemon, m *battle.Move, crit bool) int {
	if !m.IsDamaging() {
		return 0
	}
	if dex.IsImmune(m.MoveType, defender.Types) {
		return 0
	}

	var atk, def int
	if m.Category == battle.CategoryPhysical {
		atk = attacker.EffectiveStat(battle.StatAttack)
		def = defender.EffectiveStat(battle.StatDefense)
	} else {
		atk = attacker.EffectiveStat(battle.StatSpecialAttack)
		def = defender.EffectiveStat(battle.StatSpecialDefense)
	}
	if crit {
		// A critical hit ignores the attacker's negative and the defender's
		// positive stat stages.
		if m.Category == battle.CategoryPhysical {
			atk = maxInt(atk, attacker.Stats.Attack)
			def = minInt(def, defender.Stats.Defense)
		} else {
			atk = maxInt(atk, attacker.Stats.SpecialAttack)
			def = minInt(def, defender.Stats.SpecialDefense)
		}
	}

	base := (2*attacker.Level/5+2)*m.BasePower*atk/def/50 + 2

	mult := dex.TypeEffectiveness(m.MoveType, defender.Types)
	for _, t := range attacker.Types {
		if dex.Key(t) == dex.Key(m.MoveType) {
			mult *= stabMultiplier
			break
		}
	}
	if crit {
		mult *= critMultiplier
	}
	if attacker.Status == battle.StatusBurn && m.Category == battle.CategoryPhysical {
		mult *= 0.5
	}
	if !crit {
		// Screens halve the matching category; crits ignore them.
		conds := defenderSideConditions(st, defender)
		if m.Category == battle.CategoryPhysical && conds[battle.ConditionReflect] > 0 {
			mult *= 0.5
		}
		if m.Category == battle.CategorySpecial && conds[battle.ConditionLightScreen] > 0 {
			mult *= 0.5
		}
	}

	dmg := int(float64(base) * mult)
	if dmg < 1 && mult > 0 {
		dmg = 1
	}
	return dmg
}

// defenderSideConditions locates the side conditions protecting the
// defending Pokemon by identity.
func defenderSideConditions(st *battle.State, defender *battle.Pokemon) map[string]int {
	for _, ref := range []battle.SideRef{battle.SideOne, battle.SideTwo} {
		side := st.Side(ref)
		for i := range side.Pokemon {
			if &side.Pokemon[i] == defender {
				return side.SideConditions
			}
		}
	}
	return nil
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
