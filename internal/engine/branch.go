package engine

import (
	"fmt"

	"github.com/mingu600/tapu-simu/internal/battle"
	"github.com/mingu600/tapu-simu/internal/dex"
)

// multiHitDistribution is the hit-count distribution for multi-hit moves.
var multiHitDistribution = []struct {
	hits int
	prob float64
}{
	{2, 0.35},
	{3, 0.35},
	{4, 0.15},
	{5, 0.15},
}

// outcome is one mutually exclusive result of a single action.
type outcome struct {
	prob   float64
	instrs []battle.Instruction
}

// branch is one leaf of the probabilistic outcome tree for a turn. Each
// branch carries its own evolved copy of the state so later actions resolve
// against the world this branch describes — a post-switch defender, a
// fainted attacker, a consumed screen.
type branch struct {
	prob   float64
	instrs []battle.Instruction
	state  *battle.State
}

// expandTurn expands the ordered actions into the full set of mutually
// exclusive branches. Deterministic actions contribute exactly one outcome
// and therefore never multiply the branch count; only genuinely
// probabilistic sources (crit, miss, hit count, secondary proc) fan out.
func expandTurn(st *battle.State, actions []Action) []branch {
	branches := []branch{{prob: 1, state: st.Clone()}}
	for _, act := range actions {
		next := make([]branch, 0, len(branches)*2)
		for _, br := range branches {
			for _, o := range expandAction(br.state, act) {
				ns := br.state.Clone()
				applyToState(ns, o.instrs)
				instrs := make([]battle.Instruction, 0, len(br.instrs)+len(o.instrs))
				instrs = append(instrs, br.instrs...)
				instrs = append(instrs, o.instrs...)
				next = append(next, branch{prob: br.prob * o.prob, instrs: instrs, state: ns})
			}
		}
		branches = next
	}
	for i := range branches {
		res := residualInstructions(branches[i].state)
		applyToState(branches[i].state, res)
		branches[i].instrs = append(branches[i].instrs, res...)
	}
	return branches
}

// expandAction produces the mutually exclusive outcomes of one action
// against the given state. Outcome probabilities sum to 1.
func expandAction(st *battle.State, act Action) []outcome {
	switch act.Choice.Type {
	case battle.ChoiceSwitch:
		return []outcome{{prob: 1, instrs: switchInstructions(st, act.Side, *act.Choice.PokemonIndex)}}
	case battle.ChoiceMove:
		return expandMove(st, act.Side, act.Choice)
	default:
		return []outcome{{prob: 1}}
	}
}

// switchInstructions materializes a switch plus the entry hazard damage the
// incoming Pokemon takes. A switch is fully deterministic: one outcome.
func switchInstructions(st *battle.State, side battle.SideRef, toIndex int) []battle.Instruction {
	s := st.Side(side)
	from := s.ActivePokemonIndices[0]
	instrs := []battle.Instruction{{
		Kind:      battle.InstrSwitch,
		Side:      side,
		Slot:      0,
		FromIndex: from,
		ToIndex:   toIndex,
	}}
	if toIndex < 0 || toIndex >= len(s.Pokemon) {
		return instrs
	}
	incoming := &s.Pokemon[toIndex]
	pos := battle.Position{Side: side, Slot: 0}
	hp := incoming.HP

	if s.SideConditions[battle.ConditionStealthRock] > 0 {
		frac := dex.TypeEffectiveness("rock", incoming.Types) / 8.0
		dmg := int(float64(incoming.MaxHP) * frac)
		if dmg > 0 {
			dmg = minInt(dmg, hp)
			hp -= dmg
			instrs = append(instrs, battle.Instruction{Kind: battle.InstrPositionDamage, Target: pos, Amount: dmg})
		}
	}
	if layers := s.SideConditions[battle.ConditionSpikes]; layers > 0 && hp > 0 && isGrounded(incoming) {
		denom := []int{8, 6, 4}[minInt(layers, 3)-1]
		dmg := minInt(maxInt(incoming.MaxHP/denom, 1), hp)
		hp -= dmg
		instrs = append(instrs, battle.Instruction{Kind: battle.InstrPositionDamage, Target: pos, Amount: dmg})
	}
	if hp <= 0 {
		instrs = append(instrs, battle.Instruction{Kind: battle.InstrFaint, Target: pos})
	}
	return instrs
}

func isGrounded(p *battle.Pokemon) bool {
	for _, t := range p.Types {
		if dex.Key(t) == "flying" {
			return false
		}
	}
	return true
}

// expandMove expands a move action into its chance branches: accuracy miss,
// critical hit, multi-hit count and secondary proc.
func expandMove(st *battle.State, side battle.SideRef, c battle.Choice) []outcome {
	user := st.Side(side).ActiveAt(0)
	if user == nil || user.IsFainted() {
		// The user went down earlier this turn (entry hazard, faster
		// attacker); its action is void. The faint was already recorded
		// where it happened.
		return []outcome{{prob: 1}}
	}
	if c.MoveIndex == nil || *c.MoveIndex < 0 || *c.MoveIndex >= len(user.Moves) {
		return []outcome{{prob: 1}}
	}
	m := user.Moves[*c.MoveIndex]

	if cond, target := sideConditionFor(&m); cond != "" {
		return []outcome{{prob: 1, instrs: sideConditionInstructions(st, side, cond, target)}}
	}

	hits := hitOutcomes(st, side, user, &m, c.TargetPositions)

	if m.Accuracy > 0 && m.Accuracy < 100 {
		missProb := float64(100-m.Accuracy) / 100.0
		outs := make([]outcome, 0, len(hits)+1)
		for _, h := range hits {
			outs = append(outs, outcome{prob: h.prob * (1 - missProb), instrs: h.instrs})
		}
		outs = append(outs, outcome{prob: missProb, instrs: []battle.Instruction{{
			Kind:        battle.InstrOther,
			Description: fmt.Sprintf("%s missed", m.Name),
		}}})
		return outs
	}
	return hits
}

// sideConditionFor recognizes status moves that set a side-wide condition.
func sideConditionFor(m *battle.Move) (condition string, target string) {
	if m.Category != battle.CategoryStatus {
		return "", ""
	}
	switch dex.Key(m.Name) {
	case battle.ConditionStealthRock:
		return battle.ConditionStealthRock, battle.TargetFoeSide
	case battle.ConditionSpikes:
		return battle.ConditionSpikes, battle.TargetFoeSide
	case battle.ConditionReflect:
		return battle.ConditionReflect, battle.TargetAllySide
	case battle.ConditionLightScreen:
		return battle.ConditionLightScreen, battle.TargetAllySide
	}
	return "", ""
}

func sideConditionInstructions(st *battle.State, side battle.SideRef, cond, target string) []battle.Instruction {
	ref := side
	if target == battle.TargetFoeSide {
		ref = side.Opposite()
	}
	current := st.Side(ref).SideConditions[cond]
	limit := 1
	if cond == battle.ConditionSpikes {
		limit = 3
	}
	if current >= limit {
		return []battle.Instruction{{
			Kind:        battle.InstrOther,
			Description: fmt.Sprintf("%s failed", dex.DisplayName(cond)),
		}}
	}
	return []battle.Instruction{{
		Kind:      battle.InstrSideCondition,
		Side:      ref,
		Condition: cond,
		Delta:     1,
	}}
}

// hitOutcomes enumerates the outcomes of a move that connects. Probabilities
// sum to 1.
func hitOutcomes(st *battle.State, side battle.SideRef, user *battle.Pokemon, m *battle.Move, targets []battle.Position) []outcome {
	targetPos := resolveTarget(st, side, m, targets)
	defender := st.PokemonAt(targetPos)

	if !m.IsDamaging() {
		return []outcome{statusMoveOutcome(st, side, m, targetPos, defender)}
	}

	if defender == nil || defender.IsFainted() {
		return []outcome{{prob: 1, instrs: []battle.Instruction{{
			Kind:        battle.InstrOther,
			Description: fmt.Sprintf("%s had no target", m.Name),
		}}}}
	}
	if calculateDamage(st, user, defender, m, false) == 0 {
		return []outcome{{prob: 1, instrs: []battle.Instruction{{
			Kind:        battle.InstrOther,
			Description: fmt.Sprintf("%s had no effect", m.Name),
		}}}}
	}

	crits := []struct {
		prob float64
		crit bool
	}{
		{1 - critChance, false},
		{critChance, true},
	}
	counts := []struct {
		hits int
		prob float64
	}{{1, 1}}
	if m.MultiHit {
		counts = multiHitDistribution
	}
	procs := []struct {
		prob float64
		proc bool
	}{{1, true}}
	if m.Secondary != nil && m.Secondary.Chance < 100 {
		p := m.Secondary.Chance / 100.0
		procs = []struct {
			prob float64
			proc bool
		}{
			{1 - p, false},
			{p, true},
		}
	}

	userPos := battle.Position{Side: side, Slot: 0}
	outs := make([]outcome, 0, len(crits)*len(counts)*len(procs))
	for _, cr := range crits {
		perHit := calculateDamage(st, user, defender, m, cr.crit)
		for _, cnt := range counts {
			for _, pr := range procs {
				instrs := damageInstructions(user, defender, m, userPos, targetPos, perHit*cnt.hits, pr.proc)
				outs = append(outs, outcome{prob: cr.prob * cnt.prob * pr.prob, instrs: instrs})
			}
		}
	}
	return outs
}

// damageInstructions builds the instruction list for one resolved damaging
// hit: damage, drain/recoil, secondary effect, faints.
func damageInstructions(user, defender *battle.Pokemon, m *battle.Move, userPos, targetPos battle.Position, dmg int, proc bool) []battle.Instruction {
	dmg = minInt(dmg, defender.HP)
	instrs := []battle.Instruction{{Kind: battle.InstrPositionDamage, Target: targetPos, Amount: dmg}}
	targetFaints := dmg >= defender.HP

	if m.Drain > 0 && user.HP < user.MaxHP {
		heal := minInt(maxInt(int(float64(dmg)*m.Drain), 1), user.MaxHP-user.HP)
		instrs = append(instrs, battle.Instruction{Kind: battle.InstrPositionHeal, Target: userPos, Amount: heal})
	}
	userFaints := false
	if m.Recoil > 0 {
		recoil := minInt(maxInt(int(float64(dmg)*m.Recoil), 1), user.HP)
		instrs = append(instrs, battle.Instruction{Kind: battle.InstrPositionDamage, Target: userPos, Amount: recoil})
		userFaints = recoil >= user.HP
	}

	if proc && m.Secondary != nil {
		sec := m.Secondary
		secPos := targetPos
		secTarget := defender
		if sec.Target == "self" {
			secPos = userPos
			secTarget = user
		}
		secFainted := (secTarget == defender && targetFaints) || (secTarget == user && userFaints)
		if !secFainted {
			if in, ok := secondaryInstruction(secTarget, sec, secPos); ok {
				instrs = append(instrs, in)
			}
		}
	}

	if targetFaints {
		instrs = append(instrs, battle.Instruction{Kind: battle.InstrFaint, Target: targetPos})
	}
	if userFaints {
		instrs = append(instrs, battle.Instruction{Kind: battle.InstrFaint, Target: userPos})
	}
	return instrs
}

// statusMoveOutcome resolves a non-damaging move against its target. Status
// moves are deterministic once they connect: one outcome.
func statusMoveOutcome(st *battle.State, side battle.SideRef, m *battle.Move, targetPos battle.Position, defender *battle.Pokemon) outcome {
	if defender == nil || defender.IsFainted() {
		return outcome{prob: 1, instrs: []battle.Instruction{{
			Kind:        battle.InstrOther,
			Description: fmt.Sprintf("%s had no target", m.Name),
		}}}
	}
	if m.Secondary == nil {
		return outcome{prob: 1, instrs: []battle.Instruction{{
			Kind:        battle.InstrOther,
			Description: fmt.Sprintf("%s was used", m.Name),
		}}}
	}
	if in, ok := secondaryInstruction(defender, m.Secondary, targetPos); ok {
		return outcome{prob: 1, instrs: []battle.Instruction{in}}
	}
	return outcome{prob: 1, instrs: []battle.Instruction{{
		Kind:        battle.InstrOther,
		Description: fmt.Sprintf("%s failed", m.Name),
	}}}
}

// secondaryInstruction converts a secondary effect into an instruction
// against the given target, or reports false when the effect cannot apply
// (already statused, boost already at its cap).
func secondaryInstruction(target *battle.Pokemon, sec *battle.SecondaryEffect, pos battle.Position) (battle.Instruction, bool) {
	if sec.Status != battle.StatusNone {
		if target.Status != battle.StatusNone {
			return battle.Instruction{}, false
		}
		return battle.Instruction{Kind: battle.InstrApplyStatus, Target: pos, Status: sec.Status}, true
	}
	if sec.Stat != "" && sec.Stages != 0 {
		current := target.StatBoosts[sec.Stat]
		if (sec.Stages > 0 && current >= 6) || (sec.Stages < 0 && current <= -6) {
			return battle.Instruction{}, false
		}
		return battle.Instruction{Kind: battle.InstrStatChange, Target: pos, Stat: sec.Stat, Stages: sec.Stages}, true
	}
	return battle.Instruction{}, false
}

// resolveTarget picks the position a move resolves against: explicit client
// targets win, otherwise the standard target for the move's target type.
func resolveTarget(st *battle.State, side battle.SideRef, m *battle.Move, targets []battle.Position) battle.Position {
	if len(targets) > 0 {
		return targets[0]
	}
	def := defaultTargets(st, side, 0, m)
	if len(def) > 0 {
		return def[0]
	}
	return battle.Position{Side: side.Opposite(), Slot: 0}
}

// residualInstructions appends the end-of-turn status damage for every
// active Pokemon still standing. Residuals here are deterministic; they
// extend each branch rather than multiplying it.
func residualInstructions(st *battle.State) []battle.Instruction {
	var instrs []battle.Instruction
	for _, ref := range []battle.SideRef{battle.SideOne, battle.SideTwo} {
		side := st.Side(ref)
		for slot := range side.ActivePokemonIndices {
			p := side.ActiveAt(slot)
			if p == nil || p.IsFainted() {
				continue
			}
			var dmg int
			switch p.Status {
			case battle.StatusBurn:
				dmg = maxInt(p.MaxHP/16, 1)
			case battle.StatusPoison, battle.StatusToxic:
				dmg = maxInt(p.MaxHP/8, 1)
			default:
				continue
			}
			pos := battle.Position{Side: ref, Slot: slot}
			dmg = minInt(dmg, p.HP)
			instrs = append(instrs, battle.Instruction{Kind: battle.InstrPositionDamage, Target: pos, Amount: dmg})
			if dmg >= p.HP {
				instrs = append(instrs, battle.Instruction{Kind: battle.InstrFaint, Target: pos})
			}
		}
	}
	return instrs
}
