// Package factory builds fully-specified Pokemon records from the compact
// client description (species, level, nature, IVs, EVs, moves) and the
// static data tables.
package factory

import (
	"fmt"

	"github.com/mingu600/tapu-simu/internal/battle"
	"github.com/mingu600/tapu-simu/internal/dex"
)

// Request describes the Pokemon to build. IVs and EVs follow the standard
// HP/Atk/Def/SpA/SpD/Spe order; either may be empty for defaults (31/0).
type Request struct {
	Species string   `json:"species"`
	Level   int      `json:"level"`
	Nature  string   `json:"nature"`
	Ability string   `json:"ability"`
	Item    string   `json:"item"`
	IVs     []int    `json:"ivs"`
	EVs     []int    `json:"evs"`
	Moves   []string `json:"moves"`
}

// Build resolves the request against the data tables and computes final
// stats. The returned Pokemon is at full HP with no status.
func Build(d *dex.Dex, req Request) (*battle.Pokemon, error) {
	species, ok := d.Species(req.Species)
	if !ok {
		return nil, &battle.ValidationError{Field: "species", Reason: fmt.Sprintf("unknown species %q", req.Species)}
	}
	level := req.Level
	if level == 0 {
		level = 50
	}
	if level < 1 || level > 100 {
		return nil, &battle.ValidationError{Field: "level", Reason: "level must be 1-100"}
	}
	nature := req.Nature
	if nature == "" {
		nature = "Hardy"
	}
	if !dex.KnownNature(nature) {
		return nil, &battle.ValidationError{Field: "nature", Reason: fmt.Sprintf("unknown nature %q", nature)}
	}

	ivs, err := spread("ivs", req.IVs, 31, 31)
	if err != nil {
		return nil, err
	}
	evs, err := spread("evs", req.EVs, 0, 252)
	if err != nil {
		return nil, err
	}
	evSum := 0
	for _, ev := range evs {
		evSum += ev
	}
	if evSum > 510 {
		return nil, &battle.ValidationError{Field: "evs", Reason: "EV total exceeds 510"}
	}

	if len(req.Moves) == 0 || len(req.Moves) > 4 {
		return nil, &battle.ValidationError{Field: "moves", Reason: "move set must have 1-4 moves"}
	}
	moves := make([]battle.Move, 0, len(req.Moves))
	for _, name := range req.Moves {
		m, ok := d.Move(name)
		if !ok {
			return nil, &battle.ValidationError{Field: "moves", Reason: fmt.Sprintf("unknown move %q", name)}
		}
		moves = append(moves, m)
	}

	ability := req.Ability
	if ability == "" {
		ability = species.Ability
	}

	stats := computeStats(species.BaseStats, level, nature, ivs, evs)
	p := &battle.Pokemon{
		Species: species.Name,
		Level:   level,
		Types:   append([]string(nil), species.Types...),
		HP:      stats.HP,
		MaxHP:   stats.HP,
		Stats:   stats,
		Moves:   moves,
		Ability: ability,
		Item:    req.Item,
		Nature:  nature,
		IVs:     ivs,
		EVs:     evs,
	}
	return p, nil
}

func spread(field string, values []int, def, max int) ([]int, error) {
	if len(values) == 0 {
		out := make([]int, 6)
		for i := range out {
			out[i] = def
		}
		return out, nil
	}
	if len(values) != 6 {
		return nil, &battle.ValidationError{Field: field, Reason: "expected 6 values"}
	}
	for i, v := range values {
		if v < 0 || v > max {
			return nil, &battle.ValidationError{Field: fmt.Sprintf("%s[%d]", field, i), Reason: fmt.Sprintf("value must be 0-%d", max)}
		}
	}
	return append([]int(nil), values...), nil
}

// computeStats applies the standard stat formulas:
// HP    = floor((2B+IV+floor(EV/4)) * L/100) + L + 10
// other = floor((floor((2B+IV+floor(EV/4)) * L/100) + 5) * nature)
func computeStats(base battle.Stats, level int, nature string, ivs, evs []int) battle.Stats {
	point := func(b, iv, ev int) int {
		return (2*b + iv + ev/4) * level / 100
	}
	other := func(b, iv, ev int, stat string) int {
		return int(float64(point(b, iv, ev)+5) * dex.NatureModifier(nature, stat))
	}
	return battle.Stats{
		HP:             point(base.HP, ivs[0], evs[0]) + level + 10,
		Attack:         other(base.Attack, ivs[1], evs[1], battle.StatAttack),
		Defense:        other(base.Defense, ivs[2], evs[2], battle.StatDefense),
		SpecialAttack:  other(base.SpecialAttack, ivs[3], evs[3], battle.StatSpecialAttack),
		SpecialDefense: other(base.SpecialDefense, ivs[4], evs[4], battle.StatSpecialDefense),
		Speed:          other(base.Speed, ivs[5], evs[5], battle.StatSpeed),
	}
}
