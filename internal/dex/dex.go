// Package dex holds the static game-data tables: move records, species base
// stats and the nature/type-effectiveness tables. The tables are read-only;
// the engine only queries them by identifier.
package dex

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/mingu600/tapu-simu/internal/battle"
)

// Species is the data-table record for one species.
type Species struct {
	Name      string       `json:"name"`
	Types     []string     `json:"types"`
	BaseStats battle.Stats `json:"base_stats"`
	Ability   string       `json:"ability"`
}

// Dex indexes moves and species by canonical key.
type Dex struct {
	moves   map[string]battle.Move
	species map[string]Species
}

var titler = cases.Title(language.English)

// Key canonicalizes a move or species name for lookups: lowercase, spaces
// and hyphens collapsed to underscores.
func Key(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, "-", "_")
	return s
}

// DisplayName renders a canonical key back into a human-readable name
// ("icy_wind" -> "Icy Wind").
func DisplayName(key string) string {
	return titler.String(strings.ReplaceAll(Key(key), "_", " "))
}

// New builds a Dex from configured move and species tables.
func New(moves []battle.Move, species []Species) *Dex {
	d := &Dex{
		moves:   make(map[string]battle.Move, len(moves)),
		species: make(map[string]Species, len(species)),
	}
	for _, m := range moves {
		if m.MaxPP == 0 {
			m.MaxPP = m.PP
		}
		d.moves[Key(m.Name)] = m
	}
	for _, s := range species {
		d.species[Key(s.Name)] = s
	}
	return d
}

// Move looks up a move record by name.
func (d *Dex) Move(name string) (battle.Move, bool) {
	m, ok := d.moves[Key(name)]
	return m, ok
}

// Species looks up a species record by name.
func (d *Dex) Species(name string) (Species, bool) {
	s, ok := d.species[Key(name)]
	return s, ok
}

// Moves returns all move records sorted by name.
func (d *Dex) Moves() []battle.Move {
	out := make([]battle.Move, 0, len(d.moves))
	for _, m := range d.moves {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// SpeciesList returns all species records sorted by name.
func (d *Dex) SpeciesList() []Species {
	out := make([]Species, 0, len(d.species))
	for _, s := range d.species {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// natureMods maps a nature to its boosted and hindered stat.
type natureMod struct {
	up   string
	down string
}

var natures = map[string]natureMod{
	"adamant": {battle.StatAttack, battle.StatSpecialAttack},
	"lonely":  {battle.StatAttack, battle.StatDefense},
	"brave":   {battle.StatAttack, battle.StatSpeed},
	"naughty": {battle.StatAttack, battle.StatSpecialDefense},
	"bold":    {battle.StatDefense, battle.StatAttack},
	"impish":  {battle.StatDefense, battle.StatSpecialAttack},
	"relaxed": {battle.StatDefense, battle.StatSpeed},
	"lax":     {battle.StatDefense, battle.StatSpecialDefense},
	"modest":  {battle.StatSpecialAttack, battle.StatAttack},
	"mild":    {battle.StatSpecialAttack, battle.StatDefense},
	"quiet":   {battle.StatSpecialAttack, battle.StatSpeed},
	"rash":    {battle.StatSpecialAttack, battle.StatSpecialDefense},
	"calm":    {battle.StatSpecialDefense, battle.StatAttack},
	"gentle":  {battle.StatSpecialDefense, battle.StatDefense},
	"sassy":   {battle.StatSpecialDefense, battle.StatSpeed},
	"careful": {battle.StatSpecialDefense, battle.StatSpecialAttack},
	"timid":   {battle.StatSpeed, battle.StatAttack},
	"hasty":   {battle.StatSpeed, battle.StatDefense},
	"jolly":   {battle.StatSpeed, battle.StatSpecialAttack},
	"naive":   {battle.StatSpeed, battle.StatSpecialDefense},
	// neutral natures: hardy, docile, serious, bashful, quirky
}

// NatureModifier returns the multiplier a nature applies to a stat.
func NatureModifier(nature, stat string) float64 {
	mod, ok := natures[strings.ToLower(strings.TrimSpace(nature))]
	if !ok {
		return 1.0
	}
	switch stat {
	case mod.up:
		return 1.1
	case mod.down:
		return 0.9
	}
	return 1.0
}

// KnownNature reports whether the nature name is recognized. Neutral
// natures are recognized but apply no modifier.
func KnownNature(nature string) bool {
	n := strings.ToLower(strings.TrimSpace(nature))
	if _, ok := natures[n]; ok {
		return true
	}
	switch n {
	case "hardy", "docile", "serious", "bashful", "quirky":
		return true
	}
	return false
}
