package battle

import "fmt"

// FormatType identifies how many Pokemon battle per side.
type FormatType string

const (
	FormatSingles FormatType = "Singles"
	FormatDoubles FormatType = "Doubles"
	FormatVGC     FormatType = "Vgc"
)

// Format describes the rules of a battle session. Immutable once the
// session is created.
type Format struct {
	Name               string     `json:"name"`
	FormatType         FormatType `json:"format_type"`
	Generation         string     `json:"generation"`
	ActivePokemonCount int        `json:"active_pokemon_count"`
}

// SideRef identifies one of the two battle sides on the wire ("one"/"two").
type SideRef string

const (
	SideOne SideRef = "one"
	SideTwo SideRef = "two"
)

// Opposite returns the other side.
func (s SideRef) Opposite() SideRef {
	if s == SideOne {
		return SideTwo
	}
	return SideOne
}

// Position references a single active slot on a side.
type Position struct {
	Side SideRef `json:"side"`
	Slot int     `json:"slot"`
}

func (p Position) String() string {
	return fmt.Sprintf("side %s slot %d", p.Side, p.Slot)
}

// MoveCategory splits moves into damage classes.
type MoveCategory string

const (
	CategoryPhysical MoveCategory = "Physical"
	CategorySpecial  MoveCategory = "Special"
	CategoryStatus   MoveCategory = "Status"
)

// SecondaryEffect is an additional chance-based effect attached to a move
// (e.g. 10% burn, 100% speed drop). Chance is a percentage.
type SecondaryEffect struct {
	Chance float64 `json:"chance"`
	Status Status  `json:"status,omitempty"`
	Stat   string  `json:"stat,omitempty"`
	Stages int     `json:"stages,omitempty"`
	// Target is "self" or "target"; defaults to "target".
	Target string `json:"target,omitempty"`
}

// Move is a known move on a Pokemon's move set.
type Move struct {
	Name      string           `json:"name"`
	MoveType  string           `json:"move_type"`
	Category  MoveCategory     `json:"category"`
	BasePower int              `json:"base_power"`
	Accuracy  int              `json:"accuracy"`
	PP        int              `json:"pp"`
	MaxPP     int              `json:"max_pp"`
	Priority  int              `json:"priority"`
	Target    string           `json:"target"`
	MultiHit  bool             `json:"multi_hit,omitempty"`
	Secondary *SecondaryEffect `json:"secondary,omitempty"`
	// Drain and Recoil are fractions of dealt damage healed to or taken by
	// the user (e.g. 0.5 for Giga Drain, 0.33 for Flare Blitz).
	Drain  float64 `json:"drain,omitempty"`
	Recoil float64 `json:"recoil,omitempty"`
}

// Move target types. Normal moves target one opposing slot; side-targeting
// moves affect a whole side and carry no positions.
const (
	TargetNormal   = "normal"
	TargetSelf     = "self"
	TargetAllySide = "ally_side"
	TargetFoeSide  = "foe_side"
)

// IsDamaging reports whether the move deals direct damage.
func (m *Move) IsDamaging() bool {
	return m.Category != CategoryStatus && m.BasePower > 0
}

// Stats holds the six computed stat values of a Pokemon.
type Stats struct {
	HP             int `json:"hp"`
	Attack         int `json:"attack"`
	Defense        int `json:"defense"`
	SpecialAttack  int `json:"special_attack"`
	SpecialDefense int `json:"special_defense"`
	Speed          int `json:"speed"`
}

// Status is a non-volatile status condition.
type Status string

const (
	StatusNone      Status = ""
	StatusBurn      Status = "burn"
	StatusPoison    Status = "poison"
	StatusToxic     Status = "toxic"
	StatusParalysis Status = "paralysis"
	StatusSleep     Status = "sleep"
	StatusFreeze    Status = "freeze"
)

// Stat boost identifiers used by StatChange instructions and boost maps.
const (
	StatAttack         = "attack"
	StatDefense        = "defense"
	StatSpecialAttack  = "special_attack"
	StatSpecialDefense = "special_defense"
	StatSpeed          = "speed"
	StatAccuracy       = "accuracy"
	StatEvasion        = "evasion"
)

// Pokemon is one roster member. A Pokemon is owned exclusively by its Side;
// active slots reference it by roster index.
type Pokemon struct {
	Species          string         `json:"species"`
	Level            int            `json:"level"`
	Types            []string       `json:"types"`
	HP               int            `json:"hp"`
	MaxHP            int            `json:"max_hp"`
	Stats            Stats          `json:"stats"`
	Moves            []Move         `json:"moves"`
	Ability          string         `json:"ability"`
	Item             string         `json:"item,omitempty"`
	Nature           string         `json:"nature,omitempty"`
	IVs              []int          `json:"ivs,omitempty"`
	EVs              []int          `json:"evs,omitempty"`
	Status           Status         `json:"status,omitempty"`
	VolatileStatuses []string       `json:"volatile_statuses,omitempty"`
	StatBoosts       map[string]int `json:"stat_boosts,omitempty"`
}

// IsFainted reports whether the Pokemon is out of the battle.
func (p *Pokemon) IsFainted() bool { return p.HP <= 0 }

// boostMultiplier converts a -6..+6 stage into the standard multiplier.
func boostMultiplier(stage int) float64 {
	if stage > 6 {
		stage = 6
	}
	if stage < -6 {
		stage = -6
	}
	if stage >= 0 {
		return float64(2+stage) / 2.0
	}
	return 2.0 / float64(2-stage)
}

// EffectiveStat returns a stat after applying boost stages and the
// paralysis speed cut.
func (p *Pokemon) EffectiveStat(stat string) int {
	var base int
	switch stat {
	case StatAttack:
		base = p.Stats.Attack
	case StatDefense:
		base = p.Stats.Defense
	case StatSpecialAttack:
		base = p.Stats.SpecialAttack
	case StatSpecialDefense:
		base = p.Stats.SpecialDefense
	case StatSpeed:
		base = p.Stats.Speed
	default:
		return 0
	}
	v := int(float64(base) * boostMultiplier(p.StatBoosts[stat]))
	if stat == StatSpeed && p.Status == StatusParalysis {
		v /= 2
	}
	if v < 1 {
		v = 1
	}
	return v
}

// Side condition names understood by the engine.
const (
	ConditionStealthRock = "stealth_rock"
	ConditionSpikes      = "spikes"
	ConditionReflect     = "reflect"
	ConditionLightScreen = "light_screen"
)

// Side is one participant: an ordered roster, the active slot view and
// side-wide conditions. A side owns its Pokemon.
type Side struct {
	Pokemon              []Pokemon      `json:"pokemon"`
	ActivePokemonIndices []int          `json:"active_pokemon_indices"`
	SideConditions       map[string]int `json:"side_conditions"`
}

// ActiveAt returns the Pokemon occupying the given active slot, or nil when
// the slot index is out of range.
func (s *Side) ActiveAt(slot int) *Pokemon {
	if slot < 0 || slot >= len(s.ActivePokemonIndices) {
		return nil
	}
	idx := s.ActivePokemonIndices[slot]
	if idx < 0 || idx >= len(s.Pokemon) {
		return nil
	}
	return &s.Pokemon[idx]
}

// State is the authoritative battle state: the unit of persistence and of
// wholesale rollback replacement.
type State struct {
	Format  Format `json:"format"`
	SideOne Side   `json:"side_one"`
	SideTwo Side   `json:"side_two"`
	Turn    int    `json:"turn"`
}

// Side returns the side addressed by ref.
func (st *State) Side(ref SideRef) *Side {
	if ref == SideOne {
		return &st.SideOne
	}
	return &st.SideTwo
}

// PokemonAt returns the active Pokemon at a battle position, or nil when the
// slot is empty or out of range.
func (st *State) PokemonAt(pos Position) *Pokemon {
	return st.Side(pos.Side).ActiveAt(pos.Slot)
}

// Clone produces a deep copy. The engine expands probabilistic branches
// against evolving copies and must never mutate the caller's state.
func (st *State) Clone() *State {
	out := &State{Format: st.Format, Turn: st.Turn}
	out.SideOne = cloneSide(&st.SideOne)
	out.SideTwo = cloneSide(&st.SideTwo)
	return out
}

func cloneSide(s *Side) Side {
	out := Side{
		Pokemon:              make([]Pokemon, len(s.Pokemon)),
		ActivePokemonIndices: append([]int(nil), s.ActivePokemonIndices...),
		SideConditions:       make(map[string]int, len(s.SideConditions)),
	}
	for i := range s.Pokemon {
		out.Pokemon[i] = clonePokemon(&s.Pokemon[i])
	}
	for k, v := range s.SideConditions {
		out.SideConditions[k] = v
	}
	return out
}

func clonePokemon(p *Pokemon) Pokemon {
	out := *p
	out.Types = append([]string(nil), p.Types...)
	out.Moves = make([]Move, len(p.Moves))
	for i, m := range p.Moves {
		out.Moves[i] = m
		if m.Secondary != nil {
			sec := *m.Secondary
			out.Moves[i].Secondary = &sec
		}
	}
	out.IVs = append([]int(nil), p.IVs...)
	out.EVs = append([]int(nil), p.EVs...)
	out.VolatileStatuses = append([]string(nil), p.VolatileStatuses...)
	if p.StatBoosts != nil {
		out.StatBoosts = make(map[string]int, len(p.StatBoosts))
		for k, v := range p.StatBoosts {
			out.StatBoosts[k] = v
		}
	}
	return out
}
