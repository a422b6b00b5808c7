package service

import (
	"fmt"

	"github.com/mingu600/tapu-simu/internal/battle"
	"github.com/mingu600/tapu-simu/internal/dedupe"
	"github.com/mingu600/tapu-simu/internal/dex"
	"github.com/mingu600/tapu-simu/internal/engine"
)

// Option is one legal choice together with a human-readable label.
type Option struct {
	Label  string        `json:"label"`
	Choice battle.Choice `json:"choice"`
}

// LegalOptionsResult lists the legal choices for both sides of a session at
// a given state version.
type LegalOptionsResult struct {
	SessionUUID  string   `json:"session_id"`
	StateVersion uint64   `json:"state_version"`
	Turn         int      `json:"turn"`
	SideOne      []Option `json:"side_one"`
	SideTwo      []Option `json:"side_two"`
}

// LegalOptions enumerates the legal choices for both sides. Enumeration is
// pure for a given state, so concurrent calls for the same session and
// version are collapsed into one computation via singleflight.
func (s *BattleService) LegalOptions(sessionUUID string) (*LegalOptionsResult, error) {
	sess, st, err := s.loadSession(sessionUUID)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("%s:%d", sessionUUID, sess.StateVersion)
	v, err, _ := dedupe.LegalOptionsGroup.Do(key, func() (interface{}, error) {
		res := &LegalOptionsResult{
			SessionUUID:  sessionUUID,
			StateVersion: sess.StateVersion,
			Turn:         st.Turn,
			SideOne:      labelOptions(st, battle.SideOne, engine.LegalOptions(st, battle.SideOne)),
			SideTwo:      labelOptions(st, battle.SideTwo, engine.LegalOptions(st, battle.SideTwo)),
		}
		return res, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*LegalOptionsResult), nil
}

func labelOptions(st *battle.State, side battle.SideRef, choices []battle.Choice) []Option {
	opts := make([]Option, 0, len(choices))
	for _, c := range choices {
		opts = append(opts, Option{Label: labelChoice(st, side, c), Choice: c})
	}
	return opts
}

func labelChoice(st *battle.State, side battle.SideRef, c battle.Choice) string {
	switch {
	case c.IsMove():
		active := st.Side(side).ActiveAt(0)
		if active == nil || c.MoveIndex == nil || *c.MoveIndex >= len(active.Moves) {
			return "move"
		}
		m := &active.Moves[*c.MoveIndex]
		name := dex.DisplayName(m.Name)
		switch m.Target {
		case battle.TargetSelf:
			return name + " -> self"
		case battle.TargetAllySide:
			return name + " -> own side"
		case battle.TargetFoeSide:
			return name + " -> opposing side"
		}
		if len(c.TargetPositions) == 0 {
			return name
		}
		t := c.TargetPositions[0]
		whose := "opponent"
		if t.Side == side {
			whose = "ally"
		}
		return fmt.Sprintf("%s -> %s slot %d", name, whose, t.Slot)
	case c.IsSwitch():
		roster := st.Side(side).Pokemon
		if c.PokemonIndex == nil || *c.PokemonIndex >= len(roster) {
			return "switch"
		}
		return "Switch to " + dex.DisplayName(roster[*c.PokemonIndex].Species)
	default:
		return "Pass"
	}
}
