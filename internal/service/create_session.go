package service

import (
	"time"

	"github.com/google/uuid"

	"github.com/mingu600/tapu-simu/internal/battle"
	"github.com/mingu600/tapu-simu/internal/logging"
)

// CreateSession validates the submitted state, assigns a session UUID and
// persists the session at state version 1.
func (s *BattleService) CreateSession(st *battle.State) (*battle.Session, error) {
	if err := st.Validate(); err != nil {
		return nil, err
	}
	normalizeState(st)

	sess := &battle.Session{
		SessionUUID:  uuid.NewString(),
		StateVersion: 1,
		LastActivity: time.Now(),
	}
	if err := sess.EncodeState(st); err != nil {
		return nil, err
	}
	if err := s.repo.CreateSession(sess); err != nil {
		return nil, err
	}
	logging.Info("battle session created", logging.Fields{
		"session_id": sess.SessionUUID,
		"format":     st.Format.Name,
	})
	return sess, nil
}

// normalizeState fills derivable fields the client may omit: current HP
// defaults to max, nil condition maps become empty, and the turn counter
// starts at 1.
func normalizeState(st *battle.State) {
	for _, ref := range []battle.SideRef{battle.SideOne, battle.SideTwo} {
		side := st.Side(ref)
		if side.SideConditions == nil {
			side.SideConditions = make(map[string]int)
		}
		for i := range side.Pokemon {
			p := &side.Pokemon[i]
			if p.HP == 0 && p.MaxHP > 0 {
				p.HP = p.MaxHP
			}
		}
	}
	if st.Turn == 0 {
		st.Turn = 1
	}
}
