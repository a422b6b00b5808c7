package service

import (
	"github.com/mingu600/tapu-simu/internal/battle"
	"github.com/mingu600/tapu-simu/internal/logging"
)

// ReplaceState overwrites the session state wholesale. This is the rollback
// primitive: clients snapshot states and restore them here. The version bump
// invalidates any pending instruction proposal, so outcomes generated
// against the replaced state can never be applied.
func (s *BattleService) ReplaceState(sessionUUID string, st *battle.State) (*battle.Session, error) {
	mu := s.lockSession(sessionUUID)
	mu.Lock()
	defer mu.Unlock()

	sess, _, err := s.loadSession(sessionUUID)
	if err != nil {
		return nil, err
	}
	if err := st.Validate(); err != nil {
		return nil, err
	}

	if err := s.persist(sess, st); err != nil {
		return nil, err
	}
	s.dropProposal(sessionUUID)

	logging.Info("battle state replaced", logging.Fields{
		"session_id":    sessionUUID,
		"turn":          st.Turn,
		"state_version": sess.StateVersion,
	})
	s.notify(sessionUUID, sess, st)
	return sess, nil
}

// GetSession returns the session record and its decoded state.
func (s *BattleService) GetSession(sessionUUID string) (*battle.Session, *battle.State, error) {
	return s.loadSession(sessionUUID)
}
