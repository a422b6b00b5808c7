package service

import (
	"github.com/mingu600/tapu-simu/internal/battle"
	"github.com/mingu600/tapu-simu/internal/engine"
	"github.com/mingu600/tapu-simu/internal/logging"
)

// ApplyInstructions commits one of the previously generated instruction sets
// to the session state. The proposal must have been generated against the
// current state version; anything older is refused as stale so a rollback or
// concurrent apply can never be built upon.
func (s *BattleService) ApplyInstructions(sessionUUID string, setIndex int) (*battle.Session, *battle.State, error) {
	mu := s.lockSession(sessionUUID)
	mu.Lock()
	defer mu.Unlock()

	sess, st, err := s.loadSession(sessionUUID)
	if err != nil {
		return nil, nil, err
	}

	prop := s.takeProposal(sessionUUID)
	if prop == nil {
		return nil, nil, ErrNoPendingInstructions
	}
	if prop.stateVersion != sess.StateVersion {
		return nil, nil, ErrStaleInstructions
	}
	if setIndex < 0 || setIndex >= len(prop.sets) {
		return nil, nil, ErrInstructionOutOfRange
	}

	if err := engine.ApplyInstructionSet(st, prop.sets[setIndex]); err != nil {
		return nil, nil, err
	}
	if err := s.persist(sess, st); err != nil {
		return nil, nil, err
	}
	s.dropProposal(sessionUUID)

	logging.Info("instruction set applied", logging.Fields{
		"session_id": sessionUUID,
		"set_index":  setIndex,
		"turn":       st.Turn,
	})
	s.notify(sessionUUID, sess, st)
	return sess, st, nil
}
