package service

import (
	"github.com/mingu600/tapu-simu/internal/battle"
	"github.com/mingu600/tapu-simu/internal/engine"
	"github.com/mingu600/tapu-simu/internal/logging"
)

// GenerateInstructions resolves one turn of the session into its possible
// instruction sets and stores them as the session's pending proposal. The
// session state is not modified; applying happens in a separate step.
func (s *BattleService) GenerateInstructions(sessionUUID string, choiceOne, choiceTwo battle.Choice) ([]battle.InstructionSet, error) {
	mu := s.lockSession(sessionUUID)
	mu.Lock()
	defer mu.Unlock()

	sess, st, err := s.loadSession(sessionUUID)
	if err != nil {
		return nil, err
	}

	sets, err := engine.GenerateInstructions(st, choiceOne, choiceTwo)
	if err != nil {
		return nil, err
	}

	s.storeProposal(sessionUUID, sess.StateVersion, sets)
	logging.Debug("instruction sets generated", logging.Fields{
		"session_id": sessionUUID,
		"sets":       len(sets),
		"turn":       st.Turn,
	})
	return sets, nil
}
