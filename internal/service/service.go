package service

import (
	"errors"
	"sync"
	"time"

	"github.com/mingu600/tapu-simu/internal/battle"
	"github.com/mingu600/tapu-simu/internal/storage"
)

var (
	ErrSessionNotFound       = errors.New("battle session not found")
	ErrNoPendingInstructions = errors.New("no instruction sets generated for this session")
	ErrStaleInstructions     = errors.New("instruction sets were generated against a previous state")
	ErrInstructionOutOfRange = errors.New("instruction set index out of range")
)

// proposal holds the instruction sets generated for a session, pinned to the
// state version they were computed against. Applying is refused when the
// version no longer matches (the state was replaced or another set applied).
type proposal struct {
	stateVersion uint64
	sets         []battle.InstructionSet
	createdAt    time.Time
}

// BattleService coordinates turn resolution for persisted battle sessions.
// All mutating operations on a session are serialized through a per-session
// mutex so concurrent generate/apply/replace calls cannot interleave.
type BattleService struct {
	repo storage.Repository

	mu        sync.Mutex
	sessionMu map[string]*sync.Mutex
	proposals map[string]*proposal

	// onStateChange, when set, is invoked after every successful apply or
	// state replacement with the session UUID and the new state.
	onStateChange func(sessionUUID string, s *battle.Session, st *battle.State)
}

func NewBattleService(repo storage.Repository) *BattleService {
	return &BattleService{
		repo:      repo,
		sessionMu: make(map[string]*sync.Mutex),
		proposals: make(map[string]*proposal),
	}
}

// SetStateListener registers a callback for state changes. Used by the
// websocket feed; must be set before the service starts receiving requests.
func (s *BattleService) SetStateListener(fn func(sessionUUID string, sess *battle.Session, st *battle.State)) {
	s.onStateChange = fn
}

// lockSession returns the mutex serializing operations on one session,
// creating it on first use.
func (s *BattleService) lockSession(uuid string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.sessionMu[uuid]
	if !ok {
		m = &sync.Mutex{}
		s.sessionMu[uuid] = m
	}
	return m
}

func (s *BattleService) storeProposal(uuid string, version uint64, sets []battle.InstructionSet) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.proposals[uuid] = &proposal{stateVersion: version, sets: sets, createdAt: time.Now()}
}

func (s *BattleService) takeProposal(uuid string) *proposal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.proposals[uuid]
}

func (s *BattleService) dropProposal(uuid string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.proposals, uuid)
}

func (s *BattleService) notify(uuid string, sess *battle.Session, st *battle.State) {
	if s.onStateChange != nil {
		s.onStateChange(uuid, sess, st)
	}
}

// loadSession fetches a session and its decoded state. Any lookup failure is
// reported as ErrSessionNotFound; a decode failure means the stored blob is
// corrupt and is returned as-is.
func (s *BattleService) loadSession(uuid string) (*battle.Session, *battle.State, error) {
	sess, err := s.repo.GetSessionByUUID(uuid)
	if err != nil || sess == nil {
		return nil, nil, ErrSessionNotFound
	}
	st, err := sess.DecodeState()
	if err != nil {
		return nil, nil, err
	}
	return sess, st, nil
}

// persist writes the state back into the session record, bumps the state
// version and refreshes the activity timestamp.
func (s *BattleService) persist(sess *battle.Session, st *battle.State) error {
	if err := sess.EncodeState(st); err != nil {
		return err
	}
	sess.StateVersion++
	sess.LastActivity = time.Now()
	return s.repo.UpdateSession(sess)
}
