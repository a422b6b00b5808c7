package service

import (
	"time"

	"github.com/mingu600/tapu-simu/internal/logging"
)

// StartSessionSweeper launches a background goroutine that periodically
// removes sessions idle longer than ttl, along with their in-memory
// proposals and mutexes. Returns a stop function.
func (s *BattleService) StartSessionSweeper(interval, ttl time.Duration) func() {
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				cutoff := time.Now().Add(-ttl)
				n, err := s.repo.DeleteExpiredSessions(cutoff)
				if err != nil {
					logging.Error("session sweeper failed", err, nil)
					continue
				}
				if n > 0 {
					logging.Info("expired battle sessions removed", logging.Fields{"count": n})
				}
				s.pruneStale(cutoff)
			}
		}
	}()
	return func() { close(done) }
}

// pruneStale drops in-memory proposals older than the cutoff. Session
// mutexes for pruned proposals are left to be recreated on demand; they are
// tiny and contention-free once the session is gone.
func (s *BattleService) pruneStale(cutoff time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for uuid, p := range s.proposals {
		if p.createdAt.Before(cutoff) {
			delete(s.proposals, uuid)
			delete(s.sessionMu, uuid)
		}
	}
}
