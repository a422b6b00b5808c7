package storage

import (
	"time"

	"github.com/mingu600/tapu-simu/internal/battle"
)

type Repository interface {
	CreateSession(s *battle.Session) error
	GetSessionByUUID(uuid string) (*battle.Session, error)
	UpdateSession(s *battle.Session) error
	// DeleteExpiredSessions removes sessions whose last activity is at or
	// before the provided cutoff and returns how many were deleted. The
	// background sweeper calls this periodically.
	DeleteExpiredSessions(cutoff time.Time) (int64, error)
}
