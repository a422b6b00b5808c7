package storage

import (
	"time"

	"github.com/mingu600/tapu-simu/internal/battle"
	"gorm.io/gorm"
)

type sqliteRepository struct {
	db *gorm.DB
}

func NewSQLiteRepository(db *gorm.DB) Repository {
	return &sqliteRepository{db: db}
}

func (r *sqliteRepository) CreateSession(s *battle.Session) error {
	return r.db.Create(s).Error
}

func (r *sqliteRepository) GetSessionByUUID(uuid string) (*battle.Session, error) {
	var s battle.Session
	if err := r.db.Where("session_uuid = ?", uuid).First(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *sqliteRepository) UpdateSession(s *battle.Session) error {
	return r.db.Save(s).Error
}

func (r *sqliteRepository) DeleteExpiredSessions(cutoff time.Time) (int64, error) {
	// Hard delete: expired sessions are garbage, keeping soft-deleted rows
	// around would grow the table forever.
	res := r.db.Unscoped().Where("last_activity <= ?", cutoff).Delete(&battle.Session{})
	return res.RowsAffected, res.Error
}
