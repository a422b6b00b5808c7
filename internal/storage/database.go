package storage

import (
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/mingu600/tapu-simu/internal/battle"
)

func OpenAndMigrate(dataSourceName string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dataSourceName), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&battle.Session{}); err != nil {
		return nil, err
	}
	return db, nil
}
