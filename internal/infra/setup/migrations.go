package setup

import (
	"fmt"

	"gorm.io/gorm"

	"community-board/internal/domain"
)

// MigrateDB creates the tables idempotently at startup. There are no
// versioned migrations; AutoMigrate adds missing tables, columns and indexes
// and never drops anything.
func MigrateDB(db *gorm.DB) error {
	if db == nil {
		return fmt.Errorf("cannot migrate database with nil DB connection")
	}
	err := db.AutoMigrate(
		&domain.User{},
		&domain.LostFoundPost{},
		&domain.Complaint{},
		&domain.HelpPost{},
		&domain.Comment{},
	)
	if err != nil {
		return fmt.Errorf("failed to auto-migrate tables: %w", err)
	}
	return nil
}
