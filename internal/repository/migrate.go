package repository

import (
	"petstat/internal/domain"

	"gorm.io/gorm"
)

// AutoMigrate creates the schema on SQLite for local development and tests.
// PostgreSQL deployments use the versioned migrations in internal/database.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&userModel{},
		&domain.OAuthAccount{},
		&domain.UserToken{},
		&domain.Pet{},
	)
}
