package database

import (
	"fmt"

	"github.com/Jeroboam-francis/Backend-BlogItwebsite/internal/models"

	"gorm.io/gorm"
)

// AutoMigrate runs database schema migrations for all models.
// The unique indexes on users.email_address and users.user_name are the
// last-resort guard behind the registration pre-checks.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Blog{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
