package database

import (
	"fmt"

	"github.com/dalvguti/family-expenses-be/internal/models"

	"gorm.io/gorm"
)

// AutoMigrate creates the schema from the model definitions. Production
// deployments use the SQL migrations in Migrate; this exists for throwaway
// databases (tests run it against in-memory SQLite).
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Transaction{},
		&models.AuditLog{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
