package db

import (
	"fmt"

	"github.com/RealEstate/RealEstate-Backend/src/models"
	"gorm.io/gorm"
)

// CoverImageIndex backs the single-cover-image rule in dialects with partial indexes
const CoverImageIndex = "ux_property_images_cover"

// Migrate creates or updates the schema
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.OwnerModel{},
		&models.PropertyModel{},
		&models.PropertyImageModel{},
		&models.PropertyTraceModel{},
	); err != nil {
		return fmt.Errorf("auto-migrate: %w", err)
	}

	// MySQL has no partial indexes; there the row lock in AddPropertyImage is the only guard
	switch db.Dialector.Name() {
	case "mysql":
		// the unique code index must not fold case
		if err := db.Exec("ALTER TABLE properties MODIFY code_internal VARCHAR(64) CHARACTER SET utf8mb4 COLLATE utf8mb4_bin NOT NULL").Error; err != nil {
			return fmt.Errorf("set code collation: %w", err)
		}
	case "postgres", "sqlite":
		stmt := fmt.Sprintf(
			"CREATE UNIQUE INDEX IF NOT EXISTS %s ON property_images (property_id) WHERE enabled = true",
			CoverImageIndex,
		)
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("create cover image index: %w", err)
		}
	}

	return nil
}
