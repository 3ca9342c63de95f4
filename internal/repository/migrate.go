package repository

import (
	"context"

	"gorm.io/gorm"
)

// Migrate creates or updates the schema. Tables are listed parents first so
// foreign keys resolve.
func Migrate(ctx context.Context, db *gorm.DB) error {
	return db.WithContext(ctx).AutoMigrate(
		&userModel{},
		&listingModel{},
		&bookingModel{},
		&reviewModel{},
	)
}
