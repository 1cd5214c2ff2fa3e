package gormdb

import (
	"context"

	"addrbook/internal/errors"
	"addrbook/internal/infra/persistence/model"

	"gorm.io/gorm"
)

// Migrate creates or updates the tables of every persistence model.
// It is idempotent and runs once at startup, never on the write path.
func Migrate(ctx context.Context, db *gorm.DB) error {
	if err := db.WithContext(ctx).AutoMigrate(model.AllModels()...); err != nil {
		return errors.Wrap(err, "failed to migrate database schema")
	}

	return nil
}
