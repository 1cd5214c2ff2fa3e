package gormdb

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"addrbook/config"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestDB opens a migrated in-memory SQLite database that is closed with the test.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	cfg := &config.Config{}
	cfg.Storage.Driver = config.StorageDriverSQLite
	cfg.Storage.SQLite.Path = ":memory:"

	db, err := Open(cfg, newDiscardLogger())
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, Migrate(context.Background(), db))

	return db
}
