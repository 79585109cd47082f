// Package testutil provides a migrated throwaway database for tests.
package testutil

import (
	"path/filepath"
	"testing"

	"gorm.io/gorm"

	"github.com/beesaferoot/yatube/internal/database"
	"github.com/beesaferoot/yatube/migration"
	_ "github.com/beesaferoot/yatube/migrations"
)

// NewDB opens a SQLite database in t.TempDir and applies every migration.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	db, err := database.Open(filepath.Join(t.TempDir(), "yatube_test.db"), false)
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	if _, err := migration.NewMigrator(db).Up(); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}
