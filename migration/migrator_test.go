package migration_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/beesaferoot/yatube/migration"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "migrator.db")), &gorm.Config{})
	require.NoError(t, err)
	return db
}

func tableMigration(version, table string) *migration.Migration {
	return &migration.Migration{
		Version:   version,
		Name:      "create_" + table,
		CreatedAt: time.Now(),
		Up: func(db *gorm.DB) error {
			return db.Exec("CREATE TABLE " + table + " (id INTEGER PRIMARY KEY)").Error
		},
		Down: func(db *gorm.DB) error {
			return db.Exec("DROP TABLE " + table).Error
		},
	}
}

func tableExists(t *testing.T, db *gorm.DB, table string) bool {
	var count int64
	err := db.Raw("SELECT count(*) FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&count).Error
	require.NoError(t, err)
	return count == 1
}

func TestMigrator_Up(t *testing.T) {
	db := setupTestDB(t)
	migrator := migration.NewMigrator(db)

	migrator.Register(tableMigration("20240315000002", "second"))
	migrator.Register(tableMigration("20240315000001", "first"))

	applied, err := migrator.Up()
	require.NoError(t, err)
	require.Len(t, applied, 2)
	assert.Equal(t, "20240315000001", applied[0].Version)

	var record migration.MigrationRecord
	err = db.Where("version = ?", "20240315000002").First(&record).Error
	assert.NoError(t, err)
	assert.Equal(t, "create_second", record.Name)

	assert.True(t, tableExists(t, db, "first"))
	assert.True(t, tableExists(t, db, "second"))

	again, err := migrator.Up()
	require.NoError(t, err)
	assert.Empty(t, again)
}

func TestMigrator_UpRollsBackFailedMigration(t *testing.T) {
	db := setupTestDB(t)
	migrator := migration.NewMigrator(db)
	migrator.Register(tableMigration("20240315000001", "first"))
	migrator.Register(&migration.Migration{
		Version: "20240315000002",
		Name:    "broken",
		Up: func(db *gorm.DB) error {
			return db.Exec("CREATE TABLE nope (").Error
		},
		Down: func(db *gorm.DB) error { return nil },
	})

	applied, err := migrator.Up()
	assert.Error(t, err)
	assert.Len(t, applied, 1)

	versions, err := migrator.GetAppliedVersions()
	require.NoError(t, err)
	assert.True(t, versions["20240315000001"])
	assert.False(t, versions["20240315000002"])
}

func TestMigrator_Down(t *testing.T) {
	db := setupTestDB(t)
	migrator := migration.NewMigrator(db)
	migrator.Register(tableMigration("20240315000001", "first"))
	migrator.Register(tableMigration("20240315000002", "second"))

	_, err := migrator.Up()
	require.NoError(t, err)

	reverted, err := migrator.Down()
	require.NoError(t, err)
	assert.Equal(t, "20240315000002", reverted.Version)

	var record migration.MigrationRecord
	err = db.Where("version = ?", "20240315000002").First(&record).Error
	assert.Error(t, err)

	assert.False(t, tableExists(t, db, "second"))
	assert.True(t, tableExists(t, db, "first"))
}

func TestMigrator_DownWithNothingApplied(t *testing.T) {
	migrator := migration.NewMigrator(setupTestDB(t))

	_, err := migrator.Down()
	assert.ErrorIs(t, err, migration.ErrNothingToRevert)
}

func TestMigrator_DownUnknownVersion(t *testing.T) {
	db := setupTestDB(t)
	migrator := migration.NewMigrator(db)
	require.NoError(t, migrator.EnsureVersionTable())
	require.NoError(t, db.Create(&migration.MigrationRecord{
		Version:   "20200101000000",
		Name:      "gone",
		AppliedAt: time.Now(),
	}).Error)

	_, err := migrator.Down()
	assert.ErrorIs(t, err, migration.ErrMissingMigration)
}

func TestMigrator_Status(t *testing.T) {
	db := setupTestDB(t)
	migrator := migration.NewMigrator(db)
	migrator.Register(tableMigration("20240315000001", "first"))

	_, err := migrator.Up()
	require.NoError(t, err)
	migrator.Register(tableMigration("20240315000002", "second"))

	statuses, err := migrator.Status()
	require.NoError(t, err)
	require.Len(t, statuses, 2)
	assert.True(t, statuses[0].Applied)
	assert.False(t, statuses[0].AppliedAt.IsZero())
	assert.False(t, statuses[1].Applied)

	pending, err := migrator.Pending()
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "create_second", pending[0].Name)
}

func TestRegistry(t *testing.T) {
	migration.ResetMigrations()
	defer migration.ResetMigrations()

	migration.RegisterMigration(tableMigration("20240315000001", "first"))
	registered := migration.GetRegisteredMigrations()
	require.Len(t, registered, 1)

	registered[0] = nil
	assert.NotNil(t, migration.GetRegisteredMigrations()[0])
}

func TestValidate(t *testing.T) {
	ok := []*migration.Migration{tableMigration("20240315000001", "a"), tableMigration("20240315000002", "b")}
	assert.NoError(t, migration.Validate(ok))

	dup := []*migration.Migration{tableMigration("20240315000001", "a"), tableMigration("20240315000001", "b")}
	assert.Error(t, migration.Validate(dup))

	bad := []*migration.Migration{tableMigration("v1", "a")}
	assert.Error(t, migration.Validate(bad))

	noDown := tableMigration("20240315000003", "c")
	noDown.Down = nil
	assert.Error(t, migration.Validate([]*migration.Migration{noDown}))
}
