package migration

import (
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"gorm.io/gorm"
)

// VersionLayout is the time layout migration versions are written in.
const VersionLayout = "20060102150405"

var (
	ErrNothingToRevert  = errors.New("no migrations to revert")
	ErrMissingMigration = errors.New("applied migration is not registered")
)

// Migration represents a single database migration
type Migration struct {
	Version   string    // Unique version identifier (e.g., timestamp)
	Name      string    // Human-readable name of the migration
	CreatedAt time.Time // When the migration was created
	Up        func(*gorm.DB) error
	Down      func(*gorm.DB) error
}

// MigrationRecord represents a record of an applied migration
type MigrationRecord struct {
	Version   string    `gorm:"primaryKey"`
	Name      string    `gorm:"not null"`
	AppliedAt time.Time `gorm:"not null"`
}

// Status pairs a registered migration with its applied state.
type Status struct {
	Migration *Migration
	Applied   bool
	AppliedAt time.Time
}

// Global migration registry
var (
	globalMigrations = make([]*Migration, 0)
	registryMutex    sync.RWMutex
)

// RegisterMigration registers a migration globally. Migration files call it
// from init.
func RegisterMigration(migration *Migration) {
	registryMutex.Lock()
	defer registryMutex.Unlock()
	globalMigrations = append(globalMigrations, migration)
}

// GetRegisteredMigrations returns all registered migrations
func GetRegisteredMigrations() []*Migration {
	registryMutex.RLock()
	defer registryMutex.RUnlock()

	migrations := make([]*Migration, len(globalMigrations))
	copy(migrations, globalMigrations)
	return migrations
}

// ResetMigrations clears the global migration registry (for testing)
func ResetMigrations() {
	registryMutex.Lock()
	defer registryMutex.Unlock()
	globalMigrations = make([]*Migration, 0)
}

// Validate checks that every migration has a well-formed, unique version and
// both directions.
func Validate(migrations []*Migration) error {
	seen := make(map[string]string)
	for _, m := range migrations {
		if _, err := time.Parse(VersionLayout, m.Version); err != nil {
			return fmt.Errorf("migration %q: invalid version %q", m.Name, m.Version)
		}
		if other, ok := seen[m.Version]; ok {
			return fmt.Errorf("migrations %q and %q share version %s", other, m.Name, m.Version)
		}
		seen[m.Version] = m.Name
		if m.Up == nil || m.Down == nil {
			return fmt.Errorf("migration %q: missing Up or Down", m.Name)
		}
	}
	return nil
}

// Migrator handles the execution of migrations
type Migrator struct {
	db         *gorm.DB
	migrations []*Migration
}

// NewMigrator creates a new Migrator instance over the registered migrations
func NewMigrator(db *gorm.DB) *Migrator {
	m := &Migrator{db: db}
	for _, mr := range GetRegisteredMigrations() {
		m.Register(mr)
	}
	return m
}

// Register adds a migration to the migrator, keeping version order
func (m *Migrator) Register(migration *Migration) {
	m.migrations = append(m.migrations, migration)
	sort.SliceStable(m.migrations, func(i, j int) bool {
		return m.migrations[i].Version < m.migrations[j].Version
	})
}

// Migrations returns the known migrations in version order.
func (m *Migrator) Migrations() []*Migration {
	out := make([]*Migration, len(m.migrations))
	copy(out, m.migrations)
	return out
}

// EnsureVersionTable creates the version tracking table if it doesn't exist
func (m *Migrator) EnsureVersionTable() error {
	return m.db.AutoMigrate(&MigrationRecord{})
}

// History returns applied migration records, most recent first.
func (m *Migrator) History() ([]MigrationRecord, error) {
	if err := m.EnsureVersionTable(); err != nil {
		return nil, err
	}

	var records []MigrationRecord
	if err := m.db.Order("applied_at DESC, version DESC").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to get migration history: %w", err)
	}
	return records, nil
}

// GetAppliedVersions returns a map of applied migration versions
func (m *Migrator) GetAppliedVersions() (map[string]bool, error) {
	records, err := m.History()
	if err != nil {
		return nil, err
	}

	versions := make(map[string]bool)
	for _, record := range records {
		versions[record.Version] = true
	}
	return versions, nil
}

// Status reports every known migration with its applied state.
func (m *Migrator) Status() ([]Status, error) {
	records, err := m.History()
	if err != nil {
		return nil, err
	}

	applied := make(map[string]time.Time, len(records))
	for _, record := range records {
		applied[record.Version] = record.AppliedAt
	}

	statuses := make([]Status, 0, len(m.migrations))
	for _, mr := range m.migrations {
		at, ok := applied[mr.Version]
		statuses = append(statuses, Status{Migration: mr, Applied: ok, AppliedAt: at})
	}
	return statuses, nil
}

// Pending returns the migrations not applied yet, in version order.
func (m *Migrator) Pending() ([]*Migration, error) {
	applied, err := m.GetAppliedVersions()
	if err != nil {
		return nil, err
	}

	var pending []*Migration
	for _, mr := range m.migrations {
		if !applied[mr.Version] {
			pending = append(pending, mr)
		}
	}
	return pending, nil
}

// Up applies all pending migrations, each inside its own transaction, and
// returns the ones it applied.
func (m *Migrator) Up() ([]*Migration, error) {
	pending, err := m.Pending()
	if err != nil {
		return nil, err
	}

	var done []*Migration
	for _, mr := range pending {
		err := m.db.Transaction(func(tx *gorm.DB) error {
			if err := mr.Up(tx); err != nil {
				return fmt.Errorf("failed to apply migration %s: %w", mr.Name, err)
			}
			record := MigrationRecord{
				Version:   mr.Version,
				Name:      mr.Name,
				AppliedAt: time.Now(),
			}
			if err := tx.Create(&record).Error; err != nil {
				return fmt.Errorf("failed to record migration %s: %w", mr.Name, err)
			}
			return nil
		})
		if err != nil {
			return done, err
		}
		done = append(done, mr)
	}
	return done, nil
}

// Down rolls back the last applied migration
func (m *Migrator) Down() (*Migration, error) {
	records, err := m.History()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, ErrNothingToRevert
	}
	last := records[0]

	var target *Migration
	for _, mr := range m.migrations {
		if mr.Version == last.Version {
			target = mr
			break
		}
	}
	if target == nil {
		return nil, fmt.Errorf("version %s: %w", last.Version, ErrMissingMigration)
	}

	err = m.db.Transaction(func(tx *gorm.DB) error {
		if err := target.Down(tx); err != nil {
			return fmt.Errorf("failed to revert migration %s: %w", target.Name, err)
		}
		if err := tx.Delete(&last).Error; err != nil {
			return fmt.Errorf("failed to remove migration record: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return target, nil
}
