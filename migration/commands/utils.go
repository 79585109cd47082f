package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gorm.io/gorm"

	"github.com/beesaferoot/yatube/internal/config"
	"github.com/beesaferoot/yatube/internal/database"
	"github.com/beesaferoot/yatube/migration"
)

func getDB(debug bool) (*gorm.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return database.Open(cfg.DatabaseURL, debug)
}

func getMigrator(debug bool) (*migration.Migrator, error) {
	db, err := getDB(debug)
	if err != nil {
		return nil, err
	}
	m := migration.NewMigrator(db)
	if err := m.EnsureVersionTable(); err != nil {
		return nil, fmt.Errorf("failed to create schema_migrations table: %v", err)
	}
	return m, nil
}

func validateMigrationsPath(path string) (string, error) {
	cleanPath := filepath.Clean(path)

	absPath, err := filepath.Abs(cleanPath)
	if err != nil {
		return "", fmt.Errorf("invalid migrations path: %v", err)
	}

	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get working directory: %v", err)
	}

	if absPath != wd && !strings.HasPrefix(absPath, wd+string(filepath.Separator)) {
		return "", fmt.Errorf("migrations path must be within working directory")
	}

	if err := os.MkdirAll(absPath, 0755); err != nil {
		return "", fmt.Errorf("migrations path is not writable: %v", err)
	}

	return absPath, nil
}

func getMigrationsDir() (string, error) {
	cfg, err := config.Load()
	if err != nil {
		return "", err
	}
	return validateMigrationsPath(cfg.MigrationsPath)
}
