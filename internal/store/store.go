// Package store is the data-access layer of the blog. Every query the views
// run lives here, on top of GORM.
package store

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// ErrNotFound is returned (wrapped) when a requested record does not exist.
var ErrNotFound = errors.New("record not found")

const (
	postOrder    = "pub_date DESC, id DESC"
	commentOrder = "created DESC, id DESC"
)

// Store wraps the database handle shared by all queries.
type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// DB exposes the underlying handle for callers that need raw access, such as
// the migration commands and tests.
func (s *Store) DB() *gorm.DB {
	return s.db
}

func notFound(err error, format string, args ...any) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf(format+": %w", append(args, ErrNotFound)...)
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}
