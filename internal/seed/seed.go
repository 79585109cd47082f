// Package seed loads groups and users from a YAML fixture file. Groups have
// no screen of their own, so this is how they get into the database.
package seed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/beesaferoot/yatube/internal/auth"
	"github.com/beesaferoot/yatube/internal/models"
	"github.com/beesaferoot/yatube/internal/store"
)

// GroupFixture describes one group; the slug identifies it.
type GroupFixture struct {
	Title       string `yaml:"title"`
	Slug        string `yaml:"slug"`
	Description string `yaml:"description"`
}

// UserFixture describes one account.
type UserFixture struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

// Fixtures is the layout of a fixture file.
type Fixtures struct {
	Groups []GroupFixture `yaml:"groups"`
	Users  []UserFixture  `yaml:"users"`
}

// Summary counts what Apply changed.
type Summary struct {
	Groups       int
	UsersCreated int
	UsersSkipped int
}

// Load decodes fixtures from r. Unknown keys are rejected.
func Load(r io.Reader) (*Fixtures, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f Fixtures
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to decode fixtures: %v", err)
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// LoadFile reads fixtures from path.
func LoadFile(path string) (*Fixtures, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open fixtures: %v", err)
	}
	defer file.Close()
	return Load(file)
}

// Validate checks required fields and duplicate keys.
func (f *Fixtures) Validate() error {
	slugs := make(map[string]bool)
	for i, g := range f.Groups {
		if strings.TrimSpace(g.Slug) == "" || strings.TrimSpace(g.Title) == "" {
			return fmt.Errorf("group %d: title and slug are required", i+1)
		}
		if slugs[g.Slug] {
			return fmt.Errorf("group %d: duplicate slug %q", i+1, g.Slug)
		}
		slugs[g.Slug] = true
	}

	names := make(map[string]bool)
	for i, u := range f.Users {
		if strings.TrimSpace(u.Username) == "" || u.Password == "" {
			return fmt.Errorf("user %d: username and password are required", i+1)
		}
		if names[u.Username] {
			return fmt.Errorf("user %d: duplicate username %q", i+1, u.Username)
		}
		names[u.Username] = true
	}
	return nil
}

// Apply writes the fixtures. Groups are created or updated by slug; users
// that already exist are left alone.
func Apply(ctx context.Context, s *store.Store, f *Fixtures) (Summary, error) {
	var sum Summary
	for _, g := range f.Groups {
		group := &models.Group{Title: g.Title, Slug: g.Slug, Description: g.Description}
		if err := s.UpsertGroup(ctx, group); err != nil {
			return sum, err
		}
		sum.Groups++
	}

	accounts := auth.NewService(s)
	for _, u := range f.Users {
		_, err := accounts.Register(ctx, u.Username, u.Password)
		if errors.Is(err, auth.ErrUsernameTaken) {
			sum.UsersSkipped++
			continue
		}
		if err != nil {
			return sum, err
		}
		sum.UsersCreated++
	}
	return sum, nil
}
