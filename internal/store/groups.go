package store

import (
	"context"
	"fmt"

	"gorm.io/gorm/clause"

	"github.com/beesaferoot/yatube/internal/models"
)

func (s *Store) GroupBySlug(ctx context.Context, slug string) (*models.Group, error) {
	var group models.Group
	if err := s.db.WithContext(ctx).Where("slug = ?", slug).First(&group).Error; err != nil {
		return nil, notFound(err, "group %q", slug)
	}
	return &group, nil
}

// GroupExists reports whether a group with id exists. It backs the post
// form's group choice validation.
func (s *Store) GroupExists(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Group{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, fmt.Errorf("check group %d: %w", id, err)
	}
	return count > 0, nil
}

// Groups lists every group by title, for the post form's choices.
func (s *Store) Groups(ctx context.Context) ([]models.Group, error) {
	var groups []models.Group
	if err := s.db.WithContext(ctx).Order("title ASC, id ASC").Find(&groups).Error; err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}
	return groups, nil
}

// UpsertGroup creates the group or refreshes title and description of the
// group that already owns the slug.
func (s *Store) UpsertGroup(ctx context.Context, group *models.Group) error {
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "slug"}},
		DoUpdates: clause.AssignmentColumns([]string{"title", "description"}),
	}).Create(group).Error
	if err != nil {
		return fmt.Errorf("upsert group %q: %w", group.Slug, err)
	}
	return nil
}
