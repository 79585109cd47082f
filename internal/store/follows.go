package store

import (
	"context"
	"fmt"

	"gorm.io/gorm/clause"

	"github.com/beesaferoot/yatube/internal/models"
)

func (s *Store) IsFollowing(ctx context.Context, userID, authorID uint) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Follow{}).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("check follow %d->%d: %w", userID, authorID, err)
	}
	return count > 0, nil
}

// Follow creates the (user, author) link unless it already exists. It reports
// whether a new link was written; the unique index absorbs concurrent
// duplicates.
func (s *Store) Follow(ctx context.Context, userID, authorID uint) (bool, error) {
	follow := models.Follow{UserID: userID, AuthorID: authorID}
	res := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Omit("User", "Author").
		Create(&follow)
	if res.Error != nil {
		return false, fmt.Errorf("follow %d->%d: %w", userID, authorID, res.Error)
	}
	return res.RowsAffected > 0, nil
}

// Unfollow deletes the (user, author) link. Deleting a missing link is not an
// error.
func (s *Store) Unfollow(ctx context.Context, userID, authorID uint) (int64, error) {
	res := s.db.WithContext(ctx).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Delete(&models.Follow{})
	if res.Error != nil {
		return 0, fmt.Errorf("unfollow %d->%d: %w", userID, authorID, res.Error)
	}
	return res.RowsAffected, nil
}

func (s *Store) CountFollowers(ctx context.Context, authorID uint) (int64, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Follow{}).Where("author_id = ?", authorID).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count followers of %d: %w", authorID, err)
	}
	return count, nil
}
