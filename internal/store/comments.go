package store

import (
	"context"
	"fmt"

	"github.com/beesaferoot/yatube/internal/models"
)

// CommentsForPost returns every comment of a post, newest first.
func (s *Store) CommentsForPost(ctx context.Context, postID uint) ([]models.Comment, error) {
	var comments []models.Comment
	err := s.db.WithContext(ctx).
		Preload("Author").
		Where("post_id = ?", postID).
		Order(commentOrder).
		Find(&comments).Error
	if err != nil {
		return nil, fmt.Errorf("list comments of post %d: %w", postID, err)
	}
	return comments, nil
}

func (s *Store) CreateComment(ctx context.Context, comment *models.Comment) error {
	if err := s.db.WithContext(ctx).Omit("Post", "Author").Create(comment).Error; err != nil {
		return fmt.Errorf("create comment on post %d: %w", comment.PostID, err)
	}
	return nil
}
