package store

import (
	"context"
	"fmt"

	"github.com/beesaferoot/yatube/internal/models"
	"github.com/beesaferoot/yatube/internal/paginate"
)

// PostFilter narrows a post listing. Zero fields do not filter.
type PostFilter struct {
	GroupID    uint
	AuthorID   uint
	FollowerID uint // posts by authors this user follows
}

// PostsPage returns one page of posts matching filter, newest first, with
// author and group loaded.
func (s *Store) PostsPage(ctx context.Context, filter PostFilter, page string) (*paginate.Page[models.Post], error) {
	q := s.db.WithContext(ctx).Model(&models.Post{})
	if filter.GroupID != 0 {
		q = q.Where("group_id = ?", filter.GroupID)
	}
	if filter.AuthorID != 0 {
		q = q.Where("author_id = ?", filter.AuthorID)
	}
	if filter.FollowerID != 0 {
		followed := s.db.WithContext(ctx).Model(&models.Follow{}).
			Select("author_id").
			Where("user_id = ?", filter.FollowerID)
		q = q.Where("author_id IN (?)", followed)
	}

	result, err := paginate.Query[models.Post](q, page, postOrder, "Author", "Group")
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return result, nil
}

func (s *Store) PostByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	err := s.db.WithContext(ctx).Preload("Author").Preload("Group").First(&post, id).Error
	if err != nil {
		return nil, notFound(err, "post %d", id)
	}
	return &post, nil
}

func (s *Store) CountPostsByAuthor(ctx context.Context, authorID uint) (int64, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Post{}).Where("author_id = ?", authorID).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count posts of user %d: %w", authorID, err)
	}
	return count, nil
}

func (s *Store) CreatePost(ctx context.Context, post *models.Post) error {
	if err := s.db.WithContext(ctx).Omit("Author", "Group", "Comments").Create(post).Error; err != nil {
		return fmt.Errorf("create post: %w", err)
	}
	return nil
}

// UpdatePost writes the editable fields of post. The publication date is
// create-only and never changes.
func (s *Store) UpdatePost(ctx context.Context, post *models.Post) error {
	err := s.db.WithContext(ctx).Model(post).
		Select("text", "group_id", "image").
		Updates(map[string]interface{}{
			"text":     post.Text,
			"group_id": post.GroupID,
			"image":    post.Image,
		}).Error
	if err != nil {
		return fmt.Errorf("update post %d: %w", post.ID, err)
	}
	return nil
}
