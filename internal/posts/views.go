package posts

import (
	"context"
	"errors"

	"github.com/beesaferoot/yatube/internal/models"
	"github.com/beesaferoot/yatube/internal/paginate"
	"github.com/beesaferoot/yatube/internal/store"
)

type IndexPage struct {
	Page *paginate.Page[models.Post]
}

type GroupPage struct {
	Group *models.Group
	Page  *paginate.Page[models.Post]
}

type ProfilePage struct {
	Author        *models.User
	Page          *paginate.Page[models.Post]
	PostCount     int64
	FollowerCount int64
	Following     bool
	IsOwn         bool
}

type PostDetailPage struct {
	Post            *models.Post
	Comments        []models.Comment
	AuthorPostCount int64
	CanEdit         bool
}

// Index lists every post, newest first.
func (s *Service) Index(ctx context.Context, page string) (*IndexPage, error) {
	p, err := s.store.PostsPage(ctx, store.PostFilter{}, page)
	if err != nil {
		return nil, err
	}
	return &IndexPage{Page: p}, nil
}

// GroupPosts lists the posts of the group with slug.
func (s *Service) GroupPosts(ctx context.Context, slug, page string) (*GroupPage, error) {
	group, err := s.store.GroupBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	p, err := s.store.PostsPage(ctx, store.PostFilter{GroupID: group.ID}, page)
	if err != nil {
		return nil, err
	}
	return &GroupPage{Group: group, Page: p}, nil
}

// Profile lists the posts of username. viewer is nil for anonymous requests.
func (s *Service) Profile(ctx context.Context, viewer *models.User, username, page string) (*ProfilePage, error) {
	author, err := s.store.UserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	p, err := s.store.PostsPage(ctx, store.PostFilter{AuthorID: author.ID}, page)
	if err != nil {
		return nil, err
	}
	followers, err := s.store.CountFollowers(ctx, author.ID)
	if err != nil {
		return nil, err
	}

	result := &ProfilePage{
		Author:        author,
		Page:          p,
		PostCount:     p.Count,
		FollowerCount: followers,
		IsOwn:         isSelf(viewer, author),
	}
	if viewer != nil && !result.IsOwn {
		result.Following, err = s.store.IsFollowing(ctx, viewer.ID, author.ID)
		if err != nil {
			return nil, err
		}
	}
	return result, nil
}

// PostDetail loads a post with its comments.
func (s *Service) PostDetail(ctx context.Context, viewer *models.User, id uint) (*PostDetailPage, error) {
	post, err := s.store.PostByID(ctx, id)
	if err != nil {
		return nil, err
	}
	comments, err := s.store.CommentsForPost(ctx, post.ID)
	if err != nil {
		return nil, err
	}
	count, err := s.store.CountPostsByAuthor(ctx, post.AuthorID)
	if err != nil {
		return nil, err
	}
	return &PostDetailPage{
		Post:            post,
		Comments:        comments,
		AuthorPostCount: count,
		CanEdit:         viewer != nil && viewer.ID == post.AuthorID,
	}, nil
}

// IsNotFound reports whether err means the requested object does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, store.ErrNotFound)
}
