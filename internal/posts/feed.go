package posts

import (
	"context"

	"github.com/beesaferoot/yatube/internal/models"
	"github.com/beesaferoot/yatube/internal/paginate"
	"github.com/beesaferoot/yatube/internal/store"
)

type FollowPage struct {
	Page *paginate.Page[models.Post]
}

// FollowIndex lists the posts of every author actor follows.
func (s *Service) FollowIndex(ctx context.Context, actor *models.User, page string) (*FollowPage, error) {
	p, err := s.store.PostsPage(ctx, store.PostFilter{FollowerID: actor.ID}, page)
	if err != nil {
		return nil, err
	}
	return &FollowPage{Page: p}, nil
}

// Follow subscribes actor to username. Following yourself is ignored and
// following twice keeps a single link.
func (s *Service) Follow(ctx context.Context, actor *models.User, username string) (string, error) {
	author, err := s.store.UserByUsername(ctx, username)
	if err != nil {
		return "", err
	}
	if !isSelf(actor, author) {
		if _, err := s.store.Follow(ctx, actor.ID, author.ID); err != nil {
			return "", err
		}
	}
	return ProfileURL(author.Username), nil
}

// Unfollow removes the subscription of actor to username if there is one.
func (s *Service) Unfollow(ctx context.Context, actor *models.User, username string) (string, error) {
	author, err := s.store.UserByUsername(ctx, username)
	if err != nil {
		return "", err
	}
	if _, err := s.store.Unfollow(ctx, actor.ID, author.ID); err != nil {
		return "", err
	}
	return FollowIndexURL(), nil
}
