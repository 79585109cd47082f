package posts

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"strconv"

	"github.com/beesaferoot/yatube/internal/forms"
	"github.com/beesaferoot/yatube/internal/models"
)

// PostForm is the context of the create and edit screens.
type PostForm struct {
	IsEdit bool
	Post   *models.Post
	Groups []models.Group
	Text   string
	Group  string
	Errors forms.FieldErrors
}

func (s *Service) postForm(ctx context.Context, post *models.Post) (*PostForm, error) {
	groups, err := s.store.Groups(ctx)
	if err != nil {
		return nil, err
	}
	form := &PostForm{Groups: groups, Errors: forms.FieldErrors{}}
	if post != nil {
		form.IsEdit = true
		form.Post = post
		form.Text = post.Text
		if post.GroupID != nil {
			form.Group = strconv.FormatUint(uint64(*post.GroupID), 10)
		}
	}
	return form, nil
}

// NewPostForm returns an empty post form.
func (s *Service) NewPostForm(ctx context.Context) (*PostForm, error) {
	return s.postForm(ctx, nil)
}

// CreatePost validates in and stores a post by actor. A valid post redirects
// to the actor's profile; an invalid one returns the form with errors.
func (s *Service) CreatePost(ctx context.Context, actor *models.User, in forms.PostInput) (Outcome, error) {
	res, err := forms.ValidatePost(ctx, in, s.store)
	if err != nil {
		return Outcome{}, err
	}
	if !res.Valid() {
		return s.invalid(ctx, nil, in, res.Errors)
	}

	post := &models.Post{Text: res.Value.Text, AuthorID: actor.ID, GroupID: res.Value.GroupID}
	saved, err := s.saveImage(res.Value.Image)
	if err != nil {
		return Outcome{}, err
	}
	if saved != "" {
		post.Image = saved
	}
	if err := s.store.CreatePost(ctx, post); err != nil {
		return Outcome{}, s.discardImage(saved, err)
	}
	return redirect(ProfileURL(actor.Username)), nil
}

// EditPostForm returns the pre-filled form for the author, or a redirect to
// the post for anyone else.
func (s *Service) EditPostForm(ctx context.Context, actor *models.User, id uint) (Outcome, error) {
	post, err := s.store.PostByID(ctx, id)
	if err != nil {
		return Outcome{}, err
	}
	if actor.ID != post.AuthorID {
		return redirect(PostDetailURL(post.ID)), nil
	}
	form, err := s.postForm(ctx, post)
	if err != nil {
		return Outcome{}, err
	}
	return Outcome{Form: form}, nil
}

// EditPost updates the post in place when actor is its author. The image is
// replaced only when a new file is uploaded.
func (s *Service) EditPost(ctx context.Context, actor *models.User, id uint, in forms.PostInput) (Outcome, error) {
	post, err := s.store.PostByID(ctx, id)
	if err != nil {
		return Outcome{}, err
	}
	if actor.ID != post.AuthorID {
		return redirect(PostDetailURL(post.ID)), nil
	}

	res, err := forms.ValidatePost(ctx, in, s.store)
	if err != nil {
		return Outcome{}, err
	}
	if !res.Valid() {
		return s.invalid(ctx, post, in, res.Errors)
	}

	saved, err := s.saveImage(res.Value.Image)
	if err != nil {
		return Outcome{}, err
	}
	post.Text = res.Value.Text
	post.GroupID = res.Value.GroupID
	if saved != "" {
		post.Image = saved
	}
	if err := s.store.UpdatePost(ctx, post); err != nil {
		return Outcome{}, s.discardImage(saved, err)
	}
	return redirect(PostDetailURL(post.ID)), nil
}

func (s *Service) saveImage(fh *multipart.FileHeader) (string, error) {
	if fh == nil {
		return "", nil
	}
	name, err := s.images.Save(fh)
	if err != nil {
		return "", fmt.Errorf("save image: %w", err)
	}
	return name, nil
}

// discardImage removes an image saved for a post that could not be stored
// and returns cause.
func (s *Service) discardImage(name string, cause error) error {
	if name == "" {
		return cause
	}
	if err := s.images.Remove(name); err != nil {
		return errors.Join(cause, err)
	}
	return cause
}

// CanEdit reports whether actor may edit the post. A missing post is a
// not-found error.
func (s *Service) CanEdit(ctx context.Context, actor *models.User, id uint) (bool, error) {
	post, err := s.store.PostByID(ctx, id)
	if err != nil {
		return false, err
	}
	return actor != nil && actor.ID == post.AuthorID, nil
}

func (s *Service) invalid(ctx context.Context, post *models.Post, in forms.PostInput, errs forms.FieldErrors) (Outcome, error) {
	form, err := s.postForm(ctx, post)
	if err != nil {
		return Outcome{}, err
	}
	form.Text = in.Text
	form.Group = in.Group
	form.Errors = errs
	return Outcome{Form: form}, nil
}

// AddComment stores a comment by actor on the post. Invalid text is dropped
// without a message; the caller is always sent back to the post.
func (s *Service) AddComment(ctx context.Context, actor *models.User, id uint, in forms.CommentInput) (string, error) {
	post, err := s.store.PostByID(ctx, id)
	if err != nil {
		return "", err
	}
	res := forms.ValidateComment(in)
	if res.Valid() {
		comment := &models.Comment{PostID: post.ID, AuthorID: actor.ID, Text: res.Value}
		if err := s.store.CreateComment(ctx, comment); err != nil {
			return "", err
		}
	}
	return PostDetailURL(post.ID), nil
}
